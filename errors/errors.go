package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a TMX parse failure.
type Kind string

const (
	// XMLDecoding indicates the underlying token stream reported malformed XML.
	XMLDecoding Kind = "xml-decoding"
	// MalformedAttributes indicates a required attribute was missing or a value
	// failed its type conversion.
	MalformedAttributes Kind = "malformed-attributes"
	// PrematureEnd indicates the document ended, or an unexpected end tag
	// appeared, before the structurally required closing point.
	PrematureEnd Kind = "premature-end"
	// Other covers environment failures such as a missing file.
	Other Kind = "other"

	// ParseValue indicates a typed value (property type, orientation) could not
	// be parsed.
	ParseValue Kind = "parse-value"
	// SourceRequired indicates an external reference was found while parsing a
	// document that has no originating path.
	SourceRequired Kind = "source-required"
	// Base64Decoding indicates base64 tile data could not be decoded.
	Base64Decoding Kind = "base64-decoding"
	// Decompressing indicates compressed tile data could not be inflated.
	Decompressing Kind = "decompressing"
	// InvalidTileData indicates tile data with an unknown encoding or the wrong
	// number of tiles.
	InvalidTileData Kind = "invalid-tile-data"
)

// Error is the single error type returned by the TMX reader.
type Error struct {
	Err     error
	Kind    Kind
	Message string
	Line    int
	Column  int
}

// New builds an Error with a kind and message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Newf formats a message and builds an Error.
func Newf(kind Kind, format string, args ...any) *Error {
	return New(kind, fmt.Sprintf(format, args...))
}

// Wrap builds an Error of the given kind around cause.
func Wrap(kind Kind, cause error, msg string) *Error {
	return &Error{Kind: kind, Message: msg, Err: cause}
}

// At returns a copy of e carrying the given position.
func (e *Error) At(line, column int) *Error {
	if e == nil {
		return nil
	}
	out := *e
	out.Line = line
	out.Column = column
	return &out
}

// Error formats the error with its kind, message, position and cause.
func (e *Error) Error() string {
	if e == nil {
		return "tmx error <nil>"
	}

	var b strings.Builder
	b.WriteString("[")
	b.WriteString(string(e.Kind))
	b.WriteString("]")
	if e.Message != "" {
		b.WriteString(" ")
		b.WriteString(e.Message)
	}
	if e.Line > 0 && e.Column > 0 {
		b.WriteString(fmt.Sprintf(" at line %d, column %d", e.Line, e.Column))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// KindOf returns the kind of the first Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if !errors.As(err, &e) || e == nil {
		return "", false
	}
	return e.Kind, true
}

// IsKind reports whether err's chain holds an Error of the given kind.
func IsKind(err error, kind Kind) bool {
	got, ok := KindOf(err)
	return ok && got == kind
}

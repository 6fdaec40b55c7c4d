// Package xmlevent defines the four-event stream the TMX parsers consume and
// adapts the xmlstream reader to it.
package xmlevent

import (
	"errors"

	"github.com/jacoelho/xsd/pkg/xmltext"
)

// Kind identifies the kind of streaming XML event.
type Kind uint8

const (
	// StartElement opens an element and carries its name and attributes.
	StartElement Kind = iota
	// EndElement closes the most recently opened element.
	EndElement
	// CharData carries text content between tags.
	CharData
	// EndDocument is reported once the input is exhausted.
	EndDocument
)

// String returns the event kind name.
func (k Kind) String() string {
	switch k {
	case StartElement:
		return "StartElement"
	case EndElement:
		return "EndElement"
	case CharData:
		return "CharData"
	case EndDocument:
		return "EndDocument"
	default:
		return "Unknown"
	}
}

// Attr is one attribute of a start element.
type Attr struct {
	Name  string
	Value string
}

// Event is a single stream token. Attrs and Text are owned by the event and
// stay valid after the next call to Next.
type Event struct {
	Name   string
	Text   string
	Attrs  []Attr
	Kind   Kind
	Line   int
	Column int
}

// Source produces events in document order. After EndDocument every call
// returns EndDocument again.
type Source interface {
	Next() (Event, error)
}

// Lookup returns the value of the first attribute named name.
func Lookup(attrs []Attr, name string) (string, bool) {
	for _, a := range attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// ErrorPos returns the line and column reported by a tokenizer error.
func ErrorPos(err error) (line, column int, ok bool) {
	var syntax *xmltext.SyntaxError
	if !errors.As(err, &syntax) || syntax == nil {
		return 0, 0, false
	}
	if syntax.Line <= 0 {
		return 0, 0, false
	}
	return syntax.Line, syntax.Column, true
}

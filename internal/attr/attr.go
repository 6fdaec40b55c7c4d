// Package attr extracts typed values from the attribute list of one element.
//
// Each attribute is described by a Spec built with Required or Optional. A
// Converter turns the raw string into a value or rejects it. Extract applies
// all specs to one attribute list and either assigns every binding or none.
package attr

import (
	"fmt"

	tmxerrors "github.com/jacoelho/tmx/errors"
	"github.com/jacoelho/tmx/internal/xmlevent"
)

// Converter turns a raw attribute value into T, reporting false on rejection.
type Converter[T any] func(string) (T, bool)

// Spec describes one attribute binding.
type Spec struct {
	convert  func(raw string) (commit func(), ok bool)
	name     string
	required bool
}

// Required binds name to dst. A missing or unconvertible value fails extraction.
func Required[T any](name string, dst *T, conv Converter[T]) Spec {
	return Spec{name: name, required: true, convert: binder(dst, conv)}
}

// Optional binds name to dst. dst keeps its current value when the attribute
// is absent or its value is rejected, so callers preload defaults.
func Optional[T any](name string, dst *T, conv Converter[T]) Spec {
	return Spec{name: name, convert: binder(dst, conv)}
}

func binder[T any](dst *T, conv Converter[T]) func(string) (func(), bool) {
	return func(raw string) (func(), bool) {
		v, ok := conv(raw)
		if !ok {
			return nil, false
		}
		return func() { *dst = v }, true
	}
}

// Extract applies specs to attrs. On failure it returns a MalformedAttributes
// error carrying msg and assigns nothing.
func Extract(attrs []xmlevent.Attr, msg string, specs ...Spec) error {
	commits := make([]func(), 0, len(specs))
	for _, spec := range specs {
		raw, found := xmlevent.Lookup(attrs, spec.name)
		if !found {
			if spec.required {
				return tmxerrors.Wrap(tmxerrors.MalformedAttributes, fmt.Errorf("attribute %q is missing", spec.name), msg)
			}
			continue
		}
		commit, ok := spec.convert(raw)
		if !ok {
			if spec.required {
				return tmxerrors.Wrap(tmxerrors.MalformedAttributes, fmt.Errorf("attribute %q has invalid value %q", spec.name, raw), msg)
			}
			continue
		}
		commits = append(commits, commit)
	}
	for _, commit := range commits {
		commit()
	}
	return nil
}

// Package dispatch routes the children of an open element to named handlers.
package dispatch

import (
	"strings"

	"go.uber.org/zap"

	tmxerrors "github.com/jacoelho/tmx/errors"
	"github.com/jacoelho/tmx/internal/xmlevent"
)

// Handler consumes one child element whose start tag carried attrs. It must
// read the child's subtree up to and including its end tag.
type Handler func(attrs []xmlevent.Attr) error

// Handlers maps child element names to handlers.
type Handlers map[string]Handler

// Walker pulls events from one source on behalf of nested parsers.
type Walker struct {
	src xmlevent.Source
	log *zap.Logger
}

// NewWalker returns a Walker over src. A nil logger discards output.
func NewWalker(src xmlevent.Source, log *zap.Logger) *Walker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Walker{src: src, log: log}
}

// Logger returns the walker's logger.
func (w *Walker) Logger() *zap.Logger {
	return w.log
}

// Next returns the next event, wrapping tokenizer failures as XMLDecoding.
func (w *Walker) Next() (xmlevent.Event, error) {
	ev, err := w.src.Next()
	if err != nil {
		e := tmxerrors.Wrap(tmxerrors.XMLDecoding, err, "")
		if line, column, ok := xmlevent.ErrorPos(err); ok {
			e = e.At(line, column)
		}
		return xmlevent.Event{}, e
	}
	return ev, nil
}

// Find skips events until a start tag named elem and returns its attributes.
func (w *Walker) Find(elem string) ([]xmlevent.Attr, error) {
	for {
		ev, err := w.Next()
		if err != nil {
			return nil, err
		}
		switch ev.Kind {
		case xmlevent.StartElement:
			if ev.Name == elem {
				return ev.Attrs, nil
			}
		case xmlevent.EndDocument:
			return nil, tmxerrors.Newf(tmxerrors.PrematureEnd, "document ended before %s was parsed", elem)
		}
	}
}

// Walk dispatches the children of the open element elem until its end tag.
// Unknown children are skipped with their whole subtree.
func (w *Walker) Walk(elem string, handlers Handlers) error {
	_, err := w.walk(elem, handlers, false)
	return err
}

// WalkText is Walk that also returns the element's direct character data.
func (w *Walker) WalkText(elem string, handlers Handlers) (string, error) {
	return w.walk(elem, handlers, true)
}

func (w *Walker) walk(elem string, handlers Handlers, collect bool) (string, error) {
	var text strings.Builder
	for {
		ev, err := w.Next()
		if err != nil {
			return "", err
		}
		switch ev.Kind {
		case xmlevent.StartElement:
			if h, ok := handlers[ev.Name]; ok {
				if err := h(ev.Attrs); err != nil {
					return "", err
				}
				continue
			}
			w.log.Debug("skipping unknown element",
				zap.String("element", ev.Name),
				zap.String("parent", elem),
				zap.Int("line", ev.Line))
			if err := w.Skip(ev.Name); err != nil {
				return "", err
			}
		case xmlevent.EndElement:
			if ev.Name == elem {
				return text.String(), nil
			}
			return "", tmxerrors.Newf(tmxerrors.PrematureEnd, "unexpected end of %s while parsing %s", ev.Name, elem).At(ev.Line, ev.Column)
		case xmlevent.CharData:
			if collect {
				text.WriteString(ev.Text)
			}
		case xmlevent.EndDocument:
			return "", tmxerrors.Newf(tmxerrors.PrematureEnd, "document ended before %s was closed", elem)
		}
	}
}

// Skip consumes the rest of the open element elem, including nested elements.
func (w *Walker) Skip(elem string) error {
	depth := 1
	for depth > 0 {
		ev, err := w.Next()
		if err != nil {
			return err
		}
		switch ev.Kind {
		case xmlevent.StartElement:
			depth++
		case xmlevent.EndElement:
			depth--
		case xmlevent.EndDocument:
			return tmxerrors.Newf(tmxerrors.PrematureEnd, "document ended inside %s", elem)
		}
	}
	return nil
}

package xmlevent

import (
	"errors"
	"io"

	"github.com/jacoelho/xsd/pkg/xmlstream"
)

var errNilReader = errors.New("nil XML reader")

// Reader adapts an xmlstream.StringReader to Source.
type Reader struct {
	r    *xmlstream.StringReader
	done bool
}

// NewReader creates a Source over r.
func NewReader(r io.Reader, opts ...xmlstream.Option) (*Reader, error) {
	if r == nil {
		return nil, errNilReader
	}
	sr, err := xmlstream.NewStringReader(r, opts...)
	if err != nil {
		return nil, err
	}
	return &Reader{r: sr}, nil
}

// Next returns the next event. End of input is reported as EndDocument.
func (r *Reader) Next() (Event, error) {
	if r == nil || r.r == nil {
		return Event{}, errNilReader
	}
	if r.done {
		return r.endDocument(), nil
	}
	for {
		ev, err := r.r.Next()
		if errors.Is(err, io.EOF) {
			r.done = true
			return r.endDocument(), nil
		}
		if err != nil {
			return Event{}, err
		}

		switch ev.Kind {
		case xmlstream.EventStartElement:
			attrs := make([]Attr, 0, len(ev.Attrs))
			for _, a := range ev.Attrs {
				if a.NamespaceURI() == xmlnsNamespace {
					continue
				}
				attrs = append(attrs, Attr{Name: a.LocalName(), Value: a.Value()})
			}
			return Event{
				Kind:   StartElement,
				Name:   ev.Name.Local,
				Attrs:  attrs,
				Line:   ev.Line,
				Column: ev.Column,
			}, nil
		case xmlstream.EventEndElement:
			return Event{
				Kind:   EndElement,
				Name:   ev.Name.Local,
				Line:   ev.Line,
				Column: ev.Column,
			}, nil
		case xmlstream.EventCharData:
			return Event{
				Kind:   CharData,
				Text:   string(ev.Text),
				Line:   ev.Line,
				Column: ev.Column,
			}, nil
		}
	}
}

func (r *Reader) endDocument() Event {
	line, column := r.r.CurrentPos()
	return Event{Kind: EndDocument, Line: line, Column: column}
}

const xmlnsNamespace = "http://www.w3.org/2000/xmlns/"

package tmx

import (
	"strconv"
	"strings"

	tmxerrors "github.com/jacoelho/tmx/errors"
	"github.com/jacoelho/tmx/internal/attr"
	"github.com/jacoelho/tmx/internal/xmlevent"
)

// Shape is the geometry of an object. The set of implementations is closed.
type Shape interface {
	shape()
}

// Vertex is a point relative to the object position.
type Vertex struct {
	X float32
	Y float32
}

// Rect is a rectangle spanning Width by Height from the object position.
// Objects without a shape element are rectangles.
type Rect struct {
	Width  float32
	Height float32
}

// Ellipse is an ellipse inscribed in the Width by Height box at the object position.
type Ellipse struct {
	Width  float32
	Height float32
}

// Polyline is an open path through Points.
type Polyline struct {
	Points []Vertex
}

// Polygon is a closed path through Points; the last point joins the first.
type Polygon struct {
	Points []Vertex
}

// Point is a marker at the object position.
type Point struct {
	X float32
	Y float32
}

// Text is a text box sized by the object.
type Text struct {
	FontFamily string
	Contents   string
	PixelSize  int
	Color      Color
	HAlign     HAlign
	VAlign     VAlign
	Wrap       bool
	Bold       bool
	Italic     bool
	Underline  bool
	Strikeout  bool
	Kerning    bool
}

func (Rect) shape()     {}
func (Ellipse) shape()  {}
func (Polyline) shape() {}
func (Polygon) shape()  {}
func (Point) shape()    {}
func (Text) shape()     {}

// HAlign is the horizontal alignment of text.
type HAlign uint8

const (
	HAlignLeft HAlign = iota
	HAlignCenter
	HAlignRight
	HAlignJustify
)

// VAlign is the vertical alignment of text.
type VAlign uint8

const (
	VAlignTop VAlign = iota
	VAlignCenter
	VAlignBottom
)

func (p *parser) parsePointList(elem string, list []xmlevent.Attr) ([]Vertex, error) {
	var raw string
	if err := attr.Extract(list, "a "+elem+" must have points", attr.Required("points", &raw, attr.String)); err != nil {
		return nil, err
	}
	points, err := parsePoints(raw)
	if err != nil {
		return nil, err
	}
	if err := p.w.Walk(elem, nil); err != nil {
		return nil, err
	}
	return points, nil
}

// parsePoints parses "x,y x,y ..." into vertices.
func parsePoints(s string) ([]Vertex, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, tmxerrors.New(tmxerrors.MalformedAttributes, "points list is empty")
	}
	points := make([]Vertex, 0, len(fields))
	for _, f := range fields {
		xs, ys, ok := strings.Cut(f, ",")
		if !ok || strings.Contains(ys, ",") {
			return nil, tmxerrors.Newf(tmxerrors.MalformedAttributes, "point %q does not have an x and y coordinate", f)
		}
		x, errX := strconv.ParseFloat(xs, 32)
		y, errY := strconv.ParseFloat(ys, 32)
		if errX != nil || errY != nil {
			return nil, tmxerrors.Newf(tmxerrors.MalformedAttributes, "point %q does not have numeric coordinates", f)
		}
		points = append(points, Vertex{X: float32(x), Y: float32(y)})
	}
	return points, nil
}

func (p *parser) parseText(list []xmlevent.Attr) (Text, error) {
	t := Text{
		FontFamily: "sans-serif",
		PixelSize:  16,
		Color:      Color{Alpha: 0xff},
		Kerning:    true,
	}
	var halign, valign string
	err := attr.Extract(list, "could not parse text",
		attr.Optional("fontfamily", &t.FontFamily, attr.String),
		attr.Optional("pixelsize", &t.PixelSize, attr.Int),
		attr.Optional("wrap", &t.Wrap, attr.IntFlag),
		attr.Optional("color", &t.Color, colorAttr),
		attr.Optional("bold", &t.Bold, attr.IntFlag),
		attr.Optional("italic", &t.Italic, attr.IntFlag),
		attr.Optional("underline", &t.Underline, attr.IntFlag),
		attr.Optional("strikeout", &t.Strikeout, attr.IntFlag),
		attr.Optional("kerning", &t.Kerning, attr.NonZero),
		attr.Optional("halign", &halign, attr.String),
		attr.Optional("valign", &valign, attr.String),
	)
	if err != nil {
		return Text{}, err
	}
	if t.HAlign, err = parseHAlign(halign); err != nil {
		return Text{}, err
	}
	if t.VAlign, err = parseVAlign(valign); err != nil {
		return Text{}, err
	}
	if t.Contents, err = p.w.WalkText("text", nil); err != nil {
		return Text{}, err
	}
	return t, nil
}

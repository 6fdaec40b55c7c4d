package tmx

import (
	tmxerrors "github.com/jacoelho/tmx/errors"
	"github.com/jacoelho/tmx/internal/attr"
	"github.com/jacoelho/tmx/internal/dispatch"
	"github.com/jacoelho/tmx/internal/xmlevent"
)

// ObjectGroup is a layer of objects, or the collision shapes of a tile.
type ObjectGroup struct {
	Color *Color
	// LayerIndex is nil for tile collision groups.
	LayerIndex *uint32
	Properties Properties
	Name       string
	Objects    []*Object
	Opacity    float32
	Visible    bool
}

// Object is a placed shape or tile instance.
type Object struct {
	Shape      Shape
	Properties Properties
	Name       string
	Type       string
	ID         uint32
	Gid        Gid
	// FlipH, FlipV and FlipD are the flip flags packed into the gid attribute
	// of tile objects.
	FlipH    bool
	FlipV    bool
	FlipD    bool
	X        float32
	Y        float32
	Width    float32
	Height   float32
	Rotation float32
	Visible  bool
}

func (p *parser) parseObjectGroup(list []xmlevent.Attr, index *uint32) (*ObjectGroup, error) {
	g := &ObjectGroup{Opacity: 1, Visible: true, LayerIndex: index, Properties: Properties{}}
	err := attr.Extract(list, "object group has malformed attributes",
		attr.Optional("name", &g.Name, attr.String),
		attr.Optional("opacity", &g.Opacity, attr.Float32),
		attr.Optional("visible", &g.Visible, attr.IntFlag),
		attr.Optional("color", &g.Color, attr.Ptr(colorAttr)),
	)
	if err != nil {
		return nil, err
	}
	err = p.w.Walk("objectgroup", dispatch.Handlers{
		"object": func(list []xmlevent.Attr) error {
			o, err := p.parseObject(list)
			if err != nil {
				return err
			}
			g.Objects = append(g.Objects, o)
			return nil
		},
		"properties": func([]xmlevent.Attr) error {
			props, err := p.parseProperties()
			if err != nil {
				return err
			}
			g.Properties = props
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (p *parser) parseObject(list []xmlevent.Attr) (*Object, error) {
	o := &Object{Gid: EmptyGid, Visible: true, Properties: Properties{}}
	var class string
	var tile LayerTile
	err := attr.Extract(list, "objects must have an x and a y number",
		attr.Optional("id", &o.ID, attr.Uint32),
		attr.Optional("gid", &tile, tileAttr),
		attr.Optional("name", &o.Name, attr.String),
		attr.Optional("type", &o.Type, attr.String),
		attr.Optional("class", &class, attr.String),
		attr.Optional("width", &o.Width, attr.Float32),
		attr.Optional("height", &o.Height, attr.Float32),
		attr.Optional("visible", &o.Visible, attr.IntFlag),
		attr.Optional("rotation", &o.Rotation, attr.Float32),
		attr.Required("x", &o.X, attr.Float32),
		attr.Required("y", &o.Y, attr.Float32),
	)
	if err != nil {
		return nil, err
	}
	if o.Type == "" {
		o.Type = class
	}
	o.Gid, o.FlipH, o.FlipV, o.FlipD = tile.Gid, tile.FlipH, tile.FlipV, tile.FlipD

	setShape := func(s Shape) error {
		if o.Shape != nil {
			return tmxerrors.Newf(tmxerrors.Other, "object %d has more than one shape", o.ID)
		}
		o.Shape = s
		return nil
	}
	err = p.w.Walk("object", dispatch.Handlers{
		"ellipse": func([]xmlevent.Attr) error {
			if err := setShape(Ellipse{Width: o.Width, Height: o.Height}); err != nil {
				return err
			}
			return p.w.Walk("ellipse", nil)
		},
		"polyline": func(list []xmlevent.Attr) error {
			points, err := p.parsePointList("polyline", list)
			if err != nil {
				return err
			}
			return setShape(Polyline{Points: points})
		},
		"polygon": func(list []xmlevent.Attr) error {
			points, err := p.parsePointList("polygon", list)
			if err != nil {
				return err
			}
			return setShape(Polygon{Points: points})
		},
		"point": func([]xmlevent.Attr) error {
			if err := setShape(Point{X: o.X, Y: o.Y}); err != nil {
				return err
			}
			return p.w.Walk("point", nil)
		},
		"text": func(list []xmlevent.Attr) error {
			t, err := p.parseText(list)
			if err != nil {
				return err
			}
			return setShape(t)
		},
		"properties": func([]xmlevent.Attr) error {
			props, err := p.parseProperties()
			if err != nil {
				return err
			}
			o.Properties = props
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	if o.Shape == nil {
		o.Shape = Rect{Width: o.Width, Height: o.Height}
	}
	return o, nil
}

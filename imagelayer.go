package tmx

import (
	"github.com/jacoelho/tmx/internal/attr"
	"github.com/jacoelho/tmx/internal/dispatch"
	"github.com/jacoelho/tmx/internal/xmlevent"
)

// ImageLayer is a single image placed as a layer.
type ImageLayer struct {
	Image      *Image
	Properties Properties
	Name       string
	Opacity    float32
	OffsetX    float32
	OffsetY    float32
	LayerIndex uint32
	Visible    bool
}

func (p *parser) parseImageLayer(list []xmlevent.Attr, index uint32) (*ImageLayer, error) {
	l := &ImageLayer{Opacity: 1, Visible: true, LayerIndex: index, Properties: Properties{}}
	err := attr.Extract(list, "image layer has malformed attributes",
		attr.Optional("name", &l.Name, attr.String),
		attr.Optional("opacity", &l.Opacity, attr.Float32),
		attr.Optional("visible", &l.Visible, attr.IntFlag),
		attr.Optional("offsetx", &l.OffsetX, attr.Float32),
		attr.Optional("offsety", &l.OffsetY, attr.Float32),
	)
	if err != nil {
		return nil, err
	}
	err = p.w.Walk("imagelayer", dispatch.Handlers{
		"image": func(list []xmlevent.Attr) error {
			img, err := p.parseImage(list)
			if err != nil {
				return err
			}
			l.Image = img
			return nil
		},
		"properties": func([]xmlevent.Attr) error {
			props, err := p.parseProperties()
			if err != nil {
				return err
			}
			l.Properties = props
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

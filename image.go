package tmx

import (
	tmxerrors "github.com/jacoelho/tmx/errors"
	"github.com/jacoelho/tmx/internal/attr"
	"github.com/jacoelho/tmx/internal/xmlevent"
)

// Image references an image file. The file itself is never opened.
type Image struct {
	// TransparentColor is the color treated as transparent, if any.
	TransparentColor *Color
	Source           string
	// Width and Height are the image size in pixels, zero when absent.
	Width  uint32
	Height uint32
}

func (p *parser) parseImage(list []xmlevent.Attr) (*Image, error) {
	img := &Image{}
	var width, height int
	err := attr.Extract(list, "image must have a source with correct type",
		attr.Optional("width", &width, attr.Int),
		attr.Optional("height", &height, attr.Int),
		attr.Optional("trans", &img.TransparentColor, attr.Ptr(colorAttr)),
		attr.Required("source", &img.Source, attr.String),
	)
	if err != nil {
		return nil, err
	}
	if width < 0 || height < 0 {
		return nil, tmxerrors.Newf(tmxerrors.MalformedAttributes, "image size %dx%d is negative", width, height)
	}
	img.Width, img.Height = uint32(width), uint32(height)
	if err := p.w.Walk("image", nil); err != nil {
		return nil, err
	}
	return img, nil
}

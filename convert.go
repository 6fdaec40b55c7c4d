package tmx

import (
	tmxerrors "github.com/jacoelho/tmx/errors"
	"github.com/jacoelho/tmx/internal/attr"
)

func colorAttr(v string) (Color, bool) {
	c, err := ParseColor(v)
	return c, err == nil
}

func orientationAttr(v string) (Orientation, bool) {
	o, err := ParseOrientation(v)
	return o, err == nil
}

func gidAttr(v string) (Gid, bool) {
	raw, ok := attr.Uint32(v)
	if !ok {
		return EmptyGid, false
	}
	return Gid(raw &^ flipMask), true
}

// tileAttr keeps the flip flags packed into a gid attribute.
func tileAttr(v string) (LayerTile, bool) {
	raw, ok := attr.Uint32(v)
	if !ok {
		return LayerTile{}, false
	}
	return newLayerTile(raw), true
}

func parseHAlign(v string) (HAlign, error) {
	switch v {
	case "", "left":
		return HAlignLeft, nil
	case "center":
		return HAlignCenter, nil
	case "right":
		return HAlignRight, nil
	case "justify":
		return HAlignJustify, nil
	default:
		return HAlignLeft, tmxerrors.Newf(tmxerrors.MalformedAttributes, "unknown horizontal alignment %q", v)
	}
}

func parseVAlign(v string) (VAlign, error) {
	switch v {
	case "", "top":
		return VAlignTop, nil
	case "center":
		return VAlignCenter, nil
	case "bottom":
		return VAlignBottom, nil
	default:
		return VAlignTop, tmxerrors.Newf(tmxerrors.MalformedAttributes, "unknown vertical alignment %q", v)
	}
}

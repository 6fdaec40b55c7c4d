package tmx

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an ARGB color as written by Tiled.
type Color struct {
	Alpha uint8
	Red   uint8
	Green uint8
	Blue  uint8
}

// ParseColor parses "#RRGGBB" or "#AARRGGBB". The leading '#' is optional.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	c := Color{
		Red:   uint8(v >> 16),
		Green: uint8(v >> 8),
		Blue:  uint8(v),
		Alpha: 0xff,
	}
	if len(hex) == 8 {
		c.Alpha = uint8(v >> 24)
	}
	return c, nil
}

// String formats the color as "#AARRGGBB".
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.Alpha, c.Red, c.Green, c.Blue)
}

// RGBA implements image/color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(c.Alpha)
	r = uint32(c.Red) * a / 0xff
	g = uint32(c.Green) * a / 0xff
	b = uint32(c.Blue) * a / 0xff
	r |= r << 8
	g |= g << 8
	b |= b << 8
	a |= a << 8
	return r, g, b, a
}

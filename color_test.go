package tmx

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{in: "#ff8000", want: Color{Alpha: 0xff, Red: 0xff, Green: 0x80}},
		{in: "ff8000", want: Color{Alpha: 0xff, Red: 0xff, Green: 0x80}},
		{in: "#40102030", want: Color{Alpha: 0x40, Red: 0x10, Green: 0x20, Blue: 0x30}},
		{in: "#FFFFFF", want: Color{Alpha: 0xff, Red: 0xff, Green: 0xff, Blue: 0xff}},
		{in: "", wantErr: true},
		{in: "#fff", wantErr: true},
		{in: "#gg0000", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if !tt.wantErr && got != tt.want {
			t.Fatalf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestColorString(t *testing.T) {
	c := Color{Alpha: 0x80, Red: 0x0a, Green: 0xb0, Blue: 0xff}
	if got := c.String(); got != "#800ab0ff" {
		t.Fatalf("String() = %q, want #800ab0ff", got)
	}
}

func TestColorRGBA(t *testing.T) {
	var c color.Color = Color{Alpha: 0xff, Red: 0xff}
	r, g, b, a := c.RGBA()
	if r != 0xffff || g != 0 || b != 0 || a != 0xffff {
		t.Fatalf("RGBA() = %x %x %x %x, want ffff 0 0 ffff", r, g, b, a)
	}
	if got := color.NRGBAModel.Convert(Color{Alpha: 0, Red: 0xff}).(color.NRGBA); got.A != 0 {
		t.Fatalf("transparent color alpha = %d, want 0", got.A)
	}
}

func TestNewLayerTile(t *testing.T) {
	tests := []struct {
		raw  uint32
		want LayerTile
	}{
		{raw: 0, want: LayerTile{}},
		{raw: 42, want: LayerTile{Gid: 42}},
		{raw: 0x80000001, want: LayerTile{Gid: 1, FlipH: true}},
		{raw: 0x40000002, want: LayerTile{Gid: 2, FlipV: true}},
		{raw: 0x20000003, want: LayerTile{Gid: 3, FlipD: true}},
		{raw: 0x10000004, want: LayerTile{Gid: 4}},
		{raw: 0xe0000005, want: LayerTile{Gid: 5, FlipH: true, FlipV: true, FlipD: true}},
	}
	for _, tt := range tests {
		if got := newLayerTile(tt.raw); got != tt.want {
			t.Fatalf("newLayerTile(%#x) = %+v, want %+v", tt.raw, got, tt.want)
		}
	}
}

package tmx

import (
	"reflect"
	"strconv"
	"strings"
	"testing"

	tmxerrors "github.com/jacoelho/tmx/errors"
)

func objectDoc(objects string) string {
	return mapOpen + `><objectgroup name="things">` + objects + `</objectgroup></map>`
}

func parseObject(t *testing.T, object string) *Object {
	t.Helper()
	m := mustParse(t, objectDoc(object))
	if len(m.ObjectGroups) != 1 || len(m.ObjectGroups[0].Objects) != 1 {
		t.Fatalf("object groups = %+v, want one object", m.ObjectGroups)
	}
	return m.ObjectGroups[0].Objects[0]
}

func TestObjectDefaults(t *testing.T) {
	o := parseObject(t, `<object x="1.5" y="2"/>`)
	want := &Object{
		Shape:      Rect{},
		Properties: Properties{},
		Gid:        EmptyGid,
		X:          1.5,
		Y:          2,
		Visible:    true,
	}
	if !reflect.DeepEqual(o, want) {
		t.Fatalf("object = %+v, want %+v", o, want)
	}
}

func TestObjectAttributes(t *testing.T) {
	o := parseObject(t, `<object id="7" gid="1073741829" name="crate" class="box" x="10" y="20" width="32" height="16" rotation="45" visible="0">
<properties><property name="weight" type="float" value="2.5"/></properties>
</object>`)
	if o.ID != 7 || o.Name != "crate" || o.Type != "box" || o.Rotation != 45 || o.Visible {
		t.Fatalf("object = %+v", o)
	}
	if o.Gid != 5 {
		t.Fatalf("Gid = %d, want 5 with flip bits masked", o.Gid)
	}
	if o.FlipH || !o.FlipV || o.FlipD {
		t.Fatalf("flips = %v/%v/%v, want vertical only", o.FlipH, o.FlipV, o.FlipD)
	}
	if o.Shape != (Rect{Width: 32, Height: 16}) {
		t.Fatalf("Shape = %+v, want rect 32x16", o.Shape)
	}
	if o.Properties["weight"] != FloatValue(2.5) {
		t.Fatalf("Properties = %v", o.Properties)
	}
}

func TestObjectGidFlips(t *testing.T) {
	tests := []struct {
		gid                 uint32
		want                Gid
		flipH, flipV, flipD bool
	}{
		{gid: 3, want: 3},
		{gid: flipHorizontal | 3, want: 3, flipH: true},
		{gid: flipDiagonal | 12, want: 12, flipD: true},
		{gid: flipHorizontal | flipVertical | flipDiagonal | 1, want: 1, flipH: true, flipV: true, flipD: true},
		{gid: rotateHex120 | 8, want: 8},
	}
	for _, tt := range tests {
		t.Run(strconv.FormatUint(uint64(tt.gid), 10), func(t *testing.T) {
			o := parseObject(t, `<object gid="`+strconv.FormatUint(uint64(tt.gid), 10)+`" x="0" y="0"/>`)
			if o.Gid != tt.want || o.FlipH != tt.flipH || o.FlipV != tt.flipV || o.FlipD != tt.flipD {
				t.Fatalf("object = gid %d flips %v/%v/%v, want gid %d flips %v/%v/%v",
					o.Gid, o.FlipH, o.FlipV, o.FlipD, tt.want, tt.flipH, tt.flipV, tt.flipD)
			}
		})
	}
}

func TestObjectRequiresPosition(t *testing.T) {
	_, err := ParseReader(strings.NewReader(objectDoc(`<object id="1" x="3"/>`)), "")
	if !tmxerrors.IsKind(err, tmxerrors.MalformedAttributes) {
		t.Fatalf("error = %v, want malformed attributes", err)
	}
	if !strings.Contains(err.Error(), "objects must have an x and a y number") {
		t.Fatalf("error = %q, want the object message", err.Error())
	}
}

func TestObjectShapes(t *testing.T) {
	tests := []struct {
		name   string
		object string
		want   Shape
	}{
		{
			name:   "ellipse",
			object: `<object x="0" y="0" width="8" height="4"><ellipse/></object>`,
			want:   Ellipse{Width: 8, Height: 4},
		},
		{
			name:   "point",
			object: `<object x="3" y="9"><point/></object>`,
			want:   Point{X: 3, Y: 9},
		},
		{
			name:   "polyline",
			object: `<object x="0" y="0"><polyline points="0,0 10,0 10,10"/></object>`,
			want:   Polyline{Points: []Vertex{{0, 0}, {10, 0}, {10, 10}}},
		},
		{
			name:   "polygon",
			object: `<object x="0" y="0"><polygon points="-1.5,2 3,-4.25"/></object>`,
			want:   Polygon{Points: []Vertex{{-1.5, 2}, {3, -4.25}}},
		},
		{
			name:   "unknown child keeps rect",
			object: `<object x="0" y="0" width="2" height="3"><capsule/></object>`,
			want:   Rect{Width: 2, Height: 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := parseObject(t, tt.object)
			if !reflect.DeepEqual(o.Shape, tt.want) {
				t.Fatalf("Shape = %+v, want %+v", o.Shape, tt.want)
			}
		})
	}
}

func TestObjectMoreThanOneShape(t *testing.T) {
	got := parseKind(t, objectDoc(`<object x="0" y="0"><ellipse/><point/></object>`))
	if got != tmxerrors.Other {
		t.Fatalf("error kind = %s, want other", got)
	}
}

func TestParsePoints(t *testing.T) {
	tests := []struct {
		in      string
		want    []Vertex
		wantErr bool
	}{
		{in: "0,0 10,0 10,10", want: []Vertex{{0, 0}, {10, 0}, {10, 10}}},
		{in: "  1,2\n3,4 ", want: []Vertex{{1, 2}, {3, 4}}},
		{in: "0,0 10 10,10", wantErr: true},
		{in: "0,0,0", wantErr: true},
		{in: "a,b", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parsePoints(tt.in)
		if tt.wantErr {
			if !tmxerrors.IsKind(err, tmxerrors.MalformedAttributes) {
				t.Fatalf("parsePoints(%q) error = %v, want malformed attributes", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parsePoints(%q) error = %v", tt.in, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("parsePoints(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPolylineMalformedPoints(t *testing.T) {
	got := parseKind(t, objectDoc(`<object x="0" y="0"><polyline points="0,0 10"/></object>`))
	if got != tmxerrors.MalformedAttributes {
		t.Fatalf("error kind = %s, want malformed attributes", got)
	}
	got = parseKind(t, objectDoc(`<object x="0" y="0"><polygon/></object>`))
	if got != tmxerrors.MalformedAttributes {
		t.Fatalf("missing points error kind = %s, want malformed attributes", got)
	}
}

func TestTextDefaults(t *testing.T) {
	o := parseObject(t, `<object x="0" y="0" width="50" height="10"><text>Hello</text></object>`)
	want := Text{
		FontFamily: "sans-serif",
		Contents:   "Hello",
		PixelSize:  16,
		Color:      Color{Alpha: 0xff},
		HAlign:     HAlignLeft,
		VAlign:     VAlignTop,
		Kerning:    true,
	}
	if o.Shape != want {
		t.Fatalf("Shape = %+v, want %+v", o.Shape, want)
	}
}

func TestTextAttributes(t *testing.T) {
	o := parseObject(t, `<object x="0" y="0"><text fontfamily="Serif" pixelsize="24" wrap="1" color="#ff0000" bold="1" italic="1" underline="1" strikeout="1" kerning="0" halign="justify" valign="bottom">Fire &amp; ice</text></object>`)
	want := Text{
		FontFamily: "Serif",
		Contents:   "Fire & ice",
		PixelSize:  24,
		Color:      Color{Alpha: 0xff, Red: 0xff},
		HAlign:     HAlignJustify,
		VAlign:     VAlignBottom,
		Wrap:       true,
		Bold:       true,
		Italic:     true,
		Underline:  true,
		Strikeout:  true,
		Kerning:    false,
	}
	if o.Shape != want {
		t.Fatalf("Shape = %+v, want %+v", o.Shape, want)
	}
}

func TestTextFlags(t *testing.T) {
	tests := []struct {
		attrs   string
		kerning bool
		bold    bool
	}{
		{attrs: ``, kerning: true},
		{attrs: ` kerning="1"`, kerning: true},
		{attrs: ` kerning="2"`, kerning: true},
		{attrs: ` kerning="0"`, kerning: false},
		{attrs: ` bold="0"`, kerning: true},
		{attrs: ` bold="2"`, kerning: true},
		{attrs: ` bold="1"`, kerning: true, bold: true},
	}
	for _, tt := range tests {
		o := parseObject(t, `<object x="0" y="0"><text`+tt.attrs+`/></object>`)
		text := o.Shape.(Text)
		if text.Kerning != tt.kerning || text.Bold != tt.bold {
			t.Fatalf("text%s kerning/bold = %v/%v, want %v/%v", tt.attrs, text.Kerning, text.Bold, tt.kerning, tt.bold)
		}
		if text.Contents != "" {
			t.Fatalf("empty text contents = %q, want empty", text.Contents)
		}
	}
}

func TestTextUnknownAlignment(t *testing.T) {
	for _, attrs := range []string{`halign="middle"`, `valign="left"`} {
		got := parseKind(t, objectDoc(`<object x="0" y="0"><text `+attrs+`>x</text></object>`))
		if got != tmxerrors.MalformedAttributes {
			t.Fatalf("%s error kind = %s, want malformed attributes", attrs, got)
		}
	}
}

func TestObjectGroupAttributes(t *testing.T) {
	m := mustParse(t, mapOpen+`><objectgroup name="zones" color="#00ff00" opacity="0.5" visible="0"><object x="0" y="0"/><object x="1" y="1"/></objectgroup></map>`)
	g := m.ObjectGroups[0]
	if g.Name != "zones" || g.Opacity != 0.5 || g.Visible || len(g.Objects) != 2 {
		t.Fatalf("group = %+v", g)
	}
	if g.Color == nil || *g.Color != (Color{Alpha: 0xff, Green: 0xff}) {
		t.Fatalf("Color = %v, want #ff00ff00", g.Color)
	}

	d := mustParse(t, mapOpen+`><objectgroup/></map>`).ObjectGroups[0]
	if d.Opacity != 1 || !d.Visible || d.Color != nil || d.Name != "" {
		t.Fatalf("default group = %+v", d)
	}
}

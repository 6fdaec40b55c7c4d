package tmx

import (
	tmxerrors "github.com/jacoelho/tmx/errors"
	"github.com/jacoelho/tmx/internal/attr"
	"github.com/jacoelho/tmx/internal/dispatch"
	"github.com/jacoelho/tmx/internal/xmlevent"
)

// Layer is a grid of tile references.
type Layer struct {
	Properties Properties
	Name       string
	// Tiles holds Width*Height cells in row-major order. It is empty for
	// infinite maps, which store their cells in Chunks.
	Tiles      []LayerTile
	Chunks     []Chunk
	Width      uint32
	Height     uint32
	Opacity    float32
	OffsetX    float32
	OffsetY    float32
	LayerIndex uint32
	Visible    bool
}

// Chunk is a rectangular block of cells of an infinite map layer.
type Chunk struct {
	Tiles  []LayerTile
	X      int
	Y      int
	Width  uint32
	Height uint32
}

// TileAt returns the cell at column x and row y of a finite layer.
func (l *Layer) TileAt(x, y int) (LayerTile, bool) {
	if x < 0 || y < 0 || x >= int(l.Width) || y >= int(l.Height) {
		return LayerTile{}, false
	}
	i := y*int(l.Width) + x
	if i >= len(l.Tiles) {
		return LayerTile{}, false
	}
	return l.Tiles[i], true
}

func (p *parser) parseLayer(list []xmlevent.Attr, index uint32, infinite bool) (*Layer, error) {
	l := &Layer{Opacity: 1, Visible: true, LayerIndex: index, Properties: Properties{}}
	err := attr.Extract(list, "layer must have a width and height with correct types",
		attr.Optional("name", &l.Name, attr.String),
		attr.Optional("opacity", &l.Opacity, attr.Float32),
		attr.Optional("visible", &l.Visible, attr.IntFlag),
		attr.Optional("offsetx", &l.OffsetX, attr.Float32),
		attr.Optional("offsety", &l.OffsetY, attr.Float32),
		attr.Required("width", &l.Width, attr.Uint32),
		attr.Required("height", &l.Height, attr.Uint32),
	)
	if err != nil {
		return nil, err
	}

	err = p.w.Walk("layer", dispatch.Handlers{
		"data": func(list []xmlevent.Attr) error {
			tiles, chunks, err := p.parseData(list, l.Width, l.Height, infinite)
			if err != nil {
				return err
			}
			l.Tiles = tiles
			l.Chunks = chunks
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

func (p *parser) parseData(list []xmlevent.Attr, width, height uint32, infinite bool) ([]LayerTile, []Chunk, error) {
	var encoding, compression string
	err := attr.Extract(list, "data has malformed attributes",
		attr.Optional("encoding", &encoding, attr.String),
		attr.Optional("compression", &compression, attr.String),
	)
	if err != nil {
		return nil, nil, err
	}

	var (
		tiles  []LayerTile
		chunks []Chunk
	)
	text, err := p.w.WalkText("data", dispatch.Handlers{
		"tile": p.tileHandler(&tiles),
		"chunk": func(list []xmlevent.Attr) error {
			c, err := p.parseChunk(list, encoding, compression)
			if err != nil {
				return err
			}
			chunks = append(chunks, c)
			return nil
		},
	})
	if err != nil {
		return nil, nil, err
	}
	if infinite {
		return nil, chunks, nil
	}
	if encoding != "" {
		tiles, err = decodeTiles(text, encoding, compression, int(width)*int(height))
		if err != nil {
			return nil, nil, err
		}
	}
	if want := int(width) * int(height); len(tiles) != want {
		return nil, nil, tmxerrors.Newf(tmxerrors.InvalidTileData, "layer data has %d tiles, want %d", len(tiles), want)
	}
	return tiles, nil, nil
}

func (p *parser) parseChunk(list []xmlevent.Attr, encoding, compression string) (Chunk, error) {
	var c Chunk
	err := attr.Extract(list, "chunk must have x, y, width and height with correct types",
		attr.Required("x", &c.X, attr.Int),
		attr.Required("y", &c.Y, attr.Int),
		attr.Required("width", &c.Width, attr.Uint32),
		attr.Required("height", &c.Height, attr.Uint32),
	)
	if err != nil {
		return Chunk{}, err
	}
	text, err := p.w.WalkText("chunk", dispatch.Handlers{"tile": p.tileHandler(&c.Tiles)})
	if err != nil {
		return Chunk{}, err
	}
	if encoding != "" {
		c.Tiles, err = decodeTiles(text, encoding, compression, int(c.Width)*int(c.Height))
		if err != nil {
			return Chunk{}, err
		}
	}
	if want := int(c.Width) * int(c.Height); len(c.Tiles) != want {
		return Chunk{}, tmxerrors.Newf(tmxerrors.InvalidTileData, "chunk at %d,%d has %d tiles, want %d", c.X, c.Y, len(c.Tiles), want)
	}
	return c, nil
}

// tileHandler reads an unencoded <tile gid="..."/> cell.
func (p *parser) tileHandler(tiles *[]LayerTile) dispatch.Handler {
	return func(list []xmlevent.Attr) error {
		var raw uint32
		if err := attr.Extract(list, "tile must have a gid with correct type", attr.Optional("gid", &raw, attr.Uint32)); err != nil {
			return err
		}
		*tiles = append(*tiles, newLayerTile(raw))
		return p.w.Walk("tile", nil)
	}
}

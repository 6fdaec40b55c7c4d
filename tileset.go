package tmx

import (
	"fmt"

	tmxerrors "github.com/jacoelho/tmx/errors"
	"github.com/jacoelho/tmx/internal/attr"
	"github.com/jacoelho/tmx/internal/dispatch"
	"github.com/jacoelho/tmx/internal/xmlevent"
)

// Tileset is a collection of tiles claiming GIDs [FirstGID, FirstGID+TileCount).
type Tileset struct {
	// Image is the tileset atlas, nil for image-collection tilesets.
	Image      *Image
	Properties Properties
	Name       string
	// Source is the external .tsx reference, empty for inline tilesets.
	Source     string
	Tiles      []*Tile
	FirstGID   Gid
	TileWidth  uint32
	TileHeight uint32
	Spacing    uint32
	Margin     uint32
	TileCount  uint32
	Columns    uint32
}

// Tile is per-tile data of a tileset. Tiles without custom data are not listed.
type Tile struct {
	Image      *Image
	Properties Properties
	// Collision holds the tile's collision shapes. It has no layer index.
	Collision *ObjectGroup
	Type      string
	Animation []Frame
	ID        uint32
}

// Frame is one step of a tile animation.
type Frame struct {
	TileID   uint32
	Duration uint32
}

// ContainsTile reports whether gid falls in the tileset's range.
func (t *Tileset) ContainsTile(gid Gid) bool {
	return gid >= t.FirstGID && uint64(gid) < uint64(t.FirstGID)+uint64(t.TileCount)
}

// LocalID converts gid to an id local to the tileset.
func (t *Tileset) LocalID(gid Gid) (uint32, bool) {
	if !t.ContainsTile(gid) {
		return 0, false
	}
	return uint32(gid - t.FirstGID), true
}

// Tile returns the tile data for a local id, or nil.
func (t *Tileset) Tile(id uint32) *Tile {
	for _, tile := range t.Tiles {
		if tile.ID == id {
			return tile
		}
	}
	return nil
}

func (p *parser) parseTileset(list []xmlevent.Attr) (*Tileset, error) {
	var (
		first  Gid
		source string
	)
	err := attr.Extract(list, "tileset must have a firstgid with correct type",
		attr.Optional("source", &source, attr.String),
		attr.Required("firstgid", &first, gidAttr),
	)
	if err != nil {
		return nil, err
	}
	if source == "" {
		return p.parseTilesetBody(list, first, "")
	}
	if err := p.w.Walk("tileset", nil); err != nil {
		return nil, err
	}
	return p.parseExternalTileset(first, source)
}

func (p *parser) parseExternalTileset(first Gid, source string) (ts *Tileset, err error) {
	sub, closer, err := p.openRelative(source)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := closer.Close(); closeErr != nil && err == nil {
			ts, err = nil, tmxerrors.Wrap(tmxerrors.Other, closeErr, fmt.Sprintf("close tileset file %s", sub.source))
		}
	}()
	list, err := sub.w.Find("tileset")
	if err != nil {
		return nil, err
	}
	return sub.parseTilesetBody(list, first, source)
}

func (p *parser) parseTilesetBody(list []xmlevent.Attr, first Gid, source string) (*Tileset, error) {
	ts := &Tileset{FirstGID: first, Source: source, Properties: Properties{}}
	err := attr.Extract(list, "tileset must have a name, tile width and height with correct types",
		attr.Optional("spacing", &ts.Spacing, attr.Uint32),
		attr.Optional("margin", &ts.Margin, attr.Uint32),
		attr.Optional("tilecount", &ts.TileCount, attr.Uint32),
		attr.Optional("columns", &ts.Columns, attr.Uint32),
		attr.Required("name", &ts.Name, attr.String),
		attr.Required("tilewidth", &ts.TileWidth, attr.Uint32),
		attr.Required("tileheight", &ts.TileHeight, attr.Uint32),
	)
	if err != nil {
		return nil, err
	}

	err = p.w.Walk("tileset", dispatch.Handlers{
		"image": func(list []xmlevent.Attr) error {
			img, err := p.parseImage(list)
			if err != nil {
				return err
			}
			ts.Image = img
			return nil
		},
		"tile": func(list []xmlevent.Attr) error {
			tile, err := p.parseTile(list)
			if err != nil {
				return err
			}
			ts.Tiles = append(ts.Tiles, tile)
			return nil
		},
		"properties": func([]xmlevent.Attr) error {
			props, err := p.parseProperties()
			if err != nil {
				return err
			}
			ts.Properties = props
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	if ts.TileCount == 0 {
		ts.TileCount = ts.derivedTileCount()
	}
	return ts, nil
}

// derivedTileCount computes the tile count of tilesets written without a
// tilecount attribute.
func (t *Tileset) derivedTileCount() uint32 {
	if t.Image == nil {
		return uint32(len(t.Tiles))
	}
	cols := gridCells(t.Image.Width, t.TileWidth, t.Margin, t.Spacing)
	rows := gridCells(t.Image.Height, t.TileHeight, t.Margin, t.Spacing)
	if t.Columns == 0 {
		t.Columns = cols
	}
	return cols * rows
}

func gridCells(size, tile, margin, spacing uint32) uint32 {
	if tile == 0 || size < 2*margin {
		return 0
	}
	return (size - 2*margin + spacing) / (tile + spacing)
}

func (p *parser) parseTile(list []xmlevent.Attr) (*Tile, error) {
	tile := &Tile{Properties: Properties{}}
	var class string
	err := attr.Extract(list, "tile must have an id with correct type",
		attr.Optional("type", &tile.Type, attr.String),
		attr.Optional("class", &class, attr.String),
		attr.Required("id", &tile.ID, attr.Uint32),
	)
	if err != nil {
		return nil, err
	}
	if tile.Type == "" {
		tile.Type = class
	}

	err = p.w.Walk("tile", dispatch.Handlers{
		"image": func(list []xmlevent.Attr) error {
			img, err := p.parseImage(list)
			if err != nil {
				return err
			}
			tile.Image = img
			return nil
		},
		"properties": func([]xmlevent.Attr) error {
			props, err := p.parseProperties()
			if err != nil {
				return err
			}
			tile.Properties = props
			return nil
		},
		"objectgroup": func(list []xmlevent.Attr) error {
			g, err := p.parseObjectGroup(list, nil)
			if err != nil {
				return err
			}
			tile.Collision = g
			return nil
		},
		"animation": func([]xmlevent.Attr) error {
			frames, err := p.parseAnimation()
			if err != nil {
				return err
			}
			tile.Animation = frames
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return tile, nil
}

func (p *parser) parseAnimation() ([]Frame, error) {
	var frames []Frame
	err := p.w.Walk("animation", dispatch.Handlers{
		"frame": func(list []xmlevent.Attr) error {
			var f Frame
			err := attr.Extract(list, "frame must have a tileid and duration with correct types",
				attr.Required("tileid", &f.TileID, attr.Uint32),
				attr.Required("duration", &f.Duration, attr.Uint32),
			)
			if err != nil {
				return err
			}
			frames = append(frames, f)
			return p.w.Walk("frame", nil)
		},
	})
	if err != nil {
		return nil, err
	}
	return frames, nil
}

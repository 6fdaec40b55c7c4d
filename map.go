package tmx

import (
	tmxerrors "github.com/jacoelho/tmx/errors"
	"github.com/jacoelho/tmx/internal/attr"
	"github.com/jacoelho/tmx/internal/dispatch"
	"github.com/jacoelho/tmx/internal/xmlevent"
)

// Map is a parsed TMX map. It owns every entity reachable from it.
type Map struct {
	// Version is the TMX format version the map was saved with.
	Version string
	// Orientation is the map projection.
	Orientation Orientation
	// Width and Height are the map size in tiles.
	Width  uint32
	Height uint32
	// TileWidth and TileHeight are the grid cell size in pixels.
	TileWidth  uint32
	TileHeight uint32
	// Tilesets are kept in document order, which Tiled writes by ascending first GID.
	Tilesets     []*Tileset
	Layers       []*Layer
	ImageLayers  []*ImageLayer
	ObjectGroups []*ObjectGroup
	Properties   Properties
	// BackgroundColor is nil when the map does not set one.
	BackgroundColor *Color
	Infinite        bool
	// Source is the path the map was loaded from, empty for bare streams.
	Source string
}

func (p *parser) parseMap(list []xmlevent.Attr) (*Map, error) {
	m := &Map{Source: p.source, Properties: Properties{}}
	err := attr.Extract(list, "map must have a version, width and height with correct types",
		attr.Optional("backgroundcolor", &m.BackgroundColor, attr.Ptr(colorAttr)),
		attr.Optional("infinite", &m.Infinite, attr.Literal("1")),
		attr.Required("version", &m.Version, attr.String),
		attr.Required("orientation", &m.Orientation, orientationAttr),
		attr.Required("width", &m.Width, attr.Uint32),
		attr.Required("height", &m.Height, attr.Uint32),
		attr.Required("tilewidth", &m.TileWidth, attr.Uint32),
		attr.Required("tileheight", &m.TileHeight, attr.Uint32),
	)
	if err != nil {
		return nil, err
	}

	// layerIndex is the z-order shared by every layer kind.
	var layerIndex uint32
	err = p.w.Walk("map", dispatch.Handlers{
		"tileset": func(list []xmlevent.Attr) error {
			ts, err := p.parseTileset(list)
			if err != nil {
				return err
			}
			m.Tilesets = append(m.Tilesets, ts)
			return nil
		},
		"layer": func(list []xmlevent.Attr) error {
			l, err := p.parseLayer(list, layerIndex, m.Infinite)
			if err != nil {
				return err
			}
			m.Layers = append(m.Layers, l)
			layerIndex++
			return nil
		},
		"imagelayer": func(list []xmlevent.Attr) error {
			l, err := p.parseImageLayer(list, layerIndex)
			if err != nil {
				return err
			}
			m.ImageLayers = append(m.ImageLayers, l)
			layerIndex++
			return nil
		},
		"properties": func([]xmlevent.Attr) error {
			props, err := p.parseProperties()
			if err != nil {
				return err
			}
			m.Properties = props
			return nil
		},
		"objectgroup": func(list []xmlevent.Attr) error {
			index := layerIndex
			g, err := p.parseObjectGroup(list, &index)
			if err != nil {
				return err
			}
			m.ObjectGroups = append(m.ObjectGroups, g)
			layerIndex++
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// TilesetByGID returns the first tileset, in stored order, whose GID range
// contains gid, or nil when no tileset claims it.
func (m *Map) TilesetByGID(gid Gid) *Tileset {
	for _, ts := range m.Tilesets {
		if ts.ContainsTile(gid) {
			return ts
		}
	}
	return nil
}

// Orientation is the projection of a map.
type Orientation uint8

const (
	Orthogonal Orientation = iota
	Isometric
	Staggered
	Hexagonal
)

// ParseOrientation parses the orientation attribute of a map.
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "orthogonal":
		return Orthogonal, nil
	case "isometric":
		return Isometric, nil
	case "staggered":
		return Staggered, nil
	case "hexagonal":
		return Hexagonal, nil
	default:
		return Orthogonal, tmxerrors.Newf(tmxerrors.ParseValue, "unknown orientation %q", s)
	}
}

// String returns the TMX spelling of the orientation.
func (o Orientation) String() string {
	switch o {
	case Orthogonal:
		return "orthogonal"
	case Isometric:
		return "isometric"
	case Staggered:
		return "staggered"
	case Hexagonal:
		return "hexagonal"
	default:
		return "unknown"
	}
}

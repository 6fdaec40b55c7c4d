package tmx

// Gid is a global tile id. One id space is shared by every tileset of a map.
type Gid uint32

// EmptyGid marks the absence of a tile.
const EmptyGid Gid = 0

const (
	flipHorizontal uint32 = 0x80000000
	flipVertical   uint32 = 0x40000000
	flipDiagonal   uint32 = 0x20000000
	rotateHex120   uint32 = 0x10000000
	flipMask              = flipHorizontal | flipVertical | flipDiagonal | rotateHex120
)

// LayerTile is one cell of a tile layer.
type LayerTile struct {
	Gid   Gid
	FlipH bool
	FlipV bool
	FlipD bool
}

func newLayerTile(raw uint32) LayerTile {
	return LayerTile{
		Gid:   Gid(raw &^ flipMask),
		FlipH: raw&flipHorizontal != 0,
		FlipV: raw&flipVertical != 0,
		FlipD: raw&flipDiagonal != 0,
	}
}

// IsEmpty reports whether the cell holds no tile.
func (t LayerTile) IsEmpty() bool {
	return t.Gid == EmptyGid
}

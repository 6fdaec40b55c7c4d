package tmx

import "github.com/paulmach/orb"

// Geometry returns the object's shape in map pixel coordinates. Rotation is
// not applied.
func (o *Object) Geometry() orb.Geometry {
	origin := orb.Point{float64(o.X), float64(o.Y)}
	switch s := o.Shape.(type) {
	case Rect:
		return box(origin, s.Width, s.Height)
	case Ellipse:
		return box(origin, s.Width, s.Height)
	case Text:
		return box(origin, o.Width, o.Height)
	case Point:
		return orb.Point{float64(s.X), float64(s.Y)}
	case Polyline:
		return orb.LineString(offset(origin, s.Points))
	case Polygon:
		ring := orb.Ring(offset(origin, s.Points))
		if len(ring) > 0 && !ring.Closed() {
			ring = append(ring, ring[0])
		}
		return orb.Polygon{ring}
	default:
		return origin
	}
}

func box(origin orb.Point, w, h float32) orb.Bound {
	return orb.Bound{
		Min: origin,
		Max: orb.Point{origin[0] + float64(w), origin[1] + float64(h)},
	}
}

func offset(origin orb.Point, points []Vertex) []orb.Point {
	out := make([]orb.Point, len(points))
	for i, v := range points {
		out[i] = orb.Point{origin[0] + float64(v.X), origin[1] + float64(v.Y)}
	}
	return out
}

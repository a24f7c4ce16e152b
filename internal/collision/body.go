package collision

import "math"

// Body is the square footprint of an actor on the tile grid.
type Body struct {
	X, Y   float64
	Radius float64 // half the side length
}

// Extent returns the corners of the footprint.
func (b Body) Extent() (minX, minY, maxX, maxY float64) {
	return b.X - b.Radius, b.Y - b.Radius, b.X + b.Radius, b.Y + b.Radius
}

// EachTile calls fn for every tile the footprint touches, row by row. It
// stops early and returns false as soon as fn does.
func (b Body) EachTile(fn func(tileX, tileY int) bool) bool {
	minX, minY, maxX, maxY := b.Extent()
	x0, y0 := int(math.Floor(minX)), int(math.Floor(minY))
	x1, y1 := int(math.Floor(maxX)), int(math.Floor(maxY))
	for ty := y0; ty <= y1; ty++ {
		for tx := x0; tx <= x1; tx++ {
			if !fn(tx, ty) {
				return false
			}
		}
	}
	return true
}

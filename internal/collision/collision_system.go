package collision

import (
	"math"
)

// TileChecker interface for checking if tiles block movement and sight
type TileChecker interface {
	IsTileBlocking(tileX, tileY int) bool
	GetWorldBounds() (width, height int)
}

// WallTyper is implemented by grids that distinguish wall variants.
type WallTyper interface {
	WallTypeAt(tileX, tileY int) byte
}

// DefaultSightStep is the sampling interval for line-of-sight checks, in tiles.
const DefaultSightStep = 0.12

// CollisionSystem answers every "is this tile solid" question the
// simulation and renderer ask: wall rays, sight lines and body movement.
type CollisionSystem struct {
	tileChecker TileChecker
	sightStep   float64
}

// NewCollisionSystem creates a new collision system
func NewCollisionSystem(tileChecker TileChecker) *CollisionSystem {
	return &CollisionSystem{
		tileChecker: tileChecker,
		sightStep:   DefaultSightStep,
	}
}

// UpdateTileChecker updates the tile checker (used when switching levels)
func (cs *CollisionSystem) UpdateTileChecker(tileChecker TileChecker) {
	cs.tileChecker = tileChecker
}

// SetSightStep overrides the line-of-sight sampling interval.
func (cs *CollisionSystem) SetSightStep(step float64) {
	if step > 0 {
		cs.sightStep = step
	}
}

// isSolid treats everything outside the grid as wall.
func (cs *CollisionSystem) isSolid(tileX, tileY int) bool {
	width, height := cs.tileChecker.GetWorldBounds()
	if tileX < 0 || tileX >= width || tileY < 0 || tileY >= height {
		return true
	}
	return cs.tileChecker.IsTileBlocking(tileX, tileY)
}

// CanOccupy reports whether a square body of the given radius centred at
// (x, y) overlaps no solid tile.
func (cs *CollisionSystem) CanOccupy(x, y, radius float64) bool {
	return Body{X: x, Y: y, Radius: radius}.EachTile(func(tx, ty int) bool {
		return !cs.isSolid(tx, ty)
	})
}

// TryMove applies a displacement one axis at a time so a body slides along
// walls instead of sticking to them. It returns the resulting position.
func (cs *CollisionSystem) TryMove(x, y, dx, dy, radius float64) (float64, float64) {
	if dx != 0 && cs.CanOccupy(x+dx, y, radius) {
		x += dx
	}
	if dy != 0 && cs.CanOccupy(x, y+dy, radius) {
		y += dy
	}
	return x, y
}

// CheckLineOfSight samples the segment between two points at a fixed
// interval and fails on the first solid tile.
func (cs *CollisionSystem) CheckLineOfSight(x1, y1, x2, y2 float64) bool {
	dist := math.Hypot(x2-x1, y2-y1)
	steps := int(math.Ceil(dist / cs.sightStep))
	if steps < 1 {
		steps = 1
	}
	dx := (x2 - x1) / float64(steps)
	dy := (y2 - y1) / float64(steps)

	for i := 0; i <= steps; i++ {
		checkX := x1 + dx*float64(i)
		checkY := y1 + dy*float64(i)
		if cs.isSolid(int(math.Floor(checkX)), int(math.Floor(checkY))) {
			return false
		}
	}
	return true
}

package render

import (
	"math"

	"hellgrid/internal/game"
	"hellgrid/internal/world"
)

const minimapMargin = 8

// composeMinimap lays out the tiles within MinimapRadius of the player in
// the top-right corner. Enemies are only marked when alive; pickups only
// while active.
func composeMinimap(s *game.GameSession, screenW int) Minimap {
	cfg := s.Config()
	lvl := s.Level()
	p := s.Player()

	cell := float64(cfg.Graphics.MinimapCell)
	r := cfg.Graphics.MinimapRadius
	span := float64(2*r+1) * cell
	originX := float64(screenW) - span - minimapMargin
	originY := float64(minimapMargin)

	ptx, pty := int(math.Floor(p.X)), int(math.Floor(p.Y))
	minX, minY := ptx-r, pty-r

	mm := Minimap{X: originX, Y: originY, Size: span}
	toScreen := func(wx, wy float64) (float64, float64) {
		return originX + (wx-float64(minX))*cell, originY + (wy-float64(minY))*cell
	}
	inView := func(wx, wy float64) bool {
		tx, ty := int(math.Floor(wx)), int(math.Floor(wy))
		return tx >= minX && tx <= ptx+r && ty >= minY && ty <= pty+r
	}

	for ty := minY; ty <= pty+r; ty++ {
		for tx := minX; tx <= ptx+r; tx++ {
			if tx < 0 || ty < 0 || tx >= lvl.Width || ty >= lvl.Height {
				continue
			}
			c := minimapFloor
			if world.IsWallTile(lvl.TileAt(tx, ty)) {
				c = minimapWall
			}
			x, y := toScreen(float64(tx), float64(ty))
			mm.Cells = append(mm.Cells, Rect{X: x, Y: y, W: cell, H: cell, Color: c})
		}
	}

	marker := func(wx, wy float64, size float64, c Rect) {
		if !inView(wx, wy) {
			return
		}
		x, y := toScreen(wx, wy)
		c.X, c.Y, c.W, c.H = x-size/2, y-size/2, size, size
		mm.Markers = append(mm.Markers, c)
	}

	if lvl.HasExit {
		marker(lvl.Exit.X, lvl.Exit.Y, cell, Rect{Color: minimapExit})
	}
	for _, pk := range s.Pickups() {
		if !pk.Active {
			continue
		}
		// Kill drops stand out from pickups the level started with.
		c := minimapItem
		if pk.Dropped {
			c = minimapDrop
		}
		marker(pk.X, pk.Y, cell/2, Rect{Color: c})
	}
	for _, m := range s.Monsters() {
		if m.IsAlive() {
			marker(m.X, m.Y, cell*0.6, Rect{Color: minimapEnemy})
		}
	}
	marker(p.X, p.Y, cell*0.6, Rect{Color: minimapSelf})

	cx, cy := toScreen(p.X, p.Y)
	fx, fy := p.Facing()
	mm.Centre = [2]float64{cx, cy}
	mm.Facing = [2]float64{cx + fx*cell*1.5, cy + fy*cell*1.5}
	return mm
}

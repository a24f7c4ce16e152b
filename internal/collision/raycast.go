package collision

import "math"

const (
	// MaxRaySteps bounds the DDA walk regardless of map contents.
	MaxRaySteps = 2048
	// DefaultWall is reported for rays that leave the grid.
	DefaultWall byte = '#'

	minRayDistance = 1e-4
	nearZeroDir    = 1e-9
)

// RayHit describes the first wall a ray meets.
type RayHit struct {
	Distance     float64 // perpendicular distance, in (0, maxDepth]
	WallType     byte
	Side         int     // 0 when an X grid line was crossed, 1 for Y
	WallFraction float64 // position along the wall face in [0,1)
	TileX, TileY int
	Missed       bool // nothing solid within maxDepth
}

// CastRay walks the grid from (x, y) along angle.
func (cs *CollisionSystem) CastRay(x, y, angle, maxDepth float64) RayHit {
	return cs.CastRayDir(x, y, math.Cos(angle), math.Sin(angle), maxDepth)
}

// CastRayDir walks the grid along an arbitrary (not necessarily unit)
// direction using DDA. Distances are measured along the direction vector,
// so passing a camera-plane ray yields the fish-eye free perpendicular
// distance.
func (cs *CollisionSystem) CastRayDir(x, y, dirX, dirY, maxDepth float64) RayHit {
	mapX := int(math.Floor(x))
	mapY := int(math.Floor(y))

	deltaDistX := deltaDistance(dirX)
	deltaDistY := deltaDistance(dirY)

	var stepX, stepY int
	var sideDistX, sideDistY float64
	if dirX < 0 {
		stepX = -1
		sideDistX = (x - float64(mapX)) * deltaDistX
	} else {
		stepX = 1
		sideDistX = (float64(mapX) + 1.0 - x) * deltaDistX
	}
	if dirY < 0 {
		stepY = -1
		sideDistY = (y - float64(mapY)) * deltaDistY
	} else {
		stepY = 1
		sideDistY = (float64(mapY) + 1.0 - y) * deltaDistY
	}

	width, height := cs.tileChecker.GetWorldBounds()

	for i := 0; i < MaxRaySteps; i++ {
		var side int
		var dist float64
		if sideDistX < sideDistY {
			dist = sideDistX
			sideDistX += deltaDistX
			mapX += stepX
			side = 0
		} else {
			dist = sideDistY
			sideDistY += deltaDistY
			mapY += stepY
			side = 1
		}

		if dist > maxDepth {
			break
		}

		outside := mapX < 0 || mapX >= width || mapY < 0 || mapY >= height
		if !outside && !cs.tileChecker.IsTileBlocking(mapX, mapY) {
			continue
		}

		wallType := DefaultWall
		if !outside {
			if typer, ok := cs.tileChecker.(WallTyper); ok {
				wallType = typer.WallTypeAt(mapX, mapY)
			}
		}

		var wallX float64
		if side == 0 {
			wallX = y + dist*dirY
		} else {
			wallX = x + dist*dirX
		}
		wallX -= math.Floor(wallX)

		return RayHit{
			Distance:     clampDistance(dist, maxDepth),
			WallType:     wallType,
			Side:         side,
			WallFraction: wallX,
			TileX:        mapX,
			TileY:        mapY,
		}
	}

	return RayHit{
		Distance: maxDepth,
		WallType: DefaultWall,
		TileX:    mapX,
		TileY:    mapY,
		Missed:   true,
	}
}

func deltaDistance(d float64) float64 {
	if math.Abs(d) < nearZeroDir {
		return 1e30
	}
	return math.Abs(1 / d)
}

func clampDistance(d, maxDepth float64) float64 {
	if d < minRayDistance {
		d = minRayDistance
	}
	if d > maxDepth {
		d = maxDepth
	}
	return d
}

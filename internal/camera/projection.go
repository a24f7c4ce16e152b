package camera

import "math"

// Projection is a world point expressed in camera space plus its screen
// column.
type Projection struct {
	TransformX float64 // horizontal offset in camera space
	TransformY float64 // perpendicular depth
	ScreenX    int
}

// Size is the on-screen height of a one-tile object at this depth.
func (p Projection) Size(screenH int) float64 {
	return math.Abs(float64(screenH) / p.TransformY)
}

// Project maps a world point onto a screen w pixels wide using the inverse
// camera matrix. Points at or behind the near plane are rejected.
//
// Reference: https://lodev.org/cgtutor/raycasting3.html
func (c *FirstPersonCamera) Project(worldX, worldY float64, w int) (Projection, bool) {
	dx := worldX - c.X
	dy := worldY - c.Y

	dirX := c.GetForwardX()
	dirY := c.GetForwardY()
	planeX, planeY := c.Plane()

	// | planeX  dirX |   | transformX |   | dx |
	// | planeY  dirY | * | transformY | = | dy |
	det := planeX*dirY - dirX*planeY
	if math.Abs(det) < 1e-9 {
		return Projection{}, false
	}
	invDet := 1.0 / det
	transformX := invDet * (dirY*dx - dirX*dy)
	transformY := invDet * (-planeY*dx + planeX*dy)

	near := c.NearPlane
	if near <= 0 {
		near = DefaultNearPlane
	}
	if transformY <= near {
		return Projection{}, false
	}

	return Projection{
		TransformX: transformX,
		TransformY: transformY,
		ScreenX:    int(float64(w) / 2 * (1 + transformX/transformY)),
	}, true
}

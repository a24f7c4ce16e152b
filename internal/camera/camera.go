package camera

import (
	"math"

	"hellgrid/internal/mathutil"
)

// DefaultNearPlane is the smallest camera-space depth a sprite may have.
const DefaultNearPlane = 0.05

// FirstPersonCamera is the player's eye: position in tiles, facing angle in
// radians and horizontal field of view.
type FirstPersonCamera struct {
	X, Y      float64
	Angle     float64
	FOV       float64
	NearPlane float64
}

// NewFirstPersonCamera creates a camera at the given pose.
func NewFirstPersonCamera(x, y, angle, fov float64) *FirstPersonCamera {
	return &FirstPersonCamera{
		X:         x,
		Y:         y,
		Angle:     mathutil.NormalizeAngle(angle),
		FOV:       fov,
		NearPlane: DefaultNearPlane,
	}
}

// GetForwardX returns the X component of the forward direction vector
func (c *FirstPersonCamera) GetForwardX() float64 {
	return math.Cos(c.Angle)
}

// GetForwardY returns the Y component of the forward direction vector
func (c *FirstPersonCamera) GetForwardY() float64 {
	return math.Sin(c.Angle)
}

// GetRightX returns the X component of the right direction vector
func (c *FirstPersonCamera) GetRightX() float64 {
	return -math.Sin(c.Angle)
}

// GetRightY returns the Y component of the right direction vector
func (c *FirstPersonCamera) GetRightY() float64 {
	return math.Cos(c.Angle)
}

// Plane returns the camera plane vector: perpendicular to the view
// direction and scaled by tan(FOV/2).
func (c *FirstPersonCamera) Plane() (float64, float64) {
	scale := math.Tan(c.FOV / 2)
	return c.GetRightX() * scale, c.GetRightY() * scale
}

// RayDirection returns the (non-normalised) direction of the ray through
// screen column x of a screen w pixels wide.
func (c *FirstPersonCamera) RayDirection(x float64, w int) (float64, float64) {
	cameraX := 2*x/float64(w) - 1
	planeX, planeY := c.Plane()
	return c.GetForwardX() + planeX*cameraX, c.GetForwardY() + planeY*cameraX
}

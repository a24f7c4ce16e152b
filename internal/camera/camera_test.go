package camera

import (
	"math"
	"testing"
)

// TestProjectUsesPerpendicularDistance checks that depth is measured along
// the view direction, not as euclidean distance.
func TestProjectUsesPerpendicularDistance(t *testing.T) {
	screenWidth := 640
	fov := math.Pi / 3

	testCases := []struct {
		name             string
		entityX, entityY float64
		wantDepth        float64
	}{
		{"directly ahead", 8, 5, 3},
		{"ahead and right", 8, 7, 3},
		{"steep angle", 6, 7, 1},
	}

	cam := NewFirstPersonCamera(5, 5, 0, fov)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, ok := cam.Project(tc.entityX, tc.entityY, screenWidth)
			if !ok {
				t.Fatal("expected entity in front of camera")
			}
			if math.Abs(p.TransformY-tc.wantDepth) > 1e-9 {
				t.Errorf("depth = %v, want %v", p.TransformY, tc.wantDepth)
			}
			euclid := math.Hypot(tc.entityX-5, tc.entityY-5)
			t.Logf("perp=%.3f euclid=%.3f screenX=%d", p.TransformY, euclid, p.ScreenX)
		})
	}
}

func TestProjectScreenSide(t *testing.T) {
	cam := NewFirstPersonCamera(5, 5, 0, math.Pi/3)

	centre, _ := cam.Project(9, 5, 640)
	if centre.ScreenX != 320 {
		t.Errorf("entity on view axis at screenX %d, want 320", centre.ScreenX)
	}

	// Facing east with y growing downward, +y is the camera's right.
	right, _ := cam.Project(9, 6, 640)
	left, _ := cam.Project(9, 4, 640)
	if right.ScreenX <= 320 || left.ScreenX >= 320 {
		t.Errorf("right=%d left=%d, want right > 320 > left", right.ScreenX, left.ScreenX)
	}
}

func TestProjectRejectsBehindAndNear(t *testing.T) {
	cam := NewFirstPersonCamera(5, 5, math.Pi/2, math.Pi/3)

	cases := []struct {
		name string
		x, y float64
	}{
		{"behind", 5, 3},
		{"beside", 7, 5},
		{"inside near plane", 5, 5.04},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, ok := cam.Project(c.x, c.y, 640); ok {
				t.Errorf("point (%v,%v) should not project", c.x, c.y)
			}
		})
	}

	if _, ok := cam.Project(5, 5.2, 640); !ok {
		t.Error("point past the near plane should project")
	}
}

func TestRayDirectionSpansPlane(t *testing.T) {
	cam := NewFirstPersonCamera(0, 0, 0, math.Pi/2)

	lx, ly := cam.RayDirection(0, 100)
	rx, ry := cam.RayDirection(100, 100)
	if math.Abs(lx-1) > 1e-9 || math.Abs(ly+1) > 1e-9 {
		t.Errorf("left ray = (%v,%v), want (1,-1)", lx, ly)
	}
	if math.Abs(rx-1) > 1e-9 || math.Abs(ry-1) > 1e-9 {
		t.Errorf("right ray = (%v,%v), want (1,1)", rx, ry)
	}
}

func TestNewCameraNormalisesAngle(t *testing.T) {
	cam := NewFirstPersonCamera(0, 0, -0.2, 1)
	if cam.Angle < 0 || cam.Angle >= 2*math.Pi {
		t.Errorf("angle %v outside [0, 2pi)", cam.Angle)
	}
}

func TestDepthBufferVisible(t *testing.T) {
	db := NewDepthBuffer(8, DefaultDepthMargin)
	db.Fill(10)
	db.SetSpan(2, 3, 4)

	tests := []struct {
		col   int
		depth float64
		want  bool
	}{
		{0, 9.9, true},
		{3, 5, false},
		{3, 4.1, true}, // within margin
		{4, 4.13, false},
		{5, 9, true},
		{-1, 1, false},
		{8, 1, false},
	}
	for _, tt := range tests {
		if got := db.Visible(tt.col, tt.depth); got != tt.want {
			t.Errorf("Visible(%d, %v) = %v, want %v", tt.col, tt.depth, got, tt.want)
		}
	}
}

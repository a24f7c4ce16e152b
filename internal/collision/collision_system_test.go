package collision

import (
	"math"
	"testing"
)

func TestTryMove_BlockedPerAxis(t *testing.T) {
	checker := walledBox(10, 10)
	checker.setBlocking(5, 4, true)
	cs := NewCollisionSystem(checker)

	// Moving diagonally into the wall at (5,4): x is blocked, y still slides.
	x, y := cs.TryMove(4.6, 4.5, 0.3, 0.3, 0.2)
	if x != 4.6 {
		t.Errorf("x = %v, want blocked at 4.6", x)
	}
	if math.Abs(y-4.8) > 1e-9 {
		t.Errorf("y = %v, want slide to 4.8", y)
	}
}

func TestTryMove_FreeMovement(t *testing.T) {
	cs := NewCollisionSystem(walledBox(10, 10))

	x, y := cs.TryMove(3.5, 3.5, 0.5, -0.25, 0.2)
	if math.Abs(x-4.0) > 1e-9 || math.Abs(y-3.25) > 1e-9 {
		t.Errorf("got (%v,%v), want (4,3.25)", x, y)
	}
}

func TestTryMove_NeverEntersWall(t *testing.T) {
	cs := NewCollisionSystem(walledBox(6, 6))

	x, y := 3.0, 3.0
	for i := 0; i < 100; i++ {
		x, y = cs.TryMove(x, y, 0.07, 0.05, 0.2)
	}
	if !cs.CanOccupy(x, y, 0.2) {
		t.Fatalf("ended inside a wall at (%v,%v)", x, y)
	}
	if x > 4.8 || y > 4.8 {
		t.Errorf("body overlaps the east/south wall: (%v,%v)", x, y)
	}
}

func TestCheckLineOfSight(t *testing.T) {
	checker := walledBox(12, 6)
	checker.setBlocking(6, 2, true)
	cs := NewCollisionSystem(checker)

	tests := []struct {
		name           string
		x1, y1, x2, y2 float64
		want           bool
	}{
		{"open corridor", 1.5, 4.5, 10.5, 4.5, true},
		{"pillar between", 1.5, 2.5, 10.5, 2.5, false},
		{"same point", 3.5, 3.5, 3.5, 3.5, true},
		{"target inside wall", 1.5, 1.5, 0.5, 1.5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cs.CheckLineOfSight(tt.x1, tt.y1, tt.x2, tt.y2); got != tt.want {
				t.Errorf("CheckLineOfSight = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBody(t *testing.T) {
	minX, minY, maxX, maxY := Body{X: 2, Y: 2, Radius: 0.5}.Extent()
	if minX != 1.5 || minY != 1.5 || maxX != 2.5 || maxY != 2.5 {
		t.Errorf("extent = (%v,%v)-(%v,%v), want (1.5,1.5)-(2.5,2.5)", minX, minY, maxX, maxY)
	}

	var tiles [][2]int
	b := Body{X: 1.9, Y: 3.5, Radius: 0.2}
	b.EachTile(func(tx, ty int) bool {
		tiles = append(tiles, [2]int{tx, ty})
		return true
	})
	want := [][2]int{{1, 3}, {2, 3}}
	if len(tiles) != len(want) || tiles[0] != want[0] || tiles[1] != want[1] {
		t.Errorf("EachTile visited %v, want %v", tiles, want)
	}

	visited := 0
	complete := Body{X: 1.5, Y: 1.5, Radius: 0.9}.EachTile(func(int, int) bool {
		visited++
		return false
	})
	if complete || visited != 1 {
		t.Errorf("early stop: complete=%v visited=%d, want false and 1", complete, visited)
	}
}

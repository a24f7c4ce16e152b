package world

import (
	"github.com/harbdog/raycaster-go/geom"

	"hellgrid/internal/items"
	"hellgrid/internal/monster"
)

// Tile symbols used in level grids.
const (
	TileFloor     byte = '.'
	TileWall      byte = '#'
	TileWallPanel byte = '%'
	TileWallRust  byte = '@'
)

// Marker symbols. Every marker places an entity at its tile centre and
// leaves floor behind.
const (
	MarkerSpawn    byte = 'S'
	MarkerExit     byte = 'X'
	MarkerGrunt    byte = 'E'
	MarkerFiend    byte = 'F'
	MarkerBrute    byte = 'B'
	MarkerAmmo     byte = 'M'
	MarkerHealth   byte = 'H'
	MarkerArmor    byte = 'R'
	MarkerKey      byte = 'K'
	MarkerTreasure byte = 'T'
)

var enemyMarkers = map[byte]monster.Kind{
	MarkerGrunt: monster.Grunt,
	MarkerFiend: monster.Fiend,
	MarkerBrute: monster.Brute,
}

var pickupMarkers = map[byte]items.Kind{
	MarkerAmmo:     items.Ammo,
	MarkerHealth:   items.Health,
	MarkerArmor:    items.Armor,
	MarkerKey:      items.Key,
	MarkerTreasure: items.Treasure,
}

// IsWallTile reports whether a symbol is one of the wall variants.
func IsWallTile(t byte) bool {
	return t == TileWall || t == TileWallPanel || t == TileWallRust
}

// EnemySpawn is where an enemy of a given kind starts.
type EnemySpawn struct {
	Position geom.Vector2
	Kind     monster.Kind
}

// PickupSpawn is where a pickup of a given kind lies.
type PickupSpawn struct {
	Position geom.Vector2
	Kind     items.Kind
}

// Level is a built, immutable level layout. Runtime entity state lives in
// the game session.
type Level struct {
	Name         string
	Intro        string
	Grid         [][]byte
	Width        int
	Height       int
	Spawn        geom.Vector2
	SpawnAngle   float64
	Exit         geom.Vector2
	HasExit      bool
	Enemies      []EnemySpawn
	Pickups      []PickupSpawn
	TotalEnemies int
	RequireKey   bool
	RequireClear bool
}

// TileAt returns the symbol at a tile; out of bounds reads as wall.
func (l *Level) TileAt(x, y int) byte {
	if x < 0 || y < 0 || y >= l.Height || x >= l.Width {
		return TileWall
	}
	return l.Grid[y][x]
}

// IsWall reports whether a tile blocks movement and sight.
func (l *Level) IsWall(x, y int) bool {
	return IsWallTile(l.TileAt(x, y))
}

// IsTileBlocking implements collision.TileChecker.
func (l *Level) IsTileBlocking(tileX, tileY int) bool {
	return l.IsWall(tileX, tileY)
}

// GetWorldBounds implements collision.TileChecker.
func (l *Level) GetWorldBounds() (width, height int) {
	return l.Width, l.Height
}

// WallTypeAt implements collision.WallTyper.
func (l *Level) WallTypeAt(tileX, tileY int) byte {
	return l.TileAt(tileX, tileY)
}

// Rows renders the grid with the entity markers stamped back in.
func (l *Level) Rows() []string {
	rows := make([][]byte, l.Height)
	for y := range rows {
		rows[y] = append([]byte(nil), l.Grid[y]...)
	}
	stamp := func(p geom.Vector2, marker byte) {
		x, y := int(p.X), int(p.Y)
		if y >= 0 && y < l.Height && x >= 0 && x < l.Width {
			rows[y][x] = marker
		}
	}

	for _, p := range l.Pickups {
		for m, k := range pickupMarkers {
			if k == p.Kind {
				stamp(p.Position, m)
			}
		}
	}
	for _, e := range l.Enemies {
		for m, k := range enemyMarkers {
			if k == e.Kind {
				stamp(e.Position, m)
			}
		}
	}
	if l.HasExit {
		stamp(l.Exit, MarkerExit)
	}
	stamp(l.Spawn, MarkerSpawn)

	out := make([]string, l.Height)
	for y, r := range rows {
		out[y] = string(r)
	}
	return out
}

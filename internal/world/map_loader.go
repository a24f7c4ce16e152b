package world

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/harbdog/raycaster-go/geom"
	"gopkg.in/yaml.v3"
)

//go:embed campaign.yaml
var campaignYAML []byte

var (
	// ErrNoLevels is returned for a campaign file without levels.
	ErrNoLevels = errors.New("campaign has no levels")
	// ErrEmptyGrid is returned when a level grid has no rows.
	ErrEmptyGrid = errors.New("level grid is empty")
)

// LevelDef is the authored form of a level.
type LevelDef struct {
	Name         string  `yaml:"name"`
	Intro        string  `yaml:"intro"`
	RequireKey   bool    `yaml:"require_key"`
	RequireClear bool    `yaml:"require_clear"`
	StartAngle   float64 `yaml:"start_angle"`
	Grid         string  `yaml:"grid"`
}

type campaignFile struct {
	Levels []LevelDef `yaml:"levels"`
}

// LoadLevelDefs parses a YAML campaign document.
func LoadLevelDefs(data []byte) ([]LevelDef, error) {
	var file campaignFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode campaign: %w", err)
	}
	if len(file.Levels) == 0 {
		return nil, ErrNoLevels
	}
	for i, def := range file.Levels {
		if strings.TrimSpace(def.Grid) == "" {
			return nil, fmt.Errorf("level %d (%s): %w", i+1, def.Name, ErrEmptyGrid)
		}
	}
	return file.Levels, nil
}

// LoadLevelFile reads a campaign from disk.
func LoadLevelFile(path string) ([]LevelDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open campaign file %s: %w", path, err)
	}
	defs, err := LoadLevelDefs(data)
	if err != nil {
		return nil, fmt.Errorf("campaign %s: %w", path, err)
	}
	return defs, nil
}

// DefaultCampaign returns the built-in levels.
func DefaultCampaign() []LevelDef {
	defs, err := LoadLevelDefs(campaignYAML)
	if err != nil {
		panic("Failed to load built-in campaign: " + err.Error())
	}
	return defs
}

// BuildLevel turns a level definition into a playable layout. Rows are
// trimmed and right-padded with wall to the widest row; markers become
// floor with an entity at the tile centre. A second spawn or exit marker
// replaces the first.
func BuildLevel(def LevelDef) (*Level, error) {
	rows := normaliseRows(def.Grid)
	if len(rows) == 0 {
		return nil, fmt.Errorf("level %q: %w", def.Name, ErrEmptyGrid)
	}

	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}

	level := &Level{
		Name:         def.Name,
		Intro:        def.Intro,
		Width:        width,
		Height:       len(rows),
		SpawnAngle:   def.StartAngle,
		RequireKey:   def.RequireKey,
		RequireClear: def.RequireClear,
		Grid:         make([][]byte, len(rows)),
	}

	hasSpawn := false
	for y, row := range rows {
		line := make([]byte, width)
		for x := 0; x < width; x++ {
			ch := TileWall
			if x < len(row) {
				ch = gridByte(row[x])
			}
			line[x] = level.parseMapCharacter(ch, x, y, &hasSpawn)
		}
		level.Grid[y] = line
		log.Debug("level row", "level", def.Name, "y", y, "row", string(line))
	}

	if !hasSpawn {
		level.Spawn = fallbackSpawn(level)
	}
	level.TotalEnemies = len(level.Enemies)
	return level, nil
}

// parseMapCharacter records any entity a symbol stands for and returns the
// tile left in the grid.
func (l *Level) parseMapCharacter(ch byte, x, y int, hasSpawn *bool) byte {
	centre := geom.Vector2{X: float64(x) + 0.5, Y: float64(y) + 0.5}

	if IsWallTile(ch) {
		return ch
	}
	if kind, ok := enemyMarkers[ch]; ok {
		l.Enemies = append(l.Enemies, EnemySpawn{Position: centre, Kind: kind})
		return TileFloor
	}
	if kind, ok := pickupMarkers[ch]; ok {
		l.Pickups = append(l.Pickups, PickupSpawn{Position: centre, Kind: kind})
		return TileFloor
	}
	switch ch {
	case MarkerSpawn:
		l.Spawn = centre
		*hasSpawn = true
	case MarkerExit:
		l.Exit = centre
		l.HasExit = true
	}
	return TileFloor
}

// normaliseRows trims every row and drops blank lines at either end. Blank
// rows inside the grid stay and get padded into solid wall.
func normaliseRows(grid string) [][]rune {
	lines := strings.Split(strings.ReplaceAll(grid, "\r\n", "\n"), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	start, end := 0, len(lines)
	for start < end && lines[start] == "" {
		start++
	}
	for end > start && lines[end-1] == "" {
		end--
	}
	rows := make([][]rune, 0, end-start)
	for _, line := range lines[start:end] {
		rows = append(rows, []rune(line))
	}
	return rows
}

// gridByte maps a grid symbol to its tile byte. Anything outside ASCII is
// a single floor tile.
func gridByte(r rune) byte {
	if r > unicode.MaxASCII {
		return TileFloor
	}
	return byte(r)
}

func fallbackSpawn(l *Level) geom.Vector2 {
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			if l.Grid[y][x] == TileFloor {
				return geom.Vector2{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			}
		}
	}
	return geom.Vector2{X: float64(l.Width) / 2, Y: float64(l.Height) / 2}
}

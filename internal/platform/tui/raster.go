package tui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hellgrid/internal/render"
)

// Each character cell covers cellW x cellH scene pixels. Terminal cells are
// about twice as tall as wide, so this keeps scene pixels square.
const (
	cellW = 2
	cellH = 4
)

// wallRamp runs from near to far.
var wallRamp = []rune{'█', '▓', '▒', '░'}

var spriteGlyphs = map[render.SpriteKind]rune{
	render.SpriteGrunt:    'g',
	render.SpriteFiend:    'f',
	render.SpriteBrute:    'B',
	render.SpriteHealth:   '+',
	render.SpriteArmor:    ']',
	render.SpriteAmmo:     '=',
	render.SpriteKey:      'k',
	render.SpriteTreasure: '$',
	render.SpriteExit:     'X',
}

var flashColor = color.RGBA{255, 255, 255, 255}

// Cell is one rasterised character.
type Cell struct {
	Rune  rune
	Color color.RGBA
}

// Grid is a row-major block of cells.
type Grid struct {
	Cols, Rows int
	Cells      []Cell
}

// At returns the cell at column x, row y.
func (g *Grid) At(x, y int) Cell {
	return g.Cells[y*g.Cols+x]
}

func (g *Grid) set(x, y int, c Cell) {
	if x < 0 || y < 0 || x >= g.Cols || y >= g.Rows {
		return
	}
	g.Cells[y*g.Cols+x] = c
}

// sceneSize is the pixel size to compose a scene at for a cols x rows
// character view.
func sceneSize(cols, rows int) (int, int) {
	return cols * cellW, rows * cellH
}

// sampleY is the scene row sampled for character row y.
func sampleY(y int) float64 {
	return float64(y*cellH) + cellH/2
}

// Rasterise paints the scene's world view into character cells. HUD,
// minimap and overlay are left to the caller.
func Rasterise(sc *render.Scene, fogDistance float64) *Grid {
	cols, rows := sc.Width/cellW, sc.Height/cellH
	g := &Grid{Cols: cols, Rows: rows, Cells: make([]Cell, cols*rows)}

	for y := 0; y < rows; y++ {
		sy := sampleY(y)
		for x := 0; x < cols; x++ {
			if sy < sc.Horizon {
				g.set(x, y, Cell{Rune: ' ', Color: sc.Ceiling.Color})
			} else {
				g.set(x, y, Cell{Rune: floorRune(sy-sc.Horizon, float64(sc.Height)-sc.Horizon), Color: sc.Floor.Color})
			}
		}
	}

	for _, col := range sc.Walls {
		r := wallRune(col.Distance, col.Side, fogDistance)
		x0, x1 := col.X/cellW, (col.X+col.Width-1)/cellW
		for y := 0; y < rows; y++ {
			sy := sampleY(y)
			if sy < col.Top || sy >= col.Top+col.Height {
				continue
			}
			for x := x0; x <= x1; x++ {
				g.set(x, y, Cell{Rune: r, Color: col.Color})
			}
		}
	}

	for _, sp := range sc.Sprites {
		glyph := spriteGlyphs[sp.Kind]
		c := sp.Color
		if sp.Flash {
			c = flashColor
		}
		for _, strip := range sp.Strips {
			for x := strip.X0 / cellW; x <= strip.X1/cellW; x++ {
				for y := 0; y < rows; y++ {
					sy := sampleY(y)
					if sy < sp.Top || sy >= sp.Top+sp.Size {
						continue
					}
					g.set(x, y, Cell{Rune: glyph, Color: c})
				}
			}
		}
	}

	if sc.Overlay == nil && cols > 0 && rows > 0 {
		g.set(cols/2, rows/2, Cell{Rune: '+', Color: flashColor})
	}
	return g
}

// wallRune picks a denser block for nearer walls; y-side faces sit one
// step further along the ramp.
func wallRune(distance float64, side int, fogDistance float64) rune {
	i := 0
	if fogDistance > 0 {
		i = int(distance / fogDistance * float64(len(wallRamp)))
	}
	if side == 1 {
		i++
	}
	if i >= len(wallRamp) {
		i = len(wallRamp) - 1
	}
	return wallRamp[i]
}

// floorRune thins the floor texture towards the horizon.
func floorRune(below, span float64) rune {
	if span <= 0 || below/span < 0.35 {
		return ' '
	}
	if below/span < 0.7 {
		return '.'
	}
	return ':'
}

// styleCache memoises one foreground style per colour.
type styleCache map[color.RGBA]lipgloss.Style

func (sc styleCache) get(c color.RGBA) lipgloss.Style {
	if s, ok := sc[c]; ok {
		return s
	}
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor(c)))
	sc[c] = s
	return s
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String renders the grid, grouping adjacent cells of the same colour to
// keep escape sequences down.
func (g *Grid) String(styles styleCache) string {
	var sb strings.Builder
	sb.Grow(g.Cols*g.Rows*2 + g.Rows)

	for y := 0; y < g.Rows; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		x := 0
		for x < g.Cols {
			start := g.At(x, y).Color
			var run strings.Builder
			for x < g.Cols && g.At(x, y).Color == start {
				run.WriteRune(g.At(x, y).Rune)
				x++
			}
			sb.WriteString(styles.get(start).Render(run.String()))
		}
	}
	return sb.String()
}

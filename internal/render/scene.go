// Package render turns a game session into a backend-independent Scene:
// plain rectangles, columns and text that the desktop and terminal
// frontends draw with their own primitives.
package render

import (
	"image/color"

	"hellgrid/internal/game"
)

// Rect is a filled screen rectangle.
type Rect struct {
	X, Y, W, H float64
	Color      color.RGBA
}

// WallColumn is one projected wall slice.
type WallColumn struct {
	X, Width    int
	Top, Height float64
	Distance    float64
	Side        int
	WallType    byte
	TexU        float64 // where along the wall face the ray landed, [0,1)
	Color       color.RGBA
}

// SpriteKind tells a backend which billboard to draw.
type SpriteKind int

const (
	SpriteGrunt SpriteKind = iota
	SpriteFiend
	SpriteBrute
	SpriteHealth
	SpriteArmor
	SpriteAmmo
	SpriteKey
	SpriteTreasure
	SpriteExit
)

// Strip is a run of screen columns [X0, X1] where a sprite is in front of
// the walls.
type Strip struct {
	X0, X1 int
}

// Sprite is a projected billboard clipped against the depth buffer.
type Sprite struct {
	Kind    SpriteKind
	ScreenX int
	Left    float64
	Top     float64
	Size    float64
	Depth   float64
	Color   color.RGBA
	Flash   bool
	Strips  []Strip
}

// Weapon is the first-person gun overlay.
type Weapon struct {
	X, Y, W, H float64
	Muzzle     bool
	Reloading  bool
}

// Minimap is a top-down window centred on the player.
type Minimap struct {
	X, Y    float64
	Size    float64
	Cells   []Rect
	Markers []Rect
	Facing  [2]float64 // end point of the player's heading line
	Centre  [2]float64
}

// Overlay is the full-screen text shown outside running mode.
type Overlay struct {
	Title string
	Lines []string
}

// Scene is everything one frame shows.
type Scene struct {
	Width, Height int
	Horizon       float64
	Ceiling       Rect
	Floor         Rect
	Walls         []WallColumn
	Sprites       []Sprite
	Weapon        Weapon
	Minimap       Minimap
	HUD           game.HUD
	Messages      []string
	HurtAlpha     float64
	Overlay       *Overlay
}

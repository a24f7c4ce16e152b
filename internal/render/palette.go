package render

import (
	"image/color"

	"github.com/harbdog/raycaster-go/geom"

	"hellgrid/internal/items"
	"hellgrid/internal/monster"
	"hellgrid/internal/world"
)

var (
	ceilingColor = color.RGBA{28, 24, 30, 255}
	floorColor   = color.RGBA{54, 46, 40, 255}
	flashColor   = color.RGBA{255, 255, 255, 255}

	minimapWall  = color.RGBA{150, 150, 160, 220}
	minimapFloor = color.RGBA{20, 20, 24, 160}
	minimapExit  = color.RGBA{60, 200, 90, 230}
	minimapSelf  = color.RGBA{240, 240, 80, 255}
	minimapEnemy = color.RGBA{220, 50, 40, 255}
	minimapItem  = color.RGBA{80, 160, 240, 255}
	minimapDrop  = color.RGBA{240, 150, 60, 255}
)

// GetTileColor returns the base colour of a wall tile.
func GetTileColor(t byte) color.RGBA {
	switch t {
	case world.TileWallPanel:
		return color.RGBA{96, 110, 132, 255}
	case world.TileWallRust:
		return color.RGBA{142, 78, 44, 255}
	default:
		return color.RGBA{120, 112, 104, 255}
	}
}

// Shade darkens c for the wall side (y-side faces are 30% darker) and for
// fog, which fades linearly to 25% brightness at fogDistance.
func Shade(c color.RGBA, side int, distance, fogDistance float64) color.RGBA {
	brightness := 1.0
	if fogDistance > 0 {
		brightness = geom.Clamp(1-distance/fogDistance, 0.25, 1)
	}
	if side == 1 {
		brightness *= 0.7
	}
	return scale(c, brightness)
}

func scale(c color.RGBA, f float64) color.RGBA {
	ch := func(v uint8) uint8 {
		return uint8(geom.Clamp(float64(v)*f, 0, 255))
	}
	return color.RGBA{ch(c.R), ch(c.G), ch(c.B), c.A}
}

// textureBand stripes walls into four vertical bands per tile face.
func textureBand(c color.RGBA, u float64) color.RGBA {
	if int(u*4)%2 == 1 {
		return scale(c, 0.88)
	}
	return c
}

func monsterSprite(k monster.Kind) (SpriteKind, color.RGBA, float64) {
	switch k {
	case monster.Fiend:
		return SpriteFiend, color.RGBA{200, 60, 140, 255}, 0.7
	case monster.Brute:
		return SpriteBrute, color.RGBA{150, 40, 30, 255}, 1.0
	default:
		return SpriteGrunt, color.RGBA{110, 140, 70, 255}, 0.8
	}
}

func pickupSprite(k items.Kind) (SpriteKind, color.RGBA) {
	switch k {
	case items.Health:
		return SpriteHealth, color.RGBA{230, 40, 40, 255}
	case items.Armor:
		return SpriteArmor, color.RGBA{60, 180, 90, 255}
	case items.Ammo:
		return SpriteAmmo, color.RGBA{210, 180, 60, 255}
	case items.Key:
		return SpriteKey, color.RGBA{60, 200, 230, 255}
	default:
		return SpriteTreasure, color.RGBA{250, 210, 40, 255}
	}
}

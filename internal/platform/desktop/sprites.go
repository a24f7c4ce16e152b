package desktop

import (
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"hellgrid/internal/render"
)

const spriteSize = 32

// SpriteManager builds each billboard image on first use. Images are white
// so the renderer can tint them with the sprite's colour.
type SpriteManager struct {
	sprites map[render.SpriteKind]*ebiten.Image
	logger  *log.Logger
}

// NewSpriteManager creates an empty manager.
func NewSpriteManager(logger *log.Logger) *SpriteManager {
	return &SpriteManager{
		sprites: make(map[render.SpriteKind]*ebiten.Image),
		logger:  logger,
	}
}

// GetSprite returns the image for kind.
func (sm *SpriteManager) GetSprite(kind render.SpriteKind) *ebiten.Image {
	if sprite, exists := sm.sprites[kind]; exists {
		return sprite
	}
	img := createSprite(kind)
	sm.sprites[kind] = img
	sm.logger.Debug("sprite generated", "kind", int(kind))
	return img
}

func createSprite(kind render.SpriteKind) *ebiten.Image {
	const s = spriteSize
	img := ebiten.NewImage(s, s)
	white := color.RGBA{255, 255, 255, 255}
	dark := color.RGBA{40, 40, 40, 255}

	switch kind {
	case render.SpriteGrunt, render.SpriteFiend, render.SpriteBrute:
		// Head, torso and legs; the eyes stay dark under any tint.
		vector.DrawFilledCircle(img, s/2, 7, 6, white, false)
		vector.DrawFilledRect(img, 8, 12, 16, 12, white, false)
		vector.DrawFilledRect(img, 9, 24, 5, 8, white, false)
		vector.DrawFilledRect(img, 18, 24, 5, 8, white, false)
		vector.DrawFilledRect(img, 12, 5, 2, 2, dark, false)
		vector.DrawFilledRect(img, 18, 5, 2, 2, dark, false)
		if kind == render.SpriteFiend {
			vector.StrokeLine(img, 10, 3, 6, 0, 2, white, false)
			vector.StrokeLine(img, 22, 3, 26, 0, 2, white, false)
		}
	case render.SpriteHealth:
		vector.DrawFilledRect(img, 4, 4, 24, 24, white, false)
		vector.DrawFilledRect(img, 14, 8, 4, 16, dark, false)
		vector.DrawFilledRect(img, 8, 14, 16, 4, dark, false)
	case render.SpriteKey:
		vector.DrawFilledRect(img, 6, 10, 20, 13, white, false)
		vector.DrawFilledRect(img, 9, 13, 6, 3, dark, false)
	case render.SpriteTreasure:
		vector.DrawFilledCircle(img, s/2, s/2, 10, white, false)
	case render.SpriteExit:
		vector.DrawFilledRect(img, 2, 0, 28, 32, white, false)
		vector.DrawFilledRect(img, 6, 4, 20, 28, dark, false)
		vector.StrokeLine(img, 16, 4, 16, 32, 1, white, false)
	default:
		vector.DrawFilledRect(img, 6, 8, 20, 18, white, false)
		vector.DrawFilledRect(img, 6, 8, 20, 3, dark, false)
	}
	return img
}

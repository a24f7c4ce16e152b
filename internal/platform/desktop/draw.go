package desktop

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	ebitext "github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"hellgrid/internal/game"
	"hellgrid/internal/render"
	"hellgrid/internal/threading/monitoring"
)

var (
	hudBg        = color.RGBA{0, 0, 0, 160}
	hudText      = color.RGBA{230, 230, 220, 255}
	hudWarn      = color.RGBA{240, 90, 70, 255}
	hudKey       = color.RGBA{60, 200, 230, 255}
	overlayBg    = color.RGBA{0, 0, 0, 170}
	gunBody      = color.RGBA{70, 70, 78, 255}
	gunBarrel    = color.RGBA{40, 40, 46, 255}
	muzzleColor  = color.RGBA{255, 220, 120, 230}
	hurtColor    = color.RGBA{200, 0, 0, 255}
	crosshairCol = color.RGBA{230, 230, 230, 200}
)

func fillRect(dst *ebiten.Image, r render.Rect) {
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), r.Color, false)
}

func drawText(dst *ebiten.Image, s string, x, y int, c color.Color) {
	face := basicfont.Face7x13
	ebitext.Draw(dst, s, face, x, y+face.Ascent, c)
}

func textWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Round()
}

func (g *Game) drawScene(screen *ebiten.Image, sc *render.Scene) {
	fillRect(screen, sc.Ceiling)
	fillRect(screen, sc.Floor)

	for _, col := range sc.Walls {
		vector.DrawFilledRect(screen, float32(col.X), float32(col.Top), float32(col.Width), float32(col.Height), col.Color, false)
	}
	for _, sp := range sc.Sprites {
		g.drawSprite(screen, sp)
	}

	if sc.Overlay == nil {
		drawWeapon(screen, sc.Weapon)
		drawCrosshair(screen, sc.Width, sc.Height)
	}
	if sc.HurtAlpha > 0 {
		c := hurtColor
		c.A = uint8(sc.HurtAlpha * 255)
		vector.DrawFilledRect(screen, 0, 0, float32(sc.Width), float32(sc.Height), c, false)
	}

	drawMinimap(screen, sc.Minimap)
	drawHUD(screen, sc)
	if sc.Overlay != nil {
		drawOverlay(screen, sc.Width, sc.Height, sc.Overlay)
	}
	if g.showDebug {
		drawDebug(screen, g.monitor.Metrics())
	}
}

// drawSprite draws the visible strips of a billboard, sampling the
// matching columns of its image.
func (g *Game) drawSprite(screen *ebiten.Image, sp render.Sprite) {
	img := g.sprites.GetSprite(sp.Kind)
	bounds := img.Bounds()
	iw, ih := float64(bounds.Dx()), float64(bounds.Dy())
	if sp.Size <= 0 {
		return
	}

	for _, strip := range sp.Strips {
		u0 := (float64(strip.X0) - sp.Left) / sp.Size * iw
		u1 := (float64(strip.X1+1) - sp.Left) / sp.Size * iw
		x0 := int(u0)
		x1 := int(u1 + 0.999)
		if x0 < 0 {
			x0 = 0
		}
		if x1 > int(iw) {
			x1 = int(iw)
		}
		if x1 <= x0 {
			continue
		}
		sub := img.SubImage(image.Rect(x0, 0, x1, int(ih))).(*ebiten.Image)

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(sp.Size/iw, sp.Size/ih)
		op.GeoM.Translate(sp.Left+float64(x0)*sp.Size/iw, sp.Top)
		op.ColorScale.ScaleWithColor(sp.Color)
		if sp.Flash {
			op.ColorScale.Scale(1.8, 1.8, 1.8, 1)
		}
		screen.DrawImage(sub, op)
	}
}

func drawWeapon(screen *ebiten.Image, w render.Weapon) {
	cx := w.X + w.W/2
	if w.Muzzle {
		vector.DrawFilledCircle(screen, float32(cx), float32(w.Y), float32(w.W*0.35), muzzleColor, true)
	}
	vector.DrawFilledRect(screen, float32(cx-w.W*0.12), float32(w.Y), float32(w.W*0.24), float32(w.H*0.5), gunBarrel, false)
	vector.DrawFilledRect(screen, float32(w.X), float32(w.Y+w.H*0.35), float32(w.W), float32(w.H*0.65), gunBody, false)
}

func drawCrosshair(screen *ebiten.Image, w, h int) {
	cx, cy := float32(w)/2, float32(h)/2
	vector.StrokeLine(screen, cx-6, cy, cx-2, cy, 1, crosshairCol, false)
	vector.StrokeLine(screen, cx+2, cy, cx+6, cy, 1, crosshairCol, false)
	vector.StrokeLine(screen, cx, cy-6, cx, cy-2, 1, crosshairCol, false)
	vector.StrokeLine(screen, cx, cy+2, cx, cy+6, 1, crosshairCol, false)
}

func drawMinimap(screen *ebiten.Image, mm render.Minimap) {
	vector.DrawFilledRect(screen, float32(mm.X-2), float32(mm.Y-2), float32(mm.Size+4), float32(mm.Size+4), hudBg, false)
	for _, c := range mm.Cells {
		fillRect(screen, c)
	}
	for _, m := range mm.Markers {
		fillRect(screen, m)
	}
	vector.StrokeLine(screen, float32(mm.Centre[0]), float32(mm.Centre[1]), float32(mm.Facing[0]), float32(mm.Facing[1]), 1, hudText, false)
}

func drawHUD(screen *ebiten.Image, sc *render.Scene) {
	h := sc.HUD
	barH := 40
	y := sc.Height - barH
	vector.DrawFilledRect(screen, 0, float32(y), float32(sc.Width), float32(barH), hudBg, false)

	hpColor := color.Color(hudText)
	if h.Health <= h.MaxHealth/4 {
		hpColor = hudWarn
	}
	drawText(screen, fmt.Sprintf("HEALTH %3d", h.Health), 12, y+6, hpColor)
	drawText(screen, fmt.Sprintf("ARMOR %3d", h.Armor), 12, y+22, hudText)

	ammo := fmt.Sprintf("AMMO %2d/%d", h.Clip, h.Reserve)
	if h.Reloading {
		ammo = fmt.Sprintf("RELOADING %3.0f%%", h.ReloadProgress*100)
	}
	drawText(screen, ammo, 120, y+6, hudText)
	if h.HasKey {
		drawText(screen, "KEYCARD", 120, y+22, hudKey)
	}

	drawText(screen, fmt.Sprintf("SCORE %d", h.Score), 260, y+6, hudText)
	combo := ""
	if h.Combo > 0 {
		combo = fmt.Sprintf("  COMBO x%d", h.Combo+1)
	}
	drawText(screen, fmt.Sprintf("KILLS %d%s", h.Kills, combo), 260, y+22, hudText)

	right := fmt.Sprintf("L%d/%d %s  %s", h.LevelNumber, h.LevelCount, h.LevelName, h.PlayTime)
	drawText(screen, right, sc.Width-textWidth(right)-12, y+6, hudText)
	obj := fmt.Sprintf("%s  [%d/%d]", h.Objective, h.TotalEnemies-h.EnemiesLeft, h.TotalEnemies)
	drawText(screen, obj, sc.Width-textWidth(obj)-12, y+22, hudText)

	for i, msg := range sc.Messages {
		drawText(screen, msg, 12, 10+i*16, hudText)
	}
}

func drawOverlay(screen *ebiten.Image, w, h int, o *render.Overlay) {
	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), overlayBg, false)
	y := h/2 - 20*(len(o.Lines)+1)/2
	title := strings.ToUpper(o.Title)
	drawText(screen, title, (w-textWidth(title))/2, y, hudWarn)
	for i, line := range o.Lines {
		drawText(screen, line, (w-textWidth(line))/2, y+24+i*18, hudText)
	}
}

func drawDebug(screen *ebiten.Image, m monitoring.FrameMetrics) {
	lines := []string{
		fmt.Sprintf("FPS %.1f (tps %.0f)", m.FramesPerSec, ebiten.ActualTPS()),
		fmt.Sprintf("frame %.2fms  rays %.2fms", ms(m.AvgFrameTime.Nanoseconds()), ms(m.AvgRaycastTime.Nanoseconds())),
		fmt.Sprintf("goroutines %d  heap %dMB", m.Goroutines, m.MemoryAllocMB),
	}
	for i, l := range lines {
		drawText(screen, l, 12, 90+i*16, hudText)
	}
}

func ms(ns int64) float64 {
	return float64(ns) / 1e6
}

// hudModeLabel is shown in the window title.
func hudModeLabel(m game.Mode) string {
	if m == game.ModeRunning {
		return ""
	}
	return " [" + m.String() + "]"
}

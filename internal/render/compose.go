package render

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/harbdog/raycaster-go/geom"

	"hellgrid/internal/camera"
	"hellgrid/internal/collision"
	"hellgrid/internal/game"
	"hellgrid/internal/mathutil"
)

// ColumnCaster casts n wall rays. Implementations may run cast
// concurrently; cast only reads the session.
type ColumnCaster interface {
	CastColumns(n int, cast func(i int) collision.RayHit) []collision.RayHit
}

// View is the output surface a Scene is composed for.
type View struct {
	Width, Height int
	Caster        ColumnCaster // nil casts on the calling goroutine
}

type serialCaster struct{}

func (serialCaster) CastColumns(n int, cast func(i int) collision.RayHit) []collision.RayHit {
	hits := make([]collision.RayHit, n)
	for i := range hits {
		hits[i] = cast(i)
	}
	return hits
}

// Compose builds the frame for the session's current state. It only reads
// the session.
func Compose(s *game.GameSession, view View) *Scene {
	cfg := s.Config()
	p := s.Player()
	w, h := view.Width, view.Height
	if w <= 0 || h <= 0 {
		w, h = cfg.GetScreenWidth(), cfg.GetScreenHeight()
	}

	cam := camera.NewFirstPersonCamera(p.X, p.Y, p.Angle, cfg.GetFOVRadians())
	cam.NearPlane = cfg.Camera.NearPlane

	bob := math.Sin(p.BobPhase) * cfg.Graphics.BobAmplitude
	horizon := float64(h)/2 + bob

	scene := &Scene{
		Width:   w,
		Height:  h,
		Horizon: horizon,
		Ceiling: Rect{X: 0, Y: 0, W: float64(w), H: horizon, Color: ceilingColor},
		Floor:   Rect{X: 0, Y: horizon, W: float64(w), H: float64(h) - horizon, Color: floorColor},
		HUD:     s.HUD(),
	}

	depth := camera.NewDepthBuffer(w, cfg.Camera.DepthMargin)
	depth.Fill(cfg.GetMaxDepth())

	caster := view.Caster
	if caster == nil {
		caster = serialCaster{}
	}
	scene.Walls = composeWalls(s, cam, caster, depth, w, h, horizon)
	scene.Sprites = composeSprites(s, cam, depth, w, h, horizon)
	scene.Weapon = composeWeapon(s, w, h)
	scene.Minimap = composeMinimap(s, w)

	for _, m := range s.Messages() {
		scene.Messages = append(scene.Messages, m.Text)
	}
	if cfg.Player.HurtFlash > 0 {
		scene.HurtAlpha = geom.Clamp(p.HurtFlash/cfg.Player.HurtFlash, 0, 1) * 0.45
	}
	scene.Overlay = composeOverlay(scene.HUD)
	return scene
}

// composeWalls casts one ray per RayColumnStep columns. Each slice is drawn
// one pixel wider than its step so adjacent slices never leave a seam.
func composeWalls(s *game.GameSession, cam *camera.FirstPersonCamera, caster ColumnCaster, depth *camera.DepthBuffer, w, h int, horizon float64) []WallColumn {
	cfg := s.Config()
	cs := s.Collision()
	step := mathutil.IntMax(1, cfg.Camera.RayColumnStep)
	n := (w + step - 1) / step
	maxDepth := cfg.GetMaxDepth()

	hits := caster.CastColumns(n, func(i int) collision.RayHit {
		dirX, dirY := cam.RayDirection(float64(i*step), w)
		return cs.CastRayDir(cam.X, cam.Y, dirX, dirY, maxDepth)
	})

	walls := make([]WallColumn, 0, n)
	for i, hit := range hits {
		x := i * step
		if hit.Missed {
			continue
		}
		depth.SetSpan(x, step, hit.Distance)

		height := float64(h) / hit.Distance
		base := textureBand(GetTileColor(hit.WallType), hit.WallFraction)
		walls = append(walls, WallColumn{
			X:        x,
			Width:    mathutil.IntMin(step+1, w-x),
			Top:      horizon - height/2,
			Height:   height,
			Distance: hit.Distance,
			Side:     hit.Side,
			WallType: hit.WallType,
			TexU:     hit.WallFraction,
			Color:    Shade(base, hit.Side, hit.Distance, cfg.Graphics.FogDistance),
		})
	}
	return walls
}

// composeSprites projects living monsters, active pickups and the exit,
// sorts them far to near and keeps only the columns where they are in
// front of the walls.
func composeSprites(s *game.GameSession, cam *camera.FirstPersonCamera, depth *camera.DepthBuffer, w, h int, horizon float64) []Sprite {
	cfg := s.Config()
	sprites := make([]Sprite, 0, len(s.Monsters())+len(s.Pickups())+1)

	add := func(x, y, scaleFactor, lift float64, kind SpriteKind, c color.RGBA, flash bool) {
		proj, ok := cam.Project(x, y, w)
		if !ok {
			return
		}
		full := proj.Size(h)
		size := full * scaleFactor
		floorY := horizon + full/2
		sp := Sprite{
			Kind:    kind,
			ScreenX: proj.ScreenX,
			Left:    float64(proj.ScreenX) - size/2,
			Top:     floorY - size - lift*full,
			Size:    size,
			Depth:   proj.TransformY,
			Color:   Shade(c, 0, proj.TransformY, cfg.Graphics.FogDistance),
			Flash:   flash,
		}
		sp.Strips = clipStrips(depth, sp.Left, sp.Left+size, proj.TransformY)
		if len(sp.Strips) > 0 {
			sprites = append(sprites, sp)
		}
	}

	for _, m := range s.Monsters() {
		if !m.IsAlive() {
			continue
		}
		kind, c, sc := monsterSprite(m.Kind)
		add(m.X, m.Y, sc, 0, kind, c, m.HitFlash > 0)
	}
	for _, pk := range s.Pickups() {
		if !pk.Active {
			continue
		}
		kind, c := pickupSprite(pk.Kind)
		lift := 0.05 + 0.05*math.Sin(pk.Phase*3)
		add(pk.X, pk.Y, 0.3, lift, kind, c, false)
	}
	if lvl := s.Level(); lvl.HasExit {
		add(lvl.Exit.X, lvl.Exit.Y, 0.9, 0, SpriteExit, minimapExit, false)
	}

	sort.SliceStable(sprites, func(i, j int) bool {
		return sprites[i].Depth > sprites[j].Depth
	})
	return sprites
}

// clipStrips returns the visible column runs of a sprite spanning screen
// x in [left, right).
func clipStrips(depth *camera.DepthBuffer, left, right, d float64) []Strip {
	x0 := mathutil.IntMax(0, int(math.Floor(left)))
	x1 := mathutil.IntMin(depth.Width()-1, int(math.Ceil(right))-1)

	var strips []Strip
	start := -1
	for col := x0; col <= x1; col++ {
		if depth.Visible(col, d) {
			if start < 0 {
				start = col
			}
			continue
		}
		if start >= 0 {
			strips = append(strips, Strip{X0: start, X1: col - 1})
			start = -1
		}
	}
	if start >= 0 {
		strips = append(strips, Strip{X0: start, X1: x1})
	}
	return strips
}

func composeWeapon(s *game.GameSession, w, h int) Weapon {
	cfg := s.Config()
	p := s.Player()

	gw := float64(w) * 0.16
	gh := float64(h) * 0.28
	x := float64(w)/2 - gw/2 + math.Sin(p.BobPhase*0.5)*cfg.Graphics.BobAmplitude*1.5
	y := float64(h) - gh + math.Abs(math.Cos(p.BobPhase))*cfg.Graphics.BobAmplitude

	if cfg.Weapon.KickTime > 0 {
		y += geom.Clamp(p.Kick/cfg.Weapon.KickTime, 0, 1) * gh * 0.12
	}
	if p.Reloading {
		// Dip the gun out of view and bring it back as the reload completes.
		y += math.Sin(p.ReloadProgress()*math.Pi) * gh * 0.6
	}
	return Weapon{
		X:         x,
		Y:         y,
		W:         gw,
		H:         gh,
		Muzzle:    p.MuzzleFlash > 0,
		Reloading: p.Reloading,
	}
}

func composeOverlay(h game.HUD) *Overlay {
	switch h.Mode {
	case game.ModeMenu:
		return &Overlay{
			Title: "HELLGRID: BREACH",
			Lines: []string{
				"WASD move  Arrows/mouse turn  Shift sprint",
				"Space/click fire  R reload  E use",
				"Press Enter to start",
			},
		}
	case game.ModePaused:
		return &Overlay{Title: "PAUSED", Lines: []string{"Press Esc to resume"}}
	case game.ModeDead:
		return &Overlay{
			Title: "YOU DIED",
			Lines: []string{
				fmt.Sprintf("Level %d: %s", h.LevelNumber, h.LevelName),
				"Press Enter to retry",
			},
		}
	case game.ModeWin:
		return &Overlay{
			Title: "BREACH SEALED",
			Lines: []string{
				fmt.Sprintf("Score %d  Kills %d  Time %s", h.Score, h.Kills, h.PlayTime),
				"Press Enter to play again",
			},
		}
	}
	return nil
}

package audio

import (
	"bytes"

	"github.com/charmbracelet/log"
	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"

	"hellgrid/internal/config"
	"hellgrid/internal/game"
	"hellgrid/internal/mathutil"
)

// Mixer turns drained cues into sounds. Effects are synthesised once and
// replayed from memory; the ambient drone loops while the game runs.
type Mixer struct {
	ctx     *ebaudio.Context
	volume  float64
	effects map[game.Cue][]byte
	ambient *ebaudio.Player
	logger  *log.Logger
}

// NewMixer creates the process-wide audio context. Call it once.
func NewMixer(cfg config.AudioConfig, logger *log.Logger) *Mixer {
	ctx := ebaudio.NewContext(cfg.SampleRate)
	rng := mathutil.NewRand(1)

	m := &Mixer{
		ctx:     ctx,
		volume:  cfg.Volume,
		effects: make(map[game.Cue][]byte, len(cueTones)),
		logger:  logger,
	}
	for cue, tone := range cueTones {
		m.effects[cue] = Synthesize(tone, cfg.SampleRate, rng)
	}

	drone := Drone(cfg.SampleRate, 1)
	loop := ebaudio.NewInfiniteLoop(bytes.NewReader(drone), int64(len(drone)))
	player, err := ctx.NewPlayer(loop)
	if err != nil {
		logger.Warn("ambient loop unavailable", "err", err)
	} else {
		player.SetVolume(cfg.Volume)
		m.ambient = player
	}

	logger.Debug("audio ready", "sample_rate", cfg.SampleRate, "effects", len(m.effects))
	return m
}

// Play starts a sound for every cue.
func (m *Mixer) Play(cues []game.Cue) {
	for _, c := range cues {
		switch c {
		case game.CueAmbientStart:
			if m.ambient != nil && !m.ambient.IsPlaying() {
				m.ambient.Play()
			}
		case game.CueAmbientStop:
			if m.ambient != nil {
				m.ambient.Pause()
			}
		default:
			pcm, ok := m.effects[c]
			if !ok || len(pcm) == 0 {
				continue
			}
			p := m.ctx.NewPlayerFromBytes(pcm)
			p.SetVolume(m.volume)
			p.Play()
		}
	}
}

// Close stops the ambient loop.
func (m *Mixer) Close() {
	if m.ambient != nil {
		if err := m.ambient.Close(); err != nil {
			m.logger.Warn("close ambient player", "err", err)
		}
	}
}

// Package audio synthesises the game's sound effects and plays them
// through ebiten's audio context.
package audio

import (
	"math"

	"hellgrid/internal/game"
	"hellgrid/internal/mathutil"
)

const (
	channels       = 2
	bytesPerSample = 2
	frameBytes     = channels * bytesPerSample
	peakAmplitude  = 20000
)

// Tone is a decaying frequency sweep with optional noise.
type Tone struct {
	StartHz  float64
	EndHz    float64
	Duration float64 // seconds
	Volume   float64 // 0..1
	Noise    float64 // share of white noise in the mix, 0..1
}

var cueTones = map[game.Cue]Tone{
	game.CueShot:        {StartHz: 220, EndHz: 60, Duration: 0.18, Volume: 0.9, Noise: 0.7},
	game.CueHit:         {StartHz: 520, EndHz: 380, Duration: 0.06, Volume: 0.5, Noise: 0.2},
	game.CueKill:        {StartHz: 160, EndHz: 40, Duration: 0.35, Volume: 0.8, Noise: 0.5},
	game.CuePickup:      {StartHz: 660, EndHz: 990, Duration: 0.12, Volume: 0.6},
	game.CueHurt:        {StartHz: 140, EndHz: 90, Duration: 0.2, Volume: 0.8, Noise: 0.3},
	game.CueReloadStart: {StartHz: 300, EndHz: 260, Duration: 0.05, Volume: 0.4, Noise: 0.6},
	game.CueReloadEnd:   {StartHz: 420, EndHz: 480, Duration: 0.07, Volume: 0.5, Noise: 0.4},
	game.CueEmpty:       {StartHz: 900, EndHz: 900, Duration: 0.03, Volume: 0.4},
	game.CueGate:        {StartHz: 180, EndHz: 170, Duration: 0.25, Volume: 0.5},
	game.CueLevelClear:  {StartHz: 440, EndHz: 880, Duration: 0.6, Volume: 0.6},
}

// ToneFor returns the effect for a one-shot cue. Ambient cues have none.
func ToneFor(c game.Cue) (Tone, bool) {
	t, ok := cueTones[c]
	return t, ok
}

// Synthesize renders t as 16-bit little-endian stereo PCM with a linear
// fade-out. rng feeds the noise component.
func Synthesize(t Tone, sampleRate int, rng mathutil.Rand) []byte {
	frames := int(t.Duration * float64(sampleRate))
	if frames <= 0 {
		return nil
	}
	buf := make([]byte, frames*frameBytes)

	phase := 0.0
	for i := 0; i < frames; i++ {
		progress := float64(i) / float64(frames)
		hz := t.StartHz + (t.EndHz-t.StartHz)*progress
		phase += mathutil.TwoPi * hz / float64(sampleRate)

		v := math.Sin(phase) * (1 - t.Noise)
		if t.Noise > 0 {
			v += (rng.Float64()*2 - 1) * t.Noise
		}
		v *= t.Volume * (1 - progress)
		putFrame(buf, i, v)
	}
	return buf
}

// Drone renders two seconds of low hum that loops without a click: both
// partials complete a whole number of cycles.
func Drone(sampleRate int, volume float64) []byte {
	const seconds = 2
	frames := seconds * sampleRate
	buf := make([]byte, frames*frameBytes)
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(sampleRate)
		v := 0.6*math.Sin(mathutil.TwoPi*55*t) + 0.4*math.Sin(mathutil.TwoPi*82.5*t)
		putFrame(buf, i, v*volume*0.35)
	}
	return buf
}

func putFrame(buf []byte, frame int, v float64) {
	v = math.Max(-1, math.Min(1, v))
	sample := int16(v * peakAmplitude)
	for ch := 0; ch < channels; ch++ {
		base := frame*frameBytes + ch*bytesPerSample
		buf[base] = byte(sample)
		buf[base+1] = byte(uint16(sample) >> 8)
	}
}

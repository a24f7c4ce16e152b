package audio

import (
	"encoding/binary"
	"testing"

	"hellgrid/internal/game"
	"hellgrid/internal/mathutil"
)

func TestToneFor(t *testing.T) {
	oneShots := []game.Cue{
		game.CueShot, game.CueHit, game.CueKill, game.CuePickup, game.CueHurt,
		game.CueReloadStart, game.CueReloadEnd, game.CueEmpty, game.CueGate, game.CueLevelClear,
	}
	for _, c := range oneShots {
		if _, ok := ToneFor(c); !ok {
			t.Errorf("no tone for %v", c)
		}
	}
	for _, c := range []game.Cue{game.CueAmbientStart, game.CueAmbientStop} {
		if _, ok := ToneFor(c); ok {
			t.Errorf("ambient cue %v should not map to a one-shot tone", c)
		}
	}
}

func TestSynthesize(t *testing.T) {
	const rate = 8000
	tone := Tone{StartHz: 440, EndHz: 440, Duration: 0.25, Volume: 1}
	pcm := Synthesize(tone, rate, mathutil.NewRand(1))

	if want := 2000 * frameBytes; len(pcm) != want {
		t.Fatalf("len = %d, want %d", len(pcm), want)
	}

	peak := 0
	for i := 0; i < len(pcm); i += frameBytes {
		left := int16(binary.LittleEndian.Uint16(pcm[i:]))
		right := int16(binary.LittleEndian.Uint16(pcm[i+bytesPerSample:]))
		if left != right {
			t.Fatalf("frame %d: channels differ", i/frameBytes)
		}
		if v := int(left); v > peak {
			peak = v
		} else if -v > peak {
			peak = -v
		}
	}
	if peak == 0 || peak > peakAmplitude {
		t.Errorf("peak = %d, want within (0, %d]", peak, peakAmplitude)
	}

	// The fade-out leaves the tail near silence.
	last := int16(binary.LittleEndian.Uint16(pcm[len(pcm)-frameBytes:]))
	if last > 50 || last < -50 {
		t.Errorf("tail sample = %d, want near 0", last)
	}
}

func TestSynthesize_ZeroDuration(t *testing.T) {
	if pcm := Synthesize(Tone{StartHz: 100, Volume: 1}, 44100, mathutil.NewRand(1)); pcm != nil {
		t.Errorf("got %d bytes for an empty tone", len(pcm))
	}
}

func TestDroneLoopsCleanly(t *testing.T) {
	const rate = 8000
	pcm := Drone(rate, 1)
	if len(pcm) != 2*rate*frameBytes {
		t.Fatalf("len = %d", len(pcm))
	}
	first := int16(binary.LittleEndian.Uint16(pcm))
	if first != 0 {
		t.Errorf("loop starts at %d, want 0", first)
	}
}

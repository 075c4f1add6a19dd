package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Streamer builds a fresh, finite streamer for cue.
func Streamer(cue Cue, rate beep.SampleRate) beep.Streamer {
	switch cue {
	case CuePurchase:
		return beep.Seq(
			tone(rate, 660, 70*time.Millisecond, 0.35),
			tone(rate, 990, 120*time.Millisecond, 0.35),
		)
	case CueError:
		return beep.Seq(
			tone(rate, 140, 90*time.Millisecond, 0.5),
			beep.Silence(rate.N(30*time.Millisecond)),
			tone(rate, 110, 120*time.Millisecond, 0.5),
		)
	default:
		return tone(rate, 880, 35*time.Millisecond, 0.25)
	}
}

// tone is a sine at freq with a linear fade-out, scaled to volume.
func tone(rate beep.SampleRate, freq float64, d time.Duration, volume float64) beep.Streamer {
	n := rate.N(d)
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return beep.Silence(n)
	}
	return &effects.Gain{
		Streamer: &fadeOut{s: beep.Take(n, sine), total: n},
		Gain:     volume - 1,
	}
}

// fadeOut ramps amplitude linearly from 1 to 0 over total samples.
type fadeOut struct {
	s     beep.Streamer
	total int
	pos   int
}

func (f *fadeOut) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.s.Stream(samples)
	for i := 0; i < n; i++ {
		k := 1 - float64(f.pos)/float64(f.total)
		if k < 0 {
			k = 0
		}
		samples[i][0] *= k
		samples[i][1] *= k
		f.pos++
	}
	return n, ok
}

func (f *fadeOut) Err() error { return f.s.Err() }

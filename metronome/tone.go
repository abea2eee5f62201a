package metronome

import (
	"math"
	"time"

	"github.com/gopxl/beep/v2"
)

const sampleRate = beep.SampleRate(44100)

// tone is a sine wave with a short linear fade at both ends to avoid pops.
type tone struct {
	samples   int
	position  int
	frequency float64
	gain      float64
}

func newTone(frequency float64, duration time.Duration, gain float64) *tone {
	return &tone{
		samples:   sampleRate.N(duration),
		frequency: frequency,
		gain:      gain,
	}
}

func (t *tone) envelope() float64 {
	fade := max(t.samples/20, 10)

	switch {
	case t.position < fade:
		return float64(t.position) / float64(fade)
	case t.position > t.samples-fade:
		return float64(t.samples-t.position) / float64(fade)
	default:
		return 1
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.samples {
			return i, i > 0
		}

		phase := 2 * math.Pi * t.frequency * float64(t.position) / float64(sampleRate)
		value := math.Sin(phase) * t.envelope() * t.gain

		samples[i][0] = value
		samples[i][1] = value
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error {
	return nil
}

//go:build (linux && cgo) || windows || darwin

package metronome

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

var (
	speakerOnce sync.Once
	speakerErr  error
)

type speakerOutput struct{}

func (speakerOutput) Play(s beep.Streamer) {
	speaker.Play(s)
}

// Speaker returns the system audio output, initialising it on first use.
func Speaker() (Output, error) {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(sampleRate, sampleRate.N(bufferDuration))
	})
	if speakerErr != nil {
		return nil, fmt.Errorf("init speaker: %w", speakerErr)
	}
	return speakerOutput{}, nil
}

//go:build !((linux && cgo) || windows || darwin)

package metronome

import (
	"fmt"
	"io"
	"os"

	"github.com/gopxl/beep/v2"
)

// bellOutput rings the terminal bell instead of playing audio.
type bellOutput struct {
	w io.Writer
}

func (b bellOutput) Play(beep.Streamer) {
	fmt.Fprint(b.w, "\a")
}

// Speaker returns the terminal bell; audio output needs cgo on this platform.
func Speaker() (Output, error) {
	return bellOutput{w: os.Stderr}, nil
}

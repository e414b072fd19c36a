package dancefile

import (
	"time"

	"github.com/simonhull/dancefile/internal/mp3"
	"github.com/simonhull/dancefile/internal/types"
)

// Channels is an alias to types.Channels.
// Re-exporting from internal/types to maintain public API.
type Channels = types.Channels

// Settings is an alias to mp3.Settings.
type Settings = mp3.Settings

// DefaultSettings encode 44.1 kHz stereo with 1152-sample frames.
var DefaultSettings = mp3.DefaultSettings

// CanonicalSampleRate is the rate every loaded file is converted to.
const CanonicalSampleRate = 44100

// durationOf returns the playing time of n samples at rate.
func durationOf(n, rate int) time.Duration {
	if rate <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second / time.Duration(rate)
}

package dancefile

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/simonhull/dancefile/internal/container"
	"github.com/simonhull/dancefile/internal/mp3"
	"github.com/simonhull/dancefile/internal/types"
)

func sine(n int, freq float64, amp float32, rate int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = amp * float32(math.Sin(2*math.Pi*freq*float64(i)/float64(rate)))
	}
	return out
}

// encodeMP3 encodes a stereo test signal with optional tags.
func encodeMP3(t *testing.T, left, right []float32, s mp3.Settings, tags *types.Tags) []byte {
	t.Helper()

	frames, err := mp3.Encode(left, right, s)
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	if tags == nil {
		return frames
	}

	out, err := mp3.WriteTags(frames, *tags)
	if err != nil {
		t.Fatalf("tag fixture: %v", err)
	}
	return out
}

// writeFixture writes data to name inside a fresh temp dir and returns the path.
func writeFixture(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// plainMP3 writes half a second of tagged 44.1 kHz stereo without a container.
// Channel 0 is a quiet 220 Hz tone and channel 1 a louder 440 Hz tone.
func plainMP3(t *testing.T) string {
	t.Helper()

	n := 22050
	tags := types.Tags{Artist: "Daft Punk", Title: "Face To Face"}
	return writeFixture(t, "plain.mp3",
		encodeMP3(t, sine(n, 220, 0.05, 44100), sine(n, 440, 0.5, 44100), mp3.DefaultSettings, &tags))
}

// danceMP3 writes a tagged file with payload embedded between tag and frames.
func danceMP3(t *testing.T, payload []byte) string {
	t.Helper()

	n := 11025
	region, err := container.Serialize(payload)
	if err != nil {
		t.Fatalf("serialize container: %v", err)
	}

	frames := encodeMP3(t, sine(n, 100, 0.3, 44100), sine(n, 440, 0.5, 44100), mp3.DefaultSettings, nil)
	out, err := mp3.WriteTags(append(region, frames...), types.Tags{Artist: "Roboto", Title: "BeepBeep"})
	if err != nil {
		t.Fatalf("tag fixture: %v", err)
	}
	return writeFixture(t, "dance.mp3", out)
}

func payloadOf(n int) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = byte(i * 7)
	}
	return p
}

func wantCode(t *testing.T, err error, want Result) {
	t.Helper()

	if got := CodeOf(err); got != want {
		t.Fatalf("CodeOf(err) = %v, want %v (err: %v)", got, want, err)
	}
}

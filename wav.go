package dancefile

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/simonhull/dancefile/internal/dsp"
)

const (
	wavBitDepth   = 16
	wavChannels   = 2
	wavPCMFormat  = 1
	beepFrequency = 1000.0
	beepAmplitude = 0.5
	beepDivisor   = 20 // beep length is rate/beepDivisor samples (50 ms)
)

// ExportWAV writes the decoded channels to a 16-bit stereo WAV file at
// 44.1 kHz, music on the left and data on the right.
//
// Useful for inspecting the control signal in an audio editor.
func (f *File) ExportWAV(path string) error {
	if !f.HasData() {
		return &Error{Code: FileWriteError, Op: "wav", Path: path, Err: errors.New("no audio data")}
	}

	data := f.channels.Data
	if len(data) == 0 {
		data = make([]float32, f.channels.Len())
	}

	return writeWAV(path, f.channels.Music, data, f.options().settings.SampleRate)
}

// ExportWAVBeats writes music on the left channel and a short 1 kHz beep at
// every beat offset on the right. Offsets are in samples; those outside the
// music are ignored.
func (f *File) ExportWAVBeats(path string, beats []int64) error {
	if !f.HasData() {
		return &Error{Code: FileWriteError, Op: "wav", Path: path, Err: errors.New("no audio data")}
	}

	rate := f.options().settings.SampleRate
	return writeWAV(path, f.channels.Music, beepTrack(f.channels.Len(), beats, rate), rate)
}

// beepTrack returns n samples of silence with a sine burst starting at each
// beat.
func beepTrack(n int, beats []int64, rate int) []float32 {
	out := make([]float32, n)
	length := int64(rate / beepDivisor)

	for _, b := range beats {
		if b < 0 || b >= int64(n) {
			continue
		}
		for i := int64(0); i < length && b+i < int64(n); i++ {
			phase := 2 * math.Pi * beepFrequency * float64(i) / float64(rate)
			out[b+i] = float32(beepAmplitude * math.Sin(phase))
		}
	}

	return out
}

func writeWAV(path string, left, right []float32, rate int) error {
	out, err := os.Create(path)
	if err != nil {
		return &Error{Code: FileOpenError, Op: "wav", Path: path, Err: err}
	}

	enc := wav.NewEncoder(out, rate, wavBitDepth, wavChannels, wavPCMFormat)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: wavChannels,
			SampleRate:  rate,
		},
		Data:           interleavePCM16(left, right),
		SourceBitDepth: wavBitDepth,
	}

	if err := enc.Write(buf); err != nil {
		_ = out.Close() //nolint:errcheck // Best effort cleanup
		return &Error{Code: FileWriteError, Op: "wav", Path: path, Err: fmt.Errorf("write samples: %w", err)}
	}
	if err := enc.Close(); err != nil {
		_ = out.Close() //nolint:errcheck // Best effort cleanup
		return &Error{Code: FileWriteError, Op: "wav", Path: path, Err: fmt.Errorf("finalize header: %w", err)}
	}
	if err := out.Close(); err != nil {
		return &Error{Code: FileWriteError, Op: "wav", Path: path, Err: err}
	}

	return nil
}

func interleavePCM16(left, right []float32) []int {
	data := make([]int, 2*len(left))
	for i := range left {
		data[2*i] = int(math.Round(dsp.Clamp(float64(left[i])) * math.MaxInt16))
		if i < len(right) {
			data[2*i+1] = int(math.Round(dsp.Clamp(float64(right[i])) * math.MaxInt16))
		}
	}
	return data
}

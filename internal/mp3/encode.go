package mp3

import (
	"bytes"
	"fmt"
	"math"

	shine "github.com/braheezy/shine-mp3/pkg/mp3"

	"github.com/simonhull/dancefile/internal/types"
)

// Settings fixes the output format of Encode.
type Settings struct {
	// SampleRate is the canonical rate every file is normalized to.
	SampleRate int
	// BlockSize is the number of samples per channel in one encoded frame.
	BlockSize int
	// Bitrate is the output bitrate in kbps. The encoder only produces
	// 128 kbps CBR; 0 means the same, anything else is rejected by Encode.
	Bitrate int
}

// DefaultSettings produce MPEG-1 Layer III at 44.1 kHz, 1152 samples per frame.
var DefaultSettings = Settings{
	SampleRate: 44100,
	BlockSize:  1152,
	Bitrate:    128,
}

// Channels is the number of channels Encode writes.
const Channels = 2

// encoderBitrate is the only bitrate the encoder supports, in kbps.
const encoderBitrate = 128

// Encode encodes left and right as a stereo MP3 bitstream.
//
// Both channels must have the same length. Samples are clamped to [-1, 1]
// and the tail is zero-padded to a whole number of blocks.
func Encode(left, right []float32, s Settings) (out []byte, err error) {
	if len(left) != len(right) {
		return nil, types.Errorf(types.PCMDataNotSameLength, "encode",
			"channel 0 has %d samples, channel 1 has %d", len(left), len(right))
	}
	if len(left) == 0 {
		return nil, types.Errorf(types.MP3EncodingError, "encode", "no PCM data")
	}
	if s.SampleRate <= 0 || s.BlockSize <= 0 {
		return nil, types.Errorf(types.MP3EncodingError, "encode", "invalid settings %+v", s)
	}
	if s.Bitrate != 0 && s.Bitrate != encoderBitrate {
		return nil, types.Errorf(types.MP3EncodingError, "encode",
			"unsupported bitrate %d kbps, only %d is available", s.Bitrate, encoderBitrate)
	}

	pcm := interleave(left, right, s.BlockSize)

	// The encoder signals some internal faults by panicking.
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = types.Errorf(types.MP3EncodingError, "encode", "encoder fault: %v", r)
		}
	}()

	var buf bytes.Buffer
	enc := shine.NewEncoder(s.SampleRate, Channels)
	if err := enc.Write(&buf, pcm); err != nil {
		return nil, &types.Error{Code: types.MP3EncodingError, Op: "encode", Err: err}
	}
	if buf.Len() == 0 {
		return nil, types.Errorf(types.MP3EncodingError, "encode", "encoder produced no output")
	}

	return buf.Bytes(), nil
}

// PaddedLen returns n rounded up to a whole number of blocks.
func PaddedLen(n, blockSize int) int {
	return (n + blockSize - 1) / blockSize * blockSize
}

// interleave builds zero-padded interleaved 16-bit PCM.
//
// The encoder advances an unsafe pointer one sample frame past the last
// block and keeps it in its heap state, so the buffer carries one spare
// frame of capacity to keep that pointer inside the allocation.
func interleave(left, right []float32, blockSize int) []int16 {
	n := PaddedLen(len(left), blockSize) * Channels
	pcm := make([]int16, n, n+Channels)
	for i := range left {
		pcm[i*Channels] = toInt16(left[i])
		pcm[i*Channels+1] = toInt16(right[i])
	}
	return pcm
}

func toInt16(s float32) int16 {
	v := float64(s)
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return int16(math.Round(v * math.MaxInt16))
}

// String describes the settings, e.g. "44.1kHz 128kbps stereo".
func (s Settings) String() string {
	return fmt.Sprintf("%.1fkHz %dkbps %s", float64(s.SampleRate)/1000, s.Bitrate, types.ChannelDescription(Channels))
}

// Package mp3 adapts the MP3 decoder, encoder and ID3 tag libraries to the
// sample and tag types used by dancefile. It is the only package that touches
// the compressed bitstream.
package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/simonhull/dancefile/internal/types"
)

// go-mp3 always produces 16-bit little-endian stereo.
const (
	bytesPerSample = 2
	pcmChannels    = 2
	bytesPerFrame  = bytesPerSample * pcmChannels
)

// Stream is a fully decoded bitstream.
type Stream struct {
	// Left and Right are stereo channels 0 and 1. Mono sources are duplicated.
	Left  []float32
	Right []float32

	// Header of the first audio frame.
	Header FrameHeader

	// SampleRate as reported by the decoder.
	SampleRate int

	// FrameOffset is the byte offset of the first audio frame.
	FrameOffset int64

	// Truncated is set when the last frame ended early and was dropped.
	Truncated bool
}

// SourceChannels returns the channel count declared by the first frame.
func (s *Stream) SourceChannels() int {
	return s.Header.Channels
}

// Decode decodes every frame from the first one at or after from.
//
// from is the end of any pre-frame data the caller has already identified
// (ID3v2 tag, embedded container). With from == 0 the stream must start with
// an ID3v2 tag or a frame header, otherwise it is not an MP3 file.
func Decode(bitstream []byte, from int64) (*Stream, error) {
	from = max(0, min(from, int64(len(bitstream))))

	if from == 0 && !HasID3v2(bitstream) {
		if _, err := ParseFrameHeader(bitstream); err != nil {
			return nil, &types.Error{Code: types.NotAnMP3File, Op: "decode", Err: err}
		}
	}

	audio := stripID3v1(bitstream)
	if from > int64(len(audio)) {
		from = int64(len(audio))
	}

	offset, header, err := FindFrame(audio, from)
	if err != nil {
		return nil, &types.Error{Code: types.CorruptHeader, Op: "decode", Err: err}
	}

	d, err := gomp3.NewDecoder(bytes.NewReader(audio[offset:]))
	if err != nil {
		return nil, &types.Error{Code: types.MP3DecodingError, Op: "decode", Err: err}
	}

	pcm, err := io.ReadAll(d)
	truncated := false
	if err != nil {
		// A short final frame is common in the wild; keep what decoded.
		if !errors.Is(err, io.ErrUnexpectedEOF) || len(pcm) == 0 {
			return nil, &types.Error{Code: types.MP3DecodingError, Op: "decode", Err: err}
		}
		truncated = true
	}

	if len(pcm) < bytesPerFrame {
		return nil, types.Errorf(types.MP3DecodingError, "decode", "no audio samples decoded")
	}

	left, right := splitPCM(pcm)

	return &Stream{
		Left:        left,
		Right:       right,
		Header:      header,
		SampleRate:  d.SampleRate(),
		FrameOffset: offset,
		Truncated:   truncated,
	}, nil
}

// splitPCM converts interleaved 16-bit stereo into two float channels.
func splitPCM(pcm []byte) (left, right []float32) {
	n := len(pcm) / bytesPerFrame
	left = make([]float32, n)
	right = make([]float32, n)

	for i := range n {
		off := i * bytesPerFrame
		l := int16(binary.LittleEndian.Uint16(pcm[off:]))
		r := int16(binary.LittleEndian.Uint16(pcm[off+bytesPerSample:]))
		left[i] = float32(l) / 32768
		right[i] = float32(r) / 32768
	}

	return left, right
}

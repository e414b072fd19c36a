package mp3

import (
	"encoding/binary"
	"fmt"
)

// MPEG audio version IDs as stored in the frame header.
const (
	versionMPEG25 = 0
	versionMPEG2  = 2
	versionMPEG1  = 3
)

// Layer III bitrates in kbps, indexed by bitrate index.
var (
	bitrateMPEG1 = [16]int{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0}
	bitrateMPEG2 = [16]int{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0}
)

// Sample rates in Hz, indexed by version ID then sample rate index.
var sampleRateTable = [4][3]int{
	versionMPEG25: {11025, 12000, 8000},
	versionMPEG2:  {22050, 24000, 16000},
	versionMPEG1:  {44100, 48000, 32000},
}

// FrameHeader is a decoded MPEG Layer III frame header.
type FrameHeader struct {
	Version    int // versionMPEG1, versionMPEG2 or versionMPEG25
	Bitrate    int // bits per second
	SampleRate int // Hz
	Channels   int // 1 or 2
	Padding    bool
}

// SamplesPerFrame returns the number of PCM samples per channel in the frame.
func (h FrameHeader) SamplesPerFrame() int {
	if h.Version == versionMPEG1 {
		return 1152
	}
	return 576
}

// Length returns the frame size in bytes, header included.
func (h FrameHeader) Length() int {
	coeff := 144
	if h.Version != versionMPEG1 {
		coeff = 72
	}
	n := coeff * h.Bitrate / h.SampleRate
	if h.Padding {
		n++
	}
	return n
}

// ParseFrameHeader decodes a 4-byte Layer III frame header.
//
// Free-format bitrates and reserved version, bitrate, and sample rate values
// are rejected.
func ParseFrameHeader(b []byte) (FrameHeader, error) {
	if len(b) < 4 {
		return FrameHeader{}, fmt.Errorf("frame header needs 4 bytes, have %d", len(b))
	}

	header := binary.BigEndian.Uint32(b)

	// Frame sync (11 bits set: 0xFFE00000)
	if header&0xFFE00000 != 0xFFE00000 {
		return FrameHeader{}, fmt.Errorf("invalid frame sync")
	}

	version := int((header >> 19) & 0x3)
	if version == 1 {
		return FrameHeader{}, fmt.Errorf("reserved MPEG version")
	}

	// Layer III (01)
	if (header>>17)&0x3 != 1 {
		return FrameHeader{}, fmt.Errorf("unsupported layer")
	}

	bitrateIdx := (header >> 12) & 0xF
	if bitrateIdx == 0 || bitrateIdx == 15 {
		return FrameHeader{}, fmt.Errorf("unsupported bitrate index %d", bitrateIdx)
	}

	sampleRateIdx := (header >> 10) & 0x3
	if sampleRateIdx == 3 {
		return FrameHeader{}, fmt.Errorf("reserved sample rate index")
	}

	h := FrameHeader{
		Version:    version,
		SampleRate: sampleRateTable[version][sampleRateIdx],
		Padding:    (header>>9)&0x1 == 1,
		Channels:   2,
	}

	if version == versionMPEG1 {
		h.Bitrate = bitrateMPEG1[bitrateIdx] * 1000
	} else {
		h.Bitrate = bitrateMPEG2[bitrateIdx] * 1000
	}

	// Channel mode 3 is single channel
	if (header>>6)&0x3 == 3 {
		h.Channels = 1
	}

	return h, nil
}

// FindFrame returns the offset of the first frame at or after from.
//
// A candidate sync is accepted only if the frame it describes ends exactly at
// the end of the stream, runs past it, or is followed by another frame header
// with the same version and sample rate. This keeps stray 0xFFE bit patterns
// in padding or embedded data from being taken for audio.
func FindFrame(bitstream []byte, from int64) (int64, FrameHeader, error) {
	size := int64(len(bitstream))
	if from < 0 {
		from = 0
	}

	for off := from; off+4 <= size; off++ {
		if bitstream[off] != 0xFF {
			continue
		}

		h, err := ParseFrameHeader(bitstream[off:])
		if err != nil {
			continue
		}

		next := off + int64(h.Length())
		if next+4 > size {
			return off, h, nil
		}

		nh, err := ParseFrameHeader(bitstream[next:])
		if err == nil && nh.Version == h.Version && nh.SampleRate == h.SampleRate {
			return off, h, nil
		}
	}

	return 0, FrameHeader{}, fmt.Errorf("no valid MP3 frame found after offset %d", from)
}

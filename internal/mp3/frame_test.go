package mp3

import (
	"testing"
)

// frameHeader builds a Layer III header: MPEG version, bitrate index,
// sample-rate index, padding and channel mode.
func frameHeader(version, bitrateIdx, rateIdx uint32, padding bool, mode uint32) []byte {
	h := uint32(0xFFE00000) | version<<19 | 1<<17 | 1<<16 | bitrateIdx<<12 | rateIdx<<10 | mode<<6
	if padding {
		h |= 1 << 9
	}
	return []byte{byte(h >> 24), byte(h >> 16), byte(h >> 8), byte(h)}
}

// frameOf returns a full frame (header plus zeroed body) for header bytes.
func frameOf(t *testing.T, header []byte) []byte {
	t.Helper()
	h, err := ParseFrameHeader(header)
	if err != nil {
		t.Fatalf("ParseFrameHeader: %v", err)
	}
	frame := make([]byte, h.Length())
	copy(frame, header)
	return frame
}

func TestParseFrameHeader(t *testing.T) {
	tests := []struct {
		name       string
		header     []byte
		sampleRate int
		bitrate    int
		channels   int
		length     int
		samples    int
	}{
		{"MPEG1 128k 44.1k stereo", frameHeader(3, 9, 0, false, 0), 44100, 128000, 2, 417, 1152},
		{"MPEG1 128k 44.1k padded", frameHeader(3, 9, 0, true, 1), 44100, 128000, 2, 418, 1152},
		{"MPEG1 160k 48k mono", frameHeader(3, 10, 1, false, 3), 48000, 160000, 1, 480, 1152},
		{"MPEG1 32k", frameHeader(3, 9, 2, false, 0), 32000, 128000, 2, 576, 1152},
		{"MPEG2 64k 22.05k", frameHeader(2, 8, 0, false, 0), 22050, 64000, 2, 208, 576},
		{"MPEG2.5 8k", frameHeader(0, 1, 2, false, 3), 8000, 8000, 1, 72, 576},
		{"MPEG2.5 11.025k", frameHeader(0, 4, 0, false, 0), 11025, 32000, 2, 208, 576},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := ParseFrameHeader(tt.header)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if h.SampleRate != tt.sampleRate {
				t.Errorf("SampleRate = %d, want %d", h.SampleRate, tt.sampleRate)
			}
			if h.Bitrate != tt.bitrate {
				t.Errorf("Bitrate = %d, want %d", h.Bitrate, tt.bitrate)
			}
			if h.Channels != tt.channels {
				t.Errorf("Channels = %d, want %d", h.Channels, tt.channels)
			}
			if h.Length() != tt.length {
				t.Errorf("Length() = %d, want %d", h.Length(), tt.length)
			}
			if h.SamplesPerFrame() != tt.samples {
				t.Errorf("SamplesPerFrame() = %d, want %d", h.SamplesPerFrame(), tt.samples)
			}
		})
	}
}

func TestParseFrameHeader_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		header []byte
	}{
		{"short", []byte{0xFF, 0xFB}},
		{"no sync", []byte{0x49, 0x44, 0x33, 0x04}},
		{"reserved version", frameHeader(1, 9, 0, false, 0)},
		{"free format", frameHeader(3, 0, 0, false, 0)},
		{"bad bitrate", frameHeader(3, 15, 0, false, 0)},
		{"reserved sample rate", frameHeader(3, 9, 3, false, 0)},
		{"layer II", []byte{0xFF, 0xFD, 0x90, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseFrameHeader(tt.header); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestFindFrame(t *testing.T) {
	frame := frameOf(t, frameHeader(3, 9, 0, false, 0))

	var stream []byte
	stream = append(stream, []byte("junk")...)
	// A lone sync pattern not followed by a second frame must be skipped.
	stream = append(stream, frameHeader(3, 9, 0, false, 0)...)
	stream = append(stream, 0, 0, 0)
	start := len(stream)
	stream = append(stream, frame...)
	stream = append(stream, frame...)

	off, h, err := FindFrame(stream, 0)
	if err != nil {
		t.Fatalf("FindFrame: %v", err)
	}
	if off != int64(start) {
		t.Errorf("offset = %d, want %d", off, start)
	}
	if h.SampleRate != 44100 {
		t.Errorf("SampleRate = %d, want 44100", h.SampleRate)
	}
}

func TestFindFrame_SingleFrameAtEnd(t *testing.T) {
	frame := frameOf(t, frameHeader(2, 8, 0, false, 0))
	stream := append([]byte{0, 0}, frame...)

	off, _, err := FindFrame(stream, 0)
	if err != nil {
		t.Fatalf("FindFrame: %v", err)
	}
	if off != 2 {
		t.Errorf("offset = %d, want 2", off)
	}
}

func TestFindFrame_RespectsFrom(t *testing.T) {
	frame := frameOf(t, frameHeader(3, 9, 0, false, 0))
	stream := append(append([]byte{}, frame...), frame...)
	stream = append(stream, frame...)

	off, _, err := FindFrame(stream, 1)
	if err != nil {
		t.Fatalf("FindFrame: %v", err)
	}
	if off != int64(len(frame)) {
		t.Errorf("offset = %d, want %d", off, len(frame))
	}
}

func TestFindFrame_NotFound(t *testing.T) {
	if _, _, err := FindFrame(make([]byte, 4096), 0); err == nil {
		t.Error("expected error for stream without frames")
	}
}

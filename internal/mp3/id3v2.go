package mp3

import (
	"bytes"

	binutil "github.com/simonhull/dancefile/internal/binary"
)

const (
	id3v2HeaderSize = 10
	id3v2FooterFlag = 0x10
	id3v1Size       = 128
)

// HasID3v2 reports whether the bitstream starts with an ID3v2 tag header.
func HasID3v2(bitstream []byte) bool {
	return len(bitstream) >= id3v2HeaderSize && bytes.HasPrefix(bitstream, []byte("ID3"))
}

// TagSize returns the length of the leading ID3v2 tag including its header
// and optional footer, or 0 if the bitstream does not start with one.
//
// The result never exceeds the bitstream length.
func TagSize(bitstream []byte) int64 {
	if !HasID3v2(bitstream) {
		return 0
	}

	sr := binutil.FromBytes(bitstream, "ID3v2")

	// Version bytes are never 0xFF in a valid tag
	version, err := binutil.Read[uint8](sr, 3, "ID3v2 version")
	if err != nil || version == 0xFF {
		return 0
	}

	flags, err := binutil.Read[uint8](sr, 5, "ID3v2 flags")
	if err != nil {
		return 0
	}

	sizeBuf := make([]byte, 4)
	if err := sr.ReadAt(sizeBuf, 6, "ID3v2 size"); err != nil {
		return 0
	}

	size := int64(id3v2HeaderSize) + int64(decodeSynchsafe(sizeBuf))
	if flags&id3v2FooterFlag != 0 {
		size += id3v2HeaderSize
	}

	return min(size, int64(len(bitstream)))
}

// stripID3v1 drops a trailing 128-byte ID3v1 tag.
func stripID3v1(bitstream []byte) []byte {
	n := len(bitstream)
	if n >= id3v1Size && bytes.Equal(bitstream[n-id3v1Size:n-id3v1Size+3], []byte("TAG")) {
		return bitstream[:n-id3v1Size]
	}
	return bitstream
}

// decodeSynchsafe decodes a synchsafe integer (7 bits per byte)
// ID3v2 uses 7-bit encoding where bit 7 is always 0
func decodeSynchsafe(b []byte) uint32 {
	if len(b) != 4 {
		return 0
	}
	return uint32(b[0]&0x7F)<<21 |
		uint32(b[1]&0x7F)<<14 |
		uint32(b[2]&0x7F)<<7 |
		uint32(b[3]&0x7F)
}

// Package container reads and writes the marker-delimited region that carries
// a choreography payload in front of the first MPEG audio frame.
//
// Layout:
//
//	MARKER | LENGTH (uint32, big-endian) | PAYLOAD (LENGTH bytes) | MARKER
//
// Detection relies on an exact match of both markers. There is no checksum,
// so a payload corrupted with its markers intact is accepted as-is.
package container

import (
	"bytes"
	"fmt"
	"math"

	binutil "github.com/simonhull/dancefile/internal/binary"
)

// Marker opens and closes every embedded container.
var Marker = []byte("DANCEBOT")

// lengthSize is the width of the LENGTH field.
const lengthSize = 4

// Overhead is the number of bytes a container adds around its payload.
var Overhead = 2*len(Marker) + lengthSize

// Size returns the serialized size of a container holding n payload bytes.
func Size(n int) int {
	return Overhead + n
}

// Parse looks for a container at the start of region.
//
// It returns the payload, the total number of bytes the container occupies,
// and whether a valid container was found. A truncated region, a length that
// runs past the region, or a missing or mismatched marker all yield ok=false.
// The returned payload aliases region.
func Parse(region []byte) (payload []byte, n int, ok bool) {
	if len(region) < Overhead || !bytes.HasPrefix(region, Marker) {
		return nil, 0, false
	}

	sr := binutil.FromBytes(region, "container")
	length, err := binutil.Read[uint32](sr, int64(len(Marker)), "container length")
	if err != nil {
		return nil, 0, false
	}

	start := len(Marker) + lengthSize
	end := int64(start) + int64(length)
	if end+int64(len(Marker)) > int64(len(region)) {
		return nil, 0, false
	}

	if !bytes.Equal(region[end:end+int64(len(Marker))], Marker) {
		return nil, 0, false
	}

	return region[start:end], int(end) + len(Marker), true
}

// Serialize wraps payload in a container.
func Serialize(payload []byte) ([]byte, error) {
	if uint64(len(payload)) > math.MaxUint32 {
		return nil, fmt.Errorf("payload of %d bytes exceeds container limit", len(payload))
	}

	buf := bytes.NewBuffer(make([]byte, 0, Size(len(payload))))
	sw := binutil.NewSafeWriter(buf)

	if err := sw.WriteBytes(Marker); err != nil {
		return nil, err
	}
	if err := binutil.Write[uint32](sw, uint32(len(payload))); err != nil {
		return nil, err
	}
	if err := sw.WriteBytes(payload); err != nil {
		return nil, err
	}
	if err := sw.WriteBytes(Marker); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

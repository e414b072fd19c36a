package binary

import (
	"encoding/binary"
	"strings"
	"testing"
)

func TestSafeReader_ReadAt_Success(t *testing.T) {
	sr := FromBytes([]byte{0x01, 0x02, 0x03, 0x04}, "test.mp3")

	buf := make([]byte, 2)
	if err := sr.ReadAt(buf, 1, "test read"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if buf[0] != 0x02 || buf[1] != 0x03 {
		t.Errorf("expected [0x02, 0x03], got [0x%02x, 0x%02x]", buf[0], buf[1])
	}
}

func TestSafeReader_ReadAt_OutOfBounds(t *testing.T) {
	sr := FromBytes([]byte{0x01, 0x02, 0x03, 0x04}, "test.mp3")

	tests := []struct {
		name string
		off  int64
		n    int
	}{
		{"offset past end", 10, 2},
		{"negative offset", -1, 2},
		{"read crosses end", 3, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := sr.ReadAt(make([]byte, tt.n), tt.off, "frame header")
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			msg := err.Error()
			if !strings.Contains(msg, "test.mp3") {
				t.Errorf("error should contain name: %v", msg)
			}
			if !strings.Contains(msg, "frame header") {
				t.Errorf("error should contain context: %v", msg)
			}
		})
	}
}

func TestRead_Values(t *testing.T) {
	data := make([]byte, 15)
	data[0] = 0x42
	binary.BigEndian.PutUint16(data[1:], 0x1234)
	binary.BigEndian.PutUint32(data[3:], 0xDEADBEEF)
	binary.BigEndian.PutUint64(data[7:], 0x0102030405060708)
	sr := FromBytes(data, "values")

	if v, err := Read[uint8](sr, 0, "u8"); err != nil || v != 0x42 {
		t.Errorf("Read[uint8] = 0x%x, %v", v, err)
	}
	if v, err := Read[uint16](sr, 1, "u16"); err != nil || v != 0x1234 {
		t.Errorf("Read[uint16] = 0x%x, %v", v, err)
	}
	if v, err := Read[uint32](sr, 3, "u32"); err != nil || v != 0xDEADBEEF {
		t.Errorf("Read[uint32] = 0x%x, %v", v, err)
	}
	if v, err := Read[uint64](sr, 7, "u64"); err != nil || v != 0x0102030405060708 {
		t.Errorf("Read[uint64] = 0x%x, %v", v, err)
	}
}

func TestRead_Truncated(t *testing.T) {
	sr := FromBytes([]byte{0x00, 0x01}, "short")

	if _, err := Read[uint32](sr, 0, "length"); err == nil {
		t.Error("expected error reading uint32 from 2 bytes")
	}
}

func TestSafeReader_Accessors(t *testing.T) {
	sr := FromBytes(make([]byte, 7), "song.mp3")
	if sr.Name() != "song.mp3" {
		t.Errorf("Name() = %q, want song.mp3", sr.Name())
	}
	if sr.Size() != 7 {
		t.Errorf("Size() = %d, want 7", sr.Size())
	}
}

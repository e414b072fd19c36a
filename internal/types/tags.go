package types

import (
	"fmt"
	"time"
)

// Tags is the metadata read from and written to the ID3v2 tag region.
//
// SampleRate and Duration describe the source bitstream and are filled in by
// the decoder rather than the tag reader.
type Tags struct {
	Artist     string
	Title      string
	Comment    string
	SampleRate int
	Duration   time.Duration
}

// String returns "Artist - Title" with placeholders for missing fields.
func (t Tags) String() string {
	artist, title := t.Artist, t.Title
	if artist == "" {
		artist = "Unknown Artist"
	}
	if title == "" {
		title = "Untitled"
	}
	return fmt.Sprintf("%s - %s", artist, title)
}

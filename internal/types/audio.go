package types

import "slices"

// Channels holds the two decoded sample streams of a dance file.
//
// Data is the control stream (stereo channel 0) and Music is the audible
// track (stereo channel 1). Samples are nominally in [-1, 1].
type Channels struct {
	Data  []float32
	Music []float32
}

// Len returns the number of music samples.
func (c Channels) Len() int {
	return len(c.Music)
}

// Empty reports whether no music samples are present.
func (c Channels) Empty() bool {
	return len(c.Music) == 0
}

// Clone returns a deep copy.
func (c Channels) Clone() Channels {
	return Channels{
		Data:  slices.Clone(c.Data),
		Music: slices.Clone(c.Music),
	}
}

// ChannelDescription returns a human-readable channel layout.
func ChannelDescription(channels int) string {
	switch channels {
	case 1:
		return "mono"
	case 2:
		return "stereo"
	case 0:
		return ""
	default:
		return "multichannel"
	}
}

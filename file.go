package dancefile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/simonhull/dancefile/internal/container"
	"github.com/simonhull/dancefile/internal/dsp"
	"github.com/simonhull/dancefile/internal/mp3"
	"github.com/simonhull/dancefile/internal/types"
)

// BeatDetector finds beats in a music channel sampled at 44.1 kHz.
//
// DetectBeats returns sample offsets into music.
type BeatDetector interface {
	DetectBeats(music []float32) []int64
}

// BeatDetectorFunc adapts a function to BeatDetector.
type BeatDetectorFunc func(music []float32) []int64

// DetectBeats calls fn(music).
func (fn BeatDetectorFunc) DetectBeats(music []float32) []int64 {
	return fn(music)
}

// File is a loaded MP3 file, optionally carrying a choreography.
//
// The zero value is an empty File ready for Load. A File is not safe for
// concurrent use.
//
//	f := dancefile.New(dancefile.WithLogger(logger))
//	if err := f.Load("song.mp3"); err != nil {
//		return err
//	}
//	fmt.Println(f.Tags(), f.Duration())
type File struct {
	// Payload is the choreography carried by the file. Load sets it from the
	// embedded container, Save writes it back. Empty for plain MP3 files.
	Payload []byte

	path       string
	raw        []byte
	channels   types.Channels
	tags       types.Tags
	dance      bool
	sourceRate int
	beats      []int64

	opts *fileOptions
}

// New returns an empty File configured with opts.
func New(opts ...Option) *File {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &File{opts: o}
}

// Open is a shorthand for New(opts...) followed by Load(path).
func Open(path string, opts ...Option) (*File, error) {
	f := New(opts...)
	if err := f.Load(path); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) options() *fileOptions {
	if f.opts == nil {
		f.opts = defaultOptions()
	}
	return f.opts
}

// Load reads and decodes the MP3 file at path.
//
// Both channels are converted to 44.1 kHz. If the file carries an embedded
// container, channel 0 becomes the data channel, channel 1 the music channel
// and the container payload is stored in Payload. Otherwise the music channel
// is channel 1 (channel 0 for mono files) and the data channel is empty.
//
// Load replaces everything the File held before. On failure the File is left
// cleared and the returned *Error says why:
//
//   - FileDoesNotExist: path is missing or is a directory
//   - IOError: the file could not be read
//   - NotAnMP3File, CorruptHeader, MP3DecodingError: see the codes
func (f *File) Load(path string) error {
	o := f.options()

	next, err := load(path, o)
	if err != nil {
		f.Clear()
		o.logger.Debug("load failed", "path", path, "error", err)
		return err
	}

	*f = *next
	return nil
}

// LoadContext is Load with a context check before starting.
//
// Decoding itself is not interruptible.
func (f *File) LoadContext(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return f.Load(path)
}

// load builds a fully populated File without touching the receiver, so a
// failure part way through cannot leave a half-loaded value behind.
func load(path string, o *fileOptions) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &Error{Code: FileDoesNotExist, Op: "load", Path: path, Err: err}
		}
		return nil, &Error{Code: IOError, Op: "load", Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &Error{Code: FileDoesNotExist, Op: "load", Path: path, Err: errors.New("is a directory")}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Code: IOError, Op: "load", Path: path, Err: err}
	}

	// The container sits between the ID3v2 tag and the first frame. It is
	// located on the raw bytes so the decoder never scans the payload.
	tagSize := mp3.TagSize(raw)
	payload, n, dance := container.Parse(raw[tagSize:])
	from := tagSize
	if dance {
		from += int64(n)
	}

	stream, err := mp3.Decode(raw, from)
	if err != nil {
		return nil, withPath(err, path)
	}
	if stream.Truncated {
		o.logger.Warn("dropped truncated final frame", "path", path)
	}

	var ch types.Channels
	switch {
	case dance:
		ch.Data, ch.Music = stream.Left, stream.Right
	case stream.SourceChannels() == 1:
		ch.Music = stream.Left
	default:
		ch.Music = stream.Right
	}

	rate := o.settings.SampleRate
	if stream.SampleRate != rate {
		if ch, err = resampleChannels(ch, stream.SampleRate, rate); err != nil {
			return nil, &Error{Code: MP3DecodingError, Op: "load", Path: path, Err: err}
		}
		o.logger.Debug("resampled", "path", path, "from", stream.SampleRate, "to", rate)
	}

	tags, err := mp3.ReadTags(raw)
	if err != nil {
		o.logger.Warn("ignoring unreadable tags", "path", path, "error", err)
	}
	tags.SampleRate = stream.SampleRate
	tags.Duration = durationOf(ch.Len(), rate)

	next := &File{
		Payload:    bytes.Clone(payload),
		path:       path,
		raw:        raw,
		channels:   ch,
		tags:       tags,
		dance:      dance,
		sourceRate: stream.SampleRate,
		opts:       o,
	}

	if o.detector != nil {
		next.beats = o.detector.DetectBeats(ch.Music)
	}

	o.logger.Debug("loaded",
		"path", path,
		"dance", dance,
		"payload", len(payload),
		"rate", stream.SampleRate,
		"channels", stream.SourceChannels(),
		"samples", ch.Len())

	return next, nil
}

func resampleChannels(ch types.Channels, from, to int) (types.Channels, error) {
	music, err := dsp.Resample(ch.Music, from, to)
	if err != nil {
		return types.Channels{}, fmt.Errorf("resample music: %w", err)
	}

	var data []float32
	if len(ch.Data) > 0 {
		if data, err = dsp.Resample(ch.Data, from, to); err != nil {
			return types.Channels{}, fmt.Errorf("resample data: %w", err)
		}
	}

	return types.Channels{Data: data, Music: music}, nil
}

// Clear resets the File to the empty state. Options are kept.
func (f *File) Clear() {
	*f = File{opts: f.opts}
}

// IsDanceFile reports whether the last Load found an embedded container.
func (f *File) IsDanceFile() bool {
	return f.dance
}

// HasData reports whether decoded music is present.
func (f *File) HasData() bool {
	return !f.channels.Empty()
}

// Path returns the path of the last successful Load.
func (f *File) Path() string {
	return f.path
}

// Raw returns the bitstream of the last Load, or of the last Save after it.
//
// The returned slice must not be modified.
func (f *File) Raw() []byte {
	return f.raw
}

// Channels returns the decoded channels at 44.1 kHz.
//
// The returned slices are shared with the File and must not be modified.
func (f *File) Channels() Channels {
	return f.channels
}

// SetData replaces the data channel written by the next Save.
//
// data is sampled at 44.1 kHz and must be empty or as long as the music
// channel; Save fails with PCMDataNotSameLength otherwise. An empty data
// channel is saved as silence. The File takes ownership of data.
func (f *File) SetData(data []float32) {
	f.channels.Data = data
}

// Tags returns the current tags, including any Set* changes.
func (f *File) Tags() Tags {
	return f.tags
}

// SourceSampleRate returns the sample rate of the loaded bitstream before
// conversion.
func (f *File) SourceSampleRate() int {
	return f.sourceRate
}

// Duration returns the playing time of the music channel.
func (f *File) Duration() time.Duration {
	return f.tags.Duration
}

// Beats returns the beat offsets found by the BeatDetector during Load, in
// samples at 44.1 kHz. Nil without a detector.
func (f *File) Beats() []int64 {
	return f.beats
}

// Artist returns the TPE1 tag.
func (f *File) Artist() string { return f.tags.Artist }

// Title returns the TIT2 tag.
func (f *File) Title() string { return f.tags.Title }

// Comment returns the COMM tag.
func (f *File) Comment() string { return f.tags.Comment }

// SetArtist sets the artist written by the next Save.
func (f *File) SetArtist(artist string) { f.tags.Artist = artist }

// SetTitle sets the title written by the next Save.
func (f *File) SetTitle(title string) { f.tags.Title = title }

// SetComment sets the comment written by the next Save.
func (f *File) SetComment(comment string) { f.tags.Comment = comment }

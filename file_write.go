package dancefile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/simonhull/dancefile/internal/container"
	"github.com/simonhull/dancefile/internal/dsp"
	"github.com/simonhull/dancefile/internal/mp3"
)

// Save encodes the File and writes it to path.
//
// The music channel is normalized to the configured RMS level, the data
// channel is written as-is (silence when empty) and Payload is embedded in a
// container in front of the first frame. Tags are written as ID3v2.4.
//
// This is an atomic operation: writes to a temporary file first, then renames
// to path. If any step fails, path is left untouched and so is the File. On
// success Raw returns the new bitstream; channels, tags and Payload are not
// changed.
//
// Options can be provided to customize save behavior:
//
//	err := f.Save("dance.mp3",
//	    dancefile.WithBackup(".bak"),
//	    dancefile.WithPreserveModTime(),
//	)
func (f *File) Save(path string, opts ...SaveOption) error {
	options := defaultSaveOptions()
	for _, opt := range opts {
		opt(options)
	}
	o := f.options()

	if !f.HasData() {
		return &Error{Code: FileWriteError, Op: "save", Path: path, Err: errors.New("no audio data")}
	}

	out, gain, err := f.encode(o)
	if err != nil {
		return withPath(err, path)
	}

	if err := writeFile(path, out, options); err != nil {
		return err
	}

	if options.validate {
		if err := validateWritten(f, path); err != nil {
			return &Error{Code: FileWriteError, Op: "save", Path: path, Err: fmt.Errorf("validation failed: %w", err)}
		}
	}

	f.raw = out

	o.logger.Debug("saved",
		"path", path,
		"bytes", len(out),
		"payload", len(f.Payload),
		"gain", gain,
		"samples", f.channels.Len())

	return nil
}

// encode produces the complete output bitstream and the gain applied to the
// music channel.
func (f *File) encode(o *fileOptions) ([]byte, float64, error) {
	gain := dsp.GainToReachTarget(f.channels.Music, o.rmsTarget)
	music := dsp.ApplyGain(f.channels.Music, gain)

	data := f.channels.Data
	switch {
	case len(data) == 0:
		data = make([]float32, len(music))
	case len(data) != len(music):
		return nil, 0, &Error{Code: PCMDataNotSameLength, Op: "save",
			Err: fmt.Errorf("data channel has %d samples, music channel has %d", len(data), len(music))}
	}

	region, err := container.Serialize(f.Payload)
	if err != nil {
		return nil, 0, &Error{Code: FileWriteError, Op: "save", Err: err}
	}

	frames, err := mp3.Encode(data, music, o.settings)
	if err != nil {
		return nil, 0, err
	}

	tags := f.tags
	tags.Duration = durationOf(len(music), o.settings.SampleRate)

	out, err := mp3.WriteTags(append(region, frames...), tags)
	if err != nil {
		return nil, 0, err
	}

	return out, gain, nil
}

// writeFile atomically replaces path with data.
func writeFile(path string, data []byte, options *saveOptions) error { //nolint:gocyclo // Atomic file operations require sequential steps
	// Get original file's mod time if we need to preserve it
	var origModTime os.FileInfo
	if options.preserveModTime {
		if info, err := os.Stat(path); err == nil {
			origModTime = info
		}
	}

	// Create temp file in same directory as output (for atomic rename)
	tempFile, err := os.CreateTemp(filepath.Dir(path), ".dancefile-*.tmp")
	if err != nil {
		return &Error{Code: FileOpenError, Op: "save", Path: path, Err: fmt.Errorf("create temp file: %w", err)}
	}
	tempPath := tempFile.Name()

	// Ensure cleanup on any error
	success := false
	defer func() {
		if !success {
			_ = tempFile.Close()    //nolint:errcheck // Best effort cleanup
			_ = os.Remove(tempPath) //nolint:errcheck // Best effort cleanup
		}
	}()

	fail := func(step string, err error) error {
		return &Error{Code: FileWriteError, Op: "save", Path: path, Err: fmt.Errorf("%s: %w", step, err)}
	}

	if _, err := tempFile.Write(data); err != nil {
		return fail("write", err)
	}

	// CreateTemp uses 0600
	if err := tempFile.Chmod(0o644); err != nil {
		return fail("chmod temp file", err)
	}

	// Sync temp file (fsync) to ensure data is on disk
	if err := tempFile.Sync(); err != nil {
		return fail("sync temp file", err)
	}

	// Close temp file before rename
	if err := tempFile.Close(); err != nil {
		return fail("close temp file", err)
	}

	// Handle backup option (rename original to backup before replace)
	if options.backupSuffix != "" {
		if _, err := os.Stat(path); err == nil {
			if err := os.Rename(path, path+options.backupSuffix); err != nil {
				return fail("create backup", err)
			}
		}
	}

	// Atomic rename temp -> output
	if err := os.Rename(tempPath, path); err != nil {
		return fail("rename temp to output", err)
	}

	// Mark success so defer doesn't clean up
	success = true

	if origModTime != nil {
		_ = os.Chtimes(path, origModTime.ModTime(), origModTime.ModTime()) //nolint:errcheck // Non-fatal: file was written successfully
	}

	return nil
}

// validateWritten is the check run by WithValidation.
var validateWritten = (*File).validateWrittenFile

// validateWrittenFile re-loads the file and compares what Save must preserve.
func (f *File) validateWrittenFile(path string) error {
	written, err := Open(path, WithSettings(f.options().settings))
	if err != nil {
		return fmt.Errorf("re-load: %w", err)
	}

	if !written.IsDanceFile() {
		return errors.New("container missing")
	}
	if !bytes.Equal(written.Payload, f.Payload) {
		return fmt.Errorf("payload mismatch: got %d bytes, want %d", len(written.Payload), len(f.Payload))
	}
	if written.Title() != f.Title() {
		return fmt.Errorf("title mismatch: got %q, want %q", written.Title(), f.Title())
	}
	if written.Artist() != f.Artist() {
		return fmt.Errorf("artist mismatch: got %q, want %q", written.Artist(), f.Artist())
	}
	if written.Comment() != f.Comment() {
		return fmt.Errorf("comment mismatch: got %q, want %q", written.Comment(), f.Comment())
	}

	return nil
}

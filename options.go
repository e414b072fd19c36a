package dancefile

import (
	"log/slog"

	"github.com/simonhull/dancefile/internal/dsp"
	"github.com/simonhull/dancefile/internal/mp3"
)

// Option configures a File.
//
// Options use the functional options pattern for clean, extensible APIs.
//
// Example:
//
//	f := dancefile.New(
//	    dancefile.WithLogger(slog.Default()),
//	    dancefile.WithRMSTarget(0.25),
//	)
type Option func(*fileOptions)

// fileOptions holds configuration shared by Load and Save.
type fileOptions struct {
	logger    *slog.Logger
	detector  BeatDetector // Run on the music channel after Load, may be nil
	rmsTarget float64      // Music RMS level Save normalizes to
	settings  mp3.Settings // Encoder format, also the rate Load resamples to
}

// defaultOptions returns the default configuration.
func defaultOptions() *fileOptions {
	return &fileOptions{
		logger:    slog.New(slog.DiscardHandler),
		rmsTarget: dsp.DefaultRMSTarget,
		settings:  mp3.DefaultSettings,
	}
}

// WithLogger sends Load and Save diagnostics to logger.
//
// Successful operations log at Debug. Tolerated problems such as an
// unreadable tag or a truncated final frame log at Warn.
func WithLogger(logger *slog.Logger) Option {
	return func(o *fileOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithBeatDetector runs d on the resampled music channel at the end of every
// successful Load. The result is available from File.Beats.
//
// The detector is called once per Load. When the same option is passed to
// LoadMany, d is called from several goroutines.
func WithBeatDetector(d BeatDetector) Option {
	return func(o *fileOptions) {
		o.detector = d
	}
}

// WithRMSTarget sets the music RMS level Save normalizes to.
//
// Default is 0.2. Non-positive values are ignored.
func WithRMSTarget(target float64) Option {
	return func(o *fileOptions) {
		if target > 0 {
			o.rmsTarget = target
		}
	}
}

// WithSettings replaces the encoder settings.
//
// The sample rate is also the rate Load converts to. Settings with a
// non-positive rate or block size are ignored.
func WithSettings(s Settings) Option {
	return func(o *fileOptions) {
		if s.SampleRate > 0 && s.BlockSize > 0 {
			o.settings = s
		}
	}
}

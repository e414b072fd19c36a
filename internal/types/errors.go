// Package types provides the value types and the result taxonomy shared by
// the decoding, encoding and container packages.
package types

import (
	"errors"
	"fmt"
)

// Result is the outcome of a load or save step.
//
// Every failure reported by this module carries exactly one Result code.
type Result int

const (
	// Success means the operation completed.
	Success Result = iota
	// NotAnMP3File means the bitstream starts with neither an ID3v2 tag nor a frame sync.
	NotAnMP3File
	// CorruptHeader means no valid MPEG audio frame header could be located.
	CorruptHeader
	// IOError means the input could not be fully read.
	IOError
	// FileWriteError means the output could not be written, or there was nothing to write.
	FileWriteError
	// FileOpenError means the output could not be created.
	FileOpenError
	// FileDoesNotExist means the input path does not name a readable file.
	FileDoesNotExist
	// MP3DecodingError means a frame failed to decode.
	MP3DecodingError
	// MP3EncodingError means the encoder reported a fault.
	MP3EncodingError
	// TagWriteError means the ID3v2 tag could not be built.
	TagWriteError
	// PCMDataNotSameLength means the data and music channels differ in length.
	PCMDataNotSameLength
)

var resultNames = [...]string{
	Success:              "success",
	NotAnMP3File:         "not an MP3 file",
	CorruptHeader:        "corrupt header",
	IOError:              "I/O error",
	FileWriteError:       "file write error",
	FileOpenError:        "file open error",
	FileDoesNotExist:     "file does not exist",
	MP3DecodingError:     "MP3 decoding error",
	MP3EncodingError:     "MP3 encoding error",
	TagWriteError:        "tag write error",
	PCMDataNotSameLength: "PCM data not same length",
}

// String returns a human-readable name for the result.
func (r Result) String() string {
	if r < 0 || int(r) >= len(resultNames) {
		return fmt.Sprintf("Result(%d)", int(r))
	}
	return resultNames[r]
}

// Error is returned by every failing operation.
type Error struct {
	Err  error  // underlying cause, may be nil
	Op   string // "load", "save", "decode", "encode", "tags"
	Path string // file path when known
	Code Result
}

func (e *Error) Error() string {
	msg := e.Code.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same code, which lets
// callers compare against the package-level sentinels with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Errorf builds an *Error with a formatted cause.
func Errorf(code Result, op, format string, args ...any) *Error {
	return &Error{Code: code, Op: op, Err: fmt.Errorf(format, args...)}
}

// CodeOf extracts the Result carried by err.
//
// nil maps to Success; errors that carry no code map to IOError.
func CodeOf(err error) Result {
	if err == nil {
		return Success
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return IOError
}

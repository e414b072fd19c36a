package dancefile

import (
	"errors"

	"github.com/simonhull/dancefile/internal/types"
)

// Result is an alias to types.Result.
// Re-exporting from internal/types to maintain public API.
type Result = types.Result

// Error is an alias to types.Error.
// Re-exporting from internal/types to maintain public API.
type Error = types.Error

// Result codes.
const (
	Success              = types.Success
	NotAnMP3File         = types.NotAnMP3File
	CorruptHeader        = types.CorruptHeader
	IOError              = types.IOError
	FileWriteError       = types.FileWriteError
	FileOpenError        = types.FileOpenError
	FileDoesNotExist     = types.FileDoesNotExist
	MP3DecodingError     = types.MP3DecodingError
	MP3EncodingError     = types.MP3EncodingError
	TagWriteError        = types.TagWriteError
	PCMDataNotSameLength = types.PCMDataNotSameLength
)

// Sentinels for errors.Is. An *Error matches the sentinel with the same code.
var (
	ErrNotAnMP3File         = &Error{Code: NotAnMP3File}
	ErrCorruptHeader        = &Error{Code: CorruptHeader}
	ErrIOError              = &Error{Code: IOError}
	ErrFileWriteError       = &Error{Code: FileWriteError}
	ErrFileOpenError        = &Error{Code: FileOpenError}
	ErrFileDoesNotExist     = &Error{Code: FileDoesNotExist}
	ErrMP3DecodingError     = &Error{Code: MP3DecodingError}
	ErrMP3EncodingError     = &Error{Code: MP3EncodingError}
	ErrTagWriteError        = &Error{Code: TagWriteError}
	ErrPCMDataNotSameLength = &Error{Code: PCMDataNotSameLength}
)

// CodeOf returns the Result carried by err: Success for nil, IOError for
// errors that did not come from this package.
func CodeOf(err error) Result {
	return types.CodeOf(err)
}

// withPath fills in the path of an *Error that does not have one yet.
func withPath(err error, path string) error {
	var e *Error
	if errors.As(err, &e) && e.Path == "" {
		e.Path = path
	}
	return err
}

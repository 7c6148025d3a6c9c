package blobfs

import (
	"errors"
	"fmt"
)

// Package-specific error variables that can be used with errors.Is() for error handling.
var (
	// ErrInvalidEntry is returned when a compiled entry is neither a directory nor a file.
	ErrInvalidEntry = errors.New("blobfs: invalid entry")

	// ErrInvalidName is returned when a name is not valid UTF-8 or contains a NUL byte.
	ErrInvalidName = errors.New("blobfs: invalid name")

	// ErrBlobTooLarge is returned when a pointer or size would not fit in 32 bits.
	ErrBlobTooLarge = errors.New("blobfs: blob too large")

	// ErrCompressionFailed is returned when the zlib codec rejects input during compile.
	ErrCompressionFailed = errors.New("blobfs: compression failed")

	// ErrDecompressionFailed is returned when the zlib codec rejects a stored payload during load.
	ErrDecompressionFailed = errors.New("blobfs: decompression failed")

	// ErrTruncatedBlob is returned when a read would extend past the end of the blob.
	ErrTruncatedBlob = errors.New("blobfs: truncated blob")

	// ErrInvalidUTF8 is returned when a name region does not decode as UTF-8.
	ErrInvalidUTF8 = errors.New("blobfs: invalid utf-8 name")

	// ErrUnknownFlags is returned when an entry header has reserved flag bits set.
	ErrUnknownFlags = errors.New("blobfs: unknown flags")

	// ErrDepthExceeded is returned when directory nesting exceeds the loader's configured limit.
	ErrDepthExceeded = errors.New("blobfs: directory depth exceeded")

	// ErrUnsupportedFileType is returned by the path-scan collaborator for symlinks, devices and sockets.
	ErrUnsupportedFileType = errors.New("blobfs: unsupported file type")
)

// errWrap attaches diagnostic context to a sentinel error while keeping
// it discoverable through errors.Is(err, sentinel).
func errWrap(sentinel, cause error) error {
	return fmt.Errorf("%w: %v", sentinel, cause)
}

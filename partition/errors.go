package partition

import "errors"

var (
	// ErrExactlyOne is returned when a partitioner is given both a
	// filename and a reader, or neither.
	ErrExactlyOne = errors.New("gopartition: exactly one of WithFilename and WithReader must be specified")

	// ErrFileNotFound is returned when the supplied path has no
	// filesystem entry. The wrapping error carries the path.
	ErrFileNotFound = errors.New("gopartition: file does not exist")

	// ErrConversionFailed is returned when the office converter exits
	// without producing output at the expected path.
	ErrConversionFailed = errors.New("gopartition: office conversion produced no output")
)

package gopartition

import "errors"

var (
	// ErrUnsupportedFormat is returned for files whose format no
	// partitioner handles.
	ErrUnsupportedFormat = errors.New("gopartition: unsupported document format")
)

// Package partition turns office documents into ordered sequences of
// typed elements. Native partitioners handle the OOXML formats directly;
// legacy binary formats (.doc, .xls) are adapted through an external
// office converter before being delegated to their native counterpart.
//
// Post-processing (language tagging, chunking) is applied exactly once,
// by the exported partition function the caller invoked. Adapters call
// the internal, un-decorated core of their downstream partitioner, so a
// chunking option given to Doc is never also applied by Docx on the
// intermediate file. Anything wrapping these functions must not chunk
// the result a second time.
package partition

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/brunobiangulo/gopartition/chunker"
	"github.com/brunobiangulo/gopartition/element"
)

type chunkStrategy int

const (
	chunkNone chunkStrategy = iota
	chunkBasic
	chunkByTitle
)

type options struct {
	filename string
	reader   io.Reader

	metadataFilename     string
	metadataLastModified string

	convertFilter   string
	noConvertFilter bool
	converter       Converter

	languages                []string
	detectLanguagePerElement bool
	startingPageNumber       int

	chunking chunkStrategy
	chunkCfg chunker.Config
}

// Option configures a partition call.
type Option func(*options)

// WithFilename supplies the document by filesystem path.
func WithFilename(path string) Option {
	return func(o *options) { o.filename = path }
}

// WithReader supplies the document as a byte stream.
func WithReader(r io.Reader) Option {
	return func(o *options) { o.reader = r }
}

// WithMetadataFilename overrides the filename recorded in element
// metadata, replacing the path-derived default.
func WithMetadataFilename(name string) Option {
	return func(o *options) { o.metadataFilename = name }
}

// WithMetadataLastModified overrides the last-modified timestamp recorded
// in element metadata, replacing the filesystem-derived default.
func WithMetadataLastModified(ts string) Option {
	return func(o *options) { o.metadataLastModified = ts }
}

// WithConvertFilter selects a named converter output profile for legacy
// format conversion, replacing the adapter's default.
func WithConvertFilter(name string) Option {
	return func(o *options) { o.convertFilter = name }
}

// WithNoConvertFilter requests the converter's default behaviour,
// explicitly suppressing the adapter's default filter.
func WithNoConvertFilter() Option {
	return func(o *options) { o.noConvertFilter = true }
}

// WithConverter substitutes the office converter. Used in tests to avoid
// invoking the real toolchain.
func WithConverter(c Converter) Option {
	return func(o *options) { o.converter = c }
}

// WithLanguages sets the language tags recorded on every element,
// skipping detection.
func WithLanguages(langs ...string) Option {
	return func(o *options) { o.languages = langs }
}

// WithDetectLanguagePerElement detects the language of each element's own
// text instead of tagging all elements with the document-level result.
func WithDetectLanguagePerElement() Option {
	return func(o *options) { o.detectLanguagePerElement = true }
}

// WithStartingPageNumber sets the page number assigned to the first page,
// for documents that are part of a larger whole.
func WithStartingPageNumber(n int) Option {
	return func(o *options) { o.startingPageNumber = n }
}

// WithChunkingBasic chunks the final element sequence with the basic
// strategy. Applied once, after partitioning completes.
func WithChunkingBasic(cfg chunker.Config) Option {
	return func(o *options) {
		o.chunking = chunkBasic
		o.chunkCfg = cfg
	}
}

// WithChunkingByTitle chunks the final element sequence with the by-title
// strategy. Applied once, after partitioning completes.
func WithChunkingByTitle(cfg chunker.Config) Option {
	return func(o *options) {
		o.chunking = chunkByTitle
		o.chunkCfg = cfg
	}
}

func newOptions(opts []Option) *options {
	o := &options{startingPageNumber: 1}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// exactlyOne enforces that precisely one document source was supplied.
// Shared by every partitioner and legacy adapter in this package.
func exactlyOne(filename string, reader io.Reader) error {
	if (filename == "") == (reader == nil) {
		return ErrExactlyOne
	}
	return nil
}

// validateSource runs the pre-I/O checks common to all partitioners:
// the exactly-one rule, then existence of the path when one was given.
func validateSource(o *options) error {
	if err := exactlyOne(o.filename, o.reader); err != nil {
		return err
	}
	if o.filename != "" {
		if _, err := os.Stat(o.filename); err != nil {
			return fmt.Errorf("%w: %s", ErrFileNotFound, o.filename)
		}
	}
	return nil
}

// finalize is the caller-facing decorator layer: language tagging and
// chunking run here, on the final result, exactly once per call.
func finalize(elements []element.Element, o *options) []element.Element {
	element.ApplyLanguages(elements, o.languages, o.detectLanguagePerElement)
	switch o.chunking {
	case chunkBasic:
		return chunker.Basic(elements, o.chunkCfg)
	case chunkByTitle:
		return chunker.ByTitle(elements, o.chunkCfg)
	default:
		return elements
	}
}

// fileLastModified returns the RFC 3339 mtime of path, or "" when the
// file cannot be statted.
func fileLastModified(path string) string {
	fi, err := os.Stat(path)
	if err != nil {
		return ""
	}
	return fi.ModTime().Format(time.RFC3339)
}

// sourceMetadata carries the caller-visible identity of the original
// document into a partitioner core, independent of whatever transient
// file the core actually reads.
type sourceMetadata struct {
	filename     string // path or override as the caller knows it
	filetype     string // MIME tag of the original format
	lastModified string
	startingPage int
}

// apply stamps the source metadata onto every element, splitting a
// path-like filename into directory and base name.
func (m sourceMetadata) apply(elements []element.Element) {
	dir, base := "", m.filename
	if m.filename != "" {
		if d := filepath.Dir(m.filename); d != "." {
			dir = d
		}
		base = filepath.Base(m.filename)
	}
	for i := range elements {
		elements[i].Metadata.Filename = base
		elements[i].Metadata.FileDirectory = dir
		elements[i].Metadata.Filetype = m.filetype
		elements[i].Metadata.LastModified = m.lastModified
	}
}

// materialize writes the reader's full contents to name inside dir so a
// command-line tool running in another process can read it.
func materialize(dir, name string, r io.Reader) (string, error) {
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("staging stream to %s: %w", path, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", fmt.Errorf("staging stream to %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("staging stream to %s: %w", path, err)
	}
	return path, nil
}

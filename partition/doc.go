package partition

import (
	"context"
	"fmt"
	"os"

	"github.com/brunobiangulo/gopartition/element"
	"github.com/brunobiangulo/gopartition/filetype"
)

// defaultDocFilter is the converter output profile required when
// converting .doc with LibreOffice 7. Pass WithNoConvertFilter to use the
// converter's default behaviour instead.
const defaultDocFilter = "MS Word 2007 XML"

// Doc partitions a legacy binary (.doc) Word document into elements by
// converting it to .docx with the office converter and delegating the
// structural work to the docx partitioner. Exactly one of WithFilename
// and WithReader must be given.
//
// Element metadata records the original document's identity: the filetype
// tag is the legacy MIME type, the filename is the caller's path or
// WithMetadataFilename override (never the transient conversion
// artifact), and last-modified falls back to the source file's mtime.
func Doc(ctx context.Context, opts ...Option) ([]element.Element, error) {
	o := newOptions(opts)
	elements, err := docCore(ctx, o)
	if err != nil {
		return nil, err
	}
	return finalize(elements, o), nil
}

func docCore(ctx context.Context, o *options) ([]element.Element, error) {
	if err := validateSource(o); err != nil {
		return nil, err
	}

	// Capture the source mtime before conversion touches anything.
	lastModified := o.metadataLastModified
	if lastModified == "" && o.filename != "" {
		lastModified = fileLastModified(o.filename)
	}

	// The converter is a command-line program in another memory space, so
	// both its input and output must be filesystem files. Transient files
	// live in a per-call directory removed on every exit path.
	tmpDir, err := os.MkdirTemp("", "gopartition-doc-")
	if err != nil {
		return nil, fmt.Errorf("creating conversion dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	sourcePath := o.filename
	if o.reader != nil {
		sourcePath, err = materialize(tmpDir, "document.doc", o.reader)
		if err != nil {
			return nil, err
		}
	}

	if err := convertOffice(ctx, o, sourcePath, tmpDir, "docx", defaultDocFilter); err != nil {
		return nil, err
	}

	converted := convertedPath(sourcePath, tmpDir, "docx")
	if _, err := os.Stat(converted); err != nil {
		return nil, fmt.Errorf("%w: expected %s", ErrConversionFailed, converted)
	}

	metadataFilename := o.metadataFilename
	if metadataFilename == "" {
		metadataFilename = o.filename // "" for stream input
	}

	// Chunking and other post-processing options are deliberately not
	// forwarded here; finalize applies them once to the final result.
	elements, err := docxCore(ctx, converted, sourceMetadata{
		filename:     metadataFilename,
		filetype:     filetype.DOC.MIME(),
		lastModified: lastModified,
		startingPage: o.startingPageNumber,
	})
	if err != nil {
		return nil, err
	}

	// A stream has no caller-meaningful path: erase whatever filename the
	// downstream partitioner derived from the transient file, keeping only
	// an explicit override.
	if o.reader != nil {
		eraseDerivedFilename(elements, o.metadataFilename)
	}
	return elements, nil
}

// convertOffice resolves the converter and filter options and runs the
// conversion. adapterFilter is the adapter's own default profile, used
// unless the caller overrode or suppressed it.
func convertOffice(ctx context.Context, o *options, sourcePath, outDir, targetFormat, adapterFilter string) error {
	conv := o.converter
	if conv == nil {
		conv = LibreOffice{}
	}
	filter := adapterFilter
	if o.convertFilter != "" {
		filter = o.convertFilter
	}
	if o.noConvertFilter {
		filter = ""
	}
	return conv.Convert(ctx, sourcePath, outDir, targetFormat, filter)
}

// eraseDerivedFilename replaces the filename metadata on every element
// with the caller's override, which may be empty.
func eraseDerivedFilename(elements []element.Element, override string) {
	for i := range elements {
		elements[i].Metadata.Filename = override
		elements[i].Metadata.FileDirectory = ""
	}
}

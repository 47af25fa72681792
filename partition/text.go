package partition

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/brunobiangulo/gopartition/element"
	"github.com/brunobiangulo/gopartition/filetype"
)

// Text partitions a plain-text file into classified paragraph elements,
// split on blank lines. Exactly one of WithFilename and WithReader must
// be given.
func Text(ctx context.Context, opts ...Option) ([]element.Element, error) {
	o := newOptions(opts)
	if err := validateSource(o); err != nil {
		return nil, err
	}

	meta := sourceMetadata{
		filetype:     filetype.TXT.MIME(),
		lastModified: o.metadataLastModified,
		startingPage: o.startingPageNumber,
	}

	var data []byte
	var err error
	if o.filename != "" {
		meta.filename = o.metadataFilename
		if meta.filename == "" {
			meta.filename = o.filename
		}
		if meta.lastModified == "" {
			meta.lastModified = fileLastModified(o.filename)
		}
		data, err = os.ReadFile(o.filename)
	} else {
		meta.filename = o.metadataFilename
		data, err = io.ReadAll(o.reader)
	}
	if err != nil {
		return nil, fmt.Errorf("reading text source: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page := meta.startingPage
	if page <= 0 {
		page = 1
	}
	var elements []element.Element
	for _, block := range splitBlocks(string(data)) {
		el := element.New(element.Classify(block), block)
		el.Metadata.PageNumber = page
		elements = append(elements, el)
	}

	meta.apply(elements)
	element.AssignIDs(elements)
	return finalize(elements, o), nil
}

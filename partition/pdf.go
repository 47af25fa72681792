package partition

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/brunobiangulo/gopartition/element"
	"github.com/brunobiangulo/gopartition/filetype"
)

// PDF partitions a PDF document into elements, one group of classified
// paragraphs per page. Exactly one of WithFilename and WithReader must be
// given.
func PDF(ctx context.Context, opts ...Option) ([]element.Element, error) {
	o := newOptions(opts)
	if err := validateSource(o); err != nil {
		return nil, err
	}

	meta := sourceMetadata{
		filetype:     filetype.PDF.MIME(),
		lastModified: o.metadataLastModified,
		startingPage: o.startingPageNumber,
	}

	var reader *pdf.Reader
	if o.filename != "" {
		meta.filename = o.metadataFilename
		if meta.filename == "" {
			meta.filename = o.filename
		}
		if meta.lastModified == "" {
			meta.lastModified = fileLastModified(o.filename)
		}
		f, r, err := pdf.Open(o.filename)
		if err != nil {
			return nil, fmt.Errorf("opening PDF %s: %w", o.filename, err)
		}
		defer f.Close()
		reader = r
	} else {
		meta.filename = o.metadataFilename
		data, err := io.ReadAll(o.reader)
		if err != nil {
			return nil, fmt.Errorf("reading PDF stream: %w", err)
		}
		r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("opening PDF stream: %w", err)
		}
		reader = r
	}

	elements, err := pdfElements(ctx, reader, meta)
	if err != nil {
		return nil, err
	}
	return finalize(elements, o), nil
}

func pdfElements(ctx context.Context, reader *pdf.Reader, meta sourceMetadata) ([]element.Element, error) {
	startPage := meta.startingPage
	if startPage <= 0 {
		startPage = 1
	}

	var elements []element.Element
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			slog.Debug("skipping unextractable PDF page", "page", i, "error", err)
			continue
		}
		pageNum := startPage + i - 1
		for _, block := range splitBlocks(text) {
			el := element.New(element.Classify(block), block)
			el.Metadata.PageNumber = pageNum
			elements = append(elements, el)
		}
	}

	meta.apply(elements)
	element.AssignIDs(elements)
	return elements, nil
}

// splitBlocks breaks extracted text into paragraph blocks on blank lines.
func splitBlocks(text string) []string {
	var blocks []string
	for _, raw := range strings.Split(text, "\n\n") {
		block := strings.TrimSpace(raw)
		if block != "" {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

package partition

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/brunobiangulo/gopartition/element"
	"github.com/brunobiangulo/gopartition/filetype"
)

// Xlsx partitions a modern-format (.xlsx) workbook into one Table element
// per non-empty sheet, in sheet order. Exactly one of WithFilename and
// WithReader must be given.
func Xlsx(ctx context.Context, opts ...Option) ([]element.Element, error) {
	o := newOptions(opts)
	if err := validateSource(o); err != nil {
		return nil, err
	}

	meta := sourceMetadata{
		filetype:     filetype.XLSX.MIME(),
		lastModified: o.metadataLastModified,
		startingPage: o.startingPageNumber,
	}

	var f *excelize.File
	var err error
	if o.filename != "" {
		meta.filename = o.metadataFilename
		if meta.filename == "" {
			meta.filename = o.filename
		}
		if meta.lastModified == "" {
			meta.lastModified = fileLastModified(o.filename)
		}
		f, err = excelize.OpenFile(o.filename)
	} else {
		meta.filename = o.metadataFilename
		f, err = excelize.OpenReader(o.reader)
	}
	if err != nil {
		return nil, fmt.Errorf("opening XLSX: %w", err)
	}
	defer f.Close()

	elements, err := xlsxElements(ctx, f, meta)
	if err != nil {
		return nil, err
	}
	return finalize(elements, o), nil
}

// xlsxElements is the un-decorated core shared with the xls adapter.
func xlsxElements(ctx context.Context, f *excelize.File, meta sourceMetadata) ([]element.Element, error) {
	page := meta.startingPage
	if page <= 0 {
		page = 1
	}

	var elements []element.Element
	for _, sheet := range f.GetSheetList() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) == 0 {
			continue
		}

		var text strings.Builder
		var htmlBuf strings.Builder
		htmlBuf.WriteString("<table>")
		for _, row := range rows {
			text.WriteString("| " + strings.Join(row, " | ") + " |\n")
			htmlBuf.WriteString("<tr>")
			for _, cell := range row {
				htmlBuf.WriteString("<td>" + html.EscapeString(cell) + "</td>")
			}
			htmlBuf.WriteString("</tr>")
		}
		htmlBuf.WriteString("</table>")

		el := element.New(element.Table, strings.TrimSpace(text.String()))
		el.Metadata.PageNumber = page
		el.Metadata.SheetName = sheet
		el.Metadata.TextAsHTML = htmlBuf.String()
		elements = append(elements, el)
		page++
	}

	if len(elements) == 0 {
		return nil, fmt.Errorf("no data found in workbook")
	}

	meta.apply(elements)
	element.AssignIDs(elements)
	return elements, nil
}

// xlsxCore opens the workbook at path and extracts its elements, for
// adapters that already have a converted file on disk.
func xlsxCore(ctx context.Context, path string, meta sourceMetadata) ([]element.Element, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening XLSX %s: %w", path, err)
	}
	defer f.Close()
	return xlsxElements(ctx, f, meta)
}

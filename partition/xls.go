package partition

import (
	"context"
	"fmt"
	"os"

	"github.com/brunobiangulo/gopartition/element"
	"github.com/brunobiangulo/gopartition/filetype"
)

// Xls partitions a legacy binary (.xls) workbook into elements by
// converting it to .xlsx with the office converter and delegating to the
// xlsx partitioner. The adapter follows the same shape as Doc: staged
// temporary files, conversion, metadata reconciliation against the
// original source. No default converter filter is applied; LibreOffice
// picks the Calc profile from the target format.
func Xls(ctx context.Context, opts ...Option) ([]element.Element, error) {
	o := newOptions(opts)
	elements, err := xlsCore(ctx, o)
	if err != nil {
		return nil, err
	}
	return finalize(elements, o), nil
}

func xlsCore(ctx context.Context, o *options) ([]element.Element, error) {
	if err := validateSource(o); err != nil {
		return nil, err
	}

	lastModified := o.metadataLastModified
	if lastModified == "" && o.filename != "" {
		lastModified = fileLastModified(o.filename)
	}

	tmpDir, err := os.MkdirTemp("", "gopartition-xls-")
	if err != nil {
		return nil, fmt.Errorf("creating conversion dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	sourcePath := o.filename
	if o.reader != nil {
		sourcePath, err = materialize(tmpDir, "document.xls", o.reader)
		if err != nil {
			return nil, err
		}
	}

	if err := convertOffice(ctx, o, sourcePath, tmpDir, "xlsx", ""); err != nil {
		return nil, err
	}

	converted := convertedPath(sourcePath, tmpDir, "xlsx")
	if _, err := os.Stat(converted); err != nil {
		return nil, fmt.Errorf("%w: expected %s", ErrConversionFailed, converted)
	}

	metadataFilename := o.metadataFilename
	if metadataFilename == "" {
		metadataFilename = o.filename
	}

	elements, err := xlsxCore(ctx, converted, sourceMetadata{
		filename:     metadataFilename,
		filetype:     filetype.XLS.MIME(),
		lastModified: lastModified,
		startingPage: o.startingPageNumber,
	})
	if err != nil {
		return nil, err
	}

	if o.reader != nil {
		eraseDerivedFilename(elements, o.metadataFilename)
	}
	return elements, nil
}

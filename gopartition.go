// Package gopartition partitions office documents into typed, ordered
// document elements. Partition dispatches on the detected file type;
// format-specific entry points live in the partition subpackage.
package gopartition

import (
	"context"
	"fmt"

	"github.com/brunobiangulo/gopartition/element"
	"github.com/brunobiangulo/gopartition/filetype"
	"github.com/brunobiangulo/gopartition/partition"
)

// Partition routes the file at path to the partitioner for its detected
// format and returns the resulting elements. Options are forwarded to the
// selected partitioner, which applies post-processing (language tagging,
// chunking) exactly once; callers must not chunk the result again.
func Partition(ctx context.Context, path string, opts ...partition.Option) ([]element.Element, error) {
	opts = append(opts, partition.WithFilename(path))

	switch ft := filetype.DetectFromPath(path); ft {
	case filetype.DOC:
		return partition.Doc(ctx, opts...)
	case filetype.DOCX:
		return partition.Docx(ctx, opts...)
	case filetype.XLS:
		return partition.Xls(ctx, opts...)
	case filetype.XLSX:
		return partition.Xlsx(ctx, opts...)
	case filetype.PDF:
		return partition.PDF(ctx, opts...)
	case filetype.TXT:
		return partition.Text(ctx, opts...)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Command partition splits an office document into typed elements and
// prints them as JSON.
//
// Usage:
//
//	go run ./cmd/partition [flags] <document>
//
//	partition report.doc
//	partition --chunk basic --max-chars 800 report.doc
//	partition --db corpus.db --props report.doc
//	partition --languages eng,spa report.docx
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	gopartition "github.com/brunobiangulo/gopartition"
	"github.com/brunobiangulo/gopartition/chunker"
	"github.com/brunobiangulo/gopartition/element"
	"github.com/brunobiangulo/gopartition/filetype"
	"github.com/brunobiangulo/gopartition/partition"
	"github.com/brunobiangulo/gopartition/store"
)

func main() {
	var (
		chunk       = flag.String("chunk", "", "chunking strategy: basic or by-title")
		maxChars    = flag.Int("max-chars", 0, "max characters per chunk")
		overlap     = flag.Int("overlap", 0, "overlap characters between split chunks")
		languages   = flag.String("languages", "", "comma-separated language tags (skips detection)")
		perElement  = flag.Bool("lang-per-element", false, "detect language per element")
		filter      = flag.String("filter", "", "converter output profile for legacy formats")
		noFilter    = flag.Bool("no-filter", false, "use the converter's default profile")
		firstPage   = flag.Int("first-page", 1, "page number of the first page")
		dbPath      = flag.String("db", "", "save results to this SQLite database")
		showProps   = flag.Bool("props", false, "also print OLE summary properties (legacy formats)")
		prettyPrint = flag.Bool("pretty", true, "indent JSON output")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: partition [flags] <document>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	path := flag.Arg(0)
	ctx := context.Background()

	opts := []partition.Option{partition.WithStartingPageNumber(*firstPage)}
	if *languages != "" {
		opts = append(opts, partition.WithLanguages(strings.Split(*languages, ",")...))
	}
	if *perElement {
		opts = append(opts, partition.WithDetectLanguagePerElement())
	}
	if *filter != "" {
		opts = append(opts, partition.WithConvertFilter(*filter))
	}
	if *noFilter {
		opts = append(opts, partition.WithNoConvertFilter())
	}
	cfg := chunker.Config{MaxCharacters: *maxChars, Overlap: *overlap}
	switch *chunk {
	case "":
	case "basic":
		opts = append(opts, partition.WithChunkingBasic(cfg))
	case "by-title":
		opts = append(opts, partition.WithChunkingByTitle(cfg))
	default:
		fmt.Fprintf(os.Stderr, "unknown chunking strategy %q\n", *chunk)
		os.Exit(2)
	}

	elements, err := gopartition.Partition(ctx, path, opts...)
	if err != nil {
		slog.Error("partition failed", "path", path, "error", err)
		os.Exit(1)
	}

	var props *filetype.DocProperties
	if *showProps {
		ft := filetype.DetectFromPath(path)
		if ft == filetype.DOC || ft == filetype.XLS || ft == filetype.PPT {
			props, err = filetype.OLEProperties(path)
			if err != nil {
				slog.Warn("reading OLE properties failed", "path", path, "error", err)
			}
		}
	}

	if *dbPath != "" {
		if err := save(ctx, *dbPath, path, elements, props); err != nil {
			slog.Error("saving to database failed", "db", *dbPath, "error", err)
			os.Exit(1)
		}
		slog.Info("saved", "db", *dbPath, "path", path, "elements", len(elements))
	}

	out := struct {
		Elements   any `json:"elements"`
		Properties any `json:"properties,omitempty"`
	}{Elements: elements}
	if props != nil {
		out.Properties = props
	}

	enc := json.NewEncoder(os.Stdout)
	if *prettyPrint {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(out); err != nil {
		slog.Error("encoding output failed", "error", err)
		os.Exit(1)
	}
}

func save(ctx context.Context, dbPath, path string, elements []element.Element, props *filetype.DocProperties) error {
	s, err := store.New(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	doc := store.Document{
		Path:     path,
		Filename: filepath.Base(path),
		Filetype: filetype.DetectFromPath(path).MIME(),
	}
	if len(elements) > 0 {
		doc.LastModified = elements[0].Metadata.LastModified
	}
	if props != nil {
		raw, err := json.Marshal(props)
		if err != nil {
			return err
		}
		doc.Properties = string(raw)
	}
	_, err = s.SaveDocument(ctx, doc, elements)
	return err
}

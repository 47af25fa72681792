package partition

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/brunobiangulo/gopartition/element"
	"github.com/brunobiangulo/gopartition/filetype"
)

// buildXlsxBytes assembles an in-memory workbook with one sheet of
// scores.
func buildXlsxBytes(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	cells := map[string]any{
		"A1": "Name", "B1": "Score",
		"A2": "Ada", "B2": 10,
		"A3": "Grace", "B3": 9,
	}
	for cell, val := range cells {
		if err := f.SetCellValue("Sheet1", cell, val); err != nil {
			t.Fatalf("setting cell %s: %v", cell, err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("writing workbook: %v", err)
	}
	return buf.Bytes()
}

func TestXlsxFromFilename(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.xlsx")
	if err := os.WriteFile(path, buildXlsxBytes(t), 0o644); err != nil {
		t.Fatal(err)
	}

	elements, err := Xlsx(context.Background(), WithFilename(path))
	if err != nil {
		t.Fatalf("Xlsx() returned error: %v", err)
	}
	if len(elements) != 1 {
		t.Fatalf("got %d elements, want 1 (one per sheet)", len(elements))
	}

	el := elements[0]
	if el.Category != element.Table {
		t.Errorf("Category = %q, want Table", el.Category)
	}
	if el.Metadata.SheetName != "Sheet1" {
		t.Errorf("SheetName = %q, want Sheet1", el.Metadata.SheetName)
	}
	if !strings.Contains(el.Text, "| Ada | 10 |") {
		t.Errorf("table text missing row: %q", el.Text)
	}
	if el.Metadata.Filetype != filetype.XLSX.MIME() {
		t.Errorf("Filetype = %q, want xlsx MIME", el.Metadata.Filetype)
	}
	if el.Metadata.Filename != "scores.xlsx" {
		t.Errorf("Filename = %q, want scores.xlsx", el.Metadata.Filename)
	}
}

func TestXlsxFromReader(t *testing.T) {
	elements, err := Xlsx(context.Background(), WithReader(bytes.NewReader(buildXlsxBytes(t))))
	if err != nil {
		t.Fatalf("Xlsx() returned error: %v", err)
	}
	if len(elements) != 1 {
		t.Fatalf("got %d elements, want 1", len(elements))
	}
	if elements[0].Metadata.Filename != "" {
		t.Errorf("Filename = %q, want empty for reader input", elements[0].Metadata.Filename)
	}
}

func TestXlsAdapter(t *testing.T) {
	xlsPath := filepath.Join(t.TempDir(), "scores.xls")
	if err := os.WriteFile(xlsPath, []byte{0xD0, 0xCF, 0x11, 0xE0}, 0o644); err != nil {
		t.Fatal(err)
	}
	conv := &fakeConverter{payload: buildXlsxBytes(t)}

	elements, err := Xls(context.Background(), WithFilename(xlsPath), WithConverter(conv))
	if err != nil {
		t.Fatalf("Xls() returned error: %v", err)
	}
	if len(elements) != 1 {
		t.Fatalf("got %d elements, want 1", len(elements))
	}

	if conv.gotFormat != "xlsx" {
		t.Errorf("converter format = %q, want xlsx", conv.gotFormat)
	}
	if conv.gotFilter != "" {
		t.Errorf("converter filter = %q, want no default filter for xls", conv.gotFilter)
	}
	if elements[0].Metadata.Filetype != filetype.XLS.MIME() {
		t.Errorf("Filetype = %q, want the legacy xls MIME", elements[0].Metadata.Filetype)
	}
	if elements[0].Metadata.Filename != "scores.xls" {
		t.Errorf("Filename = %q, want scores.xls", elements[0].Metadata.Filename)
	}
}

func TestXlsAdapterStreamErasesFilename(t *testing.T) {
	conv := &fakeConverter{payload: buildXlsxBytes(t)}

	elements, err := Xls(context.Background(),
		WithReader(bytes.NewReader([]byte{0xD0, 0xCF, 0x11, 0xE0})),
		WithConverter(conv),
	)
	if err != nil {
		t.Fatalf("Xls() returned error: %v", err)
	}
	for i, el := range elements {
		if el.Metadata.Filename != "" {
			t.Errorf("element[%d].Metadata.Filename = %q, want empty", i, el.Metadata.Filename)
		}
	}
	if filepath.Base(conv.gotSource) != "document.xls" {
		t.Errorf("staged source = %q, want basename document.xls", conv.gotSource)
	}
}

func TestXlsExactlyOne(t *testing.T) {
	_, err := Xls(context.Background(), WithConverter(&fakeConverter{}))
	if !errors.Is(err, ErrExactlyOne) {
		t.Fatalf("err = %v, want ErrExactlyOne", err)
	}
}

// Package filetype identifies office document formats by extension and by
// content sniffing, and exposes the MIME tags recorded in element metadata.
package filetype

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/richardlehane/mscfb"
)

// FileType identifies a supported document format.
type FileType int

const (
	Unknown FileType = iota
	DOC
	DOCX
	XLS
	XLSX
	PPT
	PDF
	TXT
)

var mimeTypes = map[FileType]string{
	DOC:  "application/msword",
	DOCX: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	XLS:  "application/vnd.ms-excel",
	XLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	PPT:  "application/vnd.ms-powerpoint",
	PDF:  "application/pdf",
	TXT:  "text/plain",
}

var names = map[FileType]string{
	DOC: "doc", DOCX: "docx", XLS: "xls", XLSX: "xlsx",
	PPT: "ppt", PDF: "pdf", TXT: "txt",
}

var byExtension = map[string]FileType{
	".doc": DOC, ".docx": DOCX, ".xls": XLS, ".xlsx": XLSX,
	".ppt": PPT, ".pdf": PDF, ".txt": TXT, ".text": TXT, ".log": TXT,
}

// MIME returns the MIME tag for the format, or "" for Unknown.
func (ft FileType) MIME() string { return mimeTypes[ft] }

func (ft FileType) String() string {
	if s, ok := names[ft]; ok {
		return s
	}
	return "unknown"
}

// FromExtension maps a file extension (with or without leading dot) to a
// FileType.
func FromExtension(ext string) FileType {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return byExtension[ext]
}

// DetectFromPath identifies the format of the file at path, trusting the
// extension when it is recognized and falling back to content sniffing.
func DetectFromPath(path string) FileType {
	if ft := FromExtension(filepath.Ext(path)); ft != Unknown {
		return ft
	}
	f, err := os.Open(path)
	if err != nil {
		return Unknown
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return Unknown
	}
	return Detect(f, fi.Size())
}

// Detect sniffs the format from file content. Zip containers are classified
// by their OOXML entry paths and OLE compound files by their storage names.
func Detect(r io.ReaderAt, size int64) FileType {
	magic := make([]byte, 8)
	if _, err := r.ReadAt(magic, 0); err != nil {
		return Unknown
	}

	switch {
	case bytes.HasPrefix(magic, []byte("PK\x03\x04")):
		return detectZip(r, size)
	case bytes.HasPrefix(magic, []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}):
		return detectOLE(r)
	case bytes.HasPrefix(magic, []byte("%PDF")):
		return PDF
	default:
		return Unknown
	}
}

func detectZip(r io.ReaderAt, size int64) FileType {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown
	}
	for _, f := range zr.File {
		switch f.Name {
		case "word/document.xml":
			return DOCX
		case "xl/workbook.xml":
			return XLSX
		}
	}
	return Unknown
}

// detectOLE walks the compound-file directory entries. Legacy office
// formats share the OLE container; the storage names tell them apart.
func detectOLE(r io.ReaderAt) FileType {
	doc, err := mscfb.New(r)
	if err != nil {
		return Unknown
	}
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		switch entry.Name {
		case "WordDocument":
			return DOC
		case "Workbook", "Book":
			return XLS
		case "PowerPoint Document":
			return PPT
		}
	}
	return Unknown
}

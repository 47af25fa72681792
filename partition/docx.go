package partition

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/brunobiangulo/gopartition/element"
	"github.com/brunobiangulo/gopartition/filetype"
)

// Docx partitions a modern-format (.docx) Word document into elements.
// Exactly one of WithFilename and WithReader must be given.
func Docx(ctx context.Context, opts ...Option) ([]element.Element, error) {
	o := newOptions(opts)
	if err := validateSource(o); err != nil {
		return nil, err
	}

	meta := sourceMetadata{
		filetype:     filetype.DOCX.MIME(),
		lastModified: o.metadataLastModified,
		startingPage: o.startingPageNumber,
	}

	var elements []element.Element
	var err error
	if o.filename != "" {
		meta.filename = o.metadataFilename
		if meta.filename == "" {
			meta.filename = o.filename
		}
		if meta.lastModified == "" {
			meta.lastModified = fileLastModified(o.filename)
		}
		elements, err = docxCore(ctx, o.filename, meta)
	} else {
		meta.filename = o.metadataFilename
		elements, err = docxCoreFromReader(ctx, o.reader, meta)
	}
	if err != nil {
		return nil, err
	}
	return finalize(elements, o), nil
}

// docxCore is the un-decorated partitioner: adapters delegate here so
// that post-processing is never applied to an intermediate result.
func docxCore(ctx context.Context, path string, meta sourceMetadata) ([]element.Element, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening DOCX %s: %w", path, err)
	}
	defer r.Close()
	return parseDocx(ctx, &r.Reader, meta)
}

func docxCoreFromReader(ctx context.Context, r io.Reader, meta sourceMetadata) ([]element.Element, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading DOCX stream: %w", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening DOCX stream: %w", err)
	}
	return parseDocx(ctx, zr, meta)
}

func parseDocx(ctx context.Context, zr *zip.Reader, meta sourceMetadata) ([]element.Element, error) {
	var docFile *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return nil, fmt.Errorf("word/document.xml not found in DOCX")
	}

	rc, err := docFile.Open()
	if err != nil {
		return nil, fmt.Errorf("opening document.xml: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}

	elements, err := walkDocxBody(ctx, data, meta.startingPage)
	if err != nil {
		return nil, fmt.Errorf("parsing DOCX XML: %w", err)
	}

	meta.apply(elements)
	element.AssignIDs(elements)
	return elements, nil
}

// walkDocxBody streams the body children in document order so paragraphs
// and tables interleave the way they appear on the page. Each top-level
// child is decoded into a struct once its start tag is seen.
func walkDocxBody(ctx context.Context, docXML []byte, page int) ([]element.Element, error) {
	dec := xml.NewDecoder(bytes.NewReader(docXML))

	if page <= 0 {
		page = 1
	}
	var elements []element.Element
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "p":
			var para docxPara
			if err := dec.DecodeElement(&para, &se); err != nil {
				return nil, err
			}
			if el, ok := paragraphElement(para, page); ok {
				elements = append(elements, el)
			}
			page += para.pageBreaks()
		case "tbl":
			var tbl docxTable
			if err := dec.DecodeElement(&tbl, &se); err != nil {
				return nil, err
			}
			if el, ok := tableElement(tbl, page); ok {
				elements = append(elements, el)
			}
		}
	}
	return elements, nil
}

// paragraphElement builds one element from a body paragraph, or reports
// false for whitespace-only paragraphs.
func paragraphElement(para docxPara, page int) (element.Element, bool) {
	text := strings.TrimSpace(para.text())
	if text == "" {
		return element.Element{}, false
	}

	el := element.New(paragraphCategory(para, text), text)
	el.Metadata.PageNumber = page
	el.Metadata.EmphasizedTextContents, el.Metadata.EmphasizedTextTags = emphasizedRuns(para.Runs)
	return el, true
}

// paragraphCategory maps the paragraph style to a category; style-less
// paragraphs fall back to text heuristics. Titles come only from styles:
// a structured format marks its own headings.
func paragraphCategory(para docxPara, text string) element.Category {
	style := ""
	if para.PPr != nil && para.PPr.PStyle != nil {
		style = strings.ToLower(para.PPr.PStyle.Val)
	}
	switch {
	case strings.HasPrefix(style, "heading"),
		strings.HasPrefix(style, "title"),
		strings.HasPrefix(style, "subtitle"):
		return element.Title
	case strings.HasPrefix(style, "list"):
		return element.ListItem
	case para.PPr != nil && para.PPr.NumPr != nil:
		return element.ListItem
	case style == "quote" || style == "bodytext" || style == "blocktext":
		return element.NarrativeText
	default:
		return element.ClassifyBody(text)
	}
}

// tableElement renders a table as pipe-delimited text plus an HTML
// rendering in metadata. Emphasis found in cell runs is attributed to the
// table element as a whole.
func tableElement(tbl docxTable, page int) (element.Element, bool) {
	var text strings.Builder
	var htmlBuf strings.Builder
	var allRuns []docxRun

	htmlBuf.WriteString("<table>")
	for _, row := range tbl.Rows {
		cells := make([]string, 0, len(row.Cells))
		htmlBuf.WriteString("<tr>")
		for _, cell := range row.Cells {
			var cellText strings.Builder
			for _, p := range cell.Paras {
				if cellText.Len() > 0 {
					cellText.WriteString(" ")
				}
				cellText.WriteString(p.text())
				allRuns = append(allRuns, p.Runs...)
			}
			cells = append(cells, cellText.String())
			htmlBuf.WriteString("<td>" + html.EscapeString(cellText.String()) + "</td>")
		}
		htmlBuf.WriteString("</tr>")
		text.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	htmlBuf.WriteString("</table>")

	trimmed := strings.TrimSpace(text.String())
	if trimmed == "" || strings.Trim(trimmed, "| \n") == "" {
		return element.Element{}, false
	}

	el := element.New(element.Table, trimmed)
	el.Metadata.PageNumber = page
	el.Metadata.TextAsHTML = htmlBuf.String()
	el.Metadata.EmphasizedTextContents, el.Metadata.EmphasizedTextTags = emphasizedRuns(allRuns)
	return el, true
}

// emphasizedRuns collects bold/italic run texts as parallel content/tag
// slices. A bold-italic run appears once under "b" and once under "i".
func emphasizedRuns(runs []docxRun) ([]string, []string) {
	var contents, tags []string
	for _, run := range runs {
		text := run.text()
		if text == "" {
			continue
		}
		if run.RPr != nil {
			if run.RPr.B != nil && run.RPr.B.on() {
				contents = append(contents, text)
				tags = append(tags, "b")
			}
			if run.RPr.I != nil && run.RPr.I.on() {
				contents = append(contents, text)
				tags = append(tags, "i")
			}
		}
	}
	return contents, tags
}

// DOCX XML structures (simplified)

type docxPara struct {
	PPr  *docxParaPr `xml:"pPr"`
	Runs []docxRun   `xml:"r"`
}

type docxParaPr struct {
	PStyle *docxVal  `xml:"pStyle"`
	NumPr  *struct{} `xml:"numPr"`
}

type docxVal struct {
	Val string `xml:"val,attr"`
}

type docxToggle struct {
	Val string `xml:"val,attr"`
}

// on reports whether a toggle property like w:b is enabled; an absent
// val attribute means on.
func (t docxToggle) on() bool {
	switch strings.ToLower(t.Val) {
	case "false", "0", "none", "off":
		return false
	default:
		return true
	}
}

type docxRunPr struct {
	B *docxToggle `xml:"b"`
	I *docxToggle `xml:"i"`
}

type docxRun struct {
	RPr    *docxRunPr `xml:"rPr"`
	Text   []docxText `xml:"t"`
	Breaks []docxBr   `xml:"br"`
}

type docxText struct {
	Content string `xml:",chardata"`
}

type docxBr struct {
	Type string `xml:"type,attr"`
}

type docxTable struct {
	Rows []docxRow `xml:"tr"`
}

type docxRow struct {
	Cells []docxCell `xml:"tc"`
}

type docxCell struct {
	Paras []docxPara `xml:"p"`
}

func (r docxRun) text() string {
	var b strings.Builder
	for _, t := range r.Text {
		b.WriteString(t.Content)
	}
	return b.String()
}

func (p docxPara) text() string {
	var b strings.Builder
	for _, run := range p.Runs {
		b.WriteString(run.text())
	}
	return b.String()
}

// pageBreaks counts explicit page breaks in the paragraph's runs;
// following content lands on a new page.
func (p docxPara) pageBreaks() int {
	n := 0
	for _, run := range p.Runs {
		for _, br := range run.Breaks {
			if br.Type == "page" {
				n++
			}
		}
	}
	return n
}

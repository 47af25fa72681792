// Package chunker combines partitioned document elements into chunks
// sized for downstream consumers. Two strategies are provided: Basic,
// which packs consecutive elements up to a character budget, and ByTitle,
// which additionally starts a fresh chunk at every Title element.
package chunker

import (
	"strings"

	"github.com/brunobiangulo/gopartition/element"
)

// Config controls the chunking behaviour.
type Config struct {
	MaxCharacters  int // Hard maximum characters per chunk.
	NewAfterNChars int // Soft boundary: no new element is added past this size.
	Overlap        int // Characters of trailing overlap between split fragments.
}

// Chunker combines elements into composite chunks.
type Chunker struct {
	cfg Config
}

// New returns a Chunker with the given configuration.
// Zero-value fields are replaced with sensible defaults.
func New(cfg Config) *Chunker {
	if cfg.MaxCharacters == 0 {
		cfg.MaxCharacters = 500
	}
	if cfg.NewAfterNChars == 0 || cfg.NewAfterNChars > cfg.MaxCharacters {
		cfg.NewAfterNChars = cfg.MaxCharacters
	}
	return &Chunker{cfg: cfg}
}

// Basic packs consecutive elements into CompositeElements. Tables are
// never merged with surrounding text: a Table element passes through
// whole, or is split into TableChunk pieces when it exceeds the budget.
// The returned chunks carry the metadata of their first constituent and
// freshly assigned deterministic IDs.
func Basic(elements []element.Element, cfg Config) []element.Element {
	return New(cfg).chunk(elements, false)
}

// ByTitle behaves like Basic but treats every Title element as a section
// boundary, so a chunk never spans two sections.
func ByTitle(elements []element.Element, cfg Config) []element.Element {
	return New(cfg).chunk(elements, true)
}

func (c *Chunker) chunk(elements []element.Element, byTitle bool) []element.Element {
	var chunks []element.Element
	var pending []element.Element
	pendingLen := 0

	flush := func() {
		if len(pending) == 0 {
			return
		}
		chunks = append(chunks, c.composite(pending)...)
		pending = nil
		pendingLen = 0
	}

	for _, el := range elements {
		if el.Category == element.Table {
			flush()
			chunks = append(chunks, c.splitTable(el)...)
			continue
		}
		if byTitle && el.Category == element.Title {
			flush()
		}
		// +2 accounts for the separator joining texts inside a chunk.
		if pendingLen > 0 && pendingLen+2+len(el.Text) > c.cfg.NewAfterNChars {
			flush()
		}
		pending = append(pending, el)
		pendingLen += len(el.Text)
		if len(pending) > 1 {
			pendingLen += 2
		}
	}
	flush()

	element.AssignIDs(chunks)
	return chunks
}

// composite merges the pending elements into one CompositeElement,
// splitting the joined text when a single oversized element pushes it
// past the hard maximum.
func (c *Chunker) composite(pending []element.Element) []element.Element {
	texts := make([]string, 0, len(pending))
	for _, el := range pending {
		if el.Text != "" {
			texts = append(texts, el.Text)
		}
	}
	joined := strings.Join(texts, "\n\n")
	meta := chunkMetadata(pending[0])

	fragments := c.splitText(joined)
	out := make([]element.Element, 0, len(fragments))
	for _, frag := range fragments {
		chunk := element.New(element.CompositeElement, frag)
		chunk.Metadata = meta
		out = append(out, chunk)
	}
	return out
}

// splitTable passes a table through whole or splits its text into
// TableChunk pieces when it exceeds the hard maximum.
func (c *Chunker) splitTable(tbl element.Element) []element.Element {
	if len(tbl.Text) <= c.cfg.MaxCharacters {
		return []element.Element{tbl}
	}
	var out []element.Element
	for _, frag := range c.splitText(tbl.Text) {
		chunk := element.New(element.TableChunk, frag)
		chunk.Metadata = tbl.Metadata
		out = append(out, chunk)
	}
	return out
}

// splitText breaks text into fragments of at most MaxCharacters,
// preferring whitespace boundaries, with Overlap characters of trailing
// context repeated at the start of each subsequent fragment.
func (c *Chunker) splitText(text string) []string {
	if len(text) <= c.cfg.MaxCharacters {
		return []string{text}
	}
	var fragments []string
	for len(text) > c.cfg.MaxCharacters {
		cut := c.cfg.MaxCharacters
		if i := strings.LastIndexAny(text[:cut], " \n\t"); i > c.cfg.MaxCharacters/2 {
			cut = i
		}
		fragments = append(fragments, strings.TrimSpace(text[:cut]))

		next := cut
		if c.cfg.Overlap > 0 && c.cfg.Overlap < cut {
			next = cut - c.cfg.Overlap
		}
		text = strings.TrimLeft(text[next:], " \n\t")
	}
	if text != "" {
		fragments = append(fragments, text)
	}
	return fragments
}

// chunkMetadata carries the source-level metadata of the first
// constituent onto the chunk; element-specific fields (emphasis, page of
// later members) are intentionally not merged.
func chunkMetadata(first element.Element) element.Metadata {
	return element.Metadata{
		Filename:      first.Metadata.Filename,
		FileDirectory: first.Metadata.FileDirectory,
		Filetype:      first.Metadata.Filetype,
		LastModified:  first.Metadata.LastModified,
		PageNumber:    first.Metadata.PageNumber,
		Languages:     first.Metadata.Languages,
	}
}

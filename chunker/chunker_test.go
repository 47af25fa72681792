package chunker

import (
	"strings"
	"testing"

	"github.com/brunobiangulo/gopartition/element"
)

func narrative(text string) element.Element {
	el := element.New(element.NarrativeText, text)
	el.Metadata.Filename = "report.doc"
	el.Metadata.Filetype = "application/msword"
	el.Metadata.PageNumber = 1
	return el
}

func TestBasicCombinesSmallElements(t *testing.T) {
	elements := []element.Element{
		narrative("First short paragraph."),
		narrative("Second short paragraph."),
		narrative("Third short paragraph."),
	}

	chunks := Basic(elements, Config{MaxCharacters: 500})
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].Category != element.CompositeElement {
		t.Errorf("Category = %q, want CompositeElement", chunks[0].Category)
	}
	want := "First short paragraph.\n\nSecond short paragraph.\n\nThird short paragraph."
	if chunks[0].Text != want {
		t.Errorf("Text = %q, want %q", chunks[0].Text, want)
	}
	if chunks[0].Metadata.Filename != "report.doc" {
		t.Errorf("chunk lost source metadata: Filename = %q", chunks[0].Metadata.Filename)
	}
	if chunks[0].ID == "" {
		t.Error("chunk has no ID")
	}
}

func TestBasicRespectsBudget(t *testing.T) {
	elements := []element.Element{
		narrative(strings.Repeat("alpha ", 20)),  // 120 chars
		narrative(strings.Repeat("beta ", 20)),   // 100 chars
		narrative(strings.Repeat("gamma ", 20)),  // 120 chars
	}

	chunks := Basic(elements, Config{MaxCharacters: 150})
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want at least 2", len(chunks))
	}
	for i, c := range chunks {
		if len(c.Text) > 150 {
			t.Errorf("chunk[%d] has %d chars, budget 150", i, len(c.Text))
		}
	}
}

func TestBasicSplitsOversizedElement(t *testing.T) {
	long := strings.Repeat("word ", 300) // 1500 chars
	chunks := Basic([]element.Element{narrative(long)}, Config{MaxCharacters: 400})

	if len(chunks) < 3 {
		t.Fatalf("got %d chunks, want at least 3", len(chunks))
	}
	for i, c := range chunks {
		if len(c.Text) > 400 {
			t.Errorf("chunk[%d] has %d chars, budget 400", i, len(c.Text))
		}
		if c.Category != element.CompositeElement {
			t.Errorf("chunk[%d].Category = %q", i, c.Category)
		}
	}
}

func TestBasicTablePassthrough(t *testing.T) {
	tbl := element.New(element.Table, "| a | b |\n| c | d |")
	elements := []element.Element{
		narrative("Before the table."),
		tbl,
		narrative("After the table."),
	}

	chunks := Basic(elements, Config{MaxCharacters: 500})
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3 (text, table, text)", len(chunks))
	}
	if chunks[1].Category != element.Table {
		t.Errorf("chunks[1].Category = %q, want Table", chunks[1].Category)
	}
	if chunks[1].Text != tbl.Text {
		t.Errorf("table text changed: %q", chunks[1].Text)
	}
}

func TestBasicSplitsOversizedTable(t *testing.T) {
	rows := make([]string, 100)
	for i := range rows {
		rows[i] = "| value | value | value |"
	}
	tbl := element.New(element.Table, strings.Join(rows, "\n"))

	chunks := Basic([]element.Element{tbl}, Config{MaxCharacters: 300})
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want several", len(chunks))
	}
	for i, c := range chunks {
		if c.Category != element.TableChunk {
			t.Errorf("chunk[%d].Category = %q, want TableChunk", i, c.Category)
		}
	}
}

func TestByTitleStartsNewChunkAtTitles(t *testing.T) {
	elements := []element.Element{
		element.New(element.Title, "Introduction"),
		narrative("Intro body text."),
		element.New(element.Title, "Methods"),
		narrative("Methods body text."),
	}

	chunks := ByTitle(elements, Config{MaxCharacters: 500})
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2 (one per section)", len(chunks))
	}
	if !strings.HasPrefix(chunks[0].Text, "Introduction") || strings.Contains(chunks[0].Text, "Methods") {
		t.Errorf("chunk[0] crosses section boundary: %q", chunks[0].Text)
	}
	if !strings.HasPrefix(chunks[1].Text, "Methods") {
		t.Errorf("chunk[1] = %q, want Methods section", chunks[1].Text)
	}
}

func TestBasicMergesAcrossTitles(t *testing.T) {
	elements := []element.Element{
		element.New(element.Title, "Introduction"),
		narrative("Intro body text."),
		element.New(element.Title, "Methods"),
		narrative("Methods body text."),
	}

	chunks := Basic(elements, Config{MaxCharacters: 500})
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1 (basic ignores section boundaries)", len(chunks))
	}
}

func TestSplitTextOverlap(t *testing.T) {
	c := New(Config{MaxCharacters: 100, Overlap: 20})
	text := strings.Repeat("overlapping words ", 20) // 360 chars

	fragments := c.splitText(text)
	if len(fragments) < 2 {
		t.Fatalf("got %d fragments, want several", len(fragments))
	}
	for i := 1; i < len(fragments); i++ {
		prev := fragments[i-1]
		tail := prev[len(prev)-10:]
		if !strings.Contains(fragments[i], strings.TrimSpace(tail)) {
			t.Errorf("fragment[%d] does not carry overlap from fragment[%d]", i, i-1)
		}
	}
}

func TestDefaultsOnZeroConfig(t *testing.T) {
	c := New(Config{})
	if c.cfg.MaxCharacters != 500 {
		t.Errorf("MaxCharacters default = %d, want 500", c.cfg.MaxCharacters)
	}
	if c.cfg.NewAfterNChars != 500 {
		t.Errorf("NewAfterNChars default = %d, want 500", c.cfg.NewAfterNChars)
	}
}

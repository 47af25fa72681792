package partition

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/brunobiangulo/gopartition/chunker"
	"github.com/brunobiangulo/gopartition/element"
)

func TestTextFromReader(t *testing.T) {
	src := strings.NewReader("Project Overview\n\n- collect requirements\n\nThe rollout begins in March.")

	elements, err := Text(context.Background(), WithReader(src))
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if len(elements) != 3 {
		t.Fatalf("got %d elements, want 3", len(elements))
	}
	want := []element.Category{element.Title, element.ListItem, element.NarrativeText}
	for i, cat := range want {
		if elements[i].Category != cat {
			t.Errorf("elements[%d].Category = %q, want %q", i, elements[i].Category, cat)
		}
	}
	if elements[0].Metadata.Filename != "" {
		t.Errorf("Filename = %q, want empty for stream input", elements[0].Metadata.Filename)
	}
}

func TestTextExactlyOne(t *testing.T) {
	if _, err := Text(context.Background()); !errors.Is(err, ErrExactlyOne) {
		t.Fatalf("err = %v, want ErrExactlyOne", err)
	}
}

func TestTextChunking(t *testing.T) {
	src := strings.NewReader("First paragraph of the notes.\n\nSecond paragraph of the notes.")

	chunks, err := Text(context.Background(),
		WithReader(src),
		WithChunkingBasic(chunker.Config{MaxCharacters: 500}),
	)
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].Category != element.CompositeElement {
		t.Errorf("Category = %q, want CompositeElement", chunks[0].Category)
	}
}

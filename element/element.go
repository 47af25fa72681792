// Package element defines the typed document elements produced by the
// partitioners: ordered units of document content (titles, narrative text,
// list items, tables, ...) with attached metadata.
package element

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Category identifies the structural role of an element.
type Category string

const (
	Title            Category = "Title"
	NarrativeText    Category = "NarrativeText"
	ListItem         Category = "ListItem"
	Text             Category = "Text"
	Address          Category = "Address"
	Table            Category = "Table"
	CompositeElement Category = "CompositeElement"
	TableChunk       Category = "TableChunk"
)

// Element is a single unit of partitioned document content.
type Element struct {
	ID       string   `json:"element_id"`
	Category Category `json:"type"`
	Text     string   `json:"text"`
	Metadata Metadata `json:"metadata"`
}

// New returns an element with the given category and text. The ID is
// assigned later by AssignIDs once the element's position in the
// document is known.
func New(category Category, text string) Element {
	return Element{Category: category, Text: text}
}

// AssignIDs computes a deterministic ID for every element in place.
// The ID hashes the element text together with its page number and
// ordinal position, so partitioning the same document twice yields
// identical IDs while duplicate texts still get unique ones.
func AssignIDs(elements []Element) {
	for i := range elements {
		elements[i].ID = deterministicID(elements[i].Text, elements[i].Metadata.PageNumber, i)
	}
}

func deterministicID(text string, page, ordinal int) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s\x00%d\x00%d", text, page, ordinal))
	return hex.EncodeToString(sum[:])[:32]
}

package element

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// bullet glyphs that mark a list item when a paragraph has no list style
var bulletPrefixes = []string{"•", "‣", "◦", "●", "∙", "-", "*", "·"}

// e.g. "DOYLESTOWN, PA 18901" / "Portland, OR 97204-1234"
var usAddressRe = regexp.MustCompile(`(?i)^\s*\S.*,\s*[A-Z]{2}\s+\d{5}(-\d{4})?\s*$`)

var emailRe = regexp.MustCompile(`^[\w.+-]+@[\w-]+\.[\w.-]+$`)

// Classify infers the category of a paragraph from its text alone, used
// when the source format carries no explicit style information.
func Classify(text string) Category {
	trimmed := strings.TrimSpace(text)
	switch {
	case trimmed == "":
		return Text
	case IsBulleted(trimmed):
		return ListItem
	case isAddress(trimmed):
		return Address
	case isNarrative(trimmed):
		return NarrativeText
	case isPossibleTitle(trimmed):
		return Title
	default:
		return Text
	}
}

// ClassifyBody infers the category of a paragraph from a structured
// format that marks its own headings: the title heuristic is skipped, so
// unstyled short text stays Text rather than being promoted.
func ClassifyBody(text string) Category {
	trimmed := strings.TrimSpace(text)
	switch {
	case trimmed == "":
		return Text
	case IsBulleted(trimmed):
		return ListItem
	case isAddress(trimmed):
		return Address
	case isNarrative(trimmed):
		return NarrativeText
	default:
		return Text
	}
}

// IsBulleted reports whether the text starts with a bullet glyph.
func IsBulleted(text string) bool {
	for _, b := range bulletPrefixes {
		if strings.HasPrefix(text, b+" ") {
			return true
		}
	}
	return false
}

// isNarrative reports whether the text reads like prose: at least a few
// words, mixed case, ending in (or containing) sentence punctuation.
func isNarrative(text string) bool {
	if len(strings.Fields(text)) < 3 {
		return false
	}
	// All-caps blocks are headings or labels even when punctuated.
	if text == strings.ToUpper(text) {
		return false
	}
	last, _ := utf8.DecodeLastRuneInString(text)
	return strings.ContainsRune(".!?", last) || strings.Contains(text, ". ")
}

// isPossibleTitle mirrors the heading heuristics used for unstyled text:
// short lines, no terminal sentence punctuation, not purely numeric.
func isPossibleTitle(text string) bool {
	if len(text) > 120 || strings.Contains(text, "\n") {
		return false
	}
	if strings.HasSuffix(text, ".") && !isNumberedHeading(text) {
		return false
	}
	if isAllDigitsAndPunct(text) {
		return false
	}
	return true
}

// isNumberedHeading matches "1.", "1.1", "3.9.1 Scope" etc.
func isNumberedHeading(text string) bool {
	if text == "" || text[0] < '0' || text[0] > '9' {
		return false
	}
	head := text
	if len(head) > 10 {
		head = head[:10]
	}
	return strings.Contains(head, ".")
}

func isAddress(text string) bool {
	return usAddressRe.MatchString(text) || emailRe.MatchString(text)
}

func isAllDigitsAndPunct(text string) bool {
	hasDigit := false
	for _, r := range text {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLetter(r):
			return false
		}
	}
	return hasDigit
}

package element

import (
	"strings"

	"github.com/abadojack/whatlanggo"
)

// DetectLanguages returns the ISO 639-3 tag of the dominant language of
// the text, or nil when the text is empty or detection is unreliable
// enough to be meaningless.
func DetectLanguages(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	info := whatlanggo.Detect(text)
	if info.Lang == -1 {
		return nil
	}
	return []string{info.Lang.Iso6393()}
}

// ApplyLanguages fills in the Languages metadata on every element.
// With perElement set, each element's own text is detected separately;
// otherwise the document-level detection over all text is applied
// uniformly, matching how single-language documents are usually tagged.
func ApplyLanguages(elements []Element, languages []string, perElement bool) {
	if len(languages) > 0 {
		for i := range elements {
			elements[i].Metadata.Languages = languages
		}
		return
	}
	if perElement {
		for i := range elements {
			elements[i].Metadata.Languages = DetectLanguages(elements[i].Text)
		}
		return
	}
	var all strings.Builder
	for _, e := range elements {
		all.WriteString(e.Text)
		all.WriteString("\n")
	}
	detected := DetectLanguages(all.String())
	for i := range elements {
		elements[i].Metadata.Languages = detected
	}
}

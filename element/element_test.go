package element

import (
	"reflect"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Category
	}{
		{"narrative", "This is my first thought. This is my second thought.", NarrativeText},
		{"narrative single sentence", "The committee approved the budget without changes.", NarrativeText},
		{"bulleted", "• Parrots make excellent companions", ListItem},
		{"dash bullet", "- remember the milk", ListItem},
		{"address", "DOYLESTOWN, PA 18901", Address},
		{"address with zip+4", "Portland, OR 97204-1234", Address},
		{"email", "ada@example.com", Address},
		{"title", "Results and Discussion", Title},
		{"numbered heading", "1.2 Scope of Work", Title},
		{"bare year", "2023", Text},
		{"empty", "   ", Text},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.text); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassifyBodySkipsTitlePromotion(t *testing.T) {
	tests := []struct {
		text string
		want Category
	}{
		{"Analysis", Text},
		{"Results and Discussion", Text},
		{"This is a full sentence about results.", NarrativeText},
		{"• bullet point", ListItem},
		{"Doylestown, PA 18901", Address},
	}
	for _, tt := range tests {
		if got := ClassifyBody(tt.text); got != tt.want {
			t.Errorf("ClassifyBody(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestAssignIDsDeterministicAndUnique(t *testing.T) {
	build := func() []Element {
		return []Element{
			New(NarrativeText, "Repeated paragraph."),
			New(NarrativeText, "Repeated paragraph."),
			New(Title, "Heading"),
		}
	}

	first, second := build(), build()
	AssignIDs(first)
	AssignIDs(second)

	seen := map[string]bool{}
	for i := range first {
		if first[i].ID == "" {
			t.Fatalf("element[%d] has empty ID", i)
		}
		if first[i].ID != second[i].ID {
			t.Errorf("element[%d].ID not deterministic: %q vs %q", i, first[i].ID, second[i].ID)
		}
		if seen[first[i].ID] {
			t.Errorf("element[%d].ID %q not unique", i, first[i].ID)
		}
		seen[first[i].ID] = true
	}
}

func TestAssignIDsVariesWithPage(t *testing.T) {
	a := []Element{New(Text, "same text")}
	b := []Element{New(Text, "same text")}
	b[0].Metadata.PageNumber = 7

	AssignIDs(a)
	AssignIDs(b)
	if a[0].ID == b[0].ID {
		t.Error("IDs should differ when page numbers differ")
	}
}

func TestDetectLanguages(t *testing.T) {
	if got := DetectLanguages("The quick brown fox jumps over the lazy dog and keeps on running through the field."); !reflect.DeepEqual(got, []string{"eng"}) {
		t.Errorf("DetectLanguages(english) = %v, want [eng]", got)
	}
	if got := DetectLanguages("   "); got != nil {
		t.Errorf("DetectLanguages(blank) = %v, want nil", got)
	}
}

func TestApplyLanguages(t *testing.T) {
	english := "This is a plain English sentence that goes on for a while."
	spanish := "Esta es una oración en español que también se extiende bastante."

	t.Run("explicit override wins", func(t *testing.T) {
		elements := []Element{New(Text, english), New(Text, spanish)}
		ApplyLanguages(elements, []string{"deu"}, true)
		for i, el := range elements {
			if !reflect.DeepEqual(el.Metadata.Languages, []string{"deu"}) {
				t.Errorf("element[%d].Languages = %v, want [deu]", i, el.Metadata.Languages)
			}
		}
	})

	t.Run("document level is uniform", func(t *testing.T) {
		elements := []Element{New(Text, english), New(Text, english)}
		ApplyLanguages(elements, nil, false)
		if !reflect.DeepEqual(elements[0].Metadata.Languages, elements[1].Metadata.Languages) {
			t.Error("document-level detection tagged elements differently")
		}
		if !reflect.DeepEqual(elements[0].Metadata.Languages, []string{"eng"}) {
			t.Errorf("Languages = %v, want [eng]", elements[0].Metadata.Languages)
		}
	})

	t.Run("per element differs", func(t *testing.T) {
		elements := []Element{New(Text, english), New(Text, spanish)}
		ApplyLanguages(elements, nil, true)
		if !reflect.DeepEqual(elements[0].Metadata.Languages, []string{"eng"}) {
			t.Errorf("english element tagged %v", elements[0].Metadata.Languages)
		}
		if !reflect.DeepEqual(elements[1].Metadata.Languages, []string{"spa"}) {
			t.Errorf("spanish element tagged %v", elements[1].Metadata.Languages)
		}
	})
}

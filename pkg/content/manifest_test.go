package content_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/goliatone/go-formcontent/pkg/content"
	"github.com/goliatone/go-formcontent/pkg/formdata"
	"github.com/goliatone/go-formcontent/pkg/questions"
)

func TestManifest_QuestionNumbers(t *testing.T) {
	first := textQuestions("q1", "q2")
	first[1].(map[string]any)["depends"] = []any{map[string]any{"on": "lot", "being": []any{"lot-1"}}}

	manifest := mustManifest(t,
		map[string]any{"slug": "first", "name": "First", "questions": first},
		map[string]any{"slug": "second", "name": "Second", "questions": textQuestions("q3", "q4", "q5")},
	)

	want := map[string]int{"q1": 1, "q2": 2, "q3": 3, "q4": 4, "q5": 5}
	if diff := cmp.Diff(want, questionNumbers(manifest)); diff != "" {
		t.Fatalf("numbers mismatch (-want +got):\n%s", diff)
	}

	filtered, err := manifest.Filter(questions.Context{"lot": "lot-2"})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	want = map[string]int{"q1": 1, "q3": 2, "q4": 3, "q5": 4}
	if diff := cmp.Diff(want, questionNumbers(filtered)); diff != "" {
		t.Fatalf("numbers mismatch (-want +got):\n%s", diff)
	}
	if manifest.GetQuestion("q3").Number() != 3 {
		t.Fatalf("filtering renumbered the original manifest")
	}
}

func TestManifest_FilterDropsEmptySections(t *testing.T) {
	manifest := mustManifest(t,
		map[string]any{"slug": "first", "name": "First", "questions": []any{
			map[string]any{"id": "q1", "type": "text", "depends": []any{map[string]any{"on": "lot", "being": []any{"lot-1"}}}},
		}},
		map[string]any{"slug": "second", "name": "Second", "questions": textQuestions("q2", "q3")},
	)

	filtered, err := manifest.Filter(questions.Context{"lot": "lot-2"})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(filtered.Sections()) != 1 || filtered.Sections()[0].ID() != "second" {
		t.Fatalf("expected only the second section, got %d sections", len(filtered.Sections()))
	}
	if diff := cmp.Diff(map[string]int{"q2": 1, "q3": 2}, questionNumbers(filtered)); diff != "" {
		t.Fatalf("numbers mismatch (-want +got):\n%s", diff)
	}
	if len(manifest.Sections()) != 2 {
		t.Fatalf("Filter should not change the original")
	}

	inPlace, err := manifest.FilterInPlace(questions.Context{"lot": "lot-2"})
	if err != nil {
		t.Fatalf("filter in place: %v", err)
	}
	if inPlace != manifest || len(manifest.Sections()) != 1 {
		t.Fatalf("FilterInPlace should update the receiver")
	}
}

func TestManifest_NumberingProperty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("questions are numbered contiguously from 1", prop.ForAll(
		func(sizes []int) bool {
			records := make([]map[string]any, 0, len(sizes))
			next := 0
			for i, size := range sizes {
				ids := make([]string, size)
				for j := range ids {
					next++
					ids[j] = "q" + string(rune('a'+i)) + string(rune('a'+j))
				}
				records = append(records, map[string]any{
					"slug":      "section-" + string(rune('a'+i)),
					"name":      "Section",
					"questions": textQuestions(ids...),
				})
			}
			manifest, err := content.NewManifest(records)
			if err != nil {
				return false
			}
			expected := 0
			for _, section := range manifest.Sections() {
				for _, question := range section.Questions() {
					expected++
					if question.Number() != expected {
						return false
					}
				}
			}
			return expected == next
		},
		gen.SliceOfN(5, gen.IntRange(1, 6)),
	))

	properties.TestingRun(t)
}

func TestManifest_GetAllData(t *testing.T) {
	manifest := mustManifest(t,
		map[string]any{"slug": "first", "name": "First", "questions": textQuestions("q1")},
		map[string]any{"slug": "second", "name": "Second", "questions": textQuestions("q2")},
	)

	got, err := manifest.GetAllData(formdata.Values{"q1": {" a "}, "q2": {"b"}, "unknown": {"c"}})
	if err != nil {
		t.Fatalf("get data: %v", err)
	}
	if diff := cmp.Diff(questions.Data{"q1": "a", "q2": "b"}, got); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestManifest_NextSectionID(t *testing.T) {
	manifest := mustManifest(t,
		map[string]any{"slug": "first", "name": "First", "editable": true, "questions": textQuestions("q1")},
		map[string]any{"slug": "second", "name": "Second", "questions": textQuestions("q2")},
		map[string]any{"slug": "third", "name": "Third", "editable": true, "edit_questions": true, "questions": textQuestions("q3")},
	)

	cases := []struct {
		name string
		got  string
		want string
	}{
		{name: "first", got: manifest.GetNextSectionID(""), want: "first"},
		{name: "after first", got: manifest.GetNextSectionID("first"), want: "second"},
		{name: "after last", got: manifest.GetNextSectionID("third"), want: ""},
		{name: "editable after first", got: manifest.GetNextEditableSectionID("first"), want: "third"},
		{name: "first edit questions", got: manifest.GetNextEditQuestionsSectionID(""), want: "third"},
		{name: "unknown", got: manifest.GetNextSectionID("missing"), want: ""},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, tc.got, tc.want)
		}
	}
}

func TestManifest_Summary(t *testing.T) {
	manifest := mustManifest(t,
		map[string]any{"slug": "first", "name": "First", "questions": textQuestions("q1", "q2")},
	)

	summary := manifest.Summary(questions.Data{"q1": "answer"})
	section := summary.GetSection("first")
	if section == nil || len(section.Summaries()) != 2 {
		t.Fatalf("expected summaries for every question")
	}
	if section.Summaries()[0].Value() != "answer" || section.Summaries()[1].Number() != 2 {
		t.Fatalf("unexpected summaries %v", section.Summaries())
	}
	if manifest.GetSection("first").Summaries() != nil {
		t.Fatalf("Summary should not change the original")
	}
	if section.IsEmpty() {
		t.Fatalf("section with an answer is not empty")
	}
	if got := summary.GetQuestionBySlug("q2"); got == nil || got.ID() != "q2" {
		t.Fatalf("expected question by slug, got %v", got)
	}
}

func TestCountUnansweredQuestions(t *testing.T) {
	manifest := mustManifest(t,
		map[string]any{"slug": "first", "name": "First", "questions": []any{
			map[string]any{"id": "q1", "type": "text"},
			map[string]any{"id": "q2", "type": "text"},
			map[string]any{"id": "q3", "type": "text", "optional": true},
			map[string]any{"id": "q4", "type": "checkboxes", "optional": true},
		}},
		map[string]any{"slug": "second", "name": "Second", "questions": []any{
			map[string]any{"id": "q5", "type": "checkboxes"},
			map[string]any{"id": "q6", "type": "text", "optional": true},
		}},
	).Summary(questions.Data{"q1": "answered", "q4": []any{}, "q6": "answered"})

	required, optional := content.CountUnansweredQuestions(manifest)
	if required != 2 || optional != 2 {
		t.Fatalf("CountUnansweredQuestions() = %d, %d; want 2, 2", required, optional)
	}
}

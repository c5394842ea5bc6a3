package content_test

import (
	"testing"

	"github.com/goliatone/go-formcontent/pkg/content"
	"github.com/goliatone/go-formcontent/pkg/testsupport"
)

func mustSection(t *testing.T, record map[string]any) *content.Section {
	t.Helper()
	return testsupport.MustSection(t, record)
}

func mustManifest(t *testing.T, records ...map[string]any) *content.Manifest {
	t.Helper()
	return testsupport.MustManifest(t, records...)
}

func textQuestions(ids ...string) []any {
	return testsupport.TextQuestions(ids...)
}

func questionNumbers(m *content.Manifest) map[string]int {
	out := make(map[string]int)
	for _, section := range m.Sections() {
		for _, question := range section.Questions() {
			out[question.ID()] = question.Number()
		}
	}
	return out
}

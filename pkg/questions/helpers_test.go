package questions_test

import (
	"testing"

	"github.com/goliatone/go-formcontent/pkg/questions"
	"github.com/goliatone/go-formcontent/pkg/testsupport"
)

func mustQuestion(t *testing.T, record map[string]any) *questions.Question {
	t.Helper()

	return testsupport.MustQuestion(t, record)
}

func mustFilter(t *testing.T, q *questions.Question, ctx questions.Context) *questions.Question {
	t.Helper()

	filtered, err := q.Filter(ctx)
	if err != nil {
		t.Fatalf("filter %s: %v", q.ID(), err)
	}
	if filtered == nil {
		t.Fatalf("filter %s: question was excluded", q.ID())
	}
	return filtered
}

func dependsOn(key string, values ...any) []any {
	return []any{map[string]any{"on": key, "being": values}}
}

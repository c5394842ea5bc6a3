package contenterr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/goliatone/go-formcontent/pkg/contenterr"
)

func TestNotFoundWrapsSentinel(t *testing.T) {
	err := contenterr.NotFound("no manifest at %s", "frameworks/g-cloud/manifests/edit.yml")

	if !errors.Is(err, contenterr.ErrContentNotFound) {
		t.Fatalf("expected ErrContentNotFound, got %v", err)
	}
	if want := "no manifest at frameworks/g-cloud/manifests/edit.yml: content not found"; err.Error() != want {
		t.Fatalf("want %q, got %q", want, err.Error())
	}
}

func TestQuestionNotFoundError(t *testing.T) {
	err := fmt.Errorf("section: %w", &contenterr.QuestionNotFoundError{Keys: []string{"q2", "q1"}})

	if !errors.Is(err, contenterr.ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}
	var notFound *contenterr.QuestionNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected QuestionNotFoundError, got %T", err)
	}
	if want := "section: question not found for keys [q1, q2]"; err.Error() != want {
		t.Fatalf("want %q, got %q", want, err.Error())
	}
}

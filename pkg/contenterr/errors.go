// Package contenterr defines the error taxonomy shared by the content
// packages. Schema and content lookups wrap ErrContentNotFound, unknown error
// keys surface as QuestionNotFoundError and misuse of context-dependent
// operations wraps ErrContextRequired.
package contenterr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrContentNotFound reports a manifest, question, message or metadata
	// block missing from its expected location.
	ErrContentNotFound = errors.New("content not found")
	// ErrQuestionNotFound is matched by QuestionNotFoundError.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrContextRequired reports an operation that needs a filter context
	// which was never bound.
	ErrContextRequired = errors.New("filter context required")
	// ErrContextLookup reports a dotted path that does not resolve inside
	// the bound filter context.
	ErrContextLookup = errors.New("filter context lookup failed")
)

// NotFound wraps ErrContentNotFound with a formatted description.
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrContentNotFound)
}

// QuestionNotFoundError lists error keys that do not belong to any question
// of the section they were reported against.
type QuestionNotFoundError struct {
	Keys []string
}

func (e *QuestionNotFoundError) Error() string {
	keys := append([]string(nil), e.Keys...)
	sort.Strings(keys)
	return fmt.Sprintf("question not found for keys [%s]", strings.Join(keys, ", "))
}

// Is lets errors.Is(err, ErrQuestionNotFound) match.
func (e *QuestionNotFoundError) Is(target error) bool {
	return target == ErrQuestionNotFound
}

package template

import (
	"errors"
	"fmt"
)

// ErrTemplate matches every error produced while compiling or rendering a
// Field.
var ErrTemplate = errors.New("content template error")

// Error reports a template that failed to compile or render. Variable is set
// when the failure was an undefined context variable.
type Error struct {
	Source   string
	Variable string
	Err      error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Variable != "" {
		return fmt.Sprintf("template: %q is undefined", e.Variable)
	}
	if e.Err != nil {
		return fmt.Sprintf("template: %v", e.Err)
	}
	return "template: invalid template"
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports ErrTemplate equivalence so callers can match any template error.
func (e *Error) Is(target error) bool {
	return target == ErrTemplate
}

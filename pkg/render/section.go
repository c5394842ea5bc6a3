package render

import (
	"github.com/goliatone/go-formcontent/pkg/content"
)

// Section is the view of a form page.
type Section struct {
	ID          string        `json:"id,omitempty"`
	Name        string        `json:"name,omitempty"`
	Description string        `json:"description,omitempty"`
	Fields      []Field       `json:"fields,omitempty"`
	Errors      []ErrorLink   `json:"errors,omitempty"`
	Hidden      []HiddenField `json:"hidden,omitempty"`
}

// FromSection builds the view of every question in s. Sibling followups
// are attached to their trigger.
func FromSection(s *content.Section, options ...Option) (Section, error) {
	cfg := newConfig(options)

	name, err := s.Name()
	if err != nil {
		return Section{}, err
	}
	description, err := s.Description()
	if err != nil {
		return Section{}, err
	}
	fields, err := cfg.fields(s.Questions())
	if err != nil {
		return Section{}, err
	}

	return Section{
		ID:          s.ID(),
		Name:        name,
		Description: description,
		Fields:      fields,
		Errors:      ErrorSummary(cfg.errors),
		Hidden:      sortedHiddenFields(cfg.hidden),
	}, nil
}

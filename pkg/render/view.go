package render

import (
	"fmt"

	"github.com/goliatone/go-formcontent/pkg/questions"
)

// OptionView is a selectable answer.
type OptionView struct {
	Label       string       `json:"label,omitempty"`
	Value       string       `json:"value,omitempty"`
	Description string       `json:"description,omitempty"`
	Selected    bool         `json:"selected,omitempty"`
	Options     []OptionView `json:"options,omitempty"`
}

// Field is everything a renderer needs to draw one question.
type Field struct {
	ID         string       `json:"id,omitempty"`
	Name       string       `json:"name,omitempty"`
	Type       string       `json:"type,omitempty"`
	Kind       Kind         `json:"kind,omitempty"`
	Number     int          `json:"number,omitempty"`
	Label      string       `json:"label,omitempty"`
	PlainLabel string       `json:"plain_label,omitempty"`
	Hint       string       `json:"hint,omitempty"`
	Optional   bool         `json:"optional,omitempty"`
	Inputs     []string     `json:"inputs,omitempty"`
	Options    []OptionView `json:"options,omitempty"`
	Value      any          `json:"value,omitempty"`
	Assurance  string       `json:"assurance,omitempty"`
	Error      string       `json:"error,omitempty"`
	Href       string       `json:"href,omitempty"`
	UnitPrefix string       `json:"unit_prefix,omitempty"`
	UnitSuffix string       `json:"unit_suffix,omitempty"`

	// Children are the nested questions of multiquestions and dynamic lists.
	Children []Field `json:"children,omitempty"`
	// Followups holds the sibling questions revealed by an answer, keyed by
	// that answer. They are not repeated in the parent list.
	Followups map[string][]Field `json:"followups,omitempty"`
}

// FromQuestion builds the view of q. Bind a context with Filter first when
// q has templated text.
func FromQuestion(q *questions.Question, options ...Option) (Field, error) {
	return newConfig(options).field(q)
}

func (c *config) field(q *questions.Question) (Field, error) {
	label, err := q.Label()
	if err != nil {
		return Field{}, err
	}
	plain, err := q.PlainLabel()
	if err != nil {
		return Field{}, err
	}
	hint, err := q.Text(questions.FieldHint)
	if err != nil {
		return Field{}, err
	}

	value := c.value(q)
	options, err := c.options(q, q.Options(), value)
	if err != nil {
		return Field{}, err
	}

	view := Field{
		ID:         q.ID(),
		Name:       q.ID(),
		Type:       q.Type(),
		Kind:       c.registry.Kind(q.Type()),
		Number:     q.Number(),
		Label:      label,
		PlainLabel: plain,
		Hint:       hint,
		Optional:   q.IsOptional(),
		Inputs:     q.FormFields(),
		Options:    options,
		Value:      value,
		Href:       q.Href(),
	}
	if c.legacy {
		view.Href = q.LegacyHref()
	}
	if unit := q.Unit(); unit != "" {
		if q.UnitPosition() == "after" {
			view.UnitSuffix = unit
		} else {
			view.UnitPrefix = unit
		}
	}
	if q.HasAssurance() {
		view.Assurance = text(c.values[q.ID()+"--assurance"])
	}
	if message, ok := c.errors.Get(q.ID()); ok {
		view.Error = message.Message
	}

	if children := q.Questions(); len(children) > 0 {
		view.Children, err = c.fields(children)
		if err != nil {
			return Field{}, err
		}
	}
	return view, nil
}

// fields builds sibling views and moves followups under their trigger.
func (c *config) fields(list []*questions.Question) ([]Field, error) {
	views := make([]Field, 0, len(list))
	for _, q := range list {
		view, err := c.field(q)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return attachFollowups(list, views), nil
}

func attachFollowups(list []*questions.Question, views []Field) []Field {
	index := make(map[string]int, len(list))
	for i, q := range list {
		index[q.ID()] = i
	}

	targets := make(map[int]bool)
	for i, q := range list {
		for _, ids := range q.ValuesFollowup() {
			for _, id := range ids {
				if j, ok := index[id]; ok && j != i {
					targets[j] = true
				}
			}
		}
	}
	if len(targets) == 0 {
		return views
	}

	done := make([]bool, len(views))
	visiting := make([]bool, len(views))
	var resolve func(i int) Field
	resolve = func(i int) Field {
		if done[i] || visiting[i] {
			return views[i]
		}
		visiting[i] = true
		for value, ids := range list[i].ValuesFollowup() {
			for _, id := range ids {
				j, ok := index[id]
				if !ok || j == i {
					continue
				}
				if views[i].Followups == nil {
					views[i].Followups = make(map[string][]Field)
				}
				views[i].Followups[value] = append(views[i].Followups[value], resolve(j))
			}
		}
		done[i] = true
		return views[i]
	}

	out := make([]Field, 0, len(views)-len(targets))
	for i := range views {
		if targets[i] {
			continue
		}
		out = append(out, resolve(i))
	}
	return out
}

func (c *config) value(q *questions.Question) any {
	switch q.Type() {
	case questions.TypeMultiquestion, questions.TypeDynamicList:
		return nil
	case questions.TypePricing:
		prices := make(map[string]any)
		for _, field := range q.FormFields() {
			if value, ok := c.values[field]; ok {
				prices[field] = value
			}
		}
		if len(prices) == 0 {
			return nil
		}
		return prices
	default:
		return c.values[q.ID()]
	}
}

func (c *config) options(q *questions.Question, options []questions.Option, value any) ([]OptionView, error) {
	if len(options) == 0 {
		return nil, nil
	}
	out := make([]OptionView, 0, len(options))
	for _, option := range options {
		description, err := q.OptionDescription(option)
		if err != nil {
			return nil, err
		}
		nested, err := c.options(q, option.Options, value)
		if err != nil {
			return nil, err
		}
		optionValue := text(option.Value)
		out = append(out, OptionView{
			Label:       option.Label,
			Value:       optionValue,
			Description: description,
			Selected:    selected(value, optionValue),
			Options:     nested,
		})
	}
	return out, nil
}

// selected matches single answers and list answers against an option value.
func selected(value any, option string) bool {
	switch v := value.(type) {
	case nil:
		return false
	case []any:
		for _, item := range v {
			if text(item) == option {
				return true
			}
		}
		return false
	case []string:
		for _, item := range v {
			if item == option {
				return true
			}
		}
		return false
	default:
		return text(v) == option
	}
}

func text(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

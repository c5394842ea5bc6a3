package questions

import (
	"fmt"

	"github.com/goliatone/go-formcontent/pkg/formdata"
)

// behavior is the type specific part of a question. Variants embed
// baseBehavior and override what differs; shared steps dispatch through the
// Question methods so overrides are honoured.
type behavior interface {
	validate(schema *Schema) error
	parse(q *Question, form formdata.Values) (Data, error)
	formFields(q *Question) []string
	optionalFields(q *Question) []string
	lookup(q *Question, fieldID string) *Question
	questionIDs(q *Question, typ string) []string
	errorMessages(q *Question, errs Errors, cfg *errorConfig) (*ErrorMessages, error)
	unformat(q *Question, data Data) Data
	filterChildren(q *Question, ctx Context, cfg *filterConfig, inPlace bool) (*Question, error)
	summarize(s *Summary)
	value(s *Summary, filterLabels bool) any
	answerRequired(s *Summary) bool
}

func behaviorFor(typ string) behavior {
	switch typ {
	case TypeNumber:
		return numberBehavior{}
	case TypeBoolean:
		return booleanBehavior{}
	case TypeBooleanList:
		return booleanListBehavior{}
	case TypeDate:
		return dateBehavior{}
	case TypeList, TypeCheckboxes:
		return listBehavior{}
	case TypeCheckboxTree:
		return hierarchyBehavior{}
	case TypePricing:
		return pricingBehavior{}
	case TypeMultiquestion:
		return multiquestionBehavior{}
	case TypeDynamicList:
		return dynamicListBehavior{}
	case TypeUpload:
		return uploadBehavior{}
	default:
		return textBehavior{}
	}
}

type baseBehavior struct{}

func (baseBehavior) validate(*Schema) error { return nil }

func (baseBehavior) formFields(q *Question) []string {
	return []string{q.ID()}
}

func (baseBehavior) optionalFields(q *Question) []string {
	if q.IsOptional() {
		return q.FormFields()
	}
	return nil
}

func (baseBehavior) lookup(q *Question, fieldID string) *Question {
	if q.ID() == fieldID {
		return q
	}
	return nil
}

func (baseBehavior) questionIDs(q *Question, typ string) []string {
	if typ == "" || typ == q.Type() {
		return []string{q.ID()}
	}
	return nil
}

func (baseBehavior) errorMessages(q *Question, errs Errors, cfg *errorConfig) (*ErrorMessages, error) {
	out := NewErrorMessages()
	for _, field := range sortedIntersection(errs, q.FormFields()) {
		target := q.GetQuestion(field)
		if target == nil {
			target = q
		}
		code := errorCode(errs[field])

		message, err := target.GetErrorMessage(code, field)
		if err != nil {
			return nil, err
		}
		descriptor, err := target.Descriptor(cfg.descriptorFrom)
		if err != nil {
			return nil, err
		}

		key := target.ID()
		link := target.hrefFor(cfg)
		if code == AssuranceRequiredCode {
			key += "--assurance"
			link = "#input-" + key
		}
		out.Set(key, ErrorMessage{
			InputName: key,
			Href:      link,
			Question:  descriptor,
			Message:   message,
		})
	}
	return out, nil
}

// unformat keeps the saved values of the question's own form fields.
func (baseBehavior) unformat(q *Question, data Data) Data {
	out := Data{}
	for _, field := range q.FormFields() {
		if value, ok := data[field]; ok {
			out[field] = value
		}
	}
	return out
}

func (baseBehavior) filterChildren(q *Question, _ Context, _ *filterConfig, _ bool) (*Question, error) {
	return q, nil
}

func (baseBehavior) summarize(*Summary) {}

func (baseBehavior) value(s *Summary, filterLabels bool) any {
	raw := s.RawValue()
	if len(s.schema.Options) > 0 && truthy(raw) {
		if option, ok := findOption(s.schema.Options, raw); ok {
			return optionLabel(option, filterLabels)
		}
	}
	return raw
}

func (baseBehavior) answerRequired(s *Summary) bool {
	return s.IsEmpty()
}

func findOption(options []Option, value any) (Option, bool) {
	for _, option := range options {
		if LooseEqual(option.Value, value) {
			return option, true
		}
	}
	return Option{}, false
}

func optionLabel(option Option, filterLabels bool) string {
	if filterLabels && option.FilterLabel != "" {
		return option.FilterLabel
	}
	return option.Label
}

func requireNested(schema *Schema) error {
	if schema.Questions == nil {
		return fmt.Errorf("%w: %s question %q has no nested questions", ErrInvalidSchema, schema.Type, schema.ID)
	}
	return nil
}

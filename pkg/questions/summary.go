package questions

// Summary is a read-only view of a question over previously saved data. It
// does not modify the question it wraps.
type Summary struct {
	*Question
	data     Data
	children []*Summary
}

// Summary wraps q with saved service data.
func (q *Question) Summary(service Data) *Summary {
	if service == nil {
		service = Data{}
	}
	s := &Summary{Question: q, data: service}
	q.kind.summarize(s)
	return s
}

// Data returns the saved data the summary was built from.
func (s *Summary) Data() Data { return s.data }

// Children returns the summaries of nested questions.
func (s *Summary) Children() []*Summary { return s.children }

// RawValue is the saved answer with any assurance wrapper removed, or ""
// when nothing was saved.
func (s *Summary) RawValue() any {
	raw, ok := s.data[s.ID()]
	if !ok {
		return ""
	}
	if !s.HasAssurance() {
		return raw
	}
	record, isRecord := asRecord(raw)
	if !isRecord {
		return ""
	}
	value, ok := record["value"]
	if !ok {
		return ""
	}
	return value
}

// Value is the display value: option labels replace option values, units
// are added to numbers, prices and dates are formatted and composite
// questions list their answered nested summaries.
func (s *Summary) Value() any {
	return s.kind.value(s, false)
}

// FilterValue is Value with option filter labels preferred over labels.
func (s *Summary) FilterValue() any {
	return s.kind.value(s, true)
}

// IsEmpty reports a value of "", nil or an empty list.
func (s *Summary) IsEmpty() bool {
	return isEmptyValue(s.Value())
}

// AnswerRequired reports a required question without an answer.
func (s *Summary) AnswerRequired() bool {
	if s.IsOptional() {
		return false
	}
	return s.kind.answerRequired(s)
}

// Assurance returns the saved assurance for questions that have one.
func (s *Summary) Assurance() string {
	if !s.HasAssurance() {
		return ""
	}
	record, ok := asRecord(s.data[s.ID()])
	if !ok {
		return ""
	}
	return displayString(record["assurance"])
}

// GetErrorMessages adds one entry per unanswered item to a boolean list
// error, keyed "<id>-<index>" and labelled with the injected item question.
func (s *Summary) GetErrorMessages(errs Errors, options ...ErrorOption) (*ErrorMessages, error) {
	messages, err := s.Question.GetErrorMessages(errs, options...)
	if err != nil {
		return nil, err
	}
	labels := s.BooleanListQuestions()
	if s.Type() != TypeBooleanList || len(labels) == 0 {
		return messages, nil
	}
	aggregate, ok := messages.Get(s.ID())
	if !ok {
		return messages, nil
	}

	var values []any
	if value := s.Value(); truthy(value) {
		values = listify(value)
	}
	for len(values) < len(labels) {
		values = append(values, nil)
	}
	for index, label := range labels {
		if _, isBool := values[index].(bool); isBool {
			continue
		}
		key := indexedID(s.ID(), index)
		messages.Set(key, ErrorMessage{
			InputName: key,
			Href:      "#input-" + key,
			Question:  label,
			Message:   aggregate.Message,
		})
	}
	aggregate.Expanded = true
	messages.Set(s.ID(), aggregate)
	messages.SortKeys()
	return messages, nil
}

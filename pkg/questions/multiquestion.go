package questions

import (
	"github.com/goliatone/go-formcontent/pkg/formdata"
)

// multiquestionBehavior groups nested questions on one page. Its data is the
// merged data of the nested questions with followups applied.
type multiquestionBehavior struct{ baseBehavior }

func (multiquestionBehavior) validate(schema *Schema) error {
	return requireNested(schema)
}

func (multiquestionBehavior) parse(q *Question, form formdata.Values) (Data, error) {
	data := Data{}
	for _, child := range q.questions {
		childData, err := child.GetData(form)
		if err != nil {
			return nil, err
		}
		for key, value := range childData {
			data[key] = value
		}
	}
	return DropFollowups(q.questions, data), nil
}

func (multiquestionBehavior) formFields(q *Question) []string {
	var fields []string
	for _, child := range q.questions {
		fields = append(fields, child.FormFields()...)
	}
	return fields
}

func (multiquestionBehavior) optionalFields(q *Question) []string {
	if q.IsOptional() {
		return q.FormFields()
	}
	var fields []string
	for _, child := range q.questions {
		fields = append(fields, child.OptionalFormFields()...)
	}
	return fields
}

func (multiquestionBehavior) lookup(q *Question, fieldID string) *Question {
	if q.ID() == fieldID {
		return q
	}
	return findQuestion(q.questions, fieldID)
}

func (multiquestionBehavior) questionIDs(q *Question, typ string) []string {
	var ids []string
	for _, child := range q.questions {
		if typ == "" || typ == child.Type() {
			ids = append(ids, child.ID())
		}
	}
	return ids
}

func (multiquestionBehavior) unformat(q *Question, data Data) Data {
	out := Data{}
	for _, child := range q.questions {
		for key, value := range child.UnformatData(data) {
			out[key] = value
		}
	}
	return out
}

func (multiquestionBehavior) filterChildren(q *Question, ctx Context, cfg *filterConfig, inPlace bool) (*Question, error) {
	children := make([]*Question, 0, len(q.questions))
	for _, child := range q.questions {
		filtered, err := child.filter(ctx, cfg, inPlace)
		if err != nil {
			return nil, err
		}
		if filtered != nil {
			children = append(children, filtered)
		}
	}
	q.questions = children
	return q, nil
}

func (multiquestionBehavior) summarize(s *Summary) {
	s.children = summarizeAll(s.questions, s.data)
}

// value lists the nested summaries that have an answer.
func (multiquestionBehavior) value(s *Summary, _ bool) any {
	out := []*Summary{}
	for _, child := range s.children {
		if !child.IsEmpty() {
			out = append(out, child)
		}
	}
	return out
}

// answerRequired checks live nested questions in declaration order; a
// followup declared before its trigger is treated as live.
func (multiquestionBehavior) answerRequired(s *Summary) bool {
	live := liveQuestions(s.children)
	for _, child := range s.children {
		if live[child.ID()] && child.AnswerRequired() {
			return true
		}
	}
	return false
}

func summarizeAll(questions []*Question, data Data) []*Summary {
	out := make([]*Summary, 0, len(questions))
	for _, question := range questions {
		out = append(out, question.Summary(data))
	}
	return out
}

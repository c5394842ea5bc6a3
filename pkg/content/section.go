package content

import (
	"fmt"
	"sort"

	"github.com/go-viper/mapstructure/v2"

	"github.com/goliatone/go-formcontent/pkg/contenterr"
	"github.com/goliatone/go-formcontent/pkg/formdata"
	"github.com/goliatone/go-formcontent/pkg/questions"
	"github.com/goliatone/go-formcontent/pkg/template"
)

// Templated properties of a section record.
const (
	SectionName                   = "name"
	SectionDescription            = "description"
	SectionSummaryPageDescription = "summary_page_description"
)

// SectionTemplateFields are compiled when a section record is decoded.
var SectionTemplateFields = []string{SectionName, SectionDescription, SectionSummaryPageDescription}

// sectionFields are the plain properties of a section record.
type sectionFields struct {
	Slug          string `mapstructure:"slug"`
	Prefill       bool   `mapstructure:"prefill"`
	Editable      bool   `mapstructure:"editable"`
	EditQuestions bool   `mapstructure:"edit_questions"`
	Step          int    `mapstructure:"step"`
}

// Section is an ordered list of questions shown and saved together.
type Section struct {
	sectionFields

	templates map[string]*template.Field
	questions []*questions.Question
	summaries []*questions.Summary
	context   questions.Context
}

// NewSection decodes a fully resolved section record. Nested question
// references must already be spliced in.
func NewSection(record map[string]any) (*Section, error) {
	if record == nil {
		return nil, fmt.Errorf("content: nil section record")
	}

	section := &Section{templates: make(map[string]*template.Field)}
	rest := make(map[string]any, len(record))
	for key, value := range record {
		rest[key] = value
	}

	for _, name := range SectionTemplateFields {
		raw, ok := rest[name]
		delete(rest, name)
		if !ok || raw == nil {
			continue
		}
		field, err := template.New(fmt.Sprint(raw))
		if err != nil {
			return nil, fmt.Errorf("content: section %v: compile %s: %w", record["slug"], name, err)
		}
		section.templates[name] = field
	}

	if raw, ok := rest["questions"]; ok {
		delete(rest, "questions")
		items, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("content: section %v: questions must be a list, got %T", record["slug"], raw)
		}
		for _, item := range items {
			child, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("content: section %v: unresolved question reference %v", record["slug"], item)
			}
			question, err := questions.FromRecord(child)
			if err != nil {
				return nil, fmt.Errorf("content: section %v: %w", record["slug"], err)
			}
			section.questions = append(section.questions, question)
		}
	}

	if err := mapstructure.WeakDecode(rest, &section.sectionFields); err != nil {
		return nil, fmt.Errorf("content: section %v: %w", record["slug"], err)
	}
	if section.Slug == "" {
		return nil, fmt.Errorf("content: section record without slug")
	}
	return section, nil
}

// ID is the section slug.
func (s *Section) ID() string { return s.Slug }

// Questions returns the top level questions of the section.
func (s *Section) Questions() []*questions.Question { return s.questions }

// Summaries returns the question summaries built by Summary, or nil when the
// section has not been summarised.
func (s *Section) Summaries() []*questions.Summary { return s.summaries }

// Context returns the filter context bound by Filter.
func (s *Section) Context() questions.Context { return s.context }

// Name renders the section name.
func (s *Section) Name() (string, error) { return s.text(SectionName) }

// Description renders the section description.
func (s *Section) Description() (string, error) { return s.text(SectionDescription) }

// SummaryPageDescription renders the description shown above the summary
// table.
func (s *Section) SummaryPageDescription() (string, error) {
	return s.text(SectionSummaryPageDescription)
}

// HasDescription reports whether the record set a description, even an empty
// one.
func (s *Section) HasDescription() bool {
	_, ok := s.templates[SectionDescription]
	return ok
}

func (s *Section) text(name string) (string, error) {
	field, ok := s.templates[name]
	if !ok {
		return "", nil
	}
	return field.Render(s.context)
}

// HasSummaryPage reports whether the section needs a summary page of its own
// rather than going straight to its only question.
func (s *Section) HasSummaryPage() bool {
	return len(s.questions) > 1 || s.HasDescription()
}

// Copy returns a section that can be filtered, summarised or renumbered
// without affecting s.
func (s *Section) Copy() *Section {
	out := *s
	out.templates = make(map[string]*template.Field, len(s.templates))
	for name, field := range s.templates {
		out.templates[name] = field
	}
	out.questions = make([]*questions.Question, len(s.questions))
	for i, question := range s.questions {
		out.questions[i] = question.Copy()
	}
	out.summaries = nil
	if s.summaries != nil {
		out.summaries = make([]*questions.Summary, len(out.questions))
		for i, question := range out.questions {
			out.summaries[i] = question.Summary(s.summaries[i].Data())
		}
	}
	return &out
}

// Filter returns a copy holding the questions shown for ctx, or nil when no
// question is left.
func (s *Section) Filter(ctx questions.Context, options ...questions.FilterOption) (*Section, error) {
	return s.Copy().filterInPlace(ctx, options)
}

// FilterInPlace is Filter applied to s itself.
func (s *Section) FilterInPlace(ctx questions.Context, options ...questions.FilterOption) (*Section, error) {
	return s.filterInPlace(ctx, options)
}

func (s *Section) filterInPlace(ctx questions.Context, options []questions.FilterOption) (*Section, error) {
	if ctx == nil {
		ctx = questions.Context{}
	}
	s.context = ctx

	kept := make([]*questions.Question, 0, len(s.questions))
	for _, question := range s.questions {
		filtered, err := question.FilterInPlace(ctx, options...)
		if err != nil {
			return nil, fmt.Errorf("content: section %s: %w", s.Slug, err)
		}
		if filtered != nil {
			kept = append(kept, filtered)
		}
	}
	s.questions = kept
	s.summaries = nil
	if len(kept) == 0 {
		return nil, nil
	}
	return s, nil
}

// Summary returns a copy whose questions are read against service data.
func (s *Section) Summary(service questions.Data) *Section {
	return s.Copy().SummaryInPlace(service)
}

// SummaryInPlace is Summary applied to s itself.
func (s *Section) SummaryInPlace(service questions.Data) *Section {
	s.summaries = make([]*questions.Summary, len(s.questions))
	for i, question := range s.questions {
		s.summaries[i] = question.Summary(service)
	}
	return s
}

// summaryViews returns the summaries, reading against no data when the
// section was never summarised.
func (s *Section) summaryViews() []*questions.Summary {
	if s.summaries != nil {
		return s.summaries
	}
	views := make([]*questions.Summary, len(s.questions))
	for i, question := range s.questions {
		views[i] = question.Summary(nil)
	}
	return views
}

// IsEmpty reports whether no question of the section has an answer.
func (s *Section) IsEmpty() bool {
	for _, summary := range s.summaryViews() {
		if !summary.IsEmpty() {
			return false
		}
	}
	return true
}

// FieldNames lists the form field ids of every question, which are the keys
// GetData can return.
func (s *Section) FieldNames() []string {
	var names []string
	for _, question := range s.questions {
		names = append(names, question.FormFields()...)
	}
	return names
}

// QuestionIDs lists question ids of typ, or of every type when typ is empty.
func (s *Section) QuestionIDs(typ string) []string {
	var ids []string
	for _, question := range s.questions {
		ids = append(ids, question.QuestionIDs(typ)...)
	}
	return ids
}

// GetQuestion finds the question, nested or not, that owns fieldID.
func (s *Section) GetQuestion(fieldID string) *questions.Question {
	for _, question := range s.questions {
		if found := question.GetQuestion(fieldID); found != nil {
			return found
		}
	}
	return nil
}

// GetQuestionBySlug finds a top level question by slug.
func (s *Section) GetQuestionBySlug(slug string) *questions.Question {
	for _, question := range s.questions {
		if question.Slug() == slug {
			return question
		}
	}
	return nil
}

// GetQuestionAsSection wraps a single question in a section of its own, used
// to edit one question of a section at a time. Multiquestions contribute
// their nested questions. It returns nil when slug is unknown.
func (s *Section) GetQuestionAsSection(slug string) *Section {
	question := s.GetQuestionBySlug(slug)
	if question == nil {
		return nil
	}

	out := &Section{
		sectionFields: sectionFields{
			Slug:     question.Slug(),
			Prefill:  s.Prefill,
			Editable: s.EditQuestions,
		},
		templates: make(map[string]*template.Field),
		context:   s.context,
	}
	schema := question.Schema()
	if name, ok := schema.Templates[questions.FieldName]; ok {
		out.templates[SectionName] = name
	} else if text, ok := schema.Templates[questions.FieldQuestion]; ok {
		out.templates[SectionName] = text
	}

	if nested := question.Questions(); len(nested) > 0 {
		out.questions = append([]*questions.Question(nil), nested...)
		if hint, ok := schema.Templates[questions.FieldHint]; ok {
			out.templates[SectionDescription] = hint
		}
	} else {
		out.questions = []*questions.Question{question}
		out.templates[SectionDescription] = template.MustNew("")
	}
	return out
}

// GetNextQuestionID returns the id of the top level question after id, or
// of the first question when id is empty. It returns "" after the last one.
func (s *Section) GetNextQuestionID(id string) string {
	return s.step(id, questionID, false)
}

// GetPreviousQuestionID returns the id of the top level question before id.
func (s *Section) GetPreviousQuestionID(id string) string {
	if id == "" {
		return ""
	}
	return s.step(id, questionID, true)
}

// GetNextQuestionSlug is GetNextQuestionID for slugs.
func (s *Section) GetNextQuestionSlug(slug string) string {
	return s.step(slug, questionSlug, false)
}

// GetPreviousQuestionSlug is GetPreviousQuestionID for slugs.
func (s *Section) GetPreviousQuestionSlug(slug string) string {
	if slug == "" {
		return ""
	}
	return s.step(slug, questionSlug, true)
}

func questionID(q *questions.Question) string   { return q.ID() }
func questionSlug(q *questions.Question) string { return q.Slug() }

// step scans the top level questions, so questions nested in a multiquestion
// are never returned.
func (s *Section) step(current string, key func(*questions.Question) string, backwards bool) string {
	ordered := s.questions
	if backwards {
		ordered = make([]*questions.Question, len(s.questions))
		for i, question := range s.questions {
			ordered[len(s.questions)-1-i] = question
		}
	}

	active := current == ""
	for _, question := range ordered {
		if active {
			return key(question)
		}
		if key(question) == current {
			active = true
		}
	}
	return ""
}

// GetData parses form data for every question, then clears followup answers
// whose trigger was not answered with a triggering value.
func (s *Section) GetData(form formdata.Values) (questions.Data, error) {
	clean := make(formdata.Values, len(form))
	for key, values := range form {
		clean.Set(key, values...)
	}

	data := questions.Data{}
	for _, question := range s.questions {
		parsed, err := question.GetData(clean)
		if err != nil {
			return nil, fmt.Errorf("content: section %s: %w", s.Slug, err)
		}
		for key, value := range parsed {
			data[key] = value
		}
	}
	return questions.DropFollowups(s.questions, data), nil
}

// HasChangesToSave reports whether update changes a saved value, or whether
// a field of the section has never been saved. The latter forces a save so
// that validation errors are reported.
func (s *Section) HasChangesToSave(service, update map[string]any) bool {
	for key, value := range update {
		if !questions.LooseEqual(service[key], value) {
			return true
		}
	}
	for _, field := range s.FieldNames() {
		if _, ok := service[field]; !ok {
			return true
		}
	}
	return false
}

// GetErrorMessages turns error codes into question scoped messages. Keys that
// are not form fields of the section fail with a QuestionNotFoundError.
func (s *Section) GetErrorMessages(errs questions.Errors, options ...questions.ErrorOption) (*questions.ErrorMessages, error) {
	known := make(map[string]struct{})
	for _, field := range s.FieldNames() {
		known[field] = struct{}{}
	}
	var unknown []string
	for key := range errs {
		if _, ok := known[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("content: section %s: %w", s.Slug, &contenterr.QuestionNotFoundError{Keys: unknown})
	}

	out := questions.NewErrorMessages()
	for i, question := range s.questions {
		var (
			messages *questions.ErrorMessages
			err      error
		)
		if s.summaries != nil {
			messages, err = s.summaries[i].GetErrorMessages(errs, options...)
		} else {
			messages, err = question.GetErrorMessages(errs, options...)
		}
		if err != nil {
			return nil, err
		}
		out.Merge(messages)
	}
	return out, nil
}

// UnformatData reshapes saved data into form values. Assurance answers are
// split into "<id>" and "<id>--assurance"; keys without a question are kept
// as they are.
func (s *Section) UnformatData(data questions.Data) questions.Data {
	out := questions.Data{}
	for key, value := range data {
		question := s.GetQuestion(key)
		switch {
		case question != nil && question.HasAssurance():
			record, _ := value.(map[string]any)
			out[key+"--assurance"] = record["assurance"]
			out[key] = record["value"]
		case question != nil:
			for field, unformatted := range question.UnformatData(data) {
				out[field] = unformatted
			}
		default:
			out[key] = value
		}
	}
	return out
}

// InjectBooleanListQuestions copies boolean list item labels from brief into
// every boolean list question of the section.
func (s *Section) InjectBooleanListQuestions(brief map[string]any) error {
	for _, question := range s.questions {
		if err := question.InjectBooleanListQuestions(brief); err != nil {
			return fmt.Errorf("content: section %s: %w", s.Slug, err)
		}
	}
	return nil
}

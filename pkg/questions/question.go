package questions

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formcontent/pkg/contenterr"
	"github.com/goliatone/go-formcontent/pkg/formdata"
)

// Context is the filter context: values that depends clauses and templated
// properties are evaluated against.
type Context = map[string]any

// Data is parsed or previously saved answer data keyed by field id.
type Data = map[string]any

// Question is one schema defined question. Behaviour that differs by type is
// selected by New from the schema type.
type Question struct {
	schema    *Schema
	kind      behavior
	number    int
	context   Context
	questions []*Question

	origin               *dynamicOrigin
	booleanListQuestions []string
}

// dynamicOrigin records the schema and item index a dynamic list question
// was generated from.
type dynamicOrigin struct {
	schema *Schema
	index  int
}

// New builds the question tree for schema.
func New(schema *Schema) (*Question, error) {
	if schema == nil {
		return nil, fmt.Errorf("%w: nil schema", ErrInvalidSchema)
	}
	kind := behaviorFor(schema.Type)
	if err := kind.validate(schema); err != nil {
		return nil, err
	}

	q := &Question{schema: schema, kind: kind}
	for _, child := range schema.Questions {
		nested, err := New(child)
		if err != nil {
			return nil, fmt.Errorf("questions: %s: %w", schema.ID, err)
		}
		q.questions = append(q.questions, nested)
	}
	return q, nil
}

// FromRecord decodes record and builds the question.
func FromRecord(record map[string]any) (*Question, error) {
	schema, err := DecodeSchema(record)
	if err != nil {
		return nil, err
	}
	return New(schema)
}

// MustFromRecord is FromRecord for fixtures. It panics on error.
func MustFromRecord(record map[string]any) *Question {
	q, err := FromRecord(record)
	if err != nil {
		panic(err)
	}
	return q
}

// ID is the stable key of the question within its section or parent.
func (q *Question) ID() string { return q.schema.ID }

func (q *Question) Type() string { return q.schema.Type }

func (q *Question) Slug() string { return q.schema.Slug }

// Schema returns the shared schema. Callers must not modify it.
func (q *Question) Schema() *Schema { return q.schema }

// Number is the 1-based position assigned by the enclosing manifest.
func (q *Question) Number() int { return q.number }

func (q *Question) SetNumber(n int) { q.number = n }

// Context returns the filter context bound by Filter, or nil.
func (q *Question) Context() Context { return q.context }

func (q *Question) IsOptional() bool { return q.schema.Optional }

// HasAssurance reports an assurance companion field.
func (q *Question) HasAssurance() bool { return q.schema.AssuranceApproach != "" }

func (q *Question) Options() []Option { return q.schema.Options }

func (q *Question) Unit() string { return q.schema.Unit }

// UnitPosition is "before" or "after"; units go before the value by default.
func (q *Question) UnitPosition() string {
	if q.schema.UnitPosition == "" {
		return "before"
	}
	return q.schema.UnitPosition
}

// Questions returns the nested questions of composite types.
func (q *Question) Questions() []*Question { return q.questions }

// Followup returns the followup map: followup id → triggering values.
func (q *Question) Followup() map[string][]any { return q.schema.Followup }

// BooleanListQuestions returns the item labels injected by
// InjectBooleanListQuestions.
func (q *Question) BooleanListQuestions() []string { return q.booleanListQuestions }

// Get returns a schema property that has no dedicated accessor.
func (q *Question) Get(key string) (any, bool) {
	value, ok := q.schema.Extra[key]
	return value, ok
}

// HasText reports whether the templated property name is set.
func (q *Question) HasText(name string) bool {
	_, ok := q.schema.Templates[name]
	return ok
}

// Text renders the templated property name against the bound context.
// Missing properties render as "".
func (q *Question) Text(name string) (string, error) {
	field, ok := q.schema.Templates[name]
	if !ok {
		return "", nil
	}
	return field.Render(q.context)
}

// Source returns the unrendered text of a templated property.
func (q *Question) Source(name string) string {
	return q.schema.Templates[name].Source()
}

// Label is the rendered name, falling back to the question text.
func (q *Question) Label() (string, error) {
	name, err := q.Text(FieldName)
	if err != nil {
		return "", err
	}
	if name != "" {
		return name, nil
	}
	return q.Text(FieldQuestion)
}

var (
	plainPolicyOnce sync.Once
	plainPolicy     *bluemonday.Policy
)

// PlainLabel is Label with markup removed and entities decoded.
func (q *Question) PlainLabel() (string, error) {
	label, err := q.Label()
	if err != nil {
		return "", err
	}
	plainPolicyOnce.Do(func() {
		plainPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(plainPolicy.Sanitize(label))), nil
}

// Descriptor renders the property used to describe the question in error
// messages: "label" or any templated or extra property.
func (q *Question) Descriptor(from string) (string, error) {
	if from == "" || from == "label" {
		return q.Label()
	}
	if q.HasText(from) {
		return q.Text(from)
	}
	if value, ok := q.Get(from); ok {
		return displayString(value), nil
	}
	return "", nil
}

// OptionDescription renders the description of option.
func (q *Question) OptionDescription(option Option) (string, error) {
	if option.Description == nil {
		return "", nil
	}
	return option.Description.Render(q.context)
}

// ValuesFollowup inverts the followup map: answer value → followup ids.
func (q *Question) ValuesFollowup() map[string][]string {
	out := make(map[string][]string)
	for _, target := range q.schema.FollowupTargets() {
		for _, value := range q.schema.Followup[target] {
			key := displayString(value)
			out[key] = append(out[key], target)
		}
	}
	return out
}

// FilterOption configures Filter and FilterInPlace.
type FilterOption func(*filterConfig)

type filterConfig struct {
	static bool
}

// Static keeps dynamic lists unexpanded.
func Static() FilterOption {
	return func(cfg *filterConfig) {
		cfg.static = true
	}
}

func newFilterConfig(options []FilterOption) *filterConfig {
	cfg := &filterConfig{}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// Filter returns a copy bound to ctx, or nil when a depends clause is not
// satisfied. Nested questions are filtered too and dynamic lists are expanded
// into one set of questions per item unless Static is given.
func (q *Question) Filter(ctx Context, options ...FilterOption) (*Question, error) {
	return q.filter(ctx, newFilterConfig(options), false)
}

// FilterInPlace is Filter without the copy: q itself is bound and its nested
// questions replaced. References to the previous nested questions go stale.
func (q *Question) FilterInPlace(ctx Context, options ...FilterOption) (*Question, error) {
	return q.filter(ctx, newFilterConfig(options), true)
}

func (q *Question) filter(ctx Context, cfg *filterConfig, inPlace bool) (*Question, error) {
	if ctx == nil {
		ctx = Context{}
	}
	if !q.shouldBeShown(ctx) {
		return nil, nil
	}
	target := q
	if !inPlace {
		target = q.shallowCopy()
	}
	target.context = ctx
	return q.kind.filterChildren(target, ctx, cfg, inPlace)
}

// shouldBeShown requires every depends clause to find its context value in
// the allowed set.
func (q *Question) shouldBeShown(ctx Context) bool {
	for _, dep := range q.schema.Depends {
		value, ok := ctx[dep.On]
		if !ok || !contains(dep.Being, value) {
			return false
		}
	}
	return true
}

func (q *Question) shallowCopy() *Question {
	out := *q
	out.questions = append([]*Question(nil), q.questions...)
	out.booleanListQuestions = append([]string(nil), q.booleanListQuestions...)
	return &out
}

// Copy returns an independent copy of the question tree.
func (q *Question) Copy() *Question {
	out := q.shallowCopy()
	for i, child := range out.questions {
		out.questions[i] = child.Copy()
	}
	return out
}

// GetQuestion finds q or the nested question that owns fieldID.
func (q *Question) GetQuestion(fieldID string) *Question {
	return q.kind.lookup(q, fieldID)
}

// FormFields lists the form field ids the question reads and writes.
func (q *Question) FormFields() []string {
	return q.kind.formFields(q)
}

// OptionalFormFields lists the form fields that may be left blank.
func (q *Question) OptionalFormFields() []string {
	return q.kind.optionalFields(q)
}

// RequiredFormFields is FormFields without OptionalFormFields.
func (q *Question) RequiredFormFields() []string {
	optional := make(map[string]struct{})
	for _, field := range q.OptionalFormFields() {
		optional[field] = struct{}{}
	}
	var required []string
	for _, field := range q.FormFields() {
		if _, ok := optional[field]; !ok {
			required = append(required, field)
		}
	}
	return required
}

// QuestionIDs lists the question ids of the given type, or of every type when
// typ is empty. Composite questions list their nested questions.
func (q *Question) QuestionIDs(typ string) []string {
	return q.kind.questionIDs(q, typ)
}

// GetData parses submitted form data. Questions with an assurance companion
// wrap their answer as {value, assurance}.
func (q *Question) GetData(form formdata.Values) (Data, error) {
	data, err := q.kind.parse(q, form)
	if err != nil {
		return nil, err
	}
	if !q.HasAssurance() {
		return data, nil
	}

	value := Data{}
	if answer, ok := data[q.ID()]; ok && answer != nil {
		value["value"] = answer
	}
	assuranceKey := q.ID() + "--assurance"
	if form.Has(assuranceKey) {
		assurance, _ := form.Get(assuranceKey)
		value["assurance"] = assurance
	}
	return Data{q.ID(): value}, nil
}

// UnformatData reshapes saved data back into form field values.
func (q *Question) UnformatData(data Data) Data {
	return q.kind.unformat(q, data)
}

// GetErrorMessages maps error codes for the question's fields to messages.
func (q *Question) GetErrorMessages(errs Errors, options ...ErrorOption) (*ErrorMessages, error) {
	return q.kind.errorMessages(q, errs, newErrorConfig(options))
}

// GetErrorMessage returns the validation message for code. fieldID selects
// field specific validations and defaults to the question id.
func (q *Question) GetErrorMessage(code, fieldID string) (string, error) {
	if fieldID == "" {
		fieldID = q.ID()
	}
	target := q.GetQuestion(fieldID)
	if target == nil {
		target = q
	}
	for _, validation := range target.schema.Validations {
		if validation.Name != code {
			continue
		}
		if validation.Field != "" && validation.Field != fieldID {
			continue
		}
		if validation.Message == nil {
			return "", nil
		}
		return validation.Message.Render(target.context)
	}
	if code == AnswerRequiredCode {
		return DefaultRequiredMessage, nil
	}
	return DefaultProblemMessage, nil
}

// Href is the URL fragment of the question's first input.
func (q *Question) Href() string {
	return href(q.ID(), q.Type(), false)
}

// LegacyHref is Href for frontend templates that suffix the first input of
// radios, checkboxes, lists and booleans.
func (q *Question) LegacyHref() string {
	return href(q.ID(), q.Type(), true)
}

func (q *Question) hrefFor(cfg *errorConfig) string {
	return href(q.ID(), q.Type(), cfg.legacyHrefs)
}

func href(id, typ string, legacy bool) string {
	out := "#input-" + id
	switch typ {
	case TypeCheckboxTree:
		out += "-1-1"
	case TypeDate:
		out += "-day"
	}
	if legacy {
		switch typ {
		case TypeCheckboxes, TypeList, TypeRadios, TypeBoolean:
			out += "-1"
		}
	}
	return out
}

// InjectBooleanListQuestions copies the item labels of a boolean list
// question from brief, which is keyed by question id. A required boolean list
// missing from brief is a content error.
func (q *Question) InjectBooleanListQuestions(brief map[string]any) error {
	if q.Type() != TypeBooleanList {
		return nil
	}
	raw, ok := brief[q.ID()]
	if !ok && !q.IsOptional() {
		return contenterr.NotFound("no %s found for brief %v", q.ID(), brief["id"])
	}
	labels := listify(raw)
	q.booleanListQuestions = make([]string, 0, len(labels))
	for _, label := range labels {
		q.booleanListQuestions = append(q.booleanListQuestions, displayString(label))
	}
	return nil
}

// TriggersFollowup reports whether answer shows the followup question target.
func (q *Question) TriggersFollowup(target string, answer any) bool {
	values, ok := q.schema.Followup[target]
	if !ok {
		return false
	}
	return intersects(answer, values)
}

// answer returns the saved or parsed answer for the question, unwrapping
// assurance values.
func (q *Question) answer(data Data) (any, bool) {
	value, ok := data[q.ID()]
	if !ok {
		return nil, false
	}
	if q.HasAssurance() {
		record, isRecord := asRecord(value)
		if !isRecord {
			return nil, false
		}
		value, ok = record["value"]
	}
	return value, ok
}

func (q *Question) String() string {
	return fmt.Sprintf("<Question: id=%s type=%s number=%d>", q.ID(), q.Type(), q.number)
}

func sortedIntersection(keys map[string]any, fields []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		if _, dup := seen[field]; dup {
			continue
		}
		seen[field] = struct{}{}
		if _, ok := keys[field]; ok {
			out = append(out, field)
		}
	}
	sort.Strings(out)
	return out
}

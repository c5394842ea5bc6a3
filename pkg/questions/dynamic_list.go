package questions

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/goliatone/go-formcontent/pkg/contenterr"
	"github.com/goliatone/go-formcontent/pkg/formdata"
)

// dynamicListBehavior repeats its nested questions once per item of a list
// found in the filter context at dynamic_field, for example
// "brief.essentialRequirements". Generated questions have "-<index>"
// appended to their ids and the answers are saved as a list of per item
// records under the list id.
type dynamicListBehavior struct{ multiquestionBehavior }

func (dynamicListBehavior) validate(schema *Schema) error {
	if err := requireNested(schema); err != nil {
		return err
	}
	if schema.DynamicField == "" {
		return fmt.Errorf("%w: dynamic list %q has no dynamic_field", ErrInvalidSchema, schema.ID)
	}
	return nil
}

func (dynamicListBehavior) filterChildren(q *Question, ctx Context, cfg *filterConfig, inPlace bool) (*Question, error) {
	if cfg.static {
		return multiquestionBehavior{}.filterChildren(q, ctx, cfg, inPlace)
	}

	items, err := dynamicItems(q.schema.DynamicField, ctx)
	if err != nil {
		return nil, fmt.Errorf("questions: %s: %w", q.ID(), err)
	}

	templates := q.questions
	generated := make([]*Question, 0, len(items)*len(templates))
	for index, item := range items {
		itemCtx := make(Context, len(ctx)+1)
		for key, value := range ctx {
			itemCtx[key] = value
		}
		itemCtx["item"] = item

		for _, template := range templates {
			child, err := template.filter(itemCtx, cfg, false)
			if err != nil {
				return nil, err
			}
			if child == nil {
				continue
			}
			child.index(index)
			generated = append(generated, child)
		}
	}
	q.questions = generated
	return q, nil
}

// index rewrites the id and followup ids of a generated question.
func (q *Question) index(index int) {
	base := q.schema
	schema := base.clone()
	schema.ID = indexedID(base.ID, index)
	if len(base.Followup) > 0 {
		schema.Followup = make(map[string][]any, len(base.Followup))
		for target, values := range base.Followup {
			schema.Followup[indexedID(target, index)] = values
		}
	}
	q.schema = schema
	q.origin = &dynamicOrigin{schema: base, index: index}
}

// dynamicItems resolves a dotted path inside ctx to a list.
func dynamicItems(path string, ctx Context) ([]any, error) {
	out, err := expr.Eval(path, map[string]any(ctx))
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %v: %w", path, err, contenterr.ErrContextLookup)
	}
	if out == nil {
		return nil, fmt.Errorf("resolve %q: no value: %w", path, contenterr.ErrContextLookup)
	}
	items, ok := toList(out)
	if !ok {
		return nil, fmt.Errorf("resolve %q: %T is not a list: %w", path, out, contenterr.ErrContextLookup)
	}
	return items, nil
}

// parse needs the bound context to know how many items exist. Rows for items
// without answers are empty records and nil answers are left out.
func (dynamicListBehavior) parse(q *Question, form formdata.Values) (Data, error) {
	if q.context == nil {
		return nil, fmt.Errorf("questions: parse %s: %w", q.ID(), contenterr.ErrContextRequired)
	}
	items, err := dynamicItems(q.schema.DynamicField, q.context)
	if err != nil {
		return nil, fmt.Errorf("questions: %s: %w", q.ID(), err)
	}

	rows := make([]Data, len(items))
	for i := range rows {
		rows[i] = Data{}
	}

	var templates []*Schema
	seen := make(map[string]struct{})
	for _, child := range q.questions {
		if child.origin != nil {
			if _, dup := seen[child.origin.schema.ID]; !dup {
				seen[child.origin.schema.ID] = struct{}{}
				templates = append(templates, child.origin.schema)
			}
		}

		data, err := child.GetData(form)
		if err != nil {
			return nil, err
		}
		for key, value := range data {
			if value == nil {
				continue
			}
			base, index, ok := splitIndexed(child, key)
			if !ok || index < 0 || index >= len(rows) {
				continue
			}
			rows[index][base] = value
		}
	}

	dropNestedFollowups(templates, rows)
	return Data{q.ID(): rows}, nil
}

// splitIndexed maps a generated form key back to its base id and item index.
func splitIndexed(child *Question, key string) (string, int, bool) {
	if child.origin != nil && key == child.ID() {
		return child.origin.schema.ID, child.origin.index, true
	}
	index, ok := trailingIndex(key)
	if !ok {
		return "", 0, false
	}
	return key[:strings.LastIndex(key, "-")], index, true
}

func (dynamicListBehavior) formFields(q *Question) []string {
	return []string{q.ID()}
}

func (dynamicListBehavior) optionalFields(q *Question) []string {
	if q.IsOptional() {
		return []string{q.ID()}
	}
	return nil
}

// errorMessages reads the list of item errors under the list id. Errors with
// a field point at the generated question for that item.
func (dynamicListBehavior) errorMessages(q *Question, errs Errors, cfg *errorConfig) (*ErrorMessages, error) {
	out := NewErrorMessages()
	raw, ok := errs[q.ID()]
	if !ok {
		return out, nil
	}

	for _, itemErr := range itemErrors(raw) {
		inputName := q.ID()
		if itemErr.Field != "" {
			inputName = indexedID(itemErr.Field, itemErr.Index)
		}
		target := q.GetQuestion(inputName)
		if target == nil {
			target = q
		}

		message, err := target.GetErrorMessage(itemErr.Error, "")
		if err != nil {
			return nil, err
		}
		descriptor, err := target.Descriptor(cfg.descriptorFrom)
		if err != nil {
			return nil, err
		}
		link := "#input-" + inputName
		if target != q {
			link = target.hrefFor(cfg)
		}
		out.Set(inputName, ErrorMessage{
			InputName: inputName,
			Href:      link,
			Question:  descriptor,
			Message:   message,
		})
	}
	return out, nil
}

// unformat spreads the saved item records over the generated question ids.
func (dynamicListBehavior) unformat(q *Question, data Data) Data {
	out := Data{}
	rows, ok := toList(data[q.ID()])
	if !ok {
		return out
	}
	for _, child := range q.questions {
		if child.origin == nil || child.origin.index >= len(rows) {
			continue
		}
		row, ok := asRecord(rows[child.origin.index])
		if !ok {
			continue
		}
		if value, present := row[child.origin.schema.ID]; present {
			out[child.ID()] = value
		}
	}
	return out
}

// summarize reads answers through unformat so generated questions find
// their item's values under their own ids.
func (dynamicListBehavior) summarize(s *Summary) {
	data := make(Data, len(s.data))
	for key, value := range s.data {
		data[key] = value
	}
	for key, value := range s.UnformatData(s.data) {
		data[key] = value
	}
	s.children = summarizeAll(s.questions, data)
}

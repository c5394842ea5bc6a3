package questions

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formcontent/pkg/formats"
	"github.com/goliatone/go-formcontent/pkg/formdata"
)

// textBehavior covers text, textbox_large, radios, service_id and unknown
// types: one form key, blank answers become nil.
type textBehavior struct{ baseBehavior }

func (textBehavior) parse(q *Question, form formdata.Values) (Data, error) {
	value, ok := form.Get(q.ID())
	if !ok {
		return Data{}, nil
	}
	if value == "" {
		return Data{q.ID(): nil}, nil
	}
	return Data{q.ID(): value}, nil
}

// uploadBehavior never reads form data; files are handled elsewhere.
type uploadBehavior struct{ baseBehavior }

func (uploadBehavior) parse(*Question, formdata.Values) (Data, error) {
	return Data{}, nil
}

type booleanBehavior struct{ baseBehavior }

func (booleanBehavior) parse(q *Question, form formdata.Values) (Data, error) {
	value, ok := form.Get(q.ID())
	if !ok {
		return Data{}, nil
	}
	return Data{q.ID(): ToBoolean(value)}, nil
}

type numberBehavior struct{ baseBehavior }

func (numberBehavior) parse(q *Question, form formdata.Values) (Data, error) {
	value, ok := form.Get(q.ID())
	if !ok {
		return Data{}, nil
	}
	number := ToNumber(stripUnit(value, q.Unit(), q.UnitPosition()))
	if _, ok := number.(string); ok {
		return Data{q.ID(): value}, nil
	}
	return Data{q.ID(): number}, nil
}

func (numberBehavior) value(s *Summary, filterLabels bool) any {
	raw := s.RawValue()
	if !isEmptyValue(raw) && s.Unit() != "" {
		if s.UnitPosition() == "after" {
			raw = displayString(raw) + s.Unit()
		} else {
			return s.Unit() + displayString(raw)
		}
	}
	if len(s.schema.Options) > 0 && truthy(raw) {
		if option, ok := findOption(s.schema.Options, raw); ok {
			return optionLabel(option, filterLabels)
		}
	}
	return raw
}

// maxBooleanListItems bounds a boolean list when no labels were injected.
const maxBooleanListItems = 100

// booleanListBehavior rebuilds a list from sparse "<id>-<index>" keys. Keys
// past the injected labels, or past maxBooleanListItems without labels, are
// dropped.
type booleanListBehavior struct{ baseBehavior }

func (booleanListBehavior) parse(q *Question, form formdata.Values) (Data, error) {
	prefix := q.ID() + "-"
	limit := maxBooleanListItems
	if labels := len(q.BooleanListQuestions()); labels > 0 {
		limit = labels
	}
	values := make(map[int]any)
	maxIndex := -1
	for _, key := range form.Keys() {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		index, ok := trailingIndex(key)
		if !ok || index >= limit {
			continue
		}
		raw, _ := form.Get(key)
		values[index] = ToBoolean(raw)
		if index > maxIndex {
			maxIndex = index
		}
	}
	if maxIndex < 0 {
		return Data{}, nil
	}

	list := make([]any, maxIndex+1)
	for index, value := range values {
		list[index] = value
	}
	return Data{q.ID(): list}, nil
}

// trailingIndex reads the digits after the last hyphen of key.
func trailingIndex(key string) (int, bool) {
	pos := strings.LastIndex(key, "-")
	if pos < 0 || pos == len(key)-1 {
		return 0, false
	}
	digits := key[pos+1:]
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	index, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return index, true
}

// Date parts in the order they are joined.
var dateParts = []string{"year", "month", "day"}

// dateBehavior joins "<id>-year", "<id>-month" and "<id>-day" into one
// "YYYY-M-D" string.
type dateBehavior struct{ baseBehavior }

func (dateBehavior) parse(q *Question, form formdata.Values) (Data, error) {
	parts := make([]string, len(dateParts))
	anySet := false
	for i, part := range dateParts {
		value, _ := form.Get(q.ID() + "-" + part)
		if strings.Contains(value, "-") {
			value = ""
		}
		parts[i] = value
		if value != "" {
			anySet = true
		}
	}
	if !anySet {
		return Data{q.ID(): nil}, nil
	}
	return Data{q.ID(): strings.Join(parts, "-")}, nil
}

func (dateBehavior) unformat(q *Question, data Data) Data {
	out := Data{}
	value, ok := q.answer(data)
	if !ok || !truthy(value) {
		return out
	}
	parts := strings.SplitN(displayString(value), "-", len(dateParts))
	for i, part := range parts {
		out[q.ID()+"-"+dateParts[i]] = part
	}
	return out
}

func (dateBehavior) value(s *Summary, _ bool) any {
	raw := s.RawValue()
	text, ok := raw.(string)
	if !ok || text == "" {
		return raw
	}
	return formats.FormatDate(text)
}

// listBehavior covers list and checkboxes: every value of a repeated key.
type listBehavior struct{ baseBehavior }

func (listBehavior) parse(q *Question, form formdata.Values) (Data, error) {
	if !form.Has(q.ID()) {
		return Data{q.ID(): nil}, nil
	}
	values := form.GetAll(q.ID())
	if len(values) == 0 {
		return Data{q.ID(): nil}, nil
	}
	return Data{q.ID(): append([]string(nil), values...)}, nil
}

func (listBehavior) value(s *Summary, filterLabels bool) any {
	raw := s.RawValue()
	if before := s.schema.BeforeSummaryValue; len(before) > 0 {
		items := append([]any(nil), before...)
		if truthy(raw) {
			items = append(items, listify(raw)...)
		}
		raw = items
	}

	list, ok := toList(raw)
	if !ok || len(s.schema.Options) == 0 {
		return raw
	}
	out := make([]any, len(list))
	for i, item := range list {
		out[i] = item
		if option, found := findOption(s.schema.Options, item); found {
			out[i] = optionLabel(option, filterLabels)
		}
	}
	return out
}

// hierarchyBehavior is a checkbox tree: values can be submitted from several
// positions in the tree so they are deduplicated and sorted.
type hierarchyBehavior struct{ listBehavior }

func (hierarchyBehavior) parse(q *Question, form formdata.Values) (Data, error) {
	values := form.GetAll(q.ID())
	if len(values) == 0 {
		return Data{q.ID(): nil}, nil
	}
	seen := make(map[string]struct{}, len(values))
	unique := make([]string, 0, len(values))
	for _, value := range values {
		if _, dup := seen[value]; dup {
			continue
		}
		seen[value] = struct{}{}
		unique = append(unique, value)
	}
	sort.Strings(unique)
	return Data{q.ID(): unique}, nil
}

// value returns the part of the option tree that is selected, including the
// ancestors of selected options even though those are not saved.
func (hierarchyBehavior) value(s *Summary, _ bool) any {
	raw := s.RawValue()
	if !truthy(raw) {
		return raw
	}
	selected := make(map[string]struct{})
	for _, item := range listify(raw) {
		selected[displayString(item)] = struct{}{}
	}
	return selectedOptions(s.schema.Options, selected)
}

func selectedOptions(options []Option, selected map[string]struct{}) []Option {
	out := []Option{}
	for _, option := range options {
		children := selectedOptions(option.Options, selected)
		_, chosen := selected[displayString(option.Value)]
		if !chosen && len(children) == 0 {
			continue
		}
		kept := option
		kept.Options = children
		out = append(out, kept)
	}
	return out
}

func indexedID(id string, index int) string {
	return fmt.Sprintf("%s-%d", id, index)
}

package questions_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcontent/pkg/questions"
)

func TestSummary_OptionLabels(t *testing.T) {
	q := mustQuestion(t, map[string]any{
		"id":   "q",
		"type": "checkboxes",
		"options": []any{
			map[string]any{"label": "Option label", "value": "value", "filter_label": "Filter label"},
			map[string]any{"label": "Other"},
		},
	})

	summary := q.Summary(questions.Data{"q": []any{"value"}})
	if diff := cmp.Diff([]any{"Option label"}, summary.Value()); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{"Filter label"}, summary.FilterValue()); diff != "" {
		t.Fatalf("filter value mismatch (-want +got):\n%s", diff)
	}

	unknown := q.Summary(questions.Data{"q": []any{"Other", "missing"}})
	if diff := cmp.Diff([]any{"Other", "missing"}, unknown.Value()); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestSummary_RadiosOptionLabel(t *testing.T) {
	q := mustQuestion(t, map[string]any{
		"id":      "q",
		"type":    "radios",
		"options": []any{map[string]any{"label": "Yes please", "value": "yes"}},
	})

	if got := q.Summary(questions.Data{"q": "yes"}).Value(); got != "Yes please" {
		t.Fatalf("Value() = %v", got)
	}
}

func TestSummary_BeforeSummaryValue(t *testing.T) {
	q := mustQuestion(t, map[string]any{
		"id":                   "q",
		"type":                 "list",
		"before_summary_value": []any{"Always included"},
	})

	got := q.Summary(questions.Data{"q": []any{"Chosen"}}).Value()
	if diff := cmp.Diff([]any{"Always included", "Chosen"}, got); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestSummary_NumberUnit(t *testing.T) {
	before := mustQuestion(t, map[string]any{"id": "q", "type": "number", "unit": "£"})
	if got := before.Summary(questions.Data{"q": 12}).Value(); got != "£12" {
		t.Fatalf("Value() = %v", got)
	}

	after := mustQuestion(t, map[string]any{"id": "q", "type": "number", "unit": "%", "unit_position": "after"})
	if got := after.Summary(questions.Data{"q": 15}).Value(); got != "15%" {
		t.Fatalf("Value() = %v", got)
	}
	if got := after.Summary(questions.Data{}).Value(); got != "" {
		t.Fatalf("unanswered number should stay empty, got %v", got)
	}

	rate := mustQuestion(t, map[string]any{"id": "rate", "type": "number", "unit": "£"})
	cleared := rate.Summary(questions.Data{"rate": nil})
	if got := cleared.Value(); got != nil {
		t.Fatalf("a nil answer should not gain a unit, got %v", got)
	}
	if !cleared.IsEmpty() || !cleared.AnswerRequired() {
		t.Fatalf("a nil answer should be empty and required")
	}
}

func TestSummary_Date(t *testing.T) {
	q := mustQuestion(t, map[string]any{"id": "q", "type": "date"})

	if got := q.Summary(questions.Data{"q": "2016-9-5"}).Value(); got != "Monday 5 September 2016" {
		t.Fatalf("Value() = %v", got)
	}
	if got := q.Summary(questions.Data{"q": "not a date"}).Value(); got != "not a date" {
		t.Fatalf("invalid dates pass through, got %v", got)
	}
}

func TestSummary_Assurance(t *testing.T) {
	q := mustQuestion(t, map[string]any{"id": "q", "type": "text", "assuranceApproach": "2answers-type1"})

	summary := q.Summary(questions.Data{"q": map[string]any{"value": "Yes", "assurance": "Independent validation"}})
	if summary.Value() != "Yes" || summary.Assurance() != "Independent validation" {
		t.Fatalf("unexpected value %v / assurance %q", summary.Value(), summary.Assurance())
	}

	empty := q.Summary(questions.Data{"q": map[string]any{"assurance": "Independent validation"}})
	if !empty.IsEmpty() || !empty.AnswerRequired() {
		t.Fatalf("assurance without a value should be unanswered")
	}
}

func TestSummary_EmptyAndRequired(t *testing.T) {
	required := mustQuestion(t, map[string]any{"id": "q", "type": "checkboxes"})
	optional := mustQuestion(t, map[string]any{"id": "q", "type": "checkboxes", "optional": true})

	for _, data := range []questions.Data{{}, {"q": nil}, {"q": ""}, {"q": []any{}}} {
		if !required.Summary(data).IsEmpty() {
			t.Fatalf("%v should be empty", data)
		}
		if !required.Summary(data).AnswerRequired() {
			t.Fatalf("%v should require an answer", data)
		}
		if optional.Summary(data).AnswerRequired() {
			t.Fatalf("optional question should never require an answer")
		}
	}

	boolean := mustQuestion(t, map[string]any{"id": "q", "type": "boolean"})
	if boolean.Summary(questions.Data{"q": false}).IsEmpty() {
		t.Fatalf("false is an answer")
	}
}

func TestSummary_Pricing(t *testing.T) {
	q := mustQuestion(t, map[string]any{
		"id":   "price",
		"type": "pricing",
		"fields": map[string]any{
			"minimum_price":  "priceMin",
			"maximum_price":  "priceMax",
			"price_unit":     "priceUnit",
			"price_interval": "priceInterval",
		},
		"field_defaults": map[string]any{"price_interval": "day"},
	})

	cases := []struct {
		name string
		data questions.Data
		want string
	}{
		{
			name: "range",
			data: questions.Data{"priceMin": "20", "priceMax": "25", "priceUnit": "Unit", "priceInterval": "Week"},
			want: "£20 to £25 a unit a week",
		},
		{
			name: "defaults",
			data: questions.Data{"priceMin": "20.5", "priceUnit": "Unit"},
			want: "£20.50 a unit a day",
		},
		{
			name: "maximum only",
			data: questions.Data{"priceMax": "25"},
			want: "",
		},
		{
			name: "nothing",
			data: questions.Data{},
			want: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := q.Summary(tc.data).Value(); got != tc.want {
				t.Fatalf("Value() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSummary_CheckboxTree(t *testing.T) {
	q := mustQuestion(t, map[string]any{
		"id":   "categories",
		"type": "checkbox_tree",
		"options": []any{
			map[string]any{"label": "Option 1", "value": "o1", "options": []any{
				map[string]any{"label": "Option 1.1", "value": "o1.1"},
				map[string]any{"label": "Option 1.2", "value": "o1.2"},
			}},
			map[string]any{"label": "Option 2", "value": "o2"},
			map[string]any{"label": "Option 3", "value": "o3"},
		},
	})

	value, ok := q.Summary(questions.Data{"categories": []any{"o1.2", "o3"}}).Value().([]questions.Option)
	if !ok {
		t.Fatalf("expected an option tree")
	}
	want := []string{"Option 1", "  Option 1.2", "Option 3"}
	if diff := cmp.Diff(want, optionOutline(value, "")); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}
}

func optionOutline(options []questions.Option, indent string) []string {
	var out []string
	for _, option := range options {
		out = append(out, indent+option.Label)
		out = append(out, optionOutline(option.Options, indent+"  ")...)
	}
	return out
}

func TestSummary_BooleanListErrorExpansion(t *testing.T) {
	q := mustQuestion(t, map[string]any{"id": "bl", "type": "boolean_list", "question": "Nice to haves"})
	if err := q.InjectBooleanListQuestions(map[string]any{"bl": []any{"First", "Second", "Third"}}); err != nil {
		t.Fatalf("inject: %v", err)
	}

	got, err := q.Summary(questions.Data{"bl": []any{true}}).GetErrorMessages(questions.Errors{"bl": "answer_required"})
	if err != nil {
		t.Fatalf("error messages: %v", err)
	}
	if diff := cmp.Diff([]string{"bl", "bl-1", "bl-2"}, got.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}

	aggregate, _ := got.Get("bl")
	if !aggregate.Expanded {
		t.Fatalf("aggregate entry should be marked expanded")
	}
	item, _ := got.Get("bl-2")
	want := questions.ErrorMessage{
		InputName: "bl-2",
		Href:      "#input-bl-2",
		Question:  "Third",
		Message:   questions.DefaultRequiredMessage,
	}
	if diff := cmp.Diff(want, item); diff != "" {
		t.Fatalf("item mismatch (-want +got):\n%s", diff)
	}

	none, err := q.Summary(nil).GetErrorMessages(questions.Errors{"bl": "answer_required"})
	if err != nil {
		t.Fatalf("error messages: %v", err)
	}
	if none.Len() != 4 {
		t.Fatalf("expected aggregate plus three items, got %v", none.Keys())
	}
}

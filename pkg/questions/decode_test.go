package questions_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcontent/pkg/questions"
	"github.com/goliatone/go-formcontent/pkg/template"
)

func TestDecodeSchema_StructuralFields(t *testing.T) {
	schema, err := questions.DecodeSchema(map[string]any{
		"id":                "price",
		"type":              "pricing",
		"question":          "Price",
		"hint":              "Excluding VAT",
		"question_advice":   "Give your **lowest** price",
		"optional":          true,
		"optional_fields":   []any{"maximum_price"},
		"fields":            map[string]any{"minimum_price": "priceMin", "maximum_price": "priceMax"},
		"depends":           dependsOn("lot", "cloud-hosting"),
		"unit":              "£",
		"unit_position":     "before",
		"number_of_items":   5,
		"field_defaults":    map[string]any{"price_unit": "Unit"},
		"assuranceApproach": "2answers-type1",
		"customProperty":    "kept",
	})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if schema.ID != "price" || schema.Type != "pricing" || !schema.Optional {
		t.Fatalf("unexpected identity fields: %+v", schema)
	}
	if diff := cmp.Diff(map[string]string{"minimum_price": "priceMin", "maximum_price": "priceMax"}, schema.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]questions.Dependency{{On: "lot", Being: []any{"cloud-hosting"}}}, schema.Depends); diff != "" {
		t.Fatalf("depends mismatch (-want +got):\n%s", diff)
	}
	if schema.NumberOfItems != 5 || schema.Unit != "£" || schema.AssuranceApproach == "" {
		t.Fatalf("unexpected scalar fields: %+v", schema)
	}
	if diff := cmp.Diff(map[string]any{"customProperty": "kept"}, schema.Extra); diff != "" {
		t.Fatalf("extra mismatch (-want +got):\n%s", diff)
	}

	if !schema.Templates[questions.FieldQuestion].Equal(template.MustNew("Price")) {
		t.Fatalf("question template not compiled")
	}
	if !schema.Templates[questions.FieldQuestionAdvice].Markdown() {
		t.Fatalf("question advice should always be markdown")
	}
	if schema.Templates[questions.FieldHint].Markdown() {
		t.Fatalf("single line hint should not be markdown")
	}
}

func TestDecodeSchema_Options(t *testing.T) {
	schema, err := questions.DecodeSchema(map[string]any{
		"id":   "lot",
		"type": "radios",
		"options": []any{
			map[string]any{"label": "Cloud hosting", "value": "cloud-hosting", "filter_label": "Hosting"},
			map[string]any{"label": "Cloud support", "description": "For {{ lot }}"},
		},
	})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if len(schema.Options) != 2 {
		t.Fatalf("expected two options, got %d", len(schema.Options))
	}
	if schema.Options[0].Value != "cloud-hosting" || schema.Options[0].FilterLabel != "Hosting" {
		t.Fatalf("unexpected first option: %+v", schema.Options[0])
	}
	if schema.Options[1].Value != "Cloud support" {
		t.Fatalf("option value should default to its label, got %v", schema.Options[1].Value)
	}
	if schema.Options[1].Description.Source() != "For {{ lot }}" {
		t.Fatalf("option description not compiled")
	}
}

func TestDecodeSchema_FollowupShorthand(t *testing.T) {
	schema, err := questions.DecodeSchema(map[string]any{
		"id":       "q1",
		"type":     "boolean",
		"followup": "q2",
	})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(map[string][]any{"q2": {true}}, schema.Followup); diff != "" {
		t.Fatalf("followup mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeSchema_NestedQuestions(t *testing.T) {
	schema, err := questions.DecodeSchema(map[string]any{
		"id":   "group",
		"type": "multiquestion",
		"questions": []any{
			map[string]any{"id": "q1", "type": "text"},
			map[string]any{"id": "q2", "type": "number"},
		},
	})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(schema.Questions) != 2 || schema.Questions[1].Type != "number" {
		t.Fatalf("unexpected nested questions: %+v", schema.Questions)
	}
}

func TestDecodeSchema_Errors(t *testing.T) {
	cases := map[string]map[string]any{
		"missing id":           {"type": "text"},
		"unresolved reference": {"id": "group", "type": "multiquestion", "questions": []any{"q1"}},
		"bad options":          {"id": "q", "options": "nope"},
	}
	for name, record := range cases {
		if _, err := questions.DecodeSchema(record); !errors.Is(err, questions.ErrInvalidSchema) {
			t.Fatalf("%s: expected ErrInvalidSchema, got %v", name, err)
		}
	}

	_, err := questions.DecodeSchema(map[string]any{"id": "q", "question": "{% if %}"})
	if !errors.Is(err, template.ErrTemplate) {
		t.Fatalf("expected template error for invalid question text, got %v", err)
	}
}

func TestNew_RequiresCompositeParts(t *testing.T) {
	cases := []map[string]any{
		{"id": "p", "type": "pricing"},
		{"id": "m", "type": "multiquestion"},
		{"id": "d", "type": "dynamic_list", "questions": []any{map[string]any{"id": "x"}}},
	}
	for _, record := range cases {
		if _, err := questions.FromRecord(record); !errors.Is(err, questions.ErrInvalidSchema) {
			t.Fatalf("%v: expected ErrInvalidSchema, got %v", record["id"], err)
		}
	}
}

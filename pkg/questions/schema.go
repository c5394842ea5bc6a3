package questions

import (
	"sort"

	"github.com/goliatone/go-formcontent/pkg/template"
)

// Question types understood by New. Unknown types behave like TypeText.
const (
	TypeText          = "text"
	TypeTextboxLarge  = "textbox_large"
	TypeRadios        = "radios"
	TypeNumber        = "number"
	TypeBoolean       = "boolean"
	TypeBooleanList   = "boolean_list"
	TypeDate          = "date"
	TypeList          = "list"
	TypeCheckboxes    = "checkboxes"
	TypeCheckboxTree  = "checkbox_tree"
	TypePricing       = "pricing"
	TypeMultiquestion = "multiquestion"
	TypeDynamicList   = "dynamic_list"
	TypeUpload        = "upload"
	TypeServiceID     = "service_id"
)

// Templated properties of a question record.
const (
	FieldName           = "name"
	FieldQuestion       = "question"
	FieldHint           = "hint"
	FieldQuestionAdvice = "question_advice"
)

// TemplateFields are compiled into template fields when a record is decoded.
var TemplateFields = []string{FieldName, FieldQuestion, FieldHint}

// MarkdownFields are compiled as markdown regardless of their line count.
var MarkdownFields = []string{FieldQuestionAdvice}

// Schema is the decoded, immutable record of a question. Questions built from
// the same schema share it.
type Schema struct {
	ID                      string            `mapstructure:"id"`
	Type                    string            `mapstructure:"type"`
	Slug                    string            `mapstructure:"slug"`
	Optional                bool              `mapstructure:"optional"`
	OptionalFields          []string          `mapstructure:"optional_fields"`
	Fields                  map[string]string `mapstructure:"fields"`
	Depends                 []Dependency      `mapstructure:"depends"`
	Unit                    string            `mapstructure:"unit"`
	UnitPosition            string            `mapstructure:"unit_position"`
	Limits                  map[string]any    `mapstructure:"limits"`
	NumberOfItems           int               `mapstructure:"number_of_items"`
	DynamicField            string            `mapstructure:"dynamic_field"`
	DecimalPlaceRestriction bool              `mapstructure:"decimal_place_restriction"`
	AssuranceApproach       string            `mapstructure:"assuranceApproach"`
	FieldDefaults           map[string]any    `mapstructure:"field_defaults"`
	BeforeSummaryValue      []any             `mapstructure:"before_summary_value"`
	MaxLengthInWords        int               `mapstructure:"max_length_in_words"`
	Extra                   map[string]any    `mapstructure:",remain"`

	Templates   map[string]*template.Field `mapstructure:"-"`
	Options     []Option                   `mapstructure:"-"`
	Validations []Validation               `mapstructure:"-"`
	Followup    map[string][]any           `mapstructure:"-"`
	Questions   []*Schema                  `mapstructure:"-"`
}

// Dependency gates a question on a filter context value.
type Dependency struct {
	On    string `mapstructure:"on"`
	Being []any  `mapstructure:"being"`
}

// Option is a selectable answer. Value falls back to Label when the record
// omits it.
type Option struct {
	Label       string
	Value       any
	FilterLabel string
	Description *template.Field
	Options     []Option
	Extra       map[string]any
}

// Validation maps an error code to a message, optionally for a single field
// of a composite question.
type Validation struct {
	Name    string
	Field   string
	Message *template.Field
}

// FollowupTargets returns the ids named by the followup map in sorted order.
func (s *Schema) FollowupTargets() []string {
	if s == nil || len(s.Followup) == 0 {
		return nil
	}
	targets := make([]string, 0, len(s.Followup))
	for id := range s.Followup {
		targets = append(targets, id)
	}
	sort.Strings(targets)
	return targets
}

// clone copies the top level of the schema so id and followup can be
// rewritten for generated questions without touching the original.
func (s *Schema) clone() *Schema {
	out := *s
	if s.Followup != nil {
		out.Followup = make(map[string][]any, len(s.Followup))
		for id, values := range s.Followup {
			out.Followup[id] = values
		}
	}
	return &out
}

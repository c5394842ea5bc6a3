package questions

import (
	"errors"
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"github.com/goliatone/go-formcontent/pkg/template"
)

// ErrInvalidSchema reports a question record that cannot be decoded.
var ErrInvalidSchema = errors.New("questions: invalid schema")

// DecodeSchema turns a fully resolved question record into a Schema. Nested
// question references must already be spliced in. Templated properties,
// option descriptions and validation messages are compiled eagerly so syntax
// errors surface here.
func DecodeSchema(record map[string]any) (*Schema, error) {
	if record == nil {
		return nil, fmt.Errorf("%w: nil record", ErrInvalidSchema)
	}

	rest := make(map[string]any, len(record))
	for key, value := range record {
		rest[key] = value
	}

	schema := &Schema{Templates: make(map[string]*template.Field)}

	for _, name := range TemplateFields {
		if err := takeTemplate(rest, schema, name); err != nil {
			return nil, err
		}
	}
	for _, name := range MarkdownFields {
		if err := takeTemplate(rest, schema, name, template.WithMarkdown(true)); err != nil {
			return nil, err
		}
	}

	if raw, ok := rest["options"]; ok {
		delete(rest, "options")
		options, err := decodeOptions(raw)
		if err != nil {
			return nil, err
		}
		schema.Options = options
	}

	if raw, ok := rest["validations"]; ok {
		delete(rest, "validations")
		validations, err := decodeValidations(raw)
		if err != nil {
			return nil, err
		}
		schema.Validations = validations
	}

	if raw, ok := rest["followup"]; ok {
		delete(rest, "followup")
		followup, err := decodeFollowup(raw)
		if err != nil {
			return nil, err
		}
		schema.Followup = followup
	}

	if raw, ok := rest["questions"]; ok {
		delete(rest, "questions")
		items, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: questions must be a list, got %T", ErrInvalidSchema, raw)
		}
		for i, item := range items {
			child, ok := asRecord(item)
			if !ok {
				return nil, fmt.Errorf("%w: unresolved question reference %v at index %d", ErrInvalidSchema, item, i)
			}
			nested, err := DecodeSchema(child)
			if err != nil {
				return nil, err
			}
			schema.Questions = append(schema.Questions, nested)
		}
		if schema.Questions == nil {
			schema.Questions = []*Schema{}
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           schema,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("questions: build decoder: %w", err)
	}
	if err := decoder.Decode(rest); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}

	if schema.ID == "" {
		return nil, fmt.Errorf("%w: missing id", ErrInvalidSchema)
	}
	return schema, nil
}

func takeTemplate(rest map[string]any, schema *Schema, name string, options ...template.FieldOption) error {
	raw, ok := rest[name]
	if !ok {
		return nil
	}
	delete(rest, name)
	if raw == nil {
		return nil
	}
	field, err := template.New(fmt.Sprint(raw), options...)
	if err != nil {
		return fmt.Errorf("questions: compile %s: %w", name, err)
	}
	schema.Templates[name] = field
	return nil
}

func decodeOptions(raw any) ([]Option, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: options must be a list, got %T", ErrInvalidSchema, raw)
	}

	options := make([]Option, 0, len(items))
	for _, item := range items {
		record, ok := asRecord(item)
		if !ok {
			label := fmt.Sprint(item)
			options = append(options, Option{Label: label, Value: label})
			continue
		}

		option := Option{Extra: make(map[string]any)}
		for key, value := range record {
			switch key {
			case "label":
				option.Label = fmt.Sprint(value)
			case "value":
				option.Value = value
			case "filter_label":
				option.FilterLabel = fmt.Sprint(value)
			case "description":
				if value == nil {
					continue
				}
				field, err := template.New(fmt.Sprint(value))
				if err != nil {
					return nil, fmt.Errorf("questions: compile option description: %w", err)
				}
				option.Description = field
			case "options":
				nested, err := decodeOptions(value)
				if err != nil {
					return nil, err
				}
				option.Options = nested
			default:
				option.Extra[key] = value
			}
		}
		if _, ok := record["value"]; !ok {
			option.Value = option.Label
		}
		if len(option.Extra) == 0 {
			option.Extra = nil
		}
		options = append(options, option)
	}
	return options, nil
}

func decodeValidations(raw any) ([]Validation, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: validations must be a list, got %T", ErrInvalidSchema, raw)
	}

	validations := make([]Validation, 0, len(items))
	for _, item := range items {
		record, ok := asRecord(item)
		if !ok {
			return nil, fmt.Errorf("%w: validation must be a mapping, got %T", ErrInvalidSchema, item)
		}
		validation := Validation{
			Name:  stringOf(record["name"]),
			Field: stringOf(record["field"]),
		}
		if message, ok := record["message"]; ok && message != nil {
			field, err := template.New(fmt.Sprint(message))
			if err != nil {
				return nil, fmt.Errorf("questions: compile validation message: %w", err)
			}
			validation.Message = field
		}
		validations = append(validations, validation)
	}
	return validations, nil
}

// decodeFollowup accepts a mapping of id → triggering values, or a bare id
// which is shorthand for {id: [true]}.
func decodeFollowup(raw any) (map[string][]any, error) {
	switch typed := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return map[string][]any{typed: {true}}, nil
	case []any:
		out := make(map[string][]any, len(typed))
		for _, id := range typed {
			out[fmt.Sprint(id)] = []any{true}
		}
		return out, nil
	}

	record, ok := asRecord(raw)
	if !ok {
		return nil, fmt.Errorf("%w: followup must be a mapping or id, got %T", ErrInvalidSchema, raw)
	}
	out := make(map[string][]any, len(record))
	for id, values := range record {
		switch v := values.(type) {
		case []any:
			out[id] = v
		case nil:
			out[id] = []any{true}
		default:
			out[id] = []any{v}
		}
	}
	return out, nil
}

func asRecord(value any) (map[string]any, bool) {
	switch typed := value.(type) {
	case map[string]any:
		return typed, true
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			out[fmt.Sprint(k)] = v
		}
		return out, true
	default:
		return nil, false
	}
}

func stringOf(value any) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

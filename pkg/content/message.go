package content

import (
	"fmt"
	"reflect"

	"github.com/goliatone/go-formcontent/pkg/questions"
	"github.com/goliatone/go-formcontent/pkg/template"
)

// Message is a block of templated copy, such as the messages shown in a
// dashboard sidebar. Every string in the block is a template rendered against
// the context bound by Filter.
type Message struct {
	data    map[string]any
	context questions.Context
}

// NewMessage compiles every string found in data.
func NewMessage(data map[string]any) (*Message, error) {
	compiled, err := templateAll(data)
	if err != nil {
		return nil, err
	}
	return &Message{data: compiled.(map[string]any)}, nil
}

// templateAll walks mappings and lists, compiling strings into template
// fields.
func templateAll(value any) (any, error) {
	switch typed := value.(type) {
	case string:
		field, err := template.New(typed)
		if err != nil {
			return nil, fmt.Errorf("content: message: %w", err)
		}
		return field, nil
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			compiled, err := templateAll(item)
			if err != nil {
				return nil, err
			}
			out[key] = compiled
		}
		return out, nil
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			compiled, err := templateAll(item)
			if err != nil {
				return nil, err
			}
			out[i] = compiled
		}
		return out, nil
	default:
		return value, nil
	}
}

// Filter returns a copy of the message bound to ctx.
func (m *Message) Filter(ctx questions.Context) *Message {
	return &Message{data: m.data, context: ctx}
}

// Has reports whether key is set.
func (m *Message) Has(key string) bool {
	_, ok := m.data[key]
	return ok
}

// Get renders the value at key. Strings render to strings, mappings to
// messages sharing the context and lists element by element. A missing key
// returns nil.
func (m *Message) Get(key string) (any, error) {
	value, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return m.render(value)
}

// Text renders the value at key, which must be a string.
func (m *Message) Text(key string) (string, error) {
	value, err := m.Get(key)
	if err != nil {
		return "", err
	}
	if value == nil {
		return "", nil
	}
	text, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("content: message %q is a %T, not text", key, value)
	}
	return text, nil
}

// Lookup follows keys through nested messages.
func (m *Message) Lookup(keys ...string) (any, error) {
	var current any = m
	for _, key := range keys {
		message, ok := current.(*Message)
		if !ok {
			return nil, nil
		}
		value, err := message.Get(key)
		if err != nil {
			return nil, err
		}
		current = value
	}
	return current, nil
}

func (m *Message) render(value any) (any, error) {
	switch typed := value.(type) {
	case *template.Field:
		return typed.Render(m.context)
	case map[string]any:
		return &Message{data: typed, context: m.context}, nil
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			rendered, err := m.render(item)
			if err != nil {
				return nil, err
			}
			out[i] = rendered
		}
		return out, nil
	default:
		return value, nil
	}
}

// Equal reports whether both messages hold the same sources and context.
func (m *Message) Equal(other *Message) bool {
	if m == nil || other == nil {
		return m == other
	}
	return equalCompiled(m.data, other.data) && reflect.DeepEqual(m.context, other.context)
}

func equalCompiled(a, b any) bool {
	switch typed := a.(type) {
	case *template.Field:
		other, ok := b.(*template.Field)
		return ok && typed.Equal(other)
	case map[string]any:
		other, ok := b.(map[string]any)
		if !ok || len(typed) != len(other) {
			return false
		}
		for key, value := range typed {
			otherValue, present := other[key]
			if !present || !equalCompiled(value, otherValue) {
				return false
			}
		}
		return true
	case []any:
		other, ok := b.([]any)
		if !ok || len(typed) != len(other) {
			return false
		}
		for i := range typed {
			if !equalCompiled(typed[i], other[i]) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}

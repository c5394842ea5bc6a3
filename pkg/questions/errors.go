package questions

import (
	"fmt"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Default messages used when no validation matches an error code.
const (
	AnswerRequiredCode     = "answer_required"
	AssuranceRequiredCode  = "assurance_required"
	DefaultRequiredMessage = "You need to answer this question."
	DefaultProblemMessage  = "There was a problem with the answer to this question"
)

// Errors maps form field ids to error codes as reported by a validation
// layer. Dynamic list ids map to a list of ItemError records instead.
type Errors map[string]any

// ItemError is a single dynamic list error. Field is empty when the error
// applies to the whole list.
type ItemError struct {
	Field string
	Index int
	Error string
}

// ErrorMessage is a question scoped, human readable error. Expanded marks a
// boolean list entry whose detail was split into one entry per item.
type ErrorMessage struct {
	InputName string
	Href      string
	Question  string
	Message   string
	Expanded  bool
}

// ErrorMessages keeps error messages in insertion order.
type ErrorMessages struct {
	entries *orderedmap.OrderedMap[string, ErrorMessage]
}

// NewErrorMessages returns an empty collection.
func NewErrorMessages() *ErrorMessages {
	return &ErrorMessages{entries: orderedmap.New[string, ErrorMessage]()}
}

// Set adds or replaces the message for key. Replacing keeps the position.
func (m *ErrorMessages) Set(key string, message ErrorMessage) {
	m.entries.Set(key, message)
}

// Get returns the message for key.
func (m *ErrorMessages) Get(key string) (ErrorMessage, bool) {
	if m == nil {
		return ErrorMessage{}, false
	}
	return m.entries.Get(key)
}

// Has reports whether key has a message.
func (m *ErrorMessages) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Len returns the number of messages.
func (m *ErrorMessages) Len() int {
	if m == nil {
		return 0
	}
	return m.entries.Len()
}

// Keys returns the keys in order.
func (m *ErrorMessages) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, 0, m.entries.Len())
	for pair := m.entries.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Messages returns the messages in order.
func (m *ErrorMessages) Messages() []ErrorMessage {
	if m == nil {
		return nil
	}
	out := make([]ErrorMessage, 0, m.entries.Len())
	for pair := m.entries.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Merge copies other into m. Keys already present are overwritten in place.
func (m *ErrorMessages) Merge(other *ErrorMessages) {
	if other == nil {
		return
	}
	for pair := other.entries.Oldest(); pair != nil; pair = pair.Next() {
		m.entries.Set(pair.Key, pair.Value)
	}
}

// SortKeys reorders the messages by key.
func (m *ErrorMessages) SortKeys() {
	keys := m.Keys()
	sort.Strings(keys)
	sorted := orderedmap.New[string, ErrorMessage]()
	for _, key := range keys {
		value, _ := m.entries.Get(key)
		sorted.Set(key, value)
	}
	m.entries = sorted
}

// ErrorOption configures GetErrorMessages.
type ErrorOption func(*errorConfig)

type errorConfig struct {
	descriptorFrom string
	legacyHrefs    bool
}

func newErrorConfig(options []ErrorOption) *errorConfig {
	cfg := &errorConfig{descriptorFrom: "label"}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// DescriptorFrom selects the property used as the question descriptor of
// each message. The default is "label".
func DescriptorFrom(property string) ErrorOption {
	return func(cfg *errorConfig) {
		if property != "" {
			cfg.descriptorFrom = property
		}
	}
}

// WithLegacyHrefs links radios, checkboxes, lists and booleans to their first
// input, as older frontend templates suffix them with "-1".
func WithLegacyHrefs() ErrorOption {
	return func(cfg *errorConfig) {
		cfg.legacyHrefs = true
	}
}

func errorCode(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// itemErrors reads dynamic list errors given as ItemError values, decoded
// JSON records or a single code for the whole list.
func itemErrors(value any) []ItemError {
	switch typed := value.(type) {
	case nil:
		return nil
	case string:
		return []ItemError{{Error: typed}}
	case []ItemError:
		return typed
	case ItemError:
		return []ItemError{typed}
	}

	list, ok := toList(value)
	if !ok {
		return []ItemError{{Error: errorCode(value)}}
	}
	out := make([]ItemError, 0, len(list))
	for _, item := range list {
		if e, ok := item.(ItemError); ok {
			out = append(out, e)
			continue
		}
		record, ok := asRecord(item)
		if !ok {
			out = append(out, ItemError{Error: errorCode(item)})
			continue
		}
		index, _ := asFloat(record["index"])
		out = append(out, ItemError{
			Field: stringOf(record["field"]),
			Index: int(index),
			Error: errorCode(record["error"]),
		})
	}
	return out
}

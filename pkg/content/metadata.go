package content

import "reflect"

// Metadata is static framework data read as is: unlike Message nothing is
// templated.
type Metadata struct {
	data map[string]any
}

// NewMetadata wraps data.
func NewMetadata(data map[string]any) *Metadata {
	if data == nil {
		data = map[string]any{}
	}
	return &Metadata{data: data}
}

// Has reports whether key is set.
func (m *Metadata) Has(key string) bool {
	_, ok := m.data[key]
	return ok
}

// Get returns the value at key. Mappings are returned as Metadata and lists
// element by element; a missing key returns nil.
func (m *Metadata) Get(key string) any {
	value, ok := m.data[key]
	if !ok {
		return nil
	}
	return wrapMetadata(value)
}

// Raw returns the underlying data.
func (m *Metadata) Raw() map[string]any { return m.data }

func wrapMetadata(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return &Metadata{data: typed}
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = wrapMetadata(item)
		}
		return out
	default:
		return value
	}
}

// Equal compares the underlying data.
func (m *Metadata) Equal(other *Metadata) bool {
	if m == nil || other == nil {
		return m == other
	}
	return reflect.DeepEqual(m.data, other.data)
}

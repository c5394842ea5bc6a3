// Package formdata holds submitted form data: a multi-valued, string keyed
// mapping whose values have surrounding whitespace removed.
package formdata

import (
	"net/url"
	"sort"
	"strings"
)

// Values maps form field identifiers to every value submitted for them.
type Values map[string][]string

// New builds Values from single-valued pairs.
func New(pairs map[string]string) Values {
	values := make(Values, len(pairs))
	for key, value := range pairs {
		values.Add(key, value)
	}
	return values
}

// FromURLValues copies a parsed request form, trimming every value.
func FromURLValues(form url.Values) Values {
	values := make(Values, len(form))
	for key, list := range form {
		for _, value := range list {
			values.Add(key, value)
		}
	}
	return values
}

// Add appends a trimmed value for key.
func (v Values) Add(key, value string) {
	v[key] = append(v[key], strings.TrimSpace(value))
}

// Set replaces the values for key.
func (v Values) Set(key string, values ...string) {
	trimmed := make([]string, len(values))
	for i, value := range values {
		trimmed[i] = strings.TrimSpace(value)
	}
	v[key] = trimmed
}

// Get returns the first value for key.
func (v Values) Get(key string) (string, bool) {
	list, ok := v[key]
	if !ok || len(list) == 0 {
		return "", false
	}
	return list[0], true
}

// GetAll returns every value for key.
func (v Values) GetAll(key string) []string {
	return v[key]
}

// Has reports whether key was submitted.
func (v Values) Has(key string) bool {
	_, ok := v[key]
	return ok
}

// Keys returns the submitted keys in sorted order.
func (v Values) Keys() []string {
	keys := make([]string, 0, len(v))
	for key := range v {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for key, list := range v {
		out[key] = append([]string(nil), list...)
	}
	return out
}

package questions

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// ToBoolean maps true/on/yes/1 and false/off/no/0 (any case) to booleans.
// Other values are returned unchanged.
func ToBoolean(value any) any {
	s, ok := value.(string)
	if !ok {
		return value
	}
	switch strings.ToLower(s) {
	case "true", "on", "yes", "1":
		return true
	case "false", "off", "no", "0":
		return false
	default:
		return value
	}
}

// ToNumber converts strings without a decimal point to int and strings with
// one to float64. Other values are returned unchanged.
func ToNumber(value any) any {
	s, ok := value.(string)
	if !ok {
		return value
	}
	if !strings.Contains(s, ".") {
		if i, err := strconv.Atoi(s); err == nil {
			return i
		}
		return value
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f
	}
	return value
}

// stripUnit removes a configured unit prefix or suffix before conversion.
func stripUnit(value, unit, position string) string {
	if unit == "" {
		return value
	}
	if position == "after" {
		return strings.TrimSuffix(value, unit)
	}
	return strings.TrimPrefix(value, unit)
}

// toList reads slices of any element type as []any.
func toList(value any) ([]any, bool) {
	switch typed := value.(type) {
	case nil:
		return nil, false
	case []any:
		return typed, true
	case []string:
		out := make([]any, len(typed))
		for i, v := range typed {
			out[i] = v
		}
		return out, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// listify treats scalars as single element lists and nil as empty.
func listify(value any) []any {
	if value == nil {
		return nil
	}
	if list, ok := toList(value); ok {
		return list
	}
	return []any{value}
}

// LooseEqual compares answers regardless of how they were decoded. Numbers
// compare by value whatever their Go type, lists compare element by element
// and string-keyed maps compare key by key. Data produced by GetData and the
// same answers decoded from JSON are equal.
func LooseEqual(a, b any) bool {
	if fa, ok := asFloat(a); ok {
		if fb, ok := asFloat(b); ok {
			return fa == fb
		}
		return false
	}
	if _, ok := asFloat(b); ok {
		return false
	}
	if la, ok := toList(a); ok {
		lb, ok := toList(b)
		if !ok || len(la) != len(lb) {
			return false
		}
		for i := range la {
			if !LooseEqual(la[i], lb[i]) {
				return false
			}
		}
		return true
	}
	if _, ok := toList(b); ok {
		return false
	}
	if ma, ok := anyMap(a); ok {
		mb, ok := anyMap(b)
		if !ok || len(ma) != len(mb) {
			return false
		}
		for key, va := range ma {
			vb, ok := mb[key]
			if !ok || !LooseEqual(va, vb) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

func anyMap(value any) (map[string]any, bool) {
	switch typed := value.(type) {
	case map[string]any:
		return typed, true
	case map[string]string:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			out[k] = v
		}
		return out, true
	default:
		return nil, false
	}
}

func asFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func contains(values []any, value any) bool {
	for _, candidate := range values {
		if LooseEqual(candidate, value) {
			return true
		}
	}
	return false
}

// intersects reports whether any element of answer is in values.
func intersects(answer any, values []any) bool {
	for _, item := range listify(answer) {
		if contains(values, item) {
			return true
		}
	}
	return false
}

// truthy follows the usual emptiness rules for answers.
func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	}
	if f, ok := asFloat(value); ok {
		return f != 0
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	}
	return true
}

// isEmptyValue reports "", nil and empty lists.
func isEmptyValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return rv.Len() == 0
	}
	return false
}

func displayString(value any) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

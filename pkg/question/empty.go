package question

import (
	"fmt"
	"reflect"
)

// IsEmpty reports whether v carries no answer: nil, the empty string, nil
// pointers or interfaces, and empty slices, arrays or maps.
func IsEmpty(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return true
		}
		return IsEmpty(rv.Elem().Interface())
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.String:
		return rv.Len() == 0
	}
	return false
}

// stringify returns the canonical string form of a non-empty value, or ""
// when IsEmpty(v).
func stringify(v any) string {
	if IsEmpty(v) {
		return ""
	}
	switch typed := v.(type) {
	case string:
		return typed
	case fmt.Stringer:
		return typed.String()
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		return stringify(rv.Elem().Interface())
	}
	return fmt.Sprint(v)
}

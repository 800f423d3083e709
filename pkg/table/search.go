package table

import (
	"reflect"
	"strings"
)

// SearchKey extracts the searchable text of an item. The boolean is false
// when the item has no string value for the key; such items never match a
// non-empty query.
type SearchKey[T any] func(item T) (string, bool)

// StringField adapts a string accessor into a SearchKey.
func StringField[T any](get func(T) string) SearchKey[T] {
	return func(item T) (string, bool) { return get(item), true }
}

// JSONField returns a SearchKey reading the struct field whose json tag (or
// Go name) is name. Non-string fields and unknown names never match. T may be
// a struct or a pointer to one.
func JSONField[T any](name string) SearchKey[T] {
	return func(item T) (string, bool) {
		v := reflect.ValueOf(item)
		for v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return "", false
			}
			v = v.Elem()
		}
		if v.Kind() != reflect.Struct {
			return "", false
		}
		f, ok := fieldByJSONName(v, name)
		if !ok || f.Kind() != reflect.String {
			return "", false
		}
		return f.String(), true
	}
}

func fieldByJSONName(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if tag == name || (tag == "" && sf.Name == name) {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// matches reports whether any key yields text containing query, compared
// case-insensitively.
func matches[T any](item T, keys []SearchKey[T], query string) bool {
	for _, key := range keys {
		s, ok := key(item)
		if ok && strings.Contains(strings.ToLower(s), query) {
			return true
		}
	}
	return false
}

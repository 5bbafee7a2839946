// Package internal holds the traversal helpers for Yahoo's JSON wire format.
//
// The JSON flavor of the fantasy API is ragged: collections are encoded either as
// true lists or as objects with a "count" key plus stringified indices ("0", "1", ...),
// and scalar fields can live in any of several list-typed siblings depending on the
// season the response was recorded for. Everything here is tolerant of missing data;
// absence is reported through ok booleans, never panics.
package internal

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Sequence returns the ordered elements of a collection, whichever encoding the
// API used for it. A missing or zero "count" is an empty collection, not an error.
func Sequence(v any) []any {
	switch c := v.(type) {
	case []any:
		return c
	case map[string]any:
		n, ok := AsInt(c["count"])
		if !ok || n <= 0 {
			return nil
		}
		out := make([]any, 0, n)
		for i := 0; i < n; i++ {
			if e, ok := c[strconv.Itoa(i)]; ok {
				out = append(out, e)
			}
		}
		return out
	}
	return nil
}

// Get returns the value for key when v is an object.
func Get(v any, key string) (any, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	val, ok := m[key]
	return val, ok
}

// FindInSiblings scans the list-typed entries of items for object leaves exposing
// key, returning the last value found. Yahoo scatters team metadata across sibling
// sub-lists whose positions move between seasons, so position is never trusted.
func FindInSiblings(items []any, key string) (any, bool) {
	var found any
	ok := false
	for _, item := range items {
		sub, isList := item.([]any)
		if !isList {
			continue
		}
		for _, s := range sub {
			if m, isMap := s.(map[string]any); isMap {
				if v, has := m[key]; has {
					found = v
					ok = true
				}
			}
		}
	}
	return found, ok
}

// NamedCollection locates a sub-collection called name inside container, trying the
// positionally-indexed key "0" first, then the name directly, then a scan of all
// object-typed values. First match wins; the scan visits keys in sorted order so the
// result is deterministic.
func NamedCollection(container any, name string) (any, bool) {
	m, ok := container.(map[string]any)
	if !ok {
		return nil, false
	}
	if zero, ok := m["0"].(map[string]any); ok {
		if c, ok := zero[name]; ok {
			return c, true
		}
	}
	if c, ok := m[name]; ok {
		return c, true
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if vm, ok := m[k].(map[string]any); ok {
			if c, ok := vm[name]; ok {
				return c, true
			}
		}
	}
	return nil, false
}

// AsString coerces a scalar to a string. Numbers are formatted without a trailing
// ".0" because Yahoo mixes string and numeric encodings for ids.
func AsString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case float64:
		if s == math.Trunc(s) {
			return strconv.FormatInt(int64(s), 10), true
		}
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(s), true
	}
	return "", false
}

// AsInt coerces a scalar to an int. Older seasons encode counts and ranks as strings.
func AsInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

// AsFloat coerces a scalar to a float64.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

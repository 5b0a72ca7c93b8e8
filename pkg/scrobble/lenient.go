package scrobble

import "github.com/spf13/cast"

// Lenient accessors for loosely-typed provider JSON.
//
// Providers omit fields, nest them inconsistently, and encode numbers as
// strings. Every adapter traverses responses through these helpers so that a
// missing or malformed field degrades to a zero value instead of aborting
// the whole parse. Only required top-level structures are checked by the
// adapters themselves.

// jsonGet descends through nested objects by key and returns the value, or
// nil if any step is missing or not an object.
func jsonGet(v any, keys ...string) any {
	for _, k := range keys {
		obj, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		v = obj[k]
	}
	return v
}

// jsonString returns the string at the path, or "" if absent or not a string.
func jsonString(v any, keys ...string) string {
	s, _ := jsonGet(v, keys...).(string)
	return s
}

// jsonUint returns the number at the path, tolerating string encoding
// ("42"), float64 (plain JSON numbers) and absence. Malformed values
// yield 0, never an error.
func jsonUint(v any, keys ...string) uint64 {
	x := jsonGet(v, keys...)
	if x == nil {
		return 0
	}
	n, err := cast.ToUint64E(x)
	if err != nil {
		return 0
	}
	return n
}

// jsonArray returns the array at the path, or nil if absent or not an array.
func jsonArray(v any, keys ...string) []any {
	a, _ := jsonGet(v, keys...).([]any)
	return a
}

// jsonObject returns the object at the path, or nil if absent or not an
// object. Adapters use the nil return to detect missing required structures.
func jsonObject(v any, keys ...string) map[string]any {
	o, _ := jsonGet(v, keys...).(map[string]any)
	return o
}

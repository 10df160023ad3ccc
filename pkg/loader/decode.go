package loader

import (
	"fmt"
	"reflect"

	"github.com/oakwood-commons/vardump/internal/value"
)

const maxDecodeDepth = 20

// TryDecode parses a string holding serialized data (JSON, YAML, TOML,
// NDJSON or JWT). It succeeds only when the result is a mapping or sequence,
// so plain words and numbers are left alone.
func TryDecode(s string, opts ...Option) (any, bool) {
	if s == "" {
		return nil, false
	}
	parsed, err := LoadRoot(s, opts...)
	if err != nil || !isStructured(parsed) {
		return nil, false
	}
	return parsed, true
}

// RecursiveDecode replaces every string leaf of node that holds serialized
// data with its decoded form, recursing into what it decodes.
func RecursiveDecode(node any, opts ...Option) any {
	return recursiveDecode(node, 0, opts)
}

func recursiveDecode(node any, depth int, opts []Option) any {
	if depth > maxDecodeDepth {
		return node
	}
	switch v := node.(type) {
	case *value.OrderedMap:
		out := value.NewOrderedMap(v.Len())
		for k, item := range v.All() {
			out.Set(k, recursiveDecode(item, depth+1, opts))
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = recursiveDecode(item, depth+1, opts)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = recursiveDecode(item, depth+1, opts)
		}
		return out
	case string:
		if decoded, ok := TryDecode(v, opts...); ok {
			return recursiveDecode(decoded, depth+1, opts)
		}
		return v
	default:
		return recursiveDecodeReflect(node, depth, opts)
	}
}

// recursiveDecodeReflect handles typed containers such as map[string]string
// or []string, converting them to map[string]any and []any.
func recursiveDecodeReflect(node any, depth int, opts []Option) any {
	if node == nil {
		return nil
	}
	rv := reflect.ValueOf(node)
	//exhaustive:ignore // only containers are rewritten
	switch rv.Kind() {
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k := iter.Key()
			key := fmt.Sprint(k.Interface())
			if k.Kind() == reflect.String {
				key = k.String()
			}
			out[key] = recursiveDecode(iter.Value().Interface(), depth+1, opts)
		}
		return out
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = recursiveDecode(rv.Index(i).Interface(), depth+1, opts)
		}
		return out
	default:
		return node
	}
}

func isStructured(v any) bool {
	switch v.(type) {
	case nil:
		return false
	case *value.OrderedMap, map[string]any, []any:
		return true
	}
	kind := reflect.ValueOf(v).Kind()
	return kind == reflect.Map || kind == reflect.Slice
}

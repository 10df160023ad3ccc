// Package limiter trims the top level of a loaded document to a window of
// entries before it is dumped.
package limiter

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/oakwood-commons/vardump/internal/value"
)

// Config holds the window parameters. Zero values disable each one.
type Config struct {
	Limit  int // keep at most this many entries
	Offset int // skip this many entries first
	Tail   int // keep only the last N entries; excludes Limit
}

// Validate rejects negative values and combining Limit with Tail. Offset is
// ignored when Tail is set.
func (c Config) Validate() error {
	if c.Limit < 0 {
		return fmt.Errorf("--limit must be non-negative, got %d", c.Limit)
	}
	if c.Offset < 0 {
		return fmt.Errorf("--offset must be non-negative, got %d", c.Offset)
	}
	if c.Tail < 0 {
		return fmt.Errorf("--tail must be non-negative, got %d", c.Tail)
	}
	if c.Limit > 0 && c.Tail > 0 {
		return fmt.Errorf("--limit and --tail are mutually exclusive")
	}
	return nil
}

// IsActive reports whether any window is configured.
func (c Config) IsActive() bool {
	return c.Limit > 0 || c.Offset > 0 || c.Tail > 0
}

// Apply returns the windowed top level of data. Ordered maps keep their
// insertion order, Go maps with string keys are windowed in sorted key
// order, and other slices are resliced. Anything else is returned as is.
func (c Config) Apply(data any) any {
	if !c.IsActive() {
		return data
	}
	switch v := data.(type) {
	case []any:
		start, end := c.window(len(v))
		return v[start:end]
	case *value.OrderedMap:
		keys := v.Keys()
		start, end := c.window(len(keys))
		out := value.NewOrderedMap(end - start)
		for _, k := range keys[start:end] {
			item, _ := v.Get(k)
			out.Set(k, item)
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		start, end := c.window(len(keys))
		out := make(map[string]any, end-start)
		for _, k := range keys[start:end] {
			out[k] = v[k]
		}
		return out
	}
	rv := reflect.ValueOf(data)
	if rv.Kind() != reflect.Slice {
		return data
	}
	start, end := c.window(rv.Len())
	return rv.Slice(start, end).Interface()
}

// window returns the bounds of the kept entries out of length.
func (c Config) window(length int) (int, int) {
	if c.Tail > 0 {
		return max(length-c.Tail, 0), length
	}
	start := min(c.Offset, length)
	end := length
	if c.Limit > 0 {
		end = min(start+c.Limit, length)
	}
	return start, end
}

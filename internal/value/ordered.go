package value

import (
	"iter"
	"slices"
)

// OrderedMap is a keyed composite that preserves insertion order.
// The zero value is ready to use.
type OrderedMap struct {
	keys   []Key
	values map[Key]any
}

// NewOrderedMap returns an empty map with room for n entries.
func NewOrderedMap(n int) *OrderedMap {
	return &OrderedMap{
		keys:   make([]Key, 0, n),
		values: make(map[Key]any, n),
	}
}

// Set stores v under k. Updating an existing key keeps its position.
func (m *OrderedMap) Set(k Key, v any) {
	if m.values == nil {
		m.values = make(map[Key]any)
	}
	if _, ok := m.values[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.values[k] = v
}

// Get returns the value stored under k.
func (m *OrderedMap) Get(k Key) (any, bool) {
	v, ok := m.values[k]
	return v, ok
}

// Delete removes k and reports whether it was present.
func (m *OrderedMap) Delete(k Key) bool {
	if _, ok := m.values[k]; !ok {
		return false
	}
	delete(m.values, k)
	m.keys = slices.DeleteFunc(m.keys, func(existing Key) bool { return existing == k })
	return true
}

// Len returns the number of entries.
func (m *OrderedMap) Len() int {
	return len(m.keys)
}

// Keys returns a copy of the keys in insertion order.
func (m *OrderedMap) Keys() []Key {
	return slices.Clone(m.keys)
}

// All iterates entries in insertion order.
func (m *OrderedMap) All() iter.Seq2[Key, any] {
	return func(yield func(Key, any) bool) {
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

func (m *OrderedMap) classify() Value {
	return Value{Kind: Sequence, Len: m.Len(), Items: m.All()}
}

package dump

import (
	"github.com/oakwood-commons/vardump/internal/value"
)

// Types for customizing how values render. Implement Inspector to control the
// attributes shown for a type and Handle to render a type as a resource.
type (
	Attribute  = value.Attribute
	Visibility = value.Visibility
	Inspector  = value.Inspector
	Handle     = value.Handle
	Key        = value.Key
	OrderedMap = value.OrderedMap
)

const (
	Public    = value.Public
	Protected = value.Protected
	Private   = value.Private
)

// NewOrderedMap returns an insertion-ordered map. Its entries render in the
// order they were first set.
func NewOrderedMap(n int) *OrderedMap {
	return value.NewOrderedMap(n)
}

// IntKey returns an integer map key.
func IntKey(n int64) Key {
	return value.IntKey(n)
}

// StringKey returns a string map key.
func StringKey(s string) Key {
	return value.StringKey(s)
}

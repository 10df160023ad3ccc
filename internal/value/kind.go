// Package value maps arbitrary Go values into the closed set of variants the
// renderer understands. Classification is pure and lazy: composites and
// objects hand out their children as raw values which are classified only
// when the renderer descends into them.
package value

// Kind is one of the closed set of value variants.
type Kind int

const (
	Null Kind = iota
	Bool
	Int
	Float
	String
	Resource
	Sequence
	Object
	Other
)

var kindNames = [...]string{
	Null:     "null",
	Bool:     "boolean",
	Int:      "int",
	Float:    "float",
	String:   "string",
	Resource: "resource",
	Sequence: "array",
	Object:   "object",
	Other:    "other",
}

// String returns the display type name of the kind. Scalars use the names
// shown in front of their values (boolean, int, float, string).
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// IsScalar reports whether values of this kind render on a single typed line.
func (k Kind) IsScalar() bool {
	switch k {
	case Bool, Int, Float, String:
		return true
	default:
		return false
	}
}

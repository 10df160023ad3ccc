package value

import (
	"fmt"
	"reflect"
)

// Visibility is the access modifier of an object attribute.
type Visibility int

const (
	Public Visibility = iota
	Protected
	Private
)

func (v Visibility) String() string {
	switch v {
	case Protected:
		return "protected"
	case Private:
		return "private"
	default:
		return "public"
	}
}

// ParseVisibility maps a modifier name to a Visibility.
func ParseVisibility(s string) (Visibility, bool) {
	switch s {
	case "public":
		return Public, true
	case "protected":
		return Protected, true
	case "private":
		return Private, true
	default:
		return Public, false
	}
}

// Attribute is a named member of an object-like value.
type Attribute struct {
	Name       string
	Visibility Visibility
	Static     bool
	Value      any
}

// Label returns the visibility label shown in front of the attribute name.
func (a Attribute) Label() string {
	if a.Static {
		return a.Visibility.String() + " static"
	}
	return a.Visibility.String()
}

// Identity distinguishes object instances. The zero Identity means the
// object has no stable identity (a struct copied by value).
type Identity struct {
	Addr uintptr
	Type reflect.Type
}

// Valid reports whether the identity refers to a concrete instance.
func (id Identity) Valid() bool {
	return id.Addr != 0
}

// Handle is implemented by values that stand for an opaque external resource.
type Handle interface {
	HandleID() int64
	HandleType() string
}

// Inspector is implemented by types that enumerate their own attributes.
// A non-nil error with a partial list is rendered best-effort.
type Inspector interface {
	DumpAttributes() ([]Attribute, error)
}

// ObjectInfo describes an object-like value.
type ObjectInfo struct {
	TypeName string
	Identity Identity
	attrs    func() ([]Attribute, error)
}

// Attributes enumerates the attributes in a stable order. Panics raised by
// the enumeration are returned as errors.
func (o *ObjectInfo) Attributes() (attrs []Attribute, err error) {
	if o.attrs == nil {
		return nil, nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("enumerate attributes of %s: %v", o.TypeName, r)
		}
	}()
	return o.attrs()
}

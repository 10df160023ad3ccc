package value

import (
	"reflect"
	"strings"
	"sync"
	"unsafe"

	"github.com/viant/xunsafe"
)

// TagName is the struct tag consulted when enumerating struct fields.
//
//	Secret string `dump:"-"`          // hidden
//	cache  map[string]int `dump:",protected"`
//	Count  int `dump:"total,static"`  // renamed, labeled static
const TagName = "dump"

type fieldPlan struct {
	name       string
	visibility Visibility
	static     bool
	field      *xunsafe.Field
}

// planCache is keyed by struct type; plans are immutable once built.
type planCache struct {
	mux   sync.RWMutex
	plans map[reflect.Type][]fieldPlan
}

func (c *planCache) get(t reflect.Type) ([]fieldPlan, bool) {
	c.mux.RLock()
	defer c.mux.RUnlock()
	p, ok := c.plans[t]
	return p, ok
}

func (c *planCache) put(t reflect.Type, p []fieldPlan) {
	c.mux.Lock()
	defer c.mux.Unlock()
	c.plans[t] = p
}

var plans = &planCache{plans: make(map[reflect.Type][]fieldPlan)}

func structValue(rv reflect.Value, id Identity) Value {
	return Value{
		Kind: Object,
		Object: &ObjectInfo{
			TypeName: rv.Type().String(),
			Identity: id,
			attrs: func() ([]Attribute, error) {
				return structAttributes(rv), nil
			},
		},
	}
}

// structAttributes lists fields in declaration order. Exported fields are
// public and unexported ones private unless the dump tag says otherwise.
func structAttributes(rv reflect.Value) []Attribute {
	fields := planFor(rv.Type())
	if len(fields) == 0 {
		return nil
	}
	ptr := structPointer(rv)
	attrs := make([]Attribute, 0, len(fields))
	for _, f := range fields {
		attrs = append(attrs, Attribute{
			Name:       f.name,
			Visibility: f.visibility,
			Static:     f.static,
			Value:      f.field.Value(ptr),
		})
	}
	return attrs
}

func planFor(t reflect.Type) []fieldPlan {
	if p, ok := plans.get(t); ok {
		return p
	}
	p := make([]fieldPlan, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Name == "_" {
			continue
		}
		fp, ok := parseField(sf)
		if !ok {
			continue
		}
		fp.field = xunsafe.NewField(sf)
		p = append(p, fp)
	}
	plans.put(t, p)
	return p
}

func parseField(sf reflect.StructField) (fieldPlan, bool) {
	fp := fieldPlan{name: sf.Name, visibility: Public}
	if !sf.IsExported() {
		fp.visibility = Private
	}
	tag, ok := sf.Tag.Lookup(TagName)
	if !ok {
		return fp, true
	}
	if tag == "-" {
		return fp, false
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name != "" {
		fp.name = name
	}
	for _, opt := range strings.Split(opts, ",") {
		opt = strings.TrimSpace(opt)
		if opt == "static" {
			fp.static = true
			continue
		}
		if v, ok := ParseVisibility(opt); ok {
			fp.visibility = v
		}
	}
	return fp, true
}

// structPointer returns the address of the struct held by rv, copying it
// when rv is not addressable.
func structPointer(rv reflect.Value) unsafe.Pointer {
	if rv.CanAddr() {
		return unsafe.Pointer(rv.UnsafeAddr())
	}
	cp := reflect.New(rv.Type())
	cp.Elem().Set(rv)
	return cp.UnsafePointer()
}

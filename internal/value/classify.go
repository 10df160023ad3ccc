package value

import (
	"fmt"
	"iter"
	"math"
	"os"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
	"unsafe"
)

// maxPointerHops bounds how many pointers are followed without reaching an
// object, so pointer cycles like p = &p terminate.
const maxPointerHops = 64

// Value is the classified form of a Go value.
type Value struct {
	Kind Kind
	// Text is the display text of scalars and Other values. For strings it is
	// the content with a single trailing newline removed.
	Text string
	// Len is the rune count of strings and the item count of sequences.
	Len int
	// HandleID and HandleType describe Resource values.
	HandleID   int64
	HandleType string
	// Items yields sequence entries in display order.
	Items iter.Seq2[Key, any]
	// Object describes Object values.
	Object *ObjectInfo
}

// Classify maps v into its variant. It never fails: anything unsupported is
// classified as Other.
func Classify(v any) Value {
	switch t := v.(type) {
	case nil:
		return Value{Kind: Null}
	case Value:
		return t
	case bool:
		return Value{Kind: Bool, Text: strconv.FormatBool(t)}
	case string:
		return stringValue(t)
	case int:
		return Value{Kind: Int, Text: strconv.Itoa(t)}
	case int64:
		return Value{Kind: Int, Text: strconv.FormatInt(t, 10)}
	case float64:
		return Value{Kind: Float, Text: formatFloat(t, 64)}
	}
	if cv, ok := special(v); ok {
		return cv
	}
	return classifyReflect(reflect.ValueOf(v), 0)
}

// special handles the types and interfaces that take precedence over
// reflection.
func special(v any) (Value, bool) {
	switch t := v.(type) {
	case *os.File:
		if t == nil {
			return Value{Kind: Null}, true
		}
		return fileValue(t), true
	case *OrderedMap:
		if t == nil {
			return Value{Kind: Null}, true
		}
		return t.classify(), true
	case OrderedMap:
		return t.classify(), true
	case Handle:
		if isNilPointer(v) {
			return Value{Kind: Null}, true
		}
		return Value{Kind: Resource, HandleID: t.HandleID(), HandleType: t.HandleType()}, true
	case Inspector:
		if isNilPointer(v) {
			return Value{Kind: Null}, true
		}
		return inspectorValue(v, t), true
	}
	return Value{}, false
}

func classifyAt(rv reflect.Value, hops int) Value {
	if rv.IsValid() && rv.CanInterface() {
		if cv, ok := special(rv.Interface()); ok {
			return cv
		}
	}
	return classifyReflect(rv, hops)
}

func classifyReflect(rv reflect.Value, hops int) Value {
	switch rv.Kind() {
	case reflect.Invalid:
		return Value{Kind: Null}
	case reflect.Bool:
		return Value{Kind: Bool, Text: strconv.FormatBool(rv.Bool())}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Value{Kind: Int, Text: strconv.FormatInt(rv.Int(), 10)}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Value{Kind: Int, Text: strconv.FormatUint(rv.Uint(), 10)}
	case reflect.Float32:
		return Value{Kind: Float, Text: formatFloat(rv.Float(), 32)}
	case reflect.Float64:
		return Value{Kind: Float, Text: formatFloat(rv.Float(), 64)}
	case reflect.String:
		return stringValue(rv.String())
	case reflect.Slice:
		if rv.IsNil() {
			return Value{Kind: Null}
		}
		return listValue(rv)
	case reflect.Array:
		return listValue(rv)
	case reflect.Map:
		if rv.IsNil() {
			return Value{Kind: Null}
		}
		return mapValue(rv)
	case reflect.Struct:
		return structValue(rv, Identity{})
	case reflect.Pointer:
		if rv.IsNil() {
			return Value{Kind: Null}
		}
		elem := rv.Elem()
		if elem.Kind() == reflect.Struct {
			return structValue(elem, Identity{Addr: rv.Pointer(), Type: elem.Type()})
		}
		if hops >= maxPointerHops {
			return Value{Kind: Other, Text: fmt.Sprintf("%s(%#x)", rv.Type(), rv.Pointer())}
		}
		return classifyAt(elem, hops+1)
	case reflect.Interface:
		if rv.IsNil() {
			return Value{Kind: Null}
		}
		return classifyAt(rv.Elem(), hops)
	case reflect.Func:
		if rv.IsNil() {
			return Value{Kind: Null}
		}
		return Value{Kind: Other, Text: "callable(" + rv.Type().String() + ")"}
	case reflect.Chan:
		if rv.IsNil() {
			return Value{Kind: Null}
		}
		return Value{Kind: Other, Text: fmt.Sprintf("%s (len=%d, cap=%d)", rv.Type(), rv.Len(), rv.Cap())}
	case reflect.Complex64:
		return Value{Kind: Other, Text: strconv.FormatComplex(rv.Complex(), 'g', -1, 64)}
	case reflect.Complex128:
		return Value{Kind: Other, Text: strconv.FormatComplex(rv.Complex(), 'g', -1, 128)}
	case reflect.UnsafePointer:
		return Value{Kind: Other, Text: fmt.Sprintf("unsafe.Pointer(%#x)", rv.Pointer())}
	default:
		return Value{Kind: Other, Text: rv.Type().String()}
	}
}

// stringValue strips a single trailing newline before measuring.
func stringValue(s string) Value {
	s = strings.TrimSuffix(s, "\n")
	return Value{Kind: String, Text: s, Len: utf8.RuneCountInString(s)}
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NAN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	}
	abs := math.Abs(f)
	if abs == 0 || (abs >= 1e-4 && abs < 1e15) {
		return strconv.FormatFloat(f, 'f', -1, bits)
	}
	return strconv.FormatFloat(f, 'E', -1, bits)
}

func fileValue(f *os.File) Value {
	id := int64(-1)
	if rc, err := f.SyscallConn(); err == nil {
		_ = rc.Control(func(fd uintptr) {
			id = int64(fd)
		})
	}
	return Value{Kind: Resource, HandleID: id, HandleType: "stream"}
}

func listValue(rv reflect.Value) Value {
	n := rv.Len()
	return Value{
		Kind: Sequence,
		Len:  n,
		Items: func(yield func(Key, any) bool) {
			for i := 0; i < n; i++ {
				if !yield(IntKey(int64(i)), interfaceOf(rv.Index(i))) {
					return
				}
			}
		},
	}
}

type mapEntry struct {
	key Key
	raw reflect.Value
}

// mapValue orders entries deterministically since Go map iteration is random.
func mapValue(rv reflect.Value) Value {
	return Value{
		Kind: Sequence,
		Len:  rv.Len(),
		Items: func(yield func(Key, any) bool) {
			keys := rv.MapKeys()
			entries := make([]mapEntry, len(keys))
			for i, k := range keys {
				entries[i] = mapEntry{key: keyOf(k), raw: k}
			}
			sort.SliceStable(entries, func(i, j int) bool {
				return entries[i].key.less(entries[j].key)
			})
			for _, e := range entries {
				if !yield(e.key, interfaceOf(rv.MapIndex(e.raw))) {
					return
				}
			}
		},
	}
}

func keyOf(k reflect.Value) Key {
	switch k.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return IntKey(k.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if u := k.Uint(); u <= math.MaxInt64 {
			return IntKey(int64(u))
		}
		return StringKey(strconv.FormatUint(k.Uint(), 10))
	case reflect.String:
		return StringKey(k.String())
	case reflect.Interface:
		if k.IsNil() {
			return StringKey("")
		}
		return keyOf(k.Elem())
	}
	if k.CanInterface() {
		return StringKey(fmt.Sprint(k.Interface()))
	}
	return StringKey(k.String())
}

// interfaceOf returns the dynamic value held by rv. Values reached through
// unexported fields are re-materialized from their address.
func interfaceOf(rv reflect.Value) any {
	if !rv.IsValid() {
		return nil
	}
	if rv.CanInterface() {
		return rv.Interface()
	}
	if rv.CanAddr() {
		return reflect.NewAt(rv.Type(), unsafe.Pointer(rv.UnsafeAddr())).Elem().Interface()
	}
	return nil
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

func inspectorValue(v any, in Inspector) Value {
	rv := reflect.ValueOf(v)
	t := rv.Type()
	var id Identity
	if rv.Kind() == reflect.Pointer {
		t = t.Elem()
		id = Identity{Addr: rv.Pointer(), Type: t}
	}
	return Value{
		Kind:   Object,
		Object: &ObjectInfo{TypeName: t.String(), Identity: id, attrs: in.DumpAttributes},
	}
}

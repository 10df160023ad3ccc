package value

import (
	"strconv"
)

// Key identifies an item of a composite. Keys are either integers or strings.
type Key struct {
	str      string
	num      int64
	isString bool
}

// IntKey returns an integer key.
func IntKey(n int64) Key {
	return Key{num: n}
}

// StringKey returns a string key.
func StringKey(s string) Key {
	return Key{str: s, isString: true}
}

// IsString reports whether the key is a string key.
func (k Key) IsString() bool {
	return k.isString
}

// Int returns the integer value of an integer key, or 0 for string keys.
func (k Key) Int() int64 {
	return k.num
}

// String returns the raw key text without quoting.
func (k Key) String() string {
	if k.isString {
		return k.str
	}
	return strconv.FormatInt(k.num, 10)
}

// less orders integer keys before string keys, integers numerically and
// strings lexically.
func (k Key) less(o Key) bool {
	if k.isString != o.isString {
		return !k.isString
	}
	if k.isString {
		return k.str < o.str
	}
	return k.num < o.num
}

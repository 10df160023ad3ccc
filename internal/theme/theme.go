// Package theme holds the formatting strategies used by the renderer. A Theme
// is a record of pure functions, one per structural event; it performs no
// traversal and keeps no state, so a single Theme is safe to share.
package theme

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/oakwood-commons/vardump/internal/value"
)

const (
	// EOL terminates every rendered line.
	EOL = "\n"
	// DefaultIndent is the indent unit added per nesting level.
	DefaultIndent = "    "
)

// Built-in theme names.
const (
	NamePlain    = "plain"
	NameTerminal = "terminal"
	NameMarkup   = "markup"
)

// Theme maps rendering events to text fragments. Fragments never include the
// line terminator; the renderer appends EOL where a line ends.
type Theme struct {
	Name   string
	EOL    string
	Indent string

	Preamble     func() string
	Location     func(location string) string
	Open         func() string
	Empty        func() string
	Scalar       func(kind value.Kind, text string, length int) string
	Null         func() string
	Resource     func(id int64, label string) string
	ArrayHeader  func(lead string, size int) string
	EmptyArray   func(indent string) string
	ArrayKey     func(indent string, key value.Key) string
	ObjectHeader func(lead, typeName string, token int) string
	ObjectKey    func(indent, visibility, name string) string
	Recursion    func(lead, typeName string, token int) string
	Truncation   func(indent string) string
	Other        func(text string) string
	Close        func() string
}

// WithIndent returns a copy of th using n spaces per nesting level.
func (th Theme) WithIndent(n int) Theme {
	if n > 0 {
		th.Indent = strings.Repeat(" ", n)
	}
	return th
}

// decorator is everything that differs between themes. The layout built on
// top of it is shared, so all themes produce the same structure.
type decorator struct {
	paint    func(r Role, s string) string
	escape   func(s string) string
	preamble string
	open     string
	close    string
}

func compose(name string, d decorator) Theme {
	p, esc := d.paint, d.escape
	arrow := " " + p(RoleArrow, esc("=>")) + " "
	object := func(typeName string, token int) string {
		return p(RoleKeyword, "object") + "(" + p(RoleMeta, esc(typeName)) + ")[" + p(RoleMeta, strconv.Itoa(token)) + "]"
	}
	return Theme{
		Name:   name,
		EOL:    EOL,
		Indent: DefaultIndent,
		Preamble: func() string {
			return d.preamble
		},
		Location: func(location string) string {
			return p(RolePath, esc(location)+":")
		},
		Open: func() string {
			return d.open
		},
		Empty: func() string {
			return p(RoleEmpty, "empty")
		},
		Scalar: func(kind value.Kind, text string, length int) string {
			var v string
			switch kind {
			case value.String:
				v = p(RoleString, "'"+esc(text)+"'") + " " + p(RoleMeta, "(length="+strconv.Itoa(length)+")")
			case value.Int:
				v = p(RoleInt, esc(text))
			case value.Float:
				v = p(RoleFloat, esc(text))
			case value.Bool:
				v = p(RoleBool, esc(text))
			default:
				v = esc(text)
			}
			return p(RoleScalarType, kind.String()) + " " + v
		},
		Null: func() string {
			return p(RoleNull, "null")
		},
		Resource: func(id int64, label string) string {
			return p(RoleResource, "resource") + "(" + p(RoleMeta, strconv.FormatInt(id, 10)) + ", " + p(RoleMeta, esc(label)) + ")"
		},
		ArrayHeader: func(lead string, size int) string {
			return lead + p(RoleKeyword, "array") + " " + p(RoleMeta, "(size="+strconv.Itoa(size)+")")
		},
		EmptyArray: func(indent string) string {
			return indent + "  " + p(RoleEmpty, "empty")
		},
		ArrayKey: func(indent string, key value.Key) string {
			k := key.String()
			if key.IsString() {
				k = "'" + k + "'"
			}
			return indent + "  " + esc(k) + arrow
		},
		ObjectHeader: func(lead, typeName string, token int) string {
			return lead + object(typeName, token)
		},
		ObjectKey: func(indent, visibility, name string) string {
			return indent + "  " + p(RoleVisibility, esc(visibility)) + " '" + esc(name) + "'" + arrow
		},
		Recursion: func(lead, typeName string, token int) string {
			return lead + p(RoleRecursion, "*RECURSION*") + " " + object(typeName, token) + "..."
		},
		Truncation: func(indent string) string {
			return indent + "  " + p(RoleMore, "...")
		},
		Other: func(text string) string {
			return esc(text)
		},
		Close: func() string {
			return d.close
		},
	}
}

// Names lists the built-in theme names.
func Names() []string {
	names := []string{NamePlain, NameTerminal, NameMarkup}
	sort.Strings(names)
	return names
}

// Lookup returns the built-in theme with the given name. The palette is only
// used by the terminal theme.
func Lookup(name string, palette Palette) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NamePlain, "mono", "monochrome":
		return Plain(), nil
	case NameTerminal, "cli", "ansi":
		return Terminal(palette), nil
	case NameMarkup, "web", "html":
		return Markup(), nil
	default:
		return Theme{}, fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(Names(), ", "))
	}
}

package theme

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
)

// Palette assigns a foreground color to each role. Nil colors leave the role
// uncolored; weight and slant are fixed per role.
type Palette struct {
	Path       color.Color
	Empty      color.Color
	ScalarType color.Color
	String     color.Color
	Int        color.Color
	Float      color.Color
	Bool       color.Color
	Null       color.Color
	Resource   color.Color
	Keyword    color.Color
	Meta       color.Color
	Arrow      color.Color
	Visibility color.Color
	Recursion  color.Color
	More       color.Color
}

// DefaultPalette returns the stock terminal colors.
func DefaultPalette() Palette {
	return Palette{
		String:    lipgloss.Color("9"),  // bright red
		Int:       lipgloss.Color("2"),  // green
		Float:     lipgloss.Color("3"),  // yellow
		Bool:      lipgloss.Color("13"), // bright magenta
		Null:      lipgloss.Color("12"), // bright blue
		Recursion: lipgloss.Color("2"),
	}
}

func (p *Palette) slot(r Role) *color.Color {
	switch r {
	case RolePath:
		return &p.Path
	case RoleEmpty:
		return &p.Empty
	case RoleScalarType:
		return &p.ScalarType
	case RoleString:
		return &p.String
	case RoleInt:
		return &p.Int
	case RoleFloat:
		return &p.Float
	case RoleBool:
		return &p.Bool
	case RoleNull:
		return &p.Null
	case RoleResource:
		return &p.Resource
	case RoleKeyword:
		return &p.Keyword
	case RoleMeta:
		return &p.Meta
	case RoleArrow:
		return &p.Arrow
	case RoleVisibility:
		return &p.Visibility
	case RoleRecursion:
		return &p.Recursion
	case RoleMore:
		return &p.More
	default:
		return nil
	}
}

// Color returns the color assigned to r.
func (p Palette) Color(r Role) color.Color {
	if c := p.slot(r); c != nil {
		return *c
	}
	return nil
}

// Set assigns c to r.
func (p *Palette) Set(r Role, c color.Color) {
	if s := p.slot(r); s != nil {
		*s = c
	}
}

// Terminal returns the ANSI theme colored with p.
func Terminal(p Palette) Theme {
	var styles [roleCount]lipgloss.Style
	for r := Role(0); r < roleCount; r++ {
		styles[r] = roleStyle(r, p.Color(r))
	}
	return compose(NameTerminal, decorator{
		paint: func(r Role, s string) string {
			return paintLines(styles[r], s)
		},
		escape: func(s string) string { return s },
	})
}

func roleStyle(r Role, c color.Color) lipgloss.Style {
	s := lipgloss.NewStyle().Inline(true).TabWidth(lipgloss.NoTabConversion)
	if c != nil {
		s = s.Foreground(c)
	}
	switch r {
	case RolePath, RoleKeyword, RoleResource:
		s = s.Bold(true)
	case RoleMeta, RoleRecursion:
		s = s.Italic(true)
	case RoleEmpty:
		s = s.Italic(true).Faint(true)
	case RoleArrow, RoleVisibility, RoleMore:
		s = s.Faint(true)
	}
	return s
}

// paintLines styles each line on its own; lipgloss would otherwise pad a
// multi-line block to a common width.
func paintLines(st lipgloss.Style, s string) string {
	if s == "" {
		return s
	}
	if !strings.Contains(s, "\n") {
		return st.Render(s)
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = st.Render(l)
		}
	}
	return strings.Join(lines, "\n")
}

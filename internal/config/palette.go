package config

import (
	"fmt"
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/vardump/internal/theme"
)

func (p *PaletteConfig) slots() []struct {
	role  theme.Role
	value *ColorValue
} {
	return []struct {
		role  theme.Role
		value *ColorValue
	}{
		{theme.RolePath, &p.Path},
		{theme.RoleEmpty, &p.Empty},
		{theme.RoleScalarType, &p.Scalar},
		{theme.RoleString, &p.String},
		{theme.RoleInt, &p.Int},
		{theme.RoleFloat, &p.Float},
		{theme.RoleBool, &p.Bool},
		{theme.RoleNull, &p.Null},
		{theme.RoleResource, &p.Resource},
		{theme.RoleKeyword, &p.Keyword},
		{theme.RoleMeta, &p.Meta},
		{theme.RoleArrow, &p.Arrow},
		{theme.RoleVisibility, &p.Visibility},
		{theme.RoleRecursion, &p.Recursion},
		{theme.RoleMore, &p.More},
	}
}

// Palette converts the configuration into a terminal palette. Unset roles
// stay uncolored.
func (p PaletteConfig) Palette() theme.Palette {
	var out theme.Palette
	for _, s := range p.slots() {
		if *s.value != "" {
			out.Set(s.role, lipgloss.Color(string(*s.value)))
		}
	}
	return out
}

// PaletteConfigFromPalette converts a palette into its YAML form. Colors are
// written as hex.
func PaletteConfigFromPalette(p theme.Palette) PaletteConfig {
	var out PaletteConfig
	for _, s := range out.slots() {
		*s.value = colorToColorValue(p.Color(s.role))
	}
	return out
}

func colorToColorValue(c color.Color) ColorValue { //nolint:gosec // RGBA values are 16-bit; scaling to 8-bit is safe
	if c == nil {
		return ""
	}
	r, g, b, _ := c.RGBA()
	return ColorValue(fmt.Sprintf("#%02x%02x%02x", r/257, g/257, b/257))
}

// MergePalette overlays the colors set in override onto base.
func MergePalette(base, override PaletteConfig) PaletteConfig {
	out := base
	dst := out.slots()
	for i, s := range override.slots() {
		if *s.value != "" {
			*dst[i].value = *s.value
		}
	}
	return out
}

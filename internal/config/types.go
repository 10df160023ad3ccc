// Package config loads vardump settings: render defaults and named terminal
// palettes. An embedded default configuration is the single source of
// defaults; a user file is merged on top of it.
package config

import (
	"strconv"

	"gopkg.in/yaml.v3"
)

// File is the on-disk configuration layout.
type File struct {
	App      AppConfig                `yaml:"app"`
	Dump     DumpConfig               `yaml:"dump"`
	Palettes map[string]PaletteConfig `yaml:"palettes"`
}

// AppConfig holds descriptive metadata shown by the CLI.
type AppConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

// DumpConfig holds render defaults. Pointer fields distinguish unset values
// from zero so a user file can override only what it names.
type DumpConfig struct {
	MaxDepth *int   `yaml:"max_depth,omitempty"`
	Theme    string `yaml:"theme,omitempty"`
	Indent   *int   `yaml:"indent,omitempty"`
	Palette  string `yaml:"palette,omitempty"`
}

// ColorValue stores a color token (ANSI number or hex) and marshals numerics
// as YAML ints.
type ColorValue string

func (c ColorValue) MarshalYAML() (interface{}, error) {
	if c == "" {
		return "", nil
	}
	s := string(c)
	if _, err := strconv.Atoi(s); err == nil {
		return &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!int",
			Value: s,
		}, nil
	}
	return s, nil
}

func (c *ColorValue) UnmarshalYAML(value *yaml.Node) error {
	if value == nil {
		*c = ""
		return nil
	}
	// Accept both ints and strings; store the literal value.
	*c = ColorValue(value.Value)
	return nil
}

// PaletteConfig is the YAML form of a terminal palette, one color per role.
type PaletteConfig struct {
	Path       ColorValue `yaml:"path,omitempty"`
	Empty      ColorValue `yaml:"empty,omitempty"`
	Scalar     ColorValue `yaml:"scalar,omitempty"`
	String     ColorValue `yaml:"string,omitempty"`
	Int        ColorValue `yaml:"int,omitempty"`
	Float      ColorValue `yaml:"float,omitempty"`
	Bool       ColorValue `yaml:"bool,omitempty"`
	Null       ColorValue `yaml:"null,omitempty"`
	Resource   ColorValue `yaml:"resource,omitempty"`
	Keyword    ColorValue `yaml:"keyword,omitempty"`
	Meta       ColorValue `yaml:"meta,omitempty"`
	Arrow      ColorValue `yaml:"arrow,omitempty"`
	Visibility ColorValue `yaml:"visibility,omitempty"`
	Recursion  ColorValue `yaml:"recursion,omitempty"`
	More       ColorValue `yaml:"more,omitempty"`
}

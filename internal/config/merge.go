package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/oakwood-commons/vardump/internal/theme"
)

// ThemeAuto selects a theme from the output destination.
const ThemeAuto = "auto"

// Load returns the embedded defaults merged with the file at path. An empty
// path returns the defaults.
func Load(path string) (File, error) {
	return load(path, EmbeddedDefault)
}

func load(path string, defaults func() (File, error)) (File, error) {
	cfg, err := defaults()
	if err != nil {
		return File{}, fmt.Errorf("load default config: %w", err)
	}
	if path == "" {
		return cfg, cfg.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	user, err := Parse(data)
	if err != nil {
		return File{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	cfg = Merge(cfg, user)
	if err := cfg.Validate(); err != nil {
		return File{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Merge overlays the settings present in override onto base. Palettes are
// merged per role; palettes unknown to base are added as is.
func Merge(base, override File) File {
	out := base.clone()
	if override.App.Name != "" {
		out.App.Name = override.App.Name
	}
	if override.App.Description != "" {
		out.App.Description = override.App.Description
	}
	if override.Dump.MaxDepth != nil {
		out.Dump.MaxDepth = override.Dump.MaxDepth
	}
	if override.Dump.Indent != nil {
		out.Dump.Indent = override.Dump.Indent
	}
	if strings.TrimSpace(override.Dump.Theme) != "" {
		out.Dump.Theme = override.Dump.Theme
	}
	if strings.TrimSpace(override.Dump.Palette) != "" {
		out.Dump.Palette = override.Dump.Palette
	}
	for name, p := range override.Palettes {
		out.Palettes[name] = MergePalette(out.Palettes[name], p)
	}
	return out
}

// Validate checks the merged configuration.
func (f File) Validate() error {
	var errs []error
	if f.Dump.MaxDepth != nil && *f.Dump.MaxDepth <= 0 {
		errs = append(errs, fmt.Errorf("dump.max_depth must be a positive integer, got %d", *f.Dump.MaxDepth))
	}
	if f.Dump.Indent != nil && *f.Dump.Indent < 0 {
		errs = append(errs, fmt.Errorf("dump.indent must not be negative, got %d", *f.Dump.Indent))
	}
	if name := f.Dump.Theme; name != "" && name != ThemeAuto {
		if _, err := theme.Lookup(name, theme.Palette{}); err != nil {
			errs = append(errs, fmt.Errorf("dump.theme: %w", err))
		}
	}
	if name := f.Dump.Palette; name != "" {
		if _, ok := f.Palettes[name]; !ok {
			errs = append(errs, fmt.Errorf("dump.palette: unknown palette %q (available: %s)", name, strings.Join(f.PaletteNames(), ", ")))
		}
	}
	return errors.Join(errs...)
}

// PaletteNames lists the configured palettes in sorted order.
func (f File) PaletteNames() []string {
	names := make([]string, 0, len(f.Palettes))
	for name := range f.Palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Palette resolves a named palette. An empty name selects dump.palette, and
// the built-in palette is used when neither names one.
func (f File) Palette(name string) (theme.Palette, error) {
	if name == "" {
		name = f.Dump.Palette
	}
	if name == "" {
		return theme.DefaultPalette(), nil
	}
	p, ok := f.Palettes[name]
	if !ok {
		return theme.Palette{}, fmt.Errorf("unknown palette %q (available: %s)", name, strings.Join(f.PaletteNames(), ", "))
	}
	return p.Palette(), nil
}

// MaxDepth returns dump.max_depth or fallback when unset.
func (f File) MaxDepth(fallback int) int {
	if f.Dump.MaxDepth == nil {
		return fallback
	}
	return *f.Dump.MaxDepth
}

// Indent returns dump.indent or fallback when unset.
func (f File) Indent(fallback int) int {
	if f.Dump.Indent == nil {
		return fallback
	}
	return *f.Dump.Indent
}

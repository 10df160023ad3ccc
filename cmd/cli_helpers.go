package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oakwood-commons/vardump/internal/config"
	"github.com/oakwood-commons/vardump/internal/limiter"
	"github.com/oakwood-commons/vardump/internal/render"
	"github.com/oakwood-commons/vardump/internal/theme"
	"github.com/oakwood-commons/vardump/pkg/settings"
)

const themeAuto = config.ThemeAuto

// themeSelectionError reports an unknown theme or palette name.
type themeSelectionError struct {
	Kind      string
	Selected  string
	Available []string
	Default   string
}

func (e themeSelectionError) Error() string {
	return fmt.Sprintf("unknown %s %q\navailable %ss: %v\ndefault %s: %s", e.Kind, e.Selected, e.Kind, e.Available, e.Kind, e.Default)
}

// PrintError writes err to w, expanding theme selection errors over
// several lines.
func PrintError(w io.Writer, err error) {
	var selErr themeSelectionError
	if errors.As(err, &selErr) {
		fmt.Fprintf(w, "unknown %s %q\n", selErr.Kind, selErr.Selected)
		fmt.Fprintf(w, "available %ss: %s\n", selErr.Kind, strings.Join(selErr.Available, ", "))
		if selErr.Default != "" {
			fmt.Fprintf(w, "default %s: %s\n", selErr.Kind, selErr.Default)
		}
		return
	}
	fmt.Fprintln(w, err)
}

func themeNames() []string {
	return append([]string{themeAuto}, theme.Names()...)
}

func themeChoices() string {
	return strings.Join(themeNames(), "|")
}

// themeValue is the pflag.Value behind --theme. Invalid names fail while
// flags are parsed.
type themeValue string

var _ pflag.Value = (*themeValue)(nil)

func (v *themeValue) String() string {
	return string(*v)
}

func (v *themeValue) Set(s string) error {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == themeAuto {
		*v = themeValue(name)
		return nil
	}
	th, err := theme.Lookup(name, theme.Palette{})
	if err != nil {
		return themeSelectionError{Kind: "theme", Selected: s, Available: themeNames(), Default: themeAuto}
	}
	*v = themeValue(th.Name)
	return nil
}

func (v *themeValue) Type() string {
	return "theme"
}

// resolveRun merges explicitly set flags over the configuration file. All
// validation happens here, before anything is written.
func resolveRun(cmd *cobra.Command, flags *rootFlags) (*settings.Run, config.File, error) {
	cfg, err := loadMergedConfig(resolveConfigPath(flags.configFile))
	if err != nil {
		return nil, cfg, err
	}

	run := settings.NewCliParams()
	run.MaxDepth = cfg.MaxDepth(render.DefaultMaxDepth)
	run.Indent = cfg.Indent(run.Indent)
	if cfg.Dump.Theme != "" {
		run.Theme = cfg.Dump.Theme
	}
	run.Palette = cfg.Dump.Palette

	changed := cmd.Flags().Changed
	if changed("depth") {
		if flags.depth <= 0 {
			return nil, cfg, fmt.Errorf("%w: --depth %d", render.ErrInvalidMaxDepth, flags.depth)
		}
		run.MaxDepth = flags.depth
	}
	if changed("indent") {
		if flags.indent < 0 {
			return nil, cfg, fmt.Errorf("--indent must not be negative, got %d", flags.indent)
		}
		run.Indent = flags.indent
	}
	if changed("theme") {
		run.Theme = flags.theme.String()
	}
	if changed("palette") {
		if _, ok := cfg.Palettes[flags.palette]; !ok {
			return nil, cfg, themeSelectionError{Kind: "palette", Selected: flags.palette, Available: cfg.PaletteNames(), Default: cfg.Dump.Palette}
		}
		run.Palette = flags.palette
	}
	if flags.debug {
		run.MinLogLevel = -1
	}
	run.NoColor = flags.noColor
	run.Expression = flags.expression
	run.Script = flags.script
	run.Decode = flags.decode
	run.Label = flags.label
	run.NoLocation = flags.noLocation

	window := limiter.Config{Limit: flags.limit, Offset: flags.offset, Tail: flags.tail}
	if err := window.Validate(); err != nil {
		return nil, cfg, err
	}
	run.Limit, run.Offset, run.Tail = window.Limit, window.Offset, window.Tail
	return run, cfg, nil
}

// effectiveTheme applies --no-color to the selected theme name.
func effectiveTheme(run *settings.Run) string {
	if run.NoColor && (run.Theme == themeAuto || run.Theme == theme.NameTerminal) {
		return theme.NamePlain
	}
	return run.Theme
}

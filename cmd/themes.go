package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/vardump/internal/render"
	"github.com/oakwood-commons/vardump/internal/theme"
	"github.com/oakwood-commons/vardump/internal/value"
)

func newThemesCmd(flags *rootFlags) *cobra.Command {
	var preview bool
	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List output themes and terminal palettes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadMergedConfig(resolveConfigPath(flags.configFile))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			defTheme := cfg.Dump.Theme
			if defTheme == "" {
				defTheme = themeAuto
			}
			fmt.Fprintln(out, "Themes:")
			listNames(out, themeNames(), defTheme)

			fmt.Fprintln(out, "Palettes:")
			for _, name := range cfg.PaletteNames() {
				listNames(out, []string{name}, cfg.Dump.Palette)
				if !preview {
					continue
				}
				p, err := cfg.Palette(name)
				if err != nil {
					return err
				}
				r, err := render.New(theme.Terminal(p).WithIndent(2))
				if err != nil {
					return err
				}
				if err := r.Fprint(out, "", previewSample()); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&preview, "preview", false, "render a sample value with each palette")
	return cmd
}

func listNames(w io.Writer, names []string, def string) {
	for _, name := range names {
		if name == def {
			fmt.Fprintf(w, "  %s (default)\n", name)
			continue
		}
		fmt.Fprintf(w, "  %s\n", name)
	}
}

type previewNode struct {
	Name  string
	count int
	Next  *previewNode
}

func previewSample() any {
	n := &previewNode{Name: "node", count: 2}
	n.Next = n
	m := value.NewOrderedMap(6)
	m.Set(value.StringKey("string"), "text")
	m.Set(value.StringKey("int"), 42)
	m.Set(value.StringKey("float"), 2.5)
	m.Set(value.StringKey("bool"), true)
	m.Set(value.StringKey("null"), nil)
	m.Set(value.StringKey("empty"), []any{})
	m.Set(value.StringKey("object"), n)
	return m
}

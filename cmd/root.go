package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/oakwood-commons/vardump/pkg/logger"
	"github.com/oakwood-commons/vardump/pkg/settings"
)

// errShowHelp is returned when there is no input and stdin is a terminal.
var errShowHelp = errors.New("no input provided")

// rootFlags holds the raw flag values of one command tree.
type rootFlags struct {
	theme      themeValue
	palette    string
	depth      int
	indent     int
	expression string
	script     bool
	noColor    bool
	configFile string
	debug      bool
	label      string
	noLocation bool
	decode     bool
	limit      int
	offset     int
	tail       int
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	flags := &rootFlags{theme: themeValue(themeAuto)}

	cmd := &cobra.Command{
		Use:   settings.CliBinaryName + " [file...]",
		Short: "Dump the structure of JSON, YAML, TOML and NDJSON documents",
		Long: `vardump renders documents the way var_dump renders values: every
composite shows its size, every scalar its type, strings their length.

Input is read from the files given, or from stdin when no file (or "-") is
given. Each input is rendered under a header naming it.`,
		Example: "\n  vardump config.yaml\n  vardump -d 3 a.json b.json\n  kubectl get pods -o json | vardump -e '_.items.map(p, p.metadata.name)'\n  vardump --theme markup report.json > report.html\n",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			// debug => zap.DebugLevel (-1), else zap.InfoLevel (0)
			var level int8
			if flags.debug {
				level = -1
			}
			lgr := logger.Get(level)
			lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(logger.WithLogger(ctx, lgr))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			run, cfg, err := resolveRun(cmd, flags)
			if err != nil {
				return err
			}
			cmd.SetContext(settings.IntoContext(cmd.Context(), run))
			err = runDump(cmd, args, cfg)
			if errors.Is(err, errShowHelp) {
				return cmd.Help()
			}
			return err
		},
	}

	f := cmd.Flags()
	f.VarP(&flags.theme, "theme", "t", "output theme: "+themeChoices())
	f.StringVar(&flags.palette, "palette", "", "terminal palette (see 'vardump themes'; default from config)")
	f.IntVarP(&flags.depth, "depth", "d", 0, "maximum nesting depth rendered (default from config)")
	f.IntVar(&flags.indent, "indent", 0, "spaces per nesting level (default from config)")
	f.StringVarP(&flags.expression, "expression", "e", "", "CEL expression using '_' as root; dumps its result. Example: '_.items[0]'")
	f.BoolVar(&flags.script, "script", false, "wrap plain output in a <script> element logging to the browser console")
	f.BoolVar(&flags.noColor, "no-color", false, "disable color output")
	f.BoolVar(&flags.decode, "decode", false, "expand string values that hold serialized JSON, YAML, TOML or JWT")
	f.StringVar(&flags.label, "label", "", "header label for every input instead of its file name")
	f.BoolVar(&flags.noLocation, "no-location", false, "omit the header line")
	f.IntVar(&flags.limit, "limit", 0, "dump only the first N top-level entries")
	f.IntVar(&flags.offset, "offset", 0, "skip the first N top-level entries")
	f.IntVar(&flags.tail, "tail", 0, "dump only the last N top-level entries")
	cmd.PersistentFlags().StringVar(&flags.configFile, "config-file", "", "path to a YAML config file")
	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "write debug logs to stderr")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newThemesCmd(flags))
	cmd.AddCommand(newConfigCmd(flags))
	return cmd
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// versionString formats the build metadata.
func versionString() string {
	v := settings.VersionInformation
	return fmt.Sprintf("%s %s (commit %s, built %s)", settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print vardump version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), versionString())
			return err
		},
	}
}

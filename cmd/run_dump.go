package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/vardump/internal/cel"
	"github.com/oakwood-commons/vardump/internal/config"
	"github.com/oakwood-commons/vardump/internal/limiter"
	"github.com/oakwood-commons/vardump/pkg/dump"
	"github.com/oakwood-commons/vardump/pkg/loader"
	"github.com/oakwood-commons/vardump/pkg/logger"
	"github.com/oakwood-commons/vardump/pkg/settings"
)

const stdinName = "-"

// input is one document source named on the command line.
type input struct {
	name string
	read func() ([]byte, error)
}

func collectInputs(cmd *cobra.Command, args []string) ([]input, error) {
	if len(args) == 0 {
		if cmd.InOrStdin() == os.Stdin && stdinIsTerminal() {
			return nil, errShowHelp
		}
		args = []string{stdinName}
	}
	inputs := make([]input, 0, len(args))
	for _, arg := range args {
		if arg == stdinName {
			inputs = append(inputs, input{name: "stdin", read: func() ([]byte, error) {
				return io.ReadAll(cmd.InOrStdin())
			}})
			continue
		}
		path := arg
		inputs = append(inputs, input{name: path, read: func() ([]byte, error) {
			return os.ReadFile(path)
		}})
	}
	return inputs, nil
}

// runDump renders every input as its own dump, in argument order.
func runDump(cmd *cobra.Command, args []string, cfg config.File) error {
	run, ok := settings.FromContext(cmd.Context())
	if !ok {
		run = settings.NewCliParams()
	}
	inputs, err := collectInputs(cmd, args)
	if err != nil {
		return err
	}
	palette, err := cfg.Palette(run.Palette)
	if err != nil {
		return err
	}

	mode := loader.Ordered
	var eval *cel.Evaluator
	if run.Expression != "" {
		// CEL only understands plain maps.
		mode = loader.Plain
		if eval, err = cel.NewEvaluator(); err != nil {
			return err
		}
	}

	window := limiter.Config{Limit: run.Limit, Offset: run.Offset, Tail: run.Tail}
	lgr := logger.FromContext(cmd.Context())
	for _, in := range inputs {
		ilgr := logger.WithValues(lgr, logger.InputKey, in.name)
		ilgr.V(1).Info("loading input", "mode", mode.String())

		data, err := in.read()
		if err != nil {
			return err
		}
		root, err := loader.LoadReader(bytes.NewReader(data), loader.WithMode(mode))
		if err != nil {
			return fmt.Errorf("%s: %w", in.name, err)
		}
		if run.Decode {
			root = loader.RecursiveDecode(root, loader.WithMode(mode))
		}
		if eval != nil {
			if root, err = eval.EvaluateContext(cmd.Context(), run.Expression, root); err != nil {
				return fmt.Errorf("%s: %w", in.name, err)
			}
		}

		root = window.Apply(root)

		location := in.name
		if run.Label != "" {
			location = run.Label
		}
		err = dump.Xdump([]any{root}, dump.Config{
			MaxDepth:     run.MaxDepth,
			Theme:        effectiveTheme(run),
			Palette:      &palette,
			Indent:       run.Indent,
			Writer:       cmd.OutOrStdout(),
			Logger:       *ilgr,
			Location:     location,
			OmitLocation: run.NoLocation,
			Script:       run.Script,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

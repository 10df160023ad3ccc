// Package dump prints human-readable descriptions of arbitrary values, in the
// manner of a debugging var_dump. Every call renders its values under a
// "file:line:" header naming the call site.
//
//	dump.Dump(user, err)       // colored on a terminal, plain otherwise
//	s := dump.Sdump(cfg)       // plain text
//	dump.Fdump(w, req.Header)  // HTML when w is an http.ResponseWriter
package dump

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/oakwood-commons/vardump/internal/render"
	"github.com/oakwood-commons/vardump/internal/theme"
)

// ExitFunc terminates the process after Dd and Xdd. Tests replace it.
var ExitFunc = os.Exit

// Dump writes values to standard output, colored when stdout is a terminal.
func Dump(values ...any) {
	_ = fdump(os.Stdout, caller(1), values)
}

// Plain writes values to standard output without decoration.
func Plain(values ...any) {
	_ = write(os.Stdout, theme.Plain(), caller(1), values)
}

// Fdump writes values to w using the theme that suits w.
func Fdump(w io.Writer, values ...any) error {
	return fdump(w, caller(1), values)
}

// Sdump returns the plain rendering of values.
func Sdump(values ...any) string {
	out, _ := render.Render(values, theme.Plain(), render.DefaultMaxDepth, caller(1))
	return out
}

// Dd dumps values like Dump and then exits with status 0.
func Dd(values ...any) {
	_ = fdump(os.Stdout, caller(1), values)
	ExitFunc(0)
}

// Xdump writes values with an explicit configuration.
func Xdump(values []any, cfg Config) error {
	return xdump(values, cfg, caller(1))
}

// Xdd is Xdump followed by process exit. Configuration errors are returned
// without exiting.
func Xdd(values []any, cfg Config) error {
	if err := xdump(values, cfg, caller(1)); err != nil {
		return err
	}
	ExitFunc(0)
	return nil
}

func fdump(w io.Writer, location string, values []any) error {
	return write(w, Auto(w, theme.DefaultPalette()), location, values)
}

func write(w io.Writer, th theme.Theme, location string, values []any) error {
	r, err := render.New(th)
	if err != nil {
		return err
	}
	return r.Fprint(w, location, values...)
}

func xdump(values []any, cfg Config, location string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	w := cfg.writer()
	th, err := cfg.theme(w)
	if err != nil {
		return err
	}
	if cfg.Location != "" {
		location = cfg.Location
	}
	if cfg.OmitLocation {
		location = ""
	}
	r, err := render.New(th, render.WithMaxDepth(cfg.maxDepth()), render.WithLogger(cfg.logger()))
	if err != nil {
		return err
	}
	out := r.Render(location, values...)
	if cfg.Script {
		out = wrapScript(out)
	}
	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("writing dump: %w", err)
	}
	return nil
}

// caller returns "path:line" for the function skip frames above the caller
// of caller.
func caller(skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return ""
	}
	return filepath.ToSlash(file) + ":" + strconv.Itoa(line)
}

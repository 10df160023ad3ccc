package dump

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/vardump/internal/render"
	"github.com/oakwood-commons/vardump/internal/theme"
)

// ThemeAuto picks a theme from the destination writer.
const ThemeAuto = "auto"

// ErrInvalidMaxDepth is returned when a configured depth is not positive.
var ErrInvalidMaxDepth = render.ErrInvalidMaxDepth

// Config controls Xdump and Xdd. The zero value renders like Dump.
type Config struct {
	// MaxDepth is the nesting limit. Zero means render.DefaultMaxDepth;
	// negative values are rejected.
	MaxDepth int
	// Theme is one of auto, plain, terminal or markup. Empty means auto.
	Theme string
	// Palette colors the terminal theme. Nil uses the default palette.
	Palette *theme.Palette
	// Indent is the number of spaces per nesting level. Zero keeps four.
	Indent int
	// Writer receives the output. Nil means standard output.
	Writer io.Writer
	// Logger receives attribute enumeration failures.
	Logger logr.Logger
	// Location overrides the captured call site.
	Location string
	// OmitLocation suppresses the location header.
	OmitLocation bool
	// Script wraps the plain rendering in a <script> element that logs it
	// to the browser console. Theme is ignored.
	Script bool
}

// Validate reports configuration errors before anything is written.
func (c Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxDepth, c.MaxDepth)
	}
	if c.Indent < 0 {
		return errors.New("indent must not be negative")
	}
	switch c.Theme {
	case "", ThemeAuto:
		return nil
	}
	if _, err := theme.Lookup(c.Theme, theme.Palette{}); err != nil {
		return err
	}
	return nil
}

func (c Config) maxDepth() int {
	if c.MaxDepth == 0 {
		return render.DefaultMaxDepth
	}
	return c.MaxDepth
}

func (c Config) logger() logr.Logger {
	if c.Logger.GetSink() == nil {
		return logr.Discard()
	}
	return c.Logger
}

func (c Config) writer() io.Writer {
	if c.Writer == nil {
		return os.Stdout
	}
	return c.Writer
}

func (c Config) palette() theme.Palette {
	if c.Palette == nil {
		return theme.DefaultPalette()
	}
	return *c.Palette
}

func (c Config) theme(w io.Writer) (theme.Theme, error) {
	var th theme.Theme
	switch {
	case c.Script:
		th = theme.Plain()
	case c.Theme == "", c.Theme == ThemeAuto:
		th = Auto(w, c.palette())
	default:
		var err error
		if th, err = theme.Lookup(c.Theme, c.palette()); err != nil {
			return theme.Theme{}, err
		}
	}
	return th.WithIndent(c.Indent), nil
}

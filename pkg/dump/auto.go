package dump

import (
	"io"
	"net/http"
	"os"

	"golang.org/x/term"

	"github.com/oakwood-commons/vardump/internal/theme"
)

// Auto returns the theme that suits w: markup for HTTP responses, terminal
// for an interactive terminal, plain for everything else. Setting NO_COLOR
// disables the terminal theme.
func Auto(w io.Writer, palette theme.Palette) theme.Theme {
	switch t := w.(type) {
	case http.ResponseWriter:
		return theme.Markup()
	case *os.File:
		if ColorEnabled(t) {
			return theme.Terminal(palette)
		}
	}
	return theme.Plain()
}

// ColorEnabled reports whether f is a terminal that accepts color.
func ColorEnabled(f *os.File) bool {
	if f == nil {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

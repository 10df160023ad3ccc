// Package render walks arbitrary values and emits their structure through a
// theme. It owns all traversal bookkeeping: nesting depth, the objects on the
// current path for cycle detection, and display tokens for object identity.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/vardump/internal/theme"
	"github.com/oakwood-commons/vardump/internal/value"
)

// DefaultMaxDepth is the nesting limit used when none is configured.
const DefaultMaxDepth = 10

// ErrInvalidMaxDepth is returned for a non-positive nesting limit.
var ErrInvalidMaxDepth = errors.New("max depth must be a positive integer")

// Renderer renders values with a fixed theme and depth limit. It holds no
// per-call state and is safe for concurrent use.
type Renderer struct {
	theme    theme.Theme
	maxDepth int
	log      logr.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithMaxDepth sets the nesting limit.
func WithMaxDepth(n int) Option {
	return func(r *Renderer) {
		r.maxDepth = n
	}
}

// WithLogger sets the logger used to report attribute enumeration failures.
func WithLogger(log logr.Logger) Option {
	return func(r *Renderer) {
		r.log = log
	}
}

// New returns a Renderer for th. It fails before anything is rendered when
// the configured depth is not positive.
func New(th theme.Theme, opts ...Option) (*Renderer, error) {
	r := &Renderer{
		theme:    th,
		maxDepth: DefaultMaxDepth,
		log:      logr.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.maxDepth <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMaxDepth, r.maxDepth)
	}
	return r, nil
}

// Render renders values and returns the text. An empty location omits the
// location header.
func Render(values []any, th theme.Theme, maxDepth int, location string) (string, error) {
	r, err := New(th, WithMaxDepth(maxDepth))
	if err != nil {
		return "", err
	}
	return r.Render(location, values...), nil
}

// Theme returns the renderer's theme.
func (r *Renderer) Theme() theme.Theme {
	return r.theme
}

// MaxDepth returns the nesting limit.
func (r *Renderer) MaxDepth() int {
	return r.maxDepth
}

// Render renders values in order under an optional location header.
func (r *Renderer) Render(location string, values ...any) string {
	var b strings.Builder
	r.render(&b, location, values)
	return b.String()
}

// Fprint renders values to w.
func (r *Renderer) Fprint(w io.Writer, location string, values ...any) error {
	_, err := io.WriteString(w, r.Render(location, values...))
	return err
}

func (r *Renderer) render(b *strings.Builder, location string, values []any) {
	th := r.theme
	r.log.V(1).Info("rendering", "theme", th.Name, "values", len(values), "maxDepth", r.maxDepth)

	b.WriteString(th.Preamble())
	if location != "" {
		b.WriteString(th.Location(location))
		b.WriteString(th.EOL)
	}
	b.WriteString(th.Open())
	if len(values) == 0 {
		b.WriteString(th.Empty())
		b.WriteString(th.EOL)
	}
	s := &session{r: r, th: th, out: b, tokens: make(map[value.Identity]int)}
	for _, v := range values {
		s.reset()
		s.value(v, "")
	}
	b.WriteString(th.Close())
}

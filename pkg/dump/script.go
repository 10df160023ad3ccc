package dump

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/oakwood-commons/vardump/internal/render"
	"github.com/oakwood-commons/vardump/internal/theme"
)

// Script returns a <script> element that logs the plain rendering of values
// to the browser console.
func Script(values ...any) string {
	return script(caller(1), values)
}

// Fscript writes the Script output to w.
func Fscript(w io.Writer, values ...any) error {
	_, err := io.WriteString(w, script(caller(1), values))
	return err
}

func script(location string, values []any) string {
	out, _ := render.Render(values, theme.Plain(), render.DefaultMaxDepth, location)
	return wrapScript(out)
}

func wrapScript(out string) string {
	// json.Marshal escapes <, > and & so the payload cannot close the element.
	payload, _ := json.Marshal(out)

	var b strings.Builder
	b.WriteString("<script>" + theme.EOL)
	b.WriteString("console.dir(")
	b.Write(payload)
	b.WriteString(")" + theme.EOL)
	b.WriteString("</script>" + theme.EOL)
	return b.String()
}

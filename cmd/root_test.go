package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/vardump/internal/render"
	"github.com/oakwood-commons/vardump/pkg/settings"
)

// isolate keeps a developer's own config file out of the tests.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "")
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDumpFile(t *testing.T) {
	isolate(t)
	path := writeFile(t, "doc.json", `{"name":"ann","age":41,"admin":true,"tags":[]}`)

	out, err := execute(t, "", path)
	require.NoError(t, err)

	want := path + ":\n" +
		"array (size=4)\n" +
		"  'name' => string 'ann' (length=3)\n" +
		"  'age' => int 41\n" +
		"  'admin' => boolean true\n" +
		"  'tags' => \n" +
		"    array (size=0)\n" +
		"      empty\n"
	assert.Equal(t, want, out)
}

func TestDumpStdin(t *testing.T) {
	isolate(t)

	out, err := execute(t, "a: 1.5\nb: null\n")
	require.NoError(t, err)
	assert.Equal(t, "stdin:\narray (size=2)\n  'a' => float 1.5\n  'b' => null\n", out)

	out, err = execute(t, "[1]", "-")
	require.NoError(t, err)
	assert.Equal(t, "stdin:\narray (size=1)\n  0 => int 1\n", out)
}

func TestDumpMultipleInputsInOrder(t *testing.T) {
	isolate(t)
	a := writeFile(t, "a.yaml", "x: 1\n")
	b := writeFile(t, "b.yaml", "y: 2\n")

	out, err := execute(t, "", a, b)
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, a+":"), strings.Index(out, b+":"))
	assert.Contains(t, out, "'x' => int 1")
	assert.Contains(t, out, "'y' => int 2")
}

func TestDumpDepthFlag(t *testing.T) {
	isolate(t)
	path := writeFile(t, "deep.json", `{"a":{"b":{"c":1}}}`)

	out, err := execute(t, "", "--no-location", "-d", "1", path)
	require.NoError(t, err)
	want := "array (size=1)\n" +
		"  'a' => \n" +
		"    array (size=1)\n" +
		"      ...\n"
	assert.Equal(t, want, out)
}

func TestDumpRejectsNonPositiveDepth(t *testing.T) {
	isolate(t)
	path := writeFile(t, "doc.json", `[1]`)

	out, err := execute(t, "", "--depth", "0", path)
	require.ErrorIs(t, err, render.ErrInvalidMaxDepth)
	assert.Empty(t, out)
}

func TestDumpRejectsUnknownTheme(t *testing.T) {
	isolate(t)

	_, err := execute(t, "[1]", "--theme", "sepia")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown theme "sepia"`)
}

func TestDumpRejectsUnknownPalette(t *testing.T) {
	isolate(t)

	_, err := execute(t, "[1]", "--palette", "neon")
	var selErr themeSelectionError
	require.ErrorAs(t, err, &selErr)
	assert.Equal(t, "palette", selErr.Kind)
	assert.Contains(t, selErr.Available, "dracula")

	var buf bytes.Buffer
	PrintError(&buf, err)
	assert.Contains(t, buf.String(), "available palettes: ")
	assert.Contains(t, buf.String(), "default palette: default")
}

func TestDumpMarkupTheme(t *testing.T) {
	isolate(t)

	out, err := execute(t, `["<b>"]`, "--theme", "markup", "--label", "page")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<style>"), out)
	assert.Contains(t, out, "page:")
	assert.Contains(t, out, "&lt;b&gt;")
}

func TestDumpNoColorForcesPlain(t *testing.T) {
	isolate(t)

	out, err := execute(t, "true", "--theme", "terminal", "--no-color", "--no-location")
	require.NoError(t, err)
	assert.Equal(t, "boolean true\n", out)
}

func TestDumpLabelAndNoLocation(t *testing.T) {
	isolate(t)

	out, err := execute(t, "1", "--label", "answer")
	require.NoError(t, err)
	assert.Equal(t, "answer:\nint 1\n", out)

	out, err = execute(t, "1", "--no-location")
	require.NoError(t, err)
	assert.Equal(t, "int 1\n", out)
}

func TestDumpExpression(t *testing.T) {
	isolate(t)
	path := writeFile(t, "items.json", `{"items":[{"name":"a","n":1},{"name":"b","n":2}]}`)

	out, err := execute(t, "", "--no-location", "-e", "_.items.map(i, i.name)", path)
	require.NoError(t, err)
	want := "array (size=2)\n" +
		"  0 => string 'a' (length=1)\n" +
		"  1 => string 'b' (length=1)\n"
	assert.Equal(t, want, out)

	_, err = execute(t, "", "-e", "_.items[", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestDumpDecode(t *testing.T) {
	isolate(t)

	out, err := execute(t, `{"inner":"{\"k\":1}"}`, "--decode", "--no-location")
	require.NoError(t, err)
	assert.Contains(t, out, "'inner' => \n    array (size=1)\n")
	assert.Contains(t, out, "'k' => int 1")
}

func TestDumpScript(t *testing.T) {
	isolate(t)

	out, err := execute(t, "[1]", "--script", "--theme", "terminal")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<script>\nconsole.dir("), out)
	assert.True(t, strings.HasSuffix(out, "</script>\n"), out)
	assert.NotContains(t, out, "\x1b[")
}

func TestDumpBadInput(t *testing.T) {
	isolate(t)
	missing := filepath.Join(t.TempDir(), "missing.json")

	_, err := execute(t, "", missing)
	require.Error(t, err)

	_, err = execute(t, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stdin")
}

func TestDumpConfigFile(t *testing.T) {
	isolate(t)
	cfgPath := writeFile(t, "config.yaml", "dump:\n  max_depth: 1\n  indent: 2\n")
	path := writeFile(t, "deep.json", `{"a":{"b":1}}`)

	out, err := execute(t, "", "--config-file", cfgPath, "--no-location", path)
	require.NoError(t, err)
	want := "array (size=1)\n" +
		"  'a' => \n" +
		"  array (size=1)\n" +
		"    ...\n"
	assert.Equal(t, want, out)

	// Flags win over the file.
	out, err = execute(t, "", "--config-file", cfgPath, "--no-location", "-d", "5", path)
	require.NoError(t, err)
	assert.Contains(t, out, "'b' => int 1")
}

func TestDumpConfigFromXDG(t *testing.T) {
	isolate(t)
	dir := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), settings.CliBinaryName)
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("dump:\n  theme: markup\n"), 0o600))

	out, err := execute(t, "1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<style>"), out)
}

func TestResolveConfigPath(t *testing.T) {
	isolate(t)
	assert.Equal(t, "/explicit.yaml", resolveConfigPath("/explicit.yaml"))
	assert.Empty(t, resolveConfigPath(""))
}

func TestLoadMergedConfigWrapsErrors(t *testing.T) {
	_, err := loadMergedConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestVersionCommand(t *testing.T) {
	isolate(t)

	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, versionString()+"\n", out)
	assert.True(t, strings.HasPrefix(out, settings.CliBinaryName+" "))
}

func TestThemesCommand(t *testing.T) {
	isolate(t)

	out, err := execute(t, "", "themes")
	require.NoError(t, err)
	assert.Contains(t, out, "  auto (default)\n")
	assert.Contains(t, out, "  plain\n")
	assert.Contains(t, out, "  markup\n")
	assert.Contains(t, out, "  default (default)\n")
	assert.Contains(t, out, "  dracula\n")
	assert.NotContains(t, out, "array (size=")

	out, err = execute(t, "", "themes", "--preview")
	require.NoError(t, err)
	assert.Contains(t, out, "*RECURSION*")
}

func TestConfigCommand(t *testing.T) {
	isolate(t)
	cfgPath := writeFile(t, "config.yaml", "dump:\n  max_depth: 3\n")

	out, err := execute(t, "", "--config-file", cfgPath, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "max_depth: 3")
	assert.Contains(t, out, "palettes:")

	out, err = execute(t, "", "config", "--default")
	require.NoError(t, err)
	assert.Contains(t, out, "max_depth: 10")
}

func TestEffectiveTheme(t *testing.T) {
	run := settings.NewCliParams()
	assert.Equal(t, themeAuto, effectiveTheme(run))

	run.NoColor = true
	assert.Equal(t, "plain", effectiveTheme(run))

	run.Theme = "markup"
	assert.Equal(t, "markup", effectiveTheme(run))
}

func TestDumpWindowFlags(t *testing.T) {
	isolate(t)

	out, err := execute(t, "[1, 2, 3, 4]", "--no-location", "--offset", "1", "--limit", "2")
	require.NoError(t, err)
	assert.Equal(t, "array (size=2)\n  0 => int 2\n  1 => int 3\n", out)

	out, err = execute(t, "{a: 1, b: 2, c: 3}", "--no-location", "--tail", "1")
	require.NoError(t, err)
	assert.Equal(t, "array (size=1)\n  'c' => int 3\n", out)

	_, err = execute(t, "[1]", "--limit", "1", "--tail", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

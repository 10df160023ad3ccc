package dump

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/vardump/internal/theme"
)

type user struct {
	Name  string
	roles []string
}

func TestSdumpIncludesCallSite(t *testing.T) {
	out := Sdump(1)
	first, rest, ok := strings.Cut(out, "\n")
	require.True(t, ok)
	assert.True(t, strings.HasSuffix(first, ":"), first)
	assert.Contains(t, first, "dump_test.go:")
	assert.Equal(t, "int 1\n", rest)
}

func TestFdumpPlainForBuffers(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Fdump(&buf, []any{1, "x", nil}))

	_, body, _ := strings.Cut(buf.String(), "\n")
	want := "array (size=3)\n" +
		"  0 => int 1\n" +
		"  1 => string 'x' (length=1)\n" +
		"  2 => null\n"
	assert.Equal(t, want, body)
}

func TestFdumpMarkupForHTTP(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, Fdump(rec, "<b>"))

	out := rec.Body.String()
	assert.True(t, strings.HasPrefix(out, "<style>"))
	assert.Contains(t, out, `<div class="_path">`)
	assert.Contains(t, out, "&lt;b&gt;")
}

func TestAutoHonorsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, theme.NamePlain, Auto(os.Stdout, theme.DefaultPalette()).Name)
	assert.False(t, ColorEnabled(nil))
}

func TestAutoPlainForRegularFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, theme.NamePlain, Auto(f, theme.DefaultPalette()).Name)
}

func TestXdump(t *testing.T) {
	var buf bytes.Buffer
	err := Xdump([]any{&user{Name: "ann", roles: []string{"admin"}}}, Config{
		MaxDepth:     1,
		Theme:        "plain",
		Indent:       2,
		Writer:       &buf,
		OmitLocation: true,
	})
	require.NoError(t, err)

	want := "object(dump.user)[1]\n" +
		"  public 'Name' => string 'ann' (length=3)\n" +
		"  private 'roles' => \n" +
		"  array (size=1)\n" +
		"    ...\n"
	assert.Equal(t, want, buf.String())
}

func TestXdumpLocationOverride(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Xdump([]any{true}, Config{Writer: &buf, Location: "job.yaml"}))
	assert.Equal(t, "job.yaml:\nboolean true\n", buf.String())
}

func TestXdumpRejectsBadConfig(t *testing.T) {
	var buf bytes.Buffer

	err := Xdump([]any{1}, Config{MaxDepth: -1, Writer: &buf})
	require.ErrorIs(t, err, ErrInvalidMaxDepth)

	err = Xdump([]any{1}, Config{Theme: "sepia", Writer: &buf})
	require.Error(t, err)

	err = Xdump([]any{1}, Config{Indent: -2, Writer: &buf})
	require.Error(t, err)

	assert.Zero(t, buf.Len())
}

type broken struct{}

func (broken) DumpAttributes() ([]Attribute, error) {
	panic("no attributes")
}

func TestXdumpLogsAttributeFailures(t *testing.T) {
	var logged []string
	log := funcr.New(func(prefix, args string) {
		logged = append(logged, args)
	}, funcr.Options{})

	var buf bytes.Buffer
	require.NoError(t, Xdump([]any{broken{}}, Config{Writer: &buf, Logger: log, OmitLocation: true}))
	assert.Equal(t, "object(dump.broken)[1]\n", buf.String())
	require.Len(t, logged, 1)
	assert.Contains(t, logged[0], "no attributes")
}

func TestXddExits(t *testing.T) {
	code := -1
	ExitFunc = func(c int) { code = c }
	t.Cleanup(func() { ExitFunc = os.Exit })

	var buf bytes.Buffer
	require.NoError(t, Xdd([]any{1}, Config{Writer: &buf}))
	assert.Equal(t, 0, code)
	assert.Contains(t, buf.String(), "int 1")

	code = -1
	require.Error(t, Xdd([]any{1}, Config{MaxDepth: -3, Writer: &buf}))
	assert.Equal(t, -1, code)
}

func TestScript(t *testing.T) {
	out := Script("</script>")
	require.True(t, strings.HasPrefix(out, "<script>\nconsole.dir(\""))
	require.True(t, strings.HasSuffix(out, "\")\n</script>\n"))
	assert.Equal(t, 2, strings.Count(out, "script>"))

	payload := strings.TrimSuffix(strings.TrimPrefix(out, "<script>\nconsole.dir("), ")\n</script>\n")
	var text string
	require.NoError(t, json.Unmarshal([]byte(payload), &text))
	assert.Contains(t, text, "string '</script>' (length=9)")

	var buf bytes.Buffer
	require.NoError(t, Fscript(&buf, 1))
	assert.Contains(t, buf.String(), `int 1\n`)
}

type conn struct{ fd int64 }

func (c conn) HandleID() int64    { return c.fd }
func (c conn) HandleType() string { return "socket" }

type secretive struct{ token string }

func (s *secretive) DumpAttributes() ([]Attribute, error) {
	return []Attribute{{Name: "token", Visibility: Protected, Value: strings.Repeat("*", len(s.token))}}, nil
}

func TestCustomTypes(t *testing.T) {
	m := NewOrderedMap(3)
	m.Set(StringKey("z"), conn{fd: 4})
	m.Set(IntKey(0), &secretive{token: "abc"})

	var buf bytes.Buffer
	require.NoError(t, Xdump([]any{m}, Config{Writer: &buf, OmitLocation: true}))
	want := "array (size=2)\n" +
		"  'z' => resource(4, socket)\n" +
		"  0 => \n" +
		"    object(dump.secretive)[1]\n" +
		"      protected 'token' => string '***' (length=3)\n"
	assert.Equal(t, want, buf.String())
}

func TestXdumpScript(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Xdump([]any{[]int{}}, Config{Writer: &buf, Theme: "markup", Script: true, OmitLocation: true}))
	assert.Equal(t, "<script>\nconsole.dir(\"array (size=0)\\n  empty\\n\")\n</script>\n", buf.String())
}

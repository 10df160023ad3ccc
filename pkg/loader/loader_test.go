package loader

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/vardump/internal/value"
)

func ordered(t *testing.T, v any) *value.OrderedMap {
	t.Helper()
	m, ok := v.(*value.OrderedMap)
	require.True(t, ok, "expected *value.OrderedMap, got %T", v)
	return m
}

func keyStrings(m *value.OrderedMap) []string {
	var out []string
	for _, k := range m.Keys() {
		out = append(out, k.String())
	}
	return out
}

func TestLoadJSONKeepsKeyOrder(t *testing.T) {
	root, err := LoadRoot(`{"zeta": 1, "alpha": [true, null, 2.5], "mid": "x"}`)
	require.NoError(t, err)

	m := ordered(t, root)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, keyStrings(m))

	v, _ := m.Get(value.StringKey("zeta"))
	assert.Equal(t, int64(1), v)
	v, _ = m.Get(value.StringKey("alpha"))
	assert.Equal(t, []any{true, nil, 2.5}, v)
}

func TestLoadYAMLScalars(t *testing.T) {
	root, err := LoadRoot("name: app\nport: 8080\nratio: 0.5\nenabled: yes\ncreated: 2024-01-02\nnothing: ~\nhex: 0x1F\nbig: 18446744073709551615\n")
	require.NoError(t, err)

	m := ordered(t, root)
	want := map[string]any{
		"name":    "app",
		"port":    int64(8080),
		"ratio":   0.5,
		"enabled": "yes",
		"created": "2024-01-02",
		"nothing": nil,
		"hex":     int64(31),
		"big":     uint64(18446744073709551615),
	}
	for k, w := range want {
		got, ok := m.Get(value.StringKey(k))
		require.True(t, ok, k)
		assert.Equal(t, w, got, k)
	}
}

func TestLoadYAMLIntegerKeys(t *testing.T) {
	root, err := LoadRoot("b: 1\n3: three\na: 2\n")
	require.NoError(t, err)

	m := ordered(t, root)
	assert.Equal(t, []value.Key{value.StringKey("b"), value.IntKey(3), value.StringKey("a")}, m.Keys())
}

func TestLoadYAMLMergeKeys(t *testing.T) {
	input := `
base: &base
  host: localhost
  port: 80
prod:
  <<: *base
  port: 443
`
	root, err := LoadRoot(input)
	require.NoError(t, err)

	prod, _ := ordered(t, root).Get(value.StringKey("prod"))
	pm := ordered(t, prod)
	assert.Equal(t, []string{"host", "port"}, keyStrings(pm))
	port, _ := pm.Get(value.StringKey("port"))
	assert.Equal(t, int64(443), port)
}

func TestLoadPlainMode(t *testing.T) {
	root, err := LoadRoot(`{"a": {"b": [1, 2]}}`, WithMode(Plain))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": map[string]any{"b": []any{int64(1), int64(2)}}}, root)
	assert.Equal(t, "plain", Plain.String())
	assert.Equal(t, "ordered", Ordered.String())
}

func TestLoadMultiDocYAML(t *testing.T) {
	docs, err := LoadData("---\na: 1\n---\n---\nb: 2\n")
	require.NoError(t, err)
	require.Len(t, docs, 2)

	root, err := LoadRoot("a: 1\n---\nb: 2\n")
	require.NoError(t, err)
	assert.Len(t, root, 2)

	_, err = LoadData("---\n---\n")
	require.Error(t, err)
}

func TestLoadNDJSON(t *testing.T) {
	docs, err := LoadData("{\"id\": 1}\n{\"id\": 2}\nnot json {\n")
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "not json {", docs[2])

	id, _ := ordered(t, docs[1]).Get(value.StringKey("id"))
	assert.Equal(t, int64(2), id)
}

func TestLoadTOML(t *testing.T) {
	root, err := LoadRoot("title = \"demo\"\n\n[server]\nport = 8080\n")
	require.NoError(t, err)

	m, ok := root.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "demo", m["title"])
	assert.Equal(t, map[string]any{"port": int64(8080)}, m["server"])

	_, err = LoadRoot("[server]\nport = \n")
	require.Error(t, err)
}

func TestLoadJSONArrayIsNotTOML(t *testing.T) {
	root, err := LoadRoot("[1, 2, 3]")
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, root)
}

func TestLoadErrors(t *testing.T) {
	_, err := LoadData("   \n")
	require.ErrorIs(t, err, ErrEmptyInput)

	_, err = LoadData("a: [1, 2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid YAML")
}

func TestLoadFileAndReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("k: v\n"), 0o600))

	root, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"k"}, keyStrings(ordered(t, root)))

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	root, err = LoadReader(strings.NewReader("- 1\n- 2\n"))
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(2)}, root)
}

func TestLoadAliasBomb(t *testing.T) {
	var b strings.Builder
	b.WriteString("a: &a [x, x, x, x, x, x, x, x, x, x]\n")
	prev := "a"
	for _, name := range []string{"b", "c", "d", "e", "f"} {
		b.WriteString(name + ": &" + name + " [")
		for i := 0; i < 10; i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString("*" + prev)
		}
		b.WriteString("]\n")
		prev = name
	}
	_, err := LoadRoot(b.String())
	require.Error(t, err)
}

func token(header, payload string) string {
	enc := base64.RawURLEncoding
	return enc.EncodeToString([]byte(header)) + "." + enc.EncodeToString([]byte(payload)) + "." + enc.EncodeToString([]byte("sig"))
}

func TestJWT(t *testing.T) {
	tok := token(`{"alg":"HS256","typ":"JWT"}`, `{"sub":"42","name":"ann","admin":true}`)
	assert.True(t, IsJWT(tok))
	assert.True(t, IsJWT("Bearer "+tok))
	assert.False(t, IsJWT("a.b.c"))
	assert.False(t, IsJWT("only.two"))

	root, err := LoadRoot(tok)
	require.NoError(t, err)
	m := ordered(t, root)
	assert.Equal(t, []string{"header", "payload", "signature"}, keyStrings(m))

	payload, _ := m.Get(value.StringKey("payload"))
	assert.Equal(t, []string{"sub", "name", "admin"}, keyStrings(ordered(t, payload)))

	plain, err := DecodeJWT(tok, WithMode(Plain))
	require.NoError(t, err)
	assert.Equal(t, "HS256", plain.(map[string]any)["header"].(map[string]any)["alg"])

	_, err = DecodeJWT("x.y")
	require.Error(t, err)
}

func TestRecursiveDecode(t *testing.T) {
	root, err := LoadRoot(`{"body": "{\"inner\": [1]}", "word": "hello", "n": "42"}`)
	require.NoError(t, err)

	m := ordered(t, RecursiveDecode(root))
	body, _ := m.Get(value.StringKey("body"))
	inner, _ := ordered(t, body).Get(value.StringKey("inner"))
	assert.Equal(t, []any{int64(1)}, inner)

	word, _ := m.Get(value.StringKey("word"))
	assert.Equal(t, "hello", word)
	n, _ := m.Get(value.StringKey("n"))
	assert.Equal(t, "42", n)

	typed := RecursiveDecode(map[string]string{"cfg": "a: 1"}, WithMode(Plain))
	assert.Equal(t, map[string]any{"cfg": map[string]any{"a": int64(1)}}, typed)

	_, ok := TryDecode("")
	assert.False(t, ok)
}

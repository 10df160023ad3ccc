// Package loader parses structured documents (JSON, NDJSON, YAML, TOML and
// JWT) into values ready for dumping. In the default ordered mode mappings
// become *value.OrderedMap so keys render in document order; plain mode
// produces map[string]any trees for expression evaluation.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Mode selects the representation of decoded mappings.
type Mode int

const (
	// Ordered decodes mappings into *value.OrderedMap.
	Ordered Mode = iota
	// Plain decodes mappings into map[string]any.
	Plain
)

func (m Mode) String() string {
	if m == Plain {
		return "plain"
	}
	return "ordered"
}

// Option configures a load.
type Option func(*options)

type options struct {
	mode Mode
}

// WithMode selects how mappings are represented.
func WithMode(m Mode) Option {
	return func(o *options) {
		o.mode = m
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ErrEmptyInput is returned when there is nothing to parse.
var ErrEmptyInput = errors.New("empty input")

var (
	// TOML section headers: [server], [[items]], ["table name"], [a."b.c"].
	// JSON arrays like [1, 2, 3] do not match.
	tomlSection = regexp.MustCompile(`^\s*\[{1,2}(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\]{1,2}\s*$`)
	// TOML key = value, as opposed to YAML key: value.
	tomlKeyValue = regexp.MustCompile(`^\s*(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\s*=\s*.+$`)
)

// LoadData parses input into its documents, auto-detecting the format.
// Single-document inputs yield one element.
func LoadData(input string, opts ...Option) ([]any, error) {
	o := newOptions(opts)
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyInput
	}

	if IsJWT(input) {
		doc, err := decodeJWT(input, o.mode)
		if err != nil {
			return nil, err
		}
		return []any{doc}, nil
	}
	if strings.Contains(input, "\n---") || strings.HasPrefix(input, "---") {
		return loadMultiDocYAML(input, o.mode)
	}
	if lines := strings.Split(input, "\n"); len(lines) > 1 && isLikelyNDJSON(lines) {
		return loadNDJSON(lines, o.mode)
	}
	// TOML before JSON: "[server]" would otherwise look like an array.
	if isLikelyTOML(input) {
		return loadTOML(input)
	}
	doc, err := loadYAML(input, o.mode)
	if err != nil {
		return nil, err
	}
	return []any{doc}, nil
}

// LoadRoot parses input into a single root. Multi-document inputs are
// returned as a slice of documents.
func LoadRoot(input string, opts ...Option) (any, error) {
	docs, err := LoadData(input, opts...)
	if err != nil {
		return nil, err
	}
	if len(docs) == 1 {
		return docs[0], nil
	}
	return docs, nil
}

// LoadReader reads r to the end and parses it with LoadRoot.
func LoadReader(r io.Reader, opts ...Option) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return LoadRoot(string(data), opts...)
}

// LoadFile reads the file at path and parses it with LoadRoot.
func LoadFile(path string, opts ...Option) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	root, err := LoadRoot(string(data), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}

// loadYAML parses a single YAML or JSON document.
func loadYAML(input string, mode Mode) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(input), &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return fromNode(&doc, mode)
}

// loadMultiDocYAML parses documents separated by ---, skipping empty ones.
func loadMultiDocYAML(input string, mode Mode) ([]any, error) {
	var docs []any
	decoder := yaml.NewDecoder(strings.NewReader(input))
	for {
		var node yaml.Node
		if err := decoder.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("invalid multi-document YAML: %w", err)
		}
		doc, err := fromNode(&node, mode)
		if err != nil {
			return nil, err
		}
		if doc != nil {
			docs = append(docs, doc)
		}
	}
	if len(docs) == 0 {
		return nil, errors.New("no documents found in multi-document YAML")
	}
	return docs, nil
}

// loadNDJSON parses one JSON value per line. Lines that do not parse are
// kept as plain strings.
func loadNDJSON(lines []string, mode Mode) ([]any, error) {
	docs := make([]any, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		doc, err := loadYAML(line, mode)
		if err != nil {
			docs = append(docs, line)
			continue
		}
		docs = append(docs, doc)
	}
	if len(docs) == 0 {
		return nil, errors.New("no data found in input")
	}
	return docs, nil
}

// isLikelyNDJSON requires several non-empty lines, most of which open a JSON
// object or array. Bare YAML list items do not count.
func isLikelyNDJSON(lines []string) bool {
	jsonCount, nonEmpty := 0, 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		nonEmpty++
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			jsonCount++
		}
	}
	return nonEmpty > 1 && jsonCount > nonEmpty/2
}

// isLikelyTOML looks for section headers or a majority of key = value lines.
func isLikelyTOML(input string) bool {
	sections, pairs, nonEmpty := 0, 0, 0
	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		nonEmpty++
		if tomlSection.MatchString(line) {
			sections++
		}
		if tomlKeyValue.MatchString(line) {
			pairs++
		}
	}
	return sections > 0 || (nonEmpty > 0 && pairs > nonEmpty/2)
}

// loadTOML decodes TOML into map[string]any; key order is not preserved.
func loadTOML(input string) ([]any, error) {
	var doc map[string]any
	if err := toml.Unmarshal([]byte(input), &doc); err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}
	return []any{doc}, nil
}

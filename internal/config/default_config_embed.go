package config

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

var (
	embeddedConfigOnce sync.Once
	embeddedConfig     File
	embeddedConfigErr  error
)

// DefaultConfigYAML returns a copy of the embedded default config YAML bytes.
func DefaultConfigYAML() []byte {
	return append([]byte(nil), embeddedDefaultConfig...)
}

// EmbeddedDefault parses and returns the embedded default configuration.
func EmbeddedDefault() (File, error) {
	embeddedConfigOnce.Do(func() {
		embeddedConfig, embeddedConfigErr = Parse(embeddedDefaultConfig)
		if embeddedConfigErr != nil {
			embeddedConfigErr = fmt.Errorf("decode embedded default config: %w", embeddedConfigErr)
		}
	})
	return embeddedConfig.clone(), embeddedConfigErr
}

// Parse decodes a configuration document. Unknown keys are ignored.
func Parse(data []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, err
	}
	if f.Palettes == nil {
		f.Palettes = map[string]PaletteConfig{}
	}
	return f, nil
}

func (f File) clone() File {
	out := f
	out.Palettes = make(map[string]PaletteConfig, len(f.Palettes))
	for k, v := range f.Palettes {
		out.Palettes[k] = v
	}
	return out
}

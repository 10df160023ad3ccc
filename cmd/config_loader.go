package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/vardump/internal/config"
	"github.com/oakwood-commons/vardump/pkg/settings"
)

// configLoader centralizes config loading so tests can swap the source.
type configLoader struct {
	load func(path string) (config.File, error)
}

var cfgLoader = configLoader{load: config.Load}

func loadMergedConfig(cfgPath string) (config.File, error) {
	return cfgLoader.loadMergedConfig(cfgPath)
}

func (l configLoader) loadMergedConfig(cfgPath string) (config.File, error) {
	cfg, err := l.load(cfgPath)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// resolveConfigPath returns the explicit path if set, otherwise
// $XDG_CONFIG_HOME/vardump/config.yaml or ~/.config/vardump/config.yaml when
// that file exists.
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	candidate := ""
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidate = filepath.Join(xdg, settings.CliBinaryName, "config.yaml")
	} else if home, err := os.UserHomeDir(); err == nil {
		candidate = filepath.Join(home, ".config", settings.CliBinaryName, "config.yaml")
	}
	if candidate != "" {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}

func marshalConfig(cfg config.File) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func newConfigCmd(flags *rootFlags) *cobra.Command {
	var defaults bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the merged configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if defaults {
				_, err := cmd.OutOrStdout().Write(config.DefaultConfigYAML())
				return err
			}
			cfg, err := loadMergedConfig(resolveConfigPath(flags.configFile))
			if err != nil {
				return err
			}
			data, err := marshalConfig(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&defaults, "default", false, "print the built-in defaults instead")
	return cmd
}

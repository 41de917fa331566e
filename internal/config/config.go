// Package config loads the optional .chunnel.yaml configuration file and
// merges it with environment variables. Flags are merged by the caller and
// always win; the precedence is flags > environment > file > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// AppConfig is the resolved application configuration.
type AppConfig struct {
	Format                string `yaml:"format"`
	Theme                 string `yaml:"theme"`
	NoColor               bool   `yaml:"no_color"`
	AdvisoryInconsistency bool   `yaml:"advisory_inconsistency"`
	Workers               int    `yaml:"workers"`
	Debug                 bool   `yaml:"debug"`
}

const (
	// DefaultFormat auto-selects terminal on a TTY, plain otherwise.
	DefaultFormat = "auto"
	// DefaultTheme is the theme used when none is configured.
	DefaultTheme = "default"
)

// Load reads .chunnel.yaml from the current directory, then from the user
// config dir. A missing file is fine; a malformed one is a warning, not an
// error; defaults win.
func Load() *AppConfig {
	cfg := &AppConfig{
		Format: DefaultFormat,
		Theme:  DefaultTheme,
	}

	if path := configPath(); path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				fmt.Fprintf(os.Stderr, "chunnel: warning: ignoring malformed config %s: %v\n", path, err)
				cfg = &AppConfig{Format: DefaultFormat, Theme: DefaultTheme}
			}
		} else if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "chunnel: warning: cannot read config %s: %v\n", path, err)
		}
	}

	applyEnv(cfg)

	if cfg.Format == "" {
		cfg.Format = DefaultFormat
	}
	if cfg.Theme == "" {
		cfg.Theme = DefaultTheme
	}
	return cfg
}

// configPath tries the local directory first, then the XDG user config dir.
func configPath() string {
	local := ".chunnel.yaml"
	if _, err := os.Stat(local); err == nil {
		return local
	}

	configHome, err := os.UserConfigDir()
	if err != nil || configHome == "" || configHome == "/" {
		return ""
	}
	xdg := filepath.Join(configHome, "chunnel", ".chunnel.yaml")
	if _, err := os.Stat(xdg); err == nil {
		return xdg
	}
	return ""
}

func applyEnv(cfg *AppConfig) {
	if os.Getenv("NO_COLOR") != "" {
		cfg.NoColor = true
	}
	if v := os.Getenv("CI"); v != "" {
		if ci, err := strconv.ParseBool(v); err == nil && ci {
			// CI logs want the deterministic plain format unless the user
			// pinned one.
			if cfg.Format == DefaultFormat {
				cfg.Format = "plain"
			}
			cfg.NoColor = true
		}
	}
	if os.Getenv("CHUNNEL_DEBUG") != "" {
		cfg.Debug = true
	}
}

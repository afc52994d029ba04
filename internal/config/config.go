// Package config provides configuration for the openpages binary.
// Loads from: CLI flags > env vars > openpages.toml > built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ConfigFileName is the TOML file looked up at the site root.
const ConfigFileName = "openpages.toml"

// Config holds all openpages settings.
type Config struct {
	Papers PapersConfig `toml:"papers"`
	Output OutputConfig `toml:"output"`
	Server ServerConfig `toml:"server"`
}

// PapersConfig locates and filters the markdown paper sources.
type PapersConfig struct {
	Dir      string   `toml:"dir"`
	Archive  string   `toml:"archive"` // optional tar bundle instead of a directory
	SkipDirs []string `toml:"skip_dirs"`
}

// OutputConfig controls where the site JSON artifacts are written.
type OutputConfig struct {
	Dir string `toml:"dir"`
}

// ServerConfig holds the local API server settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns a Config with all built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Papers: PapersConfig{Dir: "papers"},
		Output: OutputConfig{Dir: "content"},
		Server: ServerConfig{Addr: "127.0.0.1:8787"},
	}
}

// Load merges configuration sources: defaults < TOML file < env vars.
// An empty path means "discover openpages.toml in the working directory";
// a missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		meta, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		warnUnknownKeys(meta, path)
	}

	if v := os.Getenv("OPENPAGES_PAPERS_DIR"); v != "" {
		cfg.Papers.Dir = v
	}
	if v := os.Getenv("OPENPAGES_ARCHIVE"); v != "" {
		cfg.Papers.Archive = v
	}
	if v := os.Getenv("OPENPAGES_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("OPENPAGES_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("OPENPAGES_SKIP_DIRS"); v != "" {
		for _, d := range strings.Split(v, ",") {
			d = strings.TrimSpace(d)
			if d != "" {
				cfg.Papers.SkipDirs = append(cfg.Papers.SkipDirs, d)
			}
		}
	}

	return cfg, nil
}

// SkipDirSet merges the configured skip list into a lookup set for the
// directory source.
func (c *Config) SkipDirSet(defaults map[string]bool) map[string]bool {
	set := make(map[string]bool, len(defaults)+len(c.Papers.SkipDirs))
	for d := range defaults {
		set[d] = true
	}
	for _, d := range c.Papers.SkipDirs {
		set[d] = true
	}
	return set
}

// findConfigFile looks for openpages.toml in the current working directory.
func findConfigFile() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	p := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}

func warnUnknownKeys(meta toml.MetaData, path string) {
	for _, key := range meta.Undecoded() {
		fmt.Fprintf(os.Stderr, "  [WARN] %s: unknown config key %q\n", path, key.String())
	}
}

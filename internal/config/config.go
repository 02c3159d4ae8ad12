package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

const (
	defaultLibraryDir     = "~/.local/share/chartkit/library"
	defaultExportDir      = "~/.local/share/chartkit/export"
	defaultLogLevel       = "info"
	defaultLogFormat      = "console"
	defaultRuleset        = "classic"
	defaultConfigLocation = "~/.config/chartkit/config.toml"
)

// Paths contains directory configuration.
type Paths struct {
	LibraryDir string `toml:"library_dir"`
	ExportDir  string `toml:"export_dir"`
}

// Logging contains logger configuration.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Conversion contains pipeline defaults.
type Conversion struct {
	DefaultRuleset string `toml:"default_ruleset"`
}

// Config is the root configuration structure.
type Config struct {
	Paths      Paths      `toml:"paths"`
	Logging    Logging    `toml:"logging"`
	Conversion Conversion `toml:"conversion"`
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir: defaultLibraryDir,
			ExportDir:  defaultExportDir,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Conversion: Conversion{
			DefaultRuleset: defaultRuleset,
		},
	}
}

// DefaultPath returns the expanded default config file location.
func DefaultPath() string {
	return expandPath(defaultConfigLocation)
}

// Load reads the config at path, layering it over defaults. An empty path
// falls back to the default location; a missing file yields pure defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	target := strings.TrimSpace(path)
	if target == "" {
		target = defaultConfigLocation
	}
	target = expandPath(target)

	data, err := os.ReadFile(target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && strings.TrimSpace(path) == "" {
			cfg.normalize()
			return &cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", target, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", target, err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// WriteSample writes the commented sample configuration to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	target := expandPath(path)
	if _, err := os.Stat(target); err == nil {
		return fmt.Errorf("config already exists at %s", target)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("ensure config dir: %w", err)
	}
	if err := os.WriteFile(target, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.LibraryDir) == "" {
		return errors.New("config: library_dir must not be empty")
	}
	if strings.TrimSpace(c.Paths.ExportDir) == "" {
		return errors.New("config: export_dir must not be empty")
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "console", "json":
	default:
		return fmt.Errorf("config: unsupported log format %q", c.Logging.Format)
	}
	return nil
}

// EnsureDirectories creates the configured directories if missing.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.LibraryDir, c.Paths.ExportDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure directory %s: %w", dir, err)
		}
	}
	return nil
}

func (c *Config) normalize() {
	c.Paths.LibraryDir = expandPath(c.Paths.LibraryDir)
	c.Paths.ExportDir = expandPath(c.Paths.ExportDir)
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.Format) == "" {
		c.Logging.Format = defaultLogFormat
	}
	if strings.TrimSpace(c.Conversion.DefaultRuleset) == "" {
		c.Conversion.DefaultRuleset = defaultRuleset
	}
}

func expandPath(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			if trimmed == "~" {
				return home
			}
			return filepath.Join(home, trimmed[2:])
		}
	}
	return trimmed
}

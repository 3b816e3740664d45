package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

// Config is the in-memory representation of ~/.sememe/sememe.yaml.
// Environment variables override the file; tags carry the defaults.
type Config struct {
	DataDir string       `yaml:"data_dir" env:"SEMEME_DATA_DIR"`
	Log     LogConfig    `yaml:"log"`
	Search  SearchConfig `yaml:"search"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"SEMEME_LOG_LEVEL"  env-default:"warn"`
	Format string `yaml:"format" env:"SEMEME_LOG_FORMAT" env-default:"text"`
}

// SearchConfig holds nearest-neighbour search settings.
type SearchConfig struct {
	K       int `yaml:"k"        env:"SEMEME_K"       env-default:"10"`
	Workers int `yaml:"workers"  env:"SEMEME_WORKERS" env-default:"0"`
	MinNo   int `yaml:"min_no"   env:"SEMEME_MIN_NO"  env-default:"0"`
}

// SememeDir returns the absolute path to ~/.sememe/.
func SememeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".sememe"), nil
}

// ConfigPath returns the config file path. SEMEME_CONFIG overrides
// ~/.sememe/sememe.yaml.
func ConfigPath() (string, error) {
	if p := os.Getenv("SEMEME_CONFIG"); p != "" {
		return ExpandPath(p)
	}
	dir, err := SememeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sememe.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// DefaultConfig returns the Config written by sememe init.
func DefaultConfig() (*Config, error) {
	dir, err := SememeDir()
	if err != nil {
		return nil, err
	}
	return &Config{
		DataDir: filepath.Join(dir, "data"),
		Log:     LogConfig{Level: "warn", Format: "text"},
		Search:  SearchConfig{K: 10},
	}, nil
}

// Load reads the config file and the environment.
// Priority: process env > ~/.sememe/.env > YAML > defaults.
// A missing file is not an error; env and defaults are used alone.
func Load() (*Config, error) {
	if err := applyDotEnv(); err != nil {
		return nil, err
	}
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, statErr := os.Stat(path); statErr == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("cannot read config %s: %w", path, err)
		}
	} else if errors.Is(statErr, os.ErrNotExist) {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("cannot read config from env: %w", err)
		}
	} else {
		return nil, fmt.Errorf("cannot stat config %s: %w", path, statErr)
	}

	if cfg.DataDir == "" {
		dir, err := SememeDir()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = filepath.Join(dir, "data")
	}
	cfg.DataDir, err = ExpandPath(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Search.K < 0 {
		return fmt.Errorf("search.k must be >= 0 (got %d)", c.Search.K)
	}
	if c.Search.Workers < 0 {
		return fmt.Errorf("search.workers must be >= 0 (got %d)", c.Search.Workers)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json (got %q)", c.Log.Format)
	}
	return nil
}

// Save marshals cfg and writes it to the config path.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}

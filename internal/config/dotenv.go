package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// DotEnvPath returns the absolute path to ~/.sememe/.env.
func DotEnvPath() (string, error) {
	dir, err := SememeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".env"), nil
}

// LoadDotEnv reads ~/.sememe/.env. A missing file yields an empty map.
func LoadDotEnv() (map[string]string, error) {
	p, err := DotEnvPath()
	if err != nil {
		return nil, err
	}
	m, err := godotenv.Read(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("cannot read dotenv file %s: %w", p, err)
	}
	return m, nil
}

// applyDotEnv exports dotenv values that the process environment does not
// already set, so cleanenv sees them.
func applyDotEnv() error {
	dotenv, err := LoadDotEnv()
	if err != nil {
		return err
	}
	for k, v := range dotenv {
		if v == "" {
			continue
		}
		if _, set := os.LookupEnv(k); set {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return fmt.Errorf("cannot export %s: %w", k, err)
		}
	}
	return nil
}

// EnsureDotEnvTemplate creates ~/.sememe/.env if it does not already exist.
//
// The template lists the environment overrides with empty values.
func EnsureDotEnvTemplate() error {
	p, err := DotEnvPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(p); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("cannot stat dotenv file %s: %w", p, err)
	}

	body := "" +
		"SEMEME_DATA_DIR=\n" +
		"SEMEME_LOG_LEVEL=\n" +
		"SEMEME_LOG_FORMAT=\n" +
		"SEMEME_WORKERS=\n"

	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		return fmt.Errorf("cannot write dotenv template %s: %w", p, err)
	}
	return nil
}

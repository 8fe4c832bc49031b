// Package config reads and writes the optional pmpo config file that
// holds site defaults for the statistics thresholds.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sunflower6069/pmpo/pkg/stats"
)

const (
	configFileName = "config.yaml"
	dirMode        = 0700
	fileMode       = 0600
)

// Config holds the defaults applied to every train run unless
// overridden by flags.
type Config struct {
	MinSamples int     `yaml:"min_samples"`
	PCutoff    float64 `yaml:"p_cutoff"`
	QCutoff    float64 `yaml:"q_cutoff"`
	R2Cutoff   float64 `yaml:"r2_cutoff"`
	Format     string  `yaml:"format"`
}

// Default returns the built-in thresholds.
func Default() *Config {
	return &Config{
		MinSamples: stats.MinSamplesDefault,
		PCutoff:    stats.PCutoffDefault,
		QCutoff:    stats.QCutoffDefault,
		R2Cutoff:   stats.R2CutoffDefault,
		Format:     "json",
	}
}

// Save writes the config file into the given directory.
func Save(dirPath string, c *Config) error {
	if dirPath == "" {
		return errors.New("config directory required")
	}
	if c == nil {
		return errors.New("config required")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	path := filepath.Join(dirPath, configFileName)
	if err := os.WriteFile(path, b, fileMode); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}

// ReadOrCreate reads the config from a directory, creating the
// directory and a default config file when absent.
func ReadOrCreate(dirPath string) (*Config, error) {
	if dirPath == "" {
		return nil, errors.New("config directory required")
	}

	if _, err := os.Stat(dirPath); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(dirPath, dirMode); err != nil {
			return nil, fmt.Errorf("creating dir %s: %w", dirPath, err)
		}
	}

	path := filepath.Join(dirPath, configFileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		slog.Debug("creating default config", "path", path)
		if err := Save(dirPath, Default()); err != nil {
			return nil, fmt.Errorf("creating default config: %w", err)
		}
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("unmarshaling config file %s: %w", path, err)
	}
	return &c, nil
}

// HomeDir returns the pmpo home directory, creating it when missing.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting user home dir: %w", err)
	}

	dir := filepath.Join(home, ".pmpo")
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		slog.Debug("creating dir", "path", dir)
		if err := os.Mkdir(dir, dirMode); err != nil {
			return "", fmt.Errorf("creating dir %s: %w", dir, err)
		}
	}
	return dir, nil
}

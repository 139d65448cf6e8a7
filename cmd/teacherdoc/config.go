package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zero750810/teacherdoc/pkg/records"
	"github.com/zero750810/teacherdoc/pkg/teacherdoc"
)

// fileConfig is the YAML configuration file.
type fileConfig struct {
	Engine teacherdoc.Config `yaml:"engine"`
	Store  records.Config    `yaml:"store"`
	// ImageDir is where imported image file names are resolved.
	ImageDir string `yaml:"image_dir"`
}

func defaultFileConfig() *fileConfig {
	return &fileConfig{
		Engine:   *teacherdoc.DefaultConfig(),
		ImageDir: "images",
	}
}

// loadConfig reads the YAML file at path over the defaults, then applies
// TEACHERDOC_* environment overrides. An empty path skips the file.
func loadConfig(path string) (*fileConfig, error) {
	cfg := defaultFileConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.Engine = *teacherdoc.NewConfigWithDefaults(teacherdoc.ApplyEnvironment(&cfg.Engine))
	if err := cfg.Engine.Validate(); err != nil {
		return nil, err
	}
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = records.DefaultConfig().Driver
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = records.DefaultConfig().Path
		if cfg.Store.Driver == "sqlite" {
			cfg.Store.Path = "teacherdoc.db"
		}
	}
	return cfg, nil
}

// Package config loads collectctl settings from defaults, an optional YAML
// file, an optional .env file and COLLECT_* environment variables, in that
// order of precedence (later wins).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	collect "github.com/skovsen/D2D_CollectLogic"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "collect.yaml"

type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Canvas    CanvasConfig    `yaml:"canvas"`
	Store     StoreConfig     `yaml:"store"`
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
}

type GeneratorConfig struct {
	MaxBatches int `yaml:"max_batches"`
	MaxDraws   int `yaml:"max_draws"`
}

type CanvasConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type StoreConfig struct {
	Kind string `yaml:"kind"`
	Path string `yaml:"path"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Generator: GeneratorConfig{
			MaxBatches: collect.DefaultGeneratorOptions.MaxBatches,
			MaxDraws:   collect.DefaultGeneratorOptions.MaxDraws,
		},
		Canvas: CanvasConfig{
			Width:  collect.DefaultCanvas.Width,
			Height: collect.DefaultCanvas.Height,
		},
		Store:  StoreConfig{Kind: "memory", Path: "collect.db"},
		Server: ServerConfig{Addr: ":8080"},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads path (a missing DefaultPath is not an error), then .env, then
// the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	ints := []struct {
		key string
		dst *int
	}{
		{"COLLECT_MAX_BATCHES", &c.Generator.MaxBatches},
		{"COLLECT_MAX_DRAWS", &c.Generator.MaxDraws},
		{"COLLECT_CANVAS_WIDTH", &c.Canvas.Width},
		{"COLLECT_CANVAS_HEIGHT", &c.Canvas.Height},
	}
	for _, e := range ints {
		v, ok := os.LookupEnv(e.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %q is not an integer", e.key, v)
		}
		*e.dst = n
	}

	strs := []struct {
		key string
		dst *string
	}{
		{"COLLECT_STORE", &c.Store.Kind},
		{"COLLECT_DB_PATH", &c.Store.Path},
		{"COLLECT_ADDR", &c.Server.Addr},
		{"COLLECT_LOG_LEVEL", &c.Log.Level},
	}
	for _, e := range strs {
		if v, ok := os.LookupEnv(e.key); ok {
			*e.dst = v
		}
	}
	return nil
}

// Validate rejects settings the library cannot run with.
func (c Config) Validate() error {
	if c.Generator.MaxBatches <= 0 || c.Generator.MaxDraws <= 0 {
		return fmt.Errorf("generator budgets must be positive, got %d/%d", c.Generator.MaxBatches, c.Generator.MaxDraws)
	}
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height)
	}
	return nil
}

// GeneratorOptions converts the generator section.
func (c Config) GeneratorOptions() collect.GeneratorOptions {
	return collect.GeneratorOptions{MaxBatches: c.Generator.MaxBatches, MaxDraws: c.Generator.MaxDraws}
}

// CanvasSize converts the canvas section.
func (c Config) CanvasSize() collect.Canvas {
	return collect.Canvas{Width: c.Canvas.Width, Height: c.Canvas.Height}
}

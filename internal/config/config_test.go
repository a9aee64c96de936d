package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoadYAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "collect.yaml")
	data := []byte("canvas:\n  width: 400\n  height: 300\nstore:\n  kind: sqlite\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("COLLECT_CANVAS_HEIGHT", "500")
	t.Setenv("COLLECT_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Canvas.Width != 400 || cfg.Canvas.Height != 500 {
		t.Fatalf("canvas = %+v", cfg.Canvas)
	}
	if cfg.Store.Kind != "sqlite" || cfg.Log.Level != "debug" {
		t.Fatalf("store=%q log=%q", cfg.Store.Kind, cfg.Log.Level)
	}
	if cfg.GeneratorOptions().MaxBatches != Default().Generator.MaxBatches {
		t.Fatal("generator budget lost")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("COLLECT_ADDR=:9999\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("COLLECT_ADDR") })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":9999" {
		t.Fatalf("addr = %q", cfg.Server.Addr)
	}
}

func TestLoadRejectsBadEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("COLLECT_MAX_DRAWS", "lots")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for non-integer budget")
	}

	t.Setenv("COLLECT_MAX_DRAWS", "0")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for zero budget")
	}
}

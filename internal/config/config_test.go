package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Plot.Preset != "ripple" {
		t.Errorf("expected preset 'ripple', got %s", cfg.Plot.Preset)
	}
	if cfg.Plot.GridSize != 48 {
		t.Errorf("expected grid size 48, got %d", cfg.Plot.GridSize)
	}
	if cfg.Plot.MinX != -1 || cfg.Plot.MaxX != 1 {
		t.Errorf("expected x domain [-1,1], got [%v,%v]", cfg.Plot.MinX, cfg.Plot.MaxX)
	}
	if !cfg.Plot.AutoScaleZ {
		t.Error("expected auto_scale_z to be true by default")
	}

	if cfg.Display.Mode != "phong" {
		t.Errorf("expected mode 'phong', got %s", cfg.Display.Mode)
	}
	if cfg.Display.FPS != 30 {
		t.Errorf("expected fps 30, got %d", cfg.Display.FPS)
	}
	if !cfg.Display.ShowAxes {
		t.Error("expected show_axes to be true by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
plot:
  preset: saddle
  grid_size: 16
  min_x: -3
  max_x: 3

display:
  mode: wire
  fps: 60
  spin: true

logging:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Plot.Preset != "saddle" {
		t.Errorf("expected preset 'saddle', got %s", cfg.Plot.Preset)
	}
	if cfg.Plot.GridSize != 16 {
		t.Errorf("expected grid size 16, got %d", cfg.Plot.GridSize)
	}
	if cfg.Plot.MinX != -3 || cfg.Plot.MaxX != 3 {
		t.Errorf("expected x domain [-3,3], got [%v,%v]", cfg.Plot.MinX, cfg.Plot.MaxX)
	}
	// Unset file values keep their defaults.
	if cfg.Plot.MinY != -1 || cfg.Plot.MaxY != 1 {
		t.Errorf("expected default y domain, got [%v,%v]", cfg.Plot.MinY, cfg.Plot.MaxY)
	}
	if cfg.Display.Mode != "wire" {
		t.Errorf("expected mode 'wire', got %s", cfg.Display.Mode)
	}
	if cfg.Display.FPS != 60 {
		t.Errorf("expected fps 60, got %d", cfg.Display.FPS)
	}
	if !cfg.Display.Spin {
		t.Error("expected spin to be true from file")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for an explicit missing path")
	}
}

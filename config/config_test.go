package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Display.Width != 320 || cfg.Display.Height != 240 {
		t.Errorf("Default() display = %dx%d, expected 320x240", cfg.Display.Width, cfg.Display.Height)
	}
	if cfg.Font.SizePx != 28 {
		t.Errorf("Default() font size = %d, expected 28", cfg.Font.SizePx)
	}
	if got := cfg.Scroll.FrameInterval(); got != 30*time.Millisecond {
		t.Errorf("Default() frame interval = %v, expected 30ms", got)
	}
	if got := cfg.Scroll.LoopPause(); got != time.Second {
		t.Errorf("Default() loop pause = %v, expected 1s", got)
	}
	if err := cfg.validate(); err != nil {
		t.Errorf("Default() does not validate: %v", err)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Error("Load(\"\") did not return the defaults")
	}
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("http:\n  addr: \":9090\"\nfont:\n  size_px: 36\nscroll:\n  step_px: 3\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.HTTP.Addr != ":9090" {
		t.Errorf("addr = %q, expected :9090", cfg.HTTP.Addr)
	}
	if cfg.Font.SizePx != 36 {
		t.Errorf("font size = %d, expected 36", cfg.Font.SizePx)
	}
	if cfg.Scroll.StepPx != 3 {
		t.Errorf("scroll step = %d, expected 3", cfg.Scroll.StepPx)
	}
	// Untouched sections keep their defaults.
	if cfg.Display.Width != 320 {
		t.Errorf("display width = %d, expected default 320", cfg.Display.Width)
	}
	if cfg.Scroll.FrameIntervalMs != 30 {
		t.Errorf("frame interval = %dms, expected default 30ms", cfg.Scroll.FrameIntervalMs)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() with a missing file did not error")
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed", "http: ["},
		{"zero width", "display:\n  width: 0\n"},
		{"negative font", "font:\n  size_px: -1\n"},
		{"zero step", "scroll:\n  step_px: 0\n"},
		{"zero interval", "scroll:\n  frame_interval_ms: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load() accepted invalid config")
			}
		})
	}
}

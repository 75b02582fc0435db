// Package config loads the lcd-remote service configuration.
//
// Configuration is a YAML file layered over built-in defaults that match
// the Waveshare 2-inch LCD wiring and the tuned marquee constants, so the
// service runs with no file at all.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full service configuration.
type Config struct {
	HTTP    HTTP    `yaml:"http"`
	Display Display `yaml:"display"`
	Font    Font    `yaml:"font"`
	Scroll  Scroll  `yaml:"scroll"`
}

// HTTP configures the submission endpoint.
type HTTP struct {
	Addr string `yaml:"addr"`
}

// Display configures the panel geometry and wiring (BCM pin names).
type Display struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Rotation int    `yaml:"rotation"`
	BGR      bool   `yaml:"bgr"`
	SPI      string `yaml:"spi"`    // SPI bus name, empty for the default bus
	SPIHz    int    `yaml:"spi_hz"` // SPI clock in Hz
	DC       string `yaml:"dc"`
	RST      string `yaml:"rst"`
	BL       string `yaml:"bl"`
}

// Font configures text layout.
type Font struct {
	SizePx        int      `yaml:"size_px"`
	LineSpacingPx int      `yaml:"line_spacing_px"`
	MarginPx      int      `yaml:"margin_px"`
	Paths         []string `yaml:"paths"`     // system TTFs tried in order; empty for defaults
	EmojiDir      string   `yaml:"emoji_dir"` // directory of Noto emoji PNGs
}

// Scroll configures the animation.
type Scroll struct {
	StepPx          int `yaml:"step_px"`
	FrameIntervalMs int `yaml:"frame_interval_ms"`
	LoopPauseMs     int `yaml:"loop_pause_ms"`
	PaddingPx       int `yaml:"padding_px"` // off-screen distance before the roll repeats
}

// FrameInterval returns the frame interval as a duration.
func (s Scroll) FrameInterval() time.Duration {
	return time.Duration(s.FrameIntervalMs) * time.Millisecond
}

// LoopPause returns the wrap-around pause as a duration.
func (s Scroll) LoopPause() time.Duration {
	return time.Duration(s.LoopPauseMs) * time.Millisecond
}

// Default returns the configuration for a stock Waveshare 2-inch setup.
func Default() Config {
	return Config{
		HTTP: HTTP{Addr: ":8000"},
		Display: Display{
			Width:    320,
			Height:   240,
			Rotation: 90,
			BGR:      true,
			SPIHz:    40000000,
			DC:       "GPIO25",
			RST:      "GPIO27",
			BL:       "GPIO18",
		},
		Font: Font{
			SizePx:        28,
			LineSpacingPx: 6,
			MarginPx:      10,
			EmojiDir:      "/usr/share/fonts/truetype/noto/png",
		},
		Scroll: Scroll{
			StepPx:          2,
			FrameIntervalMs: 30,
			LoopPauseMs:     1000,
			PaddingPx:       240,
		},
	}
}

// Load reads path and overlays it on the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("config: display dimensions must be positive, got %dx%d", c.Display.Width, c.Display.Height)
	}
	if c.Font.SizePx <= 0 {
		return fmt.Errorf("config: font size must be positive, got %d", c.Font.SizePx)
	}
	if c.Scroll.StepPx <= 0 {
		return fmt.Errorf("config: scroll step must be positive, got %d", c.Scroll.StepPx)
	}
	if c.Scroll.FrameIntervalMs <= 0 {
		return fmt.Errorf("config: frame interval must be positive, got %dms", c.Scroll.FrameIntervalMs)
	}
	return nil
}

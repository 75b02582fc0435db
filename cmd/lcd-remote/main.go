// Command lcd-remote scrolls submitted text across a Waveshare 2-inch
// ST7789 LCD, fed by a small HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/zwing99/lcd-remote-app/config"
	"github.com/zwing99/lcd-remote-app/marquee"
	"github.com/zwing99/lcd-remote-app/marquee/fontset"
	"github.com/zwing99/lcd-remote-app/server"
	"github.com/zwing99/lcd-remote-app/st7789"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "path to YAML config file")
	addr := pflag.String("addr", "", "HTTP listen address (overrides config)")
	verbose := pflag.BoolP("verbose", "v", false, "enable debug logging")
	pflag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	if err := run(*configPath, *addr, log); err != nil {
		log.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(configPath, addrOverride string, log *slog.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addrOverride != "" {
		cfg.HTTP.Addr = addrOverride
	}

	dev, port, err := openDisplay(cfg.Display)
	if err != nil {
		return err
	}
	defer port.Close()

	fonts := fontset.Load(log, cfg.Font.Paths...)
	var emoji marquee.EmojiSource
	if src, err := fontset.OpenEmojiDir(cfg.Font.EmojiDir); err != nil {
		log.Warn("emoji disabled", "dir", cfg.Font.EmojiDir, "err", err)
	} else {
		emoji = src
	}

	mgr := marquee.NewManager(&panelSink{dev: dev}, fonts.Face(cfg.Font.SizePx), emoji, marquee.Options{
		Width:         cfg.Display.Width,
		Height:        cfg.Display.Height,
		FontSize:      cfg.Font.SizePx,
		LineSpacing:   cfg.Font.LineSpacingPx,
		Margin:        cfg.Font.MarginPx,
		StepPx:        cfg.Scroll.StepPx,
		FrameInterval: cfg.Scroll.FrameInterval(),
		LoopPause:     cfg.Scroll.LoopPause(),
		ScrollPadding: cfg.Scroll.PaddingPx,
	}, log)

	if err := mgr.ShowStatus("Ready\n"+cfg.HTTP.Addr, color.White, color.Black); err != nil {
		log.Warn("startup banner failed", "err", err)
	}

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: server.New(mgr, log),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errC := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.HTTP.Addr)
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case err := <-errC:
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", "err", err)
	}

	mgr.Stop()
	return dev.Halt()
}

// openDisplay brings up the periph host, opens the SPI bus and the control
// pins, and initializes the panel.
func openDisplay(dc config.Display) (*st7789.Dev, spi.PortCloser, error) {
	if _, err := host.Init(); err != nil {
		return nil, nil, fmt.Errorf("host init: %w", err)
	}

	port, err := spireg.Open(dc.SPI)
	if err != nil {
		return nil, nil, fmt.Errorf("open SPI %q: %w", dc.SPI, err)
	}

	dcPin := gpioreg.ByName(dc.DC)
	if dcPin == nil {
		port.Close()
		return nil, nil, fmt.Errorf("no such pin %q", dc.DC)
	}

	opts := &st7789.Opts{
		W:        dc.Width,
		H:        dc.Height,
		Rotation: dc.Rotation,
		BGR:      dc.BGR,
		Freq:     physic.Frequency(dc.SPIHz) * physic.Hertz,
	}
	if dc.RST != "" {
		if opts.RST = gpioreg.ByName(dc.RST); opts.RST == nil {
			port.Close()
			return nil, nil, fmt.Errorf("no such pin %q", dc.RST)
		}
	}
	if dc.BL != "" {
		if opts.Backlight = gpioreg.ByName(dc.BL); opts.Backlight == nil {
			port.Close()
			return nil, nil, fmt.Errorf("no such pin %q", dc.BL)
		}
	}

	dev, err := st7789.NewSPI(port, dcPin, opts)
	if err != nil {
		port.Close()
		return nil, nil, err
	}
	return dev, port, nil
}

// panelSink adapts the panel to the frame sink the session manager drives.
type panelSink struct {
	dev *st7789.Dev
}

func (p *panelSink) Present(img image.Image) error {
	return p.dev.Draw(p.dev.Bounds(), img, image.Point{})
}

func (p *panelSink) Clear(c color.Color) error {
	return p.dev.Fill(c)
}

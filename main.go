package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/milk9111/experience/experience"
	"github.com/milk9111/experience/host"
	"github.com/milk9111/experience/logging"
	"github.com/milk9111/experience/render"
	"github.com/milk9111/experience/render/raster"
)

func main() {
	debug := flag.Bool("debug", false, "enable the debug panel and scripts")
	headless := flag.Bool("headless", false, "run without a window")
	configPath := flag.String("config", experience.DefaultConfig, "config file (falls back to the embedded default)")
	assets := flag.String("assets", "", "asset root, overrides the config")
	frames := flag.Int("frames", 0, "stop after this many frames (headless only, 0 runs until interrupted)")
	flag.Parse()

	if err := run(*configPath, *assets, *debug, *headless, *frames); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, assets string, debug, headless bool, frames int) error {
	cfg, err := experience.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if debug {
		cfg.Debug.Active = true
	}
	if assets != "" {
		cfg.Resources.Root = assets
	}

	logger, err := logging.New(cfg.Debug.Active)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if headless {
		return runHeadless(ctx, cfg, logger, frames)
	}
	return runWindow(ctx, cfg, logger)
}

func runHeadless(ctx context.Context, cfg experience.Config, logger *zap.Logger, frames int) error {
	backend := &render.Headless{}
	exp, err := experience.New(ctx, cfg, backend, experience.WithLogger(logger))
	if err != nil {
		return err
	}
	defer exp.Destroy()

	err = exp.Time.Run(ctx, host.DefaultDelta, frames)
	logger.Info("headless run finished",
		zap.Int("frames", exp.Time.Frames()),
		zap.Int("renders", backend.Renders),
		zap.Int("meshes", backend.LastMeshes),
		zap.Bool("ready", exp.Resources.Ready()))
	if err != nil && ctx.Err() == nil {
		return err
	}
	return exp.Resources.Err()
}

func runWindow(ctx context.Context, cfg experience.Config, logger *zap.Logger) error {
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)

	backend := raster.New(cfg.Window.Width, cfg.Window.Height)
	exp, err := experience.New(ctx, cfg, backend,
		experience.WithLogger(logger),
		experience.WithDeviceRatio(ebiten.Monitor().DeviceScaleFactor()))
	if err != nil {
		return err
	}
	defer exp.Destroy()

	if err := ebiten.RunGame(NewGame(ctx, exp, backend, logger)); err != nil {
		return err
	}
	if ctx.Err() != nil {
		logger.Info("interrupted, shutting down")
	}
	return nil
}

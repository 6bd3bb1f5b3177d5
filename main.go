package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/softfb/internal/app"
	"github.com/rook-computer/softfb/internal/config"
	"github.com/rook-computer/softfb/internal/damage"
	"github.com/rook-computer/softfb/internal/host/fbdev"
	"github.com/rook-computer/softfb/internal/logging"
	"github.com/rook-computer/softfb/internal/present"
	"github.com/rook-computer/softfb/internal/scene"
	"github.com/rook-computer/softfb/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Println("softfb:", err)
		os.Exit(1)
	}
}

func run() error {
	defaults, err := config.FromEnv(config.Defaults())
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}
	cfg := defaults
	config.BindFlags(flag.CommandLine, &cfg)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	// Best-effort: redirect all stdout/stderr output (including panic stack traces)
	// to a file so crashes are diagnosable even when the console is left in graphics mode.
	if cfg.StdioLog != "" {
		if err := logging.RedirectStdIO(cfg.StdioLog); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	var logger logging.Logger = logging.NoopLogger{}
	if cfg.Debug {
		f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Println("debug log open error:", err)
		} else {
			defer f.Close()
			logger = logging.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	host, err := fbdev.Open(ctx, fbdev.Options{Device: cfg.Device, Console: true, Input: true}, logger)
	if err != nil {
		return err
	}
	defer host.Close()

	session, err := present.NewSession(host, present.Config{
		Damage: damage.Config{Enabled: cfg.DamageTracking},
		FPS:    cfg.FPS,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	var server web.Server = &web.NoopServer{}
	qrPayload := "softfb"
	if cfg.InspectAddr != "" {
		httpServer := web.NewHTTPServer(web.ServerConfig{ListenAddr: cfg.InspectAddr, DevMode: cfg.DevMode}, web.NewDefaultMux(session))
		httpServer.Logger = logger
		server = httpServer
		qrPayload = web.DisplayURL(cfg.InspectAddr)
	}

	sc, err := scene.ByName(cfg.Scene, scene.Options{
		Background: cfg.Background,
		Foreground: cfg.Foreground,
		ImagePath:  cfg.ImagePath,
		QRPayload:  qrPayload,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	a := app.New(session, sc, server)
	a.Logger = logger
	if err := a.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

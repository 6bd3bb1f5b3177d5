package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/softfb/internal/app"
	"github.com/rook-computer/softfb/internal/config"
	"github.com/rook-computer/softfb/internal/damage"
	"github.com/rook-computer/softfb/internal/host/memhost"
	"github.com/rook-computer/softfb/internal/host/termhost"
	"github.com/rook-computer/softfb/internal/logging"
	"github.com/rook-computer/softfb/internal/present"
	"github.com/rook-computer/softfb/internal/scene"
	"github.com/rook-computer/softfb/internal/web"
	"golang.org/x/term"
)

type simFlags struct {
	headless bool
	width    int
	height   int
	frames   int
	out      string
}

func main() {
	if err := run(); err != nil {
		fmt.Println("simulator:", err)
		os.Exit(1)
	}
}

func run() error {
	base := config.Defaults()
	base.InspectAddr = ":8080"
	base.LogPath = "./softfb-sim.log"
	defaults, err := config.FromEnv(base)
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}
	cfg := defaults
	config.BindFlags(flag.CommandLine, &cfg)

	var sim simFlags
	flag.BoolVar(&sim.headless, "headless", false, "render into memory instead of the terminal; implied when stdout is not a terminal")
	flag.IntVar(&sim.width, "width", 320, "headless surface width")
	flag.IntVar(&sim.height, "height", 200, "headless surface height")
	flag.IntVar(&sim.frames, "frames", 0, "headless: render this many frames, write -out and exit; 0 runs until interrupted")
	flag.StringVar(&sim.out, "out", "frame.png", "headless: PNG file written after -frames frames")
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	// The terminal belongs to tcell while running, so logs always go to a file.
	var logger logging.Logger = logging.NoopLogger{}
	if cfg.Debug {
		f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Println("debug log open error:", err)
		} else {
			defer f.Close()
			logger = logging.NewFileLogger(f)
		}
	}

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	interactive := !sim.headless && term.IsTerminal(int(os.Stdout.Fd()))
	var (
		host    present.Host
		mem     *memhost.Host
		closeFn = func() {}
	)
	if interactive {
		th, err := termhost.Open(logger)
		if err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		host, closeFn = th, th.Close
	} else {
		mem, err = memhost.New(sim.width, sim.height)
		if err != nil {
			return err
		}
		host = mem
	}
	defer closeFn()

	session, err := present.NewSession(host, present.Config{
		Damage: damage.Config{Enabled: cfg.DamageTracking},
		FPS:    cfg.FPS,
		Logger: logger,
	})
	if err != nil {
		return err
	}
	sc, err := scene.ByName(cfg.Scene, scene.Options{
		Background: cfg.Background,
		Foreground: cfg.Foreground,
		ImagePath:  cfg.ImagePath,
		QRPayload:  web.DisplayURL(cfg.InspectAddr),
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	if !interactive && sim.frames > 0 {
		return renderFrames(processCtx, session, sc, mem, sim)
	}

	var server web.Server = &web.NoopServer{}
	if cfg.InspectAddr != "" {
		httpServer := web.NewHTTPServer(web.ServerConfig{ListenAddr: cfg.InspectAddr, DevMode: cfg.DevMode}, web.NewDefaultMux(session))
		httpServer.Logger = logger
		server = httpServer
		if !interactive {
			fmt.Println("softfb simulator inspector on", web.DisplayURL(cfg.InspectAddr))
		}
	}

	a := app.New(session, sc, server)
	a.Logger = logger
	if err := a.Start(processCtx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// renderFrames draws a fixed number of frames without pacing and saves what
// the host received.
func renderFrames(ctx context.Context, session *present.Session, sc scene.Scene, mem *memhost.Host, sim simFlags) error {
	if err := sc.Start(ctx); err != nil {
		return err
	}
	defer sc.Stop()

	var st present.Stats
	for i := 0; i < sim.frames; i++ {
		var err error
		if st, err = session.Frame(sc.Draw); err != nil {
			return err
		}
	}

	f, err := os.Create(sim.out)
	if err != nil {
		return err
	}
	if err := png.Encode(f, mem.Surface()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("rendered %d frames at %dx%d, %d px presented, wrote %s\n", st.Frame, st.Width, st.Height, st.TotalPresentedPixels, sim.out)
	return nil
}

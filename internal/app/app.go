// Package app wires a presentation session, the active scene and the
// optional inspector server into one lifecycle.
package app

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/rook-computer/softfb/internal/logging"
	"github.com/rook-computer/softfb/internal/present"
	"github.com/rook-computer/softfb/internal/raster"
	"github.com/rook-computer/softfb/internal/scene"
	"github.com/rook-computer/softfb/internal/state"
	"github.com/rook-computer/softfb/internal/web"
)

type App struct {
	Session *present.Session
	Scene   scene.Scene
	Web     web.Server
	Logger  logging.Logger

	exitOnce atomic.Bool
	exitCh   chan error
}

func New(session *present.Session, sc scene.Scene, server web.Server) *App {
	if server == nil {
		server = &web.NoopServer{}
	}
	return &App{Session: session, Scene: sc, Web: server, Logger: logging.NoopLogger{}, exitCh: make(chan error, 1)}
}

// Exit requests the app to stop running. Only the first call counts.
func (app *App) Exit(err error) {
	if app.exitCh == nil {
		return
	}
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

// Start runs until ctx ends, Exit is called or the host asks to quit. A
// quit from the host returns nil.
func (app *App) Start(ctx context.Context) error {
	if app.Session == nil || app.Scene == nil {
		return errors.New("app needs a session and a scene")
	}
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	app.exitOnce.Store(false)
	log := logging.OrNoop(app.Logger)

	if err := app.Scene.Start(ctx); err != nil {
		log.Errorf("app", "scene start error: %v", err)
		return err
	}
	defer func() {
		if err := app.Scene.Stop(); err != nil {
			log.Errorf("app", "scene stop error: %v", err)
		}
	}()

	if app.Web != nil {
		if err := app.Web.Start(ctx); err != nil {
			log.Errorf("app", "inspector start error: %v", err)
			return err
		}
		defer app.Web.Stop()
	}

	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	runDone := make(chan error, 1)
	go func() {
		runDone <- app.Session.Run(loopCtx, app.draw)
	}()

	var err error
	select {
	case <-ctx.Done():
		err = ctx.Err()
		<-runDone
	case err = <-app.exitCh:
		cancel()
		<-runDone
	case err = <-runDone:
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Errorf("app", "stopped: %v", err)
	} else {
		log.Infof("app", "stopped")
	}
	return err
}

func (app *App) draw(c *raster.Canvas, in state.Input) {
	app.Scene.Draw(c, in)
}

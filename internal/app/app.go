// Package app wires configuration, the X connection, the engine, the
// control socket and layout storage into a running window manager.
package app

import (
	"context"
	"errors"
	"fmt"

	"tigerwm/internal/ipc"
	"tigerwm/internal/launcher"
	"tigerwm/internal/storage"
	"tigerwm/internal/wm"
	"tigerwm/internal/x11"
	"tigerwm/pkg/config"
	"tigerwm/pkg/global"
	"tigerwm/pkg/logger"
)

const eventBuffer = 64

type TigerWM struct {
	config *config.Config
	log    *logger.Logger
	conn   *x11.Conn
	engine *wm.Engine
	db     *storage.DB
	server *ipc.Server
}

// NewTigerWM connects to the X server and builds the engine from the
// global configuration.
func NewTigerWM() (*TigerWM, error) {
	cfg, log := global.GetAll()
	if cfg == nil {
		return nil, errors.New("configuration not initialized")
	}

	log.Debug("Connecting to X server")
	conn, err := x11.Open(x11.Options{
		BorderWidth: cfg.GetBorderWidth(),
		BorderColor: cfg.GetBorderColor(),
		FocusColor:  cfg.GetFocusColor(),
	}, log)
	if err != nil {
		return nil, err
	}

	screen, follow := conn.RootGeometry(), true
	if w, h := cfg.GetScreen(); w > 0 && h > 0 {
		screen, follow = wm.Rect{Width: w, Height: h}, false
	}

	engine, err := wm.NewEngine(wm.Options{
		Desktops:   cfg.GetDesktops(),
		Layout:     cfg.GetLayout(),
		Screen:     screen,
		FollowRoot: follow,
		Bindings:   cfg.GetBindings(),
	}, conn, notifyingSpawner{launcher.New(log)}, log)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	app := &TigerWM{
		config: cfg,
		log:    log,
		conn:   conn,
		engine: engine,
	}

	if path := cfg.GetStateDB(); path != "" {
		app.db = app.openStorage(path)
	}

	server, err := ipc.Listen(cfg.GetSocketPath())
	if err != nil {
		app.warn("Control socket disabled", err)
	} else {
		app.server = server
	}

	return app, nil
}

// openStorage opens the layout database and restores saved layouts.
// Persistence problems never prevent startup.
func (a *TigerWM) openStorage(path string) *storage.DB {
	db, err := storage.Open(path)
	if err != nil {
		a.warn("Layout persistence disabled", err)
		return nil
	}
	layouts, err := db.LoadLayouts(a.config.GetDesktops())
	if err != nil {
		a.warn("Failed to load saved layouts", err)
		return db
	}
	a.engine.RestoreLayouts(layouts)
	a.log.Info("Restored saved layouts", "count", len(layouts))
	return db
}

// Run manages windows until quit completes, ctx ends or the X connection
// is lost. A graceful quit returns nil.
func (a *TigerWM) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.close()

	if err := a.engine.GrabKeys(); err != nil {
		return fmt.Errorf("failed to grab keys: %w", err)
	}

	events := make(chan wm.Event, eventBuffer)
	errs := make(chan error, 1)

	go func() {
		errs <- a.conn.Pump(ctx, events)
	}()

	serverDone := make(chan struct{})
	if a.server != nil {
		go func() {
			defer close(serverDone)
			if err := a.server.Serve(ctx, events); err != nil {
				a.log.Error("Control socket failed", err)
			}
		}()
	} else {
		close(serverDone)
	}

	a.log.Info("Window manager running",
		"desktops", a.config.GetDesktops(),
		"bindings", len(a.config.GetBindings()))

	err := a.engine.Run(ctx, &chanSource{events: events, errs: errs})
	cancel()
	<-serverDone

	a.saveLayouts()

	if errors.Is(err, context.Canceled) {
		a.log.Info("Shutdown requested")
		return nil
	}
	return err
}

func (a *TigerWM) saveLayouts() {
	if a.db == nil {
		return
	}
	if err := a.db.SaveLayouts(a.engine.Layouts()); err != nil {
		a.log.Error("Failed to save layouts", err)
		return
	}
	a.log.Debug("Saved layouts", "desktops", a.config.GetDesktops())
}

func (a *TigerWM) close() {
	if a.server != nil {
		if err := a.server.Close(); err != nil {
			a.log.Error("Failed to close control socket", err)
		}
	}
	a.conn.Close()
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Error("Failed to close database", err)
		}
	}
}

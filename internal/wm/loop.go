package wm

import (
	"context"
	"errors"
)

var (
	// ErrForcedShutdown is returned by Run when quit is requested a second
	// time while clients are still draining.
	ErrForcedShutdown = errors.New("forced shutdown")
	// ErrConnectionClosed is returned by event sources whose connection
	// went away.
	ErrConnectionClosed = errors.New("connection closed")
)

// RunState is the position in the shutdown state machine.
type RunState int

const (
	StateRunning RunState = iota
	StateQuitRequested
	StateForcedShutdown
	StateTerminated
)

func (s RunState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateQuitRequested:
		return "quit-requested"
	case StateForcedShutdown:
		return "forced-shutdown"
	case StateTerminated:
		return "terminated"
	}
	return "unknown"
}

// Run processes events from src until the quit drain completes (nil),
// quit is forced (ErrForcedShutdown), or src fails.
func (e *Engine) Run(ctx context.Context, src EventSource) error {
	e.log.Info("Event loop started", "desktop", e.view.Index(), "desktops", e.store.Len())
	for {
		if e.state == StateQuitRequested && e.drained() {
			e.state = StateTerminated
			e.suppress("ungrab-keys", 0, e.display.UngrabKeys())
			e.log.Info("All clients closed, exiting")
			return nil
		}

		ev, err := src.NextEvent(ctx)
		if err != nil {
			return err
		}
		if err := e.Handle(ev); err != nil {
			return err
		}
	}
}

// drained reports whether the quit drain has no windows left to wait for.
func (e *Engine) drained() bool {
	windows, err := e.display.TopLevelWindows()
	if err != nil {
		e.log.Warn("Failed to query top-level windows", "error", err.Error())
		return false
	}
	return len(windows) == 0
}

// Handle routes one event.
func (e *Engine) Handle(ev Event) error {
	switch ev.Kind {
	case EventMapRequest:
		e.Manage(ev.Window)
	case EventDestroyNotify:
		e.Unmanage(ev.Window)
	case EventConfigureRequest:
		e.suppress("configure", ev.Configure.Window, e.display.Configure(ev.Configure))
	case EventKeyPress:
		for _, b := range e.keys.Match(ev.Keysym, ev.State) {
			if err := e.Do(b.Action, b.Arg); err != nil {
				return err
			}
		}
	case EventScreenChange:
		if e.follow {
			e.SetScreen(ev.Screen)
		}
	case EventCommand:
		return e.runCommand(ev.Command)
	default:
		e.log.Debug("Ignoring event", "kind", ev.Kind.String())
	}
	return nil
}

func (e *Engine) runCommand(cmd *Command) error {
	if cmd == nil {
		return nil
	}
	err := e.Do(cmd.Action, cmd.Arg)
	if cmd.Reply != nil {
		cmd.Reply <- CommandResult{Err: err, Desktops: e.Snapshot()}
	}
	return err
}

// Quit starts the graceful drain by asking every top-level window to
// close. Called again while draining, it destroys all remaining windows
// and returns ErrForcedShutdown.
func (e *Engine) Quit() error {
	if e.state == StateQuitRequested {
		e.state = StateForcedShutdown
		e.log.Warn("Quit requested again, destroying remaining windows")
		e.suppress("ungrab-keys", 0, e.display.UngrabKeys())
		e.suppress("destroy-all", 0, e.display.DestroyAll())
		return ErrForcedShutdown
	}
	if e.state != StateRunning {
		return nil
	}

	e.state = StateQuitRequested
	windows, err := e.display.TopLevelWindows()
	if err != nil {
		e.log.Warn("Failed to query top-level windows", "error", err.Error())
	}
	e.log.Info("Quit requested, closing clients", "windows", len(windows))
	for _, w := range windows {
		e.suppress("close", w, e.display.RequestClose(w))
	}
	return nil
}

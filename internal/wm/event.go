package wm

import (
	"github.com/BurntSushi/xgb/xproto"

	"tigerwm/internal/keys"
)

// EventKind is the closed set of events the engine routes.
type EventKind int

const (
	EventMapRequest EventKind = iota + 1
	EventDestroyNotify
	EventConfigureRequest
	EventKeyPress
	EventScreenChange
	EventCommand
)

func (k EventKind) String() string {
	switch k {
	case EventMapRequest:
		return "map-request"
	case EventDestroyNotify:
		return "destroy-notify"
	case EventConfigureRequest:
		return "configure-request"
	case EventKeyPress:
		return "key-press"
	case EventScreenChange:
		return "screen-change"
	case EventCommand:
		return "command"
	}
	return "unknown"
}

// Event is a tagged union; which fields are meaningful depends on Kind.
type Event struct {
	Kind EventKind

	// MapRequest, DestroyNotify
	Window Window

	// KeyPress: the keysym of the pressed key (column 0) and the raw
	// modifier state.
	Keysym xproto.Keysym
	State  uint16

	// ConfigureRequest
	Configure ConfigureRequest

	// ScreenChange
	Screen Rect

	// Command
	Command *Command
}

// ConfigureRequest is a client's request to change its own geometry or
// stacking, forwarded verbatim.
type ConfigureRequest struct {
	Window      Window
	ValueMask   uint16
	X, Y        int
	Width       int
	Height      int
	BorderWidth int
	Sibling     Window
	StackMode   byte
}

// Command is an action injected from outside the windowing system (the
// control socket). The result is delivered on Reply, which must have room
// for one value.
type Command struct {
	Action keys.Action
	Arg    keys.Arg
	Reply  chan<- CommandResult
}

// CommandResult reports the outcome of a Command and the state after it.
type CommandResult struct {
	Err      error
	Desktops []DesktopState
}

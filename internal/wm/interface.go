package wm

import (
	"context"

	"tigerwm/internal/keys"
)

// Display is the windowing system as seen by the engine. Errors returned
// from any method are protocol-level and non-fatal: the engine logs them
// and carries on.
type Display interface {
	// Manageable reports whether a newly mapped window should be tiled
	// (readable attributes, not override-redirect).
	Manageable(w Window) bool
	// SelectEvents subscribes to property and structure changes of w.
	SelectEvents(w Window) error
	Map(w Window) error
	Unmap(w Window) error
	// MoveResize applies r. No acknowledgement is awaited.
	MoveResize(w Window, r Rect) error
	// Focus gives w input focus and the focus border.
	Focus(w Window) error
	// Configure forwards a client's own geometry request unchanged.
	Configure(req ConfigureRequest) error
	// TopLevelWindows lists every child of the root window.
	TopLevelWindows() ([]Window, error)
	// RequestClose asks w to close via WM_DELETE_WINDOW, destroying it
	// when the protocol is not supported.
	RequestClose(w Window) error
	// DestroyAll destroys every child of the root window.
	DestroyAll() error
	GrabKeys(bindings []keys.Binding) error
	UngrabKeys() error
}

// EventSource yields windowing and control events in arrival order.
// NextEvent blocks until one is available.
type EventSource interface {
	NextEvent(ctx context.Context) (Event, error)
}

// Spawner launches external programs without waiting for them.
type Spawner interface {
	Spawn(argv []string) error
}

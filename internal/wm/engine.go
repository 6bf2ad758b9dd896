package wm

import (
	"fmt"

	"tigerwm/internal/keys"
	"tigerwm/pkg/core"
)

// Options configures a new Engine.
type Options struct {
	Desktops int
	Layout   Layout
	Screen   Rect
	// FollowRoot lets root window resizes replace Screen.
	FollowRoot bool
	Bindings   []keys.Binding
}

// Engine is the window arrangement core. It is not safe for concurrent
// use; every method must be called from the event loop goroutine.
type Engine struct {
	log     core.Logger
	display Display
	spawner Spawner
	keys    *keys.Dispatcher

	store  *Store
	view   *View
	screen Rect
	follow bool
	state  RunState
}

func NewEngine(opts Options, display Display, spawner Spawner, log core.Logger) (*Engine, error) {
	if opts.Desktops == 0 {
		opts.Desktops = DefaultDesktops
	}
	if opts.Layout == (Layout{}) {
		opts.Layout = DefaultLayout()
	}
	if opts.Screen.Width <= 0 || opts.Screen.Height <= 0 {
		return nil, fmt.Errorf("invalid screen size %dx%d", opts.Screen.Width, opts.Screen.Height)
	}
	for _, b := range opts.Bindings {
		if b.Action.TakesDesktop() && (b.Arg.I < 0 || b.Arg.I >= opts.Desktops) {
			return nil, fmt.Errorf("binding %s: desktop %d out of range", b, b.Arg.I)
		}
	}

	store, err := NewStore(opts.Desktops, opts.Layout)
	if err != nil {
		return nil, fmt.Errorf("failed to create desktops: %w", err)
	}
	view, err := store.Checkout(0)
	if err != nil {
		return nil, err
	}

	return &Engine{
		log:     log,
		display: display,
		spawner: spawner,
		keys:    keys.NewDispatcher(opts.Bindings),
		store:   store,
		view:    view,
		screen:  opts.Screen,
		follow:  opts.FollowRoot,
	}, nil
}

// ActiveDesktop returns the index of the desktop being shown.
func (e *Engine) ActiveDesktop() int {
	return e.view.Index()
}

// Clients returns the active desktop's clients in order.
func (e *Engine) Clients() []Window {
	return e.view.Clients.Windows()
}

// Current returns the focused client of the active desktop.
func (e *Engine) Current() (Window, bool) {
	return e.view.Clients.Current()
}

// Layout returns the active desktop's layout.
func (e *Engine) Layout() Layout {
	return e.view.Layout
}

func (e *Engine) Screen() Rect {
	return e.screen
}

// State returns the shutdown state machine's position.
func (e *Engine) State() RunState {
	return e.state
}

// GrabKeys registers the binding table with the display.
func (e *Engine) GrabKeys() error {
	return e.display.GrabKeys(e.keys.Bindings())
}

// suppress logs a non-fatal protocol error.
func (e *Engine) suppress(op string, w Window, err error) {
	if err != nil {
		e.log.Debug("Ignoring protocol error", "op", op, "window", w, "error", err.Error())
	}
}

// Retile recomputes the active desktop's geometry, applies it and focuses
// the current client.
func (e *Engine) Retile() {
	for _, p := range Tile(e.view.Clients.Windows(), e.view.Layout, e.screen) {
		e.suppress("move-resize", p.Window, e.display.MoveResize(p.Window, p.Rect))
	}
	if w, ok := e.view.Clients.Current(); ok {
		e.suppress("focus", w, e.display.Focus(w))
	}
}

// SetScreen replaces the screen bounds and re-tiles.
func (e *Engine) SetScreen(r Rect) {
	if r.Width <= 0 || r.Height <= 0 || r == e.screen {
		return
	}
	e.log.Info("Screen bounds changed", "width", r.Width, "height", r.Height)
	e.screen = r
	e.Retile()
}

// Manage starts tiling w on the active desktop. A client of the active
// desktop that asks to be mapped again is re-mapped in place.
func (e *Engine) Manage(w Window) {
	if e.view.Clients.Contains(w) {
		e.suppress("map", w, e.display.Map(w))
		e.Retile()
		return
	}
	if e.store.Contains(w) {
		return
	}
	if !e.display.Manageable(w) {
		e.log.Debug("Not managing window", "window", w)
		return
	}
	e.view.Clients.Insert(w)
	e.suppress("select-events", w, e.display.SelectEvents(w))
	e.suppress("map", w, e.display.Map(w))
	e.log.Debug("Managing window", "window", w, "desktop", e.view.Index(), "clients", e.view.Clients.Len())
	e.Retile()
}

// Unmanage forgets w. Windows on the active desktop trigger a re-tile;
// windows on hidden desktops are dropped from their saved list.
func (e *Engine) Unmanage(w Window) {
	if e.view.Clients.Remove(w) {
		e.log.Debug("Unmanaged window", "window", w, "desktop", e.view.Index())
		e.Retile()
		return
	}
	if i, ok := e.store.Remove(w); ok {
		e.log.Debug("Unmanaged hidden window", "window", w, "desktop", i)
	}
}

func (e *Engine) FocusNext() {
	if e.view.Clients.FocusNext() {
		e.Retile()
	}
}

func (e *Engine) FocusPrev() {
	if e.view.Clients.FocusPrev() {
		e.Retile()
	}
}

// MoveUp promotes the current client one position.
func (e *Engine) MoveUp() {
	if e.view.Clients.MoveUp() {
		e.Retile()
	}
}

// MoveDown demotes the current client one position.
func (e *Engine) MoveDown() {
	if e.view.Clients.MoveDown() {
		e.Retile()
	}
}

func (e *Engine) SwapMaster() {
	if e.view.Clients.SwapMaster() {
		e.Retile()
	}
}

// ResizeMaster adjusts the master size by delta points within
// [MinMasterSize, MaxMasterSize].
func (e *Engine) ResizeMaster(delta int) {
	if delta == 0 {
		return
	}
	e.view.Layout.MasterSize = clamp(e.view.Layout.MasterSize+delta, MinMasterSize, MaxMasterSize)
	e.Retile()
}

// Increase grows the master by one step, never past MaxSteppedMaster.
func (e *Engine) Increase() {
	m := e.view.Layout.MasterSize
	if m >= MaxSteppedMaster {
		return
	}
	e.view.Layout.MasterSize = min(m+StepMasterSize, MaxSteppedMaster)
	e.Retile()
}

// Decrease shrinks the master by one step, never below MinSteppedMaster.
func (e *Engine) Decrease() {
	m := e.view.Layout.MasterSize
	if m <= MinSteppedMaster {
		return
	}
	e.view.Layout.MasterSize = max(m-StepMasterSize, MinSteppedMaster)
	e.Retile()
}

func (e *Engine) SwitchMode(m Mode) {
	if !m.Valid() {
		e.log.Warn("Ignoring invalid layout mode", "mode", int(m))
		return
	}
	e.view.Layout.Mode = m
	e.Retile()
}

// ChangeDesktop hides the active desktop and shows desktop i.
func (e *Engine) ChangeDesktop(i int) {
	if i == e.view.Index() {
		return
	}
	if i < 0 || i >= e.store.Len() {
		e.log.Warn("Ignoring desktop switch", "desktop", i, "desktops", e.store.Len())
		return
	}

	for _, w := range e.view.Clients.Windows() {
		e.suppress("unmap", w, e.display.Unmap(w))
	}

	from := e.view.Index()
	if err := e.store.Checkin(e.view); err != nil {
		panic(err)
	}
	view, err := e.store.Checkout(i)
	if err != nil {
		panic(err)
	}
	e.view = view

	for _, w := range e.view.Clients.Windows() {
		e.suppress("map", w, e.display.Map(w))
	}
	e.log.Debug("Changed desktop", "from", from, "to", i, "clients", e.view.Clients.Len())
	e.Retile()
}

func (e *Engine) NextDesktop() {
	e.ChangeDesktop((e.view.Index() + 1) % e.store.Len())
}

func (e *Engine) PrevDesktop() {
	n := e.store.Len()
	e.ChangeDesktop((e.view.Index() + n - 1) % n)
}

// ClientToDesktop moves the current client to the tail of desktop i and
// hides it. An empty target desktop inherits the active layout.
func (e *Engine) ClientToDesktop(i int) {
	if i == e.view.Index() {
		return
	}
	if i < 0 || i >= e.store.Len() {
		e.log.Warn("Ignoring client move", "desktop", i, "desktops", e.store.Len())
		return
	}
	w, ok := e.view.Clients.TakeCurrent()
	if !ok {
		return
	}
	if err := e.store.Append(i, w, e.view.Layout); err != nil {
		panic(err)
	}
	e.suppress("unmap", w, e.display.Unmap(w))
	e.log.Debug("Moved client", "window", w, "from", e.view.Index(), "to", i)
	e.Retile()
}

// KillClient politely closes the current client.
func (e *Engine) KillClient() {
	if w, ok := e.view.Clients.Current(); ok {
		e.suppress("close", w, e.display.RequestClose(w))
	}
}

func (e *Engine) Spawn(argv []string) {
	if e.spawner == nil || len(argv) == 0 {
		return
	}
	if err := e.spawner.Spawn(argv); err != nil {
		e.log.Error("Failed to spawn command", err, "command", argv)
	}
}

// Do runs one action. Only ActionQuit can fail, with ErrForcedShutdown.
func (e *Engine) Do(action keys.Action, arg keys.Arg) error {
	switch action {
	case keys.ActionSpawn:
		e.Spawn(arg.Cmd)
	case keys.ActionKillClient:
		e.KillClient()
	case keys.ActionNextWin:
		e.FocusNext()
	case keys.ActionPrevWin:
		e.FocusPrev()
	case keys.ActionMoveUp:
		e.MoveUp()
	case keys.ActionMoveDown:
		e.MoveDown()
	case keys.ActionSwapMaster:
		e.SwapMaster()
	case keys.ActionIncrease:
		e.Increase()
	case keys.ActionDecrease:
		e.Decrease()
	case keys.ActionResizeMaster:
		e.ResizeMaster(arg.I)
	case keys.ActionSwitchMode:
		e.SwitchMode(Mode(arg.I))
	case keys.ActionChangeDesktop:
		e.ChangeDesktop(arg.I)
	case keys.ActionNextDesktop:
		e.NextDesktop()
	case keys.ActionPrevDesktop:
		e.PrevDesktop()
	case keys.ActionClientToDesktop:
		e.ClientToDesktop(arg.I)
	case keys.ActionQuit:
		return e.Quit()
	case keys.ActionNone:
	default:
		e.log.Warn("Unknown action", "action", action.String())
	}
	return nil
}

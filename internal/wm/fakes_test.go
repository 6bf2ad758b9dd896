package wm

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"tigerwm/internal/keys"
	"tigerwm/pkg/logger"
)

var testScreen = Rect{Width: 800, Height: 600}

// fakeDisplay records what the engine asks of the windowing system.
type fakeDisplay struct {
	geometry     map[Window]Rect
	mapped       map[Window]bool
	alive        map[Window]bool
	unmanageable map[Window]bool
	responsive   map[Window]bool
	selected     map[Window]bool
	focused      Window
	closed       []Window
	configured   []ConfigureRequest
	grabbed      []keys.Binding
	ungrabbed    bool
	destroyedAll bool
	moveResizes  int
	onClose      func(w Window)
}

func newFakeDisplay() *fakeDisplay {
	return &fakeDisplay{
		geometry:     make(map[Window]Rect),
		mapped:       make(map[Window]bool),
		alive:        make(map[Window]bool),
		unmanageable: make(map[Window]bool),
		responsive:   make(map[Window]bool),
		selected:     make(map[Window]bool),
	}
}

func (d *fakeDisplay) Manageable(w Window) bool { return !d.unmanageable[w] }

func (d *fakeDisplay) SelectEvents(w Window) error {
	d.selected[w] = true
	return nil
}

func (d *fakeDisplay) Map(w Window) error {
	d.mapped[w] = true
	d.alive[w] = true
	return nil
}

func (d *fakeDisplay) Unmap(w Window) error {
	d.mapped[w] = false
	return nil
}

func (d *fakeDisplay) MoveResize(w Window, r Rect) error {
	d.geometry[w] = r
	d.moveResizes++
	return nil
}

func (d *fakeDisplay) Focus(w Window) error {
	d.focused = w
	return nil
}

func (d *fakeDisplay) Configure(req ConfigureRequest) error {
	d.configured = append(d.configured, req)
	return nil
}

func (d *fakeDisplay) TopLevelWindows() ([]Window, error) {
	var out []Window
	for w, ok := range d.alive {
		if ok {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (d *fakeDisplay) RequestClose(w Window) error {
	d.closed = append(d.closed, w)
	if d.responsive[w] && d.onClose != nil {
		d.onClose(w)
	}
	return nil
}

func (d *fakeDisplay) DestroyAll() error {
	d.destroyedAll = true
	for w := range d.alive {
		delete(d.alive, w)
	}
	return nil
}

func (d *fakeDisplay) GrabKeys(b []keys.Binding) error {
	d.grabbed = b
	return nil
}

func (d *fakeDisplay) UngrabKeys() error {
	d.ungrabbed = true
	return nil
}

// scriptSource replays queued events, then the later ones, then reports
// the connection closed.
type scriptSource struct {
	queue []Event
	later []Event
}

func (s *scriptSource) NextEvent(_ context.Context) (Event, error) {
	switch {
	case len(s.queue) > 0:
		ev := s.queue[0]
		s.queue = s.queue[1:]
		return ev, nil
	case len(s.later) > 0:
		ev := s.later[0]
		s.later = s.later[1:]
		return ev, nil
	}
	return Event{}, ErrConnectionClosed
}

type fakeSpawner struct {
	spawned [][]string
}

func (s *fakeSpawner) Spawn(argv []string) error {
	s.spawned = append(s.spawned, argv)
	return nil
}

func newTestEngine(t *testing.T, bindings ...keys.Binding) (*Engine, *fakeDisplay) {
	t.Helper()
	d := newFakeDisplay()
	e, err := NewEngine(Options{Screen: testScreen, Bindings: bindings}, d, &fakeSpawner{}, logger.Nop())
	require.NoError(t, err)
	return e, d
}

func manage(e *Engine, windows ...Window) {
	for _, w := range windows {
		e.Manage(w)
	}
}

func nopLogger() *logger.Logger {
	return logger.Nop()
}

package wm

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tigerwm/internal/keys"
	"tigerwm/pkg/logger"
)

func TestNewEngineValidates(t *testing.T) {
	d := newFakeDisplay()
	_, err := NewEngine(Options{}, d, nil, logger.Nop())
	assert.Error(t, err)

	_, err = NewEngine(Options{Screen: testScreen, Layout: Layout{MasterSize: 5}}, d, nil, logger.Nop())
	assert.Error(t, err)

	_, err = NewEngine(Options{
		Screen:   testScreen,
		Desktops: 2,
		Bindings: []keys.Binding{{Sym: 0x33, Action: keys.ActionChangeDesktop, Arg: keys.Arg{I: 3}}},
	}, d, nil, logger.Nop())
	assert.Error(t, err)

	e, err := NewEngine(Options{Screen: testScreen}, d, nil, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, DefaultDesktops, len(e.Snapshot()))
	assert.Equal(t, DefaultLayout(), e.Layout())
}

func TestManageTilesThreeClients(t *testing.T) {
	e, d := newTestEngine(t)
	manage(e, 1, 2, 3)

	assert.Equal(t, Rect{X: 0, Y: 0, Width: 400, Height: 600}, d.geometry[1])
	assert.Equal(t, Rect{X: 400, Y: 0, Width: 400, Height: 300}, d.geometry[2])
	assert.Equal(t, Rect{X: 400, Y: 300, Width: 400, Height: 300}, d.geometry[3])
	assert.True(t, d.mapped[1] && d.mapped[2] && d.mapped[3])
	assert.True(t, d.selected[3])
	assert.Equal(t, Window(3), d.focused)
}

func TestManageSingleClientFullScreen(t *testing.T) {
	for _, mode := range []Mode{Vertical, Horizontal} {
		e, d := newTestEngine(t)
		e.SwitchMode(mode)
		manage(e, 1)
		assert.Equal(t, Rect{Width: 800, Height: 600}, d.geometry[1])
	}
}

func TestManageSkipsUnmanageableAndDuplicates(t *testing.T) {
	e, d := newTestEngine(t)
	d.unmanageable[5] = true

	manage(e, 1, 5, 1)
	assert.Equal(t, []Window{1}, e.Clients())
	assert.False(t, d.mapped[5])
}

func TestManageRemapsExistingClient(t *testing.T) {
	e, d := newTestEngine(t)
	manage(e, 1, 2)
	require.NoError(t, d.Unmap(2))
	d.geometry[2] = Rect{}

	require.NoError(t, e.Handle(Event{Kind: EventMapRequest, Window: 2}))
	assert.True(t, d.mapped[2])
	assert.Equal(t, []Window{1, 2}, e.Clients())
	assert.Equal(t, Rect{X: 400, Width: 400, Height: 600}, d.geometry[2])
}

func TestManageIgnoresWindowOnOtherDesktop(t *testing.T) {
	e, d := newTestEngine(t)
	manage(e, 1)
	e.ChangeDesktop(1)
	require.False(t, d.mapped[1])

	e.Manage(1)
	assert.False(t, d.mapped[1])
	assert.Empty(t, e.Clients())
}

func TestUnmanageRetiles(t *testing.T) {
	e, d := newTestEngine(t)
	manage(e, 1, 2, 3)

	e.Unmanage(3)
	assert.Equal(t, []Window{1, 2}, e.Clients())
	assert.Equal(t, Rect{X: 400, Width: 400, Height: 600}, d.geometry[2])
	cur, _ := e.Current()
	assert.Equal(t, Window(2), cur)

	e.Unmanage(42)
	assert.Equal(t, []Window{1, 2}, e.Clients())
}

func TestPromoteTwoClients(t *testing.T) {
	e, d := newTestEngine(t)
	manage(e, 10, 20)

	e.MoveUp()
	assert.Equal(t, []Window{20, 10}, e.Clients())
	cur, _ := e.Current()
	assert.Equal(t, Window(20), cur)
	assert.Equal(t, Rect{Width: 400, Height: 600}, d.geometry[20])
	assert.Equal(t, Rect{X: 400, Width: 400, Height: 600}, d.geometry[10])
}

func TestNavigation(t *testing.T) {
	e, d := newTestEngine(t)
	manage(e, 1, 2, 3)

	e.FocusNext()
	assert.Equal(t, Window(1), d.focused)
	e.FocusPrev()
	assert.Equal(t, Window(3), d.focused)

	e.SwapMaster()
	assert.Equal(t, []Window{3, 1, 2}, e.Clients())
	e.MoveDown()
	assert.Equal(t, []Window{1, 3, 2}, e.Clients())
	cur, _ := e.Current()
	assert.Equal(t, Window(3), cur)
}

func TestResizeMasterClamps(t *testing.T) {
	e, _ := newTestEngine(t)
	for i := 0; i < 20; i++ {
		e.ResizeMaster(7)
		assert.LessOrEqual(t, e.Layout().MasterSize, MaxMasterSize)
	}
	assert.Equal(t, MaxMasterSize, e.Layout().MasterSize)
	for i := 0; i < 20; i++ {
		e.ResizeMaster(-13)
		assert.GreaterOrEqual(t, e.Layout().MasterSize, MinMasterSize)
	}
	assert.Equal(t, MinMasterSize, e.Layout().MasterSize)
}

func TestSteppedResize(t *testing.T) {
	e, d := newTestEngine(t)
	manage(e, 1, 2)

	e.Increase()
	assert.Equal(t, 60, e.Layout().MasterSize)
	assert.Equal(t, 480, d.geometry[1].Width)
	e.Increase()
	e.Increase()
	e.Increase()
	assert.Equal(t, 80, e.Layout().MasterSize)

	for i := 0; i < 5; i++ {
		e.Decrease()
	}
	assert.Equal(t, 50, e.Layout().MasterSize)

	e.ResizeMaster(25)
	e.Increase()
	assert.Equal(t, 80, e.Layout().MasterSize)

	e.ResizeMaster(-35)
	e.Decrease()
	assert.Equal(t, 45, e.Layout().MasterSize)
}

func TestSwitchModeRetiles(t *testing.T) {
	e, d := newTestEngine(t)
	manage(e, 1, 2)

	e.SwitchMode(Horizontal)
	assert.Equal(t, Horizontal, e.Layout().Mode)
	assert.Equal(t, Rect{Width: 800, Height: 300}, d.geometry[1])

	e.SwitchMode(Mode(7))
	assert.Equal(t, Horizontal, e.Layout().Mode)
}

func TestChangeDesktopRoundTrip(t *testing.T) {
	e, d := newTestEngine(t)
	manage(e, 1, 2, 3)
	e.FocusNext()
	e.ResizeMaster(15)
	e.SwitchMode(Horizontal)
	before := e.Snapshot()[0]

	e.ChangeDesktop(4)
	assert.Equal(t, 4, e.ActiveDesktop())
	assert.Empty(t, e.Clients())
	assert.False(t, d.mapped[1] || d.mapped[2] || d.mapped[3])
	assert.Equal(t, DefaultLayout(), e.Layout())

	manage(e, 9)
	e.ChangeDesktop(0)
	assert.False(t, d.mapped[9])
	assert.True(t, d.mapped[1] && d.mapped[2] && d.mapped[3])
	assert.Equal(t, before, e.Snapshot()[0])

	snap := e.Snapshot()[4]
	assert.Equal(t, []Window{9}, snap.Clients)
	assert.False(t, snap.Active)
}

func TestChangeDesktopIgnoresSameAndOutOfRange(t *testing.T) {
	e, d := newTestEngine(t)
	manage(e, 1)
	calls := d.moveResizes

	e.ChangeDesktop(0)
	e.ChangeDesktop(10)
	e.ChangeDesktop(-1)
	assert.Equal(t, 0, e.ActiveDesktop())
	assert.Equal(t, calls, d.moveResizes)
}

func TestAdjacentDesktopsWrap(t *testing.T) {
	e, _ := newTestEngine(t)
	e.PrevDesktop()
	assert.Equal(t, DefaultDesktops-1, e.ActiveDesktop())
	e.NextDesktop()
	assert.Equal(t, 0, e.ActiveDesktop())
}

func countClients(e *Engine) int {
	n := 0
	for _, d := range e.Snapshot() {
		n += len(d.Clients)
	}
	return n
}

func TestClientToDesktop(t *testing.T) {
	e, d := newTestEngine(t)
	manage(e, 1, 2, 3)
	e.FocusPrev() // current = 2
	e.ResizeMaster(10)

	e.ClientToDesktop(3)
	assert.Equal(t, []Window{1, 3}, e.Clients())
	cur, _ := e.Current()
	assert.Equal(t, Window(1), cur)
	assert.False(t, d.mapped[2])
	assert.Equal(t, Rect{X: 480, Width: 320, Height: 600}, d.geometry[3])

	target := e.Snapshot()[3]
	assert.Equal(t, []Window{2}, target.Clients)
	assert.Equal(t, 60, target.MasterSize)
	require.NotNil(t, target.Current)
	assert.Equal(t, Window(2), *target.Current)
	assert.Equal(t, 3, countClients(e))

	e.ResizeMaster(10)
	e.ClientToDesktop(3)
	target = e.Snapshot()[3]
	assert.Equal(t, []Window{2, 1}, target.Clients)
	assert.Equal(t, 60, target.MasterSize, "layout only propagates to empty desktops")
	assert.Equal(t, 3, countClients(e))

	e.ChangeDesktop(3)
	cur, _ = e.Current()
	assert.Equal(t, Window(1), cur)
	assert.True(t, d.mapped[1] && d.mapped[2])
	assert.False(t, d.mapped[3])
}

func TestClientToDesktopNoops(t *testing.T) {
	e, _ := newTestEngine(t)
	e.ClientToDesktop(2)
	assert.Equal(t, 0, countClients(e))

	manage(e, 1)
	e.ClientToDesktop(0)
	e.ClientToDesktop(99)
	assert.Equal(t, []Window{1}, e.Clients())
}

func TestUnmanageHiddenWindow(t *testing.T) {
	e, _ := newTestEngine(t)
	manage(e, 1, 2)
	e.ClientToDesktop(5)

	e.Unmanage(2)
	assert.Empty(t, e.Snapshot()[5].Clients)
	assert.Equal(t, []Window{1}, e.Clients())
}

func TestKillClientAndSpawn(t *testing.T) {
	d := newFakeDisplay()
	sp := &fakeSpawner{}
	e, err := NewEngine(Options{Screen: testScreen}, d, sp, logger.Nop())
	require.NoError(t, err)

	e.KillClient()
	assert.Empty(t, d.closed)

	manage(e, 1, 2)
	require.NoError(t, e.Do(keys.ActionKillClient, keys.Arg{}))
	assert.Equal(t, []Window{2}, d.closed)

	require.NoError(t, e.Do(keys.ActionSpawn, keys.Arg{Cmd: []string{"xterm", "-e", "top"}}))
	require.NoError(t, e.Do(keys.ActionSpawn, keys.Arg{}))
	assert.Equal(t, [][]string{{"xterm", "-e", "top"}}, sp.spawned)
}

func TestRestoreLayouts(t *testing.T) {
	e, d := newTestEngine(t)
	manage(e, 1, 2)

	e.RestoreLayouts(map[int]Layout{
		0:  {MasterSize: 70, Mode: Vertical},
		2:  {MasterSize: 30, Mode: Horizontal},
		3:  {MasterSize: 99, Mode: Vertical},
		42: {MasterSize: 40, Mode: Vertical},
	})

	layouts := e.Layouts()
	assert.Equal(t, Layout{MasterSize: 70}, layouts[0])
	assert.Equal(t, Layout{MasterSize: 30, Mode: Horizontal}, layouts[2])
	assert.Equal(t, DefaultLayout(), layouts[3])
	assert.Equal(t, 560, d.geometry[1].Width)
}

func TestRestoreLayoutsLogsUnknownDesktop(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.NewLogger(logger.WithWriter(&buf), logger.WithLevel(zerolog.DebugLevel))
	require.NoError(t, err)
	e, err := NewEngine(Options{Screen: testScreen}, newFakeDisplay(), &fakeSpawner{}, log)
	require.NoError(t, err)

	e.RestoreLayouts(map[int]Layout{42: {MasterSize: 40}, 1: {MasterSize: 40}})
	assert.Contains(t, buf.String(), "Skipping saved layout")
	assert.Contains(t, buf.String(), ErrDesktopRange.Error())
	assert.Equal(t, Layout{MasterSize: 40}, e.Layouts()[1])
	assert.Len(t, e.Snapshot(), DefaultDesktops)
}

func TestSetScreen(t *testing.T) {
	e, d := newTestEngine(t)
	manage(e, 1)

	e.SetScreen(Rect{Width: 1920, Height: 1080})
	assert.Equal(t, Rect{Width: 1920, Height: 1080}, d.geometry[1])

	e.SetScreen(Rect{})
	assert.Equal(t, Rect{Width: 1920, Height: 1080}, e.Screen())
}

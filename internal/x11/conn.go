// Package x11 connects the window arrangement engine to an X server.
package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"

	"tigerwm/internal/wm"
	"tigerwm/pkg/core"
)

// ErrOtherWM is returned by Open when another client already holds
// substructure redirection on the root window.
var ErrOtherWM = errors.New("another window manager is already running")

const rootEventMask = xproto.EventMaskSubstructureRedirect |
	xproto.EventMaskSubstructureNotify |
	xproto.EventMaskStructureNotify

const clientEventMask = xproto.EventMaskPropertyChange |
	xproto.EventMaskStructureNotify

type Options struct {
	BorderWidth int
	BorderColor string
	FocusColor  string
}

// Conn is the X server seen through the wm.Display interface.
type Conn struct {
	xu   *xgbutil.XUtil
	root xproto.Window
	log  core.Logger

	borderWidth int
	borderPixel uint32
	focusPixel  uint32
	focused     xproto.Window

	wmProtocols xproto.Atom
	wmDelete    xproto.Atom
	minKeycode  xproto.Keycode
	maxKeycode  xproto.Keycode
}

// Open connects to $DISPLAY and takes over window management on the
// default screen.
func Open(opts Options, log core.Logger) (*Conn, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}

	c := &Conn{
		xu:          xu,
		root:        xu.RootWin(),
		log:         log,
		borderWidth: opts.BorderWidth,
	}
	if err := c.init(opts); err != nil {
		xu.Conn().Close()
		return nil, err
	}

	log.Info("Connected to X server",
		"root", uint32(c.root),
		"width", c.RootGeometry().Width,
		"height", c.RootGeometry().Height)
	return c, nil
}

func (c *Conn) init(opts Options) error {
	if err := xwindow.New(c.xu, c.root).Listen(rootEventMask); err != nil {
		var access xproto.AccessError
		if errors.As(err, &access) {
			return ErrOtherWM
		}
		return fmt.Errorf("failed to select root events: %w", err)
	}

	keybind.Initialize(c.xu)
	setup := xproto.Setup(c.xu.Conn())
	c.minKeycode, c.maxKeycode = setup.MinKeycode, setup.MaxKeycode

	var err error
	if c.wmProtocols, err = xprop.Atm(c.xu, "WM_PROTOCOLS"); err != nil {
		return fmt.Errorf("failed to intern WM_PROTOCOLS: %w", err)
	}
	if c.wmDelete, err = xprop.Atm(c.xu, "WM_DELETE_WINDOW"); err != nil {
		return fmt.Errorf("failed to intern WM_DELETE_WINDOW: %w", err)
	}

	if c.borderPixel, err = c.allocColor(opts.BorderColor); err != nil {
		return err
	}
	if c.focusPixel, err = c.allocColor(opts.FocusColor); err != nil {
		return err
	}
	return nil
}

func (c *Conn) allocColor(spec string) (uint32, error) {
	r, g, b, err := ParseColor(spec)
	if err != nil {
		return 0, err
	}
	reply, err := xproto.AllocColor(c.xu.Conn(), c.xu.Screen().DefaultColormap, r, g, b).Reply()
	if err != nil {
		return 0, fmt.Errorf("failed to allocate color %s: %w", spec, err)
	}
	return reply.Pixel, nil
}

// RootGeometry returns the size of the root window.
func (c *Conn) RootGeometry() wm.Rect {
	s := c.xu.Screen()
	return wm.Rect{Width: int(s.WidthInPixels), Height: int(s.HeightInPixels)}
}

// Close releases the connection. A Pump blocked on the connection returns
// wm.ErrConnectionClosed.
func (c *Conn) Close() {
	c.xu.Conn().Close()
}

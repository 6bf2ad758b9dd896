package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xwindow"

	"tigerwm/internal/keys"
	"tigerwm/internal/wm"
)

var _ wm.Display = (*Conn)(nil)

func (c *Conn) Manageable(w wm.Window) bool {
	attrs, err := xproto.GetWindowAttributes(c.xu.Conn(), xproto.Window(w)).Reply()
	if err != nil {
		c.log.Debug("Failed to read window attributes", "window", uint32(w), "error", err.Error())
		return false
	}
	return !attrs.OverrideRedirect
}

func (c *Conn) SelectEvents(w wm.Window) error {
	return xwindow.New(c.xu, xproto.Window(w)).Listen(clientEventMask)
}

func (c *Conn) Map(w wm.Window) error {
	return xproto.MapWindowChecked(c.xu.Conn(), xproto.Window(w)).Check()
}

func (c *Conn) Unmap(w wm.Window) error {
	if xproto.Window(w) == c.focused {
		c.focused = 0
	}
	return xproto.UnmapWindowChecked(c.xu.Conn(), xproto.Window(w)).Check()
}

// MoveResize places the outer edge of w, border included, on r. Sizes
// never drop below one pixel.
func (c *Conn) MoveResize(w wm.Window, r wm.Rect) error {
	width := max(r.Width-2*c.borderWidth, 1)
	height := max(r.Height-2*c.borderWidth, 1)
	mask := uint16(xproto.ConfigWindowX | xproto.ConfigWindowY |
		xproto.ConfigWindowWidth | xproto.ConfigWindowHeight |
		xproto.ConfigWindowBorderWidth)
	values := []uint32{
		uint32(int32(r.X)),
		uint32(int32(r.Y)),
		uint32(width),
		uint32(height),
		uint32(c.borderWidth),
	}
	return xproto.ConfigureWindowChecked(c.xu.Conn(), xproto.Window(w), mask, values).Check()
}

// Focus moves input focus and the focus border to w.
func (c *Conn) Focus(w wm.Window) error {
	win := xproto.Window(w)
	if c.focused != 0 && c.focused != win {
		if err := c.setBorder(c.focused, c.borderPixel); err != nil {
			c.log.Debug("Failed to reset border", "window", uint32(c.focused), "error", err.Error())
		}
	}
	c.focused = win
	if err := c.setBorder(win, c.focusPixel); err != nil {
		return err
	}
	return xproto.SetInputFocusChecked(c.xu.Conn(), xproto.InputFocusPointerRoot,
		win, xproto.TimeCurrentTime).Check()
}

func (c *Conn) setBorder(w xproto.Window, pixel uint32) error {
	return xproto.ChangeWindowAttributesChecked(c.xu.Conn(), w,
		xproto.CwBorderPixel, []uint32{pixel}).Check()
}

func (c *Conn) Configure(req wm.ConfigureRequest) error {
	mask, values := configureValues(req)
	return xproto.ConfigureWindowChecked(c.xu.Conn(), xproto.Window(req.Window), mask, values).Check()
}

// configureValues builds the value list for req in the bit order the
// protocol requires.
func configureValues(req wm.ConfigureRequest) (uint16, []uint32) {
	fields := []struct {
		bit uint16
		val uint32
	}{
		{xproto.ConfigWindowX, uint32(int32(req.X))},
		{xproto.ConfigWindowY, uint32(int32(req.Y))},
		{xproto.ConfigWindowWidth, uint32(req.Width)},
		{xproto.ConfigWindowHeight, uint32(req.Height)},
		{xproto.ConfigWindowBorderWidth, uint32(req.BorderWidth)},
		{xproto.ConfigWindowSibling, uint32(req.Sibling)},
		{xproto.ConfigWindowStackMode, uint32(req.StackMode)},
	}
	var mask uint16
	var values []uint32
	for _, f := range fields {
		if req.ValueMask&f.bit != 0 {
			mask |= f.bit
			values = append(values, f.val)
		}
	}
	return mask, values
}

func (c *Conn) TopLevelWindows() ([]wm.Window, error) {
	tree, err := xproto.QueryTree(c.xu.Conn(), c.root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to query window tree: %w", err)
	}
	windows := make([]wm.Window, len(tree.Children))
	for i, child := range tree.Children {
		windows[i] = wm.Window(child)
	}
	return windows, nil
}

// RequestClose sends WM_DELETE_WINDOW when w advertises it and destroys
// w otherwise.
func (c *Conn) RequestClose(w wm.Window) error {
	win := xproto.Window(w)
	protocols, err := icccm.WmProtocolsGet(c.xu, win)
	if err == nil {
		for _, p := range protocols {
			if p == "WM_DELETE_WINDOW" {
				return c.sendDelete(win)
			}
		}
	}
	c.log.Debug("Destroying window without WM_DELETE_WINDOW", "window", uint32(w))
	return xproto.DestroyWindowChecked(c.xu.Conn(), win).Check()
}

func (c *Conn) sendDelete(w xproto.Window) error {
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: w,
		Type:   c.wmProtocols,
		Data: xproto.ClientMessageDataUnionData32New([]uint32{
			uint32(c.wmDelete),
			uint32(xproto.TimeCurrentTime),
			0, 0, 0,
		}),
	}
	return xproto.SendEventChecked(c.xu.Conn(), false, w,
		xproto.EventMaskNoEvent, string(ev.Bytes())).Check()
}

func (c *Conn) DestroyAll() error {
	return xproto.DestroySubwindowsChecked(c.xu.Conn(), c.root).Check()
}

// GrabKeys grabs every keycode whose unshifted keysym is bound, once per
// lock modifier combination.
func (c *Conn) GrabKeys(bindings []keys.Binding) error {
	if err := c.UngrabKeys(); err != nil {
		return err
	}
	var grabbed int
	for _, b := range bindings {
		codes := c.keycodes(b.Sym)
		if len(codes) == 0 {
			c.log.Warn("No keycode for bound key", "binding", b.String())
			continue
		}
		for _, code := range codes {
			for _, mod := range keys.LockVariants(b.Mod) {
				err := xproto.GrabKeyChecked(c.xu.Conn(), true, c.root, mod, code,
					xproto.GrabModeAsync, xproto.GrabModeAsync).Check()
				if err != nil {
					c.log.Warn("Failed to grab key", "binding", b.String(), "error", err.Error())
					continue
				}
				grabbed++
			}
		}
	}
	c.log.Debug("Grabbed keys", "bindings", len(bindings), "grabs", grabbed)
	return nil
}

func (c *Conn) UngrabKeys() error {
	return xproto.UngrabKeyChecked(c.xu.Conn(), xproto.GrabAny, c.root, xproto.ModMaskAny).Check()
}

func (c *Conn) keycodes(sym xproto.Keysym) []xproto.Keycode {
	var codes []xproto.Keycode
	for code := int(c.minKeycode); code <= int(c.maxKeycode); code++ {
		if keybind.KeysymGet(c.xu, xproto.Keycode(code), 0) == sym {
			codes = append(codes, xproto.Keycode(code))
		}
	}
	return codes
}

func (c *Conn) keysym(code xproto.Keycode) xproto.Keysym {
	return keybind.KeysymGet(c.xu, code, 0)
}

package x11

import (
	"context"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"tigerwm/internal/wm"
)

// Pump reads X events, translates the ones the engine routes and sends
// them to out. It returns wm.ErrConnectionClosed when the connection
// goes away and ctx.Err() when ctx ends first. Protocol errors are
// logged and dropped.
func (c *Conn) Pump(ctx context.Context, out chan<- wm.Event) error {
	conn := c.xu.Conn()
	for {
		ev, xerr := conn.WaitForEvent()
		if ev == nil && xerr == nil {
			return wm.ErrConnectionClosed
		}
		if xerr != nil {
			c.log.Debug("Ignoring X error", "error", xerr.Error())
			continue
		}

		translated, ok := translate(ev, c.root, c.keysym)
		if !ok {
			continue
		}
		select {
		case out <- translated:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// translate maps an X event onto the engine's event set.
func translate(ev xgb.Event, root xproto.Window, keysym func(xproto.Keycode) xproto.Keysym) (wm.Event, bool) {
	switch e := ev.(type) {
	case xproto.MapRequestEvent:
		return wm.Event{Kind: wm.EventMapRequest, Window: wm.Window(e.Window)}, true
	case xproto.DestroyNotifyEvent:
		return wm.Event{Kind: wm.EventDestroyNotify, Window: wm.Window(e.Window)}, true
	case xproto.ConfigureRequestEvent:
		return wm.Event{
			Kind: wm.EventConfigureRequest,
			Configure: wm.ConfigureRequest{
				Window:      wm.Window(e.Window),
				ValueMask:   e.ValueMask,
				X:           int(e.X),
				Y:           int(e.Y),
				Width:       int(e.Width),
				Height:      int(e.Height),
				BorderWidth: int(e.BorderWidth),
				Sibling:     wm.Window(e.Sibling),
				StackMode:   e.StackMode,
			},
		}, true
	case xproto.KeyPressEvent:
		return wm.Event{
			Kind:   wm.EventKeyPress,
			Keysym: keysym(e.Detail),
			State:  e.State,
		}, true
	case xproto.ConfigureNotifyEvent:
		if e.Window != root {
			return wm.Event{}, false
		}
		return wm.Event{
			Kind:   wm.EventScreenChange,
			Screen: wm.Rect{Width: int(e.Width), Height: int(e.Height)},
		}, true
	}
	return wm.Event{}, false
}

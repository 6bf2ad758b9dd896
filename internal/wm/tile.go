package wm

// Placement is the rectangle computed for one client.
type Placement struct {
	Window Window
	Rect   Rect
}

// Tile computes the master/stack arrangement for windows on screen. It is
// a pure function of its arguments.
//
// The head gets the master area: the full screen height and
// MasterSize% of the width in vertical mode, the full width and
// MasterSize% of the height in horizontal mode. The remaining clients are
// stacked top to bottom in the columns right of the master, splitting the
// screen height evenly; the last slot absorbs the division remainder so
// the slots always cover the height exactly.
func Tile(windows []Window, layout Layout, screen Rect) []Placement {
	n := len(windows)
	if n == 0 {
		return nil
	}
	if n == 1 {
		return []Placement{{Window: windows[0], Rect: screen}}
	}

	masterW, masterH := screen.Width, screen.Height
	switch layout.Mode {
	case Horizontal:
		masterH = screen.Height * layout.MasterSize / 100
	default:
		masterW = screen.Width * layout.MasterSize / 100
	}

	out := make([]Placement, 0, n)
	out = append(out, Placement{
		Window: windows[0],
		Rect:   Rect{X: screen.X, Y: screen.Y, Width: masterW, Height: masterH},
	})

	slots := n - 1
	slotH := screen.Height / slots
	y := screen.Y
	for i, w := range windows[1:] {
		h := slotH
		if i == slots-1 {
			h = screen.Y + screen.Height - y
		}
		out = append(out, Placement{
			Window: w,
			Rect:   Rect{X: screen.X + masterW, Y: y, Width: screen.Width - masterW, Height: h},
		})
		y += h
	}
	return out
}

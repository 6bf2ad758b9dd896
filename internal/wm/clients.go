package wm

// ClientList is the ordered set of windows of one desktop together with
// the index of the current (focused) one. The first window is the master.
//
// Invariant: an empty list has no current client; a non-empty list always
// has 0 <= current < len. The zero value is an empty list.
type ClientList struct {
	windows []Window
	current int
}

func (l *ClientList) Len() int {
	return len(l.windows)
}

// Windows returns a copy of the order.
func (l *ClientList) Windows() []Window {
	return append([]Window(nil), l.windows...)
}

// Index returns the position of w or -1.
func (l *ClientList) Index(w Window) int {
	for i, c := range l.windows {
		if c == w {
			return i
		}
	}
	return -1
}

func (l *ClientList) Contains(w Window) bool {
	return l.Index(w) >= 0
}

func (l *ClientList) Current() (Window, bool) {
	if len(l.windows) == 0 {
		return 0, false
	}
	return l.windows[l.current], true
}

// Insert appends w and makes it current. Windows already present are
// left alone and false is returned.
func (l *ClientList) Insert(w Window) bool {
	if l.Contains(w) {
		return false
	}
	l.windows = append(l.windows, w)
	l.current = len(l.windows) - 1
	return true
}

// Remove drops w. If w was current, the predecessor becomes current, or
// the successor when w was the head.
func (l *ClientList) Remove(w Window) bool {
	i := l.Index(w)
	if i < 0 {
		return false
	}
	l.windows = append(l.windows[:i], l.windows[i+1:]...)
	switch {
	case len(l.windows) == 0:
		l.current = 0
	case i < l.current:
		l.current--
	case i == l.current && i > 0:
		l.current = i - 1
	}
	// i == current == 0: the successor slid into slot 0.
	return true
}

// TakeCurrent removes the current client and returns it. The head becomes
// the new current.
func (l *ClientList) TakeCurrent() (Window, bool) {
	w, ok := l.Current()
	if !ok {
		return 0, false
	}
	l.windows = append(l.windows[:l.current], l.windows[l.current+1:]...)
	l.current = 0
	return w, true
}

// FocusNext advances current, wrapping from the tail to the head.
func (l *ClientList) FocusNext() bool {
	if len(l.windows) == 0 {
		return false
	}
	l.current = (l.current + 1) % len(l.windows)
	return true
}

// FocusPrev moves current back, wrapping from the head to the tail.
func (l *ClientList) FocusPrev() bool {
	if len(l.windows) == 0 {
		return false
	}
	l.current = (l.current + len(l.windows) - 1) % len(l.windows)
	return true
}

// MoveUp swaps the current client with its predecessor.
func (l *ClientList) MoveUp() bool {
	if len(l.windows) < 2 || l.current == 0 {
		return false
	}
	i := l.current
	l.windows[i-1], l.windows[i] = l.windows[i], l.windows[i-1]
	l.current = i - 1
	return true
}

// MoveDown swaps the current client with its successor.
func (l *ClientList) MoveDown() bool {
	if len(l.windows) < 2 || l.current == len(l.windows)-1 {
		return false
	}
	i := l.current
	l.windows[i+1], l.windows[i] = l.windows[i], l.windows[i+1]
	l.current = i + 1
	return true
}

// SwapMaster moves the current client to the head, shifting everything
// before it back by one.
func (l *ClientList) SwapMaster() bool {
	if len(l.windows) < 2 || l.current == 0 {
		return false
	}
	w := l.windows[l.current]
	copy(l.windows[1:l.current+1], l.windows[:l.current])
	l.windows[0] = w
	l.current = 0
	return true
}

package wm

import (
	"errors"
	"fmt"
)

var (
	ErrDesktopRange  = errors.New("desktop index out of range")
	ErrCheckedOut    = errors.New("desktop is checked out")
	ErrNotCheckedOut = errors.New("view does not belong to the active desktop")
)

// Desktop is one virtual workspace: an ordered client list plus its
// layout configuration.
type Desktop struct {
	Clients ClientList
	Layout  Layout
}

// View is the active desktop, checked out of the Store. While a View is
// out its slot in the Store is empty, so the active desktop's clients can
// only be reached through the View.
type View struct {
	Desktop
	index int
}

// Index is the slot the view was checked out from.
func (v *View) Index() int {
	return v.index
}

// Store holds every desktop slot. Exactly one slot may be checked out at
// a time; that slot is the active desktop.
type Store struct {
	desktops []Desktop
	active   int
	out      bool
}

// NewStore creates n empty desktops using layout.
func NewStore(n int, layout Layout) (*Store, error) {
	if n < 1 {
		return nil, fmt.Errorf("need at least one desktop, got %d", n)
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	s := &Store{desktops: make([]Desktop, n)}
	for i := range s.desktops {
		s.desktops[i].Layout = layout
	}
	return s, nil
}

func (s *Store) Len() int {
	return len(s.desktops)
}

// Active returns the index of the active (or last active) desktop.
func (s *Store) Active() int {
	return s.active
}

func (s *Store) check(index int) error {
	if index < 0 || index >= len(s.desktops) {
		return fmt.Errorf("%w: %d (have %d)", ErrDesktopRange, index, len(s.desktops))
	}
	if s.out && index == s.active {
		return fmt.Errorf("%w: %d", ErrCheckedOut, index)
	}
	return nil
}

// Checkout moves desktop index out of the store and makes it active.
func (s *Store) Checkout(index int) (*View, error) {
	if s.out {
		return nil, fmt.Errorf("%w: %d", ErrCheckedOut, s.active)
	}
	if err := s.check(index); err != nil {
		return nil, err
	}
	v := &View{Desktop: s.desktops[index], index: index}
	s.desktops[index] = Desktop{}
	s.active = index
	s.out = true
	return v, nil
}

// Checkin saves v back into its slot. v must not be used afterwards.
func (s *Store) Checkin(v *View) error {
	if v == nil || !s.out || v.index != s.active {
		return ErrNotCheckedOut
	}
	s.desktops[v.index] = v.Desktop
	s.out = false
	v.Desktop = Desktop{}
	v.index = -1
	return nil
}

// Desktop returns a copy of an inactive desktop.
func (s *Store) Desktop(index int) (Desktop, error) {
	if err := s.check(index); err != nil {
		return Desktop{}, err
	}
	d := s.desktops[index]
	d.Clients.windows = d.Clients.Windows()
	return d, nil
}

// Append adds w to the tail of an inactive desktop and makes it that
// desktop's current client. When the desktop had no clients it also takes
// over layout.
func (s *Store) Append(index int, w Window, layout Layout) error {
	if err := s.check(index); err != nil {
		return err
	}
	d := &s.desktops[index]
	if d.Clients.Len() == 0 {
		d.Layout = layout
	}
	d.Clients.Insert(w)
	return nil
}

// Remove drops w from whichever inactive desktop holds it.
func (s *Store) Remove(w Window) (int, bool) {
	for i := range s.desktops {
		if s.out && i == s.active {
			continue
		}
		if s.desktops[i].Clients.Remove(w) {
			return i, true
		}
	}
	return -1, false
}

// Contains reports whether an inactive desktop holds w.
func (s *Store) Contains(w Window) bool {
	for i := range s.desktops {
		if s.out && i == s.active {
			continue
		}
		if s.desktops[i].Clients.Contains(w) {
			return true
		}
	}
	return false
}

// SetLayout replaces the layout of an inactive desktop.
func (s *Store) SetLayout(index int, layout Layout) error {
	if err := s.check(index); err != nil {
		return err
	}
	if err := layout.Validate(); err != nil {
		return err
	}
	s.desktops[index].Layout = layout
	return nil
}

package wm

import (
	"fmt"
	"strings"
)

// Window is an X window id. The engine never owns the resource, it only
// refers to it.
type Window uint32

// Rect is a screen rectangle in pixels.
type Rect struct {
	X      int `json:"x" yaml:"x"`
	Y      int `json:"y" yaml:"y"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Mode selects which screen axis the master size applies to.
type Mode int

const (
	Vertical Mode = iota
	Horizontal
)

func (m Mode) String() string {
	switch m {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func (m Mode) Valid() bool {
	return m == Vertical || m == Horizontal
}

// ParseMode accepts "vertical"/"horizontal" or the numeric form used by
// binding arguments.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vertical", "0":
		return Vertical, nil
	case "horizontal", "1":
		return Horizontal, nil
	}
	return 0, fmt.Errorf("unknown layout mode %q", s)
}

const (
	MinMasterSize     = 10
	MaxMasterSize     = 90
	DefaultMasterSize = 50

	// Bounds for the stepped increase/decrease bindings.
	StepMasterSize   = 10
	MinSteppedMaster = 50
	MaxSteppedMaster = 80

	DefaultDesktops = 10
)

// Layout is the per-desktop tiling configuration.
type Layout struct {
	MasterSize int
	Mode       Mode
}

// DefaultLayout is a 50% vertical split.
func DefaultLayout() Layout {
	return Layout{MasterSize: DefaultMasterSize, Mode: Vertical}
}

func (l Layout) Validate() error {
	if l.MasterSize < MinMasterSize || l.MasterSize > MaxMasterSize {
		return fmt.Errorf("master size %d outside [%d, %d]", l.MasterSize, MinMasterSize, MaxMasterSize)
	}
	if !l.Mode.Valid() {
		return fmt.Errorf("invalid layout mode %d", int(l.Mode))
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

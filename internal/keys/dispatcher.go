package keys

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// Binding ties a modifier mask and keysym to an action.
type Binding struct {
	Mod    uint16
	Sym    xproto.Keysym
	Action Action
	Arg    Arg
}

func (b Binding) String() string {
	key := KeysymName(b.Sym)
	if mods := ModifierString(b.Mod); mods != "" {
		key = mods + "+" + key
	}
	return fmt.Sprintf("%s -> %s", key, b.Action)
}

// Dispatcher holds the static, ordered binding table.
type Dispatcher struct {
	bindings []Binding
}

func NewDispatcher(bindings []Binding) *Dispatcher {
	return &Dispatcher{bindings: append([]Binding(nil), bindings...)}
}

// Bindings returns a copy of the table in declaration order.
func (d *Dispatcher) Bindings() []Binding {
	return append([]Binding(nil), d.bindings...)
}

// Match scans the whole table and returns every binding for sym whose
// cleaned modifier mask equals the cleaned event state. Duplicate chords
// all match, in table order.
func (d *Dispatcher) Match(sym xproto.Keysym, state uint16) []Binding {
	var matched []Binding
	for _, b := range d.bindings {
		if b.Sym == sym && CleanMask(b.Mod) == CleanMask(state) {
			matched = append(matched, b)
		}
	}
	return matched
}

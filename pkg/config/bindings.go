package config

import (
	"fmt"

	"tigerwm/internal/keys"
	"tigerwm/internal/wm"
)

const maxDesktops = 32

// compile validates the loaded values and builds the layout and binding
// table from them.
func (c *Config) compile() error {
	log := c.log
	log.Debug("Compiling key bindings", "key_count", len(c.keys))

	if c.desktops < 1 || c.desktops > maxDesktops {
		return fmt.Errorf("desktops must be between 1 and %d, got %d", maxDesktops, c.desktops)
	}
	mode, err := wm.ParseMode(c.mode)
	if err != nil {
		return err
	}
	layout := wm.Layout{MasterSize: c.masterSize, Mode: mode}
	if err := layout.Validate(); err != nil {
		return err
	}
	if c.screenWidth < 0 || c.screenHeight < 0 {
		return fmt.Errorf("invalid screen size %dx%d", c.screenWidth, c.screenHeight)
	}
	if c.borderWidth < 0 {
		return fmt.Errorf("invalid border width %d", c.borderWidth)
	}

	bindings := make([]keys.Binding, 0, len(c.keys))
	for i, spec := range c.keys {
		b, err := spec.compile(c.desktops)
		if err != nil {
			log.Error("Failed to compile key binding", err, "index", i, "key", spec.Key, "action", spec.Action)
			return fmt.Errorf("keys[%d] (%s %s): %w", i, spec.Mod, spec.Key, err)
		}
		bindings = append(bindings, b)
	}

	c.layout = layout
	c.bindings = bindings
	log.Debug("All key bindings compiled successfully", "compiled_count", len(bindings))
	return nil
}

func (s KeySpec) compile(desktops int) (keys.Binding, error) {
	mod, err := keys.ParseModifiers(s.Mod)
	if err != nil {
		return keys.Binding{}, err
	}
	sym, err := keys.ParseKeysym(s.Key)
	if err != nil {
		return keys.Binding{}, err
	}
	action, err := keys.ParseAction(s.Action)
	if err != nil {
		return keys.Binding{}, err
	}

	switch {
	case action == keys.ActionSpawn && len(s.Command) == 0:
		return keys.Binding{}, fmt.Errorf("spawn needs a command")
	case action.TakesDesktop() && (s.Arg < 0 || s.Arg >= desktops):
		return keys.Binding{}, fmt.Errorf("desktop %d out of range (have %d)", s.Arg, desktops)
	case action == keys.ActionSwitchMode && !wm.Mode(s.Arg).Valid():
		return keys.Binding{}, fmt.Errorf("unknown layout mode %d", s.Arg)
	}

	return keys.Binding{
		Mod:    mod,
		Sym:    sym,
		Action: action,
		Arg:    keys.Arg{I: s.Arg, Cmd: append([]string(nil), s.Command...)},
	}, nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"tigerwm/internal/wm"
	"tigerwm/pkg/logger"
)

const (
	DefaultBorderColor = "#1c1c1c"
	DefaultFocusColor  = "#5f87af"
	DefaultBorderWidth = 1
	socketName         = "tigerwm.sock"
)

var (
	terminalCmd = []string{"xterm"}
	menuCmd     = []string{"dmenu_run"}
	volUpCmd    = []string{"amixer", "-q", "set", "Master", "5%+", "unmute"}
	volDownCmd  = []string{"amixer", "-q", "set", "Master", "5%-", "unmute"}
	volMuteCmd  = []string{"amixer", "-q", "set", "Master", "toggle"}
)

// defaultKeys is the compiled-in binding table. Mod1 is Alt.
func defaultKeys() []KeySpec {
	specs := []KeySpec{
		{Mod: "Mod1+Shift", Key: "Return", Action: "spawn", Command: terminalCmd},
		{Mod: "Mod1", Key: "p", Action: "spawn", Command: menuCmd},
		{Mod: "Mod1+Shift", Key: "c", Action: "kill_client"},
		{Mod: "Mod1", Key: "j", Action: "next_win"},
		{Mod: "Mod1", Key: "k", Action: "prev_win"},
		{Mod: "Mod1+Shift", Key: "j", Action: "move_down"},
		{Mod: "Mod1+Shift", Key: "k", Action: "move_up"},
		{Mod: "Mod1", Key: "Return", Action: "swap_master"},
		{Mod: "Mod1", Key: "h", Action: "decrease"},
		{Mod: "Mod1", Key: "l", Action: "increase"},
		{Mod: "Mod1+Shift", Key: "h", Action: "resize_master", Arg: -5},
		{Mod: "Mod1+Shift", Key: "l", Action: "resize_master", Arg: 5},
		{Mod: "Mod1", Key: "v", Action: "switch_mode", Arg: int(wm.Vertical)},
		{Mod: "Mod1", Key: "b", Action: "switch_mode", Arg: int(wm.Horizontal)},
		{Mod: "Mod1", Key: "Right", Action: "next_desktop"},
		{Mod: "Mod1", Key: "Left", Action: "prev_desktop"},
		{Key: "XF86AudioRaiseVolume", Action: "spawn", Command: volUpCmd},
		{Key: "XF86AudioLowerVolume", Action: "spawn", Command: volDownCmd},
		{Key: "XF86AudioMute", Action: "spawn", Command: volMuteCmd},
	}
	for i := 0; i < wm.DefaultDesktops; i++ {
		key := strconv.Itoa((i + 1) % 10)
		specs = append(specs,
			KeySpec{Mod: "Mod1", Key: key, Action: "change_desktop", Arg: i},
			KeySpec{Mod: "Mod1+Shift", Key: key, Action: "client_to_desktop", Arg: i},
		)
	}
	return append(specs, KeySpec{Mod: "Mod1+Shift", Key: "q", Action: "quit"})
}

// DefaultSocketPath prefers $XDG_RUNTIME_DIR and falls back to /tmp.
func DefaultSocketPath() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, socketName)
	}
	return filepath.Join(os.TempDir(), socketName)
}

// DefaultStateDB returns ~/.local/share/tigerwm/state.db.
func DefaultStateDB() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "tigerwm", "state.db"), nil
}

// DefaultConfig creates a default configuration.
func DefaultConfig(log *logger.Logger) (*Config, error) {
	log.Debug("Creating default configuration")

	stateDB, err := DefaultStateDB()
	if err != nil {
		log.Warn("Layout persistence disabled", "error", err.Error())
		stateDB = ""
	}

	config := &Config{
		desktops:    wm.DefaultDesktops,
		masterSize:  wm.DefaultMasterSize,
		mode:        wm.Vertical.String(),
		borderWidth: DefaultBorderWidth,
		borderColor: DefaultBorderColor,
		focusColor:  DefaultFocusColor,
		socketPath:  DefaultSocketPath(),
		stateDB:     stateDB,
		keys:        defaultKeys(),
		log:         log,
	}

	if err := config.compile(); err != nil {
		log.Error("Failed to compile default config", err)
		return nil, fmt.Errorf("failed to compile default config: %w", err)
	}

	log.Debug("Created default configuration",
		"desktops", config.desktops,
		"binding_count", len(config.bindings))
	return config, nil
}

package config

import (
	"tigerwm/internal/keys"
	"tigerwm/internal/wm"
	"tigerwm/pkg/logger"
)

// Config holds the window manager configuration.
type Config struct {
	// Loaded from the TOML file (private fields to enforce immutability)
	desktops      int
	masterSize    int
	mode          string
	screenWidth   int
	screenHeight  int
	borderWidth   int
	borderColor   string
	focusColor    string
	socketPath    string
	stateDB       string
	notifyCommand []string
	keys          []KeySpec

	// Internal fields
	layout   wm.Layout
	bindings []keys.Binding
	log      *logger.Logger
}

// KeySpec is one key binding as written in the config file.
type KeySpec struct {
	Mod     string   `toml:"mod"`
	Key     string   `toml:"key"`
	Action  string   `toml:"action"`
	Arg     int      `toml:"arg,omitempty"`
	Command []string `toml:"command,omitempty"`
}

// fileConfig is the on-disk shape of Config.
type fileConfig struct {
	Desktops      int       `toml:"desktops"`
	MasterSize    int       `toml:"master_size"`
	Mode          string    `toml:"mode"`
	ScreenWidth   int       `toml:"screen_width"`
	ScreenHeight  int       `toml:"screen_height"`
	BorderWidth   int       `toml:"border_width"`
	BorderColor   string    `toml:"border_color"`
	FocusColor    string    `toml:"focus_color"`
	SocketPath    string    `toml:"socket_path"`
	StateDB       string    `toml:"state_db"`
	NotifyCommand []string  `toml:"notify_command"`
	Keys          []KeySpec `toml:"keys"`
}

// GetDesktops returns the number of virtual desktops.
func (c *Config) GetDesktops() int {
	return c.desktops
}

// GetLayout returns the initial layout of every desktop.
func (c *Config) GetLayout() wm.Layout {
	return c.layout
}

// GetScreen returns the fixed screen size, or zeros to use the root window.
func (c *Config) GetScreen() (width, height int) {
	return c.screenWidth, c.screenHeight
}

func (c *Config) GetBorderWidth() int {
	return c.borderWidth
}

func (c *Config) GetBorderColor() string {
	return c.borderColor
}

func (c *Config) GetFocusColor() string {
	return c.focusColor
}

// GetSocketPath returns the control socket path.
func (c *Config) GetSocketPath() string {
	return c.socketPath
}

// GetStateDB returns the layout database path. Empty disables persistence.
func (c *Config) GetStateDB() string {
	return c.stateDB
}

// GetNotifyCommand returns the argv used for desktop notifications. Empty
// means the first installed notification tool is used.
func (c *Config) GetNotifyCommand() []string {
	return append([]string(nil), c.notifyCommand...)
}

// GetBindings returns a copy of the compiled binding table.
func (c *Config) GetBindings() []keys.Binding {
	return append([]keys.Binding(nil), c.bindings...)
}

// GetKeySpecs returns a copy of the binding table as written.
func (c *Config) GetKeySpecs() []KeySpec {
	out := make([]KeySpec, len(c.keys))
	for i, k := range c.keys {
		k.Command = append([]string(nil), k.Command...)
		out[i] = k
	}
	return out
}

func (c *Config) toFile() fileConfig {
	return fileConfig{
		Desktops:      c.desktops,
		MasterSize:    c.masterSize,
		Mode:          c.mode,
		ScreenWidth:   c.screenWidth,
		ScreenHeight:  c.screenHeight,
		BorderWidth:   c.borderWidth,
		BorderColor:   c.borderColor,
		FocusColor:    c.focusColor,
		SocketPath:    c.socketPath,
		StateDB:       c.stateDB,
		NotifyCommand: c.GetNotifyCommand(),
		Keys:          c.GetKeySpecs(),
	}
}

package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"tigerwm/pkg/logger"
)

// LoadFromFile overlays the values present in a TOML file onto c.
// Keys missing from the file keep their current value; a [[keys]] table
// in the file replaces the whole binding table.
func (c *Config) LoadFromFile(path string, log *logger.Logger) error {
	log.Debug("Loading configuration from file", "path", path)

	var temp fileConfig
	md, err := toml.DecodeFile(path, &temp)
	if err != nil {
		log.Error("Failed to parse config file", err, "path", path)
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		log.Warn("Ignoring unknown config keys", "keys", fmt.Sprint(undecoded))
	}

	if md.IsDefined("desktops") {
		c.desktops = temp.Desktops
	}
	if md.IsDefined("master_size") {
		c.masterSize = temp.MasterSize
	}
	if md.IsDefined("mode") {
		c.mode = temp.Mode
	}
	if md.IsDefined("screen_width") {
		c.screenWidth = temp.ScreenWidth
	}
	if md.IsDefined("screen_height") {
		c.screenHeight = temp.ScreenHeight
	}
	if md.IsDefined("border_width") {
		c.borderWidth = temp.BorderWidth
	}
	if md.IsDefined("border_color") {
		c.borderColor = temp.BorderColor
	}
	if md.IsDefined("focus_color") {
		c.focusColor = temp.FocusColor
	}
	if md.IsDefined("socket_path") {
		c.socketPath = temp.SocketPath
	}
	if md.IsDefined("state_db") {
		c.stateDB = temp.StateDB
	}
	if md.IsDefined("notify_command") {
		c.notifyCommand = temp.NotifyCommand
	}
	if md.IsDefined("keys") {
		c.keys = temp.Keys
	}

	return c.compile()
}

// WriteFile stores c as TOML at path.
func (c *Config) WriteFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(c.toFile()); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return f.Close()
}

// loadConfigFromPath loads defaults overlaid with the file at path.
func loadConfigFromPath(path string, log *logger.Logger) (*Config, error) {
	config, err := DefaultConfig(log)
	if err != nil {
		return nil, err
	}
	if err := config.LoadFromFile(path, log); err != nil {
		return nil, err
	}
	return config, nil
}

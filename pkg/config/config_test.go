package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tigerwm/internal/keys"
	"tigerwm/internal/wm"
	"tigerwm/pkg/logger"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	c, err := DefaultConfig(logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, wm.DefaultDesktops, c.GetDesktops())
	assert.Equal(t, wm.DefaultLayout(), c.GetLayout())
	assert.Equal(t, DefaultBorderColor, c.GetBorderColor())
	assert.Equal(t, DefaultFocusColor, c.GetFocusColor())
	assert.Equal(t, DefaultBorderWidth, c.GetBorderWidth())

	bindings := c.GetBindings()
	require.Len(t, bindings, len(defaultKeys()))

	last := bindings[len(bindings)-1]
	assert.Equal(t, keys.ActionQuit, last.Action)
	assert.Equal(t, "Mod1+Shift+q -> quit", last.String())

	var desktopKeys int
	for _, b := range bindings {
		if b.Action == keys.ActionChangeDesktop {
			desktopKeys++
		}
	}
	assert.Equal(t, wm.DefaultDesktops, desktopKeys)
}

func TestLoadFromFileOverridesOnlyDefinedKeys(t *testing.T) {
	path := writeFile(t, `
master_size = 60
mode = "horizontal"
screen_width = 1024
screen_height = 768
`)
	c, err := loadConfigFromPath(path, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, wm.Layout{MasterSize: 60, Mode: wm.Horizontal}, c.GetLayout())
	w, h := c.GetScreen()
	assert.Equal(t, 1024, w)
	assert.Equal(t, 768, h)
	assert.Equal(t, wm.DefaultDesktops, c.GetDesktops())
	assert.Len(t, c.GetBindings(), len(defaultKeys()))
}

func TestLoadFromFileReplacesKeyTable(t *testing.T) {
	path := writeFile(t, `
desktops = 2

[[keys]]
mod = "Super"
key = "t"
action = "spawn"
command = ["alacritty", "-e", "htop"]

[[keys]]
mod = "Super"
key = "2"
action = "client_to_desktop"
arg = 1
`)
	c, err := loadConfigFromPath(path, logger.Nop())
	require.NoError(t, err)

	bindings := c.GetBindings()
	require.Len(t, bindings, 2)
	assert.Equal(t, keys.ActionSpawn, bindings[0].Action)
	assert.Equal(t, []string{"alacritty", "-e", "htop"}, bindings[0].Arg.Cmd)
	assert.Equal(t, uint16(xproto.ModMask4), bindings[0].Mod)
	assert.Equal(t, keys.ActionClientToDesktop, bindings[1].Action)
	assert.Equal(t, 1, bindings[1].Arg.I)
}

func TestLoadFromFileRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad toml", `desktops = [`},
		{"zero desktops", `desktops = 0`},
		{"master too large", `master_size = 95`},
		{"unknown mode", `mode = "spiral"`},
		{"negative border", `border_width = -1`},
		{"unknown action", "[[keys]]\nkey = \"a\"\naction = \"teleport\""},
		{"unknown key", "[[keys]]\nkey = \"nosuchkey\"\naction = \"quit\""},
		{"spawn without command", "[[keys]]\nkey = \"a\"\naction = \"spawn\""},
		{"desktop out of range", "desktops = 3\n[[keys]]\nkey = \"a\"\naction = \"change_desktop\"\narg = 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfigFromPath(writeFile(t, tt.body), logger.Nop())
			assert.Error(t, err)
		})
	}
}

func TestDefaultBindingsMustFitDesktops(t *testing.T) {
	// The default table binds ten desktops; shrinking the count without
	// replacing the keys is an error.
	_, err := loadConfigFromPath(writeFile(t, `desktops = 4`), logger.Nop())
	assert.Error(t, err)
}

func TestFindConfigWritesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	c, err := FindConfig("", logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, wm.DefaultDesktops, c.GetDesktops())

	path := filepath.Join(dir, "tigerwm", "config.toml")
	require.FileExists(t, path)

	again, err := FindConfig("", logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, c.GetKeySpecs(), again.GetKeySpecs())
	assert.Equal(t, c.GetLayout(), again.GetLayout())
}

func TestFindConfigFallsBackOnBrokenDefault(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "tigerwm"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tigerwm", "config.toml"), []byte("mode = 3"), 0644))

	c, err := FindConfig("", logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, wm.DefaultLayout(), c.GetLayout())
}

func TestFindConfigExplicitPathMustLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := FindConfig(filepath.Join(t.TempDir(), "missing.toml"), logger.Nop())
	assert.Error(t, err)

	c, err := FindConfig(writeFile(t, `master_size = 70`), logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, 70, c.GetLayout().MasterSize)
}

func TestNotifyCommand(t *testing.T) {
	c, err := loadConfigFromPath(writeFile(t, `notify_command = ["notify-send", "-t", "3000"]`), logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, []string{"notify-send", "-t", "3000"}, c.GetNotifyCommand())

	d, err := DefaultConfig(logger.Nop())
	require.NoError(t, err)
	assert.Empty(t, d.GetNotifyCommand())
}

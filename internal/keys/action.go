package keys

import (
	"fmt"
	"strconv"
	"strings"
)

// Action names an engine operation a binding or control command can invoke.
type Action int

const (
	ActionNone Action = iota
	ActionSpawn
	ActionKillClient
	ActionNextWin
	ActionPrevWin
	ActionMoveUp
	ActionMoveDown
	ActionSwapMaster
	ActionIncrease
	ActionDecrease
	ActionResizeMaster
	ActionSwitchMode
	ActionChangeDesktop
	ActionNextDesktop
	ActionPrevDesktop
	ActionClientToDesktop
	ActionQuit
)

var actionNames = map[Action]string{
	ActionNone:            "none",
	ActionSpawn:           "spawn",
	ActionKillClient:      "kill_client",
	ActionNextWin:         "next_win",
	ActionPrevWin:         "prev_win",
	ActionMoveUp:          "move_up",
	ActionMoveDown:        "move_down",
	ActionSwapMaster:      "swap_master",
	ActionIncrease:        "increase",
	ActionDecrease:        "decrease",
	ActionResizeMaster:    "resize_master",
	ActionSwitchMode:      "switch_mode",
	ActionChangeDesktop:   "change_desktop",
	ActionNextDesktop:     "next_desktop",
	ActionPrevDesktop:     "prev_desktop",
	ActionClientToDesktop: "client_to_desktop",
	ActionQuit:            "quit",
}

var actionAliases = map[string]Action{
	"start":          ActionSpawn,
	"select_desktop": ActionChangeDesktop,
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Action(" + strconv.Itoa(int(a)) + ")"
}

// ParseAction accepts the snake_case names produced by String, plus a few
// historical aliases. Dashes are treated as underscores.
func ParseAction(name string) (Action, error) {
	name = strings.ReplaceAll(strings.TrimSpace(name), "-", "_")
	for a, n := range actionNames {
		if n == name {
			return a, nil
		}
	}
	if a, ok := actionAliases[name]; ok {
		return a, nil
	}
	return ActionNone, fmt.Errorf("unknown action %q", name)
}

// TakesDesktop reports whether the integer argument is a desktop index.
func (a Action) TakesDesktop() bool {
	return a == ActionChangeDesktop || a == ActionClientToDesktop
}

// Arg is the argument bound alongside an action. Spawn uses Cmd, everything
// else that needs a value uses I.
type Arg struct {
	I   int
	Cmd []string
}

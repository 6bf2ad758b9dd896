package ipc

import (
	"fmt"
	"strconv"

	"tigerwm/internal/keys"
	"tigerwm/internal/wm"
	"tigerwm/pkg/global"
)

// StatusCommand reports state without changing it.
const StatusCommand = "status"

type Request struct {
	Command string   `json:"command"`
	Args    []string `json:"args,omitempty"`
}

type Response struct {
	Status   string            `json:"status" yaml:"status"`
	Message  string            `json:"message,omitempty" yaml:"message,omitempty"`
	Desktops []wm.DesktopState `json:"desktops,omitempty" yaml:"desktops,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// parseRequest turns a request into the action and argument the engine
// runs.
func parseRequest(req Request) (keys.Action, keys.Arg, error) {
	if req.Command == StatusCommand {
		return keys.ActionNone, keys.Arg{}, nil
	}
	action, err := keys.ParseAction(req.Command)
	if err != nil {
		return keys.ActionNone, keys.Arg{}, err
	}

	switch action {
	case keys.ActionSpawn:
		if len(req.Args) == 0 {
			return keys.ActionNone, keys.Arg{}, fmt.Errorf("spawn needs a command")
		}
		return action, keys.Arg{Cmd: append([]string(nil), req.Args...)}, nil

	case keys.ActionSwitchMode:
		if len(req.Args) != 1 {
			return keys.ActionNone, keys.Arg{}, fmt.Errorf("switch_mode needs one argument")
		}
		if mode, err := wm.ParseMode(req.Args[0]); err == nil {
			return action, keys.Arg{I: int(mode)}, nil
		}
		n, err := strconv.Atoi(req.Args[0])
		if err != nil || !wm.Mode(n).Valid() {
			return keys.ActionNone, keys.Arg{}, fmt.Errorf("unknown layout mode %q", req.Args[0])
		}
		return action, keys.Arg{I: n}, nil

	case keys.ActionResizeMaster, keys.ActionChangeDesktop, keys.ActionClientToDesktop:
		if len(req.Args) != 1 {
			return keys.ActionNone, keys.Arg{}, fmt.Errorf("%s needs one integer argument", action)
		}
		n, err := strconv.Atoi(req.Args[0])
		if err != nil {
			return keys.ActionNone, keys.Arg{}, fmt.Errorf("invalid argument %q: %w", req.Args[0], err)
		}
		if action.TakesDesktop() {
			if cfg := global.GetConfig(); cfg != nil && (n < 0 || n >= cfg.GetDesktops()) {
				return keys.ActionNone, keys.Arg{}, fmt.Errorf("desktop %d out of range (have %d)", n, cfg.GetDesktops())
			}
		}
		return action, keys.Arg{I: n}, nil
	}

	if len(req.Args) > 0 {
		return keys.ActionNone, keys.Arg{}, fmt.Errorf("%s takes no arguments", action)
	}
	return action, keys.Arg{}, nil
}

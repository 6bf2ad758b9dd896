package app

import (
	"fmt"
	"strings"

	"tigerwm/internal/wm"
	"tigerwm/pkg/global"
	"tigerwm/pkg/notify"
)

// warn logs a degraded-mode message and shows it on the desktop, where
// a user without a terminal can see it.
func (a *TigerWM) warn(message string, err error) {
	a.log.Warn(message, "error", err.Error())
	showAsync(message, err)
}

func showAsync(message string, err error) {
	n := global.GetNotifier()
	if n == nil {
		return
	}
	go n.Show("tigerwm", fmt.Sprintf("%s: %v", message, err), notify.Error)
}

// notifyingSpawner reports launch failures on the desktop as well as to
// the engine.
type notifyingSpawner struct {
	wm.Spawner
}

func (s notifyingSpawner) Spawn(argv []string) error {
	err := s.Spawner.Spawn(argv)
	if err != nil {
		showAsync("Failed to launch "+strings.Join(argv, " "), err)
	}
	return err
}

package launcher

import (
	"fmt"
	"os/exec"
	"sync"
	"syscall"

	"tigerwm/pkg/core"
)

// Launcher starts programs from key bindings. Children run in their own
// session so they outlive the window manager, and are reaped in the
// background so the event loop never blocks on them.
type Launcher struct {
	log     core.Logger
	running sync.WaitGroup
}

func New(log core.Logger) *Launcher {
	return &Launcher{log: log}
}

// Spawn starts argv and returns once the process exists.
func (l *Launcher) Spawn(argv []string) error {
	if len(argv) == 0 || argv[0] == "" {
		return fmt.Errorf("empty command")
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", argv[0], err)
	}

	pid := cmd.Process.Pid
	l.log.Debug("Spawned command", "command", argv, "pid", pid)

	l.running.Add(1)
	go func() {
		defer l.running.Done()
		if err := cmd.Wait(); err != nil {
			l.log.Debug("Command exited", "command", argv[0], "pid", pid, "error", err.Error())
			return
		}
		l.log.Debug("Command exited", "command", argv[0], "pid", pid)
	}()
	return nil
}

// wait blocks until every spawned child has been reaped.
func (l *Launcher) wait() {
	l.running.Wait()
}

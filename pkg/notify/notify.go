package notify

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"tigerwm/pkg/core"
)

// NotificationType represents the type of notification
type NotificationType int

const (
	Error NotificationType = iota
	Info
)

func (t NotificationType) String() string {
	if t == Error {
		return "ERROR"
	}
	return "INFO"
}

// ErrNoTool is returned by Show when no notifier could display anything.
var ErrNoTool = errors.New("no notification tool available")

// systemTools are tried in order when no command is configured or it fails.
var systemTools = []string{"dunstify", "notify-send", "xmessage"}

// NotifyService handles desktop notifications
type NotifyService struct {
	log           core.Logger
	notifyCommand []string
}

// NewNotifyService creates a new notification service. notifyCommand, when
// set, is tried first and receives the type, title and message as its
// last three arguments.
func NewNotifyService(notifyCommand []string, log core.Logger) *NotifyService {
	return &NotifyService{
		log:           log,
		notifyCommand: append([]string(nil), notifyCommand...),
	}
}

// Show displays a notification of the specified type. It blocks until the
// notification tool exits.
func (n *NotifyService) Show(title, message string, nType NotificationType) error {
	// First try configured notification command if available
	if len(n.notifyCommand) > 0 {
		if err := n.executeNotifyCommand(title, message, nType); err == nil {
			return nil
		}
		n.log.Warn("Custom notification command failed", "command", n.notifyCommand)
	}

	for _, tool := range systemTools {
		path, err := exec.LookPath(tool)
		if err != nil {
			continue
		}
		if err := exec.Command(path, toolArgs(tool, title, message, nType)...).Run(); err != nil {
			n.log.Debug("Notification tool failed", "tool", tool, "error", err.Error())
			continue
		}
		n.log.Debug("Notification sent", "tool", tool, "type", nType.String())
		return nil
	}

	n.log.Warn("No notification shown", "title", title, "message", message)
	return ErrNoTool
}

// toolArgs builds the command line for one of systemTools. Errors are
// shown as critical where the tool knows about urgency.
func toolArgs(tool, title, message string, nType NotificationType) []string {
	urgency := "normal"
	if nType == Error {
		urgency = "critical"
	}
	switch tool {
	case "dunstify":
		return []string{"-a", "tigerwm", "-u", urgency, "-t", "5000", title, message}
	case "notify-send":
		return []string{"-a", "tigerwm", "-u", urgency, title, message}
	default:
		return []string{"-center", "-timeout", "5", strings.Join([]string{title, message}, ": ")}
	}
}

func (n *NotifyService) executeNotifyCommand(title, message string, nType NotificationType) error {
	n.log.Debug("Executing notify command", "command", n.notifyCommand, "type", nType.String())

	args := append(append([]string(nil), n.notifyCommand[1:]...), nType.String(), title, message)
	if err := exec.Command(n.notifyCommand[0], args...).Run(); err != nil {
		return fmt.Errorf("notify command: %w", err)
	}
	return nil
}

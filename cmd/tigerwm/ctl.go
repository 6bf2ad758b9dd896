package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"tigerwm/internal/ipc"
	"tigerwm/pkg/config"
	"tigerwm/pkg/logger"
)

func newCtlCmd(configPath *string) *cobra.Command {
	var (
		socketPath string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "ctl <command> [args...]",
		Short: "Send a command to a running tigerwm",
		Long: `Send a command to a running tigerwm over its control socket and print
the reply with the state of every desktop.

Commands are action names (next_win, swap_master, change_desktop 2,
spawn xterm, ...) or "status".`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveSocket(socketPath, *configPath)
			if err != nil {
				return err
			}
			resp, err := ipc.SendCommand(path, args[0], args[1:]...)
			if err != nil {
				return err
			}
			if err := writeResponse(cmd.OutOrStdout(), format, resp); err != nil {
				return err
			}
			if resp.Status != ipc.StatusSuccess {
				return fmt.Errorf("%s: %s", args[0], resp.Message)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&socketPath, "socket", "", "control socket path (default from config)")
	cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml or json")
	return cmd
}

// resolveSocket picks the explicit socket, then the one named by an
// explicit config file, then the default location.
func resolveSocket(socketPath, configPath string) (string, error) {
	if socketPath != "" {
		return socketPath, nil
	}
	if configPath != "" {
		cfg, err := config.FindConfig(configPath, logger.Nop())
		if err != nil {
			return "", err
		}
		return cfg.GetSocketPath(), nil
	}
	return config.DefaultSocketPath(), nil
}

func writeResponse(w io.Writer, format string, resp ipc.Response) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(resp); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
}

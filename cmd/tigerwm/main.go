package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tigerwm/internal/app"
	"tigerwm/internal/wm"
	"tigerwm/pkg/config"
	"tigerwm/pkg/global"
	"tigerwm/pkg/logger"
)

const version = "1.0.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		debug      bool
		logToFile  bool
	)

	root := &cobra.Command{
		Use:           "tigerwm",
		Short:         "A small tiling window manager for X11",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWM(cmd.Context(), configPath, debug, logToFile)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	root.Flags().BoolVar(&logToFile, "log-file", false, "also log to "+logger.DefaultLogDir+"/"+logger.DefaultLogFile)

	root.AddCommand(newCtlCmd(&configPath))
	return root
}

func newLogger(debug, logToFile bool) (*logger.Logger, error) {
	// Setup logging level
	logLevel := zerolog.InfoLevel
	if debug {
		logLevel = zerolog.DebugLevel
	}

	opts := []logger.Option{logger.WithConsole(), logger.WithLevel(logLevel)}
	if logToFile {
		path, err := logger.DefaultLogPath()
		if err != nil {
			return nil, err
		}
		opts = append(opts, logger.WithFile(path))
	}
	return logger.NewLogger(opts...)
}

func runWM(ctx context.Context, configPath string, debug, logToFile bool) error {
	// Initialize logger first for early logging
	log, err := newLogger(debug, logToFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return err
	}
	defer log.Close()

	log.Info("Starting tigerwm",
		"version", version,
		"pid", os.Getpid(),
		"os", runtime.GOOS,
		"arch", runtime.GOARCH,
		"debug", debug)

	// Load configuration
	log.Debug("Loading configuration", "provided_path", configPath)

	cfg, err := config.FindConfig(configPath, log)
	if err != nil {
		log.Error("Failed to load configuration", err,
			"provided_path", configPath)
		return err
	}
	log.Info("Configuration loaded successfully",
		"desktops", cfg.GetDesktops(),
		"binding_count", len(cfg.GetBindings()),
		"socket", cfg.GetSocketPath())

	// Initialize globals
	global.InitGlobals(cfg, log)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	wmApp, err := app.NewTigerWM()
	if err != nil {
		log.Fatal("Failed to start window manager", err)
	}

	if err := wmApp.Run(ctx); err != nil {
		if errors.Is(err, wm.ErrForcedShutdown) {
			log.Fatal("tigerwm: forced shutdown", nil)
		}
		log.Error("Window manager stopped", err)
		return err
	}

	log.Info("tigerwm: Thanks for using!")
	return nil
}

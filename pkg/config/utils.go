package config

import (
	"fmt"
	"os"
	"path/filepath"

	"tigerwm/pkg/logger"
)

// initializeConfig creates or loads the configuration.
func initializeConfig(providedPath string, defaultPath string, log *logger.Logger) (*Config, error) {
	// Try provided path first if specified
	if providedPath != "" {
		config, err := loadConfigFromPath(providedPath, log)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from provided path: %w", err)
		}
		return config, nil
	}

	// Try default path, create if doesn't exist
	if _, err := os.Stat(defaultPath); os.IsNotExist(err) {
		config, err := DefaultConfig(log)
		if err != nil {
			return nil, err
		}
		if err := config.WriteFile(defaultPath); err != nil {
			log.Warn("Failed to write default config", "path", defaultPath, "error", err.Error())
		} else {
			log.Info("Wrote default configuration", "path", defaultPath)
		}
		return config, nil
	}

	config, err := loadConfigFromPath(defaultPath, log)
	if err != nil {
		log.Error("Falling back to default configuration", err, "path", defaultPath)
		return DefaultConfig(log)
	}
	return config, nil
}

// FindConfig locates and initializes the configuration. An explicit path
// must load; otherwise $XDG_CONFIG_HOME/tigerwm/config.toml is used,
// written from the defaults when it does not exist yet.
func FindConfig(providedPath string, log *logger.Logger) (*Config, error) {
	log.Info("Looking for configuration", "provided_path", providedPath)

	// Get user config directory
	homeConfigDir, err := os.UserConfigDir()
	if err != nil {
		log.Error("Failed to get user config directory", err)
		return nil, err
	}

	defaultConfigDir := filepath.Join(homeConfigDir, "tigerwm")
	defaultConfigPath := filepath.Join(defaultConfigDir, "config.toml")

	log.Debug("Configuration paths",
		"config_dir", defaultConfigDir,
		"config_path", defaultConfigPath)

	if err := os.MkdirAll(defaultConfigDir, 0755); err != nil {
		log.Error("Failed to create directory", err, "path", defaultConfigDir)
		return nil, err
	}

	return initializeConfig(providedPath, defaultConfigPath, log)
}

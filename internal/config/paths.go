package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrz1836/cutline/internal/constants"
	"github.com/mrz1836/cutline/internal/errors"
)

// GlobalConfigDir returns the path to the global cutline directory.
// This is typically ~/.cutline on Unix systems.
//
// Returns an error if the home directory cannot be determined.
func GlobalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.CutlineHome), nil
}

// ProjectConfigDir returns the relative path to the project configuration directory.
func ProjectConfigDir() string {
	return constants.CutlineHome
}

// GlobalConfigPath returns the full path to the global configuration file.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", fmt.Errorf("get global config path: %w", err)
	}
	return filepath.Join(dir, constants.ConfigFileName), nil
}

// ProjectConfigPath returns the relative path to the project configuration file.
func ProjectConfigPath() string {
	return filepath.Join(ProjectConfigDir(), constants.ConfigFileName)
}

// LogFilePath returns the log file to write: cfg.File when set, otherwise
// ~/.cutline/logs/cutline.log.
func LogFilePath(cfg LogConfig) (string, error) {
	if cfg.File != "" {
		return cfg.File, nil
	}
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.LogsDir, constants.LogFileName), nil
}

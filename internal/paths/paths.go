// Package paths resolves the per-user directories taskboard reads from.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeDir returns the current user's home directory.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return home, nil
}

// WorkingDir returns the current working directory.
func WorkingDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return cwd, nil
}

// DefaultConfigDir returns the per-user taskboard config directory.
func DefaultConfigDir() (string, error) {
	home, err := HomeDir()
	if err != nil {
		return "", err
	}
	return ConfigDirIn(home), nil
}

// ConfigDirIn returns the taskboard config directory under home.
func ConfigDirIn(home string) string {
	return filepath.Join(home, ".config", "taskboard")
}

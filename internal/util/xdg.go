package util

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetXDGDataDir returns the XDG data directory for codebuddy.
// It respects XDG_DATA_HOME if set, otherwise falls back to ~/.local/share/codebuddy
func GetXDGDataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, "codebuddy"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".local", "share", "codebuddy"), nil
}

// DefaultDatabasePath returns the SQLite file used when none is configured.
func DefaultDatabasePath() (string, error) {
	dir, err := GetXDGDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "codebuddy.db"), nil
}

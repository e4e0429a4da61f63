package core

import (
	"os"
	"path/filepath"
	"runtime"
)

// GetHorizrLocalStore returns the directory holding user-wide horizr configuration
func GetHorizrLocalStore() (string, error) {
	if //goland:noinspection GoBoolExpressions
	runtime.GOOS == "linux" {
		// Prefer $XDG_CONFIG_HOME if it is set explicitly
		configHome := os.Getenv("XDG_CONFIG_HOME")
		if configHome != "" {
			return filepath.Join(configHome, "horizr"), nil
		}
	}
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userConfigDir, "horizr"), nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	homeFilenames = []string{
		".qpad.toml",
		".qpad.yaml",
		".qpad.yml",
		".qpad.json",
	}
	xdgFilenames = []string{
		"config.toml",
		"config.yaml",
		"config.yml",
		"config.json",
	}
)

// Find returns the config file to load and where it was found ("explicit",
// "xdg" or "home"). No file at all is not an error: both results are empty.
func Find(explicitPath, xdgHome, home string) (string, string, error) {
	if explicit := strings.TrimSpace(explicitPath); explicit != "" {
		candidate, err := filepath.Abs(explicit)
		if err != nil {
			return "", "", err
		}
		info, err := os.Stat(candidate)
		if err != nil {
			return "", "", err
		}
		if info.IsDir() {
			return "", "", fmt.Errorf("config path %q points to a directory", candidate)
		}
		return candidate, "explicit", nil
	}

	homeDir := strings.TrimSpace(home)
	if homeDir == "" {
		if h, err := os.UserHomeDir(); err == nil {
			homeDir = h
		}
	}

	xdgRoot := strings.TrimSpace(xdgHome)
	if xdgRoot == "" && homeDir != "" {
		xdgRoot = filepath.Join(homeDir, ".config")
	}
	if xdgRoot != "" {
		for _, name := range xdgFilenames {
			candidate := filepath.Join(xdgRoot, "qpad", name)
			if fileExists(candidate) {
				return candidate, "xdg", nil
			}
		}
	}

	if homeDir != "" {
		for _, name := range homeFilenames {
			candidate := filepath.Join(homeDir, name)
			if fileExists(candidate) {
				return candidate, "home", nil
			}
		}
	}

	return "", "", nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

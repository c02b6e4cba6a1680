package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ApplyEnv overrides cfg with QPAD_THEME, QPAD_AUTOSAVE and QPAD_LOG. Unset or
// blank variables leave the file value alone.
func ApplyEnv(cfg Config, getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	var errs []error

	if raw := strings.TrimSpace(getenv("QPAD_THEME")); raw != "" {
		cfg.Theme = raw
	}
	if raw := strings.TrimSpace(getenv("QPAD_AUTOSAVE")); raw != "" {
		v, err := parseBool(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("QPAD_AUTOSAVE: %w", err))
		} else {
			cfg.Autosave = v
		}
	}
	if raw := strings.TrimSpace(getenv("QPAD_LOG")); raw != "" {
		cfg.LogFile = raw
	}
	return cfg, errors.Join(errs...)
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	return strconv.ParseBool(raw)
}

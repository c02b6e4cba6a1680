package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fivemoreminix/qpad/pkg/buffer"
	"github.com/fivemoreminix/qpad/pkg/editor"
)

const (
	HighlighterRegexp = "regexp"
	HighlighterChroma = "chroma"
)

type Config struct {
	Theme            string `toml:"theme" yaml:"theme" json:"theme"`
	Autosave         bool   `toml:"autosave" yaml:"autosave" json:"autosave"`
	AutosaveInterval string `toml:"autosave_interval" yaml:"autosave_interval" json:"autosave_interval"`
	DefaultLanguage  string `toml:"default_language" yaml:"default_language" json:"default_language"`
	Highlighter      string `toml:"highlighter" yaml:"highlighter" json:"highlighter"`
	TabSize          int    `toml:"tab_size" yaml:"tab_size" json:"tab_size"`
	LogFile          string `toml:"log_file" yaml:"log_file" json:"log_file"`

	Languages []LanguageConfig `toml:"languages" yaml:"languages" json:"languages"`
}

// LanguageConfig is a user rule set. Its rules are applied in order after the
// keyword pattern, like the built-in languages.
type LanguageConfig struct {
	Name       string       `toml:"name" yaml:"name" json:"name"`
	Keywords   string       `toml:"keywords" yaml:"keywords" json:"keywords"`
	Extensions []string     `toml:"extensions" yaml:"extensions" json:"extensions"`
	Rules      []RuleConfig `toml:"rules" yaml:"rules" json:"rules"`
}

type RuleConfig struct {
	Pattern   string `toml:"pattern" yaml:"pattern" json:"pattern"`
	Tag       string `toml:"tag" yaml:"tag" json:"tag"`
	Multiline bool   `toml:"multiline" yaml:"multiline" json:"multiline"`
	DotAll    bool   `toml:"dotall" yaml:"dotall" json:"dotall"`
}

func Default() Config {
	return Config{
		Theme:            string(editor.ThemeDark),
		AutosaveInterval: editor.DefaultAutosaveInterval.String(),
		DefaultLanguage:  "python",
		Highlighter:      HighlighterRegexp,
		TabSize:          4,
	}
}

// Interval parses AutosaveInterval. An empty value means the default.
func (c Config) Interval() (time.Duration, error) {
	raw := strings.TrimSpace(c.AutosaveInterval)
	if raw == "" {
		return editor.DefaultAutosaveInterval, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid autosave_interval: %s", raw)
	}
	if d <= 0 {
		return 0, fmt.Errorf("autosave_interval must be positive")
	}
	return d, nil
}

func (c Config) Validate() error {
	if _, err := editor.ParseTheme(c.Theme); err != nil {
		return err
	}
	if _, err := c.Interval(); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(c.Highlighter)) {
	case "", HighlighterRegexp, HighlighterChroma:
	default:
		return fmt.Errorf("invalid highlighter: %s", c.Highlighter)
	}
	if c.TabSize < 1 || c.TabSize > 16 {
		return fmt.Errorf("tab_size must be between 1 and 16")
	}
	for _, lang := range c.Languages {
		if strings.TrimSpace(lang.Name) == "" {
			return fmt.Errorf("language without a name")
		}
	}
	return nil
}

// LanguageDefs converts the user rule sets for a buffer.RuleTable and returns
// the extension table that goes with them. A rule set with an unknown tag is
// left out and reported as a *buffer.ConfigError; the others are unaffected.
func (c Config) LanguageDefs() ([]buffer.LanguageDef, map[string]string, []error) {
	var defs []buffer.LanguageDef
	var errs []error
	extensions := make(map[string]string)

	for _, lang := range c.Languages {
		def, err := lang.def()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		defs = append(defs, def)
		for _, ext := range lang.Extensions {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			extensions[ext] = def.Name
		}
	}
	return defs, extensions, errs
}

func (l LanguageConfig) def() (buffer.LanguageDef, error) {
	def := buffer.LanguageDef{
		Name:     strings.TrimSpace(l.Name),
		Keywords: l.Keywords,
	}
	for _, r := range l.Rules {
		tag, err := buffer.ParseTag(r.Tag)
		if err != nil {
			return buffer.LanguageDef{}, &buffer.ConfigError{Language: def.Name, Pattern: r.Pattern, Err: err}
		}
		var mode buffer.ScanMode
		if r.Multiline {
			mode |= buffer.Multiline
		}
		if r.DotAll {
			mode |= buffer.DotAll
		}
		def.Rules = append(def.Rules, buffer.Rule{Pattern: r.Pattern, Tag: tag, Mode: mode})
	}
	return def, nil
}

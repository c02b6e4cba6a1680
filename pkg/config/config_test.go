package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/fivemoreminix/qpad/pkg/buffer"
)

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.DefaultLanguage != "python" || cfg.Theme != "dark" || cfg.TabSize != 4 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if d, _ := cfg.Interval(); d != 30*time.Second {
		t.Fatalf("expected 30s interval, got %v", d)
	}
}

func TestLoadConfigFormats(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		".toml": "theme = \"light\"\nautosave = true\nautosave_interval = \"1m\"\n\n[[languages]]\nname = \"go\"\nkeywords = '\\b(func|return)\\b'\nextensions = [\".go\"]\n[[languages.rules]]\npattern = '//.*?$'\ntag = \"comment\"\nmultiline = true\n",
		".yaml": "theme: light\nautosave: true\nautosave_interval: 1m\nlanguages:\n  - name: go\n    keywords: '\\b(func|return)\\b'\n    extensions: [.go]\n    rules:\n      - pattern: '//.*?$'\n        tag: comment\n        multiline: true\n",
		".json": "{\"theme\": \"light\", \"autosave\": true, \"autosave_interval\": \"1m\", \"languages\": [{\"name\": \"go\", \"keywords\": \"\\\\b(func|return)\\\\b\", \"extensions\": [\".go\"], \"rules\": [{\"pattern\": \"//.*?$\", \"tag\": \"comment\", \"multiline\": true}]}]}",
	}

	for ext, content := range cases {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(dir, "config"+ext)
			writeConfig(t, path, content)

			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if err := cfg.Validate(); err != nil {
				t.Fatalf("Validate failed: %v", err)
			}
			if cfg.Theme != "light" || !cfg.Autosave {
				t.Fatalf("%s: unexpected values %+v", ext, cfg)
			}
			if d, _ := cfg.Interval(); d != time.Minute {
				t.Fatalf("%s: expected 1m, got %v", ext, d)
			}
			if cfg.TabSize != 4 || cfg.DefaultLanguage != "python" {
				t.Fatalf("%s: expected unset keys to keep defaults, got %+v", ext, cfg)
			}

			defs, exts, errs := cfg.LanguageDefs()
			if len(errs) != 0 {
				t.Fatalf("%s: unexpected errors %v", ext, errs)
			}
			want := []buffer.LanguageDef{{
				Name:     "go",
				Keywords: `\b(func|return)\b`,
				Rules:    []buffer.Rule{{Pattern: `//.*?$`, Tag: buffer.Comment, Mode: buffer.Multiline}},
			}}
			if !reflect.DeepEqual(defs, want) {
				t.Fatalf("%s: expected %+v, got %+v", ext, want, defs)
			}
			if exts[".go"] != "go" {
				t.Fatalf("%s: expected .go extension, got %v", ext, exts)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if cfg, err := Load(""); err != nil || !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("expected defaults for an empty path, got %+v %v", cfg, err)
	}
	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}

	ini := filepath.Join(dir, "config.ini")
	writeConfig(t, ini, "theme=light")
	if _, err := Load(ini); err == nil {
		t.Fatal("expected unsupported format error")
	}

	broken := filepath.Join(dir, "broken.toml")
	writeConfig(t, broken, "theme = ")
	if _, err := Load(broken); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		modify func(*Config)
	}{
		{"theme", func(c *Config) { c.Theme = "solarized" }},
		{"interval", func(c *Config) { c.AutosaveInterval = "soon" }},
		{"negative interval", func(c *Config) { c.AutosaveInterval = "-1s" }},
		{"highlighter", func(c *Config) { c.Highlighter = "treesitter" }},
		{"tab size", func(c *Config) { c.TabSize = 0 }},
		{"language name", func(c *Config) { c.Languages = []LanguageConfig{{}} }},
	}
	for _, tc := range cases {
		cfg := Default()
		tc.modify(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestLanguageDefsBadTag(t *testing.T) {
	cfg := Default()
	cfg.Languages = []LanguageConfig{
		{Name: "bad", Extensions: []string{"bad"}, Rules: []RuleConfig{{Pattern: "x", Tag: "shiny"}}},
		{Name: "ok", Extensions: []string{"OK"}, Rules: []RuleConfig{{Pattern: `"[^"]*"`, Tag: "string", DotAll: true}}},
	}

	defs, exts, errs := cfg.LanguageDefs()
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	}
	var cfgErr *buffer.ConfigError
	if !errors.As(errs[0], &cfgErr) || cfgErr.Language != "bad" {
		t.Fatalf("expected ConfigError for bad, got %v", errs[0])
	}
	if len(defs) != 1 || defs[0].Name != "ok" || defs[0].Rules[0].Mode != buffer.DotAll {
		t.Fatalf("unexpected defs %+v", defs)
	}
	if !reflect.DeepEqual(exts, map[string]string{".ok": "ok"}) {
		t.Fatalf("unexpected extensions %v", exts)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"QPAD_THEME":    "light",
		"QPAD_AUTOSAVE": "on",
		"QPAD_LOG":      "/tmp/qpad.log",
	}
	cfg, err := ApplyEnv(Default(), func(key string) string { return env[key] })
	if err != nil {
		t.Fatalf("ApplyEnv returned error: %v", err)
	}
	if cfg.Theme != "light" || !cfg.Autosave || cfg.LogFile != "/tmp/qpad.log" {
		t.Fatalf("unexpected config %+v", cfg)
	}

	base := Default()
	base.Autosave = true
	cfg, err = ApplyEnv(base, func(key string) string {
		if key == "QPAD_AUTOSAVE" {
			return "maybe"
		}
		return ""
	})
	if err == nil {
		t.Fatal("expected an error for an invalid boolean")
	}
	if !cfg.Autosave {
		t.Fatal("expected the invalid value to be ignored")
	}

	if cfg, err := ApplyEnv(Default(), nil); err != nil || !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("expected nil getenv to change nothing, got %+v %v", cfg, err)
	}
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	home := filepath.Join(root, "home")
	xdg := filepath.Join(root, "xdg")

	if path, src, err := Find("", xdg, home); err != nil || path != "" || src != "" {
		t.Fatalf("expected nothing found, got %q %q %v", path, src, err)
	}

	homeCfg := filepath.Join(home, ".qpad.yaml")
	writeConfig(t, homeCfg, "theme: light\n")
	if path, src, _ := Find("", xdg, home); path != homeCfg || src != "home" {
		t.Fatalf("expected home config, got %q %q", path, src)
	}

	xdgCfg := filepath.Join(xdg, "qpad", "config.toml")
	writeConfig(t, xdgCfg, "theme = \"light\"\n")
	if path, src, _ := Find("", xdg, home); path != xdgCfg || src != "xdg" {
		t.Fatalf("expected xdg config, got %q %q", path, src)
	}

	defaultXDG := filepath.Join(home, ".config", "qpad", "config.json")
	writeConfig(t, defaultXDG, "{}")
	if path, src, _ := Find("", "", home); path != defaultXDG || src != "xdg" {
		t.Fatalf("expected ~/.config fallback, got %q %q", path, src)
	}

	if path, src, _ := Find(homeCfg, xdg, home); path != homeCfg || src != "explicit" {
		t.Fatalf("expected explicit config, got %q %q", path, src)
	}
	if _, _, err := Find(home, xdg, home); err == nil {
		t.Fatal("expected an error for a directory")
	}
	if _, _, err := Find(filepath.Join(root, "nope.toml"), xdg, home); err == nil {
		t.Fatal("expected an error for a missing explicit path")
	}
}

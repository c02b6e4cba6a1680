package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fivemoreminix/qpad/pkg/buffer"
	"github.com/fivemoreminix/qpad/pkg/config"
	"github.com/fivemoreminix/qpad/pkg/editor"
	"go.uber.org/zap/zaptest"
)

func TestParseLine(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"12", 12, true},
		{" 3 ", 3, true},
		{"0", 0, false},
		{"-4", 0, false},
		{"ten", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, ok := parseLine(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("parseLine(%q): expected %d, %v, got %d, %v", c.in, c.want, c.ok, got, ok)
		}
	}
}

func TestInternalClipboard(t *testing.T) {
	clip := NewClipboard(ClipInternal, zaptest.NewLogger(t))
	if clip.Method() != ClipInternal {
		t.Fatalf("Expected the internal method, got %v", clip.Method())
	}
	if err := clip.Write("line\n"); err != nil {
		t.Fatal(err)
	}
	got, err := clip.Read()
	if err != nil || got != "line\n" {
		t.Errorf("Expected \"line\\n\", got %q (%v)", got, err)
	}
}

func TestNewSessionFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Theme = "light"
	cfg.Autosave = true
	cfg.AutosaveInterval = "5s"
	cfg.TabSize = 8
	cfg.Languages = []config.LanguageConfig{{
		Name:       "go",
		Keywords:   `\b(func|package|return)\b`,
		Extensions: []string{"go"},
		Rules:      []config.RuleConfig{{Pattern: `//.*`, Tag: "comment"}},
	}, {
		Name:  "broken",
		Rules: []config.RuleConfig{{Pattern: `(`, Tag: "string"}},
	}}

	session, err := newSession(cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	if session.Theme() != editor.ThemeLight {
		t.Errorf("Expected the light theme, got %q", session.Theme())
	}
	if !session.Autosave() || session.AutosaveInterval().String() != "5s" {
		t.Errorf("Expected autosave every 5s, got %v every %s", session.Autosave(), session.AutosaveInterval())
	}
	if session.TabSize() != 8 {
		t.Errorf("Expected tab size 8, got %d", session.TabSize())
	}

	langs := session.Languages()
	want := []string{"python", "html", "go", buffer.PlainText}
	if len(langs) != len(want) {
		t.Fatalf("Expected languages %v, got %v", want, langs)
	}
	for i := range want {
		if langs[i] != want[i] {
			t.Errorf("Expected languages %v, got %v", want, langs)
			break
		}
	}

	path := filepath.Join(t.TempDir(), "main.go")
	if err := os.WriteFile(path, []byte("package main // entry"), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := session.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Language() != "go" {
		t.Errorf("Expected the configured extension to select \"go\", got %q", doc.Language())
	}
	if len(doc.Spans()) != 2 {
		t.Errorf("Expected a keyword and a comment span, got %v", doc.Spans())
	}
}

func TestNewSessionChroma(t *testing.T) {
	cfg := config.Default()
	cfg.Highlighter = "chroma"

	session, err := newSession(cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	doc := session.NewDocument("x.py", "# note\nx = 1\n", "x.py")
	var comment bool
	for _, span := range doc.Spans() {
		if span.Tag == buffer.Comment && span.Start == 0 {
			comment = true
		}
	}
	if !comment {
		t.Errorf("Expected the lexer to tag the comment, got %v", doc.Spans())
	}
}

func TestEnsureDocument(t *testing.T) {
	session := editor.NewSession(editor.Options{Logger: zaptest.NewLogger(t)})
	if err := session.Drop([]string{filepath.Join(t.TempDir(), "gone.txt")}); err != nil {
		t.Fatal(err)
	}
	ensureDocument(session)
	if session.Len() != 1 || session.Active() == nil {
		t.Fatalf("Expected one empty document, got %d", session.Len())
	}
	if doc := session.Active(); doc.Title != "noname" || doc.Text() != "" || doc.FilePath != "" {
		t.Errorf("Expected an empty untitled document, got %q %q %q", doc.Title, doc.Text(), doc.FilePath)
	}

	ensureDocument(session)
	if session.Len() != 1 {
		t.Errorf("Expected no extra document when one is open, got %d", session.Len())
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "qpad.toml")
	if err := os.WriteFile(path, []byte("theme = \"light\"\ntab_size = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("QPAD_THEME", "dark")
	t.Setenv("QPAD_AUTOSAVE", "on")

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Theme != "dark" || !cfg.Autosave || cfg.TabSize != 2 {
		t.Errorf("Expected dark, autosave, tab size 2, got %+v", cfg)
	}
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fivemoreminix/qpad/pkg/buffer"
	"github.com/fivemoreminix/qpad/pkg/config"
	"github.com/fivemoreminix/qpad/pkg/editor"
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/term"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "qpad: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("qpad", flag.ExitOnError)
	configPath := fs.String("config", "", "path to a config file (toml, yaml or json)")
	themeFlag := fs.String("theme", "", "color theme: light or dark")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: qpad [flags] [files...]\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *themeFlag != "" {
		cfg.Theme = *themeFlag
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, err := newLogger(cfg.LogFile)
	if err != nil {
		return err
	}
	defer log.Sync()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("standard output is not a terminal")
	}

	session, err := newSession(cfg, log)
	if err != nil {
		return err
	}

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini() // Useful for handling panics

	a := newApp(s, session, NewClipboard(ClipExternal, log), log)

	// Load files from command-line arguments
	if err := session.Drop(fs.Args()); err != nil {
		a.showError(err)
	}
	ensureDocument(session)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go editor.NewAutosaver(session.AutosaveInterval(), func(now time.Time) {
		ev := &autosaveEvent{}
		ev.SetEventTime(now)
		if err := s.PostEvent(ev); err != nil {
			log.Debug("autosave tick dropped", zap.Error(err))
		}
	}).Run(ctx)

	a.Run()
	return nil
}

// ensureDocument opens an empty tab when nothing else is open, so the editor
// never starts without a document.
func ensureDocument(session *editor.Session) {
	if session.Len() == 0 {
		session.NewDocument("noname", "", "")
	}
}

// loadConfig finds and reads the config file, then applies the environment.
func loadConfig(explicit string) (config.Config, error) {
	home, _ := os.UserHomeDir()
	path, source, err := config.Find(explicit, os.Getenv("XDG_CONFIG_HOME"), home)
	if err != nil {
		return config.Config{}, err
	}

	cfg := config.Default()
	if path != "" {
		if cfg, err = config.Load(path); err != nil {
			return config.Config{}, fmt.Errorf("%s config: %w", source, err)
		}
	}
	return config.ApplyEnv(cfg, os.Getenv)
}

// newLogger writes to logFile, or discards everything when it is empty. The
// terminal belongs to the editor, so there is no console output.
func newLogger(logFile string) (*zap.Logger, error) {
	if strings.TrimSpace(logFile) == "" {
		return zap.NewNop(), nil
	}
	zc := zap.NewDevelopmentConfig()
	zc.OutputPaths = []string{logFile}
	zc.ErrorOutputPaths = []string{logFile}
	log, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}
	return log, nil
}

func newSession(cfg config.Config, log *zap.Logger) (*editor.Session, error) {
	theme, err := editor.ParseTheme(cfg.Theme)
	if err != nil {
		return nil, err
	}
	interval, err := cfg.Interval()
	if err != nil {
		return nil, err
	}

	defs, extensions, errs := cfg.LanguageDefs()
	for _, err := range errs {
		log.Warn("language skipped", zap.Error(err))
	}
	rules := buffer.NewRuleTable(append(buffer.Builtin(), defs...))
	for _, err := range rules.Errors() {
		log.Warn("language disabled", zap.Error(err))
	}

	var highlighter buffer.Highlighter = buffer.NewRegexpHighlighter(rules)
	if strings.EqualFold(strings.TrimSpace(cfg.Highlighter), config.HighlighterChroma) {
		highlighter = buffer.ChromaHighlighter{}
	}

	return editor.NewSession(editor.Options{
		Theme:            theme,
		Autosave:         cfg.Autosave,
		AutosaveInterval: interval,
		DefaultLanguage:  cfg.DefaultLanguage,
		TabSize:          cfg.TabSize,
		Extensions:       extensions,
		Rules:            rules,
		Highlighter:      highlighter,
		Logger:           log,
	}), nil
}

package editor

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/fivemoreminix/qpad/pkg/buffer"
)

// DefaultAutosaveInterval is how long a modified document may go unsaved
// before autosave writes it.
const DefaultAutosaveInterval = 30 * time.Second

// Response is the answer to the unsaved-changes prompt shown before closing a
// modified document.
type Response uint8

const (
	SaveThenClose Response = iota
	DiscardAndClose
	Cancel
)

// A Prompt asks the user what to do with a modified document being closed.
type Prompt func(doc *Document) Response

type Options struct {
	Theme            Theme
	Autosave         bool
	AutosaveInterval time.Duration
	DefaultLanguage  string
	TabSize          int
	// Extensions maps extra file extensions (".go") to languages and is
	// consulted before the built-in table.
	Extensions map[string]string

	Rules       *buffer.RuleTable
	Highlighter buffer.Highlighter // Defaults to a RegexpHighlighter over Rules
	Logger      *zap.Logger
	Now         func() time.Time
}

// A Session owns the open documents, in tab order, and the settings shared by
// all of them. All methods must be called from the same goroutine.
type Session struct {
	docs   []*Document
	active int // -1 when no document is open

	theme            Theme
	autosave         bool
	autosaveInterval time.Duration
	defaultLanguage  string
	tabSize          int
	extensions       map[string]string

	rules       *buffer.RuleTable
	highlighter buffer.Highlighter
	log         *zap.Logger
	now         func() time.Time
}

func NewSession(opts Options) *Session {
	s := &Session{
		active:           -1,
		theme:            opts.Theme,
		autosave:         opts.Autosave,
		autosaveInterval: opts.AutosaveInterval,
		defaultLanguage:  opts.DefaultLanguage,
		tabSize:          opts.TabSize,
		extensions:       opts.Extensions,
		rules:            opts.Rules,
		highlighter:      opts.Highlighter,
		log:              opts.Logger,
		now:              opts.Now,
	}
	if s.theme == "" {
		s.theme = ThemeDark
	}
	if s.autosaveInterval <= 0 {
		s.autosaveInterval = DefaultAutosaveInterval
	}
	if s.defaultLanguage == "" {
		s.defaultLanguage = buffer.PlainText
	}
	if s.tabSize <= 0 {
		s.tabSize = 4
	}
	if s.rules == nil {
		s.rules = buffer.DefaultRuleTable()
	}
	if s.highlighter == nil {
		s.highlighter = buffer.NewRegexpHighlighter(s.rules)
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Documents returns the open documents in tab order.
func (s *Session) Documents() []*Document {
	docs := make([]*Document, len(s.docs))
	copy(docs, s.docs)
	return docs
}

func (s *Session) Len() int {
	return len(s.docs)
}

// Active returns the active document, or nil if none is open.
func (s *Session) Active() *Document {
	if s.active < 0 || s.active >= len(s.docs) {
		return nil
	}
	return s.docs[s.active]
}

func (s *Session) ActiveIndex() int {
	return s.active
}

// SetActive makes the document at idx active. idx is clamped to the open
// documents; with no documents open nothing happens.
func (s *Session) SetActive(idx int) {
	if len(s.docs) == 0 {
		return
	}
	s.active = max(0, min(idx, len(s.docs)-1))
}

// Next activates the following tab, wrapping around.
func (s *Session) Next() {
	if len(s.docs) > 0 {
		s.active = (s.active + 1) % len(s.docs)
	}
}

// Prev activates the preceding tab, wrapping around.
func (s *Session) Prev() {
	if len(s.docs) > 0 {
		s.active = (s.active - 1 + len(s.docs)) % len(s.docs)
	}
}

func (s *Session) indexOf(doc *Document) int {
	for i, d := range s.docs {
		if d == doc {
			return i
		}
	}
	return -1
}

// NewDocument opens a tab and makes it active. With a path the language is
// detected from it, otherwise the session default is used. The document
// starts out unmodified.
func (s *Session) NewDocument(title, content, path string) *Document {
	language := s.defaultLanguage
	if path != "" {
		language = detectLanguage(path, s.extensions)
	}

	doc := newDocument(title, content, language, s.highlighter, s.now)
	doc.FilePath = path
	doc.applyTheme(s.theme)
	doc.SetViewport(buffer.Viewport{TabSize: s.tabSize})

	s.docs = append(s.docs, doc)
	s.active = len(s.docs) - 1
	return doc
}

// OpenFile reads path as UTF-8 into a new active document. On failure no
// document is created.
func (s *Session) OpenFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		s.log.Warn("open failed", zap.String("path", path), zap.Error(err))
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	text, err := decodeText(data, DefaultEncoding)
	if err != nil {
		s.log.Warn("decode failed", zap.String("path", path), zap.Error(err))
		return nil, &DecodeError{Op: "open", Path: path, Encoding: DefaultEncoding, Err: err}
	}

	doc := s.NewDocument(filepath.Base(path), text, path)
	doc.persisted = true
	s.log.Info("opened", zap.String("path", path), zap.String("language", doc.Language()))
	return doc, nil
}

// Drop opens every regular file among paths. Directories, other non-regular
// entries and paths that no longer exist are skipped. The errors of regular
// files that failed to open are joined.
func (s *Session) Drop(paths []string) error {
	var errs []error
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			s.log.Debug("drop skipped", zap.String("path", path), zap.Error(err))
			continue
		}
		if _, err := s.OpenFile(path); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Save writes doc to its file.
func (s *Session) Save(doc *Document) error {
	if err := doc.Save(); err != nil {
		s.log.Warn("save failed", zap.String("path", doc.FilePath), zap.Error(err))
		return err
	}
	s.log.Info("saved", zap.String("path", doc.FilePath))
	return nil
}

// SaveAs writes doc to a new path.
func (s *Session) SaveAs(doc *Document, path string) error {
	if err := doc.SaveAs(path); err != nil {
		s.log.Warn("save as failed", zap.String("path", path), zap.Error(err))
		return err
	}
	s.log.Info("saved", zap.String("path", path))
	return nil
}

// CloseDocument closes doc. A modified document is only closed once prompt
// agrees; on Cancel, or when saving fails, the tabs are left untouched and
// the error (ErrCancelled for Cancel) is returned.
func (s *Session) CloseDocument(doc *Document, prompt Prompt) error {
	idx := s.indexOf(doc)
	if idx < 0 {
		return nil
	}
	if err := s.confirmClose(doc, prompt); err != nil {
		return err
	}
	s.remove(idx)
	s.log.Debug("closed", zap.String("title", doc.Title))
	return nil
}

// CloseOthers closes every document except keep, confirming each modified
// one in tab order. A Cancel stops there: documents already closed stay
// closed and the rest stay open. keep ends up active.
func (s *Session) CloseOthers(keep *Document, prompt Prompt) error {
	if s.indexOf(keep) < 0 {
		return nil
	}
	for _, doc := range s.Documents() {
		if doc == keep {
			continue
		}
		if err := s.CloseDocument(doc, prompt); err != nil {
			s.active = s.indexOf(keep)
			return err
		}
	}
	s.active = s.indexOf(keep)
	return nil
}

func (s *Session) confirmClose(doc *Document, prompt Prompt) error {
	if !doc.Modified() {
		return nil
	}
	response := Cancel
	if prompt != nil {
		response = prompt(doc)
	}
	switch response {
	case SaveThenClose:
		return s.Save(doc)
	case DiscardAndClose:
		return nil
	default:
		return ErrCancelled
	}
}

// remove drops the tab at idx, keeping the active tab where it was when
// possible.
func (s *Session) remove(idx int) {
	copy(s.docs[idx:], s.docs[idx+1:])
	s.docs[len(s.docs)-1] = nil
	s.docs = s.docs[:len(s.docs)-1]

	switch {
	case len(s.docs) == 0:
		s.active = -1
	case s.active > idx || s.active >= len(s.docs):
		s.active--
	}
}

func (s *Session) Theme() Theme {
	return s.theme
}

// SetTheme changes the theme and pushes it to every open document.
func (s *Session) SetTheme(t Theme) {
	s.theme = t
	for _, doc := range s.docs {
		doc.applyTheme(t)
	}
}

func (s *Session) ToggleTheme() {
	s.SetTheme(s.theme.Toggle())
}

// SetLanguage changes the language of the active document only.
func (s *Session) SetLanguage(language string) {
	if doc := s.Active(); doc != nil {
		doc.SetLanguage(language)
	}
}

// Languages lists what a document can be highlighted as: every language of
// the rule table, then plain text.
func (s *Session) Languages() []string {
	return append(s.rules.Names(), buffer.PlainText)
}

// CycleLanguage moves the active document to the next entry of Languages and
// returns it.
func (s *Session) CycleLanguage() string {
	doc := s.Active()
	if doc == nil {
		return ""
	}
	langs := s.Languages()
	next := langs[0]
	for i, lang := range langs {
		if lang == doc.Language() {
			next = langs[(i+1)%len(langs)]
			break
		}
	}
	doc.SetLanguage(next)
	return next
}

func (s *Session) Autosave() bool {
	return s.autosave
}

func (s *Session) SetAutosave(enabled bool) {
	s.autosave = enabled
}

func (s *Session) AutosaveInterval() time.Duration {
	return s.autosaveInterval
}

// TabSize is the number of columns a tab character advances to.
func (s *Session) TabSize() int {
	return s.tabSize
}

// AutosaveTick saves every document that has been modified for longer than
// the autosave interval. It does nothing while autosave is off. Failures are
// joined; the documents that failed stay modified.
func (s *Session) AutosaveTick(now time.Time) error {
	if !s.autosave {
		return nil
	}
	var errs []error
	for _, doc := range s.docs {
		if !doc.AutosaveDue(now, s.autosaveInterval) {
			continue
		}
		if err := s.Save(doc); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// StatusSummary describes doc for the status bar.
func (s *Session) StatusSummary(doc *Document) Status {
	if doc == nil {
		return Status{}
	}
	return doc.Status()
}

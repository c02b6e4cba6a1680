package editor

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fivemoreminix/qpad/pkg/buffer"
)

// A Document is the model behind one tab: its text, the file it belongs to,
// and everything derived from the text (highlight spans, gutter labels).
//
// A Document is either unmodified, meaning its text equals what was last
// written under Encoding, or modified. Every edit marks it modified, even one
// that leaves the text as it was; only a successful save clears the flag.
// A document created with content is unmodified but not yet persisted, so its
// first save always writes.
type Document struct {
	Title    string
	FilePath string // Empty until the document is saved or opened
	Encoding string

	buf       *buffer.RopeBuffer
	language  string
	modified  bool
	persisted bool // Whether the file holds the current text
	lastSaved time.Time
	theme     Theme

	highlighter buffer.Highlighter
	spans       []buffer.Span
	resolved    []buffer.Span
	lines       buffer.LineIndex
	viewport    buffer.Viewport

	now func() time.Time
}

func newDocument(title, content, language string, h buffer.Highlighter, now func() time.Time) *Document {
	if now == nil {
		now = time.Now
	}
	d := &Document{
		Title:       title,
		Encoding:    DefaultEncoding,
		buf:         buffer.NewRopeBuffer([]byte(content)),
		language:    language,
		lastSaved:   now(),
		highlighter: h,
		viewport:    buffer.Viewport{TabSize: 4},
		now:         now,
	}
	d.refresh()
	return d
}

// Text returns the whole content of the document.
func (d *Document) Text() string {
	return string(d.buf.Bytes())
}

// Buffer exposes the text for views that walk it by line and column. Views
// must edit through the Document, never through the Buffer.
func (d *Document) Buffer() buffer.Buffer {
	return d.buf
}

// SetContent replaces the whole text.
func (d *Document) SetContent(text string) {
	d.buf.Remove(0, d.buf.Len())
	d.buf.Insert(0, []byte(text))
	d.edited()
}

// Insert places text at byte offset pos.
func (d *Document) Insert(pos int, text string) {
	d.buf.Insert(pos, []byte(text))
	d.edited()
}

// Delete removes the bytes [start, end).
func (d *Document) Delete(start, end int) {
	d.buf.Remove(start, end)
	d.edited()
}

func (d *Document) edited() {
	d.modified = true
	d.persisted = false
	d.refresh()
}

// refresh recomputes everything derived from the text. New spans replace the
// old ones only once the whole pass is done.
func (d *Document) refresh() {
	text := d.Text()
	var spans []buffer.Span
	if d.highlighter != nil {
		spans = d.highlighter.Highlight(text, d.language)
	}
	d.spans, d.resolved = spans, buffer.Resolve(spans, len(text))
	d.lines.Recompute(text, d.viewport)
}

func (d *Document) Modified() bool {
	return d.modified
}

func (d *Document) LastSaved() time.Time {
	return d.lastSaved
}

func (d *Document) Language() string {
	return d.language
}

// SetLanguage changes how the document is highlighted. The text is not
// touched, so the document stays in its current modified state.
func (d *Document) SetLanguage(language string) {
	d.language = language
	d.refresh()
}

// Spans returns the spans of the last highlight pass in the order they were
// applied.
func (d *Document) Spans() []buffer.Span {
	return d.spans
}

// Resolved returns the spans flattened so that, for every byte, the span
// applied last wins.
func (d *Document) Resolved() []buffer.Span {
	return d.resolved
}

// SetViewport recomputes the gutter for a scrolled or resized view.
func (d *Document) SetViewport(vp buffer.Viewport) {
	d.viewport = vp
	d.lines.Recompute(d.Text(), vp)
}

// Lines returns the gutter labels for the current viewport.
func (d *Document) Lines() []buffer.LineLabel {
	return d.lines.Labels()
}

func (d *Document) LineCount() int {
	return d.lines.Lines()
}

func (d *Document) Theme() Theme {
	return d.theme
}

// applyTheme only changes presentation: text and spans stay as they are.
func (d *Document) applyTheme(t Theme) {
	d.theme = t
}

// Save writes the document to its file. Saving a document whose file already
// holds its text does nothing. On failure the document keeps its modified
// state and timestamp.
func (d *Document) Save() error {
	if d.FilePath == "" {
		return ErrNoPath
	}
	if !d.modified && d.persisted {
		return nil
	}
	return d.write()
}

// SaveAs gives the document a new path and writes it there, modified or not.
// If the write fails the old path and title are kept.
func (d *Document) SaveAs(path string) error {
	if path == "" {
		return ErrNoPath
	}
	oldPath, oldTitle := d.FilePath, d.Title
	d.FilePath, d.Title = path, filepath.Base(path)
	if err := d.write(); err != nil {
		d.FilePath, d.Title = oldPath, oldTitle
		return err
	}
	return nil
}

func (d *Document) write() error {
	data, err := encodeText(d.Text(), d.Encoding)
	if err != nil {
		return &DecodeError{Op: "save", Path: d.FilePath, Encoding: d.Encoding, Err: err}
	}
	if err := os.WriteFile(d.FilePath, data, 0o644); err != nil {
		return &IOError{Op: "save", Path: d.FilePath, Err: err}
	}
	d.modified = false
	d.persisted = true
	d.lastSaved = d.now()
	return nil
}

// AutosaveDue reports whether an autosave should write the document at now.
func (d *Document) AutosaveDue(now time.Time, interval time.Duration) bool {
	return d.modified && d.FilePath != "" && now.Sub(d.lastSaved) > interval
}

func (d *Document) Status() Status {
	return Status{
		Path:     d.FilePath,
		Encoding: d.Encoding,
		Language: d.language,
		Modified: d.modified,
	}
}

package ui

import (
	"math"
	"strconv"
	"strings"

	"github.com/fivemoreminix/qpad/pkg/buffer"
	"github.com/fivemoreminix/qpad/pkg/editor"
	"github.com/gdamore/tcell/v2"
)

// TextEdit is the view of one Document. It owns the cursor and scroll state;
// the text, highlight spans, gutter labels and color theme all come from the
// Document. Long lines wrap at the right edge.
type TextEdit struct {
	Document    *editor.Document
	LineNumbers bool // Whether to draw the line number gutter
	TabSize     int

	screen  tcell.Screen // Kept for cursor purposes
	cursor  buffer.Cursor
	topLine int

	anchor     int  // Byte offset the selection started at
	selectMode bool // Whether a selection is active

	themeName editor.Theme // The Document theme that theme was built for

	baseComponent
}

func NewTextEdit(screen tcell.Screen, doc *editor.Document, tabSize int) *TextEdit {
	if tabSize <= 0 {
		tabSize = 4
	}
	t := &TextEdit{
		Document:    doc,
		LineNumbers: true,
		TabSize:     tabSize,
		screen:      screen,
		cursor:      buffer.NewCursor(doc.Buffer()),
	}
	t.syncTheme()
	return t
}

// syncTheme rebuilds the styles when the Document's theme has changed.
func (t *TextEdit) syncTheme() *Theme {
	if t.theme == nil || t.themeName != t.Document.Theme() {
		t.themeName = t.Document.Theme()
		t.theme = NewTheme(t.themeName)
	}
	return t.theme
}

// SetTheme is ignored: a TextEdit is drawn in its Document's theme, which the
// Session pushes to every Document.
func (t *TextEdit) SetTheme(*Theme) {}

func (t *TextEdit) GetCursor() buffer.Cursor {
	return t.cursor
}

func (t *TextEdit) SetCursor(c buffer.Cursor) {
	t.cursor = c.Clamp()
	t.ScrollToCursor()
}

// getColumnWidth returns the width of the gutter, or zero without one.
func (t *TextEdit) getColumnWidth() int {
	if !t.LineNumbers {
		return 0
	}
	return buffer.GutterWidth(t.Document.Buffer().Lines())
}

func (t *TextEdit) textWidth() int {
	return max(1, t.width-t.getColumnWidth())
}

// syncViewport tells the Document what part of it is visible so it can
// recompute the gutter labels.
func (t *TextEdit) syncViewport() {
	t.Document.SetViewport(buffer.Viewport{
		TopLine: t.topLine,
		Rows:    t.height,
		Width:   t.textWidth(),
		TabSize: t.TabSize,
	})
}

// lineText returns a line without its delimiter.
func (t *TextEdit) lineText(line int) string {
	return strings.TrimRight(string(t.Document.Buffer().Line(line)), "\r\n")
}

// cursorRowCol returns the wrapped row and the column the cursor is drawn at,
// relative to the first row of its line.
func (t *TextEdit) cursorRowCol() (int, int) {
	line, col := t.cursor.GetLineCol()
	text := t.lineText(line)
	runes := []rune(text)
	target := len(string(runes[:min(col, len(runes))]))
	width := t.textWidth()

	row, cell := -1, 0
	rows, endCol := buffer.Wrap(text, width, t.TabSize, func(_ string, offset, r, c, _ int) {
		if offset == target && row < 0 {
			row, cell = r, c
		}
	})
	if row < 0 { // End of the line
		row, cell = rows-1, min(endCol, width-1)
	}
	return row, cell
}

// ScrollToCursor scrolls just enough for the cursor's row to be visible.
func (t *TextEdit) ScrollToCursor() {
	line, _ := t.cursor.GetLineCol()
	width := t.textWidth()

	if line < t.topLine {
		t.topLine = line
	}
	if t.height > 0 {
		row, _ := t.cursorRowCol()
		for l := t.topLine; l < line; l++ {
			row += buffer.LineHeight(t.lineText(l), width, t.TabSize)
		}
		for row >= t.height && t.topLine < line {
			row -= buffer.LineHeight(t.lineText(t.topLine), width, t.TabSize)
			t.topLine++
		}
	}

	t.syncViewport()
	t.updateCursorVisibility()
}

// updateCursorVisibility moves the terminal cursor to the TextEdit cursor
// when focused, or hides it if that row is not on screen.
func (t *TextEdit) updateCursorVisibility() {
	if !t.focused || t.screen == nil {
		return
	}
	line, _ := t.cursor.GetLineCol()
	for _, label := range t.Document.Lines() {
		if label.Line != line+1 {
			continue
		}
		r, col := t.cursorRowCol()
		row := label.Y + r
		if row < t.height {
			t.screen.ShowCursor(t.x+t.getColumnWidth()+col, t.y+row)
			return
		}
	}
	t.screen.HideCursor()
}

// Selection returns the selected byte range, or ok false without a selection.
func (t *TextEdit) Selection() (start, end int, ok bool) {
	if !t.selectMode {
		return 0, 0, false
	}
	pos := t.cursor.Pos()
	start, end = min(t.anchor, pos), max(t.anchor, pos)
	return start, end, start != end
}

// SelectedText returns the text of the selection, or "" without one.
func (t *TextEdit) SelectedText() string {
	start, end, ok := t.Selection()
	if !ok {
		return ""
	}
	return t.Document.Text()[start:end]
}

// CurrentLine returns the cursor's line including its line delimiter.
func (t *TextEdit) CurrentLine() string {
	line, _ := t.cursor.GetLineCol()
	return string(t.Document.Buffer().Line(line))
}

// Insert writes contents at the cursor, replacing any selection.
func (t *TextEdit) Insert(contents string) {
	if start, end, ok := t.Selection(); ok {
		t.Document.Delete(start, end)
		t.cursor = t.cursor.SetPos(start)
	}
	t.selectMode = false

	pos := t.cursor.Pos()
	t.Document.Insert(pos, contents)
	t.cursor = t.cursor.SetPos(pos + len(contents))
	t.ScrollToCursor()
}

// Delete with `forwards` false will backspace, destroying the character before the cursor,
// while Delete with `forwards` true will delete the character after the cursor.
// With a selection, the selection is deleted instead.
func (t *TextEdit) Delete(forwards bool) {
	start, end, ok := t.Selection()
	t.selectMode = false
	if !ok {
		if forwards {
			start, end = t.cursor.Pos(), t.cursor.Right().Pos()
		} else {
			start, end = t.cursor.Left().Pos(), t.cursor.Pos()
		}
	}
	if start == end {
		return
	}
	t.Document.Delete(start, end)
	t.cursor = t.cursor.SetPos(start)
	t.ScrollToCursor()
}

// move applies a cursor movement, growing the selection when extend is true
// and dropping it otherwise.
func (t *TextEdit) move(c buffer.Cursor, extend bool) {
	if extend && !t.selectMode {
		t.anchor = t.cursor.Pos()
		t.selectMode = true
	} else if !extend {
		t.selectMode = false
	}
	t.SetCursor(c)
}

// Draw renders the gutter and the visible lines of the Document.
func (t *TextEdit) Draw(s tcell.Screen) {
	t.syncViewport()

	theme := t.syncTheme()
	columnWidth := t.getColumnWidth()
	width := t.textWidth()
	normal := theme.GetOrDefault("TextEdit")
	columnStyle := theme.GetOrDefault("TextEditColumn")
	selectedStyle := theme.GetOrDefault("TextEditSelected")

	DrawRect(s, t.x, t.y, t.width, t.height, ' ', normal)
	if columnWidth > 0 {
		DrawRect(s, t.x, t.y, columnWidth, t.height, ' ', columnStyle)
	}

	buf := t.Document.Buffer()
	resolved := t.Document.Resolved()
	selStart, selEnd, selecting := t.Selection()

	for _, label := range t.Document.Lines() {
		line := label.Line - 1
		if columnWidth > 0 {
			num := strconv.Itoa(label.Line)
			DrawStr(s, t.x+columnWidth-1-len(num), t.y+label.Y, num, columnStyle)
		}

		lineStart := buf.LineColToPos(line, 0)
		buffer.Wrap(t.lineText(line), width, t.TabSize, func(cluster string, offset, r, col, cells int) {
			row := label.Y + r
			if row >= t.height || cells == 0 {
				return
			}
			pos := lineStart + offset

			style := normal
			if tag, ok := buffer.TagAt(resolved, pos); ok {
				style = theme.TagStyle(tag)
			}
			if selecting && pos >= selStart && pos < selEnd {
				style = selectedStyle
			}

			x := t.x + columnWidth + col
			if cluster == "\t" {
				for i := 0; i < cells; i++ {
					s.SetContent(x+i, t.y+row, ' ', nil, style)
				}
			} else {
				runes := []rune(cluster)
				s.SetContent(x, t.y+row, runes[0], runes[1:], style)
			}
		})
	}

	t.updateCursorVisibility()
}

// SetFocused sets whether the TextEdit is focused. When focused, the cursor is set visible
// and its position is updated on every event.
func (t *TextEdit) SetFocused(v bool) {
	t.focused = v
	if v {
		t.updateCursorVisibility()
	} else if t.screen != nil {
		t.screen.HideCursor()
	}
}

func (t *TextEdit) SetSize(width, height int) {
	t.width, t.height = width, height
	t.ScrollToCursor()
}

// HandleEvent allows the TextEdit to handle `event` if it chooses, returns
// whether the TextEdit handled the event.
func (t *TextEdit) HandleEvent(event tcell.Event) bool {
	ev, ok := event.(*tcell.EventKey)
	if !ok {
		return false
	}
	shift := ev.Modifiers()&tcell.ModShift != 0

	switch ev.Key() {
	// Cursor movement
	case tcell.KeyUp:
		t.move(t.cursor.Up(), shift)
	case tcell.KeyDown:
		t.move(t.cursor.Down(), shift)
	case tcell.KeyLeft:
		t.move(t.cursor.Left(), shift)
	case tcell.KeyRight:
		t.move(t.cursor.Right(), shift)
	case tcell.KeyHome:
		line, _ := t.cursor.GetLineCol()
		t.move(t.cursor.SetLineCol(line, 0), shift)
	case tcell.KeyEnd:
		line, _ := t.cursor.GetLineCol()
		t.move(t.cursor.SetLineCol(line, math.MaxInt32), shift)
	case tcell.KeyPgUp:
		line, col := t.cursor.GetLineCol()
		t.move(t.cursor.SetLineCol(line-max(1, t.height), col), shift)
	case tcell.KeyPgDn:
		line, col := t.cursor.GetLineCol()
		t.move(t.cursor.SetLineCol(line+max(1, t.height), col), shift)

	// Deleting
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		t.Delete(false)
	case tcell.KeyDelete:
		t.Delete(true)

	// Inserting
	case tcell.KeyTab:
		t.Insert("\t")
	case tcell.KeyEnter:
		t.Insert("\n")
	case tcell.KeyRune:
		t.Insert(string(ev.Rune()))
	default:
		return false
	}
	return true
}

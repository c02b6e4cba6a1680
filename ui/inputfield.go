package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// An InputField is a single-line input box. The cursor position counts runes.
type InputField struct {
	text      []rune
	cursorPos int
	scrollPos int
	screen    tcell.Screen // Kept for showing and hiding the terminal cursor

	baseComponent
}

func NewInputField(screen tcell.Screen, text string, theme *Theme) *InputField {
	f := &InputField{
		text:          []rune(text),
		screen:        screen,
		baseComponent: baseComponent{theme: theme},
	}
	f.cursorPos = len(f.text)
	return f
}

func (f *InputField) Text() string {
	return string(f.text)
}

func (f *InputField) SetText(text string) {
	f.text = []rune(text)
	f.SetCursorPos(len(f.text))
}

func (f *InputField) GetCursorPos() int {
	return f.cursorPos
}

// SetCursorPos sets the cursor position offset. Offset is clamped to possible values.
// The InputField is scrolled to show the new cursor position.
func (f *InputField) SetCursorPos(offset int) {
	offset = max(0, min(offset, len(f.text)))

	inner := max(1, f.width-2)
	if offset >= f.scrollPos+inner { // Out of view to the right
		f.scrollPos = offset - inner + 1
	} else if offset < f.scrollPos { // Out of view to the left
		f.scrollPos = offset
	}

	f.cursorPos = offset
	f.updateCursorVisibility()
}

func (f *InputField) updateCursorVisibility() {
	if f.focused && f.screen != nil {
		col := runewidth.StringWidth(string(f.text[f.scrollPos:f.cursorPos]))
		f.screen.ShowCursor(f.x+1+col, f.y)
	}
}

// Delete removes the rune after the cursor when forward is true, otherwise
// the rune before it.
func (f *InputField) Delete(forward bool) {
	pos := f.cursorPos
	if !forward {
		pos--
	}
	if pos < 0 || pos >= len(f.text) {
		return
	}
	f.text = append(f.text[:pos], f.text[pos+1:]...)
	f.SetCursorPos(pos)
}

// Insert places r at the cursor.
func (f *InputField) Insert(r rune) {
	f.text = append(f.text[:f.cursorPos], append([]rune{r}, f.text[f.cursorPos:]...)...)
	f.SetCursorPos(f.cursorPos + 1)
}

func (f *InputField) Draw(s tcell.Screen) {
	style := f.theme.GetOrDefault("InputField")

	DrawRect(s, f.x, f.y, f.width, f.height, ' ', style) // Draw background
	s.SetContent(f.x, f.y, '[', nil, style)
	s.SetContent(f.x+f.width-1, f.y, ']', nil, style)

	if f.scrollPos < len(f.text) {
		DrawStrClipped(s, f.x+1, f.y, f.width-2, string(f.text[f.scrollPos:]), style)
	}

	f.updateCursorVisibility()
}

func (f *InputField) SetFocused(v bool) {
	f.focused = v
	if v {
		f.SetCursorPos(f.cursorPos)
	} else if f.screen != nil {
		f.screen.HideCursor()
	}
}

func (f *InputField) GetMinSize() (int, int) {
	return 3, 1
}

func (f *InputField) SetSize(width, height int) {
	f.width, f.height = max(width, 3), max(height, 1)
}

func (f *InputField) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyLeft:
			f.SetCursorPos(f.cursorPos - 1)
		case tcell.KeyRight:
			f.SetCursorPos(f.cursorPos + 1)
		case tcell.KeyHome:
			f.SetCursorPos(0)
		case tcell.KeyEnd:
			f.SetCursorPos(len(f.text))
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			f.Delete(false)
		case tcell.KeyDelete:
			f.Delete(true)
		case tcell.KeyRune:
			f.Insert(ev.Rune())
		default:
			return false
		}
		return true
	}
	return false
}

package ui

import (
	"github.com/fivemoreminix/qpad/pkg/editor"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// A StatusBar is a single row describing the active document. A transient
// message, such as the result of a save, is shown on the right until the
// next one replaces it.
type StatusBar struct {
	Session *editor.Session
	Message string

	baseComponent
}

func NewStatusBar(session *editor.Session, theme *Theme) *StatusBar {
	return &StatusBar{
		Session:       session,
		baseComponent: baseComponent{theme: theme},
	}
}

// Text returns the left part of the bar.
func (b *StatusBar) Text() string {
	doc := b.Session.Active()
	if doc == nil {
		return "No document open | Ctrl+N new | Ctrl+O open | Ctrl+Q quit"
	}
	text := b.Session.StatusSummary(doc).String()
	if b.Session.Autosave() {
		text += " | Autosave: on"
	}
	return text
}

func (b *StatusBar) Draw(s tcell.Screen) {
	style := b.theme.GetOrDefault("StatusBar")
	DrawRect(s, b.x, b.y, b.width, 1, ' ', style)
	DrawStrClipped(s, b.x+1, b.y, b.width-1, b.Text(), style)

	if b.Message != "" {
		w := runewidth.StringWidth(b.Message)
		DrawStrClipped(s, max(b.x, b.x+b.width-w-1), b.y, w, b.Message, style)
	}
}

func (b *StatusBar) GetMinSize() (int, int) {
	return 0, 1
}

func (b *StatusBar) SetSize(width, _ int) {
	b.width, b.height = width, 1
}

func (b *StatusBar) HandleEvent(tcell.Event) bool {
	return false
}

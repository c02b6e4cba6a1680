package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

type Button struct {
	Text     string
	Callback func()

	baseComponent
}

func NewButton(text string, theme *Theme, callback func()) *Button {
	return &Button{
		Text:          text,
		Callback:      callback,
		baseComponent: baseComponent{theme: theme},
	}
}

func (b *Button) Draw(s tcell.Screen) {
	var str string
	var style tcell.Style
	if b.focused {
		str = fmt.Sprintf("[ %s ]", b.Text)
		style = b.theme.GetOrDefault("ButtonFocused")
	} else {
		str = fmt.Sprintf("  %s  ", b.Text)
		style = b.theme.GetOrDefault("Button")
	}
	DrawStr(s, b.x, b.y, str, style)
}

func (b *Button) GetMinSize() (int, int) {
	return runewidth.StringWidth(b.Text) + 4, 1
}

func (b *Button) GetSize() (int, int) {
	return b.GetMinSize()
}

func (b *Button) SetSize(width, height int) {}

// Press runs the callback as if the button was activated from the keyboard.
func (b *Button) Press() {
	if b.Callback != nil {
		b.Callback()
	}
}

func (b *Button) HandleEvent(event tcell.Event) bool {
	if !b.focused {
		return false
	}
	if ev, ok := event.(*tcell.EventKey); ok && ev.Key() == tcell.KeyEnter {
		b.Press()
		return true
	}
	return false
}

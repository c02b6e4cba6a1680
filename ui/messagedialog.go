package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

type MessageDialogKind uint8

const (
	MessageKindNormal MessageDialogKind = iota
	MessageKindWarning
	MessageKindError
)

// Index of messageDialogKindTitles is any MessageDialogKind.
var messageDialogKindTitles = [3]string{
	"Message",
	"Warning!",
	"Error!",
}

// A MessageDialog shows a message and a row of buttons. Callback receives the
// text of the chosen button, or "" when the dialog is dismissed with Escape.
type MessageDialog struct {
	Title    string
	Kind     MessageDialogKind
	Callback func(string)

	message        string
	messageWrapped string

	buttons     []*Button
	selectedIdx int

	baseComponent
}

func NewMessageDialog(title string, message string, kind MessageDialogKind, options []string, theme *Theme, callback func(string)) *MessageDialog {
	if title == "" {
		title = messageDialogKindTitles[kind]
	}
	if len(options) == 0 {
		options = []string{"OK"}
	}

	dialog := &MessageDialog{
		Title:         title,
		Kind:          kind,
		Callback:      callback,
		baseComponent: baseComponent{theme: theme},
	}

	dialog.buttons = make([]*Button, len(options))
	for i := range options {
		text := options[i]
		dialog.buttons[i] = NewButton(text, theme, func() { dialog.choose(text) })
	}

	dialog.SetSize(0, 0)
	dialog.SetMessage(message)

	return dialog
}

func (d *MessageDialog) choose(option string) {
	if d.Callback != nil {
		d.Callback(option)
	}
}

func (d *MessageDialog) Message() string {
	return d.message
}

func (d *MessageDialog) SetMessage(message string) {
	d.message = message
	d.messageWrapped = runewidth.Wrap(message, d.width-2)
	_, minHeight := d.GetMinSize()
	d.height = max(d.height, minHeight)
}

// Selected returns the text of the focused button.
func (d *MessageDialog) Selected() string {
	return d.buttons[d.selectedIdx].Text
}

func (d *MessageDialog) selectButton(idx int) {
	n := len(d.buttons)
	d.buttons[d.selectedIdx].SetFocused(false)
	d.selectedIdx = ((idx % n) + n) % n
	d.buttons[d.selectedIdx].SetFocused(d.focused)
}

func (d *MessageDialog) Draw(s tcell.Screen) {
	DrawWindow(s, d.x, d.y, d.width, d.height, d.Title, d.theme)
	DrawStr(s, d.x+1, d.y+2, d.messageWrapped, d.theme.GetOrDefault("Window"))

	// Buttons are laid out left to right, ending at the right edge
	col := d.x + d.width - 1
	for i := len(d.buttons) - 1; i >= 0; i-- {
		width, _ := d.buttons[i].GetSize()
		col -= width + 1
		d.buttons[i].SetPos(col, d.y+d.height-2)
	}
	for _, b := range d.buttons {
		b.Draw(s)
	}
}

func (d *MessageDialog) SetFocused(v bool) {
	d.focused = v
	d.buttons[d.selectedIdx].SetFocused(v)
}

func (d *MessageDialog) SetTheme(theme *Theme) {
	d.theme = theme
	for i := range d.buttons {
		d.buttons[i].SetTheme(theme)
	}
}

func (d *MessageDialog) GetMinSize() (int, int) {
	lines := strings.Count(d.messageWrapped, "\n") + 1

	buttonsWidth := 1
	for _, b := range d.buttons {
		w, _ := b.GetSize()
		buttonsWidth += w + 1
	}
	return max(runewidth.StringWidth(d.Title)+2, buttonsWidth+1, 40), 2 + lines + 3
}

func (d *MessageDialog) SetSize(width, height int) {
	minWidth, minHeight := d.GetMinSize()
	d.width, d.height = max(width, minWidth), max(height, minHeight)
	if d.message != "" {
		d.messageWrapped = runewidth.Wrap(d.message, d.width-2)
	}
}

func (d *MessageDialog) HandleEvent(event tcell.Event) bool {
	if ev, ok := event.(*tcell.EventKey); ok {
		switch ev.Key() {
		case tcell.KeyLeft, tcell.KeyBacktab:
			d.selectButton(d.selectedIdx - 1)
			return true
		case tcell.KeyRight, tcell.KeyTab:
			d.selectButton(d.selectedIdx + 1)
			return true
		case tcell.KeyEscape:
			d.choose("")
			return true
		}
	}
	return d.buttons[d.selectedIdx].HandleEvent(event)
}

// Run shows the dialog until an option is chosen and returns it. Events that
// are not keys or resizes are dropped while the dialog is up. redraw paints
// whatever sits behind the dialog and may be nil.
func (d *MessageDialog) Run(s tcell.Screen, redraw func()) string {
	var chosen string
	done := false

	callback := d.Callback
	d.Callback = func(option string) {
		chosen, done = option, true
	}
	defer func() { d.Callback = callback }()

	d.SetFocused(true)
	for !done {
		if redraw != nil {
			redraw()
		}
		Center(d, s)
		d.Draw(s)
		s.Show()

		switch ev := s.PollEvent().(type) {
		case nil:
			return "" // Screen finalized
		case *tcell.EventResize:
			s.Sync()
		case *tcell.EventKey:
			d.HandleEvent(ev)
		}
	}
	d.SetFocused(false)

	if callback != nil {
		callback(chosen)
	}
	return chosen
}

package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// A FileSelectorDialog asks for file paths. With Multiple set, the input is
// split on commas so several files can be opened at once; otherwise the whole
// input is one path, as for saving.
type FileSelectorDialog struct {
	Title    string
	Multiple bool
	// FilesChosenCallback receives the chosen paths. It is not called when
	// the input is empty.
	FilesChosenCallback func([]string)
	CancelCallback      func()

	tabOrder    []Component
	tabOrderIdx int

	inputField    *InputField
	confirmButton *Button
	cancelButton  *Button

	baseComponent
}

func NewFileSelectorDialog(screen tcell.Screen, title, initial string, multiple bool, theme *Theme, filesChosenCallback func([]string), cancelCallback func()) *FileSelectorDialog {
	dialog := &FileSelectorDialog{
		Title:               title,
		Multiple:            multiple,
		FilesChosenCallback: filesChosenCallback,
		CancelCallback:      cancelCallback,
		baseComponent:       baseComponent{theme: theme},
	}

	dialog.inputField = NewInputField(screen, initial, theme)
	dialog.confirmButton = NewButton("Confirm", theme, dialog.onConfirm)
	dialog.cancelButton = NewButton("Cancel", theme, dialog.onCancel)
	dialog.tabOrder = []Component{dialog.inputField, dialog.cancelButton, dialog.confirmButton}

	return dialog
}

// Paths splits the current input the way the dialog would on confirm.
func (d *FileSelectorDialog) Paths() []string {
	raw := strings.TrimSpace(d.inputField.Text())
	if raw == "" {
		return nil
	}
	if !d.Multiple {
		return []string{raw}
	}
	var paths []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

func (d *FileSelectorDialog) onConfirm() {
	paths := d.Paths()
	if len(paths) > 0 && d.FilesChosenCallback != nil {
		d.FilesChosenCallback(paths)
	}
}

func (d *FileSelectorDialog) onCancel() {
	if d.CancelCallback != nil {
		d.CancelCallback()
	}
}

func (d *FileSelectorDialog) Draw(s tcell.Screen) {
	DrawWindow(s, d.x, d.y, d.width, d.height, d.Title, d.theme)

	btnWidth, _ := d.confirmButton.GetSize()
	d.confirmButton.SetPos(d.x+d.width-btnWidth-1, d.y+4) // Right, bottom
	d.cancelButton.SetPos(d.x+1, d.y+4)                   // Left, bottom

	d.inputField.Draw(s)
	d.confirmButton.Draw(s)
	d.cancelButton.Draw(s)
}

func (d *FileSelectorDialog) SetFocused(v bool) {
	d.focused = v
	d.tabOrder[d.tabOrderIdx].SetFocused(v)
}

func (d *FileSelectorDialog) SetTheme(theme *Theme) {
	d.theme = theme
	for _, c := range d.tabOrder {
		c.SetTheme(theme)
	}
}

func (d *FileSelectorDialog) SetPos(x, y int) {
	d.x, d.y = x, y
	d.inputField.SetPos(d.x+1, d.y+2)
}

func (d *FileSelectorDialog) GetMinSize() (int, int) {
	return max(runewidth.StringWidth(d.Title)+2, 50), 6
}

func (d *FileSelectorDialog) SetSize(width, height int) {
	minX, minY := d.GetMinSize()
	d.width, d.height = max(width, minX), max(height, minY)
	d.inputField.SetSize(d.width-2, 1)
}

func (d *FileSelectorDialog) HandleEvent(event tcell.Event) bool {
	if ev, ok := event.(*tcell.EventKey); ok {
		switch ev.Key() {
		case tcell.KeyTab:
			d.tabOrder[d.tabOrderIdx].SetFocused(false)
			d.tabOrderIdx = (d.tabOrderIdx + 1) % len(d.tabOrder)
			d.tabOrder[d.tabOrderIdx].SetFocused(true)
			return true
		case tcell.KeyEscape:
			d.onCancel()
			return true
		case tcell.KeyEnter:
			if d.tabOrder[d.tabOrderIdx] == d.inputField {
				d.onConfirm()
				return true
			}
		}
	}
	return d.tabOrder[d.tabOrderIdx].HandleEvent(event)
}

// Run shows the dialog until it is confirmed or cancelled and returns the
// chosen paths, or nil when cancelled. redraw paints whatever sits behind
// the dialog and may be nil.
func (d *FileSelectorDialog) Run(s tcell.Screen, redraw func()) []string {
	var chosen []string
	done := false

	chosenCallback, cancelCallback := d.FilesChosenCallback, d.CancelCallback
	d.FilesChosenCallback = func(paths []string) { chosen, done = paths, true }
	d.CancelCallback = func() { done = true }
	defer func() { d.FilesChosenCallback, d.CancelCallback = chosenCallback, cancelCallback }()

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
			return nil
		case *tcell.EventResize:
			s.Sync()
		case *tcell.EventKey:
			d.HandleEvent(ev)
		}
	}
	d.SetFocused(false)

	if chosen != nil && chosenCallback != nil {
		chosenCallback(chosen)
	} else if chosen == nil && cancelCallback != nil {
		cancelCallback()
	}
	return chosen
}

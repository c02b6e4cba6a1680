package main

import (
	"strconv"
	"strings"

	"github.com/fivemoreminix/qpad/ui"
	"github.com/gdamore/tcell/v2"
)

// GotoLineDialog asks for a 1-based line number.
type GotoLineDialog struct {
	LineChosenCallback func(int)
	CancelCallback     func()

	x, y          int
	width, height int
	focused       bool
	theme         *ui.Theme

	tabOrder    []ui.Component
	tabOrderIdx int

	inputField   *ui.InputField
	acceptButton *ui.Button
	cancelButton *ui.Button
}

func NewGotoLineDialog(s tcell.Screen, theme *ui.Theme, lineChosenCallback func(int), cancelCallback func()) *GotoLineDialog {
	dialog := &GotoLineDialog{
		LineChosenCallback: lineChosenCallback,
		CancelCallback:     cancelCallback,
		theme:              theme,
	}

	dialog.inputField = ui.NewInputField(s, "", theme)
	dialog.acceptButton = ui.NewButton("Go", theme, dialog.onConfirm)
	dialog.cancelButton = ui.NewButton("Cancel", theme, dialog.onCancel)
	dialog.tabOrder = []ui.Component{dialog.inputField, dialog.cancelButton, dialog.acceptButton}

	return dialog
}

// parseLine accepts a positive line number, ignoring surrounding spaces.
func parseLine(s string) (int, bool) {
	num, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || num < 1 {
		return 0, false
	}
	return num, true
}

func (d *GotoLineDialog) onConfirm() {
	if num, ok := parseLine(d.inputField.Text()); ok && d.LineChosenCallback != nil {
		d.LineChosenCallback(num)
	}
}

func (d *GotoLineDialog) onCancel() {
	if d.CancelCallback != nil {
		d.CancelCallback()
	}
}

func (d *GotoLineDialog) Draw(s tcell.Screen) {
	ui.DrawWindow(s, d.x, d.y, d.width, d.height, "Go to line", d.theme)

	btnWidth, _ := d.acceptButton.GetSize()
	d.acceptButton.SetPos(d.x+d.width-btnWidth-1, d.y+4) // Place "Go" button on right, bottom

	d.inputField.Draw(s)
	d.acceptButton.Draw(s)
	d.cancelButton.Draw(s)
}

func (d *GotoLineDialog) SetFocused(v bool) {
	d.focused = v
	d.tabOrder[d.tabOrderIdx].SetFocused(v)
}

func (d *GotoLineDialog) SetTheme(theme *ui.Theme) {
	d.theme = theme
	for _, c := range d.tabOrder {
		c.SetTheme(theme)
	}
}

func (d *GotoLineDialog) GetPos() (int, int) {
	return d.x, d.y
}

func (d *GotoLineDialog) SetPos(x, y int) {
	d.x, d.y = x, y
	d.inputField.SetPos(d.x+1, d.y+2)
	d.cancelButton.SetPos(d.x+1, d.y+4) // Place "Cancel" button on left, bottom
}

func (d *GotoLineDialog) GetMinSize() (int, int) {
	return 24, 6
}

func (d *GotoLineDialog) GetSize() (int, int) {
	return d.width, d.height
}

func (d *GotoLineDialog) SetSize(width, height int) {
	minX, minY := d.GetMinSize()
	d.width, d.height = max(width, minX), max(height, minY)
	d.inputField.SetSize(d.width-2, 1)
}

func (d *GotoLineDialog) HandleEvent(event tcell.Event) bool {
	if ev, ok := event.(*tcell.EventKey); ok {
		switch ev.Key() {
		case tcell.KeyTab:
			d.tabOrder[d.tabOrderIdx].SetFocused(false)
			d.tabOrderIdx = (d.tabOrderIdx + 1) % len(d.tabOrder)
			d.tabOrder[d.tabOrderIdx].SetFocused(true)
			return true
		case tcell.KeyEsc:
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

// Run shows the dialog until a line is chosen or the dialog is cancelled, and
// returns the line, or zero when cancelled.
func (d *GotoLineDialog) Run(s tcell.Screen, redraw func()) int {
	var line int
	done := false

	chosenCallback, cancelCallback := d.LineChosenCallback, d.CancelCallback
	d.LineChosenCallback = func(n int) { line, done = n, true }
	d.CancelCallback = func() { done = true }
	defer func() { d.LineChosenCallback, d.CancelCallback = chosenCallback, cancelCallback }()

	d.SetFocused(true)
	for !done {
		if redraw != nil {
			redraw()
		}
		ui.Center(d, s)
		d.Draw(s)
		s.Show()

		switch ev := s.PollEvent().(type) {
		case nil:
			return 0
		case *tcell.EventResize:
			s.Sync()
		case *tcell.EventKey:
			d.HandleEvent(ev)
		}
	}
	d.SetFocused(false)

	if line > 0 && chosenCallback != nil {
		chosenCallback(line)
	} else if line == 0 && cancelCallback != nil {
		cancelCallback()
	}
	return line
}

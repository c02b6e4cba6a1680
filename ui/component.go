package ui

import (
	"github.com/gdamore/tcell/v2"
)

// A Component is anything drawn inside a rectangle of the screen: buttons,
// input fields, the text editor, dialogs. After constructing a component,
// call SetPos() and usually SetSize() before drawing it.
type Component interface {
	Draw(tcell.Screen)
	// A focused component receives keyboard events and may show the cursor.
	SetFocused(bool)
	// SetTheme applies the theme to the component and all of its children.
	SetTheme(*Theme)

	GetPos() (x, y int)
	SetPos(x, y int)

	// GetMinSize returns the smallest size the Component can be drawn at.
	GetMinSize() (w, h int)
	GetSize() (w, h int)
	// SetSize resizes the component. Sizes below the minimum are raised to it.
	SetSize(w, h int)

	// HandleEvent returns whether the event was consumed.
	HandleEvent(tcell.Event) bool
}

// baseComponent holds the fields every Component needs and defaults for the
// boring methods. Embed it and override what differs.
type baseComponent struct {
	focused       bool
	x, y          int
	width, height int
	theme         *Theme
}

func (c *baseComponent) SetFocused(v bool) {
	c.focused = v
}

func (c *baseComponent) SetTheme(theme *Theme) {
	c.theme = theme
}

func (c *baseComponent) GetPos() (int, int) {
	return c.x, c.y
}

func (c *baseComponent) SetPos(x, y int) {
	c.x, c.y = x, y
}

func (c *baseComponent) GetMinSize() (int, int) {
	return 0, 0
}

func (c *baseComponent) GetSize() (int, int) {
	return c.width, c.height
}

func (c *baseComponent) SetSize(width, height int) {
	c.width, c.height = width, height
}

// Center sizes a dialog to its minimum and centers it on the screen.
func Center(c Component, s tcell.Screen) {
	w, h := s.Size()
	minW, minH := c.GetMinSize()
	c.SetSize(minW, minH)
	c.SetPos(w/2-minW/2, h/2-minH/2)
}

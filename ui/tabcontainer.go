package ui

import (
	"fmt"

	"github.com/fivemoreminix/qpad/pkg/editor"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// A TabContainer shows the documents of a Session as tabs and the active one
// in a TextEdit below them. The Session decides which documents exist and
// which is active; the container only keeps a TextEdit for each of them.
type TabContainer struct {
	Session *editor.Session
	TabSize int

	screen tcell.Screen
	edits  map[*editor.Document]*TextEdit

	baseComponent
}

func NewTabContainer(screen tcell.Screen, session *editor.Session, tabSize int, theme *Theme) *TabContainer {
	return &TabContainer{
		Session:       session,
		TabSize:       tabSize,
		screen:        screen,
		edits:         make(map[*editor.Document]*TextEdit),
		baseComponent: baseComponent{theme: theme},
	}
}

// TabName returns how a document is labelled in the tab bar. Modified
// documents are marked with a '*'.
func TabName(doc *editor.Document) string {
	if doc.Modified() {
		return "*" + doc.Title
	}
	return doc.Title
}

// editFor returns the TextEdit of doc, creating it on first use.
func (c *TabContainer) editFor(doc *editor.Document) *TextEdit {
	te, ok := c.edits[doc]
	if !ok {
		te = NewTextEdit(c.screen, doc, c.TabSize)
		c.edits[doc] = te
	}
	te.SetPos(c.x+1, c.y+1)
	te.SetSize(max(0, c.width-2), max(0, c.height-2))
	return te
}

// Active returns the TextEdit of the active document, or nil.
func (c *TabContainer) Active() *TextEdit {
	doc := c.Session.Active()
	if doc == nil {
		return nil
	}
	return c.editFor(doc)
}

// Sync forgets the TextEdits of documents the Session has closed and focuses
// the active one.
func (c *TabContainer) Sync() {
	open := make(map[*editor.Document]bool, c.Session.Len())
	for _, doc := range c.Session.Documents() {
		open[doc] = true
	}
	for doc := range c.edits {
		if !open[doc] {
			delete(c.edits, doc)
		}
	}
	for doc, te := range c.edits {
		te.SetFocused(c.focused && doc == c.Session.Active())
	}
	if te := c.Active(); te != nil {
		te.SetFocused(c.focused)
	} else if c.screen != nil {
		c.screen.HideCursor()
	}
}

// Draw draws the border with the tabs on its top edge, then the active
// document.
func (c *TabContainer) Draw(s tcell.Screen) {
	style := c.theme.GetOrDefault("TabContainer")
	DrawRectOutlineDefault(s, c.x, c.y, c.width, c.height, style)

	docs := c.Session.Documents()
	names := make([]string, len(docs))
	combinedTabLength := max(0, len(docs)-1) // Spacing between tabs
	for i, doc := range docs {
		names[i] = fmt.Sprintf(" %s ", TabName(doc))
		combinedTabLength += runewidth.StringWidth(names[i])
	}

	col := c.x + max(1, c.width/2-combinedTabLength/2)
	for i, name := range names {
		sty := c.theme.GetOrDefault("Tab")
		if i == c.Session.ActiveIndex() {
			sty = c.theme.GetOrDefault("TabSelected")
		}
		col = DrawStr(s, col, c.y, name, sty) + 1
	}

	if te := c.Active(); te != nil {
		te.Draw(s)
	}
}

// SetFocused focuses the active TextEdit.
func (c *TabContainer) SetFocused(v bool) {
	c.focused = v
	c.Sync()
}

// SetTheme sets the theme of the tab strip. Each TextEdit follows the theme
// of its Document instead.
func (c *TabContainer) SetTheme(theme *Theme) {
	c.theme = theme
}

func (c *TabContainer) SetPos(x, y int) {
	c.x, c.y = x, y
	for _, te := range c.edits {
		te.SetPos(x+1, y+1)
	}
}

func (c *TabContainer) SetSize(width, height int) {
	c.width, c.height = width, height
	for _, te := range c.edits {
		te.SetSize(max(0, width-2), max(0, height-2))
	}
}

// HandleEvent switches tabs on Ctrl+E and Ctrl+W and forwards everything else
// to the active TextEdit.
func (c *TabContainer) HandleEvent(event tcell.Event) bool {
	if ev, ok := event.(*tcell.EventKey); ok {
		switch ev.Key() {
		case tcell.KeyCtrlE:
			c.Session.Next()
			c.Sync()
			return true
		case tcell.KeyCtrlW:
			c.Session.Prev()
			c.Sync()
			return true
		}
	}

	if te := c.Active(); te != nil {
		return te.HandleEvent(event)
	}
	return false
}

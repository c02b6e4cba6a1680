package main

import (
	"errors"
	"fmt"

	"github.com/fivemoreminix/qpad/pkg/editor"
	"github.com/fivemoreminix/qpad/ui"
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

// autosaveEvent carries an autosave tick from the Autosaver goroutine into
// the event loop.
type autosaveEvent struct {
	tcell.EventTime
}

// app is the front end: it lays out the menu bar, the tabs and the status
// bar, and turns menu actions into Session calls. Everything runs on the
// goroutine that calls Run.
type app struct {
	screen  tcell.Screen
	session *editor.Session
	clip    *Clipboard
	log     *zap.Logger
	theme   *ui.Theme

	bar    *ui.MenuBar
	tabs   *ui.TabContainer
	status *ui.StatusBar

	focusedComponent ui.Component
	quit             bool
}

func newApp(s tcell.Screen, session *editor.Session, clip *Clipboard, log *zap.Logger) *app {
	theme := ui.NewTheme(session.Theme())
	a := &app{
		screen:  s,
		session: session,
		clip:    clip,
		log:     log,
		theme:   theme,
		bar:     ui.NewMenuBar(theme),
		tabs:    ui.NewTabContainer(s, session, session.TabSize(), theme),
		status:  ui.NewStatusBar(session, theme),
	}
	a.buildMenus()
	a.layout()
	a.changeFocus(a.tabs) // TabContainer is focused by default
	return a
}

func (a *app) changeFocus(to ui.Component) {
	if a.focusedComponent != nil {
		a.focusedComponent.SetFocused(false)
	}
	a.focusedComponent = to
	if to != nil {
		to.SetFocused(true)
	}
}

func (a *app) layout() {
	w, h := a.screen.Size()
	a.bar.SetPos(0, 0)
	a.bar.SetSize(w, 1)
	a.tabs.SetPos(0, 1)
	a.tabs.SetSize(w, max(0, h-2))
	a.status.SetPos(0, h-1)
	a.status.SetSize(w, 1)
}

func (a *app) draw() {
	a.screen.Clear()
	w, h := a.screen.Size()

	if a.session.Len() > 0 { // Draw the tab container only if a tab is open
		a.tabs.Draw(a.screen)
	} else {
		ui.DrawRect(a.screen, 0, 1, w, max(0, h-2), ' ', a.theme.GetOrDefault("Normal"))
	}
	a.status.Draw(a.screen)
	a.bar.Draw(a.screen) // Last, so an open menu covers the tabs
}

// Run is the event loop. It returns once the user quits and every modified
// document has been dealt with.
func (a *app) Run() {
	for !a.quit {
		a.tabs.Sync()
		a.draw()
		a.screen.Show()

		switch ev := a.screen.PollEvent().(type) {
		case nil:
			return // Screen finalized
		case *tcell.EventResize:
			a.layout()
			a.screen.Sync() // Redraw everything
		case *autosaveEvent:
			if err := a.session.AutosaveTick(ev.When()); err != nil {
				a.log.Warn("autosave", zap.Error(err))
				a.status.Message = "Autosave failed"
			}
		case *tcell.EventKey:
			a.handleKey(ev)
		}
	}
}

func (a *app) handleKey(ev *tcell.EventKey) {
	a.status.Message = ""

	// On Escape, we change focus between the editor and the MenuBar.
	if ev.Key() == tcell.KeyEscape {
		if a.focusedComponent == a.bar {
			a.changeFocus(a.tabs)
		} else {
			a.changeFocus(a.bar)
		}
		return
	}

	if a.bar.HandleEvent(ev) {
		return
	}
	if a.focusedComponent != a.bar {
		a.focusedComponent.HandleEvent(ev)
	}
}

// action wraps a menu callback so the editor has focus again once the menu
// closes.
func (a *app) action(fn func()) func() {
	return func() {
		a.changeFocus(a.tabs)
		fn()
	}
}

func (a *app) buildMenus() {
	fileMenu := ui.NewMenu("File", 0, a.theme)
	fileMenu.AddItems(
		&ui.ItemEntry{Name: "New File", Shortcut: "Ctrl+N", Key: tcell.KeyCtrlN, Callback: a.action(a.newFile)},
		&ui.ItemEntry{Name: "Open...", Shortcut: "Ctrl+O", Key: tcell.KeyCtrlO, Callback: a.action(a.open)},
		&ui.ItemEntry{Name: "Save", Shortcut: "Ctrl+S", Key: tcell.KeyCtrlS, Callback: a.action(func() {
			a.save(a.session.Active())
		})},
		&ui.ItemEntry{Name: "Save As...", QuickChar: 5, Callback: a.action(func() {
			a.saveAs(a.session.Active())
		})},
		&ui.ItemSeparator{},
		&ui.ItemEntry{Name: "Exit", QuickChar: 1, Shortcut: "Ctrl+Q", Key: tcell.KeyCtrlQ, Callback: a.action(func() {
			a.quit = a.confirmQuit()
		})},
	)

	editMenu := ui.NewMenu("Edit", 0, a.theme)
	editMenu.AddItems(
		&ui.ItemEntry{Name: "Cut", QuickChar: 2, Shortcut: "Ctrl+X", Key: tcell.KeyCtrlX, Callback: a.action(a.cut)},
		&ui.ItemEntry{Name: "Copy", Shortcut: "Ctrl+C", Key: tcell.KeyCtrlC, Callback: a.action(a.copy)},
		&ui.ItemEntry{Name: "Paste", Shortcut: "Ctrl+V", Key: tcell.KeyCtrlV, Callback: a.action(a.paste)},
		&ui.ItemSeparator{},
		&ui.ItemEntry{Name: "Go to line...", Shortcut: "Ctrl+G", Key: tcell.KeyCtrlG, Callback: a.action(a.gotoLine)},
	)

	viewMenu := ui.NewMenu("View", 0, a.theme)
	viewMenu.AddItems(
		&ui.ItemEntry{Name: "Toggle theme", Shortcut: "Ctrl+T", Key: tcell.KeyCtrlT, Callback: a.action(a.toggleTheme)},
		&ui.ItemEntry{Name: "Toggle autosave", QuickChar: 7, Shortcut: "Ctrl+A", Key: tcell.KeyCtrlA, Callback: a.action(a.toggleAutosave)},
	)

	langMenu := ui.NewMenu("Language", 0, a.theme)
	for _, name := range a.session.Languages() {
		langMenu.AddItems(&ui.ItemEntry{Name: name, QuickChar: -1, Callback: a.action(func() {
			a.session.SetLanguage(name)
		})})
	}
	langMenu.AddItems(
		&ui.ItemSeparator{},
		&ui.ItemEntry{Name: "Cycle language", Shortcut: "Ctrl+L", Key: tcell.KeyCtrlL, Callback: a.action(a.cycleLanguage)},
	)

	tabsMenu := ui.NewMenu("Tabs", 0, a.theme)
	tabsMenu.AddItems(
		&ui.ItemEntry{Name: "Next tab", Shortcut: "Ctrl+E", Key: tcell.KeyCtrlE, Callback: a.action(a.session.Next)},
		&ui.ItemEntry{Name: "Previous tab", Shortcut: "Ctrl+W", Key: tcell.KeyCtrlW, Callback: a.action(a.session.Prev)},
		&ui.ItemSeparator{},
		&ui.ItemEntry{Name: "Close tab", Shortcut: "Ctrl+D", Key: tcell.KeyCtrlD, Callback: a.action(a.closeTab)},
		&ui.ItemEntry{Name: "Close other tabs", QuickChar: 6, Shortcut: "Ctrl+K", Key: tcell.KeyCtrlK, Callback: a.action(a.closeOthers)},
	)

	a.bar.AddMenu(fileMenu)
	a.bar.AddMenu(editMenu)
	a.bar.AddMenu(viewMenu)
	a.bar.AddMenu(langMenu)
	a.bar.AddMenu(tabsMenu)
}

// modal runs a dialog loop with the editor unfocused, so only the dialog
// shows a cursor.
func (a *app) modal(run func(redraw func())) {
	a.changeFocus(nil)
	a.screen.HideCursor()
	run(a.draw)
	a.screen.HideCursor()
	a.changeFocus(a.tabs)
}

func (a *app) showError(err error) {
	a.log.Info("error shown", zap.Error(err))
	a.modal(func(redraw func()) {
		ui.NewMessageDialog("", err.Error(), ui.MessageKindError, nil, a.theme, nil).Run(a.screen, redraw)
	})
}

// askPath shows a file selector and returns the path typed into it, or ""
// when cancelled.
func (a *app) askPath(title, initial string) string {
	var paths []string
	a.modal(func(redraw func()) {
		paths = ui.NewFileSelectorDialog(a.screen, title, initial, false, a.theme, nil, nil).Run(a.screen, redraw)
	})
	if len(paths) == 0 {
		return ""
	}
	return paths[0]
}

// promptClose asks what to do with a modified document. A document without a
// path is saved through a file selector first.
func (a *app) promptClose(doc *editor.Document) editor.Response {
	var choice string
	a.modal(func(redraw func()) {
		msg := fmt.Sprintf("%q has unsaved changes. Save them?", doc.Title)
		choice = ui.NewMessageDialog("Unsaved changes", msg, ui.MessageKindWarning,
			[]string{"Save", "Discard", "Cancel"}, a.theme, nil).Run(a.screen, redraw)
	})

	switch choice {
	case "Save":
		if doc.FilePath == "" {
			path := a.askPath("Save as", "")
			if path == "" {
				return editor.Cancel
			}
			if err := a.session.SaveAs(doc, path); err != nil {
				a.showError(err)
				return editor.Cancel
			}
		}
		return editor.SaveThenClose
	case "Discard":
		return editor.DiscardAndClose
	}
	return editor.Cancel
}

func (a *app) newFile() {
	a.session.NewDocument("noname", "", "")
}

func (a *app) open() {
	var paths []string
	a.modal(func(redraw func()) {
		paths = ui.NewFileSelectorDialog(a.screen, "Comma-separated files to open", "", true, a.theme, nil, nil).Run(a.screen, redraw)
	})
	if len(paths) == 0 {
		return
	}
	if err := a.session.Drop(paths); err != nil {
		a.showError(err)
	}
}

func (a *app) save(doc *editor.Document) {
	if doc == nil {
		return
	}
	if doc.FilePath == "" {
		a.saveAs(doc)
		return
	}
	if err := a.session.Save(doc); err != nil {
		a.showError(err)
		return
	}
	a.status.Message = "Saved " + doc.FilePath
}

func (a *app) saveAs(doc *editor.Document) {
	if doc == nil {
		return
	}
	path := a.askPath("Save as", doc.FilePath)
	if path == "" {
		return
	}
	if err := a.session.SaveAs(doc, path); err != nil {
		a.showError(err)
		return
	}
	a.status.Message = "Saved " + path
}

func (a *app) closeTab() {
	doc := a.session.Active()
	if doc == nil {
		return
	}
	err := a.session.CloseDocument(doc, a.promptClose)
	if err != nil && !errors.Is(err, editor.ErrCancelled) {
		a.showError(err)
	}
	ensureDocument(a.session)
}

func (a *app) closeOthers() {
	doc := a.session.Active()
	if doc == nil {
		return
	}
	err := a.session.CloseOthers(doc, a.promptClose)
	if err != nil && !errors.Is(err, editor.ErrCancelled) {
		a.showError(err)
	}
}

// confirmQuit asks about every modified document in tab order. Nothing is
// closed; quitting is abandoned at the first Cancel or failed save.
func (a *app) confirmQuit() bool {
	for i, doc := range a.session.Documents() {
		if !doc.Modified() {
			continue
		}
		a.session.SetActive(i)
		switch a.promptClose(doc) {
		case editor.Cancel:
			return false
		case editor.SaveThenClose:
			if err := a.session.Save(doc); err != nil {
				a.showError(err)
				return false
			}
		}
	}
	return true
}

func (a *app) copy() {
	te := a.tabs.Active()
	if te == nil {
		return
	}
	text := te.SelectedText()
	if text == "" {
		text = te.CurrentLine()
	}
	if err := a.clip.Write(text); err != nil {
		a.showError(err)
		return
	}
	a.status.Message = "Copied"
}

func (a *app) cut() {
	te := a.tabs.Active()
	if te == nil {
		return
	}
	text := te.SelectedText()
	if text == "" {
		a.screen.Beep()
		return
	}
	if err := a.clip.Write(text); err != nil {
		a.showError(err)
		return
	}
	te.Delete(false) // Delete the selection
}

func (a *app) paste() {
	te := a.tabs.Active()
	if te == nil {
		return
	}
	contents, err := a.clip.Read()
	if err != nil {
		a.showError(err)
		return
	}
	te.Insert(contents)
}

func (a *app) gotoLine() {
	te := a.tabs.Active()
	if te == nil {
		return
	}
	var line int
	a.modal(func(redraw func()) {
		line = NewGotoLineDialog(a.screen, a.theme, nil, nil).Run(a.screen, redraw)
	})
	if line > 0 {
		te.SetCursor(te.GetCursor().SetLineCol(line-1, 0))
	}
}

func (a *app) toggleTheme() {
	a.session.ToggleTheme()
	a.theme = ui.NewTheme(a.session.Theme())
	a.bar.SetTheme(a.theme)
	a.tabs.SetTheme(a.theme)
	a.status.SetTheme(a.theme)
	a.status.Message = fmt.Sprintf("Theme: %s", a.session.Theme())
}

func (a *app) toggleAutosave() {
	a.session.SetAutosave(!a.session.Autosave())
	if a.session.Autosave() {
		a.status.Message = fmt.Sprintf("Autosave every %s", a.session.AutosaveInterval())
	} else {
		a.status.Message = "Autosave off"
	}
}

func (a *app) cycleLanguage() {
	if a.session.Active() == nil {
		return
	}
	a.status.Message = "Language: " + a.session.CycleLanguage()
}

package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestQuickCharInString(t *testing.T) {
	cases := []struct {
		s    string
		idx  int
		want rune
	}{
		{"Save As...", 5, 'a'},
		{"File", 0, 'f'},
		{"File", -1, 0},
		{"File", 4, 0},
		{"Übersicht", 0, 'ü'},
	}
	for _, c := range cases {
		if got := QuickCharInString(c.s, c.idx); got != c.want {
			t.Errorf("QuickCharInString(%q, %d): expected %q, got %q", c.s, c.idx, c.want, got)
		}
	}
}

func TestMenuBarShortcut(t *testing.T) {
	var saved, opened int
	file := NewMenu("File", 0, nil)
	file.AddItems(
		&ItemEntry{Name: "Open", Shortcut: "Ctrl+O", Key: tcell.KeyCtrlO, Callback: func() { opened++ }},
		&ItemEntry{Name: "Save", Shortcut: "Ctrl+S", Key: tcell.KeyCtrlS, Callback: func() { saved++ }},
	)
	bar := NewMenuBar(nil)
	bar.AddMenu(file)

	// Shortcuts work while the bar is not focused
	if !bar.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl)) {
		t.Fatal("Expected Ctrl+S to be handled")
	}
	if saved != 1 || opened != 0 {
		t.Errorf("Expected only Save to run, got saved=%d opened=%d", saved, opened)
	}
	if bar.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlB, 0, tcell.ModCtrl)) {
		t.Error("Expected an unbound key to be left alone")
	}
	if bar.HandleEvent(runeKey('f')) {
		t.Error("Expected runes to be ignored while the bar is unfocused")
	}
}

func TestMenuBarNavigation(t *testing.T) {
	var chosen string
	entry := func(name string) *ItemEntry {
		return &ItemEntry{Name: name, Callback: func() { chosen = name }}
	}
	file := NewMenu("File", 0, nil)
	file.AddItems(entry("New"), &ItemSeparator{}, entry("Exit"))
	edit := NewMenu("Edit", 0, nil)
	edit.AddItems(entry("Copy"))

	bar := NewMenuBar(nil)
	bar.AddMenu(file)
	bar.AddMenu(edit)
	bar.SetFocused(true)

	bar.HandleEvent(runeKey('f'))
	if !bar.MenuVisible() {
		t.Fatal("Expected the quick char to open the File menu")
	}
	bar.HandleEvent(key(tcell.KeyDown))
	if file.selected != 2 {
		t.Errorf("Expected Down to skip the separator, selected %d", file.selected)
	}
	bar.HandleEvent(key(tcell.KeyEnter))
	if chosen != "Exit" {
		t.Errorf("Expected \"Exit\", got %q", chosen)
	}
	if bar.MenuVisible() {
		t.Error("Expected choosing an item to close the menu")
	}

	bar.HandleEvent(key(tcell.KeyRight))
	bar.ActivateMenuUnderCursor()
	bar.HandleEvent(runeKey('c'))
	if chosen != "Copy" {
		t.Errorf("Expected \"Copy\" from the Edit menu, got %q", chosen)
	}
}

func TestMenuSize(t *testing.T) {
	m := NewMenu("File", 0, nil)
	m.AddItems(
		&ItemEntry{Name: "Open...", Shortcut: "Ctrl+O"},
		&ItemSeparator{},
		&ItemEntry{Name: "Exit"},
	)
	w, h := m.GetSize()
	// Border, "Open...", " Ctrl+O ", border
	if w != 1+7+8+1 || h != 5 {
		t.Errorf("Expected 17x5, got %dx%d", w, h)
	}
}

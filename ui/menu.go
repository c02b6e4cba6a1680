package ui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Item is implemented by ItemEntry and ItemSeparator to be listed in Menus.
type Item interface {
	GetName() string
	// Returns a character/rune index of the name of the item.
	GetQuickCharIdx() int
	// GetShortcut returns the label of the key that triggers the item from
	// anywhere, like "Ctrl+S". An empty string implies no shortcut.
	GetShortcut() string
}

// An ItemSeparator is like a blank Item that cannot actually be selected. It is useful
// for separating items in a Menu.
type ItemSeparator struct{}

func (i *ItemSeparator) GetName() string {
	return ""
}

func (i *ItemSeparator) GetQuickCharIdx() int {
	return 0
}

func (i *ItemSeparator) GetShortcut() string {
	return ""
}

// ItemEntry is a listing in a Menu with a name and callback. When Key is set,
// pressing it anywhere activates the entry.
type ItemEntry struct {
	Name      string
	QuickChar int // Character/rune index of Name
	Shortcut  string
	Key       tcell.Key
	Callback  func()
}

func (i *ItemEntry) GetName() string {
	return i.Name
}

func (i *ItemEntry) GetQuickCharIdx() int {
	return i.QuickChar
}

func (i *ItemEntry) GetShortcut() string {
	return i.Shortcut
}

// QuickCharInString is used for finding the "quick char" in a string. The rune
// is always made lowercase. A rune of value zero is returned if the index was
// less than zero, or greater or equal to, the number of runes in s.
func QuickCharInString(s string, idx int) rune {
	if idx < 0 {
		return 0
	}
	var runeIdx int
	for _, r := range s {
		if runeIdx == idx {
			return unicode.ToLower(r)
		}
		runeIdx++
	}
	return 0
}

// DrawQuickCharStr draws str with the rune at quickCharIdx underlined, and
// returns the number of columns drawn.
func DrawQuickCharStr(s tcell.Screen, x, y int, str string, quickCharIdx int, style tcell.Style) int {
	col := x
	var runeIdx int
	for _, r := range str {
		sty := style
		if runeIdx == quickCharIdx {
			sty = style.Underline(true)
		}
		s.SetContent(col, y, r, nil, sty)
		col += runewidth.RuneWidth(r)
		runeIdx++
	}
	return col - x
}

// A MenuBar is a horizontal list of menus.
type MenuBar struct {
	menus        []*Menu
	selected     int  // Index of selection in MenuBar
	menusVisible bool // Whether to draw the selected menu

	baseComponent
}

func NewMenuBar(theme *Theme) *MenuBar {
	return &MenuBar{
		menus:         make([]*Menu, 0, 6),
		baseComponent: baseComponent{theme: theme},
	}
}

func (b *MenuBar) AddMenu(menu *Menu) {
	menu.itemSelectedCallback = func() {
		b.menusVisible = false
		menu.SetFocused(false)
	}
	menu.SetTheme(b.theme)
	b.menus = append(b.menus, menu)
}

// Menus returns the menus in display order.
func (b *MenuBar) Menus() []*Menu {
	return b.menus
}

// GetMenuXPos returns the X position of the name of Menu at `idx` visually.
func (b *MenuBar) GetMenuXPos(idx int) int {
	x := b.x + 1
	for i := 0; i < idx; i++ {
		x += runewidth.StringWidth(b.menus[i].Name) + 2 // two for padding
	}
	return x
}

func (b *MenuBar) ActivateMenuUnderCursor() {
	if len(b.menus) == 0 {
		return
	}
	b.menusVisible = true
	menu := b.menus[b.selected]
	menu.SetPos(b.GetMenuXPos(b.selected), b.y+1)
	menu.SetFocused(true)
}

// MenuVisible reports whether a menu is open below the bar.
func (b *MenuBar) MenuVisible() bool {
	return b.menusVisible
}

func (b *MenuBar) moveCursor(delta int) {
	if len(b.menus) == 0 {
		return
	}
	if b.menusVisible {
		b.menus[b.selected].SetFocused(false)
	}
	b.selected = (b.selected + delta + len(b.menus)) % len(b.menus)
	if b.menusVisible {
		b.menus[b.selected].SetPos(b.GetMenuXPos(b.selected), b.y+1)
		b.menus[b.selected].SetFocused(true)
	}
}

// Draw renders the MenuBar and its open menu.
func (b *MenuBar) Draw(s tcell.Screen) {
	normalStyle := b.theme.GetOrDefault("MenuBar")

	DrawRect(s, b.x, b.y, b.width, 1, ' ', normalStyle)
	col := b.x + 1
	for i, menu := range b.menus {
		sty := normalStyle
		if b.focused && b.selected == i {
			sty = b.theme.GetOrDefault("MenuBarSelected")
		}
		col += DrawQuickCharStr(s, col, b.y, fmt.Sprintf(" %s ", menu.Name), menu.QuickChar+1, sty)
	}

	if b.menusVisible {
		b.menus[b.selected].Draw(s)
	}
}

// SetFocused highlights the MenuBar. Unfocusing closes any open menu.
func (b *MenuBar) SetFocused(v bool) {
	b.focused = v
	if !v {
		if len(b.menus) > 0 {
			b.menus[b.selected].SetFocused(false)
		}
		b.selected = 0
		b.menusVisible = false
	}
}

// SetTheme sets the theme of the bar and all its menus.
func (b *MenuBar) SetTheme(theme *Theme) {
	b.theme = theme
	for _, m := range b.menus {
		m.SetTheme(theme)
	}
}

func (b *MenuBar) GetMinSize() (int, int) {
	return 0, 1
}

// HandleShortcut activates the menu entry bound to key, from any menu.
func (b *MenuBar) HandleShortcut(key tcell.Key) bool {
	for _, m := range b.menus {
		if m.handleShortcut(key) {
			return true
		}
	}
	return false
}

// HandleEvent navigates the bar and its open menu. Shortcut keys are handled
// whether or not the bar is focused.
func (b *MenuBar) HandleEvent(event tcell.Event) bool {
	ev, ok := event.(*tcell.EventKey)
	if !ok {
		return false
	}
	if ev.Key() != tcell.KeyRune && b.HandleShortcut(ev.Key()) {
		return true
	}
	if !b.focused {
		return false
	}

	switch ev.Key() {
	case tcell.KeyEnter:
		if !b.menusVisible {
			b.ActivateMenuUnderCursor()
		} else {
			return b.menus[b.selected].HandleEvent(event)
		}
	case tcell.KeyLeft:
		b.moveCursor(-1)
	case tcell.KeyRight:
		b.moveCursor(1)
	case tcell.KeyRune:
		if !b.menusVisible {
			for i, m := range b.menus {
				r := QuickCharInString(m.Name, m.QuickChar)
				if r != 0 && r == unicode.ToLower(ev.Rune()) {
					b.selected = i
					b.ActivateMenuUnderCursor()
					break
				}
			}
		} else {
			return b.menus[b.selected].HandleEvent(event)
		}
	default:
		if b.menusVisible {
			return b.menus[b.selected].HandleEvent(event)
		}
		return false
	}
	return true
}

// A Menu contains ItemEntries and separators.
type Menu struct {
	Name      string
	QuickChar int // Character/rune index of Name
	Items     []Item

	selected             int    // Index of selected Item
	itemSelectedCallback func() // Used internally to hide menus on selection

	baseComponent
}

func NewMenu(name string, quickChar int, theme *Theme) *Menu {
	return &Menu{
		Name:          name,
		QuickChar:     quickChar,
		Items:         make([]Item, 0, 6),
		baseComponent: baseComponent{theme: theme},
	}
}

func (m *Menu) AddItems(items ...Item) {
	m.Items = append(m.Items, items...)
}

// SetItems replaces every item, for menus whose entries depend on state.
func (m *Menu) SetItems(items ...Item) {
	m.Items = items
	m.selected = 0
}

func (m *Menu) ActivateItemUnderCursor() {
	if m.selected >= len(m.Items) {
		return
	}
	if item, ok := m.Items[m.selected].(*ItemEntry); ok {
		if m.itemSelectedCallback != nil {
			m.itemSelectedCallback()
		}
		if item.Callback != nil {
			item.Callback()
		}
	}
}

// moveCursor steps over separators. A menu of only separators keeps its
// selection.
func (m *Menu) moveCursor(delta int) {
	n := len(m.Items)
	for i := 1; i <= n; i++ {
		idx := ((m.selected+delta*i)%n + n) % n
		if _, ok := m.Items[idx].(*ItemSeparator); !ok {
			m.selected = idx
			return
		}
	}
}

func (m *Menu) Draw(s tcell.Screen) {
	defaultStyle := m.theme.GetOrDefault("Menu")

	m.GetSize() // Updates internal width and height
	DrawRect(s, m.x, m.y, m.width, m.height, ' ', defaultStyle)
	DrawRectOutlineDefault(s, m.x, m.y, m.width, m.height, defaultStyle)

	for i, item := range m.Items {
		if _, ok := item.(*ItemSeparator); ok {
			str := fmt.Sprintf("%s%s%s", "├", strings.Repeat("─", m.width-2), "┤")
			DrawStr(s, m.x, m.y+1+i, str, defaultStyle)
			continue
		}

		sty := defaultStyle
		if m.selected == i {
			sty = m.theme.GetOrDefault("MenuSelected")
		}
		nameCols := DrawQuickCharStr(s, m.x+1, m.y+1+i, item.GetName(), item.GetQuickCharIdx(), sty)
		DrawStr(s, m.x+1+nameCols, m.y+1+i, strings.Repeat(" ", max(0, m.width-2-nameCols)), sty)

		if shortcut := item.GetShortcut(); shortcut != "" {
			str := " " + shortcut + " "
			DrawStr(s, m.x+m.width-1-runewidth.StringWidth(str), m.y+1+i, str, sty)
		}
	}
}

// SetFocused resets the selection when the menu closes.
func (m *Menu) SetFocused(v bool) {
	m.focused = v
	if !v {
		m.selected = 0
	}
}

func (m *Menu) GetMinSize() (int, int) {
	return m.GetSize()
}

// GetSize computes the size from the items; a Menu cannot be resized.
func (m *Menu) GetSize() (int, int) {
	var maxNameLen, widestShortcut int
	for _, item := range m.Items {
		maxNameLen = max(maxNameLen, runewidth.StringWidth(item.GetName()))
		widestShortcut = max(widestShortcut, runewidth.StringWidth(item.GetShortcut()))
	}

	shortcutsWidth := 0
	if widestShortcut > 0 {
		shortcutsWidth = 1 + widestShortcut + 1 // " Ctrl+X "
	}

	m.width = 1 + maxNameLen + shortcutsWidth + 1
	m.height = 1 + len(m.Items) + 1
	return m.width, m.height
}

func (m *Menu) SetSize(width, height int) {}

func (m *Menu) handleShortcut(key tcell.Key) bool {
	for i, item := range m.Items {
		if entry, ok := item.(*ItemEntry); ok && entry.Key != 0 && entry.Key == key {
			m.selected = i
			m.ActivateItemUnderCursor()
			return true
		}
	}
	return false
}

// HandleEvent moves through the items and activates them. Returns true if
// the event was handled.
func (m *Menu) HandleEvent(event tcell.Event) bool {
	ev, ok := event.(*tcell.EventKey)
	if !ok || len(m.Items) == 0 {
		return false
	}

	switch ev.Key() {
	case tcell.KeyEnter:
		m.ActivateItemUnderCursor()
	case tcell.KeyUp:
		m.moveCursor(-1)
	case tcell.KeyDown, tcell.KeyTab:
		m.moveCursor(1)
	case tcell.KeyRune:
		for i, item := range m.Items {
			r := QuickCharInString(item.GetName(), item.GetQuickCharIdx())
			if r != 0 && r == unicode.ToLower(ev.Rune()) {
				m.selected = i
				m.ActivateItemUnderCursor()
				break
			}
		}
	default:
		return false
	}
	return true
}

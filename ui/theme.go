package ui

import (
	"fmt"

	"github.com/fivemoreminix/qpad/pkg/buffer"
	"github.com/fivemoreminix/qpad/pkg/editor"
	"github.com/gdamore/tcell/v2"
)

// A Theme is a map of string names to styles. Themes are passed by reference to
// components, which look up the keys they draw with. Keys missing from a Theme
// fall back to DefaultTheme. Highlight tags are looked up by their tag name.
type Theme map[string]tcell.Style

func (theme *Theme) GetOrDefault(key string) tcell.Style {
	if theme != nil {
		if val, ok := (*theme)[key]; ok {
			return val
		}
	}

	if val, ok := DefaultTheme[key]; ok {
		return val
	} else {
		panic(fmt.Sprintf("key \"%v\" not present in default theme", key))
	}
}

// TagStyle returns the style text tagged with tag is drawn in.
func (theme *Theme) TagStyle(tag buffer.Tag) tcell.Style {
	return theme.GetOrDefault(tag.String())
}

// A Palette holds the colors an editor theme is built from.
//
// Cursor is the caret color of the theme. tcell v2.6 can only show or hide the
// terminal cursor and has no call to color it, so nothing draws with Cursor
// yet. It must still stay visible against Background.
type Palette struct {
	Background          tcell.Color
	Foreground          tcell.Color
	Gutter              tcell.Color
	Cursor              tcell.Color
	SelectionBackground tcell.Color
	SelectionForeground tcell.Color
}

var palettes = map[editor.Theme]Palette{
	editor.ThemeLight: {
		Background:          tcell.NewHexColor(0xffffff),
		Foreground:          tcell.NewHexColor(0x000000),
		Gutter:              tcell.NewHexColor(0xf0f0f0),
		Cursor:              tcell.NewHexColor(0x000000),
		SelectionBackground: tcell.NewHexColor(0xc0c0c0),
		SelectionForeground: tcell.NewHexColor(0x000000),
	},
	editor.ThemeDark: {
		Background:          tcell.NewHexColor(0x2d2d2d),
		Foreground:          tcell.NewHexColor(0xe0e0e0),
		Gutter:              tcell.NewHexColor(0x404040),
		Cursor:              tcell.NewHexColor(0xffffff),
		SelectionBackground: tcell.NewHexColor(0x505050),
		SelectionForeground: tcell.NewHexColor(0xffffff),
	},
}

// tagColors are shared by both themes.
var tagColors = map[buffer.Tag]tcell.Color{
	buffer.Keyword:  tcell.ColorBlue,
	buffer.String:   tcell.ColorGreen,
	buffer.Comment:  tcell.ColorGray,
	buffer.Number:   tcell.ColorPurple,
	buffer.Constant: tcell.ColorOrange,
	buffer.Markup:   tcell.ColorBlue,
	buffer.Entity:   tcell.ColorRed,
}

// PaletteFor returns the palette of t. Unknown themes get the dark palette.
func PaletteFor(t editor.Theme) Palette {
	if p, ok := palettes[t]; ok {
		return p
	}
	return palettes[editor.ThemeDark]
}

// NewTheme builds the component styles for an editor theme.
func NewTheme(t editor.Theme) *Theme {
	p := PaletteFor(t)
	normal := tcell.Style{}.Foreground(p.Foreground).Background(p.Background)
	inverse := tcell.Style{}.Foreground(p.Background).Background(p.Foreground)
	gutter := tcell.Style{}.Foreground(p.Foreground).Background(p.Gutter)

	theme := Theme{
		"Normal":           normal,
		"Button":           gutter,
		"ButtonFocused":    inverse,
		"InputField":       normal,
		"Menu":             gutter,
		"MenuBar":          gutter,
		"MenuBarSelected":  inverse,
		"MenuSelected":     inverse,
		"StatusBar":        gutter,
		"Tab":              gutter,
		"TabContainer":     gutter,
		"TabSelected":      normal.Bold(true),
		"TextEdit":         normal,
		"TextEditColumn":   gutter,
		"TextEditSelected": tcell.Style{}.Foreground(p.SelectionForeground).Background(p.SelectionBackground),
		"Window":           gutter,
		"WindowHeader":     inverse,
	}
	for tag, color := range tagColors {
		theme[tag.String()] = normal.Foreground(color)
	}
	return &theme
}

// DefaultTheme uses only the first 16 colors present in most colored terminals.
var DefaultTheme = Theme{
	"Normal":           tcell.Style{}.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack),
	"Button":           tcell.Style{}.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver),
	"ButtonFocused":    tcell.Style{}.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack),
	"InputField":       tcell.Style{}.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack),
	"Menu":             tcell.Style{}.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver),
	"MenuBar":          tcell.Style{}.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver),
	"MenuBarSelected":  tcell.Style{}.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack),
	"MenuSelected":     tcell.Style{}.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack),
	"StatusBar":        tcell.Style{}.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver),
	"Tab":              tcell.Style{}.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack),
	"TabContainer":     tcell.Style{}.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack),
	"TabSelected":      tcell.Style{}.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver),
	"TextEdit":         tcell.Style{}.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack),
	"TextEditColumn":   tcell.Style{}.Foreground(tcell.ColorBlack).Background(tcell.ColorGray),
	"TextEditSelected": tcell.Style{}.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver),
	"Window":           tcell.Style{}.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver),
	"WindowHeader":     tcell.Style{}.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite),

	"keyword":  tcell.Style{}.Foreground(tcell.ColorNavy).Background(tcell.ColorBlack),
	"string":   tcell.Style{}.Foreground(tcell.ColorGreen).Background(tcell.ColorBlack),
	"comment":  tcell.Style{}.Foreground(tcell.ColorGray).Background(tcell.ColorBlack),
	"number":   tcell.Style{}.Foreground(tcell.ColorPurple).Background(tcell.ColorBlack),
	"constant": tcell.Style{}.Foreground(tcell.ColorOlive).Background(tcell.ColorBlack),
	"tag":      tcell.Style{}.Foreground(tcell.ColorNavy).Background(tcell.ColorBlack),
	"entity":   tcell.Style{}.Foreground(tcell.ColorMaroon).Background(tcell.ColorBlack),
}

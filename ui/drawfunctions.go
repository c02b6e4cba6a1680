package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// DrawRect renders a filled box at `x` and `y`, of size `width` and `height`.
// Will not call `Show()`.
func DrawRect(s tcell.Screen, x, y, width, height int, char rune, style tcell.Style) {
	for col := x; col < x+width; col++ {
		for row := y; row < y+height; row++ {
			s.SetContent(col, row, char, nil, style)
		}
	}
}

// DrawStr renders str at `x` and `y`. A '\n' continues on the next row at `x`.
// Wide runes take two cells. Returns the column after the last rune drawn.
func DrawStr(s tcell.Screen, x, y int, str string, style tcell.Style) int {
	col := x
	for _, r := range str {
		if r == '\n' {
			col = x
			y++
			continue
		}
		s.SetContent(col, y, r, nil, style)
		col += runewidth.RuneWidth(r)
	}
	return col
}

// DrawStrClipped is DrawStr on a single row that stops before column `x+width`.
func DrawStrClipped(s tcell.Screen, x, y, width int, str string, style tcell.Style) {
	col := x
	for _, r := range str {
		w := runewidth.RuneWidth(r)
		if col+w > x+width {
			return
		}
		s.SetContent(col, y, r, nil, style)
		col += w
	}
}

// DrawRectOutline draws only the outline of a rectangle, using `ul`, `ur`, `bl`, and `br`
// for the corner runes, and `hor` and `vert` for the horizontal and vertical runes, respectively.
func DrawRectOutline(s tcell.Screen, x, y, _width, _height int, ul, ur, bl, br, hor, vert rune, style tcell.Style) {
	width := x + _width - 1   // Length across
	height := y + _height - 1 // Length top-to-bottom

	for col := x + 1; col < width; col++ {
		s.SetContent(col, y, hor, nil, style)      // Top line
		s.SetContent(col, height, hor, nil, style) // Bottom line
	}
	for row := y + 1; row < height; row++ {
		s.SetContent(x, row, vert, nil, style)     // Left line
		s.SetContent(width, row, vert, nil, style) // Right line
	}
	s.SetContent(x, y, ul, nil, style)
	s.SetContent(width, y, ur, nil, style)
	s.SetContent(x, height, bl, nil, style)
	s.SetContent(width, height, br, nil, style)
}

// DrawRectOutlineDefault calls DrawRectOutline with the default edge runes.
func DrawRectOutlineDefault(s tcell.Screen, x, y, width, height int, style tcell.Style) {
	DrawRectOutline(s, x, y, width, height, '┌', '┐', '└', '┘', '─', '│', style)
}

// DrawWindow draws a filled, outlined box with `title` centered in a header
// row. Dialog contents start at `y+2`.
func DrawWindow(s tcell.Screen, x, y, width, height int, title string, theme *Theme) {
	windowStyle := theme.GetOrDefault("Window")
	headerStyle := theme.GetOrDefault("WindowHeader")

	DrawRect(s, x, y, width, height, ' ', windowStyle)
	DrawRect(s, x, y, width, 1, ' ', headerStyle)

	titleWidth := runewidth.StringWidth(title)
	DrawStrClipped(s, x+max(0, width/2-titleWidth/2), y, width, title, headerStyle)

	DrawRectOutlineDefault(s, x, y+1, width, height-1, windowStyle)
}

package buffer

import "math"

// The cursor lives next to the buffer because it needs to know where lines end
// to move at all. The buffer is the city, and the Cursor is the car.

// A Cursor is a line and rune column within a Buffer. Cursors are values: every
// movement returns a new Cursor clamped to the buffer's current contents.
type Cursor struct {
	buffer  Buffer
	line    int
	col     int
	prevCol int // Column to return to when moving vertically through short lines
}

func NewCursor(in Buffer) Cursor {
	return Cursor{buffer: in}
}

func (c Cursor) Left() Cursor {
	if c.col == 0 && c.line != 0 { // At the beginning of a line, go to the end of the one above
		c.line--
		c.col = c.buffer.RunesInLine(c.line)
	} else {
		c.col = max(c.col-1, 0)
	}
	c.prevCol = c.col
	return c
}

func (c Cursor) Right() Cursor {
	if c.col >= c.buffer.RunesInLine(c.line) && c.line < c.buffer.Lines()-1 {
		c.line, c.col = c.buffer.ClampLineCol(c.line+1, 0) // Beginning of the line below
	} else {
		c.line, c.col = c.buffer.ClampLineCol(c.line, c.col+1)
	}
	c.prevCol = c.col
	return c
}

func (c Cursor) Up() Cursor {
	if c.line == 0 {
		c.line, c.col = 0, 0
		c.prevCol = 0
	} else {
		c.line, c.col = c.buffer.ClampLineCol(c.line-1, c.prevCol)
	}
	return c
}

func (c Cursor) Down() Cursor {
	if c.line == c.buffer.Lines()-1 {
		c.line, c.col = c.buffer.ClampLineCol(c.line, math.MaxInt32) // End of the last line
		c.prevCol = c.col
	} else {
		c.line, c.col = c.buffer.ClampLineCol(c.line+1, c.prevCol)
	}
	return c
}

func (c Cursor) GetLineCol() (line, col int) {
	return c.line, c.col
}

// SetLineCol returns the Cursor moved to line, col after clamping both to the
// buffer.
func (c Cursor) SetLineCol(line, col int) Cursor {
	c.line, c.col = c.buffer.ClampLineCol(line, col)
	c.prevCol = c.col
	return c
}

// SetPos moves the Cursor to the rune containing byte offset pos.
func (c Cursor) SetPos(pos int) Cursor {
	return c.SetLineCol(c.buffer.PosToLineCol(pos))
}

// Pos returns the byte offset of the Cursor.
func (c Cursor) Pos() int {
	return c.buffer.LineColToPos(c.line, c.col)
}

// Clamp re-validates the Cursor after the buffer was edited underneath it.
func (c Cursor) Clamp() Cursor {
	c.line, c.col = c.buffer.ClampLineCol(c.line, c.col)
	return c
}

func (c Cursor) Eq(other Cursor) bool {
	return c.buffer == other.buffer && c.line == other.line && c.col == other.col
}

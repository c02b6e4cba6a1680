package buffer

import (
	"io"
)

// A Buffer is a wrapper around any text data structure (a rope, a gap buffer)
// used to hold the contents of a document. Edits are addressed by byte offset,
// while the line/column helpers give views and cursors a way to walk the text.
// Lines and columns start at zero. Columns count runes, not bytes.
//
// Offsets out of range are clamped, never panics. Line numbers past the end
// of the buffer resolve to the last line.
type Buffer interface {
	// Line returns a copy of the given line, including its trailing '\n' if the
	// line has one.
	Line(line int) []byte

	// Bytes returns all of the bytes in the buffer. This is very likely to copy
	// the whole buffer, so use it sparingly.
	Bytes() []byte

	// Insert copies value into the buffer at byte offset pos.
	Insert(pos int, value []byte)

	// Remove deletes the bytes in [start, end).
	Remove(start, end int)

	// Len returns the number of bytes in the buffer.
	Len() int

	// Lines returns the number of lines in the buffer. An empty buffer has one
	// line. This is the count of '\n' bytes plus one.
	Lines() int

	// RunesInLine returns the number of runes in the line, excluding the line
	// delimiter.
	RunesInLine(line int) int

	// ClampLineCol clamps the line first, then clamps the column between zero
	// and the position just before the line delimiter.
	ClampLineCol(line, col int) (int, int)

	// LineColToPos returns the byte offset of the rune at line, col. A col past
	// the end of the line resolves to the line delimiter.
	LineColToPos(line, col int) int

	// PosToLineCol converts a byte offset into a line and rune column.
	PosToLineCol(pos int) (int, int)

	WriteTo(w io.Writer) (int64, error)
}

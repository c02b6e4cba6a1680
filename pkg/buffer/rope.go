package buffer

import (
	"bytes"
	"io"
	"unicode/utf8"

	"github.com/zyedidia/rope"
)

type RopeBuffer rope.Node

func NewRopeBuffer(contents []byte) *RopeBuffer {
	return (*RopeBuffer)(rope.New(contents))
}

func (b *RopeBuffer) node() *rope.Node {
	return (*rope.Node)(b)
}

// clampPos keeps pos within [0, Len()].
func (b *RopeBuffer) clampPos(pos int) int {
	if pos < 0 {
		return 0
	}
	if l := b.node().Len(); pos > l {
		return l
	}
	return pos
}

// slice returns a copy of [start, end), which must already be clamped.
func (b *RopeBuffer) slice(start, end int) []byte {
	if start >= end {
		return []byte{}
	}
	return b.node().Slice(start, end)
}

// Line returns a copy of the given line, including the ending line delimiter.
func (b *RopeBuffer) Line(line int) []byte {
	start := b.lineStartPos(line)
	end := b.lineEndPos(start)
	if end < b.node().Len() {
		end++ // Include the '\n'
	}
	return b.slice(start, end)
}

// Bytes returns all of the bytes in the buffer. This function is very likely
// to copy all of the data in the buffer. Use sparingly.
func (b *RopeBuffer) Bytes() []byte {
	return b.node().Value()
}

func (b *RopeBuffer) Insert(pos int, value []byte) {
	if len(value) == 0 {
		return
	}
	b.node().Insert(b.clampPos(pos), value)
}

func (b *RopeBuffer) Remove(start, end int) {
	start, end = b.clampPos(start), b.clampPos(end)
	if start > end {
		start, end = end, start
	}
	if start == end {
		return
	}
	b.node().Remove(start, end)
}

// Len returns the number of bytes in the buffer.
func (b *RopeBuffer) Len() int {
	return b.node().Len()
}

// Lines returns the number of lines in the buffer. If the buffer is empty,
// 1 is returned, because there is always at least one line.
func (b *RopeBuffer) Lines() int {
	n := b.node()
	return n.Count(0, n.Len(), []byte{'\n'}) + 1
}

// lineStartPos returns the first byte index of the given line. The returned
// index can be equal to the length of the buffer, which means the line is the
// last, empty line of the buffer. Lines past the end resolve to the last line.
func (b *RopeBuffer) lineStartPos(line int) int {
	n := b.node()
	var pos int

	if line > 0 {
		n.IndexAllFunc(0, n.Len(), []byte{'\n'}, func(idx int) bool {
			line--
			pos = idx + 1 // Start of the line after the delimiter
			return line <= 0
		})
	}

	return pos
}

// lineEndPos returns the byte index of the '\n' ending the line that starts at
// start, or Len() for the last line.
func (b *RopeBuffer) lineEndPos(start int) int {
	rest := b.slice(start, b.node().Len())
	if i := bytes.IndexByte(rest, '\n'); i >= 0 {
		return start + i
	}
	return start + len(rest)
}

// RunesInLine returns the number of runes in the given line, excluding the
// line delimiter. A '\r' before the '\n' is not counted either.
func (b *RopeBuffer) RunesInLine(line int) int {
	start := b.lineStartPos(line)
	data := b.slice(start, b.lineEndPos(start))
	if l := len(data); l > 0 && data[l-1] == '\r' {
		data = data[:l-1]
	}
	return utf8.RuneCount(data)
}

func (b *RopeBuffer) ClampLineCol(line, col int) (int, int) {
	if line < 0 {
		line = 0
	} else if lines := b.Lines() - 1; line > lines {
		line = lines
	}

	if col < 0 {
		col = 0
	} else if runes := b.RunesInLine(line); col > runes {
		col = runes
	}

	return line, col
}

func (b *RopeBuffer) LineColToPos(line, col int) int {
	line, col = b.ClampLineCol(line, col)
	pos := b.lineStartPos(line)
	if col == 0 {
		return pos
	}

	data := b.slice(pos, b.lineEndPos(pos))
	var i int
	for i < len(data) && col > 0 {
		_, size := utf8.DecodeRune(data[i:]) // Respect UTF-8 codepoint boundaries
		i += size
		col--
	}
	return pos + i
}

func (b *RopeBuffer) PosToLineCol(pos int) (int, int) {
	pos = b.clampPos(pos)
	var line, col int

	data := b.slice(0, pos)
	var i int
	for i < len(data) {
		r, size := utf8.DecodeRune(data[i:])
		if r == '\n' {
			line, col = line+1, 0
		} else {
			col++
		}
		i += size
	}

	return line, col
}

func (b *RopeBuffer) WriteTo(w io.Writer) (int64, error) {
	return b.node().WriteTo(w)
}

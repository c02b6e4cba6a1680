package buffer

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// A Viewport describes the visible region a gutter is drawn for.
type Viewport struct {
	TopLine int // First visible line, zero-based
	Rows    int // Visible rows; zero or less means unbounded
	Width   int // Text columns; zero or less disables wrapping
	TabSize int
}

// A LineLabel places line number Line (1-based) at visual row Y of the
// viewport.
type LineLabel struct {
	Line int
	Y    int
}

// LineIndex computes gutter labels from text and a viewport. It keeps the last
// result for redraws and nothing else; it never looks at a view.
type LineIndex struct {
	labels []LineLabel
	lines  int
}

// LineCount returns the number of '\n' separated segments of text. The empty
// text is one empty line, and a trailing '\n' starts one more empty line,
// matching Buffer.Lines.
func LineCount(text string) int {
	return strings.Count(text, "\n") + 1
}

// Recompute labels every visible line of text and caches the result.
func (x *LineIndex) Recompute(text string, vp Viewport) []LineLabel {
	lines := strings.Split(text, "\n")
	x.lines = len(lines)

	top := clamp(vp.TopLine, 0, len(lines)-1)
	labels := make([]LineLabel, 0, len(lines)-top)

	var y int
	for i := top; i < len(lines); i++ {
		if vp.Rows > 0 && y >= vp.Rows {
			break
		}
		labels = append(labels, LineLabel{Line: i + 1, Y: y})
		y += LineHeight(lines[i], vp.Width, vp.TabSize)
	}

	x.labels = labels
	return labels
}

// Labels returns the result of the last Recompute.
func (x *LineIndex) Labels() []LineLabel {
	return x.labels
}

// Lines returns the line count seen by the last Recompute.
func (x *LineIndex) Lines() int {
	return x.lines
}

// LineHeight returns how many visual rows line occupies when wrapped at width
// columns. Lines are never less than one row tall.
func LineHeight(line string, width, tabSize int) int {
	if width <= 0 || DisplayWidth(line, tabSize) <= width {
		return 1
	}
	rows, _ := Wrap(line, width, tabSize, nil)
	return rows
}

// Wrap lays line out in rows of width columns and calls place, if not nil,
// with every grapheme cluster, its byte offset in line, and the row, column
// and number of cells it is drawn at. A cluster that does not fit in what is
// left of a row starts the next one. A tab advances to the next multiple of
// tabSize but never past the end of its row. Wrap returns the number of rows
// and the column after the last cluster. A width of zero or less never wraps.
func Wrap(line string, width, tabSize int, place func(cluster string, offset, row, col, cells int)) (rows, endCol int) {
	if tabSize <= 0 {
		tabSize = 1
	}
	var row, col int
	g := uniseg.NewGraphemes(line)
	for g.Next() {
		cluster := g.Str()
		if width > 0 && col >= width {
			row, col = row+1, 0
		}

		var cells int
		if cluster == "\t" {
			cells = tabSize - col%tabSize
			if width > 0 {
				cells = min(cells, width-col)
			}
		} else {
			cells = runewidth.StringWidth(cluster)
			if width > 0 && col > 0 && col+cells > width {
				row, col = row+1, 0
			}
		}

		if place != nil {
			offset, _ := g.Positions()
			place(cluster, offset, row, col, cells)
		}
		col += cells
	}
	return row + 1, col
}

// DisplayWidth returns the terminal cell width of line, measured per grapheme
// cluster, with tabs expanded to the next multiple of tabSize.
func DisplayWidth(line string, tabSize int) int {
	if tabSize <= 0 {
		tabSize = 1
	}
	var width int
	g := uniseg.NewGraphemes(line)
	for g.Next() {
		cluster := g.Str()
		if cluster == "\t" {
			width += tabSize - width%tabSize
			continue
		}
		width += runewidth.StringWidth(cluster)
	}
	return width
}

// GutterWidth returns the columns needed to draw line numbers for lineCount
// lines plus a separator. The gutter is never narrower than 3.
func GutterWidth(lineCount int) int {
	return max(3, 1+len(strconv.Itoa(lineCount)))
}

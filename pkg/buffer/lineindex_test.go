package buffer

import (
	"reflect"
	"testing"
)

func TestLineCount(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"", 1},
		{"a", 1},
		{"a\nb\nc", 3},
		{"a\n", 2},
		{"\n\n", 3},
	}
	for _, tc := range cases {
		if got := LineCount(tc.text); got != tc.want {
			t.Errorf("LineCount(%q) = %d, want %d", tc.text, got, tc.want)
		}
		if got := NewRopeBuffer([]byte(tc.text)).Lines(); got != tc.want {
			t.Errorf("RopeBuffer(%q).Lines() = %d, want %d", tc.text, got, tc.want)
		}
	}
}

func TestRecomputeUnbounded(t *testing.T) {
	var x LineIndex

	labels := x.Recompute("a\nb\nc", Viewport{})
	want := []LineLabel{{Line: 1, Y: 0}, {Line: 2, Y: 1}, {Line: 3, Y: 2}}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("Expected %v, got %v", want, labels)
	}

	if labels := x.Recompute("", Viewport{}); len(labels) != 1 {
		t.Errorf("Expected a single label for empty text, got %v", labels)
	}
	if x.Lines() != 1 {
		t.Errorf("Expected cached line count 1, got %d", x.Lines())
	}
}

func TestRecomputeScrolledAndWrapped(t *testing.T) {
	var x LineIndex
	text := "short\nthis line wraps\nc\nd\ne"

	labels := x.Recompute(text, Viewport{TopLine: 1, Rows: 3, Width: 8})
	want := []LineLabel{{Line: 2, Y: 0}, {Line: 3, Y: 2}}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("Expected %v, got %v", want, labels)
	}
	if !reflect.DeepEqual(x.Labels(), want) {
		t.Errorf("Expected the result to be cached, got %v", x.Labels())
	}
}

func TestRecomputeClampsTopLine(t *testing.T) {
	var x LineIndex
	labels := x.Recompute("a\nb", Viewport{TopLine: 10})
	want := []LineLabel{{Line: 2, Y: 0}}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("Expected %v, got %v", want, labels)
	}
}

func TestDisplayWidth(t *testing.T) {
	cases := []struct {
		line    string
		tabSize int
		want    int
	}{
		{"abc", 4, 3},
		{"\tx", 4, 5},
		{"ab\tx", 4, 5},
		{"日本", 4, 4},
		{"e\u0301", 4, 1}, // e + combining acute is one cluster
	}
	for _, tc := range cases {
		if got := DisplayWidth(tc.line, tc.tabSize); got != tc.want {
			t.Errorf("DisplayWidth(%q) = %d, want %d", tc.line, got, tc.want)
		}
	}
}

func TestLineHeight(t *testing.T) {
	if h := LineHeight("", 10, 4); h != 1 {
		t.Errorf("Expected empty line height 1, got %d", h)
	}
	if h := LineHeight("0123456789a", 5, 4); h != 3 {
		t.Errorf("Expected height 3, got %d", h)
	}
	if h := LineHeight("0123456789a", 0, 4); h != 1 {
		t.Errorf("Expected no wrapping without a width, got %d", h)
	}
}

func TestGutterWidth(t *testing.T) {
	if w := GutterWidth(1); w != 3 {
		t.Errorf("Expected minimum width 3, got %d", w)
	}
	if w := GutterWidth(12345); w != 6 {
		t.Errorf("Expected width 6, got %d", w)
	}
}

func TestWrap(t *testing.T) {
	type placed struct{ offset, row, col, cells int }
	cases := []struct {
		line   string
		width  int
		rows   int
		endCol int
		want   []placed
	}{
		{"abc", 0, 1, 3, []placed{{0, 0, 0, 1}, {1, 0, 1, 1}, {2, 0, 2, 1}}},
		// A wide cluster that would straddle the edge starts the next row
		{"abcd世世世", 5, 3, 2, []placed{
			{0, 0, 0, 1}, {1, 0, 1, 1}, {2, 0, 2, 1}, {3, 0, 3, 1},
			{4, 1, 0, 2}, {7, 1, 2, 2}, {10, 2, 0, 2},
		}},
		// A tab stops at the end of its row
		{"ab\tc", 4, 2, 1, []placed{{0, 0, 0, 1}, {1, 0, 1, 1}, {2, 0, 2, 2}, {3, 1, 0, 1}}},
		{"", 5, 1, 0, nil},
	}
	for _, c := range cases {
		var got []placed
		rows, endCol := Wrap(c.line, c.width, 4, func(_ string, offset, row, col, cells int) {
			got = append(got, placed{offset, row, col, cells})
		})
		if rows != c.rows || endCol != c.endCol {
			t.Errorf("Wrap(%q, %d): expected %d rows ending at %d, got %d ending at %d", c.line, c.width, c.rows, c.endCol, rows, endCol)
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("Wrap(%q, %d): expected %v, got %v", c.line, c.width, c.want, got)
		}
		if h := LineHeight(c.line, c.width, 4); h != c.rows {
			t.Errorf("LineHeight(%q, %d): expected %d, got %d", c.line, c.width, c.rows, h)
		}
	}
}

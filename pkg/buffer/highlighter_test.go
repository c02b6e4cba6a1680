package buffer

import (
	"errors"
	"reflect"
	"testing"
)

func TestStringLiteralBeatsKeyword(t *testing.T) {
	h := NewRegexpHighlighter(DefaultRuleTable())
	text := `"if"`

	runs := Resolve(h.Highlight(text, "python"), len(text))
	want := []Span{{Start: 0, End: 4, Tag: String}}
	if !reflect.DeepEqual(runs, want) {
		t.Errorf("Expected %v, got %v", want, runs)
	}
}

func TestKeywordSpansComeFirst(t *testing.T) {
	h := NewRegexpHighlighter(DefaultRuleTable())
	spans := h.Highlight(`if "if"`, "python")

	want := []Span{
		{Start: 0, End: 2, Tag: Keyword},
		{Start: 4, End: 6, Tag: Keyword},
		{Start: 3, End: 7, Tag: String},
	}
	if !reflect.DeepEqual(spans, want) {
		t.Errorf("Expected %v, got %v", want, spans)
	}
}

func TestPythonRules(t *testing.T) {
	h := NewRegexpHighlighter(DefaultRuleTable())
	cases := []struct {
		text string
		want []Span
	}{
		{"x = 42", []Span{{Start: 4, End: 6, Tag: Number}}},
		{"y = None", []Span{{Start: 4, End: 8, Tag: Constant}}},
		{"# for x\nz", []Span{{Start: 0, End: 7, Tag: Comment}}},
		{"'''a\nb'''", []Span{{Start: 0, End: 9, Tag: String}}},
		{`s = "a\"b"`, []Span{{Start: 4, End: 10, Tag: String}}},
		{"return", []Span{{Start: 0, End: 6, Tag: Keyword}}},
		{"iffy", nil},
	}
	for _, tc := range cases {
		got := Resolve(h.Highlight(tc.text, "python"), len(tc.text))
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Highlight(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestHTMLRules(t *testing.T) {
	h := NewRegexpHighlighter(DefaultRuleTable())
	text := "<p>&amp;</p><!-- <b>\n -->"

	got := Resolve(h.Highlight(text, "html"), len(text))
	want := []Span{
		{Start: 0, End: 3, Tag: Markup},
		{Start: 3, End: 8, Tag: Entity},
		{Start: 8, End: 12, Tag: Markup},
		{Start: 12, End: 17, Tag: Comment},
		{Start: 17, End: 20, Tag: Markup}, // Applied after the comment, so it wins
		{Start: 20, End: len(text), Tag: Comment},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestHighlightIdempotent(t *testing.T) {
	h := NewRegexpHighlighter(DefaultRuleTable())
	text := "def f():\n    return 'x' # done\n"

	first := h.Highlight(text, "python")
	second := h.Highlight(text, "python")
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical spans, got %v and %v", first, second)
	}
}

func TestUnknownLanguageHasNoSpans(t *testing.T) {
	h := NewRegexpHighlighter(DefaultRuleTable())
	for _, lang := range []string{PlainText, "javascript", ""} {
		if spans := h.Highlight(`if "x" 1`, lang); len(spans) != 0 {
			t.Errorf("Expected no spans for %q, got %v", lang, spans)
		}
	}
}

func TestEmptyMatchesTerminate(t *testing.T) {
	table := NewRuleTable([]LanguageDef{{
		Name:  "empty",
		Rules: []Rule{{Pattern: `x*`, Tag: Number}},
	}})
	if err := table.Err(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	spans := NewRegexpHighlighter(table).Highlight("abxxc", "empty")
	want := []Span{{Start: 2, End: 4, Tag: Number}}
	if !reflect.DeepEqual(spans, want) {
		t.Errorf("Expected %v, got %v", want, spans)
	}
}

func TestMalformedPatternDisablesOneLanguage(t *testing.T) {
	table := NewRuleTable([]LanguageDef{
		Python,
		{Name: "broken", Rules: []Rule{{Pattern: `(unclosed`, Tag: String}}},
	})

	if _, ok := table.RulesFor("broken"); ok {
		t.Errorf("Expected broken language to be left out")
	}
	if _, ok := table.RulesFor("python"); !ok {
		t.Errorf("Expected python to stay usable")
	}
	if names := table.Names(); !reflect.DeepEqual(names, []string{"python"}) {
		t.Errorf("Expected only python, got %v", names)
	}

	var cfgErr *ConfigError
	if !errors.As(table.Err(), &cfgErr) {
		t.Fatalf("Expected a *ConfigError, got %v", table.Err())
	}
	if cfgErr.Language != "broken" || cfgErr.Pattern != "(unclosed" {
		t.Errorf("Unexpected error fields: %+v", cfgErr)
	}
}

func TestParseTag(t *testing.T) {
	for _, tag := range Tags() {
		got, err := ParseTag(tag.String())
		if err != nil || got != tag {
			t.Errorf("ParseTag(%q) = %v, %v", tag.String(), got, err)
		}
	}
	if _, err := ParseTag("operator"); err == nil {
		t.Errorf("Expected an error for an unknown tag")
	}
}

func TestTagAt(t *testing.T) {
	runs := []Span{{Start: 0, End: 2, Tag: Keyword}, {Start: 5, End: 8, Tag: String}}
	cases := []struct {
		pos  int
		want Tag
		ok   bool
	}{
		{0, Keyword, true},
		{2, 0, false},
		{5, String, true},
		{7, String, true},
		{8, 0, false},
	}
	for _, tc := range cases {
		got, ok := TagAt(runs, tc.pos)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("TagAt(%d) = %v, %v; want %v, %v", tc.pos, got, ok, tc.want, tc.ok)
		}
	}
}

func TestChromaHighlighter(t *testing.T) {
	var h Highlighter = ChromaHighlighter{}
	text := "if x:\n    return \"s\"  # c\n"

	runs := Resolve(h.Highlight(text, "python"), len(text))
	if tag, ok := TagAt(runs, 0); !ok || tag != Keyword {
		t.Errorf("Expected keyword at 0, got %v %v", tag, ok)
	}
	if tag, ok := TagAt(runs, 18); !ok || tag != String {
		t.Errorf("Expected string at 18, got %v %v", tag, ok)
	}
	if tag, ok := TagAt(runs, 23); !ok || tag != Comment {
		t.Errorf("Expected comment at 23, got %v %v", tag, ok)
	}
	for _, sp := range runs {
		if sp.End > len(text) {
			t.Errorf("Span %v runs past the text", sp)
		}
	}

	if spans := h.Highlight(text, PlainText); spans != nil {
		t.Errorf("Expected no spans for plain text, got %v", spans)
	}
}

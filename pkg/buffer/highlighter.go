package buffer

import (
	"regexp"
	"sort"
)

// A Span tags the bytes [Start, End) of a text.
type Span struct {
	Start int
	End   int
	Tag   Tag
}

// A Highlighter produces the spans for a whole text in a given language.
// Implementations must be deterministic: the same text and language always
// give the same sequence.
type Highlighter interface {
	Highlight(text, language string) []Span
}

// RegexpHighlighter tags text by running each pattern of a language's rule set
// over it, one pattern at a time. It is not a tokenizer: patterns do not know
// about each other and their spans may overlap. When spans are resolved, the
// one applied last wins, so rule order is precedence.
type RegexpHighlighter struct {
	Rules *RuleTable
}

func NewRegexpHighlighter(rules *RuleTable) *RegexpHighlighter {
	return &RegexpHighlighter{Rules: rules}
}

// Highlight applies the keyword pattern first, then every rule in declared
// order. Languages missing from the rule table yield no spans.
func (h *RegexpHighlighter) Highlight(text, language string) []Span {
	lang, ok := h.Rules.RulesFor(language)
	if !ok || text == "" {
		return nil
	}

	var spans []Span
	if lang.keywords != nil {
		spans = appendMatches(spans, lang.keywords, Keyword, text)
	}
	for _, rule := range lang.rules {
		spans = appendMatches(spans, rule.re, rule.tag, text)
	}
	return spans
}

// appendMatches scans text left to right from offset zero. FindAll never
// returns overlapping matches and steps one rune past an empty match, so the
// scan always terminates. Empty matches tag nothing.
func appendMatches(spans []Span, re *regexp.Regexp, tag Tag, text string) []Span {
	for _, m := range re.FindAllStringIndex(text, -1) {
		if m[0] == m[1] {
			continue
		}
		spans = append(spans, Span{Start: m[0], End: m[1], Tag: tag})
	}
	return spans
}

// Resolve flattens spans into sorted, non-overlapping runs for a text of
// textLen bytes. Spans are painted in order, so for every byte the tag of the
// last span covering it wins. Adjacent bytes with the same tag merge.
func Resolve(spans []Span, textLen int) []Span {
	if len(spans) == 0 || textLen <= 0 {
		return nil
	}

	const unset = -1
	paint := make([]int16, textLen)
	for i := range paint {
		paint[i] = unset
	}
	for _, sp := range spans {
		start, end := clamp(sp.Start, 0, textLen), clamp(sp.End, 0, textLen)
		for i := start; i < end; i++ {
			paint[i] = int16(sp.Tag)
		}
	}

	var runs []Span
	for i := 0; i < textLen; {
		if paint[i] == unset {
			i++
			continue
		}
		j := i + 1
		for j < textLen && paint[j] == paint[i] {
			j++
		}
		runs = append(runs, Span{Start: i, End: j, Tag: Tag(paint[i])})
		i = j
	}
	return runs
}

// TagAt returns the resolved tag at byte offset pos of a sorted run list, as
// returned by Resolve.
func TagAt(runs []Span, pos int) (Tag, bool) {
	i := sort.Search(len(runs), func(i int) bool { return runs[i].End > pos })
	if i < len(runs) && runs[i].Start <= pos {
		return runs[i].Tag, true
	}
	return 0, false
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

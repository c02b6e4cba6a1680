package buffer

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// ChromaHighlighter tags text with a real lexer instead of independent
// patterns. Token categories map onto the same Tags the regexp rules use, so
// documents can switch between the two without other changes. Tokens of
// other categories are left untagged.
type ChromaHighlighter struct{}

func (ChromaHighlighter) Highlight(text, language string) []Span {
	if language == PlainText || text == "" {
		return nil
	}
	lexer := lexers.Get(language)
	if lexer == nil {
		return nil
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, text)
	if err != nil {
		return nil
	}

	var spans []Span
	var offset int
	for _, tok := range it.Tokens() {
		start := offset
		offset += len(tok.Value)
		if start >= len(text) {
			break // Some lexers append a final newline
		}
		tag, ok := chromaTag(tok.Type)
		if !ok {
			continue
		}
		spans = append(spans, Span{Start: start, End: min(offset, len(text)), Tag: tag})
	}
	return spans
}

func chromaTag(tt chroma.TokenType) (Tag, bool) {
	switch {
	case tt == chroma.KeywordConstant || tt == chroma.NameConstant:
		return Constant, true
	case tt == chroma.NameTag:
		return Markup, true
	case tt == chroma.NameEntity:
		return Entity, true
	case tt.InCategory(chroma.Keyword):
		return Keyword, true
	case tt.InCategory(chroma.Comment):
		return Comment, true
	case tt.InSubCategory(chroma.LiteralString):
		return String, true
	case tt.InSubCategory(chroma.LiteralNumber):
		return Number, true
	}
	return 0, false
}

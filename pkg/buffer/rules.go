package buffer

import (
	"errors"
	"sync"
)

// PlainText is the language with no rule set. It never produces spans.
const PlainText = "plain text"

// Python and HTML are declared with string and comment rules after the
// keyword pattern, so they take precedence when spans are resolved.
var (
	Python = LanguageDef{
		Name:     "python",
		Keywords: `\b(if|else|for|while|def|class|import|from|try|except|finally|return|break|continue)\b`,
		Rules: []Rule{
			{Pattern: `#.*?$`, Tag: Comment, Mode: Multiline},
			{Pattern: `""".*?"""`, Tag: String, Mode: DotAll},
			{Pattern: `'''.*?'''`, Tag: String, Mode: DotAll},
			{Pattern: `"(?:[^"\\]|\\.)*"`, Tag: String},
			{Pattern: `'(?:[^'\\]|\\.)*'`, Tag: String},
			{Pattern: `\b\d+\.?\d*\b`, Tag: Number},
			{Pattern: `\b(True|False|None)\b`, Tag: Constant},
		},
	}

	HTML = LanguageDef{
		Name: "html",
		Rules: []Rule{
			{Pattern: `<!--.*?-->`, Tag: Comment, Mode: DotAll},
			{Pattern: `<\w+>`, Tag: Markup},
			{Pattern: `</\w+>`, Tag: Markup},
			{Pattern: `".*?"`, Tag: String},
			{Pattern: `'.*?'`, Tag: String},
			{Pattern: `&\w+;`, Tag: Entity},
		},
	}
)

// Builtin returns the languages shipped with the editor.
func Builtin() []LanguageDef {
	return []LanguageDef{Python, HTML}
}

// A RuleTable maps language names to compiled rule sets. It is never mutated
// after NewRuleTable returns.
type RuleTable struct {
	langs map[string]*Language
	names []string
	errs  []error
}

// NewRuleTable compiles every definition. A definition that fails to compile
// is recorded as a *ConfigError and left out; the rest of the table is usable.
// A later definition with the same name replaces an earlier one.
func NewRuleTable(defs []LanguageDef) *RuleTable {
	t := &RuleTable{langs: make(map[string]*Language, len(defs))}
	for _, def := range defs {
		lang, err := def.Compile()
		if err != nil {
			t.errs = append(t.errs, err)
			continue
		}
		if _, ok := t.langs[lang.Name]; !ok {
			t.names = append(t.names, lang.Name)
		}
		t.langs[lang.Name] = lang
	}
	return t
}

var defaultRuleTable = sync.OnceValue(func() *RuleTable {
	return NewRuleTable(Builtin())
})

// DefaultRuleTable returns the process-wide table of built-in languages.
func DefaultRuleTable() *RuleTable {
	return defaultRuleTable()
}

// RulesFor looks up a language. PlainText and unknown names are not found.
func (t *RuleTable) RulesFor(language string) (*Language, bool) {
	if t == nil {
		return nil, false
	}
	lang, ok := t.langs[language]
	return lang, ok
}

// Names returns the usable languages in declaration order.
func (t *RuleTable) Names() []string {
	if t == nil {
		return nil
	}
	names := make([]string, len(t.names))
	copy(names, t.names)
	return names
}

// Errors returns the errors of every definition that failed to compile.
func (t *RuleTable) Errors() []error {
	if t == nil {
		return nil
	}
	errs := make([]error, len(t.errs))
	copy(errs, t.errs)
	return errs
}

// Err joins Errors into one error, or returns nil.
func (t *RuleTable) Err() error {
	return errors.Join(t.Errors()...)
}

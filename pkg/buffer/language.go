package buffer

import (
	"fmt"
	"regexp"
	"strings"
)

// A Tag classifies a highlighted region of text.
type Tag uint8

const (
	Keyword Tag = iota
	String
	Comment
	Number
	Constant
	Markup // Markup tags such as <p>; named "tag" in rule definitions
	Entity
)

var tagNames = [...]string{
	Keyword:  "keyword",
	String:   "string",
	Comment:  "comment",
	Number:   "number",
	Constant: "constant",
	Markup:   "tag",
	Entity:   "entity",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return fmt.Sprintf("Tag(%d)", uint8(t))
}

// Tags returns every Tag in declaration order.
func Tags() []Tag {
	tags := make([]Tag, len(tagNames))
	for i := range tagNames {
		tags[i] = Tag(i)
	}
	return tags
}

// ParseTag returns the Tag whose name is s.
func ParseTag(s string) (Tag, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range tagNames {
		if name == s {
			return Tag(i), nil
		}
	}
	return 0, fmt.Errorf("unknown highlight tag %q", s)
}

// ScanMode holds the regexp flags a Rule is compiled with.
type ScanMode uint8

const (
	// Multiline makes ^ and $ match at the start and end of every line.
	Multiline ScanMode = 1 << iota
	// DotAll lets . match '\n', for block comments and triple-quoted strings.
	DotAll
)

func (m ScanMode) flags() string {
	var flags string
	if m&Multiline != 0 {
		flags += "m"
	}
	if m&DotAll != 0 {
		flags += "s"
	}
	if flags == "" {
		return ""
	}
	return "(?" + flags + ")"
}

// A Rule tags every match of Pattern with Tag.
type Rule struct {
	Pattern string
	Tag     Tag
	Mode    ScanMode
}

// LanguageDef is the uncompiled source of a Language.
type LanguageDef struct {
	Name string
	// Keywords is an optional pattern applied before Rules, tagged Keyword.
	Keywords string
	Rules    []Rule
}

// A Language is a compiled, immutable rule set.
type Language struct {
	Name     string
	keywords *regexp.Regexp
	rules    []compiledRule
}

type compiledRule struct {
	re  *regexp.Regexp
	tag Tag
}

// ConfigError reports a rule set that could not be compiled. Only the named
// language is affected.
type ConfigError struct {
	Language string
	Pattern  string
	Err      error
}

func (e *ConfigError) Error() string {
	if e.Pattern == "" {
		return fmt.Sprintf("language %q: %v", e.Language, e.Err)
	}
	return fmt.Sprintf("language %q: pattern %q: %v", e.Language, e.Pattern, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Compile builds a Language from its definition, failing on the first
// malformed pattern.
func (def LanguageDef) Compile() (*Language, error) {
	name := strings.TrimSpace(def.Name)
	if name == "" {
		return nil, &ConfigError{Language: def.Name, Err: fmt.Errorf("empty language name")}
	}

	lang := &Language{Name: name}
	if def.Keywords != "" {
		re, err := regexp.Compile(def.Keywords)
		if err != nil {
			return nil, &ConfigError{Language: name, Pattern: def.Keywords, Err: err}
		}
		lang.keywords = re
	}

	lang.rules = make([]compiledRule, 0, len(def.Rules))
	for _, rule := range def.Rules {
		if int(rule.Tag) >= len(tagNames) {
			return nil, &ConfigError{Language: name, Pattern: rule.Pattern, Err: fmt.Errorf("invalid tag %v", rule.Tag)}
		}
		re, err := regexp.Compile(rule.Mode.flags() + rule.Pattern)
		if err != nil {
			return nil, &ConfigError{Language: name, Pattern: rule.Pattern, Err: err}
		}
		lang.rules = append(lang.rules, compiledRule{re: re, tag: rule.Tag})
	}
	return lang, nil
}

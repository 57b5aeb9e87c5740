// Package matcher classifies stored trigger patterns and evaluates them
// against incoming message text.
//
// The first character of a stored pattern selects the matching strategy:
// a leading `&` makes the rest a literal matched anywhere in the message,
// a leading `?` makes the rest a regular expression, and anything else is
// a literal the message must start with.
package matcher

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

type Kind uint8

const (
	KindStartingLiteral Kind = iota
	KindLiteral
	KindRegex
)

func (k Kind) String() string {
	switch k {
	case KindStartingLiteral:
		return "Starting literal"
	case KindLiteral:
		return "Literal"
	case KindRegex:
		return "Regex"
	default:
		return "Unknown"
	}
}

// ErrInvalidPattern is returned by Classify when a `?` pattern's regular
// expression does not compile. Patterns are classified at creation time so
// a broken regex is rejected once instead of failing on every message.
var ErrInvalidPattern = errors.New("invalid trigger pattern")

// Matcher is a classified trigger pattern, ready to evaluate.
type Matcher struct {
	Kind    Kind
	Pattern string // needle for literals, expression source for regexes
	regex   *regexp.Regexp
}

// Classify parses a stored pattern string into a Matcher. It is pure: the
// same input always yields an equal Matcher.
func Classify(pattern string) (*Matcher, error) {
	switch {
	case strings.HasPrefix(pattern, "&"):
		return &Matcher{Kind: KindLiteral, Pattern: pattern[1:]}, nil
	case strings.HasPrefix(pattern, "?"):
		expr := pattern[1:]
		regex, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
		}
		return &Matcher{Kind: KindRegex, Pattern: expr, regex: regex}, nil
	default:
		return &Matcher{Kind: KindStartingLiteral, Pattern: pattern}, nil
	}
}

// Result describes a successful match.
type Result struct {
	Matched string // the substring that matched
	Index   int    // byte offset where the match starts
	Rest    string // text with the first occurrence of Matched removed
}

// Match evaluates text against the classified pattern. It returns nil when
// the pattern does not match.
//
// Only the first occurrence of the matched substring is removed from Rest,
// even when it appears multiple times.
func (m *Matcher) Match(text string) *Result {
	switch m.Kind {
	case KindLiteral:
		index := strings.Index(text, m.Pattern)
		if index < 0 {
			return nil
		}
		return &Result{
			Matched: m.Pattern,
			Index:   index,
			Rest:    strings.Replace(text, m.Pattern, "", 1),
		}
	case KindStartingLiteral:
		if !strings.HasPrefix(text, m.Pattern) {
			return nil
		}
		return &Result{
			Matched: m.Pattern,
			Index:   0,
			Rest:    strings.TrimPrefix(text, m.Pattern),
		}
	case KindRegex:
		loc := m.regex.FindStringIndex(text)
		if loc == nil {
			return nil
		}
		matched := text[loc[0]:loc[1]]
		return &Result{
			Matched: matched,
			Index:   loc[0],
			Rest:    strings.Replace(text, matched, "", 1),
		}
	default:
		return nil
	}
}

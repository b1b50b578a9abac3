package syntax

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"bennypowers.dev/cssom/internal/collections"
)

// cssWideKeywords are valid in every property. They cannot be literal
// identifiers in a syntax string, and a registered initial value may not
// be one.
var cssWideKeywords = collections.NewSet(
	"inherit", "initial", "unset", "revert", "revert-layer", "default",
)

// IsCSSWideKeyword reports whether ident is a CSS-wide keyword, ignoring
// ASCII case
func IsCSSWideKeyword(ident string) bool {
	return cssWideKeywords.Has(strings.ToLower(ident))
}

// Parse builds a grammar from a syntax string such as
// "<length> | <color>#" or "auto | <length-percentage>+".
func Parse(text string) (*Syntax, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, NewInvalidSyntaxError(text, "empty syntax")
	}
	if trimmed == "*" {
		return Any(), nil
	}

	var components []*Syntax
	for _, part := range strings.Split(trimmed, "|") {
		component, err := parseComponent(strings.TrimSpace(part))
		if err != nil {
			return nil, NewInvalidSyntaxError(text, err.Error())
		}
		components = append(components, component)
	}
	return Or(components...), nil
}

// MustParse is like Parse but panics on error. It is meant for grammars
// known at compile time.
func MustParse(text string) *Syntax {
	s, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return s
}

func parseComponent(part string) (*Syntax, error) {
	if part == "" {
		return nil, fmt.Errorf("empty alternative")
	}
	if part == "*" || strings.HasPrefix(part, "*") {
		return nil, fmt.Errorf("the universal syntax must stand alone")
	}

	body, multiplier := splitMultiplier(part)

	if strings.HasPrefix(body, "<") {
		if !strings.HasSuffix(body, ">") {
			return nil, fmt.Errorf("unterminated data type name in %q", part)
		}
		name := body[1 : len(body)-1]
		category, ok := LookupCategory(name)
		if !ok {
			return nil, fmt.Errorf("unknown data type <%s>", name)
		}
		if category == TransformList && multiplier != None {
			return nil, fmt.Errorf("<transform-list> cannot take a multiplier")
		}
		return New(category, multiplier), nil
	}

	if !isIdent(body) {
		return nil, fmt.Errorf("%q is not an identifier", body)
	}
	if IsCSSWideKeyword(body) {
		return nil, fmt.Errorf("CSS-wide keyword %q cannot be used as an identifier", body)
	}
	return Keyword(body, multiplier), nil
}

func splitMultiplier(part string) (string, Multiplier) {
	switch {
	case strings.HasSuffix(part, "+"):
		return strings.TrimSpace(part[:len(part)-1]), SpaceList
	case strings.HasSuffix(part, "#"):
		return strings.TrimSpace(part[:len(part)-1]), CommaList
	}
	return part, None
}

// isIdent reports whether s is a CSS identifier without escapes
func isIdent(s string) bool {
	if s == "" || s == "-" {
		return false
	}
	rest := s
	if rest[0] == '-' {
		rest = rest[1:]
		if rest[0] == '-' {
			return isNameSequence(rest[1:])
		}
	}
	r, _ := utf8.DecodeRuneInString(rest)
	if !isNameStart(r) {
		return false
	}
	return isNameSequence(rest)
}

func isNameSequence(s string) bool {
	for _, r := range s {
		if !isNameStart(r) && !(r >= '0' && r <= '9') && r != '-' {
			return false
		}
	}
	return true
}

func isNameStart(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_' || r >= 0x80
}

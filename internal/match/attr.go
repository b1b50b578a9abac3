package match

import (
	"strings"

	"bennypowers.dev/cssom/internal/syntax"
	"bennypowers.dev/cssom/internal/value"
)

type hintKind int

const (
	hintImplicit hintKind = iota // no type, the attribute is read as a string
	hintUnit
	hintPercent
	hintGrammar
	hintMalformed
)

// attrHint is the parsed form of attr(<name> <type>? , <fallback>?)
type attrHint struct {
	kind     hintKind
	unit     string
	category syntax.Category // for hintUnit; valid only if known
	known    bool
	grammar  *syntax.Syntax
	fallback value.Value
}

// readAttr interprets the parameters of an attr() production
func readAttr(a *value.Attr) attrHint {
	p := a.Params
	if len(p) == 0 {
		return attrHint{kind: hintMalformed}
	}
	if _, ok := p[0].(*value.Ident); !ok {
		return attrHint{kind: hintMalformed}
	}
	if len(p) == 1 {
		return attrHint{kind: hintImplicit}
	}

	var h attrHint
	next := 2
	switch t := p[1].(type) {
	case *value.Delim:
		switch {
		case t.IsComma():
			return attrHint{kind: hintImplicit, fallback: value.Group(p[2:])}
		case t.Text == "%":
			h.kind = hintPercent
		case t.Text == "<":
			// a bare grammar, attr(data-x <length>)
			g, end, ok := bareGrammar(p)
			if !ok {
				return attrHint{kind: hintMalformed}
			}
			h.kind, h.grammar, next = hintGrammar, g, end
		default:
			return attrHint{kind: hintMalformed}
		}
	case *value.Ident:
		if strings.EqualFold(t.Text, "string") {
			h.kind, h.grammar = hintGrammar, syntax.New(syntax.String, syntax.None)
			break
		}
		h.kind, h.unit = hintUnit, t.Text
		h.category, h.known = value.LookupUnit(t.Text)
	case *value.Function:
		if !strings.EqualFold(t.Name, "type") {
			return attrHint{kind: hintMalformed}
		}
		g, err := syntax.Parse(t.Inner)
		if err != nil {
			return attrHint{kind: hintMalformed}
		}
		h.kind, h.grammar = hintGrammar, g
	default:
		return attrHint{kind: hintMalformed}
	}

	if len(p) == next {
		return h
	}
	if d, ok := p[next].(*value.Delim); !ok || !d.IsComma() {
		return attrHint{kind: hintMalformed}
	}
	h.fallback = value.Group(p[next+1:])
	return h
}

// bareGrammar parses the grammar spelled out from p[1] up to the first comma
// and returns the index just past it.
func bareGrammar(p []value.Value) (*syntax.Syntax, int, bool) {
	var b strings.Builder
	end := 1
	for ; end < len(p); end++ {
		if d, ok := p[end].(*value.Delim); ok && d.IsComma() {
			break
		}
		b.WriteString(p[end].String())
	}
	g, err := syntax.Parse(b.String())
	if err != nil {
		return nil, 0, false
	}
	return g, end, true
}

// numericCategories are the grammar categories whose values are Numeric
var numericCategories = map[syntax.Category]bool{
	syntax.Number:     true,
	syntax.Percentage: true,
	syntax.Length:     true,
	syntax.Angle:      true,
	syntax.Time:       true,
	syntax.Frequency:  true,
	syntax.Flex:       true,
}

// typeOf maps a declared grammar to a static type. Only a single
// unmultiplied component has one.
func typeOf(g *syntax.Syntax) value.Type {
	if g.Next() != nil || g.Multiplier() != syntax.None {
		return value.TypeUnknown
	}
	switch c := g.Category(); {
	case c == syntax.String:
		return value.TypeString
	case c == syntax.URL:
		return value.TypeURI
	case c == syntax.CustomIdent:
		return value.TypeIdent
	case c == syntax.Color:
		return value.TypeColor
	case numericCategories[c]:
		return value.TypeNumeric
	}
	return value.TypeUnknown
}

// FinalType returns the static type an attr() production resolves to, or
// TypeUnknown when the production is malformed, names no recognised type,
// or carries a fallback that does not fit the declared type.
func FinalType(a *value.Attr) value.Type {
	return defaultMatcher.FinalType(a)
}

// IsIndeterminate reports whether FinalType is TypeUnknown
func IsIndeterminate(a *value.Attr) bool {
	return FinalType(a) == value.TypeUnknown
}

// FinalType is like the package-level FinalType but checks fallbacks with m
func (m *Matcher) FinalType(a *value.Attr) value.Type {
	if a == nil {
		panic("match: nil attr()")
	}

	h := readAttr(a)
	var declared value.Type
	switch h.kind {
	case hintMalformed:
		return value.TypeUnknown
	case hintImplicit:
		return value.TypeString
	case hintPercent:
		declared = value.TypeNumeric
	case hintUnit:
		if !h.known {
			return value.TypeUnknown
		}
		declared = typeOf(syntax.New(h.category, syntax.None))
	case hintGrammar:
		declared = typeOf(h.grammar)
	}

	if h.fallback == nil {
		return declared
	}
	switch h.kind {
	case hintUnit, hintPercent:
		if _, ok := h.fallback.(*value.Numeric); !ok {
			return value.TypeUnknown
		}
	case hintGrammar:
		if m.Matches(h.fallback, h.grammar) != True {
			return value.TypeUnknown
		}
	}
	return declared
}

// attrOutcomes is what an attr() may become: a value of its declared type,
// or its fallback when the attribute is missing or does not parse.
func (m *Matcher) attrOutcomes(a *value.Attr) []outcome {
	h := readAttr(a)

	var out []outcome
	switch h.kind {
	case hintMalformed:
		return []outcome{anything}
	case hintImplicit:
		out = append(out, outcome{category: syntax.String})
	case hintPercent:
		out = append(out, outcome{value: value.Percent(1)})
	case hintUnit:
		if !h.known {
			return []outcome{anything}
		}
		out = append(out, outcome{value: value.Dimension(1, h.unit)})
	case hintGrammar:
		out = append(out, syntaxOutcomes(h.grammar)...)
	}

	switch {
	case h.fallback == nil:
	case containsDeferred(h.fallback):
		out = append(out, anything)
	default:
		out = append(out, outcome{value: h.fallback})
	}
	return out
}

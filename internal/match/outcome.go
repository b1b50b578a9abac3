package match

import (
	"bennypowers.dev/cssom/internal/collections"
	"bennypowers.dev/cssom/internal/syntax"
	"bennypowers.dev/cssom/internal/value"
)

// outcome is one thing a deferred value might turn into: a hypothetical
// concrete value, any value of a category, or anything at all.
type outcome struct {
	value    value.Value
	category syntax.Category
	name     string // keyword text when category is Ident
	list     bool   // a list of category values, from a multiplied grammar
	any      bool
}

var anything = outcome{any: true}

// implied lists the categories a value of each category also satisfies
var implied = map[syntax.Category]collections.Set[syntax.Category]{
	syntax.Length:            collections.NewSet(syntax.Length, syntax.LengthPercentage),
	syntax.Percentage:        collections.NewSet(syntax.Percentage, syntax.LengthPercentage),
	syntax.Integer:           collections.NewSet(syntax.Integer, syntax.Number),
	syntax.URL:               collections.NewSet(syntax.URL, syntax.Image),
	syntax.TransformFunction: collections.NewSet(syntax.TransformFunction, syntax.TransformList),
}

// overlaps lists the categories some, but not all, values of a category
// satisfy: a <number> may or may not be an <integer>.
var overlaps = map[syntax.Category]collections.Set[syntax.Category]{
	syntax.Number:      collections.NewSet(syntax.Integer),
	syntax.CustomIdent: collections.NewSet(syntax.Ident),
}

// syntaxOutcomes returns one outcome per alternative of s
func syntaxOutcomes(s *syntax.Syntax) []outcome {
	out := make([]outcome, 0, s.Len())
	for _, alt := range s.Alternatives() {
		list := alt.Multiplier() != syntax.None
		switch alt.Category() {
		case syntax.Universal:
			out = append(out, anything)
		case syntax.LengthPercentage:
			out = append(out,
				outcome{category: syntax.Length, list: list},
				outcome{category: syntax.Percentage, list: list},
			)
		default:
			out = append(out, outcome{category: alt.Category(), name: alt.Name(), list: list})
		}
	}
	return out
}

// satisfies reports whether the outcome o would match the component alt
func (m *Matcher) satisfies(o outcome, alt, root *syntax.Syntax) Result {
	switch {
	case alt.IsUniversal():
		return True
	case o.any:
		return Pending
	case o.value != nil:
		return m.matchAlternative(o.value, alt, root)
	}

	if o.list && alt.Multiplier() == syntax.None {
		return False
	}

	c := alt.Category()
	if c == syntax.TransformList && o.category == syntax.TransformList {
		return True
	}
	switch o.category {
	case syntax.Ident:
		if c == syntax.CustomIdent || (c == syntax.Ident && alt.Name() == o.name) {
			return True
		}
		return False
	case c:
		return True
	}
	if set, ok := implied[o.category]; ok && set.Has(c) {
		return True
	}
	if set, ok := overlaps[o.category]; ok && set.Has(c) {
		return Pending
	}
	return False
}

// matchOutcomes is True when every outcome matches some alternative of
// chain, False when none does, and Pending otherwise.
func (m *Matcher) matchOutcomes(outcomes []outcome, chain, root *syntax.Syntax) Result {
	if hasUniversal(chain) {
		return True
	}

	matched, undecided := 0, false
	for _, o := range outcomes {
		best := False
		for _, alt := range chain.Alternatives() {
			if best == True {
				break
			}
			switch m.satisfies(o, alt, root) {
			case True:
				best = True
			case Pending:
				best = Pending
			}
		}
		switch best {
		case True:
			matched++
		case Pending:
			undecided = true
		}
	}

	switch {
	case len(outcomes) > 0 && matched == len(outcomes):
		return True
	case matched == 0 && !undecided:
		return False
	}
	return Pending
}

// Package match decides whether a component value conforms to a value
// grammar. Concrete values always get a definite answer. Values whose type is
// only known at computed-value time (var(), env(), attr()) may get Pending.
package match

import (
	"bennypowers.dev/cssom/internal/syntax"
	"bennypowers.dev/cssom/internal/value"
)

// Result is the outcome of a match
type Result int

const (
	False Result = iota
	True
	// Pending means the answer depends on substitution at computed-value time
	Pending
)

func (r Result) String() string {
	switch r {
	case True:
		return "true"
	case False:
		return "false"
	case Pending:
		return "pending"
	}
	return "unknown"
}

// Registry supplies the declared grammar of registered custom properties
type Registry interface {
	Syntax(name string) (*syntax.Syntax, bool)
}

// Matcher matches values against grammars. The zero value is not usable;
// call New.
type Matcher struct {
	registry Registry
}

// Option configures a Matcher
type Option func(*Matcher)

// WithRegistry lets var() references to registered properties take the
// registered grammar as their possible outcomes instead of "anything".
func WithRegistry(r Registry) Option {
	return func(m *Matcher) {
		m.registry = r
	}
}

// New creates a Matcher
func New(opts ...Option) *Matcher {
	m := &Matcher{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

var defaultMatcher = New()

// Matches reports whether v conforms to any alternative of s, using a
// Matcher without a registry.
func Matches(v value.Value, s *syntax.Syntax) Result {
	return defaultMatcher.Matches(v, s)
}

// Matches reports whether v conforms to any alternative of s.
// It panics if v or s is nil.
func (m *Matcher) Matches(v value.Value, s *syntax.Syntax) Result {
	if v == nil {
		panic("match: nil value")
	}
	if s == nil {
		panic("match: nil syntax")
	}
	return m.match(v, s, s)
}

// match tests v against every alternative of chain. root is the grammar the
// caller originally asked about; fallbacks are always checked against it.
func (m *Matcher) match(v value.Value, chain, root *syntax.Syntax) Result {
	switch d := v.(type) {
	case *value.Var:
		return m.matchVar(d, chain, root)
	case *value.Env:
		return m.matchEnv(d, chain, root)
	case *value.Attr:
		if hasUniversal(chain) {
			return True
		}
		return m.matchOutcomes(m.attrOutcomes(d), chain, root)
	}

	if isCSSWideKeyword(v) {
		return True
	}

	if containsDeferred(v) && !isList(v) {
		if hasUniversal(chain) {
			return True
		}
		return Pending
	}

	verdict := False
	for _, alt := range chain.Alternatives() {
		switch m.matchAlternative(v, alt, root) {
		case True:
			return True
		case Pending:
			verdict = Pending
		}
	}
	return verdict
}

// matchAlternative tests a non-deferred v against a single component
func (m *Matcher) matchAlternative(v value.Value, alt, root *syntax.Syntax) Result {
	if alt.IsUniversal() {
		if isInvalid(v) {
			return Pending
		}
		return True
	}

	list, isList := v.(*value.List)
	if isList && len(list.Items) == 1 {
		v, isList = list.Items[0], false
	}

	if alt.Multiplier() != syntax.None || alt.Category() == syntax.TransformList {
		if !isList {
			return m.matchSingle(v, single(alt), root)
		}
		return m.matchList(list, alt, root)
	}

	if isList {
		if containsDeferred(list) {
			return Pending
		}
		return False
	}
	return m.matchSingle(v, alt, root)
}

// matchSingle tests one value against one unmultiplied component. Deferred
// values can show up here as list items.
func (m *Matcher) matchSingle(v value.Value, alt, root *syntax.Syntax) Result {
	if value.IsDeferred(v) {
		return m.match(v, alt, root)
	}
	if isZero(v) && alt.Category().IsDimension() {
		return True
	}
	if Classify(v, alt).Has(alt.Category()) {
		return True
	}
	return False
}

// matchList requires a non-empty list, separated the way the multiplier
// asks, whose every item matches the component.
func (m *Matcher) matchList(list *value.List, alt, root *syntax.Syntax) Result {
	if len(list.Items) == 0 {
		return False
	}
	wantComma := alt.Multiplier() == syntax.CommaList
	if list.Comma != wantComma {
		return False
	}

	item := single(alt)
	verdict := True
	for _, v := range list.Items {
		switch m.matchSingle(v, item, root) {
		case False:
			return False
		case Pending:
			verdict = Pending
		}
	}
	return verdict
}

func (m *Matcher) matchVar(v *value.Var, chain, root *syntax.Syntax) Result {
	if hasUniversal(chain) {
		return True
	}
	if fb, ok := literalFallback(v); ok {
		return m.match(fb, root, root)
	}
	if m.registry != nil {
		if s, ok := m.registry.Syntax(v.Name); ok {
			return m.matchOutcomes(syntaxOutcomes(s), chain, root)
		}
	}
	return m.matchOutcomes([]outcome{anything}, chain, root)
}

func (m *Matcher) matchEnv(e *value.Env, chain, root *syntax.Syntax) Result {
	fallback, _ := literalFallback(e)
	verdict := False
	for _, alt := range chain.Alternatives() {
		switch m.MatchEnv(root, alt, e.Name, fallback) {
		case True:
			return True
		case Pending:
			verdict = Pending
		}
	}
	return verdict
}

// single strips the multiplier from a component. <transform-list> is an
// implied space list of transform functions.
func single(alt *syntax.Syntax) *syntax.Syntax {
	switch {
	case alt.Category() == syntax.TransformList:
		return syntax.New(syntax.TransformFunction, syntax.None)
	case alt.Category() == syntax.Ident:
		return syntax.Keyword(alt.Name(), syntax.None)
	}
	return syntax.New(alt.Category(), syntax.None)
}

func hasUniversal(chain *syntax.Syntax) bool {
	for _, alt := range chain.Alternatives() {
		if alt.IsUniversal() {
			return true
		}
	}
	return false
}

// literalFallback returns the fallback of d when it is present and not
// itself deferred. Such a fallback decides the match on its own.
func literalFallback(d value.Deferred) (value.Value, bool) {
	fb := d.FallbackValue()
	if fb == nil || value.IsDeferred(fb) {
		return nil, false
	}
	return fb, true
}

// isZero reports whether v is a number or dimension equal to zero. A zero
// percentage is not normalized: percentages are not dimensions.
func isZero(v value.Value) bool {
	n, ok := v.(*value.Numeric)
	return ok && n.IsZero() && n.Kind() != value.KindPercentage
}

func isList(v value.Value) bool {
	_, ok := v.(*value.List)
	return ok
}

func isInvalid(v value.Value) bool {
	switch v := v.(type) {
	case *value.Raw:
		return true
	case *value.List:
		for _, item := range v.Items {
			if isInvalid(item) {
				return true
			}
		}
	}
	return false
}

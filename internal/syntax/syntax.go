package syntax

import (
	"fmt"
	"strings"
)

// Syntax is one component of a value grammar, linked to the next alternative
// of its "|" chain. A Syntax is immutable once built and nodes may be shared
// between grammars.
type Syntax struct {
	category   Category
	name       string
	multiplier Multiplier
	next       *Syntax
}

var universal = &Syntax{category: Universal}

// Any returns the universal syntax "*"
func Any() *Syntax {
	return universal
}

// New returns a single component for a data type category.
// Use Keyword for literal identifiers and Any for the universal syntax.
func New(c Category, m Multiplier) *Syntax {
	switch c {
	case Ident:
		panic("syntax: New called with Ident; use Keyword")
	case Universal:
		if m != None {
			panic("syntax: the universal syntax takes no multiplier")
		}
		return universal
	case TransformList:
		if m != None {
			panic("syntax: <transform-list> takes no multiplier")
		}
	}
	return &Syntax{category: c, multiplier: m}
}

// Keyword returns a component that accepts exactly the identifier name
func Keyword(name string, m Multiplier) *Syntax {
	if name == "" {
		panic("syntax: Keyword called with an empty name")
	}
	return &Syntax{category: Ident, name: name, multiplier: m}
}

// Or joins alternatives into a single ordered chain. Chained arguments
// contribute every one of their alternatives. The arguments are not modified.
func Or(alts ...*Syntax) *Syntax {
	var head, tail *Syntax
	for _, alt := range alts {
		for n := alt; n != nil; n = n.next {
			clone := &Syntax{category: n.category, name: n.name, multiplier: n.multiplier}
			if head == nil {
				head = clone
			} else {
				tail.next = clone
			}
			tail = clone
		}
	}
	return head
}

// Category returns the component's data type
func (s *Syntax) Category() Category {
	return s.category
}

// Name returns the literal identifier for Ident components, "" otherwise
func (s *Syntax) Name() string {
	return s.name
}

// Multiplier returns the component's repetition suffix
func (s *Syntax) Multiplier() Multiplier {
	return s.multiplier
}

// Next returns the next alternative in the chain, or nil
func (s *Syntax) Next() *Syntax {
	return s.next
}

// IsUniversal reports whether the component is "*"
func (s *Syntax) IsUniversal() bool {
	return s.category == Universal
}

// ShallowClone returns the component detached from its chain. A component
// that is already last in its chain is returned as is.
func (s *Syntax) ShallowClone() *Syntax {
	if s.next == nil {
		return s
	}
	return &Syntax{category: s.category, name: s.name, multiplier: s.multiplier}
}

// Alternatives returns every component of the chain, in order, each detached
// from the chain.
func (s *Syntax) Alternatives() []*Syntax {
	alts := make([]*Syntax, 0, s.Len())
	for n := s; n != nil; n = n.next {
		alts = append(alts, n.ShallowClone())
	}
	return alts
}

// Len returns the number of alternatives in the chain
func (s *Syntax) Len() int {
	n := 0
	for c := s; c != nil; c = c.next {
		n++
	}
	return n
}

// String renders the chain as a syntax string, e.g. "<length>+ | auto"
func (s *Syntax) String() string {
	if s == nil {
		return ""
	}
	var b strings.Builder
	for n := s; n != nil; n = n.next {
		if n != s {
			b.WriteString(" | ")
		}
		if n.category == Ident {
			b.WriteString(n.name)
		} else {
			b.WriteString(n.category.String())
		}
		b.WriteString(n.multiplier.String())
	}
	return b.String()
}

// GoString makes %#v print the syntax string instead of the linked nodes
func (s *Syntax) GoString() string {
	return fmt.Sprintf("syntax.MustParse(%q)", s.String())
}

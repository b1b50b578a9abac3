// Package registry holds custom property registrations, the programmatic
// equivalent of @property rules.
package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"bennypowers.dev/cssom/internal/log"
	"bennypowers.dev/cssom/internal/match"
	"bennypowers.dev/cssom/internal/parser/css"
	"bennypowers.dev/cssom/internal/syntax"
	"bennypowers.dev/cssom/internal/value"
)

// Definition is a registration as written in a registry file or an
// @property rule
type Definition struct {
	Name         string  `yaml:"name" json:"name"`
	Syntax       string  `yaml:"syntax" json:"syntax"`
	Inherits     bool    `yaml:"inherits" json:"inherits"`
	InitialValue *string `yaml:"initial-value,omitempty" json:"initial-value,omitempty"`
	// Source names where the definition came from, for error messages
	Source string `yaml:"-" json:"-"`
}

// Registration is a validated custom property registration
type Registration struct {
	Name     string
	Syntax   *syntax.Syntax
	Inherits bool
	// InitialValue is nil when the syntax is universal and none was given
	InitialValue value.Value
	Source       string
}

// Registry manages registered custom properties.
// It is safe for concurrent use.
type Registry struct {
	properties map[string]*Registration
	mu         sync.RWMutex
}

// New creates an empty registry
func New() *Registry {
	return &Registry{
		properties: make(map[string]*Registration),
	}
}

// Register validates a definition and adds it to the registry
func (r *Registry) Register(def Definition) (*Registration, error) {
	reg, err := validate(def)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.properties[reg.Name]; ok {
		return nil, NewDuplicateRegistrationError(reg.Name, existing.Source)
	}
	r.properties[reg.Name] = reg

	log.Debug("Registered %s as %s", reg.Name, reg.Syntax)
	return reg, nil
}

// Lookup returns the registration of a custom property
func (r *Registry) Lookup(name string) (*Registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.properties[name]
	return reg, ok
}

// Syntax returns the registered grammar of a custom property, letting a
// Registry back a match.Matcher
func (r *Registry) Syntax(name string) (*syntax.Syntax, bool) {
	reg, ok := r.Lookup(name)
	if !ok {
		return nil, false
	}
	return reg.Syntax, true
}

// All returns every registration, sorted by name
func (r *Registry) All() []*Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	regs := make([]*Registration, 0, len(r.properties))
	for _, reg := range r.properties {
		regs = append(regs, reg)
	}
	sort.Slice(regs, func(i, j int) bool {
		return regs[i].Name < regs[j].Name
	})
	return regs
}

// Count returns the number of registered properties
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.properties)
}

// Clear removes every registration
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.properties = make(map[string]*Registration)
}

// validate applies the @property registration rules to a definition
func validate(def Definition) (*Registration, error) {
	name := def.Name
	if !strings.HasPrefix(name, "--") || len(name) == 2 {
		return nil, NewInvalidRegistrationError(name, "name must be a custom property name")
	}

	grammar, err := syntax.Parse(def.Syntax)
	if err != nil {
		return nil, NewInvalidRegistrationError(name, err.Error())
	}

	reg := &Registration{
		Name:     name,
		Syntax:   grammar,
		Inherits: def.Inherits,
		Source:   def.Source,
	}

	if def.InitialValue == nil {
		if !grammar.IsUniversal() {
			return nil, NewInvalidRegistrationError(name,
				fmt.Sprintf("syntax %q requires an initial value", grammar))
		}
		return reg, nil
	}

	initial, err := css.ParseValue(*def.InitialValue)
	if err != nil {
		return nil, NewInvalidRegistrationError(name, err.Error())
	}
	if reason := dependentReason(initial); reason != "" {
		return nil, NewInvalidRegistrationError(name,
			fmt.Sprintf("initial value %q is not computationally independent: %s", *def.InitialValue, reason))
	}
	if match.Matches(initial, grammar) == match.False {
		return nil, NewInitialValueMismatchError(name, *def.InitialValue, grammar.String())
	}

	reg.InitialValue = initial
	return reg, nil
}

// absoluteLengths are the length units whose value does not depend on
// the element or the viewport
var absoluteLengths = map[string]bool{
	"px": true, "cm": true, "mm": true, "q": true, "in": true, "pt": true, "pc": true,
}

// dependentReason explains why v could not be computed without an element,
// or returns "" if it can.
func dependentReason(v value.Value) string {
	switch v := v.(type) {
	case *value.Var, *value.Env, *value.Attr:
		return v.String() + " is substituted at computed-value time"
	case *value.Ident:
		if syntax.IsCSSWideKeyword(v.Text) {
			return "CSS-wide keyword " + v.Text
		}
	case *value.Numeric:
		if v.Kind() != value.KindDimension {
			return ""
		}
		if c, ok := value.LookupUnit(v.Unit); ok && c == syntax.Length && !absoluteLengths[strings.ToLower(v.Unit)] {
			return "relative length " + v.String()
		}
	case *value.Function:
		for _, arg := range v.Args {
			if reason := dependentReason(arg); reason != "" {
				return reason
			}
		}
	case *value.List:
		for _, item := range v.Items {
			if reason := dependentReason(item); reason != "" {
				return reason
			}
		}
	}
	return ""
}

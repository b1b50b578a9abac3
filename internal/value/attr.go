package value

import "strings"

// Type is the CSSOM type a value is known to present after substitution
type Type int

const (
	TypeUnknown Type = iota
	TypeString
	TypeURI
	TypeIdent
	TypeColor
	TypeNumeric
)

func (t Type) String() string {
	switch t {
	case TypeString:
		return "String"
	case TypeURI:
		return "Uri"
	case TypeIdent:
		return "Ident"
	case TypeColor:
		return "Color"
	case TypeNumeric:
		return "Numeric"
	}
	return "Unknown"
}

// Attr is an attr() reference. Its parameters are kept exactly as parsed,
// comma separators included, so the type hint can be read syntactically.
type Attr struct {
	Params []Value
}

func (a *Attr) Kind() Kind { return KindAttr }

func (a *Attr) deferred() {}

// FallbackValue returns whatever follows the first comma, or nil
func (a *Attr) FallbackValue() Value {
	for i, p := range a.Params {
		if d, ok := p.(*Delim); ok && d.IsComma() {
			return group(a.Params[i+1:])
		}
	}
	return nil
}

func (a *Attr) String() string {
	var b strings.Builder
	b.WriteString("attr(")
	for i, p := range a.Params {
		if d, ok := p.(*Delim); ok && d.IsComma() {
			b.WriteString(", ")
			continue
		}
		if i > 0 && !isComma(a.Params[i-1]) {
			b.WriteByte(' ')
		}
		b.WriteString(p.String())
	}
	b.WriteByte(')')
	return b.String()
}

// group turns a flat parameter run into a single value: one value stays as
// is, several become a space list, and commas split a comma list.
func group(params []Value) Value {
	var groups [][]Value
	current := []Value{}
	for _, p := range params {
		if isComma(p) {
			groups = append(groups, current)
			current = []Value{}
			continue
		}
		current = append(current, p)
	}
	groups = append(groups, current)

	items := make([]Value, 0, len(groups))
	for _, g := range groups {
		switch len(g) {
		case 0:
		case 1:
			items = append(items, g[0])
		default:
			items = append(items, SpaceList(g...))
		}
	}

	switch {
	case len(items) == 0:
		return nil
	case len(items) == 1 && len(groups) == 1:
		return items[0]
	}
	return CommaList(items...)
}

// Group is the exported form of group, used by parsers to fold a run of
// component values into one production.
func Group(values []Value) Value {
	return group(values)
}

func isComma(v Value) bool {
	d, ok := v.(*Delim)
	return ok && d.IsComma()
}

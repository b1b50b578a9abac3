// Package value holds the component-value productions the matcher works on:
// concrete values with a definite kind, deferred values (var(), env(), attr())
// whose kind is only known at computed-value time, and lists of either.
package value

import (
	"strconv"
	"strings"

	"github.com/mazznoer/csscolorparser"
)

// Kind is the runtime kind of a production
type Kind int

const (
	KindNumber Kind = iota
	KindInteger
	KindPercentage
	KindDimension
	KindString
	KindURI
	KindColor
	KindIdent
	KindFunction
	KindUnicodeRange
	KindDelim
	KindList
	KindVar
	KindEnv
	KindAttr
	// KindInvalid marks text that could not be turned into a production
	KindInvalid
)

var kindNames = [...]string{
	KindNumber:       "number",
	KindInteger:      "integer",
	KindPercentage:   "percentage",
	KindDimension:    "dimension",
	KindString:       "string",
	KindURI:          "url",
	KindColor:        "color",
	KindIdent:        "ident",
	KindFunction:     "function",
	KindUnicodeRange: "unicode-range",
	KindDelim:        "delim",
	KindList:         "list",
	KindVar:          "var",
	KindEnv:          "env",
	KindAttr:         "attr",
	KindInvalid:      "invalid",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Value is a parsed component value
type Value interface {
	Kind() Kind
	String() string
}

// Deferred is a value whose concrete kind is decided by substitution
type Deferred interface {
	Value
	// FallbackValue returns the fallback production, or nil
	FallbackValue() Value
	deferred()
}

// IsDeferred reports whether v is a var(), env() or attr() production
func IsDeferred(v Value) bool {
	_, ok := v.(Deferred)
	return ok
}

// Numeric is a number, percentage or dimension
type Numeric struct {
	Value   float64
	Unit    string // "" for plain numbers, "%" for percentages
	Integer bool   // the numeric part was written without a fraction or exponent
}

// Number returns a plain <number>
func Number(v float64) *Numeric { return &Numeric{Value: v} }

// Int returns a plain <integer>
func Int(v int) *Numeric { return &Numeric{Value: float64(v), Integer: true} }

// Percent returns a <percentage>
func Percent(v float64) *Numeric { return &Numeric{Value: v, Unit: "%"} }

// Dimension returns a number with a unit
func Dimension(v float64, unit string) *Numeric { return &Numeric{Value: v, Unit: unit} }

func (n *Numeric) Kind() Kind {
	switch {
	case n.Unit == "%":
		return KindPercentage
	case n.Unit != "":
		return KindDimension
	case n.Integer:
		return KindInteger
	}
	return KindNumber
}

// IsZero reports whether the numeric part is exactly zero
func (n *Numeric) IsZero() bool {
	return n.Value == 0
}

func (n *Numeric) String() string {
	return strconv.FormatFloat(n.Value, 'f', -1, 64) + n.Unit
}

// String is a quoted string
type String struct {
	Value string
}

func (s *String) Kind() Kind { return KindString }

func (s *String) String() string {
	return quote(s.Value)
}

// URI is a url() token or a url() function with a string argument
type URI struct {
	Value string
}

func (u *URI) Kind() Kind { return KindURI }

func (u *URI) String() string {
	return "url(" + quote(u.Value) + ")"
}

// Color is a hash or color function recognised as a color
type Color struct {
	Text string
	RGBA csscolorparser.Color
}

func (c *Color) Kind() Kind { return KindColor }

func (c *Color) String() string { return c.Text }

// Ident is an identifier
type Ident struct {
	Text string
}

func (i *Ident) Kind() Kind { return KindIdent }

func (i *Ident) String() string { return i.Text }

// Function is any function other than var(), env(), attr() and url()
type Function struct {
	Name string
	Args []Value
	// Inner is the source text between the parentheses
	Inner string
}

func (f *Function) Kind() Kind { return KindFunction }

func (f *Function) String() string {
	return f.Name + "(" + f.Inner + ")"
}

// UnicodeRange is a unicode-range token such as U+0025-00FF
type UnicodeRange struct {
	Text string
}

func (u *UnicodeRange) Kind() Kind { return KindUnicodeRange }

func (u *UnicodeRange) String() string { return u.Text }

// Delim is a separator or a lone delimiter code point such as "," "/" or "%"
type Delim struct {
	Text string
}

func (d *Delim) Kind() Kind { return KindDelim }

func (d *Delim) String() string { return d.Text }

// IsComma reports whether the delimiter is a comma
func (d *Delim) IsComma() bool { return d.Text == "," }

// Raw is source text that could not be classified
type Raw struct {
	Text string
}

func (r *Raw) Kind() Kind { return KindInvalid }

func (r *Raw) String() string { return r.Text }

// List is an ordered sequence of values
type List struct {
	Items []Value
	Comma bool // items are separated by commas rather than whitespace
}

// SpaceList returns a whitespace separated list
func SpaceList(items ...Value) *List { return &List{Items: items} }

// CommaList returns a comma separated list
func CommaList(items ...Value) *List { return &List{Items: items, Comma: true} }

func (l *List) Kind() Kind { return KindList }

func (l *List) String() string {
	sep := " "
	if l.Comma {
		sep = ", "
	}
	return join(l.Items, sep)
}

// Var is a var() reference
type Var struct {
	Name     string
	Fallback Value
}

func (v *Var) Kind() Kind { return KindVar }

func (v *Var) FallbackValue() Value { return v.Fallback }

func (v *Var) deferred() {}

func (v *Var) String() string {
	if v.Fallback == nil {
		return "var(" + v.Name + ")"
	}
	return "var(" + v.Name + ", " + v.Fallback.String() + ")"
}

// Env is an env() reference
type Env struct {
	Name     string
	Fallback Value
}

func (e *Env) Kind() Kind { return KindEnv }

func (e *Env) FallbackValue() Value { return e.Fallback }

func (e *Env) deferred() {}

func (e *Env) String() string {
	if e.Fallback == nil {
		return "env(" + e.Name + ")"
	}
	return "env(" + e.Name + ", " + e.Fallback.String() + ")"
}

func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\a `)
	return `"` + r.Replace(s) + `"`
}

func join(values []Value, sep string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.String()
	}
	return strings.Join(parts, sep)
}

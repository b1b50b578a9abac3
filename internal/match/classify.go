package match

import (
	"strings"

	"bennypowers.dev/cssom/internal/collections"
	"bennypowers.dev/cssom/internal/color"
	"bennypowers.dev/cssom/internal/syntax"
	"bennypowers.dev/cssom/internal/value"
)

// Category sets are package-level constants; Classify hands out copies.
var (
	lengthCategories     = collections.NewSet(syntax.Length, syntax.LengthPercentage, syntax.Universal)
	percentageCategories = collections.NewSet(syntax.Percentage, syntax.LengthPercentage, syntax.Universal)
	integerCategories    = collections.NewSet(syntax.Integer, syntax.Number, syntax.Universal)
	numberCategories     = collections.NewSet(syntax.Number, syntax.Universal)
	universalOnly        = collections.NewSet(syntax.Universal)

	transformFunctions = collections.NewSet(
		"matrix", "matrix3d",
		"translate", "translatex", "translatey", "translatez", "translate3d",
		"scale", "scalex", "scaley", "scalez", "scale3d",
		"rotate", "rotatex", "rotatey", "rotatez", "rotate3d",
		"skew", "skewx", "skewy",
		"perspective",
	)

	imageFunctions = collections.NewSet(
		"linear-gradient", "radial-gradient", "conic-gradient",
		"repeating-linear-gradient", "repeating-radial-gradient", "repeating-conic-gradient",
		"image", "image-set", "cross-fade", "element", "paint",
		"-webkit-image-set", "-webkit-linear-gradient", "-webkit-radial-gradient",
	)

	counterFunctions = collections.NewSet("counter", "counters")

	basicShapeFunctions = collections.NewSet(
		"inset", "circle", "ellipse", "polygon", "path", "rect", "xywh", "shape",
	)

	mathFunctions = collections.NewSet(
		"calc", "min", "max", "clamp", "round", "mod", "rem",
		"abs", "sign", "sin", "cos", "tan", "asin", "acos", "atan", "atan2",
		"pow", "sqrt", "hypot", "log", "exp",
	)
)

// Classify returns every category the concrete value v satisfies. node is
// the component under test; it only matters for literal identifiers, which
// satisfy Ident when their text equals node's name. Deferred values and
// unparseable text satisfy nothing, not even Universal.
//
// A zero without a unit is classified as a number here; accepting it for
// dimensioned categories is up to the caller.
func Classify(v value.Value, node *syntax.Syntax) collections.Set[syntax.Category] {
	switch v := v.(type) {
	case *value.Numeric:
		return classifyNumeric(v)
	case *value.String:
		return collections.NewSet(syntax.String, syntax.Universal)
	case *value.URI:
		return collections.NewSet(syntax.URL, syntax.Image, syntax.Universal)
	case *value.Color:
		return collections.NewSet(syntax.Color, syntax.Universal)
	case *value.Ident:
		return classifyIdent(v, node)
	case *value.UnicodeRange:
		return collections.NewSet(syntax.UnicodeRange, syntax.Universal)
	case *value.Function:
		return classifyFunction(v)
	case *value.Delim, *value.List:
		return universalOnly.Union()
	}
	return collections.NewSet[syntax.Category]()
}

func classifyNumeric(n *value.Numeric) collections.Set[syntax.Category] {
	switch n.Kind() {
	case value.KindPercentage:
		return percentageCategories.Union()
	case value.KindInteger:
		return integerCategories.Union()
	case value.KindNumber:
		return numberCategories.Union()
	}
	c, ok := value.LookupUnit(n.Unit)
	switch {
	case !ok:
		return universalOnly.Union()
	case c == syntax.Length:
		return lengthCategories.Union()
	}
	return collections.NewSet(c, syntax.Universal)
}

func classifyIdent(i *value.Ident, node *syntax.Syntax) collections.Set[syntax.Category] {
	if syntax.IsCSSWideKeyword(i.Text) {
		return universalOnly.Union()
	}
	set := collections.NewSet(syntax.CustomIdent, syntax.Universal)
	if node != nil && node.Category() == syntax.Ident && node.Name() == i.Text {
		set.Add(syntax.Ident)
	}
	if color.IsKeyword(i.Text) {
		set.Add(syntax.Color)
	}
	return set
}

func classifyFunction(f *value.Function) collections.Set[syntax.Category] {
	name := strings.ToLower(f.Name)
	switch {
	case transformFunctions.Has(name):
		return collections.NewSet(syntax.TransformFunction, syntax.Universal)
	case imageFunctions.Has(name):
		return collections.NewSet(syntax.Image, syntax.Universal)
	case counterFunctions.Has(name):
		return collections.NewSet(syntax.Counter, syntax.Universal)
	case basicShapeFunctions.Has(name):
		return collections.NewSet(syntax.BasicShape, syntax.Universal)
	case mathFunctions.Has(name):
		return mathCategories(f).Union(universalOnly)
	}
	return universalOnly.Union()
}

// mathCategories types a math function from its numeric leaves: all the
// dimensioned leaves must agree on one category, percentages widen a length
// to <length-percentage>, and a function of plain numbers is a <number>.
func mathCategories(f *value.Function) collections.Set[syntax.Category] {
	leaves := collections.NewSet[syntax.Category]()
	integer := true
	if !collectMathLeaves(f.Args, leaves, &integer) {
		return collections.NewSet[syntax.Category]()
	}

	hasPercent := leaves.Has(syntax.Percentage)
	var dimensions []syntax.Category
	for c := range leaves {
		if c != syntax.Percentage && c != syntax.Number {
			dimensions = append(dimensions, c)
		}
	}

	switch len(dimensions) {
	case 0:
		if hasPercent {
			return collections.NewSet(syntax.Percentage, syntax.LengthPercentage)
		}
		if integer {
			return collections.NewSet(syntax.Number, syntax.Integer)
		}
		return collections.NewSet(syntax.Number)
	case 1:
		d := dimensions[0]
		if d != syntax.Length {
			return collections.NewSet(d)
		}
		if hasPercent {
			return collections.NewSet(syntax.LengthPercentage)
		}
		return collections.NewSet(syntax.Length, syntax.LengthPercentage)
	}
	return collections.NewSet[syntax.Category]()
}

func collectMathLeaves(args []value.Value, leaves collections.Set[syntax.Category], integer *bool) bool {
	for _, arg := range args {
		switch arg := arg.(type) {
		case *value.Numeric:
			switch arg.Kind() {
			case value.KindPercentage:
				leaves.Add(syntax.Percentage)
			case value.KindInteger:
				leaves.Add(syntax.Number)
			case value.KindNumber:
				leaves.Add(syntax.Number)
				*integer = false
			default:
				c, ok := value.LookupUnit(arg.Unit)
				if !ok {
					return false
				}
				leaves.Add(c)
			}
		case *value.Function:
			if !mathFunctions.Has(strings.ToLower(arg.Name)) {
				return false
			}
			if !collectMathLeaves(arg.Args, leaves, integer) {
				return false
			}
		case *value.Delim:
			if arg.Text == "/" {
				*integer = false
			}
		case *value.Ident:
			// constants such as pi and e, or rounding strategies
			*integer = false
		default:
			return false
		}
	}
	return true
}

// isCSSWideKeyword reports whether v is inherit, initial, unset, ...
func isCSSWideKeyword(v value.Value) bool {
	i, ok := v.(*value.Ident)
	return ok && syntax.IsCSSWideKeyword(i.Text)
}

// containsDeferred reports whether a var(), env() or attr() appears anywhere
// inside v, including function arguments and list items.
func containsDeferred(v value.Value) bool {
	switch v := v.(type) {
	case value.Deferred:
		return true
	case *value.Function:
		for _, arg := range v.Args {
			if containsDeferred(arg) {
				return true
			}
		}
	case *value.List:
		for _, item := range v.Items {
			if containsDeferred(item) {
				return true
			}
		}
	}
	return false
}

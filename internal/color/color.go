// Package color recognises CSS <color> values. Parsing of the color syntaxes
// themselves is delegated to csscolorparser.
package color

import (
	"fmt"
	"strings"

	"bennypowers.dev/cssom/internal/collections"
	"github.com/mazznoer/csscolorparser"
)

var (
	// namedColors are the CSS named color keywords
	namedColors = collections.NewSet(
		"transparent", "black", "white", "red", "green",
		"blue", "yellow", "cyan", "magenta", "gray",
		"grey", "maroon", "purple", "fuchsia", "lime",
		"olive", "navy", "teal", "aqua", "orange",
		"aliceblue", "antiquewhite", "aquamarine", "azure",
		"beige", "bisque", "blanchedalmond", "blueviolet",
		"brown", "burlywood", "cadetblue", "chartreuse",
		"chocolate", "coral", "cornflowerblue", "cornsilk",
		"crimson", "darkblue", "darkcyan", "darkgoldenrod",
		"darkgray", "darkgrey", "darkgreen", "darkkhaki",
		"darkmagenta", "darkolivegreen", "darkorange", "darkorchid",
		"darkred", "darksalmon", "darkseagreen", "darkslateblue",
		"darkslategray", "darkslategrey", "darkturquoise", "darkviolet",
		"deeppink", "deepskyblue", "dimgray", "dimgrey",
		"dodgerblue", "firebrick", "floralwhite", "forestgreen",
		"gainsboro", "ghostwhite", "gold", "goldenrod",
		"greenyellow", "honeydew", "hotpink", "indianred",
		"indigo", "ivory", "khaki", "lavender",
		"lavenderblush", "lawngreen", "lemonchiffon", "lightblue",
		"lightcoral", "lightcyan", "lightgoldenrodyellow", "lightgray",
		"lightgrey", "lightgreen", "lightpink", "lightsalmon",
		"lightseagreen", "lightskyblue", "lightslategray", "lightslategrey",
		"lightsteelblue", "lightyellow", "limegreen", "linen",
		"mediumaquamarine", "mediumblue", "mediumorchid", "mediumpurple",
		"mediumseagreen", "mediumslateblue", "mediumspringgreen", "mediumturquoise",
		"mediumvioletred", "midnightblue", "mintcream", "mistyrose",
		"moccasin", "navajowhite", "oldlace", "olivedrab",
		"orangered", "orchid", "palegoldenrod", "palegreen",
		"paleturquoise", "palevioletred", "papayawhip", "peachpuff",
		"peru", "pink", "plum", "powderblue",
		"rebeccapurple", "rosybrown", "royalblue", "saddlebrown", "salmon",
		"sandybrown", "seagreen", "seashell", "sienna",
		"silver", "skyblue", "slateblue", "slategray",
		"slategrey", "snow", "springgreen", "steelblue",
		"tan", "thistle", "tomato", "turquoise",
		"violet", "wheat", "whitesmoke", "yellowgreen",
	)

	// keywordColors are color keywords with no fixed RGBA value
	keywordColors = collections.NewSet(
		"currentcolor",
		// system colors
		"accentcolor", "accentcolortext", "activetext", "buttonborder",
		"buttonface", "buttontext", "canvas", "canvastext", "field",
		"fieldtext", "graytext", "highlight", "highlighttext", "linktext",
		"mark", "marktext", "selecteditem", "selecteditemtext", "visitedtext",
	)

	// colorFunctions are the functional notations that produce a <color>
	colorFunctions = collections.NewSet(
		"rgb", "rgba", "hsl", "hsla", "hwb",
		"lab", "lch", "oklab", "oklch",
		"color", "color-mix", "light-dark", "contrast-color", "device-cmyk",
	)
)

// IsKeyword reports whether ident is a named, system or current color keyword
func IsKeyword(ident string) bool {
	lower := strings.ToLower(ident)
	return namedColors.Has(lower) || keywordColors.Has(lower)
}

// IsFunction reports whether name is a color function such as rgb or oklch
func IsFunction(name string) bool {
	return colorFunctions.Has(strings.ToLower(name))
}

// Parse parses a hash, named color or color function. Keywords with no fixed
// value (currentcolor, system colors) and color functions csscolorparser
// does not evaluate (color-mix, light-dark, ...) are accepted with a zero
// RGBA value.
func Parse(text string) (csscolorparser.Color, error) {
	text = strings.TrimSpace(text)
	lower := strings.ToLower(text)

	if keywordColors.Has(lower) {
		return csscolorparser.Color{}, nil
	}

	if !strings.HasPrefix(text, "#") && !namedColors.Has(lower) {
		name, _, ok := strings.Cut(lower, "(")
		if !ok || !IsFunction(name) {
			return csscolorparser.Color{}, fmt.Errorf("not a color: %s", text)
		}
	}

	parsed, err := csscolorparser.Parse(text)
	if err != nil {
		if name, _, ok := strings.Cut(lower, "("); ok && IsFunction(name) {
			// Relative colors, color-mix() and friends are still colors even
			// when they cannot be evaluated here.
			return csscolorparser.Color{}, nil
		}
		return csscolorparser.Color{}, fmt.Errorf("unsupported color format: %s", text)
	}
	return parsed, nil
}

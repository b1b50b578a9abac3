package value

import (
	"strings"

	"bennypowers.dev/cssom/internal/syntax"
)

// units maps every known unit (lower case) to the data type it produces
var units = func() map[string]syntax.Category {
	m := map[string]syntax.Category{}
	add := func(c syntax.Category, names ...string) {
		for _, n := range names {
			m[n] = c
		}
	}
	add(syntax.Length,
		// absolute
		"px", "cm", "mm", "q", "in", "pt", "pc",
		// font relative
		"em", "rem", "ex", "rex", "ch", "rch", "cap", "rcap", "ic", "ric", "lh", "rlh",
		// viewport
		"vw", "vh", "vi", "vb", "vmin", "vmax",
		"svw", "svh", "svi", "svb", "svmin", "svmax",
		"lvw", "lvh", "lvi", "lvb", "lvmin", "lvmax",
		"dvw", "dvh", "dvi", "dvb", "dvmin", "dvmax",
		// container
		"cqw", "cqh", "cqi", "cqb", "cqmin", "cqmax",
	)
	add(syntax.Angle, "deg", "grad", "rad", "turn")
	add(syntax.Time, "s", "ms")
	add(syntax.Frequency, "hz", "khz")
	add(syntax.Flex, "fr")
	add(syntax.Resolution, "dpi", "dpcm", "dppx", "x")
	return m
}()

// LookupUnit returns the data type of a unit, ignoring ASCII case.
// The percent sign is not a unit; see Numeric.
func LookupUnit(unit string) (syntax.Category, bool) {
	c, ok := units[strings.ToLower(unit)]
	return c, ok
}

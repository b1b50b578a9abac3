package syntax

import "fmt"

// Category is the data type a syntax component accepts
type Category int

const (
	// Universal is the "*" syntax; it accepts any value
	Universal Category = iota
	Length
	LengthPercentage
	Percentage
	Number
	Integer
	Angle
	Time
	Frequency
	Flex
	Resolution
	Color
	Image
	URL
	UnicodeRange
	TransformFunction
	TransformList
	String
	Counter
	BasicShape
	CustomIdent
	// Ident is a literal identifier; the required text is the component's Name
	Ident
)

// categoryNames holds the data type names used inside angle brackets.
var categoryNames = [...]string{
	Universal:         "*",
	Length:            "length",
	LengthPercentage:  "length-percentage",
	Percentage:        "percentage",
	Number:            "number",
	Integer:           "integer",
	Angle:             "angle",
	Time:              "time",
	Frequency:         "frequency",
	Flex:              "flex",
	Resolution:        "resolution",
	Color:             "color",
	Image:             "image",
	URL:               "url",
	UnicodeRange:      "unicode-range",
	TransformFunction: "transform-function",
	TransformList:     "transform-list",
	String:            "string",
	Counter:           "counter",
	BasicShape:        "basic-shape",
	CustomIdent:       "custom-ident",
	Ident:             "IDENT",
}

// dataTypes maps a bracketed data type name to its category
var dataTypes = func() map[string]Category {
	m := make(map[string]Category, len(categoryNames))
	for c, name := range categoryNames {
		if Category(c) == Universal || Category(c) == Ident {
			continue
		}
		m[name] = Category(c)
	}
	return m
}()

// LookupCategory returns the category for a data type name such as "length"
// or "custom-ident". Universal and Ident have no data type name.
func LookupCategory(name string) (Category, bool) {
	c, ok := dataTypes[name]
	return c, ok
}

// Name returns the bare data type name ("length", "custom-ident", ...)
func (c Category) Name() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// String renders the category the way it is written in a syntax string
func (c Category) String() string {
	switch c {
	case Universal, Ident:
		return c.Name()
	}
	if c < 0 || int(c) >= len(categoryNames) {
		return c.Name()
	}
	return "<" + c.Name() + ">"
}

// IsDimension reports whether values of this category carry a unit.
// A literal zero satisfies every dimensioned category.
func (c Category) IsDimension() bool {
	switch c {
	case Length, LengthPercentage, Angle, Time, Frequency, Flex, Resolution:
		return true
	}
	return false
}

// Multiplier is the repetition suffix of a syntax component
type Multiplier int

const (
	// None accepts a single value
	None Multiplier = iota
	// SpaceList ("+") accepts one or more space separated values
	SpaceList
	// CommaList ("#") accepts one or more comma separated values
	CommaList
)

// String returns the suffix as written in a syntax string
func (m Multiplier) String() string {
	switch m {
	case SpaceList:
		return "+"
	case CommaList:
		return "#"
	}
	return ""
}

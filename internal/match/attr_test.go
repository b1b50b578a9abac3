package match_test

import (
	"testing"

	"bennypowers.dev/cssom/internal/match"
	"bennypowers.dev/cssom/internal/parser/css"
	"bennypowers.dev/cssom/internal/syntax"
	"bennypowers.dev/cssom/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseAttr(t *testing.T, input string) *value.Attr {
	t.Helper()
	v, err := css.ParseValue(input)
	require.NoError(t, err)
	a, ok := v.(*value.Attr)
	require.True(t, ok, "%s is not an attr()", input)
	return a
}

func TestFinalType(t *testing.T) {
	tests := []struct {
		input string
		want  value.Type
	}{
		{`attr(data-x)`, value.TypeString},
		{`attr(data-x px)`, value.TypeNumeric},
		{`attr(data-x deg)`, value.TypeNumeric},
		{`attr(data-x string)`, value.TypeString},
		{`attr(data-x type(<color>))`, value.TypeColor},
		{`attr(data-x type(<url>))`, value.TypeURI},
		{`attr(data-x type(<custom-ident>))`, value.TypeIdent},
		{`attr(data-x type(<length>))`, value.TypeNumeric},
		{`attr(data-x <length>)`, value.TypeNumeric},
		{`attr(data-x %)`, value.TypeNumeric},
		{`attr(data-x %, "red")`, value.TypeUnknown},
		{`attr(data-x %, 10%)`, value.TypeNumeric},
		{`attr(data-x px, 10px)`, value.TypeNumeric},
		{`attr(data-x px, auto)`, value.TypeUnknown},
		{`attr(data-x, "fallback")`, value.TypeString},
		{`attr(data-x string, "s")`, value.TypeString},
		{`attr(data-x string, 10px)`, value.TypeUnknown},
		{`attr(data-x type(<color>), red)`, value.TypeColor},
		{`attr(data-x type(<color>), 10px)`, value.TypeUnknown},
		{`attr(data-x type(<length> | auto))`, value.TypeUnknown},
		{`attr(data-x type(<length>+))`, value.TypeUnknown},
		{`attr(data-x type(<image>))`, value.TypeUnknown},
		{`attr(data-x furlongs)`, value.TypeUnknown},
		{`attr(data-x type(<nonsense>))`, value.TypeUnknown},
		{`attr(data-x foo(1))`, value.TypeUnknown},
		{`attr(data-x px 10px)`, value.TypeUnknown},
		{`attr("data-x")`, value.TypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			a := parseAttr(t, tt.input)
			got := match.FinalType(a)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got == value.TypeUnknown, match.IsIndeterminate(a))
		})
	}
}

func TestFinalTypeEmpty(t *testing.T) {
	a := &value.Attr{}
	assert.Equal(t, value.TypeUnknown, match.FinalType(a))
	assert.True(t, match.IsIndeterminate(a))
	assert.Panics(t, func() { match.FinalType(nil) })
}

func TestMatchesAttr(t *testing.T) {
	tests := []struct {
		value   string
		grammar string
		want    match.Result
	}{
		// a missing attribute falls back to auto, which is neither branch
		{"attr(data-x <length>, auto)", "<length> | <color>", match.Pending},
		{"attr(data-x <length>, auto)", "<length> | <custom-ident>", match.True},
		{"attr(data-x <length>, auto)", "<color>", match.False},
		{"attr(data-x type(<length>), auto)", "<length> | <color>", match.Pending},

		{"attr(data-x px)", "<length>", match.True},
		{"attr(data-x px)", "<angle>", match.False},
		{"attr(data-x %)", "<length-percentage>", match.True},
		{"attr(data-x px, 10px)", "<length>", match.True},
		{"attr(data-x)", "<string>", match.True},
		{"attr(data-x)", "<length>", match.False},
		{"attr(data-x type(<length-percentage>))", "<length>", match.Pending},
		{"attr(data-x type(<length-percentage>))", "<length> | <percentage>", match.True},
		{"attr(data-x type(<color>#))", "<color>", match.False},
		{"attr(data-x type(<color>#))", "<color>#", match.True},
		{"attr(data-x px, var(--y))", "<length>", match.Pending},
		{"attr(data-x furlongs)", "<length>", match.Pending},
		{"attr(data-x type(*))", "<length>", match.Pending},
		{"attr(data-x foo(1))", "<length>", match.Pending},
		{"attr(data-x foo(1))", "*", match.True},
	}

	for _, tt := range tests {
		t.Run(tt.value+" against "+tt.grammar, func(t *testing.T) {
			assert.Equal(t, tt.want, check(t, tt.value, tt.grammar))
		})
	}
}

func TestMatchesAttrInList(t *testing.T) {
	assert.Equal(t, match.True, check(t, "attr(data-x px) 10px", "<length>+"))
	assert.Equal(t, match.False, check(t, "attr(data-x type(<color>)) 10px", "<length>+"))
}

func TestMatchesAttrEmbeddedAlternatives(t *testing.T) {
	a := parseAttr(t, "attr(data-x type(<length> | auto), 0)")
	assert.Equal(t, value.TypeUnknown, match.FinalType(a))
	assert.Equal(t, match.True, match.Matches(a, syntax.MustParse("<length> | auto")))
	assert.Equal(t, match.Pending, match.Matches(a, syntax.MustParse("<length>")))

	// The type is unknown, yet every outcome fits one of the alternatives
	b := parseAttr(t, `attr(data-x %, "red")`)
	assert.Equal(t, value.TypeUnknown, match.FinalType(b))
	assert.Equal(t, match.True, match.Matches(b, syntax.MustParse("<percentage> | <string>")))
	assert.Equal(t, match.Pending, match.Matches(b, syntax.MustParse("<percentage>")))
}

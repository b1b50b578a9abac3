package css

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(toks []token) []tokenKind {
	out := make([]tokenKind, len(toks))
	for i, tok := range toks {
		out[i] = tok.kind
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []tokenKind
	}{
		{name: "ident", input: "auto", want: []tokenKind{tokIdent}},
		{name: "custom property name", input: "--foo-bar", want: []tokenKind{tokIdent}},
		{name: "dimension", input: "10px", want: []tokenKind{tokDimension}},
		{name: "percentage", input: "50%", want: []tokenKind{tokPercentage}},
		{name: "signed numbers", input: "-1 +.5", want: []tokenKind{tokNumber, tokWhitespace, tokNumber}},
		{name: "string", input: `"hello"`, want: []tokenKind{tokString}},
		{name: "hash", input: "#fff", want: []tokenKind{tokHash}},
		{name: "lone hash", input: "# ", want: []tokenKind{tokDelim, tokWhitespace}},
		{name: "function", input: "calc(1px)", want: []tokenKind{tokFunction, tokDimension, tokRParen}},
		{name: "unquoted url", input: "url(a.png)", want: []tokenKind{tokURL}},
		{name: "quoted url", input: `url("a.png")`, want: []tokenKind{tokFunction, tokString, tokRParen}},
		{name: "unicode range", input: "U+0025-00FF", want: []tokenKind{tokUnicodeRange}},
		{name: "comma and delims", input: "a,b/c", want: []tokenKind{tokIdent, tokComma, tokIdent, tokDelim, tokIdent}},
		{name: "comments are skipped", input: "a/* x */b", want: []tokenKind{tokIdent, tokIdent}},
		{name: "lone percent", input: "%", want: []tokenKind{tokDelim}},
		{name: "angle brackets", input: "<color>", want: []tokenKind{tokDelim, tokIdent, tokDelim}},
		{name: "bad string", input: "\"a\nb", want: []tokenKind{tokBadString, tokWhitespace, tokIdent}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, kinds(tokenize(tt.input)))
		})
	}
}

func TestTokenizeNumbers(t *testing.T) {
	toks := tokenize("12 1.5e2 -3.25em 40%")
	require.Len(t, toks, 7)

	assert.Equal(t, 12.0, toks[0].number)
	assert.True(t, toks[0].integer)

	assert.Equal(t, 150.0, toks[2].number)
	assert.False(t, toks[2].integer)

	assert.Equal(t, -3.25, toks[4].number)
	assert.Equal(t, "em", toks[4].value)

	assert.Equal(t, 40.0, toks[6].number)
	assert.True(t, toks[6].integer)
}

func TestTokenizeEscapes(t *testing.T) {
	toks := tokenize(`\31 0px "a\"b"`)
	require.Len(t, toks, 3)
	assert.Equal(t, tokIdent, toks[0].kind)
	assert.Equal(t, "10px", toks[0].value)
	assert.Equal(t, `a"b`, toks[2].value)
}

func TestTokenSpans(t *testing.T) {
	src := "var(--a, 1px)"
	toks := tokenize(src)
	require.NotEmpty(t, toks)
	assert.Equal(t, "var(", src[toks[0].start:toks[0].end])
	last := toks[len(toks)-1]
	assert.Equal(t, ")", src[last.start:last.end])
}

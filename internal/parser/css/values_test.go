package css_test

import (
	"errors"
	"testing"

	"bennypowers.dev/cssom/internal/parser/css"
	"bennypowers.dev/cssom/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValueConcrete(t *testing.T) {
	tests := []struct {
		input string
		kind  value.Kind
		text  string
	}{
		{input: "10px", kind: value.KindDimension, text: "10px"},
		{input: "1.5", kind: value.KindNumber, text: "1.5"},
		{input: "42", kind: value.KindInteger, text: "42"},
		{input: "50%", kind: value.KindPercentage, text: "50%"},
		{input: `"hello"`, kind: value.KindString, text: `"hello"`},
		{input: "url(a.png)", kind: value.KindURI, text: `url("a.png")`},
		{input: `url("a b.png")`, kind: value.KindURI, text: `url("a b.png")`},
		{input: "#ff0000", kind: value.KindColor, text: "#ff0000"},
		{input: "rgb(0 0 255)", kind: value.KindColor, text: "rgb(0 0 255)"},
		{input: "red", kind: value.KindIdent, text: "red"},
		{input: "U+0025-00FF", kind: value.KindUnicodeRange, text: "U+0025-00FF"},
		{input: "rotate(45deg)", kind: value.KindFunction, text: "rotate(45deg)"},
		{input: "  auto  ", kind: value.KindIdent, text: "auto"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := css.ParseValue(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, v.Kind())
			assert.Equal(t, tt.text, v.String())
		})
	}
}

func TestParseValueNumbers(t *testing.T) {
	v, err := css.ParseValue("-2.5em")
	require.NoError(t, err)
	n, ok := v.(*value.Numeric)
	require.True(t, ok)
	assert.Equal(t, -2.5, n.Value)
	assert.Equal(t, "em", n.Unit)
	assert.False(t, n.Integer)
}

func TestParseValueLists(t *testing.T) {
	t.Run("space list", func(t *testing.T) {
		v, err := css.ParseValue("10px 20px")
		require.NoError(t, err)
		list, ok := v.(*value.List)
		require.True(t, ok)
		assert.False(t, list.Comma)
		assert.Len(t, list.Items, 2)
	})

	t.Run("comma list of space lists", func(t *testing.T) {
		v, err := css.ParseValue("1px 2px, 3px")
		require.NoError(t, err)
		list, ok := v.(*value.List)
		require.True(t, ok)
		assert.True(t, list.Comma)
		require.Len(t, list.Items, 2)
		assert.Equal(t, value.KindList, list.Items[0].Kind())
		assert.Equal(t, value.KindDimension, list.Items[1].Kind())
	})

	t.Run("empty value", func(t *testing.T) {
		v, err := css.ParseValue("   ")
		require.NoError(t, err)
		list, ok := v.(*value.List)
		require.True(t, ok)
		assert.Empty(t, list.Items)
	})
}

func TestParseValueFunctions(t *testing.T) {
	v, err := css.ParseValue("calc(100% - 2px)")
	require.NoError(t, err)
	fn, ok := v.(*value.Function)
	require.True(t, ok)
	assert.Equal(t, "calc", fn.Name)
	assert.Equal(t, "100% - 2px", fn.Inner)
	require.Len(t, fn.Args, 3)
	assert.Equal(t, value.KindPercentage, fn.Args[0].Kind())
	assert.Equal(t, &value.Delim{Text: "-"}, fn.Args[1])
}

func TestParseValueDeferred(t *testing.T) {
	t.Run("var without fallback", func(t *testing.T) {
		v, err := css.ParseValue("var(--color-primary)")
		require.NoError(t, err)
		ref, ok := v.(*value.Var)
		require.True(t, ok)
		assert.Equal(t, "--color-primary", ref.Name)
		assert.Nil(t, ref.Fallback)
	})

	t.Run("var with fallback", func(t *testing.T) {
		v, err := css.ParseValue("var(--gap, 10px)")
		require.NoError(t, err)
		ref, ok := v.(*value.Var)
		require.True(t, ok)
		assert.Equal(t, &value.Numeric{Value: 10, Unit: "px", Integer: true}, ref.Fallback)
	})

	t.Run("nested var fallback", func(t *testing.T) {
		v, err := css.ParseValue("var(--a, var(--b, red))")
		require.NoError(t, err)
		ref := v.(*value.Var)
		inner, ok := ref.Fallback.(*value.Var)
		require.True(t, ok)
		assert.Equal(t, "--b", inner.Name)
	})

	t.Run("env", func(t *testing.T) {
		v, err := css.ParseValue("env(safe-area-inset-top, 20px)")
		require.NoError(t, err)
		ref, ok := v.(*value.Env)
		require.True(t, ok)
		assert.Equal(t, "safe-area-inset-top", ref.Name)
		assert.Equal(t, &value.Numeric{Value: 20, Unit: "px", Integer: true}, ref.Fallback)
	})

	t.Run("attr keeps its parameters", func(t *testing.T) {
		v, err := css.ParseValue("attr(data-x %, 10%)")
		require.NoError(t, err)
		ref, ok := v.(*value.Attr)
		require.True(t, ok)
		require.Len(t, ref.Params, 4)
		assert.Equal(t, &value.Ident{Text: "data-x"}, ref.Params[0])
		assert.Equal(t, &value.Delim{Text: "%"}, ref.Params[1])
		assert.Equal(t, &value.Delim{Text: ","}, ref.Params[2])
		assert.Equal(t, &value.Numeric{Value: 10, Unit: "%", Integer: true}, ref.Params[3])
	})

	t.Run("attr with type()", func(t *testing.T) {
		v, err := css.ParseValue("attr(data-x type(<length> | auto), 0)")
		require.NoError(t, err)
		ref := v.(*value.Attr)
		fn, ok := ref.Params[1].(*value.Function)
		require.True(t, ok)
		assert.Equal(t, "type", fn.Name)
		assert.Equal(t, "<length> | auto", fn.Inner)
	})
}

func TestParseValueErrors(t *testing.T) {
	inputs := []string{
		"calc(1px",
		"a)",
		"a; b",
		"\"open\nx",
		"var(red)",
		"var()",
		"env(1px)",
		"url(a b)",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := css.ParseValue(input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, css.ErrInvalidValue))
		})
	}
}

func TestMustParseValue(t *testing.T) {
	assert.Panics(t, func() { css.MustParseValue("(") })
	assert.Equal(t, "auto", css.MustParseValue("auto").String())
}

package color_test

import (
	"testing"

	"bennypowers.dev/cssom/internal/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("hex colors", func(t *testing.T) {
		c, err := color.Parse("#ff0000")
		require.NoError(t, err)
		assert.InDelta(t, 1.0, c.R, 0.001)
		assert.InDelta(t, 0.0, c.G, 0.001)
		assert.Equal(t, "#ff0000", c.HexString())

		_, err = color.Parse("#f00")
		assert.NoError(t, err)
	})

	t.Run("named colors ignore case", func(t *testing.T) {
		c, err := color.Parse("RebeccaPurple")
		require.NoError(t, err)
		assert.Equal(t, "#663399", c.HexString())
	})

	t.Run("color functions", func(t *testing.T) {
		c, err := color.Parse("rgb(0, 0, 255)")
		require.NoError(t, err)
		assert.InDelta(t, 1.0, c.B, 0.001)

		_, err = color.Parse("hsl(120, 100%, 50%)")
		assert.NoError(t, err)
	})

	t.Run("keywords without a fixed value", func(t *testing.T) {
		_, err := color.Parse("currentColor")
		assert.NoError(t, err)
		_, err = color.Parse("CanvasText")
		assert.NoError(t, err)
	})

	t.Run("unevaluated color functions are still colors", func(t *testing.T) {
		_, err := color.Parse("color-mix(in srgb, red 50%, blue)")
		assert.NoError(t, err)
	})

	t.Run("non colors", func(t *testing.T) {
		for _, text := range []string{"auto", "fab", "#zz", "linear-gradient(red, blue)", "10px", ""} {
			_, err := color.Parse(text)
			assert.Error(t, err, text)
		}
	})
}

func TestIsKeyword(t *testing.T) {
	assert.True(t, color.IsKeyword("red"))
	assert.True(t, color.IsKeyword("Transparent"))
	assert.True(t, color.IsKeyword("currentcolor"))
	assert.False(t, color.IsKeyword("auto"))
	assert.False(t, color.IsKeyword("safe-area-inset-top"))
}

func TestIsFunction(t *testing.T) {
	assert.True(t, color.IsFunction("rgb"))
	assert.True(t, color.IsFunction("OKLCH"))
	assert.False(t, color.IsFunction("calc"))
	assert.False(t, color.IsFunction("var"))
}

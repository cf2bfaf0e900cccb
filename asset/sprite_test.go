package asset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/flappy-term/core"
)

func TestParseSprite(t *testing.T) {
	red := core.RGB{R: 255}
	s, err := ParseSprite("arrow", []string{
		".r",
		"rr",
	}, map[rune]core.RGB{'r': red})
	require.NoError(t, err)

	assert.Equal(t, 2, s.Width)
	assert.Equal(t, 2, s.Height)
	assert.False(t, s.At(0, 0).Opaque)
	assert.Equal(t, Pixel{Color: red, Opaque: true}, s.At(1, 0))
	assert.Equal(t, Pixel{}, s.At(5, 5), "out of range is transparent")
	assert.Equal(t, Pixel{}, s.At(-1, 0))
}

func TestParseSpriteErrors(t *testing.T) {
	palette := map[rune]core.RGB{'r': {R: 1}}

	_, err := ParseSprite("empty", nil, palette)
	assert.ErrorContains(t, err, "empty art")

	_, err = ParseSprite("ragged", []string{"rr", "r"}, palette)
	assert.ErrorContains(t, err, "row 1")

	_, err = ParseSprite("unknown", []string{"rx"}, palette)
	assert.ErrorContains(t, err, "no palette entry")

	assert.Panics(t, func() { MustParseSprite("bad", nil, palette) })
}

func TestFill(t *testing.T) {
	s := Fill("slab", 3, 2, core.RGBWhite)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			assert.True(t, s.At(x, y).Opaque)
		}
	}
	assert.Equal(t, "slab", s.Name)
}

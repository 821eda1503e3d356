package qrcode

import (
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prasetyowira/qrlogo/domain/composer"
	"github.com/prasetyowira/qrlogo/infrastructure/graphics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncoder_FillsRequestedSize(t *testing.T) {
	m, err := NewEncoder().Encode("https://example.org", 450, composer.LevelH)

	require.NoError(t, err)
	assert.Equal(t, 450, m.Side())
	// quiet zone corners stay light
	assert.False(t, m.Get(0, 0))
	assert.False(t, m.Get(449, 449))
}

func TestEncoder_CentersSymbol(t *testing.T) {
	m, err := NewEncoder().Encode("https://example.org", 450, composer.LevelH)
	require.NoError(t, err)

	left, right := -1, -1
	for x := 0; x < m.Side() && left < 0; x++ {
		for y := 0; y < m.Side(); y++ {
			if m.Get(x, y) {
				left = x
				break
			}
		}
	}
	for x := m.Side() - 1; x >= 0 && right < 0; x-- {
		for y := 0; y < m.Side(); y++ {
			if m.Get(x, y) {
				right = x
				break
			}
		}
	}

	require.GreaterOrEqual(t, left, 0)
	assert.LessOrEqual(t, abs(left-(m.Side()-1-right)), 1)
}

func TestEncoder_GrowsWhenSymbolDoesNotFit(t *testing.T) {
	m, err := NewEncoder().Encode("https://example.org", 10, composer.LevelH)

	require.NoError(t, err)
	assert.Greater(t, m.Side(), 10)
}

func TestEncoder_TooLong(t *testing.T) {
	_, err := NewEncoder().Encode(strings.Repeat("x", 3000), 450, composer.LevelH)

	assert.Error(t, err)
}

func TestEncoder_LowerLevelIsSmallerSymbol(t *testing.T) {
	text := strings.Repeat("qrlogo", 20)
	low, err := NewEncoder().Encode(text, 1, composer.LevelL)
	require.NoError(t, err)
	high, err := NewEncoder().Encode(text, 1, composer.LevelH)
	require.NoError(t, err)

	assert.Less(t, low.Side(), high.Side())
}

func TestDecoder_RoundTrip(t *testing.T) {
	for _, level := range []composer.Level{composer.LevelL, composer.LevelM, composer.LevelQ, composer.LevelH} {
		m, err := NewEncoder().Encode("https://example.org/path?q=1", 450, level)
		require.NoError(t, err)

		text, err := NewDecoder(true).Decode(graphics.RenderMatrix(m))

		require.NoError(t, err, level.String())
		assert.Equal(t, "https://example.org/path?q=1", text)
	}
}

func TestDecoder_NotFound(t *testing.T) {
	_, err := NewDecoder(false).Decode(graphics.NewCanvas(200))

	assert.ErrorIs(t, err, composer.ErrCodeNotFound)
}

func TestDecoder_NilImage(t *testing.T) {
	_, err := NewDecoder(false).Decode(nil)

	assert.Error(t, err)
	assert.NotErrorIs(t, err, composer.ErrCodeNotFound)
}

func TestDecoder_DecodeFile(t *testing.T) {
	m, err := NewEncoder().Encode("file round trip", 300, composer.LevelM)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "qr.png")
	require.NoError(t, graphics.SavePNG(graphics.RenderMatrix(m), path))

	text, err := NewDecoder(true).DecodeFile(path)

	require.NoError(t, err)
	assert.Equal(t, "file round trip", text)

	_, err = NewDecoder(true).DecodeFile(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestDecoder_StripedImageIsNotACode(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 120, 120))
	for y := 0; y < 120; y++ {
		for x := 0; x < 120; x++ {
			if (x/6)%2 == 0 {
				img.SetGray(x, y, color.Gray{})
			} else {
				img.SetGray(x, y, color.Gray{Y: 0xff})
			}
		}
	}

	_, err := NewDecoder(false).Decode(img)

	assert.Error(t, err)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

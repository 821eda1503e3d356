package composer

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/prasetyowira/qrlogo/constant"
	"github.com/prasetyowira/qrlogo/infrastructure/graphics"
	"github.com/prasetyowira/qrlogo/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// Mock encoder for testing
type MockEncoder struct {
	mock.Mock
}

func (m *MockEncoder) Encode(text string, size int, level Level) (*Matrix, error) {
	args := m.Called(text, size, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Matrix), args.Error(1)
}

// Mock decoder for testing
type MockDecoder struct {
	mock.Mock
}

func (m *MockDecoder) Decode(img image.Image) (string, error) {
	args := m.Called(img)
	return args.String(0), args.Error(1)
}

var red = color.RGBA{R: 0xff, A: 0xff}

func squareMatrix(t *testing.T, side int, dark func(x, y int) bool) *Matrix {
	t.Helper()
	rows := make([][]bool, side)
	for y := range rows {
		rows[y] = make([]bool, side)
		for x := range rows[y] {
			rows[y][x] = dark(x, y)
		}
	}
	m, err := NewMatrix(rows)
	require.NoError(t, err)
	return m
}

func checkerboard(t *testing.T, side int) *Matrix {
	return squareMatrix(t, side, func(x, y int) bool { return (x/10+y/10)%2 == 0 })
}

func blank(t *testing.T, side int) *Matrix {
	return squareMatrix(t, side, func(x, y int) bool { return false })
}

func writeLogo(t *testing.T, dir string, w, h int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(dir, "logo.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func readPNG(t *testing.T, path string) image.Image {
	t.Helper()
	img, err := graphics.LoadImage(path)
	require.NoError(t, err)
	return img
}

func sameColor(a, b color.Color) bool {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

func observeLogs(t *testing.T) *observer.ObservedLogs {
	core, logs := observer.New(zapcore.DebugLevel)
	logger.SetLogger(zap.New(core))
	t.Cleanup(func() { logger.SetLogger(nil) })
	return logs
}

func TestNew_AppliesDefaults(t *testing.T) {
	c := New(new(MockEncoder), new(MockDecoder), Options{})

	assert.Equal(t, 450, c.Options().Size)
	assert.Equal(t, 18.0, c.Options().CaptionFontSize)
}

func TestComposePlain_InvalidExtension(t *testing.T) {
	encoder := new(MockEncoder)
	c := New(encoder, new(MockDecoder), DefaultOptions())
	out := filepath.Join(t.TempDir(), "qr.jpg")

	ok, err := c.ComposePlain(context.Background(), "https://example.org", out)

	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.NoFileExists(t, out)
	encoder.AssertNotCalled(t, "Encode", mock.Anything, mock.Anything, mock.Anything)
}

func TestComposeWithLogo_InvalidExtension(t *testing.T) {
	encoder := new(MockEncoder)
	c := New(encoder, new(MockDecoder), DefaultOptions())
	dir := t.TempDir()
	logo := writeLogo(t, dir, 20, 20, red)
	out := filepath.Join(dir, "qr.gif")

	ok, err := c.ComposeWithLogo(context.Background(), logo, "https://example.org", out, false)

	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.NoFileExists(t, out)
	assert.NoFileExists(t, BrokenPath(out))
}

func TestComposePlain_EmptyText(t *testing.T) {
	c := New(new(MockEncoder), new(MockDecoder), DefaultOptions())

	ok, err := c.ComposePlain(context.Background(), "", filepath.Join(t.TempDir(), "qr.png"))

	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestComposePlain_EncodingFailed(t *testing.T) {
	encoder := new(MockEncoder)
	encoder.On("Encode", "too long", 450, LevelH).Return(nil, errors.New("content too long to encode"))
	c := New(encoder, new(MockDecoder), DefaultOptions())
	out := filepath.Join(t.TempDir(), "qr.png")

	ok, err := c.ComposePlain(context.Background(), "too long", out)

	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrEncodingFailed)
	assert.NoFileExists(t, out)
	encoder.AssertExpectations(t)
}

func TestComposePlain_WritesMatrixPixels(t *testing.T) {
	matrix := checkerboard(t, 60)
	encoder := new(MockEncoder)
	encoder.On("Encode", "hello", 60, LevelH).Return(matrix, nil)
	decoder := new(MockDecoder)
	c := New(encoder, decoder, Options{Size: 60})
	out := filepath.Join(t.TempDir(), "qr.PNG")

	ok, err := c.ComposePlain(context.Background(), "hello", out)

	require.NoError(t, err)
	assert.True(t, ok)
	img := readPNG(t, out)
	assert.Equal(t, 60, img.Bounds().Dx())
	for _, p := range []image.Point{{0, 0}, {10, 0}, {15, 25}, {59, 59}} {
		want := color.Color(color.White)
		if matrix.Get(p.X, p.Y) {
			want = color.Black
		}
		assert.True(t, sameColor(want, img.At(p.X, p.Y)), "pixel %v", p)
	}
	decoder.AssertNotCalled(t, "Decode", mock.Anything)
}

func TestComposeWithLogo_LogoLoadFailed(t *testing.T) {
	encoder := new(MockEncoder)
	c := New(encoder, new(MockDecoder), DefaultOptions())
	dir := t.TempDir()
	notAnImage := filepath.Join(dir, "logo.jpg")
	require.NoError(t, os.WriteFile(notAnImage, []byte("not an image"), 0o644))

	for _, logo := range []string{filepath.Join(dir, "missing.png"), notAnImage} {
		ok, err := c.ComposeWithLogo(context.Background(), logo, "https://example.org", filepath.Join(dir, "qr.png"), false)

		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrLogoLoadFailed)
	}
	encoder.AssertNotCalled(t, "Encode", mock.Anything, mock.Anything, mock.Anything)
}

func TestComposeWithLogo_VerifiedWritesOutput(t *testing.T) {
	encoder := new(MockEncoder)
	encoder.On("Encode", "https://example.org", 450, LevelH).Return(checkerboard(t, 450), nil)
	decoder := new(MockDecoder)
	decoder.On("Decode", mock.Anything).Return("https://example.org", nil)
	c := New(encoder, decoder, DefaultOptions())
	dir := t.TempDir()
	out := filepath.Join(dir, "qr.png")

	ok, err := c.ComposeWithLogo(context.Background(), writeLogo(t, dir, 40, 40, red), "https://example.org", out, false)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.FileExists(t, out)
	assert.NoFileExists(t, BrokenPath(out))
	decoder.AssertExpectations(t)
}

func TestComposeWithLogo_VerificationFailures(t *testing.T) {
	tests := []struct {
		name    string
		decoded string
		err     error
	}{
		{name: "mismatch", decoded: "https://example.com"},
		{name: "not found", err: ErrCodeNotFound},
		{name: "decoder fault", err: errors.New("checksum error")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoder := new(MockEncoder)
			encoder.On("Encode", "https://example.org", 450, LevelH).Return(checkerboard(t, 450), nil)
			decoder := new(MockDecoder)
			decoder.On("Decode", mock.Anything).Return(tt.decoded, tt.err)
			c := New(encoder, decoder, DefaultOptions())
			dir := t.TempDir()
			out := filepath.Join(dir, "qr.png")

			ok, err := c.ComposeWithLogo(context.Background(), writeLogo(t, dir, 40, 40, red), "https://example.org", out, true)

			assert.NoError(t, err)
			assert.False(t, ok)
			assert.NoFileExists(t, out)
			assert.FileExists(t, filepath.Join(dir, "qr-broken.png"))
		})
	}
}

func TestComposeWithLogo_DecoderFaultIsLogged(t *testing.T) {
	logs := observeLogs(t)
	encoder := new(MockEncoder)
	encoder.On("Encode", "https://example.org", 450, LevelH).Return(checkerboard(t, 450), nil)
	decoder := new(MockDecoder)
	decoder.On("Decode", mock.Anything).Return("", errors.New("format error"))
	c := New(encoder, decoder, DefaultOptions())
	dir := t.TempDir()

	ok, err := c.ComposeWithLogo(context.Background(), writeLogo(t, dir, 40, 40, red), "https://example.org", filepath.Join(dir, "qr.png"), false)

	assert.NoError(t, err)
	assert.False(t, ok)
	faults := logs.FilterField(zap.String(constant.LogErrorCodeKey, constant.ErrCodeDecodeInconclusive))
	assert.Equal(t, 1, faults.Len())
}

func TestComposeWithLogo_SmallLogoCenteredUnscaled(t *testing.T) {
	encoder := new(MockEncoder)
	encoder.On("Encode", "x", 450, LevelH).Return(checkerboard(t, 450), nil)
	decoder := new(MockDecoder)
	decoder.On("Decode", mock.Anything).Return("x", nil)
	c := New(encoder, decoder, DefaultOptions())
	dir := t.TempDir()
	out := filepath.Join(dir, "qr.png")

	ok, err := c.ComposeWithLogo(context.Background(), writeLogo(t, dir, 41, 30, red), "x", out, false)
	require.NoError(t, err)
	require.True(t, ok)

	img := readPNG(t, out)
	// 450/2 - 41/2 = 205, 450/2 - 30/2 = 210
	assert.True(t, sameColor(red, img.At(205, 210)))
	assert.True(t, sameColor(red, img.At(245, 239)))
	assert.False(t, sameColor(red, img.At(204, 210)))
	assert.False(t, sameColor(red, img.At(246, 239)))
	assert.False(t, sameColor(red, img.At(205, 209)))
	assert.False(t, sameColor(red, img.At(205, 240)))
}

func TestComposeWithLogo_WideLogoScaledToHalfWidth(t *testing.T) {
	encoder := new(MockEncoder)
	encoder.On("Encode", "x", 450, LevelH).Return(checkerboard(t, 450), nil)
	decoder := new(MockDecoder)
	decoder.On("Decode", mock.Anything).Return("x", nil)
	c := New(encoder, decoder, DefaultOptions())
	dir := t.TempDir()
	out := filepath.Join(dir, "qr.png")

	ok, err := c.ComposeWithLogo(context.Background(), writeLogo(t, dir, 900, 100, red), "x", out, false)
	require.NoError(t, err)
	require.True(t, ok)

	// scale 0.25 -> 225x25 logo at (113, 213)
	img := readPNG(t, out)
	assert.True(t, sameColor(red, img.At(113, 213)))
	assert.True(t, sameColor(red, img.At(337, 237)))
	assert.False(t, sameColor(red, img.At(112, 220)))
	assert.False(t, sameColor(red, img.At(338, 220)))
	assert.False(t, sameColor(red, img.At(200, 238)))
}

func TestComposeWithLogo_CaptionDrawnNearBottom(t *testing.T) {
	run := func(t *testing.T, caption bool) image.Image {
		encoder := new(MockEncoder)
		encoder.On("Encode", "https://example.org", 450, LevelH).Return(blank(t, 450), nil)
		decoder := new(MockDecoder)
		decoder.On("Decode", mock.Anything).Return("https://example.org", nil)
		c := New(encoder, decoder, DefaultOptions())
		dir := t.TempDir()
		out := filepath.Join(dir, "qr.png")

		ok, err := c.ComposeWithLogo(context.Background(), writeLogo(t, dir, 2, 2, color.White), "https://example.org", out, caption)
		require.NoError(t, err)
		require.True(t, ok)
		return readPNG(t, out)
	}

	countInk := func(img image.Image) int {
		n := 0
		for y := 400; y < 450; y++ {
			for x := 0; x < 450; x++ {
				if !sameColor(color.White, img.At(x, y)) {
					n++
				}
			}
		}
		return n
	}

	assert.Greater(t, countInk(run(t, true)), 100)
	assert.Zero(t, countInk(run(t, false)))
}

func TestBrokenPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/tmp/qr.png", "/tmp/qr-broken.png"},
		{"/tmp/images.png/qr.png", "/tmp/images.png/qr-broken.png"},
		{"/tmp/QR.PNG", "/tmp/QR-broken.png"},
		{"qr.png", "qr-broken.png"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BrokenPath(tt.in), tt.in)
	}
}

func TestHasPNGExtension(t *testing.T) {
	assert.True(t, HasPNGExtension("/tmp/a.png"))
	assert.True(t, HasPNGExtension("/tmp/a.Png"))
	assert.False(t, HasPNGExtension("/tmp/a.png.jpg"))
	assert.False(t, HasPNGExtension("/tmp/png"))
	assert.False(t, HasPNGExtension(""))
}

func TestNewMatrix(t *testing.T) {
	_, err := NewMatrix(nil)
	assert.Error(t, err)

	_, err = NewMatrix([][]bool{{true, false}, {true}})
	assert.Error(t, err)

	m, err := NewMatrix([][]bool{{true, false}, {false, false}})
	require.NoError(t, err)
	assert.Equal(t, 2, m.Side())
	assert.True(t, m.Get(0, 0))
	assert.False(t, m.Get(1, 0))
	assert.False(t, m.Get(5, 5))
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "H", LevelH.String())
	assert.Equal(t, "L", LevelL.String())
	assert.Equal(t, "Level(9)", Level(9).String())
}

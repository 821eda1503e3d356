// Package graphics holds the pixel work behind QR composition: canvas
// painting, caption text, logo loading, scaling and compositing, PNG output.
package graphics

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Bitmap is a square grid of dark/light cells
type Bitmap interface {
	Side() int
	Get(x, y int) bool
}

// NewCanvas returns an opaque white square canvas
func NewCanvas(side int) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return canvas
}

// PaintMatrix paints every dark cell of m black, one cell per pixel.
// Cells outside the canvas are ignored.
func PaintMatrix(canvas *image.RGBA, m Bitmap) {
	side := m.Side()
	black := color.RGBA{A: 0xff}
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			if m.Get(x, y) {
				canvas.SetRGBA(x, y, black)
			}
		}
	}
}

// RenderMatrix returns a fresh canvas holding m
func RenderMatrix(m Bitmap) *image.RGBA {
	canvas := NewCanvas(m.Side())
	PaintMatrix(canvas, m)
	return canvas
}

// LoadImage decodes the image at path. JPEG, PNG, GIF, BMP, TIFF and WebP are
// accepted; EXIF orientation is applied.
func LoadImage(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrapf(err, "open image %s", path)
	}
	return img, nil
}

// SavePNG writes img to path as PNG
func SavePNG(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return errors.Wrapf(err, "save png %s", path)
	}
	return nil
}

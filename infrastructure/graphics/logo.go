package graphics

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// ScaleFactor returns the factor that brings a logo to half the canvas width,
// never above 1 so small logos are not upscaled.
func ScaleFactor(logoWidth, canvasWidth int) float64 {
	if logoWidth <= 0 || canvasWidth <= 0 {
		return 1
	}
	scale := 0.5 / (float64(logoWidth) / float64(canvasWidth))
	if scale > 1 {
		scale = 1
	}
	return scale
}

// Scale resamples img by factor with bilinear interpolation. The result is at
// least one pixel on each side.
func Scale(img image.Image, factor float64) image.Image {
	b := img.Bounds()
	w := int(float64(b.Dx()) * factor)
	h := int(float64(b.Dy()) * factor)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// CenterOffset is where an inner span starts when centered in an outer span
func CenterOffset(outer, inner int) int {
	return outer/2 - inner/2
}

// CompositeCentered places logo in the middle of canvas and returns the
// covered rectangle. Everything under the footprint is replaced: the area is
// cleared to white and the logo is drawn onto it, so transparent logo pixels
// come out white rather than showing the modules beneath.
func CompositeCentered(canvas draw.Image, logo image.Image) image.Rectangle {
	cb := canvas.Bounds()
	lb := logo.Bounds()

	x := cb.Min.X + CenterOffset(cb.Dx(), lb.Dx())
	y := cb.Min.Y + CenterOffset(cb.Dy(), lb.Dy())
	footprint := image.Rect(x, y, x+lb.Dx(), y+lb.Dy())

	draw.Draw(canvas, footprint, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(canvas, footprint, logo, lb.Min, draw.Over)

	return footprint.Intersect(cb)
}

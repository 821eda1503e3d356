package graphics

import (
	"image"
	"image/color"
	"sync"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var (
	faceMu    sync.Mutex
	faceCache = map[float64]font.Face{}
	regular   *opentype.Font
)

// DrawCaption writes text in black Go Regular at size points, centered
// horizontally with its baseline size pixels above the bottom edge.
func DrawCaption(canvas *image.RGBA, text string, size float64) error {
	face, err := sansFace(size)
	if err != nil {
		return err
	}

	b := canvas.Bounds()
	dc := gg.NewContextForRGBA(canvas)

	// font.Face values are not safe for concurrent use
	faceMu.Lock()
	defer faceMu.Unlock()

	dc.SetFontFace(face)
	dc.SetColor(color.Black)
	width, _ := dc.MeasureString(text)
	x := (float64(b.Dx()) - width) / 2
	y := float64(b.Dy()) - size
	dc.DrawString(text, x, y)
	return nil
}

// sansFace returns the cached Go Regular face for size
func sansFace(size float64) (font.Face, error) {
	faceMu.Lock()
	defer faceMu.Unlock()

	if face, ok := faceCache[size]; ok {
		return face, nil
	}

	if regular == nil {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			return nil, errors.Wrap(err, "parse goregular")
		}
		regular = f
	}

	face, err := opentype.NewFace(regular, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "create face size=%.1f", size)
	}

	faceCache[size] = face
	return face, nil
}

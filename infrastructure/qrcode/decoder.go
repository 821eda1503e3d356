package qrcode

import (
	"image"

	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/pkg/errors"
	"github.com/prasetyowira/qrlogo/domain/composer"
	"github.com/prasetyowira/qrlogo/infrastructure/graphics"
)

// Decoder reads QR codes with github.com/makiuchi-d/gozxing
type Decoder struct {
	hints map[gozxing.DecodeHintType]interface{}
}

// NewDecoder creates a decoder. tryHarder trades speed for accuracy.
func NewDecoder(tryHarder bool) *Decoder {
	hints := map[gozxing.DecodeHintType]interface{}{}
	if tryHarder {
		hints[gozxing.DecodeHintType_TRY_HARDER] = true
	}
	return &Decoder{hints: hints}
}

// Decode returns the text held by the QR code in img, or
// composer.ErrCodeNotFound when none can be located.
func (d *Decoder) Decode(img image.Image) (string, error) {
	if img == nil {
		return "", errors.New("can't decode a nil image")
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", errors.Wrap(err, "create binary bitmap")
	}

	result, err := zxqrcode.NewQRCodeReader().Decode(bmp, d.hints)
	if err != nil {
		var notFound gozxing.NotFoundException
		if errors.As(err, &notFound) {
			return "", composer.ErrCodeNotFound
		}
		return "", errors.Wrap(err, "decode qr code")
	}

	return result.GetText(), nil
}

// DecodeFile loads the image at path and decodes it
func (d *Decoder) DecodeFile(path string) (string, error) {
	img, err := graphics.LoadImage(path)
	if err != nil {
		return "", err
	}
	return d.Decode(img)
}

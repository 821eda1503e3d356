// Package qrcode adapts third-party QR libraries to the composer's Encoder
// and Decoder interfaces.
package qrcode

import (
	"github.com/pkg/errors"
	"github.com/prasetyowira/qrlogo/domain/composer"
	goqrcode "github.com/skip2/go-qrcode"
)

// Encoder renders QR symbols with github.com/skip2/go-qrcode
type Encoder struct{}

// NewEncoder creates a new QR code encoder
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Encode renders text into a size x size matrix. The symbol and its 4-module
// quiet zone are scaled by the largest whole module size that fits and
// centered; any leftover cells stay light. When the symbol does not fit,
// the matrix is as large as the unscaled symbol.
func (e *Encoder) Encode(text string, size int, level composer.Level) (*composer.Matrix, error) {
	q, err := goqrcode.New(text, recoveryLevel(level))
	if err != nil {
		return nil, errors.Wrap(err, "encode qr code")
	}

	bitmap := q.Bitmap()
	modules := len(bitmap)

	side := size
	if side < modules {
		side = modules
	}
	multiple := side / modules
	padding := (side - modules*multiple) / 2

	rows := make([][]bool, side)
	for i := range rows {
		rows[i] = make([]bool, side)
	}

	for y, line := range bitmap {
		for x, dark := range line {
			if !dark {
				continue
			}
			top := padding + y*multiple
			left := padding + x*multiple
			for dy := 0; dy < multiple; dy++ {
				for dx := 0; dx < multiple; dx++ {
					rows[top+dy][left+dx] = true
				}
			}
		}
	}

	return composer.NewMatrix(rows)
}

func recoveryLevel(level composer.Level) goqrcode.RecoveryLevel {
	switch level {
	case composer.LevelL:
		return goqrcode.Low
	case composer.LevelM:
		return goqrcode.Medium
	case composer.LevelQ:
		return goqrcode.High
	default:
		return goqrcode.Highest
	}
}

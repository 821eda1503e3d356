package composer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/prasetyowira/qrlogo/constant"
	"github.com/prasetyowira/qrlogo/infrastructure/graphics"
	"github.com/prasetyowira/qrlogo/infrastructure/logger"
)

// Encoder turns text into a Matrix of at least size x size cells
type Encoder interface {
	Encode(text string, size int, level Level) (*Matrix, error)
}

// Decoder reads the text of a QR code from an image. It returns
// ErrCodeNotFound when the image holds no readable code.
type Decoder interface {
	Decode(img image.Image) (string, error)
}

// Options configures a Composer
type Options struct {
	// Size is the side of the generated image in pixels
	Size int
	// CaptionFontSize is the caption size in points
	CaptionFontSize float64
}

// DefaultOptions returns a 450px canvas with an 18pt caption
func DefaultOptions() Options {
	return Options{
		Size:            450,
		CaptionFontSize: 18,
	}
}

// Composer generates QR code PNGs, optionally with a centered logo
type Composer struct {
	encoder Encoder
	decoder Decoder
	opts    Options
}

// New creates a Composer. Zero option fields take their default values.
func New(encoder Encoder, decoder Decoder, opts Options) *Composer {
	defaults := DefaultOptions()
	if opts.Size <= 0 {
		opts.Size = defaults.Size
	}
	if opts.CaptionFontSize <= 0 {
		opts.CaptionFontSize = defaults.CaptionFontSize
	}

	logger.Debug("Creating QR composer", logger.LoggerInfo{
		ContextFunction: constant.CtxComposer,
		Data: map[string]interface{}{
			constant.DataSize: opts.Size,
		},
	})

	return &Composer{
		encoder: encoder,
		decoder: decoder,
		opts:    opts,
	}
}

// Options returns the effective options
func (c *Composer) Options() Options {
	return c.opts
}

// ComposePlain writes text as a black and white QR code PNG to outputPath.
func (c *Composer) ComposePlain(ctx context.Context, text, outputPath string) (bool, error) {
	logger.CtxDebug(ctx, "Composing plain QR code", logger.LoggerInfo{
		ContextFunction: constant.CtxComposePlain,
		Data: map[string]interface{}{
			constant.DataText:       text,
			constant.DataOutputPath: outputPath,
		},
	})

	if err := validate(ctx, constant.CtxComposePlain, text, outputPath); err != nil {
		return false, err
	}

	matrix, err := c.encode(ctx, constant.CtxComposePlain, text)
	if err != nil {
		return false, err
	}

	if err := c.write(ctx, constant.CtxComposePlain, graphics.RenderMatrix(matrix), outputPath); err != nil {
		return false, err
	}

	logger.CtxInfo(ctx, constant.MsgQRCodeGenerated, logger.LoggerInfo{
		ContextFunction: constant.CtxComposePlain,
		Data: map[string]interface{}{
			constant.DataOutputPath: outputPath,
			constant.DataSize:       matrix.Side(),
		},
	})

	return true, nil
}

// ComposeWithLogo writes text as a QR code with the logo at logoPath centered
// on it. When printCaption is set the text is also printed under the code.
//
// The result is decoded before writing. If it reads back as text the PNG goes
// to outputPath and true is returned. Otherwise the image is written to
// BrokenPath(outputPath) and false is returned with a nil error.
func (c *Composer) ComposeWithLogo(ctx context.Context, logoPath, text, outputPath string, printCaption bool) (bool, error) {
	logger.CtxDebug(ctx, "Composing QR code with logo", logger.LoggerInfo{
		ContextFunction: constant.CtxComposeWithLogo,
		Data: map[string]interface{}{
			constant.DataText:       text,
			constant.DataLogoPath:   logoPath,
			constant.DataOutputPath: outputPath,
			constant.DataCaption:    printCaption,
		},
	})

	if err := validate(ctx, constant.CtxComposeWithLogo, text, outputPath); err != nil {
		return false, err
	}

	logo, err := graphics.LoadImage(logoPath)
	if err != nil {
		logger.CtxWarn(ctx, "Failed to load logo", logger.LoggerInfo{
			ContextFunction: constant.CtxComposeWithLogo,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeLogoLoad,
				Message: err.Error(),
				Type:    constant.ErrTypeInput,
			},
			Data: map[string]interface{}{
				constant.DataLogoPath: logoPath,
			},
		})
		return false, fmt.Errorf("%w: %w", ErrLogoLoadFailed, err)
	}

	matrix, err := c.encode(ctx, constant.CtxComposeWithLogo, text)
	if err != nil {
		return false, err
	}

	canvas := graphics.NewCanvas(matrix.Side())
	if printCaption {
		// Caption goes down first so code pixels stay on top of it
		if err := graphics.DrawCaption(canvas, text, c.opts.CaptionFontSize); err != nil {
			return false, err
		}
	}
	graphics.PaintMatrix(canvas, matrix)

	scale := graphics.ScaleFactor(logo.Bounds().Dx(), canvas.Bounds().Dx())
	if scale < 1 {
		logo = graphics.Scale(logo, scale)
	}
	graphics.CompositeCentered(canvas, logo)

	logger.CtxDebug(ctx, "Logo composited", logger.LoggerInfo{
		ContextFunction: constant.CtxComposeWithLogo,
		Data: map[string]interface{}{
			constant.DataScale:      scale,
			constant.DataLogoWidth:  logo.Bounds().Dx(),
			constant.DataLogoHeight: logo.Bounds().Dy(),
		},
	})

	if !c.verify(ctx, text, canvas) {
		brokenPath := BrokenPath(outputPath)
		if err := c.write(ctx, constant.CtxComposeWithLogo, canvas, brokenPath); err != nil {
			return false, err
		}

		logger.CtxWarn(ctx, constant.MsgQRCodeBroken, logger.LoggerInfo{
			ContextFunction: constant.CtxComposeWithLogo,
			Data: map[string]interface{}{
				constant.DataOutputPath:  outputPath,
				constant.DataWrittenPath: brokenPath,
			},
		})
		return false, nil
	}

	if err := c.write(ctx, constant.CtxComposeWithLogo, canvas, outputPath); err != nil {
		return false, err
	}

	logger.CtxInfo(ctx, constant.MsgQRCodeGenerated, logger.LoggerInfo{
		ContextFunction: constant.CtxComposeWithLogo,
		Data: map[string]interface{}{
			constant.DataOutputPath: outputPath,
			constant.DataSize:       matrix.Side(),
		},
	})

	return true, nil
}

// verify reports whether img decodes to exactly text. Decoder faults count as
// a failed verification.
func (c *Composer) verify(ctx context.Context, text string, img image.Image) bool {
	decoded, err := c.decoder.Decode(img)
	switch {
	case err == nil:
	case errors.Is(err, ErrCodeNotFound):
		logger.CtxInfo(ctx, "No QR code found while verifying", logger.LoggerInfo{
			ContextFunction: constant.CtxVerify,
		})
		return false
	default:
		logger.CtxError(ctx, "Exception occurred while decoding", logger.LoggerInfo{
			ContextFunction: constant.CtxVerify,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeDecodeInconclusive,
				Message: fmt.Errorf("%w: %w", ErrDecodingInconclusive, err).Error(),
				Type:    constant.ErrTypeVerification,
			},
		})
		return false
	}

	if decoded != text {
		logger.CtxWarn(ctx, "Decoded text does not match", logger.LoggerInfo{
			ContextFunction: constant.CtxVerify,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeVerifyMismatch,
				Message: "decoded text differs from input",
				Type:    constant.ErrTypeVerification,
			},
			Data: map[string]interface{}{
				constant.DataText:    text,
				constant.DataDecoded: decoded,
			},
		})
		return false
	}

	return true
}

func (c *Composer) encode(ctx context.Context, fn, text string) (*Matrix, error) {
	matrix, err := c.encoder.Encode(text, c.opts.Size, LevelH)
	if err != nil {
		logger.CtxError(ctx, "Failed to encode text", logger.LoggerInfo{
			ContextFunction: fn,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeEncode,
				Message: err.Error(),
				Type:    constant.ErrTypeEncoding,
			},
			Data: map[string]interface{}{
				constant.DataText: text,
			},
		})
		return nil, fmt.Errorf("%w: %w", ErrEncodingFailed, err)
	}
	return matrix, nil
}

func (c *Composer) write(ctx context.Context, fn string, img image.Image, path string) error {
	if err := graphics.SavePNG(img, path); err != nil {
		logger.CtxError(ctx, "Failed to write PNG", logger.LoggerInfo{
			ContextFunction: fn,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeWritePNG,
				Message: err.Error(),
				Type:    constant.ErrTypeOutput,
			},
			Data: map[string]interface{}{
				constant.DataOutputPath: path,
			},
		})
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}

func validate(ctx context.Context, fn, text, outputPath string) error {
	if !HasPNGExtension(outputPath) {
		logger.CtxWarn(ctx, constant.ErrInvalidOutputPath, logger.LoggerInfo{
			ContextFunction: fn,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeInvalidOutputPath,
				Message: constant.ErrInvalidOutputPath,
				Type:    constant.ErrTypeValidation,
			},
			Data: map[string]interface{}{
				constant.DataOutputPath: outputPath,
			},
		})
		return fmt.Errorf("%w: %s", ErrInvalidArgument, constant.ErrInvalidOutputPath)
	}

	if text == "" {
		logger.CtxWarn(ctx, constant.ErrEmptyText, logger.LoggerInfo{
			ContextFunction: fn,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeEmptyText,
				Message: constant.ErrEmptyText,
				Type:    constant.ErrTypeValidation,
			},
		})
		return fmt.Errorf("%w: %s", ErrInvalidArgument, constant.ErrEmptyText)
	}

	return nil
}

// HasPNGExtension reports whether path ends in .png, ignoring case
func HasPNGExtension(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), constant.PNGExtension)
}

// BrokenPath is where an image that failed verification is written. Only the
// final extension is replaced: /a.png/qr.png becomes /a.png/qr-broken.png.
func BrokenPath(outputPath string) string {
	stem := strings.TrimSuffix(outputPath, filepath.Ext(outputPath))
	return stem + constant.BrokenSuffix + constant.PNGExtension
}

package composer

import (
	"errors"

	"github.com/prasetyowira/qrlogo/constant"
)

var (
	// ErrInvalidArgument is returned for a non-PNG output path or empty text.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrLogoLoadFailed is returned when the logo file cannot be read or decoded.
	ErrLogoLoadFailed = errors.New(constant.ErrLogoLoad)
	// ErrEncodingFailed is returned when the encoder rejects the text.
	ErrEncodingFailed = errors.New(constant.ErrEncoding)
	// ErrWriteFailed is returned when the PNG cannot be written.
	ErrWriteFailed = errors.New("png could not be written")

	// ErrDecodingInconclusive marks a decoder fault other than "no code found".
	// It is logged during verification and never returned by the compose calls.
	ErrDecodingInconclusive = errors.New(constant.ErrDecodingInconclusive)
	// ErrCodeNotFound is what a Decoder returns when the image holds no readable code.
	ErrCodeNotFound = errors.New(constant.ErrCodeNotFound)
)

package qrcode

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/skip2/go-qrcode"
)

const (
	DefaultSize = 256
	MaxSize     = 2048
)

var (
	ErrEmptyContent  = errors.New("qrcode: content is empty")
	ErrInvalidSize   = errors.New("qrcode: size out of range")
	ErrEncodeFailure = errors.New("qrcode: encode failed")
)

// Generate returns a square PNG of size pixels. A size of 0 means DefaultSize.
func Generate(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}
	if size == 0 {
		size = DefaultSize
	}
	if size < 0 || size > MaxSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, errors.Join(ErrEncodeFailure, err)
	}
	return png, nil
}

// GenerateBase64Image is Generate encoded as a data:image/png URI.
func GenerateBase64Image(content string, size int) (string, error) {
	png, err := Generate(content, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

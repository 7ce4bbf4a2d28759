package qrcode

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

const (
	DefaultScale  = 2
	dataURIPrefix = "data:image/png;base64,"
)

// Encoder renders QR symbols as PNG images. Each module of the symbol is
// drawn as a Scale x Scale pixel square.
type Encoder struct {
	Scale int
	Level qr.ErrorCorrectionLevel
}

func New(scale int) *Encoder {
	if scale <= 0 {
		scale = DefaultScale
	}
	return &Encoder{Scale: scale, Level: qr.M}
}

// PNG encodes content into a QR symbol and returns the PNG bytes.
// It fails when content does not fit into the largest symbol version.
func (e *Encoder) PNG(content string) ([]byte, error) {
	if content == "" {
		return nil, fmt.Errorf("qrcode: empty content")
	}

	code, err := qr.Encode(content, e.Level, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("qrcode: encode: %w", err)
	}

	size := code.Bounds().Dx() * e.Scale
	scaled, err := barcode.Scale(code, size, size)
	if err != nil {
		return nil, fmt.Errorf("qrcode: scale: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("qrcode: png: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURI renders content and wraps the PNG in a base64 data URI so it can be
// stored in a JSON document and dropped into an <img> tag as is.
func (e *Encoder) DataURI(content string) (string, error) {
	img, err := e.PNG(content)
	if err != nil {
		return "", err
	}
	return dataURIPrefix + base64.StdEncoding.EncodeToString(img), nil
}

// DecodeDataURI returns the PNG bytes held in a data URI produced by DataURI.
func DecodeDataURI(uri string) ([]byte, error) {
	if len(uri) < len(dataURIPrefix) || uri[:len(dataURIPrefix)] != dataURIPrefix {
		return nil, fmt.Errorf("qrcode: not a png data uri")
	}
	return base64.StdEncoding.DecodeString(uri[len(dataURIPrefix):])
}

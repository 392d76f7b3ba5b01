package qr

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const pngSize = 256

// Encoder renders payload strings into PNG QR codes embedded in data URIs.
type Encoder struct{}

// NewEncoder creates a new QR encoder
func NewEncoder() *Encoder {
	return &Encoder{}
}

// DataURL encodes the payload into a QR PNG and returns it as a
// data:image/png;base64 URI suitable for direct embedding.
func (e *Encoder) DataURL(payload string) (string, error) {
	png, err := qrcode.Encode(payload, qrcode.Medium, pngSize)
	if err != nil {
		return "", fmt.Errorf("failed to encode QR code: %w", err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

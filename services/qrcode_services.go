package services

import (
	"fmt"

	"api/config"

	"github.com/skip2/go-qrcode"
)

// GenerateEventQRCode renders a PNG QR code pointing at the event's public
// page
func GenerateEventQRCode(slug string, size int) ([]byte, error) {
	eventURL := fmt.Sprintf("%s/events/%s", config.ClientUrl, slug)

	png, err := qrcode.Encode(eventURL, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}
	return png, nil
}

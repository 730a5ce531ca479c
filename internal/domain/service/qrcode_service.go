package service

// QRCodeService defines the interface for QR code image generation.
type QRCodeService interface {
	// GeneratePNG renders the payload as a PNG QR code image.
	GeneratePNG(payload string) ([]byte, error)
}

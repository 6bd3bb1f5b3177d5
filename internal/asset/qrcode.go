package asset

import (
	"errors"

	"github.com/rook-computer/softfb/internal/raster"
	"github.com/skip2/go-qrcode"
)

const defaultQRCodeSizePx = 256

var ErrEmptyPayload = errors.New("asset: empty QR code payload")

// QRCode renders payload as a black on white QR code of about sizePx square.
func QRCode(payload string, sizePx int) (raster.Bitmap, error) {
	if payload == "" {
		return raster.Bitmap{}, ErrEmptyPayload
	}
	if sizePx <= 0 {
		sizePx = defaultQRCodeSizePx
	}

	qrCode, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return raster.Bitmap{}, err
	}
	return FromImage(qrCode.Image(sizePx), raster.White), nil
}

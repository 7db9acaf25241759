package service

import (
	"bytes"
	"image"
	"image/png"

	"github.com/pkg/errors"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/draw"
)

// EmployeeBadge renders the national id as a QR code PNG scaled to the
// requested pixel size, for printing on badges scanned at the kiosk.
func EmployeeBadge(nationalID string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}

	code, err := qrcode.New(nationalID, qrcode.Medium)
	if err != nil {
		return nil, errors.Wrap(err, "encoding qr code")
	}

	src := code.Image(256)

	// Nearest neighbor keeps the modules crisp when printed.
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, errors.Wrap(err, "encoding badge png")
	}

	return buf.Bytes(), nil
}

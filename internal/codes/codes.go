// Package codes renders the CODE128 barcode and QR label images that
// get printed on product shelf tags. Files land in the uploads
// directory the server already exposes as static content.
package codes

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	qrcode "github.com/skip2/go-qrcode"
)

// GenerateForSKU writes <sku>-barcode.png and <sku>-qrcode.png under dir
// and returns the two filenames.
func GenerateForSKU(sku, dir string) (barcodeFile, qrFile string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}

	barcodeFile = fmt.Sprintf("%s-barcode.png", sku)
	if err := writeBarcode(sku, filepath.Join(dir, barcodeFile)); err != nil {
		return "", "", err
	}

	qrFile = fmt.Sprintf("%s-qrcode.png", sku)
	if err := qrcode.WriteFile(sku, qrcode.Medium, 256, filepath.Join(dir, qrFile)); err != nil {
		return "", "", err
	}

	return barcodeFile, qrFile, nil
}

func writeBarcode(sku, path string) error {
	code, err := code128.Encode(sku)
	if err != nil {
		return err
	}

	scaled, err := barcode.Scale(code, 300, 100)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, scaled)
}

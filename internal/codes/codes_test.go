package codes

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGenerateForSKU(t *testing.T) {
	dir := t.TempDir()

	barcodeFile, qrFile, err := GenerateForSKU("FL-10", dir)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if barcodeFile != "FL-10-barcode.png" || qrFile != "FL-10-qrcode.png" {
		t.Fatalf("unexpected filenames: %s / %s", barcodeFile, qrFile)
	}

	for _, name := range []string{barcodeFile, qrFile} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("%s not written: %v", name, err)
		}
		if info.Size() == 0 {
			t.Fatalf("%s is empty", name)
		}
	}
}

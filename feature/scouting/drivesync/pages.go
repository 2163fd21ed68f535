package drivesync

import (
	"bytes"
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

// CountPages returns the page count of the pdf at path.
func CountPages(path string) (n int, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	// The reader panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			n, err = 0, fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, err
	}
	return r.NumPage(), nil
}

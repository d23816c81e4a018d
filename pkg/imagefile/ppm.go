package imagefile

import (
	"bufio"
	"fmt"
	"io"
)

// encodePPM writes a binary (P6) PPM with 8-bit channels
func encodePPM(w io.Writer, width, height int, pixels []byte) error {
	if _, err := fmt.Fprintf(w, "P6\n%d %d\n255\n", width, height); err != nil {
		return err
	}
	_, err := w.Write(pixels)
	return err
}

// decodePPM reads a binary (P6) PPM with a maximum value of 255
func decodePPM(r *bufio.Reader) (width, height int, pixels []byte, err error) {
	var magic string
	var maxVal int
	if _, err := fmt.Fscan(r, &magic, &width, &height, &maxVal); err != nil {
		return 0, 0, nil, fmt.Errorf("failed to read PPM header: %w", err)
	}
	if magic != "P6" {
		return 0, 0, nil, fmt.Errorf("unsupported PPM variant %q", magic)
	}
	if maxVal != 255 {
		return 0, 0, nil, fmt.Errorf("unsupported PPM max value %d", maxVal)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, nil, fmt.Errorf("invalid PPM size %dx%d", width, height)
	}

	// Exactly one whitespace byte separates the header from the samples
	if _, err := r.ReadByte(); err != nil {
		return 0, 0, nil, fmt.Errorf("failed to read PPM header: %w", err)
	}

	pixels = make([]byte, width*height*3)
	if _, err := io.ReadFull(r, pixels); err != nil {
		return 0, 0, nil, fmt.Errorf("failed to read PPM pixels: %w", err)
	}
	return width, height, pixels, nil
}

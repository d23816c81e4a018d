// Package imagefile persists rendered pixel buffers. A buffer holds
// width*height RGB triples, row-major, top row first.
package imagefile

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// Supported formats
const (
	FormatPNG = "png"
	FormatBMP = "bmp"
	FormatPPM = "ppm"
)

// FormatFromPath returns the format implied by the file extension
func FormatFromPath(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case FormatPNG, FormatBMP, FormatPPM:
		return ext, nil
	default:
		return "", fmt.Errorf("unsupported image extension %q", filepath.Ext(path))
	}
}

func checkBuffer(width, height int, pixels []byte) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", width, height)
	}
	if len(pixels) != width*height*3 {
		return fmt.Errorf("pixel buffer has %d bytes, want %d for %dx%d", len(pixels), width*height*3, width, height)
	}
	return nil
}

// ToImage copies an RGB buffer into an opaque RGBA image
func ToImage(width, height int, pixels []byte) (*image.RGBA, error) {
	if err := checkBuffer(width, height, pixels); err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, j := 0, 0; i < len(pixels); i, j = i+3, j+4 {
		img.Pix[j] = pixels[i]
		img.Pix[j+1] = pixels[i+1]
		img.Pix[j+2] = pixels[i+2]
		img.Pix[j+3] = 255
	}
	return img, nil
}

// FromImage flattens any image into an RGB buffer, dropping alpha
func FromImage(img image.Image) (width, height int, pixels []byte) {
	bounds := img.Bounds()
	width, height = bounds.Dx(), bounds.Dy()
	pixels = make([]byte, 0, width*height*3)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			pixels = append(pixels, c.R, c.G, c.B)
		}
	}
	return width, height, pixels
}

// Encode writes the buffer to w in the given format
func Encode(w io.Writer, format string, width, height int, pixels []byte) error {
	if err := checkBuffer(width, height, pixels); err != nil {
		return err
	}

	switch format {
	case FormatPPM:
		return encodePPM(w, width, height, pixels)
	case FormatPNG, FormatBMP:
		img, err := ToImage(width, height, pixels)
		if err != nil {
			return err
		}
		if format == FormatPNG {
			return png.Encode(w, img)
		}
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
}

// Write saves the buffer to path, choosing the format from the extension
func Write(path string, width, height int, pixels []byte) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}

	w := bufio.NewWriter(file)
	if err := Encode(w, format, width, height, pixels); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("failed to write image file: %w", err)
	}
	return file.Close()
}

// Read loads a PNG, BMP or PPM file back into an RGB buffer
func Read(path string) (width, height int, pixels []byte, err error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return 0, 0, nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	r := bufio.NewReader(file)
	if format == FormatPPM {
		return decodePPM(r)
	}

	// bmp registers itself with image.Decode on import
	img, _, err := image.Decode(r)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("failed to decode image: %w", err)
	}
	width, height, pixels = FromImage(img)
	return width, height, pixels, nil
}

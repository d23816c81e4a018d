package renderer

import (
	"fmt"
)

// Config contains rendering configuration. It is fixed once rendering starts.
type Config struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	NumWorkers      int   // Number of parallel workers (0 = use CPU count)
	Seed            int64 // Base seed; the same seed always yields the same image
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:           400,
		Height:          225, // 16:9 aspect ratio
		SamplesPerPixel: 100,
		MaxDepth:        50,
		NumWorkers:      0,
		Seed:            42,
	}
}

// AspectRatio returns width / height
func (c Config) AspectRatio() float64 {
	return float64(c.Width) / float64(c.Height)
}

// Area returns the number of pixels in the image
func (c Config) Area() int {
	return c.Width * c.Height
}

// Validate checks the configuration. Sample coordinates are divided by
// width-1 and height-1, so both dimensions need at least two pixels.
func (c Config) Validate() error {
	if c.Width < 2 {
		return fmt.Errorf("width must be at least 2, got %d", c.Width)
	}
	if c.Height < 2 {
		return fmt.Errorf("height must be at least 2, got %d", c.Height)
	}
	if c.SamplesPerPixel < 1 {
		return fmt.Errorf("samples per pixel must be at least 1, got %d", c.SamplesPerPixel)
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("max depth must be at least 1, got %d", c.MaxDepth)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("number of workers cannot be negative, got %d", c.NumWorkers)
	}
	return nil
}

package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels   int           // Total number of pixels rendered
	TotalSamples  int           // Total number of camera samples taken
	Workers       int           // Number of workers used
	RowsPerWorker []int         // Scanlines rendered by each worker
	Duration      time.Duration // Wall-clock render time
}

// SamplesPerSecond returns the camera sample throughput
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}

// AverageLuminance returns the mean Rec. 709 luminance of an RGB buffer,
// computed on the stored 8-bit values scaled to [0, 1]
func AverageLuminance(pixels []byte) float64 {
	n := len(pixels) / 3
	if n == 0 {
		return 0
	}

	total := 0.0
	for i := 0; i < n*3; i += 3 {
		total += 0.2126*float64(pixels[i]) + 0.7152*float64(pixels[i+1]) + 0.0722*float64(pixels[i+2])
	}
	return total / 255.0 / float64(n)
}

package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/df07/go-sphere-pathtracer/pkg/imagefile"
	"github.com/df07/go-sphere-pathtracer/pkg/loaders"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

func main() {
	defaults := renderer.DefaultConfig()

	// Parse command line flags
	sceneType := flag.String("scene", "simple", "Built-in scene name or path to a .json scene file")
	width := flag.Int("width", defaults.Width, "Image width in pixels")
	height := flag.Int("height", defaults.Height, "Image height in pixels")
	samples := flag.Int("samples", defaults.SamplesPerPixel, "Samples per pixel")
	depth := flag.Int("depth", defaults.MaxDepth, "Maximum bounce depth")
	workers := flag.Int("workers", defaults.NumWorkers, "Number of render workers (0 = one per CPU)")
	seed := flag.Int64("seed", defaults.Seed, "Random seed for scene generation and sampling")
	out := flag.String("out", "", "Output file (default output/<scene>/render_<timestamp>_<id>.<format>)")
	format := flag.String("format", imagefile.FormatPNG, "Output format when -out is not set: png, bmp or ppm")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Sphere Path Tracer")
		fmt.Println("Usage: pathtracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		for _, info := range scene.ListBuiltinScenes() {
			fmt.Printf("  %-15s - %s\n", info.ID, info.Description)
		}
		fmt.Println("  <file>.json     - Scene file (see pkg/loaders)")
		return
	}

	config := renderer.Config{
		Width:           *width,
		Height:          *height,
		SamplesPerPixel: *samples,
		MaxDepth:        *depth,
		NumWorkers:      *workers,
		Seed:            *seed,
	}
	if err := config.Validate(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		os.Exit(2)
	}

	fmt.Println("Starting Sphere Path Tracer...")

	selectedScene, err := createScene(*sceneType, config.AspectRatio(), config.Seed)
	if err != nil {
		fmt.Printf("Error creating scene: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Using scene %q with %d spheres\n", selectedScene.Name, selectedScene.SphereCount())

	filename, err := outputPath(*out, *sceneType, *format, time.Now(), uuid.New().String())
	if err != nil {
		fmt.Printf("Error choosing output file: %v\n", err)
		os.Exit(2)
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		fmt.Printf("Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	raytracer, err := renderer.NewRaytracer(selectedScene.World, selectedScene.Camera, config, renderer.NewDefaultLogger())
	if err != nil {
		fmt.Printf("Error creating raytracer: %v\n", err)
		os.Exit(1)
	}

	pixels, stats, err := raytracer.RenderParallel()
	if err != nil {
		fmt.Printf("Render failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render completed in %v\n", stats.Duration)
	fmt.Printf("Samples: %d (%.0f samples/sec, %d workers)\n",
		stats.TotalSamples, stats.SamplesPerSecond(), stats.Workers)
	fmt.Printf("Average luminance: %.3f\n", renderer.AverageLuminance(pixels))

	if err := imagefile.Write(filename, config.Width, config.Height, pixels); err != nil {
		fmt.Printf("Error saving image: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render saved as %s\n", filename)
}

// isSceneFile reports whether sceneType names a scene file rather than a
// built-in scene
func isSceneFile(sceneType string) bool {
	return strings.EqualFold(filepath.Ext(sceneType), ".json")
}

// createScene builds a built-in scene or loads a .json scene file
func createScene(sceneType string, aspectRatio float64, seed int64) (*scene.Scene, error) {
	if sceneType == "" {
		return nil, fmt.Errorf("no scene given")
	}
	if isSceneFile(sceneType) {
		return loaders.LoadScene(sceneType, aspectRatio)
	}

	build, ok := scene.Lookup(sceneType)
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %s)", sceneType, strings.Join(scene.Names(), ", "))
	}
	return build(aspectRatio, rand.New(rand.NewSource(seed))), nil
}

// createOutputDir returns the output directory for a scene: output/<name>,
// where scene files are named after the file without its extension
func createOutputDir(sceneType string) string {
	name := sceneType
	if isSceneFile(sceneType) {
		name = strings.TrimSuffix(filepath.Base(sceneType), filepath.Ext(sceneType))
	}
	return filepath.Join("output", name)
}

// outputPath returns out when set, otherwise a timestamped file in the
// scene's output directory. The format must be one imagefile can write.
func outputPath(out, sceneType, format string, now time.Time, id string) (string, error) {
	if out != "" {
		if _, err := imagefile.FormatFromPath(out); err != nil {
			return "", err
		}
		return out, nil
	}

	format = strings.ToLower(format)
	if _, err := imagefile.FormatFromPath("render." + format); err != nil {
		return "", err
	}

	timestamp := now.Format("20060102_150405")
	shortID := strings.SplitN(id, "-", 2)[0]
	return filepath.Join(createOutputDir(sceneType), fmt.Sprintf("render_%s_%s.%s", timestamp, shortID, format)), nil
}

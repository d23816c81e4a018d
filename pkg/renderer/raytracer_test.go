package renderer

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"math/rand"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// testLogger forwards render logs to the test output
type testLogger struct {
	t testing.TB
}

func (l testLogger) Printf(format string, args ...interface{}) {
	l.t.Logf(format, args...)
}

// twoSphereWorld is the regression scene: a diffuse ground and a diffuse ball
func twoSphereWorld() *geometry.HittableList {
	return geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))),
	)
}

func newTestRaytracer(t testing.TB, config Config) *Raytracer {
	t.Helper()
	cameraConfig := geometry.DefaultCameraConfig()
	cameraConfig.AspectRatio = config.AspectRatio()
	rt, err := NewRaytracer(twoSphereWorld(), geometry.NewCamera(cameraConfig), config, testLogger{t})
	if err != nil {
		t.Fatalf("NewRaytracer failed: %v", err)
	}
	return rt
}

func TestNewRaytracer_RejectsInvalidConfig(t *testing.T) {
	config := DefaultConfig()
	config.SamplesPerPixel = 0

	camera := geometry.NewCamera(geometry.DefaultCameraConfig())
	if _, err := NewRaytracer(twoSphereWorld(), camera, config, testLogger{t}); err == nil {
		t.Error("Expected error for zero samples per pixel")
	}
	if _, err := NewRaytracer(nil, camera, DefaultConfig(), testLogger{t}); err == nil {
		t.Error("Expected error for missing world")
	}
}

func TestRaytracer_EndToEndRegression(t *testing.T) {
	config := Config{
		Width:           32,
		Height:          18,
		SamplesPerPixel: 1,
		MaxDepth:        1,
		NumWorkers:      4,
		Seed:            1234,
	}
	rt := newTestRaytracer(t, config)

	first, _, err := rt.RenderParallel()
	if err != nil {
		t.Fatalf("RenderParallel failed: %v", err)
	}
	second, _, err := rt.RenderParallel()
	if err != nil {
		t.Fatalf("RenderParallel failed: %v", err)
	}

	if len(first) != config.Width*config.Height*3 {
		t.Fatalf("Expected buffer of %d bytes, got %d", config.Width*config.Height*3, len(first))
	}
	if !bytes.Equal(first, second) {
		t.Fatal("Same seed should produce a bit-identical image")
	}

	pixelAt := func(x, row int) core.RGB {
		i := (row*config.Width + x) * 3
		return core.RGB{R: first[i], G: first[i+1], B: first[i+2]}
	}

	// With one bounce, anything that hits a sphere is black and everything else is sky
	for row := 0; row < config.Height; row++ {
		for x := 0; x < config.Width; x++ {
			c := pixelAt(x, row)
			if c != (core.RGB{}) && c.B != 255 {
				t.Fatalf("Pixel (%d,%d) = %v is neither black nor sky", x, row, c)
			}
		}
	}

	for x := 0; x < config.Width; x++ {
		if c := pixelAt(x, 0); c.B != 255 {
			t.Errorf("Top row pixel %d should be sky, got %v", x, c)
		}
		if c := pixelAt(x, config.Height-1); c != (core.RGB{}) {
			t.Errorf("Bottom row pixel %d should hit the ground, got %v", x, c)
		}
	}
	if c := pixelAt(config.Width/2, config.Height/2); c != (core.RGB{}) {
		t.Errorf("Center pixel should hit the small sphere, got %v", c)
	}

	// Exact output for seed 1234
	golden := []struct {
		x, row int
		want   core.RGB
	}{
		{0, 0, core.RGB{R: 203, G: 225, B: 255}},
		{31, 0, core.RGB{R: 203, G: 226, B: 255}},
		{5, 5, core.RGB{R: 209, G: 229, B: 255}},
		{20, 10, core.RGB{}},
	}
	for _, g := range golden {
		if c := pixelAt(g.x, g.row); c != g.want {
			t.Errorf("Pixel (%d,%d) = %v, want %v", g.x, g.row, c, g.want)
		}
	}

	const goldenSHA256 = "facd8b35986346d227cb12c6dba839de982008f579bb7e73b47c51306db8b28d"
	if sum := fmt.Sprintf("%x", sha256.Sum256(first)); sum != goldenSHA256 {
		t.Errorf("Image hash = %s, want %s", sum, goldenSHA256)
	}
}

func TestRaytracer_FrameMatchesParallel(t *testing.T) {
	config := Config{
		Width:           24,
		Height:          16,
		SamplesPerPixel: 4,
		MaxDepth:        10,
		Seed:            99,
	}

	sequential := newTestRaytracer(t, config).Frame()

	for _, workers := range []int{1, 2, 3, 7, 16} {
		config.NumWorkers = workers
		parallel, stats, err := newTestRaytracer(t, config).RenderParallel()
		if err != nil {
			t.Fatalf("RenderParallel with %d workers failed: %v", workers, err)
		}
		if !bytes.Equal(sequential, parallel) {
			t.Errorf("Image with %d workers differs from sequential frame", workers)
		}
		if stats.Workers != workers {
			t.Errorf("Expected %d workers, got %d", workers, stats.Workers)
		}
	}
}

func TestRaytracer_SeedChangesImage(t *testing.T) {
	config := Config{Width: 16, Height: 9, SamplesPerPixel: 2, MaxDepth: 5, Seed: 1}
	a := newTestRaytracer(t, config).Frame()

	config.Seed = 2
	b := newTestRaytracer(t, config).Frame()

	if bytes.Equal(a, b) {
		t.Error("Different seeds should produce different noise")
	}
}

func TestRaytracer_LineLayout(t *testing.T) {
	config := Config{Width: 8, Height: 4, SamplesPerPixel: 2, MaxDepth: 3, Seed: 5}
	rt := newTestRaytracer(t, config)

	line := rt.Line(2, rand.New(rand.NewSource(1)))
	if len(line) != config.Width*3 {
		t.Fatalf("Expected %d bytes, got %d", config.Width*3, len(line))
	}

	// Line packs the same pixels Pixel returns, given the same generator
	random := rand.New(rand.NewSource(1))
	for x := 0; x < config.Width; x++ {
		c := rt.Pixel(x, 2, random)
		if line[x*3] != c.R || line[x*3+1] != c.G || line[x*3+2] != c.B {
			t.Fatalf("Pixel %d mismatch: line has %v, pixel is %v", x, line[x*3:x*3+3], c)
		}
	}
}

func TestRaytracer_FrameIsTopDown(t *testing.T) {
	config := Config{Width: 4, Height: 6, SamplesPerPixel: 1, MaxDepth: 2, Seed: 3}
	rt := newTestRaytracer(t, config)
	frame := rt.Frame()

	// Buffer row n holds camera row height-1-n
	for n := 0; n < config.Height; n++ {
		y := config.Height - 1 - n
		expected := rt.Line(y, rt.rowRandom(y))
		got := frame[n*config.Width*3 : (n+1)*config.Width*3]
		if !bytes.Equal(expected, got) {
			t.Errorf("Buffer row %d does not hold camera row %d", n, y)
		}
	}
}

func BenchmarkRenderParallel(b *testing.B) {
	config := Config{Width: 64, Height: 36, SamplesPerPixel: 8, MaxDepth: 20, Seed: 1}
	rt := newTestRaytracer(b, config)
	rt.logger = nopLogger{}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := rt.RenderParallel(); err != nil {
			b.Fatal(err)
		}
	}
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...interface{}) {}

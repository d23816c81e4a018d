package renderer

import (
	"fmt"
	"math/rand"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
)

// Raytracer renders a scene into a buffer of RGB bytes. The world and camera
// are only read, so one Raytracer can be used from many goroutines as long
// as each goroutine passes its own random generator.
type Raytracer struct {
	world      geometry.Hittable
	camera     *geometry.Camera
	integrator integrator.Integrator
	config     Config
	logger     core.Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(world geometry.Hittable, camera *geometry.Camera, config Config, logger core.Logger) (*Raytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid render config: %w", err)
	}
	if world == nil || camera == nil {
		return nil, fmt.Errorf("raytracer needs both a world and a camera")
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	return &Raytracer{
		world:      world,
		camera:     camera,
		integrator: integrator.NewPathTracingIntegrator(),
		config:     config,
		logger:     logger,
	}, nil
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(i integrator.Integrator) {
	rt.integrator = i
}

// Config returns the render configuration
func (rt *Raytracer) Config() Config {
	return rt.config
}

// Pixel averages SamplesPerPixel jittered samples for pixel (x, y) and
// gamma-corrects the result. y is a camera row: 0 is the bottom of the image.
func (rt *Raytracer) Pixel(x, y int, random *rand.Rand) core.RGB {
	colorAccum := core.Vec3{}

	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		s := (float64(x) + random.Float64()) / float64(rt.config.Width-1)
		t := (float64(y) + random.Float64()) / float64(rt.config.Height-1)

		ray := rt.camera.GetRay(s, t, random)
		colorAccum = colorAccum.Add(rt.integrator.RayColor(ray, rt.world, rt.config.MaxDepth, random))
	}

	return core.NewRGB(colorAccum.Divide(float64(rt.config.SamplesPerPixel)))
}

// Line renders camera row y as packed R,G,B bytes, left to right
func (rt *Raytracer) Line(y int, random *rand.Rand) []byte {
	line := make([]byte, rt.config.Width*3)
	for x := 0; x < rt.config.Width; x++ {
		c := rt.Pixel(x, y, random)
		line[x*3] = c.R
		line[x*3+1] = c.G
		line[x*3+2] = c.B
	}
	return line
}

// Frame renders the whole image on the calling goroutine. The buffer is
// row-major, top row first. It is identical to the buffer RenderParallel
// produces for the same configuration.
func (rt *Raytracer) Frame() []byte {
	buffer := make([]byte, rt.config.Area()*3)
	for y := rt.config.Height - 1; y >= 0; y-- {
		copy(buffer[rt.rowOffset(y):], rt.Line(y, rt.rowRandom(y)))
	}
	return buffer
}

// rowOffset returns where camera row y starts in the output buffer. Buffer
// row n holds camera row height-1-n.
func (rt *Raytracer) rowOffset(y int) int {
	return (rt.config.Height - 1 - y) * rt.config.Width * 3
}

// rowRandom creates the generator for camera row y. Seeding per row keeps the
// image independent of how rows are spread over workers.
func (rt *Raytracer) rowRandom(y int) *rand.Rand {
	return rand.New(rand.NewSource(RowSeed(rt.config.Seed, y)))
}

// RowSeed derives the seed for a row from the base seed (splitmix64 finalizer)
func RowSeed(base int64, row int) int64 {
	z := uint64(base) + uint64(row+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return int64(z ^ (z >> 31))
}

package integrator

import (
	"math/rand"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor returns the radiance carried back along ray, following at most
	// depth bounces. random must not be shared between goroutines.
	RayColor(ray core.Ray, world geometry.Hittable, depth int, random *rand.Rand) core.Color
}

package geometry

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// Hittable is anything a ray can intersect
type Hittable interface {
	// Hit returns the intersection with the smallest t in [tMin, tMax], if any
	Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool)
}

package scene

import (
	"math/rand"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// NewSimpleScene creates a lapis ground with a terracotta sphere between a
// hollow glass sphere and a gold one, seen from above with a shallow focus.
func NewSimpleScene(aspectRatio float64, random *rand.Rand) *Scene {
	center := core.NewVec3(3, 3, 2)
	focus := core.NewVec3(0, 0, -1)

	s := newScene("simple", geometry.CameraConfig{
		Center:        center,
		LookAt:        focus,
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		AspectRatio:   aspectRatio,
		Aperture:      2.0,
		FocusDistance: center.Subtract(focus).Length(),
	})

	terracotta := material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))
	lapis := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	gold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2))
	glass := material.NewDielectric(1.5)

	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, lapis)
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, terracotta)
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.5, glass)
	s.AddSphere(core.NewVec3(-1, 0, -1), -0.4, glass) // hollow centre
	s.AddSphere(core.NewVec3(1, 0, -1), 0.5, gold)

	return s
}

// NewTwoSphereScene creates a diffuse sphere resting on a large diffuse
// ground sphere, viewed by the default pinhole camera.
func NewTwoSphereScene(aspectRatio float64, random *rand.Rand) *Scene {
	config := geometry.DefaultCameraConfig()
	config.AspectRatio = aspectRatio

	s := newScene("two-spheres", config)
	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0)))
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3)))
	return s
}

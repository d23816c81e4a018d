package scene

import (
	"math/rand"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// Scene is the result of world-building: the spheres to render and the
// camera looking at them. It is never modified once a render starts.
type Scene struct {
	Name         string
	World        *geometry.HittableList
	Camera       *geometry.Camera
	CameraConfig geometry.CameraConfig
}

// Builder constructs a scene for the given image aspect ratio. Scenes with
// randomized content draw from random so they can be reproduced.
type Builder func(aspectRatio float64, random *rand.Rand) *Scene

// newScene creates a scene with an empty world and a camera built from config
func newScene(name string, config geometry.CameraConfig) *Scene {
	return &Scene{
		Name:         name,
		World:        geometry.NewHittableList(),
		Camera:       geometry.NewCamera(config),
		CameraConfig: config,
	}
}

// AddSphere adds a sphere to the scene's world
func (s *Scene) AddSphere(center core.Point, radius float64, mat material.Material) {
	s.World.Add(geometry.NewSphere(center, radius, mat))
}

// SphereCount returns the number of spheres in the world
func (s *Scene) SphereCount() int {
	return s.World.Len()
}

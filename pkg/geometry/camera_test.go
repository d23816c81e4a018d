package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

func TestCameraGetCameraForward(t *testing.T) {
	config := CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 1.0,
		VFov:        45.0,
	}
	camera := NewCamera(config)

	forward := camera.GetCameraForward()
	expected := core.NewVec3(0, 0, -1)
	if forward.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected forward direction %v, got %v", expected, forward)
	}
}

func TestCameraGetRay_Corners(t *testing.T) {
	// 90 degree vfov with aspect 2 gives a 4x2 viewport at focus distance 1
	config := CameraConfig{
		Center:        core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          90,
		AspectRatio:   2,
		FocusDistance: 1,
	}
	camera := NewCamera(config)
	random := rand.New(rand.NewSource(1))

	tests := []struct {
		name     string
		s, t     float64
		expected core.Vec3
	}{
		{"center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		{"lower left", 0, 0, core.NewVec3(-2, -1, -1)},
		{"upper right", 1, 1, core.NewVec3(2, 1, -1)},
		{"upper left", 0, 1, core.NewVec3(-2, 1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.s, tt.t, random)
			if ray.Origin != config.Center {
				t.Errorf("Pinhole camera should not move origin, got %v", ray.Origin)
			}
			if ray.Direction.Subtract(tt.expected).Length() > 1e-9 {
				t.Errorf("Expected direction %v, got %v", tt.expected, ray.Direction)
			}
		})
	}
}

func TestCameraGetRay_DepthOfField(t *testing.T) {
	config := CameraConfig{
		Center:        core.NewVec3(3, 3, 2),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20,
		AspectRatio:   16.0 / 9.0,
		Aperture:      2.0,
		FocusDistance: 0, // focus on LookAt
	}
	camera := NewCamera(config)
	random := rand.New(rand.NewSource(2))

	if camera.LensRadius() != 1.0 {
		t.Fatalf("Expected lens radius 1, got %f", camera.LensRadius())
	}

	forward := camera.GetCameraForward()
	for i := 0; i < 500; i++ {
		ray := camera.GetRay(0.5, 0.5, random)

		offset := ray.Origin.Subtract(config.Center)
		if offset.Length() > 1.0+1e-9 {
			t.Fatalf("Lens offset %v exceeds lens radius", offset)
		}
		if math.Abs(offset.Dot(forward)) > 1e-9 {
			t.Fatalf("Lens offset %v should lie in the lens plane", offset)
		}

		// Every ray through the image center converges on the focus point
		focus := ray.At(1)
		if focus.Subtract(config.LookAt).Length() > 1e-9 {
			t.Fatalf("Expected ray to pass through focus point %v, got %v", config.LookAt, focus)
		}
	}
}

func TestCameraBasisIsOrthonormal(t *testing.T) {
	camera := NewCamera(CameraConfig{
		Center:      core.NewVec3(13, 2, 3),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        20,
		AspectRatio: 16.0 / 9.0,
		Aperture:    0.1,
	})

	basis := []core.Vec3{camera.u, camera.v, camera.w}
	for i, a := range basis {
		if math.Abs(a.Length()-1) > 1e-9 {
			t.Errorf("Basis vector %d not unit length: %f", i, a.Length())
		}
		for j, b := range basis {
			if i != j && math.Abs(a.Dot(b)) > 1e-9 {
				t.Errorf("Basis vectors %d and %d not orthogonal", i, j)
			}
		}
	}
}

package loaders

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// Vec3Cfg is a vector written as a three element JSON array
type Vec3Cfg [3]float64

func (v Vec3Cfg) vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// ColorCfg is a linear color. In JSON it is either an [r, g, b] array with
// components in [0, 1] or an SVG color name such as "gold".
type ColorCfg core.Color

// UnmarshalJSON accepts either form
func (c *ColorCfg) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		rgba, ok := colornames.Map[strings.ToLower(name)]
		if !ok {
			return fmt.Errorf("unknown color name %q", name)
		}
		*c = ColorCfg(core.NewVec3(
			float64(rgba.R)/255.0,
			float64(rgba.G)/255.0,
			float64(rgba.B)/255.0,
		))
		return nil
	}

	var rgb [3]float64
	if err := json.Unmarshal(data, &rgb); err != nil {
		return fmt.Errorf("color must be [r, g, b] or a color name: %w", err)
	}
	*c = ColorCfg(core.NewVec3(rgb[0], rgb[1], rgb[2]))
	return nil
}

// CameraCfg mirrors geometry.CameraConfig. Zero fields take the defaults of
// geometry.DefaultCameraConfig, except FocusDistance where 0 focuses on lookAt.
type CameraCfg struct {
	Center        *Vec3Cfg `json:"center,omitempty"`
	LookAt        *Vec3Cfg `json:"lookAt,omitempty"`
	Up            *Vec3Cfg `json:"up,omitempty"`
	VFov          float64  `json:"vfov,omitempty"`
	Aperture      float64  `json:"aperture,omitempty"`
	FocusDistance float64  `json:"focusDistance,omitempty"`
}

// MaterialCfg describes one material. Type is "lambertian", "metal" or
// "dielectric"; albedo is ignored for dielectrics and ior for the others.
type MaterialCfg struct {
	Type   string   `json:"type"`
	Albedo ColorCfg `json:"albedo"`
	IOR    float64  `json:"ior,omitempty"`
}

// SphereCfg places a sphere. A negative radius makes a hollow shell.
// Material names an entry of SceneFile.Materials.
type SphereCfg struct {
	Center   Vec3Cfg `json:"center"`
	Radius   float64 `json:"radius"`
	Material string  `json:"material"`
}

// SceneFile is the JSON scene file format
type SceneFile struct {
	Name        string                 `json:"name,omitempty"`
	Description string                 `json:"description,omitempty"`
	Group       string                 `json:"group,omitempty"`
	Camera      CameraCfg              `json:"camera"`
	Materials   map[string]MaterialCfg `json:"materials"`
	Spheres     []SphereCfg            `json:"spheres"`
}

// Build validates a material description and constructs the material
func (mc MaterialCfg) Build() (material.Material, error) {
	switch strings.ToLower(mc.Type) {
	case "lambertian", "diffuse":
		return material.NewLambertian(core.Color(mc.Albedo)), nil
	case "metal", "reflective":
		return material.NewMetal(core.Color(mc.Albedo)), nil
	case "dielectric", "glass", "refractive":
		if mc.IOR <= 0 {
			return material.Material{}, fmt.Errorf("dielectric ior must be > 0, got %v", mc.IOR)
		}
		return material.NewDielectric(mc.IOR), nil
	default:
		return material.Material{}, fmt.Errorf("unknown material type %q", mc.Type)
	}
}

// Build returns the camera configuration for the given aspect ratio
func (cc CameraCfg) Build(aspectRatio float64) geometry.CameraConfig {
	config := geometry.DefaultCameraConfig()
	config.AspectRatio = aspectRatio
	config.FocusDistance = cc.FocusDistance
	config.Aperture = cc.Aperture
	if cc.Center != nil {
		config.Center = cc.Center.vec3()
	}
	if cc.LookAt != nil {
		config.LookAt = cc.LookAt.vec3()
	}
	if cc.Up != nil {
		config.Up = cc.Up.vec3()
	}
	if cc.VFov != 0 {
		config.VFov = cc.VFov
	}
	return config
}

// ParseScene reads a JSON scene from r and builds it for the given aspect ratio
func ParseScene(r io.Reader, aspectRatio float64) (*scene.Scene, error) {
	var file SceneFile
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}
	return file.Build(aspectRatio)
}

// Build validates the scene description and constructs the scene
func (sf SceneFile) Build(aspectRatio float64) (*scene.Scene, error) {
	materials := make(map[string]material.Material, len(sf.Materials))
	for name, mc := range sf.Materials {
		mat, err := mc.Build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = mat
	}

	world := geometry.NewHittableList()
	for i, sc := range sf.Spheres {
		if sc.Radius == 0 {
			return nil, fmt.Errorf("sphere %d: radius must be non-zero", i)
		}
		mat := material.Default()
		if sc.Material != "" {
			var ok bool
			if mat, ok = materials[sc.Material]; !ok {
				return nil, fmt.Errorf("sphere %d: unknown material %q", i, sc.Material)
			}
		}
		world.Add(geometry.NewSphere(sc.Center.vec3(), sc.Radius, mat))
	}

	cameraConfig := sf.Camera.Build(aspectRatio)
	if cameraConfig.Center == cameraConfig.LookAt {
		return nil, fmt.Errorf("camera center and lookAt must differ")
	}
	if cameraConfig.Up.Cross(cameraConfig.Center.Subtract(cameraConfig.LookAt)).IsNearZero() {
		return nil, fmt.Errorf("camera up must be non-zero and not parallel to the view direction")
	}

	return &scene.Scene{
		Name:         sf.Name,
		World:        world,
		Camera:       geometry.NewCamera(cameraConfig),
		CameraConfig: cameraConfig,
	}, nil
}

// LoadScene reads a JSON scene file. The scene is named after the file when
// the file does not name it.
func LoadScene(path string, aspectRatio float64) (*scene.Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer f.Close()

	s, err := ParseScene(f, aspectRatio)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

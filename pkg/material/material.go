package material

import (
	"fmt"
	"math/rand"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// Kind identifies one of the fixed surface behaviours
type Kind uint8

const (
	// Lambertian is a diffuse surface
	Lambertian Kind = iota
	// Metal is a perfectly specular reflector
	Metal
	// Dielectric is a clear refractive surface such as glass
	Dielectric
)

func (k Kind) String() string {
	switch k {
	case Lambertian:
		return "lambertian"
	case Metal:
		return "metal"
	case Dielectric:
		return "dielectric"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Material describes how a surface scatters light. Only the fields relevant
// to Kind are meaningful: Albedo for Lambertian and Metal, RefractiveIndex
// for Dielectric.
type Material struct {
	Kind            Kind
	Albedo          core.Color
	RefractiveIndex float64
}

// NewLambertian creates a diffuse material
func NewLambertian(albedo core.Color) Material {
	return Material{Kind: Lambertian, Albedo: albedo}
}

// NewMetal creates a perfectly specular metal
func NewMetal(albedo core.Color) Material {
	return Material{Kind: Metal, Albedo: albedo}
}

// NewDielectric creates a dielectric material. It panics if refractiveIndex
// is not positive.
func NewDielectric(refractiveIndex float64) Material {
	if refractiveIndex <= 0 {
		panic(fmt.Sprintf("refractive index must be positive, got %g", refractiveIndex))
	}
	return Material{Kind: Dielectric, RefractiveIndex: refractiveIndex}
}

// Default is the mid-grey diffuse material
func Default() Material {
	return NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
}

// Scatter computes how rayIn scatters at hit. It returns false when the ray
// is absorbed.
func (m Material) Scatter(rayIn core.Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool) {
	switch m.Kind {
	case Lambertian:
		return m.scatterLambertian(hit, random)
	case Metal:
		return m.scatterMetal(rayIn, hit)
	case Dielectric:
		return m.scatterDielectric(rayIn, hit, random)
	default:
		panic(fmt.Sprintf("unknown material kind %v", m.Kind))
	}
}

func (m Material) String() string {
	if m.Kind == Dielectric {
		return fmt.Sprintf("%v(ior=%g)", m.Kind, m.RefractiveIndex)
	}
	return fmt.Sprintf("%v(%g, %g, %g)", m.Kind, m.Albedo.X, m.Albedo.Y, m.Albedo.Z)
}

package material

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// scatterMetal reflects the incoming direction about the normal. Rays that
// would re-enter the surface are absorbed.
func (m Material) scatterMetal(rayIn core.Ray, hit HitRecord) (ScatterResult, bool) {
	reflected := rayIn.Direction.Normalize().Reflect(hit.Normal)
	scattered := core.NewRay(hit.Point, reflected)

	return ScatterResult{
		Scattered:   scattered,
		Attenuation: m.Albedo,
	}, scattered.Direction.Dot(hit.Normal) > 0
}

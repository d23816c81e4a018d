package geometry

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// HittableList is the scene aggregate. It is built once and only read while
// rendering, so a single list can be shared by all render workers.
type HittableList struct {
	spheres []Sphere
}

// NewHittableList creates a list holding the given spheres
func NewHittableList(spheres ...Sphere) *HittableList {
	return &HittableList{spheres: append([]Sphere(nil), spheres...)}
}

// Add appends a sphere to the list
func (l *HittableList) Add(s Sphere) {
	l.spheres = append(l.spheres, s)
}

// Len returns the number of spheres
func (l *HittableList) Len() int {
	return len(l.spheres)
}

// Spheres returns a copy of the spheres in the list
func (l *HittableList) Spheres() []Sphere {
	return append([]Sphere(nil), l.spheres...)
}

// Hit returns the nearest intersection over all spheres
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	var closestHit material.HitRecord
	closestSoFar := tMax
	hitAnything := false

	for _, sphere := range l.spheres {
		if hit, isHit := sphere.Hit(ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}

package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/math"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point    math.Point        // A point on the plane
	Normal   math.Vector       // Normal vector (should be normalized)
	Material material.Material // Material of the plane
}

// NewPlane creates a new plane
func NewPlane(point math.Point, normal math.Vector, mat material.Material) *Plane {
	return &Plane{
		Point:    point,
		Normal:   normal.Normalize(), // Ensure normal is normalized
		Material: mat,
	}
}

// Intersect tests if a ray intersects with the plane.
// The stored normal is returned as is; it is not flipped toward the ray, so
// both faces shade with the same normal.
func (p *Plane) Intersect(ray math.Ray) (*material.HitRecord, bool) {
	bottom := p.Normal.Dot(ray.Direction)

	// Parallel ray
	if bottom == 0 {
		return nil, false
	}

	t := p.Normal.Dot(p.Point.Subtract(ray.Origin)) / bottom
	if t <= 0 {
		return nil, false
	}

	return &material.HitRecord{
		Point:    ray.At(t),
		Normal:   p.Normal,
		T:        t,
		Material: p.Material,
	}, true
}

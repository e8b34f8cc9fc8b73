package geometry

import (
	gomath "math"

	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/math"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   math.Point
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center math.Point, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Intersect tests if a ray intersects with the sphere using the geometric
// (projection) test.
//
// Rays are rejected when the center projects behind the origin, so a ray
// starting inside the sphere past its center misses. The nearer root is
// taken without a positivity check, so an origin inside the sphere but
// before its center reports a hit behind the origin.
func (s *Sphere) Intersect(ray math.Ray) (*material.HitRecord, bool) {
	// Vector from ray origin to sphere center, and its projection on the ray
	l := s.Center.Subtract(ray.Origin)
	tc := l.Dot(ray.Direction)
	if tc < 0 {
		return nil, false
	}

	// Squared distance from the center to the ray
	d := l.SquaredLength() - tc*tc
	radiusSquared := s.Radius * s.Radius
	if d > radiusSquared {
		return nil, false
	}

	thc := gomath.Sqrt(radiusSquared - d)
	t := gomath.Min(tc-thc, tc+thc)

	hitPoint := ray.At(t)
	return &material.HitRecord{
		Point:    hitPoint,
		Normal:   hitPoint.Subtract(s.Center).Normalize(),
		T:        t,
		Material: s.Material,
	}, true
}

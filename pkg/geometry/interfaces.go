package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/math"
)

// Shape interface for objects that can be hit by rays
type Shape interface {
	Intersect(ray math.Ray) (*material.HitRecord, bool)
}

package lights

import "github.com/df07/go-whitted-raytracer/pkg/math"

// PointLight is an infinitely small light source.
// Color is the light's intensity and is not normalized to [0,1].
type PointLight struct {
	Point math.Point
	Color math.Color
}

// NewPointLight creates a new point light
func NewPointLight(point math.Point, color math.Color) PointLight {
	return PointLight{Point: point, Color: color}
}

// RayFrom returns the shadow ray from origin toward the light
func (l PointLight) RayFrom(origin math.Point) math.Ray {
	return origin.RayTo(l.Point)
}

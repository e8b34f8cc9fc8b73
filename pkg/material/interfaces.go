package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/math"
)

// Material interface for surfaces that can be shaded
type Material interface {
	// Shade returns the color seen along ray at hit. depth is the number of
	// reflection bounces that led to this ray (0 for primary rays).
	Shade(ray math.Ray, hit HitRecord, tracer Tracer, depth int) math.Color
}

// Tracer is the view of the scene available to materials: occlusion
// queries for shadow rays, recursive tracing for reflections, and the light.
type Tracer interface {
	Intersect(ray math.Ray) (*HitRecord, bool)
	TraceDepth(ray math.Ray, depth int) (math.Color, bool)
	PointLight() lights.PointLight
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point    math.Point  // Point of intersection
	Normal   math.Vector // Unit surface normal, pointing away from the surface
	T        float64     // Parameter t along the ray
	Material Material    // Material of the hit object
}

package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/math"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// DefaultMaxDepth is the reflection depth used when Scene.MaxDepth is unset
const DefaultMaxDepth = 50

// Scene contains all the elements needed for rendering
type Scene struct {
	Name     string
	Shapes   []geometry.Shape  // Objects in the scene, in scan order
	Light    lights.PointLight // The single light source
	Camera   *renderer.Camera
	MaxDepth int // Maximum reflection depth; 0 or less uses DefaultMaxDepth
}

var (
	_ geometry.Shape  = (*Scene)(nil)
	_ material.Tracer = (*Scene)(nil)
	_ renderer.Scene  = (*Scene)(nil)
)

// NewScene creates a scene lit by light
func NewScene(light lights.PointLight, shapes ...geometry.Shape) *Scene {
	return &Scene{
		Shapes: shapes,
		Light:  light,
	}
}

// Add appends shapes to the scene
func (s *Scene) Add(shapes ...geometry.Shape) {
	s.Shapes = append(s.Shapes, shapes...)
}

// Intersect returns the nearest hit among all shapes. A later shape only
// replaces the current hit if it is strictly closer.
func (s *Scene) Intersect(ray math.Ray) (*material.HitRecord, bool) {
	var closest *material.HitRecord
	for _, shape := range s.Shapes {
		hit, isHit := shape.Intersect(ray)
		if isHit && (closest == nil || hit.T < closest.T) {
			closest = hit
		}
	}
	return closest, closest != nil
}

// ColorForRay returns the shaded color for a primary ray, or false if the
// ray hits nothing
func (s *Scene) ColorForRay(ray math.Ray) (math.Color, bool) {
	return s.TraceDepth(ray, 0)
}

// TraceDepth shades ray as the depth-th bounce. Rays past the maximum depth
// are treated as misses.
func (s *Scene) TraceDepth(ray math.Ray, depth int) (math.Color, bool) {
	if depth > s.maxDepth() {
		return math.Black, false
	}

	hit, isHit := s.Intersect(ray)
	if !isHit {
		return math.Black, false
	}
	return hit.Material.Shade(ray, *hit, s, depth), true
}

// PointLight returns the scene light
func (s *Scene) PointLight() lights.PointLight {
	return s.Light
}

// GetCamera returns the camera
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

func (s *Scene) maxDepth() int {
	if s.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return s.MaxDepth
}

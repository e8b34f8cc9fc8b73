package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/math"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// NewDefaultScene creates two reflective spheres in the corner of a red
// floor and a green wall, viewed through a 1000x1000 screen camera
func NewDefaultScene() *Scene {
	light := lights.NewPointLight(
		math.NewPoint(1000, 1000, -500),
		math.NewColor(0.9, 0.9, 0.9).Scale(0.2),
	)

	s := NewScene(light)
	s.Name = "default"
	s.Camera = renderer.NewScreenCamera(math.NewPoint(500, 500, -500), 1000, 1000)

	// Create materials
	greenMirror := material.NewReflective(0.2, math.NewColor(0, 1, 0))
	redMirror := material.NewReflective(0.2, math.NewColor(1, 0, 0.1))
	red := material.NewDiffuse(math.NewColor(1, 0, 0))
	green := material.NewDiffuse(math.NewColor(0, 1, 0))

	s.Add(
		geometry.NewSphere(math.NewPoint(500, 500, 500), 500, greenMirror),
		geometry.NewSphere(math.NewPoint(0, 500, 50), 50, redMirror),
		geometry.NewPlane(math.NewPoint(0, -1000, 0), math.NewVector(0, 1, 0), red),
		geometry.NewPlane(math.NewPoint(-1000, 0, 0), math.NewVector(1, 0, 0), green),
	)

	return s
}

// NewClassicScene creates a single large green sphere lit from the upper
// right
func NewClassicScene() *Scene {
	light := lights.NewPointLight(math.NewPoint(1000, 1000, -500), math.NewColor(0.5, 0.5, 0.5))

	s := NewScene(light,
		geometry.NewSphere(math.NewPoint(500, 500, 500), 500, material.NewDiffuse(math.NewColor(0, 1, 0))),
	)
	s.Name = "classic"
	s.Camera = renderer.NewScreenCamera(math.NewPoint(500, 500, -500), 1000, 1000)
	return s
}

// NewSingleSphereScene creates a unit green sphere five units in front of a
// camera at the origin, lit from above by a green light. Red and blue only
// receive the faint specular tint.
func NewSingleSphereScene() *Scene {
	light := lights.NewPointLight(math.NewPoint(0, 5, 0), math.NewColor(0, 1, 0))

	s := NewScene(light,
		geometry.NewSphere(math.NewPoint(0, 0, 5), 1, material.NewDiffuse(math.NewColor(0, 1, 0))),
	)
	s.Name = "single-sphere"
	s.Camera = renderer.NewCamera(renderer.CameraConfig{
		Eye:    math.NewPoint(0, 0, 0),
		LookAt: math.NewPoint(0, 0, 5),
		Up:     math.NewVector(0, 1, 0),
		VFov:   30,
		Width:  400,
		Height: 400,
	})
	return s
}

// NewMirrorBoxScene places a sphere between two parallel mirrors. Rays that
// bounce between the mirrors are cut off at MaxDepth.
func NewMirrorBoxScene() *Scene {
	light := lights.NewPointLight(math.NewPoint(0, 8, -4), math.NewColor(0.8, 0.8, 0.8))

	mirror := material.NewReflective(0.9, math.NewColor(0.8, 0.8, 0.9))
	floor := material.NewDiffuse(math.NewColor(0.6, 0.6, 0.6))
	blue := material.NewReflective(0.1, math.NewColor(0.1, 0.2, 0.9))

	s := NewScene(light,
		geometry.NewPlane(math.NewPoint(-3, 0, 0), math.NewVector(1, 0, 0), mirror),
		geometry.NewPlane(math.NewPoint(3, 0, 0), math.NewVector(-1, 0, 0), mirror),
		geometry.NewPlane(math.NewPoint(0, -1, 0), math.NewVector(0, 1, 0), floor),
		geometry.NewSphere(math.NewPoint(0, 0, 2), 1, blue),
	)
	s.Name = "mirror-box"
	s.MaxDepth = 16
	s.Camera = renderer.NewCamera(renderer.CameraConfig{
		Eye:    math.NewPoint(0, 1, -6),
		LookAt: math.NewPoint(0, 0, 2),
		Up:     math.NewVector(0, 1, 0),
		VFov:   60,
		Width:  480,
		Height: 320,
	})
	return s
}

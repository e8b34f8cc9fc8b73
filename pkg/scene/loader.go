package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/math"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// ErrInvalidScene is wrapped by every validation error from the loader
var ErrInvalidScene = errors.New("invalid scene")

// SceneFile is the JSON description of a scene
type SceneFile struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	MaxDepth    int                     `json:"maxDepth"`
	Light       *LightSpec              `json:"light"`
	Camera      *CameraSpec             `json:"camera"`
	Materials   map[string]MaterialSpec `json:"materials"`
	Shapes      []ShapeSpec             `json:"shapes"`
}

// LightSpec describes the point light
type LightSpec struct {
	Point [3]float64 `json:"point"`
	Color [3]float64 `json:"color"`
}

// CameraSpec describes either a look-at camera or a screen camera
type CameraSpec struct {
	Type   string      `json:"type"` // "lookat" (default) or "screen"
	Eye    [3]float64  `json:"eye"`
	LookAt [3]float64  `json:"lookAt"`
	Up     *[3]float64 `json:"up"`
	VFov   float64     `json:"vfov"`
	Width  int         `json:"width"`
	Height int         `json:"height"`
}

// MaterialSpec describes a diffuse or reflective material
type MaterialSpec struct {
	Type         string      `json:"type"` // "diffuse" or "reflective"
	Color        [3]float64  `json:"color"`
	Ambient      *[3]float64 `json:"ambient"`
	Specular     *float64    `json:"specular"`
	Reflectivity float64     `json:"reflectivity"`
}

// ShapeSpec describes a sphere or a plane
type ShapeSpec struct {
	Type     string     `json:"type"` // "sphere" or "plane"
	Material string     `json:"material"`
	Center   [3]float64 `json:"center"`
	Radius   float64    `json:"radius"`
	Point    [3]float64 `json:"point"`
	Normal   [3]float64 `json:"normal"`
}

// LoadFile loads a JSON scene from disk
func LoadFile(path string) (*Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	s, err := LoadJSON(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return s, nil
}

// LoadJSON decodes and builds a scene. Unknown fields are rejected.
func LoadJSON(r io.Reader) (*Scene, error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	var file SceneFile
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}
	return file.Build()
}

// Build validates the description and assembles the scene
func (f SceneFile) Build() (*Scene, error) {
	if f.Light == nil {
		return nil, fmt.Errorf("%w: light is required", ErrInvalidScene)
	}
	if f.Camera == nil {
		return nil, fmt.Errorf("%w: camera is required", ErrInvalidScene)
	}

	camera, err := f.Camera.build()
	if err != nil {
		return nil, err
	}

	materials := make(map[string]material.Material, len(f.Materials))
	for name, spec := range f.Materials {
		m, err := spec.build()
		if err != nil {
			return nil, fmt.Errorf("%w: materials[%q]: %v", ErrInvalidScene, name, err)
		}
		materials[name] = m
	}

	s := NewScene(lights.NewPointLight(toPoint(f.Light.Point), toColor(f.Light.Color)))
	s.Name = f.Name
	s.Camera = camera
	s.MaxDepth = f.MaxDepth

	for i, spec := range f.Shapes {
		m, ok := materials[spec.Material]
		if !ok {
			return nil, fmt.Errorf("%w: shapes[%d]: unknown material %q", ErrInvalidScene, i, spec.Material)
		}
		shape, err := spec.build(m)
		if err != nil {
			return nil, fmt.Errorf("%w: shapes[%d]: %v", ErrInvalidScene, i, err)
		}
		s.Add(shape)
	}

	return s, nil
}

func (c CameraSpec) build() (*renderer.Camera, error) {
	if c.Width <= 0 || c.Height <= 0 {
		return nil, fmt.Errorf("%w: camera width and height must be positive, got %dx%d", ErrInvalidScene, c.Width, c.Height)
	}

	switch c.Type {
	case "screen":
		return renderer.NewScreenCamera(toPoint(c.Eye), c.Width, c.Height), nil
	case "", "lookat":
		up := math.NewVector(0, 1, 0)
		if c.Up != nil {
			up = toVector(*c.Up)
		}
		if c.VFov <= 0 || c.VFov >= 180 {
			return nil, fmt.Errorf("%w: camera vfov must be in (0, 180), got %g", ErrInvalidScene, c.VFov)
		}
		return renderer.NewCamera(renderer.CameraConfig{
			Eye:    toPoint(c.Eye),
			LookAt: toPoint(c.LookAt),
			Up:     up,
			VFov:   c.VFov,
			Width:  c.Width,
			Height: c.Height,
		}), nil
	default:
		return nil, fmt.Errorf("%w: unknown camera type %q", ErrInvalidScene, c.Type)
	}
}

func (m MaterialSpec) build() (material.Material, error) {
	ambient := material.DefaultAmbient
	if m.Ambient != nil {
		ambient = toColor(*m.Ambient)
	}

	switch m.Type {
	case "diffuse":
		d := material.NewDiffuse(toColor(m.Color))
		d.Ambient = ambient
		if m.Specular != nil {
			d.Specular = *m.Specular
		}
		return d, nil
	case "reflective":
		r := material.NewReflective(m.Reflectivity, toColor(m.Color))
		r.Ambient = ambient
		if m.Specular != nil {
			r.Specular = *m.Specular
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unknown material type %q", m.Type)
	}
}

func (s ShapeSpec) build(m material.Material) (geometry.Shape, error) {
	switch s.Type {
	case "sphere":
		if s.Radius <= 0 {
			return nil, fmt.Errorf("sphere radius must be positive, got %g", s.Radius)
		}
		return geometry.NewSphere(toPoint(s.Center), s.Radius, m), nil
	case "plane":
		normal := toVector(s.Normal)
		if normal.SquaredLength() == 0 {
			return nil, fmt.Errorf("plane normal must be non-zero")
		}
		return geometry.NewPlane(toPoint(s.Point), normal, m), nil
	default:
		return nil, fmt.Errorf("unknown shape type %q", s.Type)
	}
}

func toPoint(v [3]float64) math.Point   { return math.NewPoint(v[0], v[1], v[2]) }
func toVector(v [3]float64) math.Vector { return math.NewVector(v[0], v[1], v[2]) }
func toColor(v [3]float64) math.Color   { return math.NewColor(v[0], v[1], v[2]) }

package material

import "github.com/df07/go-whitted-raytracer/pkg/math"

// Diffuse is an opaque material lit by ambient, lambertian and specular terms
type Diffuse struct {
	Color    math.Color // Base color
	Ambient  math.Color // Ambient factor applied to Color
	Specular float64    // Specular exponent
}

// DefaultDiffuseSpecular is the specular exponent used by NewDiffuse
const DefaultDiffuseSpecular = 100

// NewDiffuse creates a diffuse material with default ambient and specular
func NewDiffuse(color math.Color) *Diffuse {
	return &Diffuse{
		Color:    color,
		Ambient:  DefaultAmbient,
		Specular: DefaultDiffuseSpecular,
	}
}

// Shade implements the Material interface
func (d *Diffuse) Shade(ray math.Ray, hit HitRecord, tracer Tracer, depth int) math.Color {
	color, _ := shadeLocal(ray, hit, tracer, d.Color, d.Ambient, d.Specular)
	return color
}

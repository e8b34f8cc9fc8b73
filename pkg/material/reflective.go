package material

import "github.com/df07/go-whitted-raytracer/pkg/math"

// Reflective blends diffuse shading with a perfect mirror reflection
type Reflective struct {
	Reflectivity float64    // Share of the mirror term, expected in [0,1]
	Color        math.Color // Base color
	Ambient      math.Color // Ambient factor applied to Color
	Specular     float64    // Specular exponent
}

// DefaultReflectiveSpecular is the specular exponent used by NewReflective
const DefaultReflectiveSpecular = 10

// NewReflective creates a reflective material with default ambient and
// specular. Reflectivity is not validated.
func NewReflective(reflectivity float64, color math.Color) *Reflective {
	return &Reflective{
		Reflectivity: reflectivity,
		Color:        color,
		Ambient:      DefaultAmbient,
		Specular:     DefaultReflectiveSpecular,
	}
}

// Shade implements the Material interface
func (r *Reflective) Shade(ray math.Ray, hit HitRecord, tracer Tracer, depth int) math.Color {
	local, offsetPoint := shadeLocal(ray, hit, tracer, r.Color, r.Ambient, r.Specular)

	reflected := math.NewRay(offsetPoint, reflect(ray.Direction, hit.Normal))
	reflectedColor, ok := tracer.TraceDepth(reflected, depth+1)
	if !ok {
		reflectedColor = math.Black
	}

	return local.Scale(1 - r.Reflectivity).Add(reflectedColor.Scale(r.Reflectivity))
}

package material

import (
	gomath "math"

	"github.com/df07/go-whitted-raytracer/pkg/math"
)

// ShadowBias is how far along the normal secondary rays start, so they do
// not re-hit the surface they leave.
const ShadowBias = 1e-4

// SpecularTint is the color of every specular highlight
var SpecularTint = math.NewColor(0.3, 0, 0)

// DefaultAmbient is the ambient factor used by the material constructors
var DefaultAmbient = math.NewColor(0.1, 0.1, 0.1)

// shadeLocal computes ambient, lambertian and Blinn specular terms at hit.
// It also returns the biased point that secondary rays should start from.
//
// The shadow test accepts a blocker at any distance, including one beyond
// the light. The specular base is not clamped, so math.Pow yields NaN for a
// negative base with a non-integer exponent.
func shadeLocal(ray math.Ray, hit HitRecord, tracer Tracer, albedo, ambient math.Color, specular float64) (math.Color, math.Point) {
	color := albedo.Multiply(ambient)
	light := tracer.PointLight()

	offsetPoint := hit.Point.Add(hit.Normal.Multiply(ShadowBias))
	rayToLight := light.RayFrom(offsetPoint)
	if _, blocked := tracer.Intersect(rayToLight); blocked {
		return color, offsetPoint
	}

	lambert := gomath.Max(0, hit.Normal.Dot(rayToLight.Direction))
	color = color.Add(light.Color.Scale(lambert))

	h := ray.Direction.Negate().Add(rayToLight.Direction).Normalize()
	intensity := gomath.Pow(hit.Normal.Dot(h), specular)
	color = color.Add(SpecularTint.Scale(intensity))

	return color, offsetPoint
}

// reflect calculates the reflection of a vector v off a surface with normal n
func reflect(v, n math.Vector) math.Vector {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

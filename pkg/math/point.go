package math

// Point represents a position in world space.
// Points can be offset by a Vector and subtracted from each other, but not
// added together or scaled.
type Point struct {
	X, Y, Z float64
}

// NewPoint creates a new Point
func NewPoint(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}

// Add returns the point displaced by v
func (p Point) Add(v Vector) Point {
	return Point{p.X + v.X, p.Y + v.Y, p.Z + v.Z}
}

// Subtract returns the displacement from other to p
func (p Point) Subtract(other Point) Vector {
	return Vector{p.X - other.X, p.Y - other.Y, p.Z - other.Z}
}

// RayTo returns a ray starting at p with unit direction toward other
func (p Point) RayTo(other Point) Ray {
	return Ray{Origin: p, Direction: other.Subtract(p).Normalize()}
}

package math

// Color is a linear RGB triple used while shading.
// Components are unbounded; additive lighting routinely exceeds 1.0 and is
// only clamped when converted to 8-bit pixels.
type Color struct {
	R, G, B float64
}

// Black is the zero color
var Black = Color{}

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// Add returns the componentwise sum
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Multiply returns the componentwise product
func (c Color) Multiply(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Scale returns the color premultiplied by s
func (c Color) Scale(s float64) Color {
	return Color{s * c.R, s * c.G, s * c.B}
}

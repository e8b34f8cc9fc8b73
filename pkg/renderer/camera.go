package renderer

import (
	gomath "math"

	"github.com/df07/go-whitted-raytracer/pkg/math"
)

// CameraConfig describes a look-at pinhole camera
type CameraConfig struct {
	Eye    math.Point  // Camera position
	LookAt math.Point  // Point the camera looks at
	Up     math.Vector // Up direction
	VFov   float64     // Vertical field of view in degrees
	Width  int         // Image width in pixels
	Height int         // Image height in pixels
}

// Camera generates primary rays from an eye point through an image plane
type Camera struct {
	eye        math.Point
	lowerLeft  math.Point
	horizontal math.Vector
	vertical   math.Vector
	width      int
	height     int
	config     *CameraConfig // nil for screen cameras
}

// NewCamera creates a look-at camera with the image plane one unit in
// front of the eye
func NewCamera(config CameraConfig) *Camera {
	theta := config.VFov * gomath.Pi / 180
	viewportHeight := 2 * gomath.Tan(theta/2)
	viewportWidth := viewportHeight * float64(config.Width) / float64(config.Height)

	w := config.Eye.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	horizontal := u.Multiply(viewportWidth)
	vertical := v.Multiply(viewportHeight)
	lowerLeft := config.Eye.
		Add(horizontal.Multiply(-0.5)).
		Add(vertical.Multiply(-0.5)).
		Add(w.Negate())

	cfg := config
	return &Camera{
		eye:        config.Eye,
		lowerLeft:  lowerLeft,
		horizontal: horizontal,
		vertical:   vertical,
		width:      config.Width,
		height:     config.Height,
		config:     &cfg,
	}
}

// NewScreenCamera creates a camera whose image plane is the z=0 rectangle
// [0,width]×[0,height] in world units, so pixel (x, y) looks at world
// point (x, y, 0) with y growing upward.
func NewScreenCamera(eye math.Point, width, height int) *Camera {
	return &Camera{
		eye:        eye,
		lowerLeft:  math.NewPoint(0, 0, 0),
		horizontal: math.NewVector(float64(width), 0, 0),
		vertical:   math.NewVector(0, float64(height), 0),
		width:      width,
		height:     height,
	}
}

// Width returns the image width in pixels
func (c *Camera) Width() int { return c.width }

// Height returns the image height in pixels
func (c *Camera) Height() int { return c.height }

// Resize returns a camera with a new image resolution. Look-at cameras are
// rebuilt for the new aspect ratio; screen cameras keep their image plane
// and sample it more or less densely.
func (c *Camera) Resize(width, height int) *Camera {
	if c.config != nil {
		cfg := *c.config
		cfg.Width = width
		cfg.Height = height
		return NewCamera(cfg)
	}
	resized := *c
	resized.width = width
	resized.height = height
	return &resized
}

// GetRay returns the primary ray for pixel column i and row j, with row 0 at
// the top of the image. Rays pass through the pixel corner; there is no
// jitter.
func (c *Camera) GetRay(i, j int) math.Ray {
	s := float64(i) / float64(c.width)
	t := float64(c.height-1-j) / float64(c.height)

	target := c.lowerLeft.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t))

	return c.eye.RayTo(target)
}

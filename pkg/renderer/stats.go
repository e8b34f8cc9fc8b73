package renderer

import (
	"image"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels      int           // Total number of pixels rendered
	HitPixels        int           // Pixels whose primary ray hit something
	BackgroundPixels int           // Pixels left untouched
	Elapsed          time.Duration // Wall time of the render
}

// Coverage returns the fraction of pixels that hit geometry
func (s RenderStats) Coverage() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.HitPixels) / float64(s.TotalPixels)
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of the
// opaque pixels in img, in [0,1]. Transparent background pixels are skipped.
func CalculateAverageLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	total := 0.0
	count := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if c.A == 0 {
				continue
			}
			r := float64(c.R) / 255
			g := float64(c.G) / 255
			b := float64(c.B) / 255
			total += 0.2126*r + 0.7152*g + 0.0722*b
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

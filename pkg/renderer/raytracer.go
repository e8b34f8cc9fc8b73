package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	gomath "math"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-whitted-raytracer/pkg/math"
)

// ErrNoCamera is returned when the scene has no camera to render from
var ErrNoCamera = errors.New("scene has no camera")

// Config contains rendering configuration
type Config struct {
	Workers int // Rows rendered concurrently; 1 or less renders sequentially
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{Workers: 1}
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	ColorForRay(ray math.Ray) (math.Color, bool)
}

// Raytracer drives the per-pixel loop over a scene
type Raytracer struct {
	scene  Scene
	config Config
	logger Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(scene Scene, config Config, logger Logger) *Raytracer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Raytracer{
		scene:  scene,
		config: config,
		logger: logger,
	}
}

// Render traces one primary ray per pixel. Pixels whose ray escapes the
// scene are left as transparent zero values.
//
// Cancellation is checked between rows; on cancellation the partial image
// is returned together with the context error.
func (rt *Raytracer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	camera := rt.scene.GetCamera()
	if camera == nil {
		return nil, RenderStats{}, ErrNoCamera
	}

	width, height := camera.Width(), camera.Height()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	startTime := time.Now()

	var hits int64
	var err error
	if rt.config.Workers <= 1 {
		for j := 0; j < height; j++ {
			if err = ctx.Err(); err != nil {
				break
			}
			hits += int64(rt.renderRow(img, camera, j))
		}
	} else {
		err = rt.renderParallel(ctx, img, camera, &hits)
	}

	stats := RenderStats{
		TotalPixels:      width * height,
		HitPixels:        int(hits),
		BackgroundPixels: width*height - int(hits),
		Elapsed:          time.Since(startTime),
	}
	if err != nil {
		return img, stats, fmt.Errorf("render interrupted: %w", err)
	}

	rt.logger.Printf("Rendered %dx%d in %v (%d of %d pixels hit)\n",
		width, height, stats.Elapsed, stats.HitPixels, stats.TotalPixels)
	return img, stats, nil
}

// renderParallel hands rows to a bounded group of goroutines. Each row is
// written by exactly one goroutine and the scene is only read.
func (rt *Raytracer) renderParallel(ctx context.Context, img *image.RGBA, camera *Camera, hits *int64) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rt.config.Workers)

	for j := 0; j < camera.Height(); j++ {
		if gctx.Err() != nil {
			break
		}
		j := j
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			atomic.AddInt64(hits, int64(rt.renderRow(img, camera, j)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// renderRow shades every pixel of row j and returns how many rays hit
func (rt *Raytracer) renderRow(img *image.RGBA, camera *Camera, j int) int {
	hits := 0
	for i := 0; i < camera.Width(); i++ {
		ray := camera.GetRay(i, j)
		if c, ok := rt.scene.ColorForRay(ray); ok {
			img.SetRGBA(i, j, ToRGBA(c))
			hits++
		}
	}
	return hits
}

// ToRGBA converts a shading color to an opaque 8-bit pixel.
// Channels are scaled by 255 and truncated toward zero, then clamped to
// [0,255]; NaN becomes 0.
func ToRGBA(c math.Color) color.RGBA {
	return color.RGBA{
		R: toChannel(c.R),
		G: toChannel(c.G),
		B: toChannel(c.B),
		A: 255,
	}
}

func toChannel(v float64) uint8 {
	scaled := gomath.Trunc(v * 255)
	switch {
	case gomath.IsNaN(scaled), scaled <= 0:
		return 0
	case scaled >= 255:
		return 255
	default:
		return uint8(scaled)
	}
}

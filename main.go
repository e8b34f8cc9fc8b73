package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/imageio"
	"github.com/df07/go-whitted-raytracer/pkg/publish"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	sceneName string
	width     int
	height    int
	outDir    string
	format    imageio.Format
	workers   int
	maxDepth  int
	publish   bool
}

func main() {
	// Parse command line flags
	sceneName := flag.String("scene", "default", "Scene name ("+strings.Join(scene.Names(), ", ")+") or path to a .json scene")
	width := flag.Int("width", 0, "Override image width (0 keeps the scene's camera)")
	height := flag.Int("height", 0, "Override image height (0 keeps the scene's camera)")
	outDir := flag.String("out", "output", "Output directory")
	format := flag.String("format", "tga", "Output format: tga, png, jpeg or bmp")
	workers := flag.Int("workers", 1, "Rows rendered in parallel (0 uses all CPUs)")
	maxDepth := flag.Int("max-depth", 0, "Override the scene's reflection depth limit")
	publishFlag := flag.Bool("publish", false, "Upload the render to S3 (RAYTRACER_S3_* in the environment or .env)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		printHelp()
		return
	}

	f, err := imageio.ParseFormat(*format)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	opts := options{
		sceneName: *sceneName,
		width:     *width,
		height:    *height,
		outDir:    *outDir,
		format:    f,
		workers:   *workers,
		maxDepth:  *maxDepth,
		publish:   *publishFlag,
	}
	if opts.workers == 0 {
		opts.workers = runtime.NumCPU()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	scenes, _ := scene.ListAllScenes("scenes")
	for _, info := range scenes {
		fmt.Printf("  %-28s %s\n", info.ID, info.Description)
	}
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.<format>")
}

func run(ctx context.Context, opts options) error {
	fmt.Println("Starting Whitted Raytracer...")

	s, err := createScene(opts.sceneName)
	if err != nil {
		return err
	}
	applyOverrides(s, opts)

	outputDir := createOutputDir(opts.outDir, opts.sceneName)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	fmt.Printf("Rendering %s at %dx%d with %d worker(s)...\n",
		opts.sceneName, s.Camera.Width(), s.Camera.Height(), opts.workers)

	raytracer := renderer.NewRaytracer(s, renderer.Config{Workers: opts.workers}, nil)
	img, stats, err := raytracer.Render(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Render completed in %v\n", stats.Elapsed)
	fmt.Printf("Coverage: %.1f%% (%d of %d pixels hit)\n",
		stats.Coverage()*100, stats.HitPixels, stats.TotalPixels)

	var buf bytes.Buffer
	if err := imageio.Encode(&buf, img, opts.format); err != nil {
		return err
	}

	// Create timestamped filename
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.%s", timestamp, opts.format.Extension()))
	if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("error saving render: %w", err)
	}
	fmt.Printf("Render saved as %s\n", filename)

	if opts.publish {
		key := filepath.ToSlash(filepath.Join(filepath.Base(outputDir), filepath.Base(filename)))
		if err := publishRender(ctx, key, buf.Bytes(), opts.format.ContentType()); err != nil {
			return err
		}
	}

	return nil
}

// createScene resolves a built-in scene name or a .json scene path
func createScene(name string) (*scene.Scene, error) {
	if name == "" {
		return nil, errors.New("scene name is required")
	}

	s, err := scene.Lookup(name)
	if err != nil {
		if errors.Is(err, scene.ErrUnknownScene) {
			return nil, fmt.Errorf("%w (available: %s)", err, strings.Join(scene.Names(), ", "))
		}
		return nil, err
	}
	return s, nil
}

// applyOverrides resizes the camera and sets the depth limit from flags.
// A zero width or height keeps the camera's value.
func applyOverrides(s *scene.Scene, opts options) {
	if opts.width > 0 || opts.height > 0 {
		w, h := s.Camera.Width(), s.Camera.Height()
		if opts.width > 0 {
			w = opts.width
		}
		if opts.height > 0 {
			h = opts.height
		}
		s.Camera = s.Camera.Resize(w, h)
	}
	if opts.maxDepth > 0 {
		s.MaxDepth = opts.maxDepth
	}
}

// createOutputDir returns root/<scene>, using the file name without
// extension for .json scene paths
func createOutputDir(root, sceneName string) string {
	base := sceneName
	if strings.HasSuffix(sceneName, ".json") {
		base = strings.TrimSuffix(filepath.Base(sceneName), ".json")
	}
	return filepath.Join(root, base)
}

func publishRender(ctx context.Context, key string, data []byte, contentType string) error {
	cfg := publish.ConfigFromEnv()
	publisher, err := publish.NewS3Publisher(cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	uploaded, err := publisher.Publish(ctx, key, data, contentType)
	if err != nil {
		return err
	}
	fmt.Printf("Published s3://%s/%s in %v\n", cfg.Bucket, uploaded, time.Since(start))
	return nil
}

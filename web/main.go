package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/publish"
	"github.com/df07/go-whitted-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	scenesDir := flag.String("scenes", "scenes", "Directory of .json scenes")
	workers := flag.Int("workers", 0, "Maximum rows rendered in parallel per request (0 uses all CPUs)")
	flag.Parse()

	opts := server.Options{
		ScenesDir:  *scenesDir,
		MaxWorkers: *workers,
	}

	// S3 publishing is enabled when RAYTRACER_S3_BUCKET is set
	if cfg := publish.ConfigFromEnv(); cfg.Enabled() {
		publisher, err := publish.NewS3Publisher(cfg)
		if err != nil {
			log.Printf("Error configuring S3 publishing: %v", err)
			os.Exit(1)
		}
		opts.Publisher = publisher
		log.Printf("Publishing renders to bucket %s", cfg.Bucket)
	}

	// Create and start web server
	webServer := server.NewServer(*port, opts)

	log.Printf("Whitted Raytracer Web Server")
	log.Printf("Visit http://localhost:%d/api/scenes to list scenes", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}

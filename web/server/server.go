package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"runtime"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Publisher uploads encoded renders and returns the stored key.
// *publish.S3Publisher implements it.
type Publisher interface {
	Publish(ctx context.Context, name string, data []byte, contentType string) (string, error)
}

// Options configures optional server features
type Options struct {
	ScenesDir  string      // Directory scanned for .json scenes
	Publisher  Publisher   // Optional; enables publish=true on renders
	MaxWorkers int         // Upper bound for the workers parameter; 0 uses all CPUs
	Console    *ConsoleLog // Optional; defaults to a new log of DefaultConsoleSize
}

// Server handles web requests for the whitted raytracer
type Server struct {
	port       int
	scenesDir  string
	publisher  Publisher
	maxWorkers int
	console    *ConsoleLog
}

// NewServer creates a new web server
func NewServer(port int, opts Options) *Server {
	maxWorkers := opts.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}
	console := opts.Console
	if console == nil {
		console = NewConsoleLog(DefaultConsoleSize)
	}
	return &Server{
		port:       port,
		scenesDir:  opts.ScenesDir,
		publisher:  opts.Publisher,
		maxWorkers: maxWorkers,
		console:    console,
	}
}

// Handler returns the routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleIndex)

	// API endpoints
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/console", s.handleConsole)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleIndex lists the API endpoints at the root; other paths are 404
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not found: "+r.URL.Path)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"name": "whitted raytracer",
		"endpoints": []string{
			"/api/health",
			"/api/scenes",
			"/api/render?scene=&format=&width=&height=&thumb=&workers=&maxDepth=&publish=",
			"/api/inspect?scene=&x=&y=",
			"/api/console",
		},
	})
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "ok",
		"publishing": s.publisher != nil,
	})
}

// handleScenes lists built-in and JSON scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, scenes)
}

// createScene resolves a built-in name or a JSON scene listed in the
// scenes directory. Arbitrary file paths are refused.
func (s *Server) createScene(name string) (*scene.Scene, error) {
	if strings.HasSuffix(name, ".json") {
		jsonScenes, err := scene.ListJSONScenes(s.scenesDir)
		if err != nil {
			return nil, err
		}
		for _, info := range jsonScenes {
			if info.ID == name {
				return scene.LoadFile(info.FilePath)
			}
		}
		return nil, fmt.Errorf("%w: %q", scene.ErrUnknownScene, name)
	}
	return scene.Lookup(name)
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

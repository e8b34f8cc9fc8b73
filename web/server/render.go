package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/imageio"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Thumbnail bounds for the thumb parameter
const (
	MinThumbSize = 16
	MaxThumbSize = 2048
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene    string         // Scene name or JSON scene ID
	Format   imageio.Format // Response encoding
	Width    int            // 0 keeps the scene's camera
	Height   int            // 0 keeps the scene's camera
	Thumb    int            // 0 disables thumbnailing
	Workers  int            // Rows rendered in parallel
	MaxDepth int            // 0 keeps the scene's depth limit
	Publish  bool           // Upload the encoded image to S3 as well
}

// handleRender renders a scene and streams the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}
	if req.Publish && s.publisher == nil {
		writeError(w, http.StatusBadRequest, "publishing is not configured")
		return
	}

	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, scene.ErrUnknownScene) {
			status = http.StatusNotFound
		}
		writeError(w, status, err.Error())
		return
	}
	applyOverrides(sceneObj, req)

	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	logger := NewWebLogger(renderID, s.console)
	logger.Printf("Rendering %s at %dx%d with %d worker(s)\n",
		req.Scene, sceneObj.Camera.Width(), sceneObj.Camera.Height(), req.Workers)

	// Use request context to stop when the client disconnects
	raytracer := renderer.NewRaytracer(sceneObj, renderer.Config{Workers: req.Workers}, logger)
	img, stats, err := raytracer.Render(r.Context())
	if err != nil {
		logger.Printf("Render of %s stopped: %v\n", req.Scene, err)
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := imageio.Encode(&buf, imageio.Thumbnail(img, req.Thumb), req.Format); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if req.Publish {
		name := fmt.Sprintf("%s/%s.%s", sceneKey(req.Scene), renderID, req.Format.Extension())
		key, err := s.publisher.Publish(r.Context(), name, buf.Bytes(), req.Format.ContentType())
		if err != nil {
			logger.Printf("Publish failed: %v\n", err)
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		w.Header().Set("X-Published-Key", key)
	}

	w.Header().Set("Content-Type", req.Format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
	w.Header().Set("X-Render-Coverage", strconv.FormatFloat(stats.Coverage(), 'f', 4, 64))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Printf("Failed to stream image: %v\n", err)
	}
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	format := query.Get("format")
	if format == "" {
		format = "png"
	}
	if req.Format, err = imageio.ParseFormat(format); err != nil {
		return nil, err
	}

	if req.Width, err = parseIntParam(query, "width", 0, 1, 4096); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 0, 1, 4096); err != nil {
		return nil, err
	}
	if req.Thumb, err = parseIntParam(query, "thumb", 0, MinThumbSize, MaxThumbSize); err != nil {
		return nil, err
	}
	if req.Workers, err = parseIntParam(query, "workers", s.maxWorkers, 1, s.maxWorkers); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", 0, 1, 1000); err != nil {
		return nil, err
	}
	if publish := query.Get("publish"); publish != "" {
		if req.Publish, err = strconv.ParseBool(publish); err != nil {
			return nil, fmt.Errorf("invalid publish: %s", publish)
		}
	}

	return req, nil
}

// applyOverrides resizes the camera and sets the depth limit
func applyOverrides(s *scene.Scene, req *RenderRequest) {
	if req.Width > 0 || req.Height > 0 {
		w, h := s.Camera.Width(), s.Camera.Height()
		if req.Width > 0 {
			w = req.Width
		}
		if req.Height > 0 {
			h = req.Height
		}
		s.Camera = s.Camera.Resize(w, h)
	}
	if req.MaxDepth > 0 {
		s.MaxDepth = req.MaxDepth
	}
}

// sceneKey turns a scene name or JSON path into an object key segment
func sceneKey(name string) string {
	key := []byte(name)
	for i, c := range key {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			key[i] = '_'
		}
	}
	return string(key)
}

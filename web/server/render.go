package server

import (
	"bytes"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/df07/go-sphere-pathtracer/pkg/imagefile"
	"github.com/df07/go-sphere-pathtracer/pkg/loaders"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

const fileScenePrefix = "file:"

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene           string // Built-in scene name or "file:<name>"
	Width           int
	Height          int
	SamplesPerPixel int
	MaxDepth        int
	Seed            int64
	Format          string // "png", "bmp" or "ppm"
}

var contentTypes = map[string]string{
	imagefile.FormatPNG: "image/png",
	imagefile.FormatBMP: "image/bmp",
	imagefile.FormatPPM: "image/x-portable-pixmap",
}

// parseCommonSceneParams parses the parameters shared by render and inspect
func (s *Server) parseCommonSceneParams(r *http.Request, req *RenderRequest) error {
	query := r.URL.Query()

	req.Scene = query.Get("scene")
	if req.Scene == "" {
		req.Scene = "simple"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, 2, 2000); err != nil {
		return err
	}
	if req.Height, err = parseIntParam(query, "height", 225, 2, 2000); err != nil {
		return err
	}
	seed, err := parseIntParam(query, "seed", 42, 0, 1<<31-1)
	if err != nil {
		return err
	}
	req.Seed = int64(seed)
	return nil
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, req); err != nil {
		return nil, err
	}

	query := r.URL.Query()
	var err error
	if req.SamplesPerPixel, err = parseIntParam(query, "samples", 10, 1, 10000); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "depth", 50, 1, 1000); err != nil {
		return nil, err
	}

	req.Format = strings.ToLower(query.Get("format"))
	if req.Format == "" {
		req.Format = imagefile.FormatPNG
	}
	if _, ok := contentTypes[req.Format]; !ok {
		return nil, fmt.Errorf("unsupported format: %s", req.Format)
	}

	// Performance warning
	if req.Width*req.Height > 800*600 && req.SamplesPerPixel > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// createScene builds a built-in scene or loads a scene file from the scenes
// directory. Randomized built-in scenes are seeded from the request seed.
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	aspectRatio := float64(req.Width) / float64(req.Height)

	if name, ok := strings.CutPrefix(req.Scene, fileScenePrefix); ok {
		if name == "" || filepath.Base(name) != name || strings.HasPrefix(name, ".") {
			return nil, fmt.Errorf("invalid scene file name: %q", name)
		}
		return loaders.LoadScene(filepath.Join(s.scenesDir, name+".json"), aspectRatio)
	}

	build, ok := scene.Lookup(req.Scene)
	if !ok {
		return nil, fmt.Errorf("unknown scene: %s", req.Scene)
	}
	return build(aspectRatio, rand.New(rand.NewSource(req.Seed))), nil
}

// handleRender renders a scene synchronously and returns the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	renderID := uuid.New().String()
	logger := s.newRenderLogger(renderID)
	logger.Printf("Scene %q with %d spheres\n", sceneObj.Name, sceneObj.SphereCount())

	config := renderer.Config{
		Width:           req.Width,
		Height:          req.Height,
		SamplesPerPixel: req.SamplesPerPixel,
		MaxDepth:        req.MaxDepth,
		NumWorkers:      0, // Auto-detect
		Seed:            req.Seed,
	}

	raytracer, err := renderer.NewRaytracer(sceneObj.World, sceneObj.Camera, config, logger)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	pixels, stats, err := raytracer.RenderParallel()
	if err != nil {
		logger.Printf("Render failed: %v\n", err)
		writeError(w, http.StatusInternalServerError, "Render error: "+err.Error())
		return
	}

	var buf bytes.Buffer
	if err := imagefile.Encode(&buf, req.Format, req.Width, req.Height, pixels); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode image: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", contentTypes[req.Format])
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Id", renderID)
	w.Header().Set("X-Render-Duration-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.Header().Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("Error writing render response: %v", err)
	}
}

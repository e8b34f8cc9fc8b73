package server

import (
	"net/http"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/math"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Color        [3]float64             `json:"color"` // Shaded color before 8-bit conversion
	Pixel        [4]uint8               `json:"pixel"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult contains information about the object hit by an inspection ray
type InspectResult struct {
	Hit       bool
	HitRecord *material.HitRecord
	Shape     geometry.Shape // nil if the hit could not be attributed
	Color     math.Color
}

// inspectPixel casts the primary ray for pixel (x, y) and reports the
// nearest hit along with its shaded color
func inspectPixel(sceneObj *scene.Scene, x, y int) InspectResult {
	ray := sceneObj.Camera.GetRay(x, y)

	hit, ok := sceneObj.Intersect(ray)
	if !ok {
		return InspectResult{Hit: false}
	}
	c, _ := sceneObj.ColorForRay(ray)

	// The scene does not report which shape won, so find the first shape
	// with the same distance
	var shape geometry.Shape
	for _, candidate := range sceneObj.Shapes {
		if h, ok := candidate.Intersect(ray); ok && h.T == hit.T {
			shape = candidate
			break
		}
	}

	return InspectResult{Hit: true, HitRecord: hit, Shape: shape, Color: c}
}

// extractMaterialInfo extracts material information with type assertions
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Diffuse:
		properties["color"] = colorArray(m.Color)
		properties["ambient"] = colorArray(m.Ambient)
		properties["specular"] = m.Specular
		return "diffuse", properties

	case *material.Reflective:
		properties["color"] = colorArray(m.Color)
		properties["ambient"] = colorArray(m.Ambient)
		properties["specular"] = m.Specular
		properties["reflectivity"] = m.Reflectivity
		return "reflective", properties

	default:
		return "unknown", properties
	}
}

// extractGeometryInfo extracts geometry information
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = [3]float64{geom.Center.X, geom.Center.Y, geom.Center.Z}
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Plane:
		properties["point"] = [3]float64{geom.Point.X, geom.Point.Y, geom.Point.Z}
		properties["normal"] = [3]float64{geom.Normal.X, geom.Normal.Y, geom.Normal.Z}
		return "plane", properties

	case *scene.Scene:
		properties["shapes"] = len(geom.Shapes)
		return "scene", properties

	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	applyOverrides(sceneObj, req)

	query := r.URL.Query()
	pixelX, err := parseIntParam(query, "x", -1, 0, sceneObj.Camera.Width()-1)
	if err != nil || pixelX < 0 {
		writeError(w, http.StatusBadRequest, "Pixel x coordinate missing or out of bounds")
		return
	}
	pixelY, err := parseIntParam(query, "y", -1, 0, sceneObj.Camera.Height()-1)
	if err != nil || pixelY < 0 {
		writeError(w, http.StatusBadRequest, "Pixel y coordinate missing or out of bounds")
		return
	}

	result := inspectPixel(sceneObj, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, materialProps := extractMaterialInfo(result.HitRecord.Material)
	geometryType, geometryProps := extractGeometryInfo(result.Shape)
	pixel := renderer.ToRGBA(result.Color)

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        [3]float64{result.HitRecord.Point.X, result.HitRecord.Point.Y, result.HitRecord.Point.Z},
		Normal:       [3]float64{result.HitRecord.Normal.X, result.HitRecord.Normal.Y, result.HitRecord.Normal.Z},
		Distance:     result.HitRecord.T,
		Color:        colorArray(result.Color),
		Pixel:        [4]uint8{pixel.R, pixel.G, pixel.B, pixel.A},
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}

func colorArray(c math.Color) [3]float64 {
	return [3]float64{c.R, c.G, c.B}
}

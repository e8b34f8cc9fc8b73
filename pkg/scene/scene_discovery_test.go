package scene

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"mirror-box", "Mirror Box"},
		{"three_spheres", "Three Spheres"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestLookup_Builtins(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := Lookup(name)
			if err != nil {
				t.Fatalf("Lookup(%q) failed: %v", name, err)
			}
			if s.Camera == nil {
				t.Errorf("Scene %q has no camera", name)
			}
			if len(s.Shapes) == 0 {
				t.Errorf("Scene %q has no shapes", name)
			}
		})
	}
}

func TestLookup_FreshInstances(t *testing.T) {
	a, _ := Lookup("classic")
	b, _ := Lookup("classic")
	if a == b {
		t.Error("Expected Lookup to build a new scene each call")
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("nope")
	if !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestLookup_JSONPath(t *testing.T) {
	s, err := Lookup("../../scenes/three-spheres.json")
	if err != nil {
		t.Fatalf("Lookup of JSON path failed: %v", err)
	}
	if s.Name != "three-spheres" {
		t.Errorf("Expected name three-spheres, got %q", s.Name)
	}
}

func TestNames_Sorted(t *testing.T) {
	names := Names()
	if len(names) != len(builtinScenes) {
		t.Fatalf("Expected %d names, got %d", len(builtinScenes), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("Names not sorted: %v", names)
		}
	}
}

func TestListJSONScenes(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"with-name.json":  `{"name": "fancy-room", "description": "A room"}`,
		"plain_file.json": `{}`,
		"broken.json":     `{not json`,
		"ignored.txt":     `{}`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	scenes, err := ListJSONScenes(dir)
	if err != nil {
		t.Fatalf("ListJSONScenes failed: %v", err)
	}
	if len(scenes) != 2 {
		t.Fatalf("Expected 2 scenes, got %d: %+v", len(scenes), scenes)
	}

	// Sorted by display name
	if scenes[0].DisplayName != "Fancy Room" || scenes[0].Description != "A room" {
		t.Errorf("Unexpected first scene %+v", scenes[0])
	}
	if scenes[1].DisplayName != "Plain File" {
		t.Errorf("Expected fallback display name, got %q", scenes[1].DisplayName)
	}
	for _, s := range scenes {
		if s.Type != "json" || s.ID != s.FilePath {
			t.Errorf("Expected json scene keyed by path, got %+v", s)
		}
	}
}

func TestListJSONScenes_MissingDir(t *testing.T) {
	scenes, err := ListJSONScenes(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if scenes == nil || len(scenes) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", scenes)
	}
}

func TestListAllScenes(t *testing.T) {
	all, err := ListAllScenes("../../scenes")
	if err != nil {
		t.Fatalf("ListAllScenes failed: %v", err)
	}

	builtins := 0
	foundJSON := false
	for _, s := range all {
		switch s.Type {
		case "builtin":
			builtins++
		case "json":
			if s.DisplayName == "Three Spheres" {
				foundJSON = true
			}
		}
	}
	if builtins != len(builtinScenes) {
		t.Errorf("Expected %d built-in scenes, got %d", len(builtinScenes), builtins)
	}
	if !foundJSON {
		t.Error("Expected three-spheres.json to be listed")
	}
}

func TestListJSONScenes_LogsMalformedFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{not json`), 0644); err != nil {
		t.Fatalf("Failed to write broken.json: %v", err)
	}

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	scenes, err := ListJSONScenes(dir)
	if err != nil {
		t.Fatalf("ListJSONScenes failed: %v", err)
	}
	if len(scenes) != 0 {
		t.Errorf("Expected malformed scene to be skipped, got %+v", scenes)
	}
	if !strings.Contains(buf.String(), "failed to parse metadata") || !strings.Contains(buf.String(), "broken.json") {
		t.Errorf("Expected a logged warning naming broken.json, got %q", buf.String())
	}
}

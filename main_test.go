package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestCreateScene(t *testing.T) {
	dir := t.TempDir()
	sceneFile := filepath.Join(dir, "marble.json")
	content := `{"spheres": [{"center": [0, 0, -1], "radius": 0.5}]}`
	if err := os.WriteFile(sceneFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write scene file: %v", err)
	}

	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		// Built-in scenes
		{"simple scene", "simple", false},
		{"random-spheres scene", "random-spheres", false},
		{"two-spheres scene", "two-spheres", false},
		{"sphere-grid scene", "sphere-grid", false},

		// Scene files
		{"scene file", sceneFile, false},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"missing scene file", filepath.Join(dir, "nonexistent.json"), true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene, err := createScene(tt.sceneType, 16.0/9.0, 42)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if scene != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s', got %T", tt.sceneType, scene)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if scene.SphereCount() == 0 {
				t.Errorf("Scene '%s' has no spheres", tt.sceneType)
			}
			if scene.CameraConfig.AspectRatio != 16.0/9.0 {
				t.Errorf("Aspect ratio = %v, want %v", scene.CameraConfig.AspectRatio, 16.0/9.0)
			}
		})
	}
}

func TestCreateOutputDir(t *testing.T) {
	tests := []struct {
		name      string
		sceneType string
		expected  string
	}{
		{"built-in scene", "simple", filepath.Join("output", "simple")},
		{"scene file", "scenes/marbles.json", filepath.Join("output", "marbles")},
		{"nested scene file", "scenes/subdir/my-scene.JSON", filepath.Join("output", "my-scene")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := createOutputDir(tt.sceneType); got != tt.expected {
				t.Errorf("createOutputDir(%q) = %q, want %q", tt.sceneType, got, tt.expected)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	id := "1b4e28ba-2fa1-11d2-883f-0016d3cca427"

	got, err := outputPath("", "random-spheres", "BMP", now, id)
	if err != nil {
		t.Fatalf("outputPath() error: %v", err)
	}
	expected := filepath.Join("output", "random-spheres", "render_20240309_140507_1b4e28ba.bmp")
	if got != expected {
		t.Errorf("outputPath() = %q, want %q", got, expected)
	}

	got, err = outputPath("custom/out.ppm", "simple", "png", now, id)
	if err != nil {
		t.Fatalf("outputPath() error: %v", err)
	}
	if got != "custom/out.ppm" {
		t.Errorf("outputPath() = %q, want custom/out.ppm", got)
	}

	if _, err := outputPath("", "simple", "gif", now, id); err == nil {
		t.Error("Expected error for unsupported format")
	}
	if _, err := outputPath("out.jpg", "simple", "png", now, id); err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("Expected unsupported extension error, got %v", err)
	}
}

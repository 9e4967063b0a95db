package loader

import (
	"errors"
	"strings"
	"testing"
)

func TestYAMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/keynorm.yaml", `
input:
  macosOptionAsAlt: right
  platform: auto
logging:
  level: warn
`)

	config, err := NewYAMLLoaderWithFS(memfs, "/keynorm.yaml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	input, ok := config["input"].(map[string]any)
	if !ok {
		t.Fatalf("expected input to be a map, got %T", config["input"])
	}
	if input["macosOptionAsAlt"] != "right" {
		t.Errorf("macosOptionAsAlt = %v, want 'right'", input["macosOptionAsAlt"])
	}

	logging, ok := config["logging"].(map[string]any)
	if !ok {
		t.Fatalf("expected logging to be a map, got %T", config["logging"])
	}
	if logging["level"] != "warn" {
		t.Errorf("level = %v, want 'warn'", logging["level"])
	}
}

func TestYAMLLoader_LoadBool(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/keynorm.yml", "input:\n  macosOptionAsAlt: false\n")

	config, err := NewYAMLLoaderWithFS(memfs, "/keynorm.yml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	input := config["input"].(map[string]any)
	if input["macosOptionAsAlt"] != false {
		t.Errorf("macosOptionAsAlt = %v (%T), want false", input["macosOptionAsAlt"], input["macosOptionAsAlt"])
	}
}

func TestYAMLLoader_LoadNonExistent(t *testing.T) {
	config, err := NewYAMLLoaderWithFS(NewMemFS(), "/missing.yaml").Load()
	if err != nil {
		t.Fatalf("expected no error for non-existent file, got: %v", err)
	}
	if config != nil {
		t.Error("expected nil config for non-existent file")
	}
}

func TestYAMLLoader_LoadEmpty(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/empty.yaml", "")

	config, err := NewYAMLLoaderWithFS(memfs, "/empty.yaml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if config == nil || len(config) != 0 {
		t.Errorf("expected empty non-nil map, got %v", config)
	}
}

func TestYAMLLoader_LoadInvalid(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/invalid.yaml", "input:\n  platform: [darwin\n")

	_, err := NewYAMLLoaderWithFS(memfs, "/invalid.yaml").Load()
	if err == nil {
		t.Fatal("expected parse error")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if parseErr.Path != "/invalid.yaml" {
		t.Errorf("Path = %q, want '/invalid.yaml'", parseErr.Path)
	}
}

func TestYAMLLoader_LoadFromReader(t *testing.T) {
	config, err := (&YAMLLoader{}).LoadFromReader(strings.NewReader("platform: other\n"))
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}
	if config["platform"] != "other" {
		t.Errorf("platform = %v, want 'other'", config["platform"])
	}
}

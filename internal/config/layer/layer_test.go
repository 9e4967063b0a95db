package layer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewLayer(t *testing.T) {
	l := NewLayer(SourceEnv)

	if l.Name != "environment" {
		t.Errorf("Name = %q, want 'environment'", l.Name)
	}
	if l.Source != SourceEnv {
		t.Errorf("Source = %v, want SourceEnv", l.Source)
	}
	if l.Data == nil {
		t.Error("Data should be initialized")
	}
}

func TestLayer_Clone(t *testing.T) {
	original := NewLayerWithData(SourceFile, map[string]any{
		"input": map[string]any{"platform": "darwin"},
		"list":  []any{"a", map[string]any{"b": 1}},
	})
	original.Path = "/etc/keynorm.toml"

	cloned := original.Clone()
	if diff := cmp.Diff(original, cloned); diff != "" {
		t.Fatalf("Clone() mismatch (-want +got):\n%s", diff)
	}

	SetByPath(cloned.Data, "input.platform", "other")
	if got, _ := GetByPath(original.Data, "input.platform"); got != "darwin" {
		t.Errorf("original changed to %v after editing clone", got)
	}
}

func TestSourceString(t *testing.T) {
	tests := []struct {
		source Source
		want   string
	}{
		{SourceDefaults, "defaults"},
		{SourceFile, "file"},
		{SourceEnv, "environment"},
		{SourceFlags, "flags"},
		{Source(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.source.String(); got != tt.want {
			t.Errorf("Source(%d).String() = %q, want %q", tt.source, got, tt.want)
		}
	}
}

func TestStackMerged(t *testing.T) {
	defaults := NewLayerWithData(SourceDefaults, map[string]any{
		"input":   map[string]any{"platform": "auto", "macosOptionAsAlt": false},
		"logging": map[string]any{"level": "info"},
	})
	file := NewLayerWithData(SourceFile, map[string]any{
		"input": map[string]any{"macosOptionAsAlt": "left"},
	})
	env := NewLayerWithData(SourceEnv, map[string]any{
		"input": map[string]any{"macosOptionAsAlt": "right"},
	})
	flags := NewLayerWithData(SourceFlags, map[string]any{
		"logging": map[string]any{"level": "debug"},
	})

	// insertion order does not matter
	s := NewStack(flags, env, nil, defaults, file)

	want := map[string]any{
		"input":   map[string]any{"platform": "auto", "macosOptionAsAlt": "right"},
		"logging": map[string]any{"level": "debug"},
	}
	if diff := cmp.Diff(want, s.Merged()); diff != "" {
		t.Errorf("Merged() mismatch (-want +got):\n%s", diff)
	}

	var order []Source
	for _, l := range s.Layers() {
		order = append(order, l.Source)
	}
	if diff := cmp.Diff([]Source{SourceDefaults, SourceFile, SourceEnv, SourceFlags}, order); diff != "" {
		t.Errorf("Layers() order mismatch (-want +got):\n%s", diff)
	}

	// merging must leave the layers untouched
	if got, _ := GetByPath(defaults.Data, "input.macosOptionAsAlt"); got != false {
		t.Errorf("defaults layer changed to %v", got)
	}
}

func TestStackOrigin(t *testing.T) {
	s := NewStack(
		NewLayerWithData(SourceDefaults, map[string]any{
			"input": map[string]any{"platform": "auto", "macosOptionAsAlt": false},
		}),
		NewLayerWithData(SourceEnv, map[string]any{
			"input": map[string]any{"macosOptionAsAlt": true},
		}),
	)

	tests := []struct {
		path  string
		want  Source
		found bool
	}{
		{"input.platform", SourceDefaults, true},
		{"input.macosOptionAsAlt", SourceEnv, true},
		{"logging.level", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			l, found := s.Origin(tt.path)
			if found != tt.found {
				t.Fatalf("Origin(%q) found = %v, want %v", tt.path, found, tt.found)
			}
			if found && l.Source != tt.want {
				t.Errorf("Origin(%q) = %v, want %v", tt.path, l.Source, tt.want)
			}
		})
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/funvibe/dummy/internal/synth"
	"github.com/funvibe/dummy/internal/typegraph"
)

func TestParseConfig_Valid(t *testing.T) {
	yaml := `
namespace: github.com/acme/app
seed: 42
max_depth: 16
verbose: true
overrides:
  - type: string
    value: fixed
  - type: time.Duration
    value: 90s
  - type: github.com/google/uuid.UUID
    value: 6ba7b810-9dad-11d1-80b4-00c04fd430c8
`
	cfg, err := ParseConfig([]byte(yaml), "dummy.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Namespace != "github.com/acme/app" {
		t.Errorf("namespace = %q, want github.com/acme/app", cfg.Namespace)
	}
	if cfg.Seed != 42 {
		t.Errorf("seed = %d, want 42", cfg.Seed)
	}
	if cfg.MaxDepth != 16 {
		t.Errorf("max_depth = %d, want 16", cfg.MaxDepth)
	}
	if !cfg.Verbose {
		t.Error("expected verbose to be true")
	}
	if cfg.Path != "dummy.yaml" {
		t.Errorf("path = %q", cfg.Path)
	}

	overrides := cfg.TypeOverrides()
	if len(overrides) != 3 {
		t.Fatalf("expected 3 overrides, got %d", len(overrides))
	}
	if got := overrides[typegraph.String](); got != "fixed" {
		t.Errorf("string override = %v", got)
	}
	if got := overrides[typegraph.Duration](); got != 90*time.Second {
		t.Errorf("duration override = %v", got)
	}
	want := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	if got := overrides[typegraph.UUID](); got != want {
		t.Errorf("uuid override = %v", got)
	}
}

func TestParseConfig_Empty(t *testing.T) {
	cfg, err := ParseConfig(nil, "dummy.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxDepth != synth.DefaultMaxDepth {
		t.Errorf("max_depth = %d, want %d", cfg.MaxDepth, synth.DefaultMaxDepth)
	}
	if cfg.Seed != 0 || cfg.Verbose || cfg.Namespace != "" {
		t.Errorf("unexpected values: %+v", cfg)
	}
	if len(cfg.TypeOverrides()) != 0 {
		t.Error("expected no overrides")
	}
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"syntax", "seed: [", "parsing dummy.yaml"},
		{"negative depth", "max_depth: -1", "max_depth must not be negative"},
		{"namespace", "namespace: github.com/a b", "must not contain whitespace"},
		{"missing type", "overrides:\n  - value: 1", "overrides[0]: type is required"},
		{"unknown type", "overrides:\n  - type: example.Thing\n    value: 1", `"example.Thing" is not a well-known scalar type`},
		{"structural type", "overrides:\n  - type: Map\n    value: 1", `"Map" is not a well-known scalar type`},
		{"missing value", "overrides:\n  - type: int", "overrides[0] (int): value is required"},
		{"bad value", "overrides:\n  - type: int\n    value: nope", "overrides[0] (int)"},
		{"duplicate", "overrides:\n  - type: int\n    value: 1\n  - type: int\n    value: 2", "already overridden by overrides[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml), "dummy.yaml")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestFindConfig(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, err := FindConfig(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "" && strings.HasPrefix(path, root) {
		t.Fatalf("found unexpected config %s", path)
	}

	want := filepath.Join(root, "a", "dummy.yml")
	if err := os.WriteFile(want, []byte("seed: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	path, err = FindConfig(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	cfg, err := Load(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Seed != 7 || cfg.Path != want {
		t.Errorf("loaded %+v", cfg)
	}
}

func TestLoad_Env(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "dummy.yaml"), []byte("seed: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(SeedEnv, "99")
	t.Setenv(VerboseEnv, "true")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Seed != 99 {
		t.Errorf("seed = %d, want 99", cfg.Seed)
	}
	if !cfg.Verbose {
		t.Error("expected verbose from environment")
	}

	t.Setenv(SeedEnv, "minus one")
	if _, err := Load(dir); err == nil || !strings.Contains(err.Error(), SeedEnv) {
		t.Errorf("expected %s error, got %v", SeedEnv, err)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "dummy.yaml"))
	if err == nil || !strings.Contains(err.Error(), "reading config") {
		t.Errorf("expected read error, got %v", err)
	}
}

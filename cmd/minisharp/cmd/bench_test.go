package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadBenchConfigDefaults(t *testing.T) {
	cfg, err := loadBenchConfig("")
	if err != nil {
		t.Fatalf("loadBenchConfig(\"\") error: %v", err)
	}
	if cfg.Iterations != 5 {
		t.Errorf("default iterations = %d, want 5", cfg.Iterations)
	}
	if len(cfg.Queries) != 3 {
		t.Errorf("default queries = %v", cfg.Queries)
	}
}

func TestLoadBenchConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.yaml")
	content := "iterations: 2\nqueries: [get-type]\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadBenchConfig(path)
	if err != nil {
		t.Fatalf("loadBenchConfig() error: %v", err)
	}
	if cfg.Iterations != 2 {
		t.Errorf("iterations = %d, want 2", cfg.Iterations)
	}
	if len(cfg.Queries) != 1 || cfg.Queries[0] != "get-type" {
		t.Errorf("queries = %v, want [get-type]", cfg.Queries)
	}
}

func TestLoadBenchConfigErrors(t *testing.T) {
	if _, err := loadBenchConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file: want error")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("iterations: [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadBenchConfig(path); err == nil {
		t.Error("malformed yaml: want error")
	}

	path = filepath.Join(t.TempDir(), "zero.yaml")
	if err := os.WriteFile(path, []byte("iterations: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadBenchConfig(path); err == nil {
		t.Error("non-positive iterations: want error")
	}
}

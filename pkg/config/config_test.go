package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type sample struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

func (s *sample) Validate() error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("NOTEBOOK_TEST_DIR", "/data")
	path := writeFile(t, "name: demo\npath: ${NOTEBOOK_TEST_DIR}/notes.db\n")

	var s sample
	if err := Load(path, &s); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Path != "/data/notes.db" {
		t.Errorf("path = %q", s.Path)
	}
}

func TestLoad_ValidationFails(t *testing.T) {
	path := writeFile(t, "path: x\n")
	var s sample
	err := Load(path, &s)
	if err == nil || !strings.Contains(err.Error(), "name is required") {
		t.Errorf("err = %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	var s sample
	if err := Load(filepath.Join(t.TempDir(), "nope.yaml"), &s); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadIfExists_MissingKeepsDefaults(t *testing.T) {
	s := sample{Name: "default", Path: "./notes.db"}
	found, err := LoadIfExists(filepath.Join(t.TempDir(), "nope.yaml"), &s)
	if err != nil {
		t.Fatalf("LoadIfExists: %v", err)
	}
	if found {
		t.Error("found = true for missing file")
	}
	if s.Name != "default" || s.Path != "./notes.db" {
		t.Errorf("defaults changed: %+v", s)
	}
}

func TestLoadIfExists_OverridesDefaults(t *testing.T) {
	path := writeFile(t, "path: other.db\n")
	s := sample{Name: "default", Path: "./notes.db"}
	found, err := LoadIfExists(path, &s)
	if err != nil {
		t.Fatalf("LoadIfExists: %v", err)
	}
	if !found {
		t.Error("found = false for existing file")
	}
	if s.Name != "default" || s.Path != "other.db" {
		t.Errorf("s = %+v", s)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeFile(t, "name: [unclosed\n")
	var s sample
	if err := Load(path, &s); err == nil {
		t.Error("expected parse error")
	}
}

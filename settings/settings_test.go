package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "settings.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Environment != DefaultEnvironment {
		t.Errorf("Environment = %q, want %q", s.Environment, DefaultEnvironment)
	}
	if s.Debug {
		t.Error("Debug should default to false")
	}
}

func TestLoad_ParsesFields(t *testing.T) {
	path := writeSettings(t, "environment: staging\ndebug: true\n")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Environment != "staging" {
		t.Errorf("Environment = %q, want %q", s.Environment, "staging")
	}
	if !s.Debug {
		t.Error("Debug should be true")
	}
}

func TestLoad_EmptyEnvironmentFallsBack(t *testing.T) {
	path := writeSettings(t, "debug: true\n")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Environment != DefaultEnvironment {
		t.Errorf("Environment = %q, want %q", s.Environment, DefaultEnvironment)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeSettings(t, "environment: [unclosed\n")

	if _, err := Load(path); err == nil {
		t.Error("Load should fail on malformed yaml")
	}
}

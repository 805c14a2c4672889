package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/apigen/pkg/errors"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDetectVersion(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
		want string
	}{
		{"package.json", "package.json", `{"name": "lib", "version": "2.0.1"}`, "2.0.1"},
		{"pep 621", "pyproject.toml", "[project]\nname = \"lib\"\nversion = \"0.4.0\"\n", "0.4.0"},
		{"poetry", "pyproject.toml", "[tool.poetry]\nname = \"lib\"\nversion = \"1.1.0\"\n", "1.1.0"},
		{"cargo", "Cargo.toml", "[package]\nname = \"lib\"\nversion = \"3.2.1\"\n", "3.2.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, tt.file, tt.body)

			got, err := DetectVersion(dir)
			if err != nil {
				t.Fatalf("DetectVersion: %v", err)
			}
			if got.Version != tt.want {
				t.Errorf("Version = %q, want %q", got.Version, tt.want)
			}
			if got.Path != filepath.Join(dir, tt.file) {
				t.Errorf("Path = %q", got.Path)
			}
		})
	}
}

func TestDetectVersionCandidateOrder(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	writeFile(t, first, "package.json", `{"name": "no-version"}`)
	writeFile(t, first, "Cargo.toml", "[package]\nversion = \"1.0.0\"\n")
	writeFile(t, second, "package.json", `{"version": "9.9.9"}`)

	got, err := DetectVersion(first, second)
	if err != nil {
		t.Fatalf("DetectVersion: %v", err)
	}
	if got.Version != "1.0.0" {
		t.Errorf("Version = %q, want first directory's Cargo.toml version", got.Version)
	}
}

func TestDetectVersionNotFound(t *testing.T) {
	_, err := DetectVersion(t.TempDir(), t.TempDir())
	if !errors.Is(err, errors.ErrCodeVersionNotFound) {
		t.Errorf("error = %v, want VERSION_NOT_FOUND", err)
	}
}

func TestDetectVersionMalformed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"version": `)

	_, err := DetectVersion(dir)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

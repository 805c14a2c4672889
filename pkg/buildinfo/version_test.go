package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	old := Version
	Version = "v1.2.3"
	defer func() { Version = old }()

	if got := Template(); !strings.HasPrefix(got, "{{.Name}} version v1.2.3\n") {
		t.Errorf("Template() = %q", got)
	}
}

func TestResolved(t *testing.T) {
	oldVersion, oldRead := Version, readBuildInfo
	defer func() { Version, readBuildInfo = oldVersion, oldRead }()

	fake := func(v string, ok bool) func() (*debug.BuildInfo, bool) {
		return func() (*debug.BuildInfo, bool) {
			return &debug.BuildInfo{Main: debug.Module{Version: v}}, ok
		}
	}

	tests := []struct {
		name    string
		version string
		read    func() (*debug.BuildInfo, bool)
		want    string
	}{
		{"ldflags win", "v1.0.0", fake("v0.9.0", true), "v1.0.0"},
		{"module version", "dev", fake("v0.9.0", true), "v0.9.0"},
		{"devel build", "dev", fake("(devel)", true), "dev"},
		{"no build info", "dev", fake("", false), "dev"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, readBuildInfo = tt.version, tt.read
			if got := Resolved(); got != tt.want {
				t.Errorf("Resolved() = %q, want %q", got, tt.want)
			}
		})
	}
}

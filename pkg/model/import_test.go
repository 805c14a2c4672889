package model

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/apigen/pkg/errors"
)

const sampleJSON = `{
  "namespaces": {
    "core": {
      "label": "core",
      "description": "Core runtime",
      "classes": ["core.Engine"],
      "namespaces": {"io": {"classes": {"core.io.Stream": {}}}}
    }
  },
  "classes": {
    "core.Engine": {"description": "Engine docs", "sourcefile": "./src/engine.js", "line": 12},
    "core.io.Stream": {"description": "Streams"}
  },
  "exceptions": {"Timeout": {"description": "timed out"}},
  "bus": {"events": ["start"]},
  "types": ["String"]
}`

const sampleYAML = `
namespaces:
  core:
    label: core
    description: Core runtime
    classes: [core.Engine]
    namespaces:
      io:
        classes:
          core.io.Zeta: {}
          core.io.Stream: {}
classes:
  core.Engine:
    description: Engine docs
    sourcefile: ./src/engine.js
    line: 12
  core.io.Stream:
    description: Streams
exceptions:
  Timeout:
    description: timed out
bus:
  events: [start]
types: [String]
`

func TestReadJSON(t *testing.T) {
	m, err := ReadJSON(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}

	if diff := cmp.Diff([]string{"core"}, m.NamespaceNames()); diff != "" {
		t.Errorf("NamespaceNames mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"core.Engine", "core.io.Stream"}, m.ClassNames()); diff != "" {
		t.Errorf("ClassNames mismatch (-want +got):\n%s", diff)
	}

	engine, ok := m.Class("core.Engine")
	if !ok {
		t.Fatal("core.Engine missing")
	}
	if engine["line"] != json.Number("12") {
		t.Errorf("line = %#v, want json.Number(12)", engine["line"])
	}

	io := m.Namespaces["core"].Namespaces["io"]
	if diff := cmp.Diff([]string{"core.io.Stream"}, io.Classes); diff != "" {
		t.Errorf("io classes mismatch (-want +got):\n%s", diff)
	}
	if string(m.Types) != `["String"]` {
		t.Errorf("types = %s", m.Types)
	}
}

func TestReadJSONInvalid(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`{"namespaces": [}`))
	if !errors.Is(err, errors.ErrCodeInvalidModel) {
		t.Errorf("error = %v, want INVALID_MODEL", err)
	}
}

func TestReadYAML(t *testing.T) {
	m, err := ReadYAML(strings.NewReader(sampleYAML))
	if err != nil {
		t.Fatalf("ReadYAML: %v", err)
	}

	io := m.Namespaces["core"].Namespaces["io"]
	if diff := cmp.Diff([]string{"core.io.Zeta", "core.io.Stream"}, io.Classes); diff != "" {
		t.Errorf("yaml mapping order lost (-want +got):\n%s", diff)
	}

	engine, _ := m.Class("core.Engine")
	if engine.Description() != "Engine docs" || engine["line"] != json.Number("12") {
		t.Errorf("engine = %#v", engine)
	}

	var bus map[string]any
	if err := json.Unmarshal(m.Bus, &bus); err != nil {
		t.Fatalf("bus: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"events": []any{"start"}}, bus); diff != "" {
		t.Errorf("bus mismatch (-want +got):\n%s", diff)
	}
}

func TestReadYAMLEmpty(t *testing.T) {
	m, err := ReadYAML(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ReadYAML: %v", err)
	}
	if len(m.Namespaces) != 0 || len(m.Classes) != 0 {
		t.Errorf("expected empty model, got %+v", m)
	}
}

func TestReadYAMLMergeKeys(t *testing.T) {
	m, err := ReadYAML(strings.NewReader(`
shared: &base
  description: shared
  since: "1.0"
legacy: &other
  description: other
  deprecated: true
classes:
  core.Engine:
    <<: *base
    sourcefile: x.js
  core.Tool:
    <<: [*other, *base]
    since: "2.0"
`))
	if err != nil {
		t.Fatalf("ReadYAML: %v", err)
	}

	tests := []struct {
		class string
		want  ClassDoc
	}{
		{"core.Engine", ClassDoc{"description": "shared", "since": "1.0", "sourcefile": "x.js"}},
		{"core.Tool", ClassDoc{"description": "other", "deprecated": true, "since": "2.0"}},
	}
	for _, tt := range tests {
		got, ok := m.Class(tt.class)
		if !ok {
			t.Fatalf("%s missing", tt.class)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", tt.class, diff)
		}
	}
	if engine, _ := m.Class("core.Engine"); engine.Description() != "shared" {
		t.Errorf("Description() = %q, want shared", engine.Description())
	}
}

func TestReadYAMLScalarsVerbatim(t *testing.T) {
	m, err := ReadYAML(strings.NewReader(`
classes:
  core.Engine:
    since: 2020-01-01
    ratio: 1.0
    count: 0x10
    big: 1e3
    flag: true
    none: ~
    limit: .inf
    quoted: "1.0"
`))
	if err != nil {
		t.Fatalf("ReadYAML: %v", err)
	}

	engine, _ := m.Class("core.Engine")
	want := ClassDoc{
		"since":  "2020-01-01",
		"ratio":  json.Number("1.0"),
		"count":  json.Number("16"),
		"big":    json.Number("1e3"),
		"flag":   true,
		"none":   nil,
		"limit":  ".inf",
		"quoted": "1.0",
	}
	if diff := cmp.Diff(want, engine); diff != "" {
		t.Errorf("class mismatch (-want +got):\n%s", diff)
	}

	data, err := json.Marshal(engine)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"ratio":1.0`) {
		t.Errorf("float literal not kept on output: %s", data)
	}
}

func TestReadYAMLInvalidMerge(t *testing.T) {
	_, err := ReadYAML(strings.NewReader("classes:\n  core.Engine:\n    <<: [1, 2]\n"))
	if !errors.Is(err, errors.ErrCodeInvalidModel) {
		t.Errorf("error = %v, want INVALID_MODEL", err)
	}
}

func TestImport(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "model.json")
	yamlPath := filepath.Join(dir, "model.YML")
	if err := os.WriteFile(jsonPath, []byte(sampleJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(yamlPath, []byte(sampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{jsonPath, yamlPath} {
		m, err := Import(path)
		if err != nil {
			t.Fatalf("Import(%s): %v", path, err)
		}
		if m.Namespaces["core"].Description != "Core runtime" {
			t.Errorf("Import(%s): description = %q", path, m.Namespaces["core"].Description)
		}
	}
}

func TestImportMissingFile(t *testing.T) {
	_, err := Import(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

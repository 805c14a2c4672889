package export

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/apigen/pkg/errors"
	"github.com/matzehuels/apigen/pkg/model"
	"github.com/matzehuels/apigen/pkg/observability"
)

// Result describes a finished export run.
type Result struct {
	// Config is the configuration the run used.
	Config Config

	// Files lists every file written, in write order.
	Files []string

	// Missing lists classes named by a namespace but absent from the model.
	Missing []MissingClass

	Stats Stats
}

// MissingClass is a data-integrity gap found during traversal.
type MissingClass struct {
	Namespace string
	Class     string
}

// Stats contains export statistics.
type Stats struct {
	Namespaces int // namespace manifests written
	Classes    int // class files written
	Duration   time.Duration
}

type exporter struct {
	cfg    Config
	model  *model.Model
	logger *log.Logger
	hooks  observability.ExportHooks
	result *Result
}

// Run exports m as configured by opts.
//
// It creates the output directory, writes every top-level namespace
// recursively, then writes the flat index files and the top-level index.
// Configuration errors are returned before anything is written. The first
// I/O error ends the run.
func Run(ctx context.Context, m *model.Model, opts Options) (*Result, error) {
	cfg, err := opts.Resolve()
	if err != nil {
		return nil, err
	}
	if m == nil {
		m = &model.Model{}
	}

	e := &exporter{
		cfg:    cfg,
		model:  m,
		logger: opts.logger(),
		hooks:  observability.Export(),
		result: &Result{Config: cfg},
	}

	start := time.Now()
	e.hooks.OnExportStart(ctx, cfg.output)
	err = e.run(ctx)
	e.result.Stats.Duration = time.Since(start)

	e.hooks.OnExportComplete(ctx, observability.ExportStats{
		Namespaces: e.result.Stats.Namespaces,
		Classes:    e.result.Stats.Classes,
		Missing:    len(e.result.Missing),
		Files:      len(e.result.Files),
		Duration:   e.result.Stats.Duration,
	}, err)
	if err != nil {
		return nil, err
	}
	return e.result, nil
}

func (e *exporter) run(ctx context.Context) error {
	if err := ensureDir(e.cfg.output); err != nil {
		return err
	}

	for _, name := range e.model.NamespaceNames() {
		if err := e.processNamespace(ctx, "", name, e.model.Namespaces[name]); err != nil {
			return err
		}
	}

	return e.writeIndexes()
}

// writeJSON encodes v as indented JSON and writes it to path.
func (e *exporter) writeJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s", path)
	}

	if err := os.WriteFile(filepath.FromSlash(path), buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	e.result.Files = append(e.result.Files, path)
	return nil
}

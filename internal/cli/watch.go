package cli

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/apigen/pkg/errors"
)

// watchDebounce coalesces the burst of events editors produce on save.
const watchDebounce = 300 * time.Millisecond

// modelWatcher reports changes to a single model file. The parent directory
// is watched so that editors replacing the file by rename are seen.
type modelWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	logger  *log.Logger
}

// newModelWatcher starts watching the directory of path.
func newModelWatcher(path string, logger *log.Logger) (*modelWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "watch %s", path)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "watch %s", path)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, errors.Wrap(errors.ErrCodeIO, err, "watch %s", filepath.Dir(abs))
	}
	return &modelWatcher{path: abs, watcher: w, logger: logger}, nil
}

// Close stops watching.
func (m *modelWatcher) Close() error {
	return m.watcher.Close()
}

// run calls rebuild after each debounced change until ctx is done. Rebuild
// errors are logged and do not stop the watch.
func (m *modelWatcher) run(ctx context.Context, rebuild func() error) {
	ready, trigger := newDebouncer(watchDebounce)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != m.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			m.logger.Debug("Model changed", "path", ev.Name, "op", ev.Op.String())
			trigger()
		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			m.logger.Warn("Watch error", "error", err)
		case <-ready:
			if err := rebuild(); err != nil {
				m.logger.Error("Export failed", "error", errors.UserMessage(err))
			}
		}
	}
}

// newDebouncer returns a channel that receives once per burst of trigger
// calls, delay after the last call.
func newDebouncer(delay time.Duration) (<-chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	ready := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(delay, func() {
			select {
			case ready <- struct{}{}:
			default:
			}
		})
	}
	return ready, trigger
}

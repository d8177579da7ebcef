package credentials

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/zerr"
)

// Watcher implements ports.CredentialWatcher with fsnotify. It watches the
// parent directory so the file may be created or removed while watching.
type Watcher struct {
	path   string
	logger ports.Logger
}

// NewWatcher creates a watcher for the credential file at path.
func NewWatcher(path string, logger ports.Logger) *Watcher {
	return &Watcher{path: filepath.Clean(path), logger: logger}
}

// Watch blocks until ctx is done, calling onChange after every write, create,
// remove or rename of the credential file.
func (w *Watcher) Watch(ctx context.Context, onChange func()) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return zerr.Wrap(domain.ErrCredentialWatchFailed, err.Error())
	}
	defer func() {
		_ = fw.Close()
	}()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrCredentialWatchFailed, err.Error()), "dir", dir)
	}

	const relevant = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Op.Has(relevant) {
				continue
			}
			w.logger.Debug("credentials changed: " + ev.Op.String())
			onChange()
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("credential watch: " + err.Error())
		}
	}
}

package assets

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/northgard/sigil/internal/store"
)

// EventCallback is called after a watcher-driven image link change.
// kind is "rendered" or "removed".
type EventCallback func(kind, id string)

// Watch starts an fsnotify watcher on the image directory and processes
// file events until ctx is cancelled. It calls cb (if non-nil) after each
// successful link mutation.
//
// Rename events fire on the old path only; a short debounced reconcile
// pass catches the file under its new name.
func Watch(ctx context.Context, st store.Store, fs *FS, logger *slog.Logger, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(fs.Root()); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", fs.Root()))

	var reconcileTimer *time.Timer
	var reconcileCh <-chan time.Time

	scheduleReconcile := func() {
		if reconcileTimer == nil {
			reconcileTimer = time.NewTimer(200 * time.Millisecond)
			reconcileCh = reconcileTimer.C
		} else {
			reconcileTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reconcileTimer != nil {
				reconcileTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-reconcileCh:
			if err := Reconcile(ctx, st, fs, logger); err != nil {
				logger.Warn("watcher: reconcile failed", slog.String("error", err.Error()))
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			name := filepath.Base(ev.Name)
			// Skip in-progress atomic writes and non-image files.
			if strings.HasPrefix(name, ".") {
				continue
			}
			id := codeID(name)
			if id == "" {
				continue
			}

			switch {
			case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
				if err := st.SetImagePath(ctx, id, name); err != nil {
					logger.Warn("watcher: link failed", slog.String("id", id), slog.String("error", err.Error()))
					continue
				}
				logger.Debug("watcher: image linked", slog.String("id", id))
				if cb != nil {
					cb("rendered", id)
				}

			case ev.Op&fsnotify.Remove != 0:
				if err := st.ClearImagePath(ctx, id); err != nil {
					logger.Warn("watcher: unlink failed", slog.String("id", id), slog.String("error", err.Error()))
					continue
				}
				logger.Debug("watcher: image unlinked", slog.String("id", id))
				if cb != nil {
					cb("removed", id)
				}

			case ev.Op&fsnotify.Rename != 0:
				if err := st.ClearImagePath(ctx, id); err == nil {
					logger.Debug("watcher: rename old unlinked", slog.String("id", id))
					if cb != nil {
						cb("removed", id)
					}
				}
				scheduleReconcile()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

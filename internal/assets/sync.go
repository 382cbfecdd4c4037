package assets

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/northgard/sigil/internal/apperr"
	"github.com/northgard/sigil/internal/store"
)

// codeID extracts the code id from a rendered image file name, or "" when
// the name does not follow the "<id>.png" convention.
func codeID(name string) string {
	id, ok := strings.CutSuffix(name, ".png")
	if !ok {
		return ""
	}
	return id
}

// Reconcile brings the image links up to date with the directory:
//   - codes whose "<id>.png" exists on disk get their image path set
//   - codes whose linked file disappeared get the link cleared
func Reconcile(ctx context.Context, st store.Store, fs *FS, logger *slog.Logger) error {
	names, err := fs.List()
	if err != nil {
		return err
	}
	onDisk := make(map[string]struct{}, len(names))
	for _, n := range names {
		if id := codeID(n); id != "" {
			onDisk[id] = struct{}{}
		}
	}

	codes, err := st.List(ctx)
	if err != nil {
		return err
	}
	for _, c := range codes {
		_, rendered := onDisk[c.ID]
		switch {
		case rendered && c.ImagePath == "":
			if err := st.SetImagePath(ctx, c.ID, c.ID+".png"); err != nil {
				logger.Warn("reconcile: link failed", slog.String("id", c.ID), slog.String("error", err.Error()))
			} else {
				logger.Debug("reconcile: linked image", slog.String("id", c.ID))
			}
		case !rendered && c.ImagePath != "":
			if err := st.ClearImagePath(ctx, c.ID); err != nil && !errors.Is(err, apperr.ErrNotFound) {
				logger.Warn("reconcile: unlink failed", slog.String("id", c.ID), slog.String("error", err.Error()))
			} else {
				logger.Debug("reconcile: removed stale link", slog.String("id", c.ID))
			}
		}
	}
	return nil
}

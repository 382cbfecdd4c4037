// Package testutil provides shared test helpers for setting up stores and
// image directories.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/northgard/sigil/internal/assets"
	"github.com/northgard/sigil/internal/store"
)

// TestStore creates a temporary SQLite store that is automatically cleaned up.
func TestStore(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "sigil-test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestImages creates a temporary rendered-image directory.
func TestImages(t *testing.T) *assets.FS {
	t.Helper()
	fs, err := assets.NewFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return fs
}

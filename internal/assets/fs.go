// Package assets manages the flat directory of rendered QR images.
// An external renderer drops "<code id>.png" files here; sigil links them
// to their codes.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FS is the rendered-image directory. All names are plain file names; the
// directory is flat by design.
type FS struct {
	root string
}

// NewFS creates an FS rooted at the given directory, creating it if needed.
func NewFS(root string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("assets: resolve root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("assets: create root: %w", err)
	}
	return &FS{root: abs}, nil
}

// Root returns the absolute directory path.
func (f *FS) Root() string { return f.root }

// safeName rejects anything that is not a plain .png file name and returns
// the absolute path under the root.
func (f *FS) safeName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("assets: filename is required")
	}
	cleaned := filepath.Clean(name)
	if cleaned != filepath.Base(cleaned) || strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("assets: invalid filename: %s", name)
	}
	if !strings.HasSuffix(cleaned, ".png") {
		return "", fmt.Errorf("assets: only .png files are accepted: %s", name)
	}
	return filepath.Join(f.root, cleaned), nil
}

// List returns the names of all .png files in the directory, sorted.
func (f *FS) List() ([]string, error) {
	entries, err := os.ReadDir(f.root)
	if err != nil {
		return nil, fmt.Errorf("assets: list: %w", err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".png") {
			continue
		}
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out, nil
}

// Read returns the raw bytes of an image.
func (f *FS) Read(name string) ([]byte, error) {
	abs, err := f.safeName(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", name, err)
	}
	return data, nil
}

// Write atomically writes an image: tmp file, fsync, rename.
func (f *FS) Write(name string, content []byte) error {
	abs, err := f.safeName(name)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.root, ".sigil-tmp-*")
	if err != nil {
		return fmt.Errorf("assets: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("assets: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("assets: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("assets: close temp: %w", err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return fmt.Errorf("assets: rename: %w", err)
	}
	success = true
	return nil
}

// Delete removes an image file.
func (f *FS) Delete(name string) error {
	abs, err := f.safeName(name)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil {
		return fmt.Errorf("assets: delete %s: %w", name, err)
	}
	return nil
}

// AbsPath resolves a stored image name for serving.
func (f *FS) AbsPath(name string) (string, error) {
	return f.safeName(name)
}

// Package fsutil provides filesystem helpers shared by the theme writers.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// AtomicWrite writes data to path so that readers see either the old content
// or the new content, never a partial file. Parent directories are created
// as needed. The temporary file lives beside the target so the final rename
// stays on one filesystem.
func AtomicWrite(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301 - config directories need standard permissions
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp := filepath.Join(dir, "."+filepath.Base(path)+".tmp")
	if err := os.WriteFile(tmp, data, perm); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to rename %s to %s: %w", tmp, path, err)
	}
	return nil
}

// WriteIfChanged calls AtomicWrite only when the existing content differs.
// It reports whether the file was written.
func WriteIfChanged(path string, data []byte, perm os.FileMode) (bool, error) {
	existing, err := os.ReadFile(path) // #nosec G304 - path is built from known output roots
	if err == nil && string(existing) == string(data) {
		return false, nil
	}
	if err := AtomicWrite(path, data, perm); err != nil {
		return false, err
	}
	return true, nil
}

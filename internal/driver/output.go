package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// writeOutput replaces path with data atomically: the bytes go to a temp
// file in the same directory which is renamed over path only when complete.
func writeOutput(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create output in %s: %w", dir, err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			// недописанный файл не должен остаться на диске
			_ = os.Remove(tmp)
		}
	}()

	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err = f.Chmod(0o644); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// removeStale deletes an output left by an earlier successful run, so a
// failed generation never leaves code that no longer matches its input.
func removeStale(path string) error {
	err := os.Remove(path)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to remove stale output %s: %w", path, err)
}

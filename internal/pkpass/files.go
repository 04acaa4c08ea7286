package pkpass

import (
	"fmt"
	"os"
	"path/filepath"
)

// readScopedFile reads a single file with access scoped to its parent directory
func readScopedFile(path string) ([]byte, error) {
	dir := filepath.Dir(path)
	filename := filepath.Base(path)

	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory %s: %w", dir, err)
	}
	defer root.Close()

	data, err := root.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// writeScopedFile writes data to filename inside baseDir
func writeScopedFile(baseDir, filename string, data []byte, perm os.FileMode) error {
	root, err := os.OpenRoot(baseDir)
	if err != nil {
		return fmt.Errorf("failed to open root directory %s: %w", baseDir, err)
	}
	defer root.Close()

	if err := root.WriteFile(filename, data, perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}

// Package atomicwrite provee escritura atómica de archivos.
// Se usa para exportar material PEM: una clave a medio escribir en disco es
// peor que ninguna.
package atomicwrite

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// WriteFile escribe data en path de forma atómica:
// tmp → Sync → Close → Chmod → Rename.
//
// En Windows os.Rename puede fallar si el destino existe; en ese caso se
// intenta remove+rename, preservando el archivo viejo si algo sale mal.
func WriteFile(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("chmod temp: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		if rmErr := os.Remove(path); rmErr == nil {
			if err2 := os.Rename(tmpPath, path); err2 == nil {
				return nil
			}
		}
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

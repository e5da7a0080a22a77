// Package storage persists upload blobs on local disk. The rest of
// the system only sees "store bytes, get back an opaque path".
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type IStorage interface {
	Save(originalName string, data []byte) (string, error)
	Read(path string) ([]byte, error)
	Remove(path string) error
	Exists(path string) bool
}

type DiskStorage struct {
	baseDir string
}

func NewDiskStorage(baseDir string) *DiskStorage {
	return &DiskStorage{baseDir: baseDir}
}

// Save writes the blob under a collision-free name derived from the
// current time and the original filename. The storage directory is
// created lazily on first use.
func (s *DiskStorage) Save(originalName string, data []byte) (string, error) {
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return "", fmt.Errorf("create storage dir: %w", err)
	}

	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(originalName))
	path := filepath.Join(s.baseDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}
	return path, nil
}

func (s *DiskStorage) Read(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (s *DiskStorage) Remove(path string) error {
	return os.Remove(path)
}

func (s *DiskStorage) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Package fileserver contains utilities for writing served files to
// the local volume.
package fileserver

import (
	"fmt"
	"os"
	"path/filepath"
)

const directoryPerms = 0o755

type FileServer struct {
	baseDir string
}

func New(baseDir string) *FileServer {
	return &FileServer{baseDir: baseDir}
}

func (f *FileServer) BaseDirectory() string {
	if f == nil {
		return ""
	}
	return f.baseDir
}

func (f *FileServer) Write(path string, data []byte) (n int, err error) {
	if f == nil {
		return 0, nil
	}

	fullpath := filepath.Join(f.baseDir, path)
	if err := os.MkdirAll(filepath.Dir(fullpath), directoryPerms); err != nil {
		return 0, fmt.Errorf("creating parent directories: %w", err)
	}

	file, err := os.Create(fullpath)
	if err != nil {
		return 0, fmt.Errorf("creating file: %w", err)
	}
	defer func() { _ = file.Close() }()

	n, err = file.Write(data)
	if err != nil {
		return n, fmt.Errorf("writing file: %w", err)
	}
	return n, nil
}

func (f *FileServer) Delete(path string) error {
	if f == nil {
		return nil
	}
	return os.Remove(filepath.Join(f.baseDir, path))
}

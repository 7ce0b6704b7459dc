package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStorageService implements StorageService on the local filesystem. Files
// land under baseDir and are served statically under /uploads.
type LocalStorageService struct {
	baseDir string
}

// NewLocalStorageService creates the storage root if needed.
func NewLocalStorageService(baseDir string) (*LocalStorageService, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", baseDir, err)
	}
	return &LocalStorageService{baseDir: baseDir}, nil
}

// Save writes src under baseDir/folder/filename and returns the relative URL
// to embed in documents.
func (s *LocalStorageService) Save(folder, filename string, src io.Reader) (string, error) {
	dir := filepath.Join(s.baseDir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create folder %s: %w", dir, err)
	}

	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", filename, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", filename, err)
	}

	return path.Join("/uploads", folder, filename), nil
}

// Remove deletes the file a previously returned URL points at. URLs outside
// /uploads are rejected so a crafted document cannot unlink arbitrary paths.
func (s *LocalStorageService) Remove(publicURL string) error {
	rel, ok := strings.CutPrefix(publicURL, "/uploads/")
	if !ok {
		return fmt.Errorf("not an uploads URL: %s", publicURL)
	}
	rel = filepath.Clean(rel)
	if rel == "." || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("invalid uploads path: %s", publicURL)
	}
	return os.Remove(filepath.Join(s.baseDir, rel))
}

// BaseDir exposes the storage root for static file serving.
func (s *LocalStorageService) BaseDir() string {
	return s.baseDir
}

package storage

import "io"

// StorageService stores uploaded images and hands back the relative URL that
// documents embed. Remove accepts the same URL shape back.
type StorageService interface {
	Save(folder, filename string, src io.Reader) (string, error)
	Remove(publicURL string) error
}

package storage

import "io"

// Backend abstracts the blob store. Blobs are addressed by their stored
// name; the catalog is the only index, the store keeps none of its own.
type Backend interface {
	Store(name string, data io.Reader) error
	Open(name string) (io.ReadCloser, error)
	Remove(name string) error
	Exists(name string) (bool, error)
}

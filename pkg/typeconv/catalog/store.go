package catalog

import (
	"errors"
	"time"
)

// Store persists manifests under a name.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores data under name, replacing any previous manifest.
	Save(name string, data []byte) error

	// Load retrieves a manifest.
	// Returns ErrNotFound if name is unknown.
	Load(name string) ([]byte, error)

	// List describes all stored manifests, ordered by save sequence.
	List() ([]Info, error)

	// Delete removes a manifest. Deleting an unknown name is not an error.
	Delete(name string) error

	// Close releases any resources.
	Close() error
}

// Info describes a stored manifest without loading it.
type Info struct {
	Name      string
	Sequence  int
	Timestamp time.Time
	Size      int64
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates no manifest is stored under the name.
	ErrNotFound = errors.New("manifest not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("catalog store closed")
)

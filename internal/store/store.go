package store

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/geobook/geobook/internal/models"
)

// Entry is the list projection of a record: just enough to render a row.
type Entry struct {
	ID    uuid.UUID
	Title string
}

// RecordStore is the durable keyed storage for location records.
// Validation of field values is the caller's responsibility.
type RecordStore interface {
	// Create persists a new record and returns its freshly assigned id.
	Create(title, subtitle string, latitude, longitude float64) (uuid.UUID, error)

	// FetchAll returns the id and title of every persisted record, in
	// whatever order the engine delivers them. An empty store yields an
	// empty slice, not an error.
	FetchAll() ([]Entry, error)

	// FetchByID returns the full record for id, or nil when no such
	// record exists.
	FetchByID(id uuid.UUID) (*models.LocationRecord, error)

	// DeleteByID removes the record for id. Deleting an id that is
	// already gone is a silent no-op; the UI may race a stale list.
	DeleteByID(id uuid.UUID) error

	// Close releases the underlying engine.
	Close() error
}

// StorageError wraps a failure of the underlying persistence engine.
// The contract on every store operation is that a StorageError leaves
// the durable state exactly as it was before the attempt.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

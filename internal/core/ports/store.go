package ports

import "go.trai.ch/carton/internal/core/domain"

// PackRecordStore defines the interface for storing and retrieving pack records.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type PackRecordStore interface {
	// Get retrieves the record for an output path.
	// Returns nil, nil if not found.
	Get(output string) (*domain.PackRecord, error)

	// Put stores the record.
	Put(record domain.PackRecord) error
}

// PackRecordStoreOpener opens the record store persisted at a state file.
type PackRecordStoreOpener interface {
	// Open loads the store at path. A missing file yields an empty store.
	Open(path string) (PackRecordStore, error)
}

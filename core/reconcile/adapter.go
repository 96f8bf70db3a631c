package reconcile

import "context"

// Adapter defines model-specific reconciliation logic. Adapters hold their own
// database and storage handles.
type Adapter interface {
	// Name returns the unique name of this adapter (e.g., "media").
	Name() string

	// LoadDBIndex loads every key referenced by the database.
	// Implementations should use a single batch query with minimal projection.
	LoadDBIndex(ctx context.Context) (map[string]DBItem, error)

	// LoadStorageSet lists every key present in storage.
	// Implementations should use paginated listing and avoid per-item HEAD calls.
	LoadStorageSet(ctx context.Context) (map[string]struct{}, error)

	// GetMetadata returns adapter-specific metadata for a key. dbItem is nil
	// when the key is only present in storage.
	GetMetadata(key string, dbItem DBItem) map[string]string
}

// Mutator is implemented by adapters that can execute purge actions.
type Mutator interface {
	Adapter

	// DeleteDB removes the database reference to key.
	DeleteDB(ctx context.Context, key string) error

	// DeleteStorage removes the storage object for key.
	DeleteStorage(ctx context.Context, key string) error
}

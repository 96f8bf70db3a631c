package listing

import (
	"context"

	"estate-manager/feature/listing/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tx is the view of the store inside a transaction.
type Tx interface {
	// FindByID loads a listing. It fails with ErrNotFound when absent.
	FindByID(ctx context.Context, id string) (*models.Listing, error)
	// Save replaces the stored listing.
	Save(ctx context.Context, l *models.Listing) error
	// Delete removes a listing. It fails with ErrNotFound when absent.
	Delete(ctx context.Context, id string) error
}

// Store persists listing documents.
type Store interface {
	// WithTransaction runs fn in a transaction. The transaction commits when fn
	// returns nil and is aborted otherwise. fn is called exactly once.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// FindByID loads a listing outside a transaction.
	FindByID(ctx context.Context, id string) (*models.Listing, error)
	// Create inserts a new listing.
	Create(ctx context.Context, l *models.Listing) error
	// MediaIndex returns every referenced media public id mapped to its listing id.
	MediaIndex(ctx context.Context) (map[string]string, error)
}

// IsValidID reports whether id has the 24 hex character form of a listing id.
func IsValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

// NewID returns a fresh listing id.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

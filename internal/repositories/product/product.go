package product

import (
	"context"
	"errors"

	"github.com/dealerhub/social-publisher/internal/domain"
)

var ErrNotFound = errors.New("product not found")

// Repository stores catalog products synced from Amazon.
type Repository interface {
	// Upsert inserts or refreshes a product record
	Upsert(ctx context.Context, product domain.Product) error

	// GetByID returns a product by its catalog id
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// ListByOwner returns the owner's products, most recently updated first
	ListByOwner(ctx context.Context, ownerID string, skip, limit int) ([]*domain.Product, error)
}

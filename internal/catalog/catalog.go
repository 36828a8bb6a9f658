package catalog

import (
	"context"
	"errors"

	"github.com/dealerhub/social-publisher/internal/domain"
)

var ErrProductNotFound = errors.New("product not found in catalog")

// Client resolves product references against the seller's catalog.
type Client interface {
	ResolveProduct(ctx context.Context, id string) (*domain.Product, error)
}

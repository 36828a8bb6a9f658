package catalogimpl

import (
	"context"
	"errors"

	"github.com/dealerhub/social-publisher/internal/catalog"
	"github.com/dealerhub/social-publisher/internal/domain"
	"github.com/dealerhub/social-publisher/internal/repositories/product"
	"github.com/dealerhub/social-publisher/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	ProductRepo product.Repository
	Logger      logger.Logger
}

// StoreImpl serves catalog lookups from the products table, which the
// Amazon sync path keeps current. Live SP-API retrieval is out of scope
// here; the store is the system's catalog of record.
type StoreImpl struct {
	ProductRepo product.Repository
	Logger      logger.Logger
}

func New(opts Opts) *StoreImpl {
	return &StoreImpl{
		ProductRepo: opts.ProductRepo,
		Logger:      opts.Logger.WithComponent("Catalog"),
	}
}

var _ catalog.Client = (*StoreImpl)(nil)

func (s *StoreImpl) ResolveProduct(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.ProductRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

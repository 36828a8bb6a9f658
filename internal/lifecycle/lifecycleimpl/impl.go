package lifecycleimpl

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/dealerhub/social-publisher/internal/catalog"
	"github.com/dealerhub/social-publisher/internal/domain"
	"github.com/dealerhub/social-publisher/internal/generator"
	"github.com/dealerhub/social-publisher/internal/lifecycle"
	"github.com/dealerhub/social-publisher/internal/publisher"
	"github.com/dealerhub/social-publisher/internal/repositories/post"
	"github.com/dealerhub/social-publisher/pkg/apperrors"
	"github.com/dealerhub/social-publisher/pkg/config"
	"github.com/dealerhub/social-publisher/pkg/logger"
	"github.com/dealerhub/social-publisher/pkg/retry"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Catalog   catalog.Client
	Generator generator.Client
	Publisher publisher.Client
	PostRepo  post.Repository
	Logger    logger.Logger
	Config    *config.Config
}

type ManagerImpl struct {
	Catalog   catalog.Client
	Generator generator.Client
	Publisher publisher.Client
	PostRepo  post.Repository
	Logger    logger.Logger
	Config    *config.Config

	charLimits map[domain.Platform]int

	// publishing tracks posts with an in-flight Publish; a second
	// concurrent call on the same id is rejected instead of queued so
	// it can never double-submit after the first one wins.
	publishingMu sync.Mutex
	publishing   map[string]struct{}
}

func New(opts Opts) *ManagerImpl {
	return &ManagerImpl{
		Catalog:    opts.Catalog,
		Generator:  opts.Generator,
		Publisher:  opts.Publisher,
		PostRepo:   opts.PostRepo,
		Logger:     opts.Logger.WithComponent("Lifecycle"),
		Config:     opts.Config,
		charLimits: domain.DefaultCharLimits,
		publishing: make(map[string]struct{}),
	}
}

var _ lifecycle.Manager = (*ManagerImpl)(nil)

// SetCharLimits overrides the per-platform content budgets.
func (m *ManagerImpl) SetCharLimits(limits map[domain.Platform]int) {
	m.charLimits = limits
}

func (m *ManagerImpl) charLimit(platform domain.Platform) int {
	if limit, ok := m.charLimits[platform]; ok {
		return limit
	}
	return domain.DefaultCharLimits[domain.PlatformTwitter]
}

func (m *ManagerImpl) ListDrafts(ctx context.Context, ownerID string, skip, limit int) ([]*domain.Post, error) {
	return m.list(ctx, ownerID, false, skip, limit)
}

func (m *ManagerImpl) ListPublished(ctx context.Context, ownerID string, skip, limit int) ([]*domain.Post, error) {
	return m.list(ctx, ownerID, true, skip, limit)
}

func (m *ManagerImpl) list(ctx context.Context, ownerID string, posted bool, skip, limit int) ([]*domain.Post, error) {
	if err := validateOwnerID(ownerID); err != nil {
		return nil, err
	}
	if skip < 0 || limit <= 0 {
		return nil, apperrors.New(apperrors.KindValidation, "skip must be >= 0 and limit > 0")
	}

	posts, err := m.PostRepo.ListByOwner(ctx, ownerID, posted, skip, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindUnavailable, "post store unreachable")
	}
	return posts, nil
}

func (m *ManagerImpl) Delete(ctx context.Context, postID string) error {
	if err := validatePostID(postID); err != nil {
		return err
	}

	if err := m.PostRepo.Delete(ctx, postID); err != nil {
		if errors.Is(err, post.ErrNotFound) {
			return apperrors.Newf(apperrors.KindNotFound, "post %s not found", postID)
		}
		return apperrors.Wrap(err, apperrors.KindUnavailable, "post store unreachable")
	}

	m.Logger.Info("Post deleted", "post_id", postID)
	return nil
}

// resolveProduct looks the product up with a bounded timeout and a
// single retry (catalog reads are idempotent).
func (m *ManagerImpl) resolveProduct(ctx context.Context, productID string) (*domain.Product, error) {
	var product *domain.Product

	err := retry.Do(ctx, m.Logger, "resolve_product", func() error {
		callCtx, cancel := context.WithTimeout(ctx, m.Config.Lifecycle.CatalogTimeout)
		defer cancel()

		resolved, err := m.Catalog.ResolveProduct(callCtx, productID)
		if err != nil {
			if errors.Is(err, catalog.ErrProductNotFound) {
				return backoffPermanent(err)
			}
			return err
		}
		product = resolved
		return nil
	}, retry.ReadConfig())

	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return nil, apperrors.Newf(apperrors.KindNotFound, "product %s not found", productID)
		}
		return nil, apperrors.Wrap(err, apperrors.KindUnavailable, "catalog unreachable")
	}
	return product, nil
}

// backoffPermanent stops the retry loop for errors that cannot succeed
// on a second attempt.
func backoffPermanent(err error) error {
	return backoff.Permanent(err)
}

func validateOwnerID(ownerID string) error {
	if strings.TrimSpace(ownerID) == "" {
		return apperrors.New(apperrors.KindValidation, "owner id is required")
	}
	return nil
}

func validateProductID(productID string) error {
	if strings.TrimSpace(productID) == "" {
		return apperrors.New(apperrors.KindValidation, "product id is required")
	}
	return nil
}

func validatePostID(postID string) error {
	if _, err := uuid.Parse(postID); err != nil {
		return apperrors.Newf(apperrors.KindValidation, "malformed post id %q", postID)
	}
	return nil
}

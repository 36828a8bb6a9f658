package generator

import (
	"context"

	"github.com/dealerhub/social-publisher/internal/domain"
)

// Client produces social post copy for a product. Implementations are
// stateless; callers own timeouts and fallback behavior.
type Client interface {
	Generate(ctx context.Context, product *domain.Product, platform domain.Platform, style domain.ContentStyle) (string, error)
}

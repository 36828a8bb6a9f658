package collector

import (
	"context"
	"errors"

	"github.com/dealerhub/social-publisher/internal/domain"
)

var ErrUnsupportedPlatform = errors.New("platform not supported for metrics collection")

// Client fetches current engagement counters for a published post. The
// returned map is open-ended per platform; keys follow the platform's
// own metric names normalized to the domain constants where possible.
type Client interface {
	FetchMetrics(ctx context.Context, platform domain.Platform, platformPostID string) (map[string]int64, error)
}

package publisher

import (
	"context"
	"errors"

	"github.com/dealerhub/social-publisher/internal/domain"
)

var ErrUnsupportedPlatform = errors.New("platform not supported for publishing")

// Client submits finalized post text to a social platform and returns
// the platform-assigned post id. Submission is not idempotent: callers
// must never retry a failed Submit.
type Client interface {
	Submit(ctx context.Context, platform domain.Platform, text string, imageURLs []string) (string, error)
}

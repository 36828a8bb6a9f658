package lifecycle

import (
	"context"

	"github.com/dealerhub/social-publisher/internal/domain"
)

// DraftOptions controls how CreateDraft obtains its content.
type DraftOptions struct {
	UseGenerated bool
	CustomText   string
	Style        domain.ContentStyle
}

// Manager owns the post state machine: drafts are created here,
// published exactly once, and deleted terminally.
type Manager interface {
	// CreateDraft builds and persists a draft post. Generation failures
	// fall back to templated content and never fail the call.
	CreateDraft(ctx context.Context, ownerID, productID string, platform domain.Platform, opts DraftOptions) (*domain.Post, error)

	// Publish submits a draft to its platform and transitions it to
	// published, exactly once.
	Publish(ctx context.Context, postID string) (*domain.Post, error)

	// ListDrafts returns the owner's drafts, newest-first
	ListDrafts(ctx context.Context, ownerID string, skip, limit int) ([]*domain.Post, error)

	// ListPublished returns the owner's published posts, newest-first
	ListPublished(ctx context.Context, ownerID string, skip, limit int) ([]*domain.Post, error)

	// Delete removes a post in any state. Metrics snapshots are retained.
	Delete(ctx context.Context, postID string) error

	// GenerateVariations produces up to count independent content
	// strings without persisting them. Best-effort: individual
	// generation failures are dropped from the result.
	GenerateVariations(ctx context.Context, productID string, platform domain.Platform, count int) ([]string, error)
}

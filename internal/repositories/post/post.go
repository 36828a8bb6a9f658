package post

import (
	"context"
	"errors"
	"time"

	"github.com/dealerhub/social-publisher/internal/domain"
)

var (
	ErrNotFound         = errors.New("post not found")
	ErrAlreadyExists    = errors.New("post already exists")
	ErrAlreadyPublished = errors.New("post already published")
)

//go:generate go run go.uber.org/mock/mockgen -source=post.go -destination=mocks/mock.go
type Repository interface {
	// Create persists a new post record
	Create(ctx context.Context, post domain.Post) error

	// GetByID returns a single post
	GetByID(ctx context.Context, id string) (*domain.Post, error)

	// ListByOwner returns the owner's posts filtered by published state,
	// newest-first, paged via skip/limit
	ListByOwner(ctx context.Context, ownerID string, posted bool, skip, limit int) ([]*domain.Post, error)

	// ListPublishedByOwner returns every published post of the owner, newest-first
	ListPublishedByOwner(ctx context.Context, ownerID string) ([]*domain.Post, error)

	// ListPublished returns every published post across owners, for the metrics sweep
	ListPublished(ctx context.Context) ([]*domain.Post, error)

	// MarkPublished transitions a draft to published with a compare-and-set
	// on the posted flag. Returns ErrAlreadyPublished when the post was
	// already published, ErrNotFound when it does not exist.
	MarkPublished(ctx context.Context, id, platformPostID string, postedAt time.Time) error

	// Delete removes a post. Returns ErrNotFound when absent.
	Delete(ctx context.Context, id string) error

	// CountByOwner returns total and published post counts
	CountByOwner(ctx context.Context, ownerID string) (total int64, published int64, err error)

	// PlatformCounts returns the per-platform post count distribution
	PlatformCounts(ctx context.Context, ownerID string) (map[domain.Platform]int64, error)

	// CreatedPerDay returns daily post-creation counts since the cutoff
	CreatedPerDay(ctx context.Context, ownerID string, since time.Time) (map[time.Time]int64, error)
}

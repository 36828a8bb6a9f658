package snapshot

import (
	"context"
	"errors"

	"github.com/dealerhub/social-publisher/internal/domain"
)

var (
	ErrNotFound       = errors.New("snapshot not found")
	ErrInvalidMetrics = errors.New("invalid metrics payload")
)

// Repository is the append-only store for metrics snapshots. Snapshots
// are never updated or deleted; deleting a post leaves its history in
// place for aggregation.
type Repository interface {
	// Create appends a snapshot. Metric keys must be non-empty and
	// values non-negative; violations return ErrInvalidMetrics.
	Create(ctx context.Context, snap domain.MetricsSnapshot) error

	// ListByPost returns all snapshots for a post, most recent first
	ListByPost(ctx context.Context, postID string) ([]*domain.MetricsSnapshot, error)

	// LatestByPost returns the most recent snapshot for a post, or
	// ErrNotFound when none has been collected yet
	LatestByPost(ctx context.Context, postID string) (*domain.MetricsSnapshot, error)
}

// ValidateMetrics enforces the storage-boundary contract on the
// open-ended metrics map.
func ValidateMetrics(metrics map[string]int64) error {
	if len(metrics) == 0 {
		return ErrInvalidMetrics
	}
	for key, value := range metrics {
		if key == "" || value < 0 {
			return ErrInvalidMetrics
		}
	}
	return nil
}

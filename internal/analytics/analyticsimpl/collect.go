package analyticsimpl

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dealerhub/social-publisher/internal/domain"
	"github.com/dealerhub/social-publisher/internal/repositories/post"
	"github.com/dealerhub/social-publisher/internal/repositories/snapshot"
	"github.com/dealerhub/social-publisher/pkg/apperrors"
	"github.com/dealerhub/social-publisher/pkg/retry"
)

// CollectSnapshot fetches current counters for a published post and
// appends an immutable snapshot. Nothing is written when the platform
// fetch fails: no zero-filled records, "call failed" is never stored
// as "no data".
func (a *AggregatorImpl) CollectSnapshot(ctx context.Context, postID string) (*domain.MetricsSnapshot, error) {
	if _, err := uuid.Parse(postID); err != nil {
		return nil, apperrors.Newf(apperrors.KindValidation, "malformed post id %q", postID)
	}

	target, err := a.PostRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, post.ErrNotFound) {
			return nil, apperrors.Newf(apperrors.KindNotFound, "post %s not found", postID)
		}
		return nil, apperrors.Wrap(err, apperrors.KindUnavailable, "post store unreachable")
	}
	if !target.Posted {
		return nil, apperrors.New(apperrors.KindConflict, "post is a draft, nothing to measure")
	}

	var metrics map[string]int64
	err = retry.Do(ctx, a.Logger, "fetch_metrics", func() error {
		callCtx, cancel := context.WithTimeout(ctx, a.Config.Lifecycle.CollectTimeout)
		defer cancel()

		fetched, err := a.Collector.FetchMetrics(callCtx, target.Platform, target.PlatformPostID)
		if err != nil {
			return err
		}
		metrics = fetched
		return nil
	}, retry.ReadConfig())
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindCollection, "failed to fetch platform metrics")
	}

	snap := domain.MetricsSnapshot{
		ID:          uuid.NewString(),
		PostID:      target.ID,
		Platform:    target.Platform,
		Metrics:     metrics,
		CollectedAt: time.Now().UTC(),
	}

	if err := a.SnapshotRepo.Create(ctx, snap); err != nil {
		if errors.Is(err, snapshot.ErrInvalidMetrics) {
			return nil, apperrors.Wrap(err, apperrors.KindCollection, "platform returned an invalid metrics payload")
		}
		return nil, apperrors.Wrap(err, apperrors.KindUnavailable, "failed to persist snapshot")
	}

	a.Logger.Info("Snapshot collected",
		"post_id", target.ID, "platform", target.Platform, "metric_count", len(metrics))
	return &snap, nil
}

package analyticsimpl

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/dealerhub/social-publisher/internal/analytics"
	"github.com/dealerhub/social-publisher/internal/repositories/post"
	"github.com/dealerhub/social-publisher/pkg/apperrors"
)

// PostDetail returns the post's full snapshot history, newest first,
// with derived totals from the latest snapshot. Drafts get a
// distinguished not-published result instead of a computation attempt.
func (a *AggregatorImpl) PostDetail(ctx context.Context, postID string) (*analytics.PostDetail, error) {
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
		return &analytics.PostDetail{Post: target, Published: false}, nil
	}

	snapshots, err := a.SnapshotRepo.ListByPost(ctx, target.ID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindUnavailable, "snapshot store unreachable")
	}

	detail := &analytics.PostDetail{
		Post:      target,
		Published: true,
		Snapshots: snapshots,
	}

	if len(snapshots) > 0 {
		latest := snapshots[0]
		detail.TotalEngagement = latest.EngagementScore()
		detail.Reach = latest.Reach()
		detail.EngagementRate = engagementRate(detail.TotalEngagement, detail.Reach)
	}

	return detail, nil
}

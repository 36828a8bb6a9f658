package analyticsimpl

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealerhub/social-publisher/internal/domain"
	"github.com/dealerhub/social-publisher/pkg/apperrors"
)

func TestPostDetailDraftIsDistinguished(t *testing.T) {
	posts := newMemPostRepo()
	draft := domain.Post{
		ID:        uuid.NewString(),
		OwnerID:   "owner-1",
		ProductID: "B0CHX1W1XY",
		Platform:  domain.PlatformTwitter,
		Content:   "draft content",
		CreatedAt: time.Now().UTC(),
	}
	posts.add(draft)

	agg := newTestAggregator(aggregatorDeps{posts: posts})

	detail, err := agg.PostDetail(context.Background(), draft.ID)
	require.NoError(t, err)
	assert.False(t, detail.Published)
	assert.Empty(t, detail.Snapshots)
	assert.Zero(t, detail.TotalEngagement)
	assert.Zero(t, detail.EngagementRate)
}

func TestPostDetailZeroSnapshots(t *testing.T) {
	posts := newMemPostRepo()
	target := publishedPost("owner-1", time.Now().UTC().Add(-time.Hour))
	posts.add(target)

	agg := newTestAggregator(aggregatorDeps{posts: posts})

	detail, err := agg.PostDetail(context.Background(), target.ID)
	require.NoError(t, err)
	assert.True(t, detail.Published)
	assert.Empty(t, detail.Snapshots)
	assert.Zero(t, detail.Reach)
	assert.Zero(t, detail.EngagementRate)
}

func TestPostDetailTotalsFromLatestSnapshot(t *testing.T) {
	posts := newMemPostRepo()
	snaps := newMemSnapshotRepo()
	target := publishedPost("owner-1", time.Now().UTC().Add(-2*time.Hour))
	posts.add(target)

	base := time.Now().UTC()
	old := domain.MetricsSnapshot{
		ID:       uuid.NewString(),
		PostID:   target.ID,
		Platform: target.Platform,
		Metrics: map[string]int64{
			domain.MetricLikes:       5,
			domain.MetricImpressions: 100,
		},
		CollectedAt: base.Add(-time.Hour),
	}
	latest := domain.MetricsSnapshot{
		ID:       uuid.NewString(),
		PostID:   target.ID,
		Platform: target.Platform,
		Metrics: map[string]int64{
			domain.MetricLikes:       20,
			domain.MetricShares:      8,
			domain.MetricReplies:     2,
			domain.MetricImpressions: 600,
		},
		CollectedAt: base,
	}
	require.NoError(t, snaps.Create(context.Background(), old))
	require.NoError(t, snaps.Create(context.Background(), latest))

	agg := newTestAggregator(aggregatorDeps{posts: posts, snaps: snaps})

	detail, err := agg.PostDetail(context.Background(), target.ID)
	require.NoError(t, err)
	require.Len(t, detail.Snapshots, 2)
	assert.Equal(t, latest.ID, detail.Snapshots[0].ID, "history must be newest-first")
	assert.Equal(t, int64(30), detail.TotalEngagement)
	assert.Equal(t, int64(600), detail.Reach)
	assert.InDelta(t, 0.05, detail.EngagementRate, 1e-9)
}

func TestPostDetailSurvivesPostDeletion(t *testing.T) {
	posts := newMemPostRepo()
	snaps := newMemSnapshotRepo()
	target := publishedPost("owner-1", time.Now().UTC().Add(-time.Hour))
	posts.add(target)

	require.NoError(t, snaps.Create(context.Background(), domain.MetricsSnapshot{
		ID:          uuid.NewString(),
		PostID:      target.ID,
		Platform:    target.Platform,
		Metrics:     map[string]int64{domain.MetricLikes: 7},
		CollectedAt: time.Now().UTC(),
	}))
	require.NoError(t, posts.Delete(context.Background(), target.ID))

	agg := newTestAggregator(aggregatorDeps{posts: posts, snaps: snaps})

	_, err := agg.PostDetail(context.Background(), target.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, 1, snaps.count(), "snapshots are retained after post deletion")
}

func TestPostDetailMalformedID(t *testing.T) {
	agg := newTestAggregator(aggregatorDeps{})

	_, err := agg.PostDetail(context.Background(), "")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

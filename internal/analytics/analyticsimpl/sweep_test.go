package analyticsimpl

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealerhub/social-publisher/internal/domain"
)

func TestRunSweepCollectsEveryPublishedPost(t *testing.T) {
	posts := newMemPostRepo()
	snaps := newMemSnapshotRepo()
	now := time.Now().UTC()

	for i := 0; i < 4; i++ {
		posts.add(publishedPost("owner-1", now.Add(-time.Duration(i)*time.Hour)))
	}
	posts.add(domain.Post{
		ID:        uuid.NewString(),
		OwnerID:   "owner-1",
		ProductID: "B0CHX1W1XY",
		Platform:  domain.PlatformTwitter,
		Content:   "still a draft",
		CreatedAt: now,
	})

	agg := newTestAggregator(aggregatorDeps{posts: posts, snaps: snaps})
	agg.runSweep(context.Background())

	assert.Equal(t, 4, snaps.count(), "one snapshot per published post, drafts skipped")
}

func TestRunSweepFailedFetchesStoreNothing(t *testing.T) {
	posts := newMemPostRepo()
	snaps := newMemSnapshotRepo()
	now := time.Now().UTC()

	broken := publishedPost("owner-1", now.Add(-time.Hour))
	posts.add(broken)
	posts.add(publishedPost("owner-1", now.Add(-2*time.Hour)))
	posts.add(publishedPost("owner-1", now.Add(-3*time.Hour)))

	coll := &fakeCollector{fn: func(_ domain.Platform, platformPostID string) (map[string]int64, error) {
		if platformPostID == broken.PlatformPostID {
			return nil, errors.New("rate limited")
		}
		return map[string]int64{domain.MetricLikes: 3}, nil
	}}

	agg := newTestAggregator(aggregatorDeps{collector: coll, posts: posts, snaps: snaps})
	agg.runSweep(context.Background())

	assert.Equal(t, 2, snaps.count(), "a failed fetch drops that post only")
	history, err := snaps.ListByPost(context.Background(), broken.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestRunSweepStopsWhenCancelled(t *testing.T) {
	posts := newMemPostRepo()
	snaps := newMemSnapshotRepo()
	now := time.Now().UTC()

	for i := 0; i < 3; i++ {
		posts.add(publishedPost("owner-1", now.Add(-time.Duration(i)*time.Hour)))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	agg := newTestAggregator(aggregatorDeps{posts: posts, snaps: snaps})
	agg.runSweep(ctx)

	assert.Zero(t, snaps.count(), "a cancelled sweep collects nothing")
}

func TestScheduleSweepRunsAndShutsDown(t *testing.T) {
	posts := newMemPostRepo()
	snaps := newMemSnapshotRepo()
	posts.add(publishedPost("owner-1", time.Now().UTC().Add(-time.Hour)))

	agg := newTestAggregator(aggregatorDeps{posts: posts, snaps: snaps})
	agg.Config.Analytics.SweepInterval = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, agg.ScheduleSweep(ctx))
	assert.Eventually(t, func() bool { return snaps.count() > 0 },
		2*time.Second, 10*time.Millisecond, "scheduled job must fire")

	cancel()
}

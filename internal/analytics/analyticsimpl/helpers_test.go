package analyticsimpl

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dealerhub/social-publisher/internal/domain"
	"github.com/dealerhub/social-publisher/internal/repositories/post"
	"github.com/dealerhub/social-publisher/internal/repositories/snapshot"
	"github.com/dealerhub/social-publisher/pkg/config"
	"github.com/dealerhub/social-publisher/pkg/logger"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Lifecycle.CollectTimeout = time.Second
	cfg.Analytics.SweepInterval = time.Hour
	return cfg
}

type fakeCollector struct {
	fn func(platform domain.Platform, platformPostID string) (map[string]int64, error)
}

func (f *fakeCollector) FetchMetrics(_ context.Context, platform domain.Platform, platformPostID string) (map[string]int64, error) {
	return f.fn(platform, platformPostID)
}

type memPostRepo struct {
	mu    sync.Mutex
	posts map[string]domain.Post
}

var _ post.Repository = (*memPostRepo)(nil)

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{posts: make(map[string]domain.Post)}
}

func (r *memPostRepo) add(p domain.Post) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts[p.ID] = p
}

func (r *memPostRepo) Create(_ context.Context, p domain.Post) error {
	r.add(p)
	return nil
}

func (r *memPostRepo) GetByID(_ context.Context, id string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, post.ErrNotFound
	}
	copied := p
	return &copied, nil
}

func (r *memPostRepo) ListByOwner(_ context.Context, ownerID string, posted bool, skip, limit int) ([]*domain.Post, error) {
	var out []*domain.Post
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		if p.OwnerID == ownerID && p.Posted == posted {
			copied := p
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memPostRepo) ListPublishedByOwner(_ context.Context, ownerID string) ([]*domain.Post, error) {
	var out []*domain.Post
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		if p.OwnerID == ownerID && p.Posted {
			copied := p
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PostedAt.After(out[j].PostedAt) })
	return out, nil
}

func (r *memPostRepo) ListPublished(_ context.Context) ([]*domain.Post, error) {
	var out []*domain.Post
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		if p.Posted {
			copied := p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memPostRepo) MarkPublished(_ context.Context, id, platformPostID string, postedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return post.ErrNotFound
	}
	if p.Posted {
		return post.ErrAlreadyPublished
	}
	p.Posted = true
	p.PlatformPostID = platformPostID
	p.PostedAt = postedAt
	r.posts[id] = p
	return nil
}

func (r *memPostRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return post.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *memPostRepo) CountByOwner(_ context.Context, ownerID string) (int64, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total, published int64
	for _, p := range r.posts {
		if p.OwnerID != ownerID {
			continue
		}
		total++
		if p.Posted {
			published++
		}
	}
	return total, published, nil
}

func (r *memPostRepo) PlatformCounts(_ context.Context, ownerID string) (map[domain.Platform]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[domain.Platform]int64)
	for _, p := range r.posts {
		if p.OwnerID == ownerID {
			counts[p.Platform]++
		}
	}
	return counts, nil
}

func (r *memPostRepo) CreatedPerDay(_ context.Context, ownerID string, since time.Time) (map[time.Time]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	buckets := make(map[time.Time]int64)
	for _, p := range r.posts {
		if p.OwnerID == ownerID && !p.CreatedAt.Before(since) {
			buckets[p.CreatedAt.UTC().Truncate(24*time.Hour)]++
		}
	}
	return buckets, nil
}

type memSnapshotRepo struct {
	mu    sync.Mutex
	snaps []domain.MetricsSnapshot
}

var _ snapshot.Repository = (*memSnapshotRepo)(nil)

func newMemSnapshotRepo() *memSnapshotRepo {
	return &memSnapshotRepo{}
}

func (r *memSnapshotRepo) Create(_ context.Context, snap domain.MetricsSnapshot) error {
	if err := snapshot.ValidateMetrics(snap.Metrics); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snaps = append(r.snaps, snap)
	return nil
}

func (r *memSnapshotRepo) ListByPost(_ context.Context, postID string) ([]*domain.MetricsSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.MetricsSnapshot
	for i := range r.snaps {
		if r.snaps[i].PostID == postID {
			copied := r.snaps[i]
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CollectedAt.After(out[j].CollectedAt) })
	return out, nil
}

func (r *memSnapshotRepo) LatestByPost(ctx context.Context, postID string) (*domain.MetricsSnapshot, error) {
	snaps, err := r.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if len(snaps) == 0 {
		return nil, snapshot.ErrNotFound
	}
	return snaps[0], nil
}

func (r *memSnapshotRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.snaps)
}

func publishedPost(ownerID string, postedAt time.Time) domain.Post {
	return domain.Post{
		ID:             uuid.NewString(),
		OwnerID:        ownerID,
		ProductID:      "B0CHX1W1XY",
		Platform:       domain.PlatformTwitter,
		Content:        "published content",
		Posted:         true,
		PlatformPostID: "tw-" + uuid.NewString()[:8],
		CreatedAt:      postedAt.Add(-time.Hour),
		PostedAt:       postedAt,
	}
}

type aggregatorDeps struct {
	collector *fakeCollector
	posts     *memPostRepo
	snaps     *memSnapshotRepo
}

func newTestAggregator(deps aggregatorDeps) *AggregatorImpl {
	if deps.collector == nil {
		deps.collector = &fakeCollector{fn: func(domain.Platform, string) (map[string]int64, error) {
			return map[string]int64{
				domain.MetricLikes:       10,
				domain.MetricShares:      4,
				domain.MetricReplies:     2,
				domain.MetricImpressions: 400,
			}, nil
		}}
	}
	if deps.posts == nil {
		deps.posts = newMemPostRepo()
	}
	if deps.snaps == nil {
		deps.snaps = newMemSnapshotRepo()
	}

	return New(Opts{
		Collector:    deps.collector,
		PostRepo:     deps.posts,
		SnapshotRepo: deps.snaps,
		Logger:       logger.New(logger.Opts{}),
		Config:       testConfig(),
	})
}

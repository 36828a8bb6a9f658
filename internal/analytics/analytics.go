package analytics

import (
	"context"
	"time"

	"github.com/dealerhub/social-publisher/internal/domain"
)

// DayCount is one time bucket of the dashboard activity series.
type DayCount struct {
	Date  time.Time
	Count int64
}

// TopPost ranks a published post by the engagement score of its latest
// snapshot.
type TopPost struct {
	Post            *domain.Post
	EngagementScore int64
	Reach           int64
	EngagementRate  float64
}

// DashboardSummary is the aggregate view over one owner's posts.
type DashboardSummary struct {
	TotalPosts           int64
	PublishedPosts       int64
	PlatformDistribution map[domain.Platform]int64
	DailyActivity        []DayCount
	TopPosts             []TopPost
	TotalEngagement      int64
	TotalImpressions     int64
}

// PostDetail is the full metrics history of one post plus derived
// totals. Published is false for drafts; the metric fields are zero
// then and Snapshots is empty.
type PostDetail struct {
	Post            *domain.Post
	Published       bool
	Snapshots       []*domain.MetricsSnapshot
	TotalEngagement int64
	Reach           int64
	EngagementRate  float64
}

// Aggregator collects metrics snapshots and computes rollups over the
// lifecycle manager's stored data.
type Aggregator interface {
	// CollectSnapshot fetches current counters for a published post and
	// appends an immutable snapshot. Drafts are rejected; a failed
	// platform fetch stores nothing.
	CollectSnapshot(ctx context.Context, postID string) (*domain.MetricsSnapshot, error)

	// DashboardSummary aggregates the owner's posts over the given
	// window of days.
	DashboardSummary(ctx context.Context, ownerID string, windowDays int) (*DashboardSummary, error)

	// PostDetail returns the post's snapshot history, newest first,
	// with derived engagement totals.
	PostDetail(ctx context.Context, postID string) (*PostDetail, error)
}

package domain

import "time"

// Canonical metric keys. The metrics map is open-ended per platform;
// these are only the keys the aggregator knows how to score.
const (
	MetricLikes       = "like_count"
	MetricShares      = "share_count"
	MetricReplies     = "reply_count"
	MetricImpressions = "impression_count"
)

// MetricsSnapshot is an immutable point-in-time capture of engagement
// counters for a published post. Snapshots are append-only: they are
// never mutated or deleted, even after the parent post is removed.
type MetricsSnapshot struct {
	ID          string
	PostID      string
	Platform    Platform
	Metrics     map[string]int64
	CollectedAt time.Time
}

// EngagementScore sums the like/share/reply counters, weighted equally.
func (s *MetricsSnapshot) EngagementScore() int64 {
	return s.Metrics[MetricLikes] + s.Metrics[MetricShares] + s.Metrics[MetricReplies]
}

// Reach returns the impression counter, 0 when the platform did not
// report one.
func (s *MetricsSnapshot) Reach() int64 {
	return s.Metrics[MetricImpressions]
}

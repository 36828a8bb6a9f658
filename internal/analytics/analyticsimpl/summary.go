package analyticsimpl

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/dealerhub/social-publisher/internal/analytics"
	"github.com/dealerhub/social-publisher/internal/repositories/snapshot"
	"github.com/dealerhub/social-publisher/pkg/apperrors"
)

const topPostCount = 5

// DashboardSummary aggregates the owner's posts over the given window.
func (a *AggregatorImpl) DashboardSummary(ctx context.Context, ownerID string, windowDays int) (*analytics.DashboardSummary, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, apperrors.New(apperrors.KindValidation, "owner id is required")
	}
	if windowDays <= 0 {
		windowDays = 30
	}

	total, published, err := a.PostRepo.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindUnavailable, "post store unreachable")
	}

	distribution, err := a.PostRepo.PlatformCounts(ctx, ownerID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindUnavailable, "post store unreachable")
	}

	daily, err := a.dailyActivity(ctx, ownerID, windowDays)
	if err != nil {
		return nil, err
	}

	topPosts, totalEngagement, totalImpressions, err := a.rankPosts(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return &analytics.DashboardSummary{
		TotalPosts:           total,
		PublishedPosts:       published,
		PlatformDistribution: distribution,
		DailyActivity:        daily,
		TopPosts:             topPosts,
		TotalEngagement:      totalEngagement,
		TotalImpressions:     totalImpressions,
	}, nil
}

// dailyActivity returns one bucket per day over the window, oldest
// first, with empty days filled in as zero.
func (a *AggregatorImpl) dailyActivity(ctx context.Context, ownerID string, windowDays int) ([]analytics.DayCount, error) {
	now := time.Now().UTC()
	start := now.AddDate(0, 0, -(windowDays - 1)).Truncate(24 * time.Hour)

	counts, err := a.PostRepo.CreatedPerDay(ctx, ownerID, start)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindUnavailable, "post store unreachable")
	}

	daily := make([]analytics.DayCount, 0, windowDays)
	for day := start; !day.After(now); day = day.AddDate(0, 0, 1) {
		daily = append(daily, analytics.DayCount{Date: day, Count: counts[day]})
	}
	return daily, nil
}

// rankPosts scores every published post by its latest snapshot and
// returns the top performers plus engagement totals across the owner.
func (a *AggregatorImpl) rankPosts(ctx context.Context, ownerID string) ([]analytics.TopPost, int64, int64, error) {
	posts, err := a.PostRepo.ListPublishedByOwner(ctx, ownerID)
	if err != nil {
		return nil, 0, 0, apperrors.Wrap(err, apperrors.KindUnavailable, "post store unreachable")
	}

	var totalEngagement, totalImpressions int64
	ranked := make([]analytics.TopPost, 0, len(posts))

	for _, p := range posts {
		latest, err := a.SnapshotRepo.LatestByPost(ctx, p.ID)
		if err != nil {
			if errors.Is(err, snapshot.ErrNotFound) {
				// Published but never measured: ranks at zero
				ranked = append(ranked, analytics.TopPost{Post: p})
				continue
			}
			return nil, 0, 0, apperrors.Wrap(err, apperrors.KindUnavailable, "snapshot store unreachable")
		}

		score := latest.EngagementScore()
		reach := latest.Reach()
		totalEngagement += score
		totalImpressions += reach

		ranked = append(ranked, analytics.TopPost{
			Post:            p,
			EngagementScore: score,
			Reach:           reach,
			EngagementRate:  engagementRate(score, reach),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].EngagementScore != ranked[j].EngagementScore {
			return ranked[i].EngagementScore > ranked[j].EngagementScore
		}
		return ranked[i].Post.PostedAt.After(ranked[j].Post.PostedAt)
	})

	if len(ranked) > topPostCount {
		ranked = ranked[:topPostCount]
	}
	return ranked, totalEngagement, totalImpressions, nil
}

// engagementRate guards the zero-reach case: a post nobody saw has a
// rate of 0, never a division error.
func engagementRate(engagement, reach int64) float64 {
	if reach == 0 {
		return 0
	}
	return float64(engagement) / float64(reach)
}

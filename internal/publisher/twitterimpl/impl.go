package twitterimpl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dealerhub/social-publisher/internal/collector"
	"github.com/dealerhub/social-publisher/internal/domain"
	"github.com/dealerhub/social-publisher/internal/publisher"
	"github.com/dealerhub/social-publisher/internal/ratelimit"
	"github.com/dealerhub/social-publisher/pkg/config"
	"github.com/dealerhub/social-publisher/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

// TwitterImpl is a bearer-token client for the Twitter API v2. It
// implements both the publisher and collector contracts: POST /tweets
// for submission, GET /tweets/:id public_metrics for collection.
type TwitterImpl struct {
	baseURL     string
	bearerToken string
	httpClient  *http.Client
	limiter     ratelimit.Limiter
	logger      logger.Logger
}

func New(opts Opts) *TwitterImpl {
	return &TwitterImpl{
		baseURL:     opts.Config.Twitter.BaseURL,
		bearerToken: opts.Config.Twitter.BearerToken,
		httpClient:  &http.Client{Timeout: opts.Config.Twitter.Timeout},
		limiter:     ratelimit.NewInMemoryLimiter(1, 2*time.Second, 5),
		logger:      opts.Logger.WithComponent("TwitterClient"),
	}
}

var (
	_ publisher.Client = (*TwitterImpl)(nil)
	_ collector.Client = (*TwitterImpl)(nil)
)

type tweetRequest struct {
	Text string `json:"text"`
}

type tweetResponse struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

type tweetLookupResponse struct {
	Data struct {
		PublicMetrics map[string]int64 `json:"public_metrics"`
	} `json:"data"`
}

// Submit posts a tweet. Image attachment needs the v1.1 media upload
// endpoint and separate OAuth1 credentials.
// TODO: wire media upload once user-context OAuth1 credentials are stored.
func (t *TwitterImpl) Submit(ctx context.Context, platform domain.Platform, text string, imageURLs []string) (string, error) {
	if platform != domain.PlatformTwitter {
		return "", publisher.ErrUnsupportedPlatform
	}
	if !t.limiter.Allow(string(platform)) {
		return "", fmt.Errorf("twitter submit rate limited")
	}

	body, err := json.Marshal(tweetRequest{Text: text})
	if err != nil {
		return "", err
	}

	resp, err := t.do(ctx, http.MethodPost, "/tweets", body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("twitter create tweet failed: %s", readErrorDetail(resp))
	}

	var parsed tweetResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("twitter response decode failed: %w", err)
	}
	if parsed.Data.ID == "" {
		return "", fmt.Errorf("twitter returned no tweet id")
	}

	t.logger.Info("Tweet published", "tweet_id", parsed.Data.ID)
	return parsed.Data.ID, nil
}

// FetchMetrics retrieves public_metrics for a tweet and normalizes the
// counter names to the domain's canonical keys.
func (t *TwitterImpl) FetchMetrics(ctx context.Context, platform domain.Platform, platformPostID string) (map[string]int64, error) {
	if platform != domain.PlatformTwitter {
		return nil, collector.ErrUnsupportedPlatform
	}
	if !t.limiter.Allow(string(platform) + ":metrics") {
		return nil, fmt.Errorf("twitter metrics rate limited")
	}

	path := fmt.Sprintf("/tweets/%s?tweet.fields=public_metrics", platformPostID)
	resp, err := t.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("twitter tweet lookup failed: %s", readErrorDetail(resp))
	}

	var parsed tweetLookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("twitter response decode failed: %w", err)
	}

	return normalizeMetrics(parsed.Data.PublicMetrics), nil
}

func (t *TwitterImpl) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+t.bearerToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("twitter request failed: %w", err)
	}
	return resp, nil
}

func readErrorDetail(resp *http.Response) string {
	detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Sprintf("status %d: %s", resp.StatusCode, string(detail))
}

// normalizeMetrics maps Twitter's counter names onto the canonical
// metric keys, keeping unknown counters under their original names.
func normalizeMetrics(raw map[string]int64) map[string]int64 {
	aliases := map[string]string{
		"like_count":       domain.MetricLikes,
		"retweet_count":    domain.MetricShares,
		"reply_count":      domain.MetricReplies,
		"impression_count": domain.MetricImpressions,
	}

	metrics := make(map[string]int64, len(raw))
	for key, value := range raw {
		if canonical, ok := aliases[key]; ok {
			key = canonical
		}
		metrics[key] = value
	}
	return metrics
}

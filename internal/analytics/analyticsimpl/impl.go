package analyticsimpl

import (
	"github.com/dealerhub/social-publisher/internal/analytics"
	"github.com/dealerhub/social-publisher/internal/collector"
	"github.com/dealerhub/social-publisher/internal/repositories/post"
	"github.com/dealerhub/social-publisher/internal/repositories/snapshot"
	"github.com/dealerhub/social-publisher/pkg/config"
	"github.com/dealerhub/social-publisher/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Collector    collector.Client
	PostRepo     post.Repository
	SnapshotRepo snapshot.Repository
	Logger       logger.Logger
	Config       *config.Config
}

type AggregatorImpl struct {
	Collector    collector.Client
	PostRepo     post.Repository
	SnapshotRepo snapshot.Repository
	Logger       logger.Logger
	Config       *config.Config
}

func New(opts Opts) *AggregatorImpl {
	return &AggregatorImpl{
		Collector:    opts.Collector,
		PostRepo:     opts.PostRepo,
		SnapshotRepo: opts.SnapshotRepo,
		Logger:       opts.Logger.WithComponent("Analytics"),
		Config:       opts.Config,
	}
}

var _ analytics.Aggregator = (*AggregatorImpl)(nil)

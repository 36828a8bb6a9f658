package app

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"go.uber.org/fx"

	"github.com/dealerhub/social-publisher/internal/analytics"
	"github.com/dealerhub/social-publisher/internal/analytics/analyticsimpl"
	"github.com/dealerhub/social-publisher/internal/catalog"
	"github.com/dealerhub/social-publisher/internal/catalog/catalogimpl"
	"github.com/dealerhub/social-publisher/internal/collector"
	"github.com/dealerhub/social-publisher/internal/generator"
	"github.com/dealerhub/social-publisher/internal/generator/openaiimpl"
	"github.com/dealerhub/social-publisher/internal/httpserver"
	"github.com/dealerhub/social-publisher/internal/lifecycle"
	"github.com/dealerhub/social-publisher/internal/lifecycle/lifecycleimpl"
	_ "github.com/dealerhub/social-publisher/internal/migrations"
	"github.com/dealerhub/social-publisher/internal/postgres"
	"github.com/dealerhub/social-publisher/internal/publisher"
	"github.com/dealerhub/social-publisher/internal/publisher/twitterimpl"
	repositories "github.com/dealerhub/social-publisher/internal/repositories/fx"
	"github.com/dealerhub/social-publisher/pkg/config"
	"github.com/dealerhub/social-publisher/pkg/logger"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		postgres.New,
	),
	fx.Provide(
		fx.Annotate(
			catalogimpl.New,
			fx.As(new(catalog.Client)),
		),
		fx.Annotate(
			openaiimpl.New,
			fx.As(new(generator.Client)),
		),
		fx.Annotate(
			twitterimpl.New,
			fx.As(new(publisher.Client)),
			fx.As(new(collector.Client)),
		),
		fx.Annotate(
			lifecycleimpl.New,
			fx.As(new(lifecycle.Manager)),
		),
		analyticsimpl.New,
		func(a *analyticsimpl.AggregatorImpl) analytics.Aggregator { return a },
		httpserver.New,
	),
	repositories.Module,
	fx.Invoke(migrate),
	fx.Invoke(run),
)

// migrate applies pending schema migrations before the app serves.
func migrate(cfg *config.Config, log logger.Logger) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := goose.Up(db, "."); err != nil {
		return err
	}

	log.Info("Database migrations applied")
	return nil
}

func run(lc fx.Lifecycle, log logger.Logger, cfg *config.Config,
	server *httpserver.Server, aggregator *analyticsimpl.AggregatorImpl) {

	sweepCtx, cancelSweep := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			server.Start()

			if cfg.Analytics.SweepEnabled {
				if err := aggregator.ScheduleSweep(sweepCtx); err != nil {
					log.Error("Failed to schedule metrics sweep", "error", err)
					return err
				}
			}

			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancelSweep()
			return server.Stop(ctx)
		},
	})
}

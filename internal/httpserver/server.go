package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/dealerhub/social-publisher/internal/analytics"
	"github.com/dealerhub/social-publisher/internal/lifecycle"
	"github.com/dealerhub/social-publisher/internal/repositories/product"
	"github.com/dealerhub/social-publisher/pkg/config"
	"github.com/dealerhub/social-publisher/pkg/logger"
)

type Opts struct {
	fx.In

	Lifecycle   lifecycle.Manager
	Analytics   analytics.Aggregator
	ProductRepo product.Repository
	Logger      logger.Logger
	Config      *config.Config
}

type Server struct {
	Lifecycle   lifecycle.Manager
	Analytics   analytics.Aggregator
	ProductRepo product.Repository
	Logger      logger.Logger
	Config      *config.Config

	engine *gin.Engine
	http   *http.Server
}

func New(opts Opts) *Server {
	if opts.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		Lifecycle:   opts.Lifecycle,
		Analytics:   opts.Analytics,
		ProductRepo: opts.ProductRepo,
		Logger:      opts.Logger.WithComponent("HTTP"),
		Config:      opts.Config,
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/healthz", s.handleHealthz)

	api := engine.Group("/api")
	{
		posts := api.Group("/posts")
		posts.POST("/generate", s.handleCreateDraft)
		posts.POST("/:id/publish", s.handlePublish)
		posts.GET("", s.handleListPosts)
		posts.DELETE("/:id", s.handleDeletePost)
		posts.GET("/variations/:product_id", s.handleVariations)

		analyticsGroup := api.Group("/analytics")
		analyticsGroup.GET("/dashboard", s.handleDashboard)
		analyticsGroup.GET("/post/:id", s.handlePostDetail)
		analyticsGroup.POST("/post/:id/collect", s.handleCollect)

		api.GET("/products", s.handleListProducts)
		api.POST("/products/sync", s.handleSyncProducts)
	}

	s.engine = engine
	return s
}

// Start begins serving in the background; ListenAndServe errors other
// than a clean shutdown are logged, not fatal to the process.
func (s *Server) Start() {
	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.Config.App.Port),
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.Logger.Info("Starting HTTP server", "port", s.Config.App.Port)

	go func() {
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.Logger.Error("HTTP server failed", "error", err)
		}
	}()
}

func (s *Server) Stop(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

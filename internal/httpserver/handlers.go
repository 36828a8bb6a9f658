package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dealerhub/social-publisher/internal/domain"
	"github.com/dealerhub/social-publisher/internal/lifecycle"
	"github.com/dealerhub/social-publisher/pkg/apperrors"
)

// ownerID extracts the authenticated principal. Authentication itself
// is handled upstream (gateway / middleware, out of scope here); the
// header carries the resolved identity.
func ownerID(c *gin.Context) string {
	return c.GetHeader("X-Owner-ID")
}

type createDraftRequest struct {
	ProductID   string `json:"product_id" binding:"required"`
	Platform    string `json:"platform"`
	CustomText  string `json:"custom_content"`
	GenerateAI  *bool  `json:"generate_ai"`
	ContentTone string `json:"style"`
}

func (s *Server) handleCreateDraft(c *gin.Context) {
	var req createDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"kind": apperrors.KindValidation, "message": err.Error()})
		return
	}

	platform := domain.Platform(req.Platform)
	if req.Platform == "" {
		platform = domain.PlatformTwitter
	}

	useGenerated := true
	if req.GenerateAI != nil {
		useGenerated = *req.GenerateAI
	}

	created, err := s.Lifecycle.CreateDraft(c.Request.Context(), ownerID(c), req.ProductID, platform, lifecycle.DraftOptions{
		UseGenerated: useGenerated,
		CustomText:   req.CustomText,
		Style:        domain.ContentStyle(req.ContentTone),
	})
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, postResponse(created))
}

func (s *Server) handlePublish(c *gin.Context) {
	published, err := s.Lifecycle.Publish(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, postResponse(published))
}

func (s *Server) handleListPosts(c *gin.Context) {
	skip := intQuery(c, "skip", 0)
	limit := intQuery(c, "limit", 10)

	var (
		posts []*domain.Post
		err   error
	)
	if c.Query("status") == "published" {
		posts, err = s.Lifecycle.ListPublished(c.Request.Context(), ownerID(c), skip, limit)
	} else {
		posts, err = s.Lifecycle.ListDrafts(c.Request.Context(), ownerID(c), skip, limit)
	}
	if err != nil {
		s.renderError(c, err)
		return
	}

	out := make([]gin.H, 0, len(posts))
	for _, p := range posts {
		out = append(out, postResponse(p))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleDeletePost(c *gin.Context) {
	if err := s.Lifecycle.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}

func (s *Server) handleVariations(c *gin.Context) {
	platform := domain.Platform(c.DefaultQuery("platform", string(domain.PlatformTwitter)))
	count := intQuery(c, "count", 3)

	variations, err := s.Lifecycle.GenerateVariations(c.Request.Context(), c.Param("product_id"), platform, count)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product_id": c.Param("product_id"),
		"platform":   platform,
		"variations": variations,
	})
}

func (s *Server) handleDashboard(c *gin.Context) {
	window := intQuery(c, "window_days", 30)

	summary, err := s.Analytics.DashboardSummary(c.Request.Context(), ownerID(c), window)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (s *Server) handlePostDetail(c *gin.Context) {
	detail, err := s.Analytics.PostDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.renderError(c, err)
		return
	}

	if !detail.Published {
		c.JSON(http.StatusOK, gin.H{
			"post_id": detail.Post.ID,
			"status":  "not_published",
			"message": "post has not been published yet",
		})
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (s *Server) handleCollect(c *gin.Context) {
	snap, err := s.Analytics.CollectSnapshot(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, snap)
}

func (s *Server) handleListProducts(c *gin.Context) {
	skip := intQuery(c, "skip", 0)
	limit := intQuery(c, "limit", 10)

	products, err := s.ProductRepo.ListByOwner(c.Request.Context(), ownerID(c), skip, limit)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

type syncProductRequest struct {
	ID          string   `json:"id" binding:"required"`
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	ImageURLs   []string `json:"image_urls"`
	Category    string   `json:"category"`
	Brand       string   `json:"brand"`
}

type syncProductsRequest struct {
	Products []syncProductRequest `json:"products" binding:"required,min=1,dive"`
}

// handleSyncProducts ingests a batch of catalog products into the
// store. The payload carries already-retrieved Amazon data; live SP-API
// retrieval happens upstream of this service.
func (s *Server) handleSyncProducts(c *gin.Context) {
	var req syncProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"kind": apperrors.KindValidation, "message": err.Error()})
		return
	}

	owner := ownerID(c)
	for _, item := range req.Products {
		p := domain.Product{
			ID:          item.ID,
			OwnerID:     owner,
			Title:       item.Title,
			Description: item.Description,
			Price:       item.Price,
			Currency:    item.Currency,
			ImageURLs:   item.ImageURLs,
			Category:    item.Category,
			Brand:       item.Brand,
		}
		if err := s.ProductRepo.Upsert(c.Request.Context(), p); err != nil {
			s.renderError(c, apperrors.Wrap(err, apperrors.KindUnavailable, "product store unreachable"))
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"synced": len(req.Products)})
}

func postResponse(p *domain.Post) gin.H {
	out := gin.H{
		"id":           p.ID,
		"product_id":   p.ProductID,
		"platform":     p.Platform,
		"content":      p.Content,
		"ai_generated": p.AIGenerated,
		"posted":       p.Posted,
		"created_at":   p.CreatedAt,
	}
	if p.Posted {
		out["platform_post_id"] = p.PlatformPostID
		out["posted_at"] = p.PostedAt
	}
	return out
}

func intQuery(c *gin.Context, name string, fallback int) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}
	return value
}

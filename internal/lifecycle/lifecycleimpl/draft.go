package lifecycleimpl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dealerhub/social-publisher/internal/domain"
	"github.com/dealerhub/social-publisher/internal/lifecycle"
	"github.com/dealerhub/social-publisher/pkg/apperrors"
	"github.com/dealerhub/social-publisher/pkg/formatter"
)

// CreateDraft builds and persists a draft post. The whole operation is
// all-or-nothing: nothing is written until content is final, so a
// cancelled generation leaves no record behind.
func (m *ManagerImpl) CreateDraft(ctx context.Context, ownerID, productID string, platform domain.Platform, opts lifecycle.DraftOptions) (*domain.Post, error) {
	if err := validateOwnerID(ownerID); err != nil {
		return nil, err
	}
	if err := validateProductID(productID); err != nil {
		return nil, err
	}
	if !platform.Valid() {
		return nil, apperrors.Newf(apperrors.KindValidation, "unknown platform %q", platform)
	}

	product, err := m.resolveProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	var content string
	aiGenerated := opts.UseGenerated

	if opts.UseGenerated {
		content = m.generateContent(ctx, product, platform, opts.Style)
	} else {
		content = strings.TrimSpace(opts.CustomText)
		if content == "" {
			return nil, apperrors.New(apperrors.KindValidation, "custom text is required when generation is disabled")
		}
		if len([]rune(content)) > m.charLimit(platform) {
			return nil, apperrors.Newf(apperrors.KindValidation,
				"custom text exceeds the %d character limit for %s", m.charLimit(platform), platform)
		}
	}

	if ctx.Err() != nil {
		return nil, apperrors.Wrap(ctx.Err(), apperrors.KindUnavailable, "draft creation aborted")
	}

	draft := domain.Post{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		ProductID:   productID,
		Platform:    platform,
		Content:     content,
		AIGenerated: aiGenerated,
		Posted:      false,
		CreatedAt:   time.Now().UTC(),
	}

	if err := m.PostRepo.Create(ctx, draft); err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindUnavailable, "failed to persist draft")
	}

	m.Logger.Info("Draft created",
		"post_id", draft.ID, "platform", platform, "ai_generated", aiGenerated,
		"content_length", len([]rune(content)))
	return &draft, nil
}

// generateContent calls the generator and falls back to templated
// content on any failure. The draft request never fails because of the
// AI step; the fallback always mentions title, price and currency.
func (m *ManagerImpl) generateContent(ctx context.Context, product *domain.Product, platform domain.Platform, style domain.ContentStyle) string {
	callCtx, cancel := context.WithTimeout(ctx, m.Config.Lifecycle.GenerateTimeout)
	defer cancel()

	content, err := m.Generator.Generate(callCtx, product, platform, style)
	if err != nil {
		m.Logger.Warn("Content generation failed, using fallback template",
			"product_id", product.ID, "platform", platform, "error", err)
		content = fallbackContent(product)
	}

	return formatter.Truncate(content, m.charLimit(platform))
}

func fallbackContent(product *domain.Product) string {
	title := product.Title
	if title == "" {
		title = "Great find"
	}
	return fmt.Sprintf("🛍️ %s - now %s on Amazon! #Amazon #Deal",
		title, formatter.FormatPrice(product.Price, product.Currency))
}

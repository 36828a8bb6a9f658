package lifecycleimpl

import (
	"context"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/dealerhub/social-publisher/internal/domain"
	"github.com/dealerhub/social-publisher/pkg/apperrors"
	"github.com/dealerhub/social-publisher/pkg/formatter"
)

var variationStyles = []domain.ContentStyle{
	domain.StyleEngaging,
	domain.StyleInformative,
	domain.StylePromotional,
}

// maxVariationCount caps the batch: count comes straight from the
// request and sizes the result slice and the generation fan-out.
const maxVariationCount = 10

// GenerateVariations produces up to count content strings, each
// generated independently on a bounded worker pool. Best-effort batch:
// a failed variation is dropped, the call itself only fails when the
// product cannot be resolved.
func (m *ManagerImpl) GenerateVariations(ctx context.Context, productID string, platform domain.Platform, count int) ([]string, error) {
	if err := validateProductID(productID); err != nil {
		return nil, err
	}
	if !platform.Valid() {
		return nil, apperrors.Newf(apperrors.KindValidation, "unknown platform %q", platform)
	}
	if count <= 0 {
		return nil, apperrors.New(apperrors.KindValidation, "count must be positive")
	}
	if count > maxVariationCount {
		count = maxVariationCount
	}

	product, err := m.resolveProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	workers := m.Config.Lifecycle.VariationWorkers
	if workers <= 0 {
		workers = 1
	}

	pool, err := ants.NewPool(workers, ants.WithPreAlloc(true))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindUnavailable, "worker pool unavailable")
	}
	defer pool.Release()

	results := make([]string, count)
	var wg sync.WaitGroup

	for i := 0; i < count; i++ {
		wg.Add(1)
		index := i

		submitErr := pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}

			style := variationStyles[index%len(variationStyles)]

			callCtx, cancel := context.WithTimeout(ctx, m.Config.Lifecycle.GenerateTimeout)
			defer cancel()

			content, err := m.Generator.Generate(callCtx, product, platform, style)
			if err != nil {
				m.Logger.Warn("Variation generation failed, dropping it",
					"product_id", productID, "index", index, "style", style, "error", err)
				return
			}
			results[index] = formatter.Truncate(content, m.charLimit(platform))
		})
		if submitErr != nil {
			wg.Done()
			m.Logger.Error("Failed to submit variation job", "index", index, "error", submitErr)
		}
	}

	wg.Wait()

	variations := make([]string, 0, count)
	for _, content := range results {
		if content != "" {
			variations = append(variations, content)
		}
	}

	m.Logger.Info("Variations generated",
		"product_id", productID, "requested", count, "succeeded", len(variations))
	return variations, nil
}

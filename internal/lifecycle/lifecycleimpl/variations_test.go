package lifecycleimpl

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealerhub/social-publisher/internal/domain"
	"github.com/dealerhub/social-publisher/pkg/apperrors"
)

func TestGenerateVariationsPartialSuccess(t *testing.T) {
	var calls atomic.Int32
	flaky := &fakeGenerator{fn: func(p *domain.Product, _ domain.Platform, style domain.ContentStyle) (string, error) {
		n := calls.Add(1)
		if n == 3 {
			return "", errors.New("model timeout")
		}
		return string(style) + " take on " + p.Title, nil
	}}
	m := newTestManager(managerDeps{generator: flaky})

	variations, err := m.GenerateVariations(context.Background(), "B0CHX1W1XY", domain.PlatformTwitter, 5)

	require.NoError(t, err, "one failed variation must not fail the batch")
	assert.Len(t, variations, 4)
	for _, v := range variations {
		assert.NotEmpty(t, v)
	}
}

func TestGenerateVariationsRespectBudget(t *testing.T) {
	verbose := &fakeGenerator{fn: func(p *domain.Product, _ domain.Platform, _ domain.ContentStyle) (string, error) {
		out := ""
		for i := 0; i < 50; i++ {
			out += p.Title + " "
		}
		return out, nil
	}}
	m := newTestManager(managerDeps{generator: verbose})
	m.SetCharLimits(map[domain.Platform]int{domain.PlatformTwitter: 240})

	variations, err := m.GenerateVariations(context.Background(), "B0CHX1W1XY", domain.PlatformTwitter, 3)

	require.NoError(t, err)
	require.Len(t, variations, 3)
	for _, v := range variations {
		assert.LessOrEqual(t, len([]rune(v)), 240)
	}
}

func TestGenerateVariationsClampsCount(t *testing.T) {
	var calls atomic.Int32
	counting := &fakeGenerator{fn: func(p *domain.Product, _ domain.Platform, style domain.ContentStyle) (string, error) {
		calls.Add(1)
		return string(style) + " take on " + p.Title, nil
	}}
	m := newTestManager(managerDeps{generator: counting})

	variations, err := m.GenerateVariations(context.Background(), "B0CHX1W1XY", domain.PlatformTwitter, 100000)

	require.NoError(t, err)
	assert.Len(t, variations, maxVariationCount)
	assert.Equal(t, int32(maxVariationCount), calls.Load(), "an oversized count must not fan out")
}

func TestGenerateVariationsUnknownProduct(t *testing.T) {
	m := newTestManager(managerDeps{})

	_, err := m.GenerateVariations(context.Background(), "B000000000", domain.PlatformTwitter, 3)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGenerateVariationsValidation(t *testing.T) {
	m := newTestManager(managerDeps{})

	_, err := m.GenerateVariations(context.Background(), "B0CHX1W1XY", domain.PlatformTwitter, 0)
	assert.True(t, apperrors.IsValidation(err))

	_, err = m.GenerateVariations(context.Background(), "  ", domain.PlatformTwitter, 3)
	assert.True(t, apperrors.IsValidation(err))
}

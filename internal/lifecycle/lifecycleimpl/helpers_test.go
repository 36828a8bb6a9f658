package lifecycleimpl

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dealerhub/social-publisher/internal/catalog"
	"github.com/dealerhub/social-publisher/internal/domain"
	"github.com/dealerhub/social-publisher/internal/repositories/post"
	"github.com/dealerhub/social-publisher/pkg/config"
	"github.com/dealerhub/social-publisher/pkg/logger"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Lifecycle.CatalogTimeout = time.Second
	cfg.Lifecycle.GenerateTimeout = time.Second
	cfg.Lifecycle.PublishTimeout = time.Second
	cfg.Lifecycle.CollectTimeout = time.Second
	cfg.Lifecycle.VariationWorkers = 3
	return cfg
}

func testProduct() *domain.Product {
	return &domain.Product{
		ID:       "B0CHX1W1XY",
		OwnerID:  "seller-1",
		Title:    "iPhone 15 Pro",
		Price:    52999,
		Currency: "TRY",
		Category: "Electronics",
		Brand:    "Apple",
	}
}

type fakeCatalog struct {
	products map[string]*domain.Product
	err      error
}

func (f *fakeCatalog) ResolveProduct(_ context.Context, id string) (*domain.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.products[id]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	return p, nil
}

type fakeGenerator struct {
	fn func(product *domain.Product, platform domain.Platform, style domain.ContentStyle) (string, error)
}

func (f *fakeGenerator) Generate(_ context.Context, product *domain.Product, platform domain.Platform, style domain.ContentStyle) (string, error) {
	return f.fn(product, platform, style)
}

type fakePublisher struct {
	fn func(platform domain.Platform, text string) (string, error)
}

func (f *fakePublisher) Submit(_ context.Context, platform domain.Platform, text string, _ []string) (string, error) {
	return f.fn(platform, text)
}

// memPostRepo is an in-memory post.Repository with the same
// compare-and-set behavior as the pgx implementation.
type memPostRepo struct {
	mu    sync.Mutex
	posts map[string]domain.Post
}

var _ post.Repository = (*memPostRepo)(nil)

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{posts: make(map[string]domain.Post)}
}

func (r *memPostRepo) Create(_ context.Context, p domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.posts[p.ID]; exists {
		return post.ErrAlreadyExists
	}
	r.posts[p.ID] = p
	return nil
}

func (r *memPostRepo) GetByID(_ context.Context, id string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, post.ErrNotFound
	}
	copied := p
	return &copied, nil
}

func (r *memPostRepo) ListByOwner(_ context.Context, ownerID string, posted bool, skip, limit int) ([]*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.Post
	for _, p := range r.posts {
		if p.OwnerID == ownerID && p.Posted == posted {
			copied := p
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	if skip >= len(out) {
		return nil, nil
	}
	out = out[skip:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memPostRepo) ListPublishedByOwner(ctx context.Context, ownerID string) ([]*domain.Post, error) {
	return r.ListByOwner(ctx, ownerID, true, 0, len(r.posts)+1)
}

func (r *memPostRepo) ListPublished(_ context.Context) ([]*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Post
	for _, p := range r.posts {
		if p.Posted {
			copied := p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memPostRepo) MarkPublished(_ context.Context, id, platformPostID string, postedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[id]
	if !ok {
		return post.ErrNotFound
	}
	if p.Posted {
		return post.ErrAlreadyPublished
	}
	p.Posted = true
	p.PlatformPostID = platformPostID
	p.PostedAt = postedAt
	r.posts[id] = p
	return nil
}

func (r *memPostRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return post.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *memPostRepo) CountByOwner(_ context.Context, ownerID string) (int64, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total, published int64
	for _, p := range r.posts {
		if p.OwnerID != ownerID {
			continue
		}
		total++
		if p.Posted {
			published++
		}
	}
	return total, published, nil
}

func (r *memPostRepo) PlatformCounts(_ context.Context, ownerID string) (map[domain.Platform]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[domain.Platform]int64)
	for _, p := range r.posts {
		if p.OwnerID == ownerID {
			counts[p.Platform]++
		}
	}
	return counts, nil
}

func (r *memPostRepo) CreatedPerDay(_ context.Context, ownerID string, since time.Time) (map[time.Time]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	buckets := make(map[time.Time]int64)
	for _, p := range r.posts {
		if p.OwnerID == ownerID && !p.CreatedAt.Before(since) {
			buckets[p.CreatedAt.UTC().Truncate(24*time.Hour)]++
		}
	}
	return buckets, nil
}

type managerDeps struct {
	catalog   *fakeCatalog
	generator *fakeGenerator
	publisher *fakePublisher
	repo      *memPostRepo
}

func newTestManager(deps managerDeps) *ManagerImpl {
	if deps.catalog == nil {
		deps.catalog = &fakeCatalog{products: map[string]*domain.Product{testProduct().ID: testProduct()}}
	}
	if deps.generator == nil {
		deps.generator = &fakeGenerator{fn: func(p *domain.Product, _ domain.Platform, _ domain.ContentStyle) (string, error) {
			return "Check out the " + p.Title + " on Amazon! #Amazon", nil
		}}
	}
	if deps.publisher == nil {
		deps.publisher = &fakePublisher{fn: func(domain.Platform, string) (string, error) {
			return "tw-123", nil
		}}
	}
	if deps.repo == nil {
		deps.repo = newMemPostRepo()
	}

	return New(Opts{
		Catalog:   deps.catalog,
		Generator: deps.generator,
		Publisher: deps.publisher,
		PostRepo:  deps.repo,
		Logger:    logger.New(logger.Opts{}),
		Config:    testConfig(),
	})
}

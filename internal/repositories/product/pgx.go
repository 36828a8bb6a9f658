package product

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dealerhub/social-publisher/internal/domain"
	"github.com/dealerhub/social-publisher/internal/repositories"
	"github.com/dealerhub/social-publisher/pkg/logger"

	sq "github.com/Masterminds/squirrel"
)

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("ProductRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

// Upsert inserts or refreshes a product record
func (p *Pgx) Upsert(ctx context.Context, product domain.Product) error {
	query, args, err := repositories.SqBuilder.
		Insert("products").
		Columns("id", "owner_id", "title", "description", "price", "currency", "image_urls", "category", "brand", "updated_at").
		Values(product.ID, product.OwnerID, product.Title, product.Description, product.Price,
			product.Currency, product.ImageURLs, product.Category, product.Brand, time.Now()).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			currency = EXCLUDED.currency,
			image_urls = EXCLUDED.image_urls,
			category = EXCLUDED.category,
			brand = EXCLUDED.brand,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	_, err = p.pg.Exec(ctx, query, args...)
	return err
}

// GetByID returns a product by its catalog id
func (p *Pgx) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query, args, err := repositories.SqBuilder.
		Select("id", "owner_id", "title", "description", "price", "currency", "image_urls", "category", "brand", "updated_at").
		From("products").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	row := p.pg.QueryRow(ctx, query, args...)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

// ListByOwner returns the owner's products, most recently updated first
func (p *Pgx) ListByOwner(ctx context.Context, ownerID string, skip, limit int) ([]*domain.Product, error) {
	query, args, err := repositories.SqBuilder.
		Select("id", "owner_id", "title", "description", "price", "currency", "image_urls", "category", "brand", "updated_at").
		From("products").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("updated_at DESC").
		Offset(uint64(skip)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var product domain.Product
	if err := row.Scan(&product.ID, &product.OwnerID, &product.Title, &product.Description,
		&product.Price, &product.Currency, &product.ImageURLs, &product.Category,
		&product.Brand, &product.UpdatedAt); err != nil {
		return nil, err
	}
	return &product, nil
}

package post

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dealerhub/social-publisher/internal/domain"
	"github.com/dealerhub/social-publisher/internal/repositories"
	"github.com/dealerhub/social-publisher/pkg/logger"

	sq "github.com/Masterminds/squirrel"
)

const postColumns = "id, owner_id, product_id, platform, content, ai_generated, posted, platform_post_id, created_at, posted_at"

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("PostRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

// Create persists a new post record
func (p *Pgx) Create(ctx context.Context, post domain.Post) error {
	query, args, err := repositories.SqBuilder.
		Insert("posts").
		Columns("id", "owner_id", "product_id", "platform", "content", "ai_generated", "posted", "created_at").
		Values(post.ID, post.OwnerID, post.ProductID, string(post.Platform), post.Content, post.AIGenerated, post.Posted, post.CreatedAt).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	_, err = p.pg.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetByID returns a single post
func (p *Pgx) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	query, args, err := repositories.SqBuilder.
		Select(postColumns).
		From("posts").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	row := p.pg.QueryRow(ctx, query, args...)
	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return post, nil
}

// ListByOwner returns the owner's posts filtered by published state, newest-first
func (p *Pgx) ListByOwner(ctx context.Context, ownerID string, posted bool, skip, limit int) ([]*domain.Post, error) {
	query, args, err := repositories.SqBuilder.
		Select(postColumns).
		From("posts").
		Where(sq.Eq{"owner_id": ownerID, "posted": posted}).
		OrderBy("created_at DESC").
		Offset(uint64(skip)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	return p.queryPosts(ctx, query, args)
}

// ListPublishedByOwner returns every published post of the owner, newest-first
func (p *Pgx) ListPublishedByOwner(ctx context.Context, ownerID string) ([]*domain.Post, error) {
	query, args, err := repositories.SqBuilder.
		Select(postColumns).
		From("posts").
		Where(sq.Eq{"owner_id": ownerID, "posted": true}).
		OrderBy("posted_at DESC").
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	return p.queryPosts(ctx, query, args)
}

// ListPublished returns every published post across owners
func (p *Pgx) ListPublished(ctx context.Context) ([]*domain.Post, error) {
	query, args, err := repositories.SqBuilder.
		Select(postColumns).
		From("posts").
		Where(sq.Eq{"posted": true}).
		OrderBy("posted_at DESC").
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	return p.queryPosts(ctx, query, args)
}

// MarkPublished transitions a draft to published. The WHERE posted = false
// clause is the compare-and-set: of two racing calls only one can match.
func (p *Pgx) MarkPublished(ctx context.Context, id, platformPostID string, postedAt time.Time) error {
	query, args, err := repositories.SqBuilder.
		Update("posts").
		Set("posted", true).
		Set("platform_post_id", platformPostID).
		Set("posted_at", postedAt).
		Where(sq.Eq{"id": id, "posted": false}).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	result, err := p.pg.Exec(ctx, query, args...)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		// Distinguish a missing post from a lost race
		if _, err := p.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrAlreadyPublished
	}

	return nil
}

// Delete removes a post
func (p *Pgx) Delete(ctx context.Context, id string) error {
	query, args, err := repositories.SqBuilder.
		Delete("posts").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	result, err := p.pg.Exec(ctx, query, args...)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// CountByOwner returns total and published post counts
func (p *Pgx) CountByOwner(ctx context.Context, ownerID string) (int64, int64, error) {
	query, args, err := repositories.SqBuilder.
		Select("COUNT(*)", "COUNT(*) FILTER (WHERE posted)").
		From("posts").
		Where(sq.Eq{"owner_id": ownerID}).
		ToSql()
	if err != nil {
		return 0, 0, repositories.ErrBadQuery
	}

	var total, published int64
	if err := p.pg.QueryRow(ctx, query, args...).Scan(&total, &published); err != nil {
		return 0, 0, err
	}
	return total, published, nil
}

// PlatformCounts returns the per-platform post count distribution
func (p *Pgx) PlatformCounts(ctx context.Context, ownerID string) (map[domain.Platform]int64, error) {
	query, args, err := repositories.SqBuilder.
		Select("platform", "COUNT(*)").
		From("posts").
		Where(sq.Eq{"owner_id": ownerID}).
		GroupBy("platform").
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.Platform]int64)
	for rows.Next() {
		var platform string
		var count int64
		if err := rows.Scan(&platform, &count); err != nil {
			return nil, err
		}
		counts[domain.Platform(platform)] = count
	}

	return counts, rows.Err()
}

// createdPerDayQuery buckets in UTC regardless of the session
// TimeZone, matching the aggregator's UTC day keys.
func createdPerDayQuery(ownerID string, since time.Time) (string, []interface{}, error) {
	return repositories.SqBuilder.
		Select("date_trunc('day', created_at AT TIME ZONE 'UTC') AS day", "COUNT(*)").
		From("posts").
		Where(sq.Eq{"owner_id": ownerID}).
		Where(sq.GtOrEq{"created_at": since}).
		GroupBy("day").
		OrderBy("day").
		ToSql()
}

// CreatedPerDay returns daily post-creation counts since the cutoff
func (p *Pgx) CreatedPerDay(ctx context.Context, ownerID string, since time.Time) (map[time.Time]int64, error) {
	query, args, err := createdPerDayQuery(ownerID, since)
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	buckets := make(map[time.Time]int64)
	for rows.Next() {
		var day time.Time
		var count int64
		if err := rows.Scan(&day, &count); err != nil {
			return nil, err
		}
		buckets[day.UTC()] = count
	}

	return buckets, rows.Err()
}

func (p *Pgx) queryPosts(ctx context.Context, query string, args []interface{}) ([]*domain.Post, error) {
	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*domain.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	var post domain.Post
	var platform string
	var platformPostID *string
	var postedAt *time.Time

	if err := row.Scan(&post.ID, &post.OwnerID, &post.ProductID, &platform, &post.Content,
		&post.AIGenerated, &post.Posted, &platformPostID, &post.CreatedAt, &postedAt); err != nil {
		return nil, err
	}

	post.Platform = domain.Platform(platform)
	if platformPostID != nil {
		post.PlatformPostID = *platformPostID
	}
	if postedAt != nil {
		post.PostedAt = *postedAt
	}
	return &post, nil
}

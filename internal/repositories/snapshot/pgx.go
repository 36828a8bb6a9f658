package snapshot

import (
	"context"
	"encoding/json"
	"errors"

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
		logger: logger.WithComponent("SnapshotRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

// Create appends a snapshot
func (p *Pgx) Create(ctx context.Context, snap domain.MetricsSnapshot) error {
	if err := ValidateMetrics(snap.Metrics); err != nil {
		return err
	}

	payload, err := json.Marshal(snap.Metrics)
	if err != nil {
		return ErrInvalidMetrics
	}

	query, args, err := repositories.SqBuilder.
		Insert("metrics_snapshots").
		Columns("id", "post_id", "platform", "metrics", "collected_at").
		Values(snap.ID, snap.PostID, string(snap.Platform), payload, snap.CollectedAt).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	_, err = p.pg.Exec(ctx, query, args...)
	return err
}

// ListByPost returns all snapshots for a post, most recent first
func (p *Pgx) ListByPost(ctx context.Context, postID string) ([]*domain.MetricsSnapshot, error) {
	query, args, err := repositories.SqBuilder.
		Select("id", "post_id", "platform", "metrics", "collected_at").
		From("metrics_snapshots").
		Where(sq.Eq{"post_id": postID}).
		OrderBy("collected_at DESC").
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []*domain.MetricsSnapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return snaps, nil
}

// LatestByPost returns the most recent snapshot for a post
func (p *Pgx) LatestByPost(ctx context.Context, postID string) (*domain.MetricsSnapshot, error) {
	query, args, err := repositories.SqBuilder.
		Select("id", "post_id", "platform", "metrics", "collected_at").
		From("metrics_snapshots").
		Where(sq.Eq{"post_id": postID}).
		OrderBy("collected_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	row := p.pg.QueryRow(ctx, query, args...)
	snap, err := scanSnapshot(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return snap, nil
}

func scanSnapshot(row pgx.Row) (*domain.MetricsSnapshot, error) {
	var snap domain.MetricsSnapshot
	var platform string
	var payload []byte

	if err := row.Scan(&snap.ID, &snap.PostID, &platform, &payload, &snap.CollectedAt); err != nil {
		return nil, err
	}

	snap.Platform = domain.Platform(platform)
	if err := json.Unmarshal(payload, &snap.Metrics); err != nil {
		return nil, err
	}
	return &snap, nil
}

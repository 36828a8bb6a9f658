package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upInit, downInit)
}

func upInit(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.Exec(`
	CREATE TABLE products (
		id VARCHAR PRIMARY KEY,
		owner_id VARCHAR NOT NULL,
		title VARCHAR NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price NUMERIC(12,2) NOT NULL DEFAULT 0,
		currency VARCHAR(3) NOT NULL DEFAULT 'TRY',
		image_urls TEXT[] NOT NULL DEFAULT '{}',
		category VARCHAR NOT NULL DEFAULT '',
		brand VARCHAR NOT NULL DEFAULT '',
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
	);
	CREATE INDEX idx_products_owner ON products (owner_id, updated_at DESC);

	CREATE TABLE posts (
		id UUID PRIMARY KEY,
		owner_id VARCHAR NOT NULL,
		product_id VARCHAR NOT NULL,
		platform VARCHAR NOT NULL,
		content TEXT NOT NULL,
		ai_generated BOOLEAN NOT NULL DEFAULT false,
		posted BOOLEAN NOT NULL DEFAULT false,
		platform_post_id VARCHAR,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
		posted_at TIMESTAMP WITH TIME ZONE
	);
	CREATE INDEX idx_posts_owner_created ON posts (owner_id, created_at DESC);
	CREATE INDEX idx_posts_posted ON posts (posted);

	CREATE TABLE metrics_snapshots (
		id UUID PRIMARY KEY,
		post_id UUID NOT NULL,
		platform VARCHAR NOT NULL,
		metrics JSONB NOT NULL,
		collected_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
	);
	CREATE INDEX idx_snapshots_post_collected ON metrics_snapshots (post_id, collected_at DESC);
	`)
	if err != nil {
		return err
	}
	return nil
}

func downInit(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.Exec(`
	DROP TABLE metrics_snapshots;
	DROP TABLE posts;
	DROP TABLE products;
	`)
	if err != nil {
		return err
	}
	return nil
}

// Package database provides the persistent article store backed by PostgreSQL.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/wikiroam/randomarticle/internal/models"
)

const uniqueViolation = "23505"

// ArticleRepository provides database operations for article records.
// Records are keyed by (site, title); the repository never deletes them,
// eviction belongs to an external retention job.
type ArticleRepository struct {
	db *sqlx.DB
}

// NewArticleRepository creates a new repository instance
func NewArticleRepository(db *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// Get retrieves the record for a key. Returns models.ErrNotFound when the
// article has never been persisted.
func (r *ArticleRepository) Get(ctx context.Context, key models.ArticleKey) (*models.ArticleRecord, error) {
	record := &models.ArticleRecord{}
	query := `
		SELECT id, site, title, full_content, last_accessed, created_at
		FROM articles
		WHERE site = $1 AND title = $2
	`

	err := r.db.GetContext(ctx, record, query, key.Site.Host(), key.Title)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get article: %w", err)
	}

	return record, nil
}

// Put persists a freshly fetched record. A concurrent resolve may have
// inserted the same key first; the unique violation then falls back to
// refreshing content and access time on the existing row.
func (r *ArticleRepository) Put(ctx context.Context, key models.ArticleKey, fullContent []byte) (*models.ArticleRecord, error) {
	record := &models.ArticleRecord{
		ID:           uuid.New().String(),
		Site:         key.Site.Host(),
		Title:        key.Title,
		FullContent:  fullContent,
		LastAccessed: time.Now(),
		CreatedAt:    time.Now(),
	}

	query := `
		INSERT INTO articles (id, site, title, full_content, last_accessed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, site, title, full_content, last_accessed, created_at
	`

	err := r.db.QueryRowxContext(
		ctx, query,
		record.ID, record.Site, record.Title, record.FullContent, record.LastAccessed, record.CreatedAt,
	).StructScan(record)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return r.refresh(ctx, key, fullContent)
		}
		return nil, fmt.Errorf("failed to create article: %w", err)
	}

	return record, nil
}

// Touch bumps the access timestamp of an existing record.
func (r *ArticleRepository) Touch(ctx context.Context, key models.ArticleKey) error {
	query := `UPDATE articles SET last_accessed = $1 WHERE site = $2 AND title = $3`

	result, err := r.db.ExecContext(ctx, query, time.Now(), key.Site.Host(), key.Title)
	if err != nil {
		return fmt.Errorf("failed to touch article: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrNotFound
	}

	return nil
}

// Ping verifies database connectivity for health checks.
func (r *ArticleRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *ArticleRepository) refresh(ctx context.Context, key models.ArticleKey, fullContent []byte) (*models.ArticleRecord, error) {
	query := `
		UPDATE articles
		SET full_content = $1, last_accessed = $2
		WHERE site = $3 AND title = $4
		RETURNING id, site, title, full_content, last_accessed, created_at
	`

	record := &models.ArticleRecord{}
	err := r.db.QueryRowxContext(ctx, query, fullContent, time.Now(), key.Site.Host(), key.Title).StructScan(record)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to refresh article: %w", err)
	}

	return record, nil
}

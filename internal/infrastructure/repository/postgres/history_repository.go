// Package postgres reads historical search-performance aggregates. The tables
// are written by the analytics consumer, never by this service; everything
// here is read-only.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/hukukasistan/mevzuat-search/internal/core/domain"
)

type HistoryRepository struct {
	db *sql.DB
}

func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

// DomainHistory returns past classification performance for one legal domain.
// An unknown domain yields (nil, nil); the pipeline treats that as neutral.
func (r *HistoryRepository) DomainHistory(ctx context.Context, domainName string) (*domain.DomainHistory, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT average_accuracy, similar_query_count, feedback_score
FROM domain_search_history
WHERE legal_domain = $1
`, domainName)

	var history domain.DomainHistory
	err := row.Scan(&history.AverageAccuracy, &history.SimilarQueryCount, &history.FeedbackScore)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan domain history: %w", err)
	}
	return &history, nil
}

// DocumentHistory returns normalized per-document performance metrics.
// Unknown documents yield (nil, nil).
func (r *HistoryRepository) DocumentHistory(ctx context.Context, documentID string) (*domain.DocumentHistory, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT feedback_score, click_through_rate, success_rate
FROM document_performance
WHERE document_id = $1
`, documentID)

	var history domain.DocumentHistory
	err := row.Scan(&history.FeedbackScore, &history.ClickThroughRate, &history.SuccessRate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan document history: %w", err)
	}
	return &history, nil
}

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"cagnotte-backend/internal/domain"
)

type AnalyticsRepository interface {
	Create(ctx context.Context, event *domain.AnalyticsEvent) error
	ListRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.AnalyticsEvent, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type analyticsRepository struct {
	db *sqlx.DB
}

func NewAnalyticsRepository(db *sqlx.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) Create(ctx context.Context, event *domain.AnalyticsEvent) error {
	query := `
		INSERT INTO analytics_events (id, user_id, event_type, event_data)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		event.ID, event.UserID, event.EventType, event.EventData,
	).Scan(&event.CreatedAt)
}

func (r *analyticsRepository) ListRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.AnalyticsEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	var events []domain.AnalyticsEvent
	query := `
		SELECT * FROM analytics_events
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	err := r.db.SelectContext(ctx, &events, query, userID, limit)
	return events, err
}

func (r *analyticsRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM analytics_events WHERE user_id = $1`, userID)
	return count, err
}

func (r *analyticsRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM analytics_events WHERE created_at >= $1`, since)
	return count, err
}

func (r *analyticsRepository) DeleteAllByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM analytics_events WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"cagnotte-backend/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, notif *domain.AdminNotification) error
	List(ctx context.Context, filters domain.NotificationFilters, params domain.PaginationParams) ([]domain.AdminNotification, int64, error)
	CountUnread(ctx context.Context) (int64, error)
	CountBySeverity(ctx context.Context) (map[domain.NotificationSeverity]int64, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context) (int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time, onlyRead bool) (int64, error)
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notif *domain.AdminNotification) error {
	query := `
		INSERT INTO admin_notifications (id, type, title, message, severity, user_id, admin_id, goal_id, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		notif.ID, notif.Type, notif.Title, notif.Message, notif.Severity,
		notif.UserID, notif.AdminID, notif.GoalID, notif.Metadata,
	).Scan(&notif.CreatedAt)
}

func (r *notificationRepository) List(ctx context.Context, filters domain.NotificationFilters, params domain.PaginationParams) ([]domain.AdminNotification, int64, error) {
	params.Validate()

	var args []interface{}
	var conditions []string

	if filters.Type != nil {
		args = append(args, *filters.Type)
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)))
	}
	if filters.Severity != nil {
		args = append(args, *filters.Severity)
		conditions = append(conditions, fmt.Sprintf("severity = $%d", len(args)))
	}
	if filters.IsRead != nil {
		args = append(args, *filters.IsRead)
		conditions = append(conditions, fmt.Sprintf("is_read = $%d", len(args)))
	}
	if filters.StartDate != nil {
		args = append(args, *filters.StartDate)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filters.EndDate != nil {
		args = append(args, *filters.EndDate)
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM admin_notifications`+where, args...); err != nil {
		return nil, 0, err
	}

	args = append(args, params.PageSize, params.Offset())
	query := fmt.Sprintf(`
		SELECT * FROM admin_notifications%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	var notifications []domain.AdminNotification
	err := r.db.SelectContext(ctx, &notifications, query, args...)
	return notifications, total, err
}

func (r *notificationRepository) CountUnread(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM admin_notifications WHERE is_read = false`)
	return count, err
}

func (r *notificationRepository) CountBySeverity(ctx context.Context) (map[domain.NotificationSeverity]int64, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT severity, COUNT(*) FROM admin_notifications GROUP BY severity`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[domain.NotificationSeverity]int64{
		domain.SeverityInfo:     0,
		domain.SeveritySuccess:  0,
		domain.SeverityWarning:  0,
		domain.SeverityCritical: 0,
	}
	for rows.Next() {
		var severity domain.NotificationSeverity
		var count int64
		if err := rows.Scan(&severity, &count); err != nil {
			return nil, err
		}
		counts[severity] = count
	}
	return counts, rows.Err()
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE admin_notifications SET is_read = true, read_at = NOW() WHERE id = $1 AND is_read = false`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context) (int64, error) {
	query := `UPDATE admin_notifications SET is_read = true, read_at = NOW() WHERE is_read = false`
	result, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *notificationRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time, onlyRead bool) (int64, error) {
	query := `DELETE FROM admin_notifications WHERE created_at < $1`
	if onlyRead {
		query += ` AND is_read = true`
	}
	result, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

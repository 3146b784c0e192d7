package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"cagnotte-backend/internal/domain"
)

type GoalRepository interface {
	Create(ctx context.Context, goal *domain.Goal) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error)
	Update(ctx context.Context, goal *domain.Goal) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID, filters domain.GoalFilters, params domain.PaginationParams) ([]domain.Goal, int64, error)
	ListAllByUser(ctx context.Context, userID uuid.UUID, filters domain.GoalFilters) ([]domain.Goal, error)
	List(ctx context.Context, userID *uuid.UUID, filters domain.GoalFilters, params domain.PaginationParams) ([]domain.Goal, int64, error)
	CountByUser(ctx context.Context, userID uuid.UUID, filters domain.GoalFilters) (int64, error)
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status domain.GoalStatus) (int64, error)
	CountByCategory(ctx context.Context) (map[domain.GoalCategory]int64, error)
	CountByTimeframe(ctx context.Context) (map[domain.GoalTimeframe]int64, error)
	SumAmounts(ctx context.Context) (totalSaved, totalTarget float64, err error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	query := `
		INSERT INTO goals (
			id, user_id, name, description, category, timeframe, icon,
			current_amount, target_amount, currency_code, currency_symbol,
			progress_percentage, progress_updated_at, started_at, target_date,
			completed_at, status, contributions, milestones
		)
		VALUES (
			:id, :user_id, :name, :description, :category, :timeframe, :icon,
			:current_amount, :target_amount, :currency_code, :currency_symbol,
			:progress_percentage, :progress_updated_at, :started_at, :target_date,
			:completed_at, :status, :contributions, :milestones
		)
		RETURNING created_at, updated_at`

	rows, err := r.db.NamedQueryContext(ctx, query, goal)
	if err != nil {
		return err
	}
	defer rows.Close()

	if rows.Next() {
		return rows.Scan(&goal.CreatedAt, &goal.UpdatedAt)
	}
	return rows.Err()
}

func (r *goalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	var goal domain.Goal
	query := `SELECT * FROM goals WHERE id = $1`

	err := r.db.GetContext(ctx, &goal, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *goalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	query := `
		UPDATE goals
		SET name = :name, description = :description, category = :category,
			timeframe = :timeframe, icon = :icon,
			current_amount = :current_amount, target_amount = :target_amount,
			currency_code = :currency_code, currency_symbol = :currency_symbol,
			progress_percentage = :progress_percentage, progress_updated_at = :progress_updated_at,
			target_date = :target_date, completed_at = :completed_at, status = :status,
			contributions = :contributions, milestones = :milestones,
			updated_at = NOW()
		WHERE id = :id`

	_, err := r.db.NamedExecContext(ctx, query, goal)
	return err
}

func (r *goalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM goals WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

// filterClause builds the optional WHERE conditions shared by the list and
// count queries. Arguments are appended after any already present in args.
func filterClause(filters domain.GoalFilters, args []interface{}) (string, []interface{}) {
	var conditions []string

	if filters.Timeframe != nil {
		args = append(args, *filters.Timeframe)
		conditions = append(conditions, fmt.Sprintf("timeframe = $%d", len(args)))
	}
	if filters.Category != nil {
		args = append(args, *filters.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filters.Status != nil {
		args = append(args, *filters.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " AND " + strings.Join(conditions, " AND "), args
}

func (r *goalRepository) ListByUser(ctx context.Context, userID uuid.UUID, filters domain.GoalFilters, params domain.PaginationParams) ([]domain.Goal, int64, error) {
	params.Validate()

	clause, args := filterClause(filters, []interface{}{userID})

	var total int64
	countQuery := `SELECT COUNT(*) FROM goals WHERE user_id = $1` + clause
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	args = append(args, params.PageSize, params.Offset())
	query := fmt.Sprintf(`
		SELECT * FROM goals
		WHERE user_id = $1%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, clause, len(args)-1, len(args))

	var goals []domain.Goal
	err := r.db.SelectContext(ctx, &goals, query, args...)
	return goals, total, err
}

func (r *goalRepository) ListAllByUser(ctx context.Context, userID uuid.UUID, filters domain.GoalFilters) ([]domain.Goal, error) {
	clause, args := filterClause(filters, []interface{}{userID})

	query := `SELECT * FROM goals WHERE user_id = $1` + clause + ` ORDER BY created_at DESC`

	var goals []domain.Goal
	err := r.db.SelectContext(ctx, &goals, query, args...)
	return goals, err
}

func (r *goalRepository) List(ctx context.Context, userID *uuid.UUID, filters domain.GoalFilters, params domain.PaginationParams) ([]domain.Goal, int64, error) {
	params.Validate()

	var args []interface{}
	var conditions []string

	if userID != nil {
		args = append(args, *userID)
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filters.Timeframe != nil {
		args = append(args, *filters.Timeframe)
		conditions = append(conditions, fmt.Sprintf("timeframe = $%d", len(args)))
	}
	if filters.Category != nil {
		args = append(args, *filters.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filters.Status != nil {
		args = append(args, *filters.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM goals`+where, args...); err != nil {
		return nil, 0, err
	}

	args = append(args, params.PageSize, params.Offset())
	query := fmt.Sprintf(`
		SELECT * FROM goals%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	var goals []domain.Goal
	err := r.db.SelectContext(ctx, &goals, query, args...)
	return goals, total, err
}

func (r *goalRepository) CountByUser(ctx context.Context, userID uuid.UUID, filters domain.GoalFilters) (int64, error) {
	clause, args := filterClause(filters, []interface{}{userID})

	var count int64
	query := `SELECT COUNT(*) FROM goals WHERE user_id = $1` + clause
	err := r.db.GetContext(ctx, &count, query, args...)
	return count, err
}

func (r *goalRepository) DeleteAllByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *goalRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM goals`)
	return count, err
}

func (r *goalRepository) CountByStatus(ctx context.Context, status domain.GoalStatus) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM goals WHERE status = $1`, status)
	return count, err
}

func (r *goalRepository) CountByCategory(ctx context.Context) (map[domain.GoalCategory]int64, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT category, COUNT(*) FROM goals GROUP BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.GoalCategory]int64)
	for _, cat := range domain.GoalCategories() {
		counts[cat] = 0
	}
	for rows.Next() {
		var category domain.GoalCategory
		var count int64
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		counts[category] = count
	}
	return counts, rows.Err()
}

func (r *goalRepository) CountByTimeframe(ctx context.Context) (map[domain.GoalTimeframe]int64, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT timeframe, COUNT(*) FROM goals GROUP BY timeframe`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.GoalTimeframe]int64)
	for _, tf := range domain.GoalTimeframes() {
		counts[tf] = 0
	}
	for rows.Next() {
		var timeframe domain.GoalTimeframe
		var count int64
		if err := rows.Scan(&timeframe, &count); err != nil {
			return nil, err
		}
		counts[timeframe] = count
	}
	return counts, rows.Err()
}

func (r *goalRepository) SumAmounts(ctx context.Context) (float64, float64, error) {
	var sums struct {
		TotalSaved  float64 `db:"total_saved"`
		TotalTarget float64 `db:"total_target"`
	}
	query := `
		SELECT COALESCE(SUM(current_amount), 0) AS total_saved,
			COALESCE(SUM(target_amount), 0) AS total_target
		FROM goals`

	err := r.db.GetContext(ctx, &sums, query)
	return sums.TotalSaved, sums.TotalTarget, err
}

func (r *goalRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM goals WHERE created_at >= $1`, since)
	return count, err
}

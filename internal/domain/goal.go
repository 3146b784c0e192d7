package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

var (
	ErrGoalNotFound      = errors.New("goal not found")
	ErrGoalNotAuthorized = errors.New("goal does not belong to the requesting user")
	ErrInvalidAmount     = errors.New("contribution amount must be positive")
	ErrValidation        = errors.New("validation failed")
)

type GoalCategory string

const (
	CategorySurvival  GoalCategory = "survival"
	CategoryNecessity GoalCategory = "necessity"
	CategoryLifestyle GoalCategory = "lifestyle"
)

func (c GoalCategory) IsValid() bool {
	switch c {
	case CategorySurvival, CategoryNecessity, CategoryLifestyle:
		return true
	default:
		return false
	}
}

func GoalCategories() []GoalCategory {
	return []GoalCategory{CategorySurvival, CategoryNecessity, CategoryLifestyle}
}

type GoalTimeframe string

const (
	TimeframeShort GoalTimeframe = "short"
	TimeframeLong  GoalTimeframe = "long"
)

func (t GoalTimeframe) IsValid() bool {
	return t == TimeframeShort || t == TimeframeLong
}

func GoalTimeframes() []GoalTimeframe {
	return []GoalTimeframe{TimeframeShort, TimeframeLong}
}

type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusPaused    GoalStatus = "paused"
	GoalStatusCancelled GoalStatus = "cancelled"
)

func (s GoalStatus) IsValid() bool {
	switch s {
	case GoalStatusActive, GoalStatusCompleted, GoalStatusPaused, GoalStatusCancelled:
		return true
	default:
		return false
	}
}

// MilestoneThresholds is the fixed milestone policy. A threshold is recorded
// at most once per goal, the first time progress reaches it.
var MilestoneThresholds = []int{25, 50, 75, 100}

type Contribution struct {
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
	Note   string    `json:"note,omitempty"`
}

type Milestone struct {
	Percentage int       `json:"percentage"`
	AchievedAt time.Time `json:"achieved_at"`
}

// ContributionList and MilestoneList are stored as JSONB columns.

type ContributionList []Contribution

func (l ContributionList) Value() (driver.Value, error) {
	if l == nil {
		l = ContributionList{}
	}
	return json.Marshal(l)
}

func (l *ContributionList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

type MilestoneList []Milestone

func (l MilestoneList) Value() (driver.Value, error) {
	if l == nil {
		l = MilestoneList{}
	}
	return json.Marshal(l)
}

func (l *MilestoneList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

func scanJSON(src, dest interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported column type %T", src)
	}
}

type Goal struct {
	ID                 uuid.UUID        `json:"id" db:"id"`
	UserID             uuid.UUID        `json:"user_id" db:"user_id"`
	Name               string           `json:"name" db:"name"`
	Description        *string          `json:"description,omitempty" db:"description"`
	Category           GoalCategory     `json:"category" db:"category"`
	Timeframe          GoalTimeframe    `json:"timeframe" db:"timeframe"`
	Icon               string           `json:"icon" db:"icon"`
	CurrentAmount      float64          `json:"current_amount" db:"current_amount"`
	TargetAmount       float64          `json:"target_amount" db:"target_amount"`
	CurrencyCode       string           `json:"currency_code" db:"currency_code"`
	CurrencySymbol     string           `json:"currency_symbol" db:"currency_symbol"`
	ProgressPercentage int              `json:"progress_percentage" db:"progress_percentage"`
	ProgressUpdatedAt  time.Time        `json:"progress_updated_at" db:"progress_updated_at"`
	StartedAt          time.Time        `json:"started_at" db:"started_at"`
	TargetDate         *time.Time       `json:"target_date,omitempty" db:"target_date"`
	CompletedAt        *time.Time       `json:"completed_at,omitempty" db:"completed_at"`
	Status             GoalStatus       `json:"status" db:"status"`
	Contributions      ContributionList `json:"contributions" db:"contributions"`
	Milestones         MilestoneList    `json:"milestones" db:"milestones"`
	CreatedAt          time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at" db:"updated_at"`
}

// ProgressPercentage returns min(round(current/target*100), 100), clamped to
// [0,100]. A non-positive target yields 0 rather than dividing by zero.
func ProgressPercentage(current, target float64) int {
	if target <= 0 {
		return 0
	}
	pct := int(math.Round(current / target * 100))
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	return pct
}

func (g *Goal) HasMilestone(threshold int) bool {
	for _, m := range g.Milestones {
		if m.Percentage == threshold {
			return true
		}
	}
	return false
}

// RecomputeProgress refreshes the derived state after the monetary fields
// changed. Milestones only accumulate: a threshold stays recorded even if the
// current amount later drops below it. The active→completed transition fires
// once and is never reverted here.
func (g *Goal) RecomputeProgress(now time.Time) {
	pct := ProgressPercentage(g.CurrentAmount, g.TargetAmount)

	g.ProgressPercentage = pct
	g.ProgressUpdatedAt = now

	for _, threshold := range MilestoneThresholds {
		if pct >= threshold && !g.HasMilestone(threshold) {
			g.Milestones = append(g.Milestones, Milestone{Percentage: threshold, AchievedAt: now})
		}
	}

	if pct >= 100 && g.Status == GoalStatusActive {
		g.Status = GoalStatusCompleted
		completed := now
		g.CompletedAt = &completed
	}
}

// AddContribution applies a positive contribution and recomputes the derived
// state. The goal is left untouched when the amount is invalid.
func (g *Goal) AddContribution(amount float64, note string, now time.Time) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	g.CurrentAmount += amount
	g.Contributions = append(g.Contributions, Contribution{
		Amount: amount,
		Date:   now,
		Note:   note,
	})
	g.RecomputeProgress(now)

	return nil
}

type CreateGoalInput struct {
	Name         string        `json:"name"`
	Description  *string       `json:"description,omitempty"`
	Category     GoalCategory  `json:"category"`
	Timeframe    GoalTimeframe `json:"timeframe"`
	TargetAmount float64       `json:"target_amount"`
	CurrencyCode string        `json:"currency_code,omitempty"`
	TargetDate   *time.Time    `json:"target_date,omitempty"`
	Icon         string        `json:"icon,omitempty"`
}

func (in *CreateGoalInput) Validate(now time.Time) error {
	if in.Name == "" || len(in.Name) > 100 {
		return fmt.Errorf("%w: name must be between 1 and 100 characters", ErrValidation)
	}
	if in.Description != nil && len(*in.Description) > 500 {
		return fmt.Errorf("%w: description cannot exceed 500 characters", ErrValidation)
	}
	if !in.Category.IsValid() {
		return fmt.Errorf("%w: %q is not a valid category", ErrValidation, in.Category)
	}
	if !in.Timeframe.IsValid() {
		return fmt.Errorf("%w: %q is not a valid timeframe", ErrValidation, in.Timeframe)
	}
	if in.TargetAmount <= 0 {
		return fmt.Errorf("%w: target amount must be greater than 0", ErrValidation)
	}
	if in.CurrencyCode != "" {
		if _, ok := CurrencyByCode(in.CurrencyCode); !ok {
			return fmt.Errorf("%w: unsupported currency %q", ErrValidation, in.CurrencyCode)
		}
	}
	if in.TargetDate != nil && !in.TargetDate.After(now) {
		return fmt.Errorf("%w: target date must be in the future", ErrValidation)
	}
	return nil
}

type UpdateGoalInput struct {
	Name          *string        `json:"name,omitempty"`
	Description   *string        `json:"description,omitempty"`
	Category      *GoalCategory  `json:"category,omitempty"`
	Timeframe     *GoalTimeframe `json:"timeframe,omitempty"`
	CurrentAmount *float64       `json:"current_amount,omitempty"`
	TargetAmount  *float64       `json:"target_amount,omitempty"`
	CurrencyCode  *string        `json:"currency_code,omitempty"`
	TargetDate    *time.Time     `json:"target_date,omitempty"`
	Status        *GoalStatus    `json:"status,omitempty"`
	Icon          *string        `json:"icon,omitempty"`
}

func (in *UpdateGoalInput) Validate(now time.Time) error {
	if in.Name != nil && (*in.Name == "" || len(*in.Name) > 100) {
		return fmt.Errorf("%w: name must be between 1 and 100 characters", ErrValidation)
	}
	if in.Description != nil && len(*in.Description) > 500 {
		return fmt.Errorf("%w: description cannot exceed 500 characters", ErrValidation)
	}
	if in.Category != nil && !in.Category.IsValid() {
		return fmt.Errorf("%w: %q is not a valid category", ErrValidation, *in.Category)
	}
	if in.Timeframe != nil && !in.Timeframe.IsValid() {
		return fmt.Errorf("%w: %q is not a valid timeframe", ErrValidation, *in.Timeframe)
	}
	if in.CurrentAmount != nil && *in.CurrentAmount < 0 {
		return fmt.Errorf("%w: current amount cannot be negative", ErrValidation)
	}
	if in.TargetAmount != nil && *in.TargetAmount <= 0 {
		return fmt.Errorf("%w: target amount must be greater than 0", ErrValidation)
	}
	if in.CurrencyCode != nil {
		if _, ok := CurrencyByCode(*in.CurrencyCode); !ok {
			return fmt.Errorf("%w: unsupported currency %q", ErrValidation, *in.CurrencyCode)
		}
	}
	if in.TargetDate != nil && !in.TargetDate.After(now) {
		return fmt.Errorf("%w: target date must be in the future", ErrValidation)
	}
	if in.Status != nil && !in.Status.IsValid() {
		return fmt.Errorf("%w: %q is not a valid status", ErrValidation, *in.Status)
	}
	return nil
}

type ContributionInput struct {
	Amount float64 `json:"amount"`
	Note   string  `json:"note,omitempty"`
}

func (in *ContributionInput) Validate() error {
	if in.Amount <= 0 {
		return ErrInvalidAmount
	}
	if len(in.Note) > 200 {
		return fmt.Errorf("%w: note cannot exceed 200 characters", ErrValidation)
	}
	return nil
}

type GoalFilters struct {
	Timeframe *GoalTimeframe `query:"timeframe"`
	Category  *GoalCategory  `query:"category"`
	Status    *GoalStatus    `query:"status"`
}

package domain

import "math"

type BucketStats struct {
	Count         int     `json:"count"`
	TargetAmount  float64 `json:"target_amount"`
	CurrentAmount float64 `json:"current_amount"`
	Progress      int     `json:"progress"`
}

type GoalStatistics struct {
	TotalGoals         int                            `json:"total_goals"`
	ActiveGoals        int                            `json:"active_goals"`
	CompletedGoals     int                            `json:"completed_goals"`
	PausedGoals        int                            `json:"paused_goals"`
	TotalTargetAmount  float64                        `json:"total_target_amount"`
	TotalCurrentAmount float64                        `json:"total_current_amount"`
	OverallProgress    int                            `json:"overall_progress"`
	ByTimeframe        map[GoalTimeframe]BucketStats  `json:"by_timeframe"`
	ByCategory         map[GoalCategory]BucketStats   `json:"by_category"`
}

// ComputeStatistics folds a goal set into its rollup. Every timeframe and
// category bucket is always present, zero-valued when no goal matches, so
// clients can render a stable shape.
func ComputeStatistics(goals []Goal) GoalStatistics {
	stats := GoalStatistics{
		ByTimeframe: make(map[GoalTimeframe]BucketStats, 2),
		ByCategory:  make(map[GoalCategory]BucketStats, 3),
	}
	for _, tf := range GoalTimeframes() {
		stats.ByTimeframe[tf] = BucketStats{}
	}
	for _, cat := range GoalCategories() {
		stats.ByCategory[cat] = BucketStats{}
	}

	for _, g := range goals {
		stats.TotalGoals++
		switch g.Status {
		case GoalStatusActive:
			stats.ActiveGoals++
		case GoalStatusCompleted:
			stats.CompletedGoals++
		case GoalStatusPaused:
			stats.PausedGoals++
		}
		stats.TotalTargetAmount += g.TargetAmount
		stats.TotalCurrentAmount += g.CurrentAmount

		if bucket, ok := stats.ByTimeframe[g.Timeframe]; ok {
			bucket.Count++
			bucket.TargetAmount += g.TargetAmount
			bucket.CurrentAmount += g.CurrentAmount
			stats.ByTimeframe[g.Timeframe] = bucket
		}
		if bucket, ok := stats.ByCategory[g.Category]; ok {
			bucket.Count++
			bucket.TargetAmount += g.TargetAmount
			bucket.CurrentAmount += g.CurrentAmount
			stats.ByCategory[g.Category] = bucket
		}
	}

	stats.OverallProgress = aggregateProgress(stats.TotalCurrentAmount, stats.TotalTargetAmount)
	for tf, bucket := range stats.ByTimeframe {
		bucket.Progress = aggregateProgress(bucket.CurrentAmount, bucket.TargetAmount)
		stats.ByTimeframe[tf] = bucket
	}
	for cat, bucket := range stats.ByCategory {
		bucket.Progress = aggregateProgress(bucket.CurrentAmount, bucket.TargetAmount)
		stats.ByCategory[cat] = bucket
	}

	return stats
}

// aggregateProgress is the rollup formula: unlike a single goal's percentage
// it is not capped, so over-funded sets can report more than 100.
func aggregateProgress(current, target float64) int {
	if target <= 0 {
		return 0
	}
	return int(math.Round(current / target * 100))
}

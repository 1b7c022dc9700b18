package capacity

import (
	"math"
	"time"

	"github.com/andreav/meeting-pulse/internal/models"
)

// Blocker descriptions attached to low-confidence predictions.
const (
	BlockerLimitedBuffer      = "Limited time buffer"
	BlockerInsufficientTime   = "Insufficient time available"
	BlockerOvercommittedWeek  = "Overcommitted week"
	BlockerApproachingDeadline = "Approaching deadline"
)

// WeeklySummary aggregates the per-task predictions into coarse buckets.
type WeeklySummary struct {
	TotalTasks     int `json:"total_tasks"`
	LikelyComplete int `json:"likely_complete"` // probability >= 70
	AtRisk         int `json:"at_risk"`         // 40 <= probability < 70
	Unlikely       int `json:"unlikely"`        // probability < 40
}

// WeeklyPrediction is the full output of a weekly completion forecast.
type WeeklyPrediction struct {
	Predictions []models.TaskCompletionPrediction `json:"predictions"`
	Summary     WeeklySummary                     `json:"summary"`
}

// dayBudget is one entry of the per-day allocation ledger. Local to a single
// prediction run; never shared across calls.
type dayBudget struct {
	date      time.Time
	remaining float64
}

// PredictWeeklyCompletion forecasts, for each open task, the probability of
// completion within the week starting at weekStart given the supplied daily
// capacities (ideally seven, fewer tolerated).
//
// Allocation is greedy over a shared weekly pool: tasks are served in
// priority/due-date order and each feasible task deducts its estimate before
// the next is considered, so later tasks see a smaller budget.
func (w Workday) PredictWeeklyCompletion(weekStart time.Time, tasks []models.JiraTask, capacities []models.DailyCapacity) WeeklyPrediction {
	var totalWeeklyHours float64
	for i := range capacities {
		totalWeeklyHours += capacities[i].AvailableHours
	}

	var totalEstimatedHours float64
	for i := range tasks {
		totalEstimatedHours += EstimateTaskHours(&tasks[i])
	}

	// Mutable per-day ledger, copied from the supplied capacities in date order.
	ledger := make([]dayBudget, len(capacities))
	for i := range capacities {
		ledger[i] = dayBudget{date: capacities[i].Date, remaining: capacities[i].AvailableHours}
	}

	remainingWeeklyHours := totalWeeklyHours
	now := time.Now()

	predictions := make([]models.TaskCompletionPrediction, 0, len(tasks))
	for _, task := range SortTasksForScheduling(tasks) {
		taskHours := EstimateTaskHours(&task)
		if taskHours <= 0 {
			taskHours = 1 // guard: never divide by a zero estimate
		}

		blockers := models.StringList{}
		probability := 0
		risk := models.RiskHigh
		var completionDate *time.Time

		if remainingWeeklyHours >= taskHours {
			ratio := remainingWeeklyHours / taskHours
			switch {
			case ratio >= 2:
				probability = 95
				risk = models.RiskLow
			case ratio >= 1.2:
				probability = 75
				risk = models.RiskMedium
			default:
				probability = 60
				risk = models.RiskMedium
				blockers = append(blockers, BlockerLimitedBuffer)
			}

			remainingWeeklyHours -= taskHours

			// Walk the ledger in date order until the task's hours are covered;
			// the day that covers the last hour is the completion date.
			needed := taskHours
			for i := range ledger {
				if ledger[i].remaining <= 0 {
					continue
				}
				used := math.Min(needed, ledger[i].remaining)
				ledger[i].remaining -= used
				needed -= used
				if needed <= 0 {
					d := ledger[i].date
					completionDate = &d
					break
				}
			}
		} else {
			probability = int(math.Floor(remainingWeeklyHours / taskHours * 100))
			if probability < 0 {
				probability = 0
			}
			risk = models.RiskHigh
			blockers = append(blockers, BlockerInsufficientTime)
			if totalEstimatedHours > totalWeeklyHours*1.5 {
				blockers = append(blockers, BlockerOvercommittedWeek)
			}
			// No deduction: the task could not be scheduled at all.
		}

		if task.DueDate != nil {
			daysUntilDue := int(math.Ceil(task.DueDate.Sub(weekStart).Hours() / 24))
			if daysUntilDue <= 2 && probability < 80 {
				blockers = append(blockers, BlockerApproachingDeadline)
				risk = models.RiskHigh
			}
		}

		predictions = append(predictions, models.TaskCompletionPrediction{
			TaskID:                  task.ID,
			UserID:                  task.UserID,
			WeekStartDate:           weekStart,
			CompletionProbability:   probability,
			RiskLevel:               risk,
			EstimatedCompletionDate: completionDate,
			Blockers:                blockers,
			CalculatedAt:            now,
		})
	}

	summary := WeeklySummary{TotalTasks: len(tasks)}
	for i := range predictions {
		switch p := predictions[i].CompletionProbability; {
		case p >= 70:
			summary.LikelyComplete++
		case p >= 40:
			summary.AtRisk++
		default:
			summary.Unlikely++
		}
	}

	return WeeklyPrediction{Predictions: predictions, Summary: summary}
}

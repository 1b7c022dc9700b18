// Package capacity implements the capacity and prediction engine: task effort
// estimation, daily available-hours calculation, and weekly completion
// forecasting. Everything in here is a pure computation over in-memory
// records; callers fetch the inputs and persist the outputs.
package capacity

import (
	"sort"

	"github.com/andreav/meeting-pulse/internal/models"
)

// storyPointHours maps common Fibonacci story points to hour estimates.
// Values outside the table fall back to points * 2.
var storyPointHours = map[float64]float64{
	1:  1,
	2:  2,
	3:  4,
	5:  8,
	8:  16,
	13: 24,
}

// priorityDefaultHours is the estimate used when a task carries neither an
// explicit estimate nor story points.
var priorityDefaultHours = map[string]float64{
	models.PriorityHighest: 4,
	models.PriorityHigh:    3,
	models.PriorityMedium:  2,
	models.PriorityLow:     1,
	models.PriorityLowest:  0.5,
}

// priorityRank orders priorities for scheduling, lower is served first.
var priorityRank = map[string]int{
	models.PriorityHighest: 1,
	models.PriorityHigh:    2,
	models.PriorityMedium:  3,
	models.PriorityLow:     4,
	models.PriorityLowest:  5,
}

// EstimateTaskHours converts a task into an hours estimate. First match wins:
// explicit estimate, story-point table, priority default. Always positive.
func EstimateTaskHours(task *models.JiraTask) float64 {
	if task.EstimateHours != nil && *task.EstimateHours > 0 {
		return *task.EstimateHours
	}

	if task.StoryPoints != nil && *task.StoryPoints > 0 {
		if hours, ok := storyPointHours[*task.StoryPoints]; ok {
			return hours
		}
		return *task.StoryPoints * 2
	}

	if hours, ok := priorityDefaultHours[task.Priority]; ok {
		return hours
	}
	return priorityDefaultHours[models.PriorityMedium]
}

// rankOf returns the scheduling rank for a priority, treating unknown or
// unset priorities as Medium.
func rankOf(priority string) int {
	if rank, ok := priorityRank[priority]; ok {
		return rank
	}
	return priorityRank[models.PriorityMedium]
}

// SortTasksForScheduling returns a copy of tasks in allocation order: highest
// priority first, ties broken by earlier due date, tasks without a due date
// last among equal priority. The sort is stable so repeated runs over the
// same input produce identical orderings.
func SortTasksForScheduling(tasks []models.JiraTask) []models.JiraTask {
	sorted := make([]models.JiraTask, len(tasks))
	copy(sorted, tasks)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := &sorted[i], &sorted[j]

		ra, rb := rankOf(a.Priority), rankOf(b.Priority)
		if ra != rb {
			return ra < rb
		}

		switch {
		case a.DueDate != nil && b.DueDate != nil:
			return a.DueDate.Before(*b.DueDate)
		case a.DueDate != nil:
			return true
		case b.DueDate != nil:
			return false
		default:
			return false
		}
	})

	return sorted
}

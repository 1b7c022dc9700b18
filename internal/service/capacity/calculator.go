package capacity

import (
	"time"

	"github.com/andreav/meeting-pulse/internal/models"
)

// Workday holds the capacity model constants. The zero value is not usable;
// use DefaultWorkday or build one from configuration.
type Workday struct {
	StandardHours        float64
	ContextSwitchMinutes int
}

// DefaultWorkday is an 8-hour day with 20 minutes lost per open task.
var DefaultWorkday = Workday{
	StandardHours:        8,
	ContextSwitchMinutes: 20,
}

// DayCalculation is the result of a daily capacity computation.
type DayCalculation struct {
	TotalHours              float64
	MeetingHours            float64
	ContextSwitchingMinutes int
	AvailableHours          float64
	TasksCount              int
	CompletableTasksCount   int
}

// DayStart truncates t to midnight in its own location.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekStart returns the Monday midnight that starts the week containing t.
func WeekStart(t time.Time) time.Time {
	day := DayStart(t)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return day.AddDate(0, 0, -offset)
}

// CalculateDailyCapacity computes the hours available for task work on the
// given date, net of meetings starting that day and the context-switching
// cost of the supplied open tasks. The completable-task count is a greedy
// estimate in priority order and is informational only; the weekly predictor
// runs its own allocation.
func (w Workday) CalculateDailyCapacity(date time.Time, meetings []models.Meeting, tasks []models.JiraTask) DayCalculation {
	dayStart := DayStart(date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var meetingHours float64
	for i := range meetings {
		start := meetings[i].StartTime
		if !start.Before(dayStart) && start.Before(dayEnd) {
			meetingHours += meetings[i].EndTime.Sub(start).Hours()
		}
	}

	contextSwitchingMinutes := len(tasks) * w.ContextSwitchMinutes
	contextSwitchingHours := float64(contextSwitchingMinutes) / 60

	availableHours := w.StandardHours - meetingHours - contextSwitchingHours
	if availableHours < 0 {
		availableHours = 0
	}

	// Greedy fit: how many of the tasks would fit into today's budget.
	remaining := availableHours
	completable := 0
	for _, task := range SortTasksForScheduling(tasks) {
		hours := EstimateTaskHours(&task)
		if remaining >= hours {
			completable++
			remaining -= hours
		}
	}

	return DayCalculation{
		TotalHours:              w.StandardHours,
		MeetingHours:            meetingHours,
		ContextSwitchingMinutes: contextSwitchingMinutes,
		AvailableHours:          availableHours,
		TasksCount:              len(tasks),
		CompletableTasksCount:   completable,
	}
}

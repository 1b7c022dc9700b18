package models

import (
	"time"
)

// DailyCapacity records the hours available for task work on a single day,
// net of meetings and context switching. One record per (user, date);
// recomputation overwrites.
type DailyCapacity struct {
	ID                      uint      `gorm:"primaryKey" json:"id"`
	UserID                  uint      `gorm:"not null;index:idx_capacity_user_date,unique" json:"user_id"`
	User                    User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Date                    time.Time `gorm:"type:date;not null;index:idx_capacity_user_date,unique" json:"date"`
	TotalHours              float64   `gorm:"default:8" json:"total_hours"`
	MeetingHours            float64   `gorm:"default:0" json:"meeting_hours"`
	ContextSwitchingMinutes int       `gorm:"default:0" json:"context_switching_minutes"`
	AvailableHours          float64   `gorm:"default:0" json:"available_hours"`
	TasksCount              int       `gorm:"default:0" json:"tasks_count"`
	CompletableTasksCount   int       `gorm:"default:0" json:"completable_tasks_count"`
	CalculatedAt            time.Time `json:"calculated_at"`
}

// TableName specifies the table name for DailyCapacity model.
func (DailyCapacity) TableName() string {
	return "daily_capacities"
}

package models

import (
	"time"
)

// JiraTask represents a JIRA issue synced for a user.
// Identity is (user, jira key); re-syncs upsert by that pair.
type JiraTask struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        uint       `gorm:"not null;index:idx_task_user_key,unique" json:"user_id"`
	User          User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	JiraKey       string     `gorm:"not null;size:100;index:idx_task_user_key,unique" json:"jira_key"`
	JiraID        string     `gorm:"size:100" json:"jira_id"`
	Summary       string     `gorm:"type:text" json:"summary"`
	Status        string     `gorm:"size:100;index" json:"status"`
	Priority      string     `gorm:"size:50" json:"priority"` // 'Highest', 'High', 'Medium', 'Low', 'Lowest' or empty
	EstimateHours *float64   `json:"estimate_hours"`
	StoryPoints   *float64   `json:"story_points"`
	DueDate       *time.Time `json:"due_date"`
	Assignee      string     `gorm:"size:255" json:"assignee"`
	ProjectKey    string     `gorm:"size:100" json:"project_key"`
	Labels        StringList `gorm:"type:text" json:"labels"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName specifies the table name for JiraTask model.
func (JiraTask) TableName() string {
	return "jira_tasks"
}

// IsOpen reports whether the task still counts toward capacity planning.
func (t *JiraTask) IsOpen() bool {
	return t.Status != "Done" && t.Status != "Closed"
}

// Task priority constants.
const (
	PriorityHighest = "Highest"
	PriorityHigh    = "High"
	PriorityMedium  = "Medium"
	PriorityLow     = "Low"
	PriorityLowest  = "Lowest"
)

// TaskCompletionPrediction stores the weekly completion forecast for a task.
// At most one prediction exists per (task, week start); recomputation replaces.
type TaskCompletionPrediction struct {
	ID                      uint       `gorm:"primaryKey" json:"id"`
	TaskID                  uint       `gorm:"not null;index:idx_pred_task_week,unique" json:"task_id"`
	Task                    JiraTask   `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	UserID                  uint       `gorm:"not null;index" json:"user_id"`
	WeekStartDate           time.Time  `gorm:"not null;index:idx_pred_task_week,unique" json:"week_start_date"`
	CompletionProbability   int        `gorm:"default:0" json:"completion_probability"` // 0-100
	RiskLevel               string     `gorm:"size:20" json:"risk_level"`
	EstimatedCompletionDate *time.Time `json:"estimated_completion_date"`
	Blockers                StringList `gorm:"type:text" json:"blockers"`
	CalculatedAt            time.Time  `json:"calculated_at"`
}

// TableName specifies the table name for TaskCompletionPrediction model.
func (TaskCompletionPrediction) TableName() string {
	return "task_completion_predictions"
}

// Risk level constants.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

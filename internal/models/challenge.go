package models

import (
	"time"
)

// WeeklyChallenge is a personalized improvement goal for one user-week,
// targeting the user's weakest score criterion.
type WeeklyChallenge struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	UserID            uint       `gorm:"not null;index:idx_challenge_user_week,unique" json:"user_id"`
	User              User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	WeekStartDate     time.Time  `gorm:"not null;index:idx_challenge_user_week,unique" json:"week_start_date"`
	TargetCriteria    string     `gorm:"size:50;not null" json:"target_criteria"`
	GoalDescription   string     `gorm:"type:text" json:"goal_description"`
	TargetPercentage  int        `gorm:"default:80" json:"target_percentage"`
	MeetingsCompleted int        `gorm:"default:0" json:"meetings_completed"`
	TotalMeetings     int        `gorm:"default:0" json:"total_meetings"`
	CurrentProgress   int        `gorm:"default:0" json:"current_progress"`
	Status            string     `gorm:"size:20;default:active" json:"status"`
	CountedMeetingIDs StringList `gorm:"type:text" json:"counted_meeting_ids"` // prevents double counting across re-scores
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// TableName specifies the table name for WeeklyChallenge model.
func (WeeklyChallenge) TableName() string {
	return "weekly_challenges"
}

// Challenge status constants. ChallengeStatusFailed is part of the schema but
// no transition currently sets it.
const (
	ChallengeStatusActive    = "active"
	ChallengeStatusCompleted = "completed"
	ChallengeStatusFailed    = "failed"
)

// Achievement represents an earned reward. Append-only.
type Achievement struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Type        string    `gorm:"size:50" json:"type"`
	Title       string    `gorm:"size:255" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	IconName    string    `gorm:"size:50" json:"icon_name"`
	EarnedAt    time.Time `gorm:"not null" json:"earned_at"`
}

// TableName specifies the table name for Achievement model.
func (Achievement) TableName() string {
	return "achievements"
}

// Achievement type constants.
const (
	AchievementTypeChallengeComplete = "challenge_complete"
)

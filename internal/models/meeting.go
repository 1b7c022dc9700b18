package models

import (
	"time"
)

// Meeting represents a calendar meeting synced from Google Calendar.
// Identified by the calendar event ID so re-syncs upsert in place.
type Meeting struct {
	ID           string     `gorm:"primaryKey;size:255" json:"id"`
	UserID       uint       `gorm:"not null;index" json:"user_id"`
	User         User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Title        string     `gorm:"type:text;not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	StartTime    time.Time  `gorm:"not null;index" json:"start_time"`
	EndTime      time.Time  `gorm:"not null" json:"end_time"`
	Participants int        `gorm:"default:0" json:"participants"`
	DocID        string     `gorm:"size:255" json:"doc_id"` // linked notes document, set after sync
	LastSynced   *time.Time `json:"last_synced"`
}

// TableName specifies the table name for Meeting model.
func (Meeting) TableName() string {
	return "meetings"
}

// DurationMinutes returns the meeting length in minutes.
func (m *Meeting) DurationMinutes() float64 {
	return m.EndTime.Sub(m.StartTime).Minutes()
}

// MeetingScore holds the five-criteria quality score for a meeting.
// At most one score exists per meeting; recomputation replaces it.
type MeetingScore struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	MeetingID         string    `gorm:"uniqueIndex;not null;size:255" json:"meeting_id"`
	Meeting           Meeting   `gorm:"foreignKey:MeetingID" json:"meeting,omitempty"`
	AgendaScore       int       `gorm:"default:0" json:"agenda_score"`
	ParticipantsScore int       `gorm:"default:0" json:"participants_score"`
	TimingScore       int       `gorm:"default:0" json:"timing_score"`
	ActionsScore      int       `gorm:"default:0" json:"actions_score"`
	AttentionScore    int       `gorm:"default:0" json:"attention_score"`
	TotalScore        int       `gorm:"default:0" json:"total_score"`
	CalculatedAt      time.Time `json:"calculated_at"`
}

// TableName specifies the table name for MeetingScore model.
func (MeetingScore) TableName() string {
	return "meeting_scores"
}

// Score criteria names. Each maps to one of the five sub-scores.
const (
	CriteriaAgenda       = "agenda"
	CriteriaParticipants = "participants"
	CriteriaTiming       = "timing"
	CriteriaActions      = "actions"
	CriteriaAttention    = "attention"
)

// Criteria lists all score criteria in display order.
var Criteria = []string{
	CriteriaAgenda,
	CriteriaParticipants,
	CriteriaTiming,
	CriteriaActions,
	CriteriaAttention,
}

// CriteriaScore returns the sub-score for a named criterion, 0 for unknown names.
func (s *MeetingScore) CriteriaScore(criteria string) int {
	switch criteria {
	case CriteriaAgenda:
		return s.AgendaScore
	case CriteriaParticipants:
		return s.ParticipantsScore
	case CriteriaTiming:
		return s.TimingScore
	case CriteriaActions:
		return s.ActionsScore
	case CriteriaAttention:
		return s.AttentionScore
	default:
		return 0
	}
}

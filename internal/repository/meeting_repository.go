package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/andreav/meeting-pulse/internal/models"
)

// MeetingRepository handles database operations for meetings and their scores.
type MeetingRepository struct {
	db *DB
}

// NewMeetingRepository creates a new meeting repository.
func NewMeetingRepository(db *DB) *MeetingRepository {
	return &MeetingRepository{db: db}
}

// GetByID retrieves a meeting by its calendar event ID.
func (r *MeetingRepository) GetByID(id string) (*models.Meeting, error) {
	var meeting models.Meeting
	err := r.db.Where("id = ?", id).First(&meeting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

// GetByUserID retrieves a user's meetings, optionally bounded by start time,
// ordered by start time ascending.
func (r *MeetingRepository) GetByUserID(userID uint, start, end *time.Time) ([]models.Meeting, error) {
	var meetings []models.Meeting
	query := r.db.Where("user_id = ?", userID)

	if start != nil {
		query = query.Where("start_time >= ?", *start)
	}
	if end != nil {
		query = query.Where("start_time <= ?", *end)
	}

	err := query.Order("start_time ASC").Find(&meetings).Error
	return meetings, err
}

// Upsert creates or updates a meeting by its event ID. A document linked to
// an existing record survives re-syncs that carry no document.
func (r *MeetingRepository) Upsert(meeting *models.Meeting) error {
	now := time.Now()
	meeting.LastSynced = &now

	var existing models.Meeting
	err := r.db.Where("id = ?", meeting.ID).First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(meeting).Error
	}
	if err != nil {
		return err
	}

	if meeting.DocID == "" {
		meeting.DocID = existing.DocID
	}
	return r.db.Save(meeting).Error
}

// LinkDocument attaches a notes document to a meeting.
func (r *MeetingRepository) LinkDocument(meetingID, docID string) error {
	return r.db.Model(&models.Meeting{}).
		Where("id = ?", meetingID).
		Update("doc_id", docID).Error
}

// GetScore retrieves the score for a meeting, nil when none exists yet.
func (r *MeetingRepository) GetScore(meetingID string) (*models.MeetingScore, error) {
	var score models.MeetingScore
	err := r.db.Where("meeting_id = ?", meetingID).First(&score).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &score, nil
}

// UpsertScore creates or replaces the score for a meeting. At most one score
// row exists per meeting.
func (r *MeetingRepository) UpsertScore(score *models.MeetingScore) error {
	var existing models.MeetingScore
	err := r.db.Where("meeting_id = ?", score.MeetingID).First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(score).Error
	}
	if err != nil {
		return err
	}

	score.ID = existing.ID
	return r.db.Save(score).Error
}

// GetScoresByUserID retrieves all scores for a user's meetings in a window,
// joined through the meetings table.
func (r *MeetingRepository) GetScoresByUserID(userID uint, start, end *time.Time) ([]models.MeetingScore, error) {
	var scores []models.MeetingScore
	query := r.db.
		Joins("JOIN meetings ON meetings.id = meeting_scores.meeting_id").
		Where("meetings.user_id = ?", userID)

	if start != nil {
		query = query.Where("meetings.start_time >= ?", *start)
	}
	if end != nil {
		query = query.Where("meetings.start_time <= ?", *end)
	}

	err := query.Order("meetings.start_time ASC").Find(&scores).Error
	return scores, err
}

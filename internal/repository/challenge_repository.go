package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/andreav/meeting-pulse/internal/models"
)

// ChallengeRepository handles database operations for weekly challenges.
type ChallengeRepository struct {
	db *DB
}

// NewChallengeRepository creates a new challenge repository.
func NewChallengeRepository(db *DB) *ChallengeRepository {
	return &ChallengeRepository{db: db}
}

// GetForWeek retrieves a user's challenge for the week starting at weekStart,
// nil when none exists.
func (r *ChallengeRepository) GetForWeek(userID uint, weekStart time.Time) (*models.WeeklyChallenge, error) {
	var challenge models.WeeklyChallenge
	err := r.db.
		Where("user_id = ? AND week_start_date = ?", userID, weekStart).
		First(&challenge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

// Create stores a new weekly challenge.
func (r *ChallengeRepository) Create(challenge *models.WeeklyChallenge) error {
	return r.db.Create(challenge).Error
}

// Update saves changes to an existing challenge.
func (r *ChallengeRepository) Update(challenge *models.WeeklyChallenge) error {
	return r.db.Save(challenge).Error
}

// AchievementRepository handles database operations for achievements.
type AchievementRepository struct {
	db *DB
}

// NewAchievementRepository creates a new achievement repository.
func NewAchievementRepository(db *DB) *AchievementRepository {
	return &AchievementRepository{db: db}
}

// Create stores an achievement. Achievements are append-only.
func (r *AchievementRepository) Create(achievement *models.Achievement) error {
	return r.db.Create(achievement).Error
}

// ListByUser retrieves a user's achievements, most recent first.
func (r *AchievementRepository) ListByUser(userID uint) ([]models.Achievement, error) {
	var achievements []models.Achievement
	err := r.db.
		Where("user_id = ?", userID).
		Order("earned_at DESC").
		Find(&achievements).Error
	return achievements, err
}

package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/andreav/meeting-pulse/internal/models"
)

// PredictionRepository handles database operations for task completion predictions.
type PredictionRepository struct {
	db *DB
}

// NewPredictionRepository creates a new prediction repository.
func NewPredictionRepository(db *DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

// Upsert creates or replaces a prediction keyed by (task, week start).
func (r *PredictionRepository) Upsert(prediction *models.TaskCompletionPrediction) error {
	var existing models.TaskCompletionPrediction
	err := r.db.
		Where("task_id = ? AND week_start_date = ?", prediction.TaskID, prediction.WeekStartDate).
		First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(prediction).Error
	}
	if err != nil {
		return err
	}

	prediction.ID = existing.ID
	return r.db.Save(prediction).Error
}

// DeleteByWeek removes all of a user's predictions for a week. Used to clear
// stale predictions before writing a fresh batch.
func (r *PredictionRepository) DeleteByWeek(userID uint, weekStart time.Time) error {
	return r.db.
		Where("user_id = ? AND week_start_date = ?", userID, weekStart).
		Delete(&models.TaskCompletionPrediction{}).Error
}

// GetByWeek retrieves a user's predictions for a week.
func (r *PredictionRepository) GetByWeek(userID uint, weekStart time.Time) ([]models.TaskCompletionPrediction, error) {
	var predictions []models.TaskCompletionPrediction
	err := r.db.
		Where("user_id = ? AND week_start_date = ?", userID, weekStart).
		Order("completion_probability DESC").
		Find(&predictions).Error
	return predictions, err
}

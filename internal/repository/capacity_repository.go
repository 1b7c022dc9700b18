package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/andreav/meeting-pulse/internal/models"
)

// CapacityRepository handles database operations for daily capacity records.
type CapacityRepository struct {
	db *DB
}

// NewCapacityRepository creates a new capacity repository.
func NewCapacityRepository(db *DB) *CapacityRepository {
	return &CapacityRepository{db: db}
}

// Upsert creates or overwrites the capacity record for (user, date).
func (r *CapacityRepository) Upsert(capacity *models.DailyCapacity) error {
	var existing models.DailyCapacity
	err := r.db.
		Where("user_id = ? AND date = ?", capacity.UserID, capacity.Date).
		First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(capacity).Error
	}
	if err != nil {
		return err
	}

	capacity.ID = existing.ID
	return r.db.Save(capacity).Error
}

// GetByDate retrieves the capacity record for a single day, nil when absent.
func (r *CapacityRepository) GetByDate(userID uint, date time.Time) (*models.DailyCapacity, error) {
	var capacity models.DailyCapacity
	err := r.db.Where("user_id = ? AND date = ?", userID, date).First(&capacity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &capacity, nil
}

// GetForWeek retrieves the capacity records for the seven days starting at
// weekStart, in date order. Fewer than seven records may exist.
func (r *CapacityRepository) GetForWeek(userID uint, weekStart time.Time) ([]models.DailyCapacity, error) {
	weekEnd := weekStart.AddDate(0, 0, 7)

	var capacities []models.DailyCapacity
	err := r.db.
		Where("user_id = ? AND date >= ? AND date < ?", userID, weekStart, weekEnd).
		Order("date ASC").
		Find(&capacities).Error
	return capacities, err
}

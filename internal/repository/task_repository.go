package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/andreav/meeting-pulse/internal/models"
)

// TaskRepository handles database operations for JIRA tasks.
type TaskRepository struct {
	db *DB
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Upsert creates or updates a task by its (user, jira key) identity. This
// keeps re-syncs idempotent.
func (r *TaskRepository) Upsert(task *models.JiraTask) error {
	var existing models.JiraTask
	err := r.db.Where("user_id = ? AND jira_key = ?", task.UserID, task.JiraKey).First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(task).Error
	}
	if err != nil {
		return err
	}

	task.ID = existing.ID
	task.CreatedAt = existing.CreatedAt
	return r.db.Save(task).Error
}

// ListByUser retrieves a user's tasks, optionally filtered by status.
func (r *TaskRepository) ListByUser(userID uint, status string) ([]models.JiraTask, error) {
	var tasks []models.JiraTask
	query := r.db.Where("user_id = ?", userID)

	if status != "" {
		query = query.Where("status = ?", status)
	}

	err := query.Order("jira_key ASC").Find(&tasks).Error
	return tasks, err
}

// ListOpenByUser retrieves tasks that still count toward capacity planning.
func (r *TaskRepository) ListOpenByUser(userID uint) ([]models.JiraTask, error) {
	var tasks []models.JiraTask
	err := r.db.
		Where("user_id = ? AND status NOT IN ?", userID, []string{"Done", "Closed"}).
		Order("jira_key ASC").
		Find(&tasks).Error
	return tasks, err
}

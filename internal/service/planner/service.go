// Package planner orchestrates capacity computation and weekly completion
// forecasting: it gathers meetings and tasks, runs the capacity engine, and
// persists the resulting records.
package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/andreav/meeting-pulse/internal/cache"
	prommetrics "github.com/andreav/meeting-pulse/internal/metrics"
	"github.com/andreav/meeting-pulse/internal/models"
	"github.com/andreav/meeting-pulse/internal/repository"
	"github.com/andreav/meeting-pulse/internal/service/capacity"
	"github.com/andreav/meeting-pulse/pkg/logger"
)

// MeetingRepository interface for meeting lookups.
type MeetingRepository interface {
	GetByUserID(userID uint, start, end *time.Time) ([]models.Meeting, error)
}

// TaskRepository interface for task lookups.
type TaskRepository interface {
	ListOpenByUser(userID uint) ([]models.JiraTask, error)
}

// CapacityRepository interface for capacity persistence.
type CapacityRepository interface {
	Upsert(capacity *models.DailyCapacity) error
	GetForWeek(userID uint, weekStart time.Time) ([]models.DailyCapacity, error)
}

// PredictionRepository interface for prediction persistence.
type PredictionRepository interface {
	Upsert(prediction *models.TaskCompletionPrediction) error
	DeleteByWeek(userID uint, weekStart time.Time) error
	GetByWeek(userID uint, weekStart time.Time) ([]models.TaskCompletionPrediction, error)
}

// Service computes and persists capacity and prediction records.
type Service struct {
	meetings    MeetingRepository
	tasks       TaskRepository
	capacities  CapacityRepository
	predictions PredictionRepository
	cache       cache.Cache
	cacheTTL    time.Duration
	workday     capacity.Workday
	log         *logger.Logger
}

// NewService creates a new planner service.
func NewService(
	meetingRepo *repository.MeetingRepository,
	taskRepo *repository.TaskRepository,
	capacityRepo *repository.CapacityRepository,
	predictionRepo *repository.PredictionRepository,
	c cache.Cache,
	cacheTTL time.Duration,
	workday capacity.Workday,
	log *logger.Logger,
) *Service {
	return NewServiceWithInterfaces(meetingRepo, taskRepo, capacityRepo, predictionRepo, c, cacheTTL, workday, log)
}

// NewServiceWithInterfaces creates a new planner service with interface dependencies (useful for testing).
func NewServiceWithInterfaces(
	meetings MeetingRepository,
	tasks TaskRepository,
	capacities CapacityRepository,
	predictions PredictionRepository,
	c cache.Cache,
	cacheTTL time.Duration,
	workday capacity.Workday,
	log *logger.Logger,
) *Service {
	return &Service{
		meetings:    meetings,
		tasks:       tasks,
		capacities:  capacities,
		predictions: predictions,
		cache:       c,
		cacheTTL:    cacheTTL,
		workday:     workday,
		log:         log,
	}
}

// CalculateDay computes and stores the capacity record for one day.
func (s *Service) CalculateDay(ctx context.Context, userID uint, date time.Time) (*models.DailyCapacity, error) {
	dayStart := capacity.DayStart(date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	meetings, err := s.meetings.GetByUserID(userID, &dayStart, &dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to get meetings: %w", err)
	}

	tasks, err := s.tasks.ListOpenByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get open tasks: %w", err)
	}

	calc := s.workday.CalculateDailyCapacity(dayStart, meetings, tasks)

	record := &models.DailyCapacity{
		UserID:                  userID,
		Date:                    dayStart,
		TotalHours:              calc.TotalHours,
		MeetingHours:            calc.MeetingHours,
		ContextSwitchingMinutes: calc.ContextSwitchingMinutes,
		AvailableHours:          calc.AvailableHours,
		TasksCount:              calc.TasksCount,
		CompletableTasksCount:   calc.CompletableTasksCount,
		CalculatedAt:            time.Now(),
	}

	if err := s.capacities.Upsert(record); err != nil {
		return nil, fmt.Errorf("failed to upsert daily capacity: %w", err)
	}

	s.invalidateWeekCache(ctx, userID, capacity.WeekStart(dayStart))

	s.log.Debug().
		Uint("user_id", userID).
		Time("date", dayStart).
		Float64("available_hours", calc.AvailableHours).
		Msg("Daily capacity calculated")

	return record, nil
}

// GetWeek returns the stored capacity records for a week, served from cache
// when warm.
func (s *Service) GetWeek(ctx context.Context, userID uint, weekStart time.Time) ([]models.DailyCapacity, error) {
	key := weekCacheKey(userID, weekStart)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil && cached != "" {
			var capacities []models.DailyCapacity
			if err := json.Unmarshal([]byte(cached), &capacities); err == nil {
				return capacities, nil
			}
		}
	}

	capacities, err := s.capacities.GetForWeek(userID, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly capacity: %w", err)
	}

	if s.cache != nil && len(capacities) > 0 {
		if data, err := json.Marshal(capacities); err == nil {
			if err := s.cache.Set(ctx, key, string(data), s.cacheTTL); err != nil {
				s.log.Warn().Err(err).Str("key", key).Msg("Failed to cache weekly capacity")
			}
		}
	}

	return capacities, nil
}

// EnsureWeek returns the week's capacity records, computing and storing any
// of the seven days that are missing.
func (s *Service) EnsureWeek(ctx context.Context, userID uint, weekStart time.Time) ([]models.DailyCapacity, error) {
	capacities, err := s.capacities.GetForWeek(userID, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly capacity: %w", err)
	}
	if len(capacities) >= 7 {
		return capacities, nil
	}

	have := make(map[string]bool, len(capacities))
	for i := range capacities {
		have[capacity.DayStart(capacities[i].Date).Format("2006-01-02")] = true
	}

	for i := 0; i < 7; i++ {
		date := weekStart.AddDate(0, 0, i)
		if have[date.Format("2006-01-02")] {
			continue
		}
		if _, err := s.CalculateDay(ctx, userID, date); err != nil {
			return nil, err
		}
	}

	return s.capacities.GetForWeek(userID, weekStart)
}

// PredictWeek runs the weekly completion forecast for a user, replacing any
// stored predictions for the week with the fresh batch.
func (s *Service) PredictWeek(ctx context.Context, userID uint, weekStart time.Time) (*capacity.WeeklyPrediction, error) {
	weekStart = capacity.WeekStart(weekStart)

	tasks, err := s.tasks.ListOpenByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get open tasks: %w", err)
	}

	capacities, err := s.EnsureWeek(ctx, userID, weekStart)
	if err != nil {
		return nil, err
	}

	result := s.workday.PredictWeeklyCompletion(weekStart, tasks, capacities)

	// Replace the stored batch wholesale so stale tasks disappear.
	if err := s.predictions.DeleteByWeek(userID, weekStart); err != nil {
		return nil, fmt.Errorf("failed to clear stale predictions: %w", err)
	}
	for i := range result.Predictions {
		if err := s.predictions.Upsert(&result.Predictions[i]); err != nil {
			return nil, fmt.Errorf("failed to upsert prediction: %w", err)
		}
		prommetrics.RecordPredictionComputed(result.Predictions[i].RiskLevel)
	}

	var totalHours float64
	for i := range capacities {
		totalHours += capacities[i].AvailableHours
	}
	prommetrics.SetWeeklyAvailableHours(strconv.FormatUint(uint64(userID), 10), totalHours)

	s.log.Info().
		Uint("user_id", userID).
		Time("week_start", weekStart).
		Int("tasks", result.Summary.TotalTasks).
		Int("likely_complete", result.Summary.LikelyComplete).
		Msg("Weekly predictions computed")

	return &result, nil
}

// GetPredictions returns the stored predictions for a week.
func (s *Service) GetPredictions(_ context.Context, userID uint, weekStart time.Time) ([]models.TaskCompletionPrediction, error) {
	return s.predictions.GetByWeek(userID, capacity.WeekStart(weekStart))
}

func (s *Service) invalidateWeekCache(ctx context.Context, userID uint, weekStart time.Time) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, weekCacheKey(userID, weekStart)); err != nil {
		s.log.Warn().Err(err).Msg("Failed to invalidate weekly capacity cache")
	}
}

func weekCacheKey(userID uint, weekStart time.Time) string {
	return fmt.Sprintf("capacity:week:%d:%s", userID, weekStart.Format("2006-01-02"))
}

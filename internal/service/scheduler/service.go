// Package scheduler provides recurring capacity recomputation and weekly
// challenge generation.
package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/andreav/meeting-pulse/internal/config"
	prommetrics "github.com/andreav/meeting-pulse/internal/metrics"
	"github.com/andreav/meeting-pulse/internal/repository"
	"github.com/andreav/meeting-pulse/internal/service/challenge"
	"github.com/andreav/meeting-pulse/internal/service/planner"
	"github.com/andreav/meeting-pulse/pkg/logger"
)

// Service handles recurring job scheduling.
type Service struct {
	config           *config.Config
	userRepo         *repository.UserRepository
	plannerService   *planner.Service
	challengeService *challenge.Service
	log              *logger.Logger
	cron             *cron.Cron
}

// NewService creates a new scheduler service.
func NewService(
	cfg *config.Config,
	userRepo *repository.UserRepository,
	plannerService *planner.Service,
	challengeService *challenge.Service,
	log *logger.Logger,
) *Service {
	return &Service{
		config:           cfg,
		userRepo:         userRepo,
		plannerService:   plannerService,
		challengeService: challengeService,
		log:              log,
	}
}

// Start initializes and starts the cron scheduler.
func (s *Service) Start() error {
	if !s.config.Scheduler.Enabled {
		s.log.Info().Msg("Scheduler is disabled in configuration")
		return nil
	}

	location, err := s.config.Scheduler.GetLocation()
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", s.config.Scheduler.Timezone, err)
	}

	s.cron = cron.New(cron.WithLocation(location))

	cronExpr, err := s.buildCronExpression()
	if err != nil {
		return fmt.Errorf("failed to build cron expression: %w", err)
	}

	// Register daily capacity job
	_, err = s.cron.AddFunc(cronExpr, func() {
		s.runDailyCapacity(context.Background())
	})
	if err != nil {
		return fmt.Errorf("failed to register daily capacity job: %w", err)
	}

	// Register weekly challenge job if configured
	if s.config.Scheduler.ChallengeSchedule != "" && s.challengeService != nil {
		_, err = s.cron.AddFunc(s.config.Scheduler.ChallengeSchedule, func() {
			s.runChallengeGeneration(context.Background())
		})
		if err != nil {
			return fmt.Errorf("failed to register challenge generation job: %w", err)
		}
		s.log.Info().
			Str("schedule", s.config.Scheduler.ChallengeSchedule).
			Msg("Challenge generation job registered")
	}

	s.cron.Start()

	entries := s.cron.Entries()
	nextRun := ""
	if len(entries) > 0 {
		nextRun = entries[0].Next.Format(time.RFC3339)
	}

	s.log.Info().
		Str("schedule", cronExpr).
		Str("timezone", s.config.Scheduler.Timezone).
		Str("time", s.config.Scheduler.CapacityTime).
		Bool("skip_weekends", s.config.Scheduler.SkipWeekends).
		Str("next_run", nextRun).
		Msg("Scheduler started successfully")

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Service) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.log.Info().Msg("Scheduler stopped")
	}
}

// buildCronExpression generates a cron expression from config.
func (s *Service) buildCronExpression() (string, error) {
	// Parse time string (format: "HH:MM")
	parts := strings.Split(s.config.Scheduler.CapacityTime, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid time format %q, expected HH:MM", s.config.Scheduler.CapacityTime)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour %q", parts[0])
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute %q", parts[1])
	}

	// Format: "minute hour day month weekday"
	if s.config.Scheduler.SkipWeekends {
		// Monday-Friday only (1-5)
		return fmt.Sprintf("%d %d * * 1-5", minute, hour), nil
	}

	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}

// runDailyCapacity recomputes today's capacity and the current week's
// predictions for every user.
func (s *Service) runDailyCapacity(ctx context.Context) {
	start := time.Now()

	defer func() {
		prommetrics.ObserveSchedulerJobDuration(time.Since(start).Seconds())
		prommetrics.SetSchedulerLastRun()
	}()

	s.log.Info().Msg("Running daily capacity job")

	users, err := s.userRepo.List()
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to list users for capacity job")
		return
	}

	today := time.Now()
	succeeded := 0
	for _, user := range users {
		if _, err := s.plannerService.CalculateDay(ctx, user.ID, today); err != nil {
			s.log.Error().
				Err(err).
				Uint("user_id", user.ID).
				Msg("Failed to recompute daily capacity")
			continue
		}
		if _, err := s.plannerService.PredictWeek(ctx, user.ID, today); err != nil {
			s.log.Error().
				Err(err).
				Uint("user_id", user.ID).
				Msg("Failed to recompute weekly predictions")
			continue
		}
		succeeded++
	}

	s.log.Info().
		Int("users", len(users)).
		Int("succeeded", succeeded).
		Dur("duration", time.Since(start)).
		Msg("Daily capacity job complete")
}

// runChallengeGeneration ensures every user has a challenge for the current week.
func (s *Service) runChallengeGeneration(ctx context.Context) {
	start := time.Now()

	defer func() {
		prommetrics.ObserveSchedulerJobDuration(time.Since(start).Seconds())
		prommetrics.SetSchedulerLastRun()
	}()

	s.log.Info().Msg("Running challenge generation job")

	users, err := s.userRepo.List()
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to list users for challenge job")
		return
	}

	generated := 0
	for _, user := range users {
		if _, err := s.challengeService.Generate(ctx, user.ID, time.Now()); err != nil {
			s.log.Error().
				Err(err).
				Uint("user_id", user.ID).
				Msg("Failed to generate weekly challenge")
			continue
		}
		generated++
	}

	s.log.Info().
		Int("users", len(users)).
		Int("generated", generated).
		Dur("duration", time.Since(start)).
		Msg("Challenge generation job complete")
}

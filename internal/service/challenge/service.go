// Package challenge implements the weekly challenge and achievement engine.
// Each user-week gets one challenge targeting the user's weakest score
// criterion; scored meetings feed its progress exactly once each.
package challenge

import (
	"context"
	"fmt"
	"math"
	"time"

	prommetrics "github.com/andreav/meeting-pulse/internal/metrics"
	"github.com/andreav/meeting-pulse/internal/models"
	"github.com/andreav/meeting-pulse/internal/repository"
	"github.com/andreav/meeting-pulse/internal/service/capacity"
	"github.com/andreav/meeting-pulse/pkg/logger"
)

// PassThreshold is the minimum sub-score (out of 20) for a meeting to count
// toward a challenge, i.e. 75% of the maximum.
const PassThreshold = 15

// CompletionMinimumMeetings is how many meetings must be counted before a
// challenge can complete.
const CompletionMinimumMeetings = 5

// ChallengeRepository interface for weekly challenge persistence.
type ChallengeRepository interface {
	GetForWeek(userID uint, weekStart time.Time) (*models.WeeklyChallenge, error)
	Create(challenge *models.WeeklyChallenge) error
	Update(challenge *models.WeeklyChallenge) error
}

// MeetingRepository interface for meeting and score lookups.
type MeetingRepository interface {
	GetByUserID(userID uint, start, end *time.Time) ([]models.Meeting, error)
	GetScore(meetingID string) (*models.MeetingScore, error)
}

// AchievementRepository interface for achievement persistence.
type AchievementRepository interface {
	Create(achievement *models.Achievement) error
}

// Service generates weekly challenges and tracks their progress.
type Service struct {
	challenges       ChallengeRepository
	meetings         MeetingRepository
	achievements     AchievementRepository
	targetPercentage int
	lookbackDays     int
	log              *logger.Logger
}

// NewService creates a new challenge service.
func NewService(
	challengeRepo *repository.ChallengeRepository,
	meetingRepo *repository.MeetingRepository,
	achievementRepo *repository.AchievementRepository,
	targetPercentage, lookbackDays int,
	log *logger.Logger,
) *Service {
	return NewServiceWithInterfaces(challengeRepo, meetingRepo, achievementRepo, targetPercentage, lookbackDays, log)
}

// NewServiceWithInterfaces creates a new challenge service with interface dependencies (useful for testing).
func NewServiceWithInterfaces(
	challenges ChallengeRepository,
	meetings MeetingRepository,
	achievements AchievementRepository,
	targetPercentage, lookbackDays int,
	log *logger.Logger,
) *Service {
	if targetPercentage <= 0 {
		targetPercentage = 80
	}
	if lookbackDays <= 0 {
		lookbackDays = 14
	}
	return &Service{
		challenges:       challenges,
		meetings:         meetings,
		achievements:     achievements,
		targetPercentage: targetPercentage,
		lookbackDays:     lookbackDays,
		log:              log,
	}
}

// Generate creates the challenge for the week containing now, targeting the
// criterion with the lowest average sub-score over the lookback window. New
// users with no scored meetings get the default agenda challenge. If a
// challenge for the week already exists it is returned unchanged.
func (s *Service) Generate(ctx context.Context, userID uint, now time.Time) (*models.WeeklyChallenge, error) {
	weekStart := capacity.WeekStart(now)

	existing, err := s.challenges.GetForWeek(userID, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to look up current challenge: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	target, err := s.weakestCriterion(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	goal := goalCatalog[target]
	challenge := &models.WeeklyChallenge{
		UserID:            userID,
		WeekStartDate:     weekStart,
		TargetCriteria:    target,
		GoalDescription:   goal.Description,
		TargetPercentage:  s.targetPercentage,
		Status:            models.ChallengeStatusActive,
		CountedMeetingIDs: models.StringList{},
	}

	if err := s.challenges.Create(challenge); err != nil {
		return nil, fmt.Errorf("failed to create weekly challenge: %w", err)
	}

	s.log.Info().
		Uint("user_id", userID).
		Str("target_criteria", target).
		Time("week_start", weekStart).
		Msg("Weekly challenge generated")

	return challenge, nil
}

// weakestCriterion averages each sub-score across the user's scored meetings
// in the lookback window and returns the lowest one. Defaults to agenda when
// no scored meetings exist.
func (s *Service) weakestCriterion(_ context.Context, userID uint, now time.Time) (string, error) {
	since := now.AddDate(0, 0, -s.lookbackDays)

	meetings, err := s.meetings.GetByUserID(userID, &since, nil)
	if err != nil {
		return "", fmt.Errorf("failed to get recent meetings: %w", err)
	}

	sums := make(map[string]float64, len(models.Criteria))
	count := 0
	for i := range meetings {
		score, err := s.meetings.GetScore(meetings[i].ID)
		if err != nil {
			return "", fmt.Errorf("failed to get meeting score: %w", err)
		}
		if score == nil {
			continue
		}
		for _, criteria := range models.Criteria {
			sums[criteria] += float64(score.CriteriaScore(criteria))
		}
		count++
	}

	if count == 0 {
		return models.CriteriaAgenda, nil
	}

	// Ties go to the later criterion in list order.
	weakest := models.Criteria[0]
	lowest := sums[weakest] / float64(count)
	for _, criteria := range models.Criteria[1:] {
		avg := sums[criteria] / float64(count)
		if avg <= lowest {
			lowest = avg
			weakest = criteria
		}
	}

	return weakest, nil
}

// RecordMeeting counts a scored meeting toward the user's active challenge.
// No-op when no active challenge exists or when the meeting was already
// counted, so re-scoring a meeting any number of times is safe.
func (s *Service) RecordMeeting(ctx context.Context, userID uint, meetingID string) error {
	challenge, err := s.challenges.GetForWeek(userID, capacity.WeekStart(time.Now()))
	if err != nil {
		return fmt.Errorf("failed to look up current challenge: %w", err)
	}
	if challenge == nil || challenge.Status != models.ChallengeStatusActive {
		return nil
	}
	if challenge.CountedMeetingIDs.Contains(meetingID) {
		return nil
	}

	score, err := s.meetings.GetScore(meetingID)
	if err != nil {
		return fmt.Errorf("failed to get meeting score: %w", err)
	}
	if score == nil {
		return nil
	}

	passes := score.CriteriaScore(challenge.TargetCriteria) >= PassThreshold

	challenge.TotalMeetings++
	if passes {
		challenge.MeetingsCompleted++
	}
	challenge.CurrentProgress = int(math.Round(float64(challenge.MeetingsCompleted) / float64(challenge.TotalMeetings) * 100))
	challenge.CountedMeetingIDs = append(challenge.CountedMeetingIDs, meetingID)

	if err := s.challenges.Update(challenge); err != nil {
		return fmt.Errorf("failed to update challenge progress: %w", err)
	}

	s.log.Debug().
		Uint("user_id", userID).
		Str("meeting_id", meetingID).
		Bool("passes", passes).
		Int("progress", challenge.CurrentProgress).
		Msg("Challenge progress updated")

	return s.checkCompletion(ctx, challenge)
}

// checkCompletion marks the challenge completed and awards the achievement
// once enough meetings are counted and the target is met.
func (s *Service) checkCompletion(_ context.Context, challenge *models.WeeklyChallenge) error {
	if challenge.TotalMeetings < CompletionMinimumMeetings || challenge.CurrentProgress < challenge.TargetPercentage {
		return nil
	}

	challenge.Status = models.ChallengeStatusCompleted
	if err := s.challenges.Update(challenge); err != nil {
		return fmt.Errorf("failed to complete challenge: %w", err)
	}

	award := awardFor(challenge.TargetCriteria)
	achievement := &models.Achievement{
		UserID:      challenge.UserID,
		Type:        models.AchievementTypeChallengeComplete,
		Title:       award.Title,
		Description: award.Description,
		IconName:    award.Icon,
		EarnedAt:    time.Now(),
	}
	if err := s.achievements.Create(achievement); err != nil {
		return fmt.Errorf("failed to create achievement: %w", err)
	}

	prommetrics.RecordChallengeCompleted(challenge.TargetCriteria)

	s.log.Info().
		Uint("user_id", challenge.UserID).
		Str("target_criteria", challenge.TargetCriteria).
		Str("achievement", award.Title).
		Msg("Weekly challenge completed")

	return nil
}

package scoring

import (
	"context"
	"fmt"
	"time"

	prommetrics "github.com/andreav/meeting-pulse/internal/metrics"
	"github.com/andreav/meeting-pulse/internal/models"
	"github.com/andreav/meeting-pulse/internal/repository"
	"github.com/andreav/meeting-pulse/pkg/logger"
)

// ScoreRepository interface for meeting score persistence.
type ScoreRepository interface {
	UpsertScore(score *models.MeetingScore) error
	GetScore(meetingID string) (*models.MeetingScore, error)
}

// ProgressTracker feeds freshly scored meetings into the weekly challenge.
type ProgressTracker interface {
	RecordMeeting(ctx context.Context, userID uint, meetingID string) error
}

// Service computes and persists meeting scores.
type Service struct {
	scores   ScoreRepository
	progress ProgressTracker
	log      *logger.Logger
}

// NewService creates a new scoring service.
func NewService(meetingRepo *repository.MeetingRepository, progress ProgressTracker, log *logger.Logger) *Service {
	return &Service{
		scores:   meetingRepo,
		progress: progress,
		log:      log,
	}
}

// NewServiceWithInterfaces creates a new scoring service with interface dependencies (useful for testing).
func NewServiceWithInterfaces(scores ScoreRepository, progress ProgressTracker, log *logger.Logger) *Service {
	return &Service{
		scores:   scores,
		progress: progress,
		log:      log,
	}
}

// ScoreMeeting computes the score for a meeting, optionally enriched with
// linked notes text, and replaces any previous score in place. The challenge
// engine is notified afterwards; its own idempotence guard makes repeated
// re-scoring of the same meeting safe.
func (s *Service) ScoreMeeting(ctx context.Context, meeting *models.Meeting, notes string) (*models.MeetingScore, error) {
	agenda := AnalyzeDescription(meeting.Description)
	noteSignal := AnalyzeNotes(notes)

	result := CalculateMeetingScore(Factors{
		Title:             meeting.Title,
		HasAgenda:         agenda.HasAgenda,
		AgendaLength:      agenda.Length,
		AgendaTopics:      agenda.Topics,
		Participants:      meeting.Participants,
		DurationMinutes:   meeting.DurationMinutes(),
		ActionItems:       noteSignal.ActionItems,
		AttentionPoints:   noteSignal.AttentionPoints,
		HasAccountability: noteSignal.HasAccountability,
		HasDeadlines:      noteSignal.HasDeadlines,
	})

	score := &models.MeetingScore{
		MeetingID:         meeting.ID,
		AgendaScore:       result.AgendaScore,
		ParticipantsScore: result.ParticipantsScore,
		TimingScore:       result.TimingScore,
		ActionsScore:      result.ActionsScore,
		AttentionScore:    result.AttentionScore,
		TotalScore:        result.TotalScore,
		CalculatedAt:      time.Now(),
	}

	if err := s.scores.UpsertScore(score); err != nil {
		return nil, fmt.Errorf("failed to upsert meeting score: %w", err)
	}

	prommetrics.RecordMeetingScored(result.TotalScore)

	if s.progress != nil {
		if err := s.progress.RecordMeeting(ctx, meeting.UserID, meeting.ID); err != nil {
			// Challenge bookkeeping must not fail the scoring flow.
			s.log.Error().
				Err(err).
				Str("meeting_id", meeting.ID).
				Msg("Failed to update challenge progress")
		}
	}

	s.log.Debug().
		Str("meeting_id", meeting.ID).
		Int("total_score", result.TotalScore).
		Msg("Meeting scored")

	return score, nil
}

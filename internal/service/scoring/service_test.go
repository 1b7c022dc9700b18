package scoring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/andreav/meeting-pulse/internal/models"
	"github.com/andreav/meeting-pulse/pkg/logger"
	"github.com/andreav/meeting-pulse/test/mocks"
)

type trackerMock struct {
	calls []string
	err   error
}

func (t *trackerMock) RecordMeeting(_ context.Context, _ uint, meetingID string) error {
	t.calls = append(t.calls, meetingID)
	return t.err
}

func testMeeting() *models.Meeting {
	start := time.Date(2026, 1, 7, 10, 0, 0, 0, time.Local)
	return &models.Meeting{
		ID:           "evt-1",
		UserID:       7,
		Title:        "Storage migration planning review",
		Description:  "Agenda:\n- cutover steps\n- rollback plan",
		StartTime:    start,
		EndTime:      start.Add(45 * time.Minute),
		Participants: 6,
	}
}

func TestScoreMeeting(t *testing.T) {
	var stored *models.MeetingScore
	repo := &mocks.MockMeetingRepository{
		UpsertScoreFunc: func(score *models.MeetingScore) error {
			stored = score
			return nil
		},
	}
	tracker := &trackerMock{}
	svc := NewServiceWithInterfaces(repo, tracker, logger.New("error", "json", "stdout"))

	score, err := svc.ScoreMeeting(context.Background(), testMeeting(), "Action: document the cutover. Owner: Priya. Due by 2026-02-01.")
	if err != nil {
		t.Fatalf("ScoreMeeting() error = %v", err)
	}

	if stored == nil {
		t.Fatal("score was not persisted")
	}
	if score.MeetingID != "evt-1" {
		t.Errorf("MeetingID = %s, want evt-1", score.MeetingID)
	}
	if score.TimingScore != 20 {
		t.Errorf("TimingScore = %d, want 20 for a 45 minute meeting", score.TimingScore)
	}
	if score.ParticipantsScore != 20 {
		t.Errorf("ParticipantsScore = %d, want 20 for 6 participants", score.ParticipantsScore)
	}
	if score.AgendaScore == 0 {
		t.Error("AgendaScore = 0, bullet agenda should score")
	}
	wantTotal := score.AgendaScore + score.ParticipantsScore + score.TimingScore + score.ActionsScore + score.AttentionScore
	if score.TotalScore != wantTotal {
		t.Errorf("TotalScore = %d, want sum of sub-scores %d", score.TotalScore, wantTotal)
	}

	if len(tracker.calls) != 1 || tracker.calls[0] != "evt-1" {
		t.Errorf("progress tracker calls = %v, want [evt-1]", tracker.calls)
	}
}

func TestScoreMeeting_TrackerErrorIsNotFatal(t *testing.T) {
	repo := &mocks.MockMeetingRepository{}
	tracker := &trackerMock{err: errors.New("challenge lookup failed")}
	svc := NewServiceWithInterfaces(repo, tracker, logger.New("error", "json", "stdout"))

	if _, err := svc.ScoreMeeting(context.Background(), testMeeting(), ""); err != nil {
		t.Fatalf("ScoreMeeting() error = %v, tracker failures must not surface", err)
	}
}

func TestScoreMeeting_PersistenceErrorSurfaces(t *testing.T) {
	repo := &mocks.MockMeetingRepository{
		UpsertScoreFunc: func(*models.MeetingScore) error {
			return errors.New("db down")
		},
	}
	svc := NewServiceWithInterfaces(repo, nil, logger.New("error", "json", "stdout"))

	if _, err := svc.ScoreMeeting(context.Background(), testMeeting(), ""); err == nil {
		t.Fatal("ScoreMeeting() expected error when persistence fails")
	}
}

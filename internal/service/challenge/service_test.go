package challenge

import (
	"context"
	"testing"
	"time"

	"github.com/andreav/meeting-pulse/internal/models"
	"github.com/andreav/meeting-pulse/internal/service/capacity"
	"github.com/andreav/meeting-pulse/pkg/logger"
	"github.com/andreav/meeting-pulse/test/mocks"
)

func testLogger() *logger.Logger {
	return logger.New("error", "json", "stdout")
}

func TestGenerate_DefaultsToAgendaForNewUsers(t *testing.T) {
	var created *models.WeeklyChallenge
	challengeRepo := &mocks.MockChallengeRepository{
		CreateFunc: func(c *models.WeeklyChallenge) error {
			created = c
			return nil
		},
	}
	svc := NewServiceWithInterfaces(challengeRepo, &mocks.MockMeetingRepository{}, &mocks.MockAchievementRepository{}, 80, 14, testLogger())

	now := time.Date(2026, 1, 7, 12, 0, 0, 0, time.Local)
	got, err := svc.Generate(context.Background(), 7, now)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if created == nil {
		t.Fatal("challenge was not persisted")
	}
	if got.TargetCriteria != models.CriteriaAgenda {
		t.Errorf("TargetCriteria = %s, want agenda for a user with no scored meetings", got.TargetCriteria)
	}
	if got.Status != models.ChallengeStatusActive {
		t.Errorf("Status = %s, want active", got.Status)
	}
	if got.TargetPercentage != 80 {
		t.Errorf("TargetPercentage = %d, want 80", got.TargetPercentage)
	}
	wantWeek := time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local)
	if !got.WeekStartDate.Equal(wantWeek) {
		t.Errorf("WeekStartDate = %v, want %v", got.WeekStartDate, wantWeek)
	}
	if got.GoalDescription == "" {
		t.Error("GoalDescription is empty")
	}
}

func TestGenerate_ReturnsExistingChallenge(t *testing.T) {
	existing := &models.WeeklyChallenge{ID: 42, TargetCriteria: models.CriteriaTiming}
	challengeRepo := &mocks.MockChallengeRepository{
		GetForWeekFunc: func(uint, time.Time) (*models.WeeklyChallenge, error) {
			return existing, nil
		},
		CreateFunc: func(*models.WeeklyChallenge) error {
			t.Fatal("must not create a second challenge for the same week")
			return nil
		},
	}
	svc := NewServiceWithInterfaces(challengeRepo, &mocks.MockMeetingRepository{}, &mocks.MockAchievementRepository{}, 80, 14, testLogger())

	got, err := svc.Generate(context.Background(), 7, time.Now())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got.ID != 42 {
		t.Errorf("got challenge %d, want the existing one", got.ID)
	}
}

func TestGenerate_TargetsWeakestCriterion(t *testing.T) {
	meetings := []models.Meeting{{ID: "m1"}, {ID: "m2"}}
	scores := map[string]*models.MeetingScore{
		"m1": {MeetingID: "m1", AgendaScore: 18, ParticipantsScore: 16, TimingScore: 6, ActionsScore: 15, AttentionScore: 14},
		"m2": {MeetingID: "m2", AgendaScore: 20, ParticipantsScore: 18, TimingScore: 8, ActionsScore: 12, AttentionScore: 16},
	}
	meetingRepo := &mocks.MockMeetingRepository{
		GetByUserIDFunc: func(uint, *time.Time, *time.Time) ([]models.Meeting, error) {
			return meetings, nil
		},
		GetScoreFunc: func(meetingID string) (*models.MeetingScore, error) {
			return scores[meetingID], nil
		},
	}
	var created *models.WeeklyChallenge
	challengeRepo := &mocks.MockChallengeRepository{
		CreateFunc: func(c *models.WeeklyChallenge) error {
			created = c
			return nil
		},
	}
	svc := NewServiceWithInterfaces(challengeRepo, meetingRepo, &mocks.MockAchievementRepository{}, 80, 14, testLogger())

	_, err := svc.Generate(context.Background(), 7, time.Now())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if created.TargetCriteria != models.CriteriaTiming {
		t.Errorf("TargetCriteria = %s, want timing (lowest average)", created.TargetCriteria)
	}
}

func TestGenerate_TiedAveragesPickLaterCriterion(t *testing.T) {
	// Agenda and attention both average 6; the later of the two wins.
	meetings := []models.Meeting{{ID: "m1"}}
	scores := map[string]*models.MeetingScore{
		"m1": {MeetingID: "m1", AgendaScore: 6, ParticipantsScore: 16, TimingScore: 12, ActionsScore: 15, AttentionScore: 6},
	}
	meetingRepo := &mocks.MockMeetingRepository{
		GetByUserIDFunc: func(uint, *time.Time, *time.Time) ([]models.Meeting, error) {
			return meetings, nil
		},
		GetScoreFunc: func(meetingID string) (*models.MeetingScore, error) {
			return scores[meetingID], nil
		},
	}
	var created *models.WeeklyChallenge
	challengeRepo := &mocks.MockChallengeRepository{
		CreateFunc: func(c *models.WeeklyChallenge) error {
			created = c
			return nil
		},
	}
	svc := NewServiceWithInterfaces(challengeRepo, meetingRepo, &mocks.MockAchievementRepository{}, 80, 14, testLogger())

	_, err := svc.Generate(context.Background(), 7, time.Now())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if created.TargetCriteria != models.CriteriaAttention {
		t.Errorf("TargetCriteria = %s, want attention (later of the tied pair)", created.TargetCriteria)
	}
}

// activeChallenge returns a challenge for the week containing time.Now,
// which is where RecordMeeting looks for it.
func activeChallenge() *models.WeeklyChallenge {
	return &models.WeeklyChallenge{
		ID:                1,
		UserID:            7,
		WeekStartDate:     capacity.WeekStart(time.Now()),
		TargetCriteria:    models.CriteriaAgenda,
		TargetPercentage:  80,
		Status:            models.ChallengeStatusActive,
		CountedMeetingIDs: models.StringList{},
	}
}

func TestRecordMeeting_CountsPassesAndFailures(t *testing.T) {
	challenge := activeChallenge()
	var updated *models.WeeklyChallenge
	challengeRepo := &mocks.MockChallengeRepository{
		GetForWeekFunc: func(uint, time.Time) (*models.WeeklyChallenge, error) {
			return challenge, nil
		},
		UpdateFunc: func(c *models.WeeklyChallenge) error {
			updated = c
			return nil
		},
	}
	meetingRepo := &mocks.MockMeetingRepository{
		GetScoreFunc: func(meetingID string) (*models.MeetingScore, error) {
			if meetingID == "good" {
				return &models.MeetingScore{MeetingID: meetingID, AgendaScore: 18}, nil
			}
			return &models.MeetingScore{MeetingID: meetingID, AgendaScore: 5}, nil
		},
	}
	svc := NewServiceWithInterfaces(challengeRepo, meetingRepo, &mocks.MockAchievementRepository{}, 80, 14, testLogger())

	if err := svc.RecordMeeting(context.Background(), 7, "good"); err != nil {
		t.Fatalf("RecordMeeting() error = %v", err)
	}
	if updated.TotalMeetings != 1 || updated.MeetingsCompleted != 1 || updated.CurrentProgress != 100 {
		t.Errorf("after pass: %+v", updated)
	}

	if err := svc.RecordMeeting(context.Background(), 7, "bad"); err != nil {
		t.Fatalf("RecordMeeting() error = %v", err)
	}
	if updated.TotalMeetings != 2 || updated.MeetingsCompleted != 1 || updated.CurrentProgress != 50 {
		t.Errorf("after failure: %+v", updated)
	}
}

func TestRecordMeeting_Idempotent(t *testing.T) {
	challenge := activeChallenge()
	updates := 0
	challengeRepo := &mocks.MockChallengeRepository{
		GetForWeekFunc: func(uint, time.Time) (*models.WeeklyChallenge, error) {
			return challenge, nil
		},
		UpdateFunc: func(*models.WeeklyChallenge) error {
			updates++
			return nil
		},
	}
	meetingRepo := &mocks.MockMeetingRepository{
		GetScoreFunc: func(meetingID string) (*models.MeetingScore, error) {
			return &models.MeetingScore{MeetingID: meetingID, AgendaScore: 18}, nil
		},
	}
	svc := NewServiceWithInterfaces(challengeRepo, meetingRepo, &mocks.MockAchievementRepository{}, 80, 14, testLogger())

	for i := 0; i < 3; i++ {
		if err := svc.RecordMeeting(context.Background(), 7, "evt-1"); err != nil {
			t.Fatalf("RecordMeeting() error = %v", err)
		}
	}

	if updates != 1 {
		t.Errorf("updates = %d, want 1 (re-scores must not double count)", updates)
	}
	if challenge.TotalMeetings != 1 {
		t.Errorf("TotalMeetings = %d, want 1", challenge.TotalMeetings)
	}
}

func TestRecordMeeting_NoActiveChallenge(t *testing.T) {
	svc := NewServiceWithInterfaces(&mocks.MockChallengeRepository{}, &mocks.MockMeetingRepository{}, &mocks.MockAchievementRepository{}, 80, 14, testLogger())

	if err := svc.RecordMeeting(context.Background(), 7, "evt-1"); err != nil {
		t.Fatalf("RecordMeeting() error = %v, want silent no-op", err)
	}
}

func TestRecordMeeting_CompletesChallenge(t *testing.T) {
	challenge := activeChallenge()
	challengeRepo := &mocks.MockChallengeRepository{
		GetForWeekFunc: func(uint, time.Time) (*models.WeeklyChallenge, error) {
			return challenge, nil
		},
	}
	meetingRepo := &mocks.MockMeetingRepository{
		GetScoreFunc: func(meetingID string) (*models.MeetingScore, error) {
			return &models.MeetingScore{MeetingID: meetingID, AgendaScore: 18}, nil
		},
	}
	var earned *models.Achievement
	achievementRepo := &mocks.MockAchievementRepository{
		CreateFunc: func(a *models.Achievement) error {
			earned = a
			return nil
		},
	}
	svc := NewServiceWithInterfaces(challengeRepo, meetingRepo, achievementRepo, 80, 14, testLogger())

	// Four passing meetings are not enough.
	for i, id := range []string{"m1", "m2", "m3", "m4"} {
		if err := svc.RecordMeeting(context.Background(), 7, id); err != nil {
			t.Fatalf("RecordMeeting(%d) error = %v", i, err)
		}
	}
	if challenge.Status != models.ChallengeStatusActive {
		t.Fatalf("Status = %s after 4 meetings, want active", challenge.Status)
	}
	if earned != nil {
		t.Fatal("achievement granted too early")
	}

	// The fifth reaches the minimum with 100% progress.
	if err := svc.RecordMeeting(context.Background(), 7, "m5"); err != nil {
		t.Fatalf("RecordMeeting(m5) error = %v", err)
	}
	if challenge.Status != models.ChallengeStatusCompleted {
		t.Errorf("Status = %s, want completed", challenge.Status)
	}
	if earned == nil {
		t.Fatal("achievement missing")
	}
	if earned.Type != models.AchievementTypeChallengeComplete {
		t.Errorf("achievement type = %s", earned.Type)
	}
	if earned.Title != "Agenda Master" {
		t.Errorf("achievement title = %s, want Agenda Master", earned.Title)
	}

	// Completed challenges stop counting.
	if err := svc.RecordMeeting(context.Background(), 7, "m6"); err != nil {
		t.Fatalf("RecordMeeting(m6) error = %v", err)
	}
	if challenge.TotalMeetings != 5 {
		t.Errorf("TotalMeetings = %d, want 5 (completed challenge must not count more)", challenge.TotalMeetings)
	}
}

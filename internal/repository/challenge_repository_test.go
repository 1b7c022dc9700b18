package repository

import (
	"testing"
	"time"

	"github.com/andreav/meeting-pulse/internal/models"
)

func TestChallengeRepository_GetForWeek(t *testing.T) {
	db := setupTestDB(t)
	repo := NewChallengeRepository(db)
	user := createTestUser(t, db, "ursula")

	weekStart := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	missing, err := repo.GetForWeek(user.ID, weekStart)
	if err != nil {
		t.Fatalf("GetForWeek() error = %v", err)
	}
	if missing != nil {
		t.Errorf("GetForWeek() = %+v, want nil before creation", missing)
	}

	challenge := &models.WeeklyChallenge{
		UserID:            user.ID,
		WeekStartDate:     weekStart,
		TargetCriteria:    models.CriteriaAgenda,
		TargetPercentage:  80,
		Status:            models.ChallengeStatusActive,
		CountedMeetingIDs: models.StringList{},
	}
	if err := repo.Create(challenge); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.GetForWeek(user.ID, weekStart)
	if err != nil {
		t.Fatalf("GetForWeek() error = %v", err)
	}
	if got == nil || got.TargetCriteria != models.CriteriaAgenda {
		t.Errorf("GetForWeek() = %+v", got)
	}

	// A different week has no challenge.
	other, err := repo.GetForWeek(user.ID, weekStart.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("GetForWeek() error = %v", err)
	}
	if other != nil {
		t.Errorf("GetForWeek(next week) = %+v, want nil", other)
	}
}

func TestChallengeRepository_UpdateProgress(t *testing.T) {
	db := setupTestDB(t)
	repo := NewChallengeRepository(db)
	user := createTestUser(t, db, "ursula")

	weekStart := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	challenge := &models.WeeklyChallenge{
		UserID:            user.ID,
		WeekStartDate:     weekStart,
		TargetCriteria:    models.CriteriaTiming,
		TargetPercentage:  80,
		Status:            models.ChallengeStatusActive,
		CountedMeetingIDs: models.StringList{},
	}
	if err := repo.Create(challenge); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	challenge.TotalMeetings = 5
	challenge.MeetingsCompleted = 4
	challenge.CurrentProgress = 80
	challenge.Status = models.ChallengeStatusCompleted
	challenge.CountedMeetingIDs = models.StringList{"m1", "m2", "m3", "m4", "m5"}
	if err := repo.Update(challenge); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := repo.GetForWeek(user.ID, weekStart)
	if err != nil {
		t.Fatalf("GetForWeek() error = %v", err)
	}
	if got.Status != models.ChallengeStatusCompleted || got.CurrentProgress != 80 {
		t.Errorf("update lost: %+v", got)
	}
	if len(got.CountedMeetingIDs) != 5 || !got.CountedMeetingIDs.Contains("m3") {
		t.Errorf("CountedMeetingIDs = %v", got.CountedMeetingIDs)
	}
}

func TestAchievementRepository_ListByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAchievementRepository(db)
	user := createTestUser(t, db, "ursula")

	earlier := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	later := earlier.AddDate(0, 0, 7)

	for _, a := range []*models.Achievement{
		{UserID: user.ID, Type: models.AchievementTypeChallengeComplete, Title: "Agenda Master", EarnedAt: earlier},
		{UserID: user.ID, Type: models.AchievementTypeChallengeComplete, Title: "Time Keeper", EarnedAt: later},
	} {
		if err := repo.Create(a); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	got, err := repo.ListByUser(user.ID)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListByUser() returned %d, want 2", len(got))
	}
	// Newest first.
	if got[0].Title != "Time Keeper" {
		t.Errorf("ordering = %v then %v, want newest first", got[0].Title, got[1].Title)
	}
}

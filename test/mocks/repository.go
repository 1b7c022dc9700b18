package mocks

import (
	"time"

	"github.com/andreav/meeting-pulse/internal/models"
)

// MockMeetingRepository is a simple mock for meeting repository
type MockMeetingRepository struct {
	GetByIDFunc           func(id string) (*models.Meeting, error)
	GetByUserIDFunc       func(userID uint, start, end *time.Time) ([]models.Meeting, error)
	UpsertFunc            func(meeting *models.Meeting) error
	LinkDocumentFunc      func(meetingID, docID string) error
	GetScoreFunc          func(meetingID string) (*models.MeetingScore, error)
	UpsertScoreFunc       func(score *models.MeetingScore) error
	GetScoresByUserIDFunc func(userID uint, start, end *time.Time) ([]models.MeetingScore, error)
}

func (m *MockMeetingRepository) GetByID(id string) (*models.Meeting, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(id)
	}
	return nil, nil
}

func (m *MockMeetingRepository) GetByUserID(userID uint, start, end *time.Time) ([]models.Meeting, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(userID, start, end)
	}
	return []models.Meeting{}, nil
}

func (m *MockMeetingRepository) Upsert(meeting *models.Meeting) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(meeting)
	}
	return nil
}

func (m *MockMeetingRepository) LinkDocument(meetingID, docID string) error {
	if m.LinkDocumentFunc != nil {
		return m.LinkDocumentFunc(meetingID, docID)
	}
	return nil
}

func (m *MockMeetingRepository) GetScore(meetingID string) (*models.MeetingScore, error) {
	if m.GetScoreFunc != nil {
		return m.GetScoreFunc(meetingID)
	}
	return nil, nil
}

func (m *MockMeetingRepository) UpsertScore(score *models.MeetingScore) error {
	if m.UpsertScoreFunc != nil {
		return m.UpsertScoreFunc(score)
	}
	return nil
}

func (m *MockMeetingRepository) GetScoresByUserID(userID uint, start, end *time.Time) ([]models.MeetingScore, error) {
	if m.GetScoresByUserIDFunc != nil {
		return m.GetScoresByUserIDFunc(userID, start, end)
	}
	return []models.MeetingScore{}, nil
}

// MockTaskRepository is a simple mock for task repository
type MockTaskRepository struct {
	UpsertFunc         func(task *models.JiraTask) error
	ListByUserFunc     func(userID uint, status string) ([]models.JiraTask, error)
	ListOpenByUserFunc func(userID uint) ([]models.JiraTask, error)
}

func (m *MockTaskRepository) Upsert(task *models.JiraTask) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(task)
	}
	return nil
}

func (m *MockTaskRepository) ListByUser(userID uint, status string) ([]models.JiraTask, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(userID, status)
	}
	return []models.JiraTask{}, nil
}

func (m *MockTaskRepository) ListOpenByUser(userID uint) ([]models.JiraTask, error) {
	if m.ListOpenByUserFunc != nil {
		return m.ListOpenByUserFunc(userID)
	}
	return []models.JiraTask{}, nil
}

// MockCapacityRepository is a simple mock for capacity repository
type MockCapacityRepository struct {
	UpsertFunc     func(capacity *models.DailyCapacity) error
	GetByDateFunc  func(userID uint, date time.Time) (*models.DailyCapacity, error)
	GetForWeekFunc func(userID uint, weekStart time.Time) ([]models.DailyCapacity, error)
}

func (m *MockCapacityRepository) Upsert(capacity *models.DailyCapacity) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(capacity)
	}
	return nil
}

func (m *MockCapacityRepository) GetByDate(userID uint, date time.Time) (*models.DailyCapacity, error) {
	if m.GetByDateFunc != nil {
		return m.GetByDateFunc(userID, date)
	}
	return nil, nil
}

func (m *MockCapacityRepository) GetForWeek(userID uint, weekStart time.Time) ([]models.DailyCapacity, error) {
	if m.GetForWeekFunc != nil {
		return m.GetForWeekFunc(userID, weekStart)
	}
	return []models.DailyCapacity{}, nil
}

// MockPredictionRepository is a simple mock for prediction repository
type MockPredictionRepository struct {
	UpsertFunc       func(prediction *models.TaskCompletionPrediction) error
	DeleteByWeekFunc func(userID uint, weekStart time.Time) error
	GetByWeekFunc    func(userID uint, weekStart time.Time) ([]models.TaskCompletionPrediction, error)
}

func (m *MockPredictionRepository) Upsert(prediction *models.TaskCompletionPrediction) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(prediction)
	}
	return nil
}

func (m *MockPredictionRepository) DeleteByWeek(userID uint, weekStart time.Time) error {
	if m.DeleteByWeekFunc != nil {
		return m.DeleteByWeekFunc(userID, weekStart)
	}
	return nil
}

func (m *MockPredictionRepository) GetByWeek(userID uint, weekStart time.Time) ([]models.TaskCompletionPrediction, error) {
	if m.GetByWeekFunc != nil {
		return m.GetByWeekFunc(userID, weekStart)
	}
	return []models.TaskCompletionPrediction{}, nil
}

// MockChallengeRepository is a simple mock for weekly challenge repository
type MockChallengeRepository struct {
	GetForWeekFunc func(userID uint, weekStart time.Time) (*models.WeeklyChallenge, error)
	CreateFunc     func(challenge *models.WeeklyChallenge) error
	UpdateFunc     func(challenge *models.WeeklyChallenge) error
}

func (m *MockChallengeRepository) GetForWeek(userID uint, weekStart time.Time) (*models.WeeklyChallenge, error) {
	if m.GetForWeekFunc != nil {
		return m.GetForWeekFunc(userID, weekStart)
	}
	return nil, nil
}

func (m *MockChallengeRepository) Create(challenge *models.WeeklyChallenge) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(challenge)
	}
	return nil
}

func (m *MockChallengeRepository) Update(challenge *models.WeeklyChallenge) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(challenge)
	}
	return nil
}

// MockAchievementRepository is a simple mock for achievement repository
type MockAchievementRepository struct {
	CreateFunc     func(achievement *models.Achievement) error
	ListByUserFunc func(userID uint) ([]models.Achievement, error)
}

func (m *MockAchievementRepository) Create(achievement *models.Achievement) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(achievement)
	}
	return nil
}

func (m *MockAchievementRepository) ListByUser(userID uint) ([]models.Achievement, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(userID)
	}
	return []models.Achievement{}, nil
}

// MockSettingsRepository is a simple mock for user settings lookups
type MockSettingsRepository struct {
	GetSettingsFunc func(userID uint) (*models.UserSettings, error)
}

func (m *MockSettingsRepository) GetSettings(userID uint) (*models.UserSettings, error) {
	if m.GetSettingsFunc != nil {
		return m.GetSettingsFunc(userID)
	}
	return nil, nil
}

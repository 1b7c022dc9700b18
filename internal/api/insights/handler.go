// Package insights provides REST API handlers for meeting scores, daily
// capacity, weekly task predictions and challenge progress.
package insights

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/andreav/meeting-pulse/internal/models"
	"github.com/andreav/meeting-pulse/internal/repository"
	"github.com/andreav/meeting-pulse/internal/service/capacity"
	"github.com/andreav/meeting-pulse/internal/service/challenge"
	"github.com/andreav/meeting-pulse/internal/service/planner"
	syncsvc "github.com/andreav/meeting-pulse/internal/service/sync"
	"github.com/andreav/meeting-pulse/pkg/logger"
)

// PlannerService interface for capacity and prediction operations.
type PlannerService interface {
	CalculateDay(ctx context.Context, userID uint, date time.Time) (*models.DailyCapacity, error)
	EnsureWeek(ctx context.Context, userID uint, weekStart time.Time) ([]models.DailyCapacity, error)
	PredictWeek(ctx context.Context, userID uint, weekStart time.Time) (*capacity.WeeklyPrediction, error)
	GetPredictions(ctx context.Context, userID uint, weekStart time.Time) ([]models.TaskCompletionPrediction, error)
}

// ChallengeService interface for challenge operations.
type ChallengeService interface {
	Generate(ctx context.Context, userID uint, now time.Time) (*models.WeeklyChallenge, error)
}

// SyncService interface for data-source sync operations.
type SyncService interface {
	SyncMeetings(ctx context.Context, userID uint, timeMin, timeMax time.Time) (int, error)
	SyncTasks(ctx context.Context, userID uint) (int, error)
	LinkAndRescore(ctx context.Context, meetingID, docID, notes string) (*models.MeetingScore, error)
}

// MeetingReader interface for meeting and score queries.
type MeetingReader interface {
	GetByUserID(userID uint, start, end *time.Time) ([]models.Meeting, error)
	GetScore(meetingID string) (*models.MeetingScore, error)
	GetScoresByUserID(userID uint, start, end *time.Time) ([]models.MeetingScore, error)
}

// ChallengeReader interface for challenge and achievement queries.
type ChallengeReader interface {
	GetForWeek(userID uint, weekStart time.Time) (*models.WeeklyChallenge, error)
	ListByUser(userID uint) ([]models.Achievement, error)
}

// Handler handles insights API requests.
type Handler struct {
	plannerService   PlannerService
	challengeService ChallengeService
	syncService      SyncService
	meetings         MeetingReader
	challenges       ChallengeReader
	log              *logger.Logger
}

// challengeQueries pairs the two repositories behind ChallengeReader.
type challengeQueries struct {
	*repository.ChallengeRepository
	*repository.AchievementRepository
}

// NewHandler creates a new insights handler.
func NewHandler(
	plannerService *planner.Service,
	challengeService *challenge.Service,
	syncService *syncsvc.Service,
	meetingRepo *repository.MeetingRepository,
	challengeRepo *repository.ChallengeRepository,
	achievementRepo *repository.AchievementRepository,
	log *logger.Logger,
) *Handler {
	return &Handler{
		plannerService:   plannerService,
		challengeService: challengeService,
		syncService:      syncService,
		meetings:         meetingRepo,
		challenges:       challengeQueries{challengeRepo, achievementRepo},
		log:              log,
	}
}

// NewHandlerWithInterfaces creates a new insights handler with interface dependencies (useful for testing).
func NewHandlerWithInterfaces(
	plannerService PlannerService,
	challengeService ChallengeService,
	syncService SyncService,
	meetings MeetingReader,
	challenges ChallengeReader,
	log *logger.Logger,
) *Handler {
	return &Handler{
		plannerService:   plannerService,
		challengeService: challengeService,
		syncService:      syncService,
		meetings:         meetings,
		challenges:       challenges,
		log:              log,
	}
}

// RegisterRoutes attaches the insights endpoints under /api/v1.
func (h *Handler) RegisterRoutes(router gin.IRouter) {
	v1 := router.Group("/api/v1")

	v1.POST("/sync/meetings", h.SyncMeetings)
	v1.POST("/sync/tasks", h.SyncTasks)

	v1.GET("/meetings", h.ListMeetings)
	v1.POST("/meetings/:id/document", h.LinkDocument)

	v1.POST("/capacity/calculate", h.CalculateCapacity)
	v1.GET("/capacity/week", h.GetWeekCapacity)

	v1.POST("/predictions/calculate", h.CalculatePredictions)
	v1.GET("/predictions", h.GetPredictions)

	v1.POST("/challenges/generate", h.GenerateChallenge)
	v1.GET("/challenges/current", h.GetCurrentChallenge)
	v1.GET("/achievements", h.GetAchievements)

	v1.GET("/stats", h.GetStats)
}

// SyncMeetings pulls calendar events into local storage.
// POST /api/v1/sync/meetings?user_id=1&days=7.
func (h *Handler) SyncMeetings(c *gin.Context) {
	userID, err := h.parseUserID(c)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	days := 7
	if daysStr := c.Query("days"); daysStr != "" {
		days, err = strconv.Atoi(daysStr)
		if err != nil || days < 1 || days > 90 {
			h.errorResponse(c, http.StatusBadRequest, fmt.Sprintf("invalid days parameter: %s", daysStr))
			return
		}
	}

	now := time.Now()
	timeMin := now.AddDate(0, 0, -days)
	timeMax := now.AddDate(0, 0, days)

	synced, err := h.syncService.SyncMeetings(c.Request.Context(), userID, timeMin, timeMax)
	if err != nil {
		h.log.Error().Err(err).Uint("user_id", userID).Msg("Failed to sync meetings")
		h.errorResponse(c, http.StatusBadGateway, "Failed to sync calendar events")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id": userID,
		"synced":  synced,
	})
}

// SyncTasks pulls open JIRA issues into local storage.
// POST /api/v1/sync/tasks?user_id=1.
func (h *Handler) SyncTasks(c *gin.Context) {
	userID, err := h.parseUserID(c)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	synced, err := h.syncService.SyncTasks(c.Request.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Uint("user_id", userID).Msg("Failed to sync tasks")
		h.errorResponse(c, http.StatusBadGateway, "Failed to sync JIRA issues")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id": userID,
		"synced":  synced,
	})
}

// meetingWithScore is a meeting joined with its score for list responses.
type meetingWithScore struct {
	Meeting models.Meeting       `json:"meeting"`
	Score   *models.MeetingScore `json:"score,omitempty"`
}

// ListMeetings returns the user's meetings with their scores.
// GET /api/v1/meetings?user_id=1&from=2026-01-05&to=2026-01-12.
func (h *Handler) ListMeetings(c *gin.Context) {
	userID, err := h.parseUserID(c)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	from, to, err := h.parseDateRange(c)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	meetings, err := h.meetings.GetByUserID(userID, from, to)
	if err != nil {
		h.log.Error().Err(err).Uint("user_id", userID).Msg("Failed to list meetings")
		h.errorResponse(c, http.StatusInternalServerError, "Failed to retrieve meetings")
		return
	}

	result := make([]meetingWithScore, 0, len(meetings))
	for i := range meetings {
		entry := meetingWithScore{Meeting: meetings[i]}
		score, err := h.meetings.GetScore(meetings[i].ID)
		if err == nil && score != nil {
			entry.Score = score
		}
		result = append(result, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"meetings":     result,
		"total":        len(result),
		"generated_at": time.Now().UTC(),
	})
}

type linkDocumentRequest struct {
	DocID string `json:"doc_id"`
	Notes string `json:"notes"`
}

// LinkDocument attaches a notes document to a meeting and rescores it.
// POST /api/v1/meetings/:id/document.
func (h *Handler) LinkDocument(c *gin.Context) {
	meetingID := c.Param("id")
	if meetingID == "" {
		h.errorResponse(c, http.StatusBadRequest, "meeting ID is required")
		return
	}

	var req linkDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	score, err := h.syncService.LinkAndRescore(c.Request.Context(), meetingID, req.DocID, req.Notes)
	if err != nil {
		h.log.Error().Err(err).Str("meeting_id", meetingID).Msg("Failed to link document")
		h.errorResponse(c, http.StatusNotFound, "Meeting not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"meeting_id": meetingID,
		"score":      score,
	})
}

type calculateCapacityRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Date   string `json:"date"` // YYYY-MM-DD, defaults to today
}

// CalculateCapacity computes and stores a day's capacity.
// POST /api/v1/capacity/calculate.
func (h *Handler) CalculateCapacity(c *gin.Context) {
	var req calculateCapacityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "user_id is required")
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
		if err != nil {
			h.errorResponse(c, http.StatusBadRequest, fmt.Sprintf("invalid date: %s", req.Date))
			return
		}
		date = parsed
	}

	dayCapacity, err := h.plannerService.CalculateDay(c.Request.Context(), req.UserID, date)
	if err != nil {
		h.log.Error().Err(err).Uint("user_id", req.UserID).Msg("Failed to calculate capacity")
		h.errorResponse(c, http.StatusInternalServerError, "Failed to calculate capacity")
		return
	}

	c.JSON(http.StatusOK, gin.H{"capacity": dayCapacity})
}

// GetWeekCapacity returns the seven daily capacities of a week, computing
// any missing days.
// GET /api/v1/capacity/week?user_id=1&week_start=2026-01-05.
func (h *Handler) GetWeekCapacity(c *gin.Context) {
	userID, err := h.parseUserID(c)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	weekStart, err := h.parseWeekStart(c)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	capacities, err := h.plannerService.EnsureWeek(c.Request.Context(), userID, weekStart)
	if err != nil {
		h.log.Error().Err(err).Uint("user_id", userID).Msg("Failed to get week capacity")
		h.errorResponse(c, http.StatusInternalServerError, "Failed to retrieve week capacity")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"week_start": capacity.WeekStart(weekStart).Format("2006-01-02"),
		"days":       capacities,
	})
}

type calculatePredictionsRequest struct {
	UserID    uint   `json:"user_id" binding:"required"`
	WeekStart string `json:"week_start"` // YYYY-MM-DD, defaults to current week
}

// CalculatePredictions recomputes the weekly completion forecast.
// POST /api/v1/predictions/calculate.
func (h *Handler) CalculatePredictions(c *gin.Context) {
	var req calculatePredictionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "user_id is required")
		return
	}

	weekStart := capacity.WeekStart(time.Now())
	if req.WeekStart != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.WeekStart, time.Local)
		if err != nil {
			h.errorResponse(c, http.StatusBadRequest, fmt.Sprintf("invalid week_start: %s", req.WeekStart))
			return
		}
		weekStart = parsed
	}

	prediction, err := h.plannerService.PredictWeek(c.Request.Context(), req.UserID, weekStart)
	if err != nil {
		h.log.Error().Err(err).Uint("user_id", req.UserID).Msg("Failed to calculate predictions")
		h.errorResponse(c, http.StatusInternalServerError, "Failed to calculate predictions")
		return
	}

	c.JSON(http.StatusOK, gin.H{"prediction": prediction})
}

// GetPredictions returns the stored predictions for a week.
// GET /api/v1/predictions?user_id=1&week_start=2026-01-05.
func (h *Handler) GetPredictions(c *gin.Context) {
	userID, err := h.parseUserID(c)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	weekStart, err := h.parseWeekStart(c)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	predictions, err := h.plannerService.GetPredictions(c.Request.Context(), userID, weekStart)
	if err != nil {
		h.log.Error().Err(err).Uint("user_id", userID).Msg("Failed to get predictions")
		h.errorResponse(c, http.StatusInternalServerError, "Failed to retrieve predictions")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"week_start":  capacity.WeekStart(weekStart).Format("2006-01-02"),
		"predictions": predictions,
		"total":       len(predictions),
	})
}

type generateChallengeRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// GenerateChallenge ensures a challenge exists for the current week.
// POST /api/v1/challenges/generate.
func (h *Handler) GenerateChallenge(c *gin.Context) {
	var req generateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "user_id is required")
		return
	}

	ch, err := h.challengeService.Generate(c.Request.Context(), req.UserID, time.Now())
	if err != nil {
		h.log.Error().Err(err).Uint("user_id", req.UserID).Msg("Failed to generate challenge")
		h.errorResponse(c, http.StatusInternalServerError, "Failed to generate challenge")
		return
	}

	c.JSON(http.StatusOK, gin.H{"challenge": ch})
}

// GetCurrentChallenge returns the challenge for the current week, if any.
// GET /api/v1/challenges/current?user_id=1.
func (h *Handler) GetCurrentChallenge(c *gin.Context) {
	userID, err := h.parseUserID(c)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	ch, err := h.challenges.GetForWeek(userID, capacity.WeekStart(time.Now()))
	if err != nil {
		h.log.Error().Err(err).Uint("user_id", userID).Msg("Failed to get current challenge")
		h.errorResponse(c, http.StatusInternalServerError, "Failed to retrieve challenge")
		return
	}
	if ch == nil {
		h.errorResponse(c, http.StatusNotFound, "No challenge for the current week")
		return
	}

	c.JSON(http.StatusOK, gin.H{"challenge": ch})
}

// GetAchievements returns the user's earned achievements, newest first.
// GET /api/v1/achievements?user_id=1.
func (h *Handler) GetAchievements(c *gin.Context) {
	userID, err := h.parseUserID(c)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	achievements, err := h.challenges.ListByUser(userID)
	if err != nil {
		h.log.Error().Err(err).Uint("user_id", userID).Msg("Failed to get achievements")
		h.errorResponse(c, http.StatusInternalServerError, "Failed to retrieve achievements")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":      userID,
		"achievements": achievements,
		"total":        len(achievements),
	})
}

// GetStats returns aggregate meeting quality statistics for a user.
// GET /api/v1/stats?user_id=1&from=2026-01-01&to=2026-02-01.
func (h *Handler) GetStats(c *gin.Context) {
	userID, err := h.parseUserID(c)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	from, to, err := h.parseDateRange(c)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	scores, err := h.meetings.GetScoresByUserID(userID, from, to)
	if err != nil {
		h.log.Error().Err(err).Uint("user_id", userID).Msg("Failed to get scores for stats")
		h.errorResponse(c, http.StatusInternalServerError, "Failed to retrieve statistics")
		return
	}

	stats := gin.H{
		"user_id":        userID,
		"meetings_count": len(scores),
		"average_score":  0.0,
		"generated_at":   time.Now().UTC(),
	}
	if len(scores) > 0 {
		total := 0
		byCriteria := map[string]int{}
		for i := range scores {
			total += scores[i].TotalScore
			for _, criteria := range models.Criteria {
				byCriteria[criteria] += scores[i].CriteriaScore(criteria)
			}
		}
		avgByCriteria := map[string]float64{}
		for criteria, sum := range byCriteria {
			avgByCriteria[criteria] = float64(sum) / float64(len(scores))
		}
		stats["average_score"] = float64(total) / float64(len(scores))
		stats["average_by_criteria"] = avgByCriteria
	}

	c.JSON(http.StatusOK, stats)
}

// Helper functions

// parseUserID extracts and validates the user_id query parameter.
func (h *Handler) parseUserID(c *gin.Context) (uint, error) {
	idStr := c.Query("user_id")
	if idStr == "" {
		return 0, fmt.Errorf("user_id parameter is required")
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid user_id: %s", idStr)
	}
	return uint(id), nil
}

// parseWeekStart extracts the week_start query parameter, defaulting to the
// current week.
func (h *Handler) parseWeekStart(c *gin.Context) (time.Time, error) {
	weekStr := c.Query("week_start")
	if weekStr == "" {
		return capacity.WeekStart(time.Now()), nil
	}
	parsed, err := time.ParseInLocation("2006-01-02", weekStr, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid week_start: %s", weekStr)
	}
	return parsed, nil
}

// parseDateRange extracts the optional from/to query parameters.
func (h *Handler) parseDateRange(c *gin.Context) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if fromStr := c.Query("from"); fromStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", fromStr, time.Local)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid from date: %s", fromStr)
		}
		from = &parsed
	}
	if toStr := c.Query("to"); toStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", toStr, time.Local)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid to date: %s", toStr)
		}
		to = &parsed
	}
	return from, to, nil
}

// errorResponse sends a standardized error response.
func (h *Handler) errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"error":     message,
		"timestamp": time.Now().UTC(),
	})
}

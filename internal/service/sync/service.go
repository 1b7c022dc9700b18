// Package sync pulls meetings and tasks from the external data sources into
// local storage and triggers scoring for newly synced meetings.
package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/andreav/meeting-pulse/internal/calendar"
	"github.com/andreav/meeting-pulse/internal/config"
	"github.com/andreav/meeting-pulse/internal/docs"
	"github.com/andreav/meeting-pulse/internal/jira"
	"github.com/andreav/meeting-pulse/internal/models"
	"github.com/andreav/meeting-pulse/internal/repository"
	"github.com/andreav/meeting-pulse/internal/service/scoring"
	"github.com/andreav/meeting-pulse/pkg/logger"
)

// MeetingRepository interface for meeting persistence.
type MeetingRepository interface {
	GetByID(id string) (*models.Meeting, error)
	Upsert(meeting *models.Meeting) error
	LinkDocument(meetingID, docID string) error
}

// TaskRepository interface for task persistence.
type TaskRepository interface {
	Upsert(task *models.JiraTask) error
}

// SettingsRepository interface for user data-source credentials.
type SettingsRepository interface {
	GetSettings(userID uint) (*models.UserSettings, error)
}

// CalendarAPI is the calendar client surface used by the sync flow.
type CalendarAPI interface {
	ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]calendar.Event, error)
}

// JiraAPI is the JIRA client surface used by the sync flow.
type JiraAPI interface {
	Search(ctx context.Context, jql string, maxResults int) ([]jira.Issue, error)
}

// DocsAPI is the Google Docs client surface used when rescoring a meeting
// from its linked document.
type DocsAPI interface {
	GetDocumentText(ctx context.Context, documentID string) (string, error)
}

// Scorer scores a meeting after sync.
type Scorer interface {
	ScoreMeeting(ctx context.Context, meeting *models.Meeting, notes string) (*models.MeetingScore, error)
}

// Service runs the calendar and JIRA sync flows.
type Service struct {
	meetings MeetingRepository
	tasks    TaskRepository
	settings SettingsRepository
	scorer   Scorer
	cfg      *config.Config
	log      *logger.Logger

	// Client constructors, injected so tests can substitute fakes. Clients
	// are built fresh on every sync; credentials rotate underneath us.
	newCalendar func(accessToken string) CalendarAPI
	newJira     func(creds jira.Credentials) JiraAPI
	newDocs     func(accessToken string) DocsAPI
}

// NewService creates a new sync service.
func NewService(
	meetingRepo *repository.MeetingRepository,
	taskRepo *repository.TaskRepository,
	userRepo *repository.UserRepository,
	scorer *scoring.Service,
	cfg *config.Config,
	log *logger.Logger,
) *Service {
	s := NewServiceWithInterfaces(meetingRepo, taskRepo, userRepo, scorer, cfg, log)
	return s
}

// NewServiceWithInterfaces creates a new sync service with interface dependencies (useful for testing).
func NewServiceWithInterfaces(
	meetings MeetingRepository,
	tasks TaskRepository,
	settings SettingsRepository,
	scorer Scorer,
	cfg *config.Config,
	log *logger.Logger,
) *Service {
	return &Service{
		meetings: meetings,
		tasks:    tasks,
		settings: settings,
		scorer:   scorer,
		cfg:      cfg,
		log:      log,
		newCalendar: func(accessToken string) CalendarAPI {
			return calendar.NewClient(&cfg.Google, accessToken, log)
		},
		newJira: func(creds jira.Credentials) JiraAPI {
			return jira.NewClient(creds, log)
		},
		newDocs: func(accessToken string) DocsAPI {
			return docs.NewClient(&cfg.Google, accessToken, log)
		},
	}
}

// SyncMeetings pulls the user's calendar events for [timeMin, timeMax),
// upserts them as meetings and computes their initial score.
func (s *Service) SyncMeetings(ctx context.Context, userID uint, timeMin, timeMax time.Time) (int, error) {
	settings, err := s.settings.GetSettings(userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get user settings: %w", err)
	}
	if settings == nil || settings.GoogleAccessToken == "" {
		return 0, fmt.Errorf("google calendar not connected for user %d", userID)
	}

	events, err := s.newCalendar(settings.GoogleAccessToken).ListEvents(ctx, timeMin, timeMax)
	if err != nil {
		return 0, fmt.Errorf("failed to list calendar events: %w", err)
	}

	synced := 0
	for i := range events {
		event := &events[i]
		start, err := event.Start.Parse()
		if err != nil || start.IsZero() {
			continue // skip all-day or malformed entries
		}
		end, err := event.End.Parse()
		if err != nil || end.IsZero() || event.ID == "" || event.Summary == "" {
			continue
		}

		meeting := &models.Meeting{
			ID:           event.ID,
			UserID:       userID,
			Title:        event.Summary,
			Description:  event.Description,
			StartTime:    start,
			EndTime:      end,
			Participants: len(event.Attendees),
		}

		if err := s.meetings.Upsert(meeting); err != nil {
			return synced, fmt.Errorf("failed to upsert meeting %s: %w", event.ID, err)
		}

		if _, err := s.scorer.ScoreMeeting(ctx, meeting, ""); err != nil {
			return synced, fmt.Errorf("failed to score meeting %s: %w", event.ID, err)
		}

		synced++
	}

	s.log.Info().
		Uint("user_id", userID).
		Int("synced", synced).
		Msg("Calendar sync complete")

	return synced, nil
}

// SyncTasks pulls the user's open JIRA issues and upserts them as tasks.
// User credentials win over the configured fallbacks.
func (s *Service) SyncTasks(ctx context.Context, userID uint) (int, error) {
	settings, err := s.settings.GetSettings(userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get user settings: %w", err)
	}

	creds := jira.Credentials{
		Host:     s.cfg.Jira.Host,
		Email:    s.cfg.Jira.Email,
		APIToken: s.cfg.Jira.APIToken,
	}
	jql := s.cfg.Jira.JQLQuery
	if settings != nil {
		if settings.JiraHost != "" {
			creds.Host = settings.JiraHost
		}
		if settings.JiraEmail != "" {
			creds.Email = settings.JiraEmail
		}
		if settings.JiraAPIToken != "" {
			creds.APIToken = settings.JiraAPIToken
		}
		if settings.JiraJQLQuery != "" {
			jql = settings.JiraJQLQuery
		}
	}
	if creds.Email == "" || creds.APIToken == "" {
		return 0, fmt.Errorf("jira credentials not configured for user %d", userID)
	}

	issues, err := s.newJira(creds).Search(ctx, jql, 50)
	if err != nil {
		return 0, fmt.Errorf("failed to search jira issues: %w", err)
	}

	for i := range issues {
		task := issueToTask(userID, &issues[i])
		if err := s.tasks.Upsert(task); err != nil {
			return i, fmt.Errorf("failed to upsert task %s: %w", task.JiraKey, err)
		}
	}

	s.log.Info().
		Uint("user_id", userID).
		Int("synced", len(issues)).
		Msg("JIRA sync complete")

	return len(issues), nil
}

// LinkAndRescore attaches a notes document to a meeting and recomputes its
// score from the document's own text, fetched through the Google Docs API
// with the meeting owner's token. Explicitly supplied notes take precedence
// over the document fetch, and are the only evidence when no doc is linked.
func (s *Service) LinkAndRescore(ctx context.Context, meetingID, docID, notes string) (*models.MeetingScore, error) {
	meeting, err := s.meetings.GetByID(meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	if meeting == nil {
		return nil, fmt.Errorf("meeting %s not found", meetingID)
	}

	if docID != "" {
		if err := s.meetings.LinkDocument(meetingID, docID); err != nil {
			return nil, fmt.Errorf("failed to link document: %w", err)
		}
		meeting.DocID = docID

		if notes == "" {
			notes, err = s.fetchDocumentText(ctx, meeting.UserID, docID)
			if err != nil {
				return nil, err
			}
		}
	}

	return s.scorer.ScoreMeeting(ctx, meeting, notes)
}

// fetchDocumentText pulls the linked document's plain text with the user's
// current access token.
func (s *Service) fetchDocumentText(ctx context.Context, userID uint, docID string) (string, error) {
	settings, err := s.settings.GetSettings(userID)
	if err != nil {
		return "", fmt.Errorf("failed to get user settings: %w", err)
	}
	if settings == nil || settings.GoogleAccessToken == "" {
		return "", fmt.Errorf("google docs not connected for user %d", userID)
	}

	text, err := s.newDocs(settings.GoogleAccessToken).GetDocumentText(ctx, docID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch document %s: %w", docID, err)
	}
	return text, nil
}

// issueToTask maps a JIRA issue onto the local task model.
func issueToTask(userID uint, issue *jira.Issue) *models.JiraTask {
	task := &models.JiraTask{
		UserID:   userID,
		JiraKey:  issue.Key,
		JiraID:   issue.ID,
		Summary:  issue.Fields.Summary,
		Status:   "To Do",
		Priority: models.PriorityMedium,
		Assignee: "Unassigned",
		Labels:   models.StringList(issue.Fields.Labels),
	}

	if issue.Fields.Status != nil && issue.Fields.Status.Name != "" {
		task.Status = issue.Fields.Status.Name
	}
	if issue.Fields.Priority != nil && issue.Fields.Priority.Name != "" {
		task.Priority = issue.Fields.Priority.Name
	}
	if issue.Fields.Assignee != nil && issue.Fields.Assignee.DisplayName != "" {
		task.Assignee = issue.Fields.Assignee.DisplayName
	}
	if issue.Fields.Project != nil {
		task.ProjectKey = issue.Fields.Project.Key
	}
	if issue.Fields.TimeEstimate != nil && *issue.Fields.TimeEstimate > 0 {
		hours := float64(*issue.Fields.TimeEstimate) / 3600
		task.EstimateHours = &hours
	}
	if issue.Fields.DueDate != "" {
		if due, err := time.Parse("2006-01-02", issue.Fields.DueDate); err == nil {
			task.DueDate = &due
		}
	}

	return task
}

// SetClientFactories overrides the client constructors. Test hook.
func (s *Service) SetClientFactories(newCalendar func(string) CalendarAPI, newJira func(jira.Credentials) JiraAPI, newDocs func(string) DocsAPI) {
	if newCalendar != nil {
		s.newCalendar = newCalendar
	}
	if newJira != nil {
		s.newJira = newJira
	}
	if newDocs != nil {
		s.newDocs = newDocs
	}
}

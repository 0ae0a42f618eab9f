package service

import (
	"strings"
	"time"

	"smartedu_backend/internal/model"
	"smartedu_backend/internal/repository"
	"smartedu_backend/internal/util"

	"go.uber.org/zap"
)

type CalendarService struct {
	CalendarRepo *repository.CalendarRepository
	Logger       *zap.Logger
}

func NewCalendarService(calendarRepo *repository.CalendarRepository, logger *zap.Logger) *CalendarService {
	return &CalendarService{CalendarRepo: calendarRepo, Logger: logger}
}

type CreateEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	EventType   string    `json:"event_type"`
	Audience    string    `json:"audience"`
	Class       string    `json:"class"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	AllDay      bool      `json:"all_day"`
}

func (s *CalendarService) CreateEvent(claims *util.Claims, req *CreateEventRequest) (*model.CalendarEvent, error) {
	var missing []string
	if strings.TrimSpace(req.Title) == "" {
		missing = append(missing, "title")
	}
	if req.StartTime.IsZero() {
		missing = append(missing, "start_time")
	}
	if len(missing) > 0 {
		return nil, util.NewValidationError(missing...)
	}

	endTime := req.EndTime
	if endTime.IsZero() || endTime.Before(req.StartTime) {
		endTime = req.StartTime
	}

	audience := req.Audience
	if audience == "" {
		audience = model.AudienceAll
	}
	if audience == model.AudienceClass && req.Class == "" {
		return nil, util.NewValidationError("class")
	}

	eventType := req.EventType
	if eventType == "" {
		eventType = "event"
	}

	event := &model.CalendarEvent{
		SchoolID:    claims.SchoolID,
		CreatedBy:   claims.UserID,
		CreatorName: claims.Name,
		Title:       req.Title,
		Description: req.Description,
		EventType:   eventType,
		Audience:    audience,
		Class:       req.Class,
		StartTime:   req.StartTime,
		EndTime:     endTime,
		AllDay:      req.AllDay,
	}

	if err := s.CalendarRepo.Create(event); err != nil {
		return nil, err
	}

	s.Logger.Info("calendar event created",
		zap.String("event_id", event.ID),
		zap.String("audience", audience))

	return event, nil
}

// ListEvents returns the events in [from, to) the caller is allowed to see.
func (s *CalendarService) ListEvents(claims *util.Claims, from, to time.Time) ([]model.CalendarEvent, error) {
	events, err := s.CalendarRepo.ListRange(claims.SchoolID, from, to)
	if err != nil {
		return nil, err
	}

	visible := make([]model.CalendarEvent, 0, len(events))
	for _, e := range events {
		if e.VisibleTo(claims.Role, claims.Class) {
			visible = append(visible, e)
		}
	}
	return visible, nil
}

// UpcomingEvents returns the caller's next events within the coming month,
// capped at limit.
func (s *CalendarService) UpcomingEvents(claims *util.Claims, limit int) ([]model.CalendarEvent, error) {
	if limit <= 0 {
		limit = 5
	}

	now := time.Now()
	events, err := s.ListEvents(claims, now, now.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}
	if len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

func (s *CalendarService) EventStats(claims *util.Claims) ([]repository.EventTypeCount, error) {
	return s.CalendarRepo.CountByType(claims.SchoolID)
}

func (s *CalendarService) DeleteEvent(claims *util.Claims, id string) error {
	affected, err := s.CalendarRepo.Delete(id, claims.SchoolID, claims.UserID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return util.ErrNotFound
	}
	return nil
}

package event

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/Pavan8023/webibook-backend/internal/auditlog"
	"github.com/Pavan8023/webibook-backend/middleware"
	"github.com/Pavan8023/webibook-backend/utils"
)

const upcomingCacheKey = "webibook:events:upcoming"
const upcomingCacheTTL = 30 * time.Second

// Service wraps business logic for webinar events
type Service struct {
	Repo     *Repository
	AuditSvc auditlog.Service
}

// NewService initializes a new Service with audit logging
func NewService(r *Repository, auditSvc auditlog.Service) *Service {
	return &Service{
		Repo:     r,
		AuditSvc: auditSvc,
	}
}

// validateSchedule checks the string-encoded date/time/duration fields
func validateSchedule(date, timeOfDay, duration string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return errors.New("invalid date format. Use YYYY-MM-DD")
	}
	if _, err := time.Parse(TimeLayout, timeOfDay); err != nil {
		return errors.New("invalid time format. Use HH:MM:SS in 24-hour format")
	}
	minutes, err := strconv.Atoi(duration)
	if err != nil || minutes <= 0 {
		return errors.New("invalid duration. Use a positive number of minutes")
	}
	return nil
}

// ===========================
// 🎯 Create Event
func (s *Service) CreateEvent(req *CreateEventRequest, accessContext middleware.AccessContext, ip string) (*Event, error) {
	if !accessContext.CanWrite() || !accessContext.IsHostOrAdmin() {
		s.AuditSvc.LogAction(
			context.Background(),
			&accessContext.UserID,
			nil,
			"EVENT_CREATED",
			map[string]interface{}{
				"title": req.Title,
				"error": "write access denied",
			},
			ip,
			"failure",
		)
		return nil, errors.New("write access denied")
	}

	if err := validateSchedule(req.Date, req.Time, req.Duration); err != nil {
		s.AuditSvc.LogAction(
			context.Background(),
			&accessContext.UserID,
			nil,
			"EVENT_CREATED",
			map[string]interface{}{
				"title": req.Title,
				"error": err.Error(),
			},
			ip,
			"failure",
		)
		return nil, err
	}

	// Hosts create events as upcoming; the status sweep owns all later transitions
	event := &Event{
		HostID:        accessContext.UserID,
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		CoverImageURL: req.CoverImageURL,
		MeetingURL:    req.MeetingURL,
		Capacity:      req.Capacity,
		Status:        StatusUpcoming,
		Date:          req.Date,
		Time:          req.Time,
		Duration:      req.Duration,
	}

	if err := s.Repo.CreateEvent(event); err != nil {
		s.AuditSvc.LogAction(
			context.Background(),
			&accessContext.UserID,
			nil,
			"EVENT_CREATED",
			map[string]interface{}{
				"title": req.Title,
				"error": err.Error(),
			},
			ip,
			"failure",
		)
		return nil, err
	}

	s.AuditSvc.LogAction(
		context.Background(),
		&accessContext.UserID,
		&event.ID,
		"EVENT_CREATED",
		map[string]interface{}{
			"event_id": event.ID,
			"title":    event.Title,
			"category": event.Category,
			"date":     event.Date,
			"time":     event.Time,
			"duration": event.Duration,
		},
		ip,
		"success",
	)

	utils.CacheDelete(context.Background(), upcomingCacheKey)

	return event, nil
}

// ===========================
// 🔍 Get Event by ID
func (s *Service) GetEventByID(id uint) (*Event, error) {
	return s.Repo.GetEventByID(id)
}

// ===========================
// 📆 Get Upcoming Events (Redis-cached discovery listing)
func (s *Service) GetUpcomingEvents(ctx context.Context) ([]Event, error) {
	var cached []Event
	if hit, err := utils.CacheGetJSON(ctx, upcomingCacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	events, err := s.Repo.GetUpcomingEvents()
	if err != nil {
		return nil, err
	}

	_ = utils.CacheSetJSON(ctx, upcomingCacheKey, events, upcomingCacheTTL)

	return events, nil
}

// ===========================
// 📄 List Events with Pagination & Search
func (s *Service) ListEvents(limit, offset int, search, category string, status Status) ([]Event, error) {
	if status != "" && !status.IsValid() {
		return nil, errors.New("invalid status filter")
	}
	return s.Repo.ListEvents(limit, offset, search, category, status)
}

// ===========================
// 📄 List a host's own events
func (s *Service) ListEventsByHost(accessContext middleware.AccessContext, limit, offset int) ([]Event, error) {
	if !accessContext.IsHostOrAdmin() {
		return nil, errors.New("read access denied")
	}
	return s.Repo.ListEventsByHost(accessContext.UserID, limit, offset)
}

// ===========================
// 📊 Host Dashboard Stats
func (s *Service) GetEventStats(accessContext middleware.AccessContext) (*EventStatsResponse, error) {
	if !accessContext.IsHostOrAdmin() {
		return nil, errors.New("read access denied")
	}
	return s.Repo.GetEventStats(accessContext.UserID)
}

// ===========================
// 🛠 Update Event (with ownership check and audit logging)
func (s *Service) UpdateEvent(id uint, req *UpdateEventRequest, accessContext middleware.AccessContext, ip string) error {
	if !accessContext.CanWrite() {
		s.AuditSvc.LogAction(
			context.Background(),
			&accessContext.UserID,
			&id,
			"EVENT_UPDATED",
			map[string]interface{}{"event_id": id, "error": "write access denied"},
			ip,
			"failure",
		)
		return errors.New("write access denied")
	}

	event, err := s.Repo.GetEventByID(id)
	if err != nil {
		s.AuditSvc.LogAction(
			context.Background(),
			&accessContext.UserID,
			&id,
			"EVENT_UPDATED",
			map[string]interface{}{"event_id": id, "error": "event not found"},
			ip,
			"failure",
		)
		return err
	}

	if event.HostID != accessContext.UserID && accessContext.RoleName != middleware.RoleSuperAdmin {
		s.AuditSvc.LogAction(
			context.Background(),
			&accessContext.UserID,
			&id,
			"EVENT_UPDATED",
			map[string]interface{}{
				"event_id":    id,
				"event_title": event.Title,
				"error":       "unauthorized access",
			},
			ip,
			"failure",
		)
		return errors.New("unauthorized: cannot update this event")
	}

	if err := validateSchedule(req.Date, req.Time, req.Duration); err != nil {
		s.AuditSvc.LogAction(
			context.Background(),
			&accessContext.UserID,
			&id,
			"EVENT_UPDATED",
			map[string]interface{}{"event_id": id, "error": err.Error()},
			ip,
			"failure",
		)
		return err
	}

	originalTitle := event.Title
	originalDate := event.Date

	event.Title = req.Title
	event.Description = req.Description
	event.Category = req.Category
	event.CoverImageURL = req.CoverImageURL
	event.MeetingURL = req.MeetingURL
	event.Capacity = req.Capacity
	event.Date = req.Date
	event.Time = req.Time
	event.Duration = req.Duration
	// Status is never touched here: only the sweep advances it

	if err := s.Repo.UpdateEvent(event); err != nil {
		s.AuditSvc.LogAction(
			context.Background(),
			&accessContext.UserID,
			&id,
			"EVENT_UPDATED",
			map[string]interface{}{
				"event_id":    id,
				"event_title": originalTitle,
				"error":       err.Error(),
			},
			ip,
			"failure",
		)
		return err
	}

	changes := make(map[string]interface{})
	if originalTitle != event.Title {
		changes["title_changed"] = map[string]string{"from": originalTitle, "to": event.Title}
	}
	if originalDate != event.Date {
		changes["date_changed"] = map[string]string{"from": originalDate, "to": event.Date}
	}

	s.AuditSvc.LogAction(
		context.Background(),
		&accessContext.UserID,
		&event.ID,
		"EVENT_UPDATED",
		map[string]interface{}{
			"event_id":    event.ID,
			"event_title": event.Title,
			"changes":     changes,
		},
		ip,
		"success",
	)

	utils.CacheDelete(context.Background(), upcomingCacheKey)

	return nil
}

// ===========================
// ❌ Delete Event (with ownership check and audit logging)
func (s *Service) DeleteEvent(id uint, accessContext middleware.AccessContext, ip string) error {
	if !accessContext.CanWrite() {
		s.AuditSvc.LogAction(
			context.Background(),
			&accessContext.UserID,
			&id,
			"EVENT_DELETED",
			map[string]interface{}{"event_id": id, "error": "write access denied"},
			ip,
			"failure",
		)
		return errors.New("write access denied")
	}

	event, err := s.Repo.GetEventByID(id)
	if err != nil {
		s.AuditSvc.LogAction(
			context.Background(),
			&accessContext.UserID,
			&id,
			"EVENT_DELETED",
			map[string]interface{}{"event_id": id, "error": "event not found"},
			ip,
			"failure",
		)
		return err
	}

	if event.HostID != accessContext.UserID && accessContext.RoleName != middleware.RoleSuperAdmin {
		s.AuditSvc.LogAction(
			context.Background(),
			&accessContext.UserID,
			&id,
			"EVENT_DELETED",
			map[string]interface{}{
				"event_id":    id,
				"event_title": event.Title,
				"error":       "unauthorized access",
			},
			ip,
			"failure",
		)
		return errors.New("unauthorized: cannot delete this event")
	}

	eventTitle := event.Title

	if err := s.Repo.DeleteEvent(id, event.HostID); err != nil {
		s.AuditSvc.LogAction(
			context.Background(),
			&accessContext.UserID,
			&id,
			"EVENT_DELETED",
			map[string]interface{}{
				"event_id":    id,
				"event_title": eventTitle,
				"error":       err.Error(),
			},
			ip,
			"failure",
		)
		return err
	}

	s.AuditSvc.LogAction(
		context.Background(),
		&accessContext.UserID,
		&id,
		"EVENT_DELETED",
		map[string]interface{}{
			"event_id":    id,
			"event_title": eventTitle,
		},
		ip,
		"success",
	)

	utils.CacheDelete(context.Background(), upcomingCacheKey)

	return nil
}

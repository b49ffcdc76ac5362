package registration

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Pavan8023/webibook-backend/internal/auditlog"
	"github.com/Pavan8023/webibook-backend/internal/event"
	"github.com/Pavan8023/webibook-backend/middleware"
	"github.com/Pavan8023/webibook-backend/utils"
)

// Service wraps registration business logic
type Service struct {
	Repo     *Repository
	EventSvc *event.Service
	AuditSvc auditlog.Service
}

func NewService(r *Repository, eventSvc *event.Service, auditSvc auditlog.Service) *Service {
	return &Service{
		Repo:     r,
		EventSvc: eventSvc,
		AuditSvc: auditSvc,
	}
}

// ===========================
// 🎯 Register for an event
func (s *Service) Register(ctx context.Context, eventID uint, accessContext middleware.AccessContext, email, ip string) (*Registration, error) {
	ev, err := s.EventSvc.GetEventByID(eventID)
	if err != nil {
		return nil, errors.New("event not found")
	}

	if ev.Status == event.StatusPast {
		return nil, errors.New("cannot register for a past event")
	}

	// Duplicate check; a cancelled registration may be re-confirmed
	existing, err := s.Repo.FindByEventAndUser(eventID, accessContext.UserID)
	if err == nil {
		if existing.Status == StatusConfirmed {
			return nil, errors.New("already registered for this event")
		}
		existing.Status = StatusConfirmed
		if err := s.Repo.DB.Save(existing).Error; err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Capacity enforcement (0 = unlimited)
	if ev.Capacity > 0 {
		confirmed, err := s.Repo.CountConfirmed(eventID)
		if err != nil {
			return nil, err
		}
		if confirmed >= ev.Capacity {
			return nil, errors.New("event is fully booked")
		}
	}

	reg := &Registration{
		EventID:  eventID,
		UserID:   accessContext.UserID,
		JoinCode: uuid.NewString(),
		Status:   StatusConfirmed,
	}

	if err := s.Repo.Create(reg); err != nil {
		s.AuditSvc.LogAction(ctx, &accessContext.UserID, &eventID, "REGISTRATION_CREATED",
			map[string]interface{}{"error": err.Error()}, ip, "failure")
		return nil, err
	}

	s.AuditSvc.LogAction(ctx, &accessContext.UserID, &eventID, "REGISTRATION_CREATED",
		map[string]interface{}{"registration_id": reg.ID, "event_title": ev.Title}, ip, "success")

	utils.PublishBusMessage(ctx, utils.BusMessage{
		Type:    "REGISTRATION_CREATED",
		EventID: eventID,
		UserID:  accessContext.UserID,
		Payload: map[string]interface{}{"title": ev.Title},
	})

	// Confirmation email is best-effort
	if email != "" {
		_ = utils.SendRegistrationConfirmation(email, ev.Title, reg.JoinCode)
	}

	return reg, nil
}

// ===========================
// ❌ Cancel a registration
func (s *Service) Cancel(ctx context.Context, eventID uint, accessContext middleware.AccessContext, ip string) error {
	reg, err := s.Repo.FindByEventAndUser(eventID, accessContext.UserID)
	if err != nil {
		return errors.New("registration not found")
	}
	if reg.Status == StatusCancelled {
		return errors.New("registration already cancelled")
	}

	if err := s.Repo.Cancel(reg); err != nil {
		return err
	}

	s.AuditSvc.LogAction(ctx, &accessContext.UserID, &eventID, "REGISTRATION_CANCELLED",
		map[string]interface{}{"registration_id": reg.ID}, ip, "success")

	return nil
}

// ===========================
// 📄 List attendees (host-owned events only)
func (s *Service) ListAttendees(eventID uint, accessContext middleware.AccessContext) ([]AttendeeRow, error) {
	ev, err := s.EventSvc.GetEventByID(eventID)
	if err != nil {
		return nil, errors.New("event not found")
	}

	if ev.HostID != accessContext.UserID && accessContext.RoleName != middleware.RoleSuperAdmin {
		return nil, errors.New("unauthorized: not your event")
	}

	return s.Repo.ListAttendeesByEvent(eventID)
}

// ===========================
// 📄 A user's own registrations
func (s *Service) MyRegistrations(accessContext middleware.AccessContext) ([]Registration, error) {
	return s.Repo.ListByUser(accessContext.UserID)
}

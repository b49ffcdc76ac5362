package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/Pavan8023/webibook-backend/internal/event"
	"github.com/Pavan8023/webibook-backend/utils"
)

// RegistrantSource yields the confirmed attendee IDs for an event. Satisfied
// by the registration repository; kept as an interface to avoid a package
// cycle.
type RegistrantSource interface {
	ConfirmedUserIDs(eventID uint) ([]uint, error)
}

// HostSource yields the host user ID for an event.
type HostSource interface {
	GetEventByID(id uint) (*event.Event, error)
}

type Service interface {
	// In-app notifications
	CreateInApp(ctx context.Context, userID uint, eventID *uint, title, message, category string) error
	ListInAppByUser(ctx context.Context, userID uint, limit int) ([]InAppNotification, error)
	MarkInAppAsRead(ctx context.Context, id, userID uint) error

	// FCM device token management
	RegisterDeviceToken(ctx context.Context, userID uint, deviceToken, deviceType, deviceName string) error
	RemoveDeviceToken(ctx context.Context, userID uint, deviceToken string) error

	// Fan-out used by the status sweep
	NotifyEventLive(ctx context.Context, ev event.Event)

	// Fan-out used by the Kafka consumer
	NotifyHostOfRegistration(ctx context.Context, eventID, attendeeID uint, title string)
	NotifyHostEventLive(ctx context.Context, eventID uint, title string)
}

type service struct {
	repo        Repository
	registrants RegistrantSource
	hosts       HostSource
}

func NewService(repo Repository, registrants RegistrantSource, hosts HostSource) Service {
	return &service{
		repo:        repo,
		registrants: registrants,
		hosts:       hosts,
	}
}

func (s *service) CreateInApp(ctx context.Context, userID uint, eventID *uint, title, message, category string) error {
	return s.repo.CreateInApp(ctx, &InAppNotification{
		UserID:   userID,
		EventID:  eventID,
		Title:    title,
		Message:  message,
		Category: category,
	})
}

func (s *service) ListInAppByUser(ctx context.Context, userID uint, limit int) ([]InAppNotification, error) {
	return s.repo.ListInAppByUser(ctx, userID, limit)
}

func (s *service) MarkInAppAsRead(ctx context.Context, id, userID uint) error {
	return s.repo.MarkInAppAsRead(ctx, id, userID)
}

func (s *service) RegisterDeviceToken(ctx context.Context, userID uint, deviceToken, deviceType, deviceName string) error {
	return s.repo.UpsertDeviceToken(ctx, &FCMDeviceToken{
		UserID:      userID,
		DeviceToken: deviceToken,
		DeviceType:  deviceType,
		DeviceName:  deviceName,
	})
}

func (s *service) RemoveDeviceToken(ctx context.Context, userID uint, deviceToken string) error {
	return s.repo.DeactivateDeviceToken(ctx, userID, deviceToken)
}

// NotifyEventLive fans out "webinar is live" to every confirmed registrant.
// Everything here is best-effort: the status sweep must never fail because a
// notification could not be delivered.
func (s *service) NotifyEventLive(ctx context.Context, ev event.Event) {
	userIDs, err := s.registrants.ConfirmedUserIDs(ev.ID)
	if err != nil {
		log.Printf("⚠️ Live fan-out: registrant lookup failed for event %d: %v", ev.ID, err)
		return
	}
	if len(userIDs) == 0 {
		return
	}

	title := "Webinar is live"
	message := fmt.Sprintf("%q has started. Join now!", ev.Title)

	for _, uid := range userIDs {
		if err := s.CreateInApp(ctx, uid, &ev.ID, title, message, "event"); err != nil {
			log.Printf("⚠️ Live fan-out: in-app create failed for user %d: %v", uid, err)
		}
	}

	s.pushToUsers(ctx, userIDs, &ev.ID, title, message)
}

// NotifyHostOfRegistration tells the host a seat was taken.
func (s *service) NotifyHostOfRegistration(ctx context.Context, eventID, attendeeID uint, title string) {
	ev, err := s.hosts.GetEventByID(eventID)
	if err != nil {
		log.Printf("⚠️ Registration fan-out: event %d lookup failed: %v", eventID, err)
		return
	}

	message := fmt.Sprintf("New registration for %q", title)
	if err := s.CreateInApp(ctx, ev.HostID, &eventID, "New registration", message, "registration"); err != nil {
		log.Printf("⚠️ Registration fan-out: in-app create failed: %v", err)
	}
}

// NotifyHostEventLive tells the host their webinar just went live.
func (s *service) NotifyHostEventLive(ctx context.Context, eventID uint, title string) {
	ev, err := s.hosts.GetEventByID(eventID)
	if err != nil {
		log.Printf("⚠️ Live fan-out: event %d lookup failed: %v", eventID, err)
		return
	}

	message := fmt.Sprintf("Your webinar %q is now live", title)
	if err := s.CreateInApp(ctx, ev.HostID, &eventID, "Webinar live", message, "event"); err != nil {
		log.Printf("⚠️ Live fan-out: host in-app create failed: %v", err)
	}
}

// pushToUsers sends an FCM multicast and records it in the notification log.
func (s *service) pushToUsers(ctx context.Context, userIDs []uint, eventID *uint, title, body string) {
	if !utils.IsFCMEnabled() {
		return
	}

	tokens, err := s.repo.ActiveTokensForUsers(ctx, userIDs)
	if err != nil {
		log.Printf("⚠️ Push: token lookup failed: %v", err)
		return
	}
	if len(tokens) == 0 {
		return
	}

	recipients, _ := json.Marshal(tokens)
	logEntry := &NotificationLog{
		EventID:    eventID,
		Channel:    "push",
		Subject:    title,
		Body:       body,
		Recipients: recipients,
		Status:     "pending",
	}
	if err := s.repo.CreateLog(ctx, logEntry); err != nil {
		log.Printf("⚠️ Push: log create failed: %v", err)
	}

	invalid, err := utils.SendPushToTokens(ctx, tokens, title, body, map[string]string{
		"category": "event",
	})
	if err != nil {
		msg := err.Error()
		_ = s.repo.UpdateLogStatus(ctx, logEntry.ID, "failed", &msg)
		return
	}

	_ = s.repo.UpdateLogStatus(ctx, logEntry.ID, "sent", nil)

	if len(invalid) > 0 {
		_ = s.repo.DeactivateTokens(ctx, invalid)
	}
}

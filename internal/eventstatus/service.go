package eventstatus

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Pavan8023/webibook-backend/internal/auditlog"
	"github.com/Pavan8023/webibook-backend/internal/event"
	"github.com/Pavan8023/webibook-backend/utils"
)

// ErrInternal is the only error callers of Sweep ever see. Root causes are
// logged server-side and never returned across the API boundary.
var ErrInternal = errors.New("internal error")

// SweepResult summarizes one full sweep across both phases.
type SweepResult struct {
	Success bool `json:"success"`
	Updated int  `json:"updated"`
}

// LiveNotifier is told about events that just went live so registrants can be
// pinged. Failures must not fail the sweep.
type LiveNotifier interface {
	NotifyEventLive(ctx context.Context, ev event.Event)
}

// Service advances event lifecycle statuses to match wall-clock time.
//
// Phase 1 promotes upcoming events whose date and time-of-day have both
// passed to live. Phase 2 retires live events whose end instant has strictly
// passed. Phase 1 completes all its writes before phase 2 reads, one write at
// a time, so an event created entirely in the past still passes through live
// within a single sweep rather than jumping straight to past.
type Service struct {
	Repo     Repository
	AuditSvc auditlog.Service
	Notifier LiveNotifier

	// now and loc are swappable for tests
	now func() time.Time
	loc *time.Location
}

func NewService(repo Repository, auditSvc auditlog.Service) *Service {
	return &Service{
		Repo:     repo,
		AuditSvc: auditSvc,
		now:      time.Now,
		loc:      time.Local,
	}
}

// WithClock overrides the time source, used by tests and kept out of the
// constructor signature.
func (s *Service) WithClock(now func() time.Time, loc *time.Location) *Service {
	s.now = now
	s.loc = loc
	return s
}

// Sweep runs both transition phases once and reports how many records moved.
// Re-running with no wall-clock advance is a no-op: promoted records no
// longer match their phase's filter.
func (s *Service) Sweep(ctx context.Context) (SweepResult, error) {
	now := s.now().In(s.loc)
	today := now.Format(event.DateLayout)
	timeOfDay := now.Format(event.TimeLayout)

	updated := 0

	// Phase 1: upcoming → live.
	// The date and time-of-day filters are applied independently, matching
	// how events are stored and displayed. An event on a past date with a
	// later time-of-day than "now" is picked up by a later sweep once the
	// clock passes its time-of-day.
	due, err := s.Repo.DueUpcoming(ctx, today, timeOfDay)
	if err != nil {
		log.Printf("❌ Status sweep: phase 1 query failed: %v", err)
		return SweepResult{}, ErrInternal
	}

	for _, ev := range due {
		ok, err := s.Repo.AdvanceStatus(ctx, ev.ID, event.StatusUpcoming, event.StatusLive)
		if err != nil {
			log.Printf("❌ Status sweep: promote event %d to live failed: %v", ev.ID, err)
			return SweepResult{}, ErrInternal
		}
		if !ok {
			continue
		}
		updated++

		ev.Status = event.StatusLive
		if s.Notifier != nil {
			s.Notifier.NotifyEventLive(ctx, ev)
		}
		utils.PublishBusMessage(ctx, utils.BusMessage{
			Type:    "EVENT_LIVE",
			EventID: ev.ID,
			Payload: map[string]interface{}{"title": ev.Title},
		})
	}

	// Phase 2: live → past. Re-reads after phase 1, so an event whose whole
	// window already passed goes upcoming→live→past in this same sweep.
	live, err := s.Repo.Live(ctx)
	if err != nil {
		log.Printf("❌ Status sweep: phase 2 query failed: %v", err)
		return SweepResult{}, ErrInternal
	}

	for _, ev := range live {
		end, err := ev.EndInstant(s.loc)
		if err != nil {
			// A malformed schedule on one record must not stall every other
			// transition; leave it live and let the host fix the data.
			log.Printf("⚠️ Status sweep: skipping event %d: %v", ev.ID, err)
			continue
		}
		if !now.After(end) {
			continue
		}

		ok, err := s.Repo.AdvanceStatus(ctx, ev.ID, event.StatusLive, event.StatusPast)
		if err != nil {
			log.Printf("❌ Status sweep: retire event %d to past failed: %v", ev.ID, err)
			return SweepResult{}, ErrInternal
		}
		if ok {
			updated++
		}
	}

	if s.AuditSvc != nil && updated > 0 {
		_ = s.AuditSvc.LogAction(ctx, nil, nil, "EVENT_STATUS_SWEEP",
			map[string]interface{}{"updated": updated}, "", "success")
	}

	return SweepResult{Success: true, Updated: updated}, nil
}

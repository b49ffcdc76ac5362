package eventstatus

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pavan8023/webibook-backend/internal/auditlog"
	"github.com/Pavan8023/webibook-backend/internal/event"
)

// fakeRepository is an in-memory store with the same filtering and guarded
// write semantics as the real one.
type fakeRepository struct {
	mu     sync.Mutex
	events map[uint]*event.Event

	dueErr     error
	liveErr    error
	advanceErr error

	// onDue, when set, observes every phase 1 read.
	onDue func()
}

func newFakeRepository(events ...event.Event) *fakeRepository {
	r := &fakeRepository{events: make(map[uint]*event.Event)}
	for i := range events {
		ev := events[i]
		r.events[ev.ID] = &ev
	}
	return r
}

func (r *fakeRepository) DueUpcoming(_ context.Context, today, timeOfDay string) ([]event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.onDue != nil {
		r.onDue()
	}
	if r.dueErr != nil {
		return nil, r.dueErr
	}
	var out []event.Event
	for _, ev := range r.events {
		if ev.Status == event.StatusUpcoming && ev.Date <= today && ev.Time <= timeOfDay {
			out = append(out, *ev)
		}
	}
	return out, nil
}

func (r *fakeRepository) Live(_ context.Context) ([]event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.liveErr != nil {
		return nil, r.liveErr
	}
	var out []event.Event
	for _, ev := range r.events {
		if ev.Status == event.StatusLive {
			out = append(out, *ev)
		}
	}
	return out, nil
}

func (r *fakeRepository) AdvanceStatus(_ context.Context, eventID uint, from, to event.Status) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.advanceErr != nil {
		return false, r.advanceErr
	}
	ev, ok := r.events[eventID]
	if !ok || ev.Status != from {
		return false, nil
	}
	ev.Status = to
	return true, nil
}

func (r *fakeRepository) status(id uint) event.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[id].Status
}

// fakeNotifier records which events were announced as live.
type fakeNotifier struct {
	mu    sync.Mutex
	lives []uint
}

func (n *fakeNotifier) NotifyEventLive(_ context.Context, ev event.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.lives = append(n.lives, ev.ID)
}

func (n *fakeNotifier) notified() []uint {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]uint(nil), n.lives...)
}

// fakeAuditService records logged actions.
type fakeAuditService struct {
	mu      sync.Mutex
	actions []string
}

func (a *fakeAuditService) LogAction(_ context.Context, _ *uint, _ *uint, action string, _ map[string]interface{}, _ string, _ string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, action)
	return nil
}

func (a *fakeAuditService) GetAuditLogs(_ context.Context, _ auditlog.AuditLogFilter) (*auditlog.PaginatedAuditLogs, error) {
	return &auditlog.PaginatedAuditLogs{}, nil
}

func (a *fakeAuditService) GetAuditLogByID(_ context.Context, _ uint) (*auditlog.AuditLog, error) {
	return nil, nil
}

func (a *fakeAuditService) logged() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.actions...)
}

// sweepAt builds a service over the given repo with a frozen UTC clock.
func sweepAt(repo Repository, now time.Time) *Service {
	return NewService(repo, nil).WithClock(func() time.Time { return now }, time.UTC)
}

func TestSweep_PromotesDueUpcomingToLive(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)
	repo := newFakeRepository(event.Event{
		ID: 1, Title: "Go Concurrency Patterns",
		Date: "2026-08-28", Time: "10:00:00", Duration: "60",
		Status: event.StatusUpcoming,
	})

	result, err := sweepAt(repo, now).Sweep(context.Background())

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, event.StatusLive, repo.status(1))
}

func TestSweep_LeavesFutureEventsUpcoming(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)
	repo := newFakeRepository(
		event.Event{ID: 1, Date: "2026-08-28", Time: "11:00:00", Duration: "60", Status: event.StatusUpcoming},
		event.Event{ID: 2, Date: "2026-08-29", Time: "09:00:00", Duration: "60", Status: event.StatusUpcoming},
	)

	result, err := sweepAt(repo, now).Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, event.StatusUpcoming, repo.status(1))
	assert.Equal(t, event.StatusUpcoming, repo.status(2))
}

// The date and time-of-day filters apply independently: an event dated
// yesterday with a time-of-day later than the current clock is not picked up
// until the clock passes that time-of-day.
func TestSweep_IndependentDateAndTimeFilters(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)
	repo := newFakeRepository(event.Event{
		ID: 1, Date: "2026-08-27", Time: "23:00:00", Duration: "60",
		Status: event.StatusUpcoming,
	})

	result, err := sweepAt(repo, now).Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, event.StatusUpcoming, repo.status(1))

	// Later the same day the clock passes 23:00 and the event goes through.
	evening := time.Date(2026, 8, 28, 23, 5, 0, 0, time.UTC)
	result, err = sweepAt(repo, evening).Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Updated) // promoted, then retired: its window is long over
	assert.Equal(t, event.StatusPast, repo.status(1))
}

func TestSweep_RetiresExpiredLiveToPast(t *testing.T) {
	// Started 09:00, 60 minutes long, now 10:30 — strictly past the end.
	now := time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)
	repo := newFakeRepository(event.Event{
		ID: 1, Date: "2026-08-28", Time: "09:00:00", Duration: "60",
		Status: event.StatusLive,
	})

	result, err := sweepAt(repo, now).Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, event.StatusPast, repo.status(1))
}

func TestSweep_ExactEndInstantStaysLive(t *testing.T) {
	// now == end exactly; retirement requires now strictly after end.
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	repo := newFakeRepository(event.Event{
		ID: 1, Date: "2026-08-28", Time: "09:00:00", Duration: "60",
		Status: event.StatusLive,
	})

	result, err := sweepAt(repo, now).Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, event.StatusLive, repo.status(1))
}

// An event whose whole window has already passed still goes through live on
// its way to past, within a single sweep.
func TestSweep_FullyElapsedEventPassesThroughLive(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)
	repo := newFakeRepository(event.Event{
		ID: 1, Date: "2026-08-27", Time: "09:00:00", Duration: "30",
		Status: event.StatusUpcoming,
	})
	notifier := &fakeNotifier{}
	svc := sweepAt(repo, now)
	svc.Notifier = notifier

	result, err := svc.Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, result.Updated)
	assert.Equal(t, event.StatusPast, repo.status(1))
	// It was genuinely live in between, so the live notification still fired.
	assert.Equal(t, []uint{1}, notifier.notified())
}

func TestSweep_SecondSweepIsNoOp(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)
	repo := newFakeRepository(
		event.Event{ID: 1, Date: "2026-08-28", Time: "10:00:00", Duration: "120", Status: event.StatusUpcoming},
		event.Event{ID: 2, Date: "2026-08-27", Time: "09:00:00", Duration: "30", Status: event.StatusLive},
	)
	svc := sweepAt(repo, now)

	first, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, first.Updated)

	second, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.True(t, second.Success)
	assert.Equal(t, 0, second.Updated)
	assert.Equal(t, event.StatusLive, repo.status(1))
	assert.Equal(t, event.StatusPast, repo.status(2))
}

func TestSweep_NeverRegressesPastEvents(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)
	repo := newFakeRepository(event.Event{
		ID: 1, Date: "2026-08-28", Time: "10:00:00", Duration: "60",
		Status: event.StatusPast,
	})

	result, err := sweepAt(repo, now).Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, event.StatusPast, repo.status(1))
}

func TestSweep_ConcurrentSweepsCountEachTransitionOnce(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)
	repo := newFakeRepository(event.Event{
		ID: 1, Date: "2026-08-28", Time: "10:00:00", Duration: "120",
		Status: event.StatusUpcoming,
	})
	notifier := &fakeNotifier{}

	svcA := sweepAt(repo, now)
	svcA.Notifier = notifier
	svcB := sweepAt(repo, now)
	svcB.Notifier = notifier

	var wg sync.WaitGroup
	results := make([]SweepResult, 2)
	errs := make([]error, 2)
	for i, svc := range []*Service{svcA, svcB} {
		wg.Add(1)
		go func(i int, svc *Service) {
			defer wg.Done()
			results[i], errs[i] = svc.Sweep(context.Background())
		}(i, svc)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	assert.Equal(t, 1, results[0].Updated+results[1].Updated)
	assert.Equal(t, event.StatusLive, repo.status(1))
	// The guarded write means exactly one sweep won, so one notification.
	assert.Len(t, notifier.notified(), 1)
}

func TestSweep_MalformedDurationSkipsRecordOnly(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)
	repo := newFakeRepository(
		event.Event{ID: 1, Date: "2026-08-28", Time: "09:00:00", Duration: "sixty", Status: event.StatusLive},
		event.Event{ID: 2, Date: "2026-08-27", Time: "09:00:00", Duration: "30", Status: event.StatusLive},
	)

	result, err := sweepAt(repo, now).Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, event.StatusLive, repo.status(1))
	assert.Equal(t, event.StatusPast, repo.status(2))
}

func TestSweep_StoreErrorsAreMasked(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)

	t.Run("phase 1 query", func(t *testing.T) {
		repo := newFakeRepository()
		repo.dueErr = errors.New("connection refused")

		result, err := sweepAt(repo, now).Sweep(context.Background())

		require.ErrorIs(t, err, ErrInternal)
		assert.NotContains(t, err.Error(), "connection refused")
		assert.False(t, result.Success)
	})

	t.Run("phase 2 query", func(t *testing.T) {
		repo := newFakeRepository()
		repo.liveErr = errors.New("connection refused")

		_, err := sweepAt(repo, now).Sweep(context.Background())
		require.ErrorIs(t, err, ErrInternal)
	})

	t.Run("guarded write", func(t *testing.T) {
		repo := newFakeRepository(event.Event{
			ID: 1, Date: "2026-08-28", Time: "10:00:00", Duration: "60",
			Status: event.StatusUpcoming,
		})
		repo.advanceErr = errors.New("deadlock detected")

		_, err := sweepAt(repo, now).Sweep(context.Background())
		require.ErrorIs(t, err, ErrInternal)
	})
}

func TestSweep_AuditsOnlyWhenSomethingMoved(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)

	audit := &fakeAuditService{}
	repo := newFakeRepository(event.Event{
		ID: 1, Date: "2026-08-28", Time: "10:00:00", Duration: "120",
		Status: event.StatusUpcoming,
	})
	svc := NewService(repo, audit).WithClock(func() time.Time { return now }, time.UTC)

	_, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"EVENT_STATUS_SWEEP"}, audit.logged())

	// Nothing moves on the repeat, so nothing new is audited.
	_, err = svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"EVENT_STATUS_SWEEP"}, audit.logged())
}

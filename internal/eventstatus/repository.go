package eventstatus

import (
	"context"

	"gorm.io/gorm"

	"github.com/Pavan8023/webibook-backend/internal/event"
)

// Repository is the store surface the sweep needs: two filtered reads and a
// guarded single-record status write.
type Repository interface {
	// DueUpcoming returns upcoming events whose date and time-of-day strings
	// have both passed, compared independently and lexically.
	DueUpcoming(ctx context.Context, today, timeOfDay string) ([]event.Event, error)
	// Live returns all events currently marked live.
	Live(ctx context.Context) ([]event.Event, error)
	// AdvanceStatus moves one event from one status to the next, guarded on
	// the expected prior status. Returns false when another sweep got there
	// first.
	AdvanceStatus(ctx context.Context, eventID uint, from, to event.Status) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) DueUpcoming(ctx context.Context, today, timeOfDay string) ([]event.Event, error) {
	var events []event.Event
	err := r.db.WithContext(ctx).
		Where("status = ? AND date <= ? AND time <= ?", event.StatusUpcoming, today, timeOfDay).
		Find(&events).Error
	return events, err
}

func (r *repository) Live(ctx context.Context) ([]event.Event, error) {
	var events []event.Event
	err := r.db.WithContext(ctx).
		Where("status = ?", event.StatusLive).
		Find(&events).Error
	return events, err
}

func (r *repository) AdvanceStatus(ctx context.Context, eventID uint, from, to event.Status) (bool, error) {
	// Conditional write keyed on the prior status keeps concurrent sweeps
	// idempotent: the losing sweep simply updates zero rows.
	res := r.db.WithContext(ctx).
		Model(&event.Event{}).
		Where("id = ? AND status = ?", eventID, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

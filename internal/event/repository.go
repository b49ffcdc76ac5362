package event

import (
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// 🎯 Create Event
func (r *Repository) CreateEvent(e *Event) error {
	return r.DB.Create(e).Error
}

// ===========================
// 🔍 Get Event By ID with registration count
func (r *Repository) GetEventByID(id uint) (*Event, error) {
	var e Event
	err := r.DB.First(&e, id).Error
	if err != nil {
		return nil, err
	}

	var count int64
	err = r.DB.Table("registrations").
		Where("registrations.event_id = ? AND registrations.status = 'confirmed'", id).
		Count(&count).Error
	if err != nil {
		return nil, err
	}

	e.RegistrationCount = int(count)
	return &e, nil
}

// ===========================
// 📆 Get Upcoming Events (discovery listing)
func (r *Repository) GetUpcomingEvents() ([]Event, error) {
	var events []Event

	err := r.DB.
		Where("status = ?", StatusUpcoming).
		Order("date ASC, time ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	for i := range events {
		count, err := r.CountRegistrations(events[i].ID)
		if err == nil {
			events[i].RegistrationCount = count
		}
	}

	return events, nil
}

// ===========================
// 📄 List Events With Pagination & Search
func (r *Repository) ListEvents(limit, offset int, search, category string, status Status) ([]Event, error) {
	var events []Event

	query := r.DB.Model(&Event{})

	if search != "" {
		ilike := "%" + search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", ilike, ilike)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	err := query.
		Order("date ASC, time ASC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	for i := range events {
		count, err := r.CountRegistrations(events[i].ID)
		if err == nil {
			events[i].RegistrationCount = count
		}
	}

	return events, nil
}

// ===========================
// 📄 List Events owned by a host
func (r *Repository) ListEventsByHost(hostID uint, limit, offset int) ([]Event, error) {
	var events []Event

	err := r.DB.
		Where("host_id = ?", hostID).
		Order("date ASC, time ASC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	for i := range events {
		count, err := r.CountRegistrations(events[i].ID)
		if err == nil {
			events[i].RegistrationCount = count
		}
	}

	return events, nil
}

// ===========================
// 🛠 Update Event
func (r *Repository) UpdateEvent(e *Event) error {
	return r.DB.Save(e).Error
}

// ===========================
// ❌ Delete Event (host-scoped)
func (r *Repository) DeleteEvent(id uint, hostID uint) error {
	return r.DB.
		Where("id = ? AND host_id = ?", id, hostID).
		Delete(&Event{}).Error
}

// ===========================
// 🔢 Count confirmed registrations for an event
func (r *Repository) CountRegistrations(eventID uint) (int, error) {
	var count int64
	err := r.DB.Table("registrations").
		Where("registrations.event_id = ? AND registrations.status = 'confirmed'", eventID).
		Count(&count).Error
	return int(count), err
}

// ===========================
// 📊 Host Dashboard Stats
type EventStatsResponse struct {
	TotalEvents        int `json:"total_events"`
	UpcomingEvents     int `json:"upcoming_events"`
	LiveEvents         int `json:"live_events"`
	PastEvents         int `json:"past_events"`
	TotalRegistrations int `json:"total_registrations"`
}

func (r *Repository) GetEventStats(hostID uint) (*EventStatsResponse, error) {
	var stats EventStatsResponse
	var total, upcoming, live, past, totalRegs int64

	r.DB.Model(&Event{}).
		Where("host_id = ?", hostID).
		Count(&total)

	r.DB.Model(&Event{}).
		Where("host_id = ? AND status = ?", hostID, StatusUpcoming).
		Count(&upcoming)

	r.DB.Model(&Event{}).
		Where("host_id = ? AND status = ?", hostID, StatusLive).
		Count(&live)

	r.DB.Model(&Event{}).
		Where("host_id = ? AND status = ?", hostID, StatusPast).
		Count(&past)

	r.DB.Table("registrations").
		Joins("JOIN events ON events.id = registrations.event_id").
		Where("events.host_id = ? AND registrations.status = 'confirmed'", hostID).
		Count(&totalRegs)

	stats.TotalEvents = int(total)
	stats.UpcomingEvents = int(upcoming)
	stats.LiveEvents = int(live)
	stats.PastEvents = int(past)
	stats.TotalRegistrations = int(totalRegs)

	return &stats, nil
}

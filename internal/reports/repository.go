package reports

import (
	"time"

	"gorm.io/gorm"
)

// ReportRepository defines the database operations required by the reports service.
type ReportRepository interface {
	GetWebinars(hostID *uint, status string, start, end time.Time) ([]WebinarReportRow, error)
	GetAttendees(eventID uint) ([]AttendeeReportRow, error)
	GetAuditLogs(userID *uint, action string, start, end time.Time) ([]AuditLogReportRow, error)

	// EventHostID is used for ownership checks on the attendees report.
	EventHostID(eventID uint) (uint, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ReportRepository {
	return &repository{db: db}
}

// ======================
// Webinars Report
// ======================

func (r *repository) GetWebinars(hostID *uint, status string, start, end time.Time) ([]WebinarReportRow, error) {
	var rows []WebinarReportRow

	q := r.db.Table("events").
		Select(`events.id, events.title, events.category,
			users.full_name AS host_name,
			events.date, events.time, events.duration, events.status, events.created_at,
			COUNT(registrations.id) AS registrations`).
		Joins("LEFT JOIN users ON users.id = events.host_id").
		Joins("LEFT JOIN registrations ON registrations.event_id = events.id AND registrations.status = ?", "confirmed").
		Group("events.id, users.full_name")

	if hostID != nil {
		q = q.Where("events.host_id = ?", *hostID)
	}
	if status != "" {
		q = q.Where("events.status = ?", status)
	}
	if !start.IsZero() {
		q = q.Where("events.created_at >= ?", start)
	}
	if !end.IsZero() {
		q = q.Where("events.created_at <= ?", end)
	}

	err := q.Order("events.date ASC, events.time ASC").Scan(&rows).Error
	return rows, err
}

// ======================
// Attendees Report
// ======================

func (r *repository) GetAttendees(eventID uint) ([]AttendeeReportRow, error) {
	var rows []AttendeeReportRow

	err := r.db.Table("registrations").
		Select(`registrations.id AS registration_id,
			events.title AS webinar_title,
			users.full_name AS attendee_name,
			users.email AS attendee_email,
			registrations.status, registrations.join_code,
			registrations.created_at AS registered_at`).
		Joins("JOIN events ON events.id = registrations.event_id").
		Joins("JOIN users ON users.id = registrations.user_id").
		Where("registrations.event_id = ?", eventID).
		Order("registrations.created_at ASC").
		Scan(&rows).Error

	return rows, err
}

func (r *repository) EventHostID(eventID uint) (uint, error) {
	var hostID uint
	err := r.db.Table("events").
		Select("host_id").
		Where("id = ?", eventID).
		Scan(&hostID).Error
	return hostID, err
}

// ======================
// Audit Logs Report
// ======================

func (r *repository) GetAuditLogs(userID *uint, action string, start, end time.Time) ([]AuditLogReportRow, error) {
	var rows []AuditLogReportRow

	q := r.db.Table("audit_logs").
		Select(`id, user_id, event_id, action, status, ip_address, details, created_at AS timestamp`)

	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	if action != "" {
		q = q.Where("action = ?", action)
	}
	if !start.IsZero() {
		q = q.Where("created_at >= ?", start)
	}
	if !end.IsZero() {
		q = q.Where("created_at <= ?", end)
	}

	err := q.Order("created_at DESC").Limit(10000).Scan(&rows).Error
	return rows, err
}

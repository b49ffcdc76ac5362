package reports

import (
	"time"
)

const (
	// Report type constants
	ReportTypeWebinars  = "webinars"
	ReportTypeAttendees = "attendees"
	ReportTypeAuditLogs = "audit-logs"

	// Report format constants
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// WebinarReportRequest represents request parameters for the webinars report
type WebinarReportRequest struct {
	HostID    *uint     `json:"host_id"`
	Status    string    `json:"status"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Format    string    `json:"format"`
}

// AttendeeReportRequest represents request parameters for the attendees report
type AttendeeReportRequest struct {
	EventID uint   `json:"event_id"`
	Format  string `json:"format"`
}

// AuditLogReportRequest represents request parameters for the audit-logs report
type AuditLogReportRequest struct {
	UserID    *uint     `json:"user_id"`
	Action    string    `json:"action"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Format    string    `json:"format"`
}

// WebinarReportRow is a flattened webinar record for exports
type WebinarReportRow struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Category      string    `json:"category"`
	HostName      string    `json:"host_name"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Duration      string    `json:"duration"`
	Status        string    `json:"status"`
	Registrations int64     `json:"registrations"`
	CreatedAt     time.Time `json:"created_at"`
}

// AttendeeReportRow is a flattened registration record for exports
type AttendeeReportRow struct {
	RegistrationID uint      `json:"registration_id"`
	WebinarTitle   string    `json:"webinar_title"`
	AttendeeName   string    `json:"attendee_name"`
	AttendeeEmail  string    `json:"attendee_email"`
	Status         string    `json:"status"`
	JoinCode       string    `json:"join_code"`
	RegisteredAt   time.Time `json:"registered_at"`
}

// AuditLogReportRow is a flattened audit log record for exports
type AuditLogReportRow struct {
	ID        uint      `json:"id"`
	UserID    *uint     `json:"user_id"`
	EventID   *uint     `json:"event_id"`
	Action    string    `json:"action"`
	Status    string    `json:"status"`
	IPAddress string    `json:"ip_address"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

// ReportData struct with all report types
type ReportData struct {
	Webinars  []WebinarReportRow  `json:"webinars,omitempty"`
	Attendees []AttendeeReportRow `json:"attendees,omitempty"`
	AuditLogs []AuditLogReportRow `json:"audit_logs,omitempty"`
}

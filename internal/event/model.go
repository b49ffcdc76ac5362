package event

import (
	"fmt"
	"strconv"
	"time"
)

// Status represents the lifecycle state of a webinar.
type Status string

const (
	// StatusUpcoming indicates the webinar has not started yet.
	StatusUpcoming Status = "upcoming"
	// StatusLive indicates the webinar is currently in progress.
	StatusLive Status = "live"
	// StatusPast indicates the webinar has ended.
	StatusPast Status = "past"
)

// IsValid reports whether the status is a valid value.
func (s Status) IsValid() bool {
	switch s {
	case StatusUpcoming, StatusLive, StatusPast:
		return true
	}
	return false
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// rank orders statuses along the lifecycle. Transitions only move forward.
func (s Status) rank() int {
	switch s {
	case StatusUpcoming:
		return 0
	case StatusLive:
		return 1
	case StatusPast:
		return 2
	}
	return -1
}

// CanTransitionTo reports whether moving to next is a forward transition.
func (s Status) CanTransitionTo(next Status) bool {
	return s.IsValid() && next.IsValid() && next.rank() > s.rank()
}

// Layouts for the string-encoded schedule fields.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// ============================
// 🔷 GORM Event Model
//
// Date, Time and Duration are stored as strings: the discovery UI filters on
// them lexically, and the status sweep compares them the same way. Date is
// YYYY-MM-DD, Time is zero-padded 24-hour HH:MM:SS, Duration is integer
// minutes.
type Event struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	HostID        uint   `gorm:"not null;index" json:"host_id"`
	Title         string `gorm:"type:varchar(255);not null" json:"title"`
	Description   string `gorm:"type:text" json:"description"`
	Category      string `gorm:"type:varchar(100);index" json:"category"`
	CoverImageURL string `gorm:"type:text" json:"cover_image_url,omitempty"`
	MeetingURL    string `gorm:"type:text" json:"meeting_url,omitempty"`
	Capacity      int    `gorm:"default:0" json:"capacity"` // 0 = unlimited

	Status   Status `gorm:"type:varchar(20);not null;default:'upcoming';index" json:"status"`
	Date     string `gorm:"type:varchar(10);not null;index" json:"date"` // YYYY-MM-DD
	Time     string `gorm:"type:varchar(8);not null" json:"time"`        // HH:MM:SS
	Duration string `gorm:"type:varchar(10);not null" json:"duration"`   // minutes

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	RegistrationCount int `gorm:"-" json:"registration_count"`
}

// StartInstant combines Date and Time into an absolute instant in loc.
func (e *Event) StartInstant(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	start, err := time.ParseInLocation(DateLayout+"T"+TimeLayout, e.Date+"T"+e.Time, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid event schedule %q %q: %w", e.Date, e.Time, err)
	}
	return start, nil
}

// EndInstant is StartInstant plus Duration minutes.
func (e *Event) EndInstant(loc *time.Location) (time.Time, error) {
	start, err := e.StartInstant(loc)
	if err != nil {
		return time.Time{}, err
	}
	minutes, err := strconv.Atoi(e.Duration)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid event duration %q: %w", e.Duration, err)
	}
	return start.Add(time.Duration(minutes) * time.Minute), nil
}

// ============================
// 🟡 Create Event Request
type CreateEventRequest struct {
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description" binding:"required"`
	Category      string `json:"category" binding:"required"`
	CoverImageURL string `json:"cover_image_url"`
	MeetingURL    string `json:"meeting_url"`
	Capacity      int    `json:"capacity"`
	Date          string `json:"date" binding:"required"`     // "2006-01-02"
	Time          string `json:"time" binding:"required"`     // "15:04:05"
	Duration      string `json:"duration" binding:"required"` // minutes
}

// ============================
// 🟠 Update Event Request
type UpdateEventRequest struct {
	ID            uint   `json:"-"`
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description" binding:"required"`
	Category      string `json:"category" binding:"required"`
	CoverImageURL string `json:"cover_image_url"`
	MeetingURL    string `json:"meeting_url"`
	Capacity      int    `json:"capacity"`
	Date          string `json:"date" binding:"required"`
	Time          string `json:"time" binding:"required"`
	Duration      string `json:"duration" binding:"required"`
}

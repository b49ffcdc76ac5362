package registration

import (
	"time"
)

// Registration statuses
const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Registration links an attendee to a webinar
type Registration struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	EventID  uint   `gorm:"not null;index:idx_event_user,unique" json:"event_id"`
	UserID   uint   `gorm:"not null;index:idx_event_user,unique" json:"user_id"`
	JoinCode string `gorm:"size:64;uniqueIndex;not null" json:"join_code"`
	Status   string `gorm:"size:20;not null;default:'confirmed';index" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Registration) TableName() string {
	return "registrations"
}

// AttendeeRow is the host-facing attendee listing
type AttendeeRow struct {
	RegistrationID uint      `json:"registration_id"`
	UserID         uint      `json:"user_id"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	Status         string    `json:"status"`
	RegisteredAt   time.Time `json:"registered_at"`
}

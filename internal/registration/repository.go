package registration

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
// 🎯 Create Registration
func (r *Repository) Create(reg *Registration) error {
	return r.DB.Create(reg).Error
}

// ===========================
// 🔍 Find by event and user (duplicate check, cancel lookup)
func (r *Repository) FindByEventAndUser(eventID, userID uint) (*Registration, error) {
	var reg Registration
	err := r.DB.Where("event_id = ? AND user_id = ?", eventID, userID).First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// ===========================
// 🔢 Count confirmed registrations for capacity enforcement
func (r *Repository) CountConfirmed(eventID uint) (int, error) {
	var count int64
	err := r.DB.Model(&Registration{}).
		Where("event_id = ? AND status = ?", eventID, StatusConfirmed).
		Count(&count).Error
	return int(count), err
}

// ===========================
// 📄 List attendees for an event (host view)
func (r *Repository) ListAttendeesByEvent(eventID uint) ([]AttendeeRow, error) {
	var rows []AttendeeRow
	err := r.DB.Table("registrations").
		Select(`registrations.id as registration_id, registrations.user_id,
			users.full_name, users.email, registrations.status,
			registrations.created_at as registered_at`).
		Joins("JOIN users ON users.id = registrations.user_id").
		Where("registrations.event_id = ?", eventID).
		Order("registrations.created_at ASC").
		Scan(&rows).Error
	return rows, err
}

// ===========================
// 📄 List a user's registrations
func (r *Repository) ListByUser(userID uint) ([]Registration, error) {
	var regs []Registration
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&regs).Error
	return regs, err
}

// ===========================
// ❌ Cancel (soft: flips status, keeps the row for history)
func (r *Repository) Cancel(reg *Registration) error {
	reg.Status = StatusCancelled
	return r.DB.Save(reg).Error
}

// ===========================
// 📄 Confirmed user IDs for one event (live notification fan-out)
func (r *Repository) ConfirmedUserIDs(eventID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&Registration{}).
		Where("event_id = ? AND status = ?", eventID, StatusConfirmed).
		Pluck("user_id", &ids).Error
	return ids, err
}

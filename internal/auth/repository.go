package auth

import (
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(user *User) error
	FindByEmail(email string) (*User, error)
	FindByID(userID uint) (User, error)
	FindRoleByName(name string) (*UserRole, error)
	Update(user *User) error
	GetUserEmailsByRole(roleName string) ([]string, error)
	GetUserIDsByRole(roleName string) ([]uint, error)

	// Password reset methods
	SetForgotPasswordToken(userID uint, token string, expiry time.Time) error
	GetByResetToken(token string) (*User, error)
	ClearResetToken(userID uint) error

	// Public roles method
	GetPublicRoles() ([]UserRole, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

// Create a new user
func (r *repository) Create(user *User) error {
	return r.db.Create(user).Error
}

// Find user by email (used in login & password reset)
func (r *repository) FindByEmail(email string) (*User, error) {
	var u User
	err := r.db.Preload("Role").Where("email = ?", email).First(&u).Error
	return &u, err
}

// Find user by ID (with role preload)
func (r *repository) FindByID(userID uint) (User, error) {
	var user User
	err := r.db.Preload("Role").First(&user, userID).Error
	return user, err
}

// Find user role by name
func (r *repository) FindRoleByName(name string) (*UserRole, error) {
	var role UserRole
	err := r.db.Where("role_name = ?", name).First(&role).Error
	return &role, err
}

// Update persists user changes
func (r *repository) Update(user *User) error {
	return r.db.Save(user).Error
}

// GetUserEmailsByRole returns all emails for a role (notification fan-out)
func (r *repository) GetUserEmailsByRole(roleName string) ([]string, error) {
	var emails []string
	err := r.db.Model(&User{}).
		Joins("JOIN user_roles ON user_roles.id = users.role_id").
		Where("user_roles.role_name = ? AND users.status = 'active'", roleName).
		Pluck("users.email", &emails).Error
	return emails, err
}

// GetUserIDsByRole returns all user IDs for a role
func (r *repository) GetUserIDsByRole(roleName string) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&User{}).
		Joins("JOIN user_roles ON user_roles.id = users.role_id").
		Where("user_roles.role_name = ? AND users.status = 'active'", roleName).
		Pluck("users.id", &ids).Error
	return ids, err
}

// SetForgotPasswordToken stores a reset token with expiry
func (r *repository) SetForgotPasswordToken(userID uint, token string, expiry time.Time) error {
	return r.db.Model(&User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"reset_token":        token,
		"reset_token_expiry": expiry,
	}).Error
}

// GetByResetToken finds the user holding a reset token
func (r *repository) GetByResetToken(token string) (*User, error) {
	var u User
	err := r.db.Where("reset_token = ?", token).First(&u).Error
	return &u, err
}

// ClearResetToken removes a consumed reset token
func (r *repository) ClearResetToken(userID uint) error {
	return r.db.Model(&User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"reset_token":        nil,
		"reset_token_expiry": nil,
	}).Error
}

// GetPublicRoles lists roles open for self-registration
func (r *repository) GetPublicRoles() ([]UserRole, error) {
	var roles []UserRole
	err := r.db.Where("can_register = TRUE").Find(&roles).Error
	return roles, err
}

package auth

import (
	"errors"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserRole is the roles lookup table
type UserRole struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	RoleName    string `gorm:"size:50;uniqueIndex;not null" json:"role_name"`
	Description string `gorm:"size:255" json:"description"`
	CanRegister bool   `gorm:"default:true" json:"can_register"`
}

func (UserRole) TableName() string {
	return "user_roles"
}

// User represents the users table
type User struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	FullName  string   `gorm:"size:150;not null" json:"full_name"`
	Email     string   `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string   `gorm:"size:255;not null" json:"-"`
	Phone     string   `gorm:"size:20" json:"phone,omitempty"`
	AvatarURL string   `gorm:"type:text" json:"avatar_url,omitempty"`
	RoleID    uint     `gorm:"not null;index" json:"role_id"`
	Role      UserRole `gorm:"foreignKey:RoleID" json:"role"`
	Status    string   `gorm:"size:20;default:'active'" json:"status"`

	ResetToken       *string    `gorm:"size:128;index" json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// PublicRoleResponse is the registration-form role listing
type PublicRoleResponse struct {
	ID          uint   `json:"id"`
	RoleName    string `json:"role_name"`
	Description string `json:"description"`
}

// SeedUserRoles inserts the fixed role set if missing
func SeedUserRoles(db *gorm.DB) error {
	roles := []UserRole{
		{RoleName: "superadmin", Description: "Platform administrator", CanRegister: false},
		{RoleName: "host", Description: "Creates and manages webinars", CanRegister: true},
		{RoleName: "attendee", Description: "Registers for and joins webinars", CanRegister: true},
	}

	for _, role := range roles {
		var existing UserRole
		err := db.Where("role_name = ?", role.RoleName).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&role).Error; err != nil {
				return err
			}
			log.Printf("✅ Seeded role: %s", role.RoleName)
		} else if err != nil {
			return err
		}
	}
	return nil
}

// SeedSuperAdminUser creates the bootstrap admin account if missing
func SeedSuperAdminUser(db *gorm.DB) error {
	var role UserRole
	if err := db.Where("role_name = ?", "superadmin").First(&role).Error; err != nil {
		return err
	}

	var existing User
	err := db.Where("email = ?", "admin@webibook.com").First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("ChangeMe@123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := User{
		FullName: "Webibook Admin",
		Email:    "admin@webibook.com",
		Password: string(hash),
		RoleID:   role.ID,
		Status:   "active",
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("✅ Seeded super admin user (admin@webibook.com)")
	return nil
}

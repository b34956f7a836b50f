package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a user in the system (customer, staff member, or superadmin)
type User struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Auth0ID        string         `gorm:"uniqueIndex;not null" json:"auth0_id"` // identity provider user ID (from 'sub' claim)
	Name           string         `gorm:"not null" json:"name"`
	Email          string         `gorm:"uniqueIndex;not null" json:"email"`
	Phone          *string        `json:"phone"`
	Address        *string        `json:"address"`
	Role           string         `gorm:"not null;default:'customer'" json:"role"` // "customer", "staff" or "superadmin"
	StaffType      *string        `json:"staff_type"`                              // "customer_service" or "vendor", staff only
	ProfilePicture *string        `json:"profile_picture"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

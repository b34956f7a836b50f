package models

import (
	"time"
)

// Appointment is a calendar entry created alongside an appointment-type
// order.
type Appointment struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CustomerID  uint       `gorm:"not null;index" json:"customer_id"`
	OrderID     *uint      `gorm:"index" json:"order_id"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	Notes       *string    `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName specifies the table name for the Appointment model
func (Appointment) TableName() string {
	return "appointments"
}

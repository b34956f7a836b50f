package models

import (
	"time"
)

// Order represents a garment commissioning request tracked through its
// fulfillment lifecycle. Orders are never hard-deleted; cancellation is a
// status transition so the history stays intact.
type Order struct {
	ID             uint     `gorm:"primaryKey" json:"id"`
	CustomerID     uint     `gorm:"not null;index" json:"customer_id"` // foreign key to users table, immutable after creation
	StaffID        *uint    `gorm:"index" json:"staff_id"`             // nullable, assigned customer-service staff
	VendorID       *uint    `gorm:"index" json:"vendor_id"`            // nullable, assigned production vendor
	OrderType      string   `gorm:"not null" json:"order_type"`        // appointment, description or image_upload; fixed at creation
	Status         string   `gorm:"not null;default:'pending'" json:"status"`
	TotalAmount    *float64 `json:"total_amount"`    // nullable until priced
	PaidAmount     float64  `gorm:"not null;default:0" json:"paid_amount"`
	CommissionRate *float64 `json:"commission_rate"` // nullable, set when a vendor is assigned
	Description    *string  `gorm:"type:text" json:"description"`
	Measurements   *string  `gorm:"type:text" json:"measurements"` // JSON map of named body measurements
	ImageURLs      *string  `gorm:"type:text" json:"image_urls"`   // JSON list of reference image locators
	Notes          *string  `gorm:"type:text" json:"notes"`
	Priority       string   `gorm:"not null;default:'medium'" json:"priority"` // low, medium or high

	AppointmentDate *time.Time `json:"appointment_date"`
	ReadyDate       *time.Time `json:"ready_date"`
	FittingDate     *time.Time `json:"fitting_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

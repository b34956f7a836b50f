package models

import (
	"time"
)

// Payment is a ledger entry for money recorded against an order. Payments
// are recorded, not processed; there is no gateway behind this table.
type Payment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OrderID     uint      `gorm:"not null;index" json:"order_id"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Status      string    `gorm:"not null;default:'recorded'" json:"status"`
	PaymentDate time.Time `json:"payment_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}

package models

import (
	"time"
)

// OrderHistory is one append-only audit record per mutating action on an
// order. Rows are never updated or deleted.
type OrderHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	UserID    uint      `gorm:"not null" json:"user_id"` // the acting user
	Action    string    `gorm:"not null" json:"action"`  // e.g. order_created, price_set, order_cancelled
	Details   *string   `gorm:"type:text" json:"details"` // JSON payload, e.g. the changed field names
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the OrderHistory model
func (OrderHistory) TableName() string {
	return "order_history"
}

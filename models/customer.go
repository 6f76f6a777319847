package models

import "time"

// CustomerStats counts the recorded orders of a logged-in shopper. The user
// itself lives with the auth provider; UserID is its subject.
type CustomerStats struct {
	UserID      string    `gorm:"primaryKey;size:128" json:"user_id"`
	TotalOrders int       `gorm:"default:0" json:"total_orders"`
	LastOrderAt time.Time `json:"last_order_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (CustomerStats) TableName() string {
	return "customer_stats"
}

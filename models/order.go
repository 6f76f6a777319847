package models

import (
	"time"
)

// Order status and source constants
const (
	OrderStatusPending = "pending"
	OrderSourceWeb     = "web"
)

// PendingOrder is the append-only record written at checkout. It is never
// updated by the storefront once inserted.
type PendingOrder struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OrderNumber string          `gorm:"uniqueIndex;size:64;not null" json:"order_number"`
	Items       []OrderLine     `gorm:"serializer:json" json:"items"`
	Subtotal    int64           `json:"subtotal"`
	Discounts   []OrderDiscount `gorm:"serializer:json" json:"discounts"`
	Shipping    int64           `json:"shipping"`
	Total       int64           `json:"total"`
	Status      string          `gorm:"size:20;default:'pending'" json:"status"`
	CreatedFrom string          `gorm:"size:20;default:'web'" json:"created_from"`
	SessionID   string          `gorm:"size:64;index" json:"session_id"`
	UserID      string          `gorm:"size:64;index" json:"user_id,omitempty"`
	CouponCode  string          `gorm:"size:64" json:"coupon_code,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (PendingOrder) TableName() string {
	return "pending_orders"
}

type OrderLine struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"price"`
	Subtotal  int64  `json:"subtotal"`
	ImageURL  string `json:"image_url,omitempty"`
}

type OrderDiscount struct {
	Source  string `json:"source"`
	Label   string `json:"label"`
	Percent int    `json:"percent"`
	Amount  int64  `json:"amount"`
}

// DiscountTotal sums every applied discount amount.
func (o *PendingOrder) DiscountTotal() int64 {
	var total int64
	for _, d := range o.Discounts {
		total += d.Amount
	}
	return total
}

package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// DefaultCouponMaxUses applies when a coupon is created without a usage cap.
const DefaultCouponMaxUses = 100

type Coupon struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Code            string         `gorm:"uniqueIndex;size:64;not null" json:"code"`
	DiscountPercent int            `json:"discount_percent"`
	Expiry          time.Time      `json:"expiry"`
	MinPurchase     int64          `gorm:"default:0" json:"min_purchase"`
	UsedCount       int            `gorm:"default:0" json:"used_count"`
	MaxUses         int            `gorm:"default:100" json:"max_uses"`
	Active          bool           `gorm:"default:true" json:"active"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// CanonicalCouponCode is the stored form of a coupon code.
func CanonicalCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// BeforeSave keeps the code in canonical form.
func (c *Coupon) BeforeSave(tx *gorm.DB) error {
	c.Code = CanonicalCouponCode(c.Code)
	return nil
}

// Expired reports whether the coupon is past its expiry at now.
func (c *Coupon) Expired(now time.Time) bool {
	return !now.Before(c.Expiry)
}

// Exhausted reports whether the usage cap has been reached.
func (c *Coupon) Exhausted() bool {
	return c.UsedCount >= c.MaxUses
}

// ValidAt is true iff the coupon is active, under its cap and not expired.
func (c *Coupon) ValidAt(now time.Time) bool {
	return c.Active && !c.Exhausted() && !c.Expired(now)
}

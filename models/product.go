package models

import "time"

// Product is a catalog row. Columns follow the shared products table the
// point-of-sale writes to (sale_price, quantity).
type Product struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Price     int64     `gorm:"column:sale_price" json:"price"`
	Stock     int       `gorm:"column:quantity" json:"stock"`
	Category  string    `gorm:"size:64;index" json:"category"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// LowStockLimit is the highest quantity still listed as low stock.
const LowStockLimit = 5

// InventoryFilter narrows the admin product listing. Unlike the shopper
// catalog it includes products without stock.
type InventoryFilter struct {
	Name     string
	Category string
	Stock    string // "", "out-of-stock", "low-stock", "in-stock"
	Sort     string // "", "id-desc", "name-asc", "name-desc", "stock-asc", "stock-desc"
	Offset   int
	Limit    int
}

// ProductUpdate carries the admin-editable product fields. Nil fields are
// left unchanged.
type ProductUpdate struct {
	Stock    *int
	Category *string
}

// Empty reports whether u changes nothing.
func (u ProductUpdate) Empty() bool {
	return u.Stock == nil && u.Category == nil
}

// Apply writes the set fields onto p.
func (u ProductUpdate) Apply(p *Product) {
	if u.Stock != nil {
		p.Stock = *u.Stock
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
}

// MatchStock reports whether p falls in the InventoryFilter stock bucket.
func MatchStock(p Product, bucket string) bool {
	switch bucket {
	case "out-of-stock":
		return p.Stock <= 0
	case "low-stock":
		return p.Stock > 0 && p.Stock <= LowStockLimit
	case "in-stock":
		return p.Stock > LowStockLimit
	default:
		return true
	}
}

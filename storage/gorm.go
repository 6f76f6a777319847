package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Govind-619/storefront/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return models.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return ErrDuplicate
	default:
		return err
	}
}

// isUniqueViolation covers drivers opened without TranslateError.
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "duplicate entry")
}

// GormOrderStore writes pending_orders rows.
type GormOrderStore struct {
	db *gorm.DB
}

func NewGormOrderStore(db *gorm.DB) *GormOrderStore {
	return &GormOrderStore{db: db}
}

func (s *GormOrderStore) InsertOrder(ctx context.Context, o *models.PendingOrder) (uint, error) {
	if err := s.db.WithContext(ctx).Create(o).Error; err != nil {
		return 0, fmt.Errorf("insert order %s: %w", o.OrderNumber, translate(err))
	}
	return o.ID, nil
}

func (s *GormOrderStore) FindOrderByNumber(ctx context.Context, number string) (*models.PendingOrder, error) {
	var o models.PendingOrder
	if err := s.db.WithContext(ctx).Where("order_number = ?", number).First(&o).Error; err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

// GormCouponStore reads and updates the coupons table.
type GormCouponStore struct {
	db *gorm.DB
}

func NewGormCouponStore(db *gorm.DB) *GormCouponStore {
	return &GormCouponStore{db: db}
}

func (s *GormCouponStore) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var c models.Coupon
	err := s.db.WithContext(ctx).
		Where("UPPER(code) = ?", models.CanonicalCouponCode(code)).
		First(&c).Error
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

// IncrementUsage bumps used_count by one in a single statement.
func (s *GormCouponStore) IncrementUsage(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).
		Model(&models.Coupon{}).
		Where("id = ?", id).
		UpdateColumn("used_count", gorm.Expr("used_count + ?", 1))
	if res.Error != nil {
		return fmt.Errorf("increment coupon %d usage: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *GormCouponStore) CreateCoupon(ctx context.Context, c *models.Coupon) error {
	return translate(s.db.WithContext(ctx).Create(c).Error)
}

func (s *GormCouponStore) ListCoupons(ctx context.Context) ([]models.Coupon, error) {
	var coupons []models.Coupon
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&coupons).Error; err != nil {
		return nil, err
	}
	return coupons, nil
}

func (s *GormCouponStore) DeleteCoupon(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Coupon{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// GormCatalog lists products with stock, ordered by name.
type GormCatalog struct {
	db *gorm.DB
}

func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{db: db}
}

func (c *GormCatalog) ListAvailableProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := c.db.WithContext(ctx).
		Where("quantity > ?", 0).
		Order("name").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

var inventoryOrder = map[string]string{
	"":           "id desc",
	"id-desc":    "id desc",
	"name-asc":   "name asc",
	"name-desc":  "name desc",
	"stock-asc":  "quantity asc",
	"stock-desc": "quantity desc",
}

// ListInventory pages through every product, including those without stock.
func (c *GormCatalog) ListInventory(ctx context.Context, f models.InventoryFilter) ([]models.Product, int64, error) {
	query := c.db.WithContext(ctx).Model(&models.Product{})
	if name := strings.TrimSpace(f.Name); name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if f.Category != "" {
		query = query.Where("LOWER(category) = ?", strings.ToLower(f.Category))
	}
	switch f.Stock {
	case "out-of-stock":
		query = query.Where("quantity <= ?", 0)
	case "low-stock":
		query = query.Where("quantity > ? AND quantity <= ?", 0, models.LowStockLimit)
	case "in-stock":
		query = query.Where("quantity > ?", models.LowStockLimit)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	order, ok := inventoryOrder[f.Sort]
	if !ok {
		order = inventoryOrder[""]
	}
	var products []models.Product
	query = query.Order(order).Offset(f.Offset)
	if f.Limit > 0 {
		query = query.Limit(f.Limit)
	}
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// UpdateProduct applies u to the product with id.
func (c *GormCatalog) UpdateProduct(ctx context.Context, id uint, u models.ProductUpdate) (*models.Product, error) {
	var product models.Product
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, id).Error; err != nil {
			return err
		}
		fields := map[string]interface{}{}
		if u.Stock != nil {
			fields["quantity"] = *u.Stock
		}
		if u.Category != nil {
			fields["category"] = *u.Category
		}
		if err := tx.Model(&product).Updates(fields).Error; err != nil {
			return err
		}
		return tx.First(&product, id).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

// GormCustomerStats keeps per-user order counts in customer_stats.
type GormCustomerStats struct {
	db *gorm.DB
}

func NewGormCustomerStats(db *gorm.DB) *GormCustomerStats {
	return &GormCustomerStats{db: db}
}

// IncrementUserOrders upserts the user's row and bumps total_orders by one in
// a single statement.
func (s *GormCustomerStats) IncrementUserOrders(ctx context.Context, userID string, at time.Time) error {
	row := models.CustomerStats{UserID: userID, TotalOrders: 1, LastOrderAt: at}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_orders":  gorm.Expr("customer_stats.total_orders + ?", 1),
			"last_order_at": at,
			"updated_at":    at,
		}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("increment orders for user %s: %w", userID, err)
	}
	return nil
}

// CustomerStats returns the user's counters; a user without orders gets a
// zero row.
func (s *GormCustomerStats) CustomerStats(ctx context.Context, userID string) (*models.CustomerStats, error) {
	var stats models.CustomerStats
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.CustomerStats{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

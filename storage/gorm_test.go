package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Govind-619/storefront/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("STOREFRONT_TEST_DSN")
	if dsn == "" {
		t.Skip("STOREFRONT_TEST_DSN not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Coupon{}, &models.PendingOrder{}, &models.CustomerStats{}))
	t.Cleanup(func() {
		db.Exec("DELETE FROM pending_orders")
		db.Unscoped().Where("1 = 1").Delete(&models.Coupon{})
		db.Where("1 = 1").Delete(&models.Product{})
		db.Where("1 = 1").Delete(&models.CustomerStats{})
	})
	return db
}

func TestGormCouponUsageIncrement(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	store := NewGormCouponStore(db)

	c := &models.Coupon{Code: "it10", DiscountPercent: 10, Expiry: time.Now().Add(time.Hour), MaxUses: 5, Active: true}
	require.NoError(t, store.CreateCoupon(ctx, c))
	assert.ErrorIs(t, store.CreateCoupon(ctx, &models.Coupon{Code: "IT10", Expiry: time.Now()}), ErrDuplicate)

	require.NoError(t, store.IncrementUsage(ctx, c.ID))
	found, err := store.FindByCode(ctx, "it10")
	require.NoError(t, err)
	assert.Equal(t, 1, found.UsedCount)

	_, err = store.FindByCode(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestGormOrderInsertAndCatalog(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&[]models.Product{
		{Name: "Zeta", Price: 500, Stock: 1},
		{Name: "Alpha", Price: 700, Stock: 3},
		{Name: "Gone", Price: 100, Stock: 0},
	}).Error)
	products, err := NewGormCatalog(db).ListAvailableProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Alpha", products[0].Name)

	orders := NewGormOrderStore(db)
	id, err := orders.InsertOrder(ctx, &models.PendingOrder{
		OrderNumber: "WEB-42",
		Items:       []models.OrderLine{{ProductID: 1, Name: "Alpha", Quantity: 2, UnitPrice: 700, Subtotal: 1400}},
		Subtotal:    1400,
		Shipping:    5000,
		Total:       6400,
		Status:      models.OrderStatusPending,
		CreatedFrom: models.OrderSourceWeb,
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	o, err := orders.FindOrderByNumber(ctx, "WEB-42")
	require.NoError(t, err)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "Alpha", o.Items[0].Name)
}

func TestGormCatalogInventory(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	catalog := NewGormCatalog(db)

	items := []models.Product{
		{Name: "Notebook", Price: 500, Stock: 12, Category: "Paper"},
		{Name: "Ink", Price: 700, Stock: 0, Category: "Writing"},
	}
	require.NoError(t, db.Create(&items).Error)

	out, total, err := catalog.ListInventory(ctx, models.InventoryFilter{Stock: "out-of-stock", Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, out, 1)
	assert.Equal(t, "Ink", out[0].Name)

	stock := 4
	p, err := catalog.UpdateProduct(ctx, items[1].ID, models.ProductUpdate{Stock: &stock})
	require.NoError(t, err)
	assert.Equal(t, 4, p.Stock)

	available, err := catalog.ListAvailableProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, available, 2)

	_, err = catalog.UpdateProduct(ctx, 999999, models.ProductUpdate{Stock: &stock})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestGormCustomerStatsIncrement(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	stats := NewGormCustomerStats(db)

	got, err := stats.CustomerStats(ctx, "u-1")
	require.NoError(t, err)
	assert.Zero(t, got.TotalOrders)

	at := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, stats.IncrementUserOrders(ctx, "u-1", at))
	require.NoError(t, stats.IncrementUserOrders(ctx, "u-1", at.Add(time.Minute)))

	got, err = stats.CustomerStats(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.TotalOrders)
	assert.True(t, got.LastOrderAt.Equal(at.Add(time.Minute)))
}

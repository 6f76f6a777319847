package storage

import (
	"context"
	"testing"
	"time"

	"github.com/Govind-619/storefront/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCartStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryCartStore()

	var got []string
	found, err := store.Load(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Save(ctx, "k", []string{"a", "b"}))
	found, err = store.Load(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"a", "b"}, got)

	require.NoError(t, store.Delete(ctx, "k"))
	assert.False(t, store.Has("k"))
}

func TestMemoryCartStoreCorruptBlob(t *testing.T) {
	store := NewMemoryCartStore()
	store.data["bad"] = []byte("{not json")

	var got []string
	found, err := store.Load(context.Background(), "bad", &got)
	assert.True(t, found)
	assert.Error(t, err)
}

func TestMemoryCouponStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryCouponStore()

	c := &models.Coupon{Code: " save10 ", DiscountPercent: 10, Expiry: time.Now().Add(time.Hour), MaxUses: 100, Active: true}
	require.NoError(t, store.CreateCoupon(ctx, c))
	assert.Equal(t, "SAVE10", c.Code)
	assert.NotZero(t, c.ID)

	assert.ErrorIs(t, store.CreateCoupon(ctx, &models.Coupon{Code: "Save10"}), ErrDuplicate)

	found, err := store.FindByCode(ctx, "save10")
	require.NoError(t, err)
	assert.Equal(t, 10, found.DiscountPercent)

	_, err = store.FindByCode(ctx, "nope")
	assert.ErrorIs(t, err, models.ErrNotFound)

	require.NoError(t, store.IncrementUsage(ctx, c.ID))
	require.NoError(t, store.IncrementUsage(ctx, c.ID))
	found, err = store.FindByCode(ctx, "SAVE10")
	require.NoError(t, err)
	assert.Equal(t, 2, found.UsedCount)

	// Mutating a returned copy must not leak into the store.
	found.UsedCount = 99
	again, _ := store.FindByCode(ctx, "SAVE10")
	assert.Equal(t, 2, again.UsedCount)

	list, err := store.ListCoupons(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, store.DeleteCoupon(ctx, c.ID))
	assert.ErrorIs(t, store.DeleteCoupon(ctx, c.ID), models.ErrNotFound)
	assert.ErrorIs(t, store.IncrementUsage(ctx, c.ID), models.ErrNotFound)
}

func TestMemoryOrderStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryOrderStore()

	id, err := store.InsertOrder(ctx, &models.PendingOrder{OrderNumber: "WEB-1", Total: 100})
	require.NoError(t, err)
	assert.Equal(t, uint(1), id)

	_, err = store.InsertOrder(ctx, &models.PendingOrder{OrderNumber: "WEB-1"})
	assert.ErrorIs(t, err, ErrDuplicate)

	o, err := store.FindOrderByNumber(ctx, "WEB-1")
	require.NoError(t, err)
	assert.Equal(t, int64(100), o.Total)

	_, err = store.FindOrderByNumber(ctx, "WEB-2")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Len(t, store.Orders(), 1)
}

func TestStaticCatalogSkipsOutOfStock(t *testing.T) {
	catalog := NewStaticCatalog(
		models.Product{ID: 1, Name: "A", Price: 10, Stock: 2},
		models.Product{ID: 2, Name: "B", Price: 10, Stock: 0},
	)
	products, err := catalog.ListAvailableProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, uint(1), products[0].ID)
}

func TestStaticCatalogInventory(t *testing.T) {
	ctx := context.Background()
	catalog := NewStaticCatalog(
		models.Product{ID: 1, Name: "Notebook", Stock: 12, Category: "Paper"},
		models.Product{ID: 2, Name: "Pen", Stock: 3, Category: "Writing"},
		models.Product{ID: 3, Name: "Ink", Stock: 0, Category: "Writing"},
	)

	all, total, err := catalog.ListInventory(ctx, models.InventoryFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Equal(t, uint(3), all[0].ID)

	out, total, err := catalog.ListInventory(ctx, models.InventoryFilter{Stock: "out-of-stock"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Ink", out[0].Name)

	page, total, err := catalog.ListInventory(ctx, models.InventoryFilter{Category: "writing", Sort: "name-asc", Offset: 1, Limit: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, page, 1)
	assert.Equal(t, "Pen", page[0].Name)
}

func TestStaticCatalogUpdateProduct(t *testing.T) {
	ctx := context.Background()
	catalog := NewStaticCatalog(models.Product{ID: 1, Name: "Ink", Stock: 0, Category: "Writing"})

	stock, category := 7, "Office"
	p, err := catalog.UpdateProduct(ctx, 1, models.ProductUpdate{Stock: &stock})
	require.NoError(t, err)
	assert.Equal(t, 7, p.Stock)
	assert.Equal(t, "Writing", p.Category)

	p, err = catalog.UpdateProduct(ctx, 1, models.ProductUpdate{Category: &category})
	require.NoError(t, err)
	assert.Equal(t, "Office", p.Category)

	available, err := catalog.ListAvailableProducts(ctx)
	require.NoError(t, err)
	require.Len(t, available, 1)

	_, err = catalog.UpdateProduct(ctx, 99, models.ProductUpdate{Stock: &stock})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestMemoryCustomerStats(t *testing.T) {
	ctx := context.Background()
	stats := NewMemoryCustomerStats()
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, stats.IncrementUserOrders(ctx, "u-1", at))
	require.NoError(t, stats.IncrementUserOrders(ctx, "u-1", at.Add(time.Hour)))

	got, err := stats.CustomerStats(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.TotalOrders)
	assert.Equal(t, at.Add(time.Hour), got.LastOrderAt)

	none, err := stats.CustomerStats(ctx, "u-2")
	require.NoError(t, err)
	assert.Zero(t, none.TotalOrders)
}

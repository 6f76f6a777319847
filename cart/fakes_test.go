package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Govind-619/storefront/models"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type memStorage struct {
	mu      sync.Mutex
	data    map[string][]byte
	saveErr   error
	loadErr   error
	deleteErr error
}

func newMemStorage() *memStorage {
	return &memStorage{data: make(map[string][]byte)}
}

func (m *memStorage) Load(_ context.Context, key string, dst any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return false, m.loadErr
	}
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (m *memStorage) Save(_ context.Context, key string, v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *memStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.data, key)
	return nil
}

func (m *memStorage) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

type fakeOrders struct {
	mu     sync.Mutex
	err    error
	calls  int
	orders []models.PendingOrder
	// entered is signalled and block waited on inside InsertOrder when set.
	entered chan struct{}
	block   chan struct{}
}

func (f *fakeOrders) InsertOrder(_ context.Context, o *models.PendingOrder) (uint, error) {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	f.orders = append(f.orders, *o)
	return uint(len(f.orders)), nil
}

func (f *fakeOrders) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeCoupons struct {
	mu         sync.Mutex
	byCode     map[string]*models.Coupon
	findErr    error
	increments map[uint]int
}

func newFakeCoupons(coupons ...models.Coupon) *fakeCoupons {
	f := &fakeCoupons{byCode: make(map[string]*models.Coupon), increments: make(map[uint]int)}
	for i := range coupons {
		c := coupons[i]
		f.byCode[c.Code] = &c
	}
	return f
}

func (f *fakeCoupons) FindByCode(_ context.Context, code string) (*models.Coupon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	c, ok := f.byCode[code]
	if !ok {
		return nil, models.ErrNotFound
	}
	out := *c
	return &out, nil
}

func (f *fakeCoupons) IncrementUsage(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.increments[id]++
	for _, c := range f.byCode {
		if c.ID == id {
			c.UsedCount++
		}
	}
	return nil
}

func (f *fakeCoupons) update(code string, fn func(c *models.Coupon)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f.byCode[code])
}

func (f *fakeCoupons) incrementsFor(id uint) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.increments[id]
}

type fakeSink struct {
	mu       sync.Mutex
	err      error
	messages []string
}

func (f *fakeSink) Send(_ context.Context, destination, text string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.messages = append(f.messages, text)
	return "sink://" + destination, nil
}

type fakeProvider struct {
	mu       sync.Mutex
	products []models.Product
	err      error
	calls    int
	block    chan struct{}
}

func (f *fakeProvider) ListAvailableProducts(ctx context.Context) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Product, len(f.products))
	copy(out, f.products)
	return out, nil
}

var errStoreDown = errors.New("store down")

type fixture struct {
	engine   *Engine
	storage  *memStorage
	orders   *fakeOrders
	coupons  *fakeCoupons
	sink     *fakeSink
	provider *fakeProvider
}

func testProducts() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Notebook", Price: 10000, Stock: 5, Category: "Paper"},
		{ID: 2, Name: "Pen", Price: 2500, Stock: 10, Category: "Writing"},
		{ID: 3, Name: "Backpack", Price: 60000, Stock: 2, Category: "Bags"},
	}
}

func testCoupons() []models.Coupon {
	return []models.Coupon{
		{ID: 7, Code: "SAVE10", DiscountPercent: 10, Expiry: testNow.Add(24 * time.Hour), MaxUses: 100, Active: true},
		{ID: 8, Code: "OLD", DiscountPercent: 20, Expiry: testNow.Add(-time.Hour), MaxUses: 100, Active: true},
		{ID: 9, Code: "USEDUP", DiscountPercent: 15, Expiry: testNow.Add(time.Hour), UsedCount: 3, MaxUses: 3, Active: true},
		{ID: 10, Code: "BIG", DiscountPercent: 25, Expiry: testNow.Add(time.Hour), MinPurchase: 50000, MaxUses: 100, Active: true},
		{ID: 11, Code: "OFF", DiscountPercent: 30, Expiry: testNow.Add(time.Hour), MaxUses: 100, Active: false},
	}
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{
		storage:  newMemStorage(),
		orders:   &fakeOrders{},
		coupons:  newFakeCoupons(testCoupons()...),
		sink:     &fakeSink{},
		provider: &fakeProvider{products: testProducts()},
	}
	catalog := NewCatalog(f.provider, time.Second, nil)
	_, err := catalog.Refresh(context.Background())
	require.NoError(t, err)

	opts = append([]Option{WithClock(func() time.Time { return testNow })}, opts...)
	f.engine = NewEngine(Config{
		StoreName:   "Test Store",
		Destination: "573000000000",
		Shipping:    ShippingPolicy{FlatFee: 5000, FreeThreshold: 50000},
	}, Deps{
		Sessions: NewSessionManager(f.storage, "test_cart", nil),
		Catalog:  catalog,
		Orders:   f.orders,
		Coupons:  f.coupons,
		Tiers:    TierDiscount{Percent: 5},
		Sink:     f.sink,
	}, opts...)
	return f
}

func (f *fixture) session(id string) *Session {
	return f.engine.Sessions().Get(context.Background(), id)
}

func product(t *testing.T, id uint) models.Product {
	t.Helper()
	for _, p := range testProducts() {
		if p.ID == id {
			return p
		}
	}
	t.Fatalf("no test product %d", id)
	return models.Product{}
}

package storage

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Govind-619/storefront/models"
)

// MemoryCartStore keeps JSON blobs in process memory.
type MemoryCartStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{data: make(map[string][]byte)}
}

func (m *MemoryCartStore) Load(_ context.Context, key string, dst any) (bool, error) {
	m.mu.RLock()
	raw, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (m *MemoryCartStore) Save(_ context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()
	return nil
}

func (m *MemoryCartStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}

// Has reports whether key is stored.
func (m *MemoryCartStore) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.data[key]
	return ok
}

// MemoryCouponStore is an in-process coupon table.
type MemoryCouponStore struct {
	mu     sync.Mutex
	nextID uint
	byID   map[uint]*models.Coupon
}

func NewMemoryCouponStore() *MemoryCouponStore {
	return &MemoryCouponStore{byID: make(map[uint]*models.Coupon)}
}

func (m *MemoryCouponStore) CreateCoupon(_ context.Context, c *models.Coupon) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.Code = models.CanonicalCouponCode(c.Code)
	if c.MaxUses == 0 {
		c.MaxUses = models.DefaultCouponMaxUses
	}
	for _, existing := range m.byID {
		if existing.Code == c.Code {
			return ErrDuplicate
		}
	}
	m.nextID++
	c.ID = m.nextID
	now := time.Now()
	c.CreatedAt, c.UpdatedAt = now, now
	stored := *c
	m.byID[c.ID] = &stored
	return nil
}

func (m *MemoryCouponStore) FindByCode(_ context.Context, code string) (*models.Coupon, error) {
	code = models.CanonicalCouponCode(code)
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.byID {
		if c.Code == code {
			out := *c
			return &out, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *MemoryCouponStore) IncrementUsage(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok {
		return models.ErrNotFound
	}
	c.UsedCount++
	c.UpdatedAt = time.Now()
	return nil
}

func (m *MemoryCouponStore) ListCoupons(_ context.Context) ([]models.Coupon, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Coupon, 0, len(m.byID))
	for _, c := range m.byID {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryCouponStore) DeleteCoupon(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

// MemoryOrderStore appends orders to a slice.
type MemoryOrderStore struct {
	mu     sync.Mutex
	orders []models.PendingOrder
}

func NewMemoryOrderStore() *MemoryOrderStore {
	return &MemoryOrderStore{}
}

func (m *MemoryOrderStore) InsertOrder(_ context.Context, o *models.PendingOrder) (uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.orders {
		if existing.OrderNumber == o.OrderNumber {
			return 0, ErrDuplicate
		}
	}
	o.ID = uint(len(m.orders) + 1)
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	m.orders = append(m.orders, *o)
	return o.ID, nil
}

func (m *MemoryOrderStore) FindOrderByNumber(_ context.Context, number string) (*models.PendingOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.OrderNumber == number {
			out := o
			return &out, nil
		}
	}
	return nil, models.ErrNotFound
}

// Orders returns a copy of everything inserted.
func (m *MemoryOrderStore) Orders() []models.PendingOrder {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.PendingOrder, len(m.orders))
	copy(out, m.orders)
	return out
}

// StaticCatalog serves a fixed product list.
type StaticCatalog struct {
	mu       sync.RWMutex
	products []models.Product
}

func NewStaticCatalog(products ...models.Product) *StaticCatalog {
	return &StaticCatalog{products: append([]models.Product(nil), products...)}
}

func (s *StaticCatalog) ListAvailableProducts(_ context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.InStock() {
			out = append(out, p)
		}
	}
	return out, nil
}

// Set replaces the product list.
func (s *StaticCatalog) Set(products ...models.Product) {
	s.mu.Lock()
	s.products = append([]models.Product(nil), products...)
	s.mu.Unlock()
}

// ListInventory pages through every product, including those without stock.
func (s *StaticCatalog) ListInventory(_ context.Context, f models.InventoryFilter) ([]models.Product, int64, error) {
	s.mu.RLock()
	name := strings.ToLower(strings.TrimSpace(f.Name))
	var out []models.Product
	for _, p := range s.products {
		if name != "" && !strings.Contains(strings.ToLower(p.Name), name) {
			continue
		}
		if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
			continue
		}
		if !models.MatchStock(p, f.Stock) {
			continue
		}
		out = append(out, p)
	}
	s.mu.RUnlock()

	sort.SliceStable(out, inventoryLess(out, f.Sort))
	total := int64(len(out))
	if f.Offset >= len(out) {
		return []models.Product{}, total, nil
	}
	out = out[f.Offset:]
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, total, nil
}

// UpdateProduct applies u to the product with id.
func (s *StaticCatalog) UpdateProduct(_ context.Context, id uint, u models.ProductUpdate) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID != id {
			continue
		}
		u.Apply(&s.products[i])
		s.products[i].UpdatedAt = time.Now()
		p := s.products[i]
		return &p, nil
	}
	return nil, models.ErrNotFound
}

func inventoryLess(ps []models.Product, order string) func(i, j int) bool {
	switch order {
	case "name-asc":
		return func(i, j int) bool { return strings.ToLower(ps[i].Name) < strings.ToLower(ps[j].Name) }
	case "name-desc":
		return func(i, j int) bool { return strings.ToLower(ps[i].Name) > strings.ToLower(ps[j].Name) }
	case "stock-asc":
		return func(i, j int) bool { return ps[i].Stock < ps[j].Stock }
	case "stock-desc":
		return func(i, j int) bool { return ps[i].Stock > ps[j].Stock }
	default:
		return func(i, j int) bool { return ps[i].ID > ps[j].ID }
	}
}

// MemoryCustomerStats keeps per-user order counts in process memory.
type MemoryCustomerStats struct {
	mu    sync.Mutex
	users map[string]models.CustomerStats
}

func NewMemoryCustomerStats() *MemoryCustomerStats {
	return &MemoryCustomerStats{users: make(map[string]models.CustomerStats)}
}

func (m *MemoryCustomerStats) IncrementUserOrders(_ context.Context, userID string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats, ok := m.users[userID]
	if !ok {
		stats = models.CustomerStats{UserID: userID, CreatedAt: at}
	}
	stats.TotalOrders++
	stats.LastOrderAt = at
	stats.UpdatedAt = at
	m.users[userID] = stats
	return nil
}

func (m *MemoryCustomerStats) CustomerStats(_ context.Context, userID string) (*models.CustomerStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats, ok := m.users[userID]
	if !ok {
		stats = models.CustomerStats{UserID: userID}
	}
	return &stats, nil
}

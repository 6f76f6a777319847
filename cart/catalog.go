package cart

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Govind-619/storefront/models"
	"go.uber.org/zap"
)

const defaultRefreshTimeout = 10 * time.Second

// Catalog keeps the last product snapshot read from the provider. The
// snapshot may be stale between refreshes.
type Catalog struct {
	provider CatalogProvider
	logger   *zap.Logger
	timeout  time.Duration

	refreshing atomic.Bool

	mu       sync.RWMutex
	products []models.Product
	loadedAt time.Time
}

func NewCatalog(provider CatalogProvider, timeout time.Duration, logger *zap.Logger) *Catalog {
	if timeout <= 0 {
		timeout = defaultRefreshTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{provider: provider, timeout: timeout, logger: logger}
}

// Refresh reloads the snapshot. A concurrent call returns ErrBusy without
// touching the snapshot. The provider runs detached from ctx's cancellation,
// bounded by the catalog timeout, so a caller hanging up cannot wipe the
// snapshot. On provider failure or timeout the snapshot is emptied and
// ErrCatalogUnavailable is returned.
func (c *Catalog) Refresh(ctx context.Context) (int, error) {
	if !c.refreshing.CompareAndSwap(false, true) {
		c.logger.Debug("Catalog refresh already running")
		return 0, ErrBusy
	}
	defer c.refreshing.Store(false)

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()

	products, err := c.provider.ListAvailableProducts(ctx)
	if err != nil {
		c.mu.Lock()
		c.products = nil
		c.mu.Unlock()
		c.logger.Error("Failed to load products", zap.Error(err))
		return 0, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	available := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.InStock() {
			available = append(available, p)
		}
	}
	sort.SliceStable(available, func(i, j int) bool { return available[i].Name < available[j].Name })

	c.mu.Lock()
	c.products = available
	c.loadedAt = time.Now()
	c.mu.Unlock()
	c.logger.Info("Products loaded", zap.Int("count", len(available)))
	return len(available), nil
}

// Products returns a copy of the snapshot.
func (c *Catalog) Products() []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) LoadedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadedAt
}

func (c *Catalog) Find(id uint) (models.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// Categories lists the distinct categories in the snapshot, sorted.
func (c *Catalog) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	seen := make(map[string]bool)
	var out []string
	for _, p := range c.products {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out
}

// AllCategories matches every category.
const AllCategories = "Todos"

// Filter narrows and orders a catalog listing.
type Filter struct {
	Category   string
	Search     string
	Stock      string // "", "all", "in-stock", "low-stock"
	PriceRange string // "", "all", "0-5000", "5000-10000", "10000-20000", "20000-50000", "50000+"
	Sort       string // "", "price-asc", "price-desc", "name-asc", "name-desc", "stock-desc"
}

// Query applies f to the snapshot.
func (c *Catalog) Query(f Filter) []models.Product {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	var out []models.Product
	for _, p := range c.Products() {
		if f.Category != "" && f.Category != AllCategories && !strings.EqualFold(p.Category, f.Category) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if !matchStock(p, f.Stock) || !matchPrice(p, f.PriceRange) {
			continue
		}
		out = append(out, p)
	}
	sortProducts(out, f.Sort)
	return out
}

func matchStock(p models.Product, filter string) bool {
	switch filter {
	case "in-stock", "low-stock":
		return models.MatchStock(p, filter)
	default:
		return true
	}
}

func matchPrice(p models.Product, bucket string) bool {
	switch bucket {
	case "0-5000":
		return p.Price < 5000
	case "5000-10000":
		return p.Price >= 5000 && p.Price < 10000
	case "10000-20000":
		return p.Price >= 10000 && p.Price < 20000
	case "20000-50000":
		return p.Price >= 20000 && p.Price < 50000
	case "50000+":
		return p.Price >= 50000
	default:
		return true
	}
}

func sortProducts(ps []models.Product, order string) {
	var less func(a, b models.Product) bool
	switch order {
	case "price-asc":
		less = func(a, b models.Product) bool { return a.Price < b.Price }
	case "price-desc":
		less = func(a, b models.Product) bool { return a.Price > b.Price }
	case "name-asc":
		less = func(a, b models.Product) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case "name-desc":
		less = func(a, b models.Product) bool { return strings.ToLower(a.Name) > strings.ToLower(b.Name) }
	case "stock-desc":
		less = func(a, b models.Product) bool { return a.Stock > b.Stock }
	default:
		return
	}
	sort.SliceStable(ps, func(i, j int) bool { return less(ps[i], ps[j]) })
}

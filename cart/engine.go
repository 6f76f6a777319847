package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Govind-619/storefront/models"
	"go.uber.org/zap"
)

// CatalogProvider lists products with stock available.
type CatalogProvider interface {
	ListAvailableProducts(ctx context.Context) ([]models.Product, error)
}

// OrderStore appends order records.
type OrderStore interface {
	InsertOrder(ctx context.Context, order *models.PendingOrder) (uint, error)
}

// CouponStore looks coupons up by canonical code. FindByCode returns
// models.ErrNotFound for unknown codes.
type CouponStore interface {
	FindByCode(ctx context.Context, code string) (*models.Coupon, error)
	IncrementUsage(ctx context.Context, id uint) error
}

// DiscountProvider returns the tier percentage for a user id ("" for guests).
type DiscountProvider interface {
	UserTierDiscountPercent(ctx context.Context, userID string) int
}

// MessagingSink hands the order summary to an external channel and returns
// the URI or reference it produced.
type MessagingSink interface {
	Send(ctx context.Context, destination, text string) (string, error)
}

type discardSink struct{}

func (discardSink) Send(context.Context, string, string) (string, error) { return "", nil }

// TierDiscount gives logged-in users a flat percentage.
type TierDiscount struct {
	Percent int
}

func (t TierDiscount) UserTierDiscountPercent(_ context.Context, userID string) int {
	if userID == "" {
		return 0
	}
	return t.Percent
}

type Config struct {
	StoreName   string
	Destination string
	OrderPrefix string
	Shipping    ShippingPolicy
	FormatPrice func(int64) string
}

type Deps struct {
	Sessions *SessionManager
	Catalog  *Catalog
	Orders   OrderStore
	Coupons  CouponStore
	Tiers    DiscountProvider
	Sink     MessagingSink
	Notifier Notifier
	Logger   *zap.Logger
}

// Engine owns cart mutation, pricing, coupons and checkout.
type Engine struct {
	cfg      Config
	sessions *SessionManager
	catalog  *Catalog
	orders   OrderStore
	coupons  CouponStore
	tiers    DiscountProvider
	sink     MessagingSink
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
	hooks    hooks
	numbers  orderNumbers
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func NewEngine(cfg Config, deps Deps, opts ...Option) *Engine {
	if cfg.OrderPrefix == "" {
		cfg.OrderPrefix = "WEB"
	}
	if cfg.FormatPrice == nil {
		cfg.FormatPrice = func(v int64) string { return fmt.Sprintf("$%d", v) }
	}
	e := &Engine{
		cfg:      cfg,
		sessions: deps.Sessions,
		catalog:  deps.Catalog,
		orders:   deps.Orders,
		coupons:  deps.Coupons,
		tiers:    deps.Tiers,
		sink:     deps.Sink,
		notifier: deps.Notifier,
		logger:   deps.Logger,
		now:      time.Now,
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	if e.notifier == nil {
		e.notifier = SessionNotifier{}
	}
	if e.tiers == nil {
		e.tiers = TierDiscount{}
	}
	if e.sink == nil {
		e.sink = discardSink{}
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Sessions() *SessionManager { return e.sessions }

func (e *Engine) Catalog() *Catalog { return e.catalog }

func (e *Engine) notify(s *Session, level NoticeLevel, msg string) {
	e.notifier.Notify(s, Notice{Level: level, Message: msg})
}

// commit installs next as the session cart and persists it. Caller holds s.mu.
func (e *Engine) commit(ctx context.Context, s *Session, next Cart) {
	s.cart = next
	if err := e.sessions.saveCart(ctx, s); err != nil {
		e.logger.Error("Failed to save cart", zap.String("session", s.ID), zap.Error(err))
		e.notify(s, NoticeWarning, "Your cart could not be saved on this device")
	}
	e.hooks.afterMutation(ctx, s.ID, next)
}

// AddItem adds quantity units of a catalog product snapshot.
func (e *Engine) AddItem(ctx context.Context, s *Session, p models.Product, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.cart.add(p, quantity)
	if err != nil {
		e.logger.Info("Add to cart rejected",
			zap.String("session", s.ID), zap.Uint("product_id", p.ID),
			zap.Int("quantity", quantity), zap.Int("stock", p.Stock), zap.Error(err))
		e.notify(s, NoticeError, userMessage(err))
		return err
	}
	e.commit(ctx, s, next)
	e.notify(s, NoticeSuccess, "Product added to cart")
	return nil
}

// AddProduct resolves productID against the catalog snapshot and adds it.
func (e *Engine) AddProduct(ctx context.Context, s *Session, productID uint, quantity int) error {
	p, ok := e.catalog.Find(productID)
	if !ok {
		e.notify(s, NoticeError, userMessage(ErrProductNotFound))
		return ErrProductNotFound
	}
	return e.AddItem(ctx, s, p, quantity)
}

// ChangeQuantity applies delta to a line; a result <= 0 removes the line.
func (e *Engine) ChangeQuantity(ctx context.Context, s *Session, productID uint, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, removed, err := s.cart.changeQuantity(productID, delta)
	if err != nil {
		e.notify(s, NoticeError, userMessage(err))
		return err
	}
	e.commit(ctx, s, next)
	if removed {
		e.notify(s, NoticeSuccess, "Product removed")
	}
	return nil
}

// RemoveItem deletes a line. Confirmation is the caller's concern.
func (e *Engine) RemoveItem(ctx context.Context, s *Session, productID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.cart.remove(productID)
	if err != nil {
		e.notify(s, NoticeError, userMessage(err))
		return err
	}
	e.commit(ctx, s, next)
	e.notify(s, NoticeSuccess, "Product removed")
	return nil
}

// Clear empties the cart and deletes its storage entry.
func (e *Engine) Clear(ctx context.Context, s *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := e.clearLocked(ctx, s)
	e.notify(s, NoticeSuccess, "Cart emptied")
	return err
}

func (e *Engine) clearLocked(ctx context.Context, s *Session) error {
	s.cart = nil
	err := e.sessions.deleteCart(ctx, s)
	if err != nil {
		e.logger.Error("Failed to delete stored cart", zap.String("session", s.ID), zap.Error(err))
	}
	e.hooks.afterMutation(ctx, s.ID, nil)
	return err
}

// View is the priced cart as shown to the shopper.
type View struct {
	Items      Cart        `json:"items"`
	ItemCount  int         `json:"item_count"`
	CouponCode string      `json:"coupon_code,omitempty"`
	Totals     Totals      `json:"totals"`
	PriceLines []PriceLine `json:"price_lines"`
}

// Quote prices the session cart. Coupon validity is re-checked on every call.
func (e *Engine) Quote(ctx context.Context, s *Session) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	stack := e.discountStack(ctx, s)
	totals := ComputeTotals(s.cart, stack, e.cfg.Shipping)
	v := View{
		Items:      s.cart.clone(),
		ItemCount:  s.cart.ItemCount(),
		Totals:     totals,
		PriceLines: e.priceLines(totals),
	}
	if v.Items == nil {
		v.Items = Cart{}
	}
	if s.coupon != nil {
		v.CouponCode = s.coupon.Code
	}
	return v
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, ErrInsufficientStock):
		return "Insufficient stock"
	case errors.Is(err, ErrInvalidQuantity):
		return "Quantity must be at least 1"
	case errors.Is(err, ErrLineNotFound):
		return "That product is not in your cart"
	case errors.Is(err, ErrProductNotFound):
		return "Product not available"
	case errors.Is(err, ErrEmptyCart):
		return "Your cart is empty"
	case errors.Is(err, ErrBusy):
		return "Your order is already being processed"
	case errors.Is(err, ErrCouponInvalid):
		switch CouponReasonOf(err) {
		case CouponExpired:
			return "Coupon has expired"
		case CouponUsageExceeded:
			return "Coupon usage limit reached"
		case CouponBelowMinimum:
			return err.Error()
		default:
			return "Invalid coupon"
		}
	default:
		return "Something went wrong, please try again"
	}
}

package cart

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/Govind-619/storefront/models"
	"go.uber.org/zap"
)

// State is a checkout saga step. Steps never roll back earlier ones.
type State string

const (
	StateIdle          State = "idle"
	StateSubmitting    State = "submitting"
	StatePersisted     State = "persisted"
	StatePersistFailed State = "persist_failed"
	StateNotified      State = "notified"
	StateCleared       State = "cleared"
)

// StockWarning flags a line that exceeds the latest catalog snapshot.
type StockWarning struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

// Receipt is the outcome of one checkout.
type Receipt struct {
	OrderNumber    string         `json:"order_number"`
	OrderID        uint           `json:"order_id,omitempty"`
	SessionID      string         `json:"-"`
	UserID         string         `json:"-"`
	Items          Cart           `json:"items"`
	Totals         Totals         `json:"totals"`
	CouponCode     string         `json:"coupon_code,omitempty"`
	Persisted      bool           `json:"persisted"`
	PersistError   error          `json:"-"`
	Message        string         `json:"message"`
	DispatchURI    string         `json:"dispatch_uri,omitempty"`
	DispatchError  error          `json:"-"`
	ClearError     error          `json:"-"`
	CouponConsumed bool           `json:"coupon_consumed"`
	StockWarnings  []StockWarning `json:"stock_warnings,omitempty"`
	States         []State        `json:"states"`
	CreatedAt      time.Time      `json:"created_at"`
}

func (r *Receipt) enter(st State) {
	r.States = append(r.States, st)
}

// Checkout submits the session cart as an order and resets the cart. Only
// EmptyCart and ErrBusy abort; persistence, dispatch and coupon usage
// failures are reported on the receipt and through notices.
func (e *Engine) Checkout(ctx context.Context, s *Session) (*Receipt, error) {
	if !s.checkingOut.CompareAndSwap(false, true) {
		e.logger.Warn("Checkout already in flight", zap.String("session", s.ID))
		return nil, ErrBusy
	}
	defer s.checkingOut.Store(false)

	s.mu.Lock()
	defer s.mu.Unlock()

	r := &Receipt{SessionID: s.ID, UserID: s.userID, CreatedAt: e.now()}
	r.enter(StateIdle)
	if len(s.cart) == 0 {
		e.notify(s, NoticeError, userMessage(ErrEmptyCart))
		return nil, ErrEmptyCart
	}
	r.enter(StateSubmitting)

	stack := e.discountStack(ctx, s)
	r.Items = s.cart.clone()
	r.Totals = ComputeTotals(r.Items, stack, e.cfg.Shipping)
	r.OrderNumber = e.numbers.next(e.cfg.OrderPrefix, r.CreatedAt)
	coupon := s.coupon
	if coupon != nil {
		r.CouponCode = coupon.Code
		if !stack.has(SourceCoupon) {
			// Revalidation lookup failed; no discount was given, so no use is counted.
			coupon = nil
		}
	}
	r.StockWarnings = e.checkStock(r.Items)
	if len(r.StockWarnings) > 0 {
		e.notify(s, NoticeWarning, "Some items may no longer be fully in stock; the store will confirm availability")
	}

	e.persist(ctx, s, r)

	r.Message = e.composeMessage(r.OrderNumber, r.Items, r.Totals, r.Persisted)
	uri, err := e.sink.Send(ctx, e.cfg.Destination, r.Message)
	if err != nil {
		r.DispatchError = err
		e.logger.Error("Failed to dispatch order message", zap.String("order_number", r.OrderNumber), zap.Error(err))
		e.notify(s, NoticeError, "Could not open the messaging channel for your order")
	} else {
		r.DispatchURI = uri
		e.notify(s, NoticeSuccess, "Order sent successfully!")
	}
	r.enter(StateNotified)

	e.setCoupon(ctx, s, nil)
	if err := e.clearLocked(ctx, s); err != nil {
		r.ClearError = err
		e.notify(s, NoticeWarning, "Your cart could not be cleared on this device")
	}
	r.enter(StateCleared)

	if coupon != nil && r.Persisted {
		if err := e.coupons.IncrementUsage(ctx, coupon.ID); err != nil {
			e.logger.Error("Failed to record coupon usage",
				zap.String("code", coupon.Code), zap.String("order_number", r.OrderNumber), zap.Error(err))
		} else {
			r.CouponConsumed = true
		}
	}

	e.logger.Info("Checkout finished",
		zap.String("session", s.ID),
		zap.String("order_number", r.OrderNumber),
		zap.Bool("persisted", r.Persisted),
		zap.Int64("total", r.Totals.Total))
	e.hooks.afterCheckout(ctx, *r)
	return r, nil
}

func (e *Engine) persist(ctx context.Context, s *Session, r *Receipt) {
	order := &models.PendingOrder{
		OrderNumber: r.OrderNumber,
		Subtotal:    r.Totals.RawSubtotal,
		Shipping:    r.Totals.Shipping,
		Total:       r.Totals.Total,
		Status:      models.OrderStatusPending,
		CreatedFrom: models.OrderSourceWeb,
		SessionID:   s.ID,
		UserID:      s.userID,
		CouponCode:  r.CouponCode,
		CreatedAt:   r.CreatedAt,
	}
	for _, l := range r.Items {
		order.Items = append(order.Items, models.OrderLine{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal(),
			ImageURL:  l.ImageURL,
		})
	}
	for _, d := range r.Totals.Discounts {
		order.Discounts = append(order.Discounts, models.OrderDiscount{
			Source:  string(d.Source),
			Label:   d.Label,
			Percent: d.Percent,
			Amount:  d.Amount,
		})
	}

	id, err := e.orders.InsertOrder(ctx, order)
	if err != nil {
		r.PersistError = fmt.Errorf("%w: %v", ErrOrderPersistFailed, err)
		r.enter(StatePersistFailed)
		e.logger.Error("Failed to save order", zap.String("order_number", r.OrderNumber), zap.Error(err))
		e.notify(s, NoticeWarning, "Your order could not be recorded; the store will confirm it manually")
		return
	}
	r.OrderID = id
	r.Persisted = true
	r.enter(StatePersisted)
	e.logger.Info("Order saved", zap.String("order_number", r.OrderNumber), zap.Uint("order_id", id))
}

// checkStock compares lines with the catalog snapshot. Products missing from
// the snapshot are not flagged since the snapshot may be empty or stale.
func (e *Engine) checkStock(items Cart) []StockWarning {
	if e.catalog == nil {
		return nil
	}
	var out []StockWarning
	for _, l := range items {
		p, ok := e.catalog.Find(l.ProductID)
		if ok && l.Quantity > p.Stock {
			out = append(out, StockWarning{ProductID: l.ProductID, Name: l.Name, Requested: l.Quantity, Available: p.Stock})
		}
	}
	return out
}

// orderNumbers issues "<prefix>-<unix micros>", bumped forward on collision
// within the process.
type orderNumbers struct {
	mu   sync.Mutex
	last int64
}

func (g *orderNumbers) next(prefix string, now time.Time) string {
	g.mu.Lock()
	v := now.UnixMicro()
	if v <= g.last {
		v = g.last + 1
	}
	g.last = v
	g.mu.Unlock()
	return prefix + "-" + strconv.FormatInt(v, 10)
}

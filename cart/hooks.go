package cart

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// MutationHook runs after every successful cart mutation with a copy of the
// new lines.
type MutationHook func(ctx context.Context, sessionID string, lines Cart)

// PriceLineDecorator may rewrite a price line before it is shown or sent.
type PriceLineDecorator func(PriceLine) PriceLine

// CheckoutHook observes a finished checkout.
type CheckoutHook func(ctx context.Context, r Receipt)

type hooks struct {
	mutation   []MutationHook
	decorators []PriceLineDecorator
	checkout   []CheckoutHook
}

// Option configures an Engine at composition time.
type Option func(*Engine)

func WithMutationHook(h MutationHook) Option {
	return func(e *Engine) { e.hooks.mutation = append(e.hooks.mutation, h) }
}

func WithPriceLineDecorator(d PriceLineDecorator) Option {
	return func(e *Engine) { e.hooks.decorators = append(e.hooks.decorators, d) }
}

func WithCheckoutHook(h CheckoutHook) Option {
	return func(e *Engine) { e.hooks.checkout = append(e.hooks.checkout, h) }
}

func (h *hooks) afterMutation(ctx context.Context, sessionID string, lines Cart) {
	for _, fn := range h.mutation {
		fn(ctx, sessionID, lines.clone())
	}
}

func (h *hooks) decorate(pl PriceLine) PriceLine {
	for _, fn := range h.decorators {
		pl = fn(pl)
	}
	return pl
}

func (h *hooks) afterCheckout(ctx context.Context, r Receipt) {
	for _, fn := range h.checkout {
		fn(ctx, r)
	}
}

// UserOrderCounter records one more order for a logged-in user.
type UserOrderCounter interface {
	IncrementUserOrders(ctx context.Context, userID string, at time.Time) error
}

// CountUserOrders returns a CheckoutHook that bumps the logged-in shopper's
// order count for every recorded order. Guests and unrecorded orders are
// skipped; a counter failure is logged only.
func CountUserOrders(counter UserOrderCounter, logger *zap.Logger) CheckoutHook {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, r Receipt) {
		if r.UserID == "" || !r.Persisted {
			return
		}
		if err := counter.IncrementUserOrders(ctx, r.UserID, r.CreatedAt); err != nil {
			logger.Error("Failed to count user order",
				zap.String("user", r.UserID), zap.String("order_number", r.OrderNumber), zap.Error(err))
		}
	}
}

package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Govind-619/storefront/models"
	"go.uber.org/zap"
)

// ValidateCoupon checks c against the cart's raw subtotal at now. Shoppers
// see an inactive coupon as an unknown one.
func ValidateCoupon(c *models.Coupon, rawSubtotal int64, now time.Time) error {
	switch {
	case !c.Active:
		return &CouponError{Code: c.Code, Reason: CouponInactive}
	case c.Exhausted():
		return &CouponError{Code: c.Code, Reason: CouponUsageExceeded}
	case c.Expired(now):
		return &CouponError{Code: c.Code, Reason: CouponExpired}
	case rawSubtotal < c.MinPurchase:
		return &CouponError{Code: c.Code, Reason: CouponBelowMinimum, MinPurchase: c.MinPurchase}
	}
	return nil
}

// ApplyCoupon makes code the single active coupon for s. On any failure the
// previously active coupon is kept.
func (e *Engine) ApplyCoupon(ctx context.Context, s *Session, code string) (*models.Coupon, error) {
	code = models.CanonicalCouponCode(code)
	if code == "" {
		err := &CouponError{Code: code, Reason: CouponNotFound}
		e.notify(s, NoticeError, userMessage(err))
		return nil, err
	}

	coupon, err := e.coupons.FindByCode(ctx, code)
	if errors.Is(err, models.ErrNotFound) {
		err := &CouponError{Code: code, Reason: CouponNotFound}
		e.logger.Info("Coupon not found", zap.String("session", s.ID), zap.String("code", code))
		e.notify(s, NoticeError, userMessage(err))
		return nil, err
	}
	if err != nil {
		e.logger.Error("Coupon lookup failed", zap.String("code", code), zap.Error(err))
		e.notify(s, NoticeError, "Could not verify the coupon, please try again")
		return nil, fmt.Errorf("lookup coupon %s: %w", code, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ValidateCoupon(coupon, s.cart.Subtotal(), e.now()); err != nil {
		e.logger.Info("Coupon rejected", zap.String("session", s.ID), zap.String("code", code),
			zap.String("reason", string(CouponReasonOf(err))))
		if CouponReasonOf(err) == CouponBelowMinimum {
			e.notify(s, NoticeError, fmt.Sprintf("Minimum purchase of %s required", e.cfg.FormatPrice(coupon.MinPurchase)))
		} else {
			e.notify(s, NoticeError, userMessage(err))
		}
		return nil, err
	}

	applied := *coupon
	e.setCoupon(ctx, s, &applied)
	e.logger.Info("Coupon applied", zap.String("session", s.ID), zap.String("code", code),
		zap.Int("percent", coupon.DiscountPercent))
	e.notify(s, NoticeSuccess, fmt.Sprintf("Coupon applied! %d%% off", coupon.DiscountPercent))
	return &applied, nil
}

// RemoveCoupon clears the active coupon.
func (e *Engine) RemoveCoupon(ctx context.Context, s *Session) {
	s.mu.Lock()
	e.setCoupon(ctx, s, nil)
	s.mu.Unlock()
	e.notify(s, NoticeInfo, "Coupon removed")
}

// setCoupon installs c as the active coupon and persists its code. Caller
// holds s.mu.
func (e *Engine) setCoupon(ctx context.Context, s *Session, c *models.Coupon) {
	s.coupon = c
	if err := e.sessions.saveCoupon(ctx, s); err != nil {
		e.logger.Warn("Failed to save active coupon", zap.String("session", s.ID), zap.Error(err))
	}
}

// discountStack builds the ordered discounts for s: user tier, then coupon.
// The active coupon is re-read and dropped once it stops being valid. Caller
// holds s.mu.
func (e *Engine) discountStack(ctx context.Context, s *Session) DiscountStack {
	var stack DiscountStack
	if pct := e.tiers.UserTierDiscountPercent(ctx, s.userID); pct > 0 {
		stack = append(stack, Discount{Source: SourceUserTier, Label: "Registered user discount", Percent: pct})
	}

	if s.coupon == nil {
		return stack
	}
	fresh, err := e.coupons.FindByCode(ctx, s.coupon.Code)
	switch {
	case errors.Is(err, models.ErrNotFound) || (err == nil && !fresh.ValidAt(e.now())):
		e.logger.Info("Active coupon no longer valid", zap.String("session", s.ID), zap.String("code", s.coupon.Code))
		e.notify(s, NoticeWarning, fmt.Sprintf("Coupon %s is no longer valid", s.coupon.Code))
		e.setCoupon(ctx, s, nil)
		return stack
	case err != nil:
		e.logger.Warn("Coupon revalidation failed, skipping discount", zap.String("code", s.coupon.Code), zap.Error(err))
		return stack
	}
	applied := *fresh
	s.coupon = &applied
	return append(stack, Discount{
		Source:  SourceCoupon,
		Label:   "Coupon " + fresh.Code,
		Percent: fresh.DiscountPercent,
	})
}

package cart

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrCouponInvalid      = errors.New("coupon invalid")
	ErrOrderPersistFailed = errors.New("order could not be recorded")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	ErrLineNotFound       = errors.New("item not in cart")
	ErrProductNotFound    = errors.New("product not found")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrBusy               = errors.New("operation already in progress")
)

// CouponReason names the condition a coupon failed.
type CouponReason string

const (
	CouponNotFound      CouponReason = "not_found"
	CouponInactive      CouponReason = "inactive"
	CouponExpired       CouponReason = "expired"
	CouponUsageExceeded CouponReason = "usage_exceeded"
	CouponBelowMinimum  CouponReason = "below_minimum"
)

// CouponError reports why a coupon was rejected. It matches ErrCouponInvalid
// with errors.Is.
type CouponError struct {
	Code        string
	Reason      CouponReason
	MinPurchase int64
}

func (e *CouponError) Error() string {
	switch e.Reason {
	case CouponNotFound, CouponInactive:
		return fmt.Sprintf("coupon %s not found", e.Code)
	case CouponExpired:
		return fmt.Sprintf("coupon %s has expired", e.Code)
	case CouponUsageExceeded:
		return fmt.Sprintf("coupon %s usage limit reached", e.Code)
	case CouponBelowMinimum:
		return fmt.Sprintf("coupon %s requires a minimum purchase of %d", e.Code, e.MinPurchase)
	default:
		return fmt.Sprintf("coupon %s invalid", e.Code)
	}
}

func (e *CouponError) Is(target error) bool {
	return target == ErrCouponInvalid
}

// CouponReasonOf extracts the rejection reason, or "" when err is not a
// coupon error.
func CouponReasonOf(err error) CouponReason {
	var ce *CouponError
	if errors.As(err, &ce) {
		return ce.Reason
	}
	return ""
}

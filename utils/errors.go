package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Govind-619/storefront/cart"
	"github.com/Govind-619/storefront/models"
	"github.com/Govind-619/storefront/storage"
)

// AppError represents an application error
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// BadRequestError creates a 400 Bad Request error
func BadRequestError(message string, err error) *AppError {
	return NewAppError(http.StatusBadRequest, message, err)
}

// NotFoundError creates a 404 Not Found error
func NotFoundError(message string, err error) *AppError {
	return NewAppError(http.StatusNotFound, message, err)
}

// ConflictError creates a 409 Conflict error
func ConflictError(message string, err error) *AppError {
	return NewAppError(http.StatusConflict, message, err)
}

// ServiceUnavailableError creates a 503 Service Unavailable error
func ServiceUnavailableError(message string, err error) *AppError {
	return NewAppError(http.StatusServiceUnavailable, message, err)
}

// GetAppError returns the AppError if the error is an AppError
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// FromError maps engine and storage errors onto HTTP errors.
func FromError(err error) *AppError {
	if appErr := GetAppError(err); appErr != nil {
		return appErr
	}
	switch {
	case errors.Is(err, cart.ErrCouponInvalid):
		e := BadRequestError("Invalid coupon", err)
		reason := cart.CouponReasonOf(err)
		if reason == cart.CouponInactive {
			reason = cart.CouponNotFound
		}
		e.Reason = string(reason)
		return e
	case errors.Is(err, cart.ErrInsufficientStock):
		return BadRequestError("Insufficient stock", err)
	case errors.Is(err, cart.ErrInvalidQuantity):
		return BadRequestError("Quantity must be at least 1", err)
	case errors.Is(err, cart.ErrEmptyCart):
		return BadRequestError("Cart is empty", err)
	case errors.Is(err, cart.ErrLineNotFound):
		return NotFoundError("Item not in cart", err)
	case errors.Is(err, cart.ErrProductNotFound), errors.Is(err, models.ErrNotFound):
		return NotFoundError("Not found", err)
	case errors.Is(err, cart.ErrBusy):
		return ConflictError("Operation already in progress", err)
	case errors.Is(err, storage.ErrDuplicate):
		return ConflictError("Already exists", err)
	case errors.Is(err, cart.ErrCatalogUnavailable):
		return ServiceUnavailableError("Catalog unavailable", err)
	default:
		return NewAppError(http.StatusInternalServerError, "Internal server error", err)
	}
}

package utils

// Application constants
const (
	AppName    = "storefront"
	APIVersion = "v1"
)

// Response messages
const (
	MsgCartFetched      = "Cart retrieved successfully"
	MsgItemAdded        = "Product added to cart"
	MsgCartUpdated      = "Cart updated successfully"
	MsgItemRemoved      = "Product removed from cart"
	MsgCartCleared      = "Cart emptied"
	MsgCouponApplied    = "Coupon applied successfully"
	MsgCouponRemoved    = "Coupon removed successfully"
	MsgOrderSent        = "Order sent"
	MsgProductsFetched  = "Products retrieved successfully"
	MsgProductsRefresh  = "Products reloaded"
	MsgProductUpdated   = "Product updated successfully"
	MsgFavoritesFetched = "Favorites retrieved successfully"
	MsgCreateSuccess    = "Created successfully"
	MsgDeleteSuccess    = "Deleted successfully"

	ErrInvalidRequest     = "Invalid request"
	ErrConfirmRequired    = "Confirmation required: repeat the request with confirm=true"
	ErrInvalidProductID   = "Invalid product ID"
	ErrInvalidCouponID    = "Invalid coupon ID"
	ErrInvalidToken       = "Invalid or expired token"
	ErrUnauthorized       = "Unauthorized access"
	ErrForbidden          = "Access forbidden"
	ErrInternalServer     = "Internal server error"
	ErrServiceUnavailable = "Service unavailable"
)

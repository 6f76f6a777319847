package controllers

import (
	"context"
	"strconv"

	"github.com/Govind-619/storefront/cart"
	"github.com/Govind-619/storefront/middleware"
	"github.com/Govind-619/storefront/models"
	"github.com/Govind-619/storefront/utils"
	"github.com/gin-gonic/gin"
)

// CouponAdmin is the coupon management surface behind the admin routes.
type CouponAdmin interface {
	CreateCoupon(ctx context.Context, c *models.Coupon) error
	ListCoupons(ctx context.Context) ([]models.Coupon, error)
	DeleteCoupon(ctx context.Context, id uint) error
}

// OrderLookup finds recorded orders for receipts.
type OrderLookup interface {
	FindOrderByNumber(ctx context.Context, number string) (*models.PendingOrder, error)
}

// ProductAdmin is the inventory surface behind the admin routes.
type ProductAdmin interface {
	ListInventory(ctx context.Context, f models.InventoryFilter) ([]models.Product, int64, error)
	UpdateProduct(ctx context.Context, id uint, u models.ProductUpdate) (*models.Product, error)
}

// CustomerStatsLookup reads a logged-in shopper's order counters.
type CustomerStatsLookup interface {
	CustomerStats(ctx context.Context, userID string) (*models.CustomerStats, error)
}

// Controller carries the dependencies shared by every handler.
type Controller struct {
	Engine      *cart.Engine
	Coupons     CouponAdmin
	Orders      OrderLookup
	Products    ProductAdmin
	Customers   CustomerStatsLookup
	StoreName   string
	FormatPrice func(int64) string
}

func (ctl *Controller) formatPrice(v int64) string {
	if ctl.FormatPrice == nil {
		return "$" + strconv.FormatInt(v, 10)
	}
	return ctl.FormatPrice(v)
}

const heldSessionKey = "cart_session"

// shopperSession resolves the engine session for the request and records the
// caller's login state on it. The session is held until SessionScope
// releases it after the handler returns.
func (ctl *Controller) shopperSession(c *gin.Context) *cart.Session {
	if v, ok := c.Get(heldSessionKey); ok {
		return v.(*cart.Session)
	}
	s := ctl.Engine.Sessions().Get(c.Request.Context(), c.GetString(middleware.SessionIDKey))
	s.SetUser(c.GetString(middleware.UserIDKey))
	c.Set(heldSessionKey, s)
	return s
}

// SessionScope releases the session a handler resolved once the request is
// done, so idle shoppers are reloaded from storage on their next request.
func (ctl *Controller) SessionScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if v, ok := c.Get(heldSessionKey); ok {
				ctl.Engine.Sessions().Release(v.(*cart.Session))
			}
		}()
		c.Next()
	}
}

// productID parses the :id path parameter.
func productID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// respondView writes the priced cart with the session's pending notices.
func (ctl *Controller) respondView(c *gin.Context, s *cart.Session, message string) {
	view := ctl.Engine.Quote(c.Request.Context(), s)
	utils.AttachNotices(c, s.Notices())
	utils.Success(c, message, view)
}

// respondErr writes err with the session's pending notices.
func respondErr(c *gin.Context, s *cart.Session, err error) {
	if s != nil {
		utils.AttachNotices(c, s.Notices())
	}
	utils.RespondError(c, err)
}

func confirmed(c *gin.Context) bool {
	ok, _ := strconv.ParseBool(c.Query("confirm"))
	return ok
}

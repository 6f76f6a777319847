package controllers

import (
	"time"

	"github.com/Govind-619/storefront/models"
	"github.com/Govind-619/storefront/utils"
	"github.com/gin-gonic/gin"
)

// CreateCouponRequest represents the request body for creating a coupon
type CreateCouponRequest struct {
	Code            string `json:"code" binding:"required"`
	DiscountPercent int    `json:"discount_percent" binding:"required,min=1,max=100"`
	Expiry          string `json:"expiry" binding:"required"`
	MinPurchase     int64  `json:"min_purchase" binding:"min=0"`
	MaxUses         int    `json:"max_uses" binding:"min=0"`
}

// parseExpiry accepts RFC 3339 or a bare date, which expires at the end of
// that day in UTC.
func parseExpiry(s string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.Add(24*time.Hour - time.Second), true
	}
	return time.Time{}, false
}

// CreateCoupon handles the creation of a new coupon
func (ctl *Controller) CreateCoupon(c *gin.Context) {
	utils.LogInfo("CreateCoupon called")

	var req CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid coupon request format: %v", err)
		utils.BadRequest(c, utils.ErrInvalidRequest, err.Error())
		return
	}
	code := models.CanonicalCouponCode(req.Code)
	var errs utils.FieldValidationErrors
	errs.Add("code", utils.ValidateCouponCode(code))
	expiry, ok := parseExpiry(req.Expiry)
	switch {
	case !ok:
		errs.Add("expiry", "use YYYY-MM-DD or RFC 3339")
	case !expiry.After(time.Now()):
		errs.Add("expiry", "must be in the future")
	}
	if len(errs) > 0 {
		utils.LogError("Coupon validation failed: %v", errs)
		utils.BadRequest(c, utils.ErrInvalidRequest, errs)
		return
	}
	if req.MaxUses == 0 {
		req.MaxUses = models.DefaultCouponMaxUses
	}

	coupon := &models.Coupon{
		Code:            code,
		DiscountPercent: req.DiscountPercent,
		Expiry:          expiry,
		MinPurchase:     req.MinPurchase,
		MaxUses:         req.MaxUses,
		Active:          true,
	}
	if err := ctl.Coupons.CreateCoupon(c.Request.Context(), coupon); err != nil {
		utils.LogError("Failed to create coupon %s: %v", code, err)
		utils.RespondError(c, err)
		return
	}

	utils.LogInfo("Coupon %s created with %d%% discount", coupon.Code, coupon.DiscountPercent)
	utils.Created(c, utils.MsgCreateSuccess, gin.H{"coupon": coupon})
}

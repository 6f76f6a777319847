package controllers

import (
	"github.com/Govind-619/storefront/utils"
	"github.com/gin-gonic/gin"
)

// ApplyCouponRequest represents the request body for applying a coupon
type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// ApplyCoupon makes the code the active coupon for the session
func (ctl *Controller) ApplyCoupon(c *gin.Context) {
	utils.LogInfo("ApplyCoupon called")

	var req ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid coupon request: %v", err)
		utils.BadRequest(c, utils.ErrInvalidRequest, err.Error())
		return
	}

	s := ctl.shopperSession(c)
	utils.LogInfo("Attempting to apply coupon code: %s for session: %s", req.Code, s.ID)
	if _, err := ctl.Engine.ApplyCoupon(c.Request.Context(), s, req.Code); err != nil {
		respondErr(c, s, err)
		return
	}
	ctl.respondView(c, s, utils.MsgCouponApplied)
}

// RemoveCoupon clears the active coupon
func (ctl *Controller) RemoveCoupon(c *gin.Context) {
	utils.LogInfo("RemoveCoupon called")
	s := ctl.shopperSession(c)
	ctl.Engine.RemoveCoupon(c.Request.Context(), s)
	ctl.respondView(c, s, utils.MsgCouponRemoved)
}

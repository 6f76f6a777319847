package controllers

import (
	"strconv"

	"github.com/Govind-619/storefront/utils"
	"github.com/gin-gonic/gin"
)

// ListCoupons lists every coupon with its usage
func (ctl *Controller) ListCoupons(c *gin.Context) {
	utils.LogDebug("ListCoupons called")

	coupons, err := ctl.Coupons.ListCoupons(c.Request.Context())
	if err != nil {
		utils.LogError("Failed to list coupons: %v", err)
		utils.RespondError(c, err)
		return
	}
	p := utils.NewPagination(c)
	utils.SuccessWithPagination(c, "Coupons retrieved successfully", utils.Slice(p, coupons), p)
}

// DeleteCoupon removes a coupon by ID
func (ctl *Controller) DeleteCoupon(c *gin.Context) {
	utils.LogInfo("DeleteCoupon called")

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.BadRequest(c, utils.ErrInvalidCouponID, nil)
		return
	}
	if err := ctl.Coupons.DeleteCoupon(c.Request.Context(), uint(id)); err != nil {
		utils.LogError("Failed to delete coupon %d: %v", id, err)
		utils.RespondError(c, err)
		return
	}
	utils.LogInfo("Coupon %d deleted", id)
	utils.Success(c, utils.MsgDeleteSuccess, nil)
}

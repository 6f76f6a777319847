package controllers

import (
	"github.com/Govind-619/storefront/middleware"
	"github.com/Govind-619/storefront/utils"
	"github.com/gin-gonic/gin"
)

// GetAccountStats returns the logged-in shopper's order count
func (ctl *Controller) GetAccountStats(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		utils.Unauthorized(c, "Please login for access")
		return
	}
	stats, err := ctl.Customers.CustomerStats(c.Request.Context(), userID)
	if err != nil {
		utils.LogError("Failed to load stats for user %s: %v", userID, err)
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Account retrieved successfully", gin.H{"stats": stats})
}

package controllers

import (
	"github.com/Govind-619/storefront/utils"
	"github.com/gin-gonic/gin"
)

// GetCart returns the priced cart for the current session
func (ctl *Controller) GetCart(c *gin.Context) {
	utils.LogDebug("GetCart called")
	s := ctl.shopperSession(c)
	ctl.respondView(c, s, utils.MsgCartFetched)
}

// CartCount returns the badge count only
func (ctl *Controller) CartCount(c *gin.Context) {
	s := ctl.shopperSession(c)
	utils.Success(c, utils.MsgCartFetched, gin.H{"item_count": s.Cart().ItemCount()})
}

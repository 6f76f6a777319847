package controllers

import (
	"github.com/Govind-619/storefront/utils"
	"github.com/gin-gonic/gin"
)

type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// AddToCart adds a catalog product to the session cart
func (ctl *Controller) AddToCart(c *gin.Context) {
	utils.LogInfo("AddToCart called")

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid add to cart request: %v", err)
		utils.BadRequest(c, utils.ErrInvalidRequest, err.Error())
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	s := ctl.shopperSession(c)
	utils.LogInfo("Adding product ID: %d with quantity: %d for session: %s", req.ProductID, req.Quantity, s.ID)
	if err := ctl.Engine.AddProduct(c.Request.Context(), s, req.ProductID, req.Quantity); err != nil {
		respondErr(c, s, err)
		return
	}
	ctl.respondView(c, s, utils.MsgItemAdded)
}

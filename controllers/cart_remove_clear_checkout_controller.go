package controllers

import (
	"errors"
	"net/http"

	"github.com/Govind-619/storefront/cart"
	"github.com/Govind-619/storefront/utils"
	"github.com/gin-gonic/gin"
)

// RemoveCartItem deletes a line once the shopper confirmed
func (ctl *Controller) RemoveCartItem(c *gin.Context) {
	utils.LogInfo("RemoveCartItem called")

	id, ok := productID(c)
	if !ok {
		utils.BadRequest(c, utils.ErrInvalidProductID, nil)
		return
	}
	if !confirmed(c) {
		utils.Error(c, http.StatusPreconditionRequired, utils.ErrConfirmRequired, nil)
		return
	}

	s := ctl.shopperSession(c)
	if err := ctl.Engine.RemoveItem(c.Request.Context(), s, id); err != nil {
		respondErr(c, s, err)
		return
	}
	ctl.respondView(c, s, utils.MsgItemRemoved)
}

// ClearCart empties the cart once the shopper confirmed
func (ctl *Controller) ClearCart(c *gin.Context) {
	utils.LogInfo("ClearCart called")

	if !confirmed(c) {
		utils.Error(c, http.StatusPreconditionRequired, utils.ErrConfirmRequired, nil)
		return
	}
	s := ctl.shopperSession(c)
	if len(s.Cart()) == 0 {
		respondErr(c, s, cart.ErrEmptyCart)
		return
	}
	if err := ctl.Engine.Clear(c.Request.Context(), s); err != nil {
		utils.LogError("Cart cleared but storage delete failed for session %s: %v", s.ID, err)
	}
	ctl.respondView(c, s, utils.MsgCartCleared)
}

// Checkout submits the cart as an order. The response is 200 whenever the
// order message was produced, even if the order could not be recorded.
func (ctl *Controller) Checkout(c *gin.Context) {
	utils.LogInfo("Checkout called")

	s := ctl.shopperSession(c)
	receipt, err := ctl.Engine.Checkout(c.Request.Context(), s)
	if err != nil {
		if !errors.Is(err, cart.ErrEmptyCart) && !errors.Is(err, cart.ErrBusy) {
			utils.LogError("Checkout failed for session %s: %v", s.ID, err)
		}
		respondErr(c, s, err)
		return
	}

	utils.LogInfo("Order %s submitted for session %s (persisted=%t)", receipt.OrderNumber, s.ID, receipt.Persisted)
	utils.AttachNotices(c, s.Notices())
	utils.Success(c, utils.MsgOrderSent, gin.H{
		"receipt":      receipt,
		"redirect_url": receipt.DispatchURI,
		"item_count":   0,
	})
}

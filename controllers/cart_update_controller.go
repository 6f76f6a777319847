package controllers

import (
	"github.com/Govind-619/storefront/utils"
	"github.com/gin-gonic/gin"
)

// UpdateCartRequest carries either an explicit delta or an action.
type UpdateCartRequest struct {
	Delta  int    `json:"delta"`
	Action string `json:"action"`
}

func (r UpdateCartRequest) delta() (int, bool) {
	switch r.Action {
	case "increment":
		return 1, true
	case "decrement":
		return -1, true
	case "":
		return r.Delta, r.Delta != 0
	default:
		return 0, false
	}
}

// UpdateCartItem changes a line's quantity; dropping to zero removes it
func (ctl *Controller) UpdateCartItem(c *gin.Context) {
	utils.LogInfo("UpdateCartItem called")

	id, ok := productID(c)
	if !ok {
		utils.BadRequest(c, utils.ErrInvalidProductID, nil)
		return
	}
	var req UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, utils.ErrInvalidRequest, err.Error())
		return
	}
	delta, ok := req.delta()
	if !ok {
		utils.BadRequest(c, "Provide a non-zero delta or action increment|decrement", nil)
		return
	}

	s := ctl.shopperSession(c)
	if err := ctl.Engine.ChangeQuantity(c.Request.Context(), s, id, delta); err != nil {
		respondErr(c, s, err)
		return
	}
	ctl.respondView(c, s, utils.MsgCartUpdated)
}

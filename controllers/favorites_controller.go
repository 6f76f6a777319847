package controllers

import (
	"github.com/Govind-619/storefront/utils"
	"github.com/gin-gonic/gin"
)

// GetFavorites lists the session's favorite products
func (ctl *Controller) GetFavorites(c *gin.Context) {
	s := ctl.shopperSession(c)
	utils.Success(c, utils.MsgFavoritesFetched, gin.H{"favorites": ctl.Engine.Favorites(s)})
}

// ToggleFavorite adds or removes a product from favorites
func (ctl *Controller) ToggleFavorite(c *gin.Context) {
	utils.LogInfo("ToggleFavorite called")

	id, ok := productID(c)
	if !ok {
		utils.BadRequest(c, utils.ErrInvalidProductID, nil)
		return
	}
	s := ctl.shopperSession(c)
	added, err := ctl.Engine.ToggleFavorite(c.Request.Context(), s, id)
	if err != nil {
		respondErr(c, s, err)
		return
	}
	utils.AttachNotices(c, s.Notices())
	utils.Success(c, "Favorites updated", gin.H{"added": added, "favorites": ctl.Engine.Favorites(s)})
}

package controllers

import (
	"errors"
	"net/http"

	"github.com/Govind-619/storefront/cart"
	"github.com/Govind-619/storefront/utils"
	"github.com/gin-gonic/gin"
)

// ListProducts returns the filtered catalog snapshot
func (ctl *Controller) ListProducts(c *gin.Context) {
	utils.LogDebug("ListProducts called")

	search := c.Query("search")
	if msg := utils.ValidateSearch(search); msg != "" {
		utils.BadRequest(c, utils.ErrInvalidRequest, utils.FieldValidationErrors{{Field: "search", Message: msg}})
		return
	}

	catalog := ctl.Engine.Catalog()
	products := catalog.Query(cart.Filter{
		Category:   c.Query("category"),
		Search:     search,
		Stock:      c.Query("stock"),
		PriceRange: c.Query("price"),
		Sort:       c.Query("sort"),
	})

	p := utils.NewPagination(c)
	page := utils.Slice(p, products)
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": utils.MsgProductsFetched,
		"data": gin.H{
			"products":   page,
			"categories": append([]string{cart.AllCategories}, catalog.Categories()...),
			"loaded_at":  catalog.LoadedAt(),
		},
		"pagination": gin.H{
			"total":       p.Total,
			"page":        p.Page,
			"per_page":    p.Limit,
			"total_pages": p.LastPage,
		},
	})
}

// RefreshProducts reloads the catalog snapshot from the store
func (ctl *Controller) RefreshProducts(c *gin.Context) {
	utils.LogInfo("RefreshProducts called")

	n, err := ctl.Engine.Catalog().Refresh(c.Request.Context())
	if err != nil {
		if !errors.Is(err, cart.ErrBusy) {
			utils.LogError("Catalog refresh failed: %v", err)
		}
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, utils.MsgProductsRefresh, gin.H{"count": n})
}

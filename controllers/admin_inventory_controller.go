package controllers

import (
	"errors"
	"strings"

	"github.com/Govind-619/storefront/cart"
	"github.com/Govind-619/storefront/models"
	"github.com/Govind-619/storefront/utils"
	"github.com/gin-gonic/gin"
)

// AdminListProducts shows every product with its stock, filtered, sorted and paginated
func (ctl *Controller) AdminListProducts(c *gin.Context) {
	utils.LogDebug("AdminListProducts called")

	name := c.Query("name")
	if msg := utils.ValidateSearch(name); msg != "" {
		utils.BadRequest(c, utils.ErrInvalidRequest, utils.FieldValidationErrors{{Field: "name", Message: msg}})
		return
	}

	p := utils.NewPagination(c)
	products, total, err := ctl.Products.ListInventory(c.Request.Context(), models.InventoryFilter{
		Name:     name,
		Category: c.Query("category"),
		Stock:    c.Query("stock"),
		Sort:     c.Query("sort"),
		Offset:   p.Offset,
		Limit:    p.Limit,
	})
	if err != nil {
		utils.LogError("Failed to list inventory: %v", err)
		utils.RespondError(c, err)
		return
	}
	p.SetTotal(total)
	utils.SuccessWithPagination(c, utils.MsgProductsFetched, products, p)
}

// UpdateProductRequest carries the admin-editable product fields
type UpdateProductRequest struct {
	Stock    *int    `json:"stock" binding:"omitempty,min=0"`
	Category *string `json:"category"`
}

// AdminUpdateProduct sets a product's stock or category and reloads the catalog
func (ctl *Controller) AdminUpdateProduct(c *gin.Context) {
	utils.LogInfo("AdminUpdateProduct called")

	id, ok := productID(c)
	if !ok {
		utils.BadRequest(c, utils.ErrInvalidProductID, nil)
		return
	}
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid product update format: %v", err)
		utils.BadRequest(c, utils.ErrInvalidRequest, err.Error())
		return
	}

	update := models.ProductUpdate{Stock: req.Stock}
	var errs utils.FieldValidationErrors
	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		if err := utils.ValidateStringLength(category, 1, 64); err != nil {
			errs.Add("category", err.Error())
		} else if ok, msg := utils.ValidateXSS(category); !ok {
			errs.Add("category", msg)
		}
		update.Category = &category
	}
	if update.Empty() {
		errs.Add("stock", "stock or category is required")
	}
	if len(errs) > 0 {
		utils.BadRequest(c, utils.ErrInvalidRequest, errs)
		return
	}

	product, err := ctl.Products.UpdateProduct(c.Request.Context(), id, update)
	if err != nil {
		utils.LogError("Failed to update product %d: %v", id, err)
		utils.RespondError(c, err)
		return
	}
	utils.LogInfo("Product %d updated: stock=%d category=%s", id, product.Stock, product.Category)

	refreshed := true
	if _, err := ctl.Engine.Catalog().Refresh(c.Request.Context()); err != nil {
		refreshed = false
		if !errors.Is(err, cart.ErrBusy) {
			utils.LogError("Catalog refresh after product update failed: %v", err)
		}
	}
	utils.Success(c, utils.MsgProductUpdated, gin.H{"product": product, "catalog_refreshed": refreshed})
}

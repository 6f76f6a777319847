package routes

import (
	"github.com/Govind-619/storefront/controllers"
	"github.com/gin-gonic/gin"
)

func initShopperRoutes(api *gin.RouterGroup, ctl *controllers.Controller) {
	api.GET("/products", ctl.ListProducts)

	cart := api.Group("/cart")
	{
		cart.GET("", ctl.GetCart)
		cart.GET("/count", ctl.CartCount)
		cart.DELETE("", ctl.ClearCart)
		cart.POST("/items", ctl.AddToCart)
		cart.PATCH("/items/:id", ctl.UpdateCartItem)
		cart.DELETE("/items/:id", ctl.RemoveCartItem)
		cart.POST("/coupon", ctl.ApplyCoupon)
		cart.DELETE("/coupon", ctl.RemoveCoupon)
		cart.POST("/checkout", ctl.Checkout)
	}

	favorites := api.Group("/favorites")
	{
		favorites.GET("", ctl.GetFavorites)
		favorites.POST("/:id", ctl.ToggleFavorite)
	}

	api.GET("/orders/:number/receipt", ctl.DownloadReceipt)
	api.GET("/account/stats", ctl.GetAccountStats)
}

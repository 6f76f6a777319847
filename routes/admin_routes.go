package routes

import (
	"github.com/Govind-619/storefront/controllers"
	"github.com/Govind-619/storefront/middleware"
	"github.com/gin-gonic/gin"
)

func initAdminRoutes(api *gin.RouterGroup, ctl *controllers.Controller, jwtSecret string) {
	admin := api.Group("/admin")
	admin.Use(middleware.AdminOnly(jwtSecret))
	{
		admin.GET("/products", ctl.AdminListProducts)
		admin.PATCH("/products/:id", ctl.AdminUpdateProduct)
		admin.POST("/products/refresh", ctl.RefreshProducts)

		admin.GET("/coupons", ctl.ListCoupons)
		admin.POST("/coupons", ctl.CreateCoupon)
		admin.DELETE("/coupons/:id", ctl.DeleteCoupon)
		admin.GET("/coupons/export", ctl.ExportCoupons)
	}
}

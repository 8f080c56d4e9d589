package routes

import (
	"github.com/Nikhil-407/TrendMart/controllers"
	"github.com/Nikhil-407/TrendMart/middleware"
	"github.com/gin-gonic/gin"
)

// initAdminRoutes initializes all admin-related routes
func initAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		// Category management
		admin.GET("/categories", controllers.AdminListCategories)
		admin.POST("/categories", controllers.AdminCreateCategory)

		// Product management
		admin.GET("/products", controllers.AdminListProducts)
		admin.POST("/products", controllers.AdminCreateProduct)
		admin.PUT("/products/:id", controllers.AdminUpdateProduct)
		admin.PATCH("/products/:id/stock", controllers.AdminAdjustStock)

		// Offer management
		admin.GET("/offers", controllers.AdminListOffers)
		admin.POST("/offers", controllers.AdminCreateOffer)
		admin.PUT("/offers/:id", controllers.AdminUpdateOffer)
		admin.DELETE("/offers/:id", controllers.AdminDeleteOffer)

		// Coupon management
		admin.GET("/coupons", controllers.AdminListCoupons)
		admin.POST("/coupons", controllers.AdminCreateCoupon)
		admin.PUT("/coupons/:id", controllers.AdminUpdateCoupon)
		admin.DELETE("/coupons/:id", controllers.AdminDeleteCoupon)

		// Order management
		admin.GET("/orders", controllers.AdminListOrders)
		admin.PATCH("/orders/:id/status", controllers.AdminUpdateOrderStatus)
		admin.PATCH("/orders/:id/items/:itemId/status", controllers.AdminUpdateItemStatus)

		// Return review
		admin.GET("/returns", controllers.AdminListReturnRequests)
		admin.POST("/orders/:id/return/review", controllers.AdminReviewOrderReturn)
		admin.POST("/orders/:id/items/:itemId/return/review", controllers.AdminReviewItemReturn)

		// Invoices (admins can fetch any order's invoice)
		admin.GET("/orders/:id/invoice", controllers.DownloadInvoice)
	}
}

package routes

import (
	"github.com/Nikhil-407/TrendMart/controllers"
	"github.com/Nikhil-407/TrendMart/middleware"
	"github.com/gin-gonic/gin"
)

// initUserRoutes initializes all user-related routes
func initUserRoutes(router *gin.RouterGroup) {
	// Public routes (no authentication required)
	router.POST("/register", controllers.RegisterUser)
	router.POST("/login", controllers.LoginUser)

	// Catalog routes
	router.GET("/products", controllers.ListProducts)
	router.GET("/products/:id", controllers.GetProductDetails)

	// Protected routes (require authentication)
	protected := router.Group("/user")
	protected.Use(middleware.AuthMiddleware())
	{
		// Cart operations
		protected.POST("/cart/add", controllers.AddToCart)
		protected.GET("/cart", controllers.GetCart)
		protected.PUT("/cart/update", controllers.UpdateCartItem)
		protected.DELETE("/cart/remove", controllers.RemoveFromCart)
		protected.DELETE("/cart/clear", controllers.ClearCart)

		// Checkout
		protected.GET("/checkout/summary", controllers.GetCheckoutSummary)
		protected.POST("/checkout", controllers.PlaceOrder)

		// Orders
		protected.GET("/orders", controllers.ListOrders)
		protected.GET("/orders/:id", controllers.GetOrder)
		protected.POST("/orders/:id/cancel", controllers.CancelOrder)
		protected.POST("/orders/:id/items/:itemId/cancel", controllers.CancelOrderItem)
		protected.POST("/orders/:id/return", controllers.ReturnOrder)
		protected.GET("/orders/:id/invoice", controllers.DownloadInvoice)

		// Payments
		protected.POST("/payment/initiate", controllers.InitiateUPIPayment)
		protected.POST("/payment/verify", controllers.VerifyUPIPayment)

		// Wallet
		protected.GET("/wallet", controllers.GetWallet)
		protected.POST("/wallet/topup/initiate", controllers.InitiateWalletTopUp)
		protected.POST("/wallet/topup/verify", controllers.VerifyWalletTopUp)
	}
}

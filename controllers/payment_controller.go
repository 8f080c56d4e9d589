package controllers

import (
	"fmt"
	"os"
	"strconv"

	"github.com/Nikhil-407/TrendMart/config"
	"github.com/Nikhil-407/TrendMart/models"
	"github.com/Nikhil-407/TrendMart/utils"
	"github.com/gin-gonic/gin"
	razorpay "github.com/razorpay/razorpay-go"
)

// InitiateUPIPayment creates a gateway order for an unpaid UPI order
func InitiateUPIPayment(c *gin.Context) {
	utils.LogInfo("InitiateUPIPayment called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req struct {
		OrderID uint `json:"order_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request. order_id is required", err.Error())
		return
	}

	var order models.Order
	if err := config.DB.Where("id = ? AND user_id = ?", req.OrderID, user.ID).First(&order).Error; err != nil {
		utils.LogError("Order not found for ID: %d, user ID: %d", req.OrderID, user.ID)
		utils.NotFound(c, "Order not found")
		return
	}

	if order.PaymentMethod != models.PaymentMethodUPI {
		utils.BadRequest(c, "Order is not a UPI order", nil)
		return
	}
	if order.PaymentStatus == models.PaymentStatusPaid {
		utils.LogError("Payment already completed - Order ID: %d", order.ID)
		utils.BadRequest(c, "Payment for this order has already been completed", nil)
		return
	}

	amountPaise := int(utils.RoundMoney(order.TotalAmount) * 100)
	client := razorpay.NewClient(os.Getenv("RAZORPAY_KEY"), os.Getenv("RAZORPAY_SECRET"))
	orderData := map[string]interface{}{
		"amount":          amountPaise,
		"currency":        "INR",
		"receipt":         "order_rcpt_" + strconv.FormatUint(uint64(order.ID), 10),
		"payment_capture": 1,
	}
	gatewayOrder, err := client.Order.Create(orderData, nil)
	if err != nil {
		utils.LogError("Failed to create gateway order for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to create payment order", err.Error())
		return
	}

	gatewayOrderID := fmt.Sprintf("%v", gatewayOrder["id"])
	if err := config.DB.Model(&order).UpdateColumn("gateway_order_id", gatewayOrderID).Error; err != nil {
		utils.LogError("Failed to store gateway order id for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to update order details", err.Error())
		return
	}
	utils.LogInfo("Payment initiated for order ID: %d, gateway order: %s", order.ID, gatewayOrderID)

	utils.Success(c, "Payment initiated successfully", gin.H{
		"order_id":         order.ID,
		"gateway_order_id": gatewayOrderID,
		"amount":           fmt.Sprintf("%.2f", order.TotalAmount),
		"key":              os.Getenv("RAZORPAY_KEY"),
	})
}

// VerifyUPIPayment validates the gateway signature and settles an unpaid UPI
// order as paid
func VerifyUPIPayment(c *gin.Context) {
	utils.LogInfo("VerifyUPIPayment called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req struct {
		OrderID          uint   `json:"order_id" binding:"required"`
		GatewayOrderID   string `json:"gateway_order_id" binding:"required"`
		GatewayPaymentID string `json:"gateway_payment_id" binding:"required"`
		GatewaySignature string `json:"gateway_signature" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if !utils.VerifyPaymentSignature(req.GatewayOrderID, req.GatewayPaymentID, req.GatewaySignature, os.Getenv("RAZORPAY_SECRET")) {
		utils.LogError("Payment verification failed for order ID: %d, user ID: %d", req.OrderID, user.ID)
		utils.BadRequest(c, "Payment verification failed", gin.H{"retry": true})
		return
	}

	var order models.Order
	if err := config.DB.Where("id = ? AND user_id = ?", req.OrderID, user.ID).First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	if order.GatewayOrderID != req.GatewayOrderID {
		utils.LogError("Gateway order ID mismatch for order ID: %d. Expected: %s, Received: %s", req.OrderID, order.GatewayOrderID, req.GatewayOrderID)
		utils.BadRequest(c, "Invalid gateway order ID", nil)
		return
	}
	if order.PaymentStatus == models.PaymentStatusPaid {
		utils.BadRequest(c, "Payment for this order has already been completed", nil)
		return
	}

	if err := config.DB.Model(&order).UpdateColumn("payment_status", models.PaymentStatusPaid).Error; err != nil {
		utils.LogError("Failed to mark order paid - Order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to update order", err.Error())
		return
	}
	order.PaymentStatus = models.PaymentStatusPaid
	utils.LogInfo("Payment verified and settled for order ID: %d", order.ID)

	utils.Success(c, "Thank you for your payment! Your order is confirmed.", gin.H{
		"order_id":       order.ID,
		"payment_status": order.PaymentStatus,
		"total_amount":   fmt.Sprintf("%.2f", order.TotalAmount),
	})
}

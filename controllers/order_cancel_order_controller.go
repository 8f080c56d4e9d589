package controllers

import (
	"fmt"
	"strconv"

	"github.com/Nikhil-407/TrendMart/config"
	"github.com/Nikhil-407/TrendMart/models"
	"github.com/Nikhil-407/TrendMart/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CancelOrder cancels an entire order while it is still pending. Paid orders
// are refunded to the wallet and reserved stock is restored, all in one
// transaction.
func CancelOrder(c *gin.Context) {
	utils.LogInfo("CancelOrder called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}
	user := userVal.(models.User)

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}
	utils.LogDebug("Processing cancellation for order ID: %d", orderID)

	var order models.Order
	if err := config.DB.Preload("Items").Where("id = ? AND user_id = ?", orderID, user.ID).First(&order).Error; err != nil {
		utils.LogError("Order not found - Order ID: %d, User ID: %d: %v", orderID, user.ID, err)
		utils.NotFound(c, "Order not found")
		return
	}

	if order.Status == models.OrderStatusCancelled {
		utils.LogError("Order already cancelled - Order ID: %d", orderID)
		utils.BadRequest(c, "Order already cancelled", nil)
		return
	}
	if order.Status != models.OrderStatusPending {
		utils.LogError("Order cannot be cancelled - Order ID: %d, Status: %s", orderID, order.Status)
		utils.BadRequest(c, "Order cannot be cancelled once it has shipped", nil)
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to begin transaction for order ID: %d: %v", orderID, tx.Error)
		utils.InternalServerError(c, "Failed to begin transaction", nil)
		return
	}

	// Restore reserved stock for every unit that was live.
	for _, item := range order.Items {
		if item.Status == models.OrderStatusCancelled {
			continue
		}
		if err := restoreStock(tx, item.ProductID, item.Quantity); err != nil {
			tx.Rollback()
			utils.LogError("Failed to restore stock for product ID: %d, order ID: %d: %v", item.ProductID, orderID, err)
			utils.InternalServerError(c, "Failed to restore product stock", nil)
			return
		}
		utils.LogDebug("Restored stock for product ID: %d, quantity: %d", item.ProductID, item.Quantity)
	}

	if err := tx.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).
		UpdateColumn("status", models.OrderStatusCancelled).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to cancel order items - Order ID: %d: %v", orderID, err)
		utils.InternalServerError(c, "Failed to update order items", nil)
		return
	}

	order.Status = models.OrderStatusCancelled

	// Items canceled individually were already refunded, so the order-level
	// refund covers only the items that were still live.
	refundAmount := utils.OrderRefundAmount(order.Items)
	refunded := false
	if order.PaymentStatus == models.PaymentStatusPaid && refundAmount > 0 {
		orderIDUint := uint(orderID)
		reference := fmt.Sprintf("REFUND-ORDER-%d", orderID)
		description := fmt.Sprintf("Refund for cancelled order #%d", orderID)
		if _, err := utils.CreditWallet(tx, user.ID, refundAmount, description, &orderIDUint, reference); err != nil {
			tx.Rollback()
			utils.LogError("Failed to credit refund - Order ID: %d: %v", orderID, err)
			utils.InternalServerError(c, "Failed to process refund", nil)
			return
		}
		refunded = true
		utils.LogDebug("Credited refund of %.2f for order ID: %d", refundAmount, orderID)
	}
	if order.PaymentStatus == models.PaymentStatusPaid {
		order.IsRefunded = true
	}

	if err := tx.Save(&order).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to update order status - Order ID: %d: %v", orderID, err)
		utils.InternalServerError(c, "Failed to update order", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit transaction - Order ID: %d: %v", orderID, err)
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}
	utils.LogInfo("Order cancelled - Order ID: %d, refunded: %v", orderID, refunded)

	response := gin.H{
		"id":     order.ID,
		"status": order.Status,
	}
	if refunded {
		response["refund_amount"] = fmt.Sprintf("%.2f", refundAmount)
		response["refund_to"] = "wallet"
	}
	utils.Success(c, "Order cancelled", gin.H{"order": response})
}

// restoreStock returns reserved units to a product unless it is unlimited.
func restoreStock(tx *gorm.DB, productID uint, quantity int) error {
	return tx.Model(&models.Product{}).
		Where("id = ? AND is_unlimited = ?", productID, false).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", quantity)).Error
}

package controllers

import (
	"fmt"
	"strconv"

	"github.com/Nikhil-407/TrendMart/config"
	"github.com/Nikhil-407/TrendMart/models"
	"github.com/Nikhil-407/TrendMart/utils"
	"github.com/gin-gonic/gin"
)

// CancelOrderItem cancels a single line of a pending order. The item's
// refund is its frozen total minus its share of the order discount; the
// order-level status is re-derived from the remaining items.
func CancelOrderItem(c *gin.Context) {
	utils.LogInfo("CancelOrderItem called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}
	user := userVal.(models.User)

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}
	itemID, err := strconv.Atoi(c.Param("itemId"))
	if err != nil {
		utils.BadRequest(c, "Invalid item ID", nil)
		return
	}
	utils.LogDebug("Processing cancellation for order ID: %d, item ID: %d", orderID, itemID)

	var order models.Order
	if err := config.DB.Preload("Items").Where("id = ? AND user_id = ?", orderID, user.ID).First(&order).Error; err != nil {
		utils.LogError("Order not found - Order ID: %d, User ID: %d", orderID, user.ID)
		utils.NotFound(c, "Order not found")
		return
	}

	var item *models.OrderItem
	for i := range order.Items {
		if order.Items[i].ID == uint(itemID) {
			item = &order.Items[i]
			break
		}
	}
	if item == nil {
		utils.LogError("Item not found - Order ID: %d, Item ID: %d", orderID, itemID)
		utils.NotFound(c, "Order item not found")
		return
	}

	if item.Status == models.OrderStatusCancelled {
		utils.LogError("Item already cancelled - Order ID: %d, Item ID: %d", orderID, itemID)
		utils.BadRequest(c, "Item already cancelled", nil)
		return
	}
	if item.Status != models.OrderStatusPending {
		utils.LogError("Item cannot be cancelled - Order ID: %d, Item ID: %d, Status: %s", orderID, itemID, item.Status)
		utils.BadRequest(c, "Item cannot be cancelled once it has shipped", nil)
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to begin transaction for order ID: %d: %v", orderID, tx.Error)
		utils.InternalServerError(c, "Failed to begin transaction", nil)
		return
	}

	if err := restoreStock(tx, item.ProductID, item.Quantity); err != nil {
		tx.Rollback()
		utils.LogError("Failed to restore stock for product ID: %d: %v", item.ProductID, err)
		utils.InternalServerError(c, "Failed to restore product stock", nil)
		return
	}

	item.Status = models.OrderStatusCancelled
	if err := tx.Model(&models.OrderItem{}).Where("id = ?", item.ID).
		UpdateColumn("status", models.OrderStatusCancelled).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to cancel item - Order ID: %d, Item ID: %d: %v", orderID, itemID, err)
		utils.InternalServerError(c, "Failed to update order item", nil)
		return
	}

	refundAmount := utils.ItemRefundAmount(item)
	refunded := false
	if order.PaymentStatus == models.PaymentStatusPaid {
		orderIDUint := order.ID
		reference := fmt.Sprintf("REFUND-ORDER-%d-ITEM-%d", order.ID, item.ID)
		description := fmt.Sprintf("Refund for cancelled item in order #%d", order.ID)
		if _, err := utils.CreditWallet(tx, user.ID, refundAmount, description, &orderIDUint, reference); err != nil {
			tx.Rollback()
			utils.LogError("Failed to credit item refund - Order ID: %d, Item ID: %d: %v", orderID, itemID, err)
			utils.InternalServerError(c, "Failed to process refund", nil)
			return
		}
		refunded = true
		utils.LogDebug("Credited item refund of %.2f for order ID: %d", refundAmount, orderID)
	}

	order.Status = utils.DeriveOrderStatus(order.Items)
	if order.Status == models.OrderStatusCancelled && order.PaymentStatus == models.PaymentStatusPaid {
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
	utils.LogInfo("Item cancelled - Order ID: %d, Item ID: %d, refunded: %v", orderID, itemID, refunded)

	response := gin.H{
		"order_id":    order.ID,
		"item_id":     item.ID,
		"item_status": item.Status,
		"status":      order.Status,
	}
	if refunded {
		response["refund_amount"] = fmt.Sprintf("%.2f", refundAmount)
		response["refund_to"] = "wallet"
	}
	utils.Success(c, "Order item cancelled", gin.H{"order": response})
}

package controllers

import (
	"strconv"

	"github.com/Nikhil-407/TrendMart/config"
	"github.com/Nikhil-407/TrendMart/models"
	"github.com/Nikhil-407/TrendMart/utils"
	"github.com/gin-gonic/gin"
)

// ReturnOrder files a return request for a delivered order. Every delivered
// item moves to return requested; money only moves on admin approval.
func ReturnOrder(c *gin.Context) {
	utils.LogInfo("ReturnOrder called")
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

	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Missing return reason for order ID: %d: %v", orderID, err)
		utils.BadRequest(c, "Return reason is required", nil)
		return
	}

	var order models.Order
	if err := config.DB.Preload("Items").Where("id = ? AND user_id = ?", orderID, user.ID).First(&order).Error; err != nil {
		utils.LogError("Order not found - Order ID: %d: %v", orderID, err)
		utils.NotFound(c, "Order not found")
		return
	}

	if order.Status != models.OrderStatusDelivered {
		utils.LogError("Order cannot be returned - Order ID: %d, Status: %s", orderID, order.Status)
		utils.BadRequest(c, "Only delivered orders can be returned", nil)
		return
	}
	if order.ReturnStatus != models.ReturnStatusNone {
		utils.LogError("Return already requested - Order ID: %d, Return Status: %s", orderID, order.ReturnStatus)
		utils.BadRequest(c, "A return has already been requested for this order", nil)
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to begin transaction for order ID: %d: %v", orderID, tx.Error)
		utils.InternalServerError(c, "Failed to begin transaction", nil)
		return
	}

	requested := 0
	for i := range order.Items {
		item := &order.Items[i]
		if item.Status != models.OrderStatusDelivered || item.ReturnStatus != models.ReturnStatusNone {
			continue
		}
		item.ReturnStatus = models.ReturnStatusRequested
		item.ReturnReason = req.Reason
		if err := tx.Model(&models.OrderItem{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
			"return_status": models.ReturnStatusRequested,
			"return_reason": req.Reason,
		}).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to update order item - Order ID: %d, Item ID: %d: %v", orderID, item.ID, err)
			utils.InternalServerError(c, "Failed to update order items", nil)
			return
		}
		requested++
	}
	if requested == 0 {
		tx.Rollback()
		utils.LogError("No items eligible for return - Order ID: %d", orderID)
		utils.BadRequest(c, "No items in this order are eligible for return", nil)
		return
	}

	order.ReturnStatus = utils.DeriveReturnStatus(order.Items)
	order.ReturnReason = req.Reason
	if err := tx.Save(&order).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to update order - Order ID: %d: %v", orderID, err)
		utils.InternalServerError(c, "Failed to update order", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit transaction - Order ID: %d: %v", orderID, err)
		utils.InternalServerError(c, "Failed to submit return request", nil)
		return
	}
	utils.LogInfo("Return requested - Order ID: %d, items: %d", orderID, requested)

	utils.Success(c, "Return request submitted successfully", gin.H{
		"order": gin.H{
			"id":            order.ID,
			"status":        order.Status,
			"return_status": order.ReturnStatus,
			"items_count":   requested,
		},
		"note": "Your return request has been submitted. Our team will review it and process the refund on approval.",
	})
}

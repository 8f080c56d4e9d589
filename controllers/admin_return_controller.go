package controllers

import (
	"fmt"
	"strconv"

	"github.com/Nikhil-407/TrendMart/config"
	"github.com/Nikhil-407/TrendMart/models"
	"github.com/Nikhil-407/TrendMart/utils"
	"github.com/gin-gonic/gin"
)

// AdminListReturnRequests returns orders with a pending return request
func AdminListReturnRequests(c *gin.Context) {
	utils.LogInfo("AdminListReturnRequests called")
	pagination := utils.NewPagination(c)

	var total int64
	if err := config.DB.Model(&models.Order{}).Where("return_status = ?", models.ReturnStatusRequested).Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch return requests", nil)
		return
	}

	var orders []models.Order
	if err := config.DB.Preload("Items.Product").
		Where("return_status = ?", models.ReturnStatusRequested).
		Order("updated_at desc").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch return requests: %v", err)
		utils.InternalServerError(c, "Failed to fetch return requests", nil)
		return
	}

	responses := make([]gin.H, 0, len(orders))
	for i := range orders {
		entry := orderResponse(&orders[i])
		entry["user_id"] = orders[i].UserID
		entry["return_reason"] = orders[i].ReturnReason
		responses = append(responses, entry)
	}

	utils.SuccessWithPagination(c, "Return requests retrieved successfully", responses, total, pagination.Page, pagination.Limit)
}

// AdminReviewItemReturn approves or rejects one item's return request.
// Approval credits the refund (frozen item total minus its discount share)
// to the user's wallet in the same transaction that marks the item returned,
// so a failed credit never leaves an approved return behind.
func AdminReviewItemReturn(c *gin.Context) {
	utils.LogInfo("AdminReviewItemReturn called")

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

	var req struct {
		Approve bool `json:"approve"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var order models.Order
	if err := config.DB.Preload("Items").First(&order, orderID).Error; err != nil {
		utils.LogError("Order not found - Order ID: %d: %v", orderID, err)
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
		utils.NotFound(c, "Order item not found")
		return
	}

	if item.ReturnStatus != models.ReturnStatusRequested {
		utils.LogError("No pending return for item - Order ID: %d, Item ID: %d, Status: %s", orderID, itemID, item.ReturnStatus)
		utils.BadRequest(c, "No pending return request for this item", nil)
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to begin transaction", nil)
		return
	}

	var refundAmount float64
	if req.Approve {
		refundAmount = utils.ItemRefundAmount(item)
		reference := fmt.Sprintf("RETURN-ORDER-%d-ITEM-%d", order.ID, item.ID)
		description := fmt.Sprintf("Refund for returned item in order #%d", order.ID)
		if _, err := utils.CreditWallet(tx, order.UserID, refundAmount, description, &order.ID, reference); err != nil {
			tx.Rollback()
			utils.LogError("Failed to credit return refund - Order ID: %d, Item ID: %d: %v", orderID, itemID, err)
			utils.InternalServerError(c, "Failed to process refund", nil)
			return
		}

		if err := restoreStock(tx, item.ProductID, item.Quantity); err != nil {
			tx.Rollback()
			utils.LogError("Failed to restore stock for returned item - Product ID: %d: %v", item.ProductID, err)
			utils.InternalServerError(c, "Failed to restore product stock", nil)
			return
		}

		item.Status = models.OrderStatusReturned
		item.ReturnStatus = models.ReturnStatusApproved
	} else {
		item.ReturnStatus = models.ReturnStatusRejected
	}

	if err := tx.Model(&models.OrderItem{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
		"status":        item.Status,
		"return_status": item.ReturnStatus,
	}).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to update item return status - Item ID: %d: %v", itemID, err)
		utils.InternalServerError(c, "Failed to update order item", nil)
		return
	}

	order.ReturnStatus = utils.DeriveReturnStatus(order.Items)
	if req.Approve && order.ReturnStatus != models.ReturnStatusRequested {
		// No requests left pending and at least this refund went out.
		order.IsRefunded = true
	}
	if err := tx.Save(&order).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to update order return status - Order ID: %d: %v", orderID, err)
		utils.InternalServerError(c, "Failed to update order", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	if req.Approve {
		utils.LogInfo("Return approved - Order ID: %d, Item ID: %d, refund: %.2f", orderID, itemID, refundAmount)
		utils.Success(c, "Return approved and refunded to wallet", gin.H{
			"order":         orderResponse(&order),
			"refund_amount": fmt.Sprintf("%.2f", refundAmount),
		})
		return
	}
	utils.LogInfo("Return rejected - Order ID: %d, Item ID: %d", orderID, itemID)
	utils.Success(c, "Return request rejected", gin.H{"order": orderResponse(&order)})
}

// AdminReviewOrderReturn reviews every pending item return on an order at once
func AdminReviewOrderReturn(c *gin.Context) {
	utils.LogInfo("AdminReviewOrderReturn called")

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var req struct {
		Approve bool `json:"approve"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var order models.Order
	if err := config.DB.Preload("Items").First(&order, orderID).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	if order.ReturnStatus != models.ReturnStatusRequested {
		utils.BadRequest(c, "No pending return request for this order", nil)
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to begin transaction", nil)
		return
	}

	var totalRefund float64
	reviewed := 0
	for i := range order.Items {
		item := &order.Items[i]
		if item.ReturnStatus != models.ReturnStatusRequested {
			continue
		}
		reviewed++

		if req.Approve {
			refund := utils.ItemRefundAmount(item)
			reference := fmt.Sprintf("RETURN-ORDER-%d-ITEM-%d", order.ID, item.ID)
			description := fmt.Sprintf("Refund for returned item in order #%d", order.ID)
			if _, err := utils.CreditWallet(tx, order.UserID, refund, description, &order.ID, reference); err != nil {
				tx.Rollback()
				utils.LogError("Failed to credit return refund - Order ID: %d, Item ID: %d: %v", orderID, item.ID, err)
				utils.InternalServerError(c, "Failed to process refund", nil)
				return
			}
			if err := restoreStock(tx, item.ProductID, item.Quantity); err != nil {
				tx.Rollback()
				utils.InternalServerError(c, "Failed to restore product stock", nil)
				return
			}
			totalRefund = utils.RoundMoney(totalRefund + refund)
			item.Status = models.OrderStatusReturned
			item.ReturnStatus = models.ReturnStatusApproved
		} else {
			item.ReturnStatus = models.ReturnStatusRejected
		}

		if err := tx.Model(&models.OrderItem{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
			"status":        item.Status,
			"return_status": item.ReturnStatus,
		}).Error; err != nil {
			tx.Rollback()
			utils.InternalServerError(c, "Failed to update order items", nil)
			return
		}
	}
	if reviewed == 0 {
		tx.Rollback()
		utils.BadRequest(c, "No pending return request for this order", nil)
		return
	}

	order.ReturnStatus = utils.DeriveReturnStatus(order.Items)
	if req.Approve {
		order.IsRefunded = true
	}
	if err := tx.Save(&order).Error; err != nil {
		tx.Rollback()
		utils.InternalServerError(c, "Failed to update order", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	if req.Approve {
		utils.LogInfo("Order return approved - Order ID: %d, refund: %.2f", orderID, totalRefund)
		utils.Success(c, "Return approved and refunded to wallet", gin.H{
			"order":         orderResponse(&order),
			"refund_amount": fmt.Sprintf("%.2f", totalRefund),
		})
		return
	}
	utils.LogInfo("Order return rejected - Order ID: %d", orderID)
	utils.Success(c, "Return request rejected", gin.H{"order": orderResponse(&order)})
}

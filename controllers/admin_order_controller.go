package controllers

import (
	"strconv"

	"github.com/Nikhil-407/TrendMart/config"
	"github.com/Nikhil-407/TrendMart/models"
	"github.com/Nikhil-407/TrendMart/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// validStatusTransitions is the forward path of the fulfilment state machine.
// Cancellation and returns run through their own flows.
var validStatusTransitions = map[string]string{
	models.OrderStatusPending: models.OrderStatusShipped,
	models.OrderStatusShipped: models.OrderStatusDelivered,
}

// AdminListOrders returns all orders, newest first
func AdminListOrders(c *gin.Context) {
	utils.LogInfo("AdminListOrders called")
	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Order{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count orders: %v", err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}

	var orders []models.Order
	findQuery := config.DB.Preload("Items.Product")
	if status := c.Query("status"); status != "" {
		findQuery = findQuery.Where("status = ?", status)
	}
	if err := findQuery.Order("created_at desc").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders: %v", err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}

	responses := make([]gin.H, 0, len(orders))
	for i := range orders {
		entry := orderResponse(&orders[i])
		entry["user_id"] = orders[i].UserID
		responses = append(responses, entry)
	}

	utils.SuccessWithPagination(c, "Orders retrieved successfully", responses, total, pagination.Page, pagination.Limit)
}

// AdminUpdateOrderStatus advances every live item of an order one step along
// pending -> shipped -> delivered, then re-derives the order status.
func AdminUpdateOrderStatus(c *gin.Context) {
	utils.LogInfo("AdminUpdateOrderStatus called")

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Status is required", nil)
		return
	}

	var order models.Order
	if err := config.DB.Preload("Items").First(&order, orderID).Error; err != nil {
		utils.LogError("Order not found - Order ID: %d: %v", orderID, err)
		utils.NotFound(c, "Order not found")
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to begin transaction", nil)
		return
	}

	updated := 0
	for i := range order.Items {
		item := &order.Items[i]
		if validStatusTransitions[item.Status] != req.Status {
			continue
		}
		item.Status = req.Status
		if err := tx.Model(&models.OrderItem{}).Where("id = ?", item.ID).
			UpdateColumn("status", req.Status).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to update item status - Order ID: %d, Item ID: %d: %v", orderID, item.ID, err)
			utils.InternalServerError(c, "Failed to update order items", nil)
			return
		}
		updated++
	}
	if updated == 0 {
		tx.Rollback()
		utils.LogError("No items eligible for status %s - Order ID: %d", req.Status, orderID)
		utils.BadRequest(c, "No items in this order can move to that status", nil)
		return
	}

	if err := applyDerivedOrderStatus(tx, &order); err != nil {
		tx.Rollback()
		utils.LogError("Failed to update order status - Order ID: %d: %v", orderID, err)
		utils.InternalServerError(c, "Failed to update order", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}
	utils.LogInfo("Order status updated - Order ID: %d, status: %s", orderID, order.Status)

	utils.Success(c, "Order status updated", gin.H{"order": orderResponse(&order)})
}

// AdminUpdateItemStatus advances a single order item one step along the
// fulfilment path, then re-derives the order status.
func AdminUpdateItemStatus(c *gin.Context) {
	utils.LogInfo("AdminUpdateItemStatus called")

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
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Status is required", nil)
		return
	}

	var order models.Order
	if err := config.DB.Preload("Items").First(&order, orderID).Error; err != nil {
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

	if validStatusTransitions[item.Status] != req.Status {
		utils.LogError("Invalid status transition %s -> %s - Order ID: %d, Item ID: %d", item.Status, req.Status, orderID, itemID)
		utils.BadRequest(c, "Invalid status transition", nil)
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to begin transaction", nil)
		return
	}

	item.Status = req.Status
	if err := tx.Model(&models.OrderItem{}).Where("id = ?", item.ID).
		UpdateColumn("status", req.Status).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to update item status - Item ID: %d: %v", itemID, err)
		utils.InternalServerError(c, "Failed to update order item", nil)
		return
	}

	if err := applyDerivedOrderStatus(tx, &order); err != nil {
		tx.Rollback()
		utils.InternalServerError(c, "Failed to update order", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}
	utils.LogInfo("Item status updated - Order ID: %d, Item ID: %d, status: %s", orderID, itemID, req.Status)

	utils.Success(c, "Order item status updated", gin.H{"order": orderResponse(&order)})
}

// applyDerivedOrderStatus recomputes the stored order status from the item
// statuses and settles COD payment once delivery completes.
func applyDerivedOrderStatus(tx *gorm.DB, order *models.Order) error {
	order.Status = utils.DeriveOrderStatus(order.Items)
	if order.Status == models.OrderStatusDelivered &&
		order.PaymentMethod == models.PaymentMethodCOD &&
		order.PaymentStatus == models.PaymentStatusUnpaid {
		order.PaymentStatus = models.PaymentStatusPaid
	}
	return tx.Save(order).Error
}

package controllers

import (
	"fmt"
	"os"
	"time"

	"github.com/Nikhil-407/TrendMart/config"
	"github.com/Nikhil-407/TrendMart/models"
	"github.com/Nikhil-407/TrendMart/utils"
	"github.com/gin-gonic/gin"
	razorpay "github.com/razorpay/razorpay-go"
)

// GetWallet returns the user's balance and transaction history, newest first
func GetWallet(c *gin.Context) {
	utils.LogInfo("GetWallet called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	wallet, err := utils.GetOrCreateWallet(user.ID)
	if err != nil {
		utils.LogError("Failed to get wallet for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to get wallet", nil)
		return
	}

	pagination := utils.NewPagination(c)

	var total int64
	if err := config.DB.Model(&models.WalletTransaction{}).Where("wallet_id = ?", wallet.ID).Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch transactions", nil)
		return
	}

	var transactions []models.WalletTransaction
	if err := config.DB.Where("wallet_id = ?", wallet.ID).
		Order("created_at desc").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&transactions).Error; err != nil {
		utils.LogError("Failed to fetch transactions for wallet ID: %d: %v", wallet.ID, err)
		utils.InternalServerError(c, "Failed to fetch transactions", nil)
		return
	}

	history := make([]gin.H, 0, len(transactions))
	for _, txn := range transactions {
		history = append(history, gin.H{
			"id":          txn.ID,
			"amount":      fmt.Sprintf("%.2f", txn.Amount),
			"type":        txn.Type,
			"description": txn.Description,
			"order_id":    txn.OrderID,
			"reference":   txn.Reference,
			"created_at":  txn.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	utils.SuccessWithPagination(c, "Wallet retrieved successfully", gin.H{
		"balance":      fmt.Sprintf("%.2f", wallet.Balance),
		"transactions": history,
	}, total, pagination.Page, pagination.Limit)
}

// InitiateWalletTopUp creates a gateway order for adding funds to the wallet
func InitiateWalletTopUp(c *gin.Context) {
	utils.LogInfo("InitiateWalletTopUp called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req struct {
		Amount float64 `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Amount <= 0 {
		utils.BadRequest(c, "Invalid amount", nil)
		return
	}

	client := razorpay.NewClient(os.Getenv("RAZORPAY_KEY"), os.Getenv("RAZORPAY_SECRET"))
	orderData := map[string]interface{}{
		"amount":          int(utils.RoundMoney(req.Amount) * 100),
		"currency":        "INR",
		"receipt":         fmt.Sprintf("w_%d_%d", user.ID, time.Now().Unix()),
		"payment_capture": 1,
	}
	gatewayOrder, err := client.Order.Create(orderData, nil)
	if err != nil {
		utils.LogError("Failed to create top-up order for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create payment order", err.Error())
		return
	}
	utils.LogInfo("Wallet top-up initiated for user ID: %d, amount: %.2f", user.ID, req.Amount)

	utils.Success(c, "Top-up initiated successfully", gin.H{
		"gateway_order_id": gatewayOrder["id"],
		"amount":           fmt.Sprintf("%.2f", req.Amount),
		"key":              os.Getenv("RAZORPAY_KEY"),
	})
}

// VerifyWalletTopUp validates the gateway signature and credits the wallet
func VerifyWalletTopUp(c *gin.Context) {
	utils.LogInfo("VerifyWalletTopUp called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req struct {
		Amount           float64 `json:"amount" binding:"required"`
		GatewayOrderID   string  `json:"gateway_order_id" binding:"required"`
		GatewayPaymentID string  `json:"gateway_payment_id" binding:"required"`
		GatewaySignature string  `json:"gateway_signature" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Amount <= 0 {
		utils.BadRequest(c, "Invalid request", nil)
		return
	}

	if !utils.VerifyPaymentSignature(req.GatewayOrderID, req.GatewayPaymentID, req.GatewaySignature, os.Getenv("RAZORPAY_SECRET")) {
		utils.LogError("Top-up verification failed for user ID: %d", user.ID)
		utils.BadRequest(c, "Invalid payment signature", nil)
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to begin transaction", nil)
		return
	}

	amount := utils.RoundMoney(req.Amount)
	transaction, err := utils.CreditWallet(tx, user.ID, amount, "Wallet Top-up via UPI", nil, req.GatewayPaymentID)
	if err != nil {
		tx.Rollback()
		utils.LogError("Failed to credit top-up for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to update wallet", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	wallet, _ := utils.GetOrCreateWallet(user.ID)
	utils.LogInfo("Wallet top-up credited for user ID: %d, amount: %.2f", user.ID, amount)

	utils.Success(c, "Wallet updated successfully", gin.H{
		"new_balance":    fmt.Sprintf("%.2f", wallet.Balance),
		"transaction_id": transaction.ID,
	})
}

package controllers

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Nikhil-407/TrendMart/config"
	"github.com/Nikhil-407/TrendMart/models"
	"github.com/Nikhil-407/TrendMart/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlaceOrderRequest is the checkout payload. For UPI the gateway fields are
// optional: when present and valid the order settles as paid immediately,
// otherwise it stays unpaid pending async confirmation via the payment
// verification endpoint.
type PlaceOrderRequest struct {
	PaymentMethod    string                 `json:"payment_method" binding:"required"`
	CouponCode       string                 `json:"coupon_code"`
	ShippingAddress  models.ShippingAddress `json:"shipping_address"`
	GatewayOrderID   string                 `json:"gateway_order_id"`
	GatewayPaymentID string                 `json:"gateway_payment_id"`
	GatewaySignature string                 `json:"gateway_signature"`
}

// GetCheckoutSummary returns the priced cart plus wallet balance ahead of checkout
func GetCheckoutSummary(c *gin.Context) {
	utils.LogInfo("GetCheckoutSummary called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	cartDetails, err := utils.GetCartDetails(user.ID)
	if err != nil {
		utils.LogError("Failed to get cart details for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to get cart details", err.Error())
		return
	}

	wallet, err := utils.GetOrCreateWallet(user.ID)
	var walletBalance float64
	if err == nil {
		walletBalance = wallet.Balance
	} else {
		utils.LogError("Failed to get wallet for user ID: %d: %v", user.ID, err)
	}

	utils.Success(c, "Checkout summary retrieved successfully", gin.H{
		"can_checkout":   len(cartDetails.Lines) > 0,
		"items":          cartDetails.Lines,
		"subtotal":       fmt.Sprintf("%.2f", cartDetails.Subtotal),
		"wallet_balance": fmt.Sprintf("%.2f", walletBalance),
		"can_use_wallet": walletBalance >= cartDetails.Subtotal,
	})
}

// PlaceOrder turns the cart into an immutable priced order inside a single
// transaction: stock reservation, price freeze, coupon application,
// proportional discount distribution, payment settlement, cart clearing.
// Any failure rolls the whole unit back.
func PlaceOrder(c *gin.Context) {
	utils.LogInfo("PlaceOrder called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)
	userID := user.ID
	utils.LogInfo("Processing order placement for user ID: %d", userID)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request for user ID: %d: %v", userID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	paymentMethod := strings.ToLower(strings.TrimSpace(req.PaymentMethod))
	switch paymentMethod {
	case models.PaymentMethodCOD, models.PaymentMethodUPI, models.PaymentMethodWallet:
	default:
		utils.LogError("Invalid payment method '%s' for user ID: %d", paymentMethod, userID)
		utils.BadRequest(c, "Invalid payment method. Must be one of: cod, upi, wallet", nil)
		return
	}

	if err := validateShippingAddress(&req.ShippingAddress); err != nil {
		utils.LogError("Invalid shipping address for user ID: %d: %v", userID, err)
		utils.BadRequest(c, err.Message, nil)
		return
	}

	// UPI prepaid settlement is decided before any mutation: a named but
	// invalid signature rejects the checkout outright.
	upiPaid := false
	if paymentMethod == models.PaymentMethodUPI && req.GatewaySignature != "" {
		if !utils.VerifyPaymentSignature(req.GatewayOrderID, req.GatewayPaymentID, req.GatewaySignature, os.Getenv("RAZORPAY_SECRET")) {
			utils.LogError("Payment signature verification failed for user ID: %d", userID)
			utils.BadRequest(c, "Payment verification failed", nil)
			return
		}
		upiPaid = true
	}

	db := config.DB
	tx := db.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction for user ID: %d: %v", userID, tx.Error)
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}
	utils.LogDebug("Started transaction for order placement, user ID: %d", userID)

	var cart models.Cart
	if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		tx.Rollback()
		utils.LogError("No cart found for user ID: %d", userID)
		utils.BadRequest(c, "Cannot place order with empty cart", nil)
		return
	}

	var cartItems []models.CartItem
	if err := tx.Where("cart_id = ?", cart.ID).Order("id").Find(&cartItems).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to fetch cart items for user ID: %d: %v", userID, err)
		utils.InternalServerError(c, "Failed to fetch cart items", err.Error())
		return
	}
	if len(cartItems) == 0 {
		tx.Rollback()
		utils.LogError("Empty cart for user ID: %d", userID)
		utils.BadRequest(c, "Cannot place order with empty cart", nil)
		return
	}

	now := time.Now()
	var offers []models.Offer
	if err := tx.Where("active = ? AND start_date <= ? AND end_date >= ?", true, now, now).Find(&offers).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to fetch active offers for user ID: %d: %v", userID, err)
		utils.InternalServerError(c, "Failed to fetch offers", err.Error())
		return
	}

	// Reserve stock and freeze prices per line. Each product row is locked
	// and the decrement carries a stock guard in the WHERE clause, so two
	// concurrent checkouts can never reserve the same unit.
	var orderItems []models.OrderItem
	var subtotal float64
	for _, item := range cartItems {
		var product models.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, item.ProductID).Error; err != nil {
			tx.Rollback()
			utils.LogError("Product not found, ID: %d, user ID: %d: %v", item.ProductID, userID, err)
			utils.NotFound(c, fmt.Sprintf("Product with ID %d not found", item.ProductID))
			return
		}

		if !product.IsActive {
			tx.Rollback()
			utils.LogError("Inactive product in cart, ID: %d, user ID: %d", product.ID, userID)
			utils.BadRequest(c, fmt.Sprintf("Product '%s' is no longer available", product.Name), nil)
			return
		}

		if !product.IsUnlimited {
			if product.StockQuantity < item.Quantity {
				tx.Rollback()
				utils.LogError("Insufficient stock for product '%s', available: %d, requested: %d", product.Name, product.StockQuantity, item.Quantity)
				utils.BadRequest(c, fmt.Sprintf("Product '%s' does not have enough stock. Available: %d, Requested: %d", product.Name, product.StockQuantity, item.Quantity), nil)
				return
			}

			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock_quantity >= ?", product.ID, item.Quantity).
				UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", item.Quantity))
			if res.Error != nil {
				tx.Rollback()
				utils.LogError("Failed to update stock for product ID: %d: %v", product.ID, res.Error)
				utils.InternalServerError(c, "Failed to update product stock", nil)
				return
			}
			if res.RowsAffected == 0 {
				tx.Rollback()
				utils.LogError("Stock guard rejected decrement for product ID: %d", product.ID)
				utils.Conflict(c, fmt.Sprintf("Product '%s' does not have enough stock", product.Name), nil)
				return
			}
			utils.LogDebug("Reserved stock for product ID: %d, quantity: %d", product.ID, item.Quantity)
		}

		quote := utils.ComputeFinalPrice(&product, offers, now)
		orderItems = append(orderItems, models.OrderItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			Price:     quote.FinalPrice,
			Status:    models.OrderStatusPending,
		})
		subtotal = utils.RoundMoney(subtotal + quote.FinalPrice*float64(item.Quantity))
	}

	// Coupon evaluation happens against the frozen subtotal. A named coupon
	// that fails any check rejects the whole checkout.
	var coupon *models.Coupon
	var discount float64
	if req.CouponCode != "" {
		code := strings.ToUpper(strings.TrimSpace(req.CouponCode))
		var found models.Coupon
		if err := tx.Where("code = ?", code).First(&found).Error; err != nil {
			tx.Rollback()
			utils.LogError("Coupon not found: %s, user ID: %d", code, userID)
			utils.BadRequest(c, "Invalid coupon", nil)
			return
		}

		var userUsageCount int64
		if err := tx.Model(&models.CouponUsage{}).Where("coupon_id = ? AND user_id = ?", found.ID, userID).Count(&userUsageCount).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to count coupon usage for user ID: %d: %v", userID, err)
			utils.InternalServerError(c, "Failed to validate coupon", nil)
			return
		}

		amount, evalErr := utils.EvaluateCoupon(&found, subtotal, userUsageCount, now)
		if evalErr != nil {
			tx.Rollback()
			utils.LogError("Coupon %s rejected for user ID: %d: %s", code, userID, evalErr.Message)
			utils.Error(c, evalErr.Code, evalErr.Message, nil)
			return
		}
		coupon = &found
		discount = amount
		utils.LogInfo("Coupon %s accepted for user ID: %d, discount: %.2f", code, userID, discount)
	}

	totalAmount := utils.RoundMoney(subtotal - discount)
	utils.DistributeDiscount(orderItems, subtotal, discount)

	paymentStatus := models.PaymentStatusUnpaid
	if paymentMethod == models.PaymentMethodWallet || upiPaid {
		paymentStatus = models.PaymentStatusPaid
	}

	order := models.Order{
		UserID:          userID,
		Subtotal:        subtotal,
		Discount:        discount,
		TotalAmount:     totalAmount,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   paymentStatus,
		Status:          models.OrderStatusPending,
		ReturnStatus:    models.ReturnStatusNone,
		GatewayOrderID:  req.GatewayOrderID,
		ShippingAddress: req.ShippingAddress,
		Items:           orderItems,
	}
	if coupon != nil {
		order.CouponCode = coupon.Code
	}

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to create order for user ID: %d: %v", userID, err)
		utils.InternalServerError(c, "Failed to create order", err.Error())
		return
	}
	utils.LogInfo("Created order ID: %d for user ID: %d, total: %.2f", order.ID, userID, order.TotalAmount)

	// Record coupon usage exactly once, with the global cap enforced in the
	// WHERE clause of the counter increment.
	if coupon != nil {
		res := tx.Model(&models.Coupon{}).
			Where("id = ? AND (total_usage_limit IS NULL OR used_count < total_usage_limit)", coupon.ID).
			UpdateColumn("used_count", gorm.Expr("used_count + 1"))
		if res.Error != nil {
			tx.Rollback()
			utils.LogError("Failed to increment used_count for coupon %s: %v", coupon.Code, res.Error)
			utils.InternalServerError(c, "Failed to update coupon usage count", nil)
			return
		}
		if res.RowsAffected == 0 {
			tx.Rollback()
			utils.LogError("Coupon %s hit its usage limit during checkout, user ID: %d", coupon.Code, userID)
			utils.Conflict(c, utils.CouponReasonGlobalLimitReached, nil)
			return
		}

		usage := models.CouponUsage{
			CouponID: coupon.ID,
			UserID:   userID,
			OrderID:  order.ID,
			UsedAt:   now,
		}
		if err := tx.Create(&usage).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to record coupon usage for order ID: %d: %v", order.ID, err)
			utils.InternalServerError(c, "Failed to record coupon usage", nil)
			return
		}

		// Deactivate the coupon once the global cap is exhausted.
		if coupon.TotalUsageLimit != nil {
			if err := tx.Model(&models.Coupon{}).
				Where("id = ? AND used_count >= total_usage_limit", coupon.ID).
				UpdateColumn("active", false).Error; err != nil {
				tx.Rollback()
				utils.LogError("Failed to deactivate exhausted coupon %s: %v", coupon.Code, err)
				utils.InternalServerError(c, "Failed to update coupon", nil)
				return
			}
		}
	}

	// Settle wallet payment. The debit is balance-guarded; a wallet that
	// cannot cover the total rolls the whole checkout back.
	if paymentMethod == models.PaymentMethodWallet {
		reference := fmt.Sprintf("ORDER-%d", order.ID)
		if _, err := utils.DebitWallet(tx, userID, totalAmount, "Order Payment", &order.ID, reference); err != nil {
			tx.Rollback()
			if appErr := utils.GetAppError(err); appErr != nil {
				utils.LogError("Insufficient wallet balance for user ID: %d, required: %.2f", userID, totalAmount)
				utils.Error(c, appErr.Code, "Insufficient wallet balance. Please top up your wallet or choose another payment method.", nil)
				return
			}
			utils.LogError("Failed to process wallet payment for order ID: %d: %v", order.ID, err)
			utils.InternalServerError(c, "Failed to process wallet payment", nil)
			return
		}
		utils.LogInfo("Debited %.2f from wallet for order ID: %d", totalAmount, order.ID)
	}

	// Clear cart lines; the cart row itself is kept.
	if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to clear cart for user ID: %d: %v", userID, err)
		utils.InternalServerError(c, "Failed to clear cart", err.Error())
		return
	}
	utils.LogDebug("Cleared cart for user ID: %d", userID)

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit transaction for user ID: %d: %v", userID, err)
		utils.InternalServerError(c, "Failed to commit transaction", err.Error())
		return
	}
	utils.LogInfo("Order placed successfully, ID: %d, payment method: %s, status: %s", order.ID, order.PaymentMethod, order.PaymentStatus)

	utils.Created(c, "Thank you for shopping with us! Your order has been placed successfully.", gin.H{
		"order": orderResponse(&order),
	})
}

// validateShippingAddress requires every snapshot field to be present.
func validateShippingAddress(addr *models.ShippingAddress) *utils.AppError {
	fields := map[string]string{
		"full_name":    addr.FullName,
		"phone":        addr.Phone,
		"address_line": addr.AddressLine,
		"city":         addr.City,
		"state":        addr.State,
		"pincode":      addr.Pincode,
	}
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			return utils.ValidationErr(fmt.Sprintf("Shipping address is required: missing %s", name))
		}
	}
	return nil
}

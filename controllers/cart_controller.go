package controllers

import (
	"fmt"

	"github.com/Nikhil-407/TrendMart/config"
	"github.com/Nikhil-407/TrendMart/models"
	"github.com/Nikhil-407/TrendMart/utils"
	"github.com/gin-gonic/gin"
)

// AddToCartRequest represents the add to cart payload
type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// UpdateCartItemRequest represents the quantity update payload
type UpdateCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"min=0"`
}

// AddToCart adds a product to the user's cart or bumps its quantity
func AddToCart(c *gin.Context) {
	utils.LogInfo("AddToCart called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid add to cart request: %v", err)
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	var product models.Product
	if err := config.DB.Where("id = ? AND is_active = ?", req.ProductID, true).First(&product).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	if !product.IsUnlimited && product.StockQuantity < req.Quantity {
		utils.BadRequest(c, fmt.Sprintf("Only %d left in stock for %s", product.StockQuantity, product.Name), nil)
		return
	}

	cart, err := utils.GetOrCreateCart(user.ID)
	if err != nil {
		utils.LogError("Failed to load cart for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to load cart", nil)
		return
	}

	var item models.CartItem
	result := config.DB.Where("cart_id = ? AND product_id = ?", cart.ID, product.ID).First(&item)
	if result.Error == nil {
		newQty := item.Quantity + req.Quantity
		if !product.IsUnlimited && product.StockQuantity < newQty {
			utils.BadRequest(c, fmt.Sprintf("Only %d left in stock for %s", product.StockQuantity, product.Name), nil)
			return
		}
		item.Quantity = newQty
		if err := config.DB.Save(&item).Error; err != nil {
			utils.InternalServerError(c, "Failed to update cart", nil)
			return
		}
	} else {
		item = models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: req.Quantity}
		if err := config.DB.Create(&item).Error; err != nil {
			utils.LogError("Failed to add cart item: %v", err)
			utils.InternalServerError(c, "Failed to update cart", nil)
			return
		}
	}

	utils.LogInfo("Product %d added to cart for user %d", product.ID, user.ID)
	GetCart(c)
}

// UpdateCartItem sets a cart line's quantity, removing the line when zero
func UpdateCartItem(c *gin.Context) {
	utils.LogInfo("UpdateCartItem called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	cart, err := utils.GetOrCreateCart(user.ID)
	if err != nil {
		utils.InternalServerError(c, "Failed to load cart", nil)
		return
	}

	var item models.CartItem
	if err := config.DB.Where("cart_id = ? AND product_id = ?", cart.ID, req.ProductID).First(&item).Error; err != nil {
		utils.NotFound(c, "Item not found in cart")
		return
	}

	if req.Quantity == 0 {
		if err := config.DB.Delete(&item).Error; err != nil {
			utils.InternalServerError(c, "Failed to update cart", nil)
			return
		}
		GetCart(c)
		return
	}

	var product models.Product
	if err := config.DB.First(&product, item.ProductID).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}
	if !product.IsUnlimited && product.StockQuantity < req.Quantity {
		utils.BadRequest(c, fmt.Sprintf("Only %d left in stock for %s", product.StockQuantity, product.Name), nil)
		return
	}

	item.Quantity = req.Quantity
	if err := config.DB.Save(&item).Error; err != nil {
		utils.InternalServerError(c, "Failed to update cart", nil)
		return
	}

	GetCart(c)
}

// RemoveFromCart deletes a single product line from the cart
func RemoveFromCart(c *gin.Context) {
	utils.LogInfo("RemoveFromCart called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req struct {
		ProductID uint `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	cart, err := utils.GetOrCreateCart(user.ID)
	if err != nil {
		utils.InternalServerError(c, "Failed to load cart", nil)
		return
	}

	result := config.DB.Where("cart_id = ? AND product_id = ?", cart.ID, req.ProductID).Delete(&models.CartItem{})
	if result.Error != nil {
		utils.InternalServerError(c, "Failed to update cart", nil)
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Item not found in cart")
		return
	}

	GetCart(c)
}

// GetCart returns the cart with live pricing on every line
func GetCart(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	details, err := utils.GetCartDetails(user.ID)
	if err != nil {
		utils.LogError("Failed to compute cart details for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to load cart", nil)
		return
	}

	lines := make([]gin.H, 0, len(details.Lines))
	for _, line := range details.Lines {
		lines = append(lines, gin.H{
			"product_id":   line.ProductID,
			"name":         line.Name,
			"quantity":     line.Quantity,
			"unit_price":   fmt.Sprintf("%.2f", line.Quote.FinalPrice),
			"line_total":   fmt.Sprintf("%.2f", line.LineTotal),
			"has_discount": line.Quote.HasDiscount,
		})
	}

	utils.Success(c, "Cart retrieved successfully", gin.H{
		"cart_id":  details.CartID,
		"items":    lines,
		"subtotal": fmt.Sprintf("%.2f", details.Subtotal),
	})
}

// ClearCart removes every line from the user's cart
func ClearCart(c *gin.Context) {
	utils.LogInfo("ClearCart called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	cart, err := utils.GetOrCreateCart(user.ID)
	if err != nil {
		utils.InternalServerError(c, "Failed to load cart", nil)
		return
	}

	if err := config.DB.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		utils.InternalServerError(c, "Failed to clear cart", nil)
		return
	}

	utils.Success(c, "Cart cleared successfully", gin.H{"cart_id": cart.ID})
}

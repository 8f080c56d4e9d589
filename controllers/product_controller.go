package controllers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Nikhil-407/TrendMart/config"
	"github.com/Nikhil-407/TrendMart/models"
	"github.com/Nikhil-407/TrendMart/utils"
	"github.com/gin-gonic/gin"
)

// productView decorates a product with a fresh price quote.
func productView(product *models.Product, offers []models.Offer, now time.Time) gin.H {
	quote := utils.ComputeFinalPrice(product, offers, now)
	inStock := product.IsUnlimited || product.StockQuantity > 0
	return gin.H{
		"id":                  product.ID,
		"name":                product.Name,
		"sku":                 product.SKU,
		"description":         product.Description,
		"category_id":         product.CategoryID,
		"original_price":      fmt.Sprintf("%.2f", quote.OriginalPrice),
		"final_price":         fmt.Sprintf("%.2f", quote.FinalPrice),
		"discount_amount":     fmt.Sprintf("%.2f", quote.DiscountAmount),
		"discount_percentage": quote.DiscountPercentage,
		"has_discount":        quote.HasDiscount,
		"in_stock":            inStock,
	}
}

// ListProducts returns active products with live pricing applied
func ListProducts(c *gin.Context) {
	utils.LogInfo("ListProducts called")
	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Product{}).Where("is_active = ?", true)
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch products", nil)
		return
	}

	var products []models.Product
	if err := query.Order("id").Limit(pagination.Limit).Offset(pagination.Offset).Find(&products).Error; err != nil {
		utils.LogError("Failed to fetch products: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", nil)
		return
	}

	now := time.Now()
	offers, err := utils.GetActiveOffers(now)
	if err != nil {
		utils.LogError("Failed to fetch offers: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", nil)
		return
	}

	views := make([]gin.H, 0, len(products))
	for i := range products {
		views = append(views, productView(&products[i], offers, now))
	}

	utils.SuccessWithPagination(c, "Products retrieved successfully", views, total, pagination.Page, pagination.Limit)
}

// GetProductDetails returns one active product with live pricing
func GetProductDetails(c *gin.Context) {
	utils.LogInfo("GetProductDetails called")

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var product models.Product
	if err := config.DB.Where("id = ? AND is_active = ?", productID, true).First(&product).Error; err != nil {
		utils.LogError("Product not found, ID: %d", productID)
		utils.NotFound(c, "Product not found")
		return
	}

	now := time.Now()
	offers, err := utils.GetActiveOffers(now)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch product", nil)
		return
	}

	utils.Success(c, "Product retrieved successfully", gin.H{"product": productView(&product, offers, now)})
}

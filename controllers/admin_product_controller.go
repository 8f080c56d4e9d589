package controllers

import (
	"strconv"
	"strings"

	"github.com/Nikhil-407/TrendMart/config"
	"github.com/Nikhil-407/TrendMart/models"
	"github.com/Nikhil-407/TrendMart/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRequest represents the create/update product payload
type ProductRequest struct {
	Name          string  `json:"name" binding:"required"`
	SKU           string  `json:"sku" binding:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" binding:"required,gt=0"`
	DiscountPrice float64 `json:"discount_price"`
	StockQuantity int     `json:"stock_quantity"`
	IsUnlimited   bool    `json:"is_unlimited"`
	IsActive      *bool   `json:"is_active"`
	CategoryID    uint    `json:"category_id" binding:"required"`
}

// StockAdjustmentRequest represents a relative stock change
type StockAdjustmentRequest struct {
	Delta int `json:"delta" binding:"required"`
}

func validateProductRequest(req *ProductRequest) *utils.AppError {
	if req.DiscountPrice < 0 {
		return utils.ValidationErr("discount_price cannot be negative")
	}
	if req.DiscountPrice >= req.Price {
		return utils.ValidationErr("discount_price must be below the base price")
	}
	if req.StockQuantity < 0 {
		return utils.ValidationErr("stock_quantity cannot be negative")
	}
	var category models.Category
	if err := config.DB.First(&category, req.CategoryID).Error; err != nil {
		return utils.NotFoundErr("Category not found")
	}
	return nil
}

// AdminListProducts returns all products including inactive ones
func AdminListProducts(c *gin.Context) {
	utils.LogInfo("AdminListProducts called")
	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Product{})
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		query = query.Where("name ILIKE ? OR sku ILIKE ?", "%"+search+"%", "%"+search+"%")
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

	utils.SuccessWithPagination(c, "Products retrieved successfully", products, total, pagination.Page, pagination.Limit)
}

// AdminCreateProduct creates a product under an existing category
func AdminCreateProduct(c *gin.Context) {
	utils.LogInfo("AdminCreateProduct called")

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}
	if appErr := validateProductRequest(&req); appErr != nil {
		utils.Error(c, appErr.Code, appErr.Message, nil)
		return
	}

	sku := strings.ToUpper(strings.TrimSpace(req.SKU))
	var existing models.Product
	if err := config.DB.Where("sku = ?", sku).First(&existing).Error; err == nil {
		utils.Conflict(c, "A product with this SKU already exists", nil)
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	product := models.Product{
		Name:          req.Name,
		SKU:           sku,
		Description:   req.Description,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		StockQuantity: req.StockQuantity,
		IsUnlimited:   req.IsUnlimited,
		IsActive:      active,
		CategoryID:    req.CategoryID,
	}
	if err := config.DB.Create(&product).Error; err != nil {
		utils.LogError("Failed to create product: %v", err)
		utils.InternalServerError(c, "Failed to create product", nil)
		return
	}

	utils.LogInfo("Product %d created: %s", product.ID, product.Name)
	utils.Created(c, "Product created successfully", gin.H{"product": product})
}

// AdminUpdateProduct updates product fields and pricing
func AdminUpdateProduct(c *gin.Context) {
	utils.LogInfo("AdminUpdateProduct called")

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var product models.Product
	if err := config.DB.First(&product, productID).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}
	if appErr := validateProductRequest(&req); appErr != nil {
		utils.Error(c, appErr.Code, appErr.Message, nil)
		return
	}

	sku := strings.ToUpper(strings.TrimSpace(req.SKU))
	if sku != product.SKU {
		var existing models.Product
		if err := config.DB.Where("sku = ? AND id <> ?", sku, product.ID).First(&existing).Error; err == nil {
			utils.Conflict(c, "A product with this SKU already exists", nil)
			return
		}
	}

	product.Name = req.Name
	product.SKU = sku
	product.Description = req.Description
	product.Price = req.Price
	product.DiscountPrice = req.DiscountPrice
	product.StockQuantity = req.StockQuantity
	product.IsUnlimited = req.IsUnlimited
	product.CategoryID = req.CategoryID
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := config.DB.Save(&product).Error; err != nil {
		utils.InternalServerError(c, "Failed to update product", nil)
		return
	}

	utils.Success(c, "Product updated successfully", gin.H{"product": product})
}

// AdminAdjustStock applies a relative stock delta under a row lock
func AdminAdjustStock(c *gin.Context) {
	utils.LogInfo("AdminAdjustStock called")

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var req StockAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to adjust stock", nil)
		return
	}

	var product models.Product
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, productID).Error; err != nil {
		tx.Rollback()
		utils.NotFound(c, "Product not found")
		return
	}

	if product.IsUnlimited {
		tx.Rollback()
		utils.BadRequest(c, "Stock is not tracked for an unlimited product", nil)
		return
	}

	newQty := product.StockQuantity + req.Delta
	if newQty < 0 {
		tx.Rollback()
		utils.BadRequest(c, "Stock cannot go below zero", nil)
		return
	}

	if err := tx.Model(&product).UpdateColumn("stock_quantity", newQty).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to adjust stock for product %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to adjust stock", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to adjust stock", nil)
		return
	}

	utils.LogInfo("Stock for product %d adjusted by %d to %d", product.ID, req.Delta, newQty)
	utils.Success(c, "Stock adjusted successfully", gin.H{
		"product_id":     product.ID,
		"stock_quantity": newQty,
	})
}

// AdminListCategories returns all categories
func AdminListCategories(c *gin.Context) {
	var categories []models.Category
	if err := config.DB.Order("name").Find(&categories).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch categories", nil)
		return
	}
	utils.Success(c, "Categories retrieved successfully", gin.H{"categories": categories})
}

// AdminCreateCategory creates a new product category
func AdminCreateCategory(c *gin.Context) {
	utils.LogInfo("AdminCreateCategory called")

	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	name := strings.TrimSpace(req.Name)
	var existing models.Category
	if err := config.DB.Where("LOWER(name) = LOWER(?)", name).First(&existing).Error; err == nil {
		utils.Conflict(c, "Category already exists", nil)
		return
	} else if err != gorm.ErrRecordNotFound {
		utils.InternalServerError(c, "Failed to create category", nil)
		return
	}

	category := models.Category{Name: name, Description: req.Description}
	if err := config.DB.Create(&category).Error; err != nil {
		utils.LogError("Failed to create category: %v", err)
		utils.InternalServerError(c, "Failed to create category", nil)
		return
	}

	utils.Created(c, "Category created successfully", gin.H{"category": category})
}

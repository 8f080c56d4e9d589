package controllers

import (
	"strconv"
	"strings"
	"time"

	"github.com/Nikhil-407/TrendMart/config"
	"github.com/Nikhil-407/TrendMart/models"
	"github.com/Nikhil-407/TrendMart/utils"
	"github.com/gin-gonic/gin"
)

// CouponRequest represents the create/update coupon payload
type CouponRequest struct {
	Code              string   `json:"code" binding:"required"`
	DiscountType      string   `json:"discount_type" binding:"required"`
	Value             float64  `json:"value"`
	MinCartValue      float64  `json:"min_cart_value"`
	MaxDiscount       *float64 `json:"max_discount"`
	TotalUsageLimit   *int     `json:"total_usage_limit"`
	UsageLimitPerUser int      `json:"usage_limit_per_user"`
	StartDate         string   `json:"start_date" binding:"required"`
	ExpiryDate        string   `json:"expiry_date" binding:"required"`
	Active            *bool    `json:"active"`
}

func validateCouponRequest(req *CouponRequest) (time.Time, time.Time, *utils.AppError) {
	switch req.DiscountType {
	case models.CouponTypePercentage:
		if req.Value <= 0 || req.Value > 100 {
			return time.Time{}, time.Time{}, utils.ValidationErr("Percentage value must be between 1 and 100")
		}
	case models.CouponTypeFlat:
		if req.Value <= 0 {
			return time.Time{}, time.Time{}, utils.ValidationErr("Flat discount value must be positive")
		}
	case models.CouponTypeFreeShipping:
		// value is ignored for free shipping coupons
	default:
		return time.Time{}, time.Time{}, utils.ValidationErr("discount_type must be percentage, flat or free_shipping")
	}

	if req.MaxDiscount != nil && *req.MaxDiscount <= 0 {
		return time.Time{}, time.Time{}, utils.ValidationErr("max_discount must be positive")
	}
	if req.TotalUsageLimit != nil && *req.TotalUsageLimit <= 0 {
		return time.Time{}, time.Time{}, utils.ValidationErr("total_usage_limit must be positive")
	}
	if req.UsageLimitPerUser < 0 {
		return time.Time{}, time.Time{}, utils.ValidationErr("usage_limit_per_user cannot be negative")
	}

	start, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, utils.ValidationErr("Invalid start_date, expected RFC3339")
	}
	expiry, err := time.Parse(time.RFC3339, req.ExpiryDate)
	if err != nil {
		return time.Time{}, time.Time{}, utils.ValidationErr("Invalid expiry_date, expected RFC3339")
	}
	if !expiry.After(start) {
		return time.Time{}, time.Time{}, utils.ValidationErr("expiry_date must be after start_date")
	}
	return start, expiry, nil
}

// AdminListCoupons returns all coupons with usage counters
func AdminListCoupons(c *gin.Context) {
	utils.LogInfo("AdminListCoupons called")
	pagination := utils.NewPagination(c)

	var total int64
	if err := config.DB.Model(&models.Coupon{}).Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch coupons", nil)
		return
	}

	var coupons []models.Coupon
	if err := config.DB.Order("created_at DESC").Limit(pagination.Limit).Offset(pagination.Offset).Find(&coupons).Error; err != nil {
		utils.LogError("Failed to fetch coupons: %v", err)
		utils.InternalServerError(c, "Failed to fetch coupons", nil)
		return
	}

	utils.SuccessWithPagination(c, "Coupons retrieved successfully", coupons, total, pagination.Page, pagination.Limit)
}

// AdminCreateCoupon creates a new coupon with a unique code
func AdminCreateCoupon(c *gin.Context) {
	utils.LogInfo("AdminCreateCoupon called")

	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	start, expiry, appErr := validateCouponRequest(&req)
	if appErr != nil {
		utils.Error(c, appErr.Code, appErr.Message, nil)
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		utils.BadRequest(c, "Coupon code cannot be empty", nil)
		return
	}

	var existing models.Coupon
	if err := config.DB.Unscoped().Where("code = ?", code).First(&existing).Error; err == nil {
		utils.Conflict(c, "Coupon code already exists", nil)
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	coupon := models.Coupon{
		Code:              code,
		DiscountType:      req.DiscountType,
		Value:             req.Value,
		MinCartValue:      req.MinCartValue,
		MaxDiscount:       req.MaxDiscount,
		TotalUsageLimit:   req.TotalUsageLimit,
		UsageLimitPerUser: req.UsageLimitPerUser,
		StartDate:         start,
		ExpiryDate:        expiry,
		Active:            active,
	}
	if err := config.DB.Create(&coupon).Error; err != nil {
		utils.LogError("Failed to create coupon: %v", err)
		utils.InternalServerError(c, "Failed to create coupon", nil)
		return
	}

	utils.LogInfo("Coupon %s created", coupon.Code)
	utils.Created(c, "Coupon created successfully", gin.H{"coupon": coupon})
}

// AdminUpdateCoupon updates coupon terms; the code itself is immutable
func AdminUpdateCoupon(c *gin.Context) {
	utils.LogInfo("AdminUpdateCoupon called")

	couponID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid coupon ID", nil)
		return
	}

	var coupon models.Coupon
	if err := config.DB.First(&coupon, couponID).Error; err != nil {
		utils.NotFound(c, "Coupon not found")
		return
	}

	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	start, expiry, appErr := validateCouponRequest(&req)
	if appErr != nil {
		utils.Error(c, appErr.Code, appErr.Message, nil)
		return
	}

	if req.TotalUsageLimit != nil && *req.TotalUsageLimit < coupon.UsedCount {
		utils.BadRequest(c, "total_usage_limit cannot be below the current usage count", nil)
		return
	}

	coupon.DiscountType = req.DiscountType
	coupon.Value = req.Value
	coupon.MinCartValue = req.MinCartValue
	coupon.MaxDiscount = req.MaxDiscount
	coupon.TotalUsageLimit = req.TotalUsageLimit
	coupon.UsageLimitPerUser = req.UsageLimitPerUser
	coupon.StartDate = start
	coupon.ExpiryDate = expiry
	if req.Active != nil {
		coupon.Active = *req.Active
	}

	if err := config.DB.Save(&coupon).Error; err != nil {
		utils.InternalServerError(c, "Failed to update coupon", nil)
		return
	}

	utils.Success(c, "Coupon updated successfully", gin.H{"coupon": coupon})
}

// AdminDeleteCoupon soft deletes a coupon so past usage records stay intact
func AdminDeleteCoupon(c *gin.Context) {
	utils.LogInfo("AdminDeleteCoupon called")

	couponID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid coupon ID", nil)
		return
	}

	var coupon models.Coupon
	if err := config.DB.First(&coupon, couponID).Error; err != nil {
		utils.NotFound(c, "Coupon not found")
		return
	}

	if err := config.DB.Delete(&coupon).Error; err != nil {
		utils.LogError("Failed to delete coupon %s: %v", coupon.Code, err)
		utils.InternalServerError(c, "Failed to delete coupon", nil)
		return
	}

	utils.Success(c, "Coupon deleted successfully", gin.H{"coupon_id": coupon.ID})
}

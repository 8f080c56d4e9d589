package controllers

import (
	"strconv"
	"time"

	"github.com/Nikhil-407/TrendMart/config"
	"github.com/Nikhil-407/TrendMart/models"
	"github.com/Nikhil-407/TrendMart/utils"
	"github.com/gin-gonic/gin"
)

// OfferRequest represents the create/update offer payload
type OfferRequest struct {
	Name          string  `json:"name" binding:"required"`
	TargetType    string  `json:"target_type" binding:"required"`
	TargetID      *uint   `json:"target_id"`
	DiscountType  string  `json:"discount_type"`
	DiscountValue float64 `json:"discount_value" binding:"required,gt=0"`
	StartDate     string  `json:"start_date" binding:"required"`
	EndDate       string  `json:"end_date" binding:"required"`
	Active        *bool   `json:"active"`
}

func parseOfferDates(req *OfferRequest) (time.Time, time.Time, *utils.AppError) {
	start, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, utils.ValidationErr("Invalid start_date, expected RFC3339")
	}
	end, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, utils.ValidationErr("Invalid end_date, expected RFC3339")
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, utils.ValidationErr("end_date must be after start_date")
	}
	return start, end, nil
}

func normalizeOfferDiscount(req *OfferRequest) *utils.AppError {
	if req.DiscountType == "" {
		req.DiscountType = models.OfferDiscountFlat
	}
	switch req.DiscountType {
	case models.OfferDiscountFlat:
	case models.OfferDiscountPercentage:
		if req.DiscountValue > 100 {
			return utils.ValidationErr("Percentage discount cannot exceed 100")
		}
	default:
		return utils.ValidationErr("discount_type must be percentage or flat")
	}
	return nil
}

func validateOfferTarget(targetType string, targetID *uint) *utils.AppError {
	switch targetType {
	case models.OfferTargetAll:
		if targetID != nil {
			return utils.ValidationErr("target_id must be empty for an all-products offer")
		}
	case models.OfferTargetCategory:
		if targetID == nil {
			return utils.ValidationErr("target_id is required for a category offer")
		}
		var category models.Category
		if err := config.DB.First(&category, *targetID).Error; err != nil {
			return utils.NotFoundErr("Category not found")
		}
	case models.OfferTargetProduct:
		if targetID == nil {
			return utils.ValidationErr("target_id is required for a product offer")
		}
		var product models.Product
		if err := config.DB.First(&product, *targetID).Error; err != nil {
			return utils.NotFoundErr("Product not found")
		}
	default:
		return utils.ValidationErr("target_type must be all, category or product")
	}
	return nil
}

// AdminListOffers returns all offers, newest first
func AdminListOffers(c *gin.Context) {
	utils.LogInfo("AdminListOffers called")
	pagination := utils.NewPagination(c)

	var total int64
	if err := config.DB.Model(&models.Offer{}).Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch offers", nil)
		return
	}

	var offers []models.Offer
	if err := config.DB.Order("created_at DESC").Limit(pagination.Limit).Offset(pagination.Offset).Find(&offers).Error; err != nil {
		utils.LogError("Failed to fetch offers: %v", err)
		utils.InternalServerError(c, "Failed to fetch offers", nil)
		return
	}

	utils.SuccessWithPagination(c, "Offers retrieved successfully", offers, total, pagination.Page, pagination.Limit)
}

// AdminCreateOffer creates a new discount offer
func AdminCreateOffer(c *gin.Context) {
	utils.LogInfo("AdminCreateOffer called")

	var req OfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	start, end, appErr := parseOfferDates(&req)
	if appErr != nil {
		utils.Error(c, appErr.Code, appErr.Message, nil)
		return
	}
	if appErr := normalizeOfferDiscount(&req); appErr != nil {
		utils.Error(c, appErr.Code, appErr.Message, nil)
		return
	}
	if appErr := validateOfferTarget(req.TargetType, req.TargetID); appErr != nil {
		utils.Error(c, appErr.Code, appErr.Message, nil)
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	offer := models.Offer{
		Name:          req.Name,
		TargetType:    req.TargetType,
		TargetID:      req.TargetID,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		StartDate:     start,
		EndDate:       end,
		Active:        active,
	}
	if err := config.DB.Create(&offer).Error; err != nil {
		utils.LogError("Failed to create offer: %v", err)
		utils.InternalServerError(c, "Failed to create offer", nil)
		return
	}

	utils.LogInfo("Offer %d created: %s", offer.ID, offer.Name)
	utils.Created(c, "Offer created successfully", gin.H{"offer": offer})
}

// AdminUpdateOffer updates an existing offer
func AdminUpdateOffer(c *gin.Context) {
	utils.LogInfo("AdminUpdateOffer called")

	offerID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid offer ID", nil)
		return
	}

	var offer models.Offer
	if err := config.DB.First(&offer, offerID).Error; err != nil {
		utils.NotFound(c, "Offer not found")
		return
	}

	var req OfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	start, end, appErr := parseOfferDates(&req)
	if appErr != nil {
		utils.Error(c, appErr.Code, appErr.Message, nil)
		return
	}
	if appErr := normalizeOfferDiscount(&req); appErr != nil {
		utils.Error(c, appErr.Code, appErr.Message, nil)
		return
	}
	if appErr := validateOfferTarget(req.TargetType, req.TargetID); appErr != nil {
		utils.Error(c, appErr.Code, appErr.Message, nil)
		return
	}

	offer.Name = req.Name
	offer.TargetType = req.TargetType
	offer.TargetID = req.TargetID
	offer.DiscountType = req.DiscountType
	offer.DiscountValue = req.DiscountValue
	offer.StartDate = start
	offer.EndDate = end
	if req.Active != nil {
		offer.Active = *req.Active
	}

	if err := config.DB.Save(&offer).Error; err != nil {
		utils.InternalServerError(c, "Failed to update offer", nil)
		return
	}

	utils.Success(c, "Offer updated successfully", gin.H{"offer": offer})
}

// AdminDeleteOffer deactivates and removes an offer
func AdminDeleteOffer(c *gin.Context) {
	utils.LogInfo("AdminDeleteOffer called")

	offerID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid offer ID", nil)
		return
	}

	var offer models.Offer
	if err := config.DB.First(&offer, offerID).Error; err != nil {
		utils.NotFound(c, "Offer not found")
		return
	}

	if err := config.DB.Delete(&offer).Error; err != nil {
		utils.LogError("Failed to delete offer %d: %v", offer.ID, err)
		utils.InternalServerError(c, "Failed to delete offer", nil)
		return
	}

	utils.Success(c, "Offer deleted successfully", gin.H{"offer_id": offer.ID})
}

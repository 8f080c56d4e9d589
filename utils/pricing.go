package utils

import (
	"math"
	"time"

	"github.com/Nikhil-407/TrendMart/config"
	"github.com/Nikhil-407/TrendMart/models"
)

// PriceQuote is the result of applying the best available discount to a
// product. Offers are never stacked with each other or with the product's
// own flat discount; the single largest discount wins.
type PriceQuote struct {
	OriginalPrice      float64 `json:"original_price"`
	FinalPrice         float64 `json:"final_price"`
	DiscountAmount     float64 `json:"discount_amount"`
	DiscountPercentage int     `json:"discount_percentage"`
	HasDiscount        bool    `json:"has_discount"`
}

// ComputeFinalPrice computes a product's effective sale price against the
// currently active offers. Pure: callers must pass a fresh offer set at read
// time since offers are time-bounded and mutate independently of products.
func ComputeFinalPrice(product *models.Product, activeOffers []models.Offer, now time.Time) PriceQuote {
	price := product.Price

	bestDiscount := product.DiscountPrice
	for i := range activeOffers {
		offer := &activeOffers[i]
		if !offerApplies(offer, product, now) {
			continue
		}
		amount := offer.DiscountValue
		if offer.DiscountType == models.OfferDiscountPercentage {
			amount = RoundMoney(price * offer.DiscountValue / 100)
		}
		if amount > bestDiscount {
			bestDiscount = amount
		}
	}

	finalPrice := price - bestDiscount
	if finalPrice < 0 {
		finalPrice = 0
	}

	percentage := 0
	if price > 0 {
		percentage = int(math.Round((bestDiscount / price) * 100))
	}

	return PriceQuote{
		OriginalPrice:      price,
		FinalPrice:         finalPrice,
		DiscountAmount:     bestDiscount,
		DiscountPercentage: percentage,
		HasDiscount:        bestDiscount > 0,
	}
}

// offerApplies reports whether an offer is live and targets this product.
func offerApplies(offer *models.Offer, product *models.Product, now time.Time) bool {
	if !offer.Active {
		return false
	}
	if now.Before(offer.StartDate) || now.After(offer.EndDate) {
		return false
	}

	switch offer.TargetType {
	case models.OfferTargetAll:
		return true
	case models.OfferTargetProduct:
		return offer.TargetID != nil && *offer.TargetID == product.ID
	case models.OfferTargetCategory:
		return offer.TargetID != nil && *offer.TargetID == product.CategoryID
	}
	return false
}

// GetActiveOffers returns all offers live at the given instant.
func GetActiveOffers(now time.Time) ([]models.Offer, error) {
	var offers []models.Offer
	err := config.DB.Where("active = ? AND start_date <= ? AND end_date >= ?", true, now, now).Find(&offers).Error
	if err != nil {
		return nil, WrapError(err, "failed to fetch active offers")
	}
	return offers, nil
}

package utils

import (
	"testing"
	"time"

	"github.com/Nikhil-407/TrendMart/models"
	"github.com/stretchr/testify/assert"
)

func uintPtr(v uint) *uint { return &v }

func testProduct() *models.Product {
	p := &models.Product{
		Name:       "Canvas Tote",
		Price:      500,
		CategoryID: 7,
	}
	p.ID = 42
	return p
}

func liveOffer(targetType string, targetID *uint, value float64, now time.Time) models.Offer {
	return models.Offer{
		Name:          "Test Offer",
		TargetType:    targetType,
		TargetID:      targetID,
		DiscountValue: value,
		StartDate:     now.Add(-time.Hour),
		EndDate:       now.Add(time.Hour),
		Active:        true,
	}
}

func TestComputeFinalPriceNoDiscount(t *testing.T) {
	now := time.Now()
	quote := ComputeFinalPrice(testProduct(), nil, now)

	assert.Equal(t, 500.0, quote.OriginalPrice)
	assert.Equal(t, 500.0, quote.FinalPrice)
	assert.Equal(t, 0.0, quote.DiscountAmount)
	assert.False(t, quote.HasDiscount)
}

func TestComputeFinalPriceProductFlatDiscount(t *testing.T) {
	now := time.Now()
	product := testProduct()
	product.DiscountPrice = 50

	quote := ComputeFinalPrice(product, nil, now)

	assert.Equal(t, 450.0, quote.FinalPrice)
	assert.Equal(t, 50.0, quote.DiscountAmount)
	assert.Equal(t, 10, quote.DiscountPercentage)
	assert.True(t, quote.HasDiscount)
}

func TestComputeFinalPriceBestDiscountWinsNeverStacks(t *testing.T) {
	now := time.Now()
	product := testProduct()
	product.DiscountPrice = 40

	offers := []models.Offer{
		liveOffer(models.OfferTargetAll, nil, 30, now),
		liveOffer(models.OfferTargetCategory, uintPtr(7), 100, now),
		liveOffer(models.OfferTargetProduct, uintPtr(42), 60, now),
	}

	quote := ComputeFinalPrice(product, offers, now)

	// 100 beats 60, 40 and 30; nothing is summed.
	assert.Equal(t, 100.0, quote.DiscountAmount)
	assert.Equal(t, 400.0, quote.FinalPrice)
}

func TestComputeFinalPriceScopeMatching(t *testing.T) {
	now := time.Now()
	product := testProduct()

	otherProduct := liveOffer(models.OfferTargetProduct, uintPtr(99), 80, now)
	otherCategory := liveOffer(models.OfferTargetCategory, uintPtr(3), 80, now)
	matching := liveOffer(models.OfferTargetProduct, uintPtr(42), 25, now)

	quote := ComputeFinalPrice(product, []models.Offer{otherProduct, otherCategory, matching}, now)

	assert.Equal(t, 25.0, quote.DiscountAmount)
}

func TestComputeFinalPriceIgnoresInactiveAndOutOfWindow(t *testing.T) {
	now := time.Now()
	product := testProduct()

	inactive := liveOffer(models.OfferTargetAll, nil, 100, now)
	inactive.Active = false

	expired := liveOffer(models.OfferTargetAll, nil, 100, now)
	expired.StartDate = now.Add(-48 * time.Hour)
	expired.EndDate = now.Add(-24 * time.Hour)

	upcoming := liveOffer(models.OfferTargetAll, nil, 100, now)
	upcoming.StartDate = now.Add(24 * time.Hour)
	upcoming.EndDate = now.Add(48 * time.Hour)

	quote := ComputeFinalPrice(product, []models.Offer{inactive, expired, upcoming}, now)

	assert.Equal(t, 500.0, quote.FinalPrice)
	assert.False(t, quote.HasDiscount)
}

func TestComputeFinalPricePercentageOffer(t *testing.T) {
	now := time.Now()
	product := testProduct()

	offer := liveOffer(models.OfferTargetAll, nil, 20, now)
	offer.DiscountType = models.OfferDiscountPercentage

	quote := ComputeFinalPrice(product, []models.Offer{offer}, now)

	// 20% of 500
	assert.Equal(t, 100.0, quote.DiscountAmount)
	assert.Equal(t, 400.0, quote.FinalPrice)
	assert.Equal(t, 20, quote.DiscountPercentage)
}

func TestComputeFinalPriceClampsAtZero(t *testing.T) {
	now := time.Now()
	product := testProduct()
	product.Price = 80

	offers := []models.Offer{liveOffer(models.OfferTargetAll, nil, 150, now)}

	quote := ComputeFinalPrice(product, offers, now)

	assert.Equal(t, 0.0, quote.FinalPrice)
	assert.GreaterOrEqual(t, quote.FinalPrice, 0.0)
}

func TestComputeFinalPriceDoesNotMutateInputs(t *testing.T) {
	now := time.Now()
	product := testProduct()
	product.DiscountPrice = 20
	offers := []models.Offer{liveOffer(models.OfferTargetAll, nil, 35, now)}

	_ = ComputeFinalPrice(product, offers, now)

	assert.Equal(t, 500.0, product.Price)
	assert.Equal(t, 20.0, product.DiscountPrice)
	assert.Equal(t, 35.0, offers[0].DiscountValue)
}

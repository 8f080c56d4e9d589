package utils

import (
	"testing"
	"time"

	"github.com/Nikhil-407/TrendMart/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func validCoupon(now time.Time) *models.Coupon {
	return &models.Coupon{
		Code:              "SAVE200",
		DiscountType:      models.CouponTypeFlat,
		Value:             200,
		MinCartValue:      500,
		UsageLimitPerUser: 1,
		StartDate:         now.Add(-time.Hour),
		ExpiryDate:        now.Add(24 * time.Hour),
		Active:            true,
	}
}

func TestEvaluateCouponFlatDiscount(t *testing.T) {
	now := time.Now()
	coupon := validCoupon(now)

	discount, appErr := EvaluateCoupon(coupon, 600, 0, now)

	require.Nil(t, appErr)
	assert.Equal(t, 200.0, discount)
}

func TestEvaluateCouponMinimumNotMet(t *testing.T) {
	now := time.Now()
	coupon := validCoupon(now)

	discount, appErr := EvaluateCoupon(coupon, 450, 0, now)

	require.NotNil(t, appErr)
	assert.Equal(t, CouponReasonMinimumNotMet, appErr.Message)
	assert.Equal(t, 0.0, discount)
}

func TestEvaluateCouponPercentageWithCap(t *testing.T) {
	now := time.Now()
	coupon := validCoupon(now)
	coupon.DiscountType = models.CouponTypePercentage
	coupon.Value = 10
	coupon.MaxDiscount = floatPtr(50)

	// 10% of 1000 is 100, capped at 50.
	discount, appErr := EvaluateCoupon(coupon, 1000, 0, now)

	require.Nil(t, appErr)
	assert.Equal(t, 50.0, discount)
}

func TestEvaluateCouponPercentageBelowCap(t *testing.T) {
	now := time.Now()
	coupon := validCoupon(now)
	coupon.DiscountType = models.CouponTypePercentage
	coupon.Value = 10
	coupon.MaxDiscount = floatPtr(50)

	discount, appErr := EvaluateCoupon(coupon, 400, 0, now)

	require.NotNil(t, appErr) // minimum cart value of 500 still applies
	assert.Equal(t, 0.0, discount)

	discount, appErr = EvaluateCoupon(coupon, 450.5, 0, now)
	require.NotNil(t, appErr)

	coupon.MinCartValue = 0
	discount, appErr = EvaluateCoupon(coupon, 455, 0, now)
	require.Nil(t, appErr)
	// Percentage discounts are floored to whole currency units.
	assert.Equal(t, 45.0, discount)
}

func TestEvaluateCouponFlatClampedToSubtotal(t *testing.T) {
	now := time.Now()
	coupon := validCoupon(now)
	coupon.MinCartValue = 0

	discount, appErr := EvaluateCoupon(coupon, 150, 0, now)

	require.Nil(t, appErr)
	assert.Equal(t, 150.0, discount)
}

func TestEvaluateCouponFreeShippingYieldsNoDiscount(t *testing.T) {
	now := time.Now()
	coupon := validCoupon(now)
	coupon.DiscountType = models.CouponTypeFreeShipping
	coupon.Value = 0

	discount, appErr := EvaluateCoupon(coupon, 800, 0, now)

	require.Nil(t, appErr)
	assert.Equal(t, 0.0, discount)
}

func TestEvaluateCouponInactive(t *testing.T) {
	now := time.Now()
	coupon := validCoupon(now)
	coupon.Active = false

	_, appErr := EvaluateCoupon(coupon, 600, 0, now)

	require.NotNil(t, appErr)
	assert.Equal(t, CouponReasonInactive, appErr.Message)
}

func TestEvaluateCouponNotStarted(t *testing.T) {
	now := time.Now()
	coupon := validCoupon(now)
	coupon.StartDate = now.Add(time.Hour)

	_, appErr := EvaluateCoupon(coupon, 600, 0, now)

	require.NotNil(t, appErr)
	assert.Equal(t, CouponReasonNotStarted, appErr.Message)
}

func TestEvaluateCouponExpired(t *testing.T) {
	now := time.Now()
	coupon := validCoupon(now)
	coupon.ExpiryDate = now.Add(-time.Minute)

	_, appErr := EvaluateCoupon(coupon, 600, 0, now)

	require.NotNil(t, appErr)
	assert.Equal(t, CouponReasonExpired, appErr.Message)
}

func TestEvaluateCouponGlobalLimitReached(t *testing.T) {
	now := time.Now()
	coupon := validCoupon(now)
	coupon.TotalUsageLimit = intPtr(100)
	coupon.UsedCount = 100

	_, appErr := EvaluateCoupon(coupon, 600, 0, now)

	require.NotNil(t, appErr)
	assert.Equal(t, CouponReasonGlobalLimitReached, appErr.Message)
}

func TestEvaluateCouponPerUserLimitReached(t *testing.T) {
	now := time.Now()
	coupon := validCoupon(now)

	_, appErr := EvaluateCoupon(coupon, 600, 1, now)

	require.NotNil(t, appErr)
	assert.Equal(t, CouponReasonPerUserLimitReached, appErr.Message)
}

func TestEvaluateCouponCheckOrder(t *testing.T) {
	// An inactive, expired coupon over an undersized cart reports inactive
	// first: checks short-circuit in a fixed order.
	now := time.Now()
	coupon := validCoupon(now)
	coupon.Active = false
	coupon.ExpiryDate = now.Add(-time.Hour)

	_, appErr := EvaluateCoupon(coupon, 100, 5, now)

	require.NotNil(t, appErr)
	assert.Equal(t, CouponReasonInactive, appErr.Message)
}

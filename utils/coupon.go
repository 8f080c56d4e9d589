package utils

import (
	"math"
	"time"

	"github.com/Nikhil-407/TrendMart/models"
)

// Coupon rejection reasons, surfaced to the caller verbatim. A coupon named
// at checkout that fails any of these rejects the whole order; it is never
// silently downgraded to "no discount".
const (
	CouponReasonInactive            = "Coupon is not active"
	CouponReasonNotStarted          = "Coupon is not active yet"
	CouponReasonExpired             = "Coupon has expired"
	CouponReasonMinimumNotMet       = "Cart total is less than the minimum order value for this coupon"
	CouponReasonGlobalLimitReached  = "Coupon usage limit reached"
	CouponReasonPerUserLimitReached = "You have reached the usage limit for this coupon"
)

// EvaluateCoupon validates a coupon against the cart subtotal and the user's
// prior redemption count, and computes the discount amount. Checks run in
// order and short-circuit on the first failure. The caller records the usage
// (used-by row plus counter increment) only once order creation is committed.
func EvaluateCoupon(coupon *models.Coupon, cartSubtotal float64, userUsageCount int64, now time.Time) (float64, *AppError) {
	if !coupon.Active {
		return 0, ConflictErr(CouponReasonInactive)
	}
	if now.Before(coupon.StartDate) {
		return 0, ConflictErr(CouponReasonNotStarted)
	}
	if now.After(coupon.ExpiryDate) {
		return 0, ConflictErr(CouponReasonExpired)
	}
	if cartSubtotal < coupon.MinCartValue {
		return 0, ConflictErr(CouponReasonMinimumNotMet)
	}
	if coupon.TotalUsageLimit != nil && coupon.UsedCount >= *coupon.TotalUsageLimit {
		return 0, ConflictErr(CouponReasonGlobalLimitReached)
	}
	if userUsageCount >= int64(coupon.UsageLimitPerUser) {
		return 0, ConflictErr(CouponReasonPerUserLimitReached)
	}

	var discount float64
	switch coupon.DiscountType {
	case models.CouponTypePercentage:
		discount = math.Floor((cartSubtotal * coupon.Value) / 100)
		if coupon.MaxDiscount != nil && discount > *coupon.MaxDiscount {
			discount = *coupon.MaxDiscount
		}
	case models.CouponTypeFlat:
		discount = coupon.Value
		// A flat discount must never push the total negative.
		if discount > cartSubtotal {
			discount = cartSubtotal
		}
	case models.CouponTypeFreeShipping:
		// Shipping cost is out of scope; the coupon code is recorded only.
		discount = 0
	}

	return discount, nil
}

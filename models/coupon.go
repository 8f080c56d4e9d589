package models

import (
	"time"

	"gorm.io/gorm"
)

// Coupon discount types
const (
	CouponTypePercentage   = "percentage"
	CouponTypeFlat         = "flat"
	CouponTypeFreeShipping = "free_shipping"
)

// Coupon is a code-activated discount applied at checkout.
type Coupon struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Code              string         `gorm:"uniqueIndex" json:"code"`
	DiscountType      string         `json:"discount_type"` // "percentage", "flat" or "free_shipping"
	Value             float64        `json:"value"`
	MinCartValue      float64        `json:"min_cart_value" gorm:"default:0"`
	MaxDiscount       *float64       `json:"max_discount" gorm:"default:null"`       // cap for percentage coupons, nil = uncapped
	TotalUsageLimit   *int           `json:"total_usage_limit" gorm:"default:null"`  // nil = unlimited
	UsedCount         int            `json:"used_count" gorm:"default:0"`
	UsageLimitPerUser int            `json:"usage_limit_per_user" gorm:"default:1"`
	StartDate         time.Time      `json:"start_date"`
	ExpiryDate        time.Time      `json:"expiry_date"`
	Active            bool           `json:"active" gorm:"default:true"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// CouponUsage records one redemption of a coupon by a user. The set of rows
// for a coupon is its used-by list, so used_count always equals the row count.
type CouponUsage struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	CouponID uint      `json:"coupon_id" gorm:"index"`
	UserID   uint      `json:"user_id" gorm:"index"`
	OrderID  uint      `json:"order_id"`
	UsedAt   time.Time `json:"used_at"`
}

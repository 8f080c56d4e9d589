package models

import (
	"time"
)

// Offer target types
const (
	OfferTargetAll      = "all"
	OfferTargetCategory = "category"
	OfferTargetProduct  = "product"
)

// Offer discount types
const (
	OfferDiscountPercentage = "percentage"
	OfferDiscountFlat       = "flat"
)

// Offer is a time-bounded promotional discount scoped to all products, one
// category, or one product. Offers are never stacked with each other or with
// a product's own discount; the single largest discount wins.
type Offer struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `json:"name"`
	DiscountType  string    `json:"discount_type"` // "percentage" or "flat"
	DiscountValue float64   `json:"discount_value"`
	TargetType    string    `json:"target_type"`                   // "all", "category" or "product"
	TargetID      *uint     `json:"target_id" gorm:"default:null"` // nil when TargetType is "all"
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	Active        bool      `json:"active" gorm:"default:true"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

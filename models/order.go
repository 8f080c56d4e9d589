package models

import (
	"time"
)

// Order/item statuses
const (
	OrderStatusPending   = "pending"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "canceled"
	OrderStatusReturned  = "returned" // item-level only
)

// Payment methods
const (
	PaymentMethodCOD    = "cod"
	PaymentMethodUPI    = "upi"
	PaymentMethodWallet = "wallet"
)

// Payment statuses
const (
	PaymentStatusPaid   = "paid"
	PaymentStatusUnpaid = "unpaid"
)

// Return statuses
const (
	ReturnStatusNone      = "none"
	ReturnStatusRequested = "requested"
	ReturnStatusApproved  = "approved"
	ReturnStatusRejected  = "rejected"
)

// ShippingAddress is snapshotted onto the order at checkout so later address
// edits never touch placed orders.
type ShippingAddress struct {
	FullName    string `json:"full_name"`
	Phone       string `json:"phone"`
	AddressLine string `json:"address_line"`
	City        string `json:"city"`
	State       string `json:"state"`
	Pincode     string `json:"pincode"`
}

// Order is an immutable priced record of a checkout. Item prices and
// quantities never change after creation; only status and refund fields do.
type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          uint            `json:"user_id" gorm:"index"`
	User            User            `json:"-" gorm:"foreignKey:UserID"`
	Subtotal        float64         `json:"subtotal"`
	Discount        float64         `json:"discount"`
	TotalAmount     float64         `json:"total_amount"`
	PaymentMethod   string          `json:"payment_method"` // "cod", "upi" or "wallet"
	PaymentStatus   string          `json:"payment_status"` // "paid" or "unpaid"
	Status          string          `json:"status"`         // derived from item statuses
	CouponCode      string          `json:"coupon_code,omitempty"`
	ReturnStatus    string          `json:"return_status" gorm:"default:none"`
	ReturnReason    string          `json:"return_reason,omitempty"`
	IsRefunded      bool            `json:"is_refunded" gorm:"default:false"`
	GatewayOrderID  string          `json:"gateway_order_id,omitempty"` // UPI gateway order id
	ShippingAddress ShippingAddress `json:"shipping_address" gorm:"embedded;embeddedPrefix:ship_"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Items           []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
}

// OrderItem carries the price frozen at purchase time plus this item's share
// of the order-level coupon discount, used for partial refunds.
type OrderItem struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	OrderID       uint    `json:"order_id" gorm:"index"`
	ProductID     uint    `json:"product_id"`
	Product       Product `json:"product" gorm:"foreignKey:ProductID"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"` // frozen per-unit price
	DiscountShare float64 `json:"discount_share"`
	Status        string  `json:"status" gorm:"default:pending"`
	ReturnStatus  string  `json:"return_status" gorm:"default:none"`
	ReturnReason  string  `json:"return_reason,omitempty"`
}

package models

import (
	"gorm.io/gorm"
)

// User represents a regular user in the system
type User struct {
	gorm.Model
	Username  string `gorm:"uniqueIndex;not null" json:"username"`
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Password  string `json:"-"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	IsBlocked bool   `json:"is_blocked"`
	IsAdmin   bool   `json:"is_admin" gorm:"default:false"`
	Wallet    Wallet `json:"wallet,omitempty" gorm:"foreignKey:UserID"`
}

// Category represents a product category
type Category struct {
	gorm.Model
	Name        string    `json:"name" gorm:"uniqueIndex"`
	Description string    `json:"description"`
	Active      bool      `json:"active" gorm:"default:true"`
	Products    []Product `json:"products,omitempty"`
}

// Product represents a sellable product
type Product struct {
	gorm.Model
	Name          string   `json:"name"`
	SKU           string   `json:"sku" gorm:"uniqueIndex"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	DiscountPrice float64  `json:"discount_price" gorm:"default:0"` // flat discount, 0 = none
	StockQuantity int      `json:"stock_quantity" gorm:"default:0"`
	IsUnlimited   bool     `json:"is_unlimited" gorm:"default:false"`
	IsActive      bool     `json:"is_active" gorm:"default:true"`
	CategoryID    uint     `json:"category_id"`
	Category      Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

// Cart is the per-user cart container. One cart per user; items are cleared
// on checkout, the cart row itself is kept.
type Cart struct {
	gorm.Model
	UserID uint       `json:"user_id" gorm:"uniqueIndex"`
	User   User       `json:"-" gorm:"foreignKey:UserID"`
	Items  []CartItem `json:"items" gorm:"foreignKey:CartID"`
}

// CartItem is one product line in a cart. Quantity is always >= 1; updating a
// line to quantity 0 removes it.
type CartItem struct {
	gorm.Model
	CartID    uint    `json:"cart_id" gorm:"index:idx_cart_product,unique"`
	ProductID uint    `json:"product_id" gorm:"index:idx_cart_product,unique"`
	Product   Product `json:"product" gorm:"foreignKey:ProductID"`
	Quantity  int     `json:"quantity"`
}

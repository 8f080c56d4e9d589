package utils

import (
	"fmt"
	"time"

	"github.com/Nikhil-407/TrendMart/config"
	"github.com/Nikhil-407/TrendMart/models"
	"gorm.io/gorm"
)

// CartLine is one cart item decorated with a fresh price quote.
type CartLine struct {
	ProductID uint       `json:"product_id"`
	Name      string     `json:"name"`
	Quantity  int        `json:"quantity"`
	Quote     PriceQuote `json:"pricing"`
	LineTotal float64    `json:"line_total"`
}

// CartDetails is the priced view of a user's cart. Prices are computed fresh
// on every call since offers are time-bounded.
type CartDetails struct {
	CartID   uint       `json:"cart_id"`
	Lines    []CartLine `json:"items"`
	Subtotal float64    `json:"subtotal"`
}

// GetOrCreateCart returns the user's cart, creating it lazily on first use.
func GetOrCreateCart(userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := config.DB.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
		cart = models.Cart{UserID: userID}
		if err := config.DB.Create(&cart).Error; err != nil {
			return nil, err
		}
	}
	return &cart, nil
}

// GetCartDetails retrieves the cart with live pricing applied to every line.
func GetCartDetails(userID uint) (*CartDetails, error) {
	cart, err := GetOrCreateCart(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cart: %v", err)
	}

	var items []models.CartItem
	if err := config.DB.Preload("Product").Where("cart_id = ?", cart.ID).Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch cart items: %v", err)
	}

	now := time.Now()
	offers, err := GetActiveOffers(now)
	if err != nil {
		return nil, err
	}

	details := CartDetails{CartID: cart.ID}
	for _, item := range items {
		quote := ComputeFinalPrice(&item.Product, offers, now)
		lineTotal := RoundMoney(quote.FinalPrice * float64(item.Quantity))
		details.Lines = append(details.Lines, CartLine{
			ProductID: item.ProductID,
			Name:      item.Product.Name,
			Quantity:  item.Quantity,
			Quote:     quote,
			LineTotal: lineTotal,
		})
		details.Subtotal = RoundMoney(details.Subtotal + lineTotal)
	}

	return &details, nil
}

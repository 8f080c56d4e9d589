package controllers

import (
	"fmt"

	"github.com/Nikhil-407/TrendMart/models"
	"github.com/Nikhil-407/TrendMart/utils"
	"github.com/gin-gonic/gin"
)

// orderResponse formats an order for API responses.
func orderResponse(order *models.Order) gin.H {
	items := make([]gin.H, 0, len(order.Items))
	for i := range order.Items {
		item := &order.Items[i]
		entry := gin.H{
			"id":             item.ID,
			"product_id":     item.ProductID,
			"quantity":       item.Quantity,
			"price":          fmt.Sprintf("%.2f", item.Price),
			"discount_share": fmt.Sprintf("%.2f", item.DiscountShare),
			"item_total":     fmt.Sprintf("%.2f", utils.ItemRefundAmount(item)),
			"status":         item.Status,
			"return_status":  item.ReturnStatus,
		}
		if item.Product.ID != 0 {
			entry["name"] = item.Product.Name
			entry["sku"] = item.Product.SKU
		}
		items = append(items, entry)
	}

	return gin.H{
		"id":             order.ID,
		"status":         order.Status,
		"subtotal":       fmt.Sprintf("%.2f", order.Subtotal),
		"discount":       fmt.Sprintf("%.2f", order.Discount),
		"total_amount":   fmt.Sprintf("%.2f", order.TotalAmount),
		"payment_method": order.PaymentMethod,
		"payment_status": order.PaymentStatus,
		"coupon_code":    order.CouponCode,
		"return_status":  order.ReturnStatus,
		"is_refunded":    order.IsRefunded,
		"created_at":     order.CreatedAt.Format("2006-01-02 15:04:05"),
		"shipping_address": gin.H{
			"full_name":    order.ShippingAddress.FullName,
			"phone":        order.ShippingAddress.Phone,
			"address_line": order.ShippingAddress.AddressLine,
			"city":         order.ShippingAddress.City,
			"state":        order.ShippingAddress.State,
			"pincode":      order.ShippingAddress.Pincode,
		},
		"items": items,
	}
}

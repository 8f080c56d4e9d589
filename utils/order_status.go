package utils

import (
	"math"

	"github.com/Nikhil-407/TrendMart/models"
)

// RoundMoney rounds an amount to two decimal places.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// DeriveOrderStatus computes the order-level status from its item statuses:
// all canceled -> canceled; any pending -> pending; all delivered (returned
// items have necessarily been delivered) -> delivered; otherwise shipped.
// It must be re-run after every item-status mutation; the stored order status
// is never set independently of the items.
func DeriveOrderStatus(items []models.OrderItem) string {
	if len(items) == 0 {
		return models.OrderStatusPending
	}

	allCancelled := true
	allDelivered := true
	anyPending := false
	for _, item := range items {
		if item.Status != models.OrderStatusCancelled {
			allCancelled = false
		}
		switch item.Status {
		case models.OrderStatusPending:
			anyPending = true
			allDelivered = false
		case models.OrderStatusShipped:
			allDelivered = false
		case models.OrderStatusCancelled:
			// canceled items drop out of the delivered aggregate
		}
	}

	if allCancelled {
		return models.OrderStatusCancelled
	}
	if anyPending {
		return models.OrderStatusPending
	}
	if allDelivered {
		return models.OrderStatusDelivered
	}
	return models.OrderStatusShipped
}

// DeriveReturnStatus computes the order-level return status as the highest
// priority among the items: requested > approved > rejected > none.
func DeriveReturnStatus(items []models.OrderItem) string {
	status := models.ReturnStatusNone
	rank := map[string]int{
		models.ReturnStatusNone:      0,
		models.ReturnStatusRejected:  1,
		models.ReturnStatusApproved:  2,
		models.ReturnStatusRequested: 3,
	}
	for _, item := range items {
		if rank[item.ReturnStatus] > rank[status] {
			status = item.ReturnStatus
		}
	}
	return status
}

// DistributeDiscount allocates an order-level discount across items in
// proportion to each item's share of the subtotal. The last item absorbs the
// rounding remainder so the shares always sum to exactly the discount. Shares
// are capped at whatever discount is left unallocated, so rounding up on
// sub-cent shares can never push the remainder negative.
func DistributeDiscount(items []models.OrderItem, subtotal, discount float64) {
	if len(items) == 0 {
		return
	}

	var allocated float64
	for i := range items {
		if i == len(items)-1 {
			items[i].DiscountShare = RoundMoney(discount - allocated)
			break
		}
		var share float64
		if subtotal > 0 {
			itemTotal := items[i].Price * float64(items[i].Quantity)
			share = RoundMoney(discount * itemTotal / subtotal)
		}
		if remaining := RoundMoney(discount - allocated); share > remaining {
			share = remaining
		}
		items[i].DiscountShare = share
		allocated += share
	}
}

// ItemRefundAmount is the money returned for one canceled or returned item:
// its frozen total minus its share of the order discount.
func ItemRefundAmount(item *models.OrderItem) float64 {
	return RoundMoney(item.Price*float64(item.Quantity) - item.DiscountShare)
}

// OrderRefundAmount is the money returned when the rest of an order is
// canceled: the sum of the per-item refunds over items that are still live.
// Items canceled earlier were refunded at their own cancellation, so they
// must not be counted again.
func OrderRefundAmount(items []models.OrderItem) float64 {
	var total float64
	for i := range items {
		if items[i].Status == models.OrderStatusCancelled {
			continue
		}
		total += ItemRefundAmount(&items[i])
	}
	return RoundMoney(total)
}

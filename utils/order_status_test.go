package utils

import (
	"testing"

	"github.com/Nikhil-407/TrendMart/models"
	"github.com/stretchr/testify/assert"
)

func itemsWithStatuses(statuses ...string) []models.OrderItem {
	items := make([]models.OrderItem, len(statuses))
	for i, s := range statuses {
		items[i] = models.OrderItem{Status: s}
	}
	return items
}

func TestDeriveOrderStatus(t *testing.T) {
	cases := []struct {
		name     string
		statuses []string
		want     string
	}{
		{"empty order", nil, models.OrderStatusPending},
		{"all pending", []string{"pending", "pending"}, models.OrderStatusPending},
		{"any pending wins over shipped", []string{"shipped", "pending"}, models.OrderStatusPending},
		{"any pending wins over delivered", []string{"delivered", "pending"}, models.OrderStatusPending},
		{"all shipped", []string{"shipped", "shipped"}, models.OrderStatusShipped},
		{"mixed shipped and delivered", []string{"shipped", "delivered"}, models.OrderStatusShipped},
		{"all delivered", []string{"delivered", "delivered"}, models.OrderStatusDelivered},
		{"all canceled", []string{"canceled", "canceled"}, models.OrderStatusCancelled},
		{"canceled plus delivered is delivered", []string{"canceled", "delivered"}, models.OrderStatusDelivered},
		{"canceled plus pending is pending", []string{"canceled", "pending"}, models.OrderStatusPending},
		{"canceled plus shipped is shipped", []string{"canceled", "shipped"}, models.OrderStatusShipped},
		{"returned counts as delivered", []string{"returned", "delivered"}, models.OrderStatusDelivered},
		{"all returned", []string{"returned", "returned"}, models.OrderStatusDelivered},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DeriveOrderStatus(itemsWithStatuses(tc.statuses...)))
		})
	}
}

func TestDeriveReturnStatusPriority(t *testing.T) {
	withReturns := func(statuses ...string) []models.OrderItem {
		items := make([]models.OrderItem, len(statuses))
		for i, s := range statuses {
			items[i] = models.OrderItem{ReturnStatus: s}
		}
		return items
	}

	assert.Equal(t, models.ReturnStatusNone, DeriveReturnStatus(nil))
	assert.Equal(t, models.ReturnStatusNone, DeriveReturnStatus(withReturns("none", "none")))
	assert.Equal(t, models.ReturnStatusRejected, DeriveReturnStatus(withReturns("none", "rejected")))
	assert.Equal(t, models.ReturnStatusApproved, DeriveReturnStatus(withReturns("rejected", "approved")))
	assert.Equal(t, models.ReturnStatusRequested, DeriveReturnStatus(withReturns("approved", "requested", "rejected")))
}

func TestDistributeDiscountSumsExactly(t *testing.T) {
	items := []models.OrderItem{
		{Price: 333.33, Quantity: 1},
		{Price: 333.33, Quantity: 1},
		{Price: 333.34, Quantity: 1},
	}
	subtotal := 1000.0
	discount := 100.0

	DistributeDiscount(items, subtotal, discount)

	var sum float64
	for _, item := range items {
		sum += item.DiscountShare
	}
	assert.Equal(t, discount, RoundMoney(sum))
	// First two get the proportional share, last absorbs the remainder.
	assert.Equal(t, 33.33, items[0].DiscountShare)
	assert.Equal(t, 33.33, items[1].DiscountShare)
	assert.Equal(t, 33.34, items[2].DiscountShare)
}

func TestDistributeDiscountProportionalToQuantity(t *testing.T) {
	items := []models.OrderItem{
		{Price: 100, Quantity: 3}, // 300 of 400
		{Price: 100, Quantity: 1}, // 100 of 400
	}

	DistributeDiscount(items, 400, 40)

	assert.Equal(t, 30.0, items[0].DiscountShare)
	assert.Equal(t, 10.0, items[1].DiscountShare)
}

func TestDistributeDiscountZeroSubtotal(t *testing.T) {
	items := []models.OrderItem{
		{Price: 0, Quantity: 1},
		{Price: 0, Quantity: 1},
	}

	DistributeDiscount(items, 0, 0)

	assert.Equal(t, 0.0, items[0].DiscountShare)
	assert.Equal(t, 0.0, items[1].DiscountShare)
}

func TestDistributeDiscountSingleItem(t *testing.T) {
	items := []models.OrderItem{{Price: 250, Quantity: 2}}

	DistributeDiscount(items, 500, 75)

	assert.Equal(t, 75.0, items[0].DiscountShare)
}

func TestDistributeDiscountSubCentSharesNeverGoNegative(t *testing.T) {
	// Ten equal items against a five-cent discount: proportional shares
	// round up to a cent each, which must not drive the last share below
	// zero.
	items := make([]models.OrderItem, 10)
	for i := range items {
		items[i] = models.OrderItem{Price: 1.00, Quantity: 1}
	}

	DistributeDiscount(items, 10.00, 0.05)

	var sum float64
	for _, item := range items {
		assert.GreaterOrEqual(t, item.DiscountShare, 0.0)
		sum += item.DiscountShare
	}
	assert.Equal(t, 0.05, RoundMoney(sum))
}

func TestItemRefundAmount(t *testing.T) {
	item := &models.OrderItem{Price: 199.99, Quantity: 2, DiscountShare: 40.0}

	assert.Equal(t, 359.98, ItemRefundAmount(item))
}

func TestOrderRefundAmountSkipsCancelledItems(t *testing.T) {
	items := []models.OrderItem{
		{Price: 100, Quantity: 1, DiscountShare: 10, Status: models.OrderStatusCancelled},
		{Price: 200, Quantity: 2, DiscountShare: 40, Status: models.OrderStatusPending},
		{Price: 50, Quantity: 1, DiscountShare: 0, Status: models.OrderStatusPending},
	}

	// Only the two live items count: (400-40) + 50.
	assert.Equal(t, 410.0, OrderRefundAmount(items))
}

func TestOrderRefundAmountPlusItemRefundsCoverTotalOnce(t *testing.T) {
	// Canceling one item and then the rest of the order must credit the
	// paid total exactly once between the two refunds.
	items := []models.OrderItem{
		{Price: 333.33, Quantity: 1},
		{Price: 333.33, Quantity: 1},
		{Price: 333.34, Quantity: 1},
	}
	DistributeDiscount(items, 1000.00, 100.00)
	totalPaid := 900.00

	itemRefund := ItemRefundAmount(&items[0])
	items[0].Status = models.OrderStatusCancelled

	assert.Equal(t, totalPaid, RoundMoney(itemRefund+OrderRefundAmount(items)))
}

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, 10.56, RoundMoney(10.556))
	assert.Equal(t, 10.55, RoundMoney(10.554))
	assert.Equal(t, 0.0, RoundMoney(0))
	assert.Equal(t, 33.33, RoundMoney(100.0/3.0))
}

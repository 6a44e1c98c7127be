package commerce

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus(t *testing.T) {
	assert.True(t, OrderStatusPending.IsValid())
	assert.False(t, OrderStatus("unknown").IsValid())

	assert.True(t, OrderStatusCancelled.IsFinal())
	assert.True(t, OrderStatusRefunded.IsFinal())
	assert.False(t, OrderStatusDelivered.IsFinal())

	assert.True(t, OrderStatusPending.IsCancellable())
	assert.True(t, OrderStatusProcessing.IsCancellable())
	assert.False(t, OrderStatusShipped.IsCancellable())
}

func TestFulfillmentStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from FulfillmentStatus
		to   FulfillmentStatus
		want bool
	}{
		{FulfillmentPending, FulfillmentPacked, true},
		{FulfillmentPending, FulfillmentFailed, true},
		{FulfillmentPending, FulfillmentShipped, false},
		{FulfillmentPacked, FulfillmentShipped, true},
		{FulfillmentShipped, FulfillmentDelivered, true},
		{FulfillmentShipped, FulfillmentPacked, false},
		{FulfillmentDelivered, FulfillmentFailed, false},
		{FulfillmentFailed, FulfillmentPending, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}

	assert.True(t, FulfillmentDelivered.IsTerminal())
	assert.True(t, FulfillmentFailed.IsTerminal())
	assert.False(t, FulfillmentShipped.IsTerminal())
}

func TestRefundStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from RefundStatus
		to   RefundStatus
		want bool
	}{
		{RefundPending, RefundProcessing, true},
		{RefundPending, RefundFailed, true},
		{RefundPending, RefundCompleted, false},
		{RefundProcessing, RefundCompleted, true},
		{RefundProcessing, RefundFailed, true},
		{RefundCompleted, RefundPending, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestOrder_RefundedAmount(t *testing.T) {
	order := Order{
		Refunds: []Refund{
			{Amount: dec("30"), Status: RefundCompleted},
			{Amount: dec("20"), Status: RefundPending},
			{Amount: dec("12.50"), Status: RefundCompleted},
		},
	}
	assert.True(t, dec("42.50").Equal(order.RefundedAmount()))
}

package commerce

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
)

// IsValid checks if the order status is a known value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled, OrderStatusRefunded:
		return true
	}
	return false
}

// IsFinal reports whether the order can no longer change state. A
// delivered order is not final: it can still be refunded.
func (s OrderStatus) IsFinal() bool {
	return s == OrderStatusCancelled || s == OrderStatusRefunded
}

// IsCancellable reports whether a cancel request makes sense for the
// current state.
func (s OrderStatus) IsCancellable() bool {
	return s == OrderStatusPending || s == OrderStatusProcessing
}

// FulfillmentStatus tracks one shipment of an order.
type FulfillmentStatus string

const (
	FulfillmentPending   FulfillmentStatus = "pending"
	FulfillmentPacked    FulfillmentStatus = "packed"
	FulfillmentShipped   FulfillmentStatus = "shipped"
	FulfillmentDelivered FulfillmentStatus = "delivered"
	FulfillmentFailed    FulfillmentStatus = "failed"
)

// IsValid checks if the fulfillment status is a known value.
func (s FulfillmentStatus) IsValid() bool {
	switch s {
	case FulfillmentPending, FulfillmentPacked, FulfillmentShipped,
		FulfillmentDelivered, FulfillmentFailed:
		return true
	}
	return false
}

// IsTerminal reports whether the fulfillment reached an end state.
func (s FulfillmentStatus) IsTerminal() bool {
	return s == FulfillmentDelivered || s == FulfillmentFailed
}

// CanTransitionTo reports whether the fulfillment may move to next.
// The happy path is pending -> packed -> shipped -> delivered; every
// non-terminal state may fail.
func (s FulfillmentStatus) CanTransitionTo(next FulfillmentStatus) bool {
	switch s {
	case FulfillmentPending:
		return next == FulfillmentPacked || next == FulfillmentFailed
	case FulfillmentPacked:
		return next == FulfillmentShipped || next == FulfillmentFailed
	case FulfillmentShipped:
		return next == FulfillmentDelivered || next == FulfillmentFailed
	default:
		return false
	}
}

// RefundStatus tracks a refund request.
type RefundStatus string

const (
	RefundPending    RefundStatus = "pending"
	RefundProcessing RefundStatus = "processing"
	RefundCompleted  RefundStatus = "completed"
	RefundFailed     RefundStatus = "failed"
)

// IsValid checks if the refund status is a known value.
func (s RefundStatus) IsValid() bool {
	switch s {
	case RefundPending, RefundProcessing, RefundCompleted, RefundFailed:
		return true
	}
	return false
}

// IsTerminal reports whether the refund reached an end state.
func (s RefundStatus) IsTerminal() bool {
	return s == RefundCompleted || s == RefundFailed
}

// CanTransitionTo reports whether the refund may move to next.
func (s RefundStatus) CanTransitionTo(next RefundStatus) bool {
	switch s {
	case RefundPending:
		return next == RefundProcessing || next == RefundFailed
	case RefundProcessing:
		return next == RefundCompleted || next == RefundFailed
	default:
		return false
	}
}

// Fulfillment is one shipment belonging to an order.
type Fulfillment struct {
	ID             string            `json:"id"`
	Status         FulfillmentStatus `json:"status"`
	Carrier        string            `json:"carrier,omitempty"`
	TrackingNumber *string           `json:"trackingNumber,omitempty"`
	TrackingURL    *string           `json:"trackingUrl,omitempty"`
	ShippedAt      *time.Time        `json:"shippedAt,omitempty"`
	DeliveredAt    *time.Time        `json:"deliveredAt,omitempty"`
}

// Refund is a (partial) reimbursement on an order.
type Refund struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason,omitempty"`
	Status    RefundStatus    `json:"status"`
	Note      *string         `json:"note,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Order is a completed cart.
type Order struct {
	ID         string      `json:"id"`
	DisplayID  string      `json:"displayId,omitempty"`
	CartID     *string     `json:"cartId,omitempty"`
	CustomerID string      `json:"customerId,omitempty"`
	CompanyID  *string     `json:"companyId,omitempty"`
	Status     OrderStatus `json:"status"`

	Items  []CartItem `json:"items"`
	Totals CartTotals `json:"totals"`

	Fulfillments []Fulfillment `json:"fulfillments,omitempty"`
	Refunds      []Refund      `json:"refunds,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RefundedAmount sums the completed refunds on the order.
func (o *Order) RefundedAmount() decimal.Decimal {
	sum := decimal.Zero
	for _, r := range o.Refunds {
		if r.Status == RefundCompleted {
			sum = sum.Add(r.Amount)
		}
	}
	return sum
}

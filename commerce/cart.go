package commerce

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountType enumerates the supported cart discount shapes.
type DiscountType string

const (
	DiscountPercentage   DiscountType = "percentage"
	DiscountFixed        DiscountType = "fixed"
	DiscountFreeShipping DiscountType = "free_shipping"
)

// IsValid checks if the discount type is a known value.
func (t DiscountType) IsValid() bool {
	switch t {
	case DiscountPercentage, DiscountFixed, DiscountFreeShipping:
		return true
	}
	return false
}

// Discount is a code-based reduction applied to a cart.
type Discount struct {
	Code  string          `json:"code"`
	Type  DiscountType    `json:"type"`
	Value decimal.Decimal `json:"value"`
}

// CartItem is one line of a cart or order.
type CartItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	VariantID *string `json:"variantId,omitempty"`
	SKU       string  `json:"sku,omitempty"`
	Title     string  `json:"title"`
	Thumbnail *string `json:"thumbnail,omitempty"`

	UnitPrice       decimal.Decimal  `json:"unitPrice"`
	Quantity        int              `json:"quantity"`
	DiscountPerUnit *decimal.Decimal `json:"discountPerUnit,omitempty"`
	// LineTotal is (UnitPrice - DiscountPerUnit) * Quantity.
	LineTotal decimal.Decimal `json:"lineTotal"`

	IsAvailable bool `json:"isAvailable"`
}

// EffectiveUnitPrice returns the unit price net of the per-unit discount.
func (i CartItem) EffectiveUnitPrice() decimal.Decimal {
	if i.DiscountPerUnit == nil {
		return i.UnitPrice
	}
	return i.UnitPrice.Sub(*i.DiscountPerUnit)
}

// ComputeLineTotal derives the line total from price, quantity and
// discount. Adapters use it whenever the vendor payload does not carry a
// line total of its own.
func (i CartItem) ComputeLineTotal() decimal.Decimal {
	return i.EffectiveUnitPrice().Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ShippingOption is a delivery method quoted for a cart.
type ShippingOption struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	CarrierCode   *string         `json:"carrierCode,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	EstimatedDays *int            `json:"estimatedDays,omitempty"`
}

// CartTotals is the derived money envelope of a cart or order.
// Invariant: Total = Subtotal - DiscountTotal + ShippingTotal + TaxTotal.
type CartTotals struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	DiscountTotal decimal.Decimal `json:"discountTotal"`
	ShippingTotal decimal.Decimal `json:"shippingTotal"`
	TaxTotal      decimal.Decimal `json:"taxTotal"`
	Total         decimal.Decimal `json:"total"`
	Currency      string          `json:"currency"`
	// ItemCount is the number of distinct lines; TotalQuantity sums the
	// line quantities.
	ItemCount     int `json:"itemCount"`
	TotalQuantity int `json:"totalQuantity"`
}

// Cart is the provider-neutral shopping cart.
type Cart struct {
	ID         string  `json:"id"`
	CustomerID *string `json:"customerId,omitempty"`
	CompanyID  *string `json:"companyId,omitempty"`
	RegionID   *string `json:"regionId,omitempty"`
	Currency   string  `json:"currency"`

	Items     []CartItem `json:"items"`
	Discounts []Discount `json:"discounts,omitempty"`

	// ShippingOption is the selected delivery method, when one has been
	// chosen. Available methods come from CartService.ListShippingOptions.
	ShippingOption    *ShippingOption `json:"shippingOption,omitempty"`
	ShippingAddressID *string         `json:"shippingAddressId,omitempty"`
	BillingAddressID  *string         `json:"billingAddressId,omitempty"`

	Totals    CartTotals     `json:"totals"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// ComputeTotals derives the totals envelope from line items and cart-level
// discounts. Adapters call it when the vendor response carries no usable
// totals, so the CartTotals invariant holds whatever the backend.
//
// Subtotal is gross (before any discount). DiscountTotal accumulates
// per-unit line discounts plus cart-level codes; a free_shipping code
// zeroes the shipping component instead. The grand total never goes below
// zero.
func ComputeTotals(items []CartItem, discounts []Discount, shipping, tax decimal.Decimal, currency string) CartTotals {
	subtotal := decimal.Zero
	discountTotal := decimal.Zero
	totalQuantity := 0

	for _, item := range items {
		qty := decimal.NewFromInt(int64(item.Quantity))
		subtotal = subtotal.Add(item.UnitPrice.Mul(qty))
		if item.DiscountPerUnit != nil {
			discountTotal = discountTotal.Add(item.DiscountPerUnit.Mul(qty))
		}
		totalQuantity += item.Quantity
	}

	for _, d := range discounts {
		switch d.Type {
		case DiscountPercentage:
			discountTotal = discountTotal.Add(subtotal.Mul(d.Value).Div(decimal.NewFromInt(100)))
		case DiscountFixed:
			discountTotal = discountTotal.Add(d.Value)
		case DiscountFreeShipping:
			shipping = decimal.Zero
		}
	}

	total := subtotal.Sub(discountTotal).Add(shipping).Add(tax)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return CartTotals{
		Subtotal:      subtotal,
		DiscountTotal: discountTotal,
		ShippingTotal: shipping,
		TaxTotal:      tax,
		Total:         total,
		Currency:      currency,
		ItemCount:     len(items),
		TotalQuantity: totalQuantity,
	}
}

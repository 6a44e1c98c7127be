package bridge

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexPrice_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "bare number", in: `1234.5`, want: "1234.5"},
		{name: "numeric string", in: `"1234.50"`, want: "1234.5"},
		{name: "euro formatted", in: `"1 234,56 €"`, want: "1234.56"},
		{name: "dollar prefixed", in: `"$12.50"`, want: "12.5"},
		{name: "grouped thousands", in: `"1,234.56"`, want: "1234.56"},
		{name: "null", in: `null`, want: "0"},
		{name: "garbage", in: `"n/a"`, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p flexPrice
			require.NoError(t, json.Unmarshal([]byte(tt.in), &p))
			assert.True(t, p.Decimal.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", p.Decimal, tt.want)
		})
	}
}

func TestFlexInt_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{in: `12`, want: 12},
		{in: `"12"`, want: 12},
		{in: `"12.0"`, want: 12},
		{in: `null`, want: 0},
		{in: `"many"`, want: 0},
	}

	for _, tt := range tests {
		var i flexInt
		require.NoError(t, json.Unmarshal([]byte(tt.in), &i))
		assert.Equal(t, tt.want, int(i), "input %s", tt.in)
	}
}

func TestDeriveAvailability(t *testing.T) {
	tests := []struct {
		name string
		raw  rawProduct
		want bool
	}{
		{
			name: "active with stock",
			raw:  rawProduct{Status: "active", StockStatus: "in_stock", Quantity: 5},
			want: true,
		},
		{
			name: "inactive overrides stock",
			raw:  rawProduct{Status: "inactive", StockStatus: "in_stock", Quantity: 5},
			want: false,
		},
		{
			name: "draft is not sellable",
			raw:  rawProduct{Status: "draft", Quantity: 5},
			want: false,
		},
		{
			name: "out of stock flag overrides quantity",
			raw:  rawProduct{Status: "active", StockStatus: "out_of_stock", Quantity: 5},
			want: false,
		},
		{
			name: "zero quantity",
			raw:  rawProduct{Status: "active", StockStatus: "in_stock", Quantity: 0},
			want: false,
		},
		{
			name: "missing status fields fall back to quantity",
			raw:  rawProduct{Quantity: 1},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, deriveAvailability(tt.raw))
		})
	}
}

func TestMapProduct_SaleDetection(t *testing.T) {
	price := func(s string) flexPrice { return flexPrice{decimal.RequireFromString(s)} }
	salePrice := func(s string) *flexPrice { p := price(s); return &p }

	tests := []struct {
		name          string
		raw           rawProduct
		wantPrice     string
		wantCompareAt string // empty means absent
	}{
		{
			name:          "no sale price",
			raw:           rawProduct{Price: price("100")},
			wantPrice:     "100",
			wantCompareAt: "",
		},
		{
			name:          "sale below list",
			raw:           rawProduct{Price: price("100"), SalePrice: salePrice("80")},
			wantPrice:     "80",
			wantCompareAt: "100",
		},
		{
			name:          "sale equal to list is not a discount",
			raw:           rawProduct{Price: price("100"), SalePrice: salePrice("100")},
			wantPrice:     "100",
			wantCompareAt: "",
		},
		{
			name:          "sale above list is ignored",
			raw:           rawProduct{Price: price("100"), SalePrice: salePrice("120")},
			wantPrice:     "100",
			wantCompareAt: "",
		},
		{
			name:          "zero sale price is ignored",
			raw:           rawProduct{Price: price("100"), SalePrice: salePrice("0")},
			wantPrice:     "100",
			wantCompareAt: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mapProduct(tt.raw, "EUR")
			assert.True(t, p.Price.Equal(decimal.RequireFromString(tt.wantPrice)), "price %s", p.Price)
			if tt.wantCompareAt == "" {
				assert.Nil(t, p.CompareAtPrice)
				assert.False(t, p.OnSale())
			} else {
				require.NotNil(t, p.CompareAtPrice)
				assert.True(t, p.CompareAtPrice.Equal(decimal.RequireFromString(tt.wantCompareAt)))
				assert.True(t, p.OnSale())
			}
		})
	}
}

func TestMapProduct_SlugFallback(t *testing.T) {
	tests := []struct {
		name string
		raw  rawProduct
		want string
	}{
		{
			name: "vendor slug wins",
			raw:  rawProduct{Name: "Gold Ring", Slug: "gold-ring-18k", SKU: "GR-18"},
			want: "gold-ring-18k",
		},
		{
			name: "derived from name with diacritics",
			raw:  rawProduct{Name: "Collier Émeraude – Or 18 carats", SKU: "CE-18"},
			want: "collier-emeraude-or-18-carats",
		},
		{
			name: "empty name falls back to SKU",
			raw:  rawProduct{SKU: "BR_42/A"},
			want: "br-42-a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mapProduct(tt.raw, "EUR").Slug)
		})
	}
}

func TestMapProduct_OptionalFields(t *testing.T) {
	brand := "Webexpr"
	raw := rawProduct{
		ID:        "prod-1",
		SKU:       "SKU-1",
		Name:      "Ring",
		Brand:     &brand,
		CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	p := mapProduct(raw, "EUR")
	require.NotNil(t, p.Brand)
	assert.Equal(t, "Webexpr", *p.Brand)
	assert.Nil(t, p.Origin)
	assert.Nil(t, p.Warranty)
	assert.Nil(t, p.Collection)
	assert.Nil(t, p.Weight)
	assert.Equal(t, "EUR", p.Currency)
}

func TestMapProduct_EmbeddedCategory(t *testing.T) {
	raw := rawProduct{
		ID:   "prod-1",
		Name: "Ring",
		Category: &rawCategory{
			ID:   "cat-1",
			Name: "Bagues & Alliances",
		},
	}

	p := mapProduct(raw, "EUR")
	require.NotNil(t, p.Category)
	assert.Equal(t, "cat-1", p.CategoryID)
	assert.Equal(t, "bagues-alliances", p.Category.Slug)
}

func TestMapCart_DerivesTotals(t *testing.T) {
	discount := flexPrice{decimal.RequireFromString("5")}
	raw := rawCart{
		ID:       "cart-1",
		Currency: "EUR",
		Items: []rawCartItem{
			{ID: "li-1", ProductID: "p1", UnitPrice: flexPrice{decimal.RequireFromString("100")}, Quantity: 2},
			{ID: "li-2", ProductID: "p2", UnitPrice: flexPrice{decimal.RequireFromString("40")}, Quantity: 1, Discount: &discount},
		},
	}

	cart := mapCart(raw, "EUR")
	require.Len(t, cart.Items, 2)
	assert.True(t, cart.Items[0].LineTotal.Equal(decimal.RequireFromString("200")))
	assert.True(t, cart.Items[1].LineTotal.Equal(decimal.RequireFromString("35")))
	assert.True(t, cart.Totals.Subtotal.Equal(decimal.RequireFromString("240")))
	assert.True(t, cart.Totals.DiscountTotal.Equal(decimal.RequireFromString("5")))
	assert.True(t, cart.Totals.Total.Equal(decimal.RequireFromString("235")))
	assert.Equal(t, 3, cart.Totals.TotalQuantity)
}

func TestMapCompany_UnknownEnumsDegrade(t *testing.T) {
	company := mapCompany(rawCompany{
		ID:          "co-1",
		Name:        "Maison Bijoux",
		Tier:        "diamond",
		Status:      "???",
		CreditLimit: flexPrice{decimal.RequireFromString("10000")},
		CreditUsed:  flexPrice{decimal.RequireFromString("12000")},
	})

	assert.Equal(t, "standard", string(company.Tier))
	assert.Equal(t, "pending", string(company.Status))
	assert.True(t, company.CreditAvailable().IsZero())
}

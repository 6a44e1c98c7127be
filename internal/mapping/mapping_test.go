package mapping

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain number", input: "1234.5", want: "1234.5"},
		{name: "integer", input: "899", want: "899"},
		{name: "dollar prefix", input: "$12.50", want: "12.5"},
		{name: "euro suffix with nbsp grouping", input: "1 234,56 €", want: "1234.56"},
		{name: "euro suffix with space grouping", input: "1 234,00 €", want: "1234"},
		{name: "euro decimal comma", input: "12,50", want: "12.5"},
		{name: "us grouping", input: "1,234.56", want: "1234.56"},
		{name: "grouping commas only", input: "1,234,567", want: "1234567"},
		{name: "dot grouping with decimal", input: "1.234.567,89", want: "1234567.89"},
		{name: "multiple dot grouping", input: "1.234.567", want: "1234567"},
		{name: "negative", input: "-42.10", want: "-42.1"},
		{name: "currency code suffix", input: "199.99 EUR", want: "199.99"},
		{name: "empty", input: "", want: "0"},
		{name: "garbage", input: "call for price", want: "0"},
		{name: "lone symbol", input: "€", want: "0"},
		{name: "separators only", input: ",.", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, err := decimal.NewFromString(tt.want)
			assert.NoError(t, err)
			got := ParsePrice(tt.input)
			assert.True(t, want.Equal(got), "ParsePrice(%q) = %s, want %s", tt.input, got, want)
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple", input: "Gold Ring", want: "gold-ring"},
		{name: "diacritics", input: "Collier Émeraude Précieux", want: "collier-emeraude-precieux"},
		{name: "mixed separators", input: "Bague — Or 18k / Diamant", want: "bague-or-18k-diamant"},
		{name: "leading trailing junk", input: "  ** Bracelet ** ", want: "bracelet"},
		{name: "repeated separators collapse", input: "a -- b", want: "a-b"},
		{name: "uppercase with numbers", input: "SKU 12345 B", want: "sku-12345-b"},
		{name: "nothing usable", input: "★☆★", want: ""},
		{name: "empty", input: "", want: ""},
		{name: "already slug", input: "sautoir-perles", want: "sautoir-perles"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}

func TestSlugOrFallback(t *testing.T) {
	assert.Equal(t, "gold-ring", SlugOrFallback("Gold Ring", "SKU-1"))
	assert.Equal(t, "sku-1", SlugOrFallback("", "SKU-1"))
	assert.Equal(t, "sku-1", SlugOrFallback("★★★", "SKU-1"))
	assert.Equal(t, "", SlugOrFallback("", ""))
}

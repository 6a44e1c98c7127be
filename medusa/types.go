package medusa

import (
	"time"
)

// Medusa V2 store API payloads. Amounts arrive as plain numbers in
// currency units; each endpoint wraps its payload under an entity key
// ("products" + "count", "cart", "order", ...).

const productStatusPublished = "published"

// ---------------------------------------------------------------------------
// Catalog
// ---------------------------------------------------------------------------

type productListResponse struct {
	Products []rawProduct `json:"products"`
	Count    int64        `json:"count"`
	Offset   int          `json:"offset"`
	Limit    int          `json:"limit"`
}

type productResponse struct {
	Product rawProduct `json:"product"`
}

type categoryListResponse struct {
	Categories []rawCategory `json:"product_categories"`
	Count      int64         `json:"count"`
}

type categoryResponse struct {
	Category rawCategory `json:"product_category"`
}

type rawProduct struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Subtitle      string         `json:"subtitle,omitempty"`
	Description   string         `json:"description,omitempty"`
	Handle        string         `json:"handle,omitempty"`
	Status        string         `json:"status,omitempty"`
	Thumbnail     *string        `json:"thumbnail,omitempty"`
	Images        []rawImage     `json:"images,omitempty"`
	Material      *string        `json:"material,omitempty"`
	OriginCountry *string        `json:"origin_country,omitempty"`
	Weight        *float64       `json:"weight,omitempty"`
	CollectionID  *string        `json:"collection_id,omitempty"`
	Collection    *rawCollection `json:"collection,omitempty"`
	Categories    []rawCategory  `json:"categories,omitempty"`
	Variants      []rawVariant   `json:"variants,omitempty"`
	Tags          []rawTag       `json:"tags,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type rawImage struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type rawTag struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

type rawCollection struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type rawVariant struct {
	ID                string              `json:"id"`
	Title             string              `json:"title,omitempty"`
	SKU               *string             `json:"sku,omitempty"`
	InventoryQuantity int                 `json:"inventory_quantity"`
	ManageInventory   bool                `json:"manage_inventory"`
	AllowBackorder    bool                `json:"allow_backorder"`
	CalculatedPrice   *rawCalculatedPrice `json:"calculated_price,omitempty"`
}

type rawCalculatedPrice struct {
	CalculatedAmount float64 `json:"calculated_amount"`
	OriginalAmount   float64 `json:"original_amount"`
	CurrencyCode     string  `json:"currency_code,omitempty"`
}

type rawCategory struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Handle           string         `json:"handle,omitempty"`
	Description      string         `json:"description,omitempty"`
	ParentCategoryID *string        `json:"parent_category_id,omitempty"`
	Rank             int            `json:"rank"`
	Metadata         map[string]any `json:"metadata,omitempty"`
}

// ---------------------------------------------------------------------------
// Carts and orders
// ---------------------------------------------------------------------------

type cartResponse struct {
	Cart rawCart `json:"cart"`
}

// completeResponse is the POST /store/carts/:id/complete result: either
// the created order or the cart back with an error description.
type completeResponse struct {
	Type  string    `json:"type"`
	Order *rawOrder `json:"order,omitempty"`
	Cart  *rawCart  `json:"cart,omitempty"`
	Error *struct {
		Message string `json:"message,omitempty"`
		Type    string `json:"type,omitempty"`
	} `json:"error,omitempty"`
}

// lineItemDeleteResponse is the DELETE line-item result: the deletion
// receipt plus the parent cart after removal.
type lineItemDeleteResponse struct {
	Deleted bool     `json:"deleted"`
	Parent  *rawCart `json:"parent,omitempty"`
}

type shippingOptionListResponse struct {
	ShippingOptions []rawShippingOption `json:"shipping_options"`
}

type rawCart struct {
	ID           string  `json:"id"`
	CurrencyCode string  `json:"currency_code,omitempty"`
	CustomerID   *string `json:"customer_id,omitempty"`
	RegionID     *string `json:"region_id,omitempty"`
	Email        *string `json:"email,omitempty"`

	Items           []rawLineItem       `json:"items,omitempty"`
	Promotions      []rawPromotion      `json:"promotions,omitempty"`
	ShippingMethods []rawShippingMethod `json:"shipping_methods,omitempty"`

	ShippingAddress *rawAddressRef `json:"shipping_address,omitempty"`
	BillingAddress  *rawAddressRef `json:"billing_address,omitempty"`

	ItemSubtotal  float64 `json:"item_subtotal"`
	DiscountTotal float64 `json:"discount_total"`
	ShippingTotal float64 `json:"shipping_total"`
	TaxTotal      float64 `json:"tax_total"`
	Total         float64 `json:"total"`

	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type rawAddressRef struct {
	ID string `json:"id"`
}

type rawLineItem struct {
	ID         string  `json:"id"`
	ProductID  string  `json:"product_id,omitempty"`
	VariantID  *string `json:"variant_id,omitempty"`
	VariantSKU *string `json:"variant_sku,omitempty"`
	Title      string  `json:"title"`
	Thumbnail  *string `json:"thumbnail,omitempty"`

	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Total     float64 `json:"total"`

	Adjustments []rawAdjustment `json:"adjustments,omitempty"`
}

type rawAdjustment struct {
	ID     string  `json:"id"`
	Code   string  `json:"code,omitempty"`
	Amount float64 `json:"amount"`
}

type rawPromotion struct {
	ID                string `json:"id"`
	Code              string `json:"code"`
	IsAutomatic       bool   `json:"is_automatic"`
	ApplicationMethod *struct {
		Type  string  `json:"type"`
		Value float64 `json:"value"`
	} `json:"application_method,omitempty"`
}

type rawShippingMethod struct {
	ID               string  `json:"id"`
	ShippingOptionID string  `json:"shipping_option_id"`
	Name             string  `json:"name"`
	Amount           float64 `json:"amount"`
}

type rawShippingOption struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Provider *struct {
		ID string `json:"id"`
	} `json:"provider,omitempty"`
	TypeCode string `json:"price_type,omitempty"`
}

type orderListResponse struct {
	Orders []rawOrder `json:"orders"`
	Count  int64      `json:"count"`
}

type orderResponse struct {
	Order rawOrder `json:"order"`
}

type rawOrder struct {
	ID           string  `json:"id"`
	DisplayID    int64   `json:"display_id,omitempty"`
	CartID       *string `json:"cart_id,omitempty"`
	CustomerID   string  `json:"customer_id,omitempty"`
	Status       string  `json:"status,omitempty"`
	CurrencyCode string  `json:"currency_code,omitempty"`

	Items        []rawLineItem    `json:"items,omitempty"`
	Fulfillments []rawFulfillment `json:"fulfillments,omitempty"`

	ItemSubtotal  float64 `json:"item_subtotal"`
	DiscountTotal float64 `json:"discount_total"`
	ShippingTotal float64 `json:"shipping_total"`
	TaxTotal      float64 `json:"tax_total"`
	Total         float64 `json:"total"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type rawFulfillment struct {
	ID          string     `json:"id"`
	PackedAt    *time.Time `json:"packed_at,omitempty"`
	ShippedAt   *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
	CanceledAt  *time.Time `json:"canceled_at,omitempty"`
	Labels      []struct {
		TrackingNumber string `json:"tracking_number,omitempty"`
		TrackingURL    string `json:"tracking_url,omitempty"`
	} `json:"labels,omitempty"`
	Provider *struct {
		ID string `json:"id"`
	} `json:"provider,omitempty"`
}

// ---------------------------------------------------------------------------
// Customers
// ---------------------------------------------------------------------------

type customerResponse struct {
	Customer rawCustomer `json:"customer"`
}

type rawCustomer struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	FirstName  *string `json:"first_name,omitempty"`
	LastName   *string `json:"last_name,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	CompanyID  *string `json:"company_id,omitempty"`
	HasAccount bool    `json:"has_account"`
	Groups     []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"groups,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

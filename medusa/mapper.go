package medusa

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MarketingDevWebexpR/b2b-template-sub010/commerce"
	"github.com/MarketingDevWebexpR/b2b-template-sub010/internal/mapping"
)

// amount converts a Medusa numeric amount (currency units as a float)
// into a decimal.
func amount(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// mapProduct converts a Medusa store product into the shared model. The
// product is flattened onto its first variant: jewelry catalogs model one
// variant per reference, so the first variant carries the SKU, price and
// stock that matter.
func mapProduct(raw rawProduct, fallbackCurrency string) commerce.Product {
	p := commerce.Product{
		ID:          raw.ID,
		Name:        raw.Title,
		Slug:        raw.Handle,
		Description: raw.Description,
		Weight:      raw.Weight,
		Origin:      raw.OriginCountry,
		Metadata:    raw.Metadata,
		CreatedAt:   raw.CreatedAt,
		UpdatedAt:   raw.UpdatedAt,
	}

	if p.Slug == "" {
		p.Slug = mapping.SlugOrFallback(raw.Title, raw.ID)
	}
	if raw.Material != nil && *raw.Material != "" {
		p.Materials = splitMaterials(*raw.Material)
	}
	if raw.Collection != nil {
		title := raw.Collection.Title
		p.Collection = &title
	}

	if raw.Thumbnail != nil && *raw.Thumbnail != "" {
		p.Images = append(p.Images, *raw.Thumbnail)
	}
	for _, img := range raw.Images {
		if img.URL != "" && (raw.Thumbnail == nil || img.URL != *raw.Thumbnail) {
			p.Images = append(p.Images, img.URL)
		}
	}

	if len(raw.Categories) > 0 {
		cat := mapCategory(raw.Categories[0])
		p.CategoryID = cat.ID
		p.Category = &cat
	}

	published := raw.Status == "" || raw.Status == productStatusPublished
	inStock := false
	if len(raw.Variants) > 0 {
		variant := raw.Variants[0]
		if variant.SKU != nil {
			p.Reference = *variant.SKU
		}
		p.Stock = variant.InventoryQuantity
		inStock = !variant.ManageInventory || variant.AllowBackorder || variant.InventoryQuantity > 0

		if variant.CalculatedPrice != nil {
			price := variant.CalculatedPrice
			calculated := amount(price.CalculatedAmount)
			original := amount(price.OriginalAmount)
			p.Price = calculated
			p.Currency = strings.ToUpper(price.CurrencyCode)
			if calculated.LessThan(original) {
				p.CompareAtPrice = &original
			}
		}
	}
	if p.Currency == "" {
		p.Currency = fallbackCurrency
	}
	p.IsAvailable = published && inStock

	return p
}

// splitMaterials turns Medusa's single material string ("gold, diamond")
// into the shared materials list.
func splitMaterials(material string) []string {
	parts := strings.Split(material, ",")
	materials := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			materials = append(materials, trimmed)
		}
	}
	return materials
}

func mapCategory(raw rawCategory) commerce.Category {
	slug := raw.Handle
	if slug == "" {
		slug = mapping.SlugOrFallback(raw.Name, raw.ID)
	}
	return commerce.Category{
		ID:          raw.ID,
		Name:        raw.Name,
		Slug:        slug,
		Description: raw.Description,
		ParentID:    raw.ParentCategoryID,
		Position:    raw.Rank,
		Metadata:    raw.Metadata,
	}
}

func mapCart(raw rawCart, fallbackCurrency string) commerce.Cart {
	currency := strings.ToUpper(raw.CurrencyCode)
	if currency == "" {
		currency = fallbackCurrency
	}

	c := commerce.Cart{
		ID:         raw.ID,
		CustomerID: raw.CustomerID,
		RegionID:   raw.RegionID,
		Currency:   currency,
		Metadata:   raw.Metadata,
		CreatedAt:  raw.CreatedAt,
		UpdatedAt:  raw.UpdatedAt,
	}
	if raw.ShippingAddress != nil {
		id := raw.ShippingAddress.ID
		c.ShippingAddressID = &id
	}
	if raw.BillingAddress != nil {
		id := raw.BillingAddress.ID
		c.BillingAddressID = &id
	}

	c.Items = make([]commerce.CartItem, 0, len(raw.Items))
	for _, item := range raw.Items {
		c.Items = append(c.Items, mapLineItem(item))
	}

	for _, promo := range raw.Promotions {
		c.Discounts = append(c.Discounts, mapPromotion(promo))
	}

	if len(raw.ShippingMethods) > 0 {
		method := raw.ShippingMethods[0]
		c.ShippingOption = &commerce.ShippingOption{
			ID:     method.ShippingOptionID,
			Name:   method.Name,
			Amount: amount(method.Amount),
		}
	}

	// Medusa carts carry a full totals block; trust it instead of
	// recomputing, so promotions the shared model cannot express (e.g.
	// buy-x-get-y) still total correctly.
	c.Totals = commerce.CartTotals{
		Subtotal:      amount(raw.ItemSubtotal),
		DiscountTotal: amount(raw.DiscountTotal),
		ShippingTotal: amount(raw.ShippingTotal),
		TaxTotal:      amount(raw.TaxTotal),
		Total:         amount(raw.Total),
		Currency:      currency,
		ItemCount:     len(c.Items),
	}
	for _, item := range c.Items {
		c.Totals.TotalQuantity += item.Quantity
	}
	return c
}

func mapLineItem(raw rawLineItem) commerce.CartItem {
	item := commerce.CartItem{
		ID:          raw.ID,
		ProductID:   raw.ProductID,
		VariantID:   raw.VariantID,
		Title:       raw.Title,
		Thumbnail:   raw.Thumbnail,
		UnitPrice:   amount(raw.UnitPrice),
		Quantity:    raw.Quantity,
		LineTotal:   amount(raw.Total),
		IsAvailable: true,
	}
	if raw.VariantSKU != nil {
		item.SKU = *raw.VariantSKU
	}

	// Line adjustments total per line; expressed per unit in the shared
	// model.
	if len(raw.Adjustments) > 0 && raw.Quantity > 0 {
		total := decimal.Zero
		for _, adj := range raw.Adjustments {
			total = total.Add(amount(adj.Amount))
		}
		perUnit := total.Div(decimal.NewFromInt(int64(raw.Quantity)))
		item.DiscountPerUnit = &perUnit
	}
	return item
}

func mapPromotion(raw rawPromotion) commerce.Discount {
	d := commerce.Discount{Code: raw.Code, Type: commerce.DiscountFixed}
	if raw.ApplicationMethod != nil {
		d.Value = amount(raw.ApplicationMethod.Value)
		switch raw.ApplicationMethod.Type {
		case "percentage":
			d.Type = commerce.DiscountPercentage
		case "free_shipping":
			d.Type = commerce.DiscountFreeShipping
		}
	}
	return d
}

func mapShippingOption(raw rawShippingOption) commerce.ShippingOption {
	option := commerce.ShippingOption{
		ID:     raw.ID,
		Name:   raw.Name,
		Amount: amount(raw.Amount),
	}
	if raw.Provider != nil {
		id := raw.Provider.ID
		option.CarrierCode = &id
	}
	return option
}

func mapOrder(raw rawOrder, fallbackCurrency string) commerce.Order {
	currency := strings.ToUpper(raw.CurrencyCode)
	if currency == "" {
		currency = fallbackCurrency
	}

	o := commerce.Order{
		ID:         raw.ID,
		CartID:     raw.CartID,
		CustomerID: raw.CustomerID,
		Status:     mapOrderStatus(raw.Status),
		CreatedAt:  raw.CreatedAt,
		UpdatedAt:  raw.UpdatedAt,
	}
	if raw.DisplayID > 0 {
		o.DisplayID = formatDisplayID(raw.DisplayID)
	}

	o.Items = make([]commerce.CartItem, 0, len(raw.Items))
	for _, item := range raw.Items {
		o.Items = append(o.Items, mapLineItem(item))
	}

	o.Totals = commerce.CartTotals{
		Subtotal:      amount(raw.ItemSubtotal),
		DiscountTotal: amount(raw.DiscountTotal),
		ShippingTotal: amount(raw.ShippingTotal),
		TaxTotal:      amount(raw.TaxTotal),
		Total:         amount(raw.Total),
		Currency:      currency,
		ItemCount:     len(o.Items),
	}
	for _, item := range o.Items {
		o.Totals.TotalQuantity += item.Quantity
	}

	for _, f := range raw.Fulfillments {
		o.Fulfillments = append(o.Fulfillments, mapFulfillment(f))
	}
	return o
}

func formatDisplayID(id int64) string {
	return "#" + strconv.FormatInt(id, 10)
}

func mapOrderStatus(status string) commerce.OrderStatus {
	switch status {
	case "pending":
		return commerce.OrderStatusPending
	case "completed":
		return commerce.OrderStatusDelivered
	case "canceled", "cancelled":
		return commerce.OrderStatusCancelled
	case "archived":
		return commerce.OrderStatusDelivered
	default:
		return commerce.OrderStatusProcessing
	}
}

// mapFulfillment derives the shared tracking state machine position from
// Medusa's timestamp columns: the latest set timestamp wins.
func mapFulfillment(raw rawFulfillment) commerce.Fulfillment {
	f := commerce.Fulfillment{
		ID:          raw.ID,
		Status:      commerce.FulfillmentPending,
		ShippedAt:   raw.ShippedAt,
		DeliveredAt: raw.DeliveredAt,
	}
	if raw.Provider != nil {
		f.Carrier = raw.Provider.ID
	}
	switch {
	case raw.CanceledAt != nil:
		f.Status = commerce.FulfillmentFailed
	case raw.DeliveredAt != nil:
		f.Status = commerce.FulfillmentDelivered
	case raw.ShippedAt != nil:
		f.Status = commerce.FulfillmentShipped
	case raw.PackedAt != nil:
		f.Status = commerce.FulfillmentPacked
	}
	if len(raw.Labels) > 0 {
		label := raw.Labels[0]
		if label.TrackingNumber != "" {
			number := label.TrackingNumber
			f.TrackingNumber = &number
		}
		if label.TrackingURL != "" {
			trackingURL := label.TrackingURL
			f.TrackingURL = &trackingURL
		}
	}
	return f
}

func mapCustomer(raw rawCustomer) commerce.Customer {
	c := commerce.Customer{
		ID:         raw.ID,
		Email:      raw.Email,
		Phone:      raw.Phone,
		CompanyID:  raw.CompanyID,
		HasAccount: raw.HasAccount,
		Metadata:   raw.Metadata,
		CreatedAt:  raw.CreatedAt,
	}
	if raw.FirstName != nil {
		c.FirstName = *raw.FirstName
	}
	if raw.LastName != nil {
		c.LastName = *raw.LastName
	}
	for _, group := range raw.Groups {
		c.Groups = append(c.Groups, group.Name)
	}
	return c
}

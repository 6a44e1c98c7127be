package bridge

import (
	"github.com/shopspring/decimal"

	"github.com/MarketingDevWebexpR/b2b-template-sub010/commerce"
	"github.com/MarketingDevWebexpR/b2b-template-sub010/internal/mapping"
)

// mapProduct converts a Bridge catalog payload into the shared model.
// currency is the adapter fallback for payloads that omit one.
func mapProduct(raw rawProduct, currency string) commerce.Product {
	p := commerce.Product{
		ID:          raw.ID,
		Reference:   raw.SKU,
		Name:        raw.Name,
		Slug:        raw.Slug,
		Description: raw.Description,

		Price:            raw.Price.Decimal,
		PriceIncludesVAT: raw.VATIncluded,
		Currency:         raw.Currency,

		Images:     raw.Images,
		CategoryID: raw.CategoryID,
		Materials:  raw.Materials,

		Stock:       int(raw.Quantity),
		IsAvailable: deriveAvailability(raw),
		Featured:    raw.Featured,
		IsNew:       raw.IsNew,

		Brand:      raw.Brand,
		Origin:     raw.Origin,
		Warranty:   raw.Warranty,
		Collection: raw.Collection,
		Weight:     raw.Weight,

		Metadata:  raw.Metadata,
		CreatedAt: raw.CreatedAt,
		UpdatedAt: raw.UpdatedAt,
	}

	if len(raw.NameLocalized) > 0 {
		p.LocalizedNames = raw.NameLocalized
	}
	if p.Currency == "" {
		p.Currency = currency
	}
	if p.Slug == "" {
		p.Slug = mapping.SlugOrFallback(raw.Name, raw.SKU)
	}

	// A sale price strictly below the list price moves the list price to
	// CompareAtPrice; an equal or higher "sale" is not a discount.
	if raw.SalePrice != nil {
		sale := raw.SalePrice.Decimal
		if sale.IsPositive() && sale.LessThan(raw.Price.Decimal) {
			list := raw.Price.Decimal
			p.Price = sale
			p.CompareAtPrice = &list
		}
	}

	if raw.Category != nil {
		cat := mapCategory(*raw.Category)
		p.Category = &cat
		if p.CategoryID == "" {
			p.CategoryID = cat.ID
		}
	}

	return p
}

// deriveAvailability applies the Bridge stock rules: a product is buyable
// only when it is active, not flagged out of stock, and has positive
// quantity.
func deriveAvailability(raw rawProduct) bool {
	if raw.Status != "" && raw.Status != statusActive {
		return false
	}
	if raw.StockStatus == stockStatusOutOf {
		return false
	}
	return raw.Quantity > 0
}

func mapCategory(raw rawCategory) commerce.Category {
	slug := raw.Slug
	if slug == "" {
		slug = mapping.SlugOrFallback(raw.Name, raw.ID)
	}
	return commerce.Category{
		ID:           raw.ID,
		Name:         raw.Name,
		Slug:         slug,
		Description:  raw.Description,
		Image:        raw.Image,
		ParentID:     raw.ParentID,
		Position:     raw.Position,
		ProductCount: raw.ProductCount,
		Metadata:     raw.Metadata,
	}
}

func mapCompany(raw rawCompany) commerce.Company {
	tier := commerce.CompanyTier(raw.Tier)
	if !tier.IsValid() {
		tier = commerce.TierStandard
	}
	status := commerce.CompanyStatus(raw.Status)
	if !status.IsValid() {
		status = commerce.CompanyPending
	}
	return commerce.Company{
		ID:          raw.ID,
		Name:        raw.Name,
		LegalName:   raw.LegalName,
		TaxID:       raw.TaxID,
		Email:       raw.Email,
		Phone:       raw.Phone,
		Currency:    raw.Currency,
		CreditLimit: raw.CreditLimit.Decimal,
		CreditUsed:  raw.CreditUsed.Decimal,
		Tier:        tier,
		Status:      status,
		Tags:        raw.Tags,
		Metadata:    raw.Metadata,
		CreatedAt:   raw.CreatedAt,
	}
}

func mapEmployee(raw rawEmployee) commerce.Employee {
	role := commerce.EmployeeRole(raw.Role)
	if !role.IsValid() {
		role = commerce.RoleViewer
	}
	e := commerce.Employee{
		ID:          raw.ID,
		CompanyID:   raw.CompanyID,
		CustomerID:  raw.CustomerID,
		Email:       raw.Email,
		FirstName:   raw.FirstName,
		LastName:    raw.LastName,
		Role:        role,
		Permissions: raw.Permissions,
		Department:  raw.Department,
		CreatedAt:   raw.CreatedAt,
	}
	if raw.Limit != nil {
		limit := mapSpendingLimit(*raw.Limit)
		e.Limit = &limit
	}
	return e
}

func mapSpendingLimit(raw rawSpendingLimit) commerce.SpendingLimit {
	return commerce.SpendingLimit{
		Period:   commerce.SpendingPeriod(raw.Period),
		Amount:   raw.Amount.Decimal,
		Spent:    raw.Spent.Decimal,
		ResetsAt: raw.ResetsAt,
	}
}

func mapSpendingUsage(raw rawSpendingUsage) commerce.SpendingUsage {
	usage := commerce.SpendingUsage{
		CompanyID: raw.CompanyID,
		Period:    commerce.SpendingPeriod(raw.Period),
		Total:     raw.Total.Decimal,
	}
	if len(raw.ByEmployee) > 0 {
		usage.ByEmployee = make(map[string]decimal.Decimal, len(raw.ByEmployee))
		for id, amount := range raw.ByEmployee {
			usage.ByEmployee[id] = amount.Decimal
		}
	}
	return usage
}

func mapQuote(raw rawQuote) commerce.Quote {
	q := commerce.Quote{
		ID:          raw.ID,
		Number:      raw.Number,
		CompanyID:   raw.CompanyID,
		RequestedBy: raw.RequestedBy,
		Status:      commerce.QuoteStatus(raw.Status),
		ValidUntil:  raw.ValidUntil,
		CreatedAt:   raw.CreatedAt,
		UpdatedAt:   raw.UpdatedAt,
	}
	q.Items = make([]commerce.QuoteItem, 0, len(raw.Items))
	for _, item := range raw.Items {
		mapped := commerce.QuoteItem{
			ProductID: item.ProductID,
			SKU:       item.SKU,
			Title:     item.Title,
			Quantity:  int(item.Quantity),
			ListPrice: item.ListPrice.Decimal,
			Note:      item.Note,
		}
		if item.QuotedPrice != nil {
			quoted := item.QuotedPrice.Decimal
			mapped.QuotedPrice = &quoted
		}
		q.Items = append(q.Items, mapped)
	}
	if raw.Totals != nil {
		q.Totals = &commerce.CartTotals{
			Subtotal:      raw.Totals.Subtotal.Decimal,
			DiscountTotal: raw.Totals.Discount.Decimal,
			ShippingTotal: raw.Totals.Shipping.Decimal,
			TaxTotal:      raw.Totals.Tax.Decimal,
			Total:         raw.Totals.Total.Decimal,
			Currency:      raw.Totals.Currency,
			ItemCount:     len(raw.Items),
		}
		for _, item := range raw.Items {
			q.Totals.TotalQuantity += int(item.Quantity)
		}
	}
	for _, msg := range raw.Messages {
		q.Messages = append(q.Messages, commerce.QuoteMessage{
			ID:         msg.ID,
			AuthorID:   msg.AuthorID,
			AuthorRole: msg.AuthorRole,
			Body:       msg.Body,
			SentAt:     msg.SentAt,
		})
	}
	return q
}

func mapApproval(raw rawApproval) commerce.Approval {
	a := commerce.Approval{
		ID:          raw.ID,
		Kind:        commerce.ApprovalKind(raw.Kind),
		SubjectID:   raw.SubjectID,
		CompanyID:   raw.CompanyID,
		RequestedBy: raw.RequestedBy,
		Status:      commerce.ApprovalStatus(raw.Status),
		Amount:      raw.Amount.Decimal,
		Reason:      raw.Reason,
		StepIndex:   int(raw.StepIndex),
		DecidedBy:   raw.DecidedBy,
		DecidedAt:   raw.DecidedAt,
		Comment:     raw.Comment,
		CreatedAt:   raw.CreatedAt,
	}
	if raw.Workflow != nil {
		wf := commerce.ApprovalWorkflow{
			ID:    raw.Workflow.ID,
			Name:  raw.Workflow.Name,
			Steps: make([]commerce.ApprovalStep, 0, len(raw.Workflow.Steps)),
		}
		for _, step := range raw.Workflow.Steps {
			mapped := commerce.ApprovalStep{
				Sequence: int(step.Sequence),
				Role:     commerce.EmployeeRole(step.Role),
			}
			if step.Threshold != nil {
				threshold := step.Threshold.Decimal
				mapped.Threshold = &threshold
			}
			wf.Steps = append(wf.Steps, mapped)
		}
		a.Workflow = &wf
	}
	return a
}

// mapCart converts the cart Bridge returns when a quote is converted.
// Bridge carts carry no totals block, so the shared envelope is derived
// locally.
func mapCart(raw rawCart, currency string) commerce.Cart {
	c := commerce.Cart{
		ID:        raw.ID,
		CompanyID: raw.CompanyID,
		Currency:  raw.Currency,
		Metadata:  raw.Metadata,
		CreatedAt: raw.CreatedAt,
		UpdatedAt: raw.UpdatedAt,
	}
	if c.Currency == "" {
		c.Currency = currency
	}
	c.Items = make([]commerce.CartItem, 0, len(raw.Items))
	for _, item := range raw.Items {
		mapped := commerce.CartItem{
			ID:          item.ID,
			ProductID:   item.ProductID,
			SKU:         item.SKU,
			Title:       item.Title,
			UnitPrice:   item.UnitPrice.Decimal,
			Quantity:    int(item.Quantity),
			IsAvailable: true,
		}
		if item.Discount != nil {
			discount := item.Discount.Decimal
			mapped.DiscountPerUnit = &discount
		}
		mapped.LineTotal = mapped.ComputeLineTotal()
		c.Items = append(c.Items, mapped)
	}
	c.Totals = commerce.ComputeTotals(c.Items, nil, decimal.Zero, decimal.Zero, c.Currency)
	return c
}

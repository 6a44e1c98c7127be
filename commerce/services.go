package commerce

import (
	"context"

	"github.com/shopspring/decimal"
)

// ProductService exposes the catalog of one provider.
type ProductService interface {
	// List returns a catalog page honoring opts.
	List(ctx context.Context, opts ListOptions) (*Page[Product], error)
	// Get fetches a product by provider ID.
	Get(ctx context.Context, id string) (*Product, error)
	// GetBySlug fetches a product by URL slug.
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	// GetBySKU fetches a product by vendor reference.
	GetBySKU(ctx context.Context, sku string) (*Product, error)
	// GetMany fetches a batch of products, preserving the request order.
	// Unknown IDs are skipped, not errors.
	GetMany(ctx context.Context, ids []string) ([]Product, error)
	// ListFeatured returns up to limit merchandised products.
	ListFeatured(ctx context.Context, limit int) ([]Product, error)
	// ListNew returns up to limit recent additions.
	ListNew(ctx context.Context, limit int) ([]Product, error)
}

// CategoryService exposes the catalog taxonomy.
type CategoryService interface {
	List(ctx context.Context, opts ListOptions) (*Page[Category], error)
	Get(ctx context.Context, id string) (*Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	// Tree returns the full taxonomy as a forest.
	Tree(ctx context.Context) ([]CategoryTree, error)
}

// CreateCartInput seeds a new cart.
type CreateCartInput struct {
	RegionID   *string        `json:"regionId,omitempty"`
	CustomerID *string        `json:"customerId,omitempty"`
	CompanyID  *string        `json:"companyId,omitempty"`
	Currency   string         `json:"currency,omitempty"`
	Items      []AddItemInput `json:"items,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// AddItemInput adds one product line to a cart.
type AddItemInput struct {
	ProductID string         `json:"productId"`
	VariantID *string        `json:"variantId,omitempty"`
	SKU       string         `json:"sku,omitempty"`
	Quantity  int            `json:"quantity"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// AddItemFailure records one line rejected during a bulk add.
type AddItemFailure struct {
	// Index is the position of the failed line in the request.
	Index  int          `json:"index"`
	Input  AddItemInput `json:"input"`
	Reason string       `json:"reason"`
}

// BulkAddResult reports a bulk add. Failures never abort the batch:
// SuccessCount lines were added and Cart reflects them, FailedCount lines
// are listed in Failed with reasons.
type BulkAddResult struct {
	Cart         *Cart            `json:"cart"`
	TotalCount   int              `json:"totalCount"`
	SuccessCount int              `json:"successCount"`
	FailedCount  int              `json:"failedCount"`
	Failed       []AddItemFailure `json:"failed,omitempty"`
}

// CartService manages carts on one provider.
type CartService interface {
	Create(ctx context.Context, input CreateCartInput) (*Cart, error)
	Get(ctx context.Context, cartID string) (*Cart, error)
	AddItem(ctx context.Context, cartID string, input AddItemInput) (*Cart, error)
	// AddItems adds every line it can and reports the rest; one bad line
	// never rejects the batch.
	AddItems(ctx context.Context, cartID string, inputs []AddItemInput) (*BulkAddResult, error)
	UpdateItem(ctx context.Context, cartID, itemID string, quantity int) (*Cart, error)
	RemoveItem(ctx context.Context, cartID, itemID string) (*Cart, error)
	ApplyDiscount(ctx context.Context, cartID, code string) (*Cart, error)
	RemoveDiscount(ctx context.Context, cartID, code string) (*Cart, error)
	ListShippingOptions(ctx context.Context, cartID string) ([]ShippingOption, error)
	SetShippingOption(ctx context.Context, cartID, optionID string) (*Cart, error)
	// Complete converts the cart into an order.
	Complete(ctx context.Context, cartID string) (*Order, error)
}

// OrderService reads and manages orders.
type OrderService interface {
	List(ctx context.Context, opts ListOptions) (*Page[Order], error)
	Get(ctx context.Context, id string) (*Order, error)
	Cancel(ctx context.Context, id string) (*Order, error)
}

// UpdateCustomerInput mutates the current customer profile. Nil fields are
// left untouched.
type UpdateCustomerInput struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

// CustomerService exposes the storefront account.
type CustomerService interface {
	// Current returns the customer bound to the installed auth token.
	// A session-less caller gets (nil, nil), not an error.
	Current(ctx context.Context) (*Customer, error)
	Get(ctx context.Context, id string) (*Customer, error)
	Update(ctx context.Context, id string, input UpdateCustomerInput) (*Customer, error)
}

// UpdateCompanyInput mutates a company profile. Nil fields are left
// untouched.
type UpdateCompanyInput struct {
	Name        *string          `json:"name,omitempty"`
	Email       *string          `json:"email,omitempty"`
	Phone       *string          `json:"phone,omitempty"`
	CreditLimit *decimal.Decimal `json:"creditLimit,omitempty"`
	Tier        *CompanyTier     `json:"tier,omitempty"`
}

// CompanyService manages B2B buyer organizations.
type CompanyService interface {
	Get(ctx context.Context, id string) (*Company, error)
	// GetCurrent resolves the company of the active B2B context.
	GetCurrent(ctx context.Context) (*Company, error)
	Update(ctx context.Context, id string, input UpdateCompanyInput) (*Company, error)
}

// CreateEmployeeInput enrolls an employee into a company.
type CreateEmployeeInput struct {
	Email      string         `json:"email"`
	FirstName  string         `json:"firstName,omitempty"`
	LastName   string         `json:"lastName,omitempty"`
	Role       EmployeeRole   `json:"role"`
	Department *string        `json:"department,omitempty"`
	Limit      *SpendingLimit `json:"spendingLimit,omitempty"`
}

// UpdateEmployeeInput mutates an employee. Nil fields are left untouched.
type UpdateEmployeeInput struct {
	Role        *EmployeeRole `json:"role,omitempty"`
	Permissions []string      `json:"permissions,omitempty"`
	Department  *string       `json:"department,omitempty"`
}

// EmployeeService manages the employees of a company.
type EmployeeService interface {
	List(ctx context.Context, companyID string, opts ListOptions) (*Page[Employee], error)
	Get(ctx context.Context, id string) (*Employee, error)
	Create(ctx context.Context, companyID string, input CreateEmployeeInput) (*Employee, error)
	Update(ctx context.Context, id string, input UpdateEmployeeInput) (*Employee, error)
	Delete(ctx context.Context, id string) error
}

// QuoteItemInput is one requested line of a new quote.
type QuoteItemInput struct {
	ProductID string  `json:"productId"`
	SKU       string  `json:"sku,omitempty"`
	Quantity  int     `json:"quantity"`
	Note      *string `json:"note,omitempty"`
}

// CreateQuoteInput opens a draft quote.
type CreateQuoteInput struct {
	Items   []QuoteItemInput `json:"items"`
	Message string           `json:"message,omitempty"`
}

// QuoteService runs the request-for-pricing negotiation.
type QuoteService interface {
	List(ctx context.Context, opts ListOptions) (*Page[Quote], error)
	Get(ctx context.Context, id string) (*Quote, error)
	Create(ctx context.Context, input CreateQuoteInput) (*Quote, error)
	// Submit hands a draft to the merchant for pricing.
	Submit(ctx context.Context, id string) (*Quote, error)
	Accept(ctx context.Context, id string) (*Quote, error)
	Reject(ctx context.Context, id, reason string) (*Quote, error)
	Cancel(ctx context.Context, id string) (*Quote, error)
	AddMessage(ctx context.Context, id, body string) (*Quote, error)
	// ConvertToCart materializes an accepted quote as a ready-to-order
	// cart at the quoted prices.
	ConvertToCart(ctx context.Context, id string) (*Cart, error)
}

// ApprovalAction is a reviewer decision on an approval request.
type ApprovalAction string

const (
	ActionApprove  ApprovalAction = "approve"
	ActionReject   ApprovalAction = "reject"
	ActionEscalate ApprovalAction = "escalate"
)

// IsValid checks if the action is a known value.
func (a ApprovalAction) IsValid() bool {
	switch a {
	case ActionApprove, ActionReject, ActionEscalate:
		return true
	}
	return false
}

// Decision carries a reviewer action plus an optional comment.
type Decision struct {
	Action  ApprovalAction `json:"action"`
	Comment string         `json:"comment,omitempty"`
}

// ApprovalService manages purchase approval requests.
type ApprovalService interface {
	List(ctx context.Context, opts ListOptions) (*Page[Approval], error)
	Get(ctx context.Context, id string) (*Approval, error)
	Decide(ctx context.Context, id string, decision Decision) (*Approval, error)
}

// SpendingService manages employee spending limits.
type SpendingService interface {
	GetLimit(ctx context.Context, employeeID string) (*SpendingLimit, error)
	SetLimit(ctx context.Context, employeeID string, limit SpendingLimit) (*SpendingLimit, error)
	Usage(ctx context.Context, companyID string, period SpendingPeriod) (*SpendingUsage, error)
}

// B2BServices bundles the B2B service family of a provider.
type B2BServices interface {
	Companies() CompanyService
	Employees() EmployeeService
	Quotes() QuoteService
	Approvals() ApprovalService
	Spending() SpendingService
}

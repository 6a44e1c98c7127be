package commerce

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanyTier is the commercial tier a company trades under.
type CompanyTier string

const (
	TierStandard CompanyTier = "standard"
	TierSilver   CompanyTier = "silver"
	TierGold     CompanyTier = "gold"
	TierPlatinum CompanyTier = "platinum"
)

// IsValid checks if the tier is a known value.
func (t CompanyTier) IsValid() bool {
	switch t {
	case TierStandard, TierSilver, TierGold, TierPlatinum:
		return true
	}
	return false
}

// CompanyStatus is the account state of a company.
type CompanyStatus string

const (
	CompanyPending   CompanyStatus = "pending"
	CompanyActive    CompanyStatus = "active"
	CompanySuspended CompanyStatus = "suspended"
	CompanyClosed    CompanyStatus = "closed"
)

// IsValid checks if the company status is a known value.
func (s CompanyStatus) IsValid() bool {
	switch s {
	case CompanyPending, CompanyActive, CompanySuspended, CompanyClosed:
		return true
	}
	return false
}

// CanOrder reports whether the company may place orders.
func (s CompanyStatus) CanOrder() bool {
	return s == CompanyActive
}

// Company is a B2B buyer organization.
type Company struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	LegalName *string `json:"legalName,omitempty"`
	TaxID     *string `json:"taxId,omitempty"`
	Email     string  `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Currency  string  `json:"currency,omitempty"`

	CreditLimit decimal.Decimal `json:"creditLimit"`
	CreditUsed  decimal.Decimal `json:"creditUsed"`

	Tier   CompanyTier   `json:"tier"`
	Status CompanyStatus `json:"status"`
	Tags   []string      `json:"tags,omitempty"`

	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// CreditAvailable returns the remaining credit, never negative.
func (c *Company) CreditAvailable() decimal.Decimal {
	available := c.CreditLimit.Sub(c.CreditUsed)
	if available.IsNegative() {
		return decimal.Zero
	}
	return available
}

// EmployeeRole scopes what a company employee may do in the storefront.
type EmployeeRole string

const (
	RoleAdmin     EmployeeRole = "admin"
	RolePurchaser EmployeeRole = "purchaser"
	RoleViewer    EmployeeRole = "viewer"
)

// IsValid checks if the role is a known value.
func (r EmployeeRole) IsValid() bool {
	switch r {
	case RoleAdmin, RolePurchaser, RoleViewer:
		return true
	}
	return false
}

// CanPurchase reports whether the role allows placing orders.
func (r EmployeeRole) CanPurchase() bool {
	return r == RoleAdmin || r == RolePurchaser
}

// Employee is a storefront user acting on behalf of a company.
type Employee struct {
	ID         string  `json:"id"`
	CompanyID  string  `json:"companyId"`
	CustomerID *string `json:"customerId,omitempty"`
	Email      string  `json:"email"`
	FirstName  string  `json:"firstName,omitempty"`
	LastName   string  `json:"lastName,omitempty"`

	Role        EmployeeRole   `json:"role"`
	Permissions []string       `json:"permissions,omitempty"`
	Department  *string        `json:"department,omitempty"`
	Limit       *SpendingLimit `json:"spendingLimit,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// SpendingPeriod is the window a spending limit resets over.
type SpendingPeriod string

const (
	SpendDaily     SpendingPeriod = "daily"
	SpendWeekly    SpendingPeriod = "weekly"
	SpendMonthly   SpendingPeriod = "monthly"
	SpendQuarterly SpendingPeriod = "quarterly"
	SpendYearly    SpendingPeriod = "yearly"
)

// IsValid checks if the period is a known value.
func (p SpendingPeriod) IsValid() bool {
	switch p {
	case SpendDaily, SpendWeekly, SpendMonthly, SpendQuarterly, SpendYearly:
		return true
	}
	return false
}

// SpendingLimit caps what an employee may spend per period.
type SpendingLimit struct {
	Period   SpendingPeriod  `json:"period"`
	Amount   decimal.Decimal `json:"amount"`
	Spent    decimal.Decimal `json:"spent"`
	ResetsAt *time.Time      `json:"resetsAt,omitempty"`
}

// Remaining returns the unspent budget in the current period, never
// negative.
func (l SpendingLimit) Remaining() decimal.Decimal {
	remaining := l.Amount.Sub(l.Spent)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// Allows reports whether one more purchase of amount fits in the limit.
func (l SpendingLimit) Allows(amount decimal.Decimal) bool {
	return amount.LessThanOrEqual(l.Remaining())
}

// SpendingUsage aggregates company spending over a period.
type SpendingUsage struct {
	CompanyID  string                     `json:"companyId"`
	Period     SpendingPeriod             `json:"period"`
	Total      decimal.Decimal            `json:"total"`
	ByEmployee map[string]decimal.Decimal `json:"byEmployee,omitempty"`
}

// QuoteStatus is the negotiation state of a quote.
type QuoteStatus string

const (
	QuoteDraft     QuoteStatus = "draft"
	QuoteSubmitted QuoteStatus = "submitted"
	QuoteResponded QuoteStatus = "responded"
	QuoteAccepted  QuoteStatus = "accepted"
	QuoteRejected  QuoteStatus = "rejected"
	QuoteExpired   QuoteStatus = "expired"
	QuoteCancelled QuoteStatus = "cancelled"
)

// IsValid checks if the quote status is a known value.
func (s QuoteStatus) IsValid() bool {
	switch s {
	case QuoteDraft, QuoteSubmitted, QuoteResponded, QuoteAccepted,
		QuoteRejected, QuoteExpired, QuoteCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether the negotiation is over.
func (s QuoteStatus) IsTerminal() bool {
	switch s {
	case QuoteAccepted, QuoteRejected, QuoteExpired, QuoteCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the quote may move to next. The buyer
// path is draft -> submitted -> responded -> accepted/rejected; any
// non-terminal quote may be cancelled, and submitted or responded quotes
// may expire.
func (s QuoteStatus) CanTransitionTo(next QuoteStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if next == QuoteCancelled {
		return true
	}
	switch s {
	case QuoteDraft:
		return next == QuoteSubmitted
	case QuoteSubmitted:
		return next == QuoteResponded || next == QuoteExpired
	case QuoteResponded:
		return next == QuoteAccepted || next == QuoteRejected || next == QuoteExpired
	default:
		return false
	}
}

// QuoteItem is one negotiated line of a quote.
type QuoteItem struct {
	ProductID   string           `json:"productId"`
	SKU         string           `json:"sku,omitempty"`
	Title       string           `json:"title"`
	Quantity    int              `json:"quantity"`
	ListPrice   decimal.Decimal  `json:"listPrice"`
	QuotedPrice *decimal.Decimal `json:"quotedPrice,omitempty"`
	Note        *string          `json:"note,omitempty"`
}

// QuoteMessage is one entry of the negotiation thread.
type QuoteMessage struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"authorId"`
	AuthorRole string    `json:"authorRole,omitempty"`
	Body       string    `json:"body"`
	SentAt     time.Time `json:"sentAt"`
}

// Quote is a request-for-pricing negotiated between a company and the
// merchant.
type Quote struct {
	ID          string      `json:"id"`
	Number      string      `json:"number,omitempty"`
	CompanyID   string      `json:"companyId"`
	RequestedBy string      `json:"requestedBy,omitempty"`
	Status      QuoteStatus `json:"status"`

	Items    []QuoteItem    `json:"items"`
	Totals   *CartTotals    `json:"totals,omitempty"`
	Messages []QuoteMessage `json:"messages,omitempty"`

	ValidUntil *time.Time `json:"validUntil,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// ApprovalKind is the subject type an approval gates.
type ApprovalKind string

const (
	ApprovalOrder  ApprovalKind = "order"
	ApprovalQuote  ApprovalKind = "quote"
	ApprovalBudget ApprovalKind = "budget"
)

// IsValid checks if the approval kind is a known value.
func (k ApprovalKind) IsValid() bool {
	switch k {
	case ApprovalOrder, ApprovalQuote, ApprovalBudget:
		return true
	}
	return false
}

// ApprovalStatus is the decision state of an approval request.
type ApprovalStatus string

const (
	ApprovalPending   ApprovalStatus = "pending"
	ApprovalApproved  ApprovalStatus = "approved"
	ApprovalRejected  ApprovalStatus = "rejected"
	ApprovalEscalated ApprovalStatus = "escalated"
)

// IsValid checks if the approval status is a known value.
func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalPending, ApprovalApproved, ApprovalRejected, ApprovalEscalated:
		return true
	}
	return false
}

// IsDecided reports whether a final decision was taken.
func (s ApprovalStatus) IsDecided() bool {
	return s == ApprovalApproved || s == ApprovalRejected
}

// CanTransitionTo reports whether the approval may move to next. Pending
// requests may be approved, rejected or escalated; escalated requests
// await a decision one step up.
func (s ApprovalStatus) CanTransitionTo(next ApprovalStatus) bool {
	switch s {
	case ApprovalPending:
		return next == ApprovalApproved || next == ApprovalRejected || next == ApprovalEscalated
	case ApprovalEscalated:
		return next == ApprovalApproved || next == ApprovalRejected
	default:
		return false
	}
}

// ApprovalStep is one level of an approval workflow.
type ApprovalStep struct {
	Sequence int `json:"sequence"`
	// Role is the employee role allowed to decide at this step.
	Role EmployeeRole `json:"role"`
	// Threshold is the order amount from which this step applies.
	Threshold *decimal.Decimal `json:"threshold,omitempty"`
}

// ApprovalWorkflow is the ordered chain of steps a request climbs.
type ApprovalWorkflow struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Steps []ApprovalStep `json:"steps"`
}

// Approval is a pending or decided purchase approval request.
type Approval struct {
	ID          string         `json:"id"`
	Kind        ApprovalKind   `json:"kind"`
	SubjectID   string         `json:"subjectId"`
	CompanyID   string         `json:"companyId"`
	RequestedBy string         `json:"requestedBy"`
	Status      ApprovalStatus `json:"status"`

	Amount decimal.Decimal `json:"amount"`
	Reason *string         `json:"reason,omitempty"`

	StepIndex int               `json:"stepIndex"`
	Workflow  *ApprovalWorkflow `json:"workflow,omitempty"`

	DecidedBy *string    `json:"decidedBy,omitempty"`
	DecidedAt *time.Time `json:"decidedAt,omitempty"`
	Comment   *string    `json:"comment,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

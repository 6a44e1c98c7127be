package bridge

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MarketingDevWebexpR/b2b-template-sub010/internal/mapping"
)

// ---------------------------------------------------------------------------
// Response envelope
// ---------------------------------------------------------------------------

// pageMeta is the pagination block Bridge attaches to list responses.
type pageMeta struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
}

// envelope is the Bridge response wrapper: every endpoint returns its
// payload under "data", list endpoints add "meta".
type envelope[T any] struct {
	Data T         `json:"data"`
	Meta *pageMeta `json:"meta,omitempty"`
}

// apiMessage is the error body Bridge returns on non-2xx statuses.
type apiMessage struct {
	Message string `json:"message,omitempty"`
	Error   *struct {
		Code    string `json:"code,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"error,omitempty"`
}

// ---------------------------------------------------------------------------
// Tolerant scalar decoding
// ---------------------------------------------------------------------------

// flexPrice decodes a Bridge price that may arrive as a bare number or a
// formatted string ("1 234,56 €", "$12.50"). Malformed values decode to
// zero rather than failing the whole payload.
type flexPrice struct {
	decimal.Decimal
}

func (p *flexPrice) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		p.Decimal = decimal.Zero
		return nil
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			p.Decimal = decimal.Zero
			return nil
		}
		p.Decimal = mapping.ParsePrice(str)
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		p.Decimal = decimal.Zero
		return nil
	}
	p.Decimal = d
	return nil
}

// flexInt decodes an integer that may arrive as a number or a numeric
// string. Malformed values decode to zero.
type flexInt int

func (i *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		*i = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			*i = 0
			return nil
		}
		n = int(f)
	}
	*i = flexInt(n)
	return nil
}

// ---------------------------------------------------------------------------
// Catalog
// ---------------------------------------------------------------------------

const (
	statusActive       = "active"
	stockStatusOutOf   = "out_of_stock"
	stockStatusInStock = "in_stock"
)

type rawProduct struct {
	ID            string            `json:"id"`
	SKU           string            `json:"sku"`
	Name          string            `json:"name"`
	NameLocalized map[string]string `json:"name_localized,omitempty"`
	Slug          string            `json:"slug,omitempty"`
	Description   string            `json:"description,omitempty"`

	Price       flexPrice  `json:"price"`
	SalePrice   *flexPrice `json:"sale_price,omitempty"`
	VATIncluded bool       `json:"vat_included"`
	Currency    string     `json:"currency,omitempty"`

	Images     []string     `json:"images,omitempty"`
	CategoryID string       `json:"category_id,omitempty"`
	Category   *rawCategory `json:"category,omitempty"`
	Materials  []string     `json:"materials,omitempty"`

	Status      string  `json:"status,omitempty"`
	StockStatus string  `json:"stock_status,omitempty"`
	Quantity    flexInt `json:"quantity"`

	Featured bool `json:"featured"`
	IsNew    bool `json:"is_new"`

	Brand      *string  `json:"brand,omitempty"`
	Origin     *string  `json:"origin,omitempty"`
	Warranty   *string  `json:"warranty,omitempty"`
	Collection *string  `json:"collection,omitempty"`
	Weight     *float64 `json:"weight,omitempty"`

	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type rawCategory struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Slug         string         `json:"slug,omitempty"`
	Description  string         `json:"description,omitempty"`
	Image        string         `json:"image,omitempty"`
	ParentID     *string        `json:"parent_id,omitempty"`
	Position     int            `json:"position"`
	ProductCount int            `json:"product_count"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// ---------------------------------------------------------------------------
// Inventory
// ---------------------------------------------------------------------------

type rawInventoryLevel struct {
	SKU       string    `json:"sku"`
	Available flexInt   `json:"available"`
	Reserved  flexInt   `json:"reserved"`
	Incoming  flexInt   `json:"incoming"`
	Warehouse string    `json:"warehouse,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

type rawReservation struct {
	ID        string               `json:"id"`
	OrderRef  string               `json:"order_ref"`
	Status    string               `json:"status"`
	Items     []rawReservationItem `json:"items"`
	ExpiresAt *time.Time           `json:"expires_at,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
}

type rawReservationItem struct {
	SKU      string  `json:"sku"`
	Quantity flexInt `json:"quantity"`
}

type rawStockUpdateResult struct {
	SKU     string `json:"sku"`
	Updated bool   `json:"updated"`
	Error   string `json:"error,omitempty"`
}

// ---------------------------------------------------------------------------
// Sync
// ---------------------------------------------------------------------------

type rawSyncJob struct {
	ID         string     `json:"id"`
	Entity     string     `json:"entity"`
	Mode       string     `json:"mode"`
	Status     string     `json:"status"`
	Progress   flexInt    `json:"progress"`
	Total      flexInt    `json:"total"`
	Processed  flexInt    `json:"processed"`
	Failed     flexInt    `json:"failed"`
	Error      *string    `json:"error,omitempty"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

type rawSyncLogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	EntityID  string    `json:"entity_id,omitempty"`
}

type rawSyncHealth struct {
	Status       string     `json:"status"`
	QueueDepth   flexInt    `json:"queue_depth"`
	RunningJobs  flexInt    `json:"running_jobs"`
	LastJobAt    *time.Time `json:"last_job_at,omitempty"`
	WorkerStatus string     `json:"worker_status,omitempty"`
}

type rawSyncStats struct {
	TotalJobs     flexInt    `json:"total_jobs"`
	CompletedJobs flexInt    `json:"completed_jobs"`
	FailedJobs    flexInt    `json:"failed_jobs"`
	AvgDurationMS flexInt    `json:"avg_duration_ms"`
	LastSuccessAt *time.Time `json:"last_success_at,omitempty"`
}

// ---------------------------------------------------------------------------
// B2B
// ---------------------------------------------------------------------------

type rawCompany struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	LegalName   *string        `json:"legal_name,omitempty"`
	TaxID       *string        `json:"tax_id,omitempty"`
	Email       string         `json:"email,omitempty"`
	Phone       *string        `json:"phone,omitempty"`
	Currency    string         `json:"currency,omitempty"`
	CreditLimit flexPrice      `json:"credit_limit"`
	CreditUsed  flexPrice      `json:"credit_used"`
	Tier        string         `json:"tier,omitempty"`
	Status      string         `json:"status,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

type rawEmployee struct {
	ID          string            `json:"id"`
	CompanyID   string            `json:"company_id"`
	CustomerID  *string           `json:"customer_id,omitempty"`
	Email       string            `json:"email"`
	FirstName   string            `json:"first_name,omitempty"`
	LastName    string            `json:"last_name,omitempty"`
	Role        string            `json:"role"`
	Permissions []string          `json:"permissions,omitempty"`
	Department  *string           `json:"department,omitempty"`
	Limit       *rawSpendingLimit `json:"spending_limit,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

type rawSpendingLimit struct {
	Period   string     `json:"period"`
	Amount   flexPrice  `json:"amount"`
	Spent    flexPrice  `json:"spent"`
	ResetsAt *time.Time `json:"resets_at,omitempty"`
}

type rawSpendingUsage struct {
	CompanyID  string               `json:"company_id"`
	Period     string               `json:"period"`
	Total      flexPrice            `json:"total"`
	ByEmployee map[string]flexPrice `json:"by_employee,omitempty"`
}

type rawQuote struct {
	ID          string            `json:"id"`
	Number      string            `json:"number,omitempty"`
	CompanyID   string            `json:"company_id"`
	RequestedBy string            `json:"requested_by,omitempty"`
	Status      string            `json:"status"`
	Items       []rawQuoteItem    `json:"items"`
	Totals      *rawQuoteTotals   `json:"totals,omitempty"`
	Messages    []rawQuoteMessage `json:"messages,omitempty"`
	ValidUntil  *time.Time        `json:"valid_until,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type rawQuoteItem struct {
	ProductID   string     `json:"product_id"`
	SKU         string     `json:"sku,omitempty"`
	Title       string     `json:"title"`
	Quantity    flexInt    `json:"quantity"`
	ListPrice   flexPrice  `json:"list_price"`
	QuotedPrice *flexPrice `json:"quoted_price,omitempty"`
	Note        *string    `json:"note,omitempty"`
}

type rawQuoteTotals struct {
	Subtotal flexPrice `json:"subtotal"`
	Discount flexPrice `json:"discount"`
	Shipping flexPrice `json:"shipping"`
	Tax      flexPrice `json:"tax"`
	Total    flexPrice `json:"total"`
	Currency string    `json:"currency,omitempty"`
}

type rawQuoteMessage struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id"`
	AuthorRole string    `json:"author_role,omitempty"`
	Body       string    `json:"body"`
	SentAt     time.Time `json:"sent_at"`
}

type rawApproval struct {
	ID          string       `json:"id"`
	Kind        string       `json:"kind"`
	SubjectID   string       `json:"subject_id"`
	CompanyID   string       `json:"company_id"`
	RequestedBy string       `json:"requested_by"`
	Status      string       `json:"status"`
	Amount      flexPrice    `json:"amount"`
	Reason      *string      `json:"reason,omitempty"`
	StepIndex   flexInt      `json:"step_index"`
	Workflow    *rawWorkflow `json:"workflow,omitempty"`
	DecidedBy   *string      `json:"decided_by,omitempty"`
	DecidedAt   *time.Time   `json:"decided_at,omitempty"`
	Comment     *string      `json:"comment,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

type rawWorkflow struct {
	ID    string            `json:"id"`
	Name  string            `json:"name"`
	Steps []rawWorkflowStep `json:"steps"`
}

type rawWorkflowStep struct {
	Sequence  flexInt    `json:"sequence"`
	Role      string     `json:"role"`
	Threshold *flexPrice `json:"threshold,omitempty"`
}

type rawCart struct {
	ID        string         `json:"id"`
	CompanyID *string        `json:"company_id,omitempty"`
	Currency  string         `json:"currency,omitempty"`
	Items     []rawCartItem  `json:"items"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type rawCartItem struct {
	ID        string     `json:"id"`
	ProductID string     `json:"product_id"`
	SKU       string     `json:"sku,omitempty"`
	Title     string     `json:"title"`
	UnitPrice flexPrice  `json:"unit_price"`
	Quantity  flexInt    `json:"quantity"`
	Discount  *flexPrice `json:"discount_per_unit,omitempty"`
}

package bridge

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/MarketingDevWebexpR/b2b-template-sub010/commerce"
)

// b2bServices bundles the Bridge B2B service family.
type b2bServices struct {
	companies commerce.CompanyService
	employees commerce.EmployeeService
	quotes    commerce.QuoteService
	approvals commerce.ApprovalService
	spending  commerce.SpendingService
}

var _ commerce.B2BServices = (*b2bServices)(nil)

func (b *b2bServices) Companies() commerce.CompanyService { return b.companies }
func (b *b2bServices) Employees() commerce.EmployeeService { return b.employees }
func (b *b2bServices) Quotes() commerce.QuoteService       { return b.quotes }
func (b *b2bServices) Approvals() commerce.ApprovalService { return b.approvals }
func (b *b2bServices) Spending() commerce.SpendingService  { return b.spending }

// listQuery builds the standard Bridge list parameters.
func listQuery(opts commerce.ListOptions) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(opts.Page))
	q.Set("per_page", strconv.Itoa(opts.PageSize))
	if opts.Search != "" {
		q.Set("q", opts.Search)
	}
	for key, value := range opts.Filters {
		q.Set(key, value)
	}
	return q
}

// ---------------------------------------------------------------------------
// Companies
// ---------------------------------------------------------------------------

type companyService struct {
	c *Client
}

var _ commerce.CompanyService = (*companyService)(nil)

func (s *companyService) Get(ctx context.Context, id string) (*commerce.Company, error) {
	var out envelope[rawCompany]
	if err := s.c.http.Get(ctx, "/b2b/companies/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, apiError(fmt.Sprintf("b2b.companies.get %q", id), err)
	}
	company := mapCompany(out.Data)
	return &company, nil
}

// GetCurrent resolves the company of the active B2B context. Bridge reads
// it from the X-Company-Id header, so a client without a B2B context set
// gets a vendor 400 back.
func (s *companyService) GetCurrent(ctx context.Context) (*commerce.Company, error) {
	var out envelope[rawCompany]
	if err := s.c.http.Get(ctx, "/b2b/companies/current", nil, &out); err != nil {
		return nil, apiError("b2b.companies.get_current", err)
	}
	company := mapCompany(out.Data)
	return &company, nil
}

func (s *companyService) Update(ctx context.Context, id string, input commerce.UpdateCompanyInput) (*commerce.Company, error) {
	body := map[string]any{}
	if input.Name != nil {
		body["name"] = *input.Name
	}
	if input.Email != nil {
		body["email"] = *input.Email
	}
	if input.Phone != nil {
		body["phone"] = *input.Phone
	}
	if input.CreditLimit != nil {
		body["credit_limit"] = input.CreditLimit.String()
	}
	if input.Tier != nil {
		body["tier"] = string(*input.Tier)
	}

	var out envelope[rawCompany]
	if err := s.c.http.Patch(ctx, "/b2b/companies/"+url.PathEscape(id), body, &out); err != nil {
		return nil, apiError(fmt.Sprintf("b2b.companies.update %q", id), err)
	}
	company := mapCompany(out.Data)
	return &company, nil
}

// ---------------------------------------------------------------------------
// Employees
// ---------------------------------------------------------------------------

type employeeService struct {
	c *Client
}

var _ commerce.EmployeeService = (*employeeService)(nil)

func (s *employeeService) List(ctx context.Context, companyID string, opts commerce.ListOptions) (*commerce.Page[commerce.Employee], error) {
	opts = opts.Normalize()

	var out envelope[[]rawEmployee]
	path := "/b2b/companies/" + url.PathEscape(companyID) + "/employees"
	if err := s.c.http.Get(ctx, path, listQuery(opts), &out); err != nil {
		return nil, apiError("b2b.employees.list", err)
	}

	employees := make([]commerce.Employee, 0, len(out.Data))
	for _, raw := range out.Data {
		employees = append(employees, mapEmployee(raw))
	}

	total := int64(len(employees))
	if out.Meta != nil {
		total = out.Meta.Total
	}
	return commerce.NewPage(employees, total, opts.Page, opts.PageSize), nil
}

func (s *employeeService) Get(ctx context.Context, id string) (*commerce.Employee, error) {
	var out envelope[rawEmployee]
	if err := s.c.http.Get(ctx, "/b2b/employees/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, apiError(fmt.Sprintf("b2b.employees.get %q", id), err)
	}
	employee := mapEmployee(out.Data)
	return &employee, nil
}

func (s *employeeService) Create(ctx context.Context, companyID string, input commerce.CreateEmployeeInput) (*commerce.Employee, error) {
	if !input.Role.IsValid() {
		return nil, fmt.Errorf("%w: unknown employee role %q", commerce.ErrInvalidInput, input.Role)
	}

	body := map[string]any{
		"company_id": companyID,
		"email":      input.Email,
		"first_name": input.FirstName,
		"last_name":  input.LastName,
		"role":       string(input.Role),
	}
	if input.Department != nil {
		body["department"] = *input.Department
	}
	if input.Limit != nil {
		body["spending_limit"] = map[string]any{
			"period": string(input.Limit.Period),
			"amount": input.Limit.Amount.String(),
		}
	}

	var out envelope[rawEmployee]
	if err := s.c.http.Post(ctx, "/b2b/employees", body, &out); err != nil {
		return nil, apiError("b2b.employees.create", err)
	}
	employee := mapEmployee(out.Data)
	return &employee, nil
}

func (s *employeeService) Update(ctx context.Context, id string, input commerce.UpdateEmployeeInput) (*commerce.Employee, error) {
	body := map[string]any{}
	if input.Role != nil {
		if !input.Role.IsValid() {
			return nil, fmt.Errorf("%w: unknown employee role %q", commerce.ErrInvalidInput, *input.Role)
		}
		body["role"] = string(*input.Role)
	}
	if input.Permissions != nil {
		body["permissions"] = input.Permissions
	}
	if input.Department != nil {
		body["department"] = *input.Department
	}

	var out envelope[rawEmployee]
	if err := s.c.http.Patch(ctx, "/b2b/employees/"+url.PathEscape(id), body, &out); err != nil {
		return nil, apiError(fmt.Sprintf("b2b.employees.update %q", id), err)
	}
	employee := mapEmployee(out.Data)
	return &employee, nil
}

func (s *employeeService) Delete(ctx context.Context, id string) error {
	if err := s.c.http.Delete(ctx, "/b2b/employees/"+url.PathEscape(id), nil); err != nil {
		return apiError(fmt.Sprintf("b2b.employees.delete %q", id), err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Quotes
// ---------------------------------------------------------------------------

type quoteService struct {
	c *Client
}

var _ commerce.QuoteService = (*quoteService)(nil)

func (s *quoteService) List(ctx context.Context, opts commerce.ListOptions) (*commerce.Page[commerce.Quote], error) {
	opts = opts.Normalize()

	var out envelope[[]rawQuote]
	if err := s.c.http.Get(ctx, "/b2b/quotes", listQuery(opts), &out); err != nil {
		return nil, apiError("b2b.quotes.list", err)
	}

	quotes := make([]commerce.Quote, 0, len(out.Data))
	for _, raw := range out.Data {
		quotes = append(quotes, mapQuote(raw))
	}

	total := int64(len(quotes))
	if out.Meta != nil {
		total = out.Meta.Total
	}
	return commerce.NewPage(quotes, total, opts.Page, opts.PageSize), nil
}

func (s *quoteService) Get(ctx context.Context, id string) (*commerce.Quote, error) {
	var out envelope[rawQuote]
	if err := s.c.http.Get(ctx, "/b2b/quotes/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, apiError(fmt.Sprintf("b2b.quotes.get %q", id), err)
	}
	quote := mapQuote(out.Data)
	return &quote, nil
}

func (s *quoteService) Create(ctx context.Context, input commerce.CreateQuoteInput) (*commerce.Quote, error) {
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: quote needs at least one item", commerce.ErrInvalidInput)
	}

	items := make([]map[string]any, 0, len(input.Items))
	for _, item := range input.Items {
		entry := map[string]any{
			"product_id": item.ProductID,
			"quantity":   item.Quantity,
		}
		if item.SKU != "" {
			entry["sku"] = item.SKU
		}
		if item.Note != nil {
			entry["note"] = *item.Note
		}
		items = append(items, entry)
	}
	body := map[string]any{"items": items}
	if input.Message != "" {
		body["message"] = input.Message
	}

	var out envelope[rawQuote]
	if err := s.c.http.Post(ctx, "/b2b/quotes", body, &out); err != nil {
		return nil, apiError("b2b.quotes.create", err)
	}
	quote := mapQuote(out.Data)
	return &quote, nil
}

func (s *quoteService) Submit(ctx context.Context, id string) (*commerce.Quote, error) {
	return s.action(ctx, id, "submit", nil)
}

func (s *quoteService) Accept(ctx context.Context, id string) (*commerce.Quote, error) {
	return s.action(ctx, id, "accept", nil)
}

func (s *quoteService) Reject(ctx context.Context, id, reason string) (*commerce.Quote, error) {
	return s.action(ctx, id, "reject", map[string]any{"reason": reason})
}

func (s *quoteService) Cancel(ctx context.Context, id string) (*commerce.Quote, error) {
	return s.action(ctx, id, "cancel", nil)
}

func (s *quoteService) AddMessage(ctx context.Context, id, body string) (*commerce.Quote, error) {
	return s.action(ctx, id, "messages", map[string]any{"body": body})
}

func (s *quoteService) action(ctx context.Context, id, verb string, body map[string]any) (*commerce.Quote, error) {
	var out envelope[rawQuote]
	path := "/b2b/quotes/" + url.PathEscape(id) + "/" + verb
	if err := s.c.http.Post(ctx, path, body, &out); err != nil {
		return nil, apiError(fmt.Sprintf("b2b.quotes.%s %q", verb, id), err)
	}
	quote := mapQuote(out.Data)
	return &quote, nil
}

// ConvertToCart materializes an accepted quote as a cart priced at the
// quoted amounts.
func (s *quoteService) ConvertToCart(ctx context.Context, id string) (*commerce.Cart, error) {
	var out envelope[rawCart]
	path := "/b2b/quotes/" + url.PathEscape(id) + "/convert"
	if err := s.c.http.Post(ctx, path, nil, &out); err != nil {
		return nil, apiError(fmt.Sprintf("b2b.quotes.convert %q", id), err)
	}
	cart := mapCart(out.Data, s.c.cfg.Currency)
	return &cart, nil
}

// ---------------------------------------------------------------------------
// Approvals
// ---------------------------------------------------------------------------

type approvalService struct {
	c *Client
}

var _ commerce.ApprovalService = (*approvalService)(nil)

func (s *approvalService) List(ctx context.Context, opts commerce.ListOptions) (*commerce.Page[commerce.Approval], error) {
	opts = opts.Normalize()

	var out envelope[[]rawApproval]
	if err := s.c.http.Get(ctx, "/b2b/approvals", listQuery(opts), &out); err != nil {
		return nil, apiError("b2b.approvals.list", err)
	}

	approvals := make([]commerce.Approval, 0, len(out.Data))
	for _, raw := range out.Data {
		approvals = append(approvals, mapApproval(raw))
	}

	total := int64(len(approvals))
	if out.Meta != nil {
		total = out.Meta.Total
	}
	return commerce.NewPage(approvals, total, opts.Page, opts.PageSize), nil
}

func (s *approvalService) Get(ctx context.Context, id string) (*commerce.Approval, error) {
	var out envelope[rawApproval]
	if err := s.c.http.Get(ctx, "/b2b/approvals/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, apiError(fmt.Sprintf("b2b.approvals.get %q", id), err)
	}
	approval := mapApproval(out.Data)
	return &approval, nil
}

func (s *approvalService) Decide(ctx context.Context, id string, decision commerce.Decision) (*commerce.Approval, error) {
	if !decision.Action.IsValid() {
		return nil, fmt.Errorf("%w: unknown approval action %q", commerce.ErrInvalidInput, decision.Action)
	}

	body := map[string]any{"action": string(decision.Action)}
	if decision.Comment != "" {
		body["comment"] = decision.Comment
	}

	var out envelope[rawApproval]
	path := "/b2b/approvals/" + url.PathEscape(id) + "/decision"
	if err := s.c.http.Post(ctx, path, body, &out); err != nil {
		return nil, apiError(fmt.Sprintf("b2b.approvals.decide %q", id), err)
	}
	approval := mapApproval(out.Data)
	return &approval, nil
}

// ---------------------------------------------------------------------------
// Spending limits
// ---------------------------------------------------------------------------

type spendingService struct {
	c *Client
}

var _ commerce.SpendingService = (*spendingService)(nil)

func (s *spendingService) GetLimit(ctx context.Context, employeeID string) (*commerce.SpendingLimit, error) {
	var out envelope[rawSpendingLimit]
	if err := s.c.http.Get(ctx, "/b2b/spending-limits/"+url.PathEscape(employeeID), nil, &out); err != nil {
		return nil, apiError(fmt.Sprintf("b2b.spending.get_limit %q", employeeID), err)
	}
	limit := mapSpendingLimit(out.Data)
	return &limit, nil
}

func (s *spendingService) SetLimit(ctx context.Context, employeeID string, limit commerce.SpendingLimit) (*commerce.SpendingLimit, error) {
	if !limit.Period.IsValid() {
		return nil, fmt.Errorf("%w: unknown spending period %q", commerce.ErrInvalidInput, limit.Period)
	}

	body := map[string]any{
		"period": string(limit.Period),
		"amount": limit.Amount.String(),
	}

	var out envelope[rawSpendingLimit]
	if err := s.c.http.Put(ctx, "/b2b/spending-limits/"+url.PathEscape(employeeID), body, &out); err != nil {
		return nil, apiError(fmt.Sprintf("b2b.spending.set_limit %q", employeeID), err)
	}
	mapped := mapSpendingLimit(out.Data)
	return &mapped, nil
}

func (s *spendingService) Usage(ctx context.Context, companyID string, period commerce.SpendingPeriod) (*commerce.SpendingUsage, error) {
	if !period.IsValid() {
		return nil, fmt.Errorf("%w: unknown spending period %q", commerce.ErrInvalidInput, period)
	}

	q := url.Values{}
	q.Set("company_id", companyID)
	q.Set("period", string(period))

	var out envelope[rawSpendingUsage]
	if err := s.c.http.Get(ctx, "/b2b/spending/usage", q, &out); err != nil {
		return nil, apiError("b2b.spending.usage", err)
	}
	usage := mapSpendingUsage(out.Data)
	return &usage, nil
}

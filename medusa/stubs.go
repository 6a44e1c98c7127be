package medusa

import (
	"context"

	"github.com/MarketingDevWebexpR/b2b-template-sub010/commerce"
)

// The stock Medusa store API has no company, quote or approval endpoints;
// they arrive with the merchant's B2B plugin set. Until then the bundle is
// stubbed: list reads degrade to empty pages, everything else fails loudly
// with commerce.ErrNotImplemented.

func notImplemented(op string) error {
	return commerce.NewNotImplementedError(ProviderName, op)
}

type b2bStub struct{}

var _ commerce.B2BServices = b2bStub{}

func (b2bStub) Companies() commerce.CompanyService  { return companyStub{} }
func (b2bStub) Employees() commerce.EmployeeService { return employeeStub{} }
func (b2bStub) Quotes() commerce.QuoteService       { return quoteStub{} }
func (b2bStub) Approvals() commerce.ApprovalService { return approvalStub{} }
func (b2bStub) Spending() commerce.SpendingService  { return spendingStub{} }

type companyStub struct{}

var _ commerce.CompanyService = companyStub{}

func (companyStub) Get(context.Context, string) (*commerce.Company, error) {
	return nil, notImplemented("b2b.companies.get")
}

func (companyStub) GetCurrent(context.Context) (*commerce.Company, error) {
	return nil, notImplemented("b2b.companies.get_current")
}

func (companyStub) Update(context.Context, string, commerce.UpdateCompanyInput) (*commerce.Company, error) {
	return nil, notImplemented("b2b.companies.update")
}

type employeeStub struct{}

var _ commerce.EmployeeService = employeeStub{}

func (employeeStub) List(_ context.Context, _ string, opts commerce.ListOptions) (*commerce.Page[commerce.Employee], error) {
	return commerce.EmptyPage[commerce.Employee](opts), nil
}

func (employeeStub) Get(context.Context, string) (*commerce.Employee, error) {
	return nil, notImplemented("b2b.employees.get")
}

func (employeeStub) Create(context.Context, string, commerce.CreateEmployeeInput) (*commerce.Employee, error) {
	return nil, notImplemented("b2b.employees.create")
}

func (employeeStub) Update(context.Context, string, commerce.UpdateEmployeeInput) (*commerce.Employee, error) {
	return nil, notImplemented("b2b.employees.update")
}

func (employeeStub) Delete(context.Context, string) error {
	return notImplemented("b2b.employees.delete")
}

type quoteStub struct{}

var _ commerce.QuoteService = quoteStub{}

func (quoteStub) List(_ context.Context, opts commerce.ListOptions) (*commerce.Page[commerce.Quote], error) {
	return commerce.EmptyPage[commerce.Quote](opts), nil
}

func (quoteStub) Get(context.Context, string) (*commerce.Quote, error) {
	return nil, notImplemented("b2b.quotes.get")
}

func (quoteStub) Create(context.Context, commerce.CreateQuoteInput) (*commerce.Quote, error) {
	return nil, notImplemented("b2b.quotes.create")
}

func (quoteStub) Submit(context.Context, string) (*commerce.Quote, error) {
	return nil, notImplemented("b2b.quotes.submit")
}

func (quoteStub) Accept(context.Context, string) (*commerce.Quote, error) {
	return nil, notImplemented("b2b.quotes.accept")
}

func (quoteStub) Reject(context.Context, string, string) (*commerce.Quote, error) {
	return nil, notImplemented("b2b.quotes.reject")
}

func (quoteStub) Cancel(context.Context, string) (*commerce.Quote, error) {
	return nil, notImplemented("b2b.quotes.cancel")
}

func (quoteStub) AddMessage(context.Context, string, string) (*commerce.Quote, error) {
	return nil, notImplemented("b2b.quotes.add_message")
}

func (quoteStub) ConvertToCart(context.Context, string) (*commerce.Cart, error) {
	return nil, notImplemented("b2b.quotes.convert_to_cart")
}

type approvalStub struct{}

var _ commerce.ApprovalService = approvalStub{}

func (approvalStub) List(_ context.Context, opts commerce.ListOptions) (*commerce.Page[commerce.Approval], error) {
	return commerce.EmptyPage[commerce.Approval](opts), nil
}

func (approvalStub) Get(context.Context, string) (*commerce.Approval, error) {
	return nil, notImplemented("b2b.approvals.get")
}

func (approvalStub) Decide(context.Context, string, commerce.Decision) (*commerce.Approval, error) {
	return nil, notImplemented("b2b.approvals.decide")
}

type spendingStub struct{}

var _ commerce.SpendingService = spendingStub{}

func (spendingStub) GetLimit(context.Context, string) (*commerce.SpendingLimit, error) {
	return nil, notImplemented("b2b.spending.get_limit")
}

func (spendingStub) SetLimit(context.Context, string, commerce.SpendingLimit) (*commerce.SpendingLimit, error) {
	return nil, notImplemented("b2b.spending.set_limit")
}

func (spendingStub) Usage(context.Context, string, commerce.SpendingPeriod) (*commerce.SpendingUsage, error) {
	return nil, notImplemented("b2b.spending.usage")
}

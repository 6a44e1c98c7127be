package medusa

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/MarketingDevWebexpR/b2b-template-sub010/commerce"
	"github.com/MarketingDevWebexpR/b2b-template-sub010/internal/httpx"
)

type customerService struct {
	c *Client
}

var _ commerce.CustomerService = (*customerService)(nil)

// Current fetches the customer behind the installed token. A 401 means no
// session; that is the documented (nil, nil) case, not a failure.
func (s *customerService) Current(ctx context.Context) (*commerce.Customer, error) {
	var out customerResponse
	if err := s.c.http.Get(ctx, "/store/customers/me", nil, &out); err != nil {
		var se *httpx.StatusError
		if errors.As(err, &se) && se.Status == http.StatusUnauthorized {
			return nil, nil
		}
		return nil, apiError("customers.current", err)
	}
	customer := mapCustomer(out.Customer)
	return &customer, nil
}

// Get resolves a customer by ID. The store API only exposes the session
// owner, so any other ID is rejected up front.
func (s *customerService) Get(ctx context.Context, id string) (*commerce.Customer, error) {
	op := fmt.Sprintf("customers.get %q", id)

	current, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, &commerce.APIError{Provider: ProviderName, Op: op, Status: http.StatusUnauthorized, Message: "no customer session"}
	}
	if current.ID != id {
		return nil, &commerce.APIError{Provider: ProviderName, Op: op, Status: http.StatusNotFound, Message: "only the session customer is readable"}
	}
	return current, nil
}

func (s *customerService) Update(ctx context.Context, id string, input commerce.UpdateCustomerInput) (*commerce.Customer, error) {
	body := map[string]any{}
	if input.FirstName != nil {
		body["first_name"] = *input.FirstName
	}
	if input.LastName != nil {
		body["last_name"] = *input.LastName
	}
	if input.Phone != nil {
		body["phone"] = *input.Phone
	}

	var out customerResponse
	if err := s.c.http.Post(ctx, "/store/customers/me", body, &out); err != nil {
		return nil, apiError(fmt.Sprintf("customers.update %q", id), err)
	}
	customer := mapCustomer(out.Customer)
	return &customer, nil
}

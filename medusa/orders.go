package medusa

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/MarketingDevWebexpR/b2b-template-sub010/commerce"
)

type orderService struct {
	c *Client
}

var _ commerce.OrderService = (*orderService)(nil)

// List returns the authenticated customer's orders, newest first.
func (s *orderService) List(ctx context.Context, opts commerce.ListOptions) (*commerce.Page[commerce.Order], error) {
	opts = opts.Normalize()

	q := url.Values{}
	q.Set("offset", strconv.Itoa((opts.Page-1)*opts.PageSize))
	q.Set("limit", strconv.Itoa(opts.PageSize))
	q.Set("order", "-created_at")
	for key, value := range opts.Filters {
		q.Set(key, value)
	}

	var out orderListResponse
	if err := s.c.http.Get(ctx, "/store/orders", q, &out); err != nil {
		return nil, apiError("orders.list", err)
	}

	items := make([]commerce.Order, 0, len(out.Orders))
	for _, raw := range out.Orders {
		items = append(items, mapOrder(raw, s.c.cfg.Currency))
	}
	return commerce.NewPage(items, out.Count, opts.Page, opts.PageSize), nil
}

func (s *orderService) Get(ctx context.Context, id string) (*commerce.Order, error) {
	var out orderResponse
	if err := s.c.http.Get(ctx, "/store/orders/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, apiError(fmt.Sprintf("orders.get %q", id), err)
	}
	order := mapOrder(out.Order, s.c.cfg.Currency)
	return &order, nil
}

func (s *orderService) Cancel(ctx context.Context, id string) (*commerce.Order, error) {
	var out orderResponse
	path := "/store/orders/" + url.PathEscape(id) + "/cancel"
	if err := s.c.http.Post(ctx, path, nil, &out); err != nil {
		return nil, apiError(fmt.Sprintf("orders.cancel %q", id), err)
	}
	order := mapOrder(out.Order, s.c.cfg.Currency)
	return &order, nil
}

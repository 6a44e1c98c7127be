package bridge

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/MarketingDevWebexpR/b2b-template-sub010/commerce"
)

type productService struct {
	c *Client
}

var _ commerce.ProductService = (*productService)(nil)

func (s *productService) List(ctx context.Context, opts commerce.ListOptions) (*commerce.Page[commerce.Product], error) {
	opts = opts.Normalize()

	q := url.Values{}
	q.Set("page", strconv.Itoa(opts.Page))
	q.Set("per_page", strconv.Itoa(opts.PageSize))
	if opts.Sort != "" {
		q.Set("sort", opts.Sort)
		if opts.Direction != "" {
			q.Set("order", string(opts.Direction))
		}
	}
	if opts.Search != "" {
		q.Set("q", opts.Search)
	}
	for key, value := range opts.Filters {
		q.Set(key, value)
	}

	var out envelope[[]rawProduct]
	if err := s.c.http.Get(ctx, "/products", q, &out); err != nil {
		return nil, apiError("products.list", err)
	}

	items := make([]commerce.Product, 0, len(out.Data))
	for _, raw := range out.Data {
		items = append(items, mapProduct(raw, s.c.cfg.Currency))
	}

	total := int64(len(items))
	if out.Meta != nil {
		total = out.Meta.Total
	}
	return commerce.NewPage(items, total, opts.Page, opts.PageSize), nil
}

func (s *productService) Get(ctx context.Context, id string) (*commerce.Product, error) {
	var out envelope[rawProduct]
	if err := s.c.http.Get(ctx, "/products/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, apiError(fmt.Sprintf("products.get %q", id), err)
	}
	product := mapProduct(out.Data, s.c.cfg.Currency)
	return &product, nil
}

func (s *productService) GetBySlug(ctx context.Context, slug string) (*commerce.Product, error) {
	var out envelope[rawProduct]
	if err := s.c.http.Get(ctx, "/products/slug/"+url.PathEscape(slug), nil, &out); err != nil {
		return nil, apiError(fmt.Sprintf("products.get_by_slug %q", slug), err)
	}
	product := mapProduct(out.Data, s.c.cfg.Currency)
	return &product, nil
}

func (s *productService) GetBySKU(ctx context.Context, sku string) (*commerce.Product, error) {
	var out envelope[rawProduct]
	if err := s.c.http.Get(ctx, "/products/sku/"+url.PathEscape(sku), nil, &out); err != nil {
		return nil, apiError(fmt.Sprintf("products.get_by_sku %q", sku), err)
	}
	product := mapProduct(out.Data, s.c.cfg.Currency)
	return &product, nil
}

// GetMany fetches a batch of products in one request. The result preserves
// the requested order; IDs the backend does not know are skipped.
func (s *productService) GetMany(ctx context.Context, ids []string) ([]commerce.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var out envelope[[]rawProduct]
	body := map[string][]string{"ids": ids}
	if err := s.c.http.Post(ctx, "/products/batch", body, &out); err != nil {
		return nil, apiError("products.get_many", err)
	}

	byID := make(map[string]commerce.Product, len(out.Data))
	for _, raw := range out.Data {
		byID[raw.ID] = mapProduct(raw, s.c.cfg.Currency)
	}

	products := make([]commerce.Product, 0, len(ids))
	for _, id := range ids {
		if product, ok := byID[id]; ok {
			products = append(products, product)
		}
	}
	return products, nil
}

func (s *productService) ListFeatured(ctx context.Context, limit int) ([]commerce.Product, error) {
	return s.listShelf(ctx, "/products/featured", "products.list_featured", limit)
}

func (s *productService) ListNew(ctx context.Context, limit int) ([]commerce.Product, error) {
	return s.listShelf(ctx, "/products/new", "products.list_new", limit)
}

func (s *productService) listShelf(ctx context.Context, path, op string, limit int) ([]commerce.Product, error) {
	if limit <= 0 {
		limit = defaultHighlightLimit
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))

	var out envelope[[]rawProduct]
	if err := s.c.http.Get(ctx, path, q, &out); err != nil {
		return nil, apiError(op, err)
	}

	products := make([]commerce.Product, 0, len(out.Data))
	for _, raw := range out.Data {
		products = append(products, mapProduct(raw, s.c.cfg.Currency))
	}
	return products, nil
}

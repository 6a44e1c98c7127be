package medusa

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/MarketingDevWebexpR/b2b-template-sub010/commerce"
)

type productService struct {
	c *Client
}

var _ commerce.ProductService = (*productService)(nil)

// listQuery builds the shared offset/limit query for store list endpoints.
// Medusa paginates by offset, so page N translates to (N-1)*pageSize.
func (s *productService) listQuery(opts commerce.ListOptions) url.Values {
	q := url.Values{}
	q.Set("offset", strconv.Itoa((opts.Page-1)*opts.PageSize))
	q.Set("limit", strconv.Itoa(opts.PageSize))
	if s.c.cfg.RegionID != "" {
		q.Set("region_id", s.c.cfg.RegionID)
	}
	if opts.Sort != "" {
		field := opts.Sort
		if opts.Direction == commerce.SortDesc {
			field = "-" + field
		}
		q.Set("order", field)
	}
	if opts.Search != "" {
		q.Set("q", opts.Search)
	}
	for key, value := range opts.Filters {
		q.Set(key, value)
	}
	return q
}

func (s *productService) List(ctx context.Context, opts commerce.ListOptions) (*commerce.Page[commerce.Product], error) {
	opts = opts.Normalize()

	var out productListResponse
	if err := s.c.http.Get(ctx, "/store/products", s.listQuery(opts), &out); err != nil {
		return nil, apiError("products.list", err)
	}

	items := make([]commerce.Product, 0, len(out.Products))
	for _, raw := range out.Products {
		items = append(items, mapProduct(raw, s.c.cfg.Currency))
	}
	return commerce.NewPage(items, out.Count, opts.Page, opts.PageSize), nil
}

func (s *productService) Get(ctx context.Context, id string) (*commerce.Product, error) {
	q := url.Values{}
	if s.c.cfg.RegionID != "" {
		q.Set("region_id", s.c.cfg.RegionID)
	}

	var out productResponse
	if err := s.c.http.Get(ctx, "/store/products/"+url.PathEscape(id), q, &out); err != nil {
		return nil, apiError(fmt.Sprintf("products.get %q", id), err)
	}
	product := mapProduct(out.Product, s.c.cfg.Currency)
	return &product, nil
}

// GetBySlug resolves a product through Medusa's handle filter. The store
// API has no dedicated slug endpoint; a filtered list with an exact handle
// returns at most one product.
func (s *productService) GetBySlug(ctx context.Context, slug string) (*commerce.Product, error) {
	q := url.Values{}
	q.Set("handle", slug)
	q.Set("limit", "1")
	if s.c.cfg.RegionID != "" {
		q.Set("region_id", s.c.cfg.RegionID)
	}

	op := fmt.Sprintf("products.get_by_slug %q", slug)
	var out productListResponse
	if err := s.c.http.Get(ctx, "/store/products", q, &out); err != nil {
		return nil, apiError(op, err)
	}
	if len(out.Products) == 0 {
		return nil, &commerce.APIError{Provider: ProviderName, Op: op, Status: 404, Message: "no product with handle " + slug}
	}
	product := mapProduct(out.Products[0], s.c.cfg.Currency)
	return &product, nil
}

// GetBySKU searches by vendor reference and matches the SKU against the
// returned variants, case-insensitively. Medusa exposes no SKU filter on
// the store API.
func (s *productService) GetBySKU(ctx context.Context, sku string) (*commerce.Product, error) {
	q := url.Values{}
	q.Set("q", sku)
	if s.c.cfg.RegionID != "" {
		q.Set("region_id", s.c.cfg.RegionID)
	}

	op := fmt.Sprintf("products.get_by_sku %q", sku)
	var out productListResponse
	if err := s.c.http.Get(ctx, "/store/products", q, &out); err != nil {
		return nil, apiError(op, err)
	}
	for _, raw := range out.Products {
		for _, variant := range raw.Variants {
			if variant.SKU != nil && strings.EqualFold(*variant.SKU, sku) {
				product := mapProduct(raw, s.c.cfg.Currency)
				return &product, nil
			}
		}
	}
	return nil, &commerce.APIError{Provider: ProviderName, Op: op, Status: 404, Message: "no product with sku " + sku}
}

// GetMany fetches a batch through the id[] filter. The result preserves
// the requested order; IDs the backend does not know are skipped.
func (s *productService) GetMany(ctx context.Context, ids []string) ([]commerce.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	q := url.Values{}
	for _, id := range ids {
		q.Add("id[]", id)
	}
	q.Set("limit", strconv.Itoa(len(ids)))
	if s.c.cfg.RegionID != "" {
		q.Set("region_id", s.c.cfg.RegionID)
	}

	var out productListResponse
	if err := s.c.http.Get(ctx, "/store/products", q, &out); err != nil {
		return nil, apiError("products.get_many", err)
	}

	byID := make(map[string]commerce.Product, len(out.Products))
	for _, raw := range out.Products {
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

// ListFeatured maps the merchandised shelf onto the "featured" collection
// tag convention used by the storefront.
func (s *productService) ListFeatured(ctx context.Context, limit int) ([]commerce.Product, error) {
	return s.listShelf(ctx, "products.list_featured", limit, url.Values{"tag_value[]": []string{"featured"}})
}

// ListNew returns the latest additions, newest first.
func (s *productService) ListNew(ctx context.Context, limit int) ([]commerce.Product, error) {
	return s.listShelf(ctx, "products.list_new", limit, url.Values{"order": []string{"-created_at"}})
}

func (s *productService) listShelf(ctx context.Context, op string, limit int, extra url.Values) ([]commerce.Product, error) {
	if limit <= 0 {
		limit = defaultShelfLimit
	}
	q := url.Values{}
	for key, values := range extra {
		q[key] = values
	}
	q.Set("limit", strconv.Itoa(limit))
	if s.c.cfg.RegionID != "" {
		q.Set("region_id", s.c.cfg.RegionID)
	}

	var out productListResponse
	if err := s.c.http.Get(ctx, "/store/products", q, &out); err != nil {
		return nil, apiError(op, err)
	}

	products := make([]commerce.Product, 0, len(out.Products))
	for _, raw := range out.Products {
		products = append(products, mapProduct(raw, s.c.cfg.Currency))
	}
	return products, nil
}

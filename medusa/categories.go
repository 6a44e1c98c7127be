package medusa

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/MarketingDevWebexpR/b2b-template-sub010/commerce"
)

type categoryService struct {
	c *Client
}

var _ commerce.CategoryService = (*categoryService)(nil)

func (s *categoryService) List(ctx context.Context, opts commerce.ListOptions) (*commerce.Page[commerce.Category], error) {
	opts = opts.Normalize()

	q := url.Values{}
	q.Set("offset", strconv.Itoa((opts.Page-1)*opts.PageSize))
	q.Set("limit", strconv.Itoa(opts.PageSize))
	if opts.Search != "" {
		q.Set("q", opts.Search)
	}
	for key, value := range opts.Filters {
		q.Set(key, value)
	}

	var out categoryListResponse
	if err := s.c.http.Get(ctx, "/store/product-categories", q, &out); err != nil {
		return nil, apiError("categories.list", err)
	}

	items := make([]commerce.Category, 0, len(out.Categories))
	for _, raw := range out.Categories {
		items = append(items, mapCategory(raw))
	}
	return commerce.NewPage(items, out.Count, opts.Page, opts.PageSize), nil
}

func (s *categoryService) Get(ctx context.Context, id string) (*commerce.Category, error) {
	var out categoryResponse
	if err := s.c.http.Get(ctx, "/store/product-categories/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, apiError(fmt.Sprintf("categories.get %q", id), err)
	}
	category := mapCategory(out.Category)
	return &category, nil
}

func (s *categoryService) GetBySlug(ctx context.Context, slug string) (*commerce.Category, error) {
	q := url.Values{}
	q.Set("handle", slug)
	q.Set("limit", "1")

	op := fmt.Sprintf("categories.get_by_slug %q", slug)
	var out categoryListResponse
	if err := s.c.http.Get(ctx, "/store/product-categories", q, &out); err != nil {
		return nil, apiError(op, err)
	}
	if len(out.Categories) == 0 {
		return nil, &commerce.APIError{Provider: ProviderName, Op: op, Status: 404, Message: "no category with handle " + slug}
	}
	category := mapCategory(out.Categories[0])
	return &category, nil
}

// Tree pulls the whole taxonomy flat and assembles the forest locally.
// Medusa caps list responses, so the fetch pages until the reported count
// is exhausted.
func (s *categoryService) Tree(ctx context.Context) ([]commerce.CategoryTree, error) {
	const pageSize = 100

	var flat []commerce.Category
	for offset := 0; ; offset += pageSize {
		q := url.Values{}
		q.Set("offset", strconv.Itoa(offset))
		q.Set("limit", strconv.Itoa(pageSize))

		var out categoryListResponse
		if err := s.c.http.Get(ctx, "/store/product-categories", q, &out); err != nil {
			return nil, apiError("categories.tree", err)
		}
		for _, raw := range out.Categories {
			flat = append(flat, mapCategory(raw))
		}
		if len(out.Categories) == 0 || int64(offset+len(out.Categories)) >= out.Count {
			break
		}
	}
	return commerce.BuildCategoryTree(flat), nil
}

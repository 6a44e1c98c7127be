package bridge

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
	q.Set("page", strconv.Itoa(opts.Page))
	q.Set("per_page", strconv.Itoa(opts.PageSize))
	if opts.Search != "" {
		q.Set("q", opts.Search)
	}

	var out envelope[[]rawCategory]
	if err := s.c.http.Get(ctx, "/categories", q, &out); err != nil {
		return nil, apiError("categories.list", err)
	}

	items := make([]commerce.Category, 0, len(out.Data))
	for _, raw := range out.Data {
		items = append(items, mapCategory(raw))
	}

	total := int64(len(items))
	if out.Meta != nil {
		total = out.Meta.Total
	}
	return commerce.NewPage(items, total, opts.Page, opts.PageSize), nil
}

func (s *categoryService) Get(ctx context.Context, id string) (*commerce.Category, error) {
	var out envelope[rawCategory]
	if err := s.c.http.Get(ctx, "/categories/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, apiError(fmt.Sprintf("categories.get %q", id), err)
	}
	category := mapCategory(out.Data)
	return &category, nil
}

func (s *categoryService) GetBySlug(ctx context.Context, slug string) (*commerce.Category, error) {
	var out envelope[rawCategory]
	if err := s.c.http.Get(ctx, "/categories/slug/"+url.PathEscape(slug), nil, &out); err != nil {
		return nil, apiError(fmt.Sprintf("categories.get_by_slug %q", slug), err)
	}
	category := mapCategory(out.Data)
	return &category, nil
}

// Tree fetches the whole taxonomy and assembles it into a forest. The
// endpoint returns the flat category list; parent links are resolved
// client-side so orphans degrade to extra roots instead of disappearing.
func (s *categoryService) Tree(ctx context.Context) ([]commerce.CategoryTree, error) {
	var out envelope[[]rawCategory]
	if err := s.c.http.Get(ctx, "/categories/tree", nil, &out); err != nil {
		return nil, apiError("categories.tree", err)
	}

	categories := make([]commerce.Category, 0, len(out.Data))
	for _, raw := range out.Data {
		categories = append(categories, mapCategory(raw))
	}
	return commerce.BuildCategoryTree(categories), nil
}

package commerce

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Product is the provider-neutral catalog item. Optional attributes are
// pointers so that serialized products omit what the source never
// supplied instead of emitting empty values.
type Product struct {
	ID             string            `json:"id"`
	Reference      string            `json:"reference"`
	Name           string            `json:"name"`
	LocalizedNames map[string]string `json:"localizedNames,omitempty"`
	Slug           string            `json:"slug"`
	Description    string            `json:"description,omitempty"`

	// Price is the selling price. When the product is on sale Price holds
	// the discounted amount and CompareAtPrice the original list price.
	Price            decimal.Decimal  `json:"price"`
	CompareAtPrice   *decimal.Decimal `json:"compareAtPrice,omitempty"`
	PriceIncludesVAT bool             `json:"priceIncludesVat"`
	Currency         string           `json:"currency,omitempty"`

	Images     []string  `json:"images,omitempty"`
	CategoryID string    `json:"categoryId,omitempty"`
	Category   *Category `json:"category,omitempty"`
	Materials  []string  `json:"materials,omitempty"`

	Stock       int  `json:"stock"`
	IsAvailable bool `json:"isAvailable"`
	Featured    bool `json:"featured"`
	IsNew       bool `json:"isNew"`

	Brand      *string  `json:"brand,omitempty"`
	Origin     *string  `json:"origin,omitempty"`
	Warranty   *string  `json:"warranty,omitempty"`
	Collection *string  `json:"collection,omitempty"`
	Weight     *float64 `json:"weight,omitempty"`

	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// OnSale reports whether the product carries a discounted price.
func (p *Product) OnSale() bool {
	return p.CompareAtPrice != nil && p.CompareAtPrice.GreaterThan(p.Price)
}

// Category is a catalog grouping node.
type Category struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Slug         string         `json:"slug"`
	Description  string         `json:"description,omitempty"`
	Image        string         `json:"image,omitempty"`
	ParentID     *string        `json:"parentId,omitempty"`
	Position     int            `json:"position"`
	ProductCount int            `json:"productCount"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// CategoryTree is a category with its resolved children, ready for menu
// rendering. Level is zero for roots.
type CategoryTree struct {
	Category
	Level    int            `json:"level"`
	Children []CategoryTree `json:"children,omitempty"`
}

// BuildCategoryTree assembles a forest from a flat category list. Nodes
// whose parent is absent from the input become roots. Siblings are ordered
// by Position, then Name.
func BuildCategoryTree(categories []Category) []CategoryTree {
	children := make(map[string][]Category)
	ids := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		ids[c.ID] = struct{}{}
	}

	var roots []Category
	for _, c := range categories {
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		if _, ok := ids[*c.ParentID]; !ok {
			roots = append(roots, c)
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], c)
	}

	var build func(nodes []Category, level int) []CategoryTree
	build = func(nodes []Category, level int) []CategoryTree {
		sort.SliceStable(nodes, func(i, j int) bool {
			if nodes[i].Position != nodes[j].Position {
				return nodes[i].Position < nodes[j].Position
			}
			return nodes[i].Name < nodes[j].Name
		})
		out := make([]CategoryTree, 0, len(nodes))
		for _, n := range nodes {
			out = append(out, CategoryTree{
				Category: n,
				Level:    level,
				Children: build(children[n.ID], level+1),
			})
		}
		if len(out) == 0 {
			return nil
		}
		return out
	}
	return build(roots, 0)
}

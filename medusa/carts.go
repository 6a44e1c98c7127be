package medusa

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/MarketingDevWebexpR/b2b-template-sub010/commerce"
	"github.com/MarketingDevWebexpR/b2b-template-sub010/internal/httpx"
)

type cartService struct {
	c *Client
}

var _ commerce.CartService = (*cartService)(nil)

func (s *cartService) Create(ctx context.Context, input commerce.CreateCartInput) (*commerce.Cart, error) {
	body := map[string]any{}
	switch {
	case input.RegionID != nil:
		body["region_id"] = *input.RegionID
	case s.c.cfg.RegionID != "":
		body["region_id"] = s.c.cfg.RegionID
	}
	if input.Currency != "" {
		body["currency_code"] = input.Currency
	}
	if len(input.Metadata) > 0 {
		body["metadata"] = input.Metadata
	}
	if len(input.Items) > 0 {
		items := make([]map[string]any, 0, len(input.Items))
		for _, item := range input.Items {
			items = append(items, lineItemBody(item))
		}
		body["items"] = items
	}

	var out cartResponse
	if err := s.c.http.Post(ctx, "/store/carts", body, &out); err != nil {
		return nil, apiError("carts.create", err)
	}
	cart := mapCart(out.Cart, s.c.cfg.Currency)
	return &cart, nil
}

func (s *cartService) Get(ctx context.Context, cartID string) (*commerce.Cart, error) {
	var out cartResponse
	if err := s.c.http.Get(ctx, "/store/carts/"+url.PathEscape(cartID), nil, &out); err != nil {
		return nil, apiError(fmt.Sprintf("carts.get %q", cartID), err)
	}
	cart := mapCart(out.Cart, s.c.cfg.Currency)
	return &cart, nil
}

// lineItemBody builds the Medusa line payload. Jewelry references are
// single-variant products, so a line without an explicit variant uses the
// product ID as the variant handle.
func lineItemBody(input commerce.AddItemInput) map[string]any {
	variantID := input.ProductID
	if input.VariantID != nil {
		variantID = *input.VariantID
	}
	body := map[string]any{
		"variant_id": variantID,
		"quantity":   input.Quantity,
	}
	if len(input.Metadata) > 0 {
		body["metadata"] = input.Metadata
	}
	return body
}

func (s *cartService) AddItem(ctx context.Context, cartID string, input commerce.AddItemInput) (*commerce.Cart, error) {
	var out cartResponse
	path := "/store/carts/" + url.PathEscape(cartID) + "/line-items"
	if err := s.c.http.Post(ctx, path, lineItemBody(input), &out); err != nil {
		return nil, apiError("carts.add_item", err)
	}
	cart := mapCart(out.Cart, s.c.cfg.Currency)
	return &cart, nil
}

// AddItems adds lines one by one so a rejected line (price missing in the
// region, out of stock, unknown variant) never sinks the rest of the
// batch. The returned cart reflects every line that went through.
func (s *cartService) AddItems(ctx context.Context, cartID string, inputs []commerce.AddItemInput) (*commerce.BulkAddResult, error) {
	result := &commerce.BulkAddResult{TotalCount: len(inputs)}

	var latest *commerce.Cart
	for i, input := range inputs {
		cart, err := s.AddItem(ctx, cartID, input)
		if err != nil {
			result.Failed = append(result.Failed, commerce.AddItemFailure{
				Index:  i,
				Input:  input,
				Reason: err.Error(),
			})
			continue
		}
		latest = cart
		result.SuccessCount++
	}
	result.FailedCount = len(result.Failed)

	if latest == nil {
		cart, err := s.Get(ctx, cartID)
		if err != nil {
			return nil, err
		}
		latest = cart
	}
	result.Cart = latest
	return result, nil
}

func (s *cartService) UpdateItem(ctx context.Context, cartID, itemID string, quantity int) (*commerce.Cart, error) {
	var out cartResponse
	path := "/store/carts/" + url.PathEscape(cartID) + "/line-items/" + url.PathEscape(itemID)
	if err := s.c.http.Post(ctx, path, map[string]any{"quantity": quantity}, &out); err != nil {
		return nil, apiError(fmt.Sprintf("carts.update_item %q", itemID), err)
	}
	cart := mapCart(out.Cart, s.c.cfg.Currency)
	return &cart, nil
}

func (s *cartService) RemoveItem(ctx context.Context, cartID, itemID string) (*commerce.Cart, error) {
	op := fmt.Sprintf("carts.remove_item %q", itemID)

	var out lineItemDeleteResponse
	path := "/store/carts/" + url.PathEscape(cartID) + "/line-items/" + url.PathEscape(itemID)
	if err := s.c.http.Delete(ctx, path, &out); err != nil {
		return nil, apiError(op, err)
	}
	if out.Parent == nil {
		// Older deployments omit the parent; refetch.
		return s.Get(ctx, cartID)
	}
	cart := mapCart(*out.Parent, s.c.cfg.Currency)
	return &cart, nil
}

func (s *cartService) ApplyDiscount(ctx context.Context, cartID, code string) (*commerce.Cart, error) {
	var out cartResponse
	path := "/store/carts/" + url.PathEscape(cartID) + "/promotions"
	if err := s.c.http.Post(ctx, path, map[string][]string{"promo_codes": {code}}, &out); err != nil {
		return nil, apiError(fmt.Sprintf("carts.apply_discount %q", code), err)
	}
	cart := mapCart(out.Cart, s.c.cfg.Currency)
	return &cart, nil
}

func (s *cartService) RemoveDiscount(ctx context.Context, cartID, code string) (*commerce.Cart, error) {
	var out cartResponse
	req := httpx.Request{
		Method: http.MethodDelete,
		Path:   "/store/carts/" + url.PathEscape(cartID) + "/promotions",
		Body:   map[string][]string{"promo_codes": {code}},
	}
	if err := s.c.http.DoJSON(ctx, req, &out); err != nil {
		return nil, apiError(fmt.Sprintf("carts.remove_discount %q", code), err)
	}
	cart := mapCart(out.Cart, s.c.cfg.Currency)
	return &cart, nil
}

func (s *cartService) ListShippingOptions(ctx context.Context, cartID string) ([]commerce.ShippingOption, error) {
	q := url.Values{}
	q.Set("cart_id", cartID)

	var out shippingOptionListResponse
	if err := s.c.http.Get(ctx, "/store/shipping-options", q, &out); err != nil {
		return nil, apiError("carts.list_shipping_options", err)
	}

	options := make([]commerce.ShippingOption, 0, len(out.ShippingOptions))
	for _, raw := range out.ShippingOptions {
		options = append(options, mapShippingOption(raw))
	}
	return options, nil
}

func (s *cartService) SetShippingOption(ctx context.Context, cartID, optionID string) (*commerce.Cart, error) {
	var out cartResponse
	path := "/store/carts/" + url.PathEscape(cartID) + "/shipping-methods"
	if err := s.c.http.Post(ctx, path, map[string]string{"option_id": optionID}, &out); err != nil {
		return nil, apiError(fmt.Sprintf("carts.set_shipping_option %q", optionID), err)
	}
	cart := mapCart(out.Cart, s.c.cfg.Currency)
	return &cart, nil
}

// Complete converts the cart into an order. Medusa answers 200 for both
// outcomes and distinguishes them by type, so an "incomplete cart" answer
// is turned into an invalid-input failure here.
func (s *cartService) Complete(ctx context.Context, cartID string) (*commerce.Order, error) {
	op := fmt.Sprintf("carts.complete %q", cartID)

	var out completeResponse
	path := "/store/carts/" + url.PathEscape(cartID) + "/complete"
	if err := s.c.http.Post(ctx, path, nil, &out); err != nil {
		return nil, apiError(op, err)
	}
	if out.Type != "order" || out.Order == nil {
		apiErr := &commerce.APIError{
			Provider: ProviderName,
			Op:       op,
			Status:   http.StatusUnprocessableEntity,
			Message:  "cart is not ready for checkout",
		}
		if out.Error != nil {
			apiErr.Code = out.Error.Type
			if out.Error.Message != "" {
				apiErr.Message = out.Error.Message
			}
		}
		return nil, apiErr
	}
	order := mapOrder(*out.Order, s.c.cfg.Currency)
	return &order, nil
}

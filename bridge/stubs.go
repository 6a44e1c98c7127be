package bridge

import (
	"context"

	"github.com/MarketingDevWebexpR/b2b-template-sub010/commerce"
)

// Bridge has no cart, order or customer endpoints: checkout runs on a
// different backend. The stubs below keep the commerce.Client contract
// complete; reads degrade to empty results, everything else fails loudly
// with commerce.ErrNotImplemented.

func notImplemented(op string) error {
	return commerce.NewNotImplementedError(ProviderName, op)
}

type cartStub struct{}

var _ commerce.CartService = cartStub{}

func (cartStub) Create(context.Context, commerce.CreateCartInput) (*commerce.Cart, error) {
	return nil, notImplemented("carts.create")
}

func (cartStub) Get(context.Context, string) (*commerce.Cart, error) {
	return nil, notImplemented("carts.get")
}

func (cartStub) AddItem(context.Context, string, commerce.AddItemInput) (*commerce.Cart, error) {
	return nil, notImplemented("carts.add_item")
}

func (cartStub) AddItems(context.Context, string, []commerce.AddItemInput) (*commerce.BulkAddResult, error) {
	return nil, notImplemented("carts.add_items")
}

func (cartStub) UpdateItem(context.Context, string, string, int) (*commerce.Cart, error) {
	return nil, notImplemented("carts.update_item")
}

func (cartStub) RemoveItem(context.Context, string, string) (*commerce.Cart, error) {
	return nil, notImplemented("carts.remove_item")
}

func (cartStub) ApplyDiscount(context.Context, string, string) (*commerce.Cart, error) {
	return nil, notImplemented("carts.apply_discount")
}

func (cartStub) RemoveDiscount(context.Context, string, string) (*commerce.Cart, error) {
	return nil, notImplemented("carts.remove_discount")
}

func (cartStub) ListShippingOptions(context.Context, string) ([]commerce.ShippingOption, error) {
	return nil, notImplemented("carts.list_shipping_options")
}

func (cartStub) SetShippingOption(context.Context, string, string) (*commerce.Cart, error) {
	return nil, notImplemented("carts.set_shipping_option")
}

func (cartStub) Complete(context.Context, string) (*commerce.Order, error) {
	return nil, notImplemented("carts.complete")
}

type orderStub struct{}

var _ commerce.OrderService = orderStub{}

func (orderStub) List(_ context.Context, opts commerce.ListOptions) (*commerce.Page[commerce.Order], error) {
	return commerce.EmptyPage[commerce.Order](opts), nil
}

func (orderStub) Get(context.Context, string) (*commerce.Order, error) {
	return nil, notImplemented("orders.get")
}

func (orderStub) Cancel(context.Context, string) (*commerce.Order, error) {
	return nil, notImplemented("orders.cancel")
}

type customerStub struct{}

var _ commerce.CustomerService = customerStub{}

// Current keeps the documented session-less contract: no backing store
// means no session, not an error.
func (customerStub) Current(context.Context) (*commerce.Customer, error) {
	return nil, nil
}

func (customerStub) Get(context.Context, string) (*commerce.Customer, error) {
	return nil, notImplemented("customers.get")
}

func (customerStub) Update(context.Context, string, commerce.UpdateCustomerInput) (*commerce.Customer, error) {
	return nil, notImplemented("customers.update")
}

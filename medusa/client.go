// Package medusa implements the commerce.Client adapter for a Medusa V2
// store API: catalog, carts, checkout, orders and customer accounts. The
// B2B service family needs the merchant's B2B plugin set; deployments
// without it get stubs.
package medusa

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/MarketingDevWebexpR/b2b-template-sub010/commerce"
	"github.com/MarketingDevWebexpR/b2b-template-sub010/internal/httpx"
)

const (
	headerPublishableKey = "x-publishable-api-key"
	headerCompanyID      = "x-company-id"
	headerEmployeeID     = "x-employee-id"
)

// Client is the Medusa adapter. Services are wired at construction; the
// only mutable state is the auth token and the B2B context, both read per
// request when the outbound header set is built.
type Client struct {
	cfg  Config
	http *httpx.Client
	log  *zap.Logger

	mu        sync.RWMutex
	authToken string
	b2bCtx    *commerce.B2BContext

	products   commerce.ProductService
	categories commerce.CategoryService
	carts      commerce.CartService
	orders     commerce.OrderService
	customers  commerce.CustomerService
	b2b        commerce.B2BServices
}

var _ commerce.Client = (*Client)(nil)

// New builds a Medusa client from cfg.
func New(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{cfg: cfg, log: cfg.Logger}

	defaults := make(map[string]string, len(cfg.DefaultHeaders)+1)
	for k, v := range cfg.DefaultHeaders {
		defaults[k] = v
	}
	defaults[headerPublishableKey] = cfg.PublishableKey

	hc, err := httpx.New(httpx.Options{
		BaseURL:        cfg.BaseURL,
		Timeout:        cfg.Timeout,
		DefaultHeaders: defaults,
		HeaderSource:   c.dynamicHeaders,
		Logger:         cfg.Logger.Named("medusa"),
		RateLimit:      cfg.RateLimit,
	})
	if err != nil {
		return nil, err
	}
	c.http = hc

	c.products = &productService{c: c}
	c.categories = &categoryService{c: c}
	c.carts = &cartService{c: c}
	c.orders = &orderService{c: c}
	c.customers = &customerService{c: c}
	if cfg.EnableB2B {
		c.b2b = b2bStub{}
	}
	return c, nil
}

// Register adds the Medusa factory to reg (the default registry when reg
// is nil). Calling it twice is harmless.
func Register(reg *commerce.Registry) error {
	if reg == nil {
		reg = commerce.DefaultRegistry()
	}
	err := reg.Register(ProviderName, func(_ context.Context, cfg commerce.Config) (commerce.Client, error) {
		client, err := New(configFrom(cfg))
		if err != nil {
			return nil, err
		}
		if cfg.B2B != nil {
			client.SetB2BContext(*cfg.B2B)
		}
		return client, nil
	})
	if errors.Is(err, commerce.ErrProviderRegistered) {
		return nil
	}
	return err
}

// dynamicHeaders snapshots the mutable adapter state into headers for one
// outgoing request.
func (c *Client) dynamicHeaders() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	headers := make(map[string]string, 3)
	if c.authToken != "" {
		headers["Authorization"] = "Bearer " + c.authToken
	}
	if c.b2bCtx != nil {
		headers[headerCompanyID] = c.b2bCtx.CompanyID
		if c.b2bCtx.EmployeeID != "" {
			headers[headerEmployeeID] = c.b2bCtx.EmployeeID
		}
	}
	return headers
}

// Provider returns "medusa".
func (c *Client) Provider() string { return ProviderName }

// Capabilities reports the entity families this deployment serves.
func (c *Client) Capabilities() commerce.Capabilities {
	caps := []commerce.Capability{
		commerce.CapProducts,
		commerce.CapCategories,
		commerce.CapCarts,
		commerce.CapOrders,
		commerce.CapCustomers,
	}
	if c.b2b != nil {
		caps = append(caps, commerce.CapB2B)
	}
	return commerce.NewCapabilities(caps...)
}

func (c *Client) Products() commerce.ProductService    { return c.products }
func (c *Client) Categories() commerce.CategoryService { return c.categories }
func (c *Client) Carts() commerce.CartService          { return c.carts }
func (c *Client) Orders() commerce.OrderService        { return c.orders }
func (c *Client) Customers() commerce.CustomerService  { return c.customers }

// B2B returns the company/quote/approval service family; ok is false when
// the client was configured without B2B support. When ok, the services are
// stubs until the merchant's Medusa deployment ships the B2B plugin set.
func (c *Client) B2B() (commerce.B2BServices, bool) {
	if c.b2b == nil {
		return nil, false
	}
	return c.b2b, true
}

// HTTP exposes raw store API access for endpoints the typed services do
// not cover.
func (c *Client) HTTP() commerce.Doer { return c.http.Raw() }

// SetAuthToken installs the bearer token sent on subsequent requests.
func (c *Client) SetAuthToken(token string) {
	c.mu.Lock()
	c.authToken = token
	c.mu.Unlock()
}

// ClearAuthToken removes the bearer token.
func (c *Client) ClearAuthToken() {
	c.mu.Lock()
	c.authToken = ""
	c.mu.Unlock()
}

// AuthExpiry reports when the installed token expires, when it is a JWT
// carrying an exp claim.
func (c *Client) AuthExpiry() (time.Time, bool) {
	c.mu.RLock()
	token := c.authToken
	c.mu.RUnlock()
	return commerce.TokenExpiry(token)
}

// SetB2BContext scopes subsequent requests to a company/employee.
func (c *Client) SetB2BContext(b2b commerce.B2BContext) {
	c.mu.Lock()
	c.b2bCtx = &b2b
	c.mu.Unlock()
}

// ClearB2BContext removes the company/employee scoping.
func (c *Client) ClearB2BContext() {
	c.mu.Lock()
	c.b2bCtx = nil
	c.mu.Unlock()
}

// CurrentB2BContext returns the active scoping, if any.
func (c *Client) CurrentB2BContext() (commerce.B2BContext, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.b2bCtx == nil {
		return commerce.B2BContext{}, false
	}
	return *c.b2bCtx, true
}

// Close releases client resources.
func (c *Client) Close() error {
	c.ClearAuthToken()
	c.ClearB2BContext()
	return nil
}

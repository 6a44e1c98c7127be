package commerce

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Capability flags one entity family a provider implements natively.
type Capability uint32

const (
	CapProducts Capability = 1 << iota
	CapCategories
	CapCarts
	CapOrders
	CapCustomers
	CapInventory
	CapSync
	CapB2B
)

var capabilityNames = []struct {
	cap  Capability
	name string
}{
	{CapProducts, "products"},
	{CapCategories, "categories"},
	{CapCarts, "carts"},
	{CapOrders, "orders"},
	{CapCustomers, "customers"},
	{CapInventory, "inventory"},
	{CapSync, "sync"},
	{CapB2B, "b2b"},
}

// Capabilities is a set of Capability flags. Operations outside the set
// are served by stubs (see NotImplementedError).
type Capabilities uint32

// NewCapabilities builds a set from individual flags.
func NewCapabilities(caps ...Capability) Capabilities {
	var set Capabilities
	for _, c := range caps {
		set |= Capabilities(c)
	}
	return set
}

// Has reports whether c is in the set.
func (s Capabilities) Has(c Capability) bool {
	return uint32(s)&uint32(c) != 0
}

func (s Capabilities) String() string {
	var names []string
	for _, entry := range capabilityNames {
		if s.Has(entry.cap) {
			names = append(names, entry.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}

// B2BContext identifies who a storefront session is buying for. Adapters
// forward it as vendor headers on every request while it is set.
type B2BContext struct {
	CompanyID  string `json:"companyId" mapstructure:"company_id"`
	EmployeeID string `json:"employeeId,omitempty" mapstructure:"employee_id"`
}

// Doer is the raw vendor API escape hatch for endpoints the typed
// services do not cover. Paths are relative to the configured base URL
// and responses come back undecoded.
type Doer interface {
	Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error)
	Post(ctx context.Context, path string, body any) (json.RawMessage, error)
	Put(ctx context.Context, path string, body any) (json.RawMessage, error)
	Patch(ctx context.Context, path string, body any) (json.RawMessage, error)
	Delete(ctx context.Context, path string) (json.RawMessage, error)
}

// Client is the provider-agnostic commerce client. Every adapter
// constructs all of its services eagerly, so accessors are cheap reads
// and never fail; entities a backend cannot serve are wired to stubs.
//
// Auth token and B2B context are the only mutable state a client holds.
// Both may be swapped at any time from concurrent goroutines; outbound
// headers are rebuilt from them on every request.
type Client interface {
	// Provider returns the adapter name, e.g. "bridge".
	Provider() string
	// Capabilities reports which entity families the provider implements
	// natively.
	Capabilities() Capabilities

	Products() ProductService
	Categories() CategoryService
	Carts() CartService
	Orders() OrderService
	Customers() CustomerService

	// B2B returns the B2B service bundle; ok is false when the client was
	// configured without B2B support.
	B2B() (bundle B2BServices, ok bool)

	// HTTP exposes raw vendor API access.
	HTTP() Doer

	// SetAuthToken installs the bearer token sent on subsequent requests.
	SetAuthToken(token string)
	// ClearAuthToken removes the bearer token.
	ClearAuthToken()
	// AuthExpiry reports when the installed token expires, when the token
	// is a JWT carrying an exp claim.
	AuthExpiry() (time.Time, bool)

	// SetB2BContext scopes subsequent requests to a company/employee.
	SetB2BContext(b2b B2BContext)
	// ClearB2BContext removes the company/employee scoping.
	ClearB2BContext()
	// CurrentB2BContext returns the active scoping, if any.
	CurrentB2BContext() (B2BContext, bool)

	// Close releases client resources. A closed client must not be
	// reused.
	Close() error
}

// ProviderOptions carries provider-specific settings. Adapters read the
// fields they understand and ignore the rest.
type ProviderOptions struct {
	// APIKey and TenantID authenticate against the Bridge backend.
	APIKey   string `mapstructure:"api_key"`
	TenantID string `mapstructure:"tenant_id"`
	// Currency overrides the provider default currency code.
	Currency string `mapstructure:"currency"`
	// EnableInventory and EnableSync switch on the Bridge operational
	// services.
	EnableInventory bool `mapstructure:"enable_inventory"`
	EnableSync      bool `mapstructure:"enable_sync"`
	// PublishableKey authenticates against the Medusa store API.
	PublishableKey string `mapstructure:"publishable_key"`
	// RateLimit throttles outgoing requests per second; zero disables.
	RateLimit float64 `mapstructure:"rate_limit"`
}

// Config selects and configures a provider.
type Config struct {
	// Provider picks the registered adapter, e.g. "bridge" or "medusa".
	Provider string `mapstructure:"provider" validate:"required"`
	// BaseURL is the vendor API root.
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	// RegionID scopes pricing/availability on providers that support
	// regions.
	RegionID string `mapstructure:"region_id"`
	// Timeout bounds each request; defaults to 30s.
	Timeout time.Duration `mapstructure:"timeout"`
	// DefaultHeaders are sent on every request, before dynamic headers.
	DefaultHeaders map[string]string `mapstructure:"default_headers"`
	// EnableB2B switches on the B2B service bundle where the provider
	// supports it.
	EnableB2B bool `mapstructure:"enable_b2b"`
	// B2B seeds the initial company/employee scoping.
	B2B *B2BContext `mapstructure:"b2b"`
	// Options carries provider-specific settings.
	Options ProviderOptions `mapstructure:"options"`

	// Logger receives adapter diagnostics; nil means silent.
	Logger *zap.Logger `mapstructure:"-"`
}

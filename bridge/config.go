package bridge

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/MarketingDevWebexpR/b2b-template-sub010/commerce"
)

// ProviderName is the name this adapter registers under.
const ProviderName = "bridge"

const (
	defaultCurrency = "EUR"
	defaultTimeout  = 30 * time.Second

	// defaultHighlightLimit bounds featured/new product shelves when the
	// caller passes no limit.
	defaultHighlightLimit = 8
)

// Configuration errors
var (
	ErrConfigMissingBaseURL = errors.New("bridge: missing base URL")
)

// Config holds the Bridge backend connection settings.
type Config struct {
	// BaseURL is the Bridge API root, e.g. "https://bridge.internal/api/v1".
	BaseURL string
	// APIKey authenticates server-to-server calls. Sent as X-Api-Key on
	// every request when set.
	APIKey string
	// TenantID selects the tenant on multi-tenant deployments. Sent as
	// X-Tenant-Id on every request when set.
	TenantID string
	// Currency is the fallback pricing currency for payloads that omit
	// one. Defaults to EUR.
	Currency string
	// Timeout bounds each request. Defaults to 30s.
	Timeout time.Duration
	// EnableInventory switches on the warehouse inventory service.
	EnableInventory bool
	// EnableSync switches on the catalog sync orchestration service.
	EnableSync bool
	// EnableB2B switches on the company/quote/approval service family.
	EnableB2B bool
	// DefaultHeaders are sent on every request before dynamic headers.
	DefaultHeaders map[string]string
	// RateLimit throttles outgoing requests per second; zero disables.
	RateLimit float64
	// Logger receives adapter diagnostics; nil means silent.
	Logger *zap.Logger
}

// Validate checks required fields and fills defaults.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrConfigMissingBaseURL
	}
	if c.Currency == "" {
		c.Currency = defaultCurrency
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return nil
}

// configFrom translates the provider-agnostic client config into Bridge
// settings.
func configFrom(cfg commerce.Config) Config {
	return Config{
		BaseURL:         cfg.BaseURL,
		APIKey:          cfg.Options.APIKey,
		TenantID:        cfg.Options.TenantID,
		Currency:        cfg.Options.Currency,
		Timeout:         cfg.Timeout,
		EnableInventory: cfg.Options.EnableInventory,
		EnableSync:      cfg.Options.EnableSync,
		EnableB2B:       cfg.EnableB2B,
		DefaultHeaders:  cfg.DefaultHeaders,
		RateLimit:       cfg.Options.RateLimit,
		Logger:          cfg.Logger,
	}
}

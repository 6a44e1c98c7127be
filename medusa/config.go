package medusa

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/MarketingDevWebexpR/b2b-template-sub010/commerce"
)

// ProviderName is the name this adapter registers under.
const ProviderName = "medusa"

const (
	defaultCurrency = "EUR"
	defaultTimeout  = 30 * time.Second

	// defaultShelfLimit bounds featured/new product shelves when the
	// caller passes no limit.
	defaultShelfLimit = 8
)

// Configuration errors
var (
	ErrConfigMissingBaseURL        = errors.New("medusa: missing base URL")
	ErrConfigMissingPublishableKey = errors.New("medusa: missing publishable API key")
)

// Config holds the Medusa store API connection settings.
type Config struct {
	// BaseURL is the Medusa server root, e.g. "https://medusa.internal".
	BaseURL string
	// PublishableKey scopes store API calls to a sales channel. Sent as
	// x-publishable-api-key on every request.
	PublishableKey string
	// RegionID scopes pricing and availability. Optional; carts created
	// without an explicit region inherit it.
	RegionID string
	// Currency is the fallback currency for payloads that omit one.
	// Defaults to EUR.
	Currency string
	// Timeout bounds each request. Defaults to 30s.
	Timeout time.Duration
	// EnableB2B wires the B2B service family. Medusa serves it only with
	// the B2B plugin set installed; without it the bundle is stubbed.
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
	if c.PublishableKey == "" {
		return ErrConfigMissingPublishableKey
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

// configFrom translates the provider-agnostic client config into Medusa
// settings.
func configFrom(cfg commerce.Config) Config {
	return Config{
		BaseURL:        cfg.BaseURL,
		PublishableKey: cfg.Options.PublishableKey,
		RegionID:       cfg.RegionID,
		Currency:       cfg.Options.Currency,
		Timeout:        cfg.Timeout,
		EnableB2B:      cfg.EnableB2B,
		DefaultHeaders: cfg.DefaultHeaders,
		RateLimit:      cfg.Options.RateLimit,
		Logger:         cfg.Logger,
	}
}

package commerce

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const defaultTimeout = 30 * time.Second

var configValidator = validator.New()

// Validate applies defaults and checks the config is usable. It is called
// by LoadConfig and by Registry.New, so hand-built configs get the same
// treatment as loaded ones.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))

	if err := configValidator.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return fmt.Errorf("%w: field %s fails %q", ErrInvalidConfig, f.Field(), f.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// LoadConfig reads the client configuration. With an explicit path it
// loads that file; otherwise it searches for commerce.toml in the working
// directory and ./config. Environment variables prefixed with COMMERCE_
// override file values (COMMERCE_BASE_URL, COMMERCE_OPTIONS_API_KEY, ...),
// so a config file is optional.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("commerce")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("COMMERCE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("commerce: read config: %w", err)
		}
	}

	cfg := &Config{
		Provider:       v.GetString("provider"),
		BaseURL:        v.GetString("base_url"),
		RegionID:       v.GetString("region_id"),
		Timeout:        v.GetDuration("timeout"),
		DefaultHeaders: v.GetStringMapString("default_headers"),
		EnableB2B:      v.GetBool("enable_b2b"),
		Options: ProviderOptions{
			APIKey:          v.GetString("options.api_key"),
			TenantID:        v.GetString("options.tenant_id"),
			Currency:        v.GetString("options.currency"),
			EnableInventory: v.GetBool("options.enable_inventory"),
			EnableSync:      v.GetBool("options.enable_sync"),
			PublishableKey:  v.GetString("options.publishable_key"),
			RateLimit:       v.GetFloat64("options.rate_limit"),
		},
	}

	if companyID := v.GetString("b2b.company_id"); companyID != "" {
		cfg.B2B = &B2BContext{
			CompanyID:  companyID,
			EmployeeID: v.GetString("b2b.employee_id"),
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

package commerce

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "commerce.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_FromFile(t *testing.T) {
	path := writeConfigFile(t, `
provider = "bridge"
base_url = "https://bridge.example.com/api/v1"
region_id = "eu"
timeout = "45s"
enable_b2b = true

[default_headers]
x-channel = "storefront"

[b2b]
company_id = "comp_1"
employee_id = "emp_9"

[options]
api_key = "key-123"
tenant_id = "tenant-7"
currency = "EUR"
enable_inventory = true
enable_sync = true
rate_limit = 10.0
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "bridge", cfg.Provider)
	assert.Equal(t, "https://bridge.example.com/api/v1", cfg.BaseURL)
	assert.Equal(t, "eu", cfg.RegionID)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.Equal(t, map[string]string{"x-channel": "storefront"}, cfg.DefaultHeaders)
	assert.True(t, cfg.EnableB2B)

	require.NotNil(t, cfg.B2B)
	assert.Equal(t, "comp_1", cfg.B2B.CompanyID)
	assert.Equal(t, "emp_9", cfg.B2B.EmployeeID)

	assert.Equal(t, "key-123", cfg.Options.APIKey)
	assert.Equal(t, "tenant-7", cfg.Options.TenantID)
	assert.Equal(t, "EUR", cfg.Options.Currency)
	assert.True(t, cfg.Options.EnableInventory)
	assert.True(t, cfg.Options.EnableSync)
	assert.InDelta(t, 10.0, cfg.Options.RateLimit, 0.001)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	path := writeConfigFile(t, `
provider = "bridge"
base_url = "https://bridge.example.com/api/v1"
`)

	t.Setenv("COMMERCE_PROVIDER", "medusa")
	t.Setenv("COMMERCE_OPTIONS_PUBLISHABLE_KEY", "pk_test_1")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "medusa", cfg.Provider)
	assert.Equal(t, "pk_test_1", cfg.Options.PublishableKey)
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfigFile(t, `
provider = "medusa"
base_url = "https://medusa.example.com"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, defaultTimeout, cfg.Timeout)
	assert.Nil(t, cfg.B2B)
	assert.False(t, cfg.EnableB2B)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid",
			cfg:  Config{Provider: "bridge", BaseURL: "https://bridge.example.com"},
		},
		{
			name:    "missing provider",
			cfg:     Config{BaseURL: "https://bridge.example.com"},
			wantErr: true,
		},
		{
			name:    "missing base url",
			cfg:     Config{Provider: "bridge"},
			wantErr: true,
		},
		{
			name:    "malformed base url",
			cfg:     Config{Provider: "bridge", BaseURL: "bridge.example.com"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, defaultTimeout, tt.cfg.Timeout)
		})
	}
}

func TestConfig_Validate_NormalizesProvider(t *testing.T) {
	cfg := Config{Provider: "  Bridge ", BaseURL: "https://bridge.example.com"}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "bridge", cfg.Provider)
}

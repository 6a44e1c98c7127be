package commerce

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient is a minimal Client used by registry and manager tests.
type fakeClient struct {
	provider string
	closed   bool
}

func (f *fakeClient) Provider() string { return f.provider }

func (f *fakeClient) Capabilities() Capabilities { return NewCapabilities(CapProducts) }

func (f *fakeClient) Products() ProductService { return nil }

func (f *fakeClient) Categories() CategoryService { return nil }

func (f *fakeClient) Carts() CartService { return nil }

func (f *fakeClient) Orders() OrderService { return nil }

func (f *fakeClient) Customers() CustomerService { return nil }

func (f *fakeClient) B2B() (B2BServices, bool) { return nil, false }

func (f *fakeClient) HTTP() Doer { return nil }

func (f *fakeClient) SetAuthToken(string) {}

func (f *fakeClient) ClearAuthToken() {}

func (f *fakeClient) AuthExpiry() (time.Time, bool) { return time.Time{}, false }

func (f *fakeClient) SetB2BContext(B2BContext) {}

func (f *fakeClient) ClearB2BContext() {}

func (f *fakeClient) CurrentB2BContext() (B2BContext, bool) { return B2BContext{}, false }

func (f *fakeClient) Close() error { f.closed = true; return nil }

var _ Client = (*fakeClient)(nil)

// Compile-time check that Doer is satisfiable outside the adapters.
type noopDoer struct{}

func (noopDoer) Get(context.Context, string, url.Values) (json.RawMessage, error) { return nil, nil }

func (noopDoer) Post(context.Context, string, any) (json.RawMessage, error) { return nil, nil }

func (noopDoer) Put(context.Context, string, any) (json.RawMessage, error) { return nil, nil }

func (noopDoer) Patch(context.Context, string, any) (json.RawMessage, error) { return nil, nil }

func (noopDoer) Delete(context.Context, string) (json.RawMessage, error) { return nil, nil }

var _ Doer = noopDoer{}

func fakeFactory(provider string) Factory {
	return func(ctx context.Context, cfg Config) (Client, error) {
		return &fakeClient{provider: provider}, nil
	}
}

func TestRegistry_Register(t *testing.T) {
	reg := NewRegistry()

	require.NoError(t, reg.Register("bridge", fakeFactory("bridge")))
	assert.True(t, reg.Registered("bridge"))
	assert.True(t, reg.Registered("BRIDGE"), "lookup is case-insensitive")

	err := reg.Register("Bridge", fakeFactory("bridge"))
	assert.ErrorIs(t, err, ErrProviderRegistered)

	assert.ErrorIs(t, reg.Register("", fakeFactory("x")), ErrInvalidInput)
	assert.ErrorIs(t, reg.Register("medusa", nil), ErrInvalidInput)
}

func TestRegistry_Providers(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("medusa", fakeFactory("medusa")))
	require.NoError(t, reg.Register("bridge", fakeFactory("bridge")))

	assert.Equal(t, []string{"bridge", "medusa"}, reg.Providers())
}

func TestRegistry_New(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("bridge", fakeFactory("bridge")))

	client, err := reg.New(context.Background(), Config{
		Provider: "Bridge",
		BaseURL:  "https://bridge.example.com/api",
	})
	require.NoError(t, err)
	assert.Equal(t, "bridge", client.Provider())
}

func TestRegistry_New_UnknownProvider(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("bridge", fakeFactory("bridge")))

	_, err := reg.New(context.Background(), Config{
		Provider: "shopify",
		BaseURL:  "https://example.com",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownProvider)
	assert.Contains(t, err.Error(), "bridge", "error lists the known providers")
}

func TestRegistry_New_InvalidConfig(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.New(context.Background(), Config{Provider: "bridge"})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = reg.New(context.Background(), Config{Provider: "bridge", BaseURL: "not a url"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

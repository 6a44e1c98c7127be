package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, server *httptest.Server, opts Options) *Client {
	t.Helper()
	opts.BaseURL = server.URL
	if opts.RetryWaitMin == 0 {
		opts.RetryWaitMin = time.Millisecond
	}
	if opts.RetryWaitMax == 0 {
		opts.RetryWaitMax = 5 * time.Millisecond
	}
	client, err := New(opts)
	require.NoError(t, err)
	return client
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr error
	}{
		{name: "missing base URL", baseURL: "", wantErr: ErrBaseURLRequired},
		{name: "no scheme", baseURL: "api.example.com", wantErr: ErrInvalidBaseURL},
		{name: "garbage", baseURL: "://nope", wantErr: ErrInvalidBaseURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(Options{BaseURL: tt.baseURL})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDo_HeaderLayering(t *testing.T) {
	var mu sync.Mutex
	token := ""

	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(t, server, Options{
		DefaultHeaders: map[string]string{"X-Api-Key": "key-123", "X-Custom": "default"},
		HeaderSource: func() map[string]string {
			mu.Lock()
			defer mu.Unlock()
			return map[string]string{"Authorization": token}
		},
	})

	// No token yet: the Authorization header must be absent entirely.
	_, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/ping"})
	require.NoError(t, err)
	assert.Equal(t, "key-123", got.Get("X-Api-Key"))
	assert.Empty(t, got.Get("Authorization"))
	assert.NotEmpty(t, got.Get("X-Request-ID"))
	assert.Equal(t, "application/json", got.Get("Accept"))

	// Token set after construction: the next request must carry it without
	// any client reconfiguration.
	mu.Lock()
	token = "Bearer tok-1"
	mu.Unlock()

	_, err = client.Do(context.Background(), Request{
		Method:  http.MethodGet,
		Path:    "/ping",
		Headers: map[string]string{"X-Custom": "override"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", got.Get("Authorization"))
	assert.Equal(t, "override", got.Get("X-Custom"))
}

func TestDo_QueryAndBody(t *testing.T) {
	type payload struct {
		SKUs []string `json:"skus"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/inventory/check", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))

		var in payload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, []string{"SKU-1", "SKU-2"}, in.SKUs)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client, err := New(Options{BaseURL: server.URL + "/v2/"})
	require.NoError(t, err)

	var out struct {
		OK bool `json:"ok"`
	}
	err = client.DoJSON(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/inventory/check",
		Query:  url.Values{"page": []string{"2"}},
		Body:   payload{SKUs: []string{"SKU-1", "SKU-2"}},
	}, &out)
	require.NoError(t, err)
	assert.True(t, out.OK)
}

func TestDo_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"no such product"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server, Options{})

	_, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/products/missing"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStatusNotFound)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.Status)
	assert.Contains(t, se.Error(), "no such product")
	assert.NotEmpty(t, se.RequestID)
}

func TestDo_RetryPolicy(t *testing.T) {
	t.Run("idempotent requests retry on 5xx", func(t *testing.T) {
		var calls int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls < 3 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := newTestClient(t, server, Options{RetryMax: 3})
		resp, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/sync/health"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.Status)
		assert.Equal(t, 3, calls)
	})

	t.Run("non-idempotent requests never retry", func(t *testing.T) {
		var calls int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := newTestClient(t, server, Options{RetryMax: 3})
		_, err := client.Do(context.Background(), Request{Method: http.MethodPost, Path: "/sync/jobs"})
		assert.ErrorIs(t, err, ErrStatusServer)
		assert.Equal(t, 1, calls)
	})

	t.Run("4xx fails fast", func(t *testing.T) {
		var calls int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusUnprocessableEntity)
		}))
		defer server.Close()

		client := newTestClient(t, server, Options{RetryMax: 3})
		_, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/products"})
		assert.ErrorIs(t, err, ErrStatusUnprocessable)
		assert.Equal(t, 1, calls)
	})
}

func TestDo_ResponseTooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(make([]byte, 2048))
	}))
	defer server.Close()

	client := newTestClient(t, server, Options{MaxResponseBytes: 1024, RetryMax: -1})
	_, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/products"})
	assert.ErrorIs(t, err, ErrResponseTooLarge)
}

func TestStatusError_Unwrap(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{status: http.StatusNotFound, want: ErrStatusNotFound},
		{status: http.StatusUnauthorized, want: ErrStatusDenied},
		{status: http.StatusForbidden, want: ErrStatusDenied},
		{status: http.StatusConflict, want: ErrStatusConflict},
		{status: http.StatusUnprocessableEntity, want: ErrStatusUnprocessable},
		{status: http.StatusBadRequest, want: ErrStatusBadRequest},
		{status: http.StatusBadGateway, want: ErrStatusServer},
	}

	for _, tt := range tests {
		err := &StatusError{Status: tt.status, Method: http.MethodGet, Path: "/x"}
		assert.ErrorIs(t, err, tt.want, "status %d", tt.status)
	}
}

package commerce

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	reg := NewRegistry()
	require.NoError(t, reg.Register("bridge", fakeFactory("bridge")))
	require.NoError(t, reg.Register("medusa", fakeFactory("medusa")))
	return NewManager(reg)
}

func bridgeConfig() Config {
	return Config{Provider: "bridge", BaseURL: "https://bridge.example.com/api", EnableB2B: true}
}

func TestManager_Initialize(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Default()
	assert.ErrorIs(t, err, ErrNoDefaultClient)

	client, err := m.Initialize(context.Background(), bridgeConfig())
	require.NoError(t, err)

	got, err := m.Default()
	require.NoError(t, err)
	assert.Same(t, client, got)
	assert.Equal(t, 1, m.Count())
}

func TestManager_Initialize_ReplacesAndClosesPrevious(t *testing.T) {
	m := newTestManager(t)

	first, err := m.Initialize(context.Background(), bridgeConfig())
	require.NoError(t, err)

	second, err := m.Initialize(context.Background(), Config{Provider: "medusa", BaseURL: "https://medusa.example.com"})
	require.NoError(t, err)

	assert.True(t, first.(*fakeClient).closed, "replaced client must be closed")
	assert.False(t, second.(*fakeClient).closed)

	got, err := m.Default()
	require.NoError(t, err)
	assert.Equal(t, "medusa", got.Provider())
	assert.Equal(t, 1, m.Count())
}

func TestManager_CreateNamed(t *testing.T) {
	m := newTestManager(t)

	client, err := m.CreateNamed(context.Background(), "checkout", Config{Provider: "medusa", BaseURL: "https://medusa.example.com"})
	require.NoError(t, err)

	got, err := m.Named("checkout")
	require.NoError(t, err)
	assert.Same(t, client, got)

	_, err = m.CreateNamed(context.Background(), "checkout", bridgeConfig())
	assert.ErrorIs(t, err, ErrClientExists)

	_, err = m.CreateNamed(context.Background(), "  ", bridgeConfig())
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = m.Named("missing")
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestManager_Remove(t *testing.T) {
	m := newTestManager(t)

	client, err := m.CreateNamed(context.Background(), "catalog", bridgeConfig())
	require.NoError(t, err)

	require.NoError(t, m.Remove("catalog"))
	assert.True(t, client.(*fakeClient).closed)
	assert.Zero(t, m.Count())

	assert.ErrorIs(t, m.Remove("catalog"), ErrClientNotFound)
}

func TestManager_Clear(t *testing.T) {
	m := newTestManager(t)

	a, err := m.Initialize(context.Background(), bridgeConfig())
	require.NoError(t, err)
	b, err := m.CreateNamed(context.Background(), "checkout", Config{Provider: "medusa", BaseURL: "https://medusa.example.com"})
	require.NoError(t, err)

	m.Clear()
	assert.Zero(t, m.Count())
	assert.True(t, a.(*fakeClient).closed)
	assert.True(t, b.(*fakeClient).closed)
}

func TestManager_Infos(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Initialize(context.Background(), bridgeConfig())
	require.NoError(t, err)
	_, err = m.CreateNamed(context.Background(), "checkout", Config{Provider: "medusa", BaseURL: "https://medusa.example.com"})
	require.NoError(t, err)

	infos := m.Infos()
	require.Len(t, infos, 2)

	// Sorted by name: "checkout" before "default".
	assert.Equal(t, "checkout", infos[0].Name)
	assert.Equal(t, "medusa", infos[0].Provider)
	assert.False(t, infos[0].B2BEnabled)

	assert.Equal(t, DefaultClientName, infos[1].Name)
	assert.Equal(t, "bridge", infos[1].Provider)
	assert.Equal(t, "https://bridge.example.com/api", infos[1].BaseURL)
	assert.True(t, infos[1].B2BEnabled)
	assert.False(t, infos[1].CreatedAt.IsZero())
}

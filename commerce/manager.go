package commerce

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// DefaultClientName is the name Initialize stores the main client under.
const DefaultClientName = "default"

// ClientInfo describes one managed client.
type ClientInfo struct {
	Name       string    `json:"name"`
	Provider   string    `json:"provider"`
	BaseURL    string    `json:"baseUrl"`
	B2BEnabled bool      `json:"b2bEnabled"`
	CreatedAt  time.Time `json:"createdAt"`
}

type managedClient struct {
	client Client
	info   ClientInfo
}

// Manager holds named clients for applications that talk to several
// providers at once (e.g. Bridge catalog plus Medusa checkout). It is
// meant to be populated at startup and read afterwards; the internal lock
// makes reads safe alongside the occasional swap, but it provides no
// ordering between concurrent mutations.
type Manager struct {
	registry *Registry

	mu      sync.RWMutex
	clients map[string]*managedClient
}

// NewManager creates a manager building clients from registry, or from
// the default registry when registry is nil.
func NewManager(registry *Registry) *Manager {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Manager{
		registry: registry,
		clients:  make(map[string]*managedClient),
	}
}

// Initialize builds the default client, replacing (and closing) any
// previous one.
func (m *Manager) Initialize(ctx context.Context, cfg Config) (Client, error) {
	client, err := m.registry.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	previous := m.clients[DefaultClientName]
	m.clients[DefaultClientName] = newManaged(DefaultClientName, client, cfg)
	m.mu.Unlock()

	if previous != nil {
		_ = previous.client.Close()
	}
	return client, nil
}

// CreateNamed builds a client under name. The name must be unused.
func (m *Manager) CreateNamed(ctx context.Context, name string, cfg Config) (Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: client name is empty", ErrInvalidInput)
	}

	m.mu.Lock()
	if _, exists := m.clients[name]; exists {
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: %q", ErrClientExists, name)
	}
	m.mu.Unlock()

	client, err := m.registry.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.clients[name]; exists {
		_ = client.Close()
		return nil, fmt.Errorf("%w: %q", ErrClientExists, name)
	}
	m.clients[name] = newManaged(name, client, cfg)
	return client, nil
}

func newManaged(name string, client Client, cfg Config) *managedClient {
	return &managedClient{
		client: client,
		info: ClientInfo{
			Name:       name,
			Provider:   client.Provider(),
			BaseURL:    cfg.BaseURL,
			B2BEnabled: cfg.EnableB2B,
			CreatedAt:  time.Now(),
		},
	}
}

// Default returns the client created by Initialize.
func (m *Manager) Default() (Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	managed, ok := m.clients[DefaultClientName]
	if !ok {
		return nil, ErrNoDefaultClient
	}
	return managed.client, nil
}

// Named returns the client registered under name.
func (m *Manager) Named(name string) (Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	managed, ok := m.clients[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrClientNotFound, name)
	}
	return managed.client, nil
}

// Remove closes and forgets the client registered under name.
func (m *Manager) Remove(name string) error {
	m.mu.Lock()
	managed, ok := m.clients[name]
	delete(m.clients, name)
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %q", ErrClientNotFound, name)
	}
	return managed.client.Close()
}

// Clear closes and forgets every client.
func (m *Manager) Clear() {
	m.mu.Lock()
	clients := m.clients
	m.clients = make(map[string]*managedClient)
	m.mu.Unlock()

	for _, managed := range clients {
		_ = managed.client.Close()
	}
}

// Count returns the number of managed clients.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

// Infos lists the managed clients, sorted by name.
func (m *Manager) Infos() []ClientInfo {
	m.mu.RLock()
	infos := make([]ClientInfo, 0, len(m.clients))
	for _, managed := range m.clients {
		infos = append(infos, managed.info)
	}
	m.mu.RUnlock()

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

var defaultManager = NewManager(nil)

// DefaultManager returns the process-wide manager.
func DefaultManager() *Manager {
	return defaultManager
}

// InitDefault initializes the default client on the process-wide manager.
func InitDefault(ctx context.Context, cfg Config) (Client, error) {
	return defaultManager.Initialize(ctx, cfg)
}

// DefaultClient returns the default client of the process-wide manager.
func DefaultClient() (Client, error) {
	return defaultManager.Default()
}

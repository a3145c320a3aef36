package notify

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Store persists one client's notification list. Implementations decide where the
// list lives; the tracker never assumes a server-side source of truth.
type Store interface {
	Load(ctx context.Context, key string) ([]Item, error)
	Save(ctx context.Context, key string, items []Item) error
}

const keyPrefix = "careerpath_notifications"

// ClientKey scopes a list to one user on one device. Lists are not shared across
// devices.
func ClientKey(userID uuid.UUID, clientID string) string {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		clientID = "default"
	}
	return fmt.Sprintf("%s:%s:%s", keyPrefix, userID, clientID)
}

type MemoryStore struct {
	mu    sync.RWMutex
	lists map[string][]Item
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{lists: make(map[string][]Item)}
}

func (m *MemoryStore) Load(_ context.Context, key string) ([]Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	items := m.lists[key]
	out := make([]Item, len(items))
	copy(out, items)
	return out, nil
}

func (m *MemoryStore) Save(_ context.Context, key string, items []Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]Item, len(items))
	copy(cp, items)
	m.lists[key] = cp
	return nil
}

package store

import (
	"sync"
)

// Keys used by the client state. Per-user keys are passed through Namespaced.
const (
	CurrentUserKey      = "currentUser"
	RedesignCountKey    = "redesignCount"
	LastRedesignDateKey = "lastRedesignDate"
	FavoritesKey        = "userFavorites"
	FollowedUsersKey    = "followedUsernames"
)

// KV is the key-value collaborator behind all client state.
type KV interface {
	// Get returns ok=false when the key has never been set.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}

// Namespaced scopes key to a single user, e.g. "userFavorites_jane@example.com".
func Namespaced(key, userID string) string {
	return key + "_" + userID
}

// MemoryStore is a KV held in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

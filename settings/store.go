package settings

import (
	"context"
	"sync"

	"droppables/db"
)

// Scope is the storage scope of every drop setting.
const Scope = "client"

// SQLiteStore keeps one user's client settings in the client_settings table.
type SQLiteStore struct {
	repo   *db.Repository
	userID string
}

// NewSQLiteStore returns a store for userID.
func NewSQLiteStore(repo *db.Repository, userID string) *SQLiteStore {
	return &SQLiteStore{repo: repo, userID: userID}
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	return s.repo.GetSetting(ctx, Scope, s.userID, key)
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	return s.repo.PutSetting(ctx, Scope, s.userID, key, value)
}

// MemoryStore is an in-process store.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore returns a store seeded with initial.
func NewMemoryStore(initial map[string]string) *MemoryStore {
	values := make(map[string]string, len(initial))
	for k, v := range initial {
		values[k] = v
	}
	return &MemoryStore{values: values}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

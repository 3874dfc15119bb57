package jobconfig

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-l10nmgr/internal/identity"
)

// MemoryRepository is an in-memory configuration store for tests and
// embedded use.
type MemoryRepository struct {
	mu       sync.RWMutex
	records  map[uuid.UUID]*Configuration
	keyIndex map[string]uuid.UUID
	now      func() time.Time
}

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		records:  make(map[uuid.UUID]*Configuration),
		keyIndex: make(map[string]uuid.UUID),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a new configuration keyed by its slug.
func (m *MemoryRepository) Create(_ context.Context, record *Configuration) (*Configuration, error) {
	if record == nil || strings.TrimSpace(record.Key) == "" {
		return nil, ErrKeyRequired
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.keyIndex[record.Key]; exists {
		return nil, ErrConfigurationExists
	}
	stored := record.Clone()
	if stored.ID == uuid.Nil {
		stored.ID = identity.ConfigurationUUID(stored.Key)
	}
	now := m.now()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	m.records[stored.ID] = stored
	m.keyIndex[stored.Key] = stored.ID
	return stored.Clone(), nil
}

// Update replaces a stored configuration.
func (m *MemoryRepository) Update(_ context.Context, record *Configuration) (*Configuration, error) {
	if record == nil {
		return nil, ErrKeyRequired
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.records[record.ID]
	if !ok {
		return nil, &NotFoundError{Key: record.Key}
	}
	if current.Key != record.Key {
		if _, taken := m.keyIndex[record.Key]; taken {
			return nil, ErrConfigurationExists
		}
		delete(m.keyIndex, current.Key)
		m.keyIndex[record.Key] = record.ID
	}
	updated := record.Clone()
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = m.now()
	m.records[updated.ID] = updated
	return updated.Clone(), nil
}

// GetByID returns the configuration with id.
func (m *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Configuration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.records[id]
	if !ok {
		return nil, &NotFoundError{Key: id.String()}
	}
	return record.Clone(), nil
}

// GetByKey returns the configuration with key.
func (m *MemoryRepository) GetByKey(_ context.Context, key string) (*Configuration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.keyIndex[strings.TrimSpace(key)]
	if !ok {
		return nil, &NotFoundError{Key: key}
	}
	return m.records[id].Clone(), nil
}

// List returns every configuration ordered by key.
func (m *MemoryRepository) List(_ context.Context) ([]*Configuration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Configuration, 0, len(m.records))
	for _, record := range m.records {
		out = append(out, record.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

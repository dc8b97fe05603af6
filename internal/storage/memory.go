package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/misterclayt0n/hygie/internal/models"

	"github.com/google/uuid"
)

// MemoryStore is an in-process profile store with the same merge rules as Storage.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]*models.Profile
}

func NewMemoryStore(profiles ...*models.Profile) *MemoryStore {
	m := &MemoryStore{profiles: make(map[string]*models.Profile)}
	for _, p := range profiles {
		if p == nil {
			continue
		}
		m.profiles[p.ID] = p.Clone()
	}
	return m
}

func (m *MemoryStore) Load(ctx context.Context, id string) (*models.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.profiles[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrProfileNotFound)
	}
	return p.Clone(), nil
}

func (m *MemoryStore) Upsert(ctx context.Context, partial *models.Profile) ([]*models.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if partial == nil {
		return nil, errors.New("upsert: nil profile")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := partial.ID
	if id == "" {
		id = uuid.New().String()
	}
	base, ok := m.profiles[id]
	if !ok {
		base = &models.Profile{ID: id}
	}

	merged, err := MergeProfile(base, partial)
	if err != nil {
		return nil, fmt.Errorf("merge profile %s: %w", id, err)
	}
	merged.ID = id
	m.profiles[id] = merged

	return m.listLocked(), nil
}

func (m *MemoryStore) List(ctx context.Context) ([]*models.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listLocked(), nil
}

func (m *MemoryStore) listLocked() []*models.Profile {
	out := make([]*models.Profile, 0, len(m.profiles))
	for _, p := range m.profiles {
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

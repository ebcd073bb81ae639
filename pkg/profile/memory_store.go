package profile

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type memoryStore struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]*NicheProfile
}

// NewMemoryStore returns an in-memory Store for tests and local development.
func NewMemoryStore() Store {
	return &memoryStore{profiles: make(map[uuid.UUID]*NicheProfile)}
}

func (s *memoryStore) Create(ctx context.Context, p *NicheProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *p
	s.profiles[p.ID] = &stored
	return nil
}

func (s *memoryStore) Get(ctx context.Context, id uuid.UUID) (*NicheProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.profiles[id]
	if !ok {
		return nil, ErrProfileNotFound
	}
	p := *stored
	return &p, nil
}

func (s *memoryStore) ListByAccount(ctx context.Context, accountID string) ([]*NicheProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*NicheProfile
	for _, stored := range s.profiles {
		if stored.AccountID == accountID {
			p := *stored
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *memoryStore) Update(ctx context.Context, p *NicheProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[p.ID]; !ok {
		return ErrProfileNotFound
	}
	stored := *p
	s.profiles[p.ID] = &stored
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, id uuid.UUID, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if stored, ok := s.profiles[id]; ok && stored.AccountID == accountID {
		delete(s.profiles, id)
	}
	return nil
}

package content

import (
	"context"
	"maps"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type memoryStore struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*GeneratedContent
}

// NewMemoryStore returns an in-memory Store for tests and local development.
func NewMemoryStore() Store {
	return &memoryStore{items: make(map[uuid.UUID]*GeneratedContent)}
}

func (s *memoryStore) Create(ctx context.Context, c *GeneratedContent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *c
	stored.Input = maps.Clone(c.Input)
	s.items[c.ID] = &stored
	return nil
}

func (s *memoryStore) Get(ctx context.Context, id uuid.UUID) (*GeneratedContent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.items[id]
	if !ok {
		return nil, ErrContentNotFound
	}
	c := *stored
	c.Input = maps.Clone(stored.Input)
	return &c, nil
}

func (s *memoryStore) ListByAccount(ctx context.Context, accountID string) ([]*GeneratedContent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*GeneratedContent
	for _, stored := range s.items {
		if stored.AccountID == accountID {
			c := *stored
			c.Input = maps.Clone(stored.Input)
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *memoryStore) SetRating(ctx context.Context, id uuid.UUID, rating int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.items[id]
	if !ok {
		return ErrContentNotFound
	}
	stored.Rating = &rating
	return nil
}

package entitlement

import (
	"context"
	"sync"
	"time"
)

// memoryStore implements AccountStore with an in-process map. It is intended
// for tests and local development; all conditional checks run under one mutex
// so the atomicity contract matches the Postgres implementation.
type memoryStore struct {
	mu         sync.Mutex
	accounts   map[string]*Account
	byCustomer map[string]string // billing customer ID -> account ID
}

// NewMemoryStore returns an empty in-memory AccountStore.
func NewMemoryStore() AccountStore {
	return &memoryStore{
		accounts:   make(map[string]*Account),
		byCustomer: make(map[string]string),
	}
}

func (s *memoryStore) Get(ctx context.Context, id string) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(id)
}

func (s *memoryStore) GetByBillingCustomerID(ctx context.Context, customerID string) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if customerID == "" {
		return nil, ErrAccountNotFound
	}
	id, ok := s.byCustomer[customerID]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return s.get(id)
}

func (s *memoryStore) Create(ctx context.Context, account *Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.ID]; exists {
		return ErrAccountAlreadyExists
	}

	stored := *account
	s.accounts[account.ID] = &stored
	if stored.BillingCustomerID != "" {
		s.byCustomer[stored.BillingCustomerID] = stored.ID
	}
	return nil
}

func (s *memoryStore) ConsumeCredit(ctx context.Context, id string) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if acc.CreditsRemaining <= 0 {
		return nil, ErrCreditsExhausted
	}

	stored := s.accounts[id]
	stored.CreditsRemaining--
	stored.UpdatedAt = time.Now().UTC()
	return s.get(id)
}

func (s *memoryStore) ResetCredits(ctx context.Context, id string, credits int, now, weekStart time.Time) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	// Forward-only guard: a reset already applied this week wins.
	if !stored.LastCreditsReset.Before(weekStart) {
		return s.get(id)
	}

	stored.CreditsRemaining = credits
	stored.LastCreditsReset = now.UTC()
	stored.UpdatedAt = now.UTC()
	return s.get(id)
}

func (s *memoryStore) SetSubscription(ctx context.Context, id string, plan Plan, credits int, customerID, subscriptionID string) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}

	if customerID != "" && customerID != stored.BillingCustomerID {
		delete(s.byCustomer, stored.BillingCustomerID)
		stored.BillingCustomerID = customerID
		s.byCustomer[customerID] = id
	}
	stored.Plan = plan
	stored.CreditsRemaining = credits
	stored.BillingSubscriptionID = subscriptionID
	stored.UpdatedAt = time.Now().UTC()
	return s.get(id)
}

func (s *memoryStore) LinkBillingCustomer(ctx context.Context, id, customerID string) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	if customerID != "" && customerID != stored.BillingCustomerID {
		delete(s.byCustomer, stored.BillingCustomerID)
		stored.BillingCustomerID = customerID
		s.byCustomer[customerID] = id
	}
	stored.UpdatedAt = time.Now().UTC()
	return s.get(id)
}

// get returns a copy so callers can't mutate stored state without going
// through the store. Callers must hold s.mu.
func (s *memoryStore) get(id string) (*Account, error) {
	stored, ok := s.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	acc := *stored
	return &acc, nil
}

package repositories

import (
	"context"
	"sync"

	"lannisterpay/internal/models"
)

// MemoryStore keeps the rule set in process memory. It backs tests and
// no-infrastructure deployments; rules do not survive a restart.
type MemoryStore struct {
	mu    sync.RWMutex
	rules []models.FeeRule
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) StoreAll(_ context.Context, rules []models.FeeRule) error {
	copied := make([]models.FeeRule, len(rules))
	copy(copied, rules)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules = copied
	return nil
}

func (s *MemoryStore) FetchAll(_ context.Context) ([]models.FeeRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make([]models.FeeRule, len(s.rules))
	copy(copied, s.rules)
	return copied, nil
}

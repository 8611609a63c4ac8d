// Package repositories holds the persistence adapters behind the rule store
// boundary. The core only ever asks for two things: replace the stored rule
// set and fetch it back. Which backend serves those calls is a deployment
// choice.
package repositories

import (
	"context"
	"fmt"

	"lannisterpay/internal/config"
	"lannisterpay/internal/models"
)

// RuleStore persists and retrieves the full fee rule set as one logical
// collection. StoreAll replaces the stored set; merge semantics, when
// enabled, are applied by the service before calling it. Implementations
// must give read-after-write consistency for a single submission so no
// evaluation observes a partially written set.
type RuleStore interface {
	StoreAll(ctx context.Context, rules []models.FeeRule) error
	FetchAll(ctx context.Context) ([]models.FeeRule, error)
}

// HealthChecker is implemented by stores backed by an external system.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// NewStore builds the RuleStore selected by STORE_BACKEND.
func NewStore(cfg config.Config) (RuleStore, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return NewMemoryStore(), nil
	case config.BackendRedis:
		return NewRedisStore(NewRedisClient(cfg)), nil
	case config.BackendPostgres:
		return NewPostgresStore(cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

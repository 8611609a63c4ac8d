package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"lannisterpay/internal/config"
	"lannisterpay/internal/models"
)

// rulesKey is the single logical collection the rule set lives under.
const rulesKey = "fees:configurations"

// NewRedisClient builds a go-redis client from the resolved configuration.
func NewRedisClient(cfg config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// RedisStore keeps the whole rule set as one JSON value, the same shape the
// service's original deployment used. Writes are a single SET, so readers
// always see either the previous set or the new one, never a mix.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) StoreAll(ctx context.Context, rules []models.FeeRule) error {
	data, err := json.Marshal(rules)
	if err != nil {
		return fmt.Errorf("failed to marshal rule set: %w", err)
	}
	if err := s.client.Set(ctx, rulesKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store rule set: %w", err)
	}
	return nil
}

func (s *RedisStore) FetchAll(ctx context.Context) ([]models.FeeRule, error) {
	data, err := s.client.Get(ctx, rulesKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch rule set: %w", err)
	}

	var rules []models.FeeRule
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rule set: %w", err)
	}
	return rules, nil
}

func (s *RedisStore) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

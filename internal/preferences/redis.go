package preferences

import (
	"context"
	"errors"
	"fmt"

	"github.com/iwvelando/crunch-the-numbers/pkg/constants"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisConfig locates the Redis server backing a RedisStore.
type RedisConfig struct {
	Address   string `yaml:"address"`
	Password  string `yaml:"password,omitempty"`
	DB        int    `yaml:"db,omitempty"`
	KeyPrefix string `yaml:"keyPrefix,omitempty"`
}

// RedisStore keeps preferences in Redis under KeyPrefix+user+":currency".
type RedisStore struct {
	client redis.Cmdable
	prefix string
	logger *zap.Logger
}

// NewRedisStore connects a store to the configured server. The connection is
// lazy; use Ping to check it.
func NewRedisStore(cfg RedisConfig, logger *zap.Logger) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return NewRedisStoreWithClient(client, cfg.KeyPrefix, logger)
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client redis.Cmdable, prefix string, logger *zap.Logger) *RedisStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	if prefix == "" {
		prefix = constants.DefaultRedisKeyPrefix
	}
	return &RedisStore{client: client, prefix: prefix, logger: logger}
}

// Ping checks the server is reachable.
func (r *RedisStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Currency returns the stored currency for user.
func (r *RedisStore) Currency(ctx context.Context, user string) (string, error) {
	key := r.key(user)
	code, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to read currency preference",
			zap.String("op", "preferences.RedisStore.Currency"),
			zap.String("key", key),
			zap.Error(err),
		)
		return "", fmt.Errorf("reading %s: %w", key, err)
	}
	return code, nil
}

// SetCurrency stores a currency for user with no expiry.
func (r *RedisStore) SetCurrency(ctx context.Context, user, code string) error {
	normalized, err := normalizeCurrency(code)
	if err != nil {
		return err
	}
	key := r.key(user)
	if err := r.client.Set(ctx, key, normalized, 0).Err(); err != nil {
		r.logger.Error("failed to write currency preference",
			zap.String("op", "preferences.RedisStore.SetCurrency"),
			zap.String("key", key),
			zap.Error(err),
		)
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

func (r *RedisStore) key(user string) string {
	return r.prefix + userKey(user) + ":currency"
}

package persistence

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/park-seva/helpcenter-service/internal/config"
)

// Redis wraps the go-redis client.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects to Redis using the provided configuration.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &Redis{Client: client}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}

// RedisSnapshotStore keeps snapshot documents as plain string values, one per
// collection key, with no expiry.
type RedisSnapshotStore struct {
	client *redis.Client
}

// NewRedisSnapshotStore builds the store over an existing client.
func NewRedisSnapshotStore(r *Redis) *RedisSnapshotStore {
	return &RedisSnapshotStore{client: r.Client}
}

// Load fetches the document for key.
func (s *RedisSnapshotStore) Load(ctx context.Context, key string) ([]byte, error) {
	doc, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return doc, nil
}

// Save replaces the document for key.
func (s *RedisSnapshotStore) Save(ctx context.Context, key string, document []byte) error {
	return s.client.Set(ctx, key, document, 0).Err()
}

// Delete removes the document for key.
func (s *RedisSnapshotStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

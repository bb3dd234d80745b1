package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/johnquangdev/meeting-notes/pkg/config"
)

const snapshotKeyPrefix = "captions:"

// NewRedisClient creates a Redis client and verifies the connection
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// RedisSnapshotStore keeps the latest caption snapshot per capture job in Redis
type RedisSnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSnapshotStore creates a snapshot store whose entries expire after ttl
func NewRedisSnapshotStore(client *redis.Client, ttl time.Duration) *RedisSnapshotStore {
	return &RedisSnapshotStore{client: client, ttl: ttl}
}

func snapshotKey(jobID string) string {
	return snapshotKeyPrefix + jobID
}

// Put replaces the snapshot for jobID
func (s *RedisSnapshotStore) Put(ctx context.Context, jobID string, texts []string) error {
	payload, err := json.Marshal(texts)
	if err != nil {
		return fmt.Errorf("failed to encode caption snapshot: %w", err)
	}
	if err := s.client.Set(ctx, snapshotKey(jobID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store caption snapshot: %w", err)
	}
	return nil
}

// Latest returns the newest snapshot for jobID, or nil if none was pushed
func (s *RedisSnapshotStore) Latest(ctx context.Context, jobID string) ([]string, error) {
	payload, err := s.client.Get(ctx, snapshotKey(jobID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read caption snapshot: %w", err)
	}

	var texts []string
	if err := json.Unmarshal(payload, &texts); err != nil {
		return nil, fmt.Errorf("failed to decode caption snapshot: %w", err)
	}
	return texts, nil
}

// Clear removes the snapshot for jobID
func (s *RedisSnapshotStore) Clear(ctx context.Context, jobID string) error {
	if err := s.client.Del(ctx, snapshotKey(jobID)).Err(); err != nil {
		return fmt.Errorf("failed to clear caption snapshot: %w", err)
	}
	return nil
}

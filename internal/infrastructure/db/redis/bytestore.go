package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ByteStore stores raw values under string keys in Redis. Snapshot values
// carry no TTL; they live until overwritten or deleted.
type ByteStore struct {
	client *redis.Client
}

func NewByteStore(client *redis.Client) *ByteStore {
	return &ByteStore{client: client}
}

func (b *ByteStore) Set(ctx context.Context, key string, value []byte) error {
	if err := b.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (b *ByteStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := b.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return value, true, nil
}

func (b *ByteStore) Delete(ctx context.Context, key string) error {
	if err := b.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisStore keeps the document under a single key.
type RedisStore struct {
	Client *redis.Client
	Key    string
}

// NewRedisStore pings the server and seeds the key when it is missing.
func NewRedisStore(ctx context.Context, client *redis.Client, key string) (*RedisStore, error) {
	err := client.Ping(ctx).Err()
	if err != nil {
		return nil, fmt.Errorf("redis store: %w", err)
	}

	err = client.SetNX(ctx, key, emptyDocument, 0).Err()
	if err != nil {
		return nil, fmt.Errorf("redis store: seed key: %w", err)
	}

	return &RedisStore{Client: client, Key: key}, nil
}

func (s *RedisStore) Load(ctx context.Context) ([]byte, error) {
	doc, err := s.Client.Get(ctx, s.Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return emptyDocument, nil
	}
	return doc, err
}

func (s *RedisStore) Save(ctx context.Context, doc []byte) error {
	return s.Client.Set(ctx, s.Key, doc, 0).Err()
}

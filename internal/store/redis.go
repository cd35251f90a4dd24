package store

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// syncChannel carries the key of every saved collection, so other
// processes sharing the store can re-read and re-publish. Delivery is
// best-effort with no ordering guarantee relative to local writes.
const syncChannel = "restaurant_sync"

// RedisStore is the durable key-value backend. Each collection lives
// wholesale under its key; every save also announces the key on the sync
// channel.
type RedisStore struct {
	collections
	client *redis.Client
}

func NewRedis(ctx context.Context, url string) (*RedisStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	s := &RedisStore{client: client}
	s.collections = collections{kv: s}
	return s, nil
}

func (s *RedisStore) get(ctx context.Context, key string) ([]byte, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (s *RedisStore) put(ctx context.Context, key string, data []byte) error {
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return err
	}
	// Sync announcement is best-effort; a failed publish must not fail
	// the write it describes.
	_ = s.client.Publish(ctx, syncChannel, key).Err()
	return nil
}

// Watch delivers the key of every collection saved by any process sharing
// this Redis, including our own writes. It blocks until ctx is cancelled.
func (s *RedisStore) Watch(ctx context.Context, fn func(key string)) error {
	sub := s.client.Subscribe(ctx, syncChannel)
	defer sub.Close()
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			fn(msg.Payload)
		}
	}
}

func (s *RedisStore) Close() {
	_ = s.client.Close()
}

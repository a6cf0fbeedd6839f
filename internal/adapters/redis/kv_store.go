// Package redis provides Redis-based adapters for the voting client.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/Vinothdevgit/voting-client/internal/ports"
)

// DefaultPrefix namespaces the client's keys in a shared Redis.
const DefaultPrefix = "ballot:session:"

var _ ports.KeyValueStore = (*KVStore)(nil)

// KVStore is a Redis-backed key/value store. Every key shares one hash tag,
// so in cluster mode they map to a single slot. Multi-key writes then run in
// one MULTI/EXEC block, and MGET and DEL stay single-slot commands.
type KVStore struct {
	client redis.UniversalClient
	prefix string
}

// NewKVStore creates a store using DefaultPrefix.
func NewKVStore(client redis.UniversalClient) *KVStore {
	return NewKVStoreWithPrefix(client, DefaultPrefix)
}

// NewKVStoreWithPrefix creates a store with a custom key prefix, so several
// client profiles can share one Redis. A prefix without a hash tag is wrapped
// in one: "ballot:session:" becomes "{ballot:session}:".
func NewKVStoreWithPrefix(client redis.UniversalClient, prefix string) *KVStore {
	return &KVStore{client: client, prefix: hashTagged(prefix)}
}

func hashTagged(prefix string) string {
	if open := strings.IndexByte(prefix, '{'); open >= 0 {
		if closeIdx := strings.IndexByte(prefix[open:], '}'); closeIdx > 1 {
			return prefix
		}
	}
	tag := strings.TrimRight(prefix, ":")
	if tag == "" {
		tag = strings.TrimRight(DefaultPrefix, ":")
	}
	return "{" + tag + "}:"
}

func (s *KVStore) key(k string) string { return s.prefix + k }

// Get returns the value for key.
func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

// GetMany reads keys with a single MGET.
func (s *KVStore) GetMany(ctx context.Context, keys ...string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.key(k)
	}
	vals, err := s.client.MGet(ctx, full...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget: %w", err)
	}
	for i, v := range vals {
		if str, ok := v.(string); ok {
			out[keys[i]] = str
		}
	}
	return out, nil
}

// SetMany writes all pairs in one transaction.
func (s *KVStore) SetMany(ctx context.Context, pairs map[string]string) error {
	if len(pairs) == 0 {
		return nil
	}
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		for k, v := range pairs {
			p.Set(ctx, s.key(k), v, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes keys in one command.
func (s *KVStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.key(k)
	}
	if err := s.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
